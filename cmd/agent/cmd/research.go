package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/js0094q/trading-agent/research"
)

var researchCmd = &cobra.Command{
	Use:   "research",
	Short: "Validate inputs for the daily research workflow",
	Long: `Check that every input the research workflow needs is present and
non-empty. Halts with an explicit list when anything is missing instead
of guessing.

With --stub, placeholder outputs (daily_brief.md, watchlist.json) are
written after validation.

Example:
  agent research --inputs inputs --artifacts artifacts --stub`,
	RunE: runResearch,
}

var (
	researchInputsDir    string
	researchArtifactsDir string
	researchStub         bool
)

func init() {
	rootCmd.AddCommand(researchCmd)

	researchCmd.Flags().StringVarP(&researchInputsDir, "inputs", "i", "inputs", "directory holding research inputs")
	researchCmd.Flags().StringVarP(&researchArtifactsDir, "artifacts", "a", "artifacts", "directory for research outputs")
	researchCmd.Flags().BoolVar(&researchStub, "stub", false, "write stub outputs after validation")
}

func runResearch(cmd *cobra.Command, args []string) error {
	if missing := research.MissingInputs(researchInputsDir); len(missing) > 0 {
		fmt.Println("Research halted. Missing or empty files:")
		for _, m := range missing {
			fmt.Printf("- %s\n", m)
		}
		return fmt.Errorf("%d required input(s) missing", len(missing))
	}

	if !research.HasScreener(researchArtifactsDir) {
		fmt.Println("Note: optional screener not found; continuing without it.")
	}

	if researchStub {
		outDir, err := research.WriteStubs(researchArtifactsDir)
		if err != nil {
			return err
		}
		fmt.Printf("Wrote stub outputs to %s\n", outDir)
		return nil
	}

	fmt.Println("Inputs validated. Add your research and write outputs to:")
	fmt.Printf("- %s/research/daily_brief.md\n", researchArtifactsDir)
	fmt.Printf("- %s/research/watchlist.json\n", researchArtifactsDir)
	return nil
}
