package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/js0094q/trading-agent/config"
)

var rulesCmd = &cobra.Command{
	Use:   "rules",
	Short: "Generate or validate rule set files",
	Long: `Manage the rule set file the sizing engine runs under.

Subcommands:
  init     - Generate a default rule set file
  validate - Validate an existing rule set file

Examples:
  agent rules init --output rules.yaml
  agent rules validate --file rules.yaml`,
}

var rulesInitCmd = &cobra.Command{
	Use:   "init",
	Short: "Generate a default rule set file",
	Long: `Create a new rule set file with conservative defaults.

Example:
  agent rules init --output rules.yaml`,
	RunE: runRulesInit,
}

var rulesValidateCmd = &cobra.Command{
	Use:   "validate",
	Short: "Validate a rule set file",
	Long: `Check that a rule set file parses and every limit is usable.

Example:
  agent rules validate --file rules.yaml`,
	RunE: runRulesValidate,
}

var (
	rulesInitOutput   string
	rulesValidatePath string
)

func init() {
	rootCmd.AddCommand(rulesCmd)
	rulesCmd.AddCommand(rulesInitCmd)
	rulesCmd.AddCommand(rulesValidateCmd)

	rulesInitCmd.Flags().StringVarP(&rulesInitOutput, "output", "o", "rules.yaml", "output rule set file path")
	rulesValidateCmd.Flags().StringVarP(&rulesValidatePath, "file", "f", "", "path to rule set file (required)")
	rulesValidateCmd.MarkFlagRequired("file")
}

func runRulesInit(cmd *cobra.Command, args []string) error {
	rs := config.Default()
	if err := rs.SaveToFile(rulesInitOutput); err != nil {
		return fmt.Errorf("save rules: %w", err)
	}

	fmt.Printf("Created default rule set: %s\n", rulesInitOutput)
	fmt.Println("\nEdit the file and run with:")
	fmt.Printf("  agent sizing --rules %s --plans artifacts/signals/trade_plans.json\n", rulesInitOutput)
	return nil
}

func runRulesValidate(cmd *cobra.Command, args []string) error {
	rs, err := config.LoadFromFile(rulesValidatePath)
	if err != nil {
		return fmt.Errorf("validation failed: %w", err)
	}
	if err := rs.Validate(); err != nil {
		return fmt.Errorf("validation failed: %w", err)
	}

	fmt.Printf("Rule set valid: %s\n", rulesValidatePath)
	fmt.Printf("  Account: %s ($%.2f %s)\n", rs.Account.ID, rs.Account.EquityUSD, rs.Account.Currency)
	fmt.Printf("  Per-trade risk: %.2f%%, total concurrent: %.2f%%, max positions: %d\n",
		rs.Limits.MaxRiskPerTradePct*100, rs.Limits.MaxTotalConcurrentRiskPct*100, rs.Limits.MaxPositions)
	if len(rs.Overrides) > 0 {
		fmt.Printf("  Instrument overrides: %d\n", len(rs.Overrides))
	}
	return nil
}
