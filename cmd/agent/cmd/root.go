package cmd

import (
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var (
	debug bool
	log   *zap.Logger
)

var rootCmd = &cobra.Command{
	Use:   "agent",
	Short: "Risk-bounded position sizing for discretionary trade plans",
	Long: `Agent turns discretionary trade plans into risk-bounded, executable
order sizes under a strict rule set.

It provides tools for:
  - Sizing a batch of trade plans against per-trade and portfolio risk caps
  - Splitting risk across correlated positions
  - Writing an order sheet plus a narrative risk checklist
  - Journaling every run and decision for later review
  - Validating the inputs the daily research workflow depends on`,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		var err error
		if debug {
			log, err = zap.NewDevelopment()
		} else {
			cfg := zap.NewProductionConfig()
			cfg.OutputPaths = []string{"stderr"}
			log, err = cfg.Build()
		}
		return err
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		if log != nil {
			_ = log.Sync()
		}
	},
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().BoolVar(&debug, "debug", false, "enable debug logging")
}
