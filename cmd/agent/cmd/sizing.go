package cmd

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/js0094q/trading-agent/config"
	"github.com/js0094q/trading-agent/journal"
	"github.com/js0094q/trading-agent/plan"
	"github.com/js0094q/trading-agent/quotes"
	"github.com/js0094q/trading-agent/report"
	"github.com/js0094q/trading-agent/risk"
)

var sizingCmd = &cobra.Command{
	Use:   "sizing",
	Short: "Compute risk-bounded position sizes for a batch of trade plans",
	Long: `Size every trade plan in a batch against the rule set's per-trade,
portfolio and instrument constraints, then write an order sheet and a
risk checklist.

Equity comes from (highest priority first) the --equity flag, the
AGENT_EQUITY environment variable, or the rules file.

Example:
  agent sizing --rules inputs/rules.yaml --plans artifacts/signals/trade_plans.json`,
	RunE: runSizing,
}

var (
	sizingRulesPath  string
	sizingPlansPath  string
	sizingQuotesPath string
	sizingOutDir     string
	sizingEquity     float64
)

func init() {
	rootCmd.AddCommand(sizingCmd)

	sizingCmd.Flags().StringVarP(&sizingRulesPath, "rules", "r", "", "path to rule set file (YAML or JSON) (required)")
	sizingCmd.Flags().StringVarP(&sizingPlansPath, "plans", "p", "", "path to trade plans JSON file (required)")
	sizingCmd.Flags().StringVarP(&sizingQuotesPath, "quotes", "q", "", "optional quote snapshot for backfilling missing entry prices")
	sizingCmd.Flags().StringVarP(&sizingOutDir, "out", "o", "artifacts/sizing", "directory for order sheet and checklist")
	sizingCmd.Flags().Float64VarP(&sizingEquity, "equity", "e", 0, "account equity in USD (overrides rules file)")
	sizingCmd.MarkFlagRequired("rules")
	sizingCmd.MarkFlagRequired("plans")
}

func runSizing(cmd *cobra.Command, args []string) error {
	rules, err := config.LoadFromFile(sizingRulesPath)
	if err != nil {
		return fmt.Errorf("load rules: %w", err)
	}

	switch {
	case sizingEquity > 0:
		rules.Account.EquityUSD = sizingEquity
	case os.Getenv("AGENT_EQUITY") != "":
		eq, err := strconv.ParseFloat(os.Getenv("AGENT_EQUITY"), 64)
		if err != nil {
			return fmt.Errorf("parse AGENT_EQUITY: %w", err)
		}
		rules.Account.EquityUSD = eq
	}

	plans, err := plan.LoadFile(sizingPlansPath)
	if err != nil {
		return fmt.Errorf("load trade plans: %w", err)
	}

	if sizingQuotesPath != "" {
		snap, err := quotes.LoadSnapshot(sizingQuotesPath)
		if err != nil {
			return fmt.Errorf("load quotes: %w", err)
		}
		filled := quotes.Backfill(snap, plans)
		log.Info("backfilled entry prices from quote snapshot",
			zap.String("snapshot", sizingQuotesPath),
			zap.Int("filled", filled))
	}

	res, err := risk.Run(rules, plans)
	if err != nil {
		return fmt.Errorf("sizing halted: %w", err)
	}

	log.Info("sizing run complete",
		zap.Float64("equity_usd", rules.Account.EquityUSD),
		zap.Int("plans", len(res.Orders)),
		zap.Int("sized", res.SizedCount()),
		zap.Int("skipped", res.SkippedCount()),
		zap.Float64("total_risk_usd", res.TotalRiskUSD))
	for _, s := range res.Skips() {
		log.Info("plan skipped",
			zap.String("symbol", s.Symbol),
			zap.String("reason", string(s.Reason)))
	}

	if err := report.Write(sizingOutDir, rules, res); err != nil {
		return err
	}

	if j, err := journal.Open(rules.Journal); err != nil {
		return fmt.Errorf("open journal: %w", err)
	} else if j != nil {
		defer j.Close()
		runID, err := journal.RecordResult(j, rules, res)
		if err != nil {
			return fmt.Errorf("journal run: %w", err)
		}
		log.Info("run journaled", zap.String("run_id", runID))
	}

	fmt.Printf("Wrote %s\n", filepath.Join(sizingOutDir, "order_sheet.json"))
	fmt.Printf("Wrote %s\n", filepath.Join(sizingOutDir, "risk_checklist.md"))
	if skips := res.Skips(); len(skips) > 0 {
		fmt.Println("Skipped items:")
		for _, s := range skips {
			fmt.Printf("- %s: %s\n", s.Symbol, s.Reason)
		}
	}
	return nil
}
