// Package report renders the engine's decisions: a machine-readable order
// sheet and a narrative risk checklist. Formatting only; no sizing logic.
package report

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/js0094q/trading-agent/config"
	"github.com/js0094q/trading-agent/risk"
)

// OrderSheet marshals every terminal order record (sized and skipped,
// with notes) as a pretty-printed JSON array. An empty batch still yields
// a valid empty array, never an ambiguous file.
func OrderSheet(res risk.Result) ([]byte, error) {
	orders := res.Orders
	if orders == nil {
		orders = []risk.SizedOrder{}
	}
	data, err := json.MarshalIndent(orders, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshal order sheet: %w", err)
	}
	return append(data, '\n'), nil
}

// Checklist renders the narrative risk summary: account limits as a
// reminder list, allocated risk, and every skip with its reason.
func Checklist(rules *config.RuleSet, res risk.Result) string {
	var b strings.Builder

	eq := rules.Account.EquityUSD
	lim := rules.Limits

	b.WriteString("# Risk Checklist\n\n")
	fmt.Fprintf(&b, "- Account equity: $%.2f\n", eq)
	fmt.Fprintf(&b, "- Max risk per trade: %.2f%% ($%.2f)\n", lim.MaxRiskPerTradePct*100, eq*lim.MaxRiskPerTradePct)
	fmt.Fprintf(&b, "- Daily stop level: %.2f%% ($%.2f)\n", lim.MaxDailyLossPct*100, eq*lim.MaxDailyLossPct)
	fmt.Fprintf(&b, "- Max open positions: %d\n", lim.MaxPositions)
	fmt.Fprintf(&b, "- Max total concurrent risk: %.2f%% ($%.2f)\n", lim.MaxTotalConcurrentRiskPct*100, eq*lim.MaxTotalConcurrentRiskPct)

	b.WriteString("\n## Allocation\n\n")
	if res.SizedCount() == 0 {
		b.WriteString("- No trades sized this run.\n")
	} else {
		fmt.Fprintf(&b, "- Trades sized: %d\n", res.SizedCount())
		fmt.Fprintf(&b, "- Total risk allocated: $%.2f (%.2f%% of equity)\n",
			res.TotalRiskUSD, res.TotalRiskFraction*100)
	}
	fmt.Fprintf(&b, "- Trades skipped: %d\n", res.SkippedCount())

	b.WriteString("\n## Skipped / Notes\n\n")
	skips := res.Skips()
	if len(skips) == 0 {
		b.WriteString("- None\n")
	} else {
		for _, s := range skips {
			fmt.Fprintf(&b, "- %s: %s\n", s.Symbol, s.Reason)
		}
	}

	return b.String()
}

// Write renders both artifacts into dir: order_sheet.json and
// risk_checklist.md. The directory is created if needed.
func Write(dir string, rules *config.RuleSet, res risk.Result) error {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("create report dir: %w", err)
	}

	sheet, err := OrderSheet(res)
	if err != nil {
		return err
	}
	sheetPath := filepath.Join(dir, "order_sheet.json")
	if err := os.WriteFile(sheetPath, sheet, 0644); err != nil {
		return fmt.Errorf("write order sheet: %w", err)
	}

	checkPath := filepath.Join(dir, "risk_checklist.md")
	if err := os.WriteFile(checkPath, []byte(Checklist(rules, res)), 0644); err != nil {
		return fmt.Errorf("write risk checklist: %w", err)
	}

	return nil
}
