package risk

import (
	"fmt"

	"github.com/js0094q/trading-agent/config"
	"github.com/js0094q/trading-agent/plan"
)

// Skip pairs a symbol with the reason it was excluded.
type Skip struct {
	Symbol string
	Reason Reason
}

// Result holds the terminal outcome of one engine run: every input plan
// maps to exactly one order, sized or skipped.
type Result struct {
	Orders []SizedOrder

	// Sum of max_loss_if_stopped across sized orders, in dollars and as
	// a fraction of equity.
	TotalRiskUSD      float64
	TotalRiskFraction float64
}

// SizedCount returns the number of orders that survived allocation.
func (r Result) SizedCount() int {
	n := 0
	for i := range r.Orders {
		if r.Orders[i].Status == StatusSized {
			n++
		}
	}
	return n
}

// SkippedCount returns the number of orders excluded at any stage.
func (r Result) SkippedCount() int {
	return len(r.Orders) - r.SizedCount()
}

// Skips lists skipped symbols with their reasons, in input order.
func (r Result) Skips() []Skip {
	var skips []Skip
	for i := range r.Orders {
		if o := &r.Orders[i]; o.Skipped() {
			skips = append(skips, Skip{Symbol: o.Symbol, Reason: o.SkipReason()})
		}
	}
	return skips
}

// Run executes one full pass over a batch of trade plans: rule validation,
// per-plan sizing, then the cross-plan allocation fold. Rule errors are
// fatal and abort before any plan is processed; plan-level problems become
// skips. Deterministic: the same rules and plans always produce the same
// result.
func Run(rules *config.RuleSet, plans []plan.TradePlan) (Result, error) {
	if rules == nil {
		return Result{}, fmt.Errorf("rule set is required")
	}
	if err := rules.Validate(); err != nil {
		return Result{}, fmt.Errorf("invalid rules: %w", err)
	}

	orders := Allocate(rules, SizeAll(rules, plans))

	res := Result{Orders: orders}
	for i := range orders {
		if orders[i].Status == StatusSized {
			res.TotalRiskUSD += orders[i].MaxLossIfStopped
		}
	}
	res.TotalRiskFraction = res.TotalRiskUSD / rules.Account.EquityUSD
	return res, nil
}
