package risk

import (
	"math"
	"sync"

	"github.com/js0094q/trading-agent/config"
	"github.com/js0094q/trading-agent/plan"
)

func abs(x float64) float64 {
	if x < 0 {
		return -x
	}
	return x
}

// floorToLot rounds units down to a tradable multiple of lot.
func floorToLot(units, lot float64) float64 {
	if lot <= 0 {
		lot = 1
	}
	return math.Floor(units/lot) * lot
}

// Size computes the risk-based order for a single plan:
//
//	risk$  = equity * max_risk_per_trade_pct
//	units  = floor(risk$ / |entry-stop| / lot) * lot
//
// then clamps to the instrument's max_units and max_notional. A result
// below one lot is skipped outright. Pure: no shared state, independent
// across plans.
func Size(rules *config.RuleSet, p plan.TradePlan) SizedOrder {
	o := SizedOrder{
		Symbol:           p.Symbol,
		Direction:        p.Direction,
		CorrelationGroup: p.CorrelationGroup,
	}
	if p.EntryPrice != nil {
		o.Entry = *p.EntryPrice
	}
	if p.StopPrice != nil {
		o.Stop = *p.StopPrice
	}

	if reason, ok := Validate(rules, p); !ok {
		o.skip(reason)
		return o
	}

	dist := p.StopDistance()
	ov := rules.Override(p.Symbol)

	o.RiskPerTradeUSD = rules.Account.EquityUSD * rules.Limits.MaxRiskPerTradePct
	units := floorToLot(o.RiskPerTradeUSD/dist, ov.LotSize)
	if ov.MaxUnits > 0 && units > ov.MaxUnits {
		units = floorToLot(ov.MaxUnits, ov.LotSize)
	}
	if ov.MaxNotional > 0 && o.Entry > 0 && units*o.Entry > ov.MaxNotional {
		units = floorToLot(ov.MaxNotional/o.Entry, ov.LotSize)
	}

	if units < ov.LotSize {
		o.skip(ReasonStopTooTight)
		return o
	}

	o.UnitSize = units
	o.MaxLossIfStopped = units * dist
	o.Status = StatusSized
	return o
}

// SizeAll sizes every plan in the batch. Per-plan sizing is independent,
// so plans run concurrently; each result lands at its input index, which
// preserves the ordering the allocator depends on.
func SizeAll(rules *config.RuleSet, plans []plan.TradePlan) []SizedOrder {
	orders := make([]SizedOrder, len(plans))

	var wg sync.WaitGroup
	wg.Add(len(plans))
	for i, p := range plans {
		go func(i int, p plan.TradePlan) {
			defer wg.Done()
			orders[i] = Size(rules, p)
		}(i, p)
	}
	wg.Wait()

	return orders
}
