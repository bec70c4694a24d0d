package risk

import (
	"fmt"

	"github.com/js0094q/trading-agent/config"
)

// Tolerance applied when comparing accumulated risk fractions, so lot
// rounding near the budget boundary does not flip a decision.
const riskTolerance = 1e-9

// allocState is the accumulator for one allocation pass. It lives for a
// single call to Allocate and is never shared or persisted.
type allocState struct {
	count     int
	riskFrac  float64
	groups    map[string][]int // accepted order index per correlation group
	splitOnce map[int]bool     // orders already downgraded by a correlation split
}

// Allocate applies the cross-plan constraints to sized orders in their
// original input order: position-count cap, correlated-risk splitting,
// then the total concurrent risk budget. Earlier plans have priority; the
// pass is a single forward fold with no backtracking of accept/skip
// decisions. Orders already skipped upstream pass through untouched.
//
// When a correlation group gains a second member, risk is split across the
// group: the incoming order and the previously accepted members are each
// downgraded to half their unit size, and the freed risk returns to the
// budget. Members already split are not split again. The split of earlier
// members commits only if the incoming order is actually accepted; a
// rejected newcomer leaves the group as it was.
func Allocate(rules *config.RuleSet, orders []SizedOrder) []SizedOrder {
	out := make([]SizedOrder, len(orders))
	copy(out, orders)

	st := allocState{
		groups:    make(map[string][]int),
		splitOnce: make(map[int]bool),
	}
	equity := rules.Account.EquityUSD
	budget := rules.Limits.MaxTotalConcurrentRiskPct

	for i := range out {
		o := &out[i]
		if o.Status != StatusSized {
			continue
		}

		if st.count >= rules.Limits.MaxPositions {
			o.skip(ReasonMaxPositionsReached)
			continue
		}

		lot := rules.Override(o.Symbol).LotSize
		dist := abs(o.Entry - o.Stop)

		// Work on a copy so a later rejection leaves no trace.
		cand := *o
		g := cand.CorrelationGroup

		var toSplit []int
		var refund float64
		if g != "" && len(st.groups[g]) > 0 {
			for _, j := range st.groups[g] {
				if st.splitOnce[j] {
					continue
				}
				toSplit = append(toSplit, j)
				refund += halfRefund(&out[j], rules.Override(out[j].Symbol).LotSize, equity)
			}

			halve(&cand, lot, equity)
			cand.Notes = append(cand.Notes, fmt.Sprintf("risk split across correlation group %q", g))
			if cand.UnitSize < lot {
				o.skip(ReasonRiskBudgetExhausted)
				continue
			}
		}

		frac := cand.MaxLossIfStopped / equity
		if remaining := budget - (st.riskFrac - refund); frac > remaining+riskTolerance {
			targetUSD := remaining * equity
			if targetUSD < 0 {
				targetUSD = 0
			}
			units := floorToLot(targetUSD/dist, lot)
			if units < lot {
				o.skip(ReasonRiskBudgetExhausted)
				continue
			}
			cand.UnitSize = units
			cand.MaxLossIfStopped = units * dist
			cand.Notes = append(cand.Notes, "scaled down to remaining risk budget")
			frac = cand.MaxLossIfStopped / equity
		}

		// Accept: commit the group split, then take the slot.
		for _, j := range toSplit {
			prev := &out[j]
			st.riskFrac -= halveAccepted(prev, rules.Override(prev.Symbol).LotSize, equity)
			st.splitOnce[j] = true
			prev.Notes = append(prev.Notes, fmt.Sprintf("risk split across correlation group %q", g))
		}
		*o = cand
		st.count++
		st.riskFrac += frac
		if g != "" {
			if len(st.groups[g]) > 0 {
				st.splitOnce[i] = true
			}
			st.groups[g] = append(st.groups[g], i)
		}
	}

	return out
}

// halve cuts an order's unit size in half, lot-aligned, and returns the
// freed risk as a fraction of equity.
func halve(o *SizedOrder, lot, equity float64) float64 {
	dist := abs(o.Entry - o.Stop)
	units := floorToLot(o.UnitSize/2, lot)
	freed := (o.UnitSize - units) * dist / equity
	o.UnitSize = units
	o.MaxLossIfStopped = units * dist
	return freed
}

// halveAccepted commits the split on an already-accepted order and returns
// the freed risk fraction. Accepted orders never drop below one lot: the
// minimum tradable size cannot be split.
func halveAccepted(o *SizedOrder, lot, equity float64) float64 {
	dist := abs(o.Entry - o.Stop)
	units := floorToLot(o.UnitSize/2, lot)
	if units < lot {
		units = lot
	}
	freed := (o.UnitSize - units) * dist / equity
	o.UnitSize = units
	o.MaxLossIfStopped = units * dist
	return freed
}

// halfRefund computes, without mutating, what halveAccepted would free.
func halfRefund(o *SizedOrder, lot, equity float64) float64 {
	dist := abs(o.Entry - o.Stop)
	units := floorToLot(o.UnitSize/2, lot)
	if units < lot {
		units = lot
	}
	return (o.UnitSize - units) * dist / equity
}
