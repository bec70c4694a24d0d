// Package risk implements the deterministic sizing engine: per-plan
// validation, risk-based unit sizing, and the cross-plan allocation pass
// that enforces the portfolio-level caps.
package risk

import (
	"github.com/js0094q/trading-agent/plan"
)

type Status string

const (
	StatusSized   Status = "sized"
	StatusSkipped Status = "skipped"
)

// Reason is a skip reason code. The set is closed: every skipped order
// carries exactly one of these, verbatim, as its first note.
type Reason string

const (
	ReasonMissingPrice        Reason = "missing_price"
	ReasonZeroStopDistance    Reason = "zero_stop_distance"
	ReasonInvalidDirection    Reason = "invalid_direction"
	ReasonShortNotAllowed     Reason = "short_not_allowed"
	ReasonStopTooTight        Reason = "stop too tight"
	ReasonMaxPositionsReached Reason = "max_positions_reached"
	ReasonRiskBudgetExhausted Reason = "risk_budget_exhausted"
)

// Reasons is the full skip reason set, for exhaustive checks.
var Reasons = map[Reason]bool{
	ReasonMissingPrice:        true,
	ReasonZeroStopDistance:    true,
	ReasonInvalidDirection:    true,
	ReasonShortNotAllowed:     true,
	ReasonStopTooTight:        true,
	ReasonMaxPositionsReached: true,
	ReasonRiskBudgetExhausted: true,
}

// SizedOrder is the terminal record for one trade plan. Created by the
// sizing stage, downgraded (status, unit size) only by the allocator,
// read-only afterwards.
type SizedOrder struct {
	Symbol           string         `json:"symbol"`
	Direction        plan.Direction `json:"direction"`
	Entry            float64        `json:"entry"`
	Stop             float64        `json:"stop"`
	RiskPerTradeUSD  float64        `json:"risk_per_trade_usd"`
	UnitSize         float64        `json:"unit_size"`
	MaxLossIfStopped float64        `json:"max_loss_if_stopped"`
	Status           Status         `json:"status"`
	Notes            []string       `json:"notes"`
	CorrelationGroup string         `json:"correlation_group,omitempty"`
}

// Skipped reports whether the order was excluded from execution.
func (o *SizedOrder) Skipped() bool {
	return o.Status == StatusSkipped
}

// SkipReason returns the skip reason code, or "" for sized orders.
func (o *SizedOrder) SkipReason() Reason {
	if o.Status != StatusSkipped || len(o.Notes) == 0 {
		return ""
	}
	return Reason(o.Notes[0])
}

// skip marks the order skipped. The reason code goes first so it stays
// the authoritative note even when earlier stages already annotated the
// order.
func (o *SizedOrder) skip(r Reason) {
	o.Status = StatusSkipped
	o.UnitSize = 0
	o.MaxLossIfStopped = 0
	o.Notes = append([]string{string(r)}, o.Notes...)
}
