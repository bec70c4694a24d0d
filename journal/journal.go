// Package journal persists an audit trail of sizing runs: one run record
// per invocation plus a decision record per trade plan, so every accepted
// or skipped order can be reviewed later.
package journal

import "time"

// RunRecord summarizes one engine invocation.
type RunRecord struct {
	RunID                     string
	Created                   time.Time
	EquityUSD                 float64
	MaxRiskPerTradePct        float64
	MaxTotalConcurrentRiskPct float64
	MaxPositions              int
	PlanCount                 int
	SizedCount                int
	SkippedCount              int
	TotalRiskUSD              float64
}

// DecisionRecord is the terminal outcome for one trade plan within a run.
type DecisionRecord struct {
	RunID            string
	Symbol           string
	Direction        string
	Entry            float64
	Stop             float64
	UnitSize         float64
	RiskPerTradeUSD  float64
	MaxLossIfStopped float64
	Status           string
	Notes            string
}

type Journal interface {
	RecordRun(RunRecord) error
	RecordDecision(DecisionRecord) error
	Close() error
}
