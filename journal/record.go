package journal

import (
	"strings"
	"time"

	"github.com/js0094q/trading-agent/config"
	"github.com/js0094q/trading-agent/pkg/id"
	"github.com/js0094q/trading-agent/risk"
)

// RecordResult writes one run summary plus a decision row per order and
// returns the generated run ID.
func RecordResult(j Journal, rules *config.RuleSet, res risk.Result) (string, error) {
	runID := id.New()

	run := RunRecord{
		RunID:                     runID,
		Created:                   time.Now().UTC(),
		EquityUSD:                 rules.Account.EquityUSD,
		MaxRiskPerTradePct:        rules.Limits.MaxRiskPerTradePct,
		MaxTotalConcurrentRiskPct: rules.Limits.MaxTotalConcurrentRiskPct,
		MaxPositions:              rules.Limits.MaxPositions,
		PlanCount:                 len(res.Orders),
		SizedCount:                res.SizedCount(),
		SkippedCount:              res.SkippedCount(),
		TotalRiskUSD:              res.TotalRiskUSD,
	}
	if err := j.RecordRun(run); err != nil {
		return "", err
	}

	for i := range res.Orders {
		o := &res.Orders[i]
		dec := DecisionRecord{
			RunID:            runID,
			Symbol:           o.Symbol,
			Direction:        string(o.Direction),
			Entry:            o.Entry,
			Stop:             o.Stop,
			UnitSize:         o.UnitSize,
			RiskPerTradeUSD:  o.RiskPerTradeUSD,
			MaxLossIfStopped: o.MaxLossIfStopped,
			Status:           string(o.Status),
			Notes:            strings.Join(o.Notes, "; "),
		}
		if err := j.RecordDecision(dec); err != nil {
			return "", err
		}
	}

	return runID, nil
}

// Open builds a journal from the rule set's journal section. Returns nil
// when no journal is configured.
func Open(cfg config.JournalConfig) (Journal, error) {
	switch cfg.Type {
	case "csv":
		return NewCSV(cfg.RunsFile, cfg.DecisionsFile)
	case "sqlite":
		return NewSQLite(cfg.DBPath)
	default:
		return nil, nil
	}
}
