package journal

import (
	"encoding/csv"
	"os"
	"strconv"
	"time"
)

type CSVJournal struct {
	runs      *csv.Writer
	decisions *csv.Writer
	rf, df    *os.File
}

func NewCSV(runsPath, decisionsPath string) (*CSVJournal, error) {
	rf, err := os.Create(runsPath)
	if err != nil {
		return nil, err
	}
	df, err := os.Create(decisionsPath)
	if err != nil {
		return nil, err
	}

	rw := csv.NewWriter(rf)
	dw := csv.NewWriter(df)

	if err := rw.Write([]string{"run_id", "created", "equity_usd", "max_risk_per_trade_pct", "max_total_concurrent_risk_pct", "max_positions", "plan_count", "sized_count", "skipped_count", "total_risk_usd"}); err != nil {
		return nil, err
	}
	if err := dw.Write([]string{"run_id", "symbol", "direction", "entry", "stop", "unit_size", "risk_per_trade_usd", "max_loss_if_stopped", "status", "notes"}); err != nil {
		return nil, err
	}

	rw.Flush()
	if err := rw.Error(); err != nil {
		return nil, err
	}
	dw.Flush()
	if err := dw.Error(); err != nil {
		return nil, err
	}

	return &CSVJournal{rw, dw, rf, df}, nil
}

func (j *CSVJournal) RecordRun(r RunRecord) error {
	err := j.runs.Write([]string{
		r.RunID,
		r.Created.Format(time.RFC3339),
		f(r.EquityUSD),
		f(r.MaxRiskPerTradePct),
		f(r.MaxTotalConcurrentRiskPct),
		strconv.Itoa(r.MaxPositions),
		strconv.Itoa(r.PlanCount),
		strconv.Itoa(r.SizedCount),
		strconv.Itoa(r.SkippedCount),
		f(r.TotalRiskUSD),
	})
	if err != nil {
		return err
	}
	j.runs.Flush()
	return j.runs.Error()
}

func (j *CSVJournal) RecordDecision(d DecisionRecord) error {
	err := j.decisions.Write([]string{
		d.RunID,
		d.Symbol,
		d.Direction,
		f(d.Entry),
		f(d.Stop),
		f(d.UnitSize),
		f(d.RiskPerTradeUSD),
		f(d.MaxLossIfStopped),
		d.Status,
		d.Notes,
	})
	if err != nil {
		return err
	}
	j.decisions.Flush()
	return j.decisions.Error()
}

func (j *CSVJournal) Close() error {
	j.runs.Flush()
	if err := j.runs.Error(); err != nil {
		return err
	}
	j.decisions.Flush()
	if err := j.decisions.Error(); err != nil {
		return err
	}

	if err := j.rf.Close(); err != nil {
		return err
	}
	if err := j.df.Close(); err != nil {
		return err
	}
	return nil
}

func f(x float64) string {
	return strconv.FormatFloat(x, 'f', 6, 64)
}
