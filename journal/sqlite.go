package journal

import (
	"database/sql"

	_ "github.com/mattn/go-sqlite3"
)

type SQLite struct {
	db *sql.DB
}

func NewSQLite(path string) (*SQLite, error) {
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, err
	}

	if _, err := db.Exec(Schema); err != nil {
		return nil, err
	}

	return &SQLite{db: db}, nil
}

func (j *SQLite) RecordRun(r RunRecord) error {
	_, err := j.db.Exec(`
		INSERT INTO runs
		(run_id, created, equity_usd, max_risk_per_trade_pct, max_total_concurrent_risk_pct,
		 max_positions, plan_count, sized_count, skipped_count, total_risk_usd)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		r.RunID, r.Created, r.EquityUSD, r.MaxRiskPerTradePct, r.MaxTotalConcurrentRiskPct,
		r.MaxPositions, r.PlanCount, r.SizedCount, r.SkippedCount, r.TotalRiskUSD,
	)
	return err
}

func (j *SQLite) RecordDecision(d DecisionRecord) error {
	_, err := j.db.Exec(`
		INSERT INTO decisions
		(run_id, symbol, direction, entry, stop, unit_size, risk_per_trade_usd,
		 max_loss_if_stopped, status, notes)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		d.RunID, d.Symbol, d.Direction, d.Entry, d.Stop, d.UnitSize,
		d.RiskPerTradeUSD, d.MaxLossIfStopped, d.Status, d.Notes,
	)
	return err
}

func (j *SQLite) Close() error {
	return j.db.Close()
}
