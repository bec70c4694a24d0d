package journal

import (
	"database/sql"
	"fmt"
	"time"
)

// GetRun returns a single run summary by ID.
func (j *SQLite) GetRun(runID string) (RunRecord, error) {
	var rec RunRecord

	row := j.db.QueryRow(`
		SELECT run_id, created, equity_usd, max_risk_per_trade_pct, max_total_concurrent_risk_pct,
		       max_positions, plan_count, sized_count, skipped_count, total_risk_usd
		FROM runs
		WHERE run_id = ?`, runID)

	err := row.Scan(
		&rec.RunID,
		&rec.Created,
		&rec.EquityUSD,
		&rec.MaxRiskPerTradePct,
		&rec.MaxTotalConcurrentRiskPct,
		&rec.MaxPositions,
		&rec.PlanCount,
		&rec.SizedCount,
		&rec.SkippedCount,
		&rec.TotalRiskUSD,
	)
	if err != nil {
		if err == sql.ErrNoRows {
			return RunRecord{}, fmt.Errorf("run %q not found", runID)
		}
		return RunRecord{}, err
	}
	return rec, nil
}

// ListDecisionsByRun returns every per-plan decision for a run, in
// insertion order (which matches the plan input order).
func (j *SQLite) ListDecisionsByRun(runID string) ([]DecisionRecord, error) {
	rows, err := j.db.Query(`
		SELECT run_id, symbol, direction, entry, stop, unit_size, risk_per_trade_usd,
		       max_loss_if_stopped, status, notes
		FROM decisions
		WHERE run_id = ?
		ORDER BY rowid ASC`, runID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []DecisionRecord
	for rows.Next() {
		var rec DecisionRecord
		if err := rows.Scan(
			&rec.RunID,
			&rec.Symbol,
			&rec.Direction,
			&rec.Entry,
			&rec.Stop,
			&rec.UnitSize,
			&rec.RiskPerTradeUSD,
			&rec.MaxLossIfStopped,
			&rec.Status,
			&rec.Notes,
		); err != nil {
			return nil, err
		}
		out = append(out, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

// ListRunsBetween returns runs created within [start, end).
func (j *SQLite) ListRunsBetween(start, end time.Time) ([]RunRecord, error) {
	rows, err := j.db.Query(`
		SELECT run_id, created, equity_usd, max_risk_per_trade_pct, max_total_concurrent_risk_pct,
		       max_positions, plan_count, sized_count, skipped_count, total_risk_usd
		FROM runs
		WHERE created >= ? AND created < ?
		ORDER BY created ASC`, start, end)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []RunRecord
	for rows.Next() {
		var rec RunRecord
		if err := rows.Scan(
			&rec.RunID,
			&rec.Created,
			&rec.EquityUSD,
			&rec.MaxRiskPerTradePct,
			&rec.MaxTotalConcurrentRiskPct,
			&rec.MaxPositions,
			&rec.PlanCount,
			&rec.SizedCount,
			&rec.SkippedCount,
			&rec.TotalRiskUSD,
		); err != nil {
			return nil, err
		}
		out = append(out, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}
