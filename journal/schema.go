package journal

const Schema = `
CREATE TABLE IF NOT EXISTS runs (
	run_id TEXT PRIMARY KEY,
	created DATETIME NOT NULL,
	equity_usd REAL NOT NULL,
	max_risk_per_trade_pct REAL NOT NULL,
	max_total_concurrent_risk_pct REAL NOT NULL,
	max_positions INTEGER NOT NULL,
	plan_count INTEGER NOT NULL,
	sized_count INTEGER NOT NULL,
	skipped_count INTEGER NOT NULL,
	total_risk_usd REAL NOT NULL
);

CREATE TABLE IF NOT EXISTS decisions (
	run_id TEXT NOT NULL,
	symbol TEXT NOT NULL,
	direction TEXT NOT NULL,
	entry REAL NOT NULL,
	stop REAL NOT NULL,
	unit_size REAL NOT NULL,
	risk_per_trade_usd REAL NOT NULL,
	max_loss_if_stopped REAL NOT NULL,
	status TEXT NOT NULL,
	notes TEXT NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_decisions_run ON decisions(run_id);
`
