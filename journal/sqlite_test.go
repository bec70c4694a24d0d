package journal

import (
	"database/sql"
	"path/filepath"
	"testing"
	"time"

	_ "github.com/mattn/go-sqlite3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/js0094q/trading-agent/config"
	"github.com/js0094q/trading-agent/plan"
	"github.com/js0094q/trading-agent/risk"
)

func newTestSQLite(t *testing.T) (*SQLite, string) {
	t.Helper()

	dir := t.TempDir()
	path := filepath.Join(dir, "test.db")

	j, err := NewSQLite(path)
	assert.NoError(t, err)

	return j, path
}

func TestSQLiteSchemaCreated(t *testing.T) {
	t.Parallel()

	j, path := newTestSQLite(t)
	assert.NoError(t, j.Close())

	db, err := sql.Open("sqlite3", path)
	assert.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	rows, err := db.Query(`SELECT name FROM sqlite_master WHERE type='table' AND name IN ('runs','decisions')`)
	assert.NoError(t, err)
	defer rows.Close()

	found := map[string]bool{}
	for rows.Next() {
		var name string
		assert.NoError(t, rows.Scan(&name))
		found[name] = true
	}
	assert.NoError(t, rows.Err())

	assert.True(t, found["runs"])
	assert.True(t, found["decisions"])
}

func TestSQLiteRunRoundtrip(t *testing.T) {
	t.Parallel()

	j, _ := newTestSQLite(t)
	t.Cleanup(func() { _ = j.Close() })

	rec := RunRecord{
		RunID:                     "R1",
		Created:                   time.Date(2026, 3, 4, 9, 30, 0, 0, time.UTC),
		EquityUSD:                 100000,
		MaxRiskPerTradePct:        0.005,
		MaxTotalConcurrentRiskPct: 0.015,
		MaxPositions:              3,
		PlanCount:                 2,
		SizedCount:                1,
		SkippedCount:              1,
		TotalRiskUSD:              500,
	}
	require.NoError(t, j.RecordRun(rec))

	got, err := j.GetRun("R1")
	require.NoError(t, err)
	assert.Equal(t, rec.RunID, got.RunID)
	assert.Equal(t, rec.EquityUSD, got.EquityUSD)
	assert.Equal(t, rec.MaxPositions, got.MaxPositions)
	assert.Equal(t, rec.TotalRiskUSD, got.TotalRiskUSD)
	assert.True(t, rec.Created.Equal(got.Created))
}

func TestSQLiteGetRunNotFound(t *testing.T) {
	t.Parallel()

	j, _ := newTestSQLite(t)
	t.Cleanup(func() { _ = j.Close() })

	_, err := j.GetRun("MISSING")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "not found")
}

func TestSQLiteDecisionsKeepInputOrder(t *testing.T) {
	t.Parallel()

	j, _ := newTestSQLite(t)
	t.Cleanup(func() { _ = j.Close() })

	for _, sym := range []string{"C", "A", "B"} {
		require.NoError(t, j.RecordDecision(DecisionRecord{
			RunID: "R1", Symbol: sym, Direction: "long", Status: "sized",
		}))
	}

	decs, err := j.ListDecisionsByRun("R1")
	require.NoError(t, err)
	require.Len(t, decs, 3)
	assert.Equal(t, "C", decs[0].Symbol)
	assert.Equal(t, "A", decs[1].Symbol)
	assert.Equal(t, "B", decs[2].Symbol)
}

func TestSQLiteListRunsBetween(t *testing.T) {
	t.Parallel()

	j, _ := newTestSQLite(t)
	t.Cleanup(func() { _ = j.Close() })

	base := time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)
	for i, id := range []string{"R1", "R2", "R3"} {
		require.NoError(t, j.RecordRun(RunRecord{
			RunID: id, Created: base.AddDate(0, 0, i),
		}))
	}

	runs, err := j.ListRunsBetween(base, base.AddDate(0, 0, 2))
	require.NoError(t, err)
	require.Len(t, runs, 2)
	assert.Equal(t, "R1", runs[0].RunID)
	assert.Equal(t, "R2", runs[1].RunID)
}

func fp(v float64) *float64 { return &v }

func TestRecordResult(t *testing.T) {
	t.Parallel()

	rules := config.Default()
	res, err := risk.Run(rules, []plan.TradePlan{
		{Symbol: "AAPL", Direction: plan.Long, EntryPrice: fp(100), StopPrice: fp(99)},
		{Symbol: "MSFT", Direction: plan.Long},
	})
	require.NoError(t, err)

	j, _ := newTestSQLite(t)
	t.Cleanup(func() { _ = j.Close() })

	runID, err := RecordResult(j, rules, res)
	require.NoError(t, err)
	require.NotEmpty(t, runID)

	run, err := j.GetRun(runID)
	require.NoError(t, err)
	assert.Equal(t, 2, run.PlanCount)
	assert.Equal(t, 1, run.SizedCount)
	assert.Equal(t, 1, run.SkippedCount)

	decs, err := j.ListDecisionsByRun(runID)
	require.NoError(t, err)
	require.Len(t, decs, 2)
	assert.Equal(t, "AAPL", decs[0].Symbol)
	assert.Equal(t, "sized", decs[0].Status)
	assert.Equal(t, "skipped", decs[1].Status)
	assert.Equal(t, "missing_price", decs[1].Notes)
}

func TestOpenFromConfig(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()

	none, err := Open(config.JournalConfig{})
	require.NoError(t, err)
	assert.Nil(t, none)

	sq, err := Open(config.JournalConfig{Type: "sqlite", DBPath: filepath.Join(dir, "j.db")})
	require.NoError(t, err)
	require.NotNil(t, sq)
	assert.NoError(t, sq.Close())

	cs, err := Open(config.JournalConfig{
		Type:          "csv",
		RunsFile:      filepath.Join(dir, "runs.csv"),
		DecisionsFile: filepath.Join(dir, "decisions.csv"),
	})
	require.NoError(t, err)
	require.NotNil(t, cs)
	assert.NoError(t, cs.Close())
}
