package report

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/js0094q/trading-agent/config"
	"github.com/js0094q/trading-agent/plan"
	"github.com/js0094q/trading-agent/risk"
)

func fp(v float64) *float64 { return &v }

func runResult(t *testing.T, rules *config.RuleSet, plans []plan.TradePlan) risk.Result {
	t.Helper()
	res, err := risk.Run(rules, plans)
	require.NoError(t, err)
	return res
}

func testRules() *config.RuleSet {
	rs := config.Default()
	rs.Account.EquityUSD = 100000
	return rs
}

func TestOrderSheetIncludesSkipped(t *testing.T) {
	t.Parallel()

	res := runResult(t, testRules(), []plan.TradePlan{
		{Symbol: "AAPL", Direction: plan.Long, EntryPrice: fp(100), StopPrice: fp(99)},
		{Symbol: "MSFT", Direction: plan.Long}, // missing prices
	})

	data, err := OrderSheet(res)
	require.NoError(t, err)

	var decoded []map[string]any
	require.NoError(t, json.Unmarshal(data, &decoded))
	require.Len(t, decoded, 2)

	assert.Equal(t, "sized", decoded[0]["status"])
	assert.Equal(t, float64(500), decoded[0]["unit_size"])
	assert.Equal(t, "skipped", decoded[1]["status"])
	assert.Contains(t, decoded[1]["notes"], "missing_price")
}

func TestOrderSheetEmptyBatch(t *testing.T) {
	t.Parallel()

	res := runResult(t, testRules(), nil)
	data, err := OrderSheet(res)
	require.NoError(t, err)
	assert.JSONEq(t, "[]", string(data))
}

func TestChecklistContents(t *testing.T) {
	t.Parallel()

	rules := testRules()
	res := runResult(t, rules, []plan.TradePlan{
		{Symbol: "AAPL", Direction: plan.Long, EntryPrice: fp(100), StopPrice: fp(99)},
		{Symbol: "BAD", Direction: plan.Long, EntryPrice: fp(10), StopPrice: fp(10)},
	})

	out := Checklist(rules, res)

	assert.Contains(t, out, "# Risk Checklist")
	assert.Contains(t, out, "Account equity: $100000.00")
	assert.Contains(t, out, "Max risk per trade: 0.50% ($500.00)")
	assert.Contains(t, out, "Daily stop level: 2.00% ($2000.00)")
	assert.Contains(t, out, "Max open positions: 3")
	assert.Contains(t, out, "Trades sized: 1")
	assert.Contains(t, out, "Trades skipped: 1")
	assert.Contains(t, out, "- BAD: zero_stop_distance")
}

func TestChecklistNoTrades(t *testing.T) {
	t.Parallel()

	rules := testRules()
	res := runResult(t, rules, nil)

	out := Checklist(rules, res)
	assert.Contains(t, out, "No trades sized this run.")
	assert.Contains(t, out, "- None")
}

func TestWriteArtifacts(t *testing.T) {
	t.Parallel()

	rules := testRules()
	res := runResult(t, rules, []plan.TradePlan{
		{Symbol: "AAPL", Direction: plan.Long, EntryPrice: fp(100), StopPrice: fp(99)},
	})

	dir := filepath.Join(t.TempDir(), "sizing")
	require.NoError(t, Write(dir, rules, res))

	sheet, err := os.ReadFile(filepath.Join(dir, "order_sheet.json"))
	require.NoError(t, err)
	var decoded []map[string]any
	require.NoError(t, json.Unmarshal(sheet, &decoded))
	assert.Len(t, decoded, 1)

	checklist, err := os.ReadFile(filepath.Join(dir, "risk_checklist.md"))
	require.NoError(t, err)
	assert.Contains(t, string(checklist), "# Risk Checklist")
}
