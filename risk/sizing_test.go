package risk

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/js0094q/trading-agent/config"
	"github.com/js0094q/trading-agent/plan"
)

func fp(v float64) *float64 { return &v }

func testRules() *config.RuleSet {
	return &config.RuleSet{
		Account: config.AccountConfig{ID: "TEST", Currency: "USD", EquityUSD: 100000},
		Limits: config.Limits{
			MaxRiskPerTradePct:        0.005,
			MaxDailyLossPct:           0.02,
			MaxPositions:              3,
			MaxTotalConcurrentRiskPct: 0.015,
		},
	}
}

func TestSize_BasicRiskMath(t *testing.T) {
	t.Parallel()

	// $100k equity at 0.5% risk = $500; $1 stop distance = 500 units.
	o := Size(testRules(), plan.TradePlan{
		Symbol:     "AAPL",
		Direction:  plan.Long,
		EntryPrice: fp(100),
		StopPrice:  fp(99),
	})

	assert.Equal(t, StatusSized, o.Status)
	assert.InDelta(t, 500.0, o.RiskPerTradeUSD, 1e-9)
	assert.InDelta(t, 500.0, o.UnitSize, 1e-9)
	assert.InDelta(t, 500.0, o.MaxLossIfStopped, 1e-9)
}

func TestSize_MaxUnitsClamp(t *testing.T) {
	t.Parallel()

	rules := testRules()
	rules.Overrides = map[string]config.InstrumentOverride{
		"NVDA": {MaxUnits: 1000},
	}

	// Distance 0.01 would size to 50000 units; the override caps it.
	o := Size(rules, plan.TradePlan{
		Symbol:     "NVDA",
		Direction:  plan.Long,
		EntryPrice: fp(100),
		StopPrice:  fp(99.99),
	})

	assert.Equal(t, StatusSized, o.Status)
	assert.InDelta(t, 1000.0, o.UnitSize, 1e-9)
	assert.InDelta(t, 10.0, o.MaxLossIfStopped, 1e-6)
}

func TestSize_MaxNotionalClamp(t *testing.T) {
	t.Parallel()

	rules := testRules()
	rules.Overrides = map[string]config.InstrumentOverride{
		"SPY": {MaxNotional: 10000},
	}

	// Unclamped size is 500 units = $50k notional at entry 100.
	o := Size(rules, plan.TradePlan{
		Symbol:     "SPY",
		Direction:  plan.Long,
		EntryPrice: fp(100),
		StopPrice:  fp(99),
	})

	assert.Equal(t, StatusSized, o.Status)
	assert.InDelta(t, 100.0, o.UnitSize, 1e-9)
	assert.LessOrEqual(t, o.UnitSize*o.Entry, 10000.0)
}

func TestSize_LotAlignment(t *testing.T) {
	t.Parallel()

	rules := testRules()
	rules.Overrides = map[string]config.InstrumentOverride{
		"7203": {LotSize: 100},
	}

	// Raw 454.5 units floors to 400 with a 100-share lot.
	o := Size(rules, plan.TradePlan{
		Symbol:     "7203",
		Direction:  plan.Long,
		EntryPrice: fp(50),
		StopPrice:  fp(48.9),
	})

	assert.Equal(t, StatusSized, o.Status)
	assert.InDelta(t, 400.0, o.UnitSize, 1e-9)
}

func TestSize_StopTooTight(t *testing.T) {
	t.Parallel()

	rules := testRules()
	rules.Account.EquityUSD = 1000 // $5 risk

	// $5 risk over a $10 stop distance floors to zero units.
	o := Size(rules, plan.TradePlan{
		Symbol:     "BRK.A",
		Direction:  plan.Long,
		EntryPrice: fp(600000),
		StopPrice:  fp(599990),
	})

	assert.Equal(t, StatusSkipped, o.Status)
	assert.Equal(t, ReasonStopTooTight, o.SkipReason())
	assert.Zero(t, o.UnitSize)
	assert.Zero(t, o.MaxLossIfStopped)
}

func TestSize_UnitBoundProperty(t *testing.T) {
	t.Parallel()

	// unit_size never exceeds floor(equity * pct / dist).
	tests := []struct {
		name   string
		equity float64
		pct    float64
		entry  float64
		stop   float64
	}{
		{"round numbers", 100000, 0.005, 100, 99},
		{"uneven distance", 50000, 0.01, 37.42, 36.15},
		{"tight stop", 250000, 0.0025, 12.00, 11.97},
		{"wide stop", 10000, 0.02, 500, 450},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			rules := testRules()
			rules.Account.EquityUSD = tt.equity
			rules.Limits.MaxRiskPerTradePct = tt.pct
			rules.Limits.MaxTotalConcurrentRiskPct = tt.pct

			o := Size(rules, plan.TradePlan{
				Symbol: "X", Direction: plan.Long,
				EntryPrice: fp(tt.entry), StopPrice: fp(tt.stop),
			})

			dist := tt.entry - tt.stop
			bound := tt.equity * tt.pct / dist
			assert.LessOrEqual(t, o.UnitSize, bound+1e-9)
		})
	}
}

func TestSizeAll_PreservesInputOrder(t *testing.T) {
	t.Parallel()

	var plans []plan.TradePlan
	symbols := []string{"A", "B", "C", "D", "E", "F", "G", "H"}
	for _, s := range symbols {
		plans = append(plans, plan.TradePlan{
			Symbol: s, Direction: plan.Long,
			EntryPrice: fp(100), StopPrice: fp(99),
		})
	}

	orders := SizeAll(testRules(), plans)
	require.Len(t, orders, len(symbols))
	for i, s := range symbols {
		assert.Equal(t, s, orders[i].Symbol)
	}
}

func TestFloorToLot(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		units float64
		lot   float64
		want  float64
	}{
		{"default lot", 500.7, 1, 500},
		{"zero lot defaults to one", 500.7, 0, 500},
		{"lot of ten", 457, 10, 450},
		{"below one lot", 9, 10, 0},
		{"fractional lot", 0.77, 0.25, 0.75},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.InDelta(t, tt.want, floorToLot(tt.units, tt.lot), 1e-12)
		})
	}
}
