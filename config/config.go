package config

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

// RuleSet is the complete, immutable rule configuration for one sizing run.
// It is loaded once per invocation and read by every stage of the engine.
type RuleSet struct {
	Account   AccountConfig                 `json:"account" yaml:"account"`
	Limits    Limits                        `json:"limits" yaml:"limits"`
	Overrides map[string]InstrumentOverride `json:"instrument_overrides,omitempty" yaml:"instrument_overrides,omitempty"`
	Journal   JournalConfig                 `json:"journal,omitempty" yaml:"journal,omitempty"`
}

// AccountConfig contains account identification and equity.
type AccountConfig struct {
	ID        string  `json:"id" yaml:"id"`
	Currency  string  `json:"currency" yaml:"currency"`
	EquityUSD float64 `json:"equity_usd" yaml:"equity_usd"`
}

// Limits are the layered risk caps applied across a batch of trade plans.
// All percentage fields are fractions, e.g. 0.005 for 0.5%.
type Limits struct {
	MaxRiskPerTradePct        float64 `json:"max_risk_per_trade_pct" yaml:"max_risk_per_trade_pct"`
	MaxDailyLossPct           float64 `json:"max_daily_loss_pct" yaml:"max_daily_loss_pct"`
	MaxPositions              int     `json:"max_positions" yaml:"max_positions"`
	MaxTotalConcurrentRiskPct float64 `json:"max_total_concurrent_risk_pct" yaml:"max_total_concurrent_risk_pct"`
}

// InstrumentOverride restricts sizing for a single symbol. The zero value
// means unrestricted apart from the global limits.
type InstrumentOverride struct {
	MaxUnits    float64 `json:"max_units,omitempty" yaml:"max_units,omitempty"`
	LotSize     float64 `json:"lot_size,omitempty" yaml:"lot_size,omitempty"`
	NoShort     bool    `json:"no_short,omitempty" yaml:"no_short,omitempty"`
	MaxNotional float64 `json:"max_notional,omitempty" yaml:"max_notional,omitempty"`
}

// JournalConfig controls the optional audit journal of sizing decisions.
type JournalConfig struct {
	Type          string `json:"type,omitempty" yaml:"type,omitempty"` // "csv", "sqlite" or "" for none
	RunsFile      string `json:"runs_file,omitempty" yaml:"runs_file,omitempty"`
	DecisionsFile string `json:"decisions_file,omitempty" yaml:"decisions_file,omitempty"`
	DBPath        string `json:"db_path,omitempty" yaml:"db_path,omitempty"`
}

// Override returns the instrument override for symbol with defaults applied.
// Symbols without an entry get the unrestricted default (lot size 1).
func (r *RuleSet) Override(symbol string) InstrumentOverride {
	ov := r.Overrides[symbol]
	if ov.LotSize <= 0 {
		ov.LotSize = 1
	}
	return ov
}

// LoadFromFile loads a rule set from a file (YAML or JSON).
func LoadFromFile(path string) (*RuleSet, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read rules file: %w", err)
	}

	rs := &RuleSet{}

	// Try YAML first, fall back to JSON
	err = yaml.Unmarshal(data, rs)
	if err != nil {
		err = json.Unmarshal(data, rs)
		if err != nil {
			return nil, fmt.Errorf("parse rules (tried YAML and JSON): %w", err)
		}
	}

	return rs, nil
}

// SaveToFile saves the rule set to a file (format picked by extension).
func (r *RuleSet) SaveToFile(path string) error {
	var data []byte
	var err error

	if strings.HasSuffix(path, ".yaml") || strings.HasSuffix(path, ".yml") {
		data, err = yaml.Marshal(r)
	} else {
		data, err = json.MarshalIndent(r, "", "  ")
	}
	if err != nil {
		return fmt.Errorf("marshal rules: %w", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("write rules file: %w", err)
	}
	return nil
}

// Validate checks the rule set and reports the first invalid field by name.
// A rule set that fails validation must abort the run before any plan is
// processed.
func (r *RuleSet) Validate() error {
	if r.Account.EquityUSD <= 0 {
		return fmt.Errorf("account.equity_usd must be positive")
	}
	if r.Limits.MaxRiskPerTradePct <= 0 || r.Limits.MaxRiskPerTradePct > 1 {
		return fmt.Errorf("limits.max_risk_per_trade_pct must be a fraction in (0, 1]")
	}
	if r.Limits.MaxDailyLossPct <= 0 || r.Limits.MaxDailyLossPct > 1 {
		return fmt.Errorf("limits.max_daily_loss_pct must be a fraction in (0, 1]")
	}
	if r.Limits.MaxPositions < 1 {
		return fmt.Errorf("limits.max_positions must be at least 1")
	}
	if r.Limits.MaxTotalConcurrentRiskPct <= 0 || r.Limits.MaxTotalConcurrentRiskPct > 1 {
		return fmt.Errorf("limits.max_total_concurrent_risk_pct must be a fraction in (0, 1]")
	}
	// The total budget cannot exceed what max_positions trades at the
	// per-trade cap could ever allocate.
	implied := float64(r.Limits.MaxPositions) * r.Limits.MaxRiskPerTradePct
	if r.Limits.MaxTotalConcurrentRiskPct > implied {
		return fmt.Errorf("limits.max_total_concurrent_risk_pct exceeds max_positions * max_risk_per_trade_pct")
	}
	for sym, ov := range r.Overrides {
		if ov.MaxUnits < 0 {
			return fmt.Errorf("instrument_overrides.%s.max_units must not be negative", sym)
		}
		if ov.LotSize < 0 {
			return fmt.Errorf("instrument_overrides.%s.lot_size must not be negative", sym)
		}
		if ov.MaxNotional < 0 {
			return fmt.Errorf("instrument_overrides.%s.max_notional must not be negative", sym)
		}
	}
	switch r.Journal.Type {
	case "", "csv", "sqlite":
	default:
		return fmt.Errorf("journal.type must be 'csv' or 'sqlite'")
	}
	if r.Journal.Type == "csv" && (r.Journal.RunsFile == "" || r.Journal.DecisionsFile == "") {
		return fmt.Errorf("journal runs_file and decisions_file required for CSV type")
	}
	if r.Journal.Type == "sqlite" && r.Journal.DBPath == "" {
		return fmt.Errorf("journal db_path required for SQLite type")
	}
	return nil
}

// Default returns a rule set with conservative defaults.
func Default() *RuleSet {
	return &RuleSet{
		Account: AccountConfig{
			ID:        "ACCT-001",
			Currency:  "USD",
			EquityUSD: 100000,
		},
		Limits: Limits{
			MaxRiskPerTradePct:        0.005,
			MaxDailyLossPct:           0.02,
			MaxPositions:              3,
			MaxTotalConcurrentRiskPct: 0.015,
		},
		Overrides: map[string]InstrumentOverride{},
	}
}
