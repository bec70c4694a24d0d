// Package plan defines the trade plan records handed to the sizing engine
// and loads them from the upstream signal file.
package plan

import (
	"encoding/json"
	"fmt"
	"os"
)

type Direction string

const (
	Long  Direction = "long"
	Short Direction = "short"
)

// Valid reports whether d is one of the two tradable directions.
func (d Direction) Valid() bool {
	return d == Long || d == Short
}

// TradePlan is one candidate trade as produced upstream. Entry and stop are
// pointers: an absent price stays nil so the validator can tell "missing"
// apart from zero.
type TradePlan struct {
	Symbol           string    `json:"symbol"`
	Direction        Direction `json:"direction"`
	EntryPrice       *float64  `json:"entry_price,omitempty"`
	StopPrice        *float64  `json:"stop_price,omitempty"`
	CorrelationGroup string    `json:"correlation_group,omitempty"`
}

// HasPrices reports whether both entry and stop are present.
func (p TradePlan) HasPrices() bool {
	return p.EntryPrice != nil && p.StopPrice != nil
}

// StopDistance returns |entry - stop|. Call only when HasPrices is true.
func (p TradePlan) StopDistance() float64 {
	d := *p.EntryPrice - *p.StopPrice
	if d < 0 {
		return -d
	}
	return d
}

// LoadFile reads a JSON array of trade plans. A missing or empty file is an
// error: the run halts rather than guessing.
func LoadFile(path string) ([]TradePlan, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read trade plans: %w", err)
	}
	if len(data) == 0 {
		return nil, fmt.Errorf("trade plans file %s is empty", path)
	}

	var plans []TradePlan
	if err := json.Unmarshal(data, &plans); err != nil {
		return nil, fmt.Errorf("parse trade plans (must be a JSON list): %w", err)
	}
	return plans, nil
}
