// Package quotes backfills missing entry prices from a local quote
// snapshot before the engine runs. Best-effort: plans it cannot fill are
// left untouched for the validator to reject.
package quotes

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/js0094q/trading-agent/plan"
)

// Quote is one symbol's snapshot. Zero fields mean "unknown".
type Quote struct {
	Bid  float64 `json:"bid,omitempty"`
	Ask  float64 `json:"ask,omitempty"`
	Last float64 `json:"last,omitempty"`
}

// Snapshot maps symbols to their most recent quote.
type Snapshot map[string]Quote

// LoadSnapshot reads a snapshot file: a JSON object keyed by symbol.
func LoadSnapshot(path string) (Snapshot, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read quote snapshot: %w", err)
	}

	var snap Snapshot
	if err := json.Unmarshal(data, &snap); err != nil {
		return nil, fmt.Errorf("parse quote snapshot: %w", err)
	}
	return snap, nil
}

// entrySide picks the price a market entry would fill at: ask for longs,
// bid for shorts, falling back to last when the book side is missing.
func (q Quote) entrySide(d plan.Direction) float64 {
	switch d {
	case plan.Long:
		if q.Ask > 0 {
			return q.Ask
		}
	case plan.Short:
		if q.Bid > 0 {
			return q.Bid
		}
	}
	return q.Last
}

// Backfill fills missing entry prices in place and returns how many plans
// were enriched. Stops are never invented: a stop is a decision, not a
// quote. Plans still missing prices afterwards get rejected downstream.
func Backfill(snap Snapshot, plans []plan.TradePlan) int {
	filled := 0
	for i := range plans {
		p := &plans[i]
		if p.EntryPrice != nil {
			continue
		}
		q, ok := snap[p.Symbol]
		if !ok {
			continue
		}
		if px := q.entrySide(p.Direction); px > 0 {
			p.EntryPrice = &px
			filled++
		}
	}
	return filled
}
