package risk

import (
	"github.com/js0094q/trading-agent/config"
	"github.com/js0094q/trading-agent/plan"
)

// Validate checks one trade plan against the rule set. Checks run in a
// fixed order and the first failure wins. No side effects: a rejected plan
// is recorded as skipped by the caller and never reaches sizing.
func Validate(rules *config.RuleSet, p plan.TradePlan) (Reason, bool) {
	if !p.HasPrices() {
		return ReasonMissingPrice, false
	}
	if p.StopDistance() == 0 {
		return ReasonZeroStopDistance, false
	}
	if !p.Direction.Valid() {
		return ReasonInvalidDirection, false
	}
	if p.Direction == plan.Short && rules.Override(p.Symbol).NoShort {
		return ReasonShortNotAllowed, false
	}
	return "", true
}
