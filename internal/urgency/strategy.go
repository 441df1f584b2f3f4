package urgency

import (
	"errors"
	"fmt"
	"strings"
)

// ErrUnknownStrategy is returned for a strategy name outside the known set.
var ErrUnknownStrategy = errors.New("urgency: unknown strategy")

// Strategy selects which ranking drives phrase selection.
type Strategy string

const (
	StrategyUrgency  Strategy = "urgency"  // lowest recency-adjusted score first
	StrategyAttempts Strategy = "attempts" // least practiced first
	StrategyMixed    Strategy = "mixed"    // two thirds urgency, one third attempts
)

// Strategies lists every known strategy.
func Strategies() []Strategy {
	return []Strategy{StrategyUrgency, StrategyAttempts, StrategyMixed}
}

// ParseStrategy parses a strategy name, case-insensitively.
func ParseStrategy(s string) (Strategy, error) {
	st := Strategy(strings.ToLower(strings.TrimSpace(s)))
	for _, known := range Strategies() {
		if st == known {
			return st, nil
		}
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownStrategy, s)
}
