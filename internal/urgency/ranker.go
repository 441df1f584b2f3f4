// Package urgency ranks phonemes by how badly they need practice.
package urgency

import (
	"fmt"
	"sort"
	"time"

	"github.com/abhisek/phonix/internal/proficiency"
)

// RecencyPenaltyPerDay is subtracted from a phoneme's score for every whole
// day since it was last practiced, so neglected sounds resurface before
// they visibly regress.
const RecencyPenaltyPerDay = 0.05

// Records is the read side of the proficiency service.
type Records interface {
	All() []proficiency.PhonemeProficiency
	Now() time.Time
}

// Ranker computes read-only rankings over a proficiency record set.
type Ranker struct {
	records Records
}

// NewRanker creates a ranker over records.
func NewRanker(records Records) *Ranker {
	return &Ranker{records: records}
}

// DaysSince returns the number of whole days between last and now.
// Timestamps in the future count as zero days.
func DaysSince(last, now time.Time) int {
	if !now.After(last) {
		return 0
	}
	return int(now.Sub(last).Hours() / 24.0)
}

// AdjustedScore is the score minus the recency penalty.
func AdjustedScore(p proficiency.PhonemeProficiency, now time.Time) float64 {
	return p.Score - RecencyPenaltyPerDay*float64(DaysSince(p.LastUpdated, now))
}

// MostUrgent returns up to limit symbols ordered by ascending adjusted
// score. Ties keep store order.
func (r *Ranker) MostUrgent(limit int) []string {
	if limit <= 0 {
		return nil
	}
	now := r.records.Now()
	all := r.records.All()

	type scored struct {
		symbol   string
		adjusted float64
	}
	ranked := make([]scored, len(all))
	for i, p := range all {
		ranked[i] = scored{symbol: p.Symbol, adjusted: AdjustedScore(p, now)}
	}
	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].adjusted < ranked[j].adjusted
	})

	n := min(limit, len(ranked))
	symbols := make([]string, n)
	for i := range n {
		symbols[i] = ranked[i].symbol
	}
	return symbols
}

// LeastAttempted returns up to limit symbols ordered by ascending attempt
// count. Ties keep store order.
func (r *Ranker) LeastAttempted(limit int) []string {
	if limit <= 0 {
		return nil
	}
	all := r.records.All()
	sort.SliceStable(all, func(i, j int) bool {
		return all[i].Attempts < all[j].Attempts
	})
	return symbols(all, limit)
}

// MixedUrgency gives a third of the slots (rounded down) to the least
// attempted phonemes and the rest to the most urgent, urgent ones first.
// The two lists are not deduplicated, so a phoneme may appear twice.
func (r *Ranker) MixedUrgency(limit int) []string {
	if limit <= 0 {
		return nil
	}
	attemptsShare := limit / 3
	scoreShare := limit - attemptsShare

	result := r.MostUrgent(scoreShare)
	return append(result, r.LeastAttempted(attemptsShare)...)
}

// RawTopByAttempts returns up to limit full records, most attempted first.
func (r *Ranker) RawTopByAttempts(limit int) []proficiency.PhonemeProficiency {
	all := r.records.All()
	sort.SliceStable(all, func(i, j int) bool {
		return all[i].Attempts > all[j].Attempts
	})
	return truncate(all, limit)
}

// RawTopByScore returns up to limit full records, highest score first.
func (r *Ranker) RawTopByScore(limit int) []proficiency.PhonemeProficiency {
	all := r.records.All()
	sort.SliceStable(all, func(i, j int) bool {
		return all[i].Score > all[j].Score
	})
	return truncate(all, limit)
}

// Targets resolves the phonemes to practice for a strategy.
func (r *Ranker) Targets(strategy Strategy, limit int) ([]string, error) {
	switch strategy {
	case StrategyUrgency:
		return r.MostUrgent(limit), nil
	case StrategyAttempts:
		return r.LeastAttempted(limit), nil
	case StrategyMixed:
		return r.MixedUrgency(limit), nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownStrategy, strategy)
	}
}

func symbols(records []proficiency.PhonemeProficiency, limit int) []string {
	records = truncate(records, limit)
	result := make([]string, len(records))
	for i, p := range records {
		result[i] = p.Symbol
	}
	return result
}

func truncate(records []proficiency.PhonemeProficiency, limit int) []proficiency.PhonemeProficiency {
	if limit <= 0 {
		return nil
	}
	if len(records) > limit {
		return records[:limit]
	}
	return records
}
