// Package proficiency tracks per-phoneme pronunciation proficiency and
// applies the incremental update rule after each observation.
package proficiency

import (
	"math"
	"time"
)

const (
	// DefaultScore is the score assigned to a phoneme with no observations.
	DefaultScore = 0.5

	// BaseLearningRate is the blend weight applied to the first observation.
	BaseLearningRate = 0.5

	// LearningRateDecay is subtracted from the rate for every prior attempt.
	LearningRateDecay = 0.02

	// MinLearningRate keeps late observations from being ignored entirely.
	MinLearningRate = 0.1
)

// PhonemeProficiency is the proficiency record for a single phoneme symbol.
type PhonemeProficiency struct {
	Symbol      string
	Score       float64 // nominally 0.0-1.0
	Attempts    int
	LastUpdated time.Time
}

// newPhonemeProficiency returns a record at defaults.
func newPhonemeProficiency(symbol string, now time.Time) *PhonemeProficiency {
	return &PhonemeProficiency{
		Symbol:      symbol,
		Score:       DefaultScore,
		LastUpdated: now,
	}
}

// LearningRate returns the blend weight for an observation given the number
// of attempts already recorded. Early observations move the score heavily;
// from the 20th attempt on the rate stays at MinLearningRate.
func LearningRate(attempts int) float64 {
	return math.Max(MinLearningRate, BaseLearningRate-float64(attempts)*LearningRateDecay)
}

// apply folds one observation into the record.
func (p *PhonemeProficiency) apply(evalScore float64, now time.Time) {
	rate := LearningRate(p.Attempts)
	p.Score = p.Score*(1-rate) + evalScore*rate
	p.Attempts++
	p.LastUpdated = now
}
