// Package ingest applies alignment verdicts to the proficiency store.
package ingest

import (
	"context"
	"math"

	"go.uber.org/zap"

	"github.com/abhisek/phonix/internal/alignment"
	"github.com/abhisek/phonix/internal/proficiency"
	"github.com/abhisek/phonix/internal/store"
)

// Updater is the write side of the proficiency store.
type Updater interface {
	Update(phoneme string, evalScore float64) proficiency.PhonemeProficiency
}

// Flusher persists the proficiency store after a batch.
type Flusher interface {
	Flush(ctx context.Context) error
}

// EventRecorder appends batch summaries to the event log.
type EventRecorder interface {
	AppendEvaluationEvent(ctx context.Context, data store.EvaluationEventData) error
}

// Config tunes an Ingester.
type Config struct {
	// ScoreScale is the upstream score for a perfect pronunciation.
	// Scores are divided by it and clamped to [0, 1]. Zero means 1.
	ScoreScale float64

	SessionID string
}

// Summary describes one ingested batch.
type Summary struct {
	Observed  int
	Skipped   int
	MeanScore float64
	Phonemes  []string // observed phonemes, in batch order
}

// Ingester feeds completed evaluations into the proficiency store.
type Ingester struct {
	updater Updater
	flusher Flusher
	events  EventRecorder
	cfg     Config
	logger  *zap.Logger
}

// New creates an Ingester. flusher and events may be nil.
func New(updater Updater, flusher Flusher, events EventRecorder, cfg Config, logger *zap.Logger) *Ingester {
	if cfg.ScoreScale <= 0 {
		cfg.ScoreScale = 1
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Ingester{
		updater: updater,
		flusher: flusher,
		events:  events,
		cfg:     cfg,
		logger:  logger,
	}
}

// Ingest applies every match and replace verdict to the store, keyed by the
// realized phoneme, then requests a single flush. Verdicts with a NaN or
// infinite score are skipped. Persistence failures are
// logged; the in-memory store stays authoritative. Each call is treated as
// an independent batch, so resubmitting the same results counts twice.
func (in *Ingester) Ingest(ctx context.Context, results []alignment.AlignedPhonemeResult) Summary {
	var sum Summary
	var total float64
	for _, r := range results {
		phoneme, ok := r.Observed()
		if !ok {
			sum.Skipped++
			continue
		}
		if math.IsNaN(r.Score) || math.IsInf(r.Score, 0) {
			in.logger.Warn("skipping non-finite score",
				zap.String("phoneme", phoneme),
				zap.Float64("score", r.Score))
			sum.Skipped++
			continue
		}
		score := in.Normalize(r.Score)
		in.updater.Update(phoneme, score)
		total += score
		sum.Observed++
		sum.Phonemes = append(sum.Phonemes, phoneme)
	}
	if sum.Observed > 0 {
		sum.MeanScore = total / float64(sum.Observed)
	}

	if in.flusher != nil {
		if err := in.flusher.Flush(ctx); err != nil {
			in.logger.Error("proficiency flush failed", zap.Error(err))
		}
	}

	if in.events != nil {
		err := in.events.AppendEvaluationEvent(ctx, store.EvaluationEventData{
			SessionID: in.cfg.SessionID,
			Observed:  sum.Observed,
			Skipped:   sum.Skipped,
			MeanScore: sum.MeanScore,
		})
		if err != nil {
			in.logger.Warn("evaluation event not recorded", zap.Error(err))
		}
	}

	in.logger.Debug("evaluation ingested",
		zap.Int("observed", sum.Observed),
		zap.Int("skipped", sum.Skipped),
		zap.Float64("mean_score", sum.MeanScore))
	return sum
}

// Normalize maps an upstream score onto the proficiency scale. NaN maps
// to 0.
func (in *Ingester) Normalize(score float64) float64 {
	v := score / in.cfg.ScoreScale
	switch {
	case math.IsNaN(v), v < 0:
		return 0
	case v > 1:
		return 1
	}
	return v
}
