// Package session wires the scheduling core together for one learner
// session. A Session is constructed once per launch and owns every piece
// of mutable state; nothing is shared across sessions.
package session

import (
	"context"
	"errors"
	"fmt"
	"math/rand/v2"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/abhisek/phonix/internal/alignment"
	"github.com/abhisek/phonix/internal/ingest"
	"github.com/abhisek/phonix/internal/phrases"
	"github.com/abhisek/phonix/internal/proficiency"
	"github.com/abhisek/phonix/internal/queue"
	"github.com/abhisek/phonix/internal/selector"
	"github.com/abhisek/phonix/internal/store"
	"github.com/abhisek/phonix/internal/urgency"
)

// RefillStrategy is used when the queue runs low.
const RefillStrategy = urgency.StrategyAttempts

// Config sizes the components of a Session. Zero values use each
// component's defaults.
type Config struct {
	Queue         queue.Config
	Selector      selector.Config
	ScoreScale    float64
	KeepSnapshots int
}

// Deps are the collaborators a Session is built from. Snapshots, Events
// and Vocabulary may be nil; Phrases is required.
type Deps struct {
	Snapshots  store.SnapshotRepo
	Events     store.EventRepo
	Phrases    phrases.Store
	Vocabulary proficiency.Vocabulary
	Rand       *rand.Rand
	Now        func() time.Time
}

// Session is one learner's practice session.
type Session struct {
	id       string
	source   proficiency.Source
	records  *proficiency.Service
	ranker   *urgency.Ranker
	queue    *queue.Queue
	selector *selector.Selector
	ingester *ingest.Ingester
	flusher  *Flusher
	logger   *zap.Logger
}

// Open builds a session, restoring proficiency from the latest snapshot or
// seeding it from the vocabulary. Persistence and vocabulary failures are
// logged and the session starts with whatever state could be recovered.
func Open(ctx context.Context, deps Deps, cfg Config, logger *zap.Logger) (*Session, error) {
	if deps.Phrases == nil {
		return nil, errors.New("session: phrase store is required")
	}
	if logger == nil {
		logger = zap.NewNop()
	}

	id := uuid.New().String()
	logger = logger.With(zap.String("session_id", id))

	records := proficiency.NewService(deps.Now)

	var snapData *store.ProficiencySnapshotData
	if deps.Snapshots != nil {
		snap, err := deps.Snapshots.Latest(ctx)
		switch {
		case err != nil:
			logger.Warn("latest snapshot unavailable", zap.Error(err))
		case snap != nil:
			snapData = snap.Data.Proficiency
		}
	}

	source, err := records.SeedOrLoad(snapData, deps.Vocabulary)
	if err != nil {
		logger.Warn("starting with empty proficiency set", zap.Error(err))
	}
	logger.Info("proficiency loaded",
		zap.String("source", string(source)),
		zap.Int("phonemes", records.Len()))

	s := &Session{
		id:      id,
		source:  source,
		records: records,
		ranker:  urgency.NewRanker(records),
		queue:   queue.New(cfg.Queue, logger.Named("queue")),
		logger:  logger,
	}
	s.selector = selector.New(s.ranker, deps.Phrases, s.queue, deps.Rand, cfg.Selector, logger.Named("selector"))
	s.queue.SetRefill(func(ctx context.Context) error {
		_, err := s.AddToQueue(ctx, RefillStrategy)
		return err
	})

	var flusher ingest.Flusher
	if deps.Snapshots != nil {
		s.flusher = NewFlusher(deps.Snapshots, records.Snapshot, records.Now, cfg.KeepSnapshots, logger.Named("flusher"))
		flusher = s.flusher
	}
	var events ingest.EventRecorder
	if deps.Events != nil {
		events = deps.Events
	}
	s.ingester = ingest.New(records, flusher, events, ingest.Config{
		ScoreScale: cfg.ScoreScale,
		SessionID:  id,
	}, logger.Named("ingest"))

	return s, nil
}

// ID returns the session's unique identifier.
func (s *Session) ID() string { return s.id }

// Source reports where the proficiency records came from.
func (s *Session) Source() proficiency.Source { return s.source }

// Proficiency returns the session's proficiency store.
func (s *Session) Proficiency() *proficiency.Service { return s.records }

// Ranker returns the urgency ranker over the session's records.
func (s *Session) Ranker() *urgency.Ranker { return s.ranker }

// Queue returns the session's practice queue.
func (s *Session) Queue() *queue.Queue { return s.queue }

// IngestEvaluation applies one completed evaluation. Failures are logged,
// never returned.
func (s *Session) IngestEvaluation(ctx context.Context, results []alignment.AlignedPhonemeResult) ingest.Summary {
	return s.ingester.Ingest(ctx, results)
}

// NextPracticeItem returns the next phrase to practice. An empty queue is
// refilled first; queue.ErrEmptyQueue is returned only when the refill
// yields nothing, joined with the refill error if there was one.
func (s *Session) NextPracticeItem(ctx context.Context) (phrases.Phrase, error) {
	var refillErr error
	if s.queue.Len() == 0 {
		if _, refillErr = s.AddToQueue(ctx, RefillStrategy); refillErr != nil {
			s.logger.Warn("queue refill failed", zap.Error(refillErr))
		}
	}
	p, err := s.queue.Next(ctx)
	if err != nil && refillErr != nil {
		return p, errors.Join(err, refillErr)
	}
	return p, err
}

// AddToQueue populates the queue for strategy and returns how many
// phrases were added.
func (s *Session) AddToQueue(ctx context.Context, strategy urgency.Strategy) (int, error) {
	n, err := s.selector.Populate(ctx, strategy)
	if err != nil {
		return 0, fmt.Errorf("populate queue (%s): %w", strategy, err)
	}
	return n, nil
}

// Close flushes any pending snapshot and releases background resources.
func (s *Session) Close() error {
	if s.flusher == nil {
		return nil
	}
	return s.flusher.Close()
}
