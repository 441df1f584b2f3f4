// Package selector turns ranked phonemes into queued practice phrases.
package selector

import (
	"context"
	"fmt"
	"math/rand/v2"
	"time"

	"go.uber.org/zap"

	"github.com/abhisek/phonix/internal/phrases"
	"github.com/abhisek/phonix/internal/urgency"
)

const (
	// DefaultTargetPhonemes is how many ranked phonemes are searched per fill.
	DefaultTargetPhonemes = 6

	// DefaultBatchSize caps how many matched phrases one fill enqueues.
	DefaultBatchSize = 5
)

// Ranker resolves target phonemes for a strategy.
type Ranker interface {
	Targets(strategy urgency.Strategy, limit int) ([]string, error)
}

// Target is the queue the selector fills.
type Target interface {
	Contains(text string) bool
	Enqueue(ps ...phrases.Phrase)
}

// Config tunes a Selector. Zero values use the defaults.
type Config struct {
	TargetPhonemes int
	BatchSize      int
}

// Selector queries the phrase store for the most pressing phonemes and
// enqueues a shuffled batch, falling back to random picks when nothing
// matches.
type Selector struct {
	ranker Ranker
	store  phrases.Store
	target Target
	rng    *rand.Rand
	cfg    Config
	logger *zap.Logger
}

// New creates a selector. A nil rng is seeded from the clock.
func New(ranker Ranker, store phrases.Store, target Target, rng *rand.Rand, cfg Config, logger *zap.Logger) *Selector {
	if cfg.TargetPhonemes <= 0 {
		cfg.TargetPhonemes = DefaultTargetPhonemes
	}
	if cfg.BatchSize <= 0 {
		cfg.BatchSize = DefaultBatchSize
	}
	if rng == nil {
		seed := uint64(time.Now().UnixNano())
		rng = rand.New(rand.NewPCG(seed, seed>>1))
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Selector{
		ranker: ranker,
		store:  store,
		target: target,
		rng:    rng,
		cfg:    cfg,
		logger: logger,
	}
}

// Populate enqueues practice material for strategy and returns how many
// phrases were added.
func (s *Selector) Populate(ctx context.Context, strategy urgency.Strategy) (int, error) {
	targets, err := s.ranker.Targets(strategy, s.cfg.TargetPhonemes)
	if err != nil {
		return 0, err
	}

	candidates, err := s.candidates(ctx, targets)
	if err != nil {
		return 0, err
	}

	fresh := candidates[:0]
	for _, p := range candidates {
		if !s.target.Contains(p.Text) {
			fresh = append(fresh, p)
		}
	}

	if len(fresh) == 0 {
		return s.fallback(ctx, strategy, targets)
	}

	s.shuffle(fresh)
	if len(fresh) > s.cfg.BatchSize {
		fresh = fresh[:s.cfg.BatchSize]
	}
	s.target.Enqueue(fresh...)

	s.logger.Debug("queue populated",
		zap.String("strategy", string(strategy)),
		zap.Strings("targets", targets),
		zap.Int("candidates", len(candidates)),
		zap.Int("enqueued", len(fresh)))
	return len(fresh), nil
}

// candidates gathers phrases for each target phoneme, deduplicated by ID
// in first-seen order.
func (s *Selector) candidates(ctx context.Context, targets []string) ([]phrases.Phrase, error) {
	seen := make(map[string]bool)
	var out []phrases.Phrase
	for _, ph := range targets {
		found, err := s.store.FindPhrasesContaining(ctx, []string{ph}, nil)
		if err != nil {
			return nil, fmt.Errorf("find phrases for %q: %w", ph, err)
		}
		for _, p := range found {
			if seen[p.ID] {
				continue
			}
			seen[p.ID] = true
			out = append(out, p)
		}
	}
	return out, nil
}

// fallback enqueues the formal and informal random picks, shuffled.
func (s *Selector) fallback(ctx context.Context, strategy urgency.Strategy, targets []string) (int, error) {
	picks, err := s.store.RandomPicks(ctx)
	if err != nil {
		return 0, fmt.Errorf("random picks: %w", err)
	}

	batch := make([]phrases.Phrase, 0, len(picks.Formal)+len(picks.Informal))
	batch = append(batch, picks.Formal...)
	batch = append(batch, picks.Informal...)
	s.shuffle(batch)
	s.target.Enqueue(batch...)

	s.logger.Info("no matching phrases, using random picks",
		zap.String("strategy", string(strategy)),
		zap.Strings("targets", targets),
		zap.Int("enqueued", len(batch)))
	return len(batch), nil
}

func (s *Selector) shuffle(ps []phrases.Phrase) {
	s.rng.Shuffle(len(ps), func(i, j int) {
		ps[i], ps[j] = ps[j], ps[i]
	})
}
