// Package queue holds the phrases scheduled for practice.
package queue

import (
	"context"
	"errors"

	"go.uber.org/zap"

	"github.com/abhisek/phonix/internal/phrases"
)

const (
	// DefaultWatermark is the remaining length at or below which Next
	// triggers a refill.
	DefaultWatermark = 2

	// DefaultHistorySize bounds the set of recently practiced phrase texts.
	DefaultHistorySize = 50
)

// ErrEmptyQueue is returned by Next when there is nothing to practice.
var ErrEmptyQueue = errors.New("queue: no practice material queued")

// RefillFunc requests more material; it is expected to call Enqueue.
type RefillFunc func(ctx context.Context) error

// Config sizes a Queue. Zero values use the defaults.
type Config struct {
	Watermark   int
	HistorySize int
}

// Queue is a FIFO of practice phrases with a low-watermark refill and a
// bounded history of recently practiced texts.
type Queue struct {
	items     []phrases.Phrase
	recent    *history
	watermark int
	refill    RefillFunc
	logger    *zap.Logger
}

// New creates an empty queue. A nil logger discards log output.
func New(cfg Config, logger *zap.Logger) *Queue {
	if cfg.Watermark <= 0 {
		cfg.Watermark = DefaultWatermark
	}
	if cfg.HistorySize <= 0 {
		cfg.HistorySize = DefaultHistorySize
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Queue{
		recent:    newHistory(cfg.HistorySize),
		watermark: cfg.Watermark,
		logger:    logger,
	}
}

// SetRefill installs the hook Next calls at the watermark.
func (q *Queue) SetRefill(fn RefillFunc) {
	q.refill = fn
}

// Enqueue appends phrases to the tail in the order given.
func (q *Queue) Enqueue(ps ...phrases.Phrase) {
	q.items = append(q.items, ps...)
}

// Next pops the head of the queue. When the remaining length is at or
// below the watermark the refill hook runs once before Next returns. The
// popped text is recorded in the recent history. Next on an empty queue
// returns ErrEmptyQueue.
func (q *Queue) Next(ctx context.Context) (phrases.Phrase, error) {
	if len(q.items) == 0 {
		return phrases.Phrase{}, ErrEmptyQueue
	}

	head := q.items[0]
	q.items[0] = phrases.Phrase{}
	q.items = q.items[1:]

	if len(q.items) <= q.watermark && q.refill != nil {
		if err := q.refill(ctx); err != nil {
			q.logger.Warn("queue refill failed",
				zap.Int("remaining", len(q.items)),
				zap.Error(err))
		}
	}

	q.recent.add(head.Text)
	return head, nil
}

// Contains reports whether a phrase with text is queued.
func (q *Queue) Contains(text string) bool {
	for _, p := range q.items {
		if p.Text == text {
			return true
		}
	}
	return false
}

// Len returns the number of queued phrases.
func (q *Queue) Len() int {
	return len(q.items)
}

// Items returns a copy of the queued phrases, head first.
func (q *Queue) Items() []phrases.Phrase {
	out := make([]phrases.Phrase, len(q.items))
	copy(out, q.items)
	return out
}

// Recent returns the recently practiced texts, oldest first.
// Selection does not consult this history.
func (q *Queue) Recent() []string {
	return q.recent.list()
}

// WasRecent reports whether text is in the recent history.
func (q *Queue) WasRecent(text string) bool {
	return q.recent.has(text)
}
