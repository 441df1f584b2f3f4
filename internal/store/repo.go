package store

import (
	"context"
	"time"
)

// SnapshotData captures the full learner state at a point in time.
type SnapshotData struct {
	Version     int                      `json:"version"`
	Proficiency *ProficiencySnapshotData `json:"proficiency,omitempty"`
}

// CurrentSnapshotVersion is written into every new snapshot.
const CurrentSnapshotVersion = 1

// ProficiencySnapshotData is the persisted form of the proficiency store.
// Phonemes keep the store's insertion order.
type ProficiencySnapshotData struct {
	Phonemes []PhonemeData `json:"phonemes"`
}

// PhonemeData is the persisted record for a single phoneme.
type PhonemeData struct {
	Symbol      string  `json:"symbol"`
	Score       float64 `json:"score"`
	Attempts    int     `json:"attempts"`
	LastUpdated string  `json:"last_updated"` // RFC 3339 with nanoseconds
}

// Snapshot represents a point-in-time capture of learner state.
type Snapshot struct {
	ID        int
	Sequence  int64
	Timestamp time.Time
	Data      SnapshotData
}

// SnapshotRepo manages learner state snapshots.
type SnapshotRepo interface {
	// Save stores a new snapshot. A zero Sequence is filled from the
	// global sequence counter.
	Save(ctx context.Context, snap *Snapshot) error

	// Latest returns the most recent snapshot, or nil if none exist.
	Latest(ctx context.Context) (*Snapshot, error)

	// Prune deletes all but the N most recent snapshots.
	Prune(ctx context.Context, keep int) error
}

// EvaluationEventData captures one ingested evaluation batch.
type EvaluationEventData struct {
	SessionID string
	Observed  int     // phoneme observations applied to the proficiency store
	Skipped   int     // delete/insert verdicts and results without a realized phoneme
	MeanScore float64 // mean normalized score over observed phonemes
}

// EvaluationTotals aggregates every recorded evaluation batch.
type EvaluationTotals struct {
	Batches  int
	Sessions int
	Observed int
	Skipped  int
	Last     time.Time
}

// EventRepo provides append and summary access to domain events.
type EventRepo interface {
	// AppendEvaluationEvent records one ingested evaluation batch.
	AppendEvaluationEvent(ctx context.Context, data EvaluationEventData) error

	// EvaluationTotals summarizes all recorded evaluation batches.
	EvaluationTotals(ctx context.Context) (EvaluationTotals, error)
}
