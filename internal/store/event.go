package store

import (
	"context"
	"database/sql"
	"fmt"
	"sync"
	"time"

	entsql "entgo.io/ent/dialect/sql"
)

// sequenceCounter manages the global monotonic sequence number shared by
// snapshots and events. Each lives in its own table, so per-table
// auto-increment IDs can't establish cross-table ordering. This shared
// counter assigns a single increasing sequence to every row, enabling:
//
//   - Cross-type ordering (was this batch ingested before or after the snapshot?)
//   - Snapshot consistency (events with sequence > snapshot.sequence are newer)
//   - Append-only guarantees (events are never reordered)
//
// The mutex serializes within the process; the RETURNING clause makes the
// increment atomic at the database level.
type sequenceCounter struct {
	mu sync.Mutex
	db *sql.DB
}

// newSequenceCounter creates a counter and ensures the tracking table exists.
func newSequenceCounter(db *sql.DB) (*sequenceCounter, error) {
	_, err := db.Exec(`CREATE TABLE IF NOT EXISTS global_sequence (
		id INTEGER PRIMARY KEY CHECK (id = 1),
		next_val INTEGER NOT NULL DEFAULT 1
	)`)
	if err != nil {
		return nil, fmt.Errorf("create sequence table: %w", err)
	}

	_, err = db.Exec(`INSERT OR IGNORE INTO global_sequence (id, next_val) VALUES (1, 1)`)
	if err != nil {
		return nil, fmt.Errorf("seed sequence: %w", err)
	}

	return &sequenceCounter{db: db}, nil
}

// Next atomically returns the next sequence number and increments the counter.
func (sc *sequenceCounter) Next(ctx context.Context) (int64, error) {
	sc.mu.Lock()
	defer sc.mu.Unlock()

	var seq int64
	err := sc.db.QueryRowContext(ctx,
		`UPDATE global_sequence SET next_val = next_val + 1 WHERE id = 1 RETURNING next_val - 1`,
	).Scan(&seq)
	if err != nil {
		return 0, fmt.Errorf("next sequence: %w", err)
	}
	return seq, nil
}

// eventRepo implements EventRepo over the evaluation_events table.
type eventRepo struct {
	db  *sql.DB
	seq *sequenceCounter
}

func (r *eventRepo) AppendEvaluationEvent(ctx context.Context, data EvaluationEventData) error {
	seqNum, err := r.seq.Next(ctx)
	if err != nil {
		return fmt.Errorf("next sequence: %w", err)
	}

	query, args := builder().Insert(EvaluationEventsTable.Name).
		Columns("sequence", "timestamp", "session_id", "observed", "skipped", "mean_score").
		Values(seqNum, time.Now().UTC(), data.SessionID, data.Observed, data.Skipped, data.MeanScore).
		Query()
	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("save evaluation event: %w", err)
	}
	return nil
}

func (r *eventRepo) EvaluationTotals(ctx context.Context) (EvaluationTotals, error) {
	var totals EvaluationTotals

	b := builder()
	query, args := b.Select(
		entsql.Count("*"),
		"COUNT(DISTINCT `session_id`)",
		"COALESCE(SUM(`observed`), 0)",
		"COALESCE(SUM(`skipped`), 0)",
	).From(b.Table(EvaluationEventsTable.Name)).Query()

	err := r.db.QueryRowContext(ctx, query, args...).
		Scan(&totals.Batches, &totals.Sessions, &totals.Observed, &totals.Skipped)
	if err != nil {
		return totals, fmt.Errorf("query evaluation totals: %w", err)
	}
	if totals.Batches == 0 {
		return totals, nil
	}

	query, args = b.Select("timestamp").
		From(b.Table(EvaluationEventsTable.Name)).
		OrderBy(entsql.Desc("sequence")).
		Limit(1).
		Query()
	if err := r.db.QueryRowContext(ctx, query, args...).Scan(&totals.Last); err != nil {
		return totals, fmt.Errorf("query latest evaluation: %w", err)
	}
	return totals, nil
}
