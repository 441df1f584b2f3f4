package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	entsql "entgo.io/ent/dialect/sql"
)

// snapshotRepo implements SnapshotRepo over the snapshots table.
type snapshotRepo struct {
	db  *sql.DB
	seq *sequenceCounter
}

func (r *snapshotRepo) Save(ctx context.Context, snap *Snapshot) error {
	data, err := json.Marshal(snap.Data)
	if err != nil {
		return fmt.Errorf("marshal snapshot data: %w", err)
	}

	if snap.Sequence == 0 {
		seq, err := r.seq.Next(ctx)
		if err != nil {
			return err
		}
		snap.Sequence = seq
	}
	if snap.Timestamp.IsZero() {
		snap.Timestamp = time.Now()
	}

	query, args := builder().Insert(SnapshotsTable.Name).
		Columns("sequence", "timestamp", "data").
		Values(snap.Sequence, snap.Timestamp.UTC(), data).
		Query()
	res, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("save snapshot: %w", err)
	}
	if id, err := res.LastInsertId(); err == nil {
		snap.ID = int(id)
	}
	return nil
}

func (r *snapshotRepo) Latest(ctx context.Context) (*Snapshot, error) {
	b := builder()
	query, args := b.Select("id", "sequence", "timestamp", "data").
		From(b.Table(SnapshotsTable.Name)).
		OrderBy(entsql.Desc("timestamp"), entsql.Desc("id")).
		Limit(1).
		Query()

	var (
		s   Snapshot
		raw []byte
	)
	err := r.db.QueryRowContext(ctx, query, args...).Scan(&s.ID, &s.Sequence, &s.Timestamp, &raw)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("query latest snapshot: %w", err)
	}
	if err := json.Unmarshal(raw, &s.Data); err != nil {
		return nil, fmt.Errorf("unmarshal snapshot data: %w", err)
	}
	return &s, nil
}

func (r *snapshotRepo) Prune(ctx context.Context, keep int) error {
	b := builder()
	query, args := b.Select("id").
		From(b.Table(SnapshotsTable.Name)).
		OrderBy(entsql.Desc("timestamp"), entsql.Desc("id")).
		Query()

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("query snapshots for prune: %w", err)
	}
	var stale []any
	for i := 0; rows.Next(); i++ {
		var id int
		if err := rows.Scan(&id); err != nil {
			rows.Close()
			return fmt.Errorf("scan snapshot id: %w", err)
		}
		if i >= keep {
			stale = append(stale, id)
		}
	}
	if err := rows.Err(); err != nil {
		rows.Close()
		return fmt.Errorf("iterate snapshots: %w", err)
	}
	rows.Close()
	if len(stale) == 0 {
		return nil // fewer than keep snapshots exist
	}

	query, args = b.Delete(SnapshotsTable.Name).
		Where(entsql.In("id", stale...)).
		Query()
	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("prune snapshots: %w", err)
	}
	return nil
}
