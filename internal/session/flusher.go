package session

import (
	"context"
	"errors"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/abhisek/phonix/internal/store"
)

// DefaultKeepSnapshots is how many snapshots survive each prune.
const DefaultKeepSnapshots = 5

// ErrFlusherClosed is returned by Flush after Close.
var ErrFlusherClosed = errors.New("session: flusher closed")

// SnapshotFunc captures the current proficiency records.
type SnapshotFunc func() *store.ProficiencySnapshotData

// Flusher writes proficiency snapshots on a background goroutine. Flush
// captures the state synchronously, so a write never observes a store
// between an update and the flush that follows it. Requests that arrive
// while a write is in flight are coalesced into the newest one.
type Flusher struct {
	repo     store.SnapshotRepo
	snapshot SnapshotFunc
	now      func() time.Time
	keep     int
	logger   *zap.Logger

	mu      sync.Mutex
	pending *store.Snapshot
	closed  bool
	writes  int
	fails   int

	wake chan struct{}
	stop chan struct{}
	done chan struct{}
}

// NewFlusher starts a flusher writing to repo. Callers must Close it.
func NewFlusher(repo store.SnapshotRepo, snapshot SnapshotFunc, now func() time.Time, keep int, logger *zap.Logger) *Flusher {
	if now == nil {
		now = time.Now
	}
	if keep <= 0 {
		keep = DefaultKeepSnapshots
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	f := &Flusher{
		repo:     repo,
		snapshot: snapshot,
		now:      now,
		keep:     keep,
		logger:   logger,
		wake:     make(chan struct{}, 1),
		stop:     make(chan struct{}),
		done:     make(chan struct{}),
	}
	go f.run()
	return f
}

// Flush captures a snapshot and schedules it for writing.
func (f *Flusher) Flush(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	snap := &store.Snapshot{
		Timestamp: f.now(),
		Data: store.SnapshotData{
			Version:     store.CurrentSnapshotVersion,
			Proficiency: f.snapshot(),
		},
	}

	f.mu.Lock()
	if f.closed {
		f.mu.Unlock()
		return ErrFlusherClosed
	}
	f.pending = snap
	f.mu.Unlock()

	select {
	case f.wake <- struct{}{}:
	default:
	}
	return nil
}

// Close writes any pending snapshot and stops the background goroutine.
// It is safe to call more than once.
func (f *Flusher) Close() error {
	f.mu.Lock()
	if f.closed {
		f.mu.Unlock()
		<-f.done
		return nil
	}
	f.closed = true
	f.mu.Unlock()

	close(f.stop)
	<-f.done
	return nil
}

// Stats returns the number of completed and failed writes.
func (f *Flusher) Stats() (writes, failures int) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.writes, f.fails
}

func (f *Flusher) run() {
	defer close(f.done)
	for {
		select {
		case <-f.wake:
			f.writePending()
		case <-f.stop:
			f.writePending()
			return
		}
	}
}

func (f *Flusher) writePending() {
	f.mu.Lock()
	snap := f.pending
	f.pending = nil
	f.mu.Unlock()
	if snap == nil {
		return
	}

	ctx := context.Background()
	err := f.repo.Save(ctx, snap)
	if err == nil {
		err = f.repo.Prune(ctx, f.keep)
	}

	f.mu.Lock()
	if err != nil {
		f.fails++
	} else {
		f.writes++
	}
	f.mu.Unlock()

	if err != nil {
		f.logger.Error("snapshot write failed", zap.Error(err))
		return
	}
	f.logger.Debug("snapshot written",
		zap.Int64("sequence", snap.Sequence),
		zap.Int("phonemes", phonemeCount(snap.Data.Proficiency)))
}

func phonemeCount(p *store.ProficiencySnapshotData) int {
	if p == nil {
		return 0
	}
	return len(p.Phonemes)
}
