package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/abhisek/phonix/internal/phrases"
	"github.com/abhisek/phonix/internal/proficiency"
	"github.com/abhisek/phonix/internal/queue"
	"github.com/abhisek/phonix/internal/selector"
	"github.com/abhisek/phonix/internal/session"
	"github.com/abhisek/phonix/internal/store"
)

// openStore opens the database named by the flags and config.
func openStore(cmd *cobra.Command) (*store.Store, error) {
	dbPath, err := resolveDBPath(cmd)
	if err != nil {
		return nil, fmt.Errorf("resolve DB path: %w", err)
	}
	st, err := store.Open(dbPath)
	if err != nil {
		return nil, fmt.Errorf("open store: %w", err)
	}
	return st, nil
}

// openSession opens the store and builds a learner session over it.
// Callers close the session before the store.
func openSession(cmd *cobra.Command) (*session.Session, *store.Store, error) {
	st, err := openStore(cmd)
	if err != nil {
		return nil, nil, err
	}

	var vocab proficiency.Vocabulary = proficiency.EnglishIPA
	if cfg.Vocabulary.Path != "" {
		vocab = proficiency.FileVocabulary{Path: cfg.Vocabulary.Path}
	}

	deps := session.Deps{
		Snapshots:  st.SnapshotRepo(),
		Events:     st.EventRepo(),
		Phrases:    phrases.NewSQLStore(st.DB(), cfg.Selector.RandomPicksPerCategory),
		Vocabulary: vocab,
	}
	sessCfg := session.Config{
		Queue: queue.Config{
			Watermark:   cfg.Queue.Watermark,
			HistorySize: cfg.Queue.HistorySize,
		},
		Selector: selector.Config{
			TargetPhonemes: cfg.Selector.TargetPhonemes,
			BatchSize:      cfg.Selector.BatchSize,
		},
		ScoreScale:    cfg.Ingest.ScoreScale,
		KeepSnapshots: cfg.Snapshots.Keep,
	}

	sess, err := session.Open(cmd.Context(), deps, sessCfg, logger)
	if err != nil {
		st.Close()
		return nil, nil, fmt.Errorf("open session: %w", err)
	}
	return sess, st, nil
}
