package proficiency

import (
	"time"

	"github.com/abhisek/phonix/internal/store"
)

// Snapshot exports every record, in insertion order, for persistence.
func (s *Service) Snapshot() *store.ProficiencySnapshotData {
	data := &store.ProficiencySnapshotData{
		Phonemes: make([]store.PhonemeData, 0, len(s.order)),
	}
	for _, symbol := range s.order {
		p := s.records[symbol]
		data.Phonemes = append(data.Phonemes, store.PhonemeData{
			Symbol:      p.Symbol,
			Score:       p.Score,
			Attempts:    p.Attempts,
			LastUpdated: p.LastUpdated.UTC().Format(time.RFC3339Nano),
		})
	}
	return data
}

// Restore replaces the record set with data. Duplicate symbols keep the
// first occurrence; an unparseable timestamp falls back to the current time.
func (s *Service) Restore(data *store.ProficiencySnapshotData) {
	s.reset()
	if data == nil {
		return
	}
	now := s.now()
	for _, pd := range data.Phonemes {
		if _, exists := s.records[pd.Symbol]; exists {
			continue
		}
		p := s.add(pd.Symbol, now)
		p.Score = pd.Score
		p.Attempts = pd.Attempts
		if t, err := time.Parse(time.RFC3339Nano, pd.LastUpdated); err == nil {
			p.LastUpdated = t
		}
	}
}
