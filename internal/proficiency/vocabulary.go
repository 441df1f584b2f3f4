package proficiency

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"sort"

	"github.com/abhisek/phonix/internal/store"
)

// ErrVocabularyUnavailable is returned by SeedOrLoad when the vocabulary
// source is missing or cannot be decoded. The service stays usable and empty.
var ErrVocabularyUnavailable = errors.New("proficiency: vocabulary unavailable")

// Vocabulary supplies the phoneme tokens used to seed a fresh learner.
// The identifiers are opaque and only used to order the tokens.
type Vocabulary interface {
	Tokens() (map[string]int, error)
}

// FileVocabulary reads a JSON object mapping phoneme token to identifier,
// such as the vocab.json shipped with a phoneme recognition model.
type FileVocabulary struct {
	Path string
}

// Tokens reads and decodes the vocabulary file.
func (v FileVocabulary) Tokens() (map[string]int, error) {
	if v.Path == "" {
		return nil, errors.New("no vocabulary path configured")
	}
	f, err := os.Open(v.Path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return DecodeVocabulary(f)
}

// DecodeVocabulary decodes a JSON token → identifier object.
func DecodeVocabulary(r io.Reader) (map[string]int, error) {
	var tokens map[string]int
	if err := json.NewDecoder(r).Decode(&tokens); err != nil {
		return nil, fmt.Errorf("decode vocabulary: %w", err)
	}
	return tokens, nil
}

// StaticVocabulary is an in-memory Vocabulary.
type StaticVocabulary map[string]int

// Tokens returns the static token map.
func (v StaticVocabulary) Tokens() (map[string]int, error) {
	return v, nil
}

// SeedOrLoad initializes the record set. A non-empty snapshot is loaded
// verbatim. Otherwise one default record is created per vocabulary token,
// ordered by identifier. A missing or undecodable vocabulary leaves the
// service empty and returns an error wrapping ErrVocabularyUnavailable.
func (s *Service) SeedOrLoad(snap *store.ProficiencySnapshotData, vocab Vocabulary) (Source, error) {
	if snap != nil && len(snap.Phonemes) > 0 {
		s.Restore(snap)
		return SourceSnapshot, nil
	}

	s.reset()
	if vocab == nil {
		return SourceEmpty, fmt.Errorf("%w: no source configured", ErrVocabularyUnavailable)
	}
	tokens, err := vocab.Tokens()
	if err != nil {
		return SourceEmpty, fmt.Errorf("%w: %w", ErrVocabularyUnavailable, err)
	}
	if len(tokens) == 0 {
		return SourceEmpty, fmt.Errorf("%w: vocabulary is empty", ErrVocabularyUnavailable)
	}

	type entry struct {
		token string
		id    int
	}
	entries := make([]entry, 0, len(tokens))
	for token, id := range tokens {
		entries = append(entries, entry{token: token, id: id})
	}
	sort.Slice(entries, func(i, j int) bool {
		if entries[i].id != entries[j].id {
			return entries[i].id < entries[j].id
		}
		return entries[i].token < entries[j].token
	})

	now := s.now()
	for _, e := range entries {
		s.add(e.token, now)
	}
	return SourceVocabulary, nil
}
