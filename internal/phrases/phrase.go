// Package phrases holds the practice phrase catalogue that the selector
// draws from.
package phrases

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"
)

var (
	// ErrInvalidCategory is returned for an unknown category name.
	ErrInvalidCategory = errors.New("phrases: invalid category")

	// ErrDuplicatePhrase is returned when a phrase with the same text exists.
	ErrDuplicatePhrase = errors.New("phrases: duplicate phrase text")
)

// Category is the register a phrase belongs to.
type Category string

const (
	CategoryFormal    Category = "formal"
	CategoryInformal  Category = "informal"
	CategoryUserAdded Category = "user_added"
)

// ParseCategory parses a category name. "user-added" and "user" are
// accepted as aliases of user_added.
func ParseCategory(s string) (Category, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "formal":
		return CategoryFormal, nil
	case "informal":
		return CategoryInformal, nil
	case "user_added", "user-added", "user":
		return CategoryUserAdded, nil
	}
	return "", fmt.Errorf("%w: %q", ErrInvalidCategory, s)
}

// Phrase is one practice item. Two phrases are the same practice item when
// their Text matches.
type Phrase struct {
	ID        string
	Text      string
	Phonemes  []string // phoneme transcription
	Category  Category
	CreatedAt time.Time
}

// Contains reports whether the transcription includes phoneme.
func (p Phrase) Contains(phoneme string) bool {
	for _, ph := range p.Phonemes {
		if ph == phoneme {
			return true
		}
	}
	return false
}

// RandomPicks is a random sample of the catalogue per category.
type RandomPicks struct {
	Formal    []Phrase
	Informal  []Phrase
	UserAdded []Phrase
}

// Store is the phrase catalogue consumed by the selector.
type Store interface {
	// FindPhrasesContaining returns phrases whose transcription includes
	// every phoneme given, optionally restricted to one category.
	FindPhrasesContaining(ctx context.Context, phonemes []string, category *Category) ([]Phrase, error)

	// RandomPicks returns a random sample from each category.
	RandomPicks(ctx context.Context) (RandomPicks, error)
}

// SplitTranscription splits a whitespace-separated transcription into
// phoneme tokens.
func SplitTranscription(s string) []string {
	return strings.Fields(s)
}
