package phrases

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
)

// DefaultPicksPerCategory is the RandomPicks sample size per category.
const DefaultPicksPerCategory = 3

// SQLStore implements Store over the phrases table.
type SQLStore struct {
	db               *sqlx.DB
	picksPerCategory int
	now              func() time.Time
}

// NewSQLStore wraps an open database whose schema includes the phrases
// table. picksPerCategory <= 0 uses DefaultPicksPerCategory.
func NewSQLStore(db *sql.DB, picksPerCategory int) *SQLStore {
	if picksPerCategory <= 0 {
		picksPerCategory = DefaultPicksPerCategory
	}
	return &SQLStore{
		// The driver is registered as "sqlite"; sqlx only uses the name
		// to pick the "?" bind style.
		db:               sqlx.NewDb(db, "sqlite3"),
		picksPerCategory: picksPerCategory,
		now:              time.Now,
	}
}

type phraseRow struct {
	ID        string    `db:"id"`
	Text      string    `db:"text"`
	Phonemes  string    `db:"phonemes"`
	Category  string    `db:"category"`
	CreatedAt time.Time `db:"created_at"`
}

func (r phraseRow) toPhrase() Phrase {
	return Phrase{
		ID:        r.ID,
		Text:      r.Text,
		Phonemes:  SplitTranscription(r.Phonemes),
		Category:  Category(r.Category),
		CreatedAt: r.CreatedAt,
	}
}

const selectColumns = `SELECT id, text, phonemes, category, created_at FROM phrases`

// Add inserts a phrase. A phrase whose text already exists is rejected
// with ErrDuplicatePhrase.
func (s *SQLStore) Add(ctx context.Context, text string, phonemes []string, category Category) (Phrase, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return Phrase{}, fmt.Errorf("add phrase: empty text")
	}
	category, err := ParseCategory(string(category))
	if err != nil {
		return Phrase{}, err
	}

	p := Phrase{
		ID:        uuid.NewString(),
		Text:      text,
		Phonemes:  phonemes,
		Category:  category,
		CreatedAt: s.now().UTC(),
	}
	res, err := s.db.ExecContext(ctx,
		`INSERT INTO phrases (id, text, phonemes, category, created_at)
		 VALUES (?, ?, ?, ?, ?)
		 ON CONFLICT(text) DO NOTHING`,
		p.ID, p.Text, strings.Join(p.Phonemes, " "), string(p.Category), p.CreatedAt,
	)
	if err != nil {
		return Phrase{}, fmt.Errorf("insert phrase: %w", err)
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return Phrase{}, fmt.Errorf("%w: %q", ErrDuplicatePhrase, text)
	}
	return p, nil
}

// FindPhrasesContaining implements Store. Phonemes match whole tokens of
// the stored transcription, case-sensitively, so "t" matches neither "tʃ"
// nor "T".
func (s *SQLStore) FindPhrasesContaining(ctx context.Context, phonemes []string, category *Category) ([]Phrase, error) {
	if len(phonemes) == 0 {
		return nil, nil
	}

	var (
		where []string
		args  []any
	)
	for _, ph := range phonemes {
		where = append(where, `instr(' ' || phonemes || ' ', ?) > 0`)
		args = append(args, " "+ph+" ")
	}
	if category != nil {
		where = append(where, `category = ?`)
		args = append(args, string(*category))
	}
	query := selectColumns + ` WHERE ` + strings.Join(where, " AND ") + ` ORDER BY created_at, id`

	var rows []phraseRow
	if err := s.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("find phrases containing %v: %w", phonemes, err)
	}
	return toPhrases(rows), nil
}

// RandomPicks implements Store.
func (s *SQLStore) RandomPicks(ctx context.Context) (RandomPicks, error) {
	var picks RandomPicks
	for _, c := range []struct {
		category Category
		dst      *[]Phrase
	}{
		{CategoryFormal, &picks.Formal},
		{CategoryInformal, &picks.Informal},
		{CategoryUserAdded, &picks.UserAdded},
	} {
		var rows []phraseRow
		err := s.db.SelectContext(ctx, &rows,
			selectColumns+` WHERE category = ? ORDER BY RANDOM() LIMIT ?`,
			string(c.category), s.picksPerCategory,
		)
		if err != nil {
			return RandomPicks{}, fmt.Errorf("random %s phrases: %w", c.category, err)
		}
		*c.dst = toPhrases(rows)
	}
	return picks, nil
}

// Count returns the number of phrases per category.
func (s *SQLStore) Count(ctx context.Context) (map[Category]int, error) {
	var rows []struct {
		Category string `db:"category"`
		N        int    `db:"n"`
	}
	err := s.db.SelectContext(ctx, &rows, `SELECT category, COUNT(*) AS n FROM phrases GROUP BY category`)
	if err != nil {
		return nil, fmt.Errorf("count phrases: %w", err)
	}
	counts := make(map[Category]int, len(rows))
	for _, r := range rows {
		counts[Category(r.Category)] = r.N
	}
	return counts, nil
}

func toPhrases(rows []phraseRow) []Phrase {
	result := make([]Phrase, len(rows))
	for i, r := range rows {
		result[i] = r.toPhrase()
	}
	return result
}
