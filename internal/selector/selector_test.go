package selector

import (
	"context"
	"errors"
	"math/rand/v2"
	"sort"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/abhisek/phonix/internal/phrases"
	"github.com/abhisek/phonix/internal/queue"
	"github.com/abhisek/phonix/internal/urgency"
)

type mockRanker struct {
	targets []string
	err     error
	calls   []urgency.Strategy
}

func (m *mockRanker) Targets(strategy urgency.Strategy, limit int) ([]string, error) {
	m.calls = append(m.calls, strategy)
	if m.err != nil {
		return nil, m.err
	}
	if len(m.targets) > limit {
		return m.targets[:limit], nil
	}
	return m.targets, nil
}

type mockStore struct {
	byPhoneme map[string][]phrases.Phrase
	picks     phrases.RandomPicks
	findErr   error
	queried   []string
}

func (m *mockStore) FindPhrasesContaining(ctx context.Context, phonemes []string, category *phrases.Category) ([]phrases.Phrase, error) {
	if m.findErr != nil {
		return nil, m.findErr
	}
	m.queried = append(m.queried, phonemes...)
	var out []phrases.Phrase
	for _, ph := range phonemes {
		out = append(out, m.byPhoneme[ph]...)
	}
	return out, nil
}

func (m *mockStore) RandomPicks(ctx context.Context) (phrases.RandomPicks, error) {
	return m.picks, nil
}

func p(id, text string, cat phrases.Category) phrases.Phrase {
	return phrases.Phrase{ID: id, Text: text, Category: cat}
}

func newTestSelector(r Ranker, s phrases.Store, q Target) *Selector {
	return New(r, s, q, rand.New(rand.NewPCG(1, 2)), Config{}, nil)
}

func texts(ps []phrases.Phrase) []string {
	out := make([]string, len(ps))
	for i, ph := range ps {
		out[i] = ph.Text
	}
	sort.Strings(out)
	return out
}

func TestPopulate_FallbackToRandomPicks(t *testing.T) {
	store := &mockStore{
		picks: phrases.RandomPicks{
			Formal: []phrases.Phrase{
				p("f1", "Good morning", phrases.CategoryFormal),
				p("f2", "Kind regards", phrases.CategoryFormal),
				p("f3", "Please be seated", phrases.CategoryFormal),
			},
			Informal: []phrases.Phrase{
				p("i1", "Hey there", phrases.CategoryInformal),
				p("i2", "What's up", phrases.CategoryInformal),
				p("i3", "See ya", phrases.CategoryInformal),
			},
			UserAdded: []phrases.Phrase{
				p("u1", "My own phrase", phrases.CategoryUserAdded),
			},
		},
	}
	q := queue.New(queue.Config{}, nil)
	sel := newTestSelector(&mockRanker{targets: []string{"p", "b"}}, store, q)

	n, err := sel.Populate(context.Background(), urgency.StrategyAttempts)
	require.NoError(t, err)
	assert.Equal(t, 6, n)
	assert.Equal(t, 6, q.Len())

	want := []string{"Good morning", "Hey there", "Kind regards", "Please be seated", "See ya", "What's up"}
	assert.Equal(t, want, texts(q.Items()))
	assert.False(t, q.Contains("My own phrase"))
	assert.Equal(t, []string{"p", "b"}, store.queried)
}

func TestPopulate_FallbackWithEmptyRanking(t *testing.T) {
	store := &mockStore{
		picks: phrases.RandomPicks{
			Formal: []phrases.Phrase{p("f1", "Good morning", phrases.CategoryFormal)},
		},
	}
	q := queue.New(queue.Config{}, nil)
	sel := newTestSelector(&mockRanker{}, store, q)

	n, err := sel.Populate(context.Background(), urgency.StrategyUrgency)
	require.NoError(t, err)
	assert.Equal(t, 1, n)
	assert.Empty(t, store.queried)
}

func TestPopulate_DedupByID(t *testing.T) {
	shared := p("s1", "Pat the bat", phrases.CategoryInformal)
	store := &mockStore{
		byPhoneme: map[string][]phrases.Phrase{
			"p": {shared, p("a", "Pop", phrases.CategoryInformal)},
			"b": {shared, p("b", "Bob", phrases.CategoryFormal)},
		},
	}
	q := queue.New(queue.Config{}, nil)
	sel := newTestSelector(&mockRanker{targets: []string{"p", "b"}}, store, q)

	n, err := sel.Populate(context.Background(), urgency.StrategyMixed)
	require.NoError(t, err)
	assert.Equal(t, 3, n)
	assert.Equal(t, []string{"Bob", "Pat the bat", "Pop"}, texts(q.Items()))
}

func TestPopulate_SkipsQueuedText(t *testing.T) {
	store := &mockStore{
		byPhoneme: map[string][]phrases.Phrase{
			"p": {
				p("new-id", "Pop", phrases.CategoryInformal),
				p("x", "Pip", phrases.CategoryInformal),
			},
		},
	}
	q := queue.New(queue.Config{}, nil)
	q.Enqueue(p("old-id", "Pop", phrases.CategoryInformal))
	sel := newTestSelector(&mockRanker{targets: []string{"p"}}, store, q)

	n, err := sel.Populate(context.Background(), urgency.StrategyUrgency)
	require.NoError(t, err)
	assert.Equal(t, 1, n)
	assert.Equal(t, []string{"Pip", "Pop"}, texts(q.Items()))
}

func TestPopulate_AllQueuedFallsBack(t *testing.T) {
	store := &mockStore{
		byPhoneme: map[string][]phrases.Phrase{
			"p": {p("a", "Pop", phrases.CategoryInformal)},
		},
		picks: phrases.RandomPicks{
			Formal: []phrases.Phrase{p("f1", "Good morning", phrases.CategoryFormal)},
		},
	}
	q := queue.New(queue.Config{}, nil)
	q.Enqueue(p("a", "Pop", phrases.CategoryInformal))
	sel := newTestSelector(&mockRanker{targets: []string{"p"}}, store, q)

	n, err := sel.Populate(context.Background(), urgency.StrategyUrgency)
	require.NoError(t, err)
	assert.Equal(t, 1, n)
	assert.True(t, q.Contains("Good morning"))
}

func TestPopulate_CapsBatch(t *testing.T) {
	var many []phrases.Phrase
	for _, text := range []string{"a", "b", "c", "d", "e", "f", "g", "h"} {
		many = append(many, p(text, text, phrases.CategoryFormal))
	}
	store := &mockStore{byPhoneme: map[string][]phrases.Phrase{"t": many}}
	q := queue.New(queue.Config{}, nil)
	sel := newTestSelector(&mockRanker{targets: []string{"t"}}, store, q)

	n, err := sel.Populate(context.Background(), urgency.StrategyUrgency)
	require.NoError(t, err)
	assert.Equal(t, DefaultBatchSize, n)
	assert.Equal(t, DefaultBatchSize, q.Len())
}

func TestPopulate_RankerLimit(t *testing.T) {
	ranker := &mockRanker{targets: []string{"a", "b", "c", "d", "e", "f", "g", "h"}}
	store := &mockStore{}
	q := queue.New(queue.Config{}, nil)
	sel := newTestSelector(ranker, store, q)

	_, err := sel.Populate(context.Background(), urgency.StrategyUrgency)
	require.NoError(t, err)
	assert.Len(t, store.queried, DefaultTargetPhonemes)
}

func TestPopulate_Errors(t *testing.T) {
	q := queue.New(queue.Config{}, nil)

	sel := newTestSelector(&mockRanker{err: urgency.ErrUnknownStrategy}, &mockStore{}, q)
	_, err := sel.Populate(context.Background(), "bogus")
	assert.ErrorIs(t, err, urgency.ErrUnknownStrategy)

	storeErr := errors.New("db closed")
	sel = newTestSelector(&mockRanker{targets: []string{"p"}}, &mockStore{findErr: storeErr}, q)
	_, err = sel.Populate(context.Background(), urgency.StrategyUrgency)
	assert.ErrorIs(t, err, storeErr)
	assert.Equal(t, 0, q.Len())
}

func TestPopulate_ShuffleIsSeeded(t *testing.T) {
	var many []phrases.Phrase
	for _, text := range []string{"a", "b", "c", "d", "e"} {
		many = append(many, p(text, text, phrases.CategoryFormal))
	}
	run := func() []phrases.Phrase {
		store := &mockStore{byPhoneme: map[string][]phrases.Phrase{"t": append([]phrases.Phrase(nil), many...)}}
		q := queue.New(queue.Config{}, nil)
		sel := newTestSelector(&mockRanker{targets: []string{"t"}}, store, q)
		_, err := sel.Populate(context.Background(), urgency.StrategyUrgency)
		require.NoError(t, err)
		return q.Items()
	}
	assert.Equal(t, run(), run())
}
