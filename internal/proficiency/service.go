package proficiency

import (
	"time"
)

// Source reports where SeedOrLoad obtained the initial record set.
type Source string

const (
	SourceSnapshot   Source = "snapshot"
	SourceVocabulary Source = "vocabulary"
	SourceEmpty      Source = "empty"
)

// Service owns the set of phoneme proficiency records for one learner.
// Records are keyed by symbol; order remembers insertion so rankings can
// break ties deterministically.
type Service struct {
	records map[string]*PhonemeProficiency
	order   []string
	now     func() time.Time
}

// NewService creates an empty service. A nil clock uses time.Now.
func NewService(now func() time.Time) *Service {
	if now == nil {
		now = time.Now
	}
	return &Service{
		records: make(map[string]*PhonemeProficiency),
		now:     now,
	}
}

// Now returns the service clock's current time.
func (s *Service) Now() time.Time {
	return s.now()
}

// Update records one observation of phoneme with a score already
// normalized to 0.0-1.0. An unseen phoneme is created at defaults first, so
// its first score already reflects one blended step.
func (s *Service) Update(phoneme string, evalScore float64) PhonemeProficiency {
	now := s.now()
	p, ok := s.records[phoneme]
	if !ok {
		p = s.add(phoneme, now)
	}
	p.apply(evalScore, now)
	return *p
}

// Get returns a copy of the record for phoneme.
func (s *Service) Get(phoneme string) (PhonemeProficiency, bool) {
	p, ok := s.records[phoneme]
	if !ok {
		return PhonemeProficiency{}, false
	}
	return *p, true
}

// All returns copies of every record in insertion order.
func (s *Service) All() []PhonemeProficiency {
	result := make([]PhonemeProficiency, 0, len(s.order))
	for _, symbol := range s.order {
		result = append(result, *s.records[symbol])
	}
	return result
}

// Len returns the number of tracked phonemes.
func (s *Service) Len() int {
	return len(s.order)
}

func (s *Service) add(symbol string, now time.Time) *PhonemeProficiency {
	p := newPhonemeProficiency(symbol, now)
	s.records[symbol] = p
	s.order = append(s.order, symbol)
	return p
}

func (s *Service) reset() {
	s.records = make(map[string]*PhonemeProficiency)
	s.order = nil
}
