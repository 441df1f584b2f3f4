// Package alignment defines the verdicts produced by the external
// phoneme-alignment engine and decodes them from JSON.
package alignment

// ResultType classifies how one aligned unit differs from the target.
type ResultType string

const (
	TypeMatch   ResultType = "match"
	TypeReplace ResultType = "replace"
	TypeDelete  ResultType = "delete"
	TypeInsert  ResultType = "insert"
)

// AlignedPhonemeResult is the verdict for one aligned unit of a word.
// Target is nil for insertions; Actual is nil for deletions.
type AlignedPhonemeResult struct {
	Type   ResultType `json:"type"`
	Target *string    `json:"target,omitempty"`
	Actual *string    `json:"actual,omitempty"`
	Score  float64    `json:"score"`
	Note   *string    `json:"note,omitempty"`
}

// Observed reports whether the verdict carries a realized phoneme that can
// be attributed to the learner, returning it if so. Only match and replace
// verdicts qualify.
func (r AlignedPhonemeResult) Observed() (string, bool) {
	if r.Type != TypeMatch && r.Type != TypeReplace {
		return "", false
	}
	if r.Actual == nil || *r.Actual == "" {
		return "", false
	}
	return *r.Actual, true
}

// WordEvaluation is the evaluation of one word of an utterance.
type WordEvaluation struct {
	Word      string                 `json:"word"`
	Score     float64                `json:"score"`
	Phonemes  []AlignedPhonemeResult `json:"phonemes"`
	Evaluated bool                   `json:"evaluated"`
}

// Flatten concatenates the phoneme verdicts of every word, in order.
func Flatten(words []WordEvaluation) []AlignedPhonemeResult {
	var n int
	for _, w := range words {
		n += len(w.Phonemes)
	}
	results := make([]AlignedPhonemeResult, 0, n)
	for _, w := range words {
		results = append(results, w.Phonemes...)
	}
	return results
}

// Match builds a match verdict.
func Match(phoneme string, score float64) AlignedPhonemeResult {
	return AlignedPhonemeResult{Type: TypeMatch, Target: &phoneme, Actual: &phoneme, Score: score}
}

// Replace builds a substitution verdict.
func Replace(target, actual string, score float64) AlignedPhonemeResult {
	return AlignedPhonemeResult{Type: TypeReplace, Target: &target, Actual: &actual, Score: score}
}

// Delete builds a verdict for a target phoneme the speaker omitted.
func Delete(target string) AlignedPhonemeResult {
	return AlignedPhonemeResult{Type: TypeDelete, Target: &target}
}

// Insert builds a verdict for an extra phoneme the speaker produced.
func Insert(actual string) AlignedPhonemeResult {
	return AlignedPhonemeResult{Type: TypeInsert, Actual: &actual}
}
