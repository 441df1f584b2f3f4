package alignment

import (
	"errors"
	"strings"
	"testing"
)

func TestDecode_FlatArray(t *testing.T) {
	payload := `[
		{"type": "match", "target": "p", "actual": "p", "score": 0.9},
		{"type": "replace", "target": "θ", "actual": "s", "score": 0.3, "note": "dental fricative fronted"},
		{"type": "delete", "target": "t", "score": 0},
		{"type": "insert", "actual": "ə", "score": 0}
	]`
	results, err := Decode(strings.NewReader(payload))
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}
	if len(results) != 4 {
		t.Fatalf("len = %d, want 4", len(results))
	}
	if results[1].Type != TypeReplace || *results[1].Actual != "s" || *results[1].Target != "θ" {
		t.Errorf("results[1] = %+v", results[1])
	}
	if results[1].Note == nil || *results[1].Note != "dental fricative fronted" {
		t.Errorf("note = %v", results[1].Note)
	}
	if results[2].Actual != nil {
		t.Errorf("delete actual = %v, want nil", *results[2].Actual)
	}
	if results[3].Target != nil {
		t.Errorf("insert target = %v, want nil", *results[3].Target)
	}
}

func TestDecode_Words(t *testing.T) {
	payload := `{"words": [
		{"word": "pat", "score": 0.8, "evaluated": true, "phonemes": [
			{"type": "match", "target": "p", "actual": "p", "score": 0.9},
			{"type": "match", "target": "æ", "actual": "æ", "score": 0.7}
		]},
		{"word": "tip", "score": 0.5, "evaluated": true, "phonemes": [
			{"type": "replace", "target": "t", "actual": "d", "score": 0.4}
		]}
	]}`
	results, err := Decode(strings.NewReader(payload))
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}
	var got []string
	for _, r := range results {
		got = append(got, *r.Actual)
	}
	if strings.Join(got, " ") != "p æ d" {
		t.Errorf("actual phonemes = %v, want [p æ d]", got)
	}
}

func TestDecode_Rejects(t *testing.T) {
	tests := []struct {
		name    string
		payload string
	}{
		{"not json", `{{`},
		{"scalar", `42`},
		{"unknown type", `[{"type": "swap", "target": "p", "actual": "b", "score": 1}]`},
		{"missing score", `[{"type": "match", "target": "p", "actual": "p"}]`},
		{"match without actual", `[{"type": "match", "target": "p", "score": 1}]`},
		{"delete with actual", `[{"type": "delete", "target": "p", "actual": "b", "score": 0}]`},
		{"insert with target", `[{"type": "insert", "target": "p", "actual": "b", "score": 0}]`},
		{"words missing phonemes", `{"words": [{"word": "pat"}]}`},
		{"string score", `[{"type": "match", "target": "p", "actual": "p", "score": "high"}]`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Decode(strings.NewReader(tt.payload))
			if err == nil {
				t.Fatal("expected error")
			}
			if !errors.Is(err, ErrInvalidBatch) {
				t.Errorf("err = %v, want ErrInvalidBatch", err)
			}
			var ve *ValidationError
			if !errors.As(err, &ve) {
				t.Errorf("err = %T, want *ValidationError", err)
			}
		})
	}
}

func TestDecode_EmptyArray(t *testing.T) {
	results, err := Decode(strings.NewReader(`[]`))
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}
	if len(results) != 0 {
		t.Errorf("len = %d, want 0", len(results))
	}
}

func TestObserved(t *testing.T) {
	empty := ""
	tests := []struct {
		name   string
		result AlignedPhonemeResult
		want   string
		ok     bool
	}{
		{"match", Match("p", 1), "p", true},
		{"replace uses actual", Replace("θ", "s", 0.2), "s", true},
		{"delete", Delete("t"), "", false},
		{"insert", Insert("ə"), "", false},
		{"replace without actual", AlignedPhonemeResult{Type: TypeReplace}, "", false},
		{"empty actual", AlignedPhonemeResult{Type: TypeMatch, Actual: &empty}, "", false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := tt.result.Observed()
			if got != tt.want || ok != tt.ok {
				t.Errorf("Observed() = %q, %v; want %q, %v", got, ok, tt.want, tt.ok)
			}
		})
	}
}

func TestFlatten(t *testing.T) {
	words := []WordEvaluation{
		{Word: "a", Phonemes: []AlignedPhonemeResult{Match("ə", 1)}},
		{Word: "cat", Phonemes: []AlignedPhonemeResult{Match("k", 1), Match("æ", 1), Delete("t")}},
		{Word: "silent"},
	}
	if got := Flatten(words); len(got) != 4 {
		t.Errorf("len = %d, want 4", len(got))
	}
	if got := Flatten(nil); len(got) != 0 {
		t.Errorf("len = %d, want 0", len(got))
	}
}
