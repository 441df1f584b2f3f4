package alignment

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"sync"

	"github.com/santhosh-tekuri/jsonschema/v6"
)

// ErrInvalidBatch matches every error returned by Decode for a payload that
// fails validation.
var ErrInvalidBatch = errors.New("alignment: invalid evaluation batch")

// ValidationError describes why an evaluation payload was rejected.
type ValidationError struct {
	Err error
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid evaluation payload: %v", e.Err)
}

func (e *ValidationError) Unwrap() error { return e.Err }

// Is makes errors.Is(err, ErrInvalidBatch) hold for every ValidationError.
func (e *ValidationError) Is(target error) bool { return target == ErrInvalidBatch }

const schemaURL = "schema://alignment-batch.json"

// batchSchema accepts either a flat array of phoneme verdicts or an object
// holding the evaluated words of an utterance.
const batchSchema = `{
  "$defs": {
    "phoneme": {
      "type": "object",
      "required": ["type", "score"],
      "properties": {
        "type":   {"enum": ["match", "replace", "delete", "insert"]},
        "target": {"type": ["string", "null"]},
        "actual": {"type": ["string", "null"]},
        "score":  {"type": "number"},
        "note":   {"type": ["string", "null"]}
      },
      "allOf": [
        {"if": {"properties": {"type": {"enum": ["match", "replace"]}}},
         "then": {"required": ["target", "actual"], "properties": {"target": {"type": "string"}, "actual": {"type": "string"}}}},
        {"if": {"properties": {"type": {"const": "delete"}}},
         "then": {"required": ["target"], "properties": {"target": {"type": "string"}, "actual": {"type": "null"}}}},
        {"if": {"properties": {"type": {"const": "insert"}}},
         "then": {"required": ["actual"], "properties": {"target": {"type": "null"}, "actual": {"type": "string"}}}}
      ]
    },
    "word": {
      "type": "object",
      "required": ["word", "phonemes"],
      "properties": {
        "word":      {"type": "string"},
        "score":     {"type": "number"},
        "evaluated": {"type": "boolean"},
        "phonemes":  {"type": "array", "items": {"$ref": "#/$defs/phoneme"}}
      }
    }
  },
  "oneOf": [
    {"type": "array", "items": {"$ref": "#/$defs/phoneme"}},
    {"type": "object", "required": ["words"], "properties": {"words": {"type": "array", "items": {"$ref": "#/$defs/word"}}}}
  ]
}`

var (
	compileOnce sync.Once
	compiled    *jsonschema.Schema
	compileErr  error
)

func batchValidator() (*jsonschema.Schema, error) {
	compileOnce.Do(func() {
		var def any
		if err := json.Unmarshal([]byte(batchSchema), &def); err != nil {
			compileErr = fmt.Errorf("parse schema definition: %w", err)
			return
		}
		c := jsonschema.NewCompiler()
		if err := c.AddResource(schemaURL, def); err != nil {
			compileErr = fmt.Errorf("add resource: %w", err)
			return
		}
		compiled, compileErr = c.Compile(schemaURL)
	})
	return compiled, compileErr
}

// Decode reads one evaluation batch, validates it, and returns the flat
// sequence of phoneme verdicts in utterance order.
func Decode(r io.Reader) ([]AlignedPhonemeResult, error) {
	raw, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("read evaluation payload: %w", err)
	}

	var parsed any
	if err := json.Unmarshal(raw, &parsed); err != nil {
		return nil, &ValidationError{Err: fmt.Errorf("invalid JSON: %w", err)}
	}

	validator, err := batchValidator()
	if err != nil {
		return nil, fmt.Errorf("compile evaluation schema: %w", err)
	}
	if err := validator.Validate(parsed); err != nil {
		return nil, &ValidationError{Err: fmt.Errorf("schema validation failed: %w", err)}
	}

	trimmed := bytes.TrimSpace(raw)
	if len(trimmed) > 0 && trimmed[0] == '[' {
		var results []AlignedPhonemeResult
		if err := json.Unmarshal(trimmed, &results); err != nil {
			return nil, &ValidationError{Err: err}
		}
		return results, nil
	}

	var batch struct {
		Words []WordEvaluation `json:"words"`
	}
	if err := json.Unmarshal(trimmed, &batch); err != nil {
		return nil, &ValidationError{Err: err}
	}
	return Flatten(batch.Words), nil
}
