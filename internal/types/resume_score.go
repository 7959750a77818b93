package types

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"math"

	"github.com/jonathan/job-assistant/internal/schemas"
)

// ResumeScoreResult is the validated outcome of scoring a resume against a job description.
type ResumeScoreResult struct {
	Score         int      `json:"score"`
	MissingSkills []string `json:"missing_skills"`
	Suggestions   []string `json:"suggestions"`
}

// SchemaError reports every field of a ResumeScoreResult document that is absent or mistyped.
type SchemaError struct {
	Fields []schemas.FieldError
}

func (e *SchemaError) Error() string {
	names := make([]string, 0, len(e.Fields))
	for _, f := range e.Fields {
		names = append(names, fmt.Sprintf("%s (%s)", f.Field, f.Message))
	}
	return fmt.Sprintf("resume score schema violation: %v", names)
}

// NewResumeScoreResult validates a JSON object against the resume score schema and
// builds the typed result. Values are never coerced: a string score or a
// non-string suggestion fails the whole document.
func NewResumeScoreResult(jsonText string) (*ResumeScoreResult, error) {
	if err := schemas.Validate(schemas.ResumeScore, jsonText); err != nil {
		var ve *schemas.ValidationError
		if errors.As(err, &ve) {
			return nil, &SchemaError{Fields: ve.Errors}
		}
		return nil, err
	}

	var raw struct {
		Score         json.Number `json:"score"`
		MissingSkills []string    `json:"missing_skills"`
		Suggestions   []string    `json:"suggestions"`
	}
	dec := json.NewDecoder(bytes.NewReader([]byte(jsonText)))
	dec.UseNumber()
	if err := dec.Decode(&raw); err != nil {
		return nil, fmt.Errorf("failed to decode resume score: %w", err)
	}

	score, err := integerValue(raw.Score)
	if err != nil {
		return nil, &SchemaError{Fields: []schemas.FieldError{{Field: "score", Message: err.Error()}}}
	}

	return &ResumeScoreResult{
		Score:         score,
		MissingSkills: raw.MissingSkills,
		Suggestions:   raw.Suggestions,
	}, nil
}

// integerValue accepts integral JSON numbers, including forms like 80.0 that the schema treats as integers.
func integerValue(n json.Number) (int, error) {
	if i, err := n.Int64(); err == nil {
		return int(i), nil
	}
	f, err := n.Float64()
	if err != nil || f != math.Trunc(f) || math.Abs(f) > math.MaxInt32 {
		return 0, fmt.Errorf("invalid integer %q", n.String())
	}
	return int(f), nil
}
