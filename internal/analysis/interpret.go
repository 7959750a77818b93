// Package analysis scores resumes against job descriptions and drafts
// application answers with a language model.
package analysis

import (
	"encoding/json"
	"errors"
	"fmt"
	"regexp"
	"strings"

	"github.com/jonathan/job-assistant/internal/types"
)

// Stages at which interpreting a model reply can fail.
const (
	StageParse    = "parse"
	StageValidate = "validate"
)

// MalformedResponseError reports model output that is not a valid resume score.
// Raw always holds the complete, unmodified model reply.
type MalformedResponseError struct {
	Raw   string
	Stage string
	Cause error
}

func (e *MalformedResponseError) Error() string {
	return fmt.Sprintf("LLM returned invalid JSON (%s): %v", e.Stage, e.Cause)
}

func (e *MalformedResponseError) Unwrap() error {
	return e.Cause
}

// Strategy locates a candidate JSON object in raw model output.
// ok is false when the strategy finds nothing.
type Strategy struct {
	Name   string
	Locate func(raw string) (candidate string, ok bool)
}

var fencePattern = regexp.MustCompile("(?s)```(?:json)?\\s*(\\{.*?\\})\\s*```")

// Strategies are tried in order; the first that locates a candidate wins.
var Strategies = []Strategy{
	{Name: "fenced-block", Locate: fencedBlock},
	{Name: "brace-span", Locate: braceSpan},
	{Name: "whole-text", Locate: wholeText},
}

// fencedBlock finds a ```json or untagged fence wrapping an object.
func fencedBlock(raw string) (string, bool) {
	m := fencePattern.FindStringSubmatch(raw)
	if m == nil {
		return "", false
	}
	return m[1], true
}

// braceSpan takes everything from the first '{' to the last '}'.
func braceSpan(raw string) (string, bool) {
	start := strings.Index(raw, "{")
	end := strings.LastIndex(raw, "}")
	if start < 0 || end <= start {
		return "", false
	}
	return raw[start : end+1], true
}

func wholeText(raw string) (string, bool) {
	return raw, true
}

// LocateJSON returns the first candidate found by Strategies.
func LocateJSON(raw string) string {
	for _, s := range Strategies {
		if candidate, ok := s.Locate(raw); ok {
			return candidate
		}
	}
	return raw
}

// ExtractStructuredResult locates, parses and validates the resume score
// object in a model reply. Every failure is a *MalformedResponseError.
func ExtractStructuredResult(raw string) (*types.ResumeScoreResult, error) {
	candidate := strings.TrimSpace(LocateJSON(raw))

	var probe any
	if err := json.Unmarshal([]byte(candidate), &probe); err != nil {
		return nil, &MalformedResponseError{Raw: raw, Stage: StageParse, Cause: err}
	}

	result, err := types.NewResumeScoreResult(candidate)
	if err != nil {
		return nil, &MalformedResponseError{Raw: raw, Stage: StageValidate, Cause: err}
	}
	return result, nil
}

// IsMalformed reports whether err is a MalformedResponseError and returns it.
func IsMalformed(err error) (*MalformedResponseError, bool) {
	var me *MalformedResponseError
	if errors.As(err, &me) {
		return me, true
	}
	return nil, false
}
