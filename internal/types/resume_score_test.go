package types

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewResumeScoreResult_Valid(t *testing.T) {
	result, err := NewResumeScoreResult(`{"score": 75, "missing_skills": ["Docker", "Kubernetes"], "suggestions": ["Add Docker experience"]}`)
	require.NoError(t, err)

	assert.Equal(t, 75, result.Score)
	assert.Equal(t, []string{"Docker", "Kubernetes"}, result.MissingSkills)
	assert.Equal(t, []string{"Add Docker experience"}, result.Suggestions)
}

func TestNewResumeScoreResult_IntegralFloatScore(t *testing.T) {
	result, err := NewResumeScoreResult(`{"score": 80.0, "missing_skills": [], "suggestions": []}`)
	require.NoError(t, err)
	assert.Equal(t, 80, result.Score)
}

func TestNewResumeScoreResult_EnumeratesAllBadFields(t *testing.T) {
	_, err := NewResumeScoreResult(`{"score": "high", "suggestions": "none"}`)
	require.Error(t, err)

	var schemaErr *SchemaError
	require.True(t, errors.As(err, &schemaErr))

	fields := make([]string, 0, len(schemaErr.Fields))
	for _, f := range schemaErr.Fields {
		fields = append(fields, f.Field)
	}
	assert.ElementsMatch(t, []string{"score", "missing_skills", "suggestions"}, fields)
	assert.Contains(t, err.Error(), "missing_skills")
}

func TestNewResumeScoreResult_RejectsCoercibleValues(t *testing.T) {
	tests := []struct {
		name  string
		input string
	}{
		{"string score", `{"score": "80", "missing_skills": [], "suggestions": []}`},
		{"boolean score", `{"score": true, "missing_skills": [], "suggestions": []}`},
		{"numeric skill", `{"score": 80, "missing_skills": [42], "suggestions": []}`},
		{"array at root", `[{"score": 80, "missing_skills": [], "suggestions": []}]`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewResumeScoreResult(tt.input)
			var schemaErr *SchemaError
			assert.True(t, errors.As(err, &schemaErr), "expected SchemaError, got %v", err)
		})
	}
}

func TestNewResumeScoreResult_NotJSON(t *testing.T) {
	_, err := NewResumeScoreResult("not json")
	require.Error(t, err)

	var schemaErr *SchemaError
	assert.False(t, errors.As(err, &schemaErr))
}
