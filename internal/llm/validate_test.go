package llm

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testSchema = []byte(`{
	"type": "object",
	"required": ["name"],
	"properties": {
		"name": {"type": "string"},
		"skills": {"type": "array", "items": {"type": "string"}}
	}
}`)

func staticResponse(text string) GenerateFunc {
	return func(context.Context) (string, error) { return text, nil }
}

func noCorrection(t *testing.T) CorrectFunc {
	return func(context.Context, string, string) (string, error) {
		t.Fatal("correction should not have been requested")
		return "", nil
	}
}

func TestValidationLoopValidFirstTry(t *testing.T) {
	loop, err := NewValidationLoop(testSchema)
	require.NoError(t, err)

	outcome, err := loop.Run(context.Background(), staticResponse(`{"name": "Alex"}`), noCorrection(t))
	require.NoError(t, err)

	assert.Equal(t, StateValidated, outcome.State)
	assert.False(t, outcome.Corrected)
	assert.JSONEq(t, `{"name": "Alex"}`, outcome.JSON)
}

func TestValidationLoopStripsMarkdownWrapper(t *testing.T) {
	loop, err := NewValidationLoop(testSchema)
	require.NoError(t, err)

	response := "```json\n{\"name\": \"Alex\"}\n```"
	outcome, err := loop.Run(context.Background(), staticResponse(response), noCorrection(t))
	require.NoError(t, err)
	assert.Equal(t, StateValidated, outcome.State)
}

func TestValidationLoopCorrectedSecondTry(t *testing.T) {
	loop, err := NewValidationLoop(testSchema)
	require.NoError(t, err)

	var gotProblem string
	correct := func(_ context.Context, raw, problem string) (string, error) {
		gotProblem = problem
		assert.Contains(t, raw, "not json")
		return `{"name": "Alex", "skills": ["Go"]}`, nil
	}

	outcome, err := loop.Run(context.Background(), staticResponse("this is not json"), correct)
	require.NoError(t, err)

	assert.Equal(t, StateValidated, outcome.State)
	assert.True(t, outcome.Corrected)
	assert.NotEmpty(t, gotProblem)
}

func TestValidationLoopFailsAfterSecondBadResponse(t *testing.T) {
	loop, err := NewValidationLoop(testSchema)
	require.NoError(t, err)

	correct := func(context.Context, string, string) (string, error) {
		return `{"skills": "not-an-array"}`, nil
	}

	outcome, err := loop.Run(context.Background(), staticResponse(`{"wrong": true}`), correct)
	require.Error(t, err)
	assert.Equal(t, StateFailed, outcome.State)
}

func TestValidationLoopPropagatesBackendError(t *testing.T) {
	loop, err := NewValidationLoop(testSchema)
	require.NoError(t, err)

	backendErr := errors.New("network down")
	generate := func(context.Context) (string, error) { return "", backendErr }

	outcome, err := loop.Run(context.Background(), generate, noCorrection(t))
	require.ErrorIs(t, err, backendErr)
	assert.Equal(t, StateFailed, outcome.State)
}

func TestSalvageJSONObject(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{
			name:     "bare object untouched",
			input:    `{"a": 1}`,
			expected: `{"a": 1}`,
		},
		{
			name:     "prose around object",
			input:    "Here you go:\n{\"a\": 1}\nLet me know!",
			expected: `{"a": 1}`,
		},
		{
			name:     "no braces",
			input:    "nothing here",
			expected: "nothing here",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, SalvageJSONObject(tt.input))
		})
	}
}
