package llm

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/xeipuuv/gojsonschema"
)

// LoopState tracks a validate-or-retry pass over backend output:
// pending → validated, pending → corrected → validated, or failed.
type LoopState string

// Loop states.
const (
	StatePending   LoopState = "pending"
	StateValidated LoopState = "validated"
	StateCorrected LoopState = "corrected"
	StateFailed    LoopState = "failed"
)

// GenerateFunc produces the initial backend response.
type GenerateFunc func(ctx context.Context) (string, error)

// CorrectFunc asks the backend to repair a malformed response. raw is the
// previous output, problem describes why it was rejected.
type CorrectFunc func(ctx context.Context, raw, problem string) (string, error)

// Outcome is the result of a validation loop run.
type Outcome struct {
	// JSON is the validated response body (only meaningful when the state
	// is validated).
	JSON string
	// State is the terminal loop state.
	State LoopState
	// Corrected reports whether the corrective retry was needed.
	Corrected bool
}

// ValidationLoop validates backend JSON output against a JSON Schema,
// retrying exactly once with a corrective instruction on failure. Schema
// validation is the output contract: generation is non-deterministic, the
// accepted shape is not.
type ValidationLoop struct {
	schema *gojsonschema.Schema
}

// NewValidationLoop compiles the given JSON Schema document.
func NewValidationLoop(schemaBytes []byte) (*ValidationLoop, error) {
	schema, err := gojsonschema.NewSchema(gojsonschema.NewBytesLoader(schemaBytes))
	if err != nil {
		return nil, fmt.Errorf("failed to compile schema: %w", err)
	}
	return &ValidationLoop{schema: schema}, nil
}

// Run executes generate, validates the response, and on a validation failure
// calls correct exactly once with the parse problem before giving up.
// Backend call errors are returned as-is; a second validation failure yields
// a failed outcome with a descriptive error.
func (l *ValidationLoop) Run(ctx context.Context, generate GenerateFunc, correct CorrectFunc) (Outcome, error) {
	raw, err := generate(ctx)
	if err != nil {
		return Outcome{State: StateFailed}, err
	}

	body, problem := l.validate(raw)
	if problem == "" {
		return Outcome{JSON: body, State: StateValidated}, nil
	}

	corrected, err := correct(ctx, raw, problem)
	if err != nil {
		return Outcome{State: StateFailed}, err
	}

	body, secondProblem := l.validate(corrected)
	if secondProblem == "" {
		return Outcome{JSON: body, State: StateValidated, Corrected: true}, nil
	}

	return Outcome{State: StateFailed}, fmt.Errorf("response failed schema validation after corrective retry: %s", secondProblem)
}

// validate cleans, parses and schema-checks one response. It returns the
// usable JSON body and an empty problem string on success.
func (l *ValidationLoop) validate(raw string) (body, problem string) {
	body = SalvageJSONObject(CleanJSONBlock(raw))

	var probe any
	if err := json.Unmarshal([]byte(body), &probe); err != nil {
		return "", fmt.Sprintf("response is not valid JSON: %v", err)
	}

	result, err := l.schema.Validate(gojsonschema.NewStringLoader(body))
	if err != nil {
		return "", fmt.Sprintf("schema validation errored: %v", err)
	}
	if !result.Valid() {
		var sb strings.Builder
		for i, fieldErr := range result.Errors() {
			if i > 0 {
				sb.WriteString("; ")
			}
			sb.WriteString(fmt.Sprintf("%s: %s", fieldErr.Field(), fieldErr.Description()))
		}
		return "", sb.String()
	}

	return body, ""
}
