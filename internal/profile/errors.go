package profile

import "fmt"

// APICallError represents a generation backend failure during extraction.
type APICallError struct {
	Message string
	Cause   error
}

func (e *APICallError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("API call failed: %s: %v", e.Message, e.Cause)
	}
	return fmt.Sprintf("API call failed: %s", e.Message)
}

func (e *APICallError) Unwrap() error {
	return e.Cause
}

// SchemaError reports that the backend's output could not be parsed into the
// candidate profile schema, even after the corrective retry.
type SchemaError struct {
	Message string
	Cause   error
}

func (e *SchemaError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("extraction schema error: %s: %v", e.Message, e.Cause)
	}
	return fmt.Sprintf("extraction schema error: %s", e.Message)
}

func (e *SchemaError) Unwrap() error {
	return e.Cause
}

// GroundingViolationError reports a required identity field whose value has
// no trace in the source document. List-valued facts are dropped and flagged
// instead; identity fields fail hard because silently dropping them would
// produce a resume for nobody.
type GroundingViolationError struct {
	Field string
	Value string
}

func (e *GroundingViolationError) Error() string {
	return fmt.Sprintf("grounding violation: %s value %q does not appear in the source document", e.Field, e.Value)
}
