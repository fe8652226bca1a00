package jobdesc

import "fmt"

// APICallError represents a generation backend failure during job analysis.
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
// job requirements schema, even after the corrective retry.
type SchemaError struct {
	Message string
	Cause   error
}

func (e *SchemaError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("job analysis schema error: %s: %v", e.Message, e.Cause)
	}
	return fmt.Sprintf("job analysis schema error: %s", e.Message)
}

func (e *SchemaError) Unwrap() error {
	return e.Cause
}
