package tailoring

import "fmt"

// BackendError represents a generation backend failure during tailoring.
type BackendError struct {
	Message string
	Cause   error
}

func (e *BackendError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("tailoring backend error: %s: %v", e.Message, e.Cause)
	}
	return fmt.Sprintf("tailoring backend error: %s", e.Message)
}

func (e *BackendError) Unwrap() error {
	return e.Cause
}

// SchemaError reports that the backend's output could not be parsed into the
// tailored resume schema, even after the corrective retry.
type SchemaError struct {
	Message string
	Cause   error
}

func (e *SchemaError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("tailoring schema error: %s: %v", e.Message, e.Cause)
	}
	return fmt.Sprintf("tailoring schema error: %s", e.Message)
}

func (e *SchemaError) Unwrap() error {
	return e.Cause
}
