package extraction

import "fmt"

// FailedError reports that no extraction backend could produce text from a
// document (encrypted, corrupt, or an unsupported format). It is distinct
// from a low-text-yield document, which extracts successfully and is rejected
// later by the normalizer.
type FailedError struct {
	Path    string
	Message string
	Cause   error
}

func (e *FailedError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("document extraction failed for %s: %s: %v", e.Path, e.Message, e.Cause)
	}
	return fmt.Sprintf("document extraction failed for %s: %s", e.Path, e.Message)
}

func (e *FailedError) Unwrap() error {
	return e.Cause
}
