package assemble

import "fmt"

// UnknownTemplateError reports a template identifier that does not name a
// bundled template.
type UnknownTemplateError struct {
	TemplateID string
	Known      []string
}

func (e *UnknownTemplateError) Error() string {
	return fmt.Sprintf("unknown template %q (available: %v)", e.TemplateID, e.Known)
}

// TemplateError represents an error parsing or executing a LaTeX template
type TemplateError struct {
	Message string
	Cause   error
}

func (e *TemplateError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("template error: %s: %v", e.Message, e.Cause)
	}
	return fmt.Sprintf("template error: %s", e.Message)
}

func (e *TemplateError) Unwrap() error {
	return e.Cause
}
