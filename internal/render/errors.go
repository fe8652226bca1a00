package render

import "fmt"

// UnavailableError reports that no latexmk binary was found on the PATH.
// Rendering to PDF is optional; callers fall back to emitting the .tex file.
type UnavailableError struct {
	Cause error
}

func (e *UnavailableError) Error() string {
	return fmt.Sprintf("latexmk not found in PATH; install a LaTeX distribution (e.g. TeX Live) to render PDFs: %v", e.Cause)
}

func (e *UnavailableError) Unwrap() error {
	return e.Cause
}

// CompileError represents a LaTeX compilation failure.
type CompileError struct {
	Message   string
	LogOutput string
	Cause     error
}

func (e *CompileError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("latex compile error: %s: %v", e.Message, e.Cause)
	}
	return fmt.Sprintf("latex compile error: %s", e.Message)
}

func (e *CompileError) Unwrap() error {
	return e.Cause
}
