// Package render compiles LaTeX source to PDF by shelling out to latexmk.
// A missing latexmk is a normal condition, not a failure: callers check
// Available first and keep the .tex output when it is absent.
package render

import (
	"context"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
)

// DefaultTimeout is the maximum time to wait for a latexmk run.
const DefaultTimeout = 60 * time.Second

// Compiler runs latexmk against generated LaTeX source.
type Compiler struct {
	// Timeout bounds a single compile run; zero means DefaultTimeout.
	Timeout time.Duration

	// lookPath and runCommand are swappable for tests.
	lookPath   func(string) (string, error)
	runCommand func(ctx context.Context, dir string, name string, args ...string) (string, error)
}

// NewCompiler returns a Compiler with default settings.
func NewCompiler() *Compiler {
	return &Compiler{
		Timeout:    DefaultTimeout,
		lookPath:   exec.LookPath,
		runCommand: runCommand,
	}
}

// Available reports whether latexmk can be found on the PATH.
func (c *Compiler) Available() bool {
	_, err := c.lookPath("latexmk")
	return err == nil
}

// Compile writes texSource into a fresh scratch directory, runs latexmk on it
// and returns the produced PDF bytes. The scratch directory is removed on
// success and kept on failure so the log can be inspected.
func (c *Compiler) Compile(ctx context.Context, texSource string) ([]byte, error) {
	if _, err := c.lookPath("latexmk"); err != nil {
		return nil, &UnavailableError{Cause: err}
	}

	workDir, err := os.MkdirTemp("", "resume-tailor-"+uuid.NewString()[:8]+"-*")
	if err != nil {
		return nil, &CompileError{Message: "failed to create scratch directory", Cause: err}
	}

	texPath := filepath.Join(workDir, "resume.tex")
	if err := os.WriteFile(texPath, []byte(texSource), 0o644); err != nil {
		return nil, &CompileError{Message: "failed to write LaTeX source", Cause: err}
	}

	timeout := c.Timeout
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	logOutput, runErr := c.runCommand(ctx, workDir, "latexmk",
		"-pdf", "-interaction=nonstopmode", "-halt-on-error", "resume.tex")

	pdfPath := filepath.Join(workDir, "resume.pdf")
	pdf, readErr := os.ReadFile(pdfPath)
	if readErr != nil {
		return nil, &CompileError{
			Message:   "latexmk did not produce a PDF",
			LogOutput: logOutput,
			Cause:     runErr,
		}
	}

	// latexmk can exit nonzero while still emitting a usable PDF; a PDF on
	// disk wins.
	_ = os.RemoveAll(workDir)
	return pdf, nil
}

func runCommand(ctx context.Context, dir string, name string, args ...string) (string, error) {
	cmd := exec.CommandContext(ctx, name, args...)
	cmd.Dir = dir

	var output strings.Builder
	cmd.Stdout = &output
	cmd.Stderr = &output

	err := cmd.Run()
	return output.String(), err
}
