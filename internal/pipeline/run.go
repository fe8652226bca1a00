// Package pipeline provides the high-level orchestration for the resume
// tailoring process: document extraction, normalization, the two concurrent
// analysis calls, grounded tailoring, coverage scoring and LaTeX assembly.
package pipeline

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/jonathan/resume-tailor/internal/assemble"
	"github.com/jonathan/resume-tailor/internal/coverage"
	"github.com/jonathan/resume-tailor/internal/extraction"
	"github.com/jonathan/resume-tailor/internal/jobdesc"
	"github.com/jonathan/resume-tailor/internal/llm"
	"github.com/jonathan/resume-tailor/internal/logger"
	"github.com/jonathan/resume-tailor/internal/normalize"
	"github.com/jonathan/resume-tailor/internal/profile"
	"github.com/jonathan/resume-tailor/internal/render"
	"github.com/jonathan/resume-tailor/internal/tailoring"
	"github.com/jonathan/resume-tailor/internal/types"
)

// ProgressEvent represents a progress update during pipeline execution
type ProgressEvent struct {
	Step     string `json:"step"`
	Category string `json:"category"`
	Message  string `json:"message"`
	RunID    string `json:"run_id,omitempty"`
	Content  any    `json:"content,omitempty"`
}

// ProgressCallback is called when pipeline progress occurs
type ProgressCallback func(event ProgressEvent)

// RunOptions holds configuration for running the pipeline
type RunOptions struct {
	ResumePath string
	JobPath    string
	Template   string

	// Client is the generation backend. Injected so tests can script it.
	Client llm.Client

	// Compiler, when non-nil, is used to render the LaTeX output to PDF.
	// A missing latexmk downgrades to a warning; the .tex result stands.
	Compiler *render.Compiler

	Logger     *zap.Logger
	OnProgress ProgressCallback
}

// Result holds every artifact the pipeline produced for one run.
type Result struct {
	RunID string

	Source         extraction.RawDocumentText
	NormalizedText string

	Profile   *types.CandidateProfile
	Dropped   []profile.DroppedFact
	Corrected bool

	Requirements *types.JobRequirements
	Tailored     *types.TailoredProfile
	Diff         *types.TailoringDiff
	Coverage     *types.CoverageReport

	LaTeX string
	PDF   []byte
}

// emitProgress calls the progress callback if configured
func emitProgress(opts *RunOptions, runID, step, category, message string, content any) {
	if opts.OnProgress != nil {
		opts.OnProgress(ProgressEvent{
			Step:     step,
			Category: category,
			Message:  message,
			RunID:    runID,
			Content:  content,
		})
	}
}

// Run executes the full tailoring pipeline. Everything up to assembly is
// deterministic given the backend's responses; the run ID only labels logs
// and progress events, nothing is persisted.
func Run(ctx context.Context, opts RunOptions) (*Result, error) {
	if opts.Client == nil {
		return nil, fmt.Errorf("pipeline requires a generation client")
	}
	log := opts.Logger
	if log == nil {
		log = zap.NewNop()
	}

	runID := uuid.NewString()
	log = log.With(zap.String("run_id", runID))
	result := &Result{RunID: runID}

	log.Info(StepExtractDocument, zap.String("path", opts.ResumePath))
	source, err := extraction.ExtractDocument(opts.ResumePath)
	if err != nil {
		return nil, fmt.Errorf("document extraction failed: %w", err)
	}
	result.Source = source
	if source.Fallback {
		log.Warn(StepExtractDocument,
			zap.String("backend", source.Backend),
			zap.String("note", "primary extraction produced low-quality text, used fallback"))
	}
	emitProgress(&opts, runID, StepExtractDocument, CategoryIngestion,
		fmt.Sprintf("Extracted %d characters via %s", len(source.Text), source.Backend), nil)

	normalized, err := normalize.New().Normalize(source)
	if err != nil {
		return nil, fmt.Errorf("normalization failed: %w", err)
	}
	result.NormalizedText = normalized
	log.Debug(StepNormalize,
		zap.Int("chars", len(normalized)),
		zap.String("preview", logger.TruncateForLog(normalized, 120)))
	emitProgress(&opts, runID, StepNormalize, CategoryIngestion, "Normalized document text", nil)

	jobSource, err := extraction.ExtractDocument(opts.JobPath)
	if err != nil {
		return nil, fmt.Errorf("job description extraction failed: %w", err)
	}

	// The profile extraction and the job analysis are independent backend
	// calls; run them concurrently.
	g, gCtx := errgroup.WithContext(ctx)

	g.Go(func() error {
		log.Info(StepExtractProfile)
		extracted, err := profile.Extract(gCtx, opts.Client, normalized)
		if err != nil {
			return fmt.Errorf("profile extraction failed: %w", err)
		}
		result.Profile = extracted.Profile
		result.Dropped = extracted.Dropped
		result.Corrected = extracted.Corrected
		return nil
	})

	g.Go(func() error {
		log.Info(StepAnalyzeJob)
		reqs, err := jobdesc.Analyze(gCtx, opts.Client, jobSource.Text)
		if err != nil {
			return fmt.Errorf("job analysis failed: %w", err)
		}
		result.Requirements = reqs
		return nil
	})

	if err := g.Wait(); err != nil {
		return nil, err
	}

	if len(result.Dropped) > 0 {
		log.Warn(StepExtractProfile, zap.Int("dropped_facts", len(result.Dropped)))
	}
	emitProgress(&opts, runID, StepExtractProfile, CategoryAnalysis,
		fmt.Sprintf("Extracted profile with %d roles, dropped %d ungrounded facts",
			len(result.Profile.Experience), len(result.Dropped)), result.Profile)
	emitProgress(&opts, runID, StepAnalyzeJob, CategoryAnalysis,
		fmt.Sprintf("Analyzed job: %d required, %d preferred, %d keywords",
			len(result.Requirements.RequiredSkills), len(result.Requirements.PreferredSkills),
			len(result.Requirements.Keywords)), result.Requirements)

	log.Info(StepTailor)
	tailored, diff, err := tailoring.Tailor(ctx, opts.Client, result.Profile, result.Requirements)
	if err != nil {
		return nil, fmt.Errorf("tailoring failed: %w", err)
	}
	result.Tailored = tailored
	result.Diff = diff
	emitProgress(&opts, runID, StepTailor, CategoryTailoring,
		fmt.Sprintf("Tailored resume with %d bullet rewrites", len(diff.Changes)), diff)

	result.Coverage = coverage.NewMatcher().Report(result.Requirements, &tailored.CandidateProfile)
	log.Info(StepCoverage,
		zap.Int("matched", len(result.Coverage.Matched)),
		zap.Int("missing", len(result.Coverage.Missing)),
		zap.Int("needs_confirmation", len(result.Coverage.NeedsConfirmation)))
	emitProgress(&opts, runID, StepCoverage, CategoryTailoring, "Computed keyword coverage", result.Coverage)

	log.Info(StepAssemble, zap.String("template", opts.Template))
	latex, err := assemble.Assemble(tailored, opts.Template)
	if err != nil {
		return nil, fmt.Errorf("assembly failed: %w", err)
	}
	result.LaTeX = latex
	emitProgress(&opts, runID, StepAssemble, CategoryOutput, "Assembled LaTeX document", nil)

	if opts.Compiler != nil {
		log.Info(StepRender)
		pdf, err := opts.Compiler.Compile(ctx, latex)
		if err != nil {
			var unavailable *render.UnavailableError
			if errors.As(err, &unavailable) {
				log.Warn(StepRender, zap.String("note", "latexmk not installed, keeping .tex output only"))
			} else {
				return nil, fmt.Errorf("pdf rendering failed: %w", err)
			}
		} else {
			result.PDF = pdf
			emitProgress(&opts, runID, StepRender, CategoryOutput, "Rendered PDF", nil)
		}
	}

	return result, nil
}
