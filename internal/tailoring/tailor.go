// Package tailoring rewrites a grounded candidate profile toward a job's
// requirements. The backend proposes rewrites; the trace pass here is the
// authority on what survives: every proposed bullet must be traceable to its
// original or it is reverted, skills stay a subset of the original, and the
// structural fields never change at all.
package tailoring

import (
	"context"
	"encoding/json"
	"errors"
	"strings"

	"github.com/jonathan/resume-tailor/internal/coverage"
	"github.com/jonathan/resume-tailor/internal/llm"
	"github.com/jonathan/resume-tailor/internal/prompts"
	"github.com/jonathan/resume-tailor/internal/schemas"
	"github.com/jonathan/resume-tailor/internal/types"
)

// tailoredResponse is the wire shape of the backend's tailoring output.
type tailoredResponse struct {
	TailoredProfile         types.CandidateProfile `json:"tailored_profile"`
	UnsupportedRequirements []string               `json:"unsupported_requirements"`
}

// Tailor rewrites profile toward reqs and returns the tailored profile with a
// machine-checkable diff. The input profile is never mutated. The diff's
// MissingOrUnconfirmed list is computed here, not taken from the backend, so
// it agrees exactly with what a coverage report of the result would say.
func Tailor(ctx context.Context, client llm.Client, profile *types.CandidateProfile, reqs *types.JobRequirements) (*types.TailoredProfile, *types.TailoringDiff, error) {
	loop, err := llm.NewValidationLoop(schemas.TailoredResume())
	if err != nil {
		return nil, nil, &SchemaError{Message: "failed to compile tailored resume schema", Cause: err}
	}

	profileJSON, err := json.Marshal(profile)
	if err != nil {
		return nil, nil, &SchemaError{Message: "failed to encode profile for tailoring", Cause: err}
	}

	tailorPrompt := prompts.Format(prompts.MustGet("tailoring.json", "tailor-profile"), map[string]string{
		"ProfileJSON":     string(profileJSON),
		"RequiredSkills":  strings.Join(reqs.RequiredSkills, ", "),
		"PreferredSkills": strings.Join(reqs.PreferredSkills, ", "),
		"Keywords":        strings.Join(reqs.Keywords, ", "),
	})

	generate := func(ctx context.Context) (string, error) {
		text, err := client.GenerateJSON(ctx, tailorPrompt)
		if err != nil {
			return "", &BackendError{Message: "tailoring call failed", Cause: err}
		}
		return text, nil
	}

	correct := func(ctx context.Context, raw, problem string) (string, error) {
		correction := prompts.Format(prompts.MustGet("tailoring.json", "correct-json"), map[string]string{
			"Problem":  problem,
			"Previous": raw,
		})
		text, err := client.GenerateJSON(ctx, correction)
		if err != nil {
			return "", &BackendError{Message: "tailoring correction call failed", Cause: err}
		}
		return text, nil
	}

	outcome, err := loop.Run(ctx, generate, correct)
	if err != nil {
		var backendErr *BackendError
		if errors.As(err, &backendErr) {
			return nil, nil, backendErr
		}
		return nil, nil, &SchemaError{Message: "backend output did not match the tailored resume schema", Cause: err}
	}

	var response tailoredResponse
	if err := json.Unmarshal([]byte(outcome.JSON), &response); err != nil {
		return nil, nil, &SchemaError{Message: "failed to decode validated tailoring JSON", Cause: err}
	}

	tailored, changes := reconcile(profile, &response.TailoredProfile)

	report := coverage.NewMatcher().Report(reqs, &tailored.CandidateProfile)
	missing := make([]string, 0, len(report.Missing)+len(report.NeedsConfirmation))
	missing = append(missing, report.Missing...)
	missing = append(missing, report.NeedsConfirmation...)

	diff := &types.TailoringDiff{
		Changes:              changes,
		MissingOrUnconfirmed: sortedUnique(missing),
	}
	return tailored, diff, nil
}
