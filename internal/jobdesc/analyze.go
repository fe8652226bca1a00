// Package jobdesc analyzes job description text into a structured
// JobRequirements value: required skills, preferred skills and the keyword
// set a resume screen would scan for.
package jobdesc

import (
	"context"
	"encoding/json"
	"errors"
	"strings"

	"github.com/jonathan/resume-tailor/internal/llm"
	"github.com/jonathan/resume-tailor/internal/prompts"
	"github.com/jonathan/resume-tailor/internal/schemas"
	"github.com/jonathan/resume-tailor/internal/types"
)

// Analyze sends job description text to the backend under the job
// requirements schema contract. The job text is authoritative for its own
// demands, so no grounding pass runs here; the output is normalized instead:
// skills deduplicated preserving casing, keywords lowercased and deduplicated.
func Analyze(ctx context.Context, client llm.Client, jobText string) (*types.JobRequirements, error) {
	loop, err := llm.NewValidationLoop(schemas.JobRequirements())
	if err != nil {
		return nil, &SchemaError{Message: "failed to compile job requirements schema", Cause: err}
	}

	analyzePrompt := prompts.Format(prompts.MustGet("jobdesc.json", "analyze-job"), map[string]string{
		"JobText": jobText,
	})

	generate := func(ctx context.Context) (string, error) {
		text, err := client.GenerateJSON(ctx, analyzePrompt)
		if err != nil {
			return "", &APICallError{Message: "job analysis call failed", Cause: err}
		}
		return text, nil
	}

	correct := func(ctx context.Context, raw, problem string) (string, error) {
		correction := prompts.Format(prompts.MustGet("jobdesc.json", "correct-json"), map[string]string{
			"Problem":  problem,
			"Previous": raw,
		})
		text, err := client.GenerateJSON(ctx, correction)
		if err != nil {
			return "", &APICallError{Message: "job analysis correction call failed", Cause: err}
		}
		return text, nil
	}

	outcome, err := loop.Run(ctx, generate, correct)
	if err != nil {
		var apiErr *APICallError
		if errors.As(err, &apiErr) {
			return nil, apiErr
		}
		return nil, &SchemaError{Message: "backend output did not match the job requirements schema", Cause: err}
	}

	var reqs types.JobRequirements
	if err := json.Unmarshal([]byte(outcome.JSON), &reqs); err != nil {
		return nil, &SchemaError{Message: "failed to decode validated requirements JSON", Cause: err}
	}

	normalizeRequirements(&reqs)
	return &reqs, nil
}

// normalizeRequirements trims and deduplicates the three lists. Skill lists
// keep the first casing seen so the display stays faithful to the posting;
// keywords are lowercased because they exist only for matching.
func normalizeRequirements(reqs *types.JobRequirements) {
	reqs.RequiredSkills = dedupePreservingCase(reqs.RequiredSkills)
	reqs.PreferredSkills = dedupePreservingCase(reqs.PreferredSkills)

	seen := make(map[string]bool)
	keywords := make([]string, 0, len(reqs.Keywords))
	for _, kw := range reqs.Keywords {
		kw = strings.ToLower(strings.TrimSpace(kw))
		if kw == "" || seen[kw] {
			continue
		}
		seen[kw] = true
		keywords = append(keywords, kw)
	}
	reqs.Keywords = keywords
}

func dedupePreservingCase(values []string) []string {
	seen := make(map[string]bool)
	out := make([]string, 0, len(values))
	for _, v := range values {
		v = strings.TrimSpace(v)
		key := strings.ToLower(v)
		if v == "" || seen[key] {
			continue
		}
		seen[key] = true
		out = append(out, v)
	}
	return out
}
