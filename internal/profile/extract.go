// Package profile implements the structured profile extractor: it turns
// normalized resume text into a validated CandidateProfile in which every
// fact is traceable to the input, dropping or rejecting anything that is not.
package profile

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/jonathan/resume-tailor/internal/llm"
	"github.com/jonathan/resume-tailor/internal/prompts"
	"github.com/jonathan/resume-tailor/internal/schemas"
	"github.com/jonathan/resume-tailor/internal/types"
)

var structValidator = validator.New()

// DroppedFact records a value removed by the grounding check or struct
// validation. These feed the missing/needs-confirmation panel downstream:
// dropping must be visible, never silent.
type DroppedFact struct {
	Field  string `json:"field"`
	Value  string `json:"value"`
	Reason string `json:"reason"`
}

// Result is the extractor output: the grounded profile plus what was
// dropped on the way and whether the corrective retry was needed.
type Result struct {
	Profile   *types.CandidateProfile
	Dropped   []DroppedFact
	Corrected bool
}

// Extract sends normalized resume text to the backend under the candidate
// profile schema contract, then enforces the grounding invariant on the
// parsed result. Fails with *SchemaError when the output cannot be parsed
// after the corrective retry, *GroundingViolationError when an identity
// field is fabricated, and *APICallError on backend faults.
func Extract(ctx context.Context, client llm.Client, sourceText string) (*Result, error) {
	loop, err := llm.NewValidationLoop(schemas.CandidateProfile())
	if err != nil {
		return nil, &SchemaError{Message: "failed to compile candidate profile schema", Cause: err}
	}

	extractPrompt := prompts.Format(prompts.MustGet("extraction.json", "extract-profile"), map[string]string{
		"ResumeText": sourceText,
	})

	generate := func(ctx context.Context) (string, error) {
		text, err := client.GenerateJSON(ctx, extractPrompt)
		if err != nil {
			return "", &APICallError{Message: "profile extraction call failed", Cause: err}
		}
		return text, nil
	}

	correct := func(ctx context.Context, raw, problem string) (string, error) {
		correction := prompts.Format(prompts.MustGet("extraction.json", "correct-json"), map[string]string{
			"Problem":  problem,
			"Previous": raw,
		})
		text, err := client.GenerateJSON(ctx, correction)
		if err != nil {
			return "", &APICallError{Message: "profile extraction correction call failed", Cause: err}
		}
		return text, nil
	}

	outcome, err := loop.Run(ctx, generate, correct)
	if err != nil {
		var apiErr *APICallError
		if errors.As(err, &apiErr) {
			return nil, apiErr
		}
		return nil, &SchemaError{Message: "backend output did not match the candidate profile schema", Cause: err}
	}

	var parsed types.CandidateProfile
	if err := json.Unmarshal([]byte(outcome.JSON), &parsed); err != nil {
		return nil, &SchemaError{Message: "failed to decode validated profile JSON", Cause: err}
	}

	result := &Result{Profile: &parsed, Corrected: outcome.Corrected}

	sanitizeProfile(result)
	if err := enforceGrounding(result, sourceText); err != nil {
		return nil, err
	}

	return result, nil
}

// sanitizeProfile trims fields, deduplicates skills (case-insensitive,
// keeping the first casing seen) and clears struct-level invalid values such
// as a malformed email address.
func sanitizeProfile(result *Result) {
	p := result.Profile

	p.Contact.Name = strings.TrimSpace(p.Contact.Name)
	p.Contact.Email = strings.TrimSpace(p.Contact.Email)
	p.Contact.Phone = strings.TrimSpace(p.Contact.Phone)
	p.Contact.Location = strings.TrimSpace(p.Contact.Location)
	p.Summary = strings.TrimSpace(p.Summary)

	seen := make(map[string]bool)
	skills := make([]string, 0, len(p.Skills))
	for _, skill := range p.Skills {
		skill = strings.TrimSpace(skill)
		key := strings.ToLower(skill)
		if skill == "" || seen[key] {
			continue
		}
		seen[key] = true
		skills = append(skills, skill)
	}
	p.Skills = skills

	if err := structValidator.Struct(p); err != nil {
		// The only tagged constraint today is the email format; an invalid
		// email is cleared and flagged rather than fatal.
		if p.Contact.Email != "" {
			result.Dropped = append(result.Dropped, DroppedFact{
				Field:  "contact.email",
				Value:  p.Contact.Email,
				Reason: "not a valid email address",
			})
			p.Contact.Email = ""
		}
	}
}

// enforceGrounding verifies every atomic fact against the source text.
// Identity fields (contact name, email) fail hard; everything else is
// dropped or cleared, with a record for the downstream panel.
func enforceGrounding(result *Result, sourceText string) error {
	p := result.Profile

	if p.Contact.Name != "" && !GroundedIn(p.Contact.Name, sourceText) {
		return &GroundingViolationError{Field: "contact.name", Value: p.Contact.Name}
	}
	if p.Contact.Email != "" && !GroundedIn(p.Contact.Email, sourceText) {
		return &GroundingViolationError{Field: "contact.email", Value: p.Contact.Email}
	}

	drop := func(field, value, reason string) {
		result.Dropped = append(result.Dropped, DroppedFact{Field: field, Value: value, Reason: reason})
	}

	if p.Contact.Phone != "" && !GroundedIn(p.Contact.Phone, sourceText) {
		drop("contact.phone", p.Contact.Phone, "not found in source text")
		p.Contact.Phone = ""
	}
	if p.Contact.Location != "" && !GroundedIn(p.Contact.Location, sourceText) {
		drop("contact.location", p.Contact.Location, "not found in source text")
		p.Contact.Location = ""
	}
	if p.Summary != "" && !GroundedIn(p.Summary, sourceText) {
		drop("summary", p.Summary, "not derivable from source text")
		p.Summary = ""
	}

	skills := p.Skills[:0]
	for _, skill := range p.Skills {
		if GroundedIn(skill, sourceText) {
			skills = append(skills, skill)
		} else {
			drop("skills", skill, "not found in source text")
		}
	}
	p.Skills = skills

	experience := make([]types.Experience, 0, len(p.Experience))
	for i, exp := range p.Experience {
		if exp.Employer != "" && !GroundedIn(exp.Employer, sourceText) {
			drop(fmt.Sprintf("experience[%d].employer", i), exp.Employer, "employer not found in source text; role dropped")
			continue
		}
		if exp.Title != "" && !GroundedIn(exp.Title, sourceText) {
			drop(fmt.Sprintf("experience[%d].title", i), exp.Title, "title not found in source text; role dropped")
			continue
		}
		if exp.Start != "" && !GroundedIn(exp.Start, sourceText) {
			drop(fmt.Sprintf("experience[%d].start", i), exp.Start, "start date not found in source text")
			exp.Start = ""
		}
		if exp.End != "" && !GroundedIn(exp.End, sourceText) {
			drop(fmt.Sprintf("experience[%d].end", i), exp.End, "end date not found in source text")
			exp.End = ""
		}

		bullets := make([]types.Bullet, 0, len(exp.Bullets))
		for j, bullet := range exp.Bullets {
			if GroundedIn(bullet.Text, sourceText) {
				bullets = append(bullets, bullet)
			} else {
				drop(fmt.Sprintf("experience[%d].bullets[%d]", i, j), bullet.Text, "not found in source text")
			}
		}
		exp.Bullets = bullets
		experience = append(experience, exp)
	}
	p.Experience = experience

	education := make([]types.Education, 0, len(p.Education))
	for i, edu := range p.Education {
		if edu.Institution != "" && !GroundedIn(edu.Institution, sourceText) {
			drop(fmt.Sprintf("education[%d].institution", i), edu.Institution, "institution not found in source text; entry dropped")
			continue
		}
		if edu.Degree != "" && !GroundedIn(edu.Degree, sourceText) {
			drop(fmt.Sprintf("education[%d].degree", i), edu.Degree, "degree not found in source text")
			edu.Degree = ""
		}
		education = append(education, edu)
	}
	p.Education = education

	return nil
}
