package tailoring

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jonathan/resume-tailor/internal/coverage"
	"github.com/jonathan/resume-tailor/internal/llm/llmtest"
	"github.com/jonathan/resume-tailor/internal/types"
)

func baseProfile() *types.CandidateProfile {
	return &types.CandidateProfile{
		Contact: types.Contact{Name: "Alex Applicant", Email: "alex@example.com"},
		Summary: "Backend engineer focused on distributed systems.",
		Skills:  []string{"Go", "Python", "PostgreSQL"},
		Experience: []types.Experience{
			{
				Employer: "Acme Corporation",
				Title:    "Senior Engineer",
				Start:    "2020",
				End:      "2023",
				Bullets: []types.Bullet{
					{Text: "Improved API latency by 30% by introducing request coalescing"},
					{Text: "Led migration of billing services to PostgreSQL"},
				},
			},
		},
		Education: []types.Education{
			{Institution: "State University", Degree: "BSc Computer Science", Dates: "2016"},
		},
	}
}

func baseRequirements() *types.JobRequirements {
	return &types.JobRequirements{
		RequiredSkills:  []string{"Go", "PostgreSQL"},
		PreferredSkills: []string{"Kubernetes"},
		Keywords:        []string{"go", "postgresql", "kubernetes", "latency"},
	}
}

// scriptedTailoring wraps a proposal into the response shape the schema expects.
func scriptedTailoring(t *testing.T, proposal *types.CandidateProfile, unsupported []string) string {
	t.Helper()
	if unsupported == nil {
		unsupported = []string{}
	}
	data, err := json.Marshal(map[string]any{
		"tailored_profile":         proposal,
		"unsupported_requirements": unsupported,
	})
	require.NoError(t, err)
	return string(data)
}

func TestTailorAcceptsTraceableRewrite(t *testing.T) {
	proposal := baseProfile()
	proposal.Experience[0].Bullets[0].Text = "Introduced request coalescing, improving API latency by 30%"
	client := &llmtest.ScriptedClient{Responses: []string{scriptedTailoring(t, proposal, nil)}}

	tailored, diff, err := Tailor(context.Background(), client, baseProfile(), baseRequirements())
	require.NoError(t, err)

	assert.Equal(t, "Introduced request coalescing, improving API latency by 30%",
		tailored.Experience[0].Bullets[0].Text)
	require.Len(t, diff.Changes, 1)
	assert.Equal(t, "Improved API latency by 30% by introducing request coalescing",
		diff.Changes[0].OriginalBullet)
	assert.Equal(t, tailored.Experience[0].Bullets[0].Text, diff.Changes[0].TailoredBullet)
}

func TestTailorRevertsDroppedMetric(t *testing.T) {
	proposal := baseProfile()
	proposal.Experience[0].Bullets[0].Text = "Improved API latency substantially by introducing request coalescing"
	client := &llmtest.ScriptedClient{Responses: []string{scriptedTailoring(t, proposal, nil)}}

	tailored, diff, err := Tailor(context.Background(), client, baseProfile(), baseRequirements())
	require.NoError(t, err)

	assert.Equal(t, "Improved API latency by 30% by introducing request coalescing",
		tailored.Experience[0].Bullets[0].Text)
	require.Len(t, diff.Changes, 1)
	assert.Equal(t, diff.Changes[0].OriginalBullet, diff.Changes[0].TailoredBullet)
	assert.Contains(t, diff.Changes[0].Rationale, "reverted")
	assert.Contains(t, diff.Changes[0].Rationale, "30%")
}

func TestTailorRevertsInventedMetric(t *testing.T) {
	proposal := baseProfile()
	proposal.Experience[0].Bullets[0].Text = "Improved API latency by 30% and cut infrastructure costs by 99% by introducing request coalescing"
	client := &llmtest.ScriptedClient{Responses: []string{scriptedTailoring(t, proposal, nil)}}

	tailored, diff, err := Tailor(context.Background(), client, baseProfile(), baseRequirements())
	require.NoError(t, err)

	assert.Equal(t, "Improved API latency by 30% by introducing request coalescing",
		tailored.Experience[0].Bullets[0].Text)
	assert.NotContains(t, tailored.Experience[0].Bullets[0].Text, "99%")
	require.Len(t, diff.Changes, 1)
	assert.Contains(t, diff.Changes[0].Rationale, "reverted")
	assert.Contains(t, diff.Changes[0].Rationale, "99%")
}

func TestTailorRevertsUnrelatedRewrite(t *testing.T) {
	proposal := baseProfile()
	proposal.Experience[0].Bullets[1].Text = "Architected cloud-native infrastructure at planetary scale"
	client := &llmtest.ScriptedClient{Responses: []string{scriptedTailoring(t, proposal, nil)}}

	tailored, diff, err := Tailor(context.Background(), client, baseProfile(), baseRequirements())
	require.NoError(t, err)

	assert.Equal(t, "Led migration of billing services to PostgreSQL",
		tailored.Experience[0].Bullets[1].Text)
	require.Len(t, diff.Changes, 1)
	assert.Contains(t, diff.Changes[0].Rationale, "no token overlap")
}

func TestTailorSkillsStaySubset(t *testing.T) {
	proposal := baseProfile()
	proposal.Skills = []string{"PostgreSQL", "Go", "Kubernetes"} // Kubernetes was never in the profile
	client := &llmtest.ScriptedClient{Responses: []string{scriptedTailoring(t, proposal, nil)}}

	tailored, _, err := Tailor(context.Background(), client, baseProfile(), baseRequirements())
	require.NoError(t, err)

	assert.Equal(t, []string{"PostgreSQL", "Go"}, tailored.Skills)
}

func TestTailorStructuralFieldsUnchanged(t *testing.T) {
	proposal := baseProfile()
	proposal.Contact.Name = "Someone Else"
	proposal.Experience[0].Employer = "MegaCorp"
	proposal.Experience[0].Start = "2019"
	proposal.Education[0].Degree = "PhD Computer Science"
	client := &llmtest.ScriptedClient{Responses: []string{scriptedTailoring(t, proposal, nil)}}

	tailored, _, err := Tailor(context.Background(), client, baseProfile(), baseRequirements())
	require.NoError(t, err)

	original := baseProfile()
	assert.Equal(t, original.Contact, tailored.Contact)
	assert.Equal(t, original.Experience[0].Employer, tailored.Experience[0].Employer)
	assert.Equal(t, original.Experience[0].Start, tailored.Experience[0].Start)
	assert.Equal(t, original.Education, tailored.Education)
}

func TestTailorInputProfileNotMutated(t *testing.T) {
	proposal := baseProfile()
	proposal.Experience[0].Bullets[0].Text = "Introduced request coalescing, improving API latency by 30%"
	client := &llmtest.ScriptedClient{Responses: []string{scriptedTailoring(t, proposal, nil)}}

	input := baseProfile()
	_, _, err := Tailor(context.Background(), client, input, baseRequirements())
	require.NoError(t, err)

	assert.Equal(t, baseProfile(), input)
}

func TestTailorDiffReconcilesWithCoverage(t *testing.T) {
	client := &llmtest.ScriptedClient{Responses: []string{scriptedTailoring(t, baseProfile(), nil)}}
	reqs := baseRequirements()

	tailored, diff, err := Tailor(context.Background(), client, baseProfile(), reqs)
	require.NoError(t, err)

	report := coverage.NewMatcher().Report(reqs, &tailored.CandidateProfile)
	expected := append([]string{}, report.Missing...)
	expected = append(expected, report.NeedsConfirmation...)
	assert.ElementsMatch(t, expected, diff.MissingOrUnconfirmed)
	assert.Contains(t, diff.MissingOrUnconfirmed, "kubernetes")
}

func TestTailorBackendFailure(t *testing.T) {
	client := &llmtest.ScriptedClient{Err: errors.New("deadline exceeded")}

	_, _, err := Tailor(context.Background(), client, baseProfile(), baseRequirements())
	require.Error(t, err)

	var backendErr *BackendError
	require.ErrorAs(t, err, &backendErr)
}

func TestTailorSchemaErrorAfterRetry(t *testing.T) {
	client := &llmtest.ScriptedClient{Responses: []string{
		`{"tailored_profile": "not an object"}`,
		`no json here either`,
	}}

	_, _, err := Tailor(context.Background(), client, baseProfile(), baseRequirements())
	require.Error(t, err)

	var schemaErr *SchemaError
	require.ErrorAs(t, err, &schemaErr)
	assert.Equal(t, 2, client.Calls())
}

func TestTraceFailure(t *testing.T) {
	tests := []struct {
		name      string
		original  string
		rewritten string
		wantFail  bool
	}{
		{
			name:      "faithful rewording",
			original:  "Led migration of billing services to PostgreSQL",
			rewritten: "Migrated billing services to PostgreSQL, leading the effort",
			wantFail:  false,
		},
		{
			name:      "metric dropped",
			original:  "Cut costs by 40% across three teams",
			rewritten: "Cut costs dramatically across three teams",
			wantFail:  true,
		},
		{
			name:      "metric changed",
			original:  "Cut costs by 40%",
			rewritten: "Cut costs by 60%",
			wantFail:  true,
		},
		{
			name:      "metric invented",
			original:  "Cut costs across three teams",
			rewritten: "Cut costs by 40% across three teams",
			wantFail:  true,
		},
		{
			name:      "original metrics kept, extra one added",
			original:  "Improved API latency by 30%",
			rewritten: "Improved API latency by 30%, saving $2M",
			wantFail:  true,
		},
		{
			name:      "completely unrelated",
			original:  "Led migration of billing services",
			rewritten: "Won a hotdog eating contest",
			wantFail:  true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			reason := traceFailure(tt.original, tt.rewritten)
			if tt.wantFail {
				assert.NotEmpty(t, reason)
			} else {
				assert.Empty(t, reason)
			}
		})
	}
}
