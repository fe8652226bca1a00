//nolint:revive // types is a standard Go package name pattern
package types

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCandidateProfileClone(t *testing.T) {
	original := &CandidateProfile{
		Contact: Contact{Name: "Alex Applicant", Email: "alex@example.com"},
		Summary: "Backend engineer",
		Skills:  []string{"Go", "Python"},
		Experience: []Experience{
			{
				Employer: "Acme",
				Title:    "Engineer",
				Start:    "2020",
				End:      "2023",
				Bullets:  []Bullet{{Text: "Improved latency by 30%"}},
			},
		},
		Education: []Education{{Institution: "State University", Degree: "BSc"}},
	}

	clone := original.Clone()
	require.NotNil(t, clone)
	assert.Equal(t, original, clone)

	// Mutating the clone must not leak into the original.
	clone.Skills[0] = "Rust"
	clone.Experience[0].Bullets[0].Text = "changed"
	clone.Education[0].Degree = "PhD"

	assert.Equal(t, "Go", original.Skills[0])
	assert.Equal(t, "Improved latency by 30%", original.Experience[0].Bullets[0].Text)
	assert.Equal(t, "BSc", original.Education[0].Degree)
}

func TestCandidateProfileCloneNil(t *testing.T) {
	var p *CandidateProfile
	assert.Nil(t, p.Clone())
}

func TestBulletCount(t *testing.T) {
	profile := &CandidateProfile{
		Experience: []Experience{
			{Bullets: []Bullet{{Text: "a"}, {Text: "b"}}},
			{Bullets: []Bullet{{Text: "c"}}},
			{},
		},
	}
	assert.Equal(t, 3, profile.BulletCount())
}

func TestKeywordUniverse(t *testing.T) {
	tests := []struct {
		name     string
		reqs     *JobRequirements
		expected []string
	}{
		{
			name:     "nil requirements",
			reqs:     nil,
			expected: nil,
		},
		{
			name:     "empty requirements",
			reqs:     &JobRequirements{},
			expected: []string{},
		},
		{
			name: "union across all three sets with case folding",
			reqs: &JobRequirements{
				RequiredSkills:  []string{"Python", "Kubernetes"},
				PreferredSkills: []string{"Terraform"},
				Keywords:        []string{"python", "ci/cd"},
			},
			expected: []string{"ci/cd", "kubernetes", "python", "terraform"},
		},
		{
			name: "whitespace and empties dropped",
			reqs: &JobRequirements{
				Keywords: []string{"  Go  ", "", "   "},
			},
			expected: []string{"go"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, tt.reqs.KeywordUniverse())
		})
	}
}
