package assemble

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jonathan/resume-tailor/internal/types"
)

func sampleTailored() *types.TailoredProfile {
	return &types.TailoredProfile{
		CandidateProfile: types.CandidateProfile{
			Contact: types.Contact{
				Name:     "Alex Applicant",
				Email:    "alex@example.com",
				Phone:    "555-0100",
				Location: "Portland, OR",
			},
			Summary: "Backend engineer focused on distributed systems.",
			Skills:  []string{"Go", "PostgreSQL"},
			Experience: []types.Experience{
				{
					Employer: "Acme Corporation",
					Title:    "Senior Engineer",
					Start:    "2020",
					End:      "2023",
					Bullets: []types.Bullet{
						{Text: "Improved API latency by 30%"},
					},
				},
			},
			Education: []types.Education{
				{Institution: "State University", Degree: "BSc Computer Science", Dates: "2016"},
			},
		},
	}
}

func TestAssembleModern(t *testing.T) {
	doc, err := Assemble(sampleTailored(), TemplateModern)
	require.NoError(t, err)

	assert.Contains(t, doc, `\documentclass`)
	assert.Contains(t, doc, `\begin{document}`)
	assert.Contains(t, doc, `\end{document}`)
	assert.Contains(t, doc, "Alex Applicant")
	assert.Contains(t, doc, "alex@example.com")
	assert.Contains(t, doc, "Senior Engineer")
	assert.Contains(t, doc, "Acme Corporation")
	assert.Contains(t, doc, `Improved API latency by 30\%`)
	assert.Contains(t, doc, "2020 -- 2023")
	assert.Contains(t, doc, "State University")
}

func TestAssembleClassic(t *testing.T) {
	doc, err := Assemble(sampleTailored(), TemplateClassic)
	require.NoError(t, err)

	assert.Contains(t, doc, `\begin{paracol}{2}`)
	assert.Contains(t, doc, "Alex Applicant")
	assert.Contains(t, doc, "PostgreSQL")
	assert.Contains(t, doc, "BSc Computer Science")
}

func TestAssembleUnknownTemplate(t *testing.T) {
	_, err := Assemble(sampleTailored(), "fancy")
	require.Error(t, err)

	var unknownErr *UnknownTemplateError
	require.ErrorAs(t, err, &unknownErr)
	assert.Equal(t, "fancy", unknownErr.TemplateID)
	assert.Equal(t, []string{"classic", "modern"}, unknownErr.Known)
}

func TestAssembleEscapesEveryField(t *testing.T) {
	profile := sampleTailored()
	profile.Contact.Name = "A&B_Candidate"
	profile.Summary = "Raised revenue 50% & cut costs #1"
	profile.Skills = []string{"C_Sharp"}
	profile.Experience[0].Employer = "Proctor & Gamble"
	profile.Experience[0].Bullets[0].Text = "Handled $2M budget with ~5 reports"

	doc, err := Assemble(profile, TemplateModern)
	require.NoError(t, err)

	assert.Contains(t, doc, `A\&B\_Candidate`)
	assert.Contains(t, doc, `Raised revenue 50\% \& cut costs \#1`)
	assert.Contains(t, doc, `C\_Sharp`)
	assert.Contains(t, doc, `Proctor \& Gamble`)
	assert.Contains(t, doc, `Handled \$2M budget with \textasciitilde{}5 reports`)
	assert.NotContains(t, doc, "Proctor & Gamble")
}

func TestAssembleOpenEndedRole(t *testing.T) {
	profile := sampleTailored()
	profile.Experience[0].End = ""

	doc, err := Assemble(profile, TemplateModern)
	require.NoError(t, err)

	assert.Contains(t, doc, "2020 -- Present")
}

func TestAssembleEmptySectionsOmitted(t *testing.T) {
	profile := &types.TailoredProfile{
		CandidateProfile: types.CandidateProfile{
			Contact: types.Contact{Name: "Minimal Person"},
		},
	}

	doc, err := Assemble(profile, TemplateModern)
	require.NoError(t, err)

	assert.NotContains(t, doc, `\section{Summary}`)
	assert.NotContains(t, doc, `\section{Skills}`)
	assert.NotContains(t, doc, `\section{Experience}`)
	assert.NotContains(t, doc, `\section{Education}`)
	assert.Contains(t, doc, "Minimal Person")
}

func TestEscapeLaTeX(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{name: "empty", input: "", expected: ""},
		{name: "plain", input: "hello world", expected: "hello world"},
		{name: "ampersand", input: "R&D", expected: `R\&D`},
		{name: "percent", input: "30%", expected: `30\%`},
		{name: "underscore", input: "snake_case", expected: `snake\_case`},
		{name: "hash", input: "#1", expected: `\#1`},
		{name: "dollar", input: "$5", expected: `\$5`},
		{name: "braces", input: "{x}", expected: `\{x\}`},
		{name: "backslash", input: `a\b`, expected: `a\textbackslash{}b`},
		{name: "caret", input: "x^2", expected: `x\textasciicircum{}2`},
		{name: "tilde", input: "~home", expected: `\textasciitilde{}home`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, EscapeLaTeX(tt.input))
		})
	}
}

func TestTemplatesSorted(t *testing.T) {
	assert.Equal(t, []string{"classic", "modern"}, Templates())
}
