package prompts

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGetKnownPrompts(t *testing.T) {
	tests := []struct {
		filename string
		key      string
		contains string
	}{
		{"extraction.json", "extract-profile", "{{.ResumeText}}"},
		{"extraction.json", "correct-json", "{{.Problem}}"},
		{"jobdesc.json", "analyze-job", "{{.JobText}}"},
		{"tailoring.json", "tailor-profile", "{{.ProfileJSON}}"},
		{"tailoring.json", "correct-json", "{{.Previous}}"},
	}

	for _, tt := range tests {
		t.Run(tt.filename+"/"+tt.key, func(t *testing.T) {
			prompt, err := Get(tt.filename, tt.key)
			require.NoError(t, err)
			assert.Contains(t, prompt, tt.contains)
		})
	}
}

func TestGetMissingKey(t *testing.T) {
	_, err := Get("extraction.json", "no-such-key")
	require.Error(t, err)

	_, err = Get("no-such-file.json", "extract-profile")
	require.Error(t, err)
}

func TestFormat(t *testing.T) {
	result := Format("Hello {{.Name}}, {{.Name}} again: {{.Other}}", map[string]string{
		"Name":  "Alex",
		"Other": "bye",
	})
	assert.Equal(t, "Hello Alex, Alex again: bye", result)
}

func TestTailoringPromptForbidsFabrication(t *testing.T) {
	prompt := MustGet("tailoring.json", "tailor-profile")
	assert.True(t, strings.Contains(prompt, "ZERO fabrication"))
	assert.Contains(t, prompt, "unsupported_requirements")
}
