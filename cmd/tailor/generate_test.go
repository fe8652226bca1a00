package main

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateCommandFlags(t *testing.T) {
	flags := generateCommand.Flags()

	for _, name := range []string{
		"config", "resume", "job", "template", "out-tex", "out-pdf",
		"provider", "model", "api-key", "pdf", "json", "verbose",
	} {
		assert.NotNil(t, flags.Lookup(name), "flag %s should be registered", name)
	}

	resume := flags.Lookup("resume")
	require.NotNil(t, resume)
	assert.Equal(t, "r", resume.Shorthand)

	provider := flags.Lookup("provider")
	require.NotNil(t, provider)
	assert.Empty(t, provider.DefValue)
}
