// Package llm provides the generation backend abstraction used by the
// extraction and tailoring stages: provider configuration, a client
// interface, and a validate-or-retry loop for schema-constrained output.
package llm

import "time"

// Provider identifies an LLM provider.
type Provider string

// Supported providers. Only Gemini is implemented today; the Client
// interface is the seam for adding more.
const (
	ProviderGemini Provider = "gemini"
)

// DefaultModel is used when no model name is configured.
const DefaultModel = "gemini-2.5-flash"

// DefaultTimeout bounds a single backend call, including its one retry.
const DefaultTimeout = 90 * time.Second

// Config holds backend configuration. It is injected explicitly through the
// pipeline rather than read from ambient process state.
type Config struct {
	Provider Provider
	Model    string
	// Timeout bounds each generation call.
	Timeout time.Duration
	// RetryBackoff is the wait before the single retry of a failed call.
	RetryBackoff time.Duration
}

// DefaultConfig returns the default Gemini configuration.
func DefaultConfig() *Config {
	return &Config{
		Provider:     ProviderGemini,
		Model:        DefaultModel,
		Timeout:      DefaultTimeout,
		RetryBackoff: 2 * time.Second,
	}
}

// withDefaults fills zero values so a partially populated config is usable.
func (c *Config) withDefaults() *Config {
	out := *c
	if out.Provider == "" {
		out.Provider = ProviderGemini
	}
	if out.Model == "" {
		out.Model = DefaultModel
	}
	if out.Timeout <= 0 {
		out.Timeout = DefaultTimeout
	}
	if out.RetryBackoff <= 0 {
		out.RetryBackoff = 2 * time.Second
	}
	return &out
}
