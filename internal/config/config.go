// Package config provides configuration loading and validation for the CLI.
package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/jonathan/resume-tailor/internal/assemble"
	"github.com/jonathan/resume-tailor/internal/llm"
)

// Config represents the CLI configuration that can be loaded from a JSON file.
// All fields are optional; missing values use defaults or must be provided via CLI flags.
type Config struct {
	// Paths
	Resume string `json:"resume,omitempty"` // Path to the resume document (pdf, html or txt)
	Job    string `json:"job,omitempty"`    // Path to the job description text file
	OutTex string `json:"out_tex,omitempty"` // Where to write the generated LaTeX
	OutPDF string `json:"out_pdf,omitempty"` // Where to write the compiled PDF

	// Backend
	Provider string `json:"provider,omitempty"` // LLM provider name
	Model    string `json:"model,omitempty"`    // Model identifier
	APIKey   string `json:"api_key,omitempty"`  // API key; prefer the credential store over this

	// Output
	Template string `json:"template,omitempty"` // Bundled template identifier
	Verbose  bool   `json:"verbose,omitempty"`  // Print detailed debug information
}

// LoadConfig loads configuration from a JSON file.
// Returns an error if the file cannot be read or parsed.
func LoadConfig(path string) (*Config, error) {
	if path == "" {
		return nil, fmt.Errorf("config path is empty")
	}

	if !filepath.IsAbs(path) {
		cwd, err := os.Getwd()
		if err != nil {
			return nil, fmt.Errorf("failed to get current directory: %w", err)
		}
		path = filepath.Join(cwd, path)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
	}

	var cfg Config
	if err := json.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config JSON: %w", err)
	}

	return &cfg, nil
}

// Validate checks that the configuration has valid values.
// Note: This doesn't check for required fields since those are handled
// by CLI flag validation after merging.
func (c *Config) Validate() error {
	if c.Template != "" {
		known := false
		for _, id := range assemble.Templates() {
			if c.Template == id {
				known = true
				break
			}
		}
		if !known {
			return fmt.Errorf("config error: unknown template %q (available: %v)", c.Template, assemble.Templates())
		}
	}

	if c.Resume != "" {
		if _, err := os.Stat(c.Resume); os.IsNotExist(err) {
			return fmt.Errorf("config error: resume file not found: %s", c.Resume)
		}
	}

	if c.Job != "" {
		if _, err := os.Stat(c.Job); os.IsNotExist(err) {
			return fmt.Errorf("config error: job file not found: %s", c.Job)
		}
	}

	return nil
}

// MergeWithDefaults returns a new Config with empty string fields filled from defaults.
// This is used to apply config file values as defaults for CLI flags.
func (c *Config) MergeWithDefaults(defaults Config) Config {
	result := *c

	if result.Resume == "" {
		result.Resume = defaults.Resume
	}
	if result.Job == "" {
		result.Job = defaults.Job
	}
	if result.OutTex == "" {
		result.OutTex = defaults.OutTex
	}
	if result.OutPDF == "" {
		result.OutPDF = defaults.OutPDF
	}
	if result.Provider == "" {
		result.Provider = defaults.Provider
	}
	if result.Model == "" {
		result.Model = defaults.Model
	}
	if result.APIKey == "" {
		result.APIKey = defaults.APIKey
	}
	if result.Template == "" {
		result.Template = defaults.Template
	}

	if result.Provider == "" {
		result.Provider = string(llm.ProviderGemini)
	}
	if result.Model == "" {
		result.Model = os.Getenv("TAILOR_MODEL")
	}
	if result.Model == "" {
		result.Model = llm.DefaultModel
	}
	if result.Template == "" {
		result.Template = assemble.TemplateModern
	}

	// Bool fields: cannot distinguish unset from false, so we don't merge
	// (CLI flags should always win for bools)

	return result
}
