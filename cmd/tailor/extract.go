package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/jonathan/resume-tailor/internal/config"
	"github.com/jonathan/resume-tailor/internal/extraction"
	"github.com/jonathan/resume-tailor/internal/llm"
	"github.com/jonathan/resume-tailor/internal/normalize"
	"github.com/jonathan/resume-tailor/internal/profile"
)

var extractCommand = &cobra.Command{
	Use:   "extract",
	Short: "Extract a structured profile from a resume document",
	Long:  "Runs only the extraction stage: document text extraction, normalization and grounded profile extraction. Prints the profile as JSON, along with any facts dropped by the grounding check.",
	RunE:  runExtractCmd,
}

var (
	extractResume string
	extractModel  string
	extractAPIKey string
)

func init() {
	extractCommand.Flags().StringVarP(&extractResume, "resume", "r", "", "Path to the resume document (pdf, html or txt)")
	extractCommand.Flags().StringVar(&extractModel, "model", "", "Model identifier")
	extractCommand.Flags().StringVar(&extractAPIKey, "api-key", "", "Gemini API key (defaults to GEMINI_API_KEY env var or the stored key)")
	_ = extractCommand.MarkFlagRequired("resume")

	rootCmd.AddCommand(extractCommand)
}

// extractOutput is the JSON shape printed by the extract command.
type extractOutput struct {
	Profile   any  `json:"profile"`
	Dropped   any  `json:"dropped,omitempty"`
	Corrected bool `json:"corrected,omitempty"`
}

func runExtractCmd(_ *cobra.Command, _ []string) error {
	ctx := context.Background()

	cfg := (&config.Config{Model: extractModel, APIKey: extractAPIKey}).MergeWithDefaults(config.Config{})
	apiKey, err := resolveAPIKey(&cfg)
	if err != nil {
		return err
	}

	source, err := extraction.ExtractDocument(extractResume)
	if err != nil {
		return err
	}

	normalized, err := normalize.New().Normalize(source)
	if err != nil {
		return err
	}

	client, err := llm.NewClient(ctx, &llm.Config{
		Provider: llm.Provider(cfg.Provider),
		Model:    cfg.Model,
	}, apiKey)
	if err != nil {
		return fmt.Errorf("failed to create %s client: %w", cfg.Provider, err)
	}
	defer func() { _ = client.Close() }()

	result, err := profile.Extract(ctx, client, normalized)
	if err != nil {
		return err
	}

	encoder := json.NewEncoder(os.Stdout)
	encoder.SetIndent("", "  ")
	return encoder.Encode(extractOutput{
		Profile:   result.Profile,
		Dropped:   result.Dropped,
		Corrected: result.Corrected,
	})
}
