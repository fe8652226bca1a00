package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/jonathan/resume-tailor/internal/config"
	"github.com/jonathan/resume-tailor/internal/extraction"
	"github.com/jonathan/resume-tailor/internal/jobdesc"
	"github.com/jonathan/resume-tailor/internal/llm"
)

var analyzeCommand = &cobra.Command{
	Use:   "analyze",
	Short: "Analyze a job description into structured requirements",
	Long:  "Runs only the job analysis stage and prints the required skills, preferred skills and keywords as JSON.",
	RunE:  runAnalyzeCmd,
}

var (
	analyzeJob    string
	analyzeModel  string
	analyzeAPIKey string
)

func init() {
	analyzeCommand.Flags().StringVarP(&analyzeJob, "job", "j", "", "Path to the job description text file")
	analyzeCommand.Flags().StringVar(&analyzeModel, "model", "", "Model identifier")
	analyzeCommand.Flags().StringVar(&analyzeAPIKey, "api-key", "", "Gemini API key (defaults to GEMINI_API_KEY env var or the stored key)")
	_ = analyzeCommand.MarkFlagRequired("job")

	rootCmd.AddCommand(analyzeCommand)
}

func runAnalyzeCmd(_ *cobra.Command, _ []string) error {
	ctx := context.Background()

	cfg := (&config.Config{Model: analyzeModel, APIKey: analyzeAPIKey}).MergeWithDefaults(config.Config{})
	apiKey, err := resolveAPIKey(&cfg)
	if err != nil {
		return err
	}

	source, err := extraction.ExtractDocument(analyzeJob)
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

	reqs, err := jobdesc.Analyze(ctx, client, source.Text)
	if err != nil {
		return err
	}

	encoder := json.NewEncoder(os.Stdout)
	encoder.SetIndent("", "  ")
	return encoder.Encode(reqs)
}
