package main

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/jonathan/resume-tailor/internal/config"
	"github.com/jonathan/resume-tailor/internal/credentials"
	"github.com/jonathan/resume-tailor/internal/llm"
	"github.com/jonathan/resume-tailor/internal/logger"
	"github.com/jonathan/resume-tailor/internal/observability"
	"github.com/jonathan/resume-tailor/internal/pipeline"
	"github.com/jonathan/resume-tailor/internal/render"
)

var generateCommand = &cobra.Command{
	Use:   "generate",
	Short: "Run the full tailoring pipeline end-to-end",
	Long: `Extracts a structured profile from the resume, analyzes the job description, tailors the resume toward the job and writes the assembled LaTeX document (and a PDF when latexmk is installed).

Configuration can be loaded from a JSON file using --config. Command-line arguments override config file values.`,
	RunE: runGenerateCmd,
}

var (
	genConfigPath string
	genResume     string
	genJob        string
	genTemplate   string
	genOutTex     string
	genOutPDF     string
	genProvider   string
	genModel      string
	genAPIKey     string
	genPDF        bool
	genJSONLogs   bool
	genVerbose    bool
)

func init() {
	generateCommand.Flags().StringVar(&genConfigPath, "config", "", "Path to config.json file (values can be overridden by other flags)")

	generateCommand.Flags().StringVarP(&genResume, "resume", "r", "", "Path to the resume document (pdf, html or txt)")
	generateCommand.Flags().StringVarP(&genJob, "job", "j", "", "Path to the job description text file")
	generateCommand.Flags().StringVarP(&genTemplate, "template", "t", "", "Bundled template identifier (see `tailor templates`)")
	generateCommand.Flags().StringVar(&genOutTex, "out-tex", "", "Where to write the generated LaTeX (default resume.tex)")
	generateCommand.Flags().StringVar(&genOutPDF, "out-pdf", "", "Where to write the compiled PDF (default resume.pdf)")
	generateCommand.Flags().StringVar(&genProvider, "provider", "", "LLM provider name")
	generateCommand.Flags().StringVar(&genModel, "model", "", "Model identifier")
	generateCommand.Flags().BoolVar(&genPDF, "pdf", false, "Compile the LaTeX output to PDF with latexmk")
	generateCommand.Flags().BoolVar(&genJSONLogs, "json", false, "Emit logs as JSON")
	generateCommand.Flags().BoolVarP(&genVerbose, "verbose", "v", false, "Print detailed debug information")

	// API key can be passed as a flag, or read from env var GEMINI_API_KEY,
	// or from the credential store (`tailor key set`).
	generateCommand.Flags().StringVar(&genAPIKey, "api-key", "", "Gemini API key (defaults to GEMINI_API_KEY env var or the stored key)")

	rootCmd.AddCommand(generateCommand)
}

func runGenerateCmd(cmd *cobra.Command, _ []string) error {
	ctx := context.Background()

	var cfg config.Config
	if genConfigPath != "" {
		loadedCfg, err := config.LoadConfig(genConfigPath)
		if err != nil {
			return fmt.Errorf("failed to load config: %w", err)
		}
		if err := loadedCfg.Validate(); err != nil {
			return err
		}
		cfg = *loadedCfg
	}

	// Command-line args take priority; only override if the flag was set.
	if cmd.Flags().Changed("resume") {
		cfg.Resume = genResume
	}
	if cmd.Flags().Changed("job") {
		cfg.Job = genJob
	}
	if cmd.Flags().Changed("template") {
		cfg.Template = genTemplate
	}
	if cmd.Flags().Changed("out-tex") {
		cfg.OutTex = genOutTex
	}
	if cmd.Flags().Changed("out-pdf") {
		cfg.OutPDF = genOutPDF
	}
	if cmd.Flags().Changed("provider") {
		cfg.Provider = genProvider
	}
	if cmd.Flags().Changed("model") {
		cfg.Model = genModel
	}
	if cmd.Flags().Changed("api-key") {
		cfg.APIKey = genAPIKey
	}
	if cmd.Flags().Changed("verbose") {
		cfg.Verbose = genVerbose
	}

	cfg = cfg.MergeWithDefaults(config.Config{
		OutTex: "resume.tex",
		OutPDF: "resume.pdf",
	})

	if cfg.Resume == "" {
		return fmt.Errorf("--resume is required (via flag or config)")
	}
	if cfg.Job == "" {
		return fmt.Errorf("--job is required (via flag or config)")
	}

	apiKey, err := resolveAPIKey(&cfg)
	if err != nil {
		return err
	}

	log, err := logger.New(genJSONLogs, cfg.Verbose)
	if err != nil {
		return fmt.Errorf("failed to build logger: %w", err)
	}
	defer func() { _ = log.Sync() }()

	client, err := llm.NewClient(ctx, &llm.Config{
		Provider: llm.Provider(cfg.Provider),
		Model:    cfg.Model,
	}, apiKey)
	if err != nil {
		return fmt.Errorf("failed to create %s client: %w", cfg.Provider, err)
	}
	defer func() { _ = client.Close() }()

	opts := pipeline.RunOptions{
		ResumePath: cfg.Resume,
		JobPath:    cfg.Job,
		Template:   cfg.Template,
		Client:     client,
		Logger:     log,
	}
	if genPDF {
		opts.Compiler = render.NewCompiler()
	}

	result, err := pipeline.Run(ctx, opts)
	if err != nil {
		return err
	}

	if cfg.Verbose {
		printer := observability.NewPrinter(os.Stdout)
		printer.PrintProfile(result.Profile)
		printer.PrintRequirements(result.Requirements)
		printer.PrintDropped(result.Dropped)
		printer.PrintDiff(result.Diff)
		printer.PrintCoverage(result.Coverage)
	}

	if err := os.WriteFile(cfg.OutTex, []byte(result.LaTeX), 0o644); err != nil {
		return fmt.Errorf("failed to write %s: %w", cfg.OutTex, err)
	}
	log.Info("wrote latex", zap.String("path", cfg.OutTex))

	if result.PDF != nil {
		if err := os.WriteFile(cfg.OutPDF, result.PDF, 0o644); err != nil {
			return fmt.Errorf("failed to write %s: %w", cfg.OutPDF, err)
		}
		log.Info("wrote pdf", zap.String("path", cfg.OutPDF))
	}

	return nil
}

// resolveAPIKey returns the key to use, in priority order: explicit config or
// flag, environment, credential store. The key itself is never logged.
func resolveAPIKey(cfg *config.Config) (string, error) {
	if cfg.APIKey != "" {
		return cfg.APIKey, nil
	}
	if key := os.Getenv("GEMINI_API_KEY"); key != "" {
		return key, nil
	}

	store, err := credentials.NewStore()
	if err != nil {
		return "", err
	}
	key, err := store.Get(cfg.Provider)
	if err != nil {
		return "", err
	}
	return key, nil
}
