package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/jonathan/skillbridge/internal/config"
	"github.com/jonathan/skillbridge/internal/pipeline"
	"github.com/jonathan/skillbridge/internal/types"
)

var analyzeCommand = &cobra.Command{
	Use:   "analyze",
	Short: "Analyze skill gaps and generate a training curriculum",
	Long: `Compares a resume against a job description: ingestion -> parsing -> skill extraction -> gap analysis -> curriculum generation -> research enrichment.

Configuration can be loaded from a JSON file using --config. Command-line arguments override config file values.`,
	RunE: runAnalyzeCmd,
}

var (
	analyzeConfigPath  string
	analyzeResume      string
	analyzeJob         string
	analyzeJobURL      string
	analyzeJobTitle    string
	analyzeDomain      string
	analyzeProjectFile string
	analyzeOutput      string
	analyzeAPIKey      string
	analyzeSkipEnrich  bool
	analyzeVerbose     bool
	analyzeDatabaseURL string
)

func init() {
	// Config file flag (processed first)
	analyzeCommand.Flags().StringVar(&analyzeConfigPath, "config", "", "Path to config.json file (values can be overridden by other flags)")

	analyzeCommand.Flags().StringVarP(&analyzeResume, "resume", "r", "", "Path to resume document (.pdf, .txt, .md)")
	analyzeCommand.Flags().StringVarP(&analyzeJob, "job", "j", "", "Path to job posting text file (mutually exclusive with --job-url)")
	analyzeCommand.Flags().StringVar(&analyzeJobURL, "job-url", "", "URL to fetch job posting from (mutually exclusive with --job)")
	analyzeCommand.Flags().StringVar(&analyzeJobTitle, "job-title", "", "Target role title (defaults to Position)")
	analyzeCommand.Flags().StringVar(&analyzeDomain, "domain", "", "Industry domain (defaults to general)")
	analyzeCommand.Flags().StringVar(&analyzeProjectFile, "project", "", "Path to a project context JSON file (enables two-phase onboarding mode)")
	analyzeCommand.Flags().StringVarP(&analyzeOutput, "output", "o", "", "Write the full result JSON to this file")
	analyzeCommand.Flags().BoolVar(&analyzeSkipEnrich, "skip-enrich", false, "Skip Semantic Scholar enrichment")
	analyzeCommand.Flags().BoolVarP(&analyzeVerbose, "verbose", "v", false, "Print detailed debug information")

	// API key can be passed as a flag, or read from env var GEMINI_API_KEY
	analyzeCommand.Flags().StringVar(&analyzeAPIKey, "api-key", "", "Gemini API Key (optional, defaults to GEMINI_API_KEY env var)")

	// Database URL for artifact persistence
	analyzeCommand.Flags().StringVar(&analyzeDatabaseURL, "db-url", "", "PostgreSQL connection URL (optional, defaults to DATABASE_URL env var)")

	rootCmd.AddCommand(analyzeCommand)
}

func runAnalyzeCmd(cmd *cobra.Command, _ []string) error {
	ctx := context.Background()

	// Load config file if provided
	var cfg config.Config
	if analyzeConfigPath != "" {
		loadedCfg, err := config.LoadConfig(analyzeConfigPath)
		if err != nil {
			return fmt.Errorf("failed to load config: %w", err)
		}
		if err := loadedCfg.Validate(); err != nil {
			return err
		}
		cfg = *loadedCfg
		if analyzeVerbose {
			_, _ = fmt.Fprintf(os.Stdout, "Loaded config from: %s\n", analyzeConfigPath)
		}
	}

	// Apply CLI overrides (only flags that were explicitly set)
	if cmd.Flags().Changed("resume") {
		cfg.Resume = analyzeResume
	}
	if cmd.Flags().Changed("job") {
		cfg.Job = analyzeJob
	}
	if cmd.Flags().Changed("job-url") {
		cfg.JobURL = analyzeJobURL
	}
	if cmd.Flags().Changed("job-title") {
		cfg.JobTitle = analyzeJobTitle
	}
	if cmd.Flags().Changed("domain") {
		cfg.Domain = analyzeDomain
	}
	if cmd.Flags().Changed("api-key") {
		cfg.APIKey = analyzeAPIKey
	}
	if cmd.Flags().Changed("skip-enrich") {
		cfg.SkipEnrich = analyzeSkipEnrich
	}
	if cmd.Flags().Changed("verbose") {
		cfg.Verbose = analyzeVerbose
	}
	if cmd.Flags().Changed("db-url") {
		cfg.DatabaseURL = analyzeDatabaseURL
	}

	// Fill anything still unset with the standard defaults
	cfg = cfg.MergeWithDefaults(config.Config{
		JobTitle: "Position",
		Domain:   "general",
	})

	// Validate required fields
	if cfg.Resume == "" {
		return fmt.Errorf("--resume must be provided (via flag or config)")
	}
	if cfg.Job == "" && cfg.JobURL == "" {
		return fmt.Errorf("either --job or --job-url must be provided (via flag or config)")
	}
	if cfg.Job != "" && cfg.JobURL != "" {
		return fmt.Errorf("--job and --job-url are mutually exclusive; provide only one")
	}

	// API key handling. A missing key is not fatal: every stage has a
	// deterministic fallback.
	if cfg.APIKey == "" {
		cfg.APIKey = os.Getenv("GEMINI_API_KEY")
	}
	if cfg.ScholarAPIKey == "" {
		cfg.ScholarAPIKey = os.Getenv("SEMANTIC_SCHOLAR_API_KEY")
	}
	if cfg.DatabaseURL == "" {
		cfg.DatabaseURL = os.Getenv("DATABASE_URL")
	}

	// Optional project context for two-phase onboarding mode
	var project *types.ProjectContext
	if analyzeProjectFile != "" {
		data, err := os.ReadFile(analyzeProjectFile)
		if err != nil {
			return fmt.Errorf("failed to read project file: %w", err)
		}
		project = &types.ProjectContext{}
		if err := json.Unmarshal(data, project); err != nil {
			return fmt.Errorf("failed to parse project JSON: %w", err)
		}
	}

	opts := pipeline.RunOptions{
		ResumePath:    cfg.Resume,
		JobPath:       cfg.Job,
		JobURL:        cfg.JobURL,
		JobTitle:      cfg.JobTitle,
		Domain:        cfg.Domain,
		Project:       project,
		APIKey:        cfg.APIKey,
		ScholarAPIKey: cfg.ScholarAPIKey,
		DatabaseURL:   cfg.DatabaseURL,
		SkipEnrich:    cfg.SkipEnrich,
		Verbose:       cfg.Verbose,
	}

	result, err := pipeline.RunPipeline(ctx, opts)
	if err != nil {
		return err
	}

	if analyzeOutput != "" {
		data, err := json.MarshalIndent(result, "", "  ")
		if err != nil {
			return fmt.Errorf("failed to marshal result: %w", err)
		}
		if err := os.WriteFile(analyzeOutput, data, 0o644); err != nil {
			return fmt.Errorf("failed to write output file: %w", err)
		}
		fmt.Printf("Result written to %s\n", analyzeOutput)
	}

	return nil
}
