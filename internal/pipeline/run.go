// Package pipeline provides the high-level orchestration for skill gap
// analysis and curriculum generation.
package pipeline

import (
	"context"
	"fmt"
	"os"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"github.com/jonathan/skillbridge/internal/curriculum"
	"github.com/jonathan/skillbridge/internal/db"
	"github.com/jonathan/skillbridge/internal/enrich"
	"github.com/jonathan/skillbridge/internal/gap"
	"github.com/jonathan/skillbridge/internal/ingestion"
	"github.com/jonathan/skillbridge/internal/llm"
	"github.com/jonathan/skillbridge/internal/observability"
	"github.com/jonathan/skillbridge/internal/parsing"
	"github.com/jonathan/skillbridge/internal/scholar"
	"github.com/jonathan/skillbridge/internal/types"
)

// Step and category names used in progress events
const (
	StepResume     = "resume"
	StepJobPosting = "job_posting"
	StepJobSkills  = "job_skills"
	StepGapReport  = "gap_report"
	StepCurriculum = "curriculum"
	StepEnrichment = "enrichment"

	CategoryIngestion  = "ingestion"
	CategoryAnalysis   = "analysis"
	CategoryCurriculum = "curriculum"
)

// ProgressEvent represents a progress update during pipeline execution
type ProgressEvent struct {
	Step     string `json:"step"`
	Category string `json:"category"`
	Message  string `json:"message"`
	Content  any    `json:"content,omitempty"`
}

// ProgressCallback is called when pipeline progress occurs
type ProgressCallback func(event ProgressEvent)

// RunOptions holds configuration for running the pipeline
type RunOptions struct {
	ResumePath    string
	JobPath       string
	JobURL        string
	JobTitle      string
	Domain        string
	Project       *types.ProjectContext // non-nil switches to two-phase project mode
	APIKey        string
	ScholarAPIKey string
	DatabaseURL   string
	SkipEnrich    bool
	Verbose       bool
	OnProgress    ProgressCallback
}

// Result holds every artifact produced by a pipeline run. Record IDs are set
// only when database persistence is configured.
type Result struct {
	Resume       *types.ParsedResume
	JobSkills    *types.JobSkills
	Analysis     *types.GapAnalysis
	Curriculum   *types.Curriculum
	ResumeID     uuid.UUID
	AnalysisID   uuid.UUID
	CurriculumID uuid.UUID
}

// emitProgress calls the progress callback if configured
func emitProgress(opts *RunOptions, step, category, message string, content any) {
	if opts.OnProgress != nil {
		opts.OnProgress(ProgressEvent{
			Step:     step,
			Category: category,
			Message:  message,
			Content:  content,
		})
	}
}

// RunPipeline orchestrates the full analysis: resume parsing, job skill
// extraction, gap analysis, curriculum generation and enrichment. Collaborator
// failures degrade to deterministic output; only ingestion errors are fatal.
func RunPipeline(ctx context.Context, opts RunOptions) (*Result, error) {
	printer := observability.NewPrinter(os.Stdout)
	result := &Result{}

	// Initialize database connection if configured
	var database *db.DB
	if opts.DatabaseURL != "" {
		var err error
		database, err = db.Connect(ctx, opts.DatabaseURL)
		if err != nil {
			fmt.Printf("Warning: Failed to connect to database: %v\n", err)
			fmt.Printf("Continuing without database persistence...\n")
			database = nil
		} else {
			defer database.Close()
			if opts.Verbose {
				fmt.Printf("[VERBOSE] Connected to database\n")
			}
		}
	}

	// Initialize the LLM client if an API key is available. A missing or
	// failing client leaves every stage on its deterministic path.
	var client llm.Client
	if opts.APIKey != "" {
		c, err := llm.NewClient(ctx, llm.DefaultConfig(), opts.APIKey)
		if err != nil {
			fmt.Printf("Warning: LLM client unavailable, using deterministic generation: %v\n", err)
		} else {
			client = c
			defer client.Close()
		}
	}

	// Step 1: Ingest resume document
	fmt.Printf("Step 1/6: Ingesting resume from file: %s...\n", opts.ResumePath)
	resumeData, err := os.ReadFile(opts.ResumePath)
	if err != nil {
		return nil, fmt.Errorf("reading resume failed: %w", err)
	}
	resumeText, err := ingestion.ExtractText(resumeData, opts.ResumePath)
	if err != nil {
		return nil, fmt.Errorf("resume text extraction failed: %w", err)
	}
	resumeText = ingestion.CleanText(resumeText)

	// Step 2: Ingest job description (from URL or file)
	var jobText string
	if opts.JobURL != "" {
		fmt.Printf("Step 2/6: Ingesting job posting from URL: %s...\n", opts.JobURL)
		jobText, _, err = ingestion.IngestJobURL(ctx, opts.JobURL, opts.Verbose)
		if err != nil {
			return nil, fmt.Errorf("job ingestion from URL failed: %w", err)
		}
	} else {
		fmt.Printf("Step 2/6: Ingesting job posting from file: %s...\n", opts.JobPath)
		jobData, err := os.ReadFile(opts.JobPath)
		if err != nil {
			return nil, fmt.Errorf("reading job description failed: %w", err)
		}
		jobText, err = ingestion.ExtractText(jobData, opts.JobPath)
		if err != nil {
			return nil, fmt.Errorf("job text extraction failed: %w", err)
		}
		jobText = ingestion.CleanText(jobText)
	}
	emitProgress(&opts, StepJobPosting, CategoryIngestion, "Ingested and cleaned job posting", nil)

	// Steps 3-4 run in parallel: resume parsing and job skill extraction are
	// independent LLM calls.
	fmt.Printf("Running resume parsing and job skill extraction in parallel...\n")

	g, gCtx := errgroup.WithContext(ctx)

	g.Go(func() error {
		fmt.Printf("Step 3/6: Parsing resume...\n")
		result.Resume = parsing.ParseResume(gCtx, client, resumeText, opts.ResumePath)
		emitProgress(&opts, StepResume, CategoryIngestion,
			fmt.Sprintf("Parsed resume with %d skills", len(result.Resume.Skills)), nil)
		return nil
	})

	g.Go(func() error {
		fmt.Printf("Step 4/6: Extracting job skills...\n")
		result.JobSkills = gap.ExtractJobSkills(gCtx, client, jobText)
		emitProgress(&opts, StepJobSkills, CategoryAnalysis,
			fmt.Sprintf("Extracted %d required skills", len(result.JobSkills.Required)), nil)
		return nil
	})

	if err := g.Wait(); err != nil {
		return nil, err
	}

	if opts.Verbose {
		printer.PrintResumeSummary(result.Resume)
	}

	if database != nil {
		result.ResumeID, err = database.SaveResume(ctx, result.Resume)
		if err != nil {
			fmt.Printf("Warning: Failed to save resume: %v\n", err)
		} else if opts.Verbose {
			fmt.Printf("[VERBOSE] Saved resume: %s\n", result.ResumeID)
		}
	}

	// Step 5: Gap analysis
	fmt.Printf("Step 5/6: Analyzing skill gaps...\n")
	result.Analysis = gap.AnalyzeGaps(ctx, client, result.Resume.Skills, jobText, opts.JobTitle, opts.Domain)
	if opts.Verbose {
		printer.PrintGapAnalysis(result.Analysis)
	}
	emitProgress(&opts, StepGapReport, CategoryAnalysis,
		fmt.Sprintf("Identified %d skill gaps", len(result.Analysis.MissingSkills)), result.Analysis)

	result.AnalysisID = saveAnalysis(ctx, database, result, jobText, &opts)

	// Step 6: Curriculum generation plus enrichment
	fmt.Printf("Step 6/6: Generating training curriculum...\n")
	if opts.Project != nil {
		result.Curriculum = curriculum.GenerateOrAssembleProject(ctx, client,
			result.Analysis.TopPriorityGaps, opts.Project, result.Resume.Skills)
	} else {
		result.Curriculum = curriculum.GenerateOrAssemble(ctx, client,
			result.Analysis.TopPriorityGaps, opts.JobTitle, opts.Domain, result.Resume.Skills)
	}
	emitProgress(&opts, StepCurriculum, CategoryCurriculum,
		fmt.Sprintf("Generated curriculum with %d modules", len(result.Curriculum.Modules)), nil)

	if !opts.SkipEnrich {
		enricher := enrich.NewMerger(scholar.NewClient(opts.ScholarAPIKey))
		result.Curriculum = enricher.Enrich(ctx, result.Curriculum, result.Analysis.MissingSkills, opts.Domain)
		emitProgress(&opts, StepEnrichment, CategoryCurriculum,
			fmt.Sprintf("Curriculum has %d resources and %d case studies",
				len(result.Curriculum.Resources), len(result.Curriculum.CaseStudies)), nil)
	}

	if opts.Verbose {
		printer.PrintCurriculum(result.Curriculum)
	}

	if database != nil && result.ResumeID != uuid.Nil && result.AnalysisID != uuid.Nil {
		result.CurriculumID, err = database.SaveCurriculum(ctx, result.ResumeID, result.AnalysisID, result.Curriculum)
		if err != nil {
			fmt.Printf("Warning: Failed to save curriculum: %v\n", err)
		} else if opts.Verbose {
			fmt.Printf("[VERBOSE] Saved curriculum: %s\n", result.CurriculumID)
		}
	}

	fmt.Printf("Done.\n")
	return result, nil
}

// saveAnalysis persists the gap analysis when a database is connected. The
// job description row is created on the fly so the analysis has both links.
func saveAnalysis(ctx context.Context, database *db.DB, result *Result, jobText string, opts *RunOptions) uuid.UUID {
	if database == nil || result.ResumeID == uuid.Nil {
		return uuid.Nil
	}

	jdID, err := database.SaveJobDescription(ctx, &db.JobDescriptionRecord{
		Title:       opts.JobTitle,
		Domain:      opts.Domain,
		SourceURL:   opts.JobURL,
		Description: jobText,
		ContentHash: ingestion.NewMetadata(jobText, opts.JobURL).Hash,
	})
	if err != nil {
		fmt.Printf("Warning: Failed to save job description: %v\n", err)
		return uuid.Nil
	}

	id, err := database.SaveGapAnalysis(ctx, result.ResumeID, jdID, result.Analysis)
	if err != nil {
		fmt.Printf("Warning: Failed to save gap analysis: %v\n", err)
		return uuid.Nil
	}
	if opts.Verbose {
		fmt.Printf("[VERBOSE] Saved gap analysis: %s\n", id)
	}
	return id
}
