// Package curriculum builds structured training programs from prioritized
// skill gaps. The deterministic assembler is the authoritative path; the
// generative variant replaces its output only when the model produces a
// payload that validates, falling back otherwise.
package curriculum

import (
	"fmt"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/jonathan/skillbridge/internal/types"
)

const (
	// MaxModules bounds how many gap-driven modules a program contains.
	MaxModules = 5
	// moduleDuration is the fixed per-module time estimate.
	moduleDuration = "1-2 weeks"
	// weeksPerModule drives the overall duration heuristic.
	weeksPerModule = 2
)

var titleCaser = cases.Title(language.English)

// Assemble builds a single-phase training program with one module per
// prioritized gap, bounded to MaxModules. An empty gap list yields the
// orientation program. Missing jobTitle or domain fall back to documented
// defaults. Assembly never fails.
func Assemble(gaps []types.SkillGap, jobTitle, domain string) *types.Curriculum {
	jobTitle, domain = applyDefaults(jobTitle, domain)

	if len(gaps) == 0 {
		return orientationProgram(jobTitle, domain)
	}
	if len(gaps) > MaxModules {
		gaps = gaps[:MaxModules]
	}

	modules := make([]types.CurriculumModule, 0, len(gaps))
	for i, gap := range gaps {
		modules = append(modules, skillModule(i+1, gap, jobTitle, domain, ""))
	}

	return &types.Curriculum{
		Title:       fmt.Sprintf("Training Program for %s in %s", jobTitle, domain),
		Description: fmt.Sprintf("Comprehensive training program to bridge skill gaps for %s", jobTitle),
		LearningObjectives: []string{
			"Bridge identified skill gaps",
			fmt.Sprintf("Gain proficiency in %s domain knowledge", domain),
			"Apply learned skills through practical exercises",
		},
		Modules: modules,
		CaseStudies: []types.CaseStudy{
			{
				Title:            fmt.Sprintf("%s Case Study 1", titleCaser.String(domain)),
				Description:      fmt.Sprintf("Real-world case study applying learned skills in %s", domain),
				LearningOutcomes: []string{"Practical application", "Problem-solving", "Domain expertise"},
			},
		},
		Resources: []types.Resource{
			{Type: "tutorial", Title: "Online Tutorials", URL: "Search for relevant tutorials on the identified skills"},
			{Type: "paper", Title: "Research Papers", URL: "Review recent papers in the field"},
		},
		EstimatedDuration: programDuration(len(modules)),
	}
}

// skillModule templates one module for a single skill gap. A non-empty
// phaseTag marks two-phase mode.
func skillModule(position int, gap types.SkillGap, jobTitle, domain, phaseTag string) types.CurriculumModule {
	skill := gap.Skill
	if skill == "" {
		skill = "Unknown Skill"
	}

	difficulty := types.DifficultyBeginner
	if gap.Importance == types.ImportanceCritical {
		difficulty = types.DifficultyIntermediate
	}

	return types.CurriculumModule{
		Title:       fmt.Sprintf("Module %d: %s", position, titleCaser.String(skill)),
		Description: fmt.Sprintf("Learn %s for %s in %s", skill, jobTitle, domain),
		LearningObjectives: []string{
			fmt.Sprintf("Understand the fundamentals of %s", skill),
			fmt.Sprintf("Apply %s in %s contexts", skill, domain),
			fmt.Sprintf("Practice %s through hands-on exercises", skill),
		},
		ContentSections: []types.ContentSection{
			{Section: "Introduction", Content: fmt.Sprintf("Introduction to %s and its relevance to %s in %s", skill, jobTitle, domain)},
			{Section: "Core Concepts", Content: fmt.Sprintf("Deep dive into %s concepts and methodologies", skill)},
			{Section: "Practical Application", Content: fmt.Sprintf("Applying %s to real-world %s scenarios", skill, domain)},
		},
		Exercises: []types.Exercise{
			{Title: fmt.Sprintf("Exercise 1: %s Basics", skill), Description: fmt.Sprintf("Hands-on exercise to practice %s fundamentals", skill)},
			{Title: fmt.Sprintf("Exercise 2: %s in %s", skill, domain), Description: fmt.Sprintf("Apply %s to a %s-specific problem", skill, domain)},
		},
		EstimatedDuration: moduleDuration,
		Difficulty:        difficulty,
		PhaseTag:          phaseTag,
	}
}

// orientationProgram is the degenerate single-module program returned when no
// gaps were identified.
func orientationProgram(jobTitle, domain string) *types.Curriculum {
	return &types.Curriculum{
		Title:       fmt.Sprintf("Orientation Program for %s", jobTitle),
		Description: fmt.Sprintf("Introduction to %s role in %s", jobTitle, domain),
		LearningObjectives: []string{
			"Understand role expectations",
			"Familiarize with domain-specific practices",
		},
		Modules: []types.CurriculumModule{
			{
				Title:              "Role Introduction",
				Description:        fmt.Sprintf("Introduction to %s responsibilities", jobTitle),
				LearningObjectives: []string{"Understand role", "Learn expectations"},
				ContentSections:    []types.ContentSection{{Section: "Overview", Content: "Role overview"}},
				Exercises:          []types.Exercise{},
				EstimatedDuration:  "1 week",
				Difficulty:         types.DifficultyBeginner,
			},
		},
		CaseStudies:       []types.CaseStudy{},
		Resources:         []types.Resource{},
		EstimatedDuration: "1 week",
	}
}

func applyDefaults(jobTitle, domain string) (string, string) {
	if jobTitle == "" {
		jobTitle = "Position"
	}
	if domain == "" {
		domain = "general"
	}
	return jobTitle, domain
}

func programDuration(moduleCount int) string {
	return fmt.Sprintf("%d weeks", moduleCount*weeksPerModule)
}
