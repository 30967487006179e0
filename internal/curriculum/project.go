package curriculum

import (
	"fmt"
	"strings"

	"github.com/jonathan/skillbridge/internal/types"
)

const (
	// FoundationModules bounds phase 1 of a project program.
	FoundationModules = 3
	// TechStackModules bounds the tech-stack portion of phase 2.
	TechStackModules = 3
)

// AssembleProject builds a two-phase onboarding program: a foundation phase
// covering the top prioritized gaps, then a project phase with one module per
// tech-stack entry plus a single trailing project-context module. The module
// list is foundation followed by project. Three milestones mark foundation
// complete, onboarded, and fully productive, with week numbers derived from
// module counts. Assembly never fails; missing context fields get defaults.
func AssembleProject(gaps []types.SkillGap, project *types.ProjectContext) *types.Curriculum {
	if project == nil {
		project = &types.ProjectContext{}
	}
	name := project.Name
	if name == "" {
		name = "the project"
	}
	role := project.TeamRole
	if role == "" {
		role = "Team Member"
	}
	organization := project.Organization
	if organization == "" {
		organization = "the organization"
	}

	foundation := foundationPhase(gaps, role, name)
	projectModules := projectPhase(project, name, role, organization)

	modules := make([]types.CurriculumModule, 0, len(foundation)+len(projectModules))
	modules = append(modules, foundation...)
	modules = append(modules, projectModules...)

	return &types.Curriculum{
		Title:       fmt.Sprintf("Onboarding Program: %s at %s", name, organization),
		Description: fmt.Sprintf("Two-phase training program preparing a %s for %s", role, name),
		LearningObjectives: []string{
			"Close foundational skill gaps",
			fmt.Sprintf("Master the %s tech stack", name),
			"Become a productive contributor",
		},
		Modules: modules,
		Phases: []types.Phase{
			{
				PhaseNumber: 1,
				PhaseName:   "foundation",
				Description: "Fill prioritized skill gaps before project-specific work",
				Modules:     foundation,
			},
			{
				PhaseNumber: 2,
				PhaseName:   "project",
				Description: fmt.Sprintf("Project-specific skills and context for %s", name),
				Modules:     projectModules,
			},
		},
		CaseStudies:       []types.CaseStudy{},
		Resources:         []types.Resource{},
		EstimatedDuration: programDuration(len(modules)),
		Milestones:        projectMilestones(len(foundation), len(modules)),
	}
}

func foundationPhase(gaps []types.SkillGap, role, projectName string) []types.CurriculumModule {
	if len(gaps) > FoundationModules {
		gaps = gaps[:FoundationModules]
	}

	modules := make([]types.CurriculumModule, 0, len(gaps))
	for i, gap := range gaps {
		modules = append(modules, skillModule(i+1, gap, role, projectName, "foundation"))
	}
	return modules
}

func projectPhase(project *types.ProjectContext, name, role, organization string) []types.CurriculumModule {
	stack := project.TechStack
	if len(stack) > TechStackModules {
		stack = stack[:TechStackModules]
	}

	modules := make([]types.CurriculumModule, 0, len(stack)+1)
	for i, tech := range stack {
		modules = append(modules, techModule(i+1, tech, name))
	}
	modules = append(modules, contextModule(project, name, role, organization))
	return modules
}

func techModule(position int, tech, projectName string) types.CurriculumModule {
	return types.CurriculumModule{
		Title:       fmt.Sprintf("Tech Stack %d: %s", position, titleCaser.String(tech)),
		Description: fmt.Sprintf("Learn %s as used in %s", tech, projectName),
		LearningObjectives: []string{
			fmt.Sprintf("Understand how %s fits into the project architecture", tech),
			fmt.Sprintf("Work effectively with the project's %s codebase", tech),
		},
		ContentSections: []types.ContentSection{
			{Section: "Overview", Content: fmt.Sprintf("How %s is used in %s", tech, projectName)},
			{Section: "Conventions", Content: fmt.Sprintf("Project conventions and patterns for %s", tech)},
		},
		Exercises: []types.Exercise{
			{Title: fmt.Sprintf("Exercise: %s Walkthrough", tech), Description: fmt.Sprintf("Trace a feature through the %s portions of the codebase", tech)},
		},
		EstimatedDuration: moduleDuration,
		Difficulty:        types.DifficultyIntermediate,
		PhaseTag:          "project",
	}
}

// contextModule is the single trailing module covering goals, architecture,
// and team workflow. Present regardless of tech-stack length.
func contextModule(project *types.ProjectContext, name, role, organization string) types.CurriculumModule {
	goals := strings.Join(project.Goals, "; ")
	if goals == "" {
		goals = "Deliver the project roadmap"
	}
	description := project.Description
	if description == "" {
		description = fmt.Sprintf("Overview of %s", name)
	}

	return types.CurriculumModule{
		Title:       fmt.Sprintf("Project Context: %s", titleCaser.String(name)),
		Description: description,
		LearningObjectives: []string{
			"Understand project goals and success criteria",
			"Understand the system architecture",
			fmt.Sprintf("Understand the team workflow as a %s", role),
		},
		ContentSections: []types.ContentSection{
			{Section: "Goals", Content: goals},
			{Section: "Architecture", Content: fmt.Sprintf("Architecture overview of %s at %s", name, organization)},
			{Section: "Team Workflow", Content: fmt.Sprintf("How the team ships: responsibilities of a %s", role)},
		},
		Exercises: []types.Exercise{
			{Title: "Exercise: First Contribution", Description: "Pick up a starter task and take it through the full team workflow"},
		},
		EstimatedDuration: moduleDuration,
		Difficulty:        types.DifficultyIntermediate,
		PhaseTag:          "project",
	}
}

// projectMilestones derives the three fixed checkpoints from module counts,
// assuming weeksPerModule weeks per module.
func projectMilestones(foundationCount, totalCount int) []types.Milestone {
	foundationWeek := foundationCount * weeksPerModule
	if foundationWeek == 0 {
		foundationWeek = 1
	}
	onboardedWeek := (foundationCount + 1) * weeksPerModule
	finalWeek := totalCount * weeksPerModule

	return []types.Milestone{
		{
			Week:        foundationWeek,
			Checkpoint:  "Foundation Complete",
			Description: "All foundation-phase modules finished",
			Deliverable: "Foundation skills assessment",
		},
		{
			Week:        onboardedWeek,
			Checkpoint:  "Onboarded",
			Description: "First project-phase module finished",
			Deliverable: "Local environment running and first walkthrough done",
		},
		{
			Week:        finalWeek,
			Checkpoint:  "Fully Productive",
			Description: "All modules finished",
			Deliverable: "Independent feature contribution",
		},
	}
}
