// Package types provides type definitions for structured data used throughout the skillbridge system.
//
//nolint:revive // types is a standard Go package name pattern
package types

// Difficulty is the skill level a curriculum module targets
type Difficulty string

// Difficulty levels
const (
	DifficultyBeginner     Difficulty = "beginner"
	DifficultyIntermediate Difficulty = "intermediate"
	DifficultyAdvanced     Difficulty = "advanced"
)

// ContentSection is a titled block of module content
type ContentSection struct {
	Section string `json:"section"`
	Content string `json:"content"`
}

// Exercise is a practical exercise attached to a module
type Exercise struct {
	Title       string `json:"title"`
	Description string `json:"description"`
}

// CurriculumModule is a single training module covering one skill or topic
type CurriculumModule struct {
	Title              string           `json:"title"`
	Description        string           `json:"description"`
	LearningObjectives []string         `json:"learning_objectives"`
	ContentSections    []ContentSection `json:"content"`
	Exercises          []Exercise       `json:"practical_exercises"`
	EstimatedDuration  string           `json:"estimated_duration"`
	Difficulty         Difficulty       `json:"difficulty"`
	PhaseTag           string           `json:"phase_tag,omitempty"` // set in two-phase mode
}

// Phase groups modules in a two-phase (project mode) curriculum
type Phase struct {
	PhaseNumber int                `json:"phase_number"`
	PhaseName   string             `json:"phase_name"`
	Description string             `json:"description"`
	Modules     []CurriculumModule `json:"modules"`
}

// CaseStudy is a real-world example attached to a curriculum
type CaseStudy struct {
	Title            string   `json:"title"`
	Description      string   `json:"description"`
	LearningOutcomes []string `json:"learning_outcomes"`
}

// Resource is an external learning resource (paper, tutorial, course)
type Resource struct {
	Type  string `json:"type"`
	Title string `json:"title"`
	URL   string `json:"url"`             // URL or free-text description
	Topic string `json:"topic,omitempty"` // source topic when added by enrichment
}

// Milestone is a progress checkpoint in a project-mode curriculum
type Milestone struct {
	Week        int    `json:"week"`
	Checkpoint  string `json:"checkpoint"`
	Description string `json:"description"`
	Deliverable string `json:"deliverable"`
}

// Curriculum is the full structured training program
type Curriculum struct {
	Title              string             `json:"title"`
	Description        string             `json:"description"`
	LearningObjectives []string           `json:"learning_objectives"`
	Modules            []CurriculumModule `json:"modules"`
	Phases             []Phase            `json:"phases,omitempty"`
	CaseStudies        []CaseStudy        `json:"case_studies"`
	Resources          []Resource         `json:"resources"`
	EstimatedDuration  string             `json:"estimated_duration"`
	Milestones         []Milestone        `json:"milestones,omitempty"`
}

// Clone returns a deep copy of the curriculum. Enrichment works on a copy so
// a failed merge can return the original untouched.
func (c *Curriculum) Clone() *Curriculum {
	if c == nil {
		return nil
	}
	out := *c
	out.LearningObjectives = append([]string(nil), c.LearningObjectives...)
	out.Modules = cloneModules(c.Modules)
	if c.Phases != nil {
		out.Phases = make([]Phase, len(c.Phases))
		for i, p := range c.Phases {
			out.Phases[i] = p
			out.Phases[i].Modules = cloneModules(p.Modules)
		}
	}
	if c.CaseStudies != nil {
		out.CaseStudies = make([]CaseStudy, len(c.CaseStudies))
		for i, cs := range c.CaseStudies {
			out.CaseStudies[i] = cs
			out.CaseStudies[i].LearningOutcomes = append([]string(nil), cs.LearningOutcomes...)
		}
	}
	out.Resources = append([]Resource(nil), c.Resources...)
	out.Milestones = append([]Milestone(nil), c.Milestones...)
	return &out
}

func cloneModules(mods []CurriculumModule) []CurriculumModule {
	if mods == nil {
		return nil
	}
	out := make([]CurriculumModule, len(mods))
	for i, m := range mods {
		out[i] = m
		out[i].LearningObjectives = append([]string(nil), m.LearningObjectives...)
		out[i].ContentSections = append([]ContentSection(nil), m.ContentSections...)
		out[i].Exercises = append([]Exercise(nil), m.Exercises...)
	}
	return out
}
