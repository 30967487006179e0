// Package types provides type definitions for structured data used throughout the skillbridge system.
//
//nolint:revive // types is a standard Go package name pattern
package types

// Importance classifies how critical a missing skill is for the target role
type Importance string

// Importance levels, from most to least urgent
const (
	ImportanceCritical   Importance = "critical"
	ImportanceImportant  Importance = "important"
	ImportanceNiceToHave Importance = "nice_to_have"
)

// SkillGap represents a single missing skill with its learning priority
type SkillGap struct {
	Skill         string     `json:"skill"`
	Importance    Importance `json:"importance"`
	Priority      int        `json:"priority"` // 1-based, lower = more urgent
	Reason        string     `json:"reason"`
	RelatedSkills []string   `json:"related_skills"`
}

// GapAnalysis represents the result of comparing candidate skills against job requirements
type GapAnalysis struct {
	MatchedSkills   []string   `json:"matched_skills"`
	MissingSkills   []string   `json:"missing_skills"`
	GapDetails      []SkillGap `json:"gap_details"`
	TopPriorityGaps []SkillGap `json:"top_priority_gaps"`
	ConfidenceScore float64    `json:"confidence_score"` // 0-100
	Notes           string     `json:"notes"`
}

// JobSkills represents skills extracted from a job description, split by requirement level
type JobSkills struct {
	Required  []string `json:"required"`
	Preferred []string `json:"preferred"`
}

// All returns required followed by preferred skills in extraction order
func (j *JobSkills) All() []string {
	all := make([]string, 0, len(j.Required)+len(j.Preferred))
	all = append(all, j.Required...)
	all = append(all, j.Preferred...)
	return all
}
