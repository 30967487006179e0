package types

// ProjectContext describes the project a candidate is being onboarded onto.
// Used for two-phase (foundation + project) curriculum generation.
type ProjectContext struct {
	Name         string   `json:"name"`
	Description  string   `json:"description"`
	Organization string   `json:"organization,omitempty"`
	TeamRole     string   `json:"team_role"`
	TechStack    []string `json:"tech_stack,omitempty"`
	Goals        []string `json:"goals,omitempty"`
	Timeline     string   `json:"timeline,omitempty"`
}
