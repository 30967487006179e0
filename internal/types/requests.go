package types

import (
	"github.com/go-playground/validator/v10"
)

// CreateJobDescriptionRequest is the request body for registering a job
// description, either as inline text or as a URL to ingest.
type CreateJobDescriptionRequest struct {
	Title       string `json:"title" validate:"required,min=1"`
	Company     string `json:"company,omitempty"`
	Description string `json:"description" validate:"required_without=SourceURL"`
	SourceURL   string `json:"source_url,omitempty" validate:"omitempty,url"`
	Domain      string `json:"domain,omitempty"`
}

// GapAnalysisRequest is the request body for running a gap analysis.
type GapAnalysisRequest struct {
	ResumeID         string `json:"resume_id" validate:"required,uuid"`
	JobDescriptionID string `json:"job_description_id" validate:"required,uuid"`
}

// GenerateCurriculumRequest is the request body for generating a curriculum
// from a stored gap analysis.
type GenerateCurriculumRequest struct {
	GapAnalysisID string `json:"gap_analysis_id" validate:"required,uuid"`
}

// ProjectCurriculumRequest is the request body for two-phase project curriculum generation.
type ProjectCurriculumRequest struct {
	ResumeID           string   `json:"resume_id" validate:"required,uuid"`
	GapAnalysisID      string   `json:"gap_analysis_id" validate:"required,uuid"`
	ProjectName        string   `json:"project_name" validate:"required,min=1"`
	ProjectDescription string   `json:"project_description" validate:"required,min=1"`
	TeamRole           string   `json:"team_role" validate:"required,min=1"`
	Organization       string   `json:"organization,omitempty"`
	TechStack          []string `json:"tech_stack,omitempty"`
	Goals              []string `json:"goals,omitempty"`
	Timeline           string   `json:"timeline,omitempty"`
}

// UpdateProgressRequest is the request body for updating curriculum progress.
type UpdateProgressRequest struct {
	Progress float64 `json:"progress" validate:"gte=0,lte=100"`
}

// Validate validates the CreateJobDescriptionRequest using the validator.
func (r *CreateJobDescriptionRequest) Validate() error {
	validate := validator.New()
	return validate.Struct(r)
}

// Validate validates the GapAnalysisRequest using the validator.
func (r *GapAnalysisRequest) Validate() error {
	validate := validator.New()
	return validate.Struct(r)
}

// Validate validates the GenerateCurriculumRequest using the validator.
func (r *GenerateCurriculumRequest) Validate() error {
	validate := validator.New()
	return validate.Struct(r)
}

// Validate validates the ProjectCurriculumRequest using the validator.
func (r *ProjectCurriculumRequest) Validate() error {
	validate := validator.New()
	return validate.Struct(r)
}

// Validate validates the UpdateProgressRequest using the validator.
func (r *UpdateProgressRequest) Validate() error {
	validate := validator.New()
	return validate.Struct(r)
}

// ToProjectContext converts the request into the pipeline's project context.
func (r *ProjectCurriculumRequest) ToProjectContext() ProjectContext {
	return ProjectContext{
		Name:         r.ProjectName,
		Description:  r.ProjectDescription,
		Organization: r.Organization,
		TeamRole:     r.TeamRole,
		TechStack:    r.TechStack,
		Goals:        r.Goals,
		Timeline:     r.Timeline,
	}
}
