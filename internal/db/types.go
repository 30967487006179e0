package db

import (
	"time"

	"github.com/google/uuid"

	"github.com/jonathan/skillbridge/internal/types"
)

// Curriculum status constants, derived from progress
const (
	StatusPending    = "pending"
	StatusInProgress = "in_progress"
	StatusCompleted  = "completed"
)

// ResumeRecord is a stored resume with its extracted structure
type ResumeRecord struct {
	ID        uuid.UUID           `json:"id"`
	Filename  string              `json:"filename"`
	RawText   string              `json:"-"` // large, not serialized
	Skills    []string            `json:"skills"`
	Resume    *types.ParsedResume `json:"parsed,omitempty"`
	CreatedAt time.Time           `json:"created_at"`
}

// JobDescriptionRecord is a stored job description
type JobDescriptionRecord struct {
	ID          uuid.UUID `json:"id"`
	Title       string    `json:"title"`
	Domain      string    `json:"domain,omitempty"`
	Description string    `json:"description"`
	SourceURL   string    `json:"source_url,omitempty"`
	ContentHash string    `json:"content_hash,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
}

// GapAnalysisRecord is a stored gap analysis linked to its inputs
type GapAnalysisRecord struct {
	ID               uuid.UUID          `json:"id"`
	ResumeID         uuid.UUID          `json:"resume_id"`
	JobDescriptionID uuid.UUID          `json:"job_description_id"`
	Analysis         *types.GapAnalysis `json:"analysis"`
	CreatedAt        time.Time          `json:"created_at"`
}

// CurriculumRecord is a stored curriculum with learner progress
type CurriculumRecord struct {
	ID            uuid.UUID         `json:"id"`
	ResumeID      uuid.UUID         `json:"resume_id"`
	GapAnalysisID uuid.UUID         `json:"gap_analysis_id"`
	Curriculum    *types.Curriculum `json:"curriculum"`
	Progress      int               `json:"progress"` // 0-100
	Status        string            `json:"status"`
	CreatedAt     time.Time         `json:"created_at"`
	UpdatedAt     time.Time         `json:"updated_at"`
}

// StatusForProgress derives the curriculum status from a progress value.
func StatusForProgress(progress int) string {
	switch {
	case progress <= 0:
		return StatusPending
	case progress >= 100:
		return StatusCompleted
	default:
		return StatusInProgress
	}
}
