package server

import (
	"encoding/json"
	"net/http"

	"github.com/google/uuid"

	"github.com/jonathan/skillbridge/internal/gap"
	"github.com/jonathan/skillbridge/internal/types"
)

// GapAnalysisResponse is the response for POST /gap-analyses
type GapAnalysisResponse struct {
	ID               string             `json:"id"`
	ResumeID         string             `json:"resume_id"`
	JobDescriptionID string             `json:"job_description_id"`
	Analysis         *types.GapAnalysis `json:"analysis"`
}

// handleCreateGapAnalysis runs a gap analysis between a stored resume and a
// stored job description
func (s *Server) handleCreateGapAnalysis(w http.ResponseWriter, r *http.Request) {
	var req types.GapAnalysisRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.errorResponse(w, http.StatusBadRequest, "Invalid request body: "+err.Error())
		return
	}
	if err := req.Validate(); err != nil {
		s.errorResponse(w, http.StatusBadRequest, "Invalid request: "+err.Error())
		return
	}

	resumeID, _ := uuid.Parse(req.ResumeID)
	jobDescriptionID, _ := uuid.Parse(req.JobDescriptionID)

	resume, err := s.db.GetResume(r.Context(), resumeID)
	if err != nil {
		s.errorResponse(w, http.StatusInternalServerError, "Database error: "+err.Error())
		return
	}
	if resume == nil {
		apiErr := &ErrNotFound{Resource: "resume", ID: req.ResumeID}
		s.errorResponse(w, HTTPStatus(apiErr), apiErr.Error())
		return
	}

	jd, err := s.db.GetJobDescription(r.Context(), jobDescriptionID)
	if err != nil {
		s.errorResponse(w, http.StatusInternalServerError, "Database error: "+err.Error())
		return
	}
	if jd == nil {
		apiErr := &ErrNotFound{Resource: "job description", ID: req.JobDescriptionID}
		s.errorResponse(w, HTTPStatus(apiErr), apiErr.Error())
		return
	}

	analysis := gap.AnalyzeGaps(r.Context(), s.llmClient, resume.Skills, jd.Description, jd.Title, jd.Domain)

	id, err := s.db.SaveGapAnalysis(r.Context(), resumeID, jobDescriptionID, analysis)
	if err != nil {
		s.errorResponse(w, http.StatusInternalServerError, "Database error: "+err.Error())
		return
	}

	s.jsonResponse(w, http.StatusCreated, GapAnalysisResponse{
		ID:               id.String(),
		ResumeID:         req.ResumeID,
		JobDescriptionID: req.JobDescriptionID,
		Analysis:         analysis,
	})
}

// handleGetGapAnalysis returns a stored gap analysis by ID
func (s *Server) handleGetGapAnalysis(w http.ResponseWriter, r *http.Request) {
	id, ok := s.parseID(w, r, "gap analysis")
	if !ok {
		return
	}

	record, err := s.db.GetGapAnalysis(r.Context(), id)
	if err != nil {
		s.errorResponse(w, http.StatusInternalServerError, "Database error: "+err.Error())
		return
	}
	if record == nil {
		apiErr := &ErrNotFound{Resource: "gap analysis", ID: id.String()}
		s.errorResponse(w, HTTPStatus(apiErr), apiErr.Error())
		return
	}

	s.jsonResponse(w, http.StatusOK, record)
}
