package server

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/google/uuid"

	"github.com/jonathan/skillbridge/internal/curriculum"
	"github.com/jonathan/skillbridge/internal/db"
	"github.com/jonathan/skillbridge/internal/types"
)

// CurriculumResponse is the response for curriculum creation endpoints
type CurriculumResponse struct {
	ID         string            `json:"id"`
	Curriculum *types.Curriculum `json:"curriculum"`
	Progress   int               `json:"progress"`
	Status     string            `json:"status"`
}

// handleGenerateCurriculum builds a training curriculum from a stored gap
// analysis, enriches it with published research and stores the result
func (s *Server) handleGenerateCurriculum(w http.ResponseWriter, r *http.Request) {
	var req types.GenerateCurriculumRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.errorResponse(w, http.StatusBadRequest, "Invalid request body: "+err.Error())
		return
	}
	if err := req.Validate(); err != nil {
		s.errorResponse(w, http.StatusBadRequest, "Invalid request: "+err.Error())
		return
	}

	gapAnalysisID, _ := uuid.Parse(req.GapAnalysisID)
	analysis, resume, jd, ok := s.loadAnalysisContext(w, r, gapAnalysisID)
	if !ok {
		return
	}

	jobTitle := "Position"
	domain := "general"
	if jd != nil {
		if jd.Title != "" {
			jobTitle = jd.Title
		}
		if jd.Domain != "" {
			domain = jd.Domain
		}
	}

	cur := curriculum.GenerateOrAssemble(r.Context(), s.llmClient,
		analysis.Analysis.TopPriorityGaps, jobTitle, domain, resume.Skills)
	cur = s.enricher.Enrich(r.Context(), cur, analysis.Analysis.MissingSkills, domain)

	id, err := s.db.SaveCurriculum(r.Context(), analysis.ResumeID, gapAnalysisID, cur)
	if err != nil {
		s.errorResponse(w, http.StatusInternalServerError, "Database error: "+err.Error())
		return
	}

	s.jsonResponse(w, http.StatusCreated, CurriculumResponse{
		ID:         id.String(),
		Curriculum: cur,
		Progress:   0,
		Status:     db.StatusPending,
	})
}

// handleProjectCurriculum builds a two-phase onboarding curriculum for a
// specific project assignment
func (s *Server) handleProjectCurriculum(w http.ResponseWriter, r *http.Request) {
	var req types.ProjectCurriculumRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.errorResponse(w, http.StatusBadRequest, "Invalid request body: "+err.Error())
		return
	}
	if err := req.Validate(); err != nil {
		s.errorResponse(w, http.StatusBadRequest, "Invalid request: "+err.Error())
		return
	}

	gapAnalysisID, _ := uuid.Parse(req.GapAnalysisID)
	analysis, resume, jd, ok := s.loadAnalysisContext(w, r, gapAnalysisID)
	if !ok {
		return
	}
	if resumeID, _ := uuid.Parse(req.ResumeID); resumeID != analysis.ResumeID {
		apiErr := &ErrValidation{Field: "resume_id", Message: "does not match the gap analysis"}
		s.errorResponse(w, HTTPStatus(apiErr), apiErr.Error())
		return
	}

	domain := "general"
	if jd != nil && jd.Domain != "" {
		domain = jd.Domain
	}

	project := req.ToProjectContext()
	cur := curriculum.GenerateOrAssembleProject(r.Context(), s.llmClient,
		analysis.Analysis.TopPriorityGaps, &project, resume.Skills)
	cur = s.enricher.Enrich(r.Context(), cur, analysis.Analysis.MissingSkills, domain)

	id, err := s.db.SaveCurriculum(r.Context(), analysis.ResumeID, gapAnalysisID, cur)
	if err != nil {
		s.errorResponse(w, http.StatusInternalServerError, "Database error: "+err.Error())
		return
	}

	s.jsonResponse(w, http.StatusCreated, CurriculumResponse{
		ID:         id.String(),
		Curriculum: cur,
		Progress:   0,
		Status:     db.StatusPending,
	})
}

// handleListCurricula returns stored curricula newest first
func (s *Server) handleListCurricula(w http.ResponseWriter, r *http.Request) {
	limit := 0
	if limitStr := r.URL.Query().Get("limit"); limitStr != "" {
		if parsed, err := strconv.Atoi(limitStr); err == nil {
			limit = parsed
		}
	}

	records, err := s.db.ListCurricula(r.Context(), limit)
	if err != nil {
		s.errorResponse(w, http.StatusInternalServerError, "Database error: "+err.Error())
		return
	}

	s.jsonResponse(w, http.StatusOK, map[string]any{
		"curricula": records,
		"count":     len(records),
	})
}

// handleGetCurriculum returns a stored curriculum by ID
func (s *Server) handleGetCurriculum(w http.ResponseWriter, r *http.Request) {
	id, ok := s.parseID(w, r, "curriculum")
	if !ok {
		return
	}

	record, err := s.db.GetCurriculum(r.Context(), id)
	if err != nil {
		s.errorResponse(w, http.StatusInternalServerError, "Database error: "+err.Error())
		return
	}
	if record == nil {
		apiErr := &ErrNotFound{Resource: "curriculum", ID: id.String()}
		s.errorResponse(w, HTTPStatus(apiErr), apiErr.Error())
		return
	}

	s.jsonResponse(w, http.StatusOK, record)
}

// handleUpdateProgress updates the completion percentage of a curriculum.
// Progress values outside [0,100] are rejected.
func (s *Server) handleUpdateProgress(w http.ResponseWriter, r *http.Request) {
	id, ok := s.parseID(w, r, "curriculum")
	if !ok {
		return
	}

	var req types.UpdateProgressRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.errorResponse(w, http.StatusBadRequest, "Invalid request body: "+err.Error())
		return
	}
	if err := req.Validate(); err != nil {
		apiErr := &ErrValidation{Field: "progress", Message: "must be between 0 and 100"}
		s.errorResponse(w, HTTPStatus(apiErr), apiErr.Error())
		return
	}

	progress := int(req.Progress)
	updated, err := s.db.UpdateCurriculumProgress(r.Context(), id, progress)
	if err != nil {
		s.errorResponse(w, http.StatusInternalServerError, "Database error: "+err.Error())
		return
	}
	if !updated {
		apiErr := &ErrNotFound{Resource: "curriculum", ID: id.String()}
		s.errorResponse(w, HTTPStatus(apiErr), apiErr.Error())
		return
	}

	s.jsonResponse(w, http.StatusOK, map[string]any{
		"id":       id.String(),
		"progress": progress,
		"status":   db.StatusForProgress(progress),
	})
}

// loadAnalysisContext loads a gap analysis with its resume and job
// description. The job description may be nil when the linked row was
// removed; callers fall back to defaults.
func (s *Server) loadAnalysisContext(w http.ResponseWriter, r *http.Request, gapAnalysisID uuid.UUID) (*db.GapAnalysisRecord, *db.ResumeRecord, *db.JobDescriptionRecord, bool) {
	analysis, err := s.db.GetGapAnalysis(r.Context(), gapAnalysisID)
	if err != nil {
		s.errorResponse(w, http.StatusInternalServerError, "Database error: "+err.Error())
		return nil, nil, nil, false
	}
	if analysis == nil || analysis.Analysis == nil {
		apiErr := &ErrNotFound{Resource: "gap analysis", ID: gapAnalysisID.String()}
		s.errorResponse(w, HTTPStatus(apiErr), apiErr.Error())
		return nil, nil, nil, false
	}

	resume, err := s.db.GetResume(r.Context(), analysis.ResumeID)
	if err != nil {
		s.errorResponse(w, http.StatusInternalServerError, "Database error: "+err.Error())
		return nil, nil, nil, false
	}
	if resume == nil {
		apiErr := &ErrNotFound{Resource: "resume", ID: analysis.ResumeID.String()}
		s.errorResponse(w, HTTPStatus(apiErr), apiErr.Error())
		return nil, nil, nil, false
	}

	jd, err := s.db.GetJobDescription(r.Context(), analysis.JobDescriptionID)
	if err != nil {
		s.errorResponse(w, http.StatusInternalServerError, "Database error: "+err.Error())
		return nil, nil, nil, false
	}

	return analysis, resume, jd, true
}
