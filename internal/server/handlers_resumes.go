package server

import (
	"errors"
	"io"
	"net/http"

	"github.com/google/uuid"

	"github.com/jonathan/skillbridge/internal/ingestion"
	"github.com/jonathan/skillbridge/internal/parsing"
)

// maxResumeUploadBytes bounds multipart resume uploads.
const maxResumeUploadBytes = 10 << 20 // 10 MB

// UploadResumeResponse is the response for POST /resumes/upload
type UploadResumeResponse struct {
	ID       string   `json:"id"`
	Filename string   `json:"filename"`
	Skills   []string `json:"skills"`
}

// handleUploadResume accepts a multipart resume upload, extracts text,
// parses skills and stores the result
func (s *Server) handleUploadResume(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseMultipartForm(maxResumeUploadBytes); err != nil {
		s.errorResponse(w, http.StatusBadRequest, "Invalid multipart form: "+err.Error())
		return
	}

	file, header, err := r.FormFile("file")
	if err != nil {
		s.errorResponse(w, http.StatusBadRequest, "Missing file field")
		return
	}
	defer file.Close()

	data, err := io.ReadAll(io.LimitReader(file, maxResumeUploadBytes))
	if err != nil {
		s.errorResponse(w, http.StatusInternalServerError, "Failed to read upload: "+err.Error())
		return
	}

	rawText, err := ingestion.ExtractText(data, header.Filename)
	if err != nil {
		var formatErr *ingestion.UnsupportedFormatError
		if errors.As(err, &formatErr) {
			apiErr := &ErrUnsupportedFormat{Filename: header.Filename}
			s.errorResponse(w, HTTPStatus(apiErr), apiErr.Error())
			return
		}
		s.errorResponse(w, http.StatusUnprocessableEntity, "Failed to extract text: "+err.Error())
		return
	}

	cleaned := ingestion.CleanText(rawText)
	resume := parsing.ParseResume(r.Context(), s.llmClient, cleaned, header.Filename)

	id, err := s.db.SaveResume(r.Context(), resume)
	if err != nil {
		s.errorResponse(w, http.StatusInternalServerError, "Database error: "+err.Error())
		return
	}

	s.jsonResponse(w, http.StatusCreated, UploadResumeResponse{
		ID:       id.String(),
		Filename: resume.Filename,
		Skills:   resume.Skills,
	})
}

// handleGetResume returns a stored resume by ID
func (s *Server) handleGetResume(w http.ResponseWriter, r *http.Request) {
	id, ok := s.parseID(w, r, "resume")
	if !ok {
		return
	}

	record, err := s.db.GetResume(r.Context(), id)
	if err != nil {
		s.errorResponse(w, http.StatusInternalServerError, "Database error: "+err.Error())
		return
	}
	if record == nil {
		apiErr := &ErrNotFound{Resource: "resume", ID: id.String()}
		s.errorResponse(w, HTTPStatus(apiErr), apiErr.Error())
		return
	}

	s.jsonResponse(w, http.StatusOK, record)
}

// handleDeleteResume deletes a stored resume by ID
func (s *Server) handleDeleteResume(w http.ResponseWriter, r *http.Request) {
	id, ok := s.parseID(w, r, "resume")
	if !ok {
		return
	}

	deleted, err := s.db.DeleteResume(r.Context(), id)
	if err != nil {
		s.errorResponse(w, http.StatusInternalServerError, "Database error: "+err.Error())
		return
	}
	if !deleted {
		apiErr := &ErrNotFound{Resource: "resume", ID: id.String()}
		s.errorResponse(w, HTTPStatus(apiErr), apiErr.Error())
		return
	}

	s.jsonResponse(w, http.StatusOK, map[string]string{"status": "deleted"})
}

// parseID extracts and validates the {id} path segment
func (s *Server) parseID(w http.ResponseWriter, r *http.Request, resource string) (uuid.UUID, bool) {
	idStr := r.PathValue("id")
	if idStr == "" {
		s.errorResponse(w, http.StatusBadRequest, resource+" ID is required")
		return uuid.Nil, false
	}

	id, err := uuid.Parse(idStr)
	if err != nil {
		s.errorResponse(w, http.StatusBadRequest, "Invalid "+resource+" ID format")
		return uuid.Nil, false
	}
	return id, true
}
