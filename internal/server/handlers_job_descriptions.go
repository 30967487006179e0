package server

import (
	"encoding/json"
	"log"
	"net/http"

	"github.com/jonathan/skillbridge/internal/db"
	"github.com/jonathan/skillbridge/internal/ingestion"
	"github.com/jonathan/skillbridge/internal/types"
)

// handleCreateJobDescription registers a job description from inline text or
// by ingesting a posting URL. Re-submitting identical content reuses the
// stored row.
func (s *Server) handleCreateJobDescription(w http.ResponseWriter, r *http.Request) {
	var req types.CreateJobDescriptionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.errorResponse(w, http.StatusBadRequest, "Invalid request body: "+err.Error())
		return
	}
	if err := req.Validate(); err != nil {
		s.errorResponse(w, http.StatusBadRequest, "Invalid request: "+err.Error())
		return
	}

	record := &db.JobDescriptionRecord{
		Title:       req.Title,
		Domain:      req.Domain,
		Description: req.Description,
		SourceURL:   req.SourceURL,
	}

	if req.SourceURL != "" {
		text, meta, err := ingestion.IngestJobURL(r.Context(), req.SourceURL, false)
		if err != nil {
			s.errorResponse(w, http.StatusBadGateway, "Failed to ingest job URL: "+err.Error())
			return
		}
		record.Description = text
		record.ContentHash = meta.Hash
	} else {
		record.ContentHash = ingestion.NewMetadata(req.Description, "").Hash
	}

	existing, err := s.db.FindJobDescriptionByHash(r.Context(), record.ContentHash)
	if err != nil {
		s.errorResponse(w, http.StatusInternalServerError, "Database error: "+err.Error())
		return
	}
	if existing != nil {
		log.Printf("Job description already stored, reusing %s", existing.ID)
		s.jsonResponse(w, http.StatusOK, existing)
		return
	}

	id, err := s.db.SaveJobDescription(r.Context(), record)
	if err != nil {
		s.errorResponse(w, http.StatusInternalServerError, "Database error: "+err.Error())
		return
	}
	record.ID = id

	s.jsonResponse(w, http.StatusCreated, record)
}

// handleGetJobDescription returns a stored job description by ID
func (s *Server) handleGetJobDescription(w http.ResponseWriter, r *http.Request) {
	id, ok := s.parseID(w, r, "job description")
	if !ok {
		return
	}

	record, err := s.db.GetJobDescription(r.Context(), id)
	if err != nil {
		s.errorResponse(w, http.StatusInternalServerError, "Database error: "+err.Error())
		return
	}
	if record == nil {
		apiErr := &ErrNotFound{Resource: "job description", ID: id.String()}
		s.errorResponse(w, HTTPStatus(apiErr), apiErr.Error())
		return
	}

	s.jsonResponse(w, http.StatusOK, record)
}
