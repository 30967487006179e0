package db

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/jonathan/skillbridge/internal/types"
)

// SaveGapAnalysis stores a gap analysis linked to its resume and job description
func (db *DB) SaveGapAnalysis(ctx context.Context, resumeID, jobDescriptionID uuid.UUID, analysis *types.GapAnalysis) (uuid.UUID, error) {
	analysisJSON, err := json.Marshal(analysis)
	if err != nil {
		return uuid.Nil, fmt.Errorf("failed to marshal gap analysis: %w", err)
	}

	var id uuid.UUID
	err = db.pool.QueryRow(ctx,
		`INSERT INTO gap_analyses (resume_id, job_description_id, analysis)
		 VALUES ($1, $2, $3)
		 RETURNING id`,
		resumeID, jobDescriptionID, analysisJSON,
	).Scan(&id)
	if err != nil {
		return uuid.Nil, fmt.Errorf("failed to save gap analysis: %w", err)
	}
	return id, nil
}

// GetGapAnalysis retrieves a gap analysis by ID. Returns nil when not found.
func (db *DB) GetGapAnalysis(ctx context.Context, id uuid.UUID) (*GapAnalysisRecord, error) {
	var g GapAnalysisRecord
	var analysisJSON []byte

	err := db.pool.QueryRow(ctx,
		`SELECT id, resume_id, job_description_id, analysis, created_at
		 FROM gap_analyses WHERE id = $1`,
		id,
	).Scan(&g.ID, &g.ResumeID, &g.JobDescriptionID, &analysisJSON, &g.CreatedAt)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get gap analysis: %w", err)
	}

	if analysisJSON != nil {
		if err := json.Unmarshal(analysisJSON, &g.Analysis); err != nil {
			return nil, fmt.Errorf("failed to unmarshal gap analysis: %w", err)
		}
	}

	return &g, nil
}
