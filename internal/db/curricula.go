package db

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/jonathan/skillbridge/internal/types"
)

// SaveCurriculum stores a generated curriculum with progress 0 and pending status
func (db *DB) SaveCurriculum(ctx context.Context, resumeID, gapAnalysisID uuid.UUID, curriculum *types.Curriculum) (uuid.UUID, error) {
	curriculumJSON, err := json.Marshal(curriculum)
	if err != nil {
		return uuid.Nil, fmt.Errorf("failed to marshal curriculum: %w", err)
	}

	var id uuid.UUID
	err = db.pool.QueryRow(ctx,
		`INSERT INTO curricula (resume_id, gap_analysis_id, curriculum, progress, status)
		 VALUES ($1, $2, $3, 0, $4)
		 RETURNING id`,
		resumeID, gapAnalysisID, curriculumJSON, StatusPending,
	).Scan(&id)
	if err != nil {
		return uuid.Nil, fmt.Errorf("failed to save curriculum: %w", err)
	}
	return id, nil
}

// GetCurriculum retrieves a curriculum by ID. Returns nil when not found.
func (db *DB) GetCurriculum(ctx context.Context, id uuid.UUID) (*CurriculumRecord, error) {
	var c CurriculumRecord
	var curriculumJSON []byte

	err := db.pool.QueryRow(ctx,
		`SELECT id, resume_id, gap_analysis_id, curriculum, progress, status, created_at, updated_at
		 FROM curricula WHERE id = $1`,
		id,
	).Scan(&c.ID, &c.ResumeID, &c.GapAnalysisID, &curriculumJSON, &c.Progress, &c.Status, &c.CreatedAt, &c.UpdatedAt)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get curriculum: %w", err)
	}

	if curriculumJSON != nil {
		if err := json.Unmarshal(curriculumJSON, &c.Curriculum); err != nil {
			return nil, fmt.Errorf("failed to unmarshal curriculum: %w", err)
		}
	}

	return &c, nil
}

// ListCurricula returns stored curricula newest first
func (db *DB) ListCurricula(ctx context.Context, limit int) ([]*CurriculumRecord, error) {
	if limit <= 0 {
		limit = 50
	}

	rows, err := db.pool.Query(ctx,
		`SELECT id, resume_id, gap_analysis_id, curriculum, progress, status, created_at, updated_at
		 FROM curricula
		 ORDER BY created_at DESC
		 LIMIT $1`,
		limit,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list curricula: %w", err)
	}
	defer rows.Close()

	var records []*CurriculumRecord
	for rows.Next() {
		var c CurriculumRecord
		var curriculumJSON []byte
		if err := rows.Scan(&c.ID, &c.ResumeID, &c.GapAnalysisID, &curriculumJSON, &c.Progress, &c.Status, &c.CreatedAt, &c.UpdatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan curriculum: %w", err)
		}
		if curriculumJSON != nil {
			if err := json.Unmarshal(curriculumJSON, &c.Curriculum); err != nil {
				return nil, fmt.Errorf("failed to unmarshal curriculum: %w", err)
			}
		}
		records = append(records, &c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate curricula: %w", err)
	}

	return records, nil
}

// UpdateCurriculumProgress sets progress and derives status from it.
// Returns false when no curriculum with the given ID exists.
func (db *DB) UpdateCurriculumProgress(ctx context.Context, id uuid.UUID, progress int) (bool, error) {
	tag, err := db.pool.Exec(ctx,
		`UPDATE curricula
		 SET progress = $2, status = $3, updated_at = NOW()
		 WHERE id = $1`,
		id, progress, StatusForProgress(progress),
	)
	if err != nil {
		return false, fmt.Errorf("failed to update curriculum progress: %w", err)
	}
	return tag.RowsAffected() > 0, nil
}
