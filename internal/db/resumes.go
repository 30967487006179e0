package db

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/jonathan/skillbridge/internal/types"
)

// SaveResume stores a parsed resume and returns its ID
func (db *DB) SaveResume(ctx context.Context, resume *types.ParsedResume) (uuid.UUID, error) {
	parsedJSON, err := json.Marshal(resume)
	if err != nil {
		return uuid.Nil, fmt.Errorf("failed to marshal resume: %w", err)
	}
	skillsJSON, err := json.Marshal(resume.Skills)
	if err != nil {
		return uuid.Nil, fmt.Errorf("failed to marshal resume skills: %w", err)
	}

	var id uuid.UUID
	err = db.pool.QueryRow(ctx,
		`INSERT INTO resumes (filename, raw_text, skills, parsed)
		 VALUES ($1, $2, $3, $4)
		 RETURNING id`,
		resume.Filename, resume.RawText, skillsJSON, parsedJSON,
	).Scan(&id)
	if err != nil {
		return uuid.Nil, fmt.Errorf("failed to save resume: %w", err)
	}
	return id, nil
}

// GetResume retrieves a resume by ID. Returns nil when not found.
func (db *DB) GetResume(ctx context.Context, id uuid.UUID) (*ResumeRecord, error) {
	var r ResumeRecord
	var skillsJSON, parsedJSON []byte

	err := db.pool.QueryRow(ctx,
		`SELECT id, filename, raw_text, skills, parsed, created_at
		 FROM resumes WHERE id = $1`,
		id,
	).Scan(&r.ID, &r.Filename, &r.RawText, &skillsJSON, &parsedJSON, &r.CreatedAt)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get resume: %w", err)
	}

	if skillsJSON != nil {
		_ = json.Unmarshal(skillsJSON, &r.Skills)
	}
	if parsedJSON != nil {
		_ = json.Unmarshal(parsedJSON, &r.Resume)
	}

	return &r, nil
}

// DeleteResume removes a resume by ID. Returns false when nothing was deleted.
func (db *DB) DeleteResume(ctx context.Context, id uuid.UUID) (bool, error) {
	tag, err := db.pool.Exec(ctx, `DELETE FROM resumes WHERE id = $1`, id)
	if err != nil {
		return false, fmt.Errorf("failed to delete resume: %w", err)
	}
	return tag.RowsAffected() > 0, nil
}
