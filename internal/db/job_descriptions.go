package db

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

// SaveJobDescription stores a job description and returns its ID
func (db *DB) SaveJobDescription(ctx context.Context, jd *JobDescriptionRecord) (uuid.UUID, error) {
	var id uuid.UUID
	err := db.pool.QueryRow(ctx,
		`INSERT INTO job_descriptions (title, domain, description, source_url, content_hash)
		 VALUES ($1, $2, $3, $4, $5)
		 RETURNING id`,
		jd.Title, jd.Domain, jd.Description, jd.SourceURL, jd.ContentHash,
	).Scan(&id)
	if err != nil {
		return uuid.Nil, fmt.Errorf("failed to save job description: %w", err)
	}
	return id, nil
}

// GetJobDescription retrieves a job description by ID. Returns nil when not found.
func (db *DB) GetJobDescription(ctx context.Context, id uuid.UUID) (*JobDescriptionRecord, error) {
	var jd JobDescriptionRecord
	err := db.pool.QueryRow(ctx,
		`SELECT id, title, domain, description, source_url, content_hash, created_at
		 FROM job_descriptions WHERE id = $1`,
		id,
	).Scan(&jd.ID, &jd.Title, &jd.Domain, &jd.Description, &jd.SourceURL, &jd.ContentHash, &jd.CreatedAt)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get job description: %w", err)
	}
	return &jd, nil
}

// FindJobDescriptionByHash looks up a previously ingested posting by content hash,
// so re-submitting the same URL reuses the stored row. Returns nil when not found.
func (db *DB) FindJobDescriptionByHash(ctx context.Context, hash string) (*JobDescriptionRecord, error) {
	var jd JobDescriptionRecord
	err := db.pool.QueryRow(ctx,
		`SELECT id, title, domain, description, source_url, content_hash, created_at
		 FROM job_descriptions WHERE content_hash = $1
		 ORDER BY created_at DESC LIMIT 1`,
		hash,
	).Scan(&jd.ID, &jd.Title, &jd.Domain, &jd.Description, &jd.SourceURL, &jd.ContentHash, &jd.CreatedAt)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to find job description by hash: %w", err)
	}
	return &jd, nil
}
