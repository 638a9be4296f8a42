package db

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/jonathan/talent-match/internal/types"
)

// SaveRequirement inserts or replaces a project requirement. The full
// document lives in a JSONB column; title and urgency are extracted for
// listing and filtering.
func (db *DB) SaveRequirement(ctx context.Context, req *types.ProjectRequirement) error {
	doc, err := json.Marshal(req)
	if err != nil {
		return fmt.Errorf("failed to marshal requirement: %w", err)
	}

	_, err = db.pool.Exec(ctx,
		`INSERT INTO requirements (id, title, urgency, document)
		 VALUES ($1, $2, $3, $4)
		 ON CONFLICT (id) DO UPDATE SET title = $2, urgency = $3, document = $4, updated_at = NOW()`,
		req.ID, req.Title, string(req.Urgency), doc,
	)
	if err != nil {
		return fmt.Errorf("failed to save requirement: %w", err)
	}
	return nil
}

// GetRequirement retrieves one requirement by ID. Missing rows return
// (nil, nil).
func (db *DB) GetRequirement(ctx context.Context, id uuid.UUID) (*types.ProjectRequirement, error) {
	var doc []byte
	err := db.pool.QueryRow(ctx,
		`SELECT document FROM requirements WHERE id = $1`,
		id,
	).Scan(&doc)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get requirement: %w", err)
	}

	var req types.ProjectRequirement
	if err := json.Unmarshal(doc, &req); err != nil {
		return nil, fmt.Errorf("failed to unmarshal requirement %s: %w", id, err)
	}
	return &req, nil
}

// ListRequirements retrieves recent requirements, newest first.
func (db *DB) ListRequirements(ctx context.Context, limit int) ([]*types.ProjectRequirement, error) {
	if limit <= 0 {
		limit = 50
	}
	rows, err := db.pool.Query(ctx,
		`SELECT document FROM requirements ORDER BY created_at DESC LIMIT $1`,
		limit,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list requirements: %w", err)
	}
	defer rows.Close()

	var reqs []*types.ProjectRequirement
	for rows.Next() {
		var doc []byte
		if err := rows.Scan(&doc); err != nil {
			return nil, fmt.Errorf("failed to scan requirement: %w", err)
		}
		var req types.ProjectRequirement
		if err := json.Unmarshal(doc, &req); err != nil {
			return nil, fmt.Errorf("failed to unmarshal requirement: %w", err)
		}
		reqs = append(reqs, &req)
	}
	return reqs, rows.Err()
}
