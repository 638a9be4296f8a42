package db

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/jonathan/talent-match/internal/types"
)

// SaveMatches persists a full generation result in one transaction. Either
// every match lands or none do.
func (db *DB) SaveMatches(ctx context.Context, matches []types.GeneratedMatch) error {
	if len(matches) == 0 {
		return nil
	}

	tx, err := db.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	for _, m := range matches {
		score, err := json.Marshal(m.Score)
		if err != nil {
			return fmt.Errorf("failed to marshal match score: %w", err)
		}
		_, err = tx.Exec(ctx,
			`INSERT INTO matches (id, requirement_id, talent_id, total_score, rank, status, score, created_at, expires_at, response_deadline)
			 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`,
			m.ID, m.RequirementID, m.Score.TalentID, m.Score.TotalScore, m.Score.Rank,
			string(m.Status), score, m.CreatedAt, m.ExpiresAt, m.ResponseDeadline,
		)
		if err != nil {
			return fmt.Errorf("failed to insert match: %w", err)
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("failed to commit matches: %w", err)
	}
	return nil
}

// MatchesByRequirement retrieves the active matches of one requirement,
// best rank first. Expiry never rewrites status: a pending match past its
// expires_at simply stops listing. Responded matches list regardless of age.
func (db *DB) MatchesByRequirement(ctx context.Context, requirementID uuid.UUID) ([]types.GeneratedMatch, error) {
	rows, err := db.pool.Query(ctx,
		`SELECT id, requirement_id, status, score, created_at, expires_at, response_deadline
		 FROM matches
		 WHERE requirement_id = $1 AND NOT (status = 'pending' AND expires_at <= NOW())
		 ORDER BY rank`,
		requirementID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list matches: %w", err)
	}
	defer rows.Close()

	var matches []types.GeneratedMatch
	for rows.Next() {
		m, err := scanMatch(rows)
		if err != nil {
			return nil, err
		}
		matches = append(matches, *m)
	}
	return matches, rows.Err()
}

// GetMatch retrieves one match by ID. Missing rows return (nil, nil).
func (db *DB) GetMatch(ctx context.Context, id uuid.UUID) (*types.GeneratedMatch, error) {
	rows, err := db.pool.Query(ctx,
		`SELECT id, requirement_id, status, score, created_at, expires_at, response_deadline
		 FROM matches WHERE id = $1`,
		id,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to get match: %w", err)
	}
	defer rows.Close()

	if !rows.Next() {
		return nil, rows.Err()
	}
	return scanMatch(rows)
}

// UpdateStatus moves a match to a new lifecycle status.
func (db *DB) UpdateStatus(ctx context.Context, id uuid.UUID, status types.MatchStatus) error {
	result, err := db.pool.Exec(ctx,
		`UPDATE matches SET status = $1, updated_at = NOW() WHERE id = $2`,
		string(status), id,
	)
	if err != nil {
		return fmt.Errorf("failed to update match status: %w", err)
	}
	if result.RowsAffected() == 0 {
		return fmt.Errorf("match not found: %s", id)
	}
	return nil
}

// PurgeExpiredMatches deletes pending matches past their expiry. Reads
// already exclude them, so this only reclaims rows; a match someone
// responded to is never touched. Returns the number of rows deleted.
func (db *DB) PurgeExpiredMatches(ctx context.Context) (int64, error) {
	result, err := db.pool.Exec(ctx,
		`DELETE FROM matches WHERE status = 'pending' AND expires_at <= NOW()`,
	)
	if err != nil {
		return 0, fmt.Errorf("failed to purge expired matches: %w", err)
	}
	return result.RowsAffected(), nil
}

func scanMatch(rows pgx.Rows) (*types.GeneratedMatch, error) {
	var m types.GeneratedMatch
	var status string
	var score []byte
	if err := rows.Scan(&m.ID, &m.RequirementID, &status, &score, &m.CreatedAt, &m.ExpiresAt, &m.ResponseDeadline); err != nil {
		return nil, fmt.Errorf("failed to scan match: %w", err)
	}
	m.Status = types.MatchStatus(status)
	if err := json.Unmarshal(score, &m.Score); err != nil {
		return nil, fmt.Errorf("failed to unmarshal match score: %w", err)
	}
	return &m, nil
}
