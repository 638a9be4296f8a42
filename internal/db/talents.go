package db

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/jonathan/talent-match/internal/matching"
	"github.com/jonathan/talent-match/internal/types"
)

// SaveTalent inserts or replaces a talent profile. The availability flag is
// extracted so candidate listing can filter in SQL.
func (db *DB) SaveTalent(ctx context.Context, talent *types.TalentProfile) error {
	doc, err := json.Marshal(talent)
	if err != nil {
		return fmt.Errorf("failed to marshal talent: %w", err)
	}

	_, err = db.pool.Exec(ctx,
		`INSERT INTO talents (id, name, hourly_rate, available, document)
		 VALUES ($1, $2, $3, $4, $5)
		 ON CONFLICT (id) DO UPDATE SET name = $2, hourly_rate = $3, available = $4, document = $5, updated_at = NOW()`,
		talent.ID, talent.Name, talent.HourlyRate, talent.Available, doc,
	)
	if err != nil {
		return fmt.Errorf("failed to save talent: %w", err)
	}
	return nil
}

// GetTalent retrieves one profile by ID. Missing rows return (nil, nil).
func (db *DB) GetTalent(ctx context.Context, id uuid.UUID) (*types.TalentProfile, error) {
	var doc []byte
	err := db.pool.QueryRow(ctx,
		`SELECT document FROM talents WHERE id = $1`,
		id,
	).Scan(&doc)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get talent: %w", err)
	}

	var talent types.TalentProfile
	if err := json.Unmarshal(doc, &talent); err != nil {
		return nil, fmt.Errorf("failed to unmarshal talent %s: %w", id, err)
	}
	return &talent, nil
}

// ListTalents retrieves available profiles matching the pool filter. Skill
// hints narrow the fetch to talents holding at least one hinted skill; an
// empty hint list matches everything. The limit bounds the query itself so
// oversized pools never cross the wire.
func (db *DB) ListTalents(ctx context.Context, filter matching.PoolFilter) ([]*types.TalentProfile, error) {
	query := `SELECT document FROM talents WHERE available`
	var args []any
	if len(filter.Skills) > 0 {
		args = append(args, filter.Skills)
		query += fmt.Sprintf(
			` AND EXISTS (SELECT 1 FROM jsonb_array_elements(document->'skills') AS s WHERE lower(s->>'name') = ANY($%d))`,
			len(args))
	}
	query += ` ORDER BY created_at`
	if filter.Limit > 0 {
		args = append(args, filter.Limit)
		query += fmt.Sprintf(` LIMIT $%d`, len(args))
	}

	rows, err := db.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list talents: %w", err)
	}
	defer rows.Close()

	var talents []*types.TalentProfile
	for rows.Next() {
		var doc []byte
		if err := rows.Scan(&doc); err != nil {
			return nil, fmt.Errorf("failed to scan talent: %w", err)
		}
		var talent types.TalentProfile
		if err := json.Unmarshal(doc, &talent); err != nil {
			return nil, fmt.Errorf("failed to unmarshal talent: %w", err)
		}
		talents = append(talents, &talent)
	}
	return talents, rows.Err()
}
