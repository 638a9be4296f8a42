package db

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/jonathan/talent-match/internal/types"
)

// BookingsFor retrieves current bookings for a set of talents in one query.
// Talents without bookings are simply absent from the result map.
func (db *DB) BookingsFor(ctx context.Context, talentIDs []uuid.UUID) (map[uuid.UUID][]types.Booking, error) {
	if len(talentIDs) == 0 {
		return nil, nil
	}

	rows, err := db.pool.Query(ctx,
		`SELECT talent_id, start_at, end_at, status
		 FROM bookings
		 WHERE talent_id = ANY($1) AND end_at > NOW()
		 ORDER BY talent_id, start_at`,
		talentIDs,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to query bookings: %w", err)
	}
	defer rows.Close()

	out := make(map[uuid.UUID][]types.Booking)
	for rows.Next() {
		var talentID uuid.UUID
		var b types.Booking
		if err := rows.Scan(&talentID, &b.Start, &b.End, &b.Status); err != nil {
			return nil, fmt.Errorf("failed to scan booking: %w", err)
		}
		out[talentID] = append(out[talentID], b)
	}
	return out, rows.Err()
}

// WindowsFor retrieves current availability windows for a set of talents in
// one query, for the real-time refresh stage.
func (db *DB) WindowsFor(ctx context.Context, talentIDs []uuid.UUID) (map[uuid.UUID][]types.AvailabilityWindow, error) {
	if len(talentIDs) == 0 {
		return nil, nil
	}

	rows, err := db.pool.Query(ctx,
		`SELECT talent_id, start_at, end_at, capacity, COALESCE(timezone, ''), booked
		 FROM availability_windows
		 WHERE talent_id = ANY($1) AND end_at > NOW()
		 ORDER BY talent_id, start_at`,
		talentIDs,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to query availability windows: %w", err)
	}
	defer rows.Close()

	out := make(map[uuid.UUID][]types.AvailabilityWindow)
	for rows.Next() {
		var talentID uuid.UUID
		var w types.AvailabilityWindow
		if err := rows.Scan(&talentID, &w.Start, &w.End, &w.Capacity, &w.Timezone, &w.Booked); err != nil {
			return nil, fmt.Errorf("failed to scan availability window: %w", err)
		}
		out[talentID] = append(out[talentID], w)
	}
	return out, rows.Err()
}
