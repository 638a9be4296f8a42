package matching

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/jonathan/talent-match/internal/types"
)

// RequirementRepository loads project requirements.
type RequirementRepository interface {
	GetRequirement(ctx context.Context, id uuid.UUID) (*types.ProjectRequirement, error)
}

// PoolFilter bounds a candidate-pool fetch. Skills is a hint: repositories
// may use it to narrow the fetch to talents holding at least one of the
// named skills, but eligibility is still decided by the scoring pre-filter.
// An empty hint list matches everything; a zero Limit means unbounded.
type PoolFilter struct {
	Skills []string
	Limit  int
}

// TalentRepository loads candidate profiles.
type TalentRepository interface {
	ListTalents(ctx context.Context, filter PoolFilter) ([]*types.TalentProfile, error)
	GetTalent(ctx context.Context, id uuid.UUID) (*types.TalentProfile, error)
}

// BookingRepository loads current bookings and fresh availability windows.
// Batch-shaped on purpose: one round trip for the whole candidate set.
type BookingRepository interface {
	BookingsFor(ctx context.Context, talentIDs []uuid.UUID) (map[uuid.UUID][]types.Booking, error)
	WindowsFor(ctx context.Context, talentIDs []uuid.UUID) (map[uuid.UUID][]types.AvailabilityWindow, error)
}

// MatchStore persists and reads back generated matches. SaveMatches is
// all-or-nothing: a failed save must leave no partial result behind.
// MatchesByRequirement may exclude expired pending matches; the orchestrator
// filters them regardless, so implementations need not.
type MatchStore interface {
	SaveMatches(ctx context.Context, matches []types.GeneratedMatch) error
	MatchesByRequirement(ctx context.Context, requirementID uuid.UUID) ([]types.GeneratedMatch, error)
	GetMatch(ctx context.Context, id uuid.UUID) (*types.GeneratedMatch, error)
	UpdateStatus(ctx context.Context, id uuid.UUID, status types.MatchStatus) error
}

// DeadlineScheduler registers response deadlines for follow-up. A nil
// scheduler on the orchestrator skips the stage.
type DeadlineScheduler interface {
	ScheduleDeadline(ctx context.Context, matchID uuid.UUID, deadline time.Time) error
}
