package types

import (
	"time"

	"github.com/google/uuid"
)

// ScoreBreakdown holds the eight named sub-scores, each in [0,1].
type ScoreBreakdown struct {
	Skills       float64 `json:"skills"`
	Experience   float64 `json:"experience"`
	Availability float64 `json:"availability"`
	Budget       float64 `json:"budget"`
	Location     float64 `json:"location"`
	Culture      float64 `json:"culture"`
	Velocity     float64 `json:"velocity"`
	Reliability  float64 `json:"reliability"`
}

// MatchScore is the full scoring result for one (requirement, candidate)
// pair. Immutable after fairness adjustment except for TotalScore, which
// bounded fairness correction may nudge.
type MatchScore struct {
	TalentID         uuid.UUID      `json:"talent_id"`
	TotalScore       float64        `json:"total_score"` // [0,1]
	Breakdown        ScoreBreakdown `json:"breakdown"`
	MatchedSkills    []string       `json:"matched_skills,omitempty"` // canonical names, sorted
	Reasons          []string       `json:"reasons"`
	Concerns         []string       `json:"concerns"`
	Rank             int            `json:"rank"` // 1-based, assigned after the full sort
	Confidence       float64        `json:"confidence"`        // [0,1] data-completeness heuristic
	PredictedSuccess float64        `json:"predicted_success"` // [0,1], display only
}

// MatchStatus is the closed lifecycle set for a generated match.
type MatchStatus string

// Match statuses.
const (
	StatusPending       MatchStatus = "pending"
	StatusViewed        MatchStatus = "viewed"
	StatusInterested    MatchStatus = "interested"
	StatusNotInterested MatchStatus = "not_interested"
	StatusContacted     MatchStatus = "contacted"
	StatusHired         MatchStatus = "hired"
)

// Valid reports whether s is one of the closed status set.
func (s MatchStatus) Valid() bool {
	switch s {
	case StatusPending, StatusViewed, StatusInterested, StatusNotInterested, StatusContacted, StatusHired:
		return true
	}
	return false
}

// GeneratedMatch is a MatchScore plus lifecycle fields. This is the unit
// persisted externally; Status is mutated by external actors, never by the
// core after creation.
type GeneratedMatch struct {
	ID               uuid.UUID   `json:"id"`
	RequirementID    uuid.UUID   `json:"requirement_id"`
	Score            MatchScore  `json:"score"`
	Status           MatchStatus `json:"status"`
	CreatedAt        time.Time   `json:"created_at"`
	ExpiresAt        time.Time   `json:"expires_at"`
	ResponseDeadline time.Time   `json:"response_deadline"`
}

// MatchStatistics is the aggregate view over the active matches of one
// requirement.
type MatchStatistics struct {
	TotalMatches    int                 `json:"total_matches"`
	AverageScore    float64             `json:"average_score"`
	StatusBreakdown map[MatchStatus]int `json:"status_breakdown"`
	TopSkillMatches []SkillFrequency    `json:"top_skill_matches"`
	ResponseRate    float64             `json:"response_rate"`
}

// SkillFrequency counts how often a skill was matched across a
// requirement's persisted matches.
type SkillFrequency struct {
	Skill string `json:"skill"`
	Count int    `json:"count"`
}
