package matching

import (
	"context"
	"sort"
	"time"

	"github.com/google/uuid"

	"github.com/jonathan/talent-match/internal/types"
)

// topSkillLimit caps the statistics skill-frequency list.
const topSkillLimit = 10

// GetMatches returns the active matches for a requirement, best rank first.
func (o *Orchestrator) GetMatches(ctx context.Context, requirementID uuid.UUID) ([]types.GeneratedMatch, error) {
	matches, err := o.store.MatchesByRequirement(ctx, requirementID)
	if err != nil {
		return nil, &RepositoryError{Op: "list matches", Err: err}
	}
	matches = activeMatches(matches, o.now())
	sort.SliceStable(matches, func(i, j int) bool {
		return matches[i].Score.Rank < matches[j].Score.Rank
	})
	return matches, nil
}

// activeMatches drops pending matches past their expiry. Expiry never
// rewrites status; expires_at alone decides whether an unanswered match
// still counts. Matches someone responded to are kept regardless of age.
func activeMatches(matches []types.GeneratedMatch, now time.Time) []types.GeneratedMatch {
	out := make([]types.GeneratedMatch, 0, len(matches))
	for _, m := range matches {
		if m.Status == types.StatusPending && !m.ExpiresAt.After(now) {
			continue
		}
		out = append(out, m)
	}
	return out
}

// UpdateMatchStatus moves a match through its lifecycle. Statuses outside
// the closed set are rejected before touching storage.
func (o *Orchestrator) UpdateMatchStatus(ctx context.Context, matchID uuid.UUID, status types.MatchStatus) error {
	if !status.Valid() {
		return &InvalidStatusError{Status: string(status)}
	}
	m, err := o.store.GetMatch(ctx, matchID)
	if err != nil {
		return &RepositoryError{Op: "get match", Err: err}
	}
	if m == nil {
		return &NotFoundError{Kind: "match", ID: matchID.String()}
	}
	if err := o.store.UpdateStatus(ctx, matchID, status); err != nil {
		return &RepositoryError{Op: "update match status", Err: err}
	}
	return nil
}

// GetStatistics aggregates the active matches of one requirement.
func (o *Orchestrator) GetStatistics(ctx context.Context, requirementID uuid.UUID) (*types.MatchStatistics, error) {
	matches, err := o.store.MatchesByRequirement(ctx, requirementID)
	if err != nil {
		return nil, &RepositoryError{Op: "list matches", Err: err}
	}
	matches = activeMatches(matches, o.now())

	stats := &types.MatchStatistics{
		TotalMatches:    len(matches),
		StatusBreakdown: make(map[types.MatchStatus]int),
	}
	if len(matches) == 0 {
		return stats, nil
	}

	sum := 0.0
	responded := 0
	skillCounts := make(map[string]int)
	for _, m := range matches {
		sum += m.Score.TotalScore
		stats.StatusBreakdown[m.Status]++
		if m.Status != types.StatusPending && m.Status != types.StatusViewed {
			responded++
		}
		for _, skill := range m.Score.MatchedSkills {
			skillCounts[skill]++
		}
	}
	stats.AverageScore = sum / float64(len(matches))
	stats.ResponseRate = float64(responded) / float64(len(matches))
	stats.TopSkillMatches = topSkills(skillCounts, topSkillLimit)
	return stats, nil
}

// topSkills returns the n most frequent skills, count descending with
// alphabetical tie-break for stable output.
func topSkills(counts map[string]int, n int) []types.SkillFrequency {
	freqs := make([]types.SkillFrequency, 0, len(counts))
	for skill, count := range counts {
		freqs = append(freqs, types.SkillFrequency{Skill: skill, Count: count})
	}
	sort.Slice(freqs, func(i, j int) bool {
		if freqs[i].Count != freqs[j].Count {
			return freqs[i].Count > freqs[j].Count
		}
		return freqs[i].Skill < freqs[j].Skill
	})
	if len(freqs) > n {
		freqs = freqs[:n]
	}
	return freqs
}
