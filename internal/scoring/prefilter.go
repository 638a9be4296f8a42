package scoring

import (
	"github.com/jonathan/talent-match/internal/skillmatch"
	"github.com/jonathan/talent-match/internal/types"
)

// rateCeilingFactor is the pre-filter's budget gate: candidates whose rate
// reaches this multiple of the budget max are excluded before scoring.
const rateCeilingFactor = 1.5

// FilterReason names why a candidate was excluded before scoring.
type FilterReason string

// Pre-filter exclusion reasons.
const (
	FilterUnavailable     FilterReason = "unavailable"
	FilterNoRequiredSkill FilterReason = "no_required_skill"
	FilterNoOverlap       FilterReason = "no_timeframe_overlap"
	FilterRateTooHigh     FilterReason = "rate_too_high"
)

// FilterReport counts pre-filter exclusions per reason for one run.
type FilterReport struct {
	Considered int
	Eligible   int
	Excluded   map[FilterReason]int
}

// PreFilter removes candidates that cannot possibly match before the
// expensive scoring pass: flagged unavailable, holding none of the required
// skills at the required level, zero timeframe overlap, or a rate at or
// beyond 1.5x the budget ceiling. Input order is preserved.
func (s *Scorer) PreFilter(req *types.ProjectRequirement, candidates []*types.TalentProfile) ([]*types.TalentProfile, FilterReport) {
	report := FilterReport{
		Considered: len(candidates),
		Excluded:   make(map[FilterReason]int),
	}

	eligible := make([]*types.TalentProfile, 0, len(candidates))
	for _, t := range candidates {
		if reason, excluded := s.exclude(req, t); excluded {
			report.Excluded[reason]++
			continue
		}
		eligible = append(eligible, t)
	}

	report.Eligible = len(eligible)
	return eligible, report
}

func (s *Scorer) exclude(req *types.ProjectRequirement, talent *types.TalentProfile) (FilterReason, bool) {
	if !talent.Available {
		return FilterUnavailable, true
	}
	if req.Budget.Max > 0 && talent.HourlyRate >= req.Budget.Max*rateCeilingFactor {
		return FilterRateTooHigh, true
	}
	if len(req.RequiredSkills) > 0 && !anyRequiredSkillAtLevel(s, req, talent) {
		return FilterNoRequiredSkill, true
	}
	if noTimeframeOverlap(s, req, talent) {
		return FilterNoOverlap, true
	}
	return "", false
}

// anyRequiredSkillAtLevel reports whether the candidate holds at least one
// of the requirement's skills at or above its minimum level. Bridging does
// not count here; the gate wants a real skill.
func anyRequiredSkillAtLevel(s *Scorer, req *types.ProjectRequirement, talent *types.TalentProfile) bool {
	for _, sr := range req.RequiredSkills {
		res := s.resolver.Resolve(sr, talent.Skills)
		if res.Matched && res.MatchType != skillmatch.MatchBridge && res.MeetsLevel {
			return true
		}
	}
	return false
}

// noTimeframeOverlap reports whether the candidate's declared windows never
// intersect the requirement's timeframe. Candidates with no declared windows
// pass; absence of data is degraded in scoring, not excluded here.
func noTimeframeOverlap(s *Scorer, req *types.ProjectRequirement, talent *types.TalentProfile) bool {
	if len(talent.Availability) == 0 {
		return false
	}
	m := s.engine.ComputeOverlap(talent.Availability, timeframeOf(req), nil)
	return m.OverlapPercent == 0
}
