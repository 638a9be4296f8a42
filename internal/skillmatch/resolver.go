// Package skillmatch resolves whether a talent's stated skills satisfy a
// project's skill requirements, via direct name matching, synonym tables,
// technology-stack expansion, and prerequisite bridging.
package skillmatch

import (
	"sort"

	"github.com/jonathan/talent-match/internal/taxonomy"
	"github.com/jonathan/talent-match/internal/types"
)

// Scoring constants for a single requirement match.
const (
	// Each proficiency level below the requirement costs levelPenalty,
	// floored at levelFloor.
	levelPenalty = 0.25
	levelFloor   = 0.3

	// Experience depth adds up to depthCap*depthScale on top of level
	// compatibility.
	depthScale = 0.2
	depthCap   = 1.5

	// Exact-name matches get a small edge over synonym/stack matches.
	exactNameBonus = 0.05

	// A bridged match is strictly weaker evidence than a direct one.
	bridgeScale = 0.35
)

// MatchType describes how a requirement was satisfied.
type MatchType string

// Match types, in resolution precedence order.
const (
	MatchExact   MatchType = "exact"
	MatchSynonym MatchType = "synonym"
	MatchStack   MatchType = "stack"
	MatchBridge  MatchType = "bridge"
	MatchNone    MatchType = "none"
)

// SkillMatchResult is the outcome of resolving one requirement against a
// candidate's skill list. Absence of a match is a first-class result, never
// an error.
type SkillMatchResult struct {
	Requirement types.SkillRequirement
	Matched     bool
	MatchType   MatchType
	Skill       *types.CandidateSkill // the winning candidate skill, nil for bridge/none
	Score       float64               // [0,1]
	MeetsLevel  bool                  // candidate at or above the required level
	BridgedVia  []string              // prerequisite skills that carried a bridge
}

// Resolver resolves skill requirements against candidate skills using an
// injected taxonomy.
type Resolver struct {
	tax *taxonomy.Taxonomy
}

// NewResolver builds a Resolver around the given taxonomy.
func NewResolver(tax *taxonomy.Taxonomy) *Resolver {
	return &Resolver{tax: tax}
}

// Resolve finds the best match for one requirement. Precedence: exact
// case-insensitive name match, then synonym-table lookup, then
// technology-stack membership. Hard requirements with no match fall through
// to prerequisite bridging.
func (r *Resolver) Resolve(required types.SkillRequirement, candidateSkills []types.CandidateSkill) SkillMatchResult {
	result := SkillMatchResult{Requirement: required, MatchType: MatchNone}

	best, matchType := r.findBest(required.Name, candidateSkills)
	if best != nil {
		result.Matched = true
		result.MatchType = matchType
		result.Skill = best
		result.MeetsLevel = best.Level.Rank() >= required.MinLevel.Rank()
		result.Score = r.scoreMatch(required, best, matchType)
		return result
	}

	if required.Required {
		if bridge, via := r.bridgeScore(required.Name, candidateSkills); bridge > 0 {
			result.Matched = true
			result.MatchType = MatchBridge
			result.Score = bridge
			result.BridgedVia = via
		}
	}

	return result
}

// PoolHints lists every skill name that could satisfy one of the
// requirement's required skills: synonym groups, stack members, and bridging
// prerequisites, all canonicalized and sorted. Repositories use the list to
// narrow a candidate fetch; it is a superset of what Resolve accepts, never
// a substitute for it.
func (r *Resolver) PoolHints(req *types.ProjectRequirement) []string {
	seen := make(map[string]struct{})
	add := func(names []string) {
		for _, n := range names {
			if n = taxonomy.Canon(n); n != "" {
				seen[n] = struct{}{}
			}
		}
	}

	for _, required := range req.RequiredSkills {
		group := r.tax.Aliases(required.Name)
		add(group)

		canon := group[0]
		for _, member := range r.tax.StackMembers(canon) {
			add(r.tax.Aliases(member))
		}
		for _, dep := range r.tax.Dependencies(canon) {
			add(r.tax.Aliases(dep.Skill))
		}
	}

	hints := make([]string, 0, len(seen))
	for n := range seen {
		hints = append(hints, n)
	}
	sort.Strings(hints)
	return hints
}

// findBest returns the strongest-matching candidate skill and how it matched.
// When multiple skills match, the tie-break is deterministic: higher
// proficiency level first, then more years of experience.
func (r *Resolver) findBest(requiredName string, candidateSkills []types.CandidateSkill) (*types.CandidateSkill, MatchType) {
	var best *types.CandidateSkill
	bestType := MatchNone

	for i := range candidateSkills {
		cs := &candidateSkills[i]

		var mt MatchType
		switch {
		case taxonomy.Canon(cs.Name) == taxonomy.Canon(requiredName):
			mt = MatchExact
		case r.tax.Synonymous(requiredName, cs.Name):
			mt = MatchSynonym
		case r.tax.InStack(requiredName, cs.Name):
			mt = MatchStack
		default:
			continue
		}

		if best == nil || betterMatch(cs, mt, best, bestType) {
			best = cs
			bestType = mt
		}
	}

	return best, bestType
}

// betterMatch reports whether (a, at) beats the current best (b, bt).
func betterMatch(a *types.CandidateSkill, at MatchType, b *types.CandidateSkill, bt MatchType) bool {
	if a.Level.Rank() != b.Level.Rank() {
		return a.Level.Rank() > b.Level.Rank()
	}
	if a.Years != b.Years {
		return a.Years > b.Years
	}
	return precedence(at) > precedence(bt)
}

func precedence(mt MatchType) int {
	switch mt {
	case MatchExact:
		return 3
	case MatchSynonym:
		return 2
	case MatchStack:
		return 1
	default:
		return 0
	}
}

// scoreMatch computes the [0,1] score of a direct (non-bridge) match:
// level compatibility plus an experience-depth bonus plus a small exact-name
// bonus, clamped.
func (r *Resolver) scoreMatch(required types.SkillRequirement, skill *types.CandidateSkill, mt MatchType) float64 {
	score := levelCompatibility(required.MinLevel, skill.Level)

	if required.YearsRequired > 0 && skill.Years > 0 {
		depth := skill.Years / float64(required.YearsRequired)
		if depth > depthCap {
			depth = depthCap
		}
		score += depth * depthScale
	}

	if mt == MatchExact {
		score += exactNameBonus
	}

	return clamp01(score)
}

// levelCompatibility scores 1.0 when the candidate meets or exceeds the
// required level; each level below costs levelPenalty, floored at levelFloor.
func levelCompatibility(required, actual types.ProficiencyLevel) float64 {
	gap := required.Rank() - actual.Rank()
	if gap <= 0 {
		return 1.0
	}
	score := 1.0 - float64(gap)*levelPenalty
	if score < levelFloor {
		return levelFloor
	}
	return score
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
