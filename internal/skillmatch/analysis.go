package skillmatch

import (
	"sort"

	"github.com/jonathan/talent-match/internal/taxonomy"
	"github.com/jonathan/talent-match/internal/types"
)

// SkillGap measures how far one requirement is from fully satisfied.
type SkillGap struct {
	Skill string  `json:"skill"`
	Gap   float64 `json:"gap"` // 1 - match score, [0,1]
}

// LearningStep is one prerequisite in a suggested learning path, with the
// taxonomy's fixed time estimate.
type LearningStep struct {
	Skill string `json:"skill"`
	Weeks int    `json:"weeks"`
}

// Analysis is the aggregate result of resolving every skill of a requirement
// against one candidate. The advisory fields (gaps, suggestions, learning
// path) inform humans and are never scored.
type Analysis struct {
	Required        []SkillMatchResult
	Preferred       []SkillMatchResult
	MissingCritical []string       // hard-required skills with no match at all
	Gaps            []SkillGap     // per-skill shortfall, required skills only
	Transferable    []string       // candidate skills in the same category as a missing skill
	LearningPath    []LearningStep // prerequisites for the missing critical skills
}

// Analyze resolves all required and preferred skills of a requirement and
// derives the advisory outputs.
func (r *Resolver) Analyze(req *types.ProjectRequirement, candidateSkills []types.CandidateSkill) Analysis {
	a := Analysis{
		Required:  make([]SkillMatchResult, 0, len(req.RequiredSkills)),
		Preferred: make([]SkillMatchResult, 0, len(req.PreferredSkills)),
	}

	for _, sr := range req.RequiredSkills {
		res := r.Resolve(sr, candidateSkills)
		a.Required = append(a.Required, res)
		a.Gaps = append(a.Gaps, SkillGap{Skill: sr.Name, Gap: 1 - res.Score})

		if sr.Required && !res.Matched {
			a.MissingCritical = append(a.MissingCritical, sr.Name)
		}
	}

	for _, sr := range req.PreferredSkills {
		a.Preferred = append(a.Preferred, r.Resolve(sr, candidateSkills))
	}

	a.Transferable = r.transferable(a.MissingCritical, candidateSkills)
	a.LearningPath = r.learningPath(a.MissingCritical)

	return a
}

// transferable suggests candidate skills in the same category as a missing
// skill, deduplicated and sorted.
func (r *Resolver) transferable(missing []string, candidateSkills []types.CandidateSkill) []string {
	if len(missing) == 0 {
		return nil
	}

	wanted := make(map[string]bool, len(missing))
	for _, m := range missing {
		if cat := r.tax.Category(m); cat != "" {
			wanted[cat] = true
		}
	}
	if len(wanted) == 0 {
		return nil
	}

	seen := make(map[string]bool)
	var out []string
	for _, cs := range candidateSkills {
		cat := cs.Category
		if cat == "" {
			cat = r.tax.Category(cs.Name)
		}
		if cat == "" || !wanted[taxonomy.Canon(cat)] {
			continue
		}
		name := taxonomy.Canon(cs.Name)
		if !seen[name] {
			seen[name] = true
			out = append(out, name)
		}
	}

	sort.Strings(out)
	return out
}

// learningPath lists the prerequisites of each missing critical skill with
// fixed per-skill time estimates, deduplicated in graph order.
func (r *Resolver) learningPath(missing []string) []LearningStep {
	if len(missing) == 0 {
		return nil
	}

	seen := make(map[string]bool)
	var path []LearningStep
	for _, m := range missing {
		for _, dep := range r.tax.Dependencies(m) {
			if seen[dep.Skill] {
				continue
			}
			seen[dep.Skill] = true
			path = append(path, LearningStep{Skill: dep.Skill, Weeks: r.tax.LearningWeeks(dep.Skill)})
		}
		canon := taxonomy.Canon(m)
		if !seen[canon] {
			seen[canon] = true
			path = append(path, LearningStep{Skill: canon, Weeks: r.tax.LearningWeeks(m)})
		}
	}

	return path
}
