package skillmatch

import (
	"sort"

	"github.com/jonathan/talent-match/internal/taxonomy"
	"github.com/jonathan/talent-match/internal/types"
)

// bridgeScore computes partial credit for a missing skill through the
// dependency graph: the sum of importances of prerequisite skills the
// candidate does possess, capped at 1.0, scaled by bridgeScale. Returns the
// score and the prerequisite names that carried it, sorted for determinism.
func (r *Resolver) bridgeScore(requiredName string, candidateSkills []types.CandidateSkill) (float64, []string) {
	deps := r.tax.Dependencies(requiredName)
	if len(deps) == 0 {
		return 0, nil
	}

	held := make(map[string]bool, len(candidateSkills))
	for _, cs := range candidateSkills {
		held[taxonomy.Canon(cs.Name)] = true
		if canon, ok := r.tax.Canonical(cs.Name); ok {
			held[canon] = true
		}
	}

	sum := 0.0
	var via []string
	for _, dep := range deps {
		if held[dep.Skill] {
			sum += dep.Importance
			via = append(via, dep.Skill)
		}
	}
	if sum == 0 {
		return 0, nil
	}
	if sum > 1.0 {
		sum = 1.0
	}

	sort.Strings(via)
	return sum * bridgeScale, via
}
