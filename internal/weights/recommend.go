package weights

import (
	"strings"

	"github.com/jonathan/talent-match/internal/types"
)

// Advisory defaults used by the orchestrator when the caller does not set
// explicit options.
const (
	baseMinScore   = 0.5
	baseMaxMatches = 10
)

// RecommendedMinScore suggests a minimum acceptance score for a requirement.
// Regulated industries raise the quality bar; critical urgency lowers it
// slightly so urgent runs keep enough candidates to choose from.
func RecommendedMinScore(req *types.ProjectRequirement) float64 {
	score := baseMinScore

	if regulatedIndustries[strings.ToLower(strings.TrimSpace(req.ClientIndustry))] {
		score += 0.1
	}
	if req.ProjectType == types.ProjectConsulting {
		score += 0.05
	}
	if req.Urgency == types.UrgencyCritical {
		score -= 0.05
	}

	if score < 0 {
		return 0
	}
	if score > 1 {
		return 1
	}
	return score
}

// RecommendedMaxMatches suggests a result-count cap. Urgent projects get a
// wider slate; regulated industries a tighter, curated one.
func RecommendedMaxMatches(req *types.ProjectRequirement) int {
	n := baseMaxMatches

	switch req.Urgency {
	case types.UrgencyHigh:
		n += 5
	case types.UrgencyCritical:
		n += 10
	}
	if regulatedIndustries[strings.ToLower(strings.TrimSpace(req.ClientIndustry))] {
		n -= 2
	}

	if n < 1 {
		return 1
	}
	return n
}
