// Package weights derives per-run scoring-dimension weights from project
// context. A fixed base distribution is adjusted by multiplicative profiles
// keyed on urgency, project type, team size, and client industry, then
// renormalized so the eight weights always sum to 1.
package weights

import (
	"strings"

	"github.com/jonathan/talent-match/internal/types"
)

// Policy derives a weight set for one requirement. Implementations must be
// deterministic: identical requirements yield identical weights.
type Policy interface {
	Derive(req *types.ProjectRequirement) types.ProjectWeights
}

// ContextPolicy is the default Policy, driven by the contextual multiplier
// tables in this package.
type ContextPolicy struct{}

// NewContextPolicy returns the default weight policy.
func NewContextPolicy() *ContextPolicy {
	return &ContextPolicy{}
}

// Base returns the fixed starting distribution: skills weigh the most,
// reliability the least. The base sums to 1.
func Base() types.ProjectWeights {
	return types.ProjectWeights{
		Skills:       0.25,
		Experience:   0.20,
		Availability: 0.15,
		Budget:       0.12,
		Location:     0.10,
		Culture:      0.08,
		Velocity:     0.06,
		Reliability:  0.04,
	}
}

// Derive applies the urgency, project-type, team-size, and industry
// adjustment profiles to the base distribution and renormalizes once at the
// end. Renormalizing after the full multiplier set, not per profile, avoids
// compounding drift.
func (p *ContextPolicy) Derive(req *types.ProjectRequirement) types.ProjectWeights {
	w := Base()
	w = applyUrgency(w, req.Urgency)
	w = applyProjectType(w, req.ProjectType)
	w = applyTeamSize(w, req.TeamSize)
	w = applyIndustry(w, req.ClientIndustry)
	return w.Normalize()
}

// applyUrgency boosts availability and velocity, most aggressively at
// critical urgency.
func applyUrgency(w types.ProjectWeights, u types.Urgency) types.ProjectWeights {
	switch u {
	case types.UrgencyMedium:
		w.Availability *= 1.2
		w.Velocity *= 1.1
	case types.UrgencyHigh:
		w.Availability *= 1.5
		w.Velocity *= 1.3
	case types.UrgencyCritical:
		w.Availability *= 2.0
		w.Velocity *= 1.6
	}
	return w
}

// applyProjectType favors skills+experience for hands-on work and
// experience+culture+reliability for consulting.
func applyProjectType(w types.ProjectWeights, pt types.ProjectType) types.ProjectWeights {
	switch pt {
	case types.ProjectDevelopment:
		w.Skills *= 1.3
		w.Experience *= 1.2
	case types.ProjectConsulting:
		w.Experience *= 1.4
		w.Culture *= 1.3
		w.Reliability *= 1.3
	case types.ProjectDesign:
		w.Skills *= 1.2
		w.Culture *= 1.2
	case types.ProjectData:
		w.Skills *= 1.3
		w.Experience *= 1.3
	}
	return w
}

// applyTeamSize trades culture against availability: solo engagements lean
// on availability, large teams lean on culture fit.
func applyTeamSize(w types.ProjectWeights, size int) types.ProjectWeights {
	switch {
	case size <= 1:
		w.Availability *= 1.2
		w.Culture *= 0.8
	case size <= 5:
		// Small teams keep the base balance.
	case size <= 10:
		w.Culture *= 1.2
	default:
		w.Culture *= 1.4
		w.Availability *= 0.9
	}
	return w
}

// regulatedIndustries boost experience and reliability; startup-like clients
// boost availability and velocity while discounting budget.
var regulatedIndustries = map[string]bool{
	"healthcare": true,
	"finance":    true,
	"banking":    true,
	"insurance":  true,
	"government": true,
	"legal":      true,
}

var startupIndustries = map[string]bool{
	"startup":    true,
	"technology": true,
	"saas":       true,
	"ecommerce":  true,
}

func applyIndustry(w types.ProjectWeights, industry string) types.ProjectWeights {
	key := strings.ToLower(strings.TrimSpace(industry))
	switch {
	case regulatedIndustries[key]:
		w.Experience *= 1.3
		w.Reliability *= 1.4
	case startupIndustries[key]:
		w.Availability *= 1.3
		w.Velocity *= 1.3
		w.Budget *= 0.8
	}
	return w
}
