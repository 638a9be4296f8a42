package matching

import (
	"strings"

	"github.com/jonathan/talent-match/internal/types"
)

// Free-text to closed-set normalization. Unrecognized input always lands on
// the explicit fallback value, never on an error: requirements arrive from
// humans and must not bounce over vocabulary.

// NormalizeProjectType maps a free-text project description to the closed
// project-type set, falling back to other.
func NormalizeProjectType(s string) types.ProjectType {
	switch v := canon(s); {
	case contains(v, "develop", "engineer", "build", "implement", "software", "app"):
		return types.ProjectDevelopment
	case contains(v, "consult", "advis", "audit", "review", "strategy"):
		return types.ProjectConsulting
	case contains(v, "design", "ux", "user interface", "brand"):
		return types.ProjectDesign
	case contains(v, "data", "analytics", "machine learning", "etl"):
		return types.ProjectData
	default:
		return types.ProjectTypeOther
	}
}

// NormalizeUrgency maps a free-text urgency to the closed set, falling back
// to medium.
func NormalizeUrgency(s string) types.Urgency {
	switch v := canon(s); {
	case contains(v, "critical", "asap", "immediately", "emergency"):
		return types.UrgencyCritical
	case contains(v, "high", "urgent", "soon", "quickly"):
		return types.UrgencyHigh
	case contains(v, "low", "whenever", "flexible", "no rush"):
		return types.UrgencyLow
	default:
		return types.UrgencyMedium
	}
}

// NormalizeWorkStyle maps a free-text methodology to the closed set,
// falling back to unknown.
func NormalizeWorkStyle(s string) types.WorkStyle {
	v := canon(s)
	hasAgile := contains(v, "agile", "scrum", "kanban", "sprint", "iterative")
	hasWaterfall := contains(v, "waterfall", "phased", "sequential", "milestone")
	switch {
	case contains(v, "hybrid", "mixed") || (hasAgile && hasWaterfall):
		return types.WorkStyleHybrid
	case hasAgile:
		return types.WorkStyleAgile
	case hasWaterfall:
		return types.WorkStyleWaterfall
	default:
		return types.WorkStyleUnknown
	}
}

// NormalizeCommunicationStyle maps free text to the closed set, falling
// back to unknown.
func NormalizeCommunicationStyle(s string) types.CommunicationStyle {
	switch v := canon(s); {
	case contains(v, "async", "written", "offline"):
		return types.CommunicationAsync
	case contains(v, "daily", "frequent", "constant", "standup"):
		return types.CommunicationFrequent
	case contains(v, "casual", "informal", "relaxed", "slack"):
		return types.CommunicationCasual
	case contains(v, "formal", "structured", "scheduled"):
		return types.CommunicationFormal
	default:
		return types.CommunicationUnknown
	}
}

// NormalizeCompanySize maps free text to the closed bucket set, falling
// back to unknown.
func NormalizeCompanySize(s string) types.CompanySize {
	switch v := canon(s); {
	case contains(v, "startup", "seed", "early stage"):
		return types.CompanyStartup
	case contains(v, "enterprise", "corporation", "large", "multinational", "fortune"):
		return types.CompanyEnterprise
	case contains(v, "medium", "mid-size", "midsize", "scale-up", "scaleup"):
		return types.CompanyMedium
	case contains(v, "small", "smb", "boutique"):
		return types.CompanySmall
	default:
		return types.CompanySizeUnknown
	}
}

// NormalizeLocationType maps free text to the location set, falling back to
// remote, the least restrictive interpretation.
func NormalizeLocationType(s string) types.LocationType {
	switch v := canon(s); {
	case contains(v, "hybrid", "partially remote", "flexible"):
		return types.LocationHybrid
	case contains(v, "onsite", "on-site", "on site", "in office", "in-office"):
		return types.LocationOnsite
	default:
		return types.LocationRemote
	}
}

// NormalizeProficiency maps a free-text skill level to the closed ladder,
// falling back to mid.
func NormalizeProficiency(s string) types.ProficiencyLevel {
	switch v := canon(s); {
	case contains(v, "expert", "principal", "guru", "architect"):
		return types.LevelExpert
	case contains(v, "senior", "advanced", "lead"):
		return types.LevelSenior
	case contains(v, "junior", "beginner", "entry", "basic"):
		return types.LevelJunior
	default:
		return types.LevelMid
	}
}

func canon(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}

func contains(haystack string, needles ...string) bool {
	for _, n := range needles {
		if strings.Contains(haystack, n) {
			return true
		}
	}
	return false
}
