package scoring

import (
	"strings"

	"github.com/jonathan/talent-match/internal/availability"
	"github.com/jonathan/talent-match/internal/skillmatch"
	"github.com/jonathan/talent-match/internal/taxonomy"
	"github.com/jonathan/talent-match/internal/types"
)

// Sub-score constants.
const (
	// Hard-required skills weigh this much more than preferred ones in
	// the skills aggregate.
	requiredBoost = 1.75

	// Each missing critical skill shaves this fraction off the skills
	// aggregate, on top of the zero it already contributed.
	missingCriticalPenalty = 0.25

	// Budget penalties are asymmetric: sitting under the range is not
	// necessarily disqualifying, sitting over it is.
	belowBudgetFactor = 0.5
	aboveBudgetFactor = 1.5
	budgetFloor       = 0.05

	// Ratings at or above this are treated as on-time completions.
	onTimeRatingBar = 4.0

	// neutralScore is the conservative default for candidates missing the
	// data a sub-score needs. Incomplete profiles are scored, not excluded.
	neutralScore = 0.5
)

// skillsScore aggregates per-skill match scores, weighting each skill by its
// importance and boosting hard requirements over preferred ones. Missing
// critical skills depress the aggregate even when bridging gave them partial
// credit elsewhere.
func skillsScore(analysis skillmatch.Analysis) float64 {
	totalWeight := 0.0
	matchedWeight := 0.0

	add := func(results []skillmatch.SkillMatchResult, boost float64) {
		for _, res := range results {
			w := float64(res.Requirement.Importance)
			if w <= 0 {
				w = 1
			}
			w *= boost
			totalWeight += w
			matchedWeight += res.Score * w
		}
	}
	add(analysis.Required, requiredBoost)
	add(analysis.Preferred, 1.0)

	if totalWeight == 0 {
		return 0
	}

	score := matchedWeight / totalWeight
	if n := len(analysis.MissingCritical); n > 0 {
		score *= 1 - missingCriticalPenalty*float64(n)
	}
	return clamp01(score)
}

// experienceScore rewards industry match, project-type history, company-size
// history, and raw technology overlap with the requirement.
func experienceScore(req *types.ProjectRequirement, talent *types.TalentProfile) float64 {
	score := 0.0

	if industryMatch(req.ClientIndustry, talent) {
		score += 0.3
	}
	if projectTypeMatch(req.ProjectType, talent.PastProjects) {
		score += 0.25
	}
	if companySizeMatch(req.CompanySize, talent.Experience) {
		score += 0.15
	}
	score += 0.3 * technologyOverlap(req, talent)

	return clamp01(score)
}

func industryMatch(industry string, talent *types.TalentProfile) bool {
	if industry == "" {
		return false
	}
	want := strings.ToLower(strings.TrimSpace(industry))
	for _, e := range talent.Experience {
		if strings.ToLower(strings.TrimSpace(e.Industry)) == want {
			return true
		}
	}
	for _, p := range talent.PastProjects {
		if strings.ToLower(strings.TrimSpace(p.Industry)) == want {
			return true
		}
	}
	return false
}

func projectTypeMatch(pt types.ProjectType, projects []types.PastProject) bool {
	if pt == "" || pt == types.ProjectTypeOther {
		return false
	}
	for _, p := range projects {
		if p.ProjectType == pt {
			return true
		}
	}
	return false
}

func companySizeMatch(size types.CompanySize, experience []types.ExperienceEntry) bool {
	if size == "" || size == types.CompanySizeUnknown {
		return false
	}
	for _, e := range experience {
		if e.CompanySize == size {
			return true
		}
	}
	return false
}

// technologyOverlap is the fraction of requirement technologies found
// anywhere in the candidate's skills, experience, or past-project technology
// lists, compared through taxonomy canonicalization.
func technologyOverlap(req *types.ProjectRequirement, talent *types.TalentProfile) float64 {
	wanted := make(map[string]bool)
	for _, s := range req.RequiredSkills {
		wanted[taxonomy.Canon(s.Name)] = true
	}
	for _, s := range req.PreferredSkills {
		wanted[taxonomy.Canon(s.Name)] = true
	}
	if len(wanted) == 0 {
		return 0
	}

	held := make(map[string]bool)
	for _, s := range talent.Skills {
		held[taxonomy.Canon(s.Name)] = true
	}
	for _, e := range talent.Experience {
		for _, tech := range e.Technologies {
			held[taxonomy.Canon(tech)] = true
		}
	}
	for _, p := range talent.PastProjects {
		for _, tech := range p.Technologies {
			held[taxonomy.Canon(tech)] = true
		}
	}

	matches := 0
	for w := range wanted {
		if held[w] {
			matches++
		}
	}
	return float64(matches) / float64(len(wanted))
}

// budgetScore is 1.0 when the rate sits inside [min,max] inclusive, with a
// distance-proportional penalty outside; rates above max are penalized harder
// than rates below min.
func budgetScore(budget types.BudgetRange, rate float64) float64 {
	if budget.Max <= 0 || rate <= 0 {
		return neutralScore
	}
	if rate >= budget.Min && rate <= budget.Max {
		return 1.0
	}

	var penalty float64
	if rate < budget.Min {
		if budget.Min <= 0 {
			return 1.0
		}
		penalty = (budget.Min - rate) / budget.Min * belowBudgetFactor
	} else {
		penalty = (rate - budget.Max) / budget.Max * aboveBudgetFactor
	}

	score := 1.0 - penalty
	if score < budgetFloor {
		return budgetFloor
	}
	return score
}

// locationScore is 1.0 for fully-remote requirements; hybrid falls back to
// the timezone curve, onsite to country/city exact matching.
func locationScore(req types.LocationRequirement, loc types.TalentLocation) float64 {
	switch req.Type {
	case types.LocationRemote:
		return 1.0
	case types.LocationHybrid:
		if sameCountry(req.Country, loc.Country) {
			return 1.0
		}
		return availability.TimezoneScore(loc.Timezone, req.Timezone) / 100
	case types.LocationOnsite:
		if sameCountry(req.Country, loc.Country) {
			if req.City != "" && strings.EqualFold(strings.TrimSpace(req.City), strings.TrimSpace(loc.City)) {
				return 1.0
			}
			return 0.6
		}
		return 0.1
	default:
		return neutralScore
	}
}

func sameCountry(a, b string) bool {
	return a != "" && strings.EqualFold(strings.TrimSpace(a), strings.TrimSpace(b))
}

// workStyleCompat scores how close two delivery styles are. Hybrid borders
// both agile and waterfall; agile and waterfall border nothing.
var workStyleCompat = map[types.WorkStyle]map[types.WorkStyle]float64{
	types.WorkStyleAgile: {
		types.WorkStyleAgile:     1.0,
		types.WorkStyleHybrid:    0.7,
		types.WorkStyleWaterfall: 0.3,
	},
	types.WorkStyleWaterfall: {
		types.WorkStyleWaterfall: 1.0,
		types.WorkStyleHybrid:    0.7,
		types.WorkStyleAgile:     0.3,
	},
	types.WorkStyleHybrid: {
		types.WorkStyleHybrid:    1.0,
		types.WorkStyleAgile:     0.7,
		types.WorkStyleWaterfall: 0.7,
	},
}

// cultureScore blends work-style compatibility, communication-style
// alignment, and company-size preference.
func cultureScore(req *types.ProjectRequirement, prefs types.TalentPreferences) float64 {
	work := neutralScore
	if req.WorkStyle != "" && req.WorkStyle != types.WorkStyleUnknown &&
		prefs.WorkStyle != "" && prefs.WorkStyle != types.WorkStyleUnknown {
		if row, ok := workStyleCompat[req.WorkStyle]; ok {
			if v, ok := row[prefs.WorkStyle]; ok {
				work = v
			}
		}
	}

	comm := neutralScore
	if req.CommunicationStyle != "" && req.CommunicationStyle != types.CommunicationUnknown &&
		prefs.CommunicationStyle != "" && prefs.CommunicationStyle != types.CommunicationUnknown {
		if req.CommunicationStyle == prefs.CommunicationStyle {
			comm = 1.0
		} else {
			comm = 0.4
		}
	}

	size := neutralScore
	if req.CompanySize != "" && req.CompanySize != types.CompanySizeUnknown &&
		prefs.PreferredCompanySize != "" && prefs.PreferredCompanySize != types.CompanySizeUnknown {
		if req.CompanySize == prefs.PreferredCompanySize {
			size = 1.0
		} else {
			size = 0.3
		}
	}

	return clamp01(0.4*work + 0.3*comm + 0.3*size)
}

// velocityScore derives delivery speed from historical project durations and
// the on-time-completion ratio. A rating at or above 4 counts as on time.
func velocityScore(req *types.ProjectRequirement, projects []types.PastProject) float64 {
	if len(projects) == 0 {
		return neutralScore
	}

	rated := 0
	onTime := 0
	totalWeeks := 0
	counted := 0
	for _, p := range projects {
		if p.Rating > 0 {
			rated++
			if p.Rating >= onTimeRatingBar {
				onTime++
			}
		}
		if p.DurationWeeks > 0 {
			totalWeeks += p.DurationWeeks
			counted++
		}
	}

	onTimeRatio := neutralScore
	if rated > 0 {
		onTimeRatio = float64(onTime) / float64(rated)
	}

	durationScore := neutralScore
	if counted > 0 && req.Duration.Weeks > 0 {
		avg := float64(totalWeeks) / float64(counted)
		if avg <= float64(req.Duration.Weeks) {
			durationScore = 1.0
		} else {
			durationScore = float64(req.Duration.Weeks) / avg
		}
	}

	return clamp01(0.6*onTimeRatio + 0.4*durationScore)
}

// reliabilityScore blends average rating, rating-variance-based consistency,
// and the project-completion ratio. Candidates with no history get the
// neutral default rather than exclusion.
func reliabilityScore(talent *types.TalentProfile) float64 {
	if talent.ReviewCount == 0 && len(talent.PastProjects) == 0 {
		return neutralScore
	}

	ratingPart := neutralScore
	if talent.Rating > 0 {
		ratingPart = clamp01(talent.Rating / 5.0)
	}

	consistency := neutralScore
	if variance, ok := ratingVariance(talent.PastProjects); ok {
		// Variance of a 0-5 rating scale; 2.0 or more counts as fully
		// inconsistent.
		consistency = clamp01(1 - variance/2.0)
	}

	completion := neutralScore
	if len(talent.PastProjects) > 0 {
		completed := 0
		for _, p := range talent.PastProjects {
			if p.Completed {
				completed++
			}
		}
		completion = float64(completed) / float64(len(talent.PastProjects))
	}

	return clamp01(0.4*ratingPart + 0.3*consistency + 0.3*completion)
}

// ratingVariance returns the population variance of past-project ratings,
// and whether at least two rated projects exist.
func ratingVariance(projects []types.PastProject) (float64, bool) {
	var ratings []float64
	for _, p := range projects {
		if p.Rating > 0 {
			ratings = append(ratings, p.Rating)
		}
	}
	if len(ratings) < 2 {
		return 0, false
	}

	mean := 0.0
	for _, r := range ratings {
		mean += r
	}
	mean /= float64(len(ratings))

	variance := 0.0
	for _, r := range ratings {
		d := r - mean
		variance += d * d
	}
	return variance / float64(len(ratings)), true
}

// timeframeOf converts a requirement's duration and context into the
// availability engine's timeframe.
func timeframeOf(req *types.ProjectRequirement) types.Timeframe {
	return types.Timeframe{
		Start:        req.Duration.StartDate,
		End:          req.Duration.EndDate,
		HoursPerWeek: req.Duration.HoursPerWeek,
		Timezone:     req.Location.Timezone,
		Urgency:      req.Urgency,
	}
}

// avgSkillDepth is the mean years of experience across the candidate's
// skills, normalized against a five-year bar.
func avgSkillDepth(skills []types.CandidateSkill) float64 {
	if len(skills) == 0 {
		return 0
	}
	total := 0.0
	for _, s := range skills {
		total += s.Years
	}
	return clamp01(total / float64(len(skills)) / 5.0)
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
