package scoring

import (
	"fmt"
	"sort"
	"strings"

	"github.com/jonathan/talent-match/internal/skillmatch"
	"github.com/jonathan/talent-match/internal/types"
)

// Explanation thresholds. A sub-score above strongBar earns a reason, below
// weakBar a concern. Text is a pure function of the score, so identical
// inputs always explain identically.
const (
	strongBar = 0.8
	weakBar   = 0.4

	lowRatingBar   = 3.0
	thinHistoryBar = 2
)

// explain derives deterministic human-readable reasons and concerns from
// the breakdown and the skill analysis.
func explain(req *types.ProjectRequirement, talent *types.TalentProfile, analysis skillmatch.Analysis, b types.ScoreBreakdown) (reasons, concerns []string) {
	if b.Skills > strongBar {
		if names := matchedSkillNames(analysis); len(names) > 0 {
			reasons = append(reasons, fmt.Sprintf("Strong skill match: %s", strings.Join(names, ", ")))
		} else {
			reasons = append(reasons, "Strong skill match")
		}
	}
	if b.Experience > strongBar {
		if req.ClientIndustry != "" {
			reasons = append(reasons, fmt.Sprintf("Deep relevant experience in %s", strings.ToLower(req.ClientIndustry)))
		} else {
			reasons = append(reasons, "Deep relevant project experience")
		}
	}
	if b.Availability > strongBar {
		reasons = append(reasons, "Availability lines up with the project timeline")
	}
	if b.Budget >= 1.0 {
		reasons = append(reasons, "Rate fits within the project budget")
	}
	if b.Location > strongBar {
		reasons = append(reasons, "Location and timezone fit the project")
	}
	if b.Culture > strongBar {
		reasons = append(reasons, "Working-style preferences align with the project")
	}
	if b.Velocity > strongBar {
		reasons = append(reasons, "Track record of on-time delivery")
	}
	if b.Reliability > strongBar && talent.ReviewCount > 0 {
		reasons = append(reasons, fmt.Sprintf("Consistently rated %.1f/5 across %d reviews", talent.Rating, talent.ReviewCount))
	}

	if len(analysis.MissingCritical) > 0 {
		concerns = append(concerns, fmt.Sprintf("Missing required skills: %s", strings.Join(analysis.MissingCritical, ", ")))
	} else if b.Skills < weakBar {
		concerns = append(concerns, "Weak overall skill coverage")
	}
	if b.Availability < weakBar {
		concerns = append(concerns, "Limited availability during the project timeframe")
	}
	if talent.HourlyRate > req.Budget.Max && req.Budget.Max > 0 {
		concerns = append(concerns, "Hourly rate above the project budget")
	} else if b.Budget < weakBar {
		concerns = append(concerns, "Rate sits well outside the project budget")
	}
	if b.Location < weakBar {
		concerns = append(concerns, "Location does not fit the project's requirements")
	}
	if b.Culture < weakBar {
		concerns = append(concerns, "Working-style preferences diverge from the project")
	}
	if talent.Rating > 0 && talent.Rating < lowRatingBar && talent.ReviewCount > 0 {
		concerns = append(concerns, fmt.Sprintf("Below-average rating of %.1f/5", talent.Rating))
	}
	if len(talent.PastProjects) < thinHistoryBar {
		concerns = append(concerns, "Limited project history to assess")
	}

	return reasons, concerns
}

// matchedSkillNames lists the canonical names of matched required skills,
// sorted for stable output.
func matchedSkillNames(analysis skillmatch.Analysis) []string {
	var names []string
	for _, res := range analysis.Required {
		if res.Matched && res.MeetsLevel {
			names = append(names, res.Requirement.Name)
		}
	}
	sort.Strings(names)
	return names
}
