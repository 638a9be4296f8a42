package scoring

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jonathan/talent-match/internal/availability"
	"github.com/jonathan/talent-match/internal/skillmatch"
	"github.com/jonathan/talent-match/internal/taxonomy"
	"github.com/jonathan/talent-match/internal/types"
)

var testNow = time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

func day(d int) time.Time {
	return time.Date(2026, 3, d, 0, 0, 0, 0, time.UTC)
}

func newTestScorer() *Scorer {
	resolver := skillmatch.NewResolver(taxonomy.Default())
	engine := availability.NewEngineAt(func() time.Time { return testNow })
	return NewScorer(resolver, engine)
}

func evenWeights() types.ProjectWeights {
	return types.ProjectWeights{
		Skills: 0.125, Experience: 0.125, Availability: 0.125, Budget: 0.125,
		Location: 0.125, Culture: 0.125, Velocity: 0.125, Reliability: 0.125,
	}
}

func reactRequirement() *types.ProjectRequirement {
	return &types.ProjectRequirement{
		ID:    uuid.New(),
		Title: "Frontend rebuild",
		RequiredSkills: []types.SkillRequirement{
			{Name: "react", MinLevel: types.LevelMid, Importance: 8, Required: true},
		},
		PreferredSkills: []types.SkillRequirement{
			{Name: "typescript", MinLevel: types.LevelJunior, Importance: 4},
		},
		Budget: types.BudgetRange{Min: 50, Max: 100, Currency: "USD"},
		Duration: types.Duration{
			Weeks:        8,
			StartDate:    day(2),
			EndDate:      day(30),
			HoursPerWeek: 30,
		},
		Location:           types.LocationRequirement{Type: types.LocationRemote},
		Urgency:            types.UrgencyMedium,
		ProjectType:        types.ProjectDevelopment,
		TeamSize:           3,
		ClientIndustry:     "fintech",
		CompanySize:        types.CompanySmall,
		WorkStyle:          types.WorkStyleAgile,
		CommunicationStyle: types.CommunicationAsync,
	}
}

func strongCandidate() *types.TalentProfile {
	return &types.TalentProfile{
		ID:   uuid.New(),
		Name: "Ada",
		Skills: []types.CandidateSkill{
			{Name: "react", Level: types.LevelSenior, Years: 5},
			{Name: "typescript", Level: types.LevelSenior, Years: 4},
			{Name: "javascript", Level: types.LevelExpert, Years: 8},
		},
		Experience: []types.ExperienceEntry{
			{Company: "Acme", Role: "Frontend Engineer", Industry: "fintech",
				CompanySize: types.CompanySmall, Technologies: []string{"react", "typescript"},
				StartDate: time.Date(2019, 1, 1, 0, 0, 0, 0, time.UTC)},
		},
		Availability: []types.AvailabilityWindow{
			{Start: day(1), End: day(31), Capacity: 100},
		},
		HourlyRate: 80,
		Location:   types.TalentLocation{Timezone: "UTC", Country: "DE", City: "Berlin"},
		PastProjects: []types.PastProject{
			{Title: "Dashboard", ProjectType: types.ProjectDevelopment, Industry: "fintech",
				Technologies: []string{"react"}, DurationWeeks: 8, Completed: true, Rating: 5},
			{Title: "Checkout", ProjectType: types.ProjectDevelopment,
				Technologies: []string{"typescript"}, DurationWeeks: 6, Completed: true, Rating: 4.5},
		},
		Rating:      4.8,
		ReviewCount: 24,
		Preferences: types.TalentPreferences{
			PreferredCompanySize: types.CompanySmall,
			WorkStyle:            types.WorkStyleAgile,
			CommunicationStyle:   types.CommunicationAsync,
		},
		Available: true,
	}
}

func TestScore_StrongCandidateScoresHigh(t *testing.T) {
	s := newTestScorer()
	req := reactRequirement()
	talent := strongCandidate()

	res := s.Score(req, talent, evenWeights(), nil)

	assert.Greater(t, res.Score.TotalScore, 0.8)
	assert.LessOrEqual(t, res.Score.TotalScore, 1.0)
	assert.Equal(t, talent.ID, res.Score.TalentID)
	assert.InDelta(t, 1.0, res.Score.Breakdown.Budget, 1e-9)
	assert.InDelta(t, 1.0, res.Score.Breakdown.Location, 1e-9)
	assert.Empty(t, res.Analysis.MissingCritical)
	assert.Contains(t, res.Score.Reasons, "Rate fits within the project budget")
}

func TestScore_RecordsMatchedSkills(t *testing.T) {
	s := newTestScorer()
	req := reactRequirement()
	talent := strongCandidate()

	res := s.Score(req, talent, evenWeights(), nil)
	assert.Equal(t, []string{"react"}, res.Score.MatchedSkills)

	// Missing the requirement leaves the list empty rather than absent.
	talent.Skills = []types.CandidateSkill{{Name: "cobol", Level: types.LevelExpert, Years: 20}}
	res = s.Score(req, talent, evenWeights(), nil)
	assert.Empty(t, res.Score.MatchedSkills)
}

func TestScore_MissingHardSkillDepressesSkills(t *testing.T) {
	s := newTestScorer()
	req := reactRequirement()
	req.RequiredSkills = []types.SkillRequirement{
		{Name: "rust", MinLevel: types.LevelSenior, Importance: 9, Required: true},
	}
	req.PreferredSkills = nil
	talent := strongCandidate()

	res := s.Score(req, talent, evenWeights(), nil)

	assert.Less(t, res.Score.Breakdown.Skills, 0.1)
	require.Len(t, res.Analysis.MissingCritical, 1)
	assert.Equal(t, "rust", res.Analysis.MissingCritical[0])
	assert.Contains(t, res.Score.Concerns, "Missing required skills: rust")
}

func TestScore_SubScoresStayInUnitRange(t *testing.T) {
	s := newTestScorer()
	req := reactRequirement()
	res := s.Score(req, &types.TalentProfile{ID: uuid.New(), Available: true}, evenWeights(), nil)

	b := res.Score.Breakdown
	for name, v := range map[string]float64{
		"skills": b.Skills, "experience": b.Experience, "availability": b.Availability,
		"budget": b.Budget, "location": b.Location, "culture": b.Culture,
		"velocity": b.Velocity, "reliability": b.Reliability,
		"total": res.Score.TotalScore, "confidence": res.Score.Confidence,
		"predicted": res.Score.PredictedSuccess,
	} {
		assert.GreaterOrEqual(t, v, 0.0, name)
		assert.LessOrEqual(t, v, 1.0, name)
	}
}

func TestScore_IsDeterministic(t *testing.T) {
	s := newTestScorer()
	req := reactRequirement()
	talent := strongCandidate()

	a := s.Score(req, talent, evenWeights(), nil)
	b := s.Score(req, talent, evenWeights(), nil)

	assert.Equal(t, a.Score, b.Score)
}

func TestBudgetScore_BoundariesAndPenalties(t *testing.T) {
	budget := types.BudgetRange{Min: 50, Max: 100}

	assert.InDelta(t, 1.0, budgetScore(budget, 50), 1e-9)
	assert.InDelta(t, 1.0, budgetScore(budget, 100), 1e-9)
	assert.InDelta(t, 1.0, budgetScore(budget, 75), 1e-9)

	under := budgetScore(budget, 40)
	over := budgetScore(budget, 110)
	assert.Less(t, under, 1.0)
	assert.Less(t, over, under, "over-budget should be penalized harder than under-budget")

	// 2x the max bottoms out at the floor.
	assert.InDelta(t, budgetFloor, budgetScore(budget, 200), 1e-9)
}

func TestScore_OverBudgetConcern(t *testing.T) {
	s := newTestScorer()
	req := reactRequirement()
	talent := strongCandidate()
	talent.HourlyRate = 130

	res := s.Score(req, talent, evenWeights(), nil)

	assert.Contains(t, res.Score.Concerns, "Hourly rate above the project budget")
	assert.Less(t, res.Score.Breakdown.Budget, 1.0)
}

func TestLocationScore_ByLocationType(t *testing.T) {
	berlin := types.TalentLocation{Timezone: "CET", Country: "DE", City: "Berlin"}

	assert.InDelta(t, 1.0, locationScore(types.LocationRequirement{Type: types.LocationRemote}, berlin), 1e-9)

	onsite := types.LocationRequirement{Type: types.LocationOnsite, Country: "DE", City: "Berlin"}
	assert.InDelta(t, 1.0, locationScore(onsite, berlin), 1e-9)

	onsite.City = "Munich"
	assert.InDelta(t, 0.6, locationScore(onsite, berlin), 1e-9)

	onsite.Country = "US"
	assert.InDelta(t, 0.1, locationScore(onsite, berlin), 1e-9)

	// Hybrid in another country falls back to the timezone curve.
	hybrid := types.LocationRequirement{Type: types.LocationHybrid, Country: "US", Timezone: "EST"}
	got := locationScore(hybrid, berlin)
	assert.Greater(t, got, 0.0)
	assert.Less(t, got, 1.0)
}

func TestCultureScore_NeutralWhenUnknown(t *testing.T) {
	req := reactRequirement()
	req.WorkStyle = types.WorkStyleUnknown
	req.CommunicationStyle = types.CommunicationUnknown
	req.CompanySize = types.CompanySizeUnknown

	got := cultureScore(req, types.TalentPreferences{})
	assert.InDelta(t, neutralScore, got, 1e-9)
}

func TestCultureScore_OpposedStylesScoreLow(t *testing.T) {
	req := reactRequirement()
	aligned := cultureScore(req, types.TalentPreferences{
		WorkStyle:            types.WorkStyleAgile,
		CommunicationStyle:   types.CommunicationAsync,
		PreferredCompanySize: types.CompanySmall,
	})
	opposed := cultureScore(req, types.TalentPreferences{
		WorkStyle:            types.WorkStyleWaterfall,
		CommunicationStyle:   types.CommunicationFormal,
		PreferredCompanySize: types.CompanyEnterprise,
	})

	assert.InDelta(t, 1.0, aligned, 1e-9)
	assert.Less(t, opposed, 0.5)
}

func TestVelocityAndReliability_NeutralWithoutHistory(t *testing.T) {
	req := reactRequirement()
	talent := &types.TalentProfile{ID: uuid.New(), Available: true}

	assert.InDelta(t, neutralScore, velocityScore(req, nil), 1e-9)
	assert.InDelta(t, neutralScore, reliabilityScore(talent), 1e-9)
}

func TestVelocityScore_RewardsOnTimeHistory(t *testing.T) {
	req := reactRequirement()
	fast := []types.PastProject{
		{DurationWeeks: 6, Completed: true, Rating: 5},
		{DurationWeeks: 7, Completed: true, Rating: 4.5},
	}
	slow := []types.PastProject{
		{DurationWeeks: 20, Completed: true, Rating: 2},
		{DurationWeeks: 24, Completed: false, Rating: 2.5},
	}

	assert.Greater(t, velocityScore(req, fast), velocityScore(req, slow))
	assert.InDelta(t, 1.0, velocityScore(req, fast), 1e-9)
}

func TestReliabilityScore_ConsistencyMatters(t *testing.T) {
	steady := &types.TalentProfile{
		Rating: 4.5, ReviewCount: 10,
		PastProjects: []types.PastProject{
			{Completed: true, Rating: 4.5},
			{Completed: true, Rating: 4.5},
		},
	}
	erratic := &types.TalentProfile{
		Rating: 4.5, ReviewCount: 10,
		PastProjects: []types.PastProject{
			{Completed: true, Rating: 5},
			{Completed: false, Rating: 1.5},
		},
	}

	assert.Greater(t, reliabilityScore(steady), reliabilityScore(erratic))
}

func TestConfidence_GrowsWithEvidence(t *testing.T) {
	thin := &types.TalentProfile{ID: uuid.New()}
	rich := strongCandidate()

	assert.Greater(t, confidence(rich), confidence(thin))
	assert.InDelta(t, 0.3, confidence(thin), 1e-9)
}

func TestRescore_OnlyAvailabilityChanges(t *testing.T) {
	s := newTestScorer()
	req := reactRequirement()
	talent := strongCandidate()
	w := evenWeights()

	res := s.Score(req, talent, w, nil)
	require.Greater(t, res.Score.Breakdown.Availability, 0.0)

	// Fresh data says the candidate is fully booked elsewhere.
	booked := []types.Booking{{Start: day(1), End: day(31), Status: "confirmed"}}
	updated := s.Rescore(res, req, talent.Availability, booked, w)

	assert.Equal(t, res.Score.Breakdown.Skills, updated.Score.Breakdown.Skills)
	assert.Equal(t, res.Score.Breakdown.Budget, updated.Score.Breakdown.Budget)
	assert.NotEqual(t, res.Score.Breakdown.Availability, updated.Score.Breakdown.Availability)
	assert.Less(t, updated.Score.TotalScore, res.Score.TotalScore)
}

func TestPreFilter_Gates(t *testing.T) {
	s := newTestScorer()
	req := reactRequirement()

	keep := strongCandidate()

	unavailable := strongCandidate()
	unavailable.Available = false

	tooExpensive := strongCandidate()
	tooExpensive.HourlyRate = 150 // exactly 1.5x the 100 max

	justUnderCeiling := strongCandidate()
	justUnderCeiling.HourlyRate = 149

	noSkill := strongCandidate()
	noSkill.Skills = []types.CandidateSkill{{Name: "cobol", Level: types.LevelExpert, Years: 20}}

	noOverlap := strongCandidate()
	noOverlap.Availability = []types.AvailabilityWindow{
		{Start: time.Date(2026, 6, 1, 0, 0, 0, 0, time.UTC), End: time.Date(2026, 6, 30, 0, 0, 0, 0, time.UTC), Capacity: 100},
	}

	eligible, report := s.PreFilter(req, []*types.TalentProfile{
		keep, unavailable, tooExpensive, justUnderCeiling, noSkill, noOverlap,
	})

	require.Len(t, eligible, 2)
	assert.Equal(t, keep.ID, eligible[0].ID)
	assert.Equal(t, justUnderCeiling.ID, eligible[1].ID)

	assert.Equal(t, 6, report.Considered)
	assert.Equal(t, 2, report.Eligible)
	assert.Equal(t, 1, report.Excluded[FilterUnavailable])
	assert.Equal(t, 1, report.Excluded[FilterRateTooHigh])
	assert.Equal(t, 1, report.Excluded[FilterNoRequiredSkill])
	assert.Equal(t, 1, report.Excluded[FilterNoOverlap])
}

func TestPreFilter_NoDeclaredWindowsPasses(t *testing.T) {
	s := newTestScorer()
	req := reactRequirement()

	talent := strongCandidate()
	talent.Availability = nil

	eligible, _ := s.PreFilter(req, []*types.TalentProfile{talent})
	assert.Len(t, eligible, 1)
}

func TestSkillsScore_RequiredWeighsMoreThanPreferred(t *testing.T) {
	s := newTestScorer()
	req := reactRequirement()

	// Same two skills, but swap which list each sits in.
	reqA := *req
	reqA.RequiredSkills = []types.SkillRequirement{{Name: "react", MinLevel: types.LevelMid, Importance: 5, Required: true}}
	reqA.PreferredSkills = []types.SkillRequirement{{Name: "rust", MinLevel: types.LevelMid, Importance: 5}}

	reqB := *req
	reqB.RequiredSkills = []types.SkillRequirement{{Name: "rust", MinLevel: types.LevelMid, Importance: 5, Required: true}}
	reqB.PreferredSkills = []types.SkillRequirement{{Name: "react", MinLevel: types.LevelMid, Importance: 5}}

	talent := strongCandidate() // has react, not rust

	a := s.resolver.Analyze(&reqA, talent.Skills)
	b := s.resolver.Analyze(&reqB, talent.Skills)

	assert.Greater(t, skillsScore(a), skillsScore(b))
}

func TestExperienceScore_RewardsRelevantHistory(t *testing.T) {
	req := reactRequirement()
	relevant := strongCandidate()

	blank := strongCandidate()
	blank.Experience = nil
	blank.PastProjects = nil

	assert.Greater(t, experienceScore(req, relevant), experienceScore(req, blank))
}
