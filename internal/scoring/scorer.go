// Package scoring computes multi-dimensional match scores between project
// requirements and talent profiles. Every sub-score lands in [0,1]; the
// total is the weight-vector dot product of the breakdown, so it stays in
// [0,1] as long as the weights sum to 1.
package scoring

import (
	"github.com/jonathan/talent-match/internal/availability"
	"github.com/jonathan/talent-match/internal/skillmatch"
	"github.com/jonathan/talent-match/internal/types"
)

// Scorer evaluates candidates against one requirement at a time. It is
// stateless between calls and safe for concurrent use. Time-dependent
// behavior lives in the availability engine, which carries its own clock.
type Scorer struct {
	resolver *skillmatch.Resolver
	engine   *availability.Engine
}

// NewScorer builds a Scorer over the given resolver and availability engine.
func NewScorer(resolver *skillmatch.Resolver, engine *availability.Engine) *Scorer {
	return &Scorer{resolver: resolver, engine: engine}
}

// PoolHints lists the skill names a repository may use to narrow the
// candidate fetch for this requirement.
func (s *Scorer) PoolHints(req *types.ProjectRequirement) []string {
	return s.resolver.PoolHints(req)
}

// Result bundles a MatchScore with the intermediate analyses the
// orchestrator and explainers need downstream.
type Result struct {
	Score        types.MatchScore
	Analysis     skillmatch.Analysis
	Availability types.AvailabilityMatch
}

// Score evaluates one candidate against one requirement under the given
// weight vector. Bookings feed the availability sub-score; pass nil when
// none are known.
func (s *Scorer) Score(req *types.ProjectRequirement, talent *types.TalentProfile, weights types.ProjectWeights, bookings []types.Booking) Result {
	analysis := s.resolver.Analyze(req, talent.Skills)
	avail := s.engine.ComputeOverlap(talent.Availability, timeframeOf(req), bookings)

	breakdown := types.ScoreBreakdown{
		Skills:       skillsScore(analysis),
		Experience:   experienceScore(req, talent),
		Availability: clamp01(avail.Score / 100),
		Budget:       budgetScore(req.Budget, talent.HourlyRate),
		Location:     locationScore(req.Location, talent.Location),
		Culture:      cultureScore(req, talent.Preferences),
		Velocity:     velocityScore(req, talent.PastProjects),
		Reliability:  reliabilityScore(talent),
	}

	score := types.MatchScore{
		TalentID:         talent.ID,
		TotalScore:       total(breakdown, weights),
		Breakdown:        breakdown,
		MatchedSkills:    matchedSkillNames(analysis),
		Confidence:       confidence(talent),
		PredictedSuccess: predictedSuccess(talent, breakdown),
	}
	score.Reasons, score.Concerns = explain(req, talent, analysis, breakdown)

	return Result{Score: score, Analysis: analysis, Availability: avail}
}

// Rescore recomputes only the availability sub-score from fresh windows and
// bookings and folds it back into the total. Everything else in the result
// is kept as scored.
func (s *Scorer) Rescore(res Result, req *types.ProjectRequirement, windows []types.AvailabilityWindow, bookings []types.Booking, weights types.ProjectWeights) Result {
	avail := s.engine.ComputeOverlap(windows, timeframeOf(req), bookings)
	res.Availability = avail
	res.Score.Breakdown.Availability = clamp01(avail.Score / 100)
	res.Score.TotalScore = total(res.Score.Breakdown, weights)
	return res
}

// total is the dot product of the breakdown and the weight vector, clamped
// to [0,1].
func total(b types.ScoreBreakdown, w types.ProjectWeights) float64 {
	return clamp01(b.Skills*w.Skills +
		b.Experience*w.Experience +
		b.Availability*w.Availability +
		b.Budget*w.Budget +
		b.Location*w.Location +
		b.Culture*w.Culture +
		b.Velocity*w.Velocity +
		b.Reliability*w.Reliability)
}

// confidence is a data-completeness heuristic: how much evidence backs this
// score, independent of how good the score is.
func confidence(talent *types.TalentProfile) float64 {
	c := 0.3
	c += 0.25 * clamp01(float64(talent.ReviewCount)/20)
	c += 0.25 * clamp01(float64(len(talent.PastProjects))/10)
	c += 0.2 * clamp01(float64(len(talent.Experience))/5)
	return clamp01(c)
}

// predictedSuccess is a display-only heuristic blending track record and
// skill depth. It never feeds ranking.
func predictedSuccess(talent *types.TalentProfile, b types.ScoreBreakdown) float64 {
	rating := neutralScore
	if talent.ReviewCount > 0 && talent.Rating > 0 {
		rating = clamp01(talent.Rating / 5)
	}

	completion := neutralScore
	if n := len(talent.PastProjects); n > 0 {
		completed := 0
		for _, p := range talent.PastProjects {
			if p.Completed {
				completed++
			}
		}
		completion = float64(completed) / float64(n)
	}

	depth := avgSkillDepth(talent.Skills)
	if len(talent.Skills) == 0 {
		depth = neutralScore
	}

	return clamp01(0.3*rating + 0.25*completion + 0.2*depth + 0.25*b.Skills)
}
