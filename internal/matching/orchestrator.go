// Package matching provides the high-level orchestration for generating,
// ranking, and persisting talent matches for a project requirement.
package matching

import (
	"context"
	"sort"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/jonathan/talent-match/internal/fairness"
	"github.com/jonathan/talent-match/internal/scoring"
	"github.com/jonathan/talent-match/internal/types"
	"github.com/jonathan/talent-match/internal/weights"
)

// Stage names one step of a match-generation run, in execution order.
type Stage string

// Run stages.
const (
	StageFetching            Stage = "fetching"
	StagePreFiltering        Stage = "pre_filtering"
	StageScoring             Stage = "scoring"
	StageAvailabilityRefresh Stage = "availability_refresh"
	StageAuditing            Stage = "auditing"
	StageRanking             Stage = "ranking"
	StagePersisting          Stage = "persisting"
	StageDeadlineScheduling  Stage = "deadline_scheduling"
	StageDone                Stage = "done"
)

// Default lifecycle spans for generated matches.
const (
	defaultResponseGuarantee = 24 * time.Hour
	defaultMatchTTL          = 7 * 24 * time.Hour
	defaultConcurrency       = 8
	defaultPoolCap           = 1000
)

// GenerateOptions tunes one match-generation run. Zero values fall back to
// requirement-derived recommendations.
type GenerateOptions struct {
	MaxMatches                 int
	MinScore                   float64
	EnableRealTimeAvailability bool
	ResponseTimeGuarantee      time.Duration
	CustomWeights              *types.WeightOverrides
}

// RunResult is everything one generation run produced.
type RunResult struct {
	Matches     []types.GeneratedMatch
	Weights     types.ProjectWeights
	Filter      scoring.FilterReport
	BiasReport  fairness.Report
	GeneratedAt time.Time
}

// Orchestrator drives the staged match-generation pipeline.
type Orchestrator struct {
	requirements RequirementRepository
	talents      TalentRepository
	bookings     BookingRepository
	store        MatchStore
	scheduler    DeadlineScheduler

	scorer  *scoring.Scorer
	policy  weights.Policy
	auditor *fairness.Auditor

	logger      *zap.Logger
	now         func() time.Time
	concurrency int
	poolCap     int
}

// Deps bundles the orchestrator's collaborators. Scheduler may be nil.
type Deps struct {
	Requirements RequirementRepository
	Talents      TalentRepository
	Bookings     BookingRepository
	Store        MatchStore
	Scheduler    DeadlineScheduler
	Scorer       *scoring.Scorer
	Policy       weights.Policy
	Auditor      *fairness.Auditor
	Logger       *zap.Logger
	Concurrency  int

	// PoolCap bounds how many candidates one run considers. Zero means the
	// default cap.
	PoolCap int
}

// NewOrchestrator wires an Orchestrator from its dependencies.
func NewOrchestrator(d Deps) *Orchestrator {
	if d.Logger == nil {
		d.Logger = zap.NewNop()
	}
	if d.Concurrency <= 0 {
		d.Concurrency = defaultConcurrency
	}
	if d.PoolCap <= 0 {
		d.PoolCap = defaultPoolCap
	}
	return &Orchestrator{
		requirements: d.Requirements,
		talents:      d.Talents,
		bookings:     d.Bookings,
		store:        d.Store,
		scheduler:    d.Scheduler,
		scorer:       d.Scorer,
		policy:       d.Policy,
		auditor:      d.Auditor,
		logger:       d.Logger,
		now:          time.Now,
		concurrency:  d.Concurrency,
		poolCap:      d.PoolCap,
	}
}

// GenerateMatches runs the full pipeline for one requirement. An empty
// candidate pool after pre-filtering is a normal outcome, reported through
// the filter counts, not an error. Cancellation aborts between stages and
// never leaves partial matches persisted.
func (o *Orchestrator) GenerateMatches(ctx context.Context, requirementID uuid.UUID, opts GenerateOptions) (*RunResult, error) {
	log := o.logger.With(zap.String("requirement_id", requirementID.String()))

	// The requirement is fetched first so its skills can hint the pool
	// fetch: the repository narrows and bounds the candidate set instead of
	// shipping every available talent over the wire.
	log.Info("stage start", zap.String("stage", string(StageFetching)))
	req, err := o.requirements.GetRequirement(ctx, requirementID)
	if err != nil {
		return nil, err
	}
	if req == nil {
		return nil, &NotFoundError{Kind: "requirement", ID: requirementID.String()}
	}

	filter := PoolFilter{Skills: o.scorer.PoolHints(req), Limit: o.poolCap}
	pool, err := o.talents.ListTalents(ctx, filter)
	if err != nil {
		return nil, &RepositoryError{Op: "list talents", Err: err}
	}
	// Repositories may ignore the limit hint; the cap holds either way.
	if len(pool) > o.poolCap {
		log.Warn("candidate pool capped", zap.Int("pool", len(pool)), zap.Int("cap", o.poolCap))
		pool = pool[:o.poolCap]
	}

	w := o.policy.Derive(req)
	if opts.CustomWeights != nil {
		w = opts.CustomWeights.Apply(w)
	}
	minScore := opts.MinScore
	if minScore <= 0 {
		minScore = weights.RecommendedMinScore(req)
	}
	maxMatches := opts.MaxMatches
	if maxMatches <= 0 {
		maxMatches = weights.RecommendedMaxMatches(req)
	}

	log.Info("stage start", zap.String("stage", string(StagePreFiltering)), zap.Int("pool", len(pool)))
	eligible, report := o.scorer.PreFilter(req, pool)
	result := &RunResult{Weights: w, Filter: report, GeneratedAt: o.now()}
	if len(eligible) == 0 {
		log.Info("no eligible candidates", zap.Int("considered", report.Considered))
		return result, nil
	}

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	bookings, err := o.fetchBookings(ctx, eligible)
	if err != nil {
		return nil, err
	}

	log.Info("stage start", zap.String("stage", string(StageScoring)), zap.Int("eligible", len(eligible)))
	scored, err := o.scoreAll(ctx, req, eligible, w, bookings)
	if err != nil {
		return nil, err
	}

	if opts.EnableRealTimeAvailability {
		log.Info("stage start", zap.String("stage", string(StageAvailabilityRefresh)))
		scored, err = o.refreshAvailability(ctx, req, eligible, scored, w)
		if err != nil {
			return nil, err
		}
	}

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	log.Info("stage start", zap.String("stage", string(StageAuditing)))
	scores := make([]types.MatchScore, len(scored))
	for i, r := range scored {
		scores[i] = r.Score
	}
	audited, biasReport := o.auditor.Audit(scores)
	result.BiasReport = biasReport
	if biasReport.Severity != fairness.SeverityNone {
		log.Warn("fairness findings", zap.String("severity", string(biasReport.Severity)), zap.Int("adjusted", biasReport.AdjustedCount))
	}

	log.Info("stage start", zap.String("stage", string(StageRanking)))
	ranked := rank(audited, minScore, maxMatches)
	if len(ranked) == 0 {
		log.Info("no candidates above minimum score", zap.Float64("min_score", minScore))
		return result, nil
	}

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	log.Info("stage start", zap.String("stage", string(StagePersisting)), zap.Int("matches", len(ranked)))
	guarantee := opts.ResponseTimeGuarantee
	if guarantee <= 0 {
		guarantee = defaultResponseGuarantee
	}
	now := o.now()
	matches := make([]types.GeneratedMatch, len(ranked))
	for i, score := range ranked {
		matches[i] = types.GeneratedMatch{
			ID:               uuid.New(),
			RequirementID:    req.ID,
			Score:            score,
			Status:           types.StatusPending,
			CreatedAt:        now,
			ExpiresAt:        now.Add(defaultMatchTTL),
			ResponseDeadline: now.Add(guarantee),
		}
	}
	if err := o.store.SaveMatches(ctx, matches); err != nil {
		return nil, &RepositoryError{Op: "save matches", Err: err}
	}

	if o.scheduler != nil {
		log.Info("stage start", zap.String("stage", string(StageDeadlineScheduling)))
		for _, m := range matches {
			if err := o.scheduler.ScheduleDeadline(ctx, m.ID, m.ResponseDeadline); err != nil {
				// Matches are already persisted; a scheduling failure is
				// surfaced but does not undo the run.
				log.Warn("deadline scheduling failed", zap.String("match_id", m.ID.String()), zap.Error(err))
			}
		}
	}

	log.Info("stage done", zap.String("stage", string(StageDone)), zap.Int("matches", len(matches)))
	result.Matches = matches
	return result, nil
}

// fetchBookings loads current bookings for the eligible set in one batch.
// A nil booking repository means no booking data; scoring degrades gracefully.
func (o *Orchestrator) fetchBookings(ctx context.Context, eligible []*types.TalentProfile) (map[uuid.UUID][]types.Booking, error) {
	if o.bookings == nil {
		return nil, nil
	}
	ids := talentIDs(eligible)
	bookings, err := o.bookings.BookingsFor(ctx, ids)
	if err != nil {
		return nil, &RepositoryError{Op: "fetch bookings", Err: err}
	}
	return bookings, nil
}

// scoreAll scores every eligible candidate concurrently, bounded by the
// configured worker count. Results keep input order regardless of which
// worker finishes first.
func (o *Orchestrator) scoreAll(ctx context.Context, req *types.ProjectRequirement, eligible []*types.TalentProfile, w types.ProjectWeights, bookings map[uuid.UUID][]types.Booking) ([]scoring.Result, error) {
	results := make([]scoring.Result, len(eligible))

	g, gCtx := errgroup.WithContext(ctx)
	g.SetLimit(o.concurrency)
	for i, talent := range eligible {
		g.Go(func() error {
			if err := gCtx.Err(); err != nil {
				return err
			}
			results[i] = o.scorer.Score(req, talent, w, bookings[talent.ID])
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}

// refreshAvailability re-reads windows and bookings and folds fresh
// availability into the already-computed scores.
func (o *Orchestrator) refreshAvailability(ctx context.Context, req *types.ProjectRequirement, eligible []*types.TalentProfile, scored []scoring.Result, w types.ProjectWeights) ([]scoring.Result, error) {
	if o.bookings == nil {
		return scored, nil
	}
	ids := talentIDs(eligible)

	var windows map[uuid.UUID][]types.AvailabilityWindow
	var bookings map[uuid.UUID][]types.Booking

	g, gCtx := errgroup.WithContext(ctx)
	g.Go(func() error {
		wins, err := o.bookings.WindowsFor(gCtx, ids)
		if err != nil {
			return &RepositoryError{Op: "refresh windows", Err: err}
		}
		windows = wins
		return nil
	})
	g.Go(func() error {
		bks, err := o.bookings.BookingsFor(gCtx, ids)
		if err != nil {
			return &RepositoryError{Op: "refresh bookings", Err: err}
		}
		bookings = bks
		return nil
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	for i, talent := range eligible {
		wins, ok := windows[talent.ID]
		if !ok {
			wins = talent.Availability
		}
		scored[i] = o.scorer.Rescore(scored[i], req, wins, bookings[talent.ID], w)
	}
	return scored, nil
}

// rank sorts by total score descending with a stable sort, so equal scores
// keep their input order, then applies the score floor and result cap and
// assigns 1-based ranks.
func rank(scores []types.MatchScore, minScore float64, maxMatches int) []types.MatchScore {
	ranked := make([]types.MatchScore, len(scores))
	copy(ranked, scores)

	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].TotalScore > ranked[j].TotalScore
	})

	out := ranked[:0]
	for _, s := range ranked {
		if s.TotalScore < minScore {
			continue
		}
		out = append(out, s)
		if len(out) == maxMatches {
			break
		}
	}
	for i := range out {
		out[i].Rank = i + 1
	}
	return out
}

func talentIDs(talents []*types.TalentProfile) []uuid.UUID {
	ids := make([]uuid.UUID, len(talents))
	for i, t := range talents {
		ids[i] = t.ID
	}
	return ids
}
