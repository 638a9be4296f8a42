// Package fairness audits a scored candidate set for systematic bias and
// applies bounded, deterministic corrections. Only TotalScore is ever
// mutated; breakdowns, reasons, and ranks are left untouched.
package fairness

import (
	"fmt"
	"hash/fnv"
	"math"
	"sort"

	"github.com/google/uuid"

	"github.com/jonathan/talent-match/internal/types"
)

// Audit tuning constants. Corrections are bounded so a fairness pass can
// nudge an ordering but never invert a clear quality difference.
const (
	// varianceBar triggers the spread check: a standard deviation above it
	// means the scoring run produced implausibly polarized results.
	varianceBar = 0.35

	// maxDeviation is the widest distance from the mean a score may keep
	// after the variance correction.
	maxDeviation = 0.40

	// clusterScoreBar is the high-score threshold for the clustering check.
	// Candidates above it form the top cluster.
	clusterScoreBar = 0.80

	// clusterShareBar triggers the clustering check: when more than this
	// fraction of the set sits above clusterScoreBar, the top of the
	// ranking is effectively arbitrary.
	clusterShareBar = 0.5

	// clusterMinSize is the minimum clustered candidate count before
	// clustering is considered meaningful.
	clusterMinSize = 3

	// perturbScale bounds the deterministic tie-spreading nudge.
	perturbScale = 0.01

	// parityGapBar is the largest tolerated gap between demographic-group
	// mean scores before the parity check flags the run.
	parityGapBar = 0.15
)

// Severity grades how concerning a triggered check is.
type Severity string

// Severities, ordered none < low < medium < high.
const (
	SeverityNone   Severity = "none"
	SeverityLow    Severity = "low"
	SeverityMedium Severity = "medium"
	SeverityHigh   Severity = "high"
)

func (s Severity) rank() int {
	switch s {
	case SeverityLow:
		return 1
	case SeverityMedium:
		return 2
	case SeverityHigh:
		return 3
	default:
		return 0
	}
}

// Check is the outcome of one bias check.
type Check struct {
	Name      string   `json:"name"`
	Triggered bool     `json:"triggered"`
	Severity  Severity `json:"severity"`
	Detail    string   `json:"detail"`
}

// Report summarizes one audit pass.
type Report struct {
	Checks          []Check  `json:"checks"`
	AdjustedCount   int      `json:"adjusted_count"`
	Severity        Severity `json:"severity"` // worst triggered severity
	Recommendations []string `json:"recommendations,omitempty"`
}

// DemographicsProvider maps talent IDs to demographic group labels for the
// parity check. Implementations return only the IDs they have data for;
// an empty map means the check must be skipped, never guessed.
type DemographicsProvider interface {
	Groups(ids []uuid.UUID) map[uuid.UUID]string
}

// NoDemographics is the default provider: it knows nothing, so the parity
// check always reports insufficient data. Demographic groups are never
// inferred from profile fields.
type NoDemographics struct{}

// Groups always returns nil.
func (NoDemographics) Groups([]uuid.UUID) map[uuid.UUID]string { return nil }

// Auditor runs the bias checks. Zero value is not usable; use NewAuditor.
type Auditor struct {
	demographics DemographicsProvider
}

// NewAuditor builds an Auditor. A nil provider falls back to NoDemographics.
func NewAuditor(provider DemographicsProvider) *Auditor {
	if provider == nil {
		provider = NoDemographics{}
	}
	return &Auditor{demographics: provider}
}

// Audit inspects the scored set, applies bounded corrections, and reports
// what it found. The input slice is not mutated; the returned slice carries
// the corrected scores in the same order. Identical inputs always produce
// identical outputs.
func (a *Auditor) Audit(scores []types.MatchScore) ([]types.MatchScore, Report) {
	out := make([]types.MatchScore, len(scores))
	copy(out, scores)

	report := Report{Severity: SeverityNone}
	if len(out) == 0 {
		return out, report
	}

	mean, stddev := meanStddev(out)

	report.add(a.checkVariance(out, mean, stddev, &report))
	report.add(a.checkClustering(out, &report))
	report.add(a.checkParity(out))

	for i := range out {
		out[i].TotalScore = clamp01(out[i].TotalScore)
	}
	return out, report
}

// checkVariance clamps outliers to a bounded band around the mean when the
// score spread is implausibly wide.
func (a *Auditor) checkVariance(scores []types.MatchScore, mean, stddev float64, report *Report) Check {
	c := Check{Name: "score_variance", Severity: SeverityNone}
	if stddev <= varianceBar {
		c.Detail = fmt.Sprintf("standard deviation %.3f within bounds", stddev)
		return c
	}

	adjusted := 0
	for i := range scores {
		d := scores[i].TotalScore - mean
		if math.Abs(d) > maxDeviation {
			scores[i].TotalScore = mean + math.Copysign(maxDeviation, d)
			adjusted++
		}
	}

	c.Triggered = true
	c.Severity = SeverityMedium
	c.Detail = fmt.Sprintf("standard deviation %.3f exceeds %.2f; %d score(s) clamped", stddev, varianceBar, adjusted)
	report.AdjustedCount += adjusted
	report.Recommendations = append(report.Recommendations,
		"Review the requirement's weight profile; extreme score spread often means one dimension dominates")
	return c
}

// checkClustering looks for a disproportionate share of candidates bunched
// above the high-score bar. Only the clustered top scores are spread, with a
// small perturbation derived from each talent ID, so ties break reproducibly
// instead of by input order alone.
func (a *Auditor) checkClustering(scores []types.MatchScore, report *Report) Check {
	c := Check{Name: "score_clustering", Severity: SeverityNone}

	clustered := make([]int, 0, len(scores))
	for i := range scores {
		if scores[i].TotalScore > clusterScoreBar {
			clustered = append(clustered, i)
		}
	}
	share := float64(len(clustered)) / float64(len(scores))
	if len(clustered) < clusterMinSize || share <= clusterShareBar {
		c.Detail = fmt.Sprintf("%d of %d candidate(s) above %.2f; separation adequate", len(clustered), len(scores), clusterScoreBar)
		return c
	}

	for _, i := range clustered {
		scores[i].TotalScore += perturb(scores[i].TalentID)
	}

	c.Triggered = true
	c.Severity = SeverityLow
	c.Detail = fmt.Sprintf("%d of %d candidates above %.2f; deterministic spread of up to %.3f applied to the cluster", len(clustered), len(scores), clusterScoreBar, perturbScale)
	report.AdjustedCount += len(clustered)
	report.Recommendations = append(report.Recommendations,
		"Top scores are nearly indistinguishable; consider tightening the requirement's skill list")
	return c
}

// checkParity compares mean scores across demographic groups when the
// provider has data. With no data the check is skipped and says so; group
// membership is never inferred.
func (a *Auditor) checkParity(scores []types.MatchScore) Check {
	c := Check{Name: "demographic_parity", Severity: SeverityNone}

	ids := make([]uuid.UUID, len(scores))
	for i, s := range scores {
		ids[i] = s.TalentID
	}
	groups := a.demographics.Groups(ids)
	if len(groups) == 0 {
		c.Detail = "insufficient demographic data; check skipped"
		return c
	}

	sums := make(map[string]float64)
	counts := make(map[string]int)
	for _, s := range scores {
		g, ok := groups[s.TalentID]
		if !ok {
			continue
		}
		sums[g] += s.TotalScore
		counts[g]++
	}
	if len(counts) < 2 {
		c.Detail = "fewer than two demographic groups represented; check skipped"
		return c
	}

	names := make([]string, 0, len(counts))
	for g := range counts {
		names = append(names, g)
	}
	sort.Strings(names)

	lo, hi := math.Inf(1), math.Inf(-1)
	var loGroup, hiGroup string
	for _, g := range names {
		m := sums[g] / float64(counts[g])
		if m < lo {
			lo, loGroup = m, g
		}
		if m > hi {
			hi, hiGroup = m, g
		}
	}

	gap := hi - lo
	if gap <= parityGapBar {
		c.Detail = fmt.Sprintf("largest group mean gap %.3f within bounds", gap)
		return c
	}

	// Parity violations are surfaced, never silently corrected: rescoring
	// by group membership would itself be discriminatory.
	c.Triggered = true
	c.Severity = SeverityHigh
	c.Detail = fmt.Sprintf("group %q averages %.3f above group %q; gap exceeds %.2f", hiGroup, gap, loGroup, parityGapBar)
	return c
}

func (r *Report) add(c Check) {
	r.Checks = append(r.Checks, c)
	if c.Triggered && c.Severity.rank() > r.Severity.rank() {
		r.Severity = c.Severity
	}
	if c.Triggered && c.Severity == SeverityHigh {
		r.Recommendations = append(r.Recommendations,
			"Escalate for human review; automated correction is not applied to parity findings")
	}
}

// perturb maps a talent ID to a stable value in [-perturbScale, perturbScale].
func perturb(id uuid.UUID) float64 {
	h := fnv.New64a()
	h.Write(id[:])
	// Map the hash onto [-1, 1) then scale.
	unit := float64(h.Sum64()%(1<<20))/float64(1<<19) - 1
	return unit * perturbScale
}

func meanStddev(scores []types.MatchScore) (mean, stddev float64) {
	for _, s := range scores {
		mean += s.TotalScore
	}
	mean /= float64(len(scores))

	variance := 0.0
	for _, s := range scores {
		d := s.TotalScore - mean
		variance += d * d
	}
	variance /= float64(len(scores))
	return mean, math.Sqrt(variance)
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
