package availability

import (
	"fmt"
	"time"

	"github.com/jonathan/talent-match/internal/types"
)

// Composite score weights and thresholds (0-100 scale).
const (
	overlapWeight    = 0.4
	capacityWeight   = 0.2
	timezoneWeight   = 0.2
	conflictPenalty  = 15.0
	urgentOverlapBar = 80.0

	// Capacity sweet spot: 60-80% utilization scores full marks; both
	// under- and over-utilization degrade (over-utilization implies
	// overbooking risk, so it degrades faster).
	sweetSpotLow       = 60.0
	sweetSpotHigh      = 80.0
	underUtilSlope     = 1.5
	overUtilSlope      = 2.0
	overbookedCapacity = 90.0

	// A talent is immediately free when some window starts within this
	// grace period from now and extends past the project start.
	immediateGrace = 7 * 24 * time.Hour
)

// Engine computes availability overlap. The clock is injectable so the
// immediate-availability check stays deterministic in tests.
type Engine struct {
	now func() time.Time
}

// NewEngine builds an Engine using the wall clock.
func NewEngine() *Engine {
	return &Engine{now: time.Now}
}

// NewEngineAt builds an Engine with a fixed clock.
func NewEngineAt(now func() time.Time) *Engine {
	return &Engine{now: now}
}

// ComputeOverlap expands the talent's windows against the timeframe and
// produces the full availability match: overlap metrics, conflict count,
// timezone and capacity scores, the 0-100 composite, and deterministic
// concerns/recommendations. Bookings are the talent's existing confirmed or
// active engagements, fetched by the caller in one batch.
func (e *Engine) ComputeOverlap(windows []types.AvailabilityWindow, timeframe types.Timeframe, bookings []types.Booking) types.AvailabilityMatch {
	m := types.AvailabilityMatch{}

	projectDur := timeframe.End.Sub(timeframe.Start)
	if projectDur <= 0 {
		m.Concerns = append(m.Concerns, "Project timeframe is empty or inverted")
		return m
	}

	expanded := ExpandWindows(windows, timeframe)

	// Capacity-weighted overlap across all available windows.
	var accumulated time.Duration
	capacitySum := 0.0
	availableCount := 0
	for _, w := range expanded {
		if w.Booked {
			continue
		}
		availableCount++
		capacitySum += float64(w.Capacity)

		inter := intersection(w.Start, w.End, timeframe.Start, timeframe.End)
		if inter > 0 {
			accumulated += time.Duration(float64(inter) * float64(w.Capacity) / 100.0)
		}
	}

	m.OverlapPercent = clampRange(float64(accumulated)/float64(projectDur)*100, 0, 100)
	m.OverlapHours = accumulated.Hours()

	for _, b := range bookings {
		if b.Status != "confirmed" && b.Status != "active" {
			continue
		}
		if intersection(b.Start, b.End, timeframe.Start, timeframe.End) > 0 {
			m.ConflictCount++
		}
	}

	if availableCount > 0 {
		m.CapacityUtilization = capacitySum / float64(availableCount)
	}

	m.TimezoneScore = e.timezoneScore(expanded, timeframe)
	m.ImmediatelyFree = e.immediatelyFree(expanded, timeframe)
	m.Score = e.compositeScore(&m, timeframe)

	e.describe(&m, timeframe)
	return m
}

// timezoneScore compares the project timezone against the first window that
// declares one; windows without a timezone inherit the project's.
func (e *Engine) timezoneScore(windows []types.AvailabilityWindow, timeframe types.Timeframe) float64 {
	for _, w := range windows {
		if w.Timezone != "" {
			return TimezoneScore(w.Timezone, timeframe.Timezone)
		}
	}
	return TimezoneScore(timeframe.Timezone, timeframe.Timezone)
}

// immediatelyFree reports whether any available window starts within the
// grace period from now and extends past the project start.
func (e *Engine) immediatelyFree(windows []types.AvailabilityWindow, timeframe types.Timeframe) bool {
	deadline := e.now().Add(immediateGrace)
	for _, w := range windows {
		if w.Booked {
			continue
		}
		if !w.Start.After(deadline) && w.End.After(timeframe.Start) {
			return true
		}
	}
	return false
}

// compositeScore combines overlap, conflicts, capacity utilization, and
// timezone compatibility, then applies the urgency bonus/penalty. Urgent
// projects reward overlap above 80% and penalize heavily otherwise.
func (e *Engine) compositeScore(m *types.AvailabilityMatch, timeframe types.Timeframe) float64 {
	score := m.OverlapPercent*overlapWeight -
		conflictPenalty*float64(m.ConflictCount) +
		capacityScore(m.CapacityUtilization)*capacityWeight +
		m.TimezoneScore*timezoneWeight

	switch timeframe.Urgency {
	case types.UrgencyHigh:
		if m.OverlapPercent > urgentOverlapBar {
			score += 10
		} else {
			score -= 10
		}
	case types.UrgencyCritical:
		if m.OverlapPercent > urgentOverlapBar {
			score += 15
		} else {
			score -= 20
		}
	}

	return clampRange(score, 0, 100)
}

// capacityScore applies the utilization sweet-spot curve on a 0-100 scale.
func capacityScore(mean float64) float64 {
	switch {
	case mean >= sweetSpotLow && mean <= sweetSpotHigh:
		return 100
	case mean < sweetSpotLow:
		return clampRange(100-(sweetSpotLow-mean)*underUtilSlope, 0, 100)
	default:
		return clampRange(100-(mean-sweetSpotHigh)*overUtilSlope, 0, 100)
	}
}

// describe appends human-readable concerns and recommendations. Text is a
// pure function of the computed metrics.
func (e *Engine) describe(m *types.AvailabilityMatch, timeframe types.Timeframe) {
	requiredHours := float64(timeframe.HoursPerWeek) * float64(weeks(timeframe))

	if m.OverlapPercent < 50 {
		m.Concerns = append(m.Concerns, fmt.Sprintf("Availability covers only %.0f%% of the project timeframe", m.OverlapPercent))
		m.Recommendations = append(m.Recommendations, "Consider shifting the project timeline to fit the talent's availability")
	}
	if m.ConflictCount > 0 {
		m.Concerns = append(m.Concerns, fmt.Sprintf("%d existing booking(s) overlap the project interval", m.ConflictCount))
	}
	if m.CapacityUtilization > overbookedCapacity {
		m.Concerns = append(m.Concerns, "Capacity utilization is near full; risk of overbooking")
	}
	if requiredHours > 0 && m.OverlapHours < requiredHours {
		m.Concerns = append(m.Concerns, fmt.Sprintf("Available hours (%.0f) fall short of the %.0f requested", m.OverlapHours, requiredHours))
		m.Recommendations = append(m.Recommendations, "Reduce the weekly-hour ask or extend the project duration")
	}
	if !m.ImmediatelyFree {
		m.Recommendations = append(m.Recommendations, "Plan for a delayed start; the talent is not free within the next week")
	}
}

// weeks returns the project duration in whole weeks, minimum 1 when the
// timeframe is non-empty.
func weeks(timeframe types.Timeframe) int {
	d := timeframe.End.Sub(timeframe.Start)
	if d <= 0 {
		return 0
	}
	w := int(d.Hours() / (24 * 7))
	if w < 1 {
		return 1
	}
	return w
}

func intersection(aStart, aEnd, bStart, bEnd time.Time) time.Duration {
	start := aStart
	if bStart.After(start) {
		start = bStart
	}
	end := aEnd
	if bEnd.Before(end) {
		end = bEnd
	}
	if end.After(start) {
		return end.Sub(start)
	}
	return 0
}

func clampRange(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
