// Package availability expands recurring availability windows into concrete
// intervals and computes temporal overlap between a talent's availability and
// a project timeframe.
package availability

import (
	"time"

	"github.com/jonathan/talent-match/internal/types"
)

// ExpandWindows turns every recurring window into a flat list of concrete,
// non-recurring occurrences bounded by the timeframe end. Expansion never
// mutates the input; output is ephemeral, scoped to one ranking call.
// Non-recurring windows pass through unchanged.
func ExpandWindows(windows []types.AvailabilityWindow, timeframe types.Timeframe) []types.AvailabilityWindow {
	expanded := make([]types.AvailabilityWindow, 0, len(windows))

	for _, w := range windows {
		if w.Recurrence == nil {
			expanded = append(expanded, w)
			continue
		}
		expanded = append(expanded, expandRecurring(w, timeframe)...)
	}

	return expanded
}

// expandRecurring walks from the window's start by the recurrence interval
// until the pattern end date or the project end date, whichever is earlier.
// Occurrences outside the day-of-week mask are skipped.
func expandRecurring(w types.AvailabilityWindow, timeframe types.Timeframe) []types.AvailabilityWindow {
	rule := w.Recurrence
	interval := rule.Interval
	if interval < 1 {
		interval = 1
	}

	until := timeframe.End
	if !rule.Until.IsZero() && rule.Until.Before(until) {
		until = rule.Until
	}

	span := w.End.Sub(w.Start)
	if span <= 0 || until.IsZero() {
		return nil
	}

	var out []types.AvailabilityWindow
	for start := w.Start; !start.After(until); start = step(start, rule.Frequency, interval) {
		if !matchesDayMask(start, rule.DaysOfWeek) {
			continue
		}
		out = append(out, types.AvailabilityWindow{
			Start:    start,
			End:      start.Add(span),
			Capacity: w.Capacity,
			Timezone: w.Timezone,
			Booked:   w.Booked,
		})
	}

	return out
}

// step advances one recurrence interval. Monthly steps use calendar months so
// a window anchored on the 15th stays on the 15th.
func step(t time.Time, freq types.RecurrenceFrequency, interval int) time.Time {
	switch freq {
	case types.RecurDaily:
		return t.AddDate(0, 0, interval)
	case types.RecurWeekly:
		return t.AddDate(0, 0, 7*interval)
	case types.RecurMonthly:
		return t.AddDate(0, interval, 0)
	default:
		// Unknown frequency: jump past any bound to terminate the walk.
		return t.AddDate(100, 0, 0)
	}
}

func matchesDayMask(t time.Time, mask []time.Weekday) bool {
	if len(mask) == 0 {
		return true
	}
	for _, d := range mask {
		if t.Weekday() == d {
			return true
		}
	}
	return false
}
