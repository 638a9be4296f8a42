package types

import "time"

// RecurrenceFrequency is the step unit for a recurring availability window.
type RecurrenceFrequency string

// Recurrence frequencies.
const (
	RecurDaily   RecurrenceFrequency = "daily"
	RecurWeekly  RecurrenceFrequency = "weekly"
	RecurMonthly RecurrenceFrequency = "monthly"
)

// RecurrenceRule describes how a window repeats. DaysOfWeek, when present,
// restricts occurrences to the listed weekdays. Until bounds the pattern.
type RecurrenceRule struct {
	Frequency  RecurrenceFrequency `json:"frequency"`
	Interval   int                 `json:"interval"` // every N frequency units, min 1
	DaysOfWeek []time.Weekday      `json:"days_of_week,omitempty"`
	Until      time.Time           `json:"until,omitempty"`
}

// AvailabilityWindow is one span of time a talent can work, at some fraction
// of full capacity. Recurring windows are expanded, never mutated, into
// concrete windows for a given run.
type AvailabilityWindow struct {
	Start      time.Time       `json:"start"`
	End        time.Time       `json:"end"`
	Capacity   int             `json:"capacity"` // 0-100 percent
	Timezone   string          `json:"timezone,omitempty"`
	Booked     bool            `json:"booked,omitempty"`
	Recurrence *RecurrenceRule `json:"recurrence,omitempty"`
}

// Booking is an existing confirmed engagement that may conflict with a new
// project timeframe.
type Booking struct {
	Start  time.Time `json:"start"`
	End    time.Time `json:"end"`
	Status string    `json:"status"` // confirmed, active, ...
}

// Timeframe is the project interval availability is matched against.
type Timeframe struct {
	Start        time.Time `json:"start"`
	End          time.Time `json:"end"`
	HoursPerWeek int       `json:"hours_per_week"`
	Timezone     string    `json:"timezone,omitempty"`
	Urgency      Urgency   `json:"urgency,omitempty"`
}

// AvailabilityMatch is the result of overlapping a talent's availability with
// a project timeframe. Percent-scaled metrics are 0-100; Score is the 0-100
// composite defined by the availability engine.
type AvailabilityMatch struct {
	OverlapPercent      float64  `json:"overlap_percent"`
	OverlapHours        float64  `json:"overlap_hours"`
	ConflictCount       int      `json:"conflict_count"`
	TimezoneScore       float64  `json:"timezone_score"`
	CapacityUtilization float64  `json:"capacity_utilization"`
	Score               float64  `json:"score"`
	ImmediatelyFree     bool     `json:"immediately_free"`
	Concerns            []string `json:"concerns,omitempty"`
	Recommendations     []string `json:"recommendations,omitempty"`
}
