package availability

import (
	"math"
	"strings"
)

// tzOffsets maps named timezones to fixed UTC offsets in hours. Named zones
// are treated as fixed offsets; DST is deliberately ignored since the score
// only needs coarse working-hour compatibility.
var tzOffsets = map[string]float64{
	"utc": 0, "gmt": 0,
	"est": -5, "america/new_york": -5,
	"cst": -6, "america/chicago": -6,
	"mst": -7, "america/denver": -7,
	"pst": -8, "america/los_angeles": -8,
	"brt": -3, "america/sao_paulo": -3,
	"cet": 1, "europe/berlin": 1, "europe/paris": 1, "europe/warsaw": 1,
	"eet": 2, "europe/kyiv": 2, "europe/athens": 2,
	"europe/london": 0,
	"msk": 3, "europe/moscow": 3,
	"gst": 4, "asia/dubai": 4,
	"ist": 5.5, "asia/kolkata": 5.5,
	"ict": 7, "asia/bangkok": 7,
	"sgt": 8, "asia/singapore": 8, "asia/shanghai": 8,
	"jst": 9, "asia/tokyo": 9,
	"aest": 10, "australia/sydney": 10,
	"nzst": 12, "pacific/auckland": 12,
}

// TimezoneOffset returns the fixed UTC offset in hours for a named timezone.
// Unknown or empty names map to UTC.
func TimezoneOffset(name string) float64 {
	return tzOffsets[strings.ToLower(strings.TrimSpace(name))]
}

// TimezoneScore rates working-hour compatibility between two named timezones
// on a 0-100 scale: 100 for a difference of at most 2 hours, degrading in
// steps at 4, 6, and 8 hours.
func TimezoneScore(a, b string) float64 {
	diff := math.Abs(TimezoneOffset(a) - TimezoneOffset(b))
	switch {
	case diff <= 2:
		return 100
	case diff <= 4:
		return 80
	case diff <= 6:
		return 60
	case diff <= 8:
		return 40
	default:
		return 20
	}
}
