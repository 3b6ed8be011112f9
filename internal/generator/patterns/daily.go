package patterns

import (
	"math"
	"time"
)

// DailyPattern weights card activity by hour of day
type DailyPattern struct {
	// 1.0 is average activity
	hourlyMultipliers [24]float64
}

// NewCardDailyPattern creates the card spending curve: quiet nights, a
// lunch peak and an evening shopping peak.
func NewCardDailyPattern() *DailyPattern {
	return &DailyPattern{hourlyMultipliers: [24]float64{
		0.05, 0.03, 0.02, 0.02, 0.03, 0.05, // 00-05
		0.15, 0.40, 0.80, 1.00, 1.10, 1.20, // 06-11
		1.70, 1.40, 1.00, 0.90, 1.00, 1.30, // 12-17
		1.60, 1.50, 1.20, 0.80, 0.40, 0.15, // 18-23
	}}
}

// Multiplier returns the activity multiplier for an hour (0-23)
func (dp *DailyPattern) Multiplier(hour int) float64 {
	if hour < 0 || hour > 23 {
		return 0
	}
	return dp.hourlyMultipliers[hour]
}

// IsPeakHour reports whether hour is a peak activity period
func (dp *DailyPattern) IsPeakHour(hour int) bool {
	return dp.Multiplier(hour) >= 1.3
}

// TimeInActiveWindow picks an hour in 06:00-22:59 weighted by the pattern,
// and a minute, from one uniform rngValue.
func (dp *DailyPattern) TimeInActiveWindow(rngValue float64) (hour int, minute int) {
	var total float64
	for h := 6; h <= 22; h++ {
		total += dp.hourlyMultipliers[h]
	}

	target := clamp01(rngValue) * total
	hour = 22
	var cumulative float64
	for h := 6; h <= 22; h++ {
		cumulative += dp.hourlyMultipliers[h]
		if target < cumulative {
			hour = h
			break
		}
	}

	minute = int(math.Mod(rngValue*1000, 1.0) * 60)
	return hour, minute
}

// At places day's date at a pattern-weighted time of day
func (dp *DailyPattern) At(day time.Time, rngValue float64) time.Time {
	hour, minute := dp.TimeInActiveWindow(rngValue)
	y, m, d := day.Date()
	return time.Date(y, m, d, hour, minute, 0, 0, day.Location())
}
