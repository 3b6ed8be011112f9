// Package patterns shapes generated card activity: how busy each card is,
// how large its movements are and when during the day they happen.
package patterns

import "math"

// ActivityDistribution assigns activity scores to cards following a
// Pareto (80/20) shape.
type ActivityDistribution struct {
	// paretoRatio is the fraction of cards that generate most activity
	paretoRatio float64

	// paretoIntensity controls how steep the distribution is
	paretoIntensity float64
}

// NewParetoDistribution creates a Pareto-based activity distribution.
// With ratio=0.2, approximately 20% of cards generate 80% of activity.
func NewParetoDistribution(ratio float64) *ActivityDistribution {
	if ratio <= 0 || ratio >= 1 {
		ratio = 0.2
	}

	return &ActivityDistribution{
		paretoRatio:     ratio,
		paretoIntensity: math.Log(0.8) / math.Log(ratio),
	}
}

// NewUniformDistribution creates a distribution where every card is
// equally active.
func NewUniformDistribution() *ActivityDistribution {
	return &ActivityDistribution{
		paretoRatio:     1.0,
		paretoIntensity: 1.0,
	}
}

// Score maps a uniform percentile in [0, 1] to an activity score in [0, 1].
// Higher scores are more active.
func (ad *ActivityDistribution) Score(percentile float64) float64 {
	percentile = clamp01(percentile)
	return math.Pow(percentile, 1.0/ad.paretoIntensity)
}

// Transactions scales base by the activity score. Quiet cards get a fifth
// of base, the busiest three times base.
func (ad *ActivityDistribution) Transactions(score float64, base int) int {
	multiplier := 0.2 + clamp01(score)*2.8
	return int(math.Round(float64(base) * multiplier))
}

// Tier categorizes cards by activity level
type Tier string

const (
	TierHigh   Tier = "high"
	TierMedium Tier = "medium"
	TierLow    Tier = "low"
)

// TierOf returns the activity tier for a score
func (ad *ActivityDistribution) TierOf(score float64) Tier {
	switch {
	case score >= 0.9:
		return TierHigh
	case score >= 0.6:
		return TierMedium
	default:
		return TierLow
	}
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
