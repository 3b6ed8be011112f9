package patterns

import (
	"math"

	"github.com/willfong/bank-ledger/internal/utils"
)

// Shape selects how amounts spread over their range
type Shape int

const (
	ShapeUniform Shape = iota
	// ShapeExponential yields many small amounts and few large ones
	ShapeExponential
)

// AmountDistribution draws money amounts from a range
type AmountDistribution struct {
	min, max utils.Money
	shape    Shape
}

// NewAmountRange creates a uniform amount distribution
func NewAmountRange(min, max utils.Money) *AmountDistribution {
	return &AmountDistribution{min: min, max: max, shape: ShapeUniform}
}

// NewExponentialAmountRange creates an exponential amount distribution
func NewExponentialAmountRange(min, max utils.Money) *AmountDistribution {
	return &AmountDistribution{min: min, max: max, shape: ShapeExponential}
}

// Amount converts a uniform rngValue in [0, 1) into an amount within the
// range, rounded to a plausible price.
func (ad *AmountDistribution) Amount(rngValue float64) utils.Money {
	fraction := clamp01(rngValue)
	if ad.shape == ShapeExponential {
		if fraction >= 0.9999 {
			fraction = 0.9999
		}
		fraction = math.Min(-math.Log(1-fraction)/5.0, 1)
	}

	amount := ad.min + utils.Money(float64(ad.max-ad.min)*fraction)
	amount = roundToNiceAmount(amount)

	if amount < ad.min {
		amount = ad.min
	}
	if amount > ad.max {
		amount = ad.max
	}
	return amount
}

// roundToNiceAmount rounds down to price points people actually pay
func roundToNiceAmount(m utils.Money) utils.Money {
	var step utils.Money
	switch {
	case m < utils.Units(10):
		step = utils.Cents(5)
	case m < utils.Units(100):
		step = utils.Cents(25)
	case m < utils.Units(1000):
		step = utils.Units(1)
	case m < utils.Units(10000):
		step = utils.Units(5)
	default:
		step = utils.Units(10)
	}
	return (m / step) * step
}

// CardAmounts holds the amount ranges the seeder draws from
type CardAmounts struct {
	Purchase  *AmountDistribution
	Bill      *AmountDistribution
	Repayment *AmountDistribution
}

// NewCardAmounts creates the default amount ranges
func NewCardAmounts() *CardAmounts {
	return &CardAmounts{
		Purchase:  NewExponentialAmountRange(utils.Units(5), utils.Units(2500)),
		Bill:      NewAmountRange(utils.Units(150), utils.Units(1500)),
		Repayment: NewAmountRange(utils.Units(100), utils.Units(5000)),
	}
}
