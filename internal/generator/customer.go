package generator

import (
	"time"

	"github.com/willfong/bank-ledger/internal/data"
	"github.com/willfong/bank-ledger/internal/ledger"
	"github.com/willfong/bank-ledger/internal/utils"
)

// CustomerGenerator creates customer details from the reference data
type CustomerGenerator struct {
	rng     *utils.Random
	refData *data.ReferenceData
	config  CustomerGeneratorConfig
}

// CustomerGeneratorConfig holds settings for customer generation
type CustomerGeneratorConfig struct {
	// BaseDate anchors birth dates
	BaseDate time.Time
}

// NewCustomerGenerator creates a new customer generator
func NewCustomerGenerator(rng *utils.Random, refData *data.ReferenceData, config CustomerGeneratorConfig) *CustomerGenerator {
	if config.BaseDate.IsZero() {
		config.BaseDate = time.Now()
	}
	return &CustomerGenerator{
		rng:     rng,
		refData: refData,
		config:  config,
	}
}

// riskTier is a credit segment and the risk limit the bank grants it
type riskTier struct {
	cumulative float64
	limit      utils.Money
}

// 50% standard, 30% plus, 15% premium, 5% private
var riskTiers = []riskTier{
	{0.50, utils.Units(10000)},
	{0.80, utils.Units(25000)},
	{0.95, utils.Units(50000)},
	{1.00, utils.Units(150000)},
}

// Generate creates the details of one customer
func (g *CustomerGenerator) Generate() ledger.CustomerDetails {
	isMale := g.rng.Probability(0.5)

	return ledger.CustomerDetails{
		Name:           g.rng.PickString(g.refData.GetFirstNames(isMale)),
		LastName:       g.rng.PickString(g.refData.GetLastNames()),
		IdentityNumber: g.rng.IdentityNumber(),
		BirthPlace:     g.pickBirthPlace(),
		BirthDate:      g.generateBirthDate(),
		RiskLimit:      g.pickRiskLimit(),
	}
}

// pickBirthPlace selects a city weighted by population
func (g *CustomerGenerator) pickBirthPlace() string {
	pick := g.rng.IntRange(1, g.refData.TotalWeight())
	if p := g.refData.PlaceByWeight(pick); p != nil {
		return p.City
	}
	return ""
}

// generateBirthDate creates a birth date for an adult (18-80 years old)
func (g *CustomerGenerator) generateBirthDate() time.Time {
	ageInDays := g.rng.IntRange(18*365, 80*365)
	y, m, d := g.config.BaseDate.AddDate(0, 0, -ageInDays).Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// pickRiskLimit assigns a risk tier
func (g *CustomerGenerator) pickRiskLimit() utils.Money {
	p := g.rng.Float64()
	for _, tier := range riskTiers {
		if p < tier.cumulative {
			return tier.limit
		}
	}
	return riskTiers[len(riskTiers)-1].limit
}
