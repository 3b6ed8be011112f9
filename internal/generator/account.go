package generator

import (
	"github.com/willfong/bank-ledger/internal/models"
	"github.com/willfong/bank-ledger/internal/utils"
)

// AccountPlan is an account to open together with the cards to issue on it
type AccountPlan struct {
	Type      models.AccountType
	IBAN      string
	DebitCard CardPlan
	// CreditCard is nil when the account gets no credit card
	CreditCard *CardPlan
}

// CardPlan is a card to issue and the movements to attempt on it
type CardPlan struct {
	Number    string
	Balance   utils.Money
	Movements []MovementPlan
}

// AccountGenerator plans accounts and their cards
type AccountGenerator struct {
	rng    *utils.Random
	txGen  *TransactionGenerator
	config AccountGeneratorConfig
}

// AccountGeneratorConfig holds settings for account generation
type AccountGeneratorConfig struct {
	// MaxAccounts is the upper bound of accounts per customer
	MaxAccounts int
	// CreditCardRatio is the probability that an account gets a credit card
	CreditCardRatio float64
	// DemandRatio is the share of demand accounts (the rest are term)
	DemandRatio float64
}

// NewAccountGenerator creates a new account generator
func NewAccountGenerator(rng *utils.Random, txGen *TransactionGenerator, config AccountGeneratorConfig) *AccountGenerator {
	if config.MaxAccounts < 1 {
		config.MaxAccounts = 1
	}
	if config.DemandRatio <= 0 {
		config.DemandRatio = 0.8
	}
	return &AccountGenerator{
		rng:    rng,
		txGen:  txGen,
		config: config,
	}
}

// minCreditBalance is the smallest credit card limit worth issuing
var minCreditBalance = utils.Units(500)

// GenerateForCustomer plans between one and MaxAccounts accounts. Credit
// card balances are carved out of riskLimit so the plan never asks for more
// than the customer can hold.
func (g *AccountGenerator) GenerateForCustomer(riskLimit utils.Money) []AccountPlan {
	count := g.rng.IntRange(1, g.config.MaxAccounts)
	remaining := riskLimit

	plans := make([]AccountPlan, 0, count)
	for i := 0; i < count; i++ {
		plan := AccountPlan{
			Type: g.pickType(),
			IBAN: g.rng.IBAN(),
			DebitCard: CardPlan{
				Number:    g.rng.CardNumber(),
				Movements: g.txGen.DebitMovements(),
			},
		}

		if g.rng.Probability(g.config.CreditCardRatio) {
			if balance := g.creditBalance(remaining); balance >= minCreditBalance {
				remaining = remaining.Sub(balance)
				plan.CreditCard = &CardPlan{
					Number:    g.rng.CardNumber(),
					Balance:   balance,
					Movements: g.txGen.CreditMovements(balance),
				}
			}
		}

		plans = append(plans, plan)
	}

	return plans
}

func (g *AccountGenerator) pickType() models.AccountType {
	if g.rng.Probability(g.config.DemandRatio) {
		return models.AccountTypeDemand
	}
	return models.AccountTypeTerm
}

// creditBalance takes 20-60% of what is left, rounded down to 100
func (g *AccountGenerator) creditBalance(remaining utils.Money) utils.Money {
	share := 0.2 + g.rng.Float64()*0.4
	balance := utils.Money(float64(remaining) * share)
	return (balance / utils.Units(100)) * utils.Units(100)
}
