package generator

import (
	"sort"
	"time"

	"github.com/willfong/bank-ledger/internal/generator/patterns"
	"github.com/willfong/bank-ledger/internal/ledger"
	"github.com/willfong/bank-ledger/internal/models"
	"github.com/willfong/bank-ledger/internal/utils"
)

// MovementPlan is one card transaction to attempt
type MovementPlan struct {
	Amount     utils.Money
	Direction  models.Direction
	Type       models.TransactionType
	Definition string
	At         time.Time
}

// TransactionGenerator plans card movements over a history window
type TransactionGenerator struct {
	rng    *utils.Random
	config TransactionGeneratorConfig

	daily        *patterns.DailyPattern
	activityDist *patterns.ActivityDistribution
	amounts      *patterns.CardAmounts
}

// TransactionGeneratorConfig holds settings for transaction generation
type TransactionGeneratorConfig struct {
	// Time range for historical transactions
	StartDate time.Time
	EndDate   time.Time

	// TransactionsPerCard is the average number of movements per credit card
	TransactionsPerCard int

	// ParetoRatio (e.g., 0.2 = 20% of cards generate 80% of volume)
	ParetoRatio float64

	// RepaymentRate is the chance that a movement on an indebted card is a repayment
	RepaymentRate float64

	// InsufficientFundsRate is the chance that a purchase is planned past the
	// card balance and gets declined
	InsufficientFundsRate float64

	// DebitAttemptRate is the chance that a debit card sees a spending attempt
	DebitAttemptRate float64
}

// NewTransactionGenerator creates a new transaction generator
func NewTransactionGenerator(rng *utils.Random, config TransactionGeneratorConfig) *TransactionGenerator {
	if config.EndDate.IsZero() {
		config.EndDate = time.Now()
	}
	if !config.StartDate.Before(config.EndDate) {
		config.StartDate = config.EndDate.AddDate(0, -3, 0)
	}
	if config.RepaymentRate <= 0 {
		config.RepaymentRate = 0.25
	}

	return &TransactionGenerator{
		rng:          rng,
		config:       config,
		daily:        patterns.NewCardDailyPattern(),
		activityDist: patterns.NewParetoDistribution(config.ParetoRatio),
		amounts:      patterns.NewCardAmounts(),
	}
}

var (
	purchaseDefinitions = []string{
		"Market", "Restoran", "Akaryakıt", "Online alışveriş", "Eczane", "Giyim", "Elektronik",
	}
	billDefinitions = []string{
		"Elektrik faturası", "Su faturası", "Doğalgaz faturası", "İnternet faturası", "GSM faturası",
	}
	repaymentDefinition = "Kart borcu ödemesi"
)

// CreditMovements plans spending and repayments on a credit card issued with
// balance. Movements are simulated against the card so that, barring the
// declines injected on purpose, every one passes the ledger rules.
func (g *TransactionGenerator) CreditMovements(balance utils.Money) []MovementPlan {
	score := g.activityDist.Score(g.rng.Float64())
	count := g.activityDist.Transactions(score, g.config.TransactionsPerCard)
	if count == 0 {
		return nil
	}

	card := models.Card{Type: models.CardTypeCredit, Balance: balance}
	times := g.timestamps(count)

	plans := make([]MovementPlan, 0, count)
	for _, at := range times {
		mv, ok := g.nextCreditMovement(&card)
		if !ok {
			continue
		}
		mv.At = at
		plans = append(plans, mv)
	}
	return plans
}

// nextCreditMovement picks a movement for the simulated card and applies it
// when it would be accepted
func (g *TransactionGenerator) nextCreditMovement(card *models.Card) (MovementPlan, bool) {
	if card.HasDebt() && (card.Balance.IsZero() || g.rng.Probability(g.config.RepaymentRate)) {
		amount := g.amounts.Repayment.Amount(g.rng.Float64())
		if amount > card.Debt {
			amount = card.Debt
		}
		if amount > card.Balance {
			amount = card.Balance
		}
		if !amount.IsPositive() {
			return MovementPlan{}, false
		}
		mv := g.movement(amount, models.DirectionIn, repaymentDefinition)
		return mv, ledger.ApplyMovement(card, amount, models.DirectionIn) == nil
	}

	var amount utils.Money
	var definition string
	if g.rng.Probability(0.2) {
		amount = g.amounts.Bill.Amount(g.rng.Float64())
		definition = g.rng.PickString(billDefinitions)
	} else {
		amount = g.amounts.Purchase.Amount(g.rng.Float64())
		definition = g.rng.PickString(purchaseDefinitions)
	}

	if amount > card.Balance {
		if !g.rng.Probability(g.config.InsufficientFundsRate) {
			amount = card.Balance
		}
		if !amount.IsPositive() {
			return MovementPlan{}, false
		}
		if amount > card.Balance {
			return g.movement(amount, models.DirectionOut, definition), true
		}
	}

	mv := g.movement(amount, models.DirectionOut, definition)
	return mv, ledger.ApplyMovement(card, amount, models.DirectionOut) == nil
}

// DebitMovements occasionally plans a purchase on a fresh debit card. Debit
// cards carry no balance, so these are declined.
func (g *TransactionGenerator) DebitMovements() []MovementPlan {
	if !g.rng.Probability(g.config.DebitAttemptRate) {
		return nil
	}
	mv := g.movement(g.amounts.Purchase.Amount(g.rng.Float64()), models.DirectionOut, g.rng.PickString(purchaseDefinitions))
	mv.At = g.timestamps(1)[0]
	return []MovementPlan{mv}
}

func (g *TransactionGenerator) movement(amount utils.Money, direction models.Direction, definition string) MovementPlan {
	txType := models.TxTypeFAST
	if g.rng.Probability(0.3) {
		txType = models.TxTypeEFT
	}
	return MovementPlan{
		Amount:     amount,
		Direction:  direction,
		Type:       txType,
		Definition: definition,
	}
}

// timestamps returns n ascending times in the window, placed by the daily pattern
func (g *TransactionGenerator) timestamps(n int) []time.Time {
	times := make([]time.Time, n)
	for i := range times {
		day := g.rng.Date(g.config.StartDate, g.config.EndDate)
		times[i] = g.daily.At(day, g.rng.Float64())
	}
	sort.Slice(times, func(i, j int) bool { return times[i].Before(times[j]) })
	return times
}
