package generator

import (
	"context"
	"reflect"
	"sync/atomic"
	"testing"
	"time"

	"github.com/sirupsen/logrus/hooks/test"
	"github.com/willfong/bank-ledger/internal/config"
	"github.com/willfong/bank-ledger/internal/ledger"
	"github.com/willfong/bank-ledger/internal/models"
	"github.com/willfong/bank-ledger/internal/repository"
	"github.com/willfong/bank-ledger/internal/service"
	"github.com/willfong/bank-ledger/internal/utils"
)

var testBaseDate = time.Date(2024, 6, 30, 0, 0, 0, 0, time.UTC)

func testConfig(seed int64) OrchestratorConfig {
	return OrchestratorConfig{
		SeedConfig: config.SeedConfig{
			Seed:                seed,
			Customers:           20,
			AccountsPerCustomer: 2,
			CreditCardRatio:     0.7,
			TransactionsPerCard: 8,
		},
		BaseDate:              testBaseDate,
		DaysOfHistory:         60,
		InsufficientFundsRate: 0.05,
		DebitAttemptRate:      0.3,
		Workers:               4,
	}
}

func newTestOrchestrator(t *testing.T, cfg OrchestratorConfig) (*Orchestrator, *repository.MemoryStore) {
	t.Helper()
	logger, _ := test.NewNullLogger()
	store := repository.NewMemoryStore()
	o, err := NewOrchestrator(cfg, service.New(store, logger), logger)
	if err != nil {
		t.Fatalf("Failed to create orchestrator: %v", err)
	}
	return o, store
}

func TestPlanIsReproducible(t *testing.T) {
	a, _ := newTestOrchestrator(t, testConfig(42))
	b, _ := newTestOrchestrator(t, testConfig(42))

	pa, pb := a.Plan(), b.Plan()
	if !reflect.DeepEqual(pa, pb) {
		t.Error("Expected identical plans for the same seed")
	}

	c, _ := newTestOrchestrator(t, testConfig(43))
	if reflect.DeepEqual(pa, c.Plan()) {
		t.Error("Expected different plans for different seeds")
	}
}

func TestPlanRespectsLimits(t *testing.T) {
	o, _ := newTestOrchestrator(t, testConfig(7))
	start := testBaseDate.AddDate(0, 0, -60)
	end := testBaseDate.AddDate(0, 0, 1)

	for _, p := range o.Plan() {
		if len(p.Accounts) < 1 || len(p.Accounts) > 2 {
			t.Errorf("Expected 1-2 accounts, got %d", len(p.Accounts))
		}
		if len(p.Details.IdentityNumber) != config.IdentityNumberLength {
			t.Errorf("Expected 11 digit identity number, got %q", p.Details.IdentityNumber)
		}

		var held utils.Money
		for _, ap := range p.Accounts {
			if len(ledger.StripWhitespace(ap.IBAN)) != config.CanonicalIbanLength {
				t.Errorf("Expected canonical IBAN length, got %q", ap.IBAN)
			}
			if ap.CreditCard == nil {
				continue
			}
			held = held.Add(ap.CreditCard.Balance)

			var last time.Time
			for _, mv := range ap.CreditCard.Movements {
				if !mv.Amount.IsPositive() {
					t.Errorf("Expected positive amount, got %s", mv.Amount)
				}
				if mv.At.Before(start) || mv.At.After(end) {
					t.Errorf("Movement at %v outside history window", mv.At)
				}
				if mv.At.Before(last) {
					t.Errorf("Expected ascending movement times, got %v after %v", mv.At, last)
				}
				last = mv.At
			}
		}
		if held > p.Details.RiskLimit {
			t.Errorf("Credit balances %s exceed risk limit %s", held, p.Details.RiskLimit)
		}
	}
}

func TestCreditMovementsStayConsistent(t *testing.T) {
	txGen := NewTransactionGenerator(utils.NewRandom(11), TransactionGeneratorConfig{
		StartDate:           testBaseDate.AddDate(0, -1, 0),
		EndDate:             testBaseDate,
		TransactionsPerCard: 30,
	})

	for i := 0; i < 20; i++ {
		balance := utils.Units(5000)
		card := &models.Card{Type: models.CardTypeCredit, Balance: balance}
		for _, mv := range txGen.CreditMovements(balance) {
			if mv.Amount > card.Balance {
				t.Fatalf("Movement %s exceeds balance %s with no declines configured", mv.Amount, card.Balance)
			}
			if err := ledger.ApplyMovement(card, mv.Amount, mv.Direction); err != nil {
				t.Fatalf("Planned movement rejected: %v", err)
			}
			if card.Balance.Add(card.Debt) != balance {
				t.Fatalf("Expected balance + debt = %s, got %s + %s", balance, card.Balance, card.Debt)
			}
		}
	}
}

func TestRunSeedsLedger(t *testing.T) {
	o, store := newTestOrchestrator(t, testConfig(42))
	ctx := context.Background()

	var calls atomic.Int64
	result, err := o.Run(ctx, func(current, total int64, phase string) {
		calls.Add(1)
		if total != 20 {
			t.Errorf("Expected total 20, got %d", total)
		}
	})
	if err != nil {
		t.Fatalf("Run failed: %v", err)
	}

	if calls.Load() != 20 {
		t.Errorf("Expected 20 progress calls, got %d", calls.Load())
	}
	if result.Customers == 0 || result.Accounts == 0 || result.Cards == 0 {
		t.Fatalf("Expected entities to be created, got %+v", result)
	}

	customers, _ := store.Customers().List(ctx)
	if int64(len(customers)) != result.Customers {
		t.Errorf("Expected %d stored customers, got %d", result.Customers, len(customers))
	}
	history, _ := store.Transactions().List(ctx)
	if int64(len(history)) != result.Transactions {
		t.Errorf("Expected %d stored transactions, got %d", result.Transactions, len(history))
	}

	// Every customer's held risk limit equals the balance plus debt of its credit cards
	for _, c := range customers {
		accounts, _ := store.Accounts().ListByCustomer(ctx, c.ID)
		var held utils.Money
		for _, a := range accounts {
			cards, _ := store.Cards().ListByAccount(ctx, a.ID)
			for _, card := range cards {
				if card.IsCredit() {
					held = held.Add(card.Balance).Add(card.Debt)
				}
			}
		}
		if held != c.HeldRiskLimit() {
			t.Errorf("Customer %s: expected held %s, got %s", c.ID, held, c.HeldRiskLimit())
		}
	}

	if result.Rejected() > 0 {
		reasons := result.RejectionReasons()
		if len(reasons) == 0 {
			t.Error("Expected rejection reasons when rejections were counted")
		}
	}
}

func TestRunStopsOnCancelledContext(t *testing.T) {
	o, _ := newTestOrchestrator(t, testConfig(1))
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	if _, err := o.Run(ctx, nil); err == nil {
		t.Error("Expected error for cancelled context")
	}
}

func TestPartitionPlans(t *testing.T) {
	plans := make([]CustomerPlan, 7)
	parts := PartitionPlans(plans, 3)
	if len(parts) != 3 {
		t.Fatalf("Expected 3 partitions, got %d", len(parts))
	}
	sizes := []int{len(parts[0]), len(parts[1]), len(parts[2])}
	if !reflect.DeepEqual(sizes, []int{3, 2, 2}) {
		t.Errorf("Expected sizes [3 2 2], got %v", sizes)
	}
	if len(PartitionPlans(plans, 0)) != 1 {
		t.Error("Expected a single partition for zero workers")
	}
}

func TestSeedResultRejectionReasons(t *testing.T) {
	r := &SeedResult{Rejections: map[string]int64{"b": 2, "a": 2, "c": 5}}
	if r.Rejected() != 9 {
		t.Errorf("Expected 9 rejections, got %d", r.Rejected())
	}
	if got := r.RejectionReasons(); !reflect.DeepEqual(got, []string{"c", "a", "b"}) {
		t.Errorf("Expected [c a b], got %v", got)
	}
}
