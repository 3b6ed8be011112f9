// Package generator seeds a ledger with synthetic customers, accounts, cards
// and card history. Everything goes through the application services, so
// seeded data obeys the same rules as live traffic and declined operations
// are counted rather than written.
package generator

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"sync/atomic"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"github.com/willfong/bank-ledger/internal/config"
	"github.com/willfong/bank-ledger/internal/data"
	"github.com/willfong/bank-ledger/internal/ledger"
	"github.com/willfong/bank-ledger/internal/service"
	"github.com/willfong/bank-ledger/internal/utils"
)

// CustomerPlan is one customer and everything to create for it
type CustomerPlan struct {
	Details  ledger.CustomerDetails
	Accounts []AccountPlan
}

// Orchestrator plans synthetic data and applies it through the services
type Orchestrator struct {
	rng      *utils.Random
	refData  *data.ReferenceData
	config   OrchestratorConfig
	services *service.Services
	logger   *logrus.Logger
}

// OrchestratorConfig holds settings for the orchestrator
type OrchestratorConfig struct {
	config.SeedConfig

	// History window ends at BaseDate and spans DaysOfHistory days
	BaseDate      time.Time
	DaysOfHistory int

	ParetoRatio           float64
	InsufficientFundsRate float64
	DebitAttemptRate      float64

	// Workers applying plans in parallel (0 = auto-detect CPUs)
	Workers int
}

// SeedResult holds statistics from a seed run
type SeedResult struct {
	Customers    int64
	Accounts     int64
	Cards        int64
	Transactions int64
	// Rejections counts declined operations by business error message
	Rejections map[string]int64
	Duration   time.Duration
}

// Rejected returns the total number of declined operations
func (r *SeedResult) Rejected() int64 {
	var n int64
	for _, c := range r.Rejections {
		n += c
	}
	return n
}

// RejectionReasons returns the rejection messages sorted by count, then name
func (r *SeedResult) RejectionReasons() []string {
	reasons := make([]string, 0, len(r.Rejections))
	for reason := range r.Rejections {
		reasons = append(reasons, reason)
	}
	sort.Slice(reasons, func(i, j int) bool {
		ci, cj := r.Rejections[reasons[i]], r.Rejections[reasons[j]]
		if ci != cj {
			return ci > cj
		}
		return reasons[i] < reasons[j]
	})
	return reasons
}

// ProgressCallback is called after each customer plan is applied
type ProgressCallback func(current, total int64, phase string)

// NewOrchestrator creates a new orchestrator
func NewOrchestrator(cfg OrchestratorConfig, services *service.Services, logger *logrus.Logger) (*Orchestrator, error) {
	refData, err := data.Load()
	if err != nil {
		return nil, fmt.Errorf("failed to load reference data: %w", err)
	}

	if cfg.BaseDate.IsZero() {
		cfg.BaseDate = time.Now()
	}
	if cfg.DaysOfHistory <= 0 {
		cfg.DaysOfHistory = 90
	}

	return &Orchestrator{
		rng:      utils.NewRandom(cfg.Seed),
		refData:  refData,
		config:   cfg,
		services: services,
		logger:   logger,
	}, nil
}

// Seed returns the RNG seed in use, for reproducing a run
func (o *Orchestrator) Seed() uint64 {
	return o.rng.Seed()
}

// Plan generates the customer plans. The same seed yields the same plans.
func (o *Orchestrator) Plan() []CustomerPlan {
	customerGen := NewCustomerGenerator(o.rng, o.refData, CustomerGeneratorConfig{
		BaseDate: o.config.BaseDate,
	})
	txGen := NewTransactionGenerator(o.rng, TransactionGeneratorConfig{
		StartDate:             o.config.BaseDate.AddDate(0, 0, -o.config.DaysOfHistory),
		EndDate:               o.config.BaseDate,
		TransactionsPerCard:   o.config.TransactionsPerCard,
		ParetoRatio:           o.config.ParetoRatio,
		InsufficientFundsRate: o.config.InsufficientFundsRate,
		DebitAttemptRate:      o.config.DebitAttemptRate,
	})
	accountGen := NewAccountGenerator(o.rng, txGen, AccountGeneratorConfig{
		MaxAccounts:     o.config.AccountsPerCustomer,
		CreditCardRatio: o.config.CreditCardRatio,
	})

	plans := make([]CustomerPlan, 0, o.config.Customers)
	for i := 0; i < o.config.Customers; i++ {
		details := customerGen.Generate()
		plans = append(plans, CustomerPlan{
			Details:  details,
			Accounts: accountGen.GenerateForCustomer(details.RiskLimit),
		})
	}
	return plans
}

// run tracks the counters of one Run
type run struct {
	customers, accounts, cards, transactions atomic.Int64

	mu         sync.Mutex
	rejections map[string]int64
}

// reject records err when it is a business rule violation and reports
// whether it was one
func (r *run) reject(err error) bool {
	if !ledger.IsBusinessError(err) {
		return false
	}
	r.mu.Lock()
	r.rejections[err.Error()]++
	r.mu.Unlock()
	return true
}

// Run plans and applies the synthetic data. Declined operations are
// counted; any other error stops the run.
func (o *Orchestrator) Run(ctx context.Context, progress ProgressCallback) (*SeedResult, error) {
	startTime := time.Now()
	plans := o.Plan()
	total := int64(len(plans))

	workerCount := GetWorkerCount(o.config.Workers)
	if workerCount > len(plans) && len(plans) > 0 {
		workerCount = len(plans)
	}

	o.logger.WithFields(logrus.Fields{
		"customers": total,
		"workers":   workerCount,
		"seed":      o.rng.Seed(),
	}).Info("seeding ledger")

	r := &run{rejections: make(map[string]int64)}
	var done atomic.Int64

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	var wg sync.WaitGroup
	errChan := make(chan error, workerCount)

	for _, partition := range PartitionPlans(plans, workerCount) {
		wg.Add(1)
		go func(partition []CustomerPlan) {
			defer wg.Done()
			for _, p := range partition {
				if err := ctx.Err(); err != nil {
					errChan <- err
					return
				}
				if err := o.apply(ctx, r, p); err != nil {
					errChan <- err
					cancel()
					return
				}
				n := done.Add(1)
				if progress != nil {
					progress(n, total, "customers")
				}
			}
		}(partition)
	}

	wg.Wait()
	close(errChan)

	result := &SeedResult{
		Customers:    r.customers.Load(),
		Accounts:     r.accounts.Load(),
		Cards:        r.cards.Load(),
		Transactions: r.transactions.Load(),
		Rejections:   r.rejections,
		Duration:     time.Since(startTime),
	}

	if err := <-errChan; err != nil {
		return result, fmt.Errorf("seeding stopped: %w", err)
	}

	o.logger.WithFields(logrus.Fields{
		"customers":    result.Customers,
		"accounts":     result.Accounts,
		"cards":        result.Cards,
		"transactions": result.Transactions,
		"rejected":     result.Rejected(),
		"duration":     result.Duration.String(),
	}).Info("ledger seeded")

	return result, nil
}

// apply creates one customer plan. A declined step skips whatever depends on it.
func (o *Orchestrator) apply(ctx context.Context, r *run, p CustomerPlan) error {
	customer, err := o.services.Customers.Create(ctx, p.Details)
	if err != nil {
		if r.reject(err) {
			return nil
		}
		return err
	}
	r.customers.Add(1)

	for _, ap := range p.Accounts {
		account, err := o.services.Accounts.Create(ctx, customer.ID, ap.Type, ap.IBAN)
		if err != nil {
			if r.reject(err) {
				continue
			}
			return err
		}
		r.accounts.Add(1)

		debit, err := o.services.Cards.CreateDebit(ctx, account.ID, ap.DebitCard.Number)
		if err := o.issued(r, err); err != nil {
			return err
		}
		if debit != nil {
			if err := o.move(ctx, r, debit.ID, ap.DebitCard.Movements); err != nil {
				return err
			}
		}

		if ap.CreditCard == nil {
			continue
		}
		credit, err := o.services.Cards.CreateCredit(ctx, account.ID, ap.CreditCard.Number, ap.CreditCard.Balance)
		if err := o.issued(r, err); err != nil {
			return err
		}
		if credit != nil {
			if err := o.move(ctx, r, credit.ID, ap.CreditCard.Movements); err != nil {
				return err
			}
		}
	}

	return nil
}

// issued counts a card issuance outcome and returns only fatal errors
func (o *Orchestrator) issued(r *run, err error) error {
	if err == nil {
		r.cards.Add(1)
		return nil
	}
	if r.reject(err) {
		return nil
	}
	return err
}

// move replays planned movements on a card, stamping each with its planned time
func (o *Orchestrator) move(ctx context.Context, r *run, cardID uuid.UUID, movements []MovementPlan) error {
	for _, mv := range movements {
		at := mv.At
		txs := o.services.Transactions.WithClock(func() time.Time { return at })
		_, err := txs.Create(ctx, service.TransactionRequest{
			CardID:     cardID,
			Amount:     mv.Amount,
			Direction:  mv.Direction,
			Type:       mv.Type,
			Definition: mv.Definition,
		})
		if err != nil {
			if r.reject(err) {
				continue
			}
			return err
		}
		r.transactions.Add(1)
	}
	return nil
}
