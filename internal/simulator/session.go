// Package simulator runs concurrent card-holder sessions against the ledger
// services: spending, repayments, history views and spending reports on the
// existing credit cards. It measures throughput and latency and counts
// declined operations separately from failures.
package simulator

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"github.com/willfong/bank-ledger/internal/config"
	"github.com/willfong/bank-ledger/internal/generator/patterns"
	"github.com/willfong/bank-ledger/internal/models"
	"github.com/willfong/bank-ledger/internal/service"
	"github.com/willfong/bank-ledger/internal/utils"
)

// Config holds settings for a simulation run
type Config struct {
	// Concurrent sessions
	Sessions int

	// Random seed for reproducibility (0 = random)
	Seed int64

	// Duration of the run (0 = until the context is cancelled)
	Duration time.Duration

	// Pause between two actions of a session
	MinThinkTime time.Duration
	MaxThinkTime time.Duration

	// How often the report callback fires
	MetricsInterval time.Duration

	// Relative weights of the operation mix
	SpendWeight   float64
	RepayWeight   float64
	HistoryWeight float64
	ReportWeight  float64
}

// DefaultConfig returns the compile-time simulation defaults
func DefaultConfig() Config {
	return Config{
		Sessions:        config.SimSessions,
		MinThinkTime:    config.SimMinThinkTime,
		MaxThinkTime:    config.SimMaxThinkTime,
		MetricsInterval: config.SimMetricsInterval,
		SpendWeight:     config.SimSpendWeight,
		RepayWeight:     config.SimRepayWeight,
		HistoryWeight:   config.SimHistoryWeight,
		ReportWeight:    config.SimReportWeight,
	}
}

// SessionManager coordinates concurrent card-holder sessions
type SessionManager struct {
	services *service.Services
	config   Config
	rng      *utils.Random
	amounts  *patterns.CardAmounts
	metrics  *Metrics
	logger   *logrus.Logger
}

// NewSessionManager creates a new session manager
func NewSessionManager(services *service.Services, cfg Config, logger *logrus.Logger) *SessionManager {
	if cfg.Sessions <= 0 {
		cfg.Sessions = 1
	}
	if cfg.MaxThinkTime < cfg.MinThinkTime {
		cfg.MaxThinkTime = cfg.MinThinkTime
	}
	if cfg.MetricsInterval <= 0 {
		cfg.MetricsInterval = config.SimMetricsInterval
	}

	return &SessionManager{
		services: services,
		config:   cfg,
		rng:      utils.NewRandom(cfg.Seed),
		amounts:  patterns.NewCardAmounts(),
		metrics:  NewMetrics(),
		logger:   logger,
	}
}

// Metrics returns the live metrics of the run
func (sm *SessionManager) Metrics() *Metrics {
	return sm.metrics
}

// Seed returns the RNG seed in use
func (sm *SessionManager) Seed() uint64 {
	return sm.rng.Seed()
}

// Run starts the sessions and blocks until the duration elapses or ctx is
// cancelled. report, if set, receives a snapshot every MetricsInterval.
func (sm *SessionManager) Run(ctx context.Context, report func(Snapshot)) (Snapshot, error) {
	cards, err := sm.creditCards(ctx)
	if err != nil {
		return Snapshot{}, err
	}
	if len(cards) == 0 {
		return Snapshot{}, fmt.Errorf("no credit cards to simulate on, seed the ledger first")
	}

	if sm.config.Duration > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, sm.config.Duration)
		defer cancel()
	}

	sm.logger.WithFields(logrus.Fields{
		"sessions": sm.config.Sessions,
		"cards":    len(cards),
		"seed":     sm.rng.Seed(),
	}).Info("simulation started")

	var wg sync.WaitGroup
	for i := 0; i < sm.config.Sessions; i++ {
		wg.Add(1)
		go func(rng *utils.Random) {
			defer wg.Done()
			sm.runSession(ctx, rng, cards)
		}(sm.rng.Fork())
	}

	// The reporter joins the wait so no live line follows the final snapshot
	if report != nil {
		wg.Add(1)
		go func() {
			defer wg.Done()
			sm.reportMetrics(ctx, report)
		}()
	}

	wg.Wait()

	snap := sm.metrics.Snapshot()
	sm.logger.WithFields(logrus.Fields{
		"operations": snap.TotalOperations,
		"declined":   snap.Rejections,
		"errors":     snap.Errors,
		"uptime":     snap.Uptime.Round(time.Millisecond).String(),
	}).Info("simulation stopped")
	return snap, nil
}

// creditCards lists the ids of every credit card
func (sm *SessionManager) creditCards(ctx context.Context) ([]uuid.UUID, error) {
	all, err := sm.services.Cards.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list cards: %w", err)
	}
	var ids []uuid.UUID
	for _, c := range all {
		if c.IsCredit() {
			ids = append(ids, c.ID)
		}
	}
	return ids, nil
}

// runSession loops over actions until ctx is done
func (sm *SessionManager) runSession(ctx context.Context, rng *utils.Random, cards []uuid.UUID) {
	for {
		if !sm.thinkTime(ctx, rng) {
			return
		}

		cardID := cards[rng.IntN(len(cards))]
		op := sm.pickOperation(rng)

		start := time.Now()
		err := sm.execute(ctx, rng, op, cardID)
		if sm.metrics.Record(op, time.Since(start), err) == OutcomeError {
			sm.logger.WithError(err).WithFields(logrus.Fields{
				"op":      op,
				"card_id": cardID,
			}).Error("simulated operation failed")
		}
	}
}

// pickOperation draws an operation from the configured mix
func (sm *SessionManager) pickOperation(rng *utils.Random) OperationType {
	weights := []float64{sm.config.SpendWeight, sm.config.RepayWeight, sm.config.HistoryWeight, sm.config.ReportWeight}
	var total float64
	for _, w := range weights {
		total += w
	}
	if total <= 0 {
		return OpSpend
	}

	r := rng.Float64() * total
	for i, w := range weights {
		if r < w {
			return Operations[i]
		}
		r -= w
	}
	return Operations[len(Operations)-1]
}

// execute performs one operation on a card
func (sm *SessionManager) execute(ctx context.Context, rng *utils.Random, op OperationType, cardID uuid.UUID) error {
	switch op {
	case OpSpend:
		_, err := sm.services.Transactions.Create(ctx, service.TransactionRequest{
			CardID:     cardID,
			Amount:     sm.amounts.Purchase.Amount(rng.Float64()),
			Direction:  models.DirectionOut,
			Type:       txType(rng),
			Definition: "Simulated purchase",
		})
		return err

	case OpRepay:
		card, err := sm.services.Cards.Get(ctx, cardID)
		if err != nil {
			return err
		}
		amount := sm.amounts.Repayment.Amount(rng.Float64())
		if card.HasDebt() && card.Debt < amount {
			amount = card.Debt
		}
		_, err = sm.services.Transactions.Create(ctx, service.TransactionRequest{
			CardID:     cardID,
			Amount:     amount,
			Direction:  models.DirectionIn,
			Type:       txType(rng),
			Definition: "Simulated repayment",
		})
		return err

	case OpHistory:
		_, err := sm.services.Transactions.ListByCard(ctx, cardID)
		return err

	case OpReport:
		_, err := sm.services.Reports.CardReport(ctx, cardID)
		return err
	}
	return fmt.Errorf("unknown operation %q", op)
}

func txType(rng *utils.Random) models.TransactionType {
	if rng.Probability(0.3) {
		return models.TxTypeEFT
	}
	return models.TxTypeFAST
}

// thinkTime waits a random pause and reports whether the session should go on
func (sm *SessionManager) thinkTime(ctx context.Context, rng *utils.Random) bool {
	minMs := sm.config.MinThinkTime.Milliseconds()
	maxMs := sm.config.MaxThinkTime.Milliseconds()
	delay := time.Duration(rng.Int64Range(minMs, maxMs)) * time.Millisecond

	if delay <= 0 {
		return ctx.Err() == nil
	}

	timer := time.NewTimer(delay)
	defer timer.Stop()
	select {
	case <-timer.C:
		return true
	case <-ctx.Done():
		return false
	}
}

// reportMetrics hands a snapshot to report every interval
func (sm *SessionManager) reportMetrics(ctx context.Context, report func(Snapshot)) {
	ticker := time.NewTicker(sm.config.MetricsInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			report(sm.metrics.Snapshot())
		case <-ctx.Done():
			return
		}
	}
}
