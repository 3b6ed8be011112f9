package service

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"github.com/willfong/bank-ledger/internal/ledger"
	"github.com/willfong/bank-ledger/internal/models"
	"github.com/willfong/bank-ledger/internal/repository"
	"github.com/willfong/bank-ledger/internal/utils"
)

// TransactionRequest describes a card movement
type TransactionRequest struct {
	CardID     uuid.UUID
	Amount     utils.Money
	Direction  models.Direction
	Type       models.TransactionType
	Definition string
}

type TransactionService struct {
	store  repository.Store
	logger *logrus.Logger
	now    func() time.Time
}

func NewTransactionService(store repository.Store, logger *logrus.Logger) *TransactionService {
	return &TransactionService{store: store, logger: logger, now: time.Now}
}

// WithClock returns a copy of the service that stamps records with now
func (s *TransactionService) WithClock(now func() time.Time) *TransactionService {
	c := *s
	c.now = now
	return &c
}

// Create applies the movement to the card and records it
func (s *TransactionService) Create(ctx context.Context, req TransactionRequest) (*models.TransactionHistory, error) {
	log := s.logger.WithFields(logrus.Fields{
		"op":        "transaction.create",
		"card_id":   req.CardID,
		"amount":    req.Amount.String(),
		"direction": req.Direction,
		"type":      req.Type,
	})

	if !req.Amount.IsPositive() {
		logFailure(log, ledger.ErrInvalidAmount, "transaction rejected")
		return nil, ledger.ErrInvalidAmount
	}

	var tx *models.TransactionHistory
	err := s.store.InTx(ctx, func(ctx context.Context, repos repository.Repositories) error {
		t, err := ledger.NewTransactionManager(repos).WithClock(s.now).
			Create(ctx, req.CardID, req.Amount, req.Direction, req.Type, req.Definition)
		if err != nil {
			return err
		}
		if err := repos.Transactions().Insert(ctx, t); err != nil {
			return fmt.Errorf("failed to insert transaction: %w", err)
		}
		tx = t
		return nil
	})
	if err != nil {
		logFailure(log, err, "transaction rejected")
		return nil, err
	}

	log.WithFields(logrus.Fields{
		"transaction_id": tx.ID,
		"customer_id":    tx.CustomerID,
	}).Info("transaction recorded")
	return tx, nil
}

func (s *TransactionService) Get(ctx context.Context, id uuid.UUID) (*models.TransactionHistory, error) {
	return ledger.NewTransactionManager(s.store).Get(ctx, id)
}

func (s *TransactionService) List(ctx context.Context) ([]*models.TransactionHistory, error) {
	return ledger.NewTransactionManager(s.store).List(ctx)
}

func (s *TransactionService) ListByCard(ctx context.Context, cardID uuid.UUID) ([]*models.TransactionHistory, error) {
	return ledger.NewTransactionManager(s.store).ListByCard(ctx, cardID)
}

func (s *TransactionService) ListByCustomer(ctx context.Context, customerID uuid.UUID) ([]*models.TransactionHistory, error) {
	return ledger.NewTransactionManager(s.store).ListByCustomer(ctx, customerID)
}
