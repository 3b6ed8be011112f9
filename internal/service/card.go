package service

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"github.com/willfong/bank-ledger/internal/ledger"
	"github.com/willfong/bank-ledger/internal/models"
	"github.com/willfong/bank-ledger/internal/repository"
	"github.com/willfong/bank-ledger/internal/utils"
)

type CardService struct {
	store  repository.Store
	logger *logrus.Logger
}

func NewCardService(store repository.Store, logger *logrus.Logger) *CardService {
	return &CardService{store: store, logger: logger}
}

// CreateCredit issues a credit card and holds its balance against the
// customer's risk limit in the same transaction
func (s *CardService) CreateCredit(ctx context.Context, accountID uuid.UUID, number string, balance utils.Money) (*models.Card, error) {
	log := s.logger.WithFields(logrus.Fields{
		"op":         "card.create_credit",
		"account_id": accountID,
		"balance":    balance.String(),
	})

	if balance.IsNegative() {
		logFailure(log, ledger.ErrInvalidAmount, "credit card not created")
		return nil, ledger.ErrInvalidAmount
	}

	var card *models.Card
	err := s.store.InTx(ctx, func(ctx context.Context, repos repository.Repositories) error {
		if err := ledger.NewAccountManager(repos).CheckAccountExists(ctx, accountID); err != nil {
			return err
		}
		c, err := ledger.NewCardManager(repos).CreateCredit(ctx, accountID, number, balance)
		if err != nil {
			return err
		}
		if err := repos.Cards().Insert(ctx, c); err != nil {
			return fmt.Errorf("failed to insert card: %w", err)
		}
		card = c
		return nil
	})
	if err != nil {
		logFailure(log, err, "credit card not created")
		return nil, err
	}

	log.WithField("card_id", card.ID).Info("credit card created")
	return card, nil
}

// CreateDebit issues the account's debit card
func (s *CardService) CreateDebit(ctx context.Context, accountID uuid.UUID, number string) (*models.Card, error) {
	log := s.logger.WithFields(logrus.Fields{
		"op":         "card.create_debit",
		"account_id": accountID,
	})

	var card *models.Card
	err := s.store.InTx(ctx, func(ctx context.Context, repos repository.Repositories) error {
		if err := ledger.NewAccountManager(repos).CheckAccountExists(ctx, accountID); err != nil {
			return err
		}
		c, err := ledger.NewCardManager(repos).CreateDebit(ctx, accountID, number)
		if err != nil {
			return err
		}
		if err := repos.Cards().Insert(ctx, c); err != nil {
			return fmt.Errorf("failed to insert card: %w", err)
		}
		card = c
		return nil
	})
	if err != nil {
		logFailure(log, err, "debit card not created")
		return nil, err
	}

	log.WithField("card_id", card.ID).Info("debit card created")
	return card, nil
}

func (s *CardService) Update(ctx context.Context, id uuid.UUID, number string) (*models.Card, error) {
	log := s.logger.WithFields(logrus.Fields{
		"op":      "card.update",
		"card_id": id,
	})

	var card *models.Card
	err := s.store.InTx(ctx, func(ctx context.Context, repos repository.Repositories) error {
		c, err := ledger.NewCardManager(repos).Update(ctx, id, number)
		if err != nil {
			return err
		}
		if err := repos.Cards().Update(ctx, c); err != nil {
			return fmt.Errorf("failed to update card: %w", err)
		}
		card = c
		return nil
	})
	if err != nil {
		logFailure(log, err, "card not updated")
		return nil, err
	}

	log.Info("card updated")
	return card, nil
}

// Delete releases any risk-limit hold and removes the card
func (s *CardService) Delete(ctx context.Context, id uuid.UUID) (*models.Card, error) {
	log := s.logger.WithFields(logrus.Fields{
		"op":      "card.delete",
		"card_id": id,
	})

	var card *models.Card
	err := s.store.InTx(ctx, func(ctx context.Context, repos repository.Repositories) error {
		c, err := ledger.NewCardManager(repos).Delete(ctx, id)
		if err != nil {
			return err
		}
		if err := repos.Cards().Delete(ctx, id); err != nil {
			return fmt.Errorf("failed to delete card: %w", err)
		}
		card = c
		return nil
	})
	if err != nil {
		logFailure(log, err, "card not deleted")
		return nil, err
	}

	log.WithField("card_type", card.Type).Info("card deleted")
	return card, nil
}

func (s *CardService) Get(ctx context.Context, id uuid.UUID) (*models.Card, error) {
	return ledger.NewCardManager(s.store).Get(ctx, id)
}

func (s *CardService) List(ctx context.Context) ([]*models.Card, error) {
	return ledger.NewCardManager(s.store).List(ctx)
}

func (s *CardService) ListByAccount(ctx context.Context, accountID uuid.UUID) ([]*models.Card, error) {
	return ledger.NewCardManager(s.store).ListByAccount(ctx, accountID)
}
