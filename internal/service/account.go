package service

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"github.com/willfong/bank-ledger/internal/ledger"
	"github.com/willfong/bank-ledger/internal/models"
	"github.com/willfong/bank-ledger/internal/repository"
)

type AccountService struct {
	store  repository.Store
	logger *logrus.Logger
}

func NewAccountService(store repository.Store, logger *logrus.Logger) *AccountService {
	return &AccountService{store: store, logger: logger}
}

// Create opens an account for an existing customer
func (s *AccountService) Create(ctx context.Context, customerID uuid.UUID, accountType models.AccountType, iban string) (*models.Account, error) {
	log := s.logger.WithFields(logrus.Fields{
		"op":           "account.create",
		"customer_id":  customerID,
		"account_type": accountType,
	})

	var account *models.Account
	err := s.store.InTx(ctx, func(ctx context.Context, repos repository.Repositories) error {
		if err := ledger.NewCustomerManager(repos).CheckCustomerExists(ctx, customerID); err != nil {
			return err
		}
		a, err := ledger.NewAccountManager(repos).Create(ctx, customerID, accountType, iban)
		if err != nil {
			return err
		}
		if err := repos.Accounts().Insert(ctx, a); err != nil {
			return fmt.Errorf("failed to insert account: %w", err)
		}
		account = a
		return nil
	})
	if err != nil {
		logFailure(log, err, "account not created")
		return nil, err
	}

	log.WithField("account_id", account.ID).Info("account created")
	return account, nil
}

// Update changes type and IBAN. customerID must name an existing customer
// but does not move the account.
func (s *AccountService) Update(ctx context.Context, id, customerID uuid.UUID, accountType models.AccountType, iban string) (*models.Account, error) {
	log := s.logger.WithFields(logrus.Fields{
		"op":          "account.update",
		"account_id":  id,
		"customer_id": customerID,
	})

	var account *models.Account
	err := s.store.InTx(ctx, func(ctx context.Context, repos repository.Repositories) error {
		if err := ledger.NewCustomerManager(repos).CheckCustomerExists(ctx, customerID); err != nil {
			return err
		}
		a, err := ledger.NewAccountManager(repos).Update(ctx, id, accountType, iban)
		if err != nil {
			return err
		}
		if err := repos.Accounts().Update(ctx, a); err != nil {
			return fmt.Errorf("failed to update account: %w", err)
		}
		account = a
		return nil
	})
	if err != nil {
		logFailure(log, err, "account not updated")
		return nil, err
	}

	log.Info("account updated")
	return account, nil
}

// Delete removes the account. Its cards are left in place.
func (s *AccountService) Delete(ctx context.Context, id uuid.UUID) (*models.Account, error) {
	log := s.logger.WithFields(logrus.Fields{
		"op":         "account.delete",
		"account_id": id,
	})

	var account *models.Account
	err := s.store.InTx(ctx, func(ctx context.Context, repos repository.Repositories) error {
		a, err := ledger.NewAccountManager(repos).Delete(ctx, id)
		if err != nil {
			return err
		}
		if err := repos.Accounts().Delete(ctx, id); err != nil {
			return fmt.Errorf("failed to delete account: %w", err)
		}
		account = a
		return nil
	})
	if err != nil {
		logFailure(log, err, "account not deleted")
		return nil, err
	}

	log.Info("account deleted")
	return account, nil
}

func (s *AccountService) Get(ctx context.Context, id uuid.UUID) (*models.Account, error) {
	return ledger.NewAccountManager(s.store).Get(ctx, id)
}

func (s *AccountService) List(ctx context.Context) ([]*models.Account, error) {
	return ledger.NewAccountManager(s.store).List(ctx)
}

// ListByCustomer returns the accounts of an existing customer
func (s *AccountService) ListByCustomer(ctx context.Context, customerID uuid.UUID) ([]*models.Account, error) {
	if err := ledger.NewCustomerManager(s.store).CheckCustomerExists(ctx, customerID); err != nil {
		return nil, err
	}
	return ledger.NewAccountManager(s.store).ListByCustomer(ctx, customerID)
}
