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

type CustomerService struct {
	store  repository.Store
	logger *logrus.Logger
}

func NewCustomerService(store repository.Store, logger *logrus.Logger) *CustomerService {
	return &CustomerService{store: store, logger: logger}
}

func (s *CustomerService) Create(ctx context.Context, d ledger.CustomerDetails) (*models.Customer, error) {
	log := s.logger.WithFields(logrus.Fields{
		"op":         "customer.create",
		"risk_limit": d.RiskLimit.String(),
	})

	var customer *models.Customer
	err := s.store.InTx(ctx, func(ctx context.Context, repos repository.Repositories) error {
		c, err := ledger.NewCustomerManager(repos).Create(ctx, d)
		if err != nil {
			return err
		}
		if err := repos.Customers().Insert(ctx, c); err != nil {
			return fmt.Errorf("failed to insert customer: %w", err)
		}
		customer = c
		return nil
	})
	if err != nil {
		logFailure(log, err, "customer not created")
		return nil, err
	}

	log.WithField("customer_id", customer.ID).Info("customer created")
	return customer, nil
}

func (s *CustomerService) Update(ctx context.Context, id uuid.UUID, d ledger.CustomerDetails) (*models.Customer, error) {
	log := s.logger.WithFields(logrus.Fields{
		"op":          "customer.update",
		"customer_id": id,
		"risk_limit":  d.RiskLimit.String(),
	})

	var customer *models.Customer
	err := s.store.InTx(ctx, func(ctx context.Context, repos repository.Repositories) error {
		c, err := ledger.NewCustomerManager(repos).Update(ctx, id, d)
		if err != nil {
			return err
		}
		if err := repos.Customers().Update(ctx, c); err != nil {
			return fmt.Errorf("failed to update customer: %w", err)
		}
		customer = c
		return nil
	})
	if err != nil {
		logFailure(log, err, "customer not updated")
		return nil, err
	}

	log.WithField("remaining_risk_limit", customer.RemainingRiskLimit.String()).Info("customer updated")
	return customer, nil
}

func (s *CustomerService) Delete(ctx context.Context, id uuid.UUID) (*models.Customer, error) {
	log := s.logger.WithFields(logrus.Fields{
		"op":          "customer.delete",
		"customer_id": id,
	})

	var customer *models.Customer
	err := s.store.InTx(ctx, func(ctx context.Context, repos repository.Repositories) error {
		c, err := ledger.NewCustomerManager(repos).Delete(ctx, id)
		if err != nil {
			return err
		}
		if err := repos.Customers().Delete(ctx, id); err != nil {
			return fmt.Errorf("failed to delete customer: %w", err)
		}
		customer = c
		return nil
	})
	if err != nil {
		logFailure(log, err, "customer not deleted")
		return nil, err
	}

	log.Info("customer deleted")
	return customer, nil
}

func (s *CustomerService) Get(ctx context.Context, id uuid.UUID) (*models.Customer, error) {
	return ledger.NewCustomerManager(s.store).Get(ctx, id)
}

func (s *CustomerService) List(ctx context.Context) ([]*models.Customer, error) {
	return ledger.NewCustomerManager(s.store).List(ctx)
}
