package ledger

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/willfong/bank-ledger/internal/models"
	"github.com/willfong/bank-ledger/internal/repository"
	"github.com/willfong/bank-ledger/internal/utils"
)

// CustomerDetails are the caller-supplied customer fields
type CustomerDetails struct {
	Name           string
	LastName       string
	IdentityNumber string
	BirthPlace     string
	BirthDate      time.Time
	RiskLimit      utils.Money
}

// CustomerManager owns customer identity and risk-limit rules
type CustomerManager struct {
	customers repository.CustomerRepository
}

// NewCustomerManager creates a CustomerManager over repos
func NewCustomerManager(repos repository.Repositories) *CustomerManager {
	return &CustomerManager{customers: repos.Customers()}
}

// Create validates a new customer and returns it with the full risk limit
// available. The caller inserts it.
func (m *CustomerManager) Create(ctx context.Context, d CustomerDetails) (*models.Customer, error) {
	if err := m.checkIdentityNumber(ctx, d.IdentityNumber); err != nil {
		return nil, err
	}
	if d.RiskLimit.IsNegative() || d.RiskLimit > utils.MaxMoney {
		return nil, ErrInvalidRiskLimit
	}

	return &models.Customer{
		ID:                 uuid.New(),
		Name:               d.Name,
		LastName:           d.LastName,
		IdentityNumber:     d.IdentityNumber,
		BirthPlace:         d.BirthPlace,
		BirthDate:          d.BirthDate,
		RiskLimit:          d.RiskLimit,
		RemainingRiskLimit: d.RiskLimit,
	}, nil
}

// Update overwrites a customer's fields. The identity number is only
// re-validated when it changes. The new risk limit may not be below the
// current remaining limit.
func (m *CustomerManager) Update(ctx context.Context, id uuid.UUID, d CustomerDetails) (*models.Customer, error) {
	customer, err := m.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	if customer.IdentityNumber != d.IdentityNumber {
		if err := m.checkIdentityNumber(ctx, d.IdentityNumber); err != nil {
			return nil, err
		}
	}

	if customer.RemainingRiskLimit > d.RiskLimit || d.RiskLimit > utils.MaxMoney {
		return nil, ErrInvalidRiskLimit
	}

	customer.Name = d.Name
	customer.LastName = d.LastName
	customer.IdentityNumber = d.IdentityNumber
	customer.BirthPlace = d.BirthPlace
	customer.BirthDate = d.BirthDate
	customer.RemainingRiskLimit = customer.RemainingRiskLimit.Add(
		d.RiskLimit.Sub(customer.RiskLimit.Add(customer.RemainingRiskLimit)))
	customer.RiskLimit = d.RiskLimit

	return customer, nil
}

// Delete returns the customer for removal once no credit card holds any of
// its risk limit
func (m *CustomerManager) Delete(ctx context.Context, id uuid.UUID) (*models.Customer, error) {
	customer, err := m.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	if customer.HasDebt() {
		return nil, ErrCustomerHasDebt
	}

	return customer, nil
}

// Get returns the customer or ErrCustomerNotFound
func (m *CustomerManager) Get(ctx context.Context, id uuid.UUID) (*models.Customer, error) {
	return lookup(ctx, m.customers.Find, id, ErrCustomerNotFound, "customer")
}

// List returns every customer
func (m *CustomerManager) List(ctx context.Context) ([]*models.Customer, error) {
	customers, err := m.customers.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list customers: %w", err)
	}
	return customers, nil
}

// CheckCustomerExists fails with ErrCustomerNotFound for unknown ids
func (m *CustomerManager) CheckCustomerExists(ctx context.Context, id uuid.UUID) error {
	_, err := m.Get(ctx, id)
	return err
}

// checkIdentityNumber enforces length, then uniqueness
func (m *CustomerManager) checkIdentityNumber(ctx context.Context, identityNumber string) error {
	if !validIdentityNumber(identityNumber) {
		return ErrInvalidIdentityNumber
	}

	inUse, err := taken(m.customers.FindByIdentityNumber(ctx, identityNumber))
	if err != nil {
		return fmt.Errorf("failed to check identity number: %w", err)
	}
	if inUse {
		return ErrIdentityNumberInUse
	}
	return nil
}
