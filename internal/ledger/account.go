package ledger

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/willfong/bank-ledger/internal/models"
	"github.com/willfong/bank-ledger/internal/repository"
)

// AccountManager owns IBAN rules and the account-customer link
type AccountManager struct {
	accounts  repository.AccountRepository
	customers repository.CustomerRepository
}

// NewAccountManager creates an AccountManager over repos
func NewAccountManager(repos repository.Repositories) *AccountManager {
	return &AccountManager{
		accounts:  repos.Accounts(),
		customers: repos.Customers(),
	}
}

// Create validates a new account. The IBAN is stored without whitespace.
// The caller has already checked that the customer exists.
func (m *AccountManager) Create(ctx context.Context, customerID uuid.UUID, accountType models.AccountType, iban string) (*models.Account, error) {
	iban = StripWhitespace(iban)

	if !validIBAN(iban) {
		return nil, ErrIbanNotValid
	}
	if err := m.checkIBANFree(ctx, iban); err != nil {
		return nil, err
	}

	return &models.Account{
		ID:         uuid.New(),
		CustomerID: customerID,
		Type:       accountType,
		IBAN:       iban,
	}, nil
}

// Update changes the account type and IBAN. A changed IBAN is checked for
// uniqueness first, then validity.
func (m *AccountManager) Update(ctx context.Context, id uuid.UUID, accountType models.AccountType, iban string) (*models.Account, error) {
	iban = StripWhitespace(iban)

	account, err := m.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	if account.IBAN != iban {
		if err := m.checkIBANFree(ctx, iban); err != nil {
			return nil, err
		}
		if !validIBAN(iban) {
			return nil, ErrIbanNotValid
		}
	}

	account.Type = accountType
	account.IBAN = iban

	return account, nil
}

// Delete returns the account for removal. Cards on the account are not checked.
func (m *AccountManager) Delete(ctx context.Context, id uuid.UUID) (*models.Account, error) {
	return m.Get(ctx, id)
}

// Get returns the account or ErrAccountNotFound
func (m *AccountManager) Get(ctx context.Context, id uuid.UUID) (*models.Account, error) {
	return lookup(ctx, m.accounts.Find, id, ErrAccountNotFound, "account")
}

// List returns every account
func (m *AccountManager) List(ctx context.Context) ([]*models.Account, error) {
	accounts, err := m.accounts.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list accounts: %w", err)
	}
	return accounts, nil
}

// ListByCustomer returns the customer's accounts without checking the customer
func (m *AccountManager) ListByCustomer(ctx context.Context, customerID uuid.UUID) ([]*models.Account, error) {
	accounts, err := m.accounts.ListByCustomer(ctx, customerID)
	if err != nil {
		return nil, fmt.Errorf("failed to list accounts of customer %s: %w", customerID, err)
	}
	return accounts, nil
}

// CheckCustomerExists fails with ErrCustomerNotFound for unknown ids
func (m *AccountManager) CheckCustomerExists(ctx context.Context, customerID uuid.UUID) error {
	_, err := lookup(ctx, m.customers.Find, customerID, ErrCustomerNotFound, "customer")
	return err
}

// CheckAccountExists fails with ErrAccountNotFound for unknown ids
func (m *AccountManager) CheckAccountExists(ctx context.Context, id uuid.UUID) error {
	_, err := m.Get(ctx, id)
	return err
}

func (m *AccountManager) checkIBANFree(ctx context.Context, iban string) error {
	inUse, err := taken(m.accounts.FindByIBAN(ctx, iban))
	if err != nil {
		return fmt.Errorf("failed to check iban: %w", err)
	}
	if inUse {
		return ErrIbanAlreadyInUse
	}
	return nil
}
