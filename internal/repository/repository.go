// Package repository defines the storage contract the ledger managers work
// against. internal/database implements it on MySQL; MemoryStore implements
// it in process for tests, the memory driver and dry runs.
package repository

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/willfong/bank-ledger/internal/models"
)

// ErrNotFound is returned by single-row lookups that match nothing
var ErrNotFound = errors.New("record not found")

// CustomerRepository stores customers
type CustomerRepository interface {
	Find(ctx context.Context, id uuid.UUID) (*models.Customer, error)
	FindByIdentityNumber(ctx context.Context, identityNumber string) (*models.Customer, error)
	List(ctx context.Context) ([]*models.Customer, error)
	Insert(ctx context.Context, c *models.Customer) error
	Update(ctx context.Context, c *models.Customer) error
	Delete(ctx context.Context, id uuid.UUID) error
}

// AccountRepository stores accounts
type AccountRepository interface {
	Find(ctx context.Context, id uuid.UUID) (*models.Account, error)
	FindByIBAN(ctx context.Context, iban string) (*models.Account, error)
	List(ctx context.Context) ([]*models.Account, error)
	ListByCustomer(ctx context.Context, customerID uuid.UUID) ([]*models.Account, error)
	Insert(ctx context.Context, a *models.Account) error
	Update(ctx context.Context, a *models.Account) error
	Delete(ctx context.Context, id uuid.UUID) error
}

// CardRepository stores cards
type CardRepository interface {
	Find(ctx context.Context, id uuid.UUID) (*models.Card, error)
	FindByNumber(ctx context.Context, number string) (*models.Card, error)
	FindDebitByAccount(ctx context.Context, accountID uuid.UUID) (*models.Card, error)
	List(ctx context.Context) ([]*models.Card, error)
	ListByAccount(ctx context.Context, accountID uuid.UUID) ([]*models.Card, error)
	Insert(ctx context.Context, c *models.Card) error
	Update(ctx context.Context, c *models.Card) error
	Delete(ctx context.Context, id uuid.UUID) error
}

// TransactionRepository stores transaction history. Records are immutable,
// so there is no Update or Delete.
type TransactionRepository interface {
	Find(ctx context.Context, id uuid.UUID) (*models.TransactionHistory, error)
	List(ctx context.Context) ([]*models.TransactionHistory, error)
	ListByCard(ctx context.Context, cardID uuid.UUID) ([]*models.TransactionHistory, error)
	ListByCustomer(ctx context.Context, customerID uuid.UUID) ([]*models.TransactionHistory, error)
	ListByCardAndDirection(ctx context.Context, cardID uuid.UUID, direction models.Direction) ([]*models.TransactionHistory, error)
	Insert(ctx context.Context, t *models.TransactionHistory) error
}

// Repositories groups the per-entity repositories of one store or transaction
type Repositories interface {
	Customers() CustomerRepository
	Accounts() AccountRepository
	Cards() CardRepository
	Transactions() TransactionRepository
}

// TxFunc runs inside a transaction. repos is bound to that transaction.
type TxFunc func(ctx context.Context, repos Repositories) error

// Store is a Repositories that can also run a function atomically.
// InTx commits when fn returns nil and rolls back otherwise.
type Store interface {
	Repositories
	InTx(ctx context.Context, fn TxFunc) error
	Close() error
}

// IsNotFound reports whether err is (or wraps) ErrNotFound
func IsNotFound(err error) bool {
	return errors.Is(err, ErrNotFound)
}
