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

// TransactionManager applies card movements to balance and debt and
// produces the history record for them
type TransactionManager struct {
	transactions repository.TransactionRepository
	cards        repository.CardRepository
	accounts     repository.AccountRepository
	customers    repository.CustomerRepository

	now func() time.Time
}

// NewTransactionManager creates a TransactionManager over repos
func NewTransactionManager(repos repository.Repositories) *TransactionManager {
	return &TransactionManager{
		transactions: repos.Transactions(),
		cards:        repos.Cards(),
		accounts:     repos.Accounts(),
		customers:    repos.Customers(),
		now:          time.Now,
	}
}

// WithClock replaces the clock used to stamp transaction dates
func (m *TransactionManager) WithClock(now func() time.Time) *TransactionManager {
	m.now = now
	return m
}

// Create applies amount to the card and returns the history record for the
// caller to insert. The card is persisted here.
//
// Every movement, deposits included, must fit in the card's current
// balance. Deposits on a credit card also need outstanding debt of at least
// the amount.
func (m *TransactionManager) Create(ctx context.Context, cardID uuid.UUID, amount utils.Money, direction models.Direction, txType models.TransactionType, definition string) (*models.TransactionHistory, error) {
	card, err := lookup(ctx, m.cards.Find, cardID, ErrCardNotFound, "card")
	if err != nil {
		return nil, err
	}

	account, err := lookup(ctx, m.accounts.Find, card.AccountID, ErrAccountNotFound, "account")
	if err != nil {
		return nil, err
	}

	if amount > card.Balance {
		return nil, ErrNotEnoughBalance
	}

	if err := ApplyMovement(card, amount, direction); err != nil {
		return nil, err
	}

	if err := m.cards.Update(ctx, card); err != nil {
		return nil, fmt.Errorf("failed to update card balance: %w", err)
	}

	return &models.TransactionHistory{
		ID:              uuid.New(),
		CustomerID:      account.CustomerID,
		CardID:          cardID,
		Amount:          amount,
		Direction:       direction,
		Type:            txType,
		Definition:      definition,
		TransactionDate: m.now(),
	}, nil
}

// ApplyMovement moves amount on the card's (balance, debt) pair.
//
//	In:  balance += amount; credit: debt -= amount, needs debt > 0 and debt >= amount
//	Out: balance -= amount; credit: debt += amount
//
// The card is left untouched when a guard fails.
func ApplyMovement(card *models.Card, amount utils.Money, direction models.Direction) error {
	balance, debt := card.Balance, card.Debt

	switch direction {
	case models.DirectionIn:
		balance = balance.Add(amount)
		if card.IsCredit() {
			if !debt.IsPositive() {
				return ErrInvalidTransaction
			}
			if debt < amount {
				return ErrInvalidDepositTransaction
			}
			debt = debt.Sub(amount)
		}
	case models.DirectionOut:
		balance = balance.Sub(amount)
		if card.IsCredit() {
			debt = debt.Add(amount)
		}
	default:
		return fmt.Errorf("unknown direction %q", direction)
	}

	card.Balance, card.Debt = balance, debt
	return nil
}

// Get returns the record or ErrTransactionNotFound
func (m *TransactionManager) Get(ctx context.Context, id uuid.UUID) (*models.TransactionHistory, error) {
	return lookup(ctx, m.transactions.Find, id, ErrTransactionNotFound, "transaction")
}

// List returns every record
func (m *TransactionManager) List(ctx context.Context) ([]*models.TransactionHistory, error) {
	list, err := m.transactions.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list transactions: %w", err)
	}
	return list, nil
}

// ListByCard returns the records of an existing card
func (m *TransactionManager) ListByCard(ctx context.Context, cardID uuid.UUID) ([]*models.TransactionHistory, error) {
	if _, err := lookup(ctx, m.cards.Find, cardID, ErrCardNotFound, "card"); err != nil {
		return nil, err
	}

	list, err := m.transactions.ListByCard(ctx, cardID)
	if err != nil {
		return nil, fmt.Errorf("failed to list transactions of card %s: %w", cardID, err)
	}
	return list, nil
}

// ListByCustomer returns the records whose stored customer id matches
func (m *TransactionManager) ListByCustomer(ctx context.Context, customerID uuid.UUID) ([]*models.TransactionHistory, error) {
	if _, err := lookup(ctx, m.customers.Find, customerID, ErrCustomerNotFound, "customer"); err != nil {
		return nil, err
	}

	list, err := m.transactions.ListByCustomer(ctx, customerID)
	if err != nil {
		return nil, fmt.Errorf("failed to list transactions of customer %s: %w", customerID, err)
	}
	return list, nil
}
