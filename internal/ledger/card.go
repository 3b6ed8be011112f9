package ledger

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/willfong/bank-ledger/internal/models"
	"github.com/willfong/bank-ledger/internal/repository"
	"github.com/willfong/bank-ledger/internal/utils"
)

// CardManager owns card issuance rules. Credit cards hold their balance
// against the owning customer's remaining risk limit from issuance until
// deletion.
type CardManager struct {
	cards     repository.CardRepository
	accounts  repository.AccountRepository
	customers repository.CustomerRepository
}

// NewCardManager creates a CardManager over repos
func NewCardManager(repos repository.Repositories) *CardManager {
	return &CardManager{
		cards:     repos.Cards(),
		accounts:  repos.Accounts(),
		customers: repos.Customers(),
	}
}

// CreateCredit issues a credit card with the given balance. The balance is
// taken off the customer's remaining risk limit and the customer is
// persisted; the caller inserts the returned card.
func (m *CardManager) CreateCredit(ctx context.Context, accountID uuid.UUID, number string, balance utils.Money) (*models.Card, error) {
	number = StripWhitespace(number)

	if !validCardNumber(number) {
		return nil, ErrCardNumberNotValid
	}
	if err := m.CheckCardNumberExists(ctx, number); err != nil {
		return nil, err
	}

	customerID, err := m.customerOf(ctx, accountID)
	if err != nil {
		return nil, err
	}

	customer, err := lookup(ctx, m.customers.Find, customerID, ErrCustomerNotFound, "customer")
	if err != nil {
		return nil, err
	}
	if balance > customer.RemainingRiskLimit {
		return nil, ErrRiskLimitExceeded
	}

	if _, err := AdjustRemainingRiskLimit(ctx, m.customers, customerID, balance.Neg()); err != nil {
		return nil, err
	}

	return &models.Card{
		ID:        uuid.New(),
		AccountID: accountID,
		Type:      models.CardTypeCredit,
		Number:    number,
		Balance:   balance,
		Debt:      0,
	}, nil
}

// CreateDebit issues a debit card with zero balance. An account holds at
// most one debit card. The account is looked up last.
func (m *CardManager) CreateDebit(ctx context.Context, accountID uuid.UUID, number string) (*models.Card, error) {
	number = StripWhitespace(number)

	if !validCardNumber(number) {
		return nil, ErrCardNumberNotValid
	}
	if err := m.CheckCardNumberExists(ctx, number); err != nil {
		return nil, err
	}

	hasDebit, err := taken(m.cards.FindDebitByAccount(ctx, accountID))
	if err != nil {
		return nil, fmt.Errorf("failed to check debit card: %w", err)
	}
	if hasDebit {
		return nil, ErrAlreadyHaveDebitCard
	}

	if err := m.CheckAccountExists(ctx, accountID); err != nil {
		return nil, err
	}

	return &models.Card{
		ID:        uuid.New(),
		AccountID: accountID,
		Type:      models.CardTypeDebit,
		Number:    number,
		Balance:   0,
		Debt:      0,
	}, nil
}

// Update changes the card number. A changed number is checked for
// uniqueness first, then validity.
func (m *CardManager) Update(ctx context.Context, id uuid.UUID, number string) (*models.Card, error) {
	number = StripWhitespace(number)

	card, err := m.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	if card.Number != number {
		if err := m.CheckCardNumberExists(ctx, number); err != nil {
			return nil, err
		}
		if !validCardNumber(number) {
			return nil, ErrCardNumberNotValid
		}
	}

	card.Number = number

	return card, nil
}

// Delete releases a credit card's hold on the customer's risk limit and
// persists the card. Removing the card from the store is left to the caller.
func (m *CardManager) Delete(ctx context.Context, id uuid.UUID) (*models.Card, error) {
	card, err := m.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	if card.HasDebt() {
		return nil, ErrPayDebtFirst
	}

	if card.IsCredit() {
		customerID, err := m.customerOf(ctx, card.AccountID)
		if err != nil {
			return nil, err
		}
		if _, err := AdjustRemainingRiskLimit(ctx, m.customers, customerID, card.Balance); err != nil {
			return nil, err
		}
	}

	if err := m.cards.Update(ctx, card); err != nil {
		return nil, fmt.Errorf("failed to update card: %w", err)
	}

	return card, nil
}

// Get returns the card or ErrCardNotFound
func (m *CardManager) Get(ctx context.Context, id uuid.UUID) (*models.Card, error) {
	return lookup(ctx, m.cards.Find, id, ErrCardNotFound, "card")
}

// List returns every card
func (m *CardManager) List(ctx context.Context) ([]*models.Card, error) {
	cards, err := m.cards.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list cards: %w", err)
	}
	return cards, nil
}

// ListByAccount returns the cards on an existing account
func (m *CardManager) ListByAccount(ctx context.Context, accountID uuid.UUID) ([]*models.Card, error) {
	if err := m.CheckAccountExists(ctx, accountID); err != nil {
		return nil, err
	}

	cards, err := m.cards.ListByAccount(ctx, accountID)
	if err != nil {
		return nil, fmt.Errorf("failed to list cards of account %s: %w", accountID, err)
	}
	return cards, nil
}

// CheckCardNumberExists fails with ErrCardNumberInUse when number is taken
func (m *CardManager) CheckCardNumberExists(ctx context.Context, number string) error {
	inUse, err := taken(m.cards.FindByNumber(ctx, number))
	if err != nil {
		return fmt.Errorf("failed to check card number: %w", err)
	}
	if inUse {
		return ErrCardNumberInUse
	}
	return nil
}

// CheckAccountExists fails with ErrAccountNotFound for unknown ids
func (m *CardManager) CheckAccountExists(ctx context.Context, accountID uuid.UUID) error {
	_, err := lookup(ctx, m.accounts.Find, accountID, ErrAccountNotFound, "account")
	return err
}

func (m *CardManager) customerOf(ctx context.Context, accountID uuid.UUID) (uuid.UUID, error) {
	account, err := lookup(ctx, m.accounts.Find, accountID, ErrAccountNotFound, "account")
	if err != nil {
		return uuid.Nil, err
	}
	return account.CustomerID, nil
}
