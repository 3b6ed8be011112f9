package ledger

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/willfong/bank-ledger/internal/models"
	"github.com/willfong/bank-ledger/internal/repository"
	"github.com/willfong/bank-ledger/internal/utils"
)

const (
	testIBAN       = "TR23 1234 1234 1234 1234 1234 23"
	testIBANStored = "TR231234123412341234123423"
	otherIBAN      = "TR99 8888 7777 6666 5555 4444 33"
	testCard       = "1234 5678 9012 3456"
	otherCard      = "6543 2109 8765 4321"
	thirdCard      = "1111 2222 3333 4444"
)

type fixture struct {
	ctx      context.Context
	store    *repository.MemoryStore
	customer *models.Customer
	account  *models.Account
}

// newFixture stores one customer with the given risk limit and one account
func newFixture(t *testing.T, riskLimit utils.Money) *fixture {
	t.Helper()
	ctx := context.Background()
	store := repository.NewMemoryStore()

	customer := &models.Customer{
		ID:                 uuid.New(),
		Name:               "Ada",
		LastName:           "Lovelace",
		IdentityNumber:     "12345678901",
		BirthPlace:         "London",
		BirthDate:          time.Date(1815, 12, 10, 0, 0, 0, 0, time.UTC),
		RiskLimit:          riskLimit,
		RemainingRiskLimit: riskLimit,
	}
	if err := store.Customers().Insert(ctx, customer); err != nil {
		t.Fatalf("Failed to insert customer: %v", err)
	}

	account := &models.Account{
		ID:         uuid.New(),
		CustomerID: customer.ID,
		Type:       models.AccountTypeDemand,
		IBAN:       testIBANStored,
	}
	if err := store.Accounts().Insert(ctx, account); err != nil {
		t.Fatalf("Failed to insert account: %v", err)
	}

	return &fixture{ctx: ctx, store: store, customer: customer, account: account}
}

// reloadCustomer returns the stored state of the fixture customer
func (f *fixture) reloadCustomer(t *testing.T) *models.Customer {
	t.Helper()
	c, err := f.store.Customers().Find(f.ctx, f.customer.ID)
	if err != nil {
		t.Fatalf("Failed to reload customer: %v", err)
	}
	return c
}

// insertCard stores a card directly, bypassing issuance rules
func (f *fixture) insertCard(t *testing.T, cardType models.CardType, number string, balance, debt utils.Money) *models.Card {
	t.Helper()
	card := &models.Card{
		ID:        uuid.New(),
		AccountID: f.account.ID,
		Type:      cardType,
		Number:    StripWhitespace(number),
		Balance:   balance,
		Debt:      debt,
	}
	if err := f.store.Cards().Insert(f.ctx, card); err != nil {
		t.Fatalf("Failed to insert card: %v", err)
	}
	return card
}

func (f *fixture) reloadCard(t *testing.T, id uuid.UUID) *models.Card {
	t.Helper()
	c, err := f.store.Cards().Find(f.ctx, id)
	if err != nil {
		t.Fatalf("Failed to reload card: %v", err)
	}
	return c
}

func expectErr(t *testing.T, got, want error) {
	t.Helper()
	if !errors.Is(got, want) {
		t.Errorf("Expected error %q, got %v", want, got)
	}
}
