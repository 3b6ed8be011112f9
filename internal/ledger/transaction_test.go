package ledger

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/willfong/bank-ledger/internal/models"
	"github.com/willfong/bank-ledger/internal/utils"
)

func TestApplyMovement(t *testing.T) {
	tests := []struct {
		name      string
		cardType  models.CardType
		balance   int64
		debt      int64
		amount    int64
		direction models.Direction
		wantBal   int64
		wantDebt  int64
		wantErr   error
	}{
		{"debit out", models.CardTypeDebit, 100, 0, 40, models.DirectionOut, 60, 0, nil},
		{"debit in", models.CardTypeDebit, 100, 0, 40, models.DirectionIn, 140, 0, nil},
		{"credit out", models.CardTypeCredit, 100, 0, 40, models.DirectionOut, 60, 40, nil},
		{"credit in pays debt", models.CardTypeCredit, 60, 40, 40, models.DirectionIn, 100, 0, nil},
		{"credit in partial", models.CardTypeCredit, 60, 40, 10, models.DirectionIn, 70, 30, nil},
		{"credit in without debt", models.CardTypeCredit, 100, 0, 10, models.DirectionIn, 100, 0, ErrInvalidTransaction},
		{"credit in above debt", models.CardTypeCredit, 100, 5, 10, models.DirectionIn, 100, 5, ErrInvalidDepositTransaction},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			card := &models.Card{Type: tt.cardType, Balance: utils.Cents(tt.balance), Debt: utils.Cents(tt.debt)}
			err := ApplyMovement(card, utils.Cents(tt.amount), tt.direction)
			if err != tt.wantErr {
				t.Fatalf("Expected error %v, got %v", tt.wantErr, err)
			}
			if card.Balance.ToCents() != tt.wantBal {
				t.Errorf("Expected balance %d, got %d", tt.wantBal, card.Balance.ToCents())
			}
			if card.Debt.ToCents() != tt.wantDebt {
				t.Errorf("Expected debt %d, got %d", tt.wantDebt, card.Debt.ToCents())
			}
		})
	}
}

func TestCreateTransaction(t *testing.T) {
	fixed := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)
	clock := func() time.Time { return fixed }

	t.Run("out on a credit card", func(t *testing.T) {
		f := newFixture(t, utils.Units(10000))
		card := f.insertCard(t, models.CardTypeCredit, testCard, utils.Units(5000), 0)

		tx, err := NewTransactionManager(f.store).WithClock(clock).
			Create(f.ctx, card.ID, utils.Units(500), models.DirectionOut, models.TxTypeEFT, "groceries")
		if err != nil {
			t.Fatalf("Create failed: %v", err)
		}

		if tx.CustomerID != f.customer.ID {
			t.Errorf("Expected customer %s, got %s", f.customer.ID, tx.CustomerID)
		}
		if tx.CardID != card.ID || tx.Amount != utils.Units(500) || tx.Definition != "groceries" {
			t.Errorf("Unexpected record %+v", tx)
		}
		if !tx.TransactionDate.Equal(fixed) {
			t.Errorf("Expected date %v, got %v", fixed, tx.TransactionDate)
		}

		stored := f.reloadCard(t, card.ID)
		if stored.Balance != utils.Units(4500) || stored.Debt != utils.Units(500) {
			t.Errorf("Expected 4500.00 / 500.00, got %s / %s", stored.Balance, stored.Debt)
		}
		if got := f.reloadCustomer(t).RemainingRiskLimit; got != utils.Units(10000) {
			t.Errorf("Expected transactions to leave the risk limit alone, got %s", got)
		}
	})

	t.Run("not enough balance regardless of card type", func(t *testing.T) {
		f := newFixture(t, utils.Units(10000))
		credit := f.insertCard(t, models.CardTypeCredit, testCard, utils.Units(100), 0)
		debit := f.insertCard(t, models.CardTypeDebit, otherCard, utils.Units(100), 0)
		m := NewTransactionManager(f.store)

		for _, card := range []*models.Card{credit, debit} {
			_, err := m.Create(f.ctx, card.ID, utils.MustParseMoney("100.01"), models.DirectionOut, models.TxTypeFAST, "")
			expectErr(t, err, ErrNotEnoughBalance)
		}
	})

	t.Run("deposits are also checked against the balance", func(t *testing.T) {
		f := newFixture(t, utils.Units(10000))
		debit := f.insertCard(t, models.CardTypeDebit, testCard, 0, 0)
		_, err := NewTransactionManager(f.store).Create(f.ctx, debit.ID, utils.Units(50), models.DirectionIn, models.TxTypeEFT, "salary")
		expectErr(t, err, ErrNotEnoughBalance)
	})

	t.Run("deposit on credit card without debt", func(t *testing.T) {
		f := newFixture(t, utils.Units(10000))
		card := f.insertCard(t, models.CardTypeCredit, testCard, utils.Units(5000), 0)
		_, err := NewTransactionManager(f.store).Create(f.ctx, card.ID, utils.Units(10), models.DirectionIn, models.TxTypeEFT, "")
		expectErr(t, err, ErrInvalidTransaction)

		stored := f.reloadCard(t, card.ID)
		if stored.Balance != utils.Units(5000) {
			t.Errorf("Expected balance unchanged, got %s", stored.Balance)
		}
	})

	t.Run("deposit above debt", func(t *testing.T) {
		f := newFixture(t, utils.Units(10000))
		card := f.insertCard(t, models.CardTypeCredit, testCard, utils.Units(5000), utils.Units(100))
		_, err := NewTransactionManager(f.store).Create(f.ctx, card.ID, utils.Units(500), models.DirectionIn, models.TxTypeEFT, "")
		expectErr(t, err, ErrInvalidDepositTransaction)

		stored := f.reloadCard(t, card.ID)
		if stored.Balance != utils.Units(5000) || stored.Debt != utils.Units(100) {
			t.Errorf("Expected card unchanged, got %s / %s", stored.Balance, stored.Debt)
		}
	})

	t.Run("unknown card", func(t *testing.T) {
		f := newFixture(t, utils.Units(10000))
		_, err := NewTransactionManager(f.store).Create(f.ctx, uuid.New(), utils.Units(1), models.DirectionOut, models.TxTypeEFT, "")
		expectErr(t, err, ErrCardNotFound)
	})
}

func TestListTransactions(t *testing.T) {
	f := newFixture(t, utils.Units(10000))
	card := f.insertCard(t, models.CardTypeDebit, testCard, utils.Units(100), 0)
	m := NewTransactionManager(f.store)

	tx, err := m.Create(f.ctx, card.ID, utils.Units(10), models.DirectionOut, models.TxTypeEFT, "coffee")
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}
	if err := f.store.Transactions().Insert(f.ctx, tx); err != nil {
		t.Fatalf("Insert failed: %v", err)
	}

	// A record that belongs to someone else but whose card id happens to
	// equal our customer's id
	stray := &models.TransactionHistory{CustomerID: uuid.New(), CardID: f.customer.ID, Amount: utils.Units(1), Direction: models.DirectionOut}
	if err := f.store.Transactions().Insert(f.ctx, stray); err != nil {
		t.Fatalf("Insert failed: %v", err)
	}

	t.Run("by customer uses the stored customer id", func(t *testing.T) {
		list, err := m.ListByCustomer(f.ctx, f.customer.ID)
		if err != nil {
			t.Fatalf("ListByCustomer failed: %v", err)
		}
		if len(list) != 1 || list[0].ID != tx.ID {
			t.Errorf("Expected only %s, got %d records", tx.ID, len(list))
		}
	})

	t.Run("by customer requires the customer", func(t *testing.T) {
		_, err := m.ListByCustomer(f.ctx, uuid.New())
		expectErr(t, err, ErrCustomerNotFound)
	})

	t.Run("by card", func(t *testing.T) {
		list, err := m.ListByCard(f.ctx, card.ID)
		if err != nil {
			t.Fatalf("ListByCard failed: %v", err)
		}
		if len(list) != 1 {
			t.Errorf("Expected 1 record, got %d", len(list))
		}

		_, err = m.ListByCard(f.ctx, uuid.New())
		expectErr(t, err, ErrCardNotFound)
	})

	t.Run("get", func(t *testing.T) {
		got, err := m.Get(f.ctx, tx.ID)
		if err != nil {
			t.Fatalf("Get failed: %v", err)
		}
		if got.Definition != "coffee" {
			t.Errorf("Expected coffee, got %s", got.Definition)
		}

		_, err = m.Get(f.ctx, uuid.New())
		expectErr(t, err, ErrTransactionNotFound)
	})

	t.Run("all", func(t *testing.T) {
		list, _ := m.List(f.ctx)
		if len(list) != 2 {
			t.Errorf("Expected 2 records, got %d", len(list))
		}
	})
}
