package ledger

import (
	"testing"

	"github.com/google/uuid"
	"github.com/willfong/bank-ledger/internal/models"
	"github.com/willfong/bank-ledger/internal/utils"
)

func TestCreateCreditCard(t *testing.T) {
	t.Run("holds the balance against the risk limit", func(t *testing.T) {
		f := newFixture(t, utils.Units(10000))
		card, err := NewCardManager(f.store).CreateCredit(f.ctx, f.account.ID, testCard, utils.Units(5000))
		if err != nil {
			t.Fatalf("CreateCredit failed: %v", err)
		}

		if card.Type != models.CardTypeCredit {
			t.Errorf("Expected credit card, got %s", card.Type)
		}
		if card.Number != "1234567890123456" {
			t.Errorf("Expected stripped number, got %q", card.Number)
		}
		if card.Balance != utils.Units(5000) || card.Debt != 0 {
			t.Errorf("Expected balance 5000.00 and no debt, got %s / %s", card.Balance, card.Debt)
		}
		if got := f.reloadCustomer(t).RemainingRiskLimit; got != utils.Units(5000) {
			t.Errorf("Expected remaining risk limit 5000.00, got %s", got)
		}
	})

	t.Run("balance equal to remaining limit", func(t *testing.T) {
		f := newFixture(t, utils.Units(10000))
		if _, err := NewCardManager(f.store).CreateCredit(f.ctx, f.account.ID, testCard, utils.Units(10000)); err != nil {
			t.Fatalf("CreateCredit failed: %v", err)
		}
		if got := f.reloadCustomer(t).RemainingRiskLimit; got != 0 {
			t.Errorf("Expected remaining risk limit 0.00, got %s", got)
		}
	})

	t.Run("risk limit exceeded", func(t *testing.T) {
		f := newFixture(t, utils.Units(10000))
		_, err := NewCardManager(f.store).CreateCredit(f.ctx, f.account.ID, testCard, utils.MustParseMoney("10000.01"))
		expectErr(t, err, ErrRiskLimitExceeded)
		if got := f.reloadCustomer(t).RemainingRiskLimit; got != utils.Units(10000) {
			t.Errorf("Expected remaining risk limit untouched, got %s", got)
		}
	})

	t.Run("invalid number", func(t *testing.T) {
		f := newFixture(t, utils.Units(10000))
		_, err := NewCardManager(f.store).CreateCredit(f.ctx, f.account.ID, "1234 5678", utils.Units(1))
		expectErr(t, err, ErrCardNumberNotValid)
	})

	t.Run("number in use", func(t *testing.T) {
		f := newFixture(t, utils.Units(10000))
		f.insertCard(t, models.CardTypeDebit, testCard, 0, 0)
		_, err := NewCardManager(f.store).CreateCredit(f.ctx, f.account.ID, "1234567890123456", utils.Units(1))
		expectErr(t, err, ErrCardNumberInUse)
	})

	t.Run("number is checked before the account", func(t *testing.T) {
		f := newFixture(t, utils.Units(10000))
		f.insertCard(t, models.CardTypeDebit, testCard, 0, 0)
		_, err := NewCardManager(f.store).CreateCredit(f.ctx, uuid.New(), testCard, utils.Units(1))
		expectErr(t, err, ErrCardNumberInUse)
	})

	t.Run("unknown account", func(t *testing.T) {
		f := newFixture(t, utils.Units(10000))
		_, err := NewCardManager(f.store).CreateCredit(f.ctx, uuid.New(), testCard, utils.Units(1))
		expectErr(t, err, ErrAccountNotFound)
	})
}

func TestCreateDebitCard(t *testing.T) {
	t.Run("zero balance, risk limit untouched", func(t *testing.T) {
		f := newFixture(t, utils.Units(10000))
		card, err := NewCardManager(f.store).CreateDebit(f.ctx, f.account.ID, testCard)
		if err != nil {
			t.Fatalf("CreateDebit failed: %v", err)
		}
		if card.Type != models.CardTypeDebit || card.Balance != 0 || card.Debt != 0 {
			t.Errorf("Unexpected debit card %+v", card)
		}
		if got := f.reloadCustomer(t).RemainingRiskLimit; got != utils.Units(10000) {
			t.Errorf("Expected remaining risk limit 10000.00, got %s", got)
		}
	})

	t.Run("second debit card", func(t *testing.T) {
		f := newFixture(t, utils.Units(10000))
		f.insertCard(t, models.CardTypeDebit, testCard, 0, 0)
		_, err := NewCardManager(f.store).CreateDebit(f.ctx, f.account.ID, otherCard)
		expectErr(t, err, ErrAlreadyHaveDebitCard)
	})

	t.Run("credit card does not block a debit card", func(t *testing.T) {
		f := newFixture(t, utils.Units(10000))
		f.insertCard(t, models.CardTypeCredit, testCard, 0, 0)
		if _, err := NewCardManager(f.store).CreateDebit(f.ctx, f.account.ID, otherCard); err != nil {
			t.Errorf("Expected debit card to be issued, got %v", err)
		}
	})

	t.Run("account is checked last", func(t *testing.T) {
		f := newFixture(t, utils.Units(10000))
		f.insertCard(t, models.CardTypeDebit, testCard, 0, 0)
		m := NewCardManager(f.store)

		_, err := m.CreateDebit(f.ctx, uuid.New(), testCard)
		expectErr(t, err, ErrCardNumberInUse)

		_, err = m.CreateDebit(f.ctx, uuid.New(), otherCard)
		expectErr(t, err, ErrAccountNotFound)
	})

	t.Run("invalid number", func(t *testing.T) {
		f := newFixture(t, utils.Units(10000))
		_, err := NewCardManager(f.store).CreateDebit(f.ctx, f.account.ID, "1234 5678 9012 3456 7")
		expectErr(t, err, ErrCardNumberNotValid)
	})
}

func TestUpdateCard(t *testing.T) {
	f := newFixture(t, utils.Units(10000))
	card := f.insertCard(t, models.CardTypeDebit, testCard, 0, 0)
	f.insertCard(t, models.CardTypeCredit, otherCard, 0, 0)
	m := NewCardManager(f.store)

	t.Run("same number", func(t *testing.T) {
		updated, err := m.Update(f.ctx, card.ID, testCard)
		if err != nil {
			t.Fatalf("Update failed: %v", err)
		}
		if updated.Number != card.Number {
			t.Errorf("Expected %s, got %s", card.Number, updated.Number)
		}
	})

	t.Run("number in use", func(t *testing.T) {
		_, err := m.Update(f.ctx, card.ID, otherCard)
		expectErr(t, err, ErrCardNumberInUse)
	})

	t.Run("invalid number", func(t *testing.T) {
		_, err := m.Update(f.ctx, card.ID, "42")
		expectErr(t, err, ErrCardNumberNotValid)
	})

	t.Run("new number", func(t *testing.T) {
		updated, err := m.Update(f.ctx, card.ID, thirdCard)
		if err != nil {
			t.Fatalf("Update failed: %v", err)
		}
		if updated.Number != "1111222233334444" {
			t.Errorf("Expected 1111222233334444, got %s", updated.Number)
		}
	})

	t.Run("unknown card", func(t *testing.T) {
		_, err := m.Update(f.ctx, uuid.New(), thirdCard)
		expectErr(t, err, ErrCardNotFound)
	})
}

func TestDeleteCard(t *testing.T) {
	t.Run("credit card releases its hold", func(t *testing.T) {
		f := newFixture(t, utils.Units(10000))
		m := NewCardManager(f.store)
		card, err := m.CreateCredit(f.ctx, f.account.ID, testCard, utils.Units(3000))
		if err != nil {
			t.Fatalf("CreateCredit failed: %v", err)
		}
		if err := f.store.Cards().Insert(f.ctx, card); err != nil {
			t.Fatalf("Insert failed: %v", err)
		}

		deleted, err := m.Delete(f.ctx, card.ID)
		if err != nil {
			t.Fatalf("Delete failed: %v", err)
		}
		if deleted.ID != card.ID {
			t.Errorf("Expected card %s, got %s", card.ID, deleted.ID)
		}
		if got := f.reloadCustomer(t).RemainingRiskLimit; got != utils.Units(10000) {
			t.Errorf("Expected remaining risk limit 10000.00, got %s", got)
		}

		// Removal is the caller's job
		f.reloadCard(t, card.ID)
	})

	t.Run("release uses the current balance", func(t *testing.T) {
		f := newFixture(t, utils.Units(10000))
		f.customer.RemainingRiskLimit = utils.Units(7000)
		_ = f.store.Customers().Update(f.ctx, f.customer)
		card := f.insertCard(t, models.CardTypeCredit, testCard, utils.Units(3500), 0)

		if _, err := NewCardManager(f.store).Delete(f.ctx, card.ID); err != nil {
			t.Fatalf("Delete failed: %v", err)
		}
		if got := f.reloadCustomer(t).RemainingRiskLimit; got != utils.Units(10500) {
			t.Errorf("Expected remaining risk limit 10500.00, got %s", got)
		}
	})

	t.Run("debit card leaves the risk limit alone", func(t *testing.T) {
		f := newFixture(t, utils.Units(10000))
		card := f.insertCard(t, models.CardTypeDebit, testCard, utils.Units(250), 0)
		if _, err := NewCardManager(f.store).Delete(f.ctx, card.ID); err != nil {
			t.Fatalf("Delete failed: %v", err)
		}
		if got := f.reloadCustomer(t).RemainingRiskLimit; got != utils.Units(10000) {
			t.Errorf("Expected remaining risk limit 10000.00, got %s", got)
		}
	})

	t.Run("card with debt", func(t *testing.T) {
		f := newFixture(t, utils.Units(10000))
		card := f.insertCard(t, models.CardTypeCredit, testCard, utils.Units(100), utils.Units(1))
		_, err := NewCardManager(f.store).Delete(f.ctx, card.ID)
		expectErr(t, err, ErrPayDebtFirst)
		if got := f.reloadCustomer(t).RemainingRiskLimit; got != utils.Units(10000) {
			t.Errorf("Expected remaining risk limit untouched, got %s", got)
		}
	})

	t.Run("unknown card", func(t *testing.T) {
		f := newFixture(t, utils.Units(10000))
		_, err := NewCardManager(f.store).Delete(f.ctx, uuid.New())
		expectErr(t, err, ErrCardNotFound)
	})
}

func TestListCards(t *testing.T) {
	f := newFixture(t, utils.Units(10000))
	f.insertCard(t, models.CardTypeDebit, testCard, 0, 0)
	f.insertCard(t, models.CardTypeCredit, otherCard, 0, 0)
	m := NewCardManager(f.store)

	list, err := m.ListByAccount(f.ctx, f.account.ID)
	if err != nil {
		t.Fatalf("ListByAccount failed: %v", err)
	}
	if len(list) != 2 {
		t.Errorf("Expected 2 cards, got %d", len(list))
	}

	_, err = m.ListByAccount(f.ctx, uuid.New())
	expectErr(t, err, ErrAccountNotFound)

	all, _ := m.List(f.ctx)
	if len(all) != 2 {
		t.Errorf("Expected 2 cards, got %d", len(all))
	}
}
