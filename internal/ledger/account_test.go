package ledger

import (
	"testing"

	"github.com/google/uuid"
	"github.com/willfong/bank-ledger/internal/models"
	"github.com/willfong/bank-ledger/internal/utils"
)

func TestStripWhitespace(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{"TR23 1234 1234", "TR2312341234"},
		{"  1234\t5678\n9012  ", "123456789012"},
		{"nospace", "nospace"},
		{"", ""},
	}

	for _, tt := range tests {
		if got := StripWhitespace(tt.input); got != tt.want {
			t.Errorf("StripWhitespace(%q): expected %q, got %q", tt.input, tt.want, got)
		}
	}
}

func TestAccountCreate(t *testing.T) {
	f := newFixture(t, utils.Units(10000))
	m := NewAccountManager(f.store)

	t.Run("whitespace is removed", func(t *testing.T) {
		a, err := m.Create(f.ctx, f.customer.ID, models.AccountTypeTerm, otherIBAN)
		if err != nil {
			t.Fatalf("Create failed: %v", err)
		}
		if a.IBAN != "TR998888777766665555444433" {
			t.Errorf("Expected stripped IBAN, got %q", a.IBAN)
		}
		if a.CustomerID != f.customer.ID || a.Type != models.AccountTypeTerm {
			t.Errorf("Unexpected account %+v", a)
		}
	})

	t.Run("duplicate IBAN regardless of spacing", func(t *testing.T) {
		_, err := m.Create(f.ctx, f.customer.ID, models.AccountTypeDemand, testIBANStored)
		expectErr(t, err, ErrIbanAlreadyInUse)

		_, err = m.Create(f.ctx, f.customer.ID, models.AccountTypeDemand, "TR23 12341234 1234 1234 1234 23")
		expectErr(t, err, ErrIbanAlreadyInUse)
	})

	t.Run("invalid length", func(t *testing.T) {
		for _, iban := range []string{"TR23", "TR23 1234 1234 1234 1234 1234 234", ""} {
			_, err := m.Create(f.ctx, f.customer.ID, models.AccountTypeDemand, iban)
			expectErr(t, err, ErrIbanNotValid)
		}
	})
}

func TestAccountValidationOrder(t *testing.T) {
	f := newFixture(t, utils.Units(10000))
	m := NewAccountManager(f.store)

	// An IBAN stored before the length rule applied
	legacy := &models.Account{ID: uuid.New(), CustomerID: f.customer.ID, IBAN: "TR12"}
	if err := f.store.Accounts().Insert(f.ctx, legacy); err != nil {
		t.Fatalf("Insert failed: %v", err)
	}

	t.Run("create checks validity first", func(t *testing.T) {
		_, err := m.Create(f.ctx, f.customer.ID, models.AccountTypeDemand, "TR12")
		expectErr(t, err, ErrIbanNotValid)
	})

	t.Run("update checks uniqueness first", func(t *testing.T) {
		_, err := m.Update(f.ctx, f.account.ID, models.AccountTypeDemand, "TR 12")
		expectErr(t, err, ErrIbanAlreadyInUse)
	})
}

func TestAccountUpdate(t *testing.T) {
	t.Run("unknown account", func(t *testing.T) {
		f := newFixture(t, utils.Units(10000))
		_, err := NewAccountManager(f.store).Update(f.ctx, uuid.New(), models.AccountTypeDemand, testIBAN)
		expectErr(t, err, ErrAccountNotFound)
	})

	t.Run("same IBAN with different spacing", func(t *testing.T) {
		f := newFixture(t, utils.Units(10000))
		a, err := NewAccountManager(f.store).Update(f.ctx, f.account.ID, models.AccountTypeTerm, testIBAN)
		if err != nil {
			t.Fatalf("Update failed: %v", err)
		}
		if a.Type != models.AccountTypeTerm {
			t.Errorf("Expected type term, got %s", a.Type)
		}
	})

	t.Run("changed IBAN must be valid", func(t *testing.T) {
		f := newFixture(t, utils.Units(10000))
		_, err := NewAccountManager(f.store).Update(f.ctx, f.account.ID, models.AccountTypeDemand, "TR00 1234")
		expectErr(t, err, ErrIbanNotValid)
	})

	t.Run("changed IBAN", func(t *testing.T) {
		f := newFixture(t, utils.Units(10000))
		a, err := NewAccountManager(f.store).Update(f.ctx, f.account.ID, models.AccountTypeDemand, otherIBAN)
		if err != nil {
			t.Fatalf("Update failed: %v", err)
		}
		if a.IBAN != StripWhitespace(otherIBAN) {
			t.Errorf("Expected %s, got %s", StripWhitespace(otherIBAN), a.IBAN)
		}
	})
}

func TestAccountDeleteAndLookups(t *testing.T) {
	f := newFixture(t, utils.Units(10000))
	m := NewAccountManager(f.store)
	f.insertCard(t, models.CardTypeDebit, testCard, 0, 0)

	t.Run("delete does not look at cards", func(t *testing.T) {
		a, err := m.Delete(f.ctx, f.account.ID)
		if err != nil {
			t.Fatalf("Delete failed: %v", err)
		}
		if a.ID != f.account.ID {
			t.Errorf("Expected account %s, got %s", f.account.ID, a.ID)
		}
	})

	t.Run("unknown account", func(t *testing.T) {
		_, err := m.Delete(f.ctx, uuid.New())
		expectErr(t, err, ErrAccountNotFound)
		expectErr(t, m.CheckAccountExists(f.ctx, uuid.New()), ErrAccountNotFound)
	})

	t.Run("customer guard", func(t *testing.T) {
		expectErr(t, m.CheckCustomerExists(f.ctx, uuid.New()), ErrCustomerNotFound)
		if err := m.CheckCustomerExists(f.ctx, f.customer.ID); err != nil {
			t.Errorf("Expected customer to exist, got %v", err)
		}
	})

	t.Run("list by customer", func(t *testing.T) {
		list, err := m.ListByCustomer(f.ctx, f.customer.ID)
		if err != nil {
			t.Fatalf("ListByCustomer failed: %v", err)
		}
		if len(list) != 1 {
			t.Errorf("Expected 1 account, got %d", len(list))
		}

		list, _ = m.ListByCustomer(f.ctx, uuid.New())
		if len(list) != 0 {
			t.Errorf("Expected no accounts, got %d", len(list))
		}
	})
}
