package ledger

import (
	"context"
	"testing"

	"github.com/willfong/bank-ledger/internal/models"
	"github.com/willfong/bank-ledger/internal/repository"
	"github.com/willfong/bank-ledger/internal/utils"
)

// TestRiskLimitLifecycle walks one customer through issuing, spending on,
// paying off and closing a credit card, persisting each result the way the
// service layer does.
func TestRiskLimitLifecycle(t *testing.T) {
	f := newFixture(t, utils.Units(10000))
	ctx := f.ctx

	var credit *models.Card

	step := func(name string, fn func(ctx context.Context, repos repository.Repositories) error) {
		t.Helper()
		if err := f.store.InTx(ctx, fn); err != nil {
			t.Fatalf("%s: %v", name, err)
		}
	}

	step("issue credit card", func(ctx context.Context, repos repository.Repositories) error {
		card, err := NewCardManager(repos).CreateCredit(ctx, f.account.ID, testCard, utils.Units(5000))
		if err != nil {
			return err
		}
		credit = card
		return repos.Cards().Insert(ctx, card)
	})
	if got := f.reloadCustomer(t).RemainingRiskLimit; got != utils.Units(5000) {
		t.Fatalf("Expected remaining 5000.00 after issuance, got %s", got)
	}

	err := f.store.InTx(ctx, func(ctx context.Context, repos repository.Repositories) error {
		card, err := NewCardManager(repos).CreateCredit(ctx, f.account.ID, otherCard, utils.Units(6000))
		if err != nil {
			return err
		}
		return repos.Cards().Insert(ctx, card)
	})
	expectErr(t, err, ErrRiskLimitExceeded)

	step("issue debit card", func(ctx context.Context, repos repository.Repositories) error {
		card, err := NewCardManager(repos).CreateDebit(ctx, f.account.ID, thirdCard)
		if err != nil {
			return err
		}
		return repos.Cards().Insert(ctx, card)
	})
	if got := f.reloadCustomer(t).RemainingRiskLimit; got != utils.Units(5000) {
		t.Errorf("Expected debit card to leave remaining at 5000.00, got %s", got)
	}

	move := func(amount utils.Money, direction models.Direction) {
		t.Helper()
		step("transaction", func(ctx context.Context, repos repository.Repositories) error {
			tx, err := NewTransactionManager(repos).Create(ctx, credit.ID, amount, direction, models.TxTypeEFT, "")
			if err != nil {
				return err
			}
			return repos.Transactions().Insert(ctx, tx)
		})
	}

	move(utils.Units(500), models.DirectionOut)
	card := f.reloadCard(t, credit.ID)
	if card.Balance != utils.Units(4500) || card.Debt != utils.Units(500) {
		t.Fatalf("Expected 4500.00 / 500.00 after spending, got %s / %s", card.Balance, card.Debt)
	}

	move(utils.Units(500), models.DirectionIn)
	card = f.reloadCard(t, credit.ID)
	if card.Balance != utils.Units(5000) || card.Debt != 0 {
		t.Fatalf("Expected 5000.00 / 0.00 after paying back, got %s / %s", card.Balance, card.Debt)
	}

	step("delete credit card", func(ctx context.Context, repos repository.Repositories) error {
		card, err := NewCardManager(repos).Delete(ctx, credit.ID)
		if err != nil {
			return err
		}
		return repos.Cards().Delete(ctx, card.ID)
	})
	if got := f.reloadCustomer(t).RemainingRiskLimit; got != utils.Units(10000) {
		t.Errorf("Expected remaining back at 10000.00, got %s", got)
	}

	if _, err := NewCustomerManager(f.store).Delete(ctx, f.customer.ID); err != nil {
		t.Errorf("Expected customer without debt to be deletable, got %v", err)
	}
}
