package models

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/willfong/bank-ledger/internal/utils"
)

// CardType distinguishes credit cards, which carry debt against the
// customer's risk limit, from debit cards
type CardType string

const (
	CardTypeCredit CardType = "credit"
	CardTypeDebit  CardType = "debit"
)

// ParseCardType converts user input into a CardType
func ParseCardType(s string) (CardType, error) {
	switch t := CardType(strings.ToLower(strings.TrimSpace(s))); t {
	case CardTypeCredit, CardTypeDebit:
		return t, nil
	}
	return "", fmt.Errorf("unknown card type %q", s)
}

// Card represents a payment card issued on an account
type Card struct {
	// Primary identifier
	ID uuid.UUID `db:"id" json:"id"`

	// Account relationship (by identifier only)
	AccountID uuid.UUID `db:"account_id" json:"account_id"`

	Type CardType `db:"type" json:"type"`

	// Card number with whitespace removed, unique across cards
	Number string `db:"number" json:"number"`

	// Balance and debt in minor units. Debt is only ever non-zero on credit cards.
	Balance utils.Money `db:"balance" json:"balance"`
	Debt    utils.Money `db:"debt" json:"debt"`

	// Metadata
	CreatedAt time.Time `db:"created_at" json:"created_at"`
	UpdatedAt time.Time `db:"updated_at" json:"updated_at"`
}

// IsCredit returns true for credit cards
func (c *Card) IsCredit() bool {
	return c.Type == CardTypeCredit
}

// HasDebt returns true if the card owes anything
func (c *Card) HasDebt() bool {
	return c.Debt.IsPositive()
}

// MaskedNumber shows only the last four digits
func (c *Card) MaskedNumber() string {
	if len(c.Number) <= 4 {
		return c.Number
	}
	return strings.Repeat("*", len(c.Number)-4) + c.Number[len(c.Number)-4:]
}
