package models

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/willfong/bank-ledger/internal/utils"
)

// Direction is the movement of money relative to the card
type Direction string

const (
	DirectionIn  Direction = "in"  // Deposit
	DirectionOut Direction = "out" // Withdrawal or spending
)

// ParseDirection converts user input into a Direction
func ParseDirection(s string) (Direction, error) {
	switch d := Direction(strings.ToLower(strings.TrimSpace(s))); d {
	case DirectionIn, DirectionOut:
		return d, nil
	}
	return "", fmt.Errorf("unknown direction %q", s)
}

// TransactionType represents the payment rail used
type TransactionType string

const (
	TxTypeEFT  TransactionType = "eft"
	TxTypeFAST TransactionType = "fast" // Instant transfer
)

// ParseTransactionType converts user input into a TransactionType
func ParseTransactionType(s string) (TransactionType, error) {
	switch t := TransactionType(strings.ToLower(strings.TrimSpace(s))); t {
	case TxTypeEFT, TxTypeFAST:
		return t, nil
	}
	return "", fmt.Errorf("unknown transaction type %q", s)
}

// TransactionHistory is an immutable record of a balance movement on a card
type TransactionHistory struct {
	// Primary identifier
	ID uuid.UUID `db:"id" json:"id"`

	// Denormalized from the card's account at creation time
	CustomerID uuid.UUID `db:"customer_id" json:"customer_id"`
	CardID     uuid.UUID `db:"card_id" json:"card_id"`

	// Amount in minor units - always positive, sign determined by Direction
	Amount    utils.Money     `db:"amount" json:"amount"`
	Direction Direction       `db:"direction" json:"direction"`
	Type      TransactionType `db:"type" json:"type"`

	// Free-text description
	Definition string `db:"definition" json:"definition"`

	TransactionDate time.Time `db:"transaction_date" json:"transaction_date"`
}

// IsDeposit returns true for In transactions
func (t *TransactionHistory) IsDeposit() bool {
	return t.Direction == DirectionIn
}

// SignedAmount returns the amount as it affects the card balance
func (t *TransactionHistory) SignedAmount() utils.Money {
	if t.Direction == DirectionOut {
		return t.Amount.Neg()
	}
	return t.Amount
}
