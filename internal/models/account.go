package models

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
)

// AccountType represents the type of bank account
type AccountType string

const (
	AccountTypeDemand AccountType = "demand" // Current account, withdraw any time
	AccountTypeTerm   AccountType = "term"   // Time deposit
)

// AccountTypes lists every supported account type
var AccountTypes = []AccountType{AccountTypeDemand, AccountTypeTerm}

// ParseAccountType converts user input into an AccountType
func ParseAccountType(s string) (AccountType, error) {
	t := AccountType(strings.ToLower(strings.TrimSpace(s)))
	for _, known := range AccountTypes {
		if t == known {
			return t, nil
		}
	}
	return "", fmt.Errorf("unknown account type %q", s)
}

// Account represents a bank account owned by a customer
type Account struct {
	// Primary identifier
	ID uuid.UUID `db:"id" json:"id"`

	// Owner relationship (by identifier only)
	CustomerID uuid.UUID `db:"customer_id" json:"customer_id"`

	Type AccountType `db:"type" json:"type"`

	// IBAN with whitespace removed, unique across accounts
	IBAN string `db:"iban" json:"iban"`

	// Metadata
	CreatedAt time.Time `db:"created_at" json:"created_at"`
	UpdatedAt time.Time `db:"updated_at" json:"updated_at"`
}
