package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/willfong/bank-ledger/internal/utils"
)

// Customer represents a bank customer and their credit-card risk allowance
type Customer struct {
	// Primary identifier
	ID uuid.UUID `db:"id" json:"id"`

	// Personal Information (PII)
	Name           string    `db:"name" json:"name"`
	LastName       string    `db:"last_name" json:"last_name"`
	IdentityNumber string    `db:"identity_number" json:"identity_number"` // Exactly 11 characters, unique
	BirthPlace     string    `db:"birth_place" json:"birth_place"`
	BirthDate      time.Time `db:"birth_date" json:"birth_date"`

	// Risk allowance for credit cards.
	// RiskLimit - RemainingRiskLimit is the balance held by open credit cards.
	RiskLimit          utils.Money `db:"risk_limit" json:"risk_limit"`
	RemainingRiskLimit utils.Money `db:"remaining_risk_limit" json:"remaining_risk_limit"`

	// Metadata
	CreatedAt time.Time `db:"created_at" json:"created_at"`
	UpdatedAt time.Time `db:"updated_at" json:"updated_at"`
}

// HasDebt returns true if any of the risk limit is held by credit cards
func (c *Customer) HasDebt() bool {
	return c.RemainingRiskLimit != c.RiskLimit
}

// HeldRiskLimit returns the part of the risk limit held by open credit cards
func (c *Customer) HeldRiskLimit() utils.Money {
	return c.RiskLimit.Sub(c.RemainingRiskLimit)
}

// FullName returns "Name LastName"
func (c *Customer) FullName() string {
	return c.Name + " " + c.LastName
}
