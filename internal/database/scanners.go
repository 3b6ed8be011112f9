// Package database implements the ledger repositories on MySQL/MariaDB.
//
// FILE: scanners.go
// PURPOSE: Row scanning helper functions for converting database rows to model structs.
//
// KEY FUNCTIONS:
// - scanCustomer: Scans a customer row
// - scanAccount: Scans an account row
// - scanCard: Scans a card row
// - scanTransaction: Scans a transaction history row
//
// RELATED FILES:
// - queries_customer.go: Uses scanCustomer
// - queries_account.go: Uses scanAccount
// - queries_card.go: Uses scanCard
// - queries_transaction.go: Uses scanTransaction
package database

import (
	"database/sql"
	"time"

	"github.com/willfong/bank-ledger/internal/models"
)

// rowScanner is satisfied by *sql.Row and *sql.Rows
type rowScanner interface {
	Scan(dest ...any) error
}

const customerColumns = `id, name, last_name, identity_number, birth_place, birth_date,
	risk_limit, remaining_risk_limit, created_at, updated_at`

func scanCustomer(row rowScanner) (*models.Customer, error) {
	c := &models.Customer{}

	// birth_date is nullable
	var birthDate sql.NullTime

	err := row.Scan(
		&c.ID, &c.Name, &c.LastName, &c.IdentityNumber, &c.BirthPlace, &birthDate,
		&c.RiskLimit, &c.RemainingRiskLimit, &c.CreatedAt, &c.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	c.BirthDate = birthDate.Time
	return c, nil
}

const accountColumns = `id, customer_id, type, iban, created_at, updated_at`

func scanAccount(row rowScanner) (*models.Account, error) {
	a := &models.Account{}
	err := row.Scan(&a.ID, &a.CustomerID, &a.Type, &a.IBAN, &a.CreatedAt, &a.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return a, nil
}

const cardColumns = `id, account_id, type, number, balance, debt, created_at, updated_at`

func scanCard(row rowScanner) (*models.Card, error) {
	c := &models.Card{}
	err := row.Scan(&c.ID, &c.AccountID, &c.Type, &c.Number, &c.Balance, &c.Debt, &c.CreatedAt, &c.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return c, nil
}

const transactionColumns = `id, customer_id, card_id, amount, direction, tx_type, definition, transaction_date`

func scanTransaction(row rowScanner) (*models.TransactionHistory, error) {
	t := &models.TransactionHistory{}
	err := row.Scan(
		&t.ID, &t.CustomerID, &t.CardID, &t.Amount,
		&t.Direction, &t.Type, &t.Definition, &t.TransactionDate,
	)
	if err != nil {
		return nil, err
	}
	return t, nil
}

// nullableDate stores the zero time as NULL
func nullableDate(t time.Time) any {
	if t.IsZero() {
		return nil
	}
	return t
}
