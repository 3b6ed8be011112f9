// Package database implements the ledger repositories on MySQL/MariaDB.
//
// FILE: queries_transaction.go
// PURPOSE: Transaction history repository. History rows are append-only.
//
// KEY FUNCTIONS:
// - Find: Single record
// - List / ListByCard / ListByCustomer / ListByCardAndDirection: History in date order
// - Insert: Append a record
//
// RELATED FILES:
// - queries.go: Base Queries struct and helpers
// - scanners.go: scanTransaction
package database

import (
	"context"

	"github.com/google/uuid"
	"github.com/willfong/bank-ledger/internal/models"
)

type transactionQueries struct {
	*Queries
}

func (q transactionQueries) Find(ctx context.Context, id uuid.UUID) (*models.TransactionHistory, error) {
	query := `
		SELECT ` + transactionColumns + `
		FROM transaction_history
		WHERE id = ?`

	return one(ctx, q.Queries, scanTransaction, query, id)
}

func (q transactionQueries) List(ctx context.Context) ([]*models.TransactionHistory, error) {
	query := `
		SELECT ` + transactionColumns + `
		FROM transaction_history
		ORDER BY transaction_date, id`

	return many(ctx, q.Queries, scanTransaction, query)
}

func (q transactionQueries) ListByCard(ctx context.Context, cardID uuid.UUID) ([]*models.TransactionHistory, error) {
	query := `
		SELECT ` + transactionColumns + `
		FROM transaction_history
		WHERE card_id = ?
		ORDER BY transaction_date, id`

	return many(ctx, q.Queries, scanTransaction, query, cardID)
}

func (q transactionQueries) ListByCustomer(ctx context.Context, customerID uuid.UUID) ([]*models.TransactionHistory, error) {
	query := `
		SELECT ` + transactionColumns + `
		FROM transaction_history
		WHERE customer_id = ?
		ORDER BY transaction_date, id`

	return many(ctx, q.Queries, scanTransaction, query, customerID)
}

func (q transactionQueries) ListByCardAndDirection(ctx context.Context, cardID uuid.UUID, direction models.Direction) ([]*models.TransactionHistory, error) {
	query := `
		SELECT ` + transactionColumns + `
		FROM transaction_history
		WHERE card_id = ? AND direction = ?
		ORDER BY transaction_date, id`

	return many(ctx, q.Queries, scanTransaction, query, cardID, direction)
}

func (q transactionQueries) Insert(ctx context.Context, t *models.TransactionHistory) error {
	assignID(&t.ID)
	if t.TransactionDate.IsZero() {
		t.TransactionDate = q.now()
	}

	query := `
		INSERT INTO transaction_history (` + transactionColumns + `)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)`

	_, err := q.db.ExecContext(ctx, query,
		t.ID, t.CustomerID, t.CardID, t.Amount,
		t.Direction, t.Type, t.Definition, t.TransactionDate.UTC(),
	)
	return err
}
