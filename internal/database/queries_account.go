// Package database implements the ledger repositories on MySQL/MariaDB.
//
// FILE: queries_account.go
// PURPOSE: Account repository: lookup by id and IBAN, listing per customer.
//
// KEY FUNCTIONS:
// - Find / FindByIBAN: Single live account
// - List / ListByCustomer: Live accounts
// - Insert / Update / Delete: Persistence, soft delete
//
// RELATED FILES:
// - queries.go: Base Queries struct and helpers
// - scanners.go: scanAccount
package database

import (
	"context"

	"github.com/google/uuid"
	"github.com/willfong/bank-ledger/internal/models"
)

type accountQueries struct {
	*Queries
}

func (q accountQueries) Find(ctx context.Context, id uuid.UUID) (*models.Account, error) {
	query := `
		SELECT ` + accountColumns + `
		FROM accounts
		WHERE id = ? AND deleted_at IS NULL`

	return one(ctx, q.Queries, scanAccount, query, id)
}

func (q accountQueries) FindByIBAN(ctx context.Context, iban string) (*models.Account, error) {
	query := `
		SELECT ` + accountColumns + `
		FROM accounts
		WHERE iban = ? AND deleted_at IS NULL
		LIMIT 1`

	return one(ctx, q.Queries, scanAccount, query, iban)
}

func (q accountQueries) List(ctx context.Context) ([]*models.Account, error) {
	query := `
		SELECT ` + accountColumns + `
		FROM accounts
		WHERE deleted_at IS NULL
		ORDER BY created_at, id`

	return many(ctx, q.Queries, scanAccount, query)
}

func (q accountQueries) ListByCustomer(ctx context.Context, customerID uuid.UUID) ([]*models.Account, error) {
	query := `
		SELECT ` + accountColumns + `
		FROM accounts
		WHERE customer_id = ? AND deleted_at IS NULL
		ORDER BY created_at, id`

	return many(ctx, q.Queries, scanAccount, query, customerID)
}

func (q accountQueries) Insert(ctx context.Context, a *models.Account) error {
	assignID(&a.ID)
	now := q.now()

	query := `
		INSERT INTO accounts (` + accountColumns + `)
		VALUES (?, ?, ?, ?, ?, ?)`

	if _, err := q.db.ExecContext(ctx, query, a.ID, a.CustomerID, a.Type, a.IBAN, now, now); err != nil {
		return err
	}

	a.CreatedAt, a.UpdatedAt = now, now
	return nil
}

func (q accountQueries) Update(ctx context.Context, a *models.Account) error {
	now := q.now()

	query := `
		UPDATE accounts
		SET customer_id = ?, type = ?, iban = ?, updated_at = ?
		WHERE id = ? AND deleted_at IS NULL`

	if err := q.execOne(ctx, query, a.CustomerID, a.Type, a.IBAN, now, a.ID); err != nil {
		return err
	}

	a.UpdatedAt = now
	return nil
}

func (q accountQueries) Delete(ctx context.Context, id uuid.UUID) error {
	return q.softDelete(ctx, "accounts", id)
}
