// Package database implements the ledger repositories on MySQL/MariaDB.
//
// FILE: queries_customer.go
// PURPOSE: Customer repository: lookup by id and identity number, listing
// and persistence of risk-limit changes.
//
// KEY FUNCTIONS:
// - Find / FindByIdentityNumber: Single live customer
// - List: All live customers
// - Insert / Update / Delete: Persistence, soft delete
//
// RELATED FILES:
// - queries.go: Base Queries struct and helpers
// - scanners.go: scanCustomer
package database

import (
	"context"

	"github.com/google/uuid"
	"github.com/willfong/bank-ledger/internal/models"
)

type customerQueries struct {
	*Queries
}

func (q customerQueries) Find(ctx context.Context, id uuid.UUID) (*models.Customer, error) {
	query := `
		SELECT ` + customerColumns + `
		FROM customers
		WHERE id = ? AND deleted_at IS NULL`

	return one(ctx, q.Queries, scanCustomer, query, id)
}

func (q customerQueries) FindByIdentityNumber(ctx context.Context, identityNumber string) (*models.Customer, error) {
	query := `
		SELECT ` + customerColumns + `
		FROM customers
		WHERE identity_number = ? AND deleted_at IS NULL
		LIMIT 1`

	return one(ctx, q.Queries, scanCustomer, query, identityNumber)
}

func (q customerQueries) List(ctx context.Context) ([]*models.Customer, error) {
	query := `
		SELECT ` + customerColumns + `
		FROM customers
		WHERE deleted_at IS NULL
		ORDER BY created_at, id`

	return many(ctx, q.Queries, scanCustomer, query)
}

func (q customerQueries) Insert(ctx context.Context, c *models.Customer) error {
	assignID(&c.ID)
	now := q.now()

	query := `
		INSERT INTO customers (` + customerColumns + `)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`

	_, err := q.db.ExecContext(ctx, query,
		c.ID, c.Name, c.LastName, c.IdentityNumber, c.BirthPlace, nullableDate(c.BirthDate),
		c.RiskLimit, c.RemainingRiskLimit, now, now,
	)
	if err != nil {
		return err
	}

	c.CreatedAt, c.UpdatedAt = now, now
	return nil
}

func (q customerQueries) Update(ctx context.Context, c *models.Customer) error {
	now := q.now()

	query := `
		UPDATE customers
		SET name = ?, last_name = ?, identity_number = ?, birth_place = ?, birth_date = ?,
			risk_limit = ?, remaining_risk_limit = ?, updated_at = ?
		WHERE id = ? AND deleted_at IS NULL`

	err := q.execOne(ctx, query,
		c.Name, c.LastName, c.IdentityNumber, c.BirthPlace, nullableDate(c.BirthDate),
		c.RiskLimit, c.RemainingRiskLimit, now, c.ID,
	)
	if err != nil {
		return err
	}

	c.UpdatedAt = now
	return nil
}

func (q customerQueries) Delete(ctx context.Context, id uuid.UUID) error {
	return q.softDelete(ctx, "customers", id)
}
