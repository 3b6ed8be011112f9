// Package database implements the ledger repositories on MySQL/MariaDB.
//
// FILE: queries_card.go
// PURPOSE: Card repository: lookup by id, number and the debit card of an
// account, and persistence of balance and debt.
//
// KEY FUNCTIONS:
// - Find / FindByNumber / FindDebitByAccount: Single live card
// - List / ListByAccount: Live cards
// - Insert / Update / Delete: Persistence, soft delete
//
// RELATED FILES:
// - queries.go: Base Queries struct and helpers
// - scanners.go: scanCard
package database

import (
	"context"

	"github.com/google/uuid"
	"github.com/willfong/bank-ledger/internal/models"
)

type cardQueries struct {
	*Queries
}

func (q cardQueries) Find(ctx context.Context, id uuid.UUID) (*models.Card, error) {
	query := `
		SELECT ` + cardColumns + `
		FROM cards
		WHERE id = ? AND deleted_at IS NULL`

	return one(ctx, q.Queries, scanCard, query, id)
}

func (q cardQueries) FindByNumber(ctx context.Context, number string) (*models.Card, error) {
	query := `
		SELECT ` + cardColumns + `
		FROM cards
		WHERE number = ? AND deleted_at IS NULL
		LIMIT 1`

	return one(ctx, q.Queries, scanCard, query, number)
}

func (q cardQueries) FindDebitByAccount(ctx context.Context, accountID uuid.UUID) (*models.Card, error) {
	query := `
		SELECT ` + cardColumns + `
		FROM cards
		WHERE account_id = ? AND type = ? AND deleted_at IS NULL
		LIMIT 1`

	return one(ctx, q.Queries, scanCard, query, accountID, models.CardTypeDebit)
}

func (q cardQueries) List(ctx context.Context) ([]*models.Card, error) {
	query := `
		SELECT ` + cardColumns + `
		FROM cards
		WHERE deleted_at IS NULL
		ORDER BY created_at, id`

	return many(ctx, q.Queries, scanCard, query)
}

func (q cardQueries) ListByAccount(ctx context.Context, accountID uuid.UUID) ([]*models.Card, error) {
	query := `
		SELECT ` + cardColumns + `
		FROM cards
		WHERE account_id = ? AND deleted_at IS NULL
		ORDER BY created_at, id`

	return many(ctx, q.Queries, scanCard, query, accountID)
}

func (q cardQueries) Insert(ctx context.Context, c *models.Card) error {
	assignID(&c.ID)
	now := q.now()

	query := `
		INSERT INTO cards (` + cardColumns + `)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)`

	_, err := q.db.ExecContext(ctx, query,
		c.ID, c.AccountID, c.Type, c.Number, c.Balance, c.Debt, now, now,
	)
	if err != nil {
		return err
	}

	c.CreatedAt, c.UpdatedAt = now, now
	return nil
}

func (q cardQueries) Update(ctx context.Context, c *models.Card) error {
	now := q.now()

	query := `
		UPDATE cards
		SET account_id = ?, type = ?, number = ?, balance = ?, debt = ?, updated_at = ?
		WHERE id = ? AND deleted_at IS NULL`

	err := q.execOne(ctx, query, c.AccountID, c.Type, c.Number, c.Balance, c.Debt, now, c.ID)
	if err != nil {
		return err
	}

	c.UpdatedAt = now
	return nil
}

func (q cardQueries) Delete(ctx context.Context, id uuid.UUID) error {
	return q.softDelete(ctx, "cards", id)
}
