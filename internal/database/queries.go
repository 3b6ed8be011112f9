// Package database implements the ledger repositories on MySQL/MariaDB.
//
// FILE: queries.go
// PURPOSE: Base Queries struct shared by the pool and open transactions, and
// the helpers every entity file builds on.
//
// KEY TYPES:
// - querier: What Pool and txQuerier have in common
// - Queries: Repositories bound to one querier
//
// RELATED FILES:
// - queries_customer.go: Customer repository
// - queries_account.go: Account repository
// - queries_card.go: Card repository
// - queries_transaction.go: Transaction history repository
// - scanners.go: Row scanning helper functions
// - store.go: Transaction handling
package database

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/willfong/bank-ledger/internal/repository"
)

// querier is satisfied by Pool and by txQuerier
type querier interface {
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
}

// Queries provides the repositories over one querier. Inside a transaction
// single-row reads take row locks.
type Queries struct {
	db    querier
	inTx  bool
	nowFn func() time.Time
}

// NewQueries creates a Queries instance running directly on the pool
func NewQueries(pool *Pool) *Queries {
	return &Queries{db: pool, nowFn: time.Now}
}

func (q *Queries) Customers() repository.CustomerRepository {
	return customerQueries{q}
}

func (q *Queries) Accounts() repository.AccountRepository {
	return accountQueries{q}
}

func (q *Queries) Cards() repository.CardRepository {
	return cardQueries{q}
}

func (q *Queries) Transactions() repository.TransactionRepository {
	return transactionQueries{q}
}

// now returns the current time truncated to the DATETIME(6) precision
func (q *Queries) now() time.Time {
	return q.nowFn().UTC().Truncate(time.Microsecond)
}

// lock returns the locking clause for single-row reads
func (q *Queries) lock() string {
	if q.inTx {
		return " FOR UPDATE"
	}
	return ""
}

// one runs a single-row query and maps sql.ErrNoRows to repository.ErrNotFound
func one[T any](ctx context.Context, q *Queries, scan func(rowScanner) (*T, error), query string, args ...any) (*T, error) {
	v, err := scan(q.db.QueryRowContext(ctx, query+q.lock(), args...))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, repository.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return v, nil
}

// many runs a query and scans every row
func many[T any](ctx context.Context, q *Queries, scan func(rowScanner) (*T, error), query string, args ...any) ([]*T, error) {
	rows, err := q.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []*T
	for rows.Next() {
		v, err := scan(rows)
		if err != nil {
			return nil, err
		}
		result = append(result, v)
	}
	return result, rows.Err()
}

// execOne runs a statement that must touch exactly one live row
func (q *Queries) execOne(ctx context.Context, query string, args ...any) error {
	result, err := q.db.ExecContext(ctx, query, args...)
	if err != nil {
		return err
	}
	n, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to read affected rows: %w", err)
	}
	if n == 0 {
		return repository.ErrNotFound
	}
	return nil
}

// softDelete marks a live row of table as deleted
func (q *Queries) softDelete(ctx context.Context, table string, id uuid.UUID) error {
	return q.execOne(ctx,
		"UPDATE "+table+" SET deleted_at = ? WHERE id = ? AND deleted_at IS NULL",
		q.now(), id)
}

// assignID gives a new row an id when the caller left it empty
func assignID(id *uuid.UUID) {
	if *id == uuid.Nil {
		*id = uuid.New()
	}
}
