// Package database implements the ledger repositories on MySQL/MariaDB.
//
// FILE: store.go
// PURPOSE: Store implementation of repository.Store. InTx runs a callback in
// one database transaction with row-locking reads.
//
// KEY FUNCTIONS:
// - Open: Pool plus Store from config
// - InTx: Commit on success, rollback on error or panic
// - Migrate: Apply the embedded schema
//
// RELATED FILES:
// - pool.go: Connection pool
// - queries.go: Queries shared by pool and transaction
// - schema.go: Embedded schema
package database

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/willfong/bank-ledger/internal/config"
	"github.com/willfong/bank-ledger/internal/repository"
)

// Store is the MySQL repository.Store
type Store struct {
	*Queries
	pool *Pool
}

var _ repository.Store = (*Store)(nil)

// NewStore creates a Store on an open pool
func NewStore(pool *Pool) *Store {
	return &Store{Queries: NewQueries(pool), pool: pool}
}

// Open creates the pool and verifies the connection
func Open(ctx context.Context, cfg config.DatabaseConfig) (*Store, error) {
	pool, err := NewPool(cfg)
	if err != nil {
		return nil, err
	}
	if err := pool.Connect(ctx); err != nil {
		pool.Close()
		return nil, err
	}
	return NewStore(pool), nil
}

// Pool returns the underlying pool, for statistics
func (s *Store) Pool() *Pool {
	return s.pool
}

// Close closes the pool
func (s *Store) Close() error {
	return s.pool.Close()
}

// txQuerier runs statements on a transaction and records them in the pool metrics
type txQuerier struct {
	tx   *sql.Tx
	pool *Pool
}

func (t txQuerier) QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error) {
	start := time.Now()
	rows, err := t.tx.QueryContext(ctx, query, args...)
	t.pool.recordQuery(time.Since(start), err)
	return rows, err
}

func (t txQuerier) QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row {
	start := time.Now()
	row := t.tx.QueryRowContext(ctx, query, args...)
	t.pool.recordQuery(time.Since(start), row.Err())
	return row
}

func (t txQuerier) ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error) {
	start := time.Now()
	result, err := t.tx.ExecContext(ctx, query, args...)
	t.pool.recordQuery(time.Since(start), err)
	return result, err
}

// InTx runs fn inside one transaction. It commits when fn returns nil and
// rolls back otherwise, including when fn panics.
func (s *Store) InTx(ctx context.Context, fn repository.TxFunc) (err error) {
	tx, err := s.pool.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}

	defer func() {
		if p := recover(); p != nil {
			tx.Rollback()
			panic(p)
		}
	}()

	q := &Queries{
		db:    txQuerier{tx: tx, pool: s.pool},
		inTx:  true,
		nowFn: s.nowFn,
	}

	if err := fn(ctx, q); err != nil {
		if rbErr := tx.Rollback(); rbErr != nil && !errors.Is(rbErr, sql.ErrTxDone) {
			return errors.Join(err, fmt.Errorf("failed to roll back: %w", rbErr))
		}
		return err
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}
	return nil
}
