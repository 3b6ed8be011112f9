package ledger

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/willfong/bank-ledger/internal/repository"
)

// lookup fetches one row by id and turns a miss into the given business error
func lookup[T any](ctx context.Context, find func(context.Context, uuid.UUID) (*T, error), id uuid.UUID, notFound *BusinessError, what string) (*T, error) {
	row, err := find(ctx, id)
	if err != nil {
		if repository.IsNotFound(err) {
			return nil, notFound
		}
		return nil, fmt.Errorf("failed to load %s %s: %w", what, id, err)
	}
	return row, nil
}

// taken interprets a lookup by a unique key: true when a row exists
func taken(_ any, err error) (bool, error) {
	if err == nil {
		return true, nil
	}
	if repository.IsNotFound(err) {
		return false, nil
	}
	return false, err
}
