package ledger

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/willfong/bank-ledger/internal/models"
	"github.com/willfong/bank-ledger/internal/repository"
	"github.com/willfong/bank-ledger/internal/utils"
)

// AdjustRemainingRiskLimit adds delta to a customer's remaining risk limit and
// persists the customer. Issuing a credit card holds its balance (negative
// delta); deleting it releases the hold (positive delta). Balance changes from
// transactions never pass through here.
//
// Run it on the repositories of the same transaction as the card change.
func AdjustRemainingRiskLimit(ctx context.Context, customers repository.CustomerRepository, customerID uuid.UUID, delta utils.Money) (*models.Customer, error) {
	customer, err := customers.Find(ctx, customerID)
	if err != nil {
		if repository.IsNotFound(err) {
			return nil, ErrCustomerNotFound
		}
		return nil, fmt.Errorf("failed to load customer %s: %w", customerID, err)
	}

	customer.RemainingRiskLimit = customer.RemainingRiskLimit.Add(delta)

	if err := customers.Update(ctx, customer); err != nil {
		return nil, fmt.Errorf("failed to update remaining risk limit: %w", err)
	}

	return customer, nil
}
