package models

import (
	"github.com/google/uuid"
	"github.com/willfong/bank-ledger/internal/utils"
)

// CardReport summarises a card's spending (its Out transactions)
type CardReport struct {
	CardID    uuid.UUID   `json:"card_id"`
	AccountID uuid.UUID   `json:"account_id"`
	Type      CardType    `json:"type"`
	Number    string      `json:"number"`
	Balance   utils.Money `json:"balance"`
	Debt      utils.Money `json:"debt"`

	TotalSpending     utils.Money `json:"total_spending"`
	NumberOfSpendings int         `json:"number_of_spendings"`
	MaxAmountSpent    utils.Money `json:"max_amount_spent"`
	LastAmountSpent   utils.Money `json:"last_amount_spent"`
}
