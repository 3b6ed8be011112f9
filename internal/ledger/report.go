package ledger

import "github.com/willfong/bank-ledger/internal/models"

// SummarizeSpending builds a card report from the card's Out transactions.
// Records with any other direction are ignored. With no spending every
// aggregate is zero.
func SummarizeSpending(card *models.Card, history []*models.TransactionHistory) *models.CardReport {
	report := &models.CardReport{
		CardID:    card.ID,
		AccountID: card.AccountID,
		Type:      card.Type,
		Number:    card.Number,
		Balance:   card.Balance,
		Debt:      card.Debt,
	}

	var last *models.TransactionHistory
	for _, tx := range history {
		if tx.Direction != models.DirectionOut {
			continue
		}

		report.TotalSpending = report.TotalSpending.Add(tx.Amount)
		report.NumberOfSpendings++
		report.MaxAmountSpent = report.MaxAmountSpent.Max(tx.Amount)

		if last == nil || !tx.TransactionDate.Before(last.TransactionDate) {
			last = tx
		}
	}

	if last != nil {
		report.LastAmountSpent = last.Amount
	}

	return report
}
