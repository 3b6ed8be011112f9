package ui

import (
	"fmt"
	"strconv"

	"github.com/willfong/bank-ledger/internal/config"
	"github.com/willfong/bank-ledger/internal/models"
)

const timeLayout = "2006-01-02 15:04:05"

// Customer renders one customer as a summary box
func (u *UI) Customer(c *models.Customer) string {
	birthDate := "-"
	if !c.BirthDate.IsZero() {
		birthDate = c.BirthDate.Format(config.DateLayout)
	}
	return u.SummaryBox("Customer "+c.ID.String(), []KV{
		{"Name", c.FullName()},
		{"Identity", c.IdentityNumber},
		{"Born", fmt.Sprintf("%s, %s", c.BirthPlace, birthDate)},
		{"Risk limit", c.RiskLimit.Format()},
		{"Remaining", c.RemainingRiskLimit.Format()},
		{"Held", c.HeldRiskLimit().Format()},
	})
}

// Customers renders a customer list
func (u *UI) Customers(customers []*models.Customer) string {
	rows := make([][]string, 0, len(customers))
	for _, c := range customers {
		rows = append(rows, []string{
			c.ID.String(), c.FullName(), c.IdentityNumber,
			c.RiskLimit.Format(), c.RemainingRiskLimit.Format(),
		})
	}
	return u.Table([]string{"ID", "Name", "Identity", "Risk limit", "Remaining"}, rows)
}

// Account renders one account
func (u *UI) Account(a *models.Account) string {
	return u.SummaryBox("Account "+a.ID.String(), []KV{
		{"Customer", a.CustomerID.String()},
		{"Type", string(a.Type)},
		{"IBAN", a.IBAN},
	})
}

// Accounts renders an account list
func (u *UI) Accounts(accounts []*models.Account) string {
	rows := make([][]string, 0, len(accounts))
	for _, a := range accounts {
		rows = append(rows, []string{a.ID.String(), a.CustomerID.String(), string(a.Type), a.IBAN})
	}
	return u.Table([]string{"ID", "Customer", "Type", "IBAN"}, rows)
}

// Card renders one card with its number masked
func (u *UI) Card(c *models.Card) string {
	return u.SummaryBox("Card "+c.ID.String(), []KV{
		{"Account", c.AccountID.String()},
		{"Type", string(c.Type)},
		{"Number", c.MaskedNumber()},
		{"Balance", c.Balance.Format()},
		{"Debt", c.Debt.Format()},
	})
}

// Cards renders a card list
func (u *UI) Cards(cards []*models.Card) string {
	rows := make([][]string, 0, len(cards))
	for _, c := range cards {
		rows = append(rows, []string{
			c.ID.String(), string(c.Type), c.MaskedNumber(), c.Balance.Format(), c.Debt.Format(),
		})
	}
	return u.Table([]string{"ID", "Type", "Number", "Balance", "Debt"}, rows)
}

// Transaction renders one transaction
func (u *UI) Transaction(t *models.TransactionHistory) string {
	return u.SummaryBox("Transaction "+t.ID.String(), []KV{
		{"Card", t.CardID.String()},
		{"Customer", t.CustomerID.String()},
		{"Amount", t.Amount.Format()},
		{"Direction", string(t.Direction)},
		{"Type", string(t.Type)},
		{"Definition", t.Definition},
		{"Date", t.TransactionDate.Format(timeLayout)},
	})
}

// Transactions renders a transaction history
func (u *UI) Transactions(history []*models.TransactionHistory) string {
	rows := make([][]string, 0, len(history))
	for _, t := range history {
		rows = append(rows, []string{
			t.TransactionDate.Format(timeLayout), t.CardID.String(), string(t.Direction),
			t.Amount.Format(), string(t.Type), t.Definition,
		})
	}
	return u.Table([]string{"Date", "Card", "Dir", "Amount", "Type", "Definition"}, rows)
}

// CardReport renders a card spending report
func (u *UI) CardReport(r *models.CardReport) string {
	return u.SummaryBox("Card report", []KV{
		{"Card", r.CardID.String()},
		{"Type", string(r.Type)},
		{"Balance", r.Balance.Format()},
		{"Debt", r.Debt.Format()},
		{"Spendings", strconv.Itoa(r.NumberOfSpendings)},
		{"Total spent", r.TotalSpending.Format()},
		{"Max spent", r.MaxAmountSpent.Format()},
		{"Last spent", r.LastAmountSpent.Format()},
	})
}
