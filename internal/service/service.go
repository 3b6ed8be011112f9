// Package service exposes the ledger as application operations. Every
// mutating operation runs the managers and the follow-up persistence inside
// one store transaction, so risk-limit holds, card balances and the records
// that caused them commit or roll back together.
package service

import (
	"github.com/sirupsen/logrus"
	"github.com/willfong/bank-ledger/internal/ledger"
	"github.com/willfong/bank-ledger/internal/repository"
)

// Services bundles the application services over one store
type Services struct {
	Customers    *CustomerService
	Accounts     *AccountService
	Cards        *CardService
	Transactions *TransactionService
	Reports      *ReportService
}

// New wires every service to store and logger
func New(store repository.Store, logger *logrus.Logger) *Services {
	return &Services{
		Customers:    NewCustomerService(store, logger),
		Accounts:     NewAccountService(store, logger),
		Cards:        NewCardService(store, logger),
		Transactions: NewTransactionService(store, logger),
		Reports:      NewReportService(store, logger),
	}
}

// logFailure logs rule violations at warn and everything else at error
func logFailure(entry *logrus.Entry, err error, msg string) {
	if ledger.IsBusinessError(err) {
		entry.WithField("reason", err.Error()).Warn(msg)
		return
	}
	entry.WithError(err).Error(msg)
}
