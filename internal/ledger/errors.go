// Package ledger holds the domain managers that enforce the bank's business
// rules: identity and IBAN uniqueness, card issuance, risk-limit bookkeeping
// and balance/debt consistency on card transactions.
//
// Managers validate and mutate entities. They never open transactions
// themselves; callers construct them over the repositories of a single
// repository.Store transaction and persist the returned entity.
package ledger

import (
	"errors"
	"fmt"
)

// Kind classifies business rule violations for transport layers
type Kind int

const (
	KindValidation Kind = iota + 1
	KindNotFound
	KindConflict
)

func (k Kind) String() string {
	switch k {
	case KindValidation:
		return "validation"
	case KindNotFound:
		return "not_found"
	case KindConflict:
		return "conflict"
	default:
		return fmt.Sprintf("kind(%d)", int(k))
	}
}

// BusinessError is a business rule violation with a fixed, user-facing message
type BusinessError struct {
	Kind    Kind
	Message string
}

func (e *BusinessError) Error() string {
	return e.Message
}

func newError(kind Kind, message string) *BusinessError {
	return &BusinessError{Kind: kind, Message: message}
}

// Customer errors
var (
	ErrInvalidIdentityNumber = newError(KindValidation, "Identity Number Must Be 11 Digits!")
	ErrIdentityNumberInUse   = newError(KindConflict, "Identity Number Is In Use!")
	ErrCustomerNotFound      = newError(KindNotFound, "Customer With Given Id Doesn't Exists!")
	ErrCustomerHasDebt       = newError(KindConflict, "Customer Has Debt, Pay For Debts First!")
	ErrInvalidRiskLimit      = newError(KindValidation, "Remaining Risk Limit Must Be Greater Then 0!")
)

// Account errors
var (
	ErrIbanAlreadyInUse = newError(KindConflict, "Iban Is Already In Use")
	ErrAccountNotFound  = newError(KindNotFound, "Account With Given Id Doesn't Exists!")
	ErrIbanNotValid     = newError(KindValidation, "Iban Is Not Valid!")
)

// Card errors
var (
	ErrCardNotFound         = newError(KindNotFound, "Card With Given Id Doesn't Exists!")
	ErrRiskLimitExceeded    = newError(KindConflict, "Risk Limit Exceeded!")
	ErrAlreadyHaveDebitCard = newError(KindConflict, "This Account Already Has a Debit Card, Please Deactivate it First!")
	ErrPayDebtFirst         = newError(KindConflict, "Please Pay Debt First!")
	ErrCardNumberInUse      = newError(KindConflict, "Card Number is Already in Use!")
	ErrCardNumberNotValid   = newError(KindValidation, "Card Number is not Valid!")
)

// Transaction errors
var (
	ErrTransactionNotFound       = newError(KindNotFound, "Transaction With Given Id Does not Exists!")
	ErrNotEnoughBalance          = newError(KindConflict, "There is not enough balance!")
	ErrInvalidTransaction        = newError(KindValidation, "Can't Deposit To Credit Card If You Don't Have Debt!")
	ErrInvalidDepositTransaction = newError(KindValidation, "Deposited more money then your debt!")
	ErrInvalidAmount             = newError(KindValidation, "Amount Must Be Greater Than 0!")
)

// IsBusinessError reports whether err is (or wraps) a BusinessError
func IsBusinessError(err error) bool {
	var be *BusinessError
	return errors.As(err, &be)
}

// KindOf returns the Kind of a business error, or 0 for anything else
func KindOf(err error) Kind {
	var be *BusinessError
	if errors.As(err, &be) {
		return be.Kind
	}
	return 0
}
