package domain

import (
	"fmt"

	"github.com/shopspring/decimal"
)

// AccountNotFoundError names the account that could not be loaded.
type AccountNotFoundError struct {
	AccountNumber string
	ID            int64
}

func (e *AccountNotFoundError) Error() string {
	if e.AccountNumber == "" {
		return fmt.Sprintf("account with id %d not found", e.ID)
	}

	return fmt.Sprintf("account %s not found", e.AccountNumber)
}

// Is makes errors.Is(err, ErrAccountNotFound) hold.
func (e *AccountNotFoundError) Is(target error) bool {
	return target == ErrAccountNotFound
}

// InsufficientFundsError describes a refused withdrawal from AccountNumber.
type InsufficientFundsError struct {
	AccountNumber string
	Requested     decimal.Decimal
	Available     decimal.Decimal
}

func (e *InsufficientFundsError) Error() string {
	return fmt.Sprintf("insufficient funds in account %s: requested %s, available %s",
		e.AccountNumber, e.Requested.StringFixed(2), e.Available.StringFixed(2))
}

// Is makes errors.Is(err, ErrInsufficientFunds) hold.
func (e *InsufficientFundsError) Is(target error) bool {
	return target == ErrInsufficientFunds
}

// PersistenceError wraps a failure of the underlying store.
type PersistenceError struct {
	Cause error
}

func (e *PersistenceError) Error() string {
	return "persistence: " + e.Cause.Error()
}

func (e *PersistenceError) Unwrap() error {
	return e.Cause
}

// SystemError reports a transfer aborted by an infrastructure failure.
//
// Cause may join several errors when the audit record could not be finalized either.
type SystemError struct {
	Cause error
}

func (e *SystemError) Error() string {
	return "system error: " + e.Cause.Error()
}

func (e *SystemError) Unwrap() error {
	return e.Cause
}
