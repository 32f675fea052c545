// Package domain provides definitions of the ledger entities and the errors shared between layers.
package domain

import (
	"errors"
	"time"

	"github.com/shopspring/decimal"
)

var (
	// ErrAccountNotFound indicates that the account is not found.
	ErrAccountNotFound = errors.New("account not found")
	// ErrAccountExists indicates that an account with the given number already exists.
	ErrAccountExists = errors.New("account number already exists")
	// ErrInvalidAccountNumber indicates an empty or malformed account number.
	ErrInvalidAccountNumber = errors.New("invalid account number")
	// ErrNegativeBalance indicates a write that would leave an account balance below zero.
	ErrNegativeBalance = errors.New("account balance cannot be negative")
)

// Account holds the balance of a single ledger account.
//
// ID is the storage key, Number is the business identity used by callers.
type Account struct {
	ID        int64           `json:"id"`
	Number    string          `json:"number"`
	Owner     string          `json:"owner"`
	Balance   decimal.Decimal `json:"balance"`
	CreatedAt time.Time       `json:"created_at"`
}

// OpenAccountParams is the input data to open a new account.
type OpenAccountParams struct {
	Number  string `json:"number"`
	Owner   string `json:"owner"`
	Balance string `json:"balance"`
}
