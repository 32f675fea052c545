package domain

import (
	"errors"
	"time"

	"github.com/shopspring/decimal"
)

var (
	// ErrInvalidAmount indicates an amount that is not positive or has more than two fractional digits.
	ErrInvalidAmount = errors.New("invalid amount")
	// ErrInsufficientFunds indicates that the source account balance is lower than the amount.
	ErrInsufficientFunds = errors.New("insufficient funds")
	// ErrRecordNotFound indicates that the transfer record is not found.
	ErrRecordNotFound = errors.New("transfer record not found")
)

// TransferStatus is the state of a transfer record.
type TransferStatus string

// Transfer record statuses. Every status except StatusPending is terminal.
const (
	StatusPending                 TransferStatus = "PENDING"
	StatusSuccess                 TransferStatus = "SUCCESS"
	StatusFailedInsufficientFunds TransferStatus = "FAILED_INSUFFICIENT_FUNDS"
	StatusFailedAccountNotFound   TransferStatus = "FAILED_ACCOUNT_NOT_FOUND"
	StatusFailedSystemError       TransferStatus = "FAILED_SYSTEM_ERROR"
)

// IsTerminal reports whether s is a final status.
func (s TransferStatus) IsTerminal() bool {
	switch s {
	case StatusSuccess, StatusFailedInsufficientFunds, StatusFailedAccountNotFound, StatusFailedSystemError:
		return true
	}

	return false
}

// Valid reports whether s is a known status.
func (s TransferStatus) Valid() bool {
	return s == StatusPending || s.IsTerminal()
}

// Transfer is the audit record of one transfer attempt.
type Transfer struct {
	ID                int64           `json:"id"`
	FromAccountNumber string          `json:"from_account_number"`
	ToAccountNumber   string          `json:"to_account_number"`
	Amount            decimal.Decimal `json:"amount"` // must be positive
	Status            TransferStatus  `json:"status"`
	CreatedAt         time.Time       `json:"created_at"`
}

// CreateTransferParams is the input data for the transfer.
type CreateTransferParams struct {
	FromAccountNumber string `json:"from_account_number"`
	ToAccountNumber   string `json:"to_account_number"`
	Amount            string `json:"amount"`
}

// TransferTxResult is the result of the transfer.
//
// On business failures only Transfer is set and holds the finalized record.
type TransferTxResult struct {
	Transfer    Transfer `json:"transfer"`
	FromAccount Account  `json:"from_account"`
	ToAccount   Account  `json:"to_account"`
}
