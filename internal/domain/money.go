package domain

import (
	"github.com/go-petr/pet-ledger/pkg/moneypkg"
	"github.com/shopspring/decimal"
)

// ParseAmount parses a transfer amount. It must be strictly positive and fit moneypkg.Scale.
func ParseAmount(s string) (decimal.Decimal, error) {
	d, ok := moneypkg.Parse(s)
	if !ok || !d.IsPositive() {
		return decimal.Zero, ErrInvalidAmount
	}

	return d, nil
}

// ParseBalance parses an opening balance. Zero is allowed, negative values are not.
func ParseBalance(s string) (decimal.Decimal, error) {
	d, ok := moneypkg.Parse(s)
	if !ok || d.IsNegative() {
		return decimal.Zero, ErrInvalidAmount
	}

	return d, nil
}
