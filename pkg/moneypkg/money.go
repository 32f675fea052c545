// Package moneypkg provides fixed-point money parsing and validation shared by apps.
package moneypkg

import (
	"github.com/go-playground/validator/v10"
	"github.com/shopspring/decimal"
)

// Scale is the number of fractional digits every money value is kept with.
const Scale = 2

// Parse parses s as a decimal that is representable with Scale fractional digits.
func Parse(s string) (decimal.Decimal, bool) {
	d, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Zero, false
	}

	if !d.Equal(d.Truncate(Scale)) {
		return decimal.Zero, false
	}

	return d, true
}

// ValidAmount validates whether the field is a strictly positive money amount.
var ValidAmount validator.Func = func(fl validator.FieldLevel) bool {
	if s, ok := fl.Field().Interface().(string); ok {
		d, ok := Parse(s)
		return ok && d.IsPositive()
	}

	return false
}

// ValidBalance validates whether the field is a non-negative money amount.
var ValidBalance validator.Func = func(fl validator.FieldLevel) bool {
	if s, ok := fl.Field().Interface().(string); ok {
		d, ok := Parse(s)
		return ok && !d.IsNegative()
	}

	return false
}
