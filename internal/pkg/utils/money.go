package utils

import "github.com/shopspring/decimal"

var hundred = decimal.NewFromInt(100)

// ToCents converts a monetary amount to its integer minor unit, rounding half
// away from zero.
func ToCents(amount decimal.Decimal) int64 {
	return amount.Mul(hundred).Round(0).IntPart()
}
