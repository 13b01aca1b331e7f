package model

import (
	"strings"

	"github.com/shopspring/decimal"
)

// ParseAmount turns user input into a non-negative amount.
// Input that is not a number, or is negative, becomes zero.
func ParseAmount(s string) decimal.Decimal {
	s = strings.TrimSpace(s)
	if s == "" {
		return decimal.Zero
	}
	d, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Zero
	}
	return NormalizeAmount(d)
}

// NormalizeAmount clamps negative amounts to zero.
func NormalizeAmount(d decimal.Decimal) decimal.Decimal {
	if d.IsNegative() {
		return decimal.Zero
	}
	return d
}
