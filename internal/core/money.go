// Package core holds the domain records shared by the stores and the
// analytical engine, together with money parsing helpers.
//
// All monetary values are decimal.Decimal so that invoice totals and
// revenue roll-ups stay exact at cent level; binary floating point is
// reserved for counts and deviations.
package core

import (
	"strings"

	"github.com/shopspring/decimal"
)

// PriceFromCents converts an integer cent count into an exact decimal
// price. The tabular input stores unit prices as cents (74999 -> 749.99).
func PriceFromCents(cents int64) decimal.Decimal {
	return decimal.New(cents, -2)
}

// ParseCents parses a raw cents column ("74999") into a decimal price.
// Returns an error for empty strings, signs, or non-digit characters.
func ParseCents(s string) (decimal.Decimal, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return decimal.Zero, ErrInvalidAmount
	}
	for _, r := range s {
		if r < '0' || r > '9' {
			return decimal.Zero, ErrInvalidAmount
		}
	}
	d, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Zero, ErrInvalidAmount
	}
	return d.Shift(-2), nil
}

// ParsePrice parses a decimal price string, accepting both dot (12.34)
// and comma (12,34) separators. Negative prices are rejected.
func ParsePrice(s string) (decimal.Decimal, error) {
	s = strings.TrimSpace(strings.ReplaceAll(s, ",", "."))
	if s == "" || strings.HasPrefix(s, "+") || strings.HasPrefix(s, "-") {
		return decimal.Zero, ErrInvalidAmount
	}
	d, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Zero, ErrInvalidAmount
	}
	if d.IsNegative() {
		return decimal.Zero, ErrInvalidAmount
	}
	return d, nil
}

// FormatPrice renders a price with exactly two fractional digits.
func FormatPrice(d decimal.Decimal) string {
	return d.StringFixed(2)
}
