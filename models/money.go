package models

import (
	"fmt"

	"github.com/shopspring/decimal"
)

// Money is a currency amount in USD, serialized as a plain JSON number
type Money struct {
	decimal.Decimal
}

// NewMoney parses a decimal string such as "25.99"
func NewMoney(s string) (Money, error) {
	d, err := decimal.NewFromString(s)
	if err != nil {
		return Money{}, fmt.Errorf("failed to parse amount %q: %w", s, err)
	}
	return Money{Decimal: d}, nil
}

// MustMoney is NewMoney for literals known to be valid
func MustMoney(s string) Money {
	return Money{Decimal: decimal.RequireFromString(s)}
}

// MoneyFromDecimal wraps an already computed amount
func MoneyFromDecimal(d decimal.Decimal) Money {
	return Money{Decimal: d}
}

// MarshalJSON writes the amount unquoted so the browser save script can send it back as a number
func (m Money) MarshalJSON() ([]byte, error) {
	return []byte(m.Decimal.String()), nil
}

// UnmarshalJSON accepts both 25.99 and "25.99"
func (m *Money) UnmarshalJSON(b []byte) error {
	return m.Decimal.UnmarshalJSON(b)
}

// Fixed renders the amount with two decimals for form inputs
func (m Money) Fixed() string {
	return m.Decimal.StringFixed(2)
}
