package models

import (
	"encoding/json"
	"fmt"

	"github.com/shopspring/decimal"
)

// Money represents a monetary value with currency
type Money struct {
	Amount   decimal.Decimal `json:"amount" yaml:"amount"`
	Currency string          `json:"currency" yaml:"currency"`
}

// NewMoney creates a new Money instance with the given amount and currency
func NewMoney(amount decimal.Decimal, currency string) Money {
	return Money{
		Amount:   amount,
		Currency: currency,
	}
}

// ZeroMoney returns a Money instance with zero amount in the given currency
func ZeroMoney(currency string) Money {
	return Money{
		Amount:   decimal.Zero,
		Currency: currency,
	}
}

// IsZero returns true if the amount is zero
func (m Money) IsZero() bool {
	return m.Amount.IsZero()
}

// Add adds another Money value to this one.
// Returns an error if currencies don't match
func (m Money) Add(other Money) (Money, error) {
	if m.Currency != other.Currency {
		return Money{}, fmt.Errorf("cannot add different currencies: %s and %s", m.Currency, other.Currency)
	}
	return Money{
		Amount:   m.Amount.Add(other.Amount),
		Currency: m.Currency,
	}, nil
}

// String returns a string representation of the money value
func (m Money) String() string {
	if m.Currency == "" {
		return m.Amount.StringFixed(2)
	}
	return fmt.Sprintf("%s %s", m.Amount.StringFixed(2), m.Currency)
}

// MarshalYAML renders the amount with two decimals so YAML summaries do not
// expose decimal internals.
func (m Money) MarshalYAML() (interface{}, error) {
	return struct {
		Amount   string `yaml:"amount"`
		Currency string `yaml:"currency"`
	}{
		Amount:   m.Amount.StringFixed(2),
		Currency: m.Currency,
	}, nil
}

// MarshalJSON renders the amount as a fixed two-decimal string.
func (m Money) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		Amount   string `json:"amount"`
		Currency string `json:"currency"`
	}{
		Amount:   m.Amount.StringFixed(2),
		Currency: m.Currency,
	})
}
