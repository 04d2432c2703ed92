package models

import (
	"fmt"

	"github.com/Rhymond/go-money"
	"github.com/shopspring/decimal"
)

// Money represents a monetary value with currency, used when presenting
// engine results. The engine itself computes on bare decimals.
type Money struct {
	Amount   decimal.Decimal `json:"amount" yaml:"amount"`
	Currency string          `json:"currency" yaml:"currency"`
}

// NewMoney creates a new Money instance with the given amount and currency.
// An empty currency falls back to DefaultCurrency.
func NewMoney(amount decimal.Decimal, currency string) Money {
	if currency == "" {
		currency = DefaultCurrency
	}
	return Money{
		Amount:   amount,
		Currency: currency,
	}
}

// String renders "<code> <amount>" with two decimals, e.g. "INR 1060.00".
func (m Money) String() string {
	return fmt.Sprintf("%s %s", m.Currency, m.Amount.StringFixed(2))
}

// Display renders the amount with the currency's own symbol, separators
// and minor-unit precision, e.g. "₹1,060.00" or "¥1,060".
func (m Money) Display() string {
	cur := m.currency()
	minor := m.Amount.Shift(int32(cur.Fraction)).Round(0)
	return cur.Formatter().Format(minor.IntPart())
}

// currency resolves the go-money currency; unknown codes get go-money's
// generic two-decimal currency.
func (m Money) currency() money.Currency {
	return *money.New(0, m.Currency).Currency()
}
