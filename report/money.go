// Package report renders journal data for people: currency amounts,
// markdown tables for days and months, and terminal output.
package report

import (
	"github.com/Rhymond/go-money"
	"github.com/shopspring/decimal"
)

// Money formats amount in the currency's display form, e.g. -$40.00.
// Unknown currency codes fall back to "<amount> <code>".
func Money(amount decimal.Decimal, currency string) string {
	cur := money.GetCurrency(currency)
	if cur == nil {
		return amount.StringFixed(2) + " " + currency
	}
	minor := amount.Shift(int32(cur.Fraction)).Round(0)
	return money.New(minor.IntPart(), currency).Display()
}

// SignedMoney is Money with a leading + on gains.
func SignedMoney(amount decimal.Decimal, currency string) string {
	if amount.IsPositive() {
		return "+" + Money(amount, currency)
	}
	return Money(amount, currency)
}
