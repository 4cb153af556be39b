// Package currency converts amounts between currency codes using a static
// rate table. Rates are relative to one implicit base unit (USD = 1); there
// is no live-rate fetching.
package currency

import (
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/abditahlilabdinur71-create/Smart-Expense/internal/core"
)

// rates maps currency code to its exchange rate against the base unit.
var rates = map[string]decimal.Decimal{
	"USD": decimal.NewFromInt(1),
	"EUR": decimal.RequireFromString("0.9"),
	"GBP": decimal.RequireFromString("0.79"),
	"JPY": decimal.RequireFromString("149.5"),
	"CAD": decimal.RequireFromString("1.36"),
	"AUD": decimal.RequireFromString("1.52"),
	"INR": decimal.RequireFromString("83.1"),
	"KES": decimal.RequireFromString("129.0"),
}

// Supported returns the known currency codes in no particular order.
func Supported() []string {
	out := make([]string, 0, len(rates))
	for code := range rates {
		out = append(out, code)
	}
	return out
}

// IsSupported reports whether a rate exists for the code.
func IsSupported(code string) bool {
	_, ok := rates[code]
	return ok
}

// Convert converts an amount from one currency to another:
// amount / rate[from] * rate[to], rounded half-up to cents.
// Converting a code to itself returns the amount unchanged.
func Convert(amount core.Money, from, to string) (core.Money, error) {
	if from == to {
		return amount, nil
	}
	fromRate, ok := rates[from]
	if !ok {
		return core.Money{}, fmt.Errorf("unknown currency code %q", from)
	}
	toRate, ok := rates[to]
	if !ok {
		return core.Money{}, fmt.Errorf("unknown currency code %q", to)
	}

	cents := decimal.New(amount.Cents, 0).
		Div(fromRate).
		Mul(toRate).
		Round(0)

	return core.Money{Cents: cents.IntPart()}, nil
}
