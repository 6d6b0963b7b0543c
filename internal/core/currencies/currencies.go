// Package currencies holds the static table of currencies the invoicing
// engine can format. Changing an invoice's currency only changes display
// formatting; no FX conversion is performed anywhere.
package currencies

import (
	"sort"

	"github.com/bakemate/recipe_invoice_app/internal/apperrors"
	"github.com/bakemate/recipe_invoice_app/internal/core/domain"
)

// All supported currencies use 2 minor-unit digits.
var table = map[string]domain.Currency{
	"USD": {CurrencyCode: "USD", Symbol: "$", Name: "US Dollar", Precision: 2},
	"EUR": {CurrencyCode: "EUR", Symbol: "€", Name: "Euro", Precision: 2},
	"GBP": {CurrencyCode: "GBP", Symbol: "£", Name: "British Pound", Precision: 2},
	"CAD": {CurrencyCode: "CAD", Symbol: "CA$", Name: "Canadian Dollar", Precision: 2},
	"AUD": {CurrencyCode: "AUD", Symbol: "A$", Name: "Australian Dollar", Precision: 2},
	"INR": {CurrencyCode: "INR", Symbol: "₹", Name: "Indian Rupee", Precision: 2},
}

// Get returns the currency for the given code, or ErrNotFound.
func Get(code string) (domain.Currency, error) {
	c, ok := table[code]
	if !ok {
		return domain.Currency{}, apperrors.ErrNotFound
	}
	return c, nil
}

// IsSupported reports whether code is in the currency table.
func IsSupported(code string) bool {
	_, ok := table[code]
	return ok
}

// List returns all supported currencies ordered by code.
func List() []domain.Currency {
	out := make([]domain.Currency, 0, len(table))
	for _, c := range table {
		out = append(out, c)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CurrencyCode < out[j].CurrencyCode })
	return out
}
