package invoicing

import (
	"strings"

	"github.com/shopspring/decimal"

	"github.com/bakemate/recipe_invoice_app/internal/apperrors"
)

// ParseAmount normalizes free-form numeric input into a decimal. Blank input
// means zero. Every mutation entry point that accepts user text goes through
// this one function so coercion rules cannot drift between fields.
func ParseAmount(field, input string) (decimal.Decimal, error) {
	trimmed := strings.TrimSpace(input)
	if trimmed == "" {
		return decimal.Zero, nil
	}
	value, err := decimal.NewFromString(trimmed)
	if err != nil {
		return decimal.Zero, apperrors.NewValidationError(field, "must be a decimal number")
	}
	return value, nil
}
