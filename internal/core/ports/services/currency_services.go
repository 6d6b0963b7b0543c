package services

import (
	"context"

	"github.com/bakemate/recipe_invoice_app/internal/core/domain"
)

// CurrencyReaderSvc defines read operations over the static currency table.
type CurrencyReaderSvc interface {
	// GetCurrencyByCode retrieves a specific currency by its code.
	GetCurrencyByCode(ctx context.Context, currencyCode string) (*domain.Currency, error)

	// ListCurrencies retrieves all supported currencies.
	ListCurrencies(ctx context.Context) ([]domain.Currency, error)
}

// CurrencySvcFacade is the full currency service surface. The currency table
// is static, so there is no writer side.
type CurrencySvcFacade interface {
	CurrencyReaderSvc
}
