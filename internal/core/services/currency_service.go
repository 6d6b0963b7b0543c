package services

import (
	"context"

	"github.com/bakemate/recipe_invoice_app/internal/core/currencies"
	"github.com/bakemate/recipe_invoice_app/internal/core/domain"
	portssvc "github.com/bakemate/recipe_invoice_app/internal/core/ports/services"
)

// currencyService serves the static currency table. The table lives in code,
// so reads never touch storage; the context parameter is kept for interface
// symmetry with the other services.
type currencyService struct{}

// NewCurrencyService creates the currency service.
func NewCurrencyService() portssvc.CurrencySvcFacade {
	return &currencyService{}
}

func (s *currencyService) GetCurrencyByCode(_ context.Context, currencyCode string) (*domain.Currency, error) {
	currency, err := currencies.Get(currencyCode)
	if err != nil {
		return nil, err
	}
	return &currency, nil
}

func (s *currencyService) ListCurrencies(_ context.Context) ([]domain.Currency, error) {
	return currencies.List(), nil
}
