package currencies_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bakemate/recipe_invoice_app/internal/apperrors"
	"github.com/bakemate/recipe_invoice_app/internal/core/currencies"
)

func TestGet(t *testing.T) {
	usd, err := currencies.Get("USD")
	require.NoError(t, err)
	assert.Equal(t, "$", usd.Symbol)
	assert.Equal(t, 2, usd.Precision)

	_, err = currencies.Get("usd")
	assert.ErrorIs(t, err, apperrors.ErrNotFound, "codes are case sensitive")

	_, err = currencies.Get("XXX")
	assert.ErrorIs(t, err, apperrors.ErrNotFound)
}

func TestIsSupported(t *testing.T) {
	assert.True(t, currencies.IsSupported("EUR"))
	assert.False(t, currencies.IsSupported(""))
}

func TestListIsSorted(t *testing.T) {
	list := currencies.List()
	require.NotEmpty(t, list)
	for i := 1; i < len(list); i++ {
		assert.Less(t, list[i-1].CurrencyCode, list[i].CurrencyCode)
	}
}
