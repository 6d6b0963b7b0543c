package dto

import (
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"

	"github.com/bakemate/recipe_invoice_app/internal/core/currencies"
)

// RegisterValidators installs custom binding validators on gin's validator
// engine. Must be called once at startup before routes are served.
func RegisterValidators() {
	if v, ok := binding.Validator.Engine().(*validator.Validate); ok {
		_ = v.RegisterValidation("currency", validateCurrency)
	}
}

// validateCurrency checks a field against the static currency table.
func validateCurrency(fl validator.FieldLevel) bool {
	return currencies.IsSupported(fl.Field().String())
}
