package services

import (
	portsrepo "github.com/bakemate/recipe_invoice_app/internal/core/ports/repositories"
	portssvc "github.com/bakemate/recipe_invoice_app/internal/core/ports/services"
)

// NewContainer creates the service container with properly initialized
// dependencies.
func NewContainer(invoiceRepo portsrepo.InvoiceRepositoryFacade, exporter portssvc.DocumentExporter) *portssvc.ServiceContainer {
	return &portssvc.ServiceContainer{
		Invoice:  NewInvoiceService(invoiceRepo, exporter),
		Currency: NewCurrencyService(),
	}
}

// Compile-time interface checks.
var (
	_ portssvc.InvoiceSvcFacade  = (*invoiceService)(nil)
	_ portssvc.CurrencySvcFacade = (*currencyService)(nil)
)
