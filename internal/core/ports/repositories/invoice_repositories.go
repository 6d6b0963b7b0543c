package repositories

import (
	"context"

	"github.com/bakemate/recipe_invoice_app/internal/core/domain"
)

// InvoiceReader defines read operations for invoice records.
type InvoiceReader interface {
	// FindInvoiceByID retrieves one invoice with its line items.
	FindInvoiceByID(ctx context.Context, invoiceID string) (*domain.Invoice, error)

	// ListInvoicesByOwner retrieves all invoices belonging to an owner,
	// newest first.
	ListInvoicesByOwner(ctx context.Context, ownerID string) ([]domain.Invoice, error)
}

// InvoiceWriter defines write operations for invoice records. Saving an
// invoice persists its header, line items and derived totals atomically.
type InvoiceWriter interface {
	// SaveInvoice inserts a new invoice record.
	SaveInvoice(ctx context.Context, invoice domain.Invoice) error

	// UpdateInvoice replaces an existing invoice record's header, line items
	// and totals.
	UpdateInvoice(ctx context.Context, invoice domain.Invoice) error

	// DeleteInvoice removes an invoice and its line items.
	DeleteInvoice(ctx context.Context, invoiceID string) error
}

// InvoiceRepositoryFacade combines all invoice-related repository interfaces.
type InvoiceRepositoryFacade interface {
	InvoiceReader
	InvoiceWriter
}

// InvoiceRepositoryWithTx extends InvoiceRepositoryFacade with transaction
// capabilities.
type InvoiceRepositoryWithTx interface {
	InvoiceRepositoryFacade
	TransactionManager
}
