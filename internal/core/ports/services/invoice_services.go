package services

import (
	"context"

	"github.com/bakemate/recipe_invoice_app/internal/core/domain"
	"github.com/bakemate/recipe_invoice_app/internal/core/invoicing/render"
	"github.com/bakemate/recipe_invoice_app/internal/dto"
)

// InvoiceReaderSvc defines read operations for invoices.
type InvoiceReaderSvc interface {
	// GetInvoice retrieves one invoice owned by ownerID.
	GetInvoice(ctx context.Context, ownerID, invoiceID string) (*domain.Invoice, error)

	// ListInvoices retrieves all invoices owned by ownerID, newest first.
	ListInvoices(ctx context.Context, ownerID string) ([]domain.Invoice, error)
}

// InvoiceWriterSvc defines the draft-editing operations. Every mutation
// leaves the stored invoice with totals consistent with its line items.
type InvoiceWriterSvc interface {
	// CreateInvoice creates a new draft with one empty line item.
	CreateInvoice(ctx context.Context, ownerID string, req dto.CreateInvoiceRequest) (*domain.Invoice, error)

	// UpdateInvoice applies a partial header/rate/currency update.
	UpdateInvoice(ctx context.Context, ownerID, invoiceID string, req dto.UpdateInvoiceRequest) (*domain.Invoice, error)

	// AddLineItem appends a default line item and returns the updated invoice.
	AddLineItem(ctx context.Context, ownerID, invoiceID string) (*domain.Invoice, error)

	// UpdateLineItem applies a partial update to the line item at index.
	UpdateLineItem(ctx context.Context, ownerID, invoiceID string, index int, req dto.UpdateLineItemRequest) (*domain.Invoice, error)

	// RemoveLineItem removes the line item at index. The last remaining item
	// cannot be removed.
	RemoveLineItem(ctx context.Context, ownerID, invoiceID string, index int) (*domain.Invoice, error)

	// UpdateStatus transitions the invoice lifecycle status.
	UpdateStatus(ctx context.Context, ownerID, invoiceID string, status domain.InvoiceStatus) (*domain.Invoice, error)

	// DeleteInvoice removes an invoice.
	DeleteInvoice(ctx context.Context, ownerID, invoiceID string) error
}

// InvoiceExporterSvc produces the PDF artifact for an invoice.
type InvoiceExporterSvc interface {
	// ExportPDF renders the invoice and exports it to a single A4 page.
	ExportPDF(ctx context.Context, ownerID, invoiceID string) ([]byte, error)
}

// InvoiceSvcFacade combines all invoice-related service interfaces.
type InvoiceSvcFacade interface {
	InvoiceReaderSvc
	InvoiceWriterSvc
	InvoiceExporterSvc
}

// DocumentExporter is the outbound port to the document export backend.
type DocumentExporter interface {
	// Export lays the document onto a page of the given size in points.
	Export(ctx context.Context, doc *render.Document, widthPt, heightPt float64) ([]byte, error)
}
