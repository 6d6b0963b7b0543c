package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// InvoiceStatus indicates the lifecycle state of an invoice.
type InvoiceStatus string

const (
	StatusDraft     InvoiceStatus = "DRAFT"
	StatusSent      InvoiceStatus = "SENT"
	StatusPaid      InvoiceStatus = "PAID"
	StatusOverdue   InvoiceStatus = "OVERDUE"
	StatusCancelled InvoiceStatus = "CANCELLED"
)

// IsValid reports whether s is one of the known invoice statuses.
func (s InvoiceStatus) IsValid() bool {
	switch s {
	case StatusDraft, StatusSent, StatusPaid, StatusOverdue, StatusCancelled:
		return true
	}
	return false
}

// LineItem represents a single billable row on an invoice.
// TotalPrice is derived from Quantity and UnitPrice and is never set directly.
type LineItem struct {
	Description string          `json:"description"`
	Quantity    decimal.Decimal `json:"quantity"`  // must be > 0
	UnitPrice   decimal.Decimal `json:"unitPrice"` // must be >= 0
	TotalPrice  decimal.Decimal `json:"totalPrice"`
}

// Party identifies either side of an invoice. Name is required for the
// recipient; everything else is optional free-form contact detail.
type Party struct {
	Name    string `json:"name"`
	Company string `json:"company,omitempty"`
	Address string `json:"address,omitempty"`
	Phone   string `json:"phone,omitempty"`
	Email   string `json:"email,omitempty"`
}

// InvoiceTotals holds the derived monetary aggregates of an invoice.
// These are recomputed from the line items and rates, never stored as
// independent inputs.
type InvoiceTotals struct {
	Subtotal       decimal.Decimal `json:"subtotal"`
	TaxAmount      decimal.Decimal `json:"taxAmount"`
	DiscountAmount decimal.Decimal `json:"discountAmount"`
	GrandTotal     decimal.Decimal `json:"grandTotal"`
}

// Invoice is a complete invoice record: header, line items and derived totals.
type Invoice struct {
	InvoiceID     string          `json:"invoiceID"` // Primary key (UUID)
	OwnerID       string          `json:"ownerID"`   // Opaque owner reference supplied by the caller
	InvoiceNumber string          `json:"invoiceNumber"`
	Status        InvoiceStatus   `json:"status"`
	IssueDate     time.Time       `json:"issueDate"`
	DueDate       *time.Time      `json:"dueDate,omitempty"` // must be >= IssueDate when present
	CurrencyCode  string          `json:"currencyCode"`
	Sender        Party           `json:"sender"`
	Recipient     Party           `json:"recipient"`
	LineItems     []LineItem      `json:"lineItems"`
	TaxRate       decimal.Decimal `json:"taxRate"`        // percentage, >= 0
	DiscountAmount decimal.Decimal `json:"discountAmount"` // absolute amount, >= 0
	Totals        InvoiceTotals   `json:"totals"`
	Notes         string          `json:"notes,omitempty"`
	AuditFields
}
