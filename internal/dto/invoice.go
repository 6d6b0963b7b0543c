package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/bakemate/recipe_invoice_app/internal/apperrors"
	"github.com/bakemate/recipe_invoice_app/internal/core/domain"
	"github.com/bakemate/recipe_invoice_app/internal/core/invoicing"
)

// PartyDTO mirrors domain.Party on the API boundary.
type PartyDTO struct {
	Name    string `json:"name" binding:"required"`
	Company string `json:"company,omitempty"`
	Address string `json:"address,omitempty"`
	Phone   string `json:"phone,omitempty"`
	Email   string `json:"email,omitempty" binding:"omitempty,email"`
}

// CreateInvoiceRequest defines the optional seed data for a new draft. A
// draft is valid with none of these set; it starts with one empty line item.
type CreateInvoiceRequest struct {
	InvoiceNumber string     `json:"invoiceNumber"`
	IssueDate     *time.Time `json:"issueDate"`
	CurrencyCode  string     `json:"currencyCode" binding:"omitempty,currency"`
	Sender        *PartyDTO  `json:"sender"`
	Recipient     *PartyDTO  `json:"recipient"`
	Notes         string     `json:"notes"`
}

// UpdateInvoiceRequest is a partial update of header fields and rates. Nil
// fields are left untouched.
type UpdateInvoiceRequest struct {
	InvoiceNumber  *string          `json:"invoiceNumber"`
	IssueDate      *time.Time       `json:"issueDate"`
	DueDate        *time.Time       `json:"dueDate"`
	ClearDueDate   bool             `json:"clearDueDate"`
	CurrencyCode   *string          `json:"currencyCode" binding:"omitempty,currency"`
	TaxRate        *decimal.Decimal `json:"taxRate"`
	DiscountAmount *decimal.Decimal `json:"discountAmount"`
	Sender         *PartyDTO        `json:"sender"`
	Recipient      *PartyDTO        `json:"recipient"`
	Notes          *string          `json:"notes"`
}

// UpdateLineItemRequest is a partial update of one line item.
type UpdateLineItemRequest struct {
	Description *string          `json:"description"`
	Quantity    *decimal.Decimal `json:"quantity"`
	UnitPrice   *decimal.Decimal `json:"unitPrice"`
}

// UpdateStatusRequest transitions the invoice lifecycle status.
type UpdateStatusRequest struct {
	Status string `json:"status" binding:"required,oneof=DRAFT SENT PAID OVERDUE CANCELLED"`
}

// LineItemResponse is one rendered line item row.
type LineItemResponse struct {
	Description string          `json:"description"`
	Quantity    decimal.Decimal `json:"quantity"`
	UnitPrice   decimal.Decimal `json:"unitPrice"`
	TotalPrice  decimal.Decimal `json:"totalPrice"`
}

// TotalsResponse carries the derived aggregates rounded to the display
// precision. Internal computation is exact; this is the presentation edge.
type TotalsResponse struct {
	Subtotal       decimal.Decimal `json:"subtotal"`
	TaxAmount      decimal.Decimal `json:"taxAmount"`
	DiscountAmount decimal.Decimal `json:"discountAmount"`
	GrandTotal     decimal.Decimal `json:"grandTotal"`
}

// InvoiceResponse defines the data returned for an invoice.
type InvoiceResponse struct {
	InvoiceID      string                     `json:"invoiceID"`
	OwnerID        string                     `json:"ownerID"`
	InvoiceNumber  string                     `json:"invoiceNumber"`
	Status         string                     `json:"status"`
	IssueDate      time.Time                  `json:"issueDate"`
	DueDate        *time.Time                 `json:"dueDate,omitempty"`
	CurrencyCode   string                     `json:"currencyCode"`
	Sender         PartyDTO                   `json:"sender"`
	Recipient      PartyDTO                   `json:"recipient"`
	LineItems      []LineItemResponse         `json:"lineItems"`
	TaxRate        decimal.Decimal            `json:"taxRate"`
	DiscountAmount decimal.Decimal            `json:"discountAmount"`
	Totals         TotalsResponse             `json:"totals"`
	Notes          string                     `json:"notes,omitempty"`
	Warnings       []apperrors.FieldViolation `json:"warnings,omitempty"`
	CreatedAt      time.Time                  `json:"createdAt"`
	LastUpdatedAt  time.Time                  `json:"lastUpdatedAt"`
}

// ToPartyDTO converts a domain.Party to its DTO.
func ToPartyDTO(p domain.Party) PartyDTO {
	return PartyDTO{Name: p.Name, Company: p.Company, Address: p.Address, Phone: p.Phone, Email: p.Email}
}

// ToParty converts a PartyDTO to the domain type.
func ToParty(p PartyDTO) domain.Party {
	return domain.Party{Name: p.Name, Company: p.Company, Address: p.Address, Phone: p.Phone, Email: p.Email}
}

// ToInvoiceResponse converts a domain.Invoice to its response DTO, rounding
// the aggregates to display precision and attaching validation warnings.
func ToInvoiceResponse(inv *domain.Invoice, warnings []apperrors.FieldViolation) InvoiceResponse {
	items := make([]LineItemResponse, len(inv.LineItems))
	for i, item := range inv.LineItems {
		items[i] = LineItemResponse{
			Description: item.Description,
			Quantity:    item.Quantity,
			UnitPrice:   item.UnitPrice,
			TotalPrice:  item.TotalPrice,
		}
	}
	return InvoiceResponse{
		InvoiceID:      inv.InvoiceID,
		OwnerID:        inv.OwnerID,
		InvoiceNumber:  inv.InvoiceNumber,
		Status:         string(inv.Status),
		IssueDate:      inv.IssueDate,
		DueDate:        inv.DueDate,
		CurrencyCode:   inv.CurrencyCode,
		Sender:         ToPartyDTO(inv.Sender),
		Recipient:      ToPartyDTO(inv.Recipient),
		LineItems:      items,
		TaxRate:        inv.TaxRate,
		DiscountAmount: inv.DiscountAmount,
		Totals: TotalsResponse{
			Subtotal:       inv.Totals.Subtotal.Round(invoicing.DisplayPrecision),
			TaxAmount:      inv.Totals.TaxAmount.Round(invoicing.DisplayPrecision),
			DiscountAmount: inv.Totals.DiscountAmount.Round(invoicing.DisplayPrecision),
			GrandTotal:     inv.Totals.GrandTotal.Round(invoicing.DisplayPrecision),
		},
		Notes:         inv.Notes,
		Warnings:      warnings,
		CreatedAt:     inv.CreatedAt,
		LastUpdatedAt: inv.LastUpdatedAt,
	}
}

// ToInvoiceResponses converts a slice of invoices, without warnings.
func ToInvoiceResponses(invoices []domain.Invoice) []InvoiceResponse {
	responses := make([]InvoiceResponse, len(invoices))
	for i := range invoices {
		responses[i] = ToInvoiceResponse(&invoices[i], nil)
	}
	return responses
}
