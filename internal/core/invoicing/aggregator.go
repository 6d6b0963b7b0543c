// Package invoicing implements the invoice computation engine: an owned-state
// draft whose derived totals are recomputed by every mutator, so a reader can
// never observe stale aggregates between a mutation and the next read.
package invoicing

import (
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/bakemate/recipe_invoice_app/internal/apperrors"
	"github.com/bakemate/recipe_invoice_app/internal/core/currencies"
	"github.com/bakemate/recipe_invoice_app/internal/core/domain"
)

// DisplayPrecision is the minor-unit precision shared by all supported
// currencies. Rounding happens only at the presentation boundary; internal
// aggregation always runs on exact decimals so penny-level drift cannot
// accumulate across line items.
const DisplayPrecision = 2

// Draft wraps an invoice under edit. It is owned by a single editing session
// and is not safe for concurrent use.
type Draft struct {
	inv domain.Invoice
}

// NewDraft creates a draft invoice with one empty line item, as presented to
// the user before any input.
func NewDraft(ownerID string) *Draft {
	d := &Draft{
		inv: domain.Invoice{
			OwnerID:        ownerID,
			Status:         domain.StatusDraft,
			IssueDate:      time.Now().UTC().Truncate(24 * time.Hour),
			CurrencyCode:   "USD",
			LineItems:      []domain.LineItem{emptyLineItem()},
			TaxRate:        decimal.Zero,
			DiscountAmount: decimal.Zero,
		},
	}
	d.recompute()
	return d
}

// FromInvoice wraps an existing invoice record for further editing. Derived
// totals are recomputed immediately so stored values can never shadow the
// line items. An invoice with no line items is rejected.
func FromInvoice(inv domain.Invoice) (*Draft, error) {
	if len(inv.LineItems) == 0 {
		return nil, apperrors.NewValidationError("lineItems", "invoice must have at least one line item")
	}
	inv.LineItems = append([]domain.LineItem(nil), inv.LineItems...)
	d := &Draft{inv: inv}
	d.recompute()
	return d, nil
}

func emptyLineItem() domain.LineItem {
	return domain.LineItem{
		Description: "",
		Quantity:    decimal.NewFromInt(1),
		UnitPrice:   decimal.Zero,
	}
}

// LineItemUpdate is a partial update of one line item. Nil fields are left
// untouched. The update is atomic: if any offered field is invalid, nothing
// is applied.
type LineItemUpdate struct {
	Description *string
	Quantity    *decimal.Decimal
	UnitPrice   *decimal.Decimal
}

// HeaderUpdate is a partial update of invoice header fields.
type HeaderUpdate struct {
	InvoiceNumber *string
	IssueDate     *time.Time
	DueDate       *time.Time
	ClearDueDate  bool
	Sender        *domain.Party
	Recipient     *domain.Party
	Notes         *string
}

// AddLineItem appends a line item with default quantity 1 and unit price 0.
// It always succeeds and returns the new item's index.
func (d *Draft) AddLineItem() int {
	d.inv.LineItems = append(d.inv.LineItems, emptyLineItem())
	d.recompute()
	return len(d.inv.LineItems) - 1
}

// RemoveLineItem removes the item at index. Removing the last remaining item
// is rejected: an invoice always has at least one line item.
func (d *Draft) RemoveLineItem(index int) error {
	if index < 0 || index >= len(d.inv.LineItems) {
		return apperrors.NewValidationError("index", "line item index out of range")
	}
	if len(d.inv.LineItems) == 1 {
		return apperrors.NewValidationError("lineItems", "invoice must keep at least one line item")
	}
	d.inv.LineItems = append(d.inv.LineItems[:index], d.inv.LineItems[index+1:]...)
	d.recompute()
	return nil
}

// UpdateLineItem applies a partial update to the item at index, validating
// every offered field first. On failure the previous values are unchanged.
func (d *Draft) UpdateLineItem(index int, upd LineItemUpdate) error {
	if index < 0 || index >= len(d.inv.LineItems) {
		return apperrors.NewValidationError("index", "line item index out of range")
	}

	var violations []apperrors.FieldViolation
	if upd.Description != nil && strings.TrimSpace(*upd.Description) == "" {
		violations = append(violations, apperrors.FieldViolation{Field: "description", Reason: "must not be empty"})
	}
	if upd.Quantity != nil && !upd.Quantity.IsPositive() {
		violations = append(violations, apperrors.FieldViolation{Field: "quantity", Reason: "must be greater than zero"})
	}
	if upd.UnitPrice != nil && upd.UnitPrice.IsNegative() {
		violations = append(violations, apperrors.FieldViolation{Field: "unitPrice", Reason: "must not be negative"})
	}
	if len(violations) > 0 {
		return &apperrors.ValidationError{Violations: violations}
	}

	item := &d.inv.LineItems[index]
	if upd.Description != nil {
		item.Description = strings.TrimSpace(*upd.Description)
	}
	if upd.Quantity != nil {
		item.Quantity = *upd.Quantity
	}
	if upd.UnitPrice != nil {
		item.UnitPrice = *upd.UnitPrice
	}
	d.recompute()
	return nil
}

// SetTaxRate sets the tax percentage applied to the subtotal.
func (d *Draft) SetTaxRate(rate decimal.Decimal) error {
	if rate.IsNegative() {
		return apperrors.NewValidationError("taxRate", "must not be negative")
	}
	d.inv.TaxRate = rate
	d.recompute()
	return nil
}

// SetDiscountAmount sets the absolute discount deducted from the total.
func (d *Draft) SetDiscountAmount(amount decimal.Decimal) error {
	if amount.IsNegative() {
		return apperrors.NewValidationError("discountAmount", "must not be negative")
	}
	d.inv.DiscountAmount = amount
	d.recompute()
	return nil
}

// SetCurrency changes the invoice currency. Amounts are not converted; only
// display formatting changes.
func (d *Draft) SetCurrency(code string) error {
	if !currencies.IsSupported(code) {
		return apperrors.NewValidationError("currencyCode", "unsupported currency code")
	}
	d.inv.CurrencyCode = code
	d.recompute()
	return nil
}

// SetHeader applies a partial header update. The update is atomic.
func (d *Draft) SetHeader(upd HeaderUpdate) error {
	var violations []apperrors.FieldViolation

	issue := d.inv.IssueDate
	if upd.IssueDate != nil {
		issue = *upd.IssueDate
	}
	due := d.inv.DueDate
	if upd.ClearDueDate {
		due = nil
	} else if upd.DueDate != nil {
		due = upd.DueDate
	}
	if due != nil && due.Before(issue) {
		violations = append(violations, apperrors.FieldViolation{Field: "dueDate", Reason: "must not be before the issue date"})
	}
	if upd.Recipient != nil && strings.TrimSpace(upd.Recipient.Name) == "" {
		violations = append(violations, apperrors.FieldViolation{Field: "recipient.name", Reason: "must not be empty"})
	}
	if len(violations) > 0 {
		return &apperrors.ValidationError{Violations: violations}
	}

	if upd.InvoiceNumber != nil {
		d.inv.InvoiceNumber = strings.TrimSpace(*upd.InvoiceNumber)
	}
	d.inv.IssueDate = issue
	d.inv.DueDate = due
	if upd.Sender != nil {
		d.inv.Sender = *upd.Sender
	}
	if upd.Recipient != nil {
		d.inv.Recipient = *upd.Recipient
	}
	if upd.Notes != nil {
		d.inv.Notes = *upd.Notes
	}
	return nil
}

// ComputeTotals derives the invoice aggregates from the current state. It has
// no side effects and is deterministic: identical state yields identical
// results no matter how often it is called.
//
// Subtotal is the exact sum of exact quantity*unitPrice products; the tax
// term is subtotal*rate shifted by two digits, which is also exact. Rounding
// to DisplayPrecision is left entirely to the presentation layer.
func (d *Draft) ComputeTotals() domain.InvoiceTotals {
	subtotal := decimal.Zero
	for _, item := range d.inv.LineItems {
		subtotal = subtotal.Add(item.Quantity.Mul(item.UnitPrice))
	}
	tax := subtotal.Mul(d.inv.TaxRate).Shift(-2)
	return domain.InvoiceTotals{
		Subtotal:       subtotal,
		TaxAmount:      tax,
		DiscountAmount: d.inv.DiscountAmount,
		GrandTotal:     subtotal.Add(tax).Sub(d.inv.DiscountAmount),
	}
}

// Invoice returns a snapshot copy of the invoice with current derived totals.
func (d *Draft) Invoice() domain.Invoice {
	inv := d.inv
	inv.LineItems = append([]domain.LineItem(nil), d.inv.LineItems...)
	return inv
}

// Warnings reports conditions that are permitted but worth surfacing to the
// caller. A grand total driven negative by the discount is not clamped; it is
// flagged here instead.
func (d *Draft) Warnings() []apperrors.FieldViolation {
	var out []apperrors.FieldViolation
	if d.inv.Totals.GrandTotal.IsNegative() {
		out = append(out, apperrors.FieldViolation{
			Field:  "grandTotal",
			Reason: "discount exceeds subtotal plus tax; grand total is negative",
		})
	}
	return out
}

// recompute refreshes every derived field after a mutation: each line item's
// display total and the invoice aggregates.
func (d *Draft) recompute() {
	for i := range d.inv.LineItems {
		item := &d.inv.LineItems[i]
		item.TotalPrice = item.Quantity.Mul(item.UnitPrice).Round(DisplayPrecision)
	}
	d.inv.Totals = d.ComputeTotals()
}
