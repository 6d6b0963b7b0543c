package render

import (
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/bakemate/recipe_invoice_app/internal/apperrors"
	"github.com/bakemate/recipe_invoice_app/internal/core/currencies"
	"github.com/bakemate/recipe_invoice_app/internal/core/domain"
)

const dateLayout = "2006-01-02"

// Render projects an invoice snapshot into a Document. It is a pure function:
// identical snapshots produce identical documents. A snapshot that cannot
// make a well-formed document (no line items, unknown currency) is rejected
// with an error wrapping apperrors.ErrRender rather than rendered malformed.
func Render(inv domain.Invoice) (*Document, error) {
	if len(inv.LineItems) == 0 {
		return nil, fmt.Errorf("%w: invoice has no line items", apperrors.ErrRender)
	}
	currency, err := currencies.Get(inv.CurrencyCode)
	if err != nil {
		return nil, fmt.Errorf("%w: unknown currency %q", apperrors.ErrRender, inv.CurrencyCode)
	}

	doc := &Document{
		Header: HeaderBlock{
			Title:      "INVOICE",
			SenderName: inv.Sender.Name,
		},
		Meta: MetaBlock{
			InvoiceNumber: inv.InvoiceNumber,
			IssueDate:     inv.IssueDate.Format(dateLayout),
		},
		Parties: PartyBlock{
			FromLines: partyLines(inv.Sender),
			ToLines:   partyLines(inv.Recipient),
		},
		Notes: inv.Notes,
	}
	if inv.DueDate != nil {
		doc.Meta.DueDate = inv.DueDate.Format(dateLayout)
	}

	doc.Table = LineItemTable{
		Columns: []string{"Description", "Qty", "Unit Price", "Total"},
	}
	for _, item := range inv.LineItems {
		doc.Table.Rows = append(doc.Table.Rows, []string{
			item.Description,
			item.Quantity.String(),
			FormatAmount(item.UnitPrice, currency),
			FormatAmount(item.Quantity.Mul(item.UnitPrice), currency),
		})
	}

	doc.Totals = totalsBlock(inv, currency)
	return doc, nil
}

// totalsBlock builds the totals section. Tax and discount rows are omitted
// entirely when their value is zero; that is a display contract only, the
// underlying totals still carry the zero term.
func totalsBlock(inv domain.Invoice, currency domain.Currency) TotalsBlock {
	rows := []TotalsRow{
		{Label: "Subtotal", Value: FormatAmount(inv.Totals.Subtotal, currency)},
	}
	if inv.TaxRate.IsPositive() {
		rows = append(rows, TotalsRow{
			Label: fmt.Sprintf("Tax (%s%%)", inv.TaxRate.String()),
			Value: FormatAmount(inv.Totals.TaxAmount, currency),
		})
	}
	if inv.Totals.DiscountAmount.IsPositive() {
		rows = append(rows, TotalsRow{
			Label: "Discount",
			Value: "-" + FormatAmount(inv.Totals.DiscountAmount, currency),
		})
	}
	rows = append(rows, TotalsRow{
		Label:      "Total",
		Value:      FormatAmount(inv.Totals.GrandTotal, currency),
		Emphasized: true,
	})
	return TotalsBlock{Rows: rows}
}

// FormatAmount renders a monetary value with the currency symbol and the
// currency's minor-unit precision, rounding half away from zero. This is the
// presentation boundary: the only place aggregate decimals get rounded.
func FormatAmount(amount decimal.Decimal, currency domain.Currency) string {
	if amount.IsNegative() {
		return "-" + currency.Symbol + amount.Neg().StringFixed(int32(currency.Precision))
	}
	return currency.Symbol + amount.StringFixed(int32(currency.Precision))
}

func partyLines(p domain.Party) []string {
	lines := make([]string, 0, 5)
	if p.Name != "" {
		lines = append(lines, p.Name)
	}
	if p.Company != "" {
		lines = append(lines, p.Company)
	}
	if p.Address != "" {
		lines = append(lines, p.Address)
	}
	if p.Phone != "" {
		lines = append(lines, p.Phone)
	}
	if p.Email != "" {
		lines = append(lines, p.Email)
	}
	return lines
}
