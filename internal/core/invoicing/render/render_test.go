package render_test

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bakemate/recipe_invoice_app/internal/apperrors"
	"github.com/bakemate/recipe_invoice_app/internal/core/currencies"
	"github.com/bakemate/recipe_invoice_app/internal/core/domain"
	"github.com/bakemate/recipe_invoice_app/internal/core/invoicing"
	"github.com/bakemate/recipe_invoice_app/internal/core/invoicing/render"
)

func dec(s string) decimal.Decimal {
	d, err := decimal.NewFromString(s)
	if err != nil {
		panic(err)
	}
	return d
}

func sampleInvoice(t *testing.T, taxRate, discount string) domain.Invoice {
	t.Helper()
	draft := invoicing.NewDraft("owner-1")
	desc := "Cake"
	qty := dec("2")
	price := dec("15.00")
	require.NoError(t, draft.UpdateLineItem(0, invoicing.LineItemUpdate{
		Description: &desc, Quantity: &qty, UnitPrice: &price,
	}))
	require.NoError(t, draft.SetTaxRate(dec(taxRate)))
	require.NoError(t, draft.SetDiscountAmount(dec(discount)))

	number := "INV-0042"
	issue := time.Date(2025, 3, 10, 0, 0, 0, 0, time.UTC)
	due := issue.AddDate(0, 0, 30)
	sender := domain.Party{Name: "Sweet Crumb Bakery", Email: "hello@sweetcrumb.test"}
	recipient := domain.Party{Name: "Jordan Blake", Company: "Blake Events"}
	require.NoError(t, draft.SetHeader(invoicing.HeaderUpdate{
		InvoiceNumber: &number,
		IssueDate:     &issue,
		DueDate:       &due,
		Sender:        &sender,
		Recipient:     &recipient,
	}))
	return draft.Invoice()
}

func totalsLabels(doc *render.Document) []string {
	labels := make([]string, len(doc.Totals.Rows))
	for i, row := range doc.Totals.Rows {
		labels[i] = row.Label
	}
	return labels
}

func TestRender_FullInvoice(t *testing.T) {
	inv := sampleInvoice(t, "10", "2.00")

	doc, err := render.Render(inv)
	require.NoError(t, err)

	assert.Equal(t, "INVOICE", doc.Header.Title)
	assert.Equal(t, "Sweet Crumb Bakery", doc.Header.SenderName)
	assert.Equal(t, "INV-0042", doc.Meta.InvoiceNumber)
	assert.Equal(t, "2025-03-10", doc.Meta.IssueDate)
	assert.Equal(t, "2025-04-09", doc.Meta.DueDate)

	assert.Equal(t, []string{"Sweet Crumb Bakery", "hello@sweetcrumb.test"}, doc.Parties.FromLines)
	assert.Equal(t, []string{"Jordan Blake", "Blake Events"}, doc.Parties.ToLines)

	require.Len(t, doc.Table.Rows, 1)
	assert.Equal(t, []string{"Cake", "2", "$15.00", "$30.00"}, doc.Table.Rows[0])

	assert.Equal(t, []string{"Subtotal", "Tax (10%)", "Discount", "Total"}, totalsLabels(doc))
	assert.Equal(t, "$30.00", doc.Totals.Rows[0].Value)
	assert.Equal(t, "$3.00", doc.Totals.Rows[1].Value)
	assert.Equal(t, "-$2.00", doc.Totals.Rows[2].Value)
	assert.Equal(t, "$31.00", doc.Totals.Rows[3].Value)
}

func TestRender_TaxRowOnlyWhenPositive(t *testing.T) {
	withTax, err := render.Render(sampleInvoice(t, "10", "0"))
	require.NoError(t, err)
	assert.Contains(t, totalsLabels(withTax), "Tax (10%)")

	noTax, err := render.Render(sampleInvoice(t, "0", "0"))
	require.NoError(t, err)
	assert.Equal(t, []string{"Subtotal", "Total"}, totalsLabels(noTax))
}

func TestRender_DiscountRowOnlyWhenPositive(t *testing.T) {
	doc, err := render.Render(sampleInvoice(t, "0", "2.50"))
	require.NoError(t, err)
	assert.Equal(t, []string{"Subtotal", "Discount", "Total"}, totalsLabels(doc))
}

func TestRender_GrandTotalAlwaysPresentAndEmphasized(t *testing.T) {
	doc, err := render.Render(sampleInvoice(t, "0", "0"))
	require.NoError(t, err)

	last := doc.Totals.Rows[len(doc.Totals.Rows)-1]
	assert.Equal(t, "Total", last.Label)
	assert.True(t, last.Emphasized)
	for _, row := range doc.Totals.Rows[:len(doc.Totals.Rows)-1] {
		assert.False(t, row.Emphasized)
	}
}

func TestRender_NegativeGrandTotal(t *testing.T) {
	doc, err := render.Render(sampleInvoice(t, "0", "45.00"))
	require.NoError(t, err)

	last := doc.Totals.Rows[len(doc.Totals.Rows)-1]
	assert.Equal(t, "-$15.00", last.Value)
}

func TestRender_RejectsZeroLineItems(t *testing.T) {
	inv := sampleInvoice(t, "0", "0")
	inv.LineItems = nil

	_, err := render.Render(inv)
	assert.ErrorIs(t, err, apperrors.ErrRender)
}

func TestRender_RejectsUnknownCurrency(t *testing.T) {
	inv := sampleInvoice(t, "0", "0")
	inv.CurrencyCode = "XXX"

	_, err := render.Render(inv)
	assert.ErrorIs(t, err, apperrors.ErrRender)
}

func TestRender_Deterministic(t *testing.T) {
	inv := sampleInvoice(t, "10", "2.00")

	first, err := render.Render(inv)
	require.NoError(t, err)
	second, err := render.Render(inv)
	require.NoError(t, err)
	assert.Equal(t, first, second)
}

func TestFormatAmount_RoundsHalfAwayFromZero(t *testing.T) {
	usd, err := currencies.Get("USD")
	require.NoError(t, err)

	assert.Equal(t, "$12.35", render.FormatAmount(dec("12.345"), usd))
	assert.Equal(t, "$12.34", render.FormatAmount(dec("12.344"), usd))
	assert.Equal(t, "-$0.01", render.FormatAmount(dec("-0.005"), usd))
	assert.Equal(t, "$0.00", render.FormatAmount(dec("0"), usd))
}

func TestFormatAmount_NonUSDSymbol(t *testing.T) {
	eur, err := currencies.Get("EUR")
	require.NoError(t, err)
	assert.Equal(t, "€7.50", render.FormatAmount(dec("7.5"), eur))
}
