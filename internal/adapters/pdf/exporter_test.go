package pdf_test

import (
	"bytes"
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bakemate/recipe_invoice_app/internal/adapters/pdf"
	"github.com/bakemate/recipe_invoice_app/internal/apperrors"
	"github.com/bakemate/recipe_invoice_app/internal/core/invoicing/render"
)

func sampleDocument(rows int) *render.Document {
	doc := &render.Document{
		Header: render.HeaderBlock{Title: "INVOICE", SenderName: "Sweet Crumb Bakery"},
		Meta:   render.MetaBlock{InvoiceNumber: "INV-0042", IssueDate: "2025-03-10", DueDate: "2025-04-09"},
		Parties: render.PartyBlock{
			FromLines: []string{"Sweet Crumb Bakery", "hello@sweetcrumb.test"},
			ToLines:   []string{"Jordan Blake", "Blake Events"},
		},
		Table: render.LineItemTable{
			Columns: []string{"Description", "Qty", "Unit Price", "Total"},
		},
		Totals: render.TotalsBlock{Rows: []render.TotalsRow{
			{Label: "Subtotal", Value: "$30.00"},
			{Label: "Tax (10%)", Value: "$3.00"},
			{Label: "Total", Value: "$33.00", Emphasized: true},
		}},
		Notes: "Thank you for your order.",
	}
	for i := 0; i < rows; i++ {
		doc.Table.Rows = append(doc.Table.Rows, []string{
			fmt.Sprintf("Item %d", i+1), "2", "$15.00", "$30.00",
		})
	}
	return doc
}

func TestExport_ProducesPDF(t *testing.T) {
	exporter := pdf.NewExporter()

	out, err := exporter.Export(context.Background(), sampleDocument(3), render.A4WidthPt, render.A4HeightPt)
	require.NoError(t, err)
	require.NotEmpty(t, out)
	assert.True(t, bytes.HasPrefix(out, []byte("%PDF")), "output should be a PDF")
}

func TestExport_Deterministic(t *testing.T) {
	exporter := pdf.NewExporter()
	doc := sampleDocument(3)

	first, err := exporter.Export(context.Background(), doc, render.A4WidthPt, render.A4HeightPt)
	require.NoError(t, err)
	second, err := exporter.Export(context.Background(), doc, render.A4WidthPt, render.A4HeightPt)
	require.NoError(t, err)
	assert.True(t, bytes.Equal(first, second), "two exports of the same document must be byte-identical")
}

// A long line-item list shrinks to fit rather than flowing onto extra pages.
func TestExport_ShrinkToFitStaysSinglePage(t *testing.T) {
	exporter := pdf.NewExporter()

	out, err := exporter.Export(context.Background(), sampleDocument(120), render.A4WidthPt, render.A4HeightPt)
	require.NoError(t, err)
	pageObjects := bytes.Count(out, []byte("/Type /Page")) - bytes.Count(out, []byte("/Type /Pages"))
	assert.Equal(t, 1, pageObjects, "expected a single page object")
}

func TestExport_CancelledContext(t *testing.T) {
	exporter := pdf.NewExporter()
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	out, err := exporter.Export(ctx, sampleDocument(3), render.A4WidthPt, render.A4HeightPt)
	require.Error(t, err)
	assert.ErrorIs(t, err, apperrors.ErrExport)
	assert.Nil(t, out, "no partial artifact on cancellation")
}

func TestExport_NilDocument(t *testing.T) {
	exporter := pdf.NewExporter()

	_, err := exporter.Export(context.Background(), nil, render.A4WidthPt, render.A4HeightPt)
	assert.ErrorIs(t, err, apperrors.ErrExport)
}

func TestExport_PageTooSmall(t *testing.T) {
	exporter := pdf.NewExporter()

	_, err := exporter.Export(context.Background(), sampleDocument(1), 50, 50)
	assert.ErrorIs(t, err, apperrors.ErrExport)
}
