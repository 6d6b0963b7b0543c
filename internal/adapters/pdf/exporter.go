// Package pdf exports rendered invoice documents to PDF via gofpdf.
package pdf

import (
	"bytes"
	"context"
	"fmt"
	"time"

	"github.com/jung-kurt/gofpdf"

	"github.com/bakemate/recipe_invoice_app/internal/apperrors"
	"github.com/bakemate/recipe_invoice_app/internal/core/invoicing/render"
)

const (
	marginPt      = 40.0
	baseRowHeight = 18.0
	baseFontSize  = 10.0
)

// Exporter lays a rendered document onto a fixed-size page. It is stateless
// and safe for concurrent use on independent documents.
type Exporter struct{}

func NewExporter() *Exporter {
	return &Exporter{}
}

// Export maps doc onto a single page of the given size in points and returns
// the encoded PDF. Output is deterministic for identical inputs: the PDF
// creation date is pinned so two exports of the same document are
// byte-identical. When the line-item table would overflow the page, the whole
// body is scaled down to fit (shrink-to-fit; there is no multi-page flow).
//
// Cancellation via ctx is honored before any encoding work; no partial
// artifact is ever produced. Backend failures wrap apperrors.ErrExport and
// may be retried by the caller.
func (e *Exporter) Export(ctx context.Context, doc *render.Document, widthPt, heightPt float64) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("%w: %v", apperrors.ErrExport, err)
	}
	if doc == nil {
		return nil, fmt.Errorf("%w: nil document", apperrors.ErrExport)
	}
	if widthPt <= 2*marginPt || heightPt <= 2*marginPt {
		return nil, fmt.Errorf("%w: page size %gx%gpt too small for %gpt margins", apperrors.ErrExport, widthPt, heightPt, marginPt)
	}

	f := gofpdf.NewCustom(&gofpdf.InitType{
		UnitStr: "pt",
		Size:    gofpdf.SizeType{Wd: widthPt, Ht: heightPt},
	})
	f.SetCreationDate(time.Unix(0, 0).UTC())
	f.SetMargins(marginPt, marginPt, marginPt)
	f.SetAutoPageBreak(false, 0)
	f.AddPage()

	// Core fonts are cp1252; currency symbols in the document tree are UTF-8.
	tr := f.UnicodeTranslatorFromDescriptor("")

	scale := fitScale(doc, heightPt-2*marginPt)
	contentWidth := widthPt - 2*marginPt
	writeBody(f, tr, doc, contentWidth, scale)

	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("%w: %v", apperrors.ErrExport, err)
	}
	var buf bytes.Buffer
	if err := f.Output(&buf); err != nil {
		return nil, fmt.Errorf("%w: %v", apperrors.ErrExport, err)
	}
	return buf.Bytes(), nil
}

// fitScale returns the factor (<= 1) by which the body must shrink so the
// document's natural height fits the available content height.
func fitScale(doc *render.Document, available float64) float64 {
	natural := naturalHeight(doc)
	if natural <= available {
		return 1
	}
	return available / natural
}

// naturalHeight estimates the unscaled vertical extent of the document in
// points. The estimate only needs to be consistent with writeBody's advances.
func naturalHeight(doc *render.Document) float64 {
	h := 34.0                                      // title
	h += float64(2+maxLines(doc.Parties)) * baseRowHeight // meta + party columns
	h += 2 * baseRowHeight                         // spacing + table header
	h += float64(len(doc.Table.Rows)) * baseRowHeight
	h += float64(1+len(doc.Totals.Rows)) * baseRowHeight
	if doc.Notes != "" {
		h += 3 * baseRowHeight
	}
	return h
}

func maxLines(p render.PartyBlock) int {
	n := len(p.FromLines)
	if len(p.ToLines) > n {
		n = len(p.ToLines)
	}
	if n == 0 {
		n = 1
	}
	return n
}

func writeBody(f *gofpdf.Fpdf, tr func(string) string, doc *render.Document, contentWidth, scale float64) {
	rowH := baseRowHeight * scale
	fontSize := baseFontSize * scale

	// Title and sender line.
	f.SetFont("Helvetica", "B", 24*scale)
	f.CellFormat(contentWidth/2, 34*scale, tr(doc.Header.Title), "", 0, "L", false, 0, "")
	f.SetFont("Helvetica", "", fontSize)
	f.CellFormat(contentWidth/2, 34*scale, tr(doc.Header.SenderName), "", 1, "R", false, 0, "")

	// Metadata block.
	f.CellFormat(contentWidth, rowH, tr("Invoice No: "+doc.Meta.InvoiceNumber), "", 1, "L", false, 0, "")
	dates := "Issued: " + doc.Meta.IssueDate
	if doc.Meta.DueDate != "" {
		dates += "    Due: " + doc.Meta.DueDate
	}
	f.CellFormat(contentWidth, rowH, tr(dates), "", 1, "L", false, 0, "")

	// Two-column party block.
	colWidth := contentWidth / 2
	f.SetFont("Helvetica", "B", fontSize)
	f.CellFormat(colWidth, rowH, "From", "", 0, "L", false, 0, "")
	f.CellFormat(colWidth, rowH, "To", "", 1, "L", false, 0, "")
	f.SetFont("Helvetica", "", fontSize)
	for i := 0; i < maxLines(doc.Parties); i++ {
		f.CellFormat(colWidth, rowH, tr(lineAt(doc.Parties.FromLines, i)), "", 0, "L", false, 0, "")
		f.CellFormat(colWidth, rowH, tr(lineAt(doc.Parties.ToLines, i)), "", 1, "L", false, 0, "")
	}
	f.Ln(rowH)

	// Line-item table.
	widths := []float64{0.45 * contentWidth, 0.15 * contentWidth, 0.20 * contentWidth, 0.20 * contentWidth}
	aligns := []string{"L", "R", "R", "R"}
	f.SetFont("Helvetica", "B", fontSize)
	f.SetFillColor(235, 235, 235)
	for i, col := range doc.Table.Columns {
		last := i == len(doc.Table.Columns)-1
		f.CellFormat(widths[i], rowH, tr(col), "1", boolToLn(last), aligns[i], true, 0, "")
	}
	f.SetFont("Helvetica", "", fontSize)
	for _, row := range doc.Table.Rows {
		for i, cell := range row {
			last := i == len(row)-1
			f.CellFormat(widths[i], rowH, tr(cell), "1", boolToLn(last), aligns[i], false, 0, "")
		}
	}
	f.Ln(rowH)

	// Totals block, right-aligned against the table edge.
	labelWidth := 0.60 * contentWidth
	valueWidth := 0.40 * contentWidth
	for _, row := range doc.Totals.Rows {
		style := ""
		if row.Emphasized {
			style = "B"
		}
		f.SetFont("Helvetica", style, fontSize)
		f.CellFormat(labelWidth, rowH, tr(row.Label), "", 0, "R", false, 0, "")
		f.CellFormat(valueWidth, rowH, tr(row.Value), "", 1, "R", false, 0, "")
	}

	if doc.Notes != "" {
		f.Ln(rowH)
		f.SetFont("Helvetica", "B", fontSize)
		f.CellFormat(contentWidth, rowH, "Notes", "", 1, "L", false, 0, "")
		f.SetFont("Helvetica", "", fontSize)
		f.MultiCell(contentWidth, rowH, tr(doc.Notes), "", "L", false)
	}
}

func lineAt(lines []string, i int) string {
	if i < len(lines) {
		return lines[i]
	}
	return ""
}

func boolToLn(last bool) int {
	if last {
		return 1
	}
	return 0
}
