// Package render projects a computed invoice snapshot into a deterministic
// document tree, ready for layout onto a fixed-size page.
package render

// Standard A4 page size in points, the default export target.
const (
	A4WidthPt  = 595.28
	A4HeightPt = 841.89
)

// Document is the structured representation of one rendered invoice. All
// monetary cells are pre-formatted strings; the tree carries no decimals so
// an exporter never re-rounds.
type Document struct {
	Header  HeaderBlock
	Meta    MetaBlock
	Parties PartyBlock
	Table   LineItemTable
	Totals  TotalsBlock
	Notes   string
}

// HeaderBlock is the document title line and the issuing party's name.
type HeaderBlock struct {
	Title      string
	SenderName string
}

// MetaBlock carries the invoice number and dates, ISO-8601 formatted.
type MetaBlock struct {
	InvoiceNumber string
	IssueDate     string
	DueDate       string // empty when no due date is set
}

// PartyBlock is the two-column From/To section. Lines are rendered top to
// bottom in each column.
type PartyBlock struct {
	FromLines []string
	ToLines   []string
}

// LineItemTable is the tabular body of the invoice.
type LineItemTable struct {
	Columns []string
	Rows    [][]string
}

// TotalsRow is one row in the totals block. The grand total row is the only
// emphasized one.
type TotalsRow struct {
	Label      string
	Value      string
	Emphasized bool
}

// TotalsBlock lists subtotal, conditional tax/discount rows and the grand
// total.
type TotalsBlock struct {
	Rows []TotalsRow
}
