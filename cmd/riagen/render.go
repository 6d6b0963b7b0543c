package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/bakemate/recipe_invoice_app/internal/adapters/pdf"
	"github.com/bakemate/recipe_invoice_app/internal/core/domain"
	"github.com/bakemate/recipe_invoice_app/internal/core/invoicing"
	"github.com/bakemate/recipe_invoice_app/internal/core/invoicing/render"
)

var (
	outputPath string
	pageWidth  float64
	pageHeight float64
	timeoutSec int
)

var renderCmd = &cobra.Command{
	Use:   "render [invoice.json]",
	Short: "Render an invoice JSON file to a single-page PDF",
	Long: `Reads an invoice record from a JSON file, recomputes its derived
totals, and lays it out onto a fixed-size PDF page. The output is
byte-identical across runs for the same input.`,
	Example: `  # Render to invoice.pdf next to the input
  riagen render invoice.json

  # Custom output path and page size in points
  riagen render invoice.json -o out.pdf --page-width 595.28 --page-height 841.89`,
	Args: cobra.ExactArgs(1),
	RunE: runRender,
}

func init() {
	renderCmd.Flags().StringVarP(&outputPath, "output", "o", "invoice.pdf", "Output PDF path")
	renderCmd.Flags().Float64Var(&pageWidth, "page-width", render.A4WidthPt, "Page width in points")
	renderCmd.Flags().Float64Var(&pageHeight, "page-height", render.A4HeightPt, "Page height in points")
	renderCmd.Flags().IntVar(&timeoutSec, "timeout", 30, "Export timeout in seconds")
	rootCmd.AddCommand(renderCmd)
}

func runRender(cmd *cobra.Command, args []string) error {
	inputPath := args[0]

	raw, err := os.ReadFile(inputPath)
	if err != nil {
		return fmt.Errorf("failed to read %s: %w", inputPath, err)
	}

	var inv domain.Invoice
	if err := json.Unmarshal(raw, &inv); err != nil {
		return fmt.Errorf("failed to parse invoice JSON: %w", err)
	}

	// Recompute totals from the line items; the file's stored aggregates are
	// ignored.
	draft, err := invoicing.FromInvoice(inv)
	if err != nil {
		return err
	}
	inv = draft.Invoice()

	doc, err := render.Render(inv)
	if err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(cmd.Context(), time.Duration(timeoutSec)*time.Second)
	defer cancel()

	pdfBytes, err := pdf.NewExporter().Export(ctx, doc, pageWidth, pageHeight)
	if err != nil {
		return err
	}

	if err := os.WriteFile(outputPath, pdfBytes, 0o644); err != nil {
		return fmt.Errorf("failed to write %s: %w", outputPath, err)
	}

	log.Info().
		Str("input", inputPath).
		Str("output", outputPath).
		Int("bytes", len(pdfBytes)).
		Msg("Invoice rendered")
	return nil
}
