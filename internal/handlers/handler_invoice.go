package handlers

import (
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/ulule/limiter/v3"

	"github.com/bakemate/recipe_invoice_app/internal/apperrors"
	"github.com/bakemate/recipe_invoice_app/internal/core/domain"
	portssvc "github.com/bakemate/recipe_invoice_app/internal/core/ports/services"
	"github.com/bakemate/recipe_invoice_app/internal/dto"
	"github.com/bakemate/recipe_invoice_app/internal/middleware"
)

// invoiceHandler handles HTTP requests related to invoices.
type invoiceHandler struct {
	invoiceService portssvc.InvoiceSvcFacade
}

func newInvoiceHandler(is portssvc.InvoiceSvcFacade) *invoiceHandler {
	return &invoiceHandler{invoiceService: is}
}

// registerInvoiceRoutes registers routes related to invoices.
func registerInvoiceRoutes(rg *gin.RouterGroup, invoiceService portssvc.InvoiceSvcFacade, exportLimiter *limiter.Limiter) {
	h := newInvoiceHandler(invoiceService)

	invoices := rg.Group("/invoices")
	{
		invoices.POST("", h.createInvoice)
		invoices.GET("", h.listInvoices)
		invoices.GET("/:invoiceID", h.getInvoice)
		invoices.PATCH("/:invoiceID", h.updateInvoice)
		invoices.DELETE("/:invoiceID", h.deleteInvoice)
		invoices.PUT("/:invoiceID/status", h.updateStatus)
		invoices.POST("/:invoiceID/items", h.addLineItem)
		invoices.PATCH("/:invoiceID/items/:index", h.updateLineItem)
		invoices.DELETE("/:invoiceID/items/:index", h.removeLineItem)
		invoices.GET("/:invoiceID/pdf", middleware.RateLimit(exportLimiter), h.exportPDF)
	}
}

// createInvoice godoc
// @Summary Create a new draft invoice
// @Description Creates a draft invoice with one empty line item; all seed fields are optional
// @Tags invoices
// @Accept  json
// @Produce  json
// @Param   invoice body dto.CreateInvoiceRequest false "Optional seed data"
// @Success 201 {object} dto.InvoiceResponse
// @Failure 400 {object} map[string]string "Invalid input"
// @Failure 401 {object} map[string]string "Missing owner identity"
// @Router /invoices [post]
func (h *invoiceHandler) createInvoice(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	ownerID, ok := middleware.GetOwnerIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	var req dto.CreateInvoiceRequest
	if c.Request.ContentLength > 0 {
		if err := c.ShouldBindJSON(&req); err != nil {
			logger.Warn("Failed to bind JSON for CreateInvoice", slog.String("error", err.Error()))
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
			return
		}
	}

	created, err := h.invoiceService.CreateInvoice(c.Request.Context(), ownerID, req)
	if err != nil {
		h.respondError(c, err, "Failed to create invoice")
		return
	}

	logger.Info("Invoice created", slog.String("invoice_id", created.InvoiceID))
	c.JSON(http.StatusCreated, dto.ToInvoiceResponse(created, nil))
}

// listInvoices godoc
// @Summary List invoices
// @Description Retrieves all invoices owned by the caller, newest first
// @Tags invoices
// @Produce  json
// @Success 200 {array} dto.InvoiceResponse
// @Failure 500 {object} map[string]string "Failed to list invoices"
// @Router /invoices [get]
func (h *invoiceHandler) listInvoices(c *gin.Context) {
	ownerID, ok := middleware.GetOwnerIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	invoices, err := h.invoiceService.ListInvoices(c.Request.Context(), ownerID)
	if err != nil {
		h.respondError(c, err, "Failed to list invoices")
		return
	}
	c.JSON(http.StatusOK, dto.ToInvoiceResponses(invoices))
}

// getInvoice godoc
// @Summary Get an invoice
// @Description Retrieves one invoice with its line items and derived totals
// @Tags invoices
// @Produce  json
// @Param   invoiceID path string true "Invoice ID"
// @Success 200 {object} dto.InvoiceResponse
// @Failure 404 {object} map[string]string "Invoice not found"
// @Router /invoices/{invoiceID} [get]
func (h *invoiceHandler) getInvoice(c *gin.Context) {
	ownerID, ok := middleware.GetOwnerIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	inv, err := h.invoiceService.GetInvoice(c.Request.Context(), ownerID, c.Param("invoiceID"))
	if err != nil {
		h.respondError(c, err, "Failed to retrieve invoice")
		return
	}
	c.JSON(http.StatusOK, dto.ToInvoiceResponse(inv, nil))
}

// updateInvoice godoc
// @Summary Update invoice header fields
// @Description Applies a partial update to header fields, tax rate, discount or currency
// @Tags invoices
// @Accept  json
// @Produce  json
// @Param   invoiceID path string true "Invoice ID"
// @Param   invoice body dto.UpdateInvoiceRequest true "Fields to update"
// @Success 200 {object} dto.InvoiceResponse
// @Failure 400 {object} map[string]string "Validation error"
// @Failure 404 {object} map[string]string "Invoice not found"
// @Router /invoices/{invoiceID} [patch]
func (h *invoiceHandler) updateInvoice(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	ownerID, ok := middleware.GetOwnerIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	var req dto.UpdateInvoiceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for UpdateInvoice", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	inv, err := h.invoiceService.UpdateInvoice(c.Request.Context(), ownerID, c.Param("invoiceID"), req)
	if err != nil {
		h.respondError(c, err, "Failed to update invoice")
		return
	}
	c.JSON(http.StatusOK, dto.ToInvoiceResponse(inv, warningsFor(inv)))
}

// deleteInvoice godoc
// @Summary Delete an invoice
// @Tags invoices
// @Param   invoiceID path string true "Invoice ID"
// @Success 204 "Deleted"
// @Failure 404 {object} map[string]string "Invoice not found"
// @Router /invoices/{invoiceID} [delete]
func (h *invoiceHandler) deleteInvoice(c *gin.Context) {
	ownerID, ok := middleware.GetOwnerIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	if err := h.invoiceService.DeleteInvoice(c.Request.Context(), ownerID, c.Param("invoiceID")); err != nil {
		h.respondError(c, err, "Failed to delete invoice")
		return
	}
	c.Status(http.StatusNoContent)
}

// updateStatus godoc
// @Summary Transition invoice status
// @Description Moves the invoice between DRAFT, SENT, PAID, OVERDUE and CANCELLED
// @Tags invoices
// @Accept  json
// @Produce  json
// @Param   invoiceID path string true "Invoice ID"
// @Param   status body dto.UpdateStatusRequest true "Target status"
// @Success 200 {object} dto.InvoiceResponse
// @Failure 400 {object} map[string]string "Unknown status"
// @Failure 404 {object} map[string]string "Invoice not found"
// @Router /invoices/{invoiceID}/status [put]
func (h *invoiceHandler) updateStatus(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	ownerID, ok := middleware.GetOwnerIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	var req dto.UpdateStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for UpdateStatus", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	inv, err := h.invoiceService.UpdateStatus(c.Request.Context(), ownerID, c.Param("invoiceID"), domain.InvoiceStatus(req.Status))
	if err != nil {
		h.respondError(c, err, "Failed to update invoice status")
		return
	}
	logger.Info("Invoice status updated", slog.String("invoice_id", inv.InvoiceID), slog.String("status", string(inv.Status)))
	c.JSON(http.StatusOK, dto.ToInvoiceResponse(inv, nil))
}

// addLineItem godoc
// @Summary Append a line item
// @Description Appends a line item with default quantity 1 and unit price 0
// @Tags invoices
// @Produce  json
// @Param   invoiceID path string true "Invoice ID"
// @Success 200 {object} dto.InvoiceResponse
// @Failure 404 {object} map[string]string "Invoice not found"
// @Router /invoices/{invoiceID}/items [post]
func (h *invoiceHandler) addLineItem(c *gin.Context) {
	ownerID, ok := middleware.GetOwnerIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	inv, err := h.invoiceService.AddLineItem(c.Request.Context(), ownerID, c.Param("invoiceID"))
	if err != nil {
		h.respondError(c, err, "Failed to add line item")
		return
	}
	c.JSON(http.StatusOK, dto.ToInvoiceResponse(inv, warningsFor(inv)))
}

// updateLineItem godoc
// @Summary Update a line item
// @Description Applies a partial update to the line item at the given index
// @Tags invoices
// @Accept  json
// @Produce  json
// @Param   invoiceID path string true "Invoice ID"
// @Param   index path int true "Line item index"
// @Param   item body dto.UpdateLineItemRequest true "Fields to update"
// @Success 200 {object} dto.InvoiceResponse
// @Failure 400 {object} map[string]string "Validation error"
// @Failure 404 {object} map[string]string "Invoice not found"
// @Router /invoices/{invoiceID}/items/{index} [patch]
func (h *invoiceHandler) updateLineItem(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	ownerID, ok := middleware.GetOwnerIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}
	index, err := strconv.Atoi(c.Param("index"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Line item index must be an integer"})
		return
	}

	var req dto.UpdateLineItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for UpdateLineItem", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	inv, err := h.invoiceService.UpdateLineItem(c.Request.Context(), ownerID, c.Param("invoiceID"), index, req)
	if err != nil {
		h.respondError(c, err, "Failed to update line item")
		return
	}
	c.JSON(http.StatusOK, dto.ToInvoiceResponse(inv, warningsFor(inv)))
}

// removeLineItem godoc
// @Summary Remove a line item
// @Description Removes the line item at the given index; the last remaining item cannot be removed
// @Tags invoices
// @Produce  json
// @Param   invoiceID path string true "Invoice ID"
// @Param   index path int true "Line item index"
// @Success 200 {object} dto.InvoiceResponse
// @Failure 400 {object} map[string]string "Validation error"
// @Failure 404 {object} map[string]string "Invoice not found"
// @Router /invoices/{invoiceID}/items/{index} [delete]
func (h *invoiceHandler) removeLineItem(c *gin.Context) {
	ownerID, ok := middleware.GetOwnerIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}
	index, err := strconv.Atoi(c.Param("index"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Line item index must be an integer"})
		return
	}

	inv, err := h.invoiceService.RemoveLineItem(c.Request.Context(), ownerID, c.Param("invoiceID"), index)
	if err != nil {
		h.respondError(c, err, "Failed to remove line item")
		return
	}
	c.JSON(http.StatusOK, dto.ToInvoiceResponse(inv, warningsFor(inv)))
}

// exportPDF godoc
// @Summary Export an invoice as PDF
// @Description Renders the invoice onto a single A4 page and returns the PDF
// @Tags invoices
// @Produce  application/pdf
// @Param   invoiceID path string true "Invoice ID"
// @Success 200 {file} binary
// @Failure 404 {object} map[string]string "Invoice not found"
// @Failure 422 {object} map[string]string "Invoice cannot be rendered"
// @Failure 502 {object} map[string]string "Export backend failed"
// @Router /invoices/{invoiceID}/pdf [get]
func (h *invoiceHandler) exportPDF(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	ownerID, ok := middleware.GetOwnerIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}
	invoiceID := c.Param("invoiceID")

	pdfBytes, err := h.invoiceService.ExportPDF(c.Request.Context(), ownerID, invoiceID)
	if err != nil {
		h.respondError(c, err, "Failed to export invoice")
		return
	}

	logger.Info("Invoice exported", slog.String("invoice_id", invoiceID), slog.Int("pdf_bytes", len(pdfBytes)))
	c.Header("Content-Disposition", `attachment; filename="invoice-`+invoiceID+`.pdf"`)
	c.Data(http.StatusOK, "application/pdf", pdfBytes)
}

// respondError maps service errors onto HTTP statuses. Validation problems
// return the structured field violations so the client can point at the
// offending input.
func (h *invoiceHandler) respondError(c *gin.Context, err error, fallback string) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	var vErr *apperrors.ValidationError
	switch {
	case errors.As(err, &vErr):
		logger.Warn("Validation error", slog.String("error", vErr.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": vErr.Error(), "violations": vErr.Violations})
	case errors.Is(err, apperrors.ErrValidation):
		logger.Warn("Validation error", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	case errors.Is(err, apperrors.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "Invoice not found"})
	case errors.Is(err, apperrors.ErrDuplicate):
		logger.Warn("Duplicate invoice", slog.String("error", err.Error()))
		c.JSON(http.StatusConflict, gin.H{"error": "Invoice already exists"})
	case errors.Is(err, apperrors.ErrRender):
		logger.Warn("Render rejected", slog.String("error", err.Error()))
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": err.Error()})
	case errors.Is(err, apperrors.ErrExport):
		logger.Error("Export backend failed", slog.String("error", err.Error()))
		c.JSON(http.StatusBadGateway, gin.H{"error": "Export failed. Please retry."})
	default:
		logger.Error(fallback, slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": fallback})
	}
}

// warningsFor recomputes the draft warnings for a stored invoice so responses
// can flag permitted-but-odd states, e.g. a negative grand total.
func warningsFor(inv *domain.Invoice) []apperrors.FieldViolation {
	if inv == nil || !inv.Totals.GrandTotal.IsNegative() {
		return nil
	}
	return []apperrors.FieldViolation{{
		Field:  "grandTotal",
		Reason: "discount exceeds subtotal plus tax; grand total is negative",
	}}
}
