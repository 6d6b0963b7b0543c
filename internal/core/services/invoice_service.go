package services

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/bakemate/recipe_invoice_app/internal/apperrors"
	"github.com/bakemate/recipe_invoice_app/internal/core/domain"
	"github.com/bakemate/recipe_invoice_app/internal/core/invoicing"
	"github.com/bakemate/recipe_invoice_app/internal/core/invoicing/render"
	portsrepo "github.com/bakemate/recipe_invoice_app/internal/core/ports/repositories"
	portssvc "github.com/bakemate/recipe_invoice_app/internal/core/ports/services"
	"github.com/bakemate/recipe_invoice_app/internal/dto"
)

// invoiceService orchestrates draft editing over the invoicing engine and
// hands finished records to the persistence collaborator. All computation
// lives in the invoicing package; this layer only loads, mutates and saves.
type invoiceService struct {
	repo     portsrepo.InvoiceRepositoryFacade
	exporter portssvc.DocumentExporter
}

// NewInvoiceService creates the invoice service.
func NewInvoiceService(repo portsrepo.InvoiceRepositoryFacade, exporter portssvc.DocumentExporter) portssvc.InvoiceSvcFacade {
	return &invoiceService{repo: repo, exporter: exporter}
}

func (s *invoiceService) CreateInvoice(ctx context.Context, ownerID string, req dto.CreateInvoiceRequest) (*domain.Invoice, error) {
	draft := invoicing.NewDraft(ownerID)

	if req.CurrencyCode != "" {
		if err := draft.SetCurrency(req.CurrencyCode); err != nil {
			return nil, err
		}
	}
	header := invoicing.HeaderUpdate{}
	if req.InvoiceNumber != "" {
		header.InvoiceNumber = &req.InvoiceNumber
	}
	if req.IssueDate != nil {
		header.IssueDate = req.IssueDate
	}
	if req.Sender != nil {
		sender := dto.ToParty(*req.Sender)
		header.Sender = &sender
	}
	if req.Recipient != nil {
		recipient := dto.ToParty(*req.Recipient)
		header.Recipient = &recipient
	}
	if req.Notes != "" {
		header.Notes = &req.Notes
	}
	if err := draft.SetHeader(header); err != nil {
		return nil, err
	}

	inv := draft.Invoice()
	inv.InvoiceID = uuid.NewString()
	now := time.Now().UTC()
	inv.AuditFields = domain.AuditFields{
		CreatedAt:     now,
		CreatedBy:     ownerID,
		LastUpdatedAt: now,
		LastUpdatedBy: ownerID,
	}

	if err := s.repo.SaveInvoice(ctx, inv); err != nil {
		return nil, fmt.Errorf("failed to save new invoice: %w", err)
	}
	return &inv, nil
}

func (s *invoiceService) GetInvoice(ctx context.Context, ownerID, invoiceID string) (*domain.Invoice, error) {
	return s.loadOwned(ctx, ownerID, invoiceID)
}

func (s *invoiceService) ListInvoices(ctx context.Context, ownerID string) ([]domain.Invoice, error) {
	invoices, err := s.repo.ListInvoicesByOwner(ctx, ownerID)
	if err != nil {
		return nil, fmt.Errorf("failed to list invoices: %w", err)
	}
	if invoices == nil {
		return []domain.Invoice{}, nil
	}
	return invoices, nil
}

func (s *invoiceService) UpdateInvoice(ctx context.Context, ownerID, invoiceID string, req dto.UpdateInvoiceRequest) (*domain.Invoice, error) {
	return s.mutate(ctx, ownerID, invoiceID, func(draft *invoicing.Draft) error {
		if req.CurrencyCode != nil {
			if err := draft.SetCurrency(*req.CurrencyCode); err != nil {
				return err
			}
		}
		if req.TaxRate != nil {
			if err := draft.SetTaxRate(*req.TaxRate); err != nil {
				return err
			}
		}
		if req.DiscountAmount != nil {
			if err := draft.SetDiscountAmount(*req.DiscountAmount); err != nil {
				return err
			}
		}
		header := invoicing.HeaderUpdate{
			InvoiceNumber: req.InvoiceNumber,
			IssueDate:     req.IssueDate,
			DueDate:       req.DueDate,
			ClearDueDate:  req.ClearDueDate,
			Notes:         req.Notes,
		}
		if req.Sender != nil {
			sender := dto.ToParty(*req.Sender)
			header.Sender = &sender
		}
		if req.Recipient != nil {
			recipient := dto.ToParty(*req.Recipient)
			header.Recipient = &recipient
		}
		return draft.SetHeader(header)
	})
}

func (s *invoiceService) AddLineItem(ctx context.Context, ownerID, invoiceID string) (*domain.Invoice, error) {
	return s.mutate(ctx, ownerID, invoiceID, func(draft *invoicing.Draft) error {
		draft.AddLineItem()
		return nil
	})
}

func (s *invoiceService) UpdateLineItem(ctx context.Context, ownerID, invoiceID string, index int, req dto.UpdateLineItemRequest) (*domain.Invoice, error) {
	return s.mutate(ctx, ownerID, invoiceID, func(draft *invoicing.Draft) error {
		return draft.UpdateLineItem(index, invoicing.LineItemUpdate{
			Description: req.Description,
			Quantity:    req.Quantity,
			UnitPrice:   req.UnitPrice,
		})
	})
}

func (s *invoiceService) RemoveLineItem(ctx context.Context, ownerID, invoiceID string, index int) (*domain.Invoice, error) {
	return s.mutate(ctx, ownerID, invoiceID, func(draft *invoicing.Draft) error {
		return draft.RemoveLineItem(index)
	})
}

func (s *invoiceService) UpdateStatus(ctx context.Context, ownerID, invoiceID string, status domain.InvoiceStatus) (*domain.Invoice, error) {
	if !status.IsValid() {
		return nil, apperrors.NewValidationError("status", "unknown invoice status")
	}
	inv, err := s.loadOwned(ctx, ownerID, invoiceID)
	if err != nil {
		return nil, err
	}
	inv.Status = status
	inv.LastUpdatedAt = time.Now().UTC()
	inv.LastUpdatedBy = ownerID
	if err := s.repo.UpdateInvoice(ctx, *inv); err != nil {
		return nil, fmt.Errorf("failed to update invoice status: %w", err)
	}
	return inv, nil
}

func (s *invoiceService) DeleteInvoice(ctx context.Context, ownerID, invoiceID string) error {
	if _, err := s.loadOwned(ctx, ownerID, invoiceID); err != nil {
		return err
	}
	if err := s.repo.DeleteInvoice(ctx, invoiceID); err != nil {
		return fmt.Errorf("failed to delete invoice: %w", err)
	}
	return nil
}

func (s *invoiceService) ExportPDF(ctx context.Context, ownerID, invoiceID string) ([]byte, error) {
	inv, err := s.loadOwned(ctx, ownerID, invoiceID)
	if err != nil {
		return nil, err
	}
	doc, err := render.Render(*inv)
	if err != nil {
		return nil, err
	}
	return s.exporter.Export(ctx, doc, render.A4WidthPt, render.A4HeightPt)
}

// mutate loads an owned invoice into a draft, applies fn, refreshes audit
// fields and persists the result. A failed fn leaves the stored record
// untouched.
func (s *invoiceService) mutate(ctx context.Context, ownerID, invoiceID string, fn func(*invoicing.Draft) error) (*domain.Invoice, error) {
	stored, err := s.loadOwned(ctx, ownerID, invoiceID)
	if err != nil {
		return nil, err
	}
	draft, err := invoicing.FromInvoice(*stored)
	if err != nil {
		return nil, err
	}
	if err := fn(draft); err != nil {
		return nil, err
	}
	inv := draft.Invoice()
	inv.LastUpdatedAt = time.Now().UTC()
	inv.LastUpdatedBy = ownerID
	if err := s.repo.UpdateInvoice(ctx, inv); err != nil {
		return nil, fmt.Errorf("failed to update invoice: %w", err)
	}
	return &inv, nil
}

// loadOwned fetches an invoice and verifies ownership. A foreign invoice is
// reported as not found so existence does not leak across owners.
func (s *invoiceService) loadOwned(ctx context.Context, ownerID, invoiceID string) (*domain.Invoice, error) {
	inv, err := s.repo.FindInvoiceByID(ctx, invoiceID)
	if err != nil {
		return nil, err
	}
	if inv.OwnerID != ownerID {
		return nil, apperrors.ErrNotFound
	}
	return inv, nil
}
