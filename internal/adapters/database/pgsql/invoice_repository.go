package pgsql

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/bakemate/recipe_invoice_app/internal/apperrors"
	"github.com/bakemate/recipe_invoice_app/internal/core/domain"
	portsrepo "github.com/bakemate/recipe_invoice_app/internal/core/ports/repositories"
)

const uniqueViolationCode = "23505"

// PgxInvoiceRepository persists invoice records and their line items in
// PostgreSQL. Header and items are written atomically in one transaction.
type PgxInvoiceRepository struct {
	pool *pgxpool.Pool
}

// NewPgxInvoiceRepository creates a new repository for invoice data.
func NewPgxInvoiceRepository(pool *pgxpool.Pool) portsrepo.InvoiceRepositoryWithTx {
	return &PgxInvoiceRepository{pool: pool}
}

func (r *PgxInvoiceRepository) Begin(ctx context.Context) (pgx.Tx, error) {
	return r.pool.Begin(ctx)
}

func (r *PgxInvoiceRepository) Commit(ctx context.Context, tx pgx.Tx) error {
	return tx.Commit(ctx)
}

func (r *PgxInvoiceRepository) Rollback(ctx context.Context, tx pgx.Tx) error {
	return tx.Rollback(ctx)
}

// SaveInvoice inserts a new invoice with its line items.
func (r *PgxInvoiceRepository) SaveInvoice(ctx context.Context, invoice domain.Invoice) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback(ctx) //nolint:errcheck // rollback after commit is a no-op

	query := `
		INSERT INTO invoices (
			invoice_id, owner_id, invoice_number, status, issue_date, due_date,
			currency_code, sender_name, sender_company, sender_address, sender_phone, sender_email,
			recipient_name, recipient_company, recipient_address, recipient_phone, recipient_email,
			tax_rate, discount_amount, subtotal, tax_amount, grand_total, notes,
			created_at, created_by, last_updated_at, last_updated_by
		) VALUES (
			$1, $2, $3, $4, $5, $6,
			$7, $8, $9, $10, $11, $12,
			$13, $14, $15, $16, $17,
			$18, $19, $20, $21, $22, $23,
			$24, $25, $26, $27
		);
	`
	_, err = tx.Exec(ctx, query,
		invoice.InvoiceID, invoice.OwnerID, invoice.InvoiceNumber, invoice.Status, invoice.IssueDate, invoice.DueDate,
		invoice.CurrencyCode, invoice.Sender.Name, invoice.Sender.Company, invoice.Sender.Address, invoice.Sender.Phone, invoice.Sender.Email,
		invoice.Recipient.Name, invoice.Recipient.Company, invoice.Recipient.Address, invoice.Recipient.Phone, invoice.Recipient.Email,
		invoice.TaxRate, invoice.DiscountAmount, invoice.Totals.Subtotal, invoice.Totals.TaxAmount, invoice.Totals.GrandTotal, invoice.Notes,
		invoice.CreatedAt, invoice.CreatedBy, invoice.LastUpdatedAt, invoice.LastUpdatedBy,
	)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == uniqueViolationCode {
			return fmt.Errorf("invoice %s: %w", invoice.InvoiceID, apperrors.ErrDuplicate)
		}
		return fmt.Errorf("failed to insert invoice %s: %w", invoice.InvoiceID, err)
	}

	if err := insertLineItems(ctx, tx, invoice.InvoiceID, invoice.LineItems); err != nil {
		return err
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("failed to commit invoice %s: %w", invoice.InvoiceID, err)
	}
	return nil
}

// UpdateInvoice replaces the invoice header and rewrites its line items.
func (r *PgxInvoiceRepository) UpdateInvoice(ctx context.Context, invoice domain.Invoice) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback(ctx) //nolint:errcheck // rollback after commit is a no-op

	query := `
		UPDATE invoices SET
			invoice_number = $2, status = $3, issue_date = $4, due_date = $5,
			currency_code = $6, sender_name = $7, sender_company = $8, sender_address = $9,
			sender_phone = $10, sender_email = $11, recipient_name = $12, recipient_company = $13,
			recipient_address = $14, recipient_phone = $15, recipient_email = $16,
			tax_rate = $17, discount_amount = $18, subtotal = $19, tax_amount = $20,
			grand_total = $21, notes = $22, last_updated_at = $23, last_updated_by = $24
		WHERE invoice_id = $1;
	`
	tag, err := tx.Exec(ctx, query,
		invoice.InvoiceID, invoice.InvoiceNumber, invoice.Status, invoice.IssueDate, invoice.DueDate,
		invoice.CurrencyCode, invoice.Sender.Name, invoice.Sender.Company, invoice.Sender.Address,
		invoice.Sender.Phone, invoice.Sender.Email, invoice.Recipient.Name, invoice.Recipient.Company,
		invoice.Recipient.Address, invoice.Recipient.Phone, invoice.Recipient.Email,
		invoice.TaxRate, invoice.DiscountAmount, invoice.Totals.Subtotal, invoice.Totals.TaxAmount,
		invoice.Totals.GrandTotal, invoice.Notes, invoice.LastUpdatedAt, invoice.LastUpdatedBy,
	)
	if err != nil {
		return fmt.Errorf("failed to update invoice %s: %w", invoice.InvoiceID, err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}

	if _, err := tx.Exec(ctx, `DELETE FROM invoice_line_items WHERE invoice_id = $1;`, invoice.InvoiceID); err != nil {
		return fmt.Errorf("failed to clear line items for invoice %s: %w", invoice.InvoiceID, err)
	}
	if err := insertLineItems(ctx, tx, invoice.InvoiceID, invoice.LineItems); err != nil {
		return err
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("failed to commit invoice %s: %w", invoice.InvoiceID, err)
	}
	return nil
}

// DeleteInvoice removes an invoice; line items go with it via ON DELETE CASCADE.
func (r *PgxInvoiceRepository) DeleteInvoice(ctx context.Context, invoiceID string) error {
	tag, err := r.pool.Exec(ctx, `DELETE FROM invoices WHERE invoice_id = $1;`, invoiceID)
	if err != nil {
		return fmt.Errorf("failed to delete invoice %s: %w", invoiceID, err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

// FindInvoiceByID retrieves one invoice with its line items in position order.
func (r *PgxInvoiceRepository) FindInvoiceByID(ctx context.Context, invoiceID string) (*domain.Invoice, error) {
	query := selectInvoice + ` WHERE invoice_id = $1;`
	row := r.pool.QueryRow(ctx, query, invoiceID)
	invoice, err := scanInvoice(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find invoice %s: %w", invoiceID, err)
	}

	items, err := r.findLineItems(ctx, invoiceID)
	if err != nil {
		return nil, err
	}
	invoice.LineItems = items
	return invoice, nil
}

// ListInvoicesByOwner retrieves all invoices for an owner, newest first.
func (r *PgxInvoiceRepository) ListInvoicesByOwner(ctx context.Context, ownerID string) ([]domain.Invoice, error) {
	query := selectInvoice + ` WHERE owner_id = $1 ORDER BY created_at DESC;`
	rows, err := r.pool.Query(ctx, query, ownerID)
	if err != nil {
		return nil, fmt.Errorf("failed to list invoices for owner %s: %w", ownerID, err)
	}
	defer rows.Close()

	var invoices []domain.Invoice
	for rows.Next() {
		invoice, err := scanInvoice(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan invoice row: %w", err)
		}
		invoices = append(invoices, *invoice)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed iterating invoice rows: %w", err)
	}

	for i := range invoices {
		items, err := r.findLineItems(ctx, invoices[i].InvoiceID)
		if err != nil {
			return nil, err
		}
		invoices[i].LineItems = items
	}
	return invoices, nil
}

const selectInvoice = `
	SELECT invoice_id, owner_id, invoice_number, status, issue_date, due_date,
		currency_code, sender_name, sender_company, sender_address, sender_phone, sender_email,
		recipient_name, recipient_company, recipient_address, recipient_phone, recipient_email,
		tax_rate, discount_amount, subtotal, tax_amount, grand_total, notes,
		created_at, created_by, last_updated_at, last_updated_by
	FROM invoices`

func scanInvoice(row pgx.Row) (*domain.Invoice, error) {
	var inv domain.Invoice
	err := row.Scan(
		&inv.InvoiceID, &inv.OwnerID, &inv.InvoiceNumber, &inv.Status, &inv.IssueDate, &inv.DueDate,
		&inv.CurrencyCode, &inv.Sender.Name, &inv.Sender.Company, &inv.Sender.Address, &inv.Sender.Phone, &inv.Sender.Email,
		&inv.Recipient.Name, &inv.Recipient.Company, &inv.Recipient.Address, &inv.Recipient.Phone, &inv.Recipient.Email,
		&inv.TaxRate, &inv.DiscountAmount, &inv.Totals.Subtotal, &inv.Totals.TaxAmount, &inv.Totals.GrandTotal, &inv.Notes,
		&inv.CreatedAt, &inv.CreatedBy, &inv.LastUpdatedAt, &inv.LastUpdatedBy,
	)
	if err != nil {
		return nil, err
	}
	return &inv, nil
}

func (r *PgxInvoiceRepository) findLineItems(ctx context.Context, invoiceID string) ([]domain.LineItem, error) {
	query := `
		SELECT description, quantity, unit_price, total_price
		FROM invoice_line_items
		WHERE invoice_id = $1
		ORDER BY position;
	`
	rows, err := r.pool.Query(ctx, query, invoiceID)
	if err != nil {
		return nil, fmt.Errorf("failed to load line items for invoice %s: %w", invoiceID, err)
	}
	defer rows.Close()

	var items []domain.LineItem
	for rows.Next() {
		var item domain.LineItem
		if err := rows.Scan(&item.Description, &item.Quantity, &item.UnitPrice, &item.TotalPrice); err != nil {
			return nil, fmt.Errorf("failed to scan line item row: %w", err)
		}
		items = append(items, item)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed iterating line item rows: %w", err)
	}
	return items, nil
}

func insertLineItems(ctx context.Context, tx pgx.Tx, invoiceID string, items []domain.LineItem) error {
	query := `
		INSERT INTO invoice_line_items (invoice_id, position, description, quantity, unit_price, total_price)
		VALUES ($1, $2, $3, $4, $5, $6);
	`
	for i, item := range items {
		if _, err := tx.Exec(ctx, query, invoiceID, i, item.Description, item.Quantity, item.UnitPrice, item.TotalPrice); err != nil {
			return fmt.Errorf("failed to insert line item %d for invoice %s: %w", i, invoiceID, err)
		}
	}
	return nil
}
