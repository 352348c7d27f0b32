package repositories

import (
	"context"

	"clientdesk/internal/models"

	"github.com/google/uuid"
)

type InvoiceRepository interface {
	GetByID(ctx context.Context, id uuid.UUID) (*models.Invoice, error)
	ListByClient(ctx context.Context, clientID uuid.UUID, limit, offset int) ([]*models.Invoice, error)
	List(ctx context.Context, limit, offset int) ([]*models.Invoice, error)
}

type invoiceRepo struct {
	db Database
}

func NewInvoiceRepo(db Database) InvoiceRepository {
	return &invoiceRepo{db: db}
}

const invoiceColumns = `id, client_id, project_id, invoice_number, total_amount, status, issued_date, due_date, paid_date, created_at, updated_at`

func (r *invoiceRepo) GetByID(ctx context.Context, id uuid.UUID) (*models.Invoice, error) {
	invoice := &models.Invoice{}
	query := `SELECT ` + invoiceColumns + ` FROM invoices WHERE id = $1`
	err := r.db.QueryRow(ctx, query, id).Scan(&invoice.ID, &invoice.ClientID, &invoice.ProjectID,
		&invoice.InvoiceNumber, &invoice.TotalAmount, &invoice.Status, &invoice.IssuedDate,
		&invoice.DueDate, &invoice.PaidDate, &invoice.CreatedAt, &invoice.UpdatedAt)
	if err != nil {
		return nil, mapError("get invoice", err)
	}
	return invoice, nil
}

func (r *invoiceRepo) ListByClient(ctx context.Context, clientID uuid.UUID, limit, offset int) ([]*models.Invoice, error) {
	query := `SELECT ` + invoiceColumns + ` FROM invoices WHERE client_id = $1 ORDER BY issued_date DESC LIMIT $2 OFFSET $3`
	rows, err := r.db.Query(ctx, query, clientID, limit, offset)
	if err != nil {
		return nil, mapError("list invoices", err)
	}
	defer rows.Close()

	var invoices []*models.Invoice
	for rows.Next() {
		invoice := &models.Invoice{}
		if err := rows.Scan(&invoice.ID, &invoice.ClientID, &invoice.ProjectID, &invoice.InvoiceNumber,
			&invoice.TotalAmount, &invoice.Status, &invoice.IssuedDate, &invoice.DueDate,
			&invoice.PaidDate, &invoice.CreatedAt, &invoice.UpdatedAt); err != nil {
			return nil, mapError("list invoices", err)
		}
		invoices = append(invoices, invoice)
	}
	return invoices, mapError("list invoices", rows.Err())
}

func (r *invoiceRepo) List(ctx context.Context, limit, offset int) ([]*models.Invoice, error) {
	query := `SELECT ` + invoiceColumns + ` FROM invoices ORDER BY issued_date DESC LIMIT $1 OFFSET $2`
	rows, err := r.db.Query(ctx, query, limit, offset)
	if err != nil {
		return nil, mapError("list invoices", err)
	}
	defer rows.Close()

	var invoices []*models.Invoice
	for rows.Next() {
		invoice := &models.Invoice{}
		if err := rows.Scan(&invoice.ID, &invoice.ClientID, &invoice.ProjectID, &invoice.InvoiceNumber,
			&invoice.TotalAmount, &invoice.Status, &invoice.IssuedDate, &invoice.DueDate,
			&invoice.PaidDate, &invoice.CreatedAt, &invoice.UpdatedAt); err != nil {
			return nil, mapError("list invoices", err)
		}
		invoices = append(invoices, invoice)
	}
	return invoices, mapError("list invoices", rows.Err())
}
