package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/Alison-Albino/EccoServ88-sub000/internal/models"
)

type InvoiceRepository struct {
	pool *pgxpool.Pool
}

func NewInvoiceRepository(pool *pgxpool.Pool) *InvoiceRepository {
	return &InvoiceRepository{pool: pool}
}

const invoiceColumns = `id, visit_id, client_id, provider_id, invoice_number, description,
	service_value::text, material_costs::text, total_amount::text, is_free, status,
	due_date, sent_at, paid_date, payment_method, payment_url, notes, created_at`

func scanInvoice(row rowScanner) (*models.Invoice, error) {
	inv := &models.Invoice{}
	err := row.Scan(
		&inv.ID,
		&inv.VisitID,
		&inv.ClientID,
		&inv.ProviderID,
		&inv.InvoiceNumber,
		&inv.Description,
		&inv.ServiceValue,
		&inv.MaterialCosts,
		&inv.TotalAmount,
		&inv.IsFree,
		&inv.Status,
		&inv.DueDate,
		&inv.SentAt,
		&inv.PaidDate,
		&inv.PaymentMethod,
		&inv.PaymentURL,
		&inv.Notes,
		&inv.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	return inv, nil
}

// invoiceDetailsSelect resolves an invoice's client and provider (each with
// its user) plus the originating visit and its well. The well join is pinned
// to the invoice's client so an inconsistent chain is dropped rather than
// partially returned.
const invoiceDetailsSelect = `
	SELECT i.id, i.visit_id, i.client_id, i.provider_id, i.invoice_number, i.description,
		i.service_value::text, i.material_costs::text, i.total_amount::text, i.is_free, i.status,
		i.due_date, i.sent_at, i.paid_date, i.payment_method, i.payment_url, i.notes, i.created_at,
		c.id, c.user_id, c.address, c.phone, c.created_at, c.updated_at,
		cu.id, cu.email, cu.name, cu.user_type, cu.created_at, cu.updated_at,
		p.id, p.user_id, p.specialties, p.phone, p.created_at, p.updated_at,
		pu.id, pu.email, pu.name, pu.user_type, pu.created_at, pu.updated_at,
		v.id, v.well_id, v.provider_id, v.visit_date, v.service_type, v.visit_type,
		v.next_visit_date, v.observations, v.status, v.photos, v.documents, v.created_at,
		w.id, w.client_id, w.name, w.type, w.location, w.status, w.created_at, w.updated_at
	FROM invoices i
	JOIN clients c ON c.id = i.client_id
	JOIN users cu ON cu.id = c.user_id
	JOIN providers p ON p.id = i.provider_id
	JOIN users pu ON pu.id = p.user_id
	JOIN visits v ON v.id = i.visit_id
	JOIN wells w ON w.id = v.well_id AND w.client_id = i.client_id
`

func scanInvoiceDetails(row rowScanner) (*models.InvoiceWithDetails, error) {
	view := &models.InvoiceWithDetails{}

	err := row.Scan(
		&view.Invoice.ID,
		&view.Invoice.VisitID,
		&view.Invoice.ClientID,
		&view.Invoice.ProviderID,
		&view.Invoice.InvoiceNumber,
		&view.Invoice.Description,
		&view.Invoice.ServiceValue,
		&view.Invoice.MaterialCosts,
		&view.Invoice.TotalAmount,
		&view.Invoice.IsFree,
		&view.Invoice.Status,
		&view.Invoice.DueDate,
		&view.Invoice.SentAt,
		&view.Invoice.PaidDate,
		&view.Invoice.PaymentMethod,
		&view.Invoice.PaymentURL,
		&view.Invoice.Notes,
		&view.Invoice.CreatedAt,
		&view.Client.ID,
		&view.Client.UserID,
		&view.Client.Address,
		&view.Client.Phone,
		&view.Client.CreatedAt,
		&view.Client.UpdatedAt,
		&view.ClientUser.ID,
		&view.ClientUser.Email,
		&view.ClientUser.Name,
		&view.ClientUser.UserType,
		&view.ClientUser.CreatedAt,
		&view.ClientUser.UpdatedAt,
		&view.Provider.ID,
		&view.Provider.UserID,
		&view.Provider.Specialties,
		&view.Provider.Phone,
		&view.Provider.CreatedAt,
		&view.Provider.UpdatedAt,
		&view.ProviderUser.ID,
		&view.ProviderUser.Email,
		&view.ProviderUser.Name,
		&view.ProviderUser.UserType,
		&view.ProviderUser.CreatedAt,
		&view.ProviderUser.UpdatedAt,
		&view.Visit.Visit.ID,
		&view.Visit.Visit.WellID,
		&view.Visit.Visit.ProviderID,
		&view.Visit.Visit.VisitDate,
		&view.Visit.Visit.ServiceType,
		&view.Visit.Visit.VisitType,
		&view.Visit.Visit.NextVisitDate,
		&view.Visit.Visit.Observations,
		&view.Visit.Visit.Status,
		&view.Visit.Visit.Photos,
		&view.Visit.Visit.Documents,
		&view.Visit.Visit.CreatedAt,
		&view.Visit.Well.Well.ID,
		&view.Visit.Well.Well.ClientID,
		&view.Visit.Well.Well.Name,
		&view.Visit.Well.Well.Type,
		&view.Visit.Well.Well.Location,
		&view.Visit.Well.Well.Status,
		&view.Visit.Well.Well.CreatedAt,
		&view.Visit.Well.Well.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	// The visit's client and provider chains are the invoice's own.
	view.Visit.Well.Client = view.Client
	view.Visit.Well.ClientUser = view.ClientUser
	view.Visit.Provider = view.Provider
	view.Visit.ProviderUser = view.ProviderUser

	view.StatusLabel = view.Invoice.Status.Label()
	view.Visit.StatusLabel = view.Visit.Visit.Status.Label()
	view.Visit.Well.StatusLabel = view.Visit.Well.Well.Status.Label()
	return view, nil
}

// Create inserts a new invoice.
func (r *InvoiceRepository) Create(ctx context.Context, inv *models.Invoice) error {
	query := `
		INSERT INTO invoices (id, visit_id, client_id, provider_id, invoice_number, description,
			service_value, material_costs, total_amount, is_free, status, due_date,
			payment_method, payment_url, notes)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15)
		RETURNING created_at
	`

	err := r.pool.QueryRow(ctx, query,
		inv.ID,
		inv.VisitID,
		inv.ClientID,
		inv.ProviderID,
		inv.InvoiceNumber,
		inv.Description,
		inv.ServiceValue,
		inv.MaterialCosts,
		inv.TotalAmount,
		inv.IsFree,
		inv.Status,
		inv.DueDate,
		string(inv.PaymentMethod),
		inv.PaymentURL,
		inv.Notes,
	).Scan(&inv.CreatedAt)
	if err != nil {
		return fmt.Errorf("failed to create invoice: %w", err)
	}

	return nil
}

// GetByID retrieves an invoice by ID.
func (r *InvoiceRepository) GetByID(ctx context.Context, invoiceID uuid.UUID) (*models.Invoice, error) {
	query := `SELECT ` + invoiceColumns + ` FROM invoices WHERE id = $1`

	inv, err := scanInvoice(r.pool.QueryRow(ctx, query, invoiceID))
	if err != nil {
		return nil, fmt.Errorf("failed to get invoice: %w", notFoundOr(err))
	}

	return inv, nil
}

// GetActiveByVisit retrieves the non-cancelled invoice referencing a visit,
// if one exists.
func (r *InvoiceRepository) GetActiveByVisit(ctx context.Context, visitID uuid.UUID) (*models.Invoice, error) {
	query := `SELECT ` + invoiceColumns + ` FROM invoices WHERE visit_id = $1 AND status <> 'cancelled'`

	inv, err := scanInvoice(r.pool.QueryRow(ctx, query, visitID))
	if err != nil {
		return nil, fmt.Errorf("failed to get invoice for visit: %w", notFoundOr(err))
	}

	return inv, nil
}

// GetDetails retrieves one invoice with its full chain resolved.
func (r *InvoiceRepository) GetDetails(ctx context.Context, invoiceID uuid.UUID) (*models.InvoiceWithDetails, error) {
	row := r.pool.QueryRow(ctx, invoiceDetailsSelect+` WHERE i.id = $1`, invoiceID)

	view, err := scanInvoiceDetails(row)
	if err != nil {
		return nil, fmt.Errorf("failed to get invoice details: %w", notFoundOr(err))
	}

	return view, nil
}

// ListDetails retrieves all invoices with details, newest first.
func (r *InvoiceRepository) ListDetails(ctx context.Context) ([]models.InvoiceWithDetails, error) {
	return r.listDetails(ctx, invoiceDetailsSelect+` ORDER BY i.created_at DESC`)
}

// ListDetailsByClient retrieves the invoices billed to one client.
func (r *InvoiceRepository) ListDetailsByClient(ctx context.Context, clientID uuid.UUID) ([]models.InvoiceWithDetails, error) {
	return r.listDetails(ctx, invoiceDetailsSelect+` WHERE i.client_id = $1 ORDER BY i.created_at DESC`, clientID)
}

func (r *InvoiceRepository) listDetails(ctx context.Context, query string, args ...any) ([]models.InvoiceWithDetails, error) {
	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list invoices: %w", err)
	}
	defer rows.Close()

	views := []models.InvoiceWithDetails{}
	for rows.Next() {
		view, err := scanInvoiceDetails(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan invoice: %w", err)
		}
		views = append(views, *view)
	}

	if rows.Err() != nil {
		return nil, fmt.Errorf("error iterating invoices: %w", rows.Err())
	}

	return views, nil
}

// MarkSent transitions an invoice to sent and records when.
func (r *InvoiceRepository) MarkSent(ctx context.Context, invoiceID uuid.UUID, sentAt time.Time) error {
	query := `UPDATE invoices SET status = 'sent', sent_at = $1 WHERE id = $2`

	result, err := r.pool.Exec(ctx, query, sentAt, invoiceID)
	if err != nil {
		return fmt.Errorf("failed to mark invoice sent: %w", err)
	}

	if result.RowsAffected() == 0 {
		return fmt.Errorf("failed to mark invoice sent: %w", ErrNotFound)
	}

	return nil
}

// MarkPaid transitions an invoice to paid with the payment method used.
func (r *InvoiceRepository) MarkPaid(ctx context.Context, invoiceID uuid.UUID, method models.PaymentMethod, paidDate time.Time) error {
	query := `UPDATE invoices SET status = 'paid', payment_method = $1, paid_date = $2 WHERE id = $3`

	result, err := r.pool.Exec(ctx, query, string(method), paidDate, invoiceID)
	if err != nil {
		return fmt.Errorf("failed to mark invoice paid: %w", err)
	}

	if result.RowsAffected() == 0 {
		return fmt.Errorf("failed to mark invoice paid: %w", ErrNotFound)
	}

	return nil
}

// UpdateStatus patches an invoice's status. Transition rules are enforced by
// the service layer before this is called.
func (r *InvoiceRepository) UpdateStatus(ctx context.Context, invoiceID uuid.UUID, status models.InvoiceStatus) error {
	result, err := r.pool.Exec(ctx, `UPDATE invoices SET status = $1 WHERE id = $2`, status, invoiceID)
	if err != nil {
		return fmt.Errorf("failed to update invoice status: %w", err)
	}

	if result.RowsAffected() == 0 {
		return fmt.Errorf("failed to update invoice status: %w", ErrNotFound)
	}

	return nil
}
