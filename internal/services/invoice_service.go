package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/Alison-Albino/EccoServ88-sub000/internal/models"
	"github.com/Alison-Albino/EccoServ88-sub000/internal/repository"
	"github.com/Alison-Albino/EccoServ88-sub000/internal/utils"
)

// InvoiceStore is the invoice persistence surface.
type InvoiceStore interface {
	Create(ctx context.Context, invoice *models.Invoice) error
	GetByID(ctx context.Context, invoiceID uuid.UUID) (*models.Invoice, error)
	GetActiveByVisit(ctx context.Context, visitID uuid.UUID) (*models.Invoice, error)
	GetDetails(ctx context.Context, invoiceID uuid.UUID) (*models.InvoiceWithDetails, error)
	ListDetails(ctx context.Context) ([]models.InvoiceWithDetails, error)
	ListDetailsByClient(ctx context.Context, clientID uuid.UUID) ([]models.InvoiceWithDetails, error)
	MarkSent(ctx context.Context, invoiceID uuid.UUID, sentAt time.Time) error
	MarkPaid(ctx context.Context, invoiceID uuid.UUID, method models.PaymentMethod, paidDate time.Time) error
	UpdateStatus(ctx context.Context, invoiceID uuid.UUID, status models.InvoiceStatus) error
}

type InvoiceService struct {
	invoices InvoiceStore
	visits   VisitStore
	wells    WellStore
	now      func() time.Time
}

func NewInvoiceService(invoices InvoiceStore, visits VisitStore, wells WellStore) *InvoiceService {
	return &InvoiceService{
		invoices: invoices,
		visits:   visits,
		wells:    wells,
		now:      time.Now,
	}
}

// CreateInvoice bills a visit. The client is derived from the visit's well,
// and a visit can carry at most one invoice that is not cancelled.
func (s *InvoiceService) CreateInvoice(ctx context.Context, req *models.CreateInvoiceRequest) (*models.Invoice, error) {
	visit, err := s.visits.GetByID(ctx, req.VisitID)
	if err != nil {
		return nil, err
	}

	well, err := s.wells.GetByID(ctx, visit.WellID)
	if err != nil {
		return nil, err
	}

	if _, err := s.invoices.GetActiveByVisit(ctx, req.VisitID); err == nil {
		return nil, fmt.Errorf("%w: visit %s already has an invoice", ErrInvoiceExists, req.VisitID)
	} else if !errors.Is(err, repository.ErrNotFound) {
		return nil, err
	}

	dueDate, err := time.Parse(dateLayout, req.DueDate)
	if err != nil {
		return nil, fmt.Errorf("%w: invalid due date %q", ErrValidation, req.DueDate)
	}

	serviceValue, materialCosts, totalAmount, err := invoiceAmounts(req)
	if err != nil {
		return nil, err
	}

	if req.PaymentMethod != "" && !req.PaymentMethod.Valid() {
		return nil, fmt.Errorf("%w: unknown payment method %q", ErrValidation, req.PaymentMethod)
	}

	now := s.now()
	invoiceNumber := utils.GenerateInvoiceNumber(now)

	invoice := &models.Invoice{
		ID:            uuid.New(),
		InvoiceNumber: invoiceNumber,
		VisitID:       req.VisitID,
		ClientID:      well.ClientID,
		ProviderID:    visit.ProviderID,
		Description:   req.Description,
		ServiceValue:  serviceValue,
		MaterialCosts: materialCosts,
		TotalAmount:   totalAmount,
		IsFree:        req.IsFree,
		Status:        models.InvoiceStatusPending,
		DueDate:       dueDate,
		PaymentMethod: req.PaymentMethod,
		PaymentURL:    utils.PaymentURL(req.PaymentMethod, invoiceNumber),
		Notes:         req.Notes,
	}

	if err := s.invoices.Create(ctx, invoice); err != nil {
		return nil, err
	}

	return invoice, nil
}

// invoiceAmounts parses and totals the monetary fields. Free invoices zero
// everything regardless of the submitted values.
func invoiceAmounts(req *models.CreateInvoiceRequest) (service, materials, total string, err error) {
	if req.IsFree {
		return "0.00", "0.00", "0.00", nil
	}

	serviceValue, err := parseAmount(req.ServiceValue, "service value")
	if err != nil {
		return "", "", "", err
	}

	materialCosts := decimal.Zero
	if req.MaterialCosts != "" {
		materialCosts, err = parseAmount(req.MaterialCosts, "material costs")
		if err != nil {
			return "", "", "", err
		}
	}

	totalAmount := serviceValue.Add(materialCosts).Round(2)
	return serviceValue.StringFixed(2), materialCosts.StringFixed(2), totalAmount.StringFixed(2), nil
}

func parseAmount(raw, field string) (decimal.Decimal, error) {
	value, err := decimal.NewFromString(raw)
	if err != nil {
		return decimal.Zero, fmt.Errorf("%w: invalid %s %q", ErrValidation, field, raw)
	}
	if value.Sign() < 0 {
		return decimal.Zero, fmt.Errorf("%w: %s cannot be negative", ErrValidation, field)
	}
	return value.Round(2), nil
}

func (s *InvoiceService) GetInvoice(ctx context.Context, invoiceID uuid.UUID) (*models.InvoiceWithDetails, error) {
	return s.invoices.GetDetails(ctx, invoiceID)
}

func (s *InvoiceService) ListInvoices(ctx context.Context) ([]models.InvoiceWithDetails, error) {
	return s.invoices.ListDetails(ctx)
}

func (s *InvoiceService) ListInvoicesByClient(ctx context.Context, clientID uuid.UUID) ([]models.InvoiceWithDetails, error) {
	return s.invoices.ListDetailsByClient(ctx, clientID)
}

// SendInvoice moves a pending invoice to sent and stamps the send time.
func (s *InvoiceService) SendInvoice(ctx context.Context, invoiceID uuid.UUID) error {
	invoice, err := s.invoices.GetByID(ctx, invoiceID)
	if err != nil {
		return err
	}

	if invoice.Status != models.InvoiceStatusPending {
		return fmt.Errorf("%w: %s -> %s", ErrInvalidTransition, invoice.Status, models.InvoiceStatusSent)
	}

	return s.invoices.MarkSent(ctx, invoiceID, s.now())
}

// PayInvoice settles a sent or overdue invoice. The payment method is
// required and recorded alongside the payment date.
func (s *InvoiceService) PayInvoice(ctx context.Context, invoiceID uuid.UUID, method models.PaymentMethod) error {
	if method == "" {
		return ErrPaymentMethodRequired
	}
	if !method.Valid() {
		return fmt.Errorf("%w: unknown payment method %q", ErrValidation, method)
	}

	invoice, err := s.invoices.GetByID(ctx, invoiceID)
	if err != nil {
		return err
	}

	if !invoice.Status.CanTransitionTo(models.InvoiceStatusPaid) {
		return fmt.Errorf("%w: %s -> %s", ErrInvalidTransition, invoice.Status, models.InvoiceStatusPaid)
	}

	return s.invoices.MarkPaid(ctx, invoiceID, method, s.now())
}

// UpdateInvoiceStatus applies a guarded status transition. Paying goes
// through PayInvoice so the payment method is always captured.
func (s *InvoiceService) UpdateInvoiceStatus(ctx context.Context, invoiceID uuid.UUID, status models.InvoiceStatus) error {
	if !status.Valid() {
		return fmt.Errorf("%w: unknown invoice status %q", ErrValidation, status)
	}
	if status == models.InvoiceStatusPaid {
		return ErrPaymentMethodRequired
	}

	invoice, err := s.invoices.GetByID(ctx, invoiceID)
	if err != nil {
		return err
	}

	if !invoice.Status.CanTransitionTo(status) {
		return fmt.Errorf("%w: %s -> %s", ErrInvalidTransition, invoice.Status, status)
	}

	if status == models.InvoiceStatusSent {
		return s.invoices.MarkSent(ctx, invoiceID, s.now())
	}
	return s.invoices.UpdateStatus(ctx, invoiceID, status)
}
