package services

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Alison-Albino/EccoServ88-sub000/internal/models"
	"github.com/Alison-Albino/EccoServ88-sub000/internal/repository"
)

type invoiceFixture struct {
	svc      *InvoiceService
	invoices *fakeInvoiceStore
	visitID  uuid.UUID
	clientID uuid.UUID
}

func newInvoiceFixture(t *testing.T) *invoiceFixture {
	t.Helper()

	wells := newFakeWellStore()
	visits := newFakeVisitStore()
	invoices := newFakeInvoiceStore()

	clientID := uuid.New()
	wellID := uuid.New()
	wells.wells[wellID] = &models.Well{ID: wellID, ClientID: clientID, Status: models.WellStatusActive}

	visitID := uuid.New()
	visits.visits[visitID] = &models.Visit{
		ID:         visitID,
		WellID:     wellID,
		ProviderID: uuid.New(),
		Status:     models.VisitStatusCompleted,
	}

	svc := NewInvoiceService(invoices, visits, wells)
	svc.now = func() time.Time { return time.Date(2026, 8, 31, 10, 0, 0, 0, time.UTC) }

	return &invoiceFixture{svc: svc, invoices: invoices, visitID: visitID, clientID: clientID}
}

func (f *invoiceFixture) request() *models.CreateInvoiceRequest {
	return &models.CreateInvoiceRequest{
		VisitID:      f.visitID,
		Description:  "Manutenção preventiva",
		ServiceValue: "100.00",
		DueDate:      "2026-09-15",
	}
}

func TestCreateInvoice(t *testing.T) {
	f := newInvoiceFixture(t)

	req := f.request()
	req.MaterialCosts = "50.00"
	req.PaymentMethod = models.PaymentMethodPix

	invoice, err := f.svc.CreateInvoice(context.Background(), req)
	require.NoError(t, err)

	assert.Equal(t, "100.00", invoice.ServiceValue)
	assert.Equal(t, "50.00", invoice.MaterialCosts)
	assert.Equal(t, "150.00", invoice.TotalAmount)
	assert.Equal(t, models.InvoiceStatusPending, invoice.Status)
	assert.Equal(t, f.clientID, invoice.ClientID)
	assert.True(t, strings.HasPrefix(invoice.InvoiceNumber, "FAT-20260831-"))
	assert.Contains(t, invoice.PaymentURL, invoice.InvoiceNumber)
}

func TestCreateInvoiceFree(t *testing.T) {
	f := newInvoiceFixture(t)

	req := f.request()
	req.IsFree = true
	req.ServiceValue = "999.99"

	invoice, err := f.svc.CreateInvoice(context.Background(), req)
	require.NoError(t, err)

	assert.Equal(t, "0.00", invoice.ServiceValue)
	assert.Equal(t, "0.00", invoice.MaterialCosts)
	assert.Equal(t, "0.00", invoice.TotalAmount)
}

func TestCreateInvoiceUnknownVisit(t *testing.T) {
	f := newInvoiceFixture(t)

	req := f.request()
	req.VisitID = uuid.New()

	_, err := f.svc.CreateInvoice(context.Background(), req)
	assert.ErrorIs(t, err, repository.ErrNotFound)
}

func TestCreateInvoiceDuplicate(t *testing.T) {
	f := newInvoiceFixture(t)

	_, err := f.svc.CreateInvoice(context.Background(), f.request())
	require.NoError(t, err)

	_, err = f.svc.CreateInvoice(context.Background(), f.request())
	assert.ErrorIs(t, err, ErrInvoiceExists)
}

func TestCreateInvoiceAfterCancellation(t *testing.T) {
	f := newInvoiceFixture(t)

	first, err := f.svc.CreateInvoice(context.Background(), f.request())
	require.NoError(t, err)

	require.NoError(t, f.svc.UpdateInvoiceStatus(context.Background(), first.ID, models.InvoiceStatusCancelled))

	// A cancelled invoice no longer blocks the visit.
	_, err = f.svc.CreateInvoice(context.Background(), f.request())
	assert.NoError(t, err)
}

func TestCreateInvoiceBadAmounts(t *testing.T) {
	f := newInvoiceFixture(t)

	req := f.request()
	req.ServiceValue = "abc"
	_, err := f.svc.CreateInvoice(context.Background(), req)
	assert.ErrorIs(t, err, ErrValidation)

	req = f.request()
	req.ServiceValue = "-10.00"
	_, err = f.svc.CreateInvoice(context.Background(), req)
	assert.ErrorIs(t, err, ErrValidation)
}

func TestSendInvoice(t *testing.T) {
	f := newInvoiceFixture(t)

	invoice, err := f.svc.CreateInvoice(context.Background(), f.request())
	require.NoError(t, err)

	require.NoError(t, f.svc.SendInvoice(context.Background(), invoice.ID))

	stored, err := f.svc.invoices.GetByID(context.Background(), invoice.ID)
	require.NoError(t, err)
	assert.Equal(t, models.InvoiceStatusSent, stored.Status)
	require.NotNil(t, stored.SentAt)

	// Sending twice is rejected.
	err = f.svc.SendInvoice(context.Background(), invoice.ID)
	assert.ErrorIs(t, err, ErrInvalidTransition)
}

func TestPayInvoice(t *testing.T) {
	f := newInvoiceFixture(t)

	invoice, err := f.svc.CreateInvoice(context.Background(), f.request())
	require.NoError(t, err)
	require.NoError(t, f.svc.SendInvoice(context.Background(), invoice.ID))

	require.NoError(t, f.svc.PayInvoice(context.Background(), invoice.ID, models.PaymentMethodBoleto))

	stored, err := f.svc.invoices.GetByID(context.Background(), invoice.ID)
	require.NoError(t, err)
	assert.Equal(t, models.InvoiceStatusPaid, stored.Status)
	assert.Equal(t, models.PaymentMethodBoleto, stored.PaymentMethod)
	require.NotNil(t, stored.PaidDate)
}

func TestPayInvoiceRequiresMethod(t *testing.T) {
	f := newInvoiceFixture(t)

	invoice, err := f.svc.CreateInvoice(context.Background(), f.request())
	require.NoError(t, err)
	require.NoError(t, f.svc.SendInvoice(context.Background(), invoice.ID))

	err = f.svc.PayInvoice(context.Background(), invoice.ID, "")
	assert.ErrorIs(t, err, ErrPaymentMethodRequired)

	// Status unchanged by the rejected payment.
	stored, err := f.svc.invoices.GetByID(context.Background(), invoice.ID)
	require.NoError(t, err)
	assert.Equal(t, models.InvoiceStatusSent, stored.Status)
}

func TestPayInvoicePendingRejected(t *testing.T) {
	f := newInvoiceFixture(t)

	invoice, err := f.svc.CreateInvoice(context.Background(), f.request())
	require.NoError(t, err)

	err = f.svc.PayInvoice(context.Background(), invoice.ID, models.PaymentMethodPix)
	assert.ErrorIs(t, err, ErrInvalidTransition)
}

func TestPayOverdueInvoice(t *testing.T) {
	f := newInvoiceFixture(t)

	invoice, err := f.svc.CreateInvoice(context.Background(), f.request())
	require.NoError(t, err)
	require.NoError(t, f.svc.SendInvoice(context.Background(), invoice.ID))
	require.NoError(t, f.svc.UpdateInvoiceStatus(context.Background(), invoice.ID, models.InvoiceStatusOverdue))

	assert.NoError(t, f.svc.PayInvoice(context.Background(), invoice.ID, models.PaymentMethodCash))
}

func TestUpdateInvoiceStatusGuards(t *testing.T) {
	f := newInvoiceFixture(t)

	invoice, err := f.svc.CreateInvoice(context.Background(), f.request())
	require.NoError(t, err)

	// Paying through the generic status patch is rejected.
	err = f.svc.UpdateInvoiceStatus(context.Background(), invoice.ID, models.InvoiceStatusPaid)
	assert.ErrorIs(t, err, ErrPaymentMethodRequired)

	err = f.svc.UpdateInvoiceStatus(context.Background(), invoice.ID, "archived")
	assert.ErrorIs(t, err, ErrValidation)

	require.NoError(t, f.svc.UpdateInvoiceStatus(context.Background(), invoice.ID, models.InvoiceStatusCancelled))

	err = f.svc.UpdateInvoiceStatus(context.Background(), invoice.ID, models.InvoiceStatusPending)
	assert.ErrorIs(t, err, ErrInvalidTransition)
}
