package services

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/Alison-Albino/EccoServ88-sub000/internal/models"
	"github.com/Alison-Albino/EccoServ88-sub000/internal/repository"
)

// In-memory stores backing the service tests.

type fakeUserStore struct {
	users     map[uuid.UUID]*models.User
	clients   map[uuid.UUID]*models.Client
	providers map[uuid.UUID]*models.Provider
}

func newFakeUserStore() *fakeUserStore {
	return &fakeUserStore{
		users:     map[uuid.UUID]*models.User{},
		clients:   map[uuid.UUID]*models.Client{},
		providers: map[uuid.UUID]*models.Provider{},
	}
}

func (f *fakeUserStore) CreateWithProfile(_ context.Context, user *models.User, client *models.Client, provider *models.Provider) error {
	u := *user
	f.users[user.ID] = &u
	if client != nil {
		c := *client
		f.clients[client.ID] = &c
	}
	if provider != nil {
		p := *provider
		f.providers[provider.ID] = &p
	}
	return nil
}

func (f *fakeUserStore) GetByEmail(_ context.Context, email string) (*models.User, error) {
	for _, u := range f.users {
		if u.Email == email {
			copied := *u
			return &copied, nil
		}
	}
	return nil, repository.ErrNotFound
}

func (f *fakeUserStore) GetByID(_ context.Context, userID uuid.UUID) (*models.User, error) {
	u, ok := f.users[userID]
	if !ok {
		return nil, repository.ErrNotFound
	}
	copied := *u
	return &copied, nil
}

func (f *fakeUserStore) GetWithProfile(_ context.Context, userID uuid.UUID) (*models.UserWithProfile, error) {
	u, ok := f.users[userID]
	if !ok {
		return nil, repository.ErrNotFound
	}
	view := &models.UserWithProfile{User: *u}
	for _, c := range f.clients {
		if c.UserID == userID {
			copied := *c
			view.Client = &copied
		}
	}
	for _, p := range f.providers {
		if p.UserID == userID {
			copied := *p
			view.Provider = &copied
		}
	}
	return view, nil
}

func (f *fakeUserStore) UpdatePassword(_ context.Context, userID uuid.UUID, passwordHash string) error {
	u, ok := f.users[userID]
	if !ok {
		return repository.ErrNotFound
	}
	u.PasswordHash = passwordHash
	return nil
}

type fakeProfileStore struct {
	clients   map[uuid.UUID]*models.Client
	providers map[uuid.UUID]*models.Provider
}

func newFakeProfileStore() *fakeProfileStore {
	return &fakeProfileStore{
		clients:   map[uuid.UUID]*models.Client{},
		providers: map[uuid.UUID]*models.Provider{},
	}
}

func (f *fakeProfileStore) GetClient(_ context.Context, clientID uuid.UUID) (*models.Client, error) {
	c, ok := f.clients[clientID]
	if !ok {
		return nil, repository.ErrNotFound
	}
	return c, nil
}

func (f *fakeProfileStore) GetProvider(_ context.Context, providerID uuid.UUID) (*models.Provider, error) {
	p, ok := f.providers[providerID]
	if !ok {
		return nil, repository.ErrNotFound
	}
	return p, nil
}

type fakeWellStore struct {
	wells map[uuid.UUID]*models.Well
}

func newFakeWellStore() *fakeWellStore {
	return &fakeWellStore{wells: map[uuid.UUID]*models.Well{}}
}

func (f *fakeWellStore) Create(_ context.Context, well *models.Well) error {
	copied := *well
	f.wells[well.ID] = &copied
	return nil
}

func (f *fakeWellStore) GetByID(_ context.Context, wellID uuid.UUID) (*models.Well, error) {
	w, ok := f.wells[wellID]
	if !ok {
		return nil, repository.ErrNotFound
	}
	copied := *w
	return &copied, nil
}

func (f *fakeWellStore) GetWithClient(_ context.Context, wellID uuid.UUID) (*models.WellWithClient, error) {
	w, ok := f.wells[wellID]
	if !ok {
		return nil, repository.ErrNotFound
	}
	return &models.WellWithClient{Well: *w}, nil
}

func (f *fakeWellStore) ListWithClient(_ context.Context) ([]models.WellWithClient, error) {
	out := []models.WellWithClient{}
	for _, w := range f.wells {
		out = append(out, models.WellWithClient{Well: *w})
	}
	return out, nil
}

func (f *fakeWellStore) ListWithClientByClientID(_ context.Context, clientID uuid.UUID) ([]models.WellWithClient, error) {
	out := []models.WellWithClient{}
	for _, w := range f.wells {
		if w.ClientID == clientID {
			out = append(out, models.WellWithClient{Well: *w})
		}
	}
	return out, nil
}

func (f *fakeWellStore) UpdateStatus(_ context.Context, wellID uuid.UUID, status models.WellStatus) error {
	w, ok := f.wells[wellID]
	if !ok {
		return repository.ErrNotFound
	}
	w.Status = status
	return nil
}

func (f *fakeWellStore) Delete(_ context.Context, wellID uuid.UUID) error {
	if _, ok := f.wells[wellID]; !ok {
		return repository.ErrNotFound
	}
	delete(f.wells, wellID)
	return nil
}

type fakeVisitStore struct {
	visits    map[uuid.UUID]*models.Visit
	materials map[uuid.UUID][]models.MaterialUsage
	params    map[uuid.UUID][]models.WaterParameter
	scheduled map[uuid.UUID]*models.ScheduledVisit
}

func newFakeVisitStore() *fakeVisitStore {
	return &fakeVisitStore{
		visits:    map[uuid.UUID]*models.Visit{},
		materials: map[uuid.UUID][]models.MaterialUsage{},
		params:    map[uuid.UUID][]models.WaterParameter{},
		scheduled: map[uuid.UUID]*models.ScheduledVisit{},
	}
}

func (f *fakeVisitStore) CreateWithCascade(_ context.Context, visit *models.Visit, materials []models.MaterialUsage, waterParams []models.WaterParameter, scheduled *models.ScheduledVisit) error {
	copied := *visit
	f.visits[visit.ID] = &copied
	f.materials[visit.ID] = materials
	f.params[visit.ID] = waterParams
	if scheduled != nil {
		sv := *scheduled
		f.scheduled[scheduled.ID] = &sv
	}
	return nil
}

func (f *fakeVisitStore) GetByID(_ context.Context, visitID uuid.UUID) (*models.Visit, error) {
	v, ok := f.visits[visitID]
	if !ok {
		return nil, repository.ErrNotFound
	}
	copied := *v
	return &copied, nil
}

func (f *fakeVisitStore) GetDetails(_ context.Context, visitID uuid.UUID) (*models.VisitWithDetails, error) {
	v, ok := f.visits[visitID]
	if !ok {
		return nil, repository.ErrNotFound
	}
	return &models.VisitWithDetails{Visit: *v, StatusLabel: v.Status.Label()}, nil
}

func (f *fakeVisitStore) ListDetails(_ context.Context) ([]models.VisitWithDetails, error) {
	out := []models.VisitWithDetails{}
	for _, v := range f.visits {
		out = append(out, models.VisitWithDetails{Visit: *v})
	}
	return out, nil
}

func (f *fakeVisitStore) ListDetailsByWell(_ context.Context, wellID uuid.UUID) ([]models.VisitWithDetails, error) {
	out := []models.VisitWithDetails{}
	for _, v := range f.visits {
		if v.WellID == wellID {
			out = append(out, models.VisitWithDetails{Visit: *v})
		}
	}
	return out, nil
}

func (f *fakeVisitStore) ListDetailsByProvider(_ context.Context, providerID uuid.UUID) ([]models.VisitWithDetails, error) {
	out := []models.VisitWithDetails{}
	for _, v := range f.visits {
		if v.ProviderID == providerID {
			out = append(out, models.VisitWithDetails{Visit: *v})
		}
	}
	return out, nil
}

func (f *fakeVisitStore) ListDetailsByClient(_ context.Context, _ uuid.UUID) ([]models.VisitWithDetails, error) {
	return f.ListDetails(context.Background())
}

func (f *fakeVisitStore) UpdateStatus(_ context.Context, visitID uuid.UUID, status models.VisitStatus) error {
	v, ok := f.visits[visitID]
	if !ok {
		return repository.ErrNotFound
	}
	v.Status = status
	return nil
}

func (f *fakeVisitStore) ListByVisit(_ context.Context, visitID uuid.UUID) ([]models.MaterialUsage, error) {
	return f.materials[visitID], nil
}

func (f *fakeVisitStore) ListWaterParametersByVisit(_ context.Context, visitID uuid.UUID) ([]models.WaterParameter, error) {
	return f.params[visitID], nil
}

type fakeScheduledVisitStore struct {
	scheduled map[uuid.UUID]*models.ScheduledVisit
}

func newFakeScheduledVisitStore() *fakeScheduledVisitStore {
	return &fakeScheduledVisitStore{scheduled: map[uuid.UUID]*models.ScheduledVisit{}}
}

func (f *fakeScheduledVisitStore) Create(_ context.Context, sv *models.ScheduledVisit) error {
	copied := *sv
	f.scheduled[sv.ID] = &copied
	return nil
}

func (f *fakeScheduledVisitStore) GetByID(_ context.Context, id uuid.UUID) (*models.ScheduledVisit, error) {
	sv, ok := f.scheduled[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	copied := *sv
	return &copied, nil
}

func (f *fakeScheduledVisitStore) GetByCreatedFromVisit(_ context.Context, visitID uuid.UUID) (*models.ScheduledVisit, error) {
	for _, sv := range f.scheduled {
		if sv.CreatedFromVisitID != nil && *sv.CreatedFromVisitID == visitID {
			copied := *sv
			return &copied, nil
		}
	}
	return nil, repository.ErrNotFound
}

func (f *fakeScheduledVisitStore) List(_ context.Context) ([]models.ScheduledVisit, error) {
	out := []models.ScheduledVisit{}
	for _, sv := range f.scheduled {
		out = append(out, *sv)
	}
	return out, nil
}

func (f *fakeScheduledVisitStore) UpdateStatus(_ context.Context, id uuid.UUID, status models.ScheduledVisitStatus) error {
	sv, ok := f.scheduled[id]
	if !ok {
		return repository.ErrNotFound
	}
	sv.Status = status
	return nil
}

type fakeInvoiceStore struct {
	invoices map[uuid.UUID]*models.Invoice
}

func newFakeInvoiceStore() *fakeInvoiceStore {
	return &fakeInvoiceStore{invoices: map[uuid.UUID]*models.Invoice{}}
}

func (f *fakeInvoiceStore) Create(_ context.Context, invoice *models.Invoice) error {
	copied := *invoice
	f.invoices[invoice.ID] = &copied
	return nil
}

func (f *fakeInvoiceStore) GetByID(_ context.Context, invoiceID uuid.UUID) (*models.Invoice, error) {
	inv, ok := f.invoices[invoiceID]
	if !ok {
		return nil, repository.ErrNotFound
	}
	copied := *inv
	return &copied, nil
}

func (f *fakeInvoiceStore) GetActiveByVisit(_ context.Context, visitID uuid.UUID) (*models.Invoice, error) {
	for _, inv := range f.invoices {
		if inv.VisitID == visitID && inv.Status != models.InvoiceStatusCancelled {
			copied := *inv
			return &copied, nil
		}
	}
	return nil, repository.ErrNotFound
}

func (f *fakeInvoiceStore) GetDetails(_ context.Context, invoiceID uuid.UUID) (*models.InvoiceWithDetails, error) {
	inv, ok := f.invoices[invoiceID]
	if !ok {
		return nil, repository.ErrNotFound
	}
	return &models.InvoiceWithDetails{Invoice: *inv, StatusLabel: inv.Status.Label()}, nil
}

func (f *fakeInvoiceStore) ListDetails(_ context.Context) ([]models.InvoiceWithDetails, error) {
	out := []models.InvoiceWithDetails{}
	for _, inv := range f.invoices {
		out = append(out, models.InvoiceWithDetails{Invoice: *inv})
	}
	return out, nil
}

func (f *fakeInvoiceStore) ListDetailsByClient(_ context.Context, clientID uuid.UUID) ([]models.InvoiceWithDetails, error) {
	out := []models.InvoiceWithDetails{}
	for _, inv := range f.invoices {
		if inv.ClientID == clientID {
			out = append(out, models.InvoiceWithDetails{Invoice: *inv})
		}
	}
	return out, nil
}

func (f *fakeInvoiceStore) MarkSent(_ context.Context, invoiceID uuid.UUID, sentAt time.Time) error {
	inv, ok := f.invoices[invoiceID]
	if !ok {
		return repository.ErrNotFound
	}
	inv.Status = models.InvoiceStatusSent
	inv.SentAt = &sentAt
	return nil
}

func (f *fakeInvoiceStore) MarkPaid(_ context.Context, invoiceID uuid.UUID, method models.PaymentMethod, paidDate time.Time) error {
	inv, ok := f.invoices[invoiceID]
	if !ok {
		return repository.ErrNotFound
	}
	inv.Status = models.InvoiceStatusPaid
	inv.PaymentMethod = method
	inv.PaidDate = &paidDate
	return nil
}

func (f *fakeInvoiceStore) UpdateStatus(_ context.Context, invoiceID uuid.UUID, status models.InvoiceStatus) error {
	inv, ok := f.invoices[invoiceID]
	if !ok {
		return repository.ErrNotFound
	}
	inv.Status = status
	return nil
}

type fakeUsageStore struct {
	rows []repository.UsageRow
	from time.Time
	to   time.Time
}

func (f *fakeUsageStore) ListUsageBetween(_ context.Context, start, end time.Time) ([]repository.UsageRow, error) {
	f.from = start
	f.to = end
	return f.rows, nil
}

type fakeReportCache struct {
	store        map[string]string
	invalidated  int
	setCalls     int
	getCallCount int
}

func newFakeReportCache() *fakeReportCache {
	return &fakeReportCache{store: map[string]string{}}
}

func (f *fakeReportCache) GetConsumptionReport(_ context.Context, period string) (string, error) {
	f.getCallCount++
	payload, ok := f.store[period]
	if !ok {
		return "", repository.ErrNotFound
	}
	return payload, nil
}

func (f *fakeReportCache) SetConsumptionReport(_ context.Context, period, payload string, _ time.Duration) error {
	f.setCalls++
	f.store[period] = payload
	return nil
}

func (f *fakeReportCache) InvalidateConsumptionReports(_ context.Context) error {
	f.invalidated++
	f.store = map[string]string{}
	return nil
}
