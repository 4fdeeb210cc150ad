package services

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Alison-Albino/EccoServ88-sub000/internal/models"
	"github.com/Alison-Albino/EccoServ88-sub000/internal/repository"
)

type visitFixture struct {
	svc        *VisitService
	visits     *fakeVisitStore
	scheduled  *fakeScheduledVisitStore
	cache      *fakeReportCache
	wellID     uuid.UUID
	providerID uuid.UUID
}

func newVisitFixture(t *testing.T) *visitFixture {
	t.Helper()

	wells := newFakeWellStore()
	profiles := newFakeProfileStore()
	visits := newFakeVisitStore()
	scheduled := newFakeScheduledVisitStore()
	cache := newFakeReportCache()

	// The cascade and the scheduled visit store read and write the same table.
	visits.scheduled = scheduled.scheduled

	clientID := uuid.New()
	profiles.clients[clientID] = &models.Client{ID: clientID, UserID: uuid.New()}

	wellID := uuid.New()
	wells.wells[wellID] = &models.Well{ID: wellID, ClientID: clientID, Status: models.WellStatusActive}

	providerID := uuid.New()
	profiles.providers[providerID] = &models.Provider{ID: providerID, UserID: uuid.New()}

	return &visitFixture{
		svc:        NewVisitService(visits, visits, scheduled, wells, profiles, cache),
		visits:     visits,
		scheduled:  scheduled,
		cache:      cache,
		wellID:     wellID,
		providerID: providerID,
	}
}

func (f *visitFixture) request() *models.CreateVisitRequest {
	return &models.CreateVisitRequest{
		WellID:       f.wellID,
		ProviderID:   f.providerID,
		VisitDate:    "2026-08-20",
		ServiceType:  "Limpeza e desinfecção",
		VisitType:    models.VisitTypeUnique,
		Observations: "Poço em bom estado",
	}
}

func TestCreateVisit(t *testing.T) {
	f := newVisitFixture(t)

	visit, err := f.svc.CreateVisit(context.Background(), f.request(), nil, nil)
	require.NoError(t, err)

	assert.Equal(t, models.VisitStatusPending, visit.Status)
	assert.Equal(t, time.Date(2026, 8, 20, 0, 0, 0, 0, time.UTC), visit.VisitDate)
	assert.NotNil(t, visit.Photos)
	assert.NotNil(t, visit.Documents)
	assert.Equal(t, 1, f.cache.invalidated)
}

func TestCreateVisitValidation(t *testing.T) {
	f := newVisitFixture(t)

	cases := []struct {
		name   string
		mutate func(*models.CreateVisitRequest)
	}{
		{"missing well", func(r *models.CreateVisitRequest) { r.WellID = uuid.Nil }},
		{"missing provider", func(r *models.CreateVisitRequest) { r.ProviderID = uuid.Nil }},
		{"missing visit date", func(r *models.CreateVisitRequest) { r.VisitDate = "" }},
		{"missing service type", func(r *models.CreateVisitRequest) { r.ServiceType = "" }},
		{"missing observations", func(r *models.CreateVisitRequest) { r.Observations = "" }},
		{"bad visit type", func(r *models.CreateVisitRequest) { r.VisitType = "weekly" }},
		{"bad visit date", func(r *models.CreateVisitRequest) { r.VisitDate = "20/08/2026" }},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			req := f.request()
			tc.mutate(req)

			_, err := f.svc.CreateVisit(context.Background(), req, nil, nil)
			assert.ErrorIs(t, err, ErrValidation)
		})
	}
}

func TestCreateVisitUnknownWell(t *testing.T) {
	f := newVisitFixture(t)
	req := f.request()
	req.WellID = uuid.New()

	_, err := f.svc.CreateVisit(context.Background(), req, nil, nil)
	assert.ErrorIs(t, err, repository.ErrNotFound)
}

func TestCreateVisitMaterials(t *testing.T) {
	f := newVisitFixture(t)

	materials := []models.VisitMaterialInput{
		{MaterialType: models.MaterialChlorine, QuantityGrams: "1500.25"},
		{MaterialType: models.MaterialLime, QuantityGrams: "0"},
		{MaterialType: models.MaterialPolymer, QuantityGrams: ""},
		{MaterialType: models.MaterialAntiscalant, QuantityGrams: "-5"},
	}

	visit, err := f.svc.CreateVisit(context.Background(), f.request(), materials, nil)
	require.NoError(t, err)

	// Only the positive quantity survives.
	stored := f.visits.materials[visit.ID]
	require.Len(t, stored, 1)
	assert.Equal(t, models.MaterialChlorine, stored[0].MaterialType)
	assert.Equal(t, "1500.25", stored[0].QuantityGrams)
}

func TestCreateVisitRejectsUnknownMaterial(t *testing.T) {
	f := newVisitFixture(t)

	materials := []models.VisitMaterialInput{
		{MaterialType: "bleach", QuantityGrams: "100"},
	}

	_, err := f.svc.CreateVisit(context.Background(), f.request(), materials, nil)
	assert.ErrorIs(t, err, ErrValidation)
}

func TestCreateVisitSchedulesFollowUp(t *testing.T) {
	f := newVisitFixture(t)

	req := f.request()
	req.VisitType = models.VisitTypePeriodic
	req.NextVisitDate = "2026-09-20"

	visit, err := f.svc.CreateVisit(context.Background(), req, nil, nil)
	require.NoError(t, err)

	require.Len(t, f.visits.scheduled, 1)
	for _, sv := range f.visits.scheduled {
		assert.Equal(t, visit.WellID, sv.WellID)
		assert.Equal(t, visit.ProviderID, sv.ProviderID)
		assert.Equal(t, time.Date(2026, 9, 20, 0, 0, 0, 0, time.UTC), sv.ScheduledDate)
		assert.Equal(t, models.ScheduledVisitStatusScheduled, sv.Status)
		require.NotNil(t, sv.CreatedFromVisitID)
		assert.Equal(t, visit.ID, *sv.CreatedFromVisitID)
	}
}

func TestCreateVisitUniqueDoesNotSchedule(t *testing.T) {
	f := newVisitFixture(t)

	req := f.request()
	req.NextVisitDate = "2026-09-20"

	_, err := f.svc.CreateVisit(context.Background(), req, nil, nil)
	require.NoError(t, err)
	assert.Empty(t, f.visits.scheduled)
}

func TestUpdateVisitStatusTransitions(t *testing.T) {
	f := newVisitFixture(t)

	visit, err := f.svc.CreateVisit(context.Background(), f.request(), nil, nil)
	require.NoError(t, err)

	require.NoError(t, f.svc.UpdateVisitStatus(context.Background(), visit.ID, models.VisitStatusInProgress))
	require.NoError(t, f.svc.UpdateVisitStatus(context.Background(), visit.ID, models.VisitStatusCompleted))

	// Completed is terminal.
	err = f.svc.UpdateVisitStatus(context.Background(), visit.ID, models.VisitStatusPending)
	assert.ErrorIs(t, err, ErrInvalidTransition)

	err = f.svc.UpdateVisitStatus(context.Background(), visit.ID, "done")
	assert.ErrorIs(t, err, ErrValidation)
}

func TestGetVisitIncludesMaterials(t *testing.T) {
	f := newVisitFixture(t)

	materials := []models.VisitMaterialInput{
		{MaterialType: models.MaterialChlorine, QuantityGrams: "750"},
	}
	ph := 7.2
	waterParams := []models.VisitWaterParameterInput{{PH: &ph}}

	visit, err := f.svc.CreateVisit(context.Background(), f.request(), materials, waterParams)
	require.NoError(t, err)

	full, err := f.svc.GetVisit(context.Background(), visit.ID)
	require.NoError(t, err)
	assert.Len(t, full.Materials, 1)
	require.Len(t, full.WaterParameters, 1)
	assert.Equal(t, &ph, full.WaterParameters[0].PH)
	assert.Nil(t, full.FollowUp)
}

func TestGetVisitIncludesFollowUp(t *testing.T) {
	f := newVisitFixture(t)

	req := f.request()
	req.VisitType = models.VisitTypePeriodic
	req.NextVisitDate = "2026-09-20"

	visit, err := f.svc.CreateVisit(context.Background(), req, nil, nil)
	require.NoError(t, err)

	full, err := f.svc.GetVisit(context.Background(), visit.ID)
	require.NoError(t, err)
	require.NotNil(t, full.FollowUp)
	assert.Equal(t, time.Date(2026, 9, 20, 0, 0, 0, 0, time.UTC), full.FollowUp.ScheduledDate)
	require.NotNil(t, full.FollowUp.CreatedFromVisitID)
	assert.Equal(t, visit.ID, *full.FollowUp.CreatedFromVisitID)
}

func TestCreateScheduledVisit(t *testing.T) {
	f := newVisitFixture(t)

	sv, err := f.svc.CreateScheduledVisit(context.Background(), &models.CreateScheduledVisitRequest{
		WellID:        f.wellID,
		ProviderID:    f.providerID,
		ScheduledDate: "2026-10-01",
		ServiceType:   "Análise de água",
	})
	require.NoError(t, err)
	assert.Equal(t, models.ScheduledVisitStatusScheduled, sv.Status)

	require.NoError(t, f.svc.UpdateScheduledVisitStatus(context.Background(), sv.ID, models.ScheduledVisitStatusConfirmed))

	err = f.svc.UpdateScheduledVisitStatus(context.Background(), sv.ID, models.ScheduledVisitStatusScheduled)
	assert.ErrorIs(t, err, ErrInvalidTransition)
}
