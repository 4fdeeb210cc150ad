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

func usageRow(material models.MaterialType, grams string, visitID uuid.UUID, date time.Time) repository.UsageRow {
	return repository.UsageRow{
		MaterialType:  material,
		QuantityGrams: grams,
		VisitID:       visitID,
		VisitDate:     date,
	}
}

func TestConsumptionReportAggregation(t *testing.T) {
	day := time.Date(2026, 8, 28, 0, 0, 0, 0, time.UTC)
	visitA := uuid.New()
	visitB := uuid.New()

	usage := &fakeUsageStore{rows: []repository.UsageRow{
		usageRow(models.MaterialChlorine, "1500", visitA, day),
		usageRow(models.MaterialChlorine, "500.5", visitB, day.AddDate(0, 0, 1)),
		usageRow(models.MaterialLime, "3000", visitA, day),
	}}

	svc := NewReportService(usage, nil)
	svc.now = func() time.Time { return time.Date(2026, 8, 31, 12, 0, 0, 0, time.UTC) }

	report, err := svc.ConsumptionReport(context.Background(), "week")
	require.NoError(t, err)

	assert.Equal(t, "week", report.Period)
	assert.Equal(t, "2026-08-24", report.StartDate)
	assert.Equal(t, "2026-08-31", report.EndDate)
	require.Len(t, report.Consumption, 2)

	// Lime outweighs chlorine and must come first.
	lime := report.Consumption[0]
	assert.Equal(t, models.MaterialLime, lime.MaterialType)
	assert.Equal(t, 3000.0, lime.TotalGrams)
	assert.Equal(t, 3.0, lime.TotalKilograms)
	assert.Equal(t, 1, lime.VisitCount)
	assert.Equal(t, 3000.0, lime.AveragePerVisit)
	assert.Equal(t, 1, lime.DistinctDates)

	chlorine := report.Consumption[1]
	assert.Equal(t, models.MaterialChlorine, chlorine.MaterialType)
	assert.Equal(t, 2000.5, chlorine.TotalGrams)
	assert.Equal(t, 2.001, chlorine.TotalKilograms)
	assert.Equal(t, 2, chlorine.VisitCount)
	assert.Equal(t, 1000.3, chlorine.AveragePerVisit)
	assert.Equal(t, 2, chlorine.DistinctDates)
}

func TestConsumptionReportCountsVisitOnce(t *testing.T) {
	day := time.Date(2026, 8, 28, 0, 0, 0, 0, time.UTC)
	visit := uuid.New()

	usage := &fakeUsageStore{rows: []repository.UsageRow{
		usageRow(models.MaterialChlorine, "100", visit, day),
		usageRow(models.MaterialChlorine, "200", visit, day),
	}}

	svc := NewReportService(usage, nil)

	report, err := svc.ConsumptionReport(context.Background(), "week")
	require.NoError(t, err)
	require.Len(t, report.Consumption, 1)

	row := report.Consumption[0]
	assert.Equal(t, 300.0, row.TotalGrams)
	assert.Equal(t, 1, row.VisitCount)
	assert.Equal(t, 300.0, row.AveragePerVisit)
	assert.Equal(t, 1, row.DistinctDates)
}

func TestConsumptionReportPeriodBounds(t *testing.T) {
	now := time.Date(2026, 8, 31, 12, 0, 0, 0, time.UTC)

	usage := &fakeUsageStore{}
	svc := NewReportService(usage, nil)
	svc.now = func() time.Time { return now }

	_, err := svc.ConsumptionReport(context.Background(), "week")
	require.NoError(t, err)
	assert.Equal(t, now.AddDate(0, 0, -7), usage.from)
	assert.Equal(t, now, usage.to)

	_, err = svc.ConsumptionReport(context.Background(), "month")
	require.NoError(t, err)
	assert.Equal(t, now.AddDate(0, -1, 0), usage.from)
	assert.Equal(t, now, usage.to)
}

func TestConsumptionReportUnknownPeriod(t *testing.T) {
	svc := NewReportService(&fakeUsageStore{}, nil)

	_, err := svc.ConsumptionReport(context.Background(), "year")
	assert.ErrorIs(t, err, ErrUnknownPeriod)
}

func TestConsumptionReportCaching(t *testing.T) {
	day := time.Date(2026, 8, 28, 0, 0, 0, 0, time.UTC)
	usage := &fakeUsageStore{rows: []repository.UsageRow{
		usageRow(models.MaterialChlorine, "1000", uuid.New(), day),
	}}
	cache := newFakeReportCache()

	svc := NewReportService(usage, cache)

	first, err := svc.ConsumptionReport(context.Background(), "week")
	require.NoError(t, err)
	assert.Equal(t, 1, cache.setCalls)

	// Second call must be served from the cache.
	usage.rows = nil
	second, err := svc.ConsumptionReport(context.Background(), "week")
	require.NoError(t, err)
	assert.Equal(t, first.Consumption, second.Consumption)
	assert.Equal(t, 1, cache.setCalls)
}

func TestConsumptionReportEmptyPeriod(t *testing.T) {
	svc := NewReportService(&fakeUsageStore{}, nil)

	report, err := svc.ConsumptionReport(context.Background(), "month")
	require.NoError(t, err)
	assert.Empty(t, report.Consumption)
	assert.NotNil(t, report.Consumption)
}
