package services

import (
	"context"
	"encoding/json"
	"fmt"
	"math"
	"sort"
	"strconv"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/Alison-Albino/EccoServ88-sub000/internal/models"
	"github.com/Alison-Albino/EccoServ88-sub000/internal/repository"
)

const reportCacheTTL = 5 * time.Minute

// UsageStore reads raw material usage for aggregation.
type UsageStore interface {
	ListUsageBetween(ctx context.Context, start, end time.Time) ([]repository.UsageRow, error)
}

// ConsumptionCache is the cache-aside surface for serialized reports.
type ConsumptionCache interface {
	GetConsumptionReport(ctx context.Context, period string) (string, error)
	SetConsumptionReport(ctx context.Context, period, payload string, expiration time.Duration) error
}

type ReportService struct {
	usage UsageStore
	cache ConsumptionCache
	now   func() time.Time
}

func NewReportService(usage UsageStore, cache ConsumptionCache) *ReportService {
	return &ReportService{
		usage: usage,
		cache: cache,
		now:   time.Now,
	}
}

// ConsumptionReport aggregates material usage over a preset period. Results
// are cached briefly; the cache is dropped whenever a visit is created.
func (s *ReportService) ConsumptionReport(ctx context.Context, period string) (*models.ConsumptionReport, error) {
	start, end, err := s.periodBounds(period)
	if err != nil {
		return nil, err
	}

	if s.cache != nil {
		if payload, err := s.cache.GetConsumptionReport(ctx, period); err == nil {
			report := &models.ConsumptionReport{}
			if err := json.Unmarshal([]byte(payload), report); err == nil {
				return report, nil
			}
			logrus.WithField("period", period).Warn("discarding unreadable cached consumption report")
		}
	}

	rows, err := s.usage.ListUsageBetween(ctx, start, end)
	if err != nil {
		return nil, err
	}

	report := &models.ConsumptionReport{
		Period:      period,
		StartDate:   start.Format(dateLayout),
		EndDate:     end.Format(dateLayout),
		Consumption: aggregateConsumption(rows),
	}

	if s.cache != nil {
		if payload, err := json.Marshal(report); err == nil {
			if err := s.cache.SetConsumptionReport(ctx, period, string(payload), reportCacheTTL); err != nil {
				logrus.WithError(err).Warn("failed to cache consumption report")
			}
		}
	}

	return report, nil
}

func (s *ReportService) periodBounds(period string) (time.Time, time.Time, error) {
	end := s.now()
	switch period {
	case "week":
		return end.AddDate(0, 0, -7), end, nil
	case "month":
		return end.AddDate(0, -1, 0), end, nil
	default:
		return time.Time{}, time.Time{}, fmt.Errorf("%w: %q", ErrUnknownPeriod, period)
	}
}

type consumptionAccumulator struct {
	totalGrams float64
	visits     map[string]struct{}
	dates      map[string]struct{}
}

// aggregateConsumption groups usage rows per material, counting each visit
// and each visit date once. Rows keep first-seen order on equal totals.
func aggregateConsumption(rows []repository.UsageRow) []models.ConsumptionRow {
	order := []models.MaterialType{}
	byMaterial := map[models.MaterialType]*consumptionAccumulator{}

	for _, row := range rows {
		grams, err := strconv.ParseFloat(row.QuantityGrams, 64)
		if err != nil {
			logrus.WithField("quantity", row.QuantityGrams).Warn("skipping unparseable usage quantity")
			continue
		}

		acc, ok := byMaterial[row.MaterialType]
		if !ok {
			acc = &consumptionAccumulator{
				visits: map[string]struct{}{},
				dates:  map[string]struct{}{},
			}
			byMaterial[row.MaterialType] = acc
			order = append(order, row.MaterialType)
		}

		acc.totalGrams += grams
		acc.visits[row.VisitID.String()] = struct{}{}
		acc.dates[row.VisitDate.Format(dateLayout)] = struct{}{}
	}

	consumption := []models.ConsumptionRow{}
	for _, material := range order {
		acc := byMaterial[material]
		visitCount := len(acc.visits)

		average := 0.0
		if visitCount > 0 {
			average = roundTo(acc.totalGrams/float64(visitCount), 1)
		}

		consumption = append(consumption, models.ConsumptionRow{
			MaterialType:    material,
			TotalGrams:      acc.totalGrams,
			TotalKilograms:  roundTo(acc.totalGrams/1000, 3),
			VisitCount:      visitCount,
			AveragePerVisit: average,
			DistinctDates:   len(acc.dates),
		})
	}

	sort.SliceStable(consumption, func(i, j int) bool {
		return consumption[i].TotalKilograms > consumption[j].TotalKilograms
	})

	return consumption
}

func roundTo(value float64, places int) float64 {
	factor := math.Pow(10, float64(places))
	return math.Round(value*factor) / factor
}
