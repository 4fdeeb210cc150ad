package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"

	"github.com/Alison-Albino/EccoServ88-sub000/internal/models"
	"github.com/Alison-Albino/EccoServ88-sub000/internal/repository"
)

const dateLayout = "2006-01-02"

// VisitStore is the visit persistence surface.
type VisitStore interface {
	CreateWithCascade(ctx context.Context, visit *models.Visit, materials []models.MaterialUsage, waterParams []models.WaterParameter, scheduled *models.ScheduledVisit) error
	GetByID(ctx context.Context, visitID uuid.UUID) (*models.Visit, error)
	GetDetails(ctx context.Context, visitID uuid.UUID) (*models.VisitWithDetails, error)
	ListDetails(ctx context.Context) ([]models.VisitWithDetails, error)
	ListDetailsByWell(ctx context.Context, wellID uuid.UUID) ([]models.VisitWithDetails, error)
	ListDetailsByProvider(ctx context.Context, providerID uuid.UUID) ([]models.VisitWithDetails, error)
	ListDetailsByClient(ctx context.Context, clientID uuid.UUID) ([]models.VisitWithDetails, error)
	UpdateStatus(ctx context.Context, visitID uuid.UUID, status models.VisitStatus) error
}

// VisitMaterialStore reads the sub-records attached to a visit.
type VisitMaterialStore interface {
	ListByVisit(ctx context.Context, visitID uuid.UUID) ([]models.MaterialUsage, error)
	ListWaterParametersByVisit(ctx context.Context, visitID uuid.UUID) ([]models.WaterParameter, error)
}

// ScheduledVisitStore is the scheduled visit persistence surface.
type ScheduledVisitStore interface {
	Create(ctx context.Context, sv *models.ScheduledVisit) error
	GetByID(ctx context.Context, id uuid.UUID) (*models.ScheduledVisit, error)
	GetByCreatedFromVisit(ctx context.Context, visitID uuid.UUID) (*models.ScheduledVisit, error)
	List(ctx context.Context) ([]models.ScheduledVisit, error)
	UpdateStatus(ctx context.Context, id uuid.UUID, status models.ScheduledVisitStatus) error
}

// ReportCache invalidates cached consumption reports when new usage lands.
type ReportCache interface {
	InvalidateConsumptionReports(ctx context.Context) error
}

type VisitService struct {
	visits    VisitStore
	materials VisitMaterialStore
	scheduled ScheduledVisitStore
	wells     WellStore
	profiles  ProfileStore
	cache     ReportCache
}

func NewVisitService(
	visits VisitStore,
	materials VisitMaterialStore,
	scheduled ScheduledVisitStore,
	wells WellStore,
	profiles ProfileStore,
	cache ReportCache,
) *VisitService {
	return &VisitService{
		visits:    visits,
		materials: materials,
		scheduled: scheduled,
		wells:     wells,
		profiles:  profiles,
		cache:     cache,
	}
}

// CreateVisit records a maintenance visit together with its material usage,
// water readings and, for periodic visits with a next date, the auto-created
// follow-up ScheduledVisit. The whole cascade is atomic.
func (s *VisitService) CreateVisit(
	ctx context.Context,
	req *models.CreateVisitRequest,
	materialInputs []models.VisitMaterialInput,
	waterInputs []models.VisitWaterParameterInput,
) (*models.Visit, error) {
	if err := validateVisitRequest(req); err != nil {
		return nil, err
	}

	visitDate, err := time.Parse(dateLayout, req.VisitDate)
	if err != nil {
		return nil, fmt.Errorf("%w: invalid visit date %q", ErrValidation, req.VisitDate)
	}

	var nextVisitDate *time.Time
	if req.NextVisitDate != "" {
		parsed, err := time.Parse(dateLayout, req.NextVisitDate)
		if err != nil {
			return nil, fmt.Errorf("%w: invalid next visit date %q", ErrValidation, req.NextVisitDate)
		}
		nextVisitDate = &parsed
	}

	if _, err := s.wells.GetByID(ctx, req.WellID); err != nil {
		return nil, err
	}
	if _, err := s.profiles.GetProvider(ctx, req.ProviderID); err != nil {
		return nil, err
	}

	visitID := req.ID
	if visitID == uuid.Nil {
		visitID = uuid.New()
	}

	visit := &models.Visit{
		ID:            visitID,
		WellID:        req.WellID,
		ProviderID:    req.ProviderID,
		VisitDate:     visitDate,
		ServiceType:   req.ServiceType,
		VisitType:     req.VisitType,
		NextVisitDate: nextVisitDate,
		Observations:  req.Observations,
		Status:        models.VisitStatusPending,
		Photos:        emptyIfNil(req.Photos),
		Documents:     emptyIfNil(req.Documents),
	}

	materials, err := buildMaterials(visit.ID, materialInputs)
	if err != nil {
		return nil, err
	}

	waterParams := buildWaterParameters(visit.ID, waterInputs)

	var scheduled *models.ScheduledVisit
	if visit.VisitType == models.VisitTypePeriodic && nextVisitDate != nil {
		visitID := visit.ID
		scheduled = &models.ScheduledVisit{
			ID:                 uuid.New(),
			WellID:             visit.WellID,
			ProviderID:         visit.ProviderID,
			ScheduledDate:      *nextVisitDate,
			ServiceType:        visit.ServiceType,
			Status:             models.ScheduledVisitStatusScheduled,
			Notes:              "Visita periódica gerada automaticamente",
			CreatedFromVisitID: &visitID,
		}
	}

	if err := s.visits.CreateWithCascade(ctx, visit, materials, waterParams, scheduled); err != nil {
		return nil, err
	}

	if s.cache != nil {
		if err := s.cache.InvalidateConsumptionReports(ctx); err != nil {
			logrus.WithError(err).Warn("failed to invalidate consumption report cache")
		}
	}

	return visit, nil
}

func validateVisitRequest(req *models.CreateVisitRequest) error {
	switch {
	case req.WellID == uuid.Nil:
		return fmt.Errorf("%w: well is required", ErrValidation)
	case req.ProviderID == uuid.Nil:
		return fmt.Errorf("%w: provider is required", ErrValidation)
	case req.VisitDate == "":
		return fmt.Errorf("%w: visit date is required", ErrValidation)
	case req.ServiceType == "":
		return fmt.Errorf("%w: service type is required", ErrValidation)
	case req.Observations == "":
		return fmt.Errorf("%w: observations are required", ErrValidation)
	case !req.VisitType.Valid():
		return fmt.Errorf("%w: unknown visit type %q", ErrValidation, req.VisitType)
	}
	return nil
}

// buildMaterials turns submitted material lines into usage rows. Lines with a
// quantity of zero or less are skipped. Unknown material types and malformed
// quantities are rejected.
func buildMaterials(visitID uuid.UUID, inputs []models.VisitMaterialInput) ([]models.MaterialUsage, error) {
	materials := []models.MaterialUsage{}
	for _, in := range inputs {
		if in.QuantityGrams == "" {
			continue
		}

		qty, err := decimal.NewFromString(in.QuantityGrams)
		if err != nil {
			return nil, fmt.Errorf("%w: invalid material quantity %q", ErrValidation, in.QuantityGrams)
		}
		if qty.Sign() <= 0 {
			continue
		}

		if !in.MaterialType.Valid() {
			return nil, fmt.Errorf("%w: unknown material type %q", ErrValidation, in.MaterialType)
		}

		materials = append(materials, models.MaterialUsage{
			ID:            uuid.New(),
			VisitID:       visitID,
			MaterialType:  in.MaterialType,
			QuantityGrams: qty.String(),
			Notes:         in.Notes,
		})
	}
	return materials, nil
}

func buildWaterParameters(visitID uuid.UUID, inputs []models.VisitWaterParameterInput) []models.WaterParameter {
	params := []models.WaterParameter{}
	for _, in := range inputs {
		if in.PH == nil && in.ChlorineLevel == nil && in.Turbidity == nil {
			continue
		}
		params = append(params, models.WaterParameter{
			ID:            uuid.New(),
			VisitID:       visitID,
			PH:            in.PH,
			ChlorineLevel: in.ChlorineLevel,
			Turbidity:     in.Turbidity,
			Notes:         in.Notes,
		})
	}
	return params
}

func emptyIfNil(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}

// GetVisit returns a visit with its full chain plus materials, water readings
// and the follow-up visit scheduled from it, if one exists.
func (s *VisitService) GetVisit(ctx context.Context, visitID uuid.UUID) (*models.VisitWithMaterials, error) {
	details, err := s.visits.GetDetails(ctx, visitID)
	if err != nil {
		return nil, err
	}

	materials, err := s.materials.ListByVisit(ctx, visitID)
	if err != nil {
		return nil, err
	}

	waterParams, err := s.materials.ListWaterParametersByVisit(ctx, visitID)
	if err != nil {
		return nil, err
	}

	followUp, err := s.scheduled.GetByCreatedFromVisit(ctx, visitID)
	if err != nil && !errors.Is(err, repository.ErrNotFound) {
		return nil, err
	}

	return &models.VisitWithMaterials{
		VisitWithDetails: *details,
		Materials:        materials,
		WaterParameters:  waterParams,
		FollowUp:         followUp,
	}, nil
}

// ListVisits returns every visit with details, most recent first.
func (s *VisitService) ListVisits(ctx context.Context) ([]models.VisitWithDetails, error) {
	return s.visits.ListDetails(ctx)
}

func (s *VisitService) ListVisitsByWell(ctx context.Context, wellID uuid.UUID) ([]models.VisitWithDetails, error) {
	return s.visits.ListDetailsByWell(ctx, wellID)
}

func (s *VisitService) ListVisitsByProvider(ctx context.Context, providerID uuid.UUID) ([]models.VisitWithDetails, error) {
	return s.visits.ListDetailsByProvider(ctx, providerID)
}

func (s *VisitService) ListVisitsByClient(ctx context.Context, clientID uuid.UUID) ([]models.VisitWithDetails, error) {
	return s.visits.ListDetailsByClient(ctx, clientID)
}

// UpdateVisitStatus applies a guarded status transition.
func (s *VisitService) UpdateVisitStatus(ctx context.Context, visitID uuid.UUID, status models.VisitStatus) error {
	if !status.Valid() {
		return fmt.Errorf("%w: unknown visit status %q", ErrValidation, status)
	}

	visit, err := s.visits.GetByID(ctx, visitID)
	if err != nil {
		return err
	}

	if !visit.Status.CanTransitionTo(status) {
		return fmt.Errorf("%w: %s -> %s", ErrInvalidTransition, visit.Status, status)
	}

	return s.visits.UpdateStatus(ctx, visitID, status)
}

// CreateScheduledVisit registers a future visit manually.
func (s *VisitService) CreateScheduledVisit(ctx context.Context, req *models.CreateScheduledVisitRequest) (*models.ScheduledVisit, error) {
	scheduledDate, err := time.Parse(dateLayout, req.ScheduledDate)
	if err != nil {
		return nil, fmt.Errorf("%w: invalid scheduled date %q", ErrValidation, req.ScheduledDate)
	}

	if _, err := s.wells.GetByID(ctx, req.WellID); err != nil {
		return nil, err
	}
	if _, err := s.profiles.GetProvider(ctx, req.ProviderID); err != nil {
		return nil, err
	}

	sv := &models.ScheduledVisit{
		ID:            uuid.New(),
		WellID:        req.WellID,
		ProviderID:    req.ProviderID,
		ScheduledDate: scheduledDate,
		ServiceType:   req.ServiceType,
		Status:        models.ScheduledVisitStatusScheduled,
		Notes:         req.Notes,
	}

	if err := s.scheduled.Create(ctx, sv); err != nil {
		return nil, err
	}

	return sv, nil
}

// ListScheduledVisits returns every scheduled visit, soonest first.
func (s *VisitService) ListScheduledVisits(ctx context.Context) ([]models.ScheduledVisit, error) {
	return s.scheduled.List(ctx)
}

// UpdateScheduledVisitStatus applies a guarded status transition.
func (s *VisitService) UpdateScheduledVisitStatus(ctx context.Context, id uuid.UUID, status models.ScheduledVisitStatus) error {
	if !status.Valid() {
		return fmt.Errorf("%w: unknown scheduled visit status %q", ErrValidation, status)
	}

	sv, err := s.scheduled.GetByID(ctx, id)
	if err != nil {
		return err
	}

	if !sv.Status.CanTransitionTo(status) {
		return fmt.Errorf("%w: %s -> %s", ErrInvalidTransition, sv.Status, status)
	}

	return s.scheduled.UpdateStatus(ctx, id, status)
}
