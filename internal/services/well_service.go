package services

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/Alison-Albino/EccoServ88-sub000/internal/models"
)

// WellStore is the well persistence surface.
type WellStore interface {
	Create(ctx context.Context, well *models.Well) error
	GetByID(ctx context.Context, wellID uuid.UUID) (*models.Well, error)
	GetWithClient(ctx context.Context, wellID uuid.UUID) (*models.WellWithClient, error)
	ListWithClient(ctx context.Context) ([]models.WellWithClient, error)
	ListWithClientByClientID(ctx context.Context, clientID uuid.UUID) ([]models.WellWithClient, error)
	UpdateStatus(ctx context.Context, wellID uuid.UUID, status models.WellStatus) error
	Delete(ctx context.Context, wellID uuid.UUID) error
}

type WellService struct {
	wells    WellStore
	profiles ProfileStore
}

func NewWellService(wells WellStore, profiles ProfileStore) *WellService {
	return &WellService{wells: wells, profiles: profiles}
}

// CreateWell registers a new well for an existing client.
func (s *WellService) CreateWell(ctx context.Context, req *models.CreateWellRequest) (*models.Well, error) {
	if _, err := s.profiles.GetClient(ctx, req.ClientID); err != nil {
		return nil, err
	}

	well := &models.Well{
		ID:       uuid.New(),
		ClientID: req.ClientID,
		Name:     req.Name,
		Type:     req.Type,
		Location: req.Location,
		Status:   models.WellStatusActive,
	}

	if err := s.wells.Create(ctx, well); err != nil {
		return nil, err
	}

	return well, nil
}

// GetWell returns a well with its client chain.
func (s *WellService) GetWell(ctx context.Context, wellID uuid.UUID) (*models.WellWithClient, error) {
	return s.wells.GetWithClient(ctx, wellID)
}

// ListWells returns every well with its client chain.
func (s *WellService) ListWells(ctx context.Context) ([]models.WellWithClient, error) {
	return s.wells.ListWithClient(ctx)
}

// ListWellsByClient returns the wells owned by one client.
func (s *WellService) ListWellsByClient(ctx context.Context, clientID uuid.UUID) ([]models.WellWithClient, error) {
	return s.wells.ListWithClientByClientID(ctx, clientID)
}

// UpdateWellStatus patches a well's status. Unknown values are rejected at
// the write boundary.
func (s *WellService) UpdateWellStatus(ctx context.Context, wellID uuid.UUID, status models.WellStatus) error {
	if !status.Valid() {
		return fmt.Errorf("%w: unknown well status %q", ErrValidation, status)
	}
	return s.wells.UpdateStatus(ctx, wellID, status)
}

// DeleteWell removes a well that has no recorded visits.
func (s *WellService) DeleteWell(ctx context.Context, wellID uuid.UUID) error {
	return s.wells.Delete(ctx, wellID)
}
