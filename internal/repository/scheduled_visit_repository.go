package repository

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/Alison-Albino/EccoServ88-sub000/internal/models"
)

type ScheduledVisitRepository struct {
	pool *pgxpool.Pool
}

func NewScheduledVisitRepository(pool *pgxpool.Pool) *ScheduledVisitRepository {
	return &ScheduledVisitRepository{pool: pool}
}

const scheduledVisitColumns = `id, well_id, provider_id, scheduled_date, service_type, status, notes, created_from_visit_id, created_at`

func scanScheduledVisit(row rowScanner) (*models.ScheduledVisit, error) {
	sv := &models.ScheduledVisit{}
	err := row.Scan(
		&sv.ID,
		&sv.WellID,
		&sv.ProviderID,
		&sv.ScheduledDate,
		&sv.ServiceType,
		&sv.Status,
		&sv.Notes,
		&sv.CreatedFromVisitID,
		&sv.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	return sv, nil
}

// Create inserts a manually scheduled visit. Auto-created ones go through the
// visit cascade instead.
func (r *ScheduledVisitRepository) Create(ctx context.Context, sv *models.ScheduledVisit) error {
	query := `
		INSERT INTO scheduled_visits (id, well_id, provider_id, scheduled_date, service_type, status, notes, created_from_visit_id)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING created_at
	`

	err := r.pool.QueryRow(ctx, query,
		sv.ID,
		sv.WellID,
		sv.ProviderID,
		sv.ScheduledDate,
		sv.ServiceType,
		sv.Status,
		sv.Notes,
		sv.CreatedFromVisitID,
	).Scan(&sv.CreatedAt)
	if err != nil {
		return fmt.Errorf("failed to create scheduled visit: %w", err)
	}

	return nil
}

// GetByID retrieves a scheduled visit by ID.
func (r *ScheduledVisitRepository) GetByID(ctx context.Context, id uuid.UUID) (*models.ScheduledVisit, error) {
	query := `SELECT ` + scheduledVisitColumns + ` FROM scheduled_visits WHERE id = $1`

	sv, err := scanScheduledVisit(r.pool.QueryRow(ctx, query, id))
	if err != nil {
		return nil, fmt.Errorf("failed to get scheduled visit: %w", notFoundOr(err))
	}

	return sv, nil
}

// List retrieves every scheduled visit, soonest first.
func (r *ScheduledVisitRepository) List(ctx context.Context) ([]models.ScheduledVisit, error) {
	query := `SELECT ` + scheduledVisitColumns + ` FROM scheduled_visits ORDER BY scheduled_date ASC`

	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list scheduled visits: %w", err)
	}
	defer rows.Close()

	visits := []models.ScheduledVisit{}
	for rows.Next() {
		sv, err := scanScheduledVisit(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan scheduled visit: %w", err)
		}
		visits = append(visits, *sv)
	}

	if rows.Err() != nil {
		return nil, fmt.Errorf("error iterating scheduled visits: %w", rows.Err())
	}

	return visits, nil
}

// GetByCreatedFromVisit retrieves the scheduled visit auto-created from a
// periodic visit, if any.
func (r *ScheduledVisitRepository) GetByCreatedFromVisit(ctx context.Context, visitID uuid.UUID) (*models.ScheduledVisit, error) {
	query := `SELECT ` + scheduledVisitColumns + ` FROM scheduled_visits WHERE created_from_visit_id = $1`

	sv, err := scanScheduledVisit(r.pool.QueryRow(ctx, query, visitID))
	if err != nil {
		return nil, fmt.Errorf("failed to get scheduled visit: %w", notFoundOr(err))
	}

	return sv, nil
}

// UpdateStatus patches a scheduled visit's status.
func (r *ScheduledVisitRepository) UpdateStatus(ctx context.Context, id uuid.UUID, status models.ScheduledVisitStatus) error {
	result, err := r.pool.Exec(ctx, `UPDATE scheduled_visits SET status = $1 WHERE id = $2`, status, id)
	if err != nil {
		return fmt.Errorf("failed to update scheduled visit status: %w", err)
	}

	if result.RowsAffected() == 0 {
		return fmt.Errorf("failed to update scheduled visit status: %w", ErrNotFound)
	}

	return nil
}
