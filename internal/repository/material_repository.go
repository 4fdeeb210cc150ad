package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/Alison-Albino/EccoServ88-sub000/internal/models"
)

type MaterialRepository struct {
	pool *pgxpool.Pool
}

func NewMaterialRepository(pool *pgxpool.Pool) *MaterialRepository {
	return &MaterialRepository{pool: pool}
}

// UsageRow is one material usage joined to its visit date, the raw input of
// the consumption aggregation.
type UsageRow struct {
	MaterialType  models.MaterialType
	QuantityGrams string
	VisitID       uuid.UUID
	VisitDate     time.Time
}

// ListByVisit retrieves the material usage rows of one visit.
func (r *MaterialRepository) ListByVisit(ctx context.Context, visitID uuid.UUID) ([]models.MaterialUsage, error) {
	query := `
		SELECT id, visit_id, material_type, quantity_grams::text, notes, created_at
		FROM material_usages
		WHERE visit_id = $1
		ORDER BY created_at ASC
	`

	rows, err := r.pool.Query(ctx, query, visitID)
	if err != nil {
		return nil, fmt.Errorf("failed to list material usages: %w", err)
	}
	defer rows.Close()

	usages := []models.MaterialUsage{}
	for rows.Next() {
		m := models.MaterialUsage{}
		err := rows.Scan(&m.ID, &m.VisitID, &m.MaterialType, &m.QuantityGrams, &m.Notes, &m.CreatedAt)
		if err != nil {
			return nil, fmt.Errorf("failed to scan material usage: %w", err)
		}
		usages = append(usages, m)
	}

	if rows.Err() != nil {
		return nil, fmt.Errorf("error iterating material usages: %w", rows.Err())
	}

	return usages, nil
}

// ListUsageBetween retrieves every material usage whose visit date falls in
// [start, end]. Both bounds are inclusive. Rows come back in insertion order
// so the aggregation's tie-break is stable.
func (r *MaterialRepository) ListUsageBetween(ctx context.Context, start, end time.Time) ([]UsageRow, error) {
	query := `
		SELECT m.material_type, m.quantity_grams::text, m.visit_id, v.visit_date
		FROM material_usages m
		JOIN visits v ON v.id = m.visit_id
		WHERE v.visit_date >= $1 AND v.visit_date <= $2
		ORDER BY m.created_at ASC
	`

	rows, err := r.pool.Query(ctx, query, start, end)
	if err != nil {
		return nil, fmt.Errorf("failed to list material usage for period: %w", err)
	}
	defer rows.Close()

	usage := []UsageRow{}
	for rows.Next() {
		row := UsageRow{}
		err := rows.Scan(&row.MaterialType, &row.QuantityGrams, &row.VisitID, &row.VisitDate)
		if err != nil {
			return nil, fmt.Errorf("failed to scan usage row: %w", err)
		}
		usage = append(usage, row)
	}

	if rows.Err() != nil {
		return nil, fmt.Errorf("error iterating usage rows: %w", rows.Err())
	}

	return usage, nil
}

// ListWaterParametersByVisit retrieves the water readings of one visit.
func (r *MaterialRepository) ListWaterParametersByVisit(ctx context.Context, visitID uuid.UUID) ([]models.WaterParameter, error) {
	query := `
		SELECT id, visit_id, ph, chlorine_level, turbidity, notes, created_at
		FROM water_parameters
		WHERE visit_id = $1
		ORDER BY created_at ASC
	`

	rows, err := r.pool.Query(ctx, query, visitID)
	if err != nil {
		return nil, fmt.Errorf("failed to list water parameters: %w", err)
	}
	defer rows.Close()

	params := []models.WaterParameter{}
	for rows.Next() {
		p := models.WaterParameter{}
		err := rows.Scan(&p.ID, &p.VisitID, &p.PH, &p.ChlorineLevel, &p.Turbidity, &p.Notes, &p.CreatedAt)
		if err != nil {
			return nil, fmt.Errorf("failed to scan water parameter: %w", err)
		}
		params = append(params, p)
	}

	if rows.Err() != nil {
		return nil, fmt.Errorf("error iterating water parameters: %w", rows.Err())
	}

	return params, nil
}
