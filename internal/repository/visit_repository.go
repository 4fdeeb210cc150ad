package repository

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/Alison-Albino/EccoServ88-sub000/internal/models"
)

type VisitRepository struct {
	pool *pgxpool.Pool
}

func NewVisitRepository(pool *pgxpool.Pool) *VisitRepository {
	return &VisitRepository{pool: pool}
}

// visitDetailsSelect expands a visit through its full chain: well, the well's
// client, that client's user, the performing provider and its user. Inner
// joins keep the all-or-nothing view semantics: a visit with any unresolvable
// link simply does not appear.
const visitDetailsSelect = `
	SELECT v.id, v.well_id, v.provider_id, v.visit_date, v.service_type, v.visit_type,
		v.next_visit_date, v.observations, v.status, v.photos, v.documents, v.created_at,
		w.id, w.client_id, w.name, w.type, w.location, w.status, w.created_at, w.updated_at,
		c.id, c.user_id, c.address, c.phone, c.created_at, c.updated_at,
		cu.id, cu.email, cu.name, cu.user_type, cu.created_at, cu.updated_at,
		p.id, p.user_id, p.specialties, p.phone, p.created_at, p.updated_at,
		pu.id, pu.email, pu.name, pu.user_type, pu.created_at, pu.updated_at
	FROM visits v
	JOIN wells w ON w.id = v.well_id
	JOIN clients c ON c.id = w.client_id
	JOIN users cu ON cu.id = c.user_id
	JOIN providers p ON p.id = v.provider_id
	JOIN users pu ON pu.id = p.user_id
`

// visitDetailsOrder surfaces visits most recent first, with a stable
// tie-break on creation order.
const visitDetailsOrder = ` ORDER BY v.visit_date DESC, v.created_at DESC`

func scanVisitDetails(row rowScanner) (*models.VisitWithDetails, error) {
	view := &models.VisitWithDetails{}

	err := row.Scan(
		&view.Visit.ID,
		&view.Visit.WellID,
		&view.Visit.ProviderID,
		&view.Visit.VisitDate,
		&view.Visit.ServiceType,
		&view.Visit.VisitType,
		&view.Visit.NextVisitDate,
		&view.Visit.Observations,
		&view.Visit.Status,
		&view.Visit.Photos,
		&view.Visit.Documents,
		&view.Visit.CreatedAt,
		&view.Well.Well.ID,
		&view.Well.Well.ClientID,
		&view.Well.Well.Name,
		&view.Well.Well.Type,
		&view.Well.Well.Location,
		&view.Well.Well.Status,
		&view.Well.Well.CreatedAt,
		&view.Well.Well.UpdatedAt,
		&view.Well.Client.ID,
		&view.Well.Client.UserID,
		&view.Well.Client.Address,
		&view.Well.Client.Phone,
		&view.Well.Client.CreatedAt,
		&view.Well.Client.UpdatedAt,
		&view.Well.ClientUser.ID,
		&view.Well.ClientUser.Email,
		&view.Well.ClientUser.Name,
		&view.Well.ClientUser.UserType,
		&view.Well.ClientUser.CreatedAt,
		&view.Well.ClientUser.UpdatedAt,
		&view.Provider.ID,
		&view.Provider.UserID,
		&view.Provider.Specialties,
		&view.Provider.Phone,
		&view.Provider.CreatedAt,
		&view.Provider.UpdatedAt,
		&view.ProviderUser.ID,
		&view.ProviderUser.Email,
		&view.ProviderUser.Name,
		&view.ProviderUser.UserType,
		&view.ProviderUser.CreatedAt,
		&view.ProviderUser.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	view.StatusLabel = view.Visit.Status.Label()
	view.Well.StatusLabel = view.Well.Well.Status.Label()
	return view, nil
}

// CreateWithCascade persists a visit together with its material usage rows,
// water parameter readings and the auto-created scheduled visit, all in one
// transaction. Any failure rolls back the whole cascade.
func (r *VisitRepository) CreateWithCascade(
	ctx context.Context,
	visit *models.Visit,
	materials []models.MaterialUsage,
	waterParams []models.WaterParameter,
	scheduled *models.ScheduledVisit,
) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	query := `
		INSERT INTO visits (id, well_id, provider_id, visit_date, service_type, visit_type,
			next_visit_date, observations, status, photos, documents)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
		RETURNING created_at
	`

	err = tx.QueryRow(ctx, query,
		visit.ID,
		visit.WellID,
		visit.ProviderID,
		visit.VisitDate,
		visit.ServiceType,
		visit.VisitType,
		visit.NextVisitDate,
		visit.Observations,
		visit.Status,
		visit.Photos,
		visit.Documents,
	).Scan(&visit.CreatedAt)
	if err != nil {
		return fmt.Errorf("failed to create visit: %w", err)
	}

	for i := range materials {
		m := &materials[i]
		query := `
			INSERT INTO material_usages (id, visit_id, material_type, quantity_grams, notes)
			VALUES ($1, $2, $3, $4, $5)
			RETURNING created_at
		`
		err := tx.QueryRow(ctx, query, m.ID, m.VisitID, m.MaterialType, m.QuantityGrams, m.Notes).
			Scan(&m.CreatedAt)
		if err != nil {
			return fmt.Errorf("failed to create material usage: %w", err)
		}
	}

	for i := range waterParams {
		p := &waterParams[i]
		query := `
			INSERT INTO water_parameters (id, visit_id, ph, chlorine_level, turbidity, notes)
			VALUES ($1, $2, $3, $4, $5, $6)
			RETURNING created_at
		`
		err := tx.QueryRow(ctx, query, p.ID, p.VisitID, p.PH, p.ChlorineLevel, p.Turbidity, p.Notes).
			Scan(&p.CreatedAt)
		if err != nil {
			return fmt.Errorf("failed to create water parameter: %w", err)
		}
	}

	if scheduled != nil {
		query := `
			INSERT INTO scheduled_visits (id, well_id, provider_id, scheduled_date, service_type,
				status, notes, created_from_visit_id)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
			RETURNING created_at
		`
		err := tx.QueryRow(ctx, query,
			scheduled.ID,
			scheduled.WellID,
			scheduled.ProviderID,
			scheduled.ScheduledDate,
			scheduled.ServiceType,
			scheduled.Status,
			scheduled.Notes,
			scheduled.CreatedFromVisitID,
		).Scan(&scheduled.CreatedAt)
		if err != nil {
			return fmt.Errorf("failed to create scheduled visit: %w", err)
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}

	return nil
}

// GetByID retrieves a visit by ID.
func (r *VisitRepository) GetByID(ctx context.Context, visitID uuid.UUID) (*models.Visit, error) {
	visit := &models.Visit{}

	query := `
		SELECT id, well_id, provider_id, visit_date, service_type, visit_type,
			next_visit_date, observations, status, photos, documents, created_at
		FROM visits
		WHERE id = $1
	`

	err := r.pool.QueryRow(ctx, query, visitID).Scan(
		&visit.ID,
		&visit.WellID,
		&visit.ProviderID,
		&visit.VisitDate,
		&visit.ServiceType,
		&visit.VisitType,
		&visit.NextVisitDate,
		&visit.Observations,
		&visit.Status,
		&visit.Photos,
		&visit.Documents,
		&visit.CreatedAt,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to get visit: %w", notFoundOr(err))
	}

	return visit, nil
}

// GetDetails retrieves one visit with its full chain resolved.
func (r *VisitRepository) GetDetails(ctx context.Context, visitID uuid.UUID) (*models.VisitWithDetails, error) {
	row := r.pool.QueryRow(ctx, visitDetailsSelect+` WHERE v.id = $1`, visitID)

	view, err := scanVisitDetails(row)
	if err != nil {
		return nil, fmt.Errorf("failed to get visit details: %w", notFoundOr(err))
	}

	return view, nil
}

// ListDetails retrieves all visits with details, most recent first.
func (r *VisitRepository) ListDetails(ctx context.Context) ([]models.VisitWithDetails, error) {
	return r.listDetails(ctx, visitDetailsSelect+visitDetailsOrder)
}

// ListDetailsByWell retrieves the visits performed at one well.
func (r *VisitRepository) ListDetailsByWell(ctx context.Context, wellID uuid.UUID) ([]models.VisitWithDetails, error) {
	return r.listDetails(ctx, visitDetailsSelect+` WHERE v.well_id = $1`+visitDetailsOrder, wellID)
}

// ListDetailsByProvider retrieves the visits performed by one provider.
func (r *VisitRepository) ListDetailsByProvider(ctx context.Context, providerID uuid.UUID) ([]models.VisitWithDetails, error) {
	return r.listDetails(ctx, visitDetailsSelect+` WHERE v.provider_id = $1`+visitDetailsOrder, providerID)
}

// ListDetailsByClient retrieves the visits across every well of one client.
func (r *VisitRepository) ListDetailsByClient(ctx context.Context, clientID uuid.UUID) ([]models.VisitWithDetails, error) {
	return r.listDetails(ctx, visitDetailsSelect+` WHERE w.client_id = $1`+visitDetailsOrder, clientID)
}

func (r *VisitRepository) listDetails(ctx context.Context, query string, args ...any) ([]models.VisitWithDetails, error) {
	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list visits: %w", err)
	}
	defer rows.Close()

	views := []models.VisitWithDetails{}
	for rows.Next() {
		view, err := scanVisitDetails(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan visit: %w", err)
		}
		views = append(views, *view)
	}

	if rows.Err() != nil {
		return nil, fmt.Errorf("error iterating visits: %w", rows.Err())
	}

	return views, nil
}

// UpdateStatus patches a visit's status. Transition rules are enforced by the
// service layer before this is called.
func (r *VisitRepository) UpdateStatus(ctx context.Context, visitID uuid.UUID, status models.VisitStatus) error {
	result, err := r.pool.Exec(ctx, `UPDATE visits SET status = $1 WHERE id = $2`, status, visitID)
	if err != nil {
		return fmt.Errorf("failed to update visit status: %w", err)
	}

	if result.RowsAffected() == 0 {
		return fmt.Errorf("failed to update visit status: %w", ErrNotFound)
	}

	return nil
}
