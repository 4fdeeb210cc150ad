package repository

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/Alison-Albino/EccoServ88-sub000/internal/models"
)

type WellRepository struct {
	pool *pgxpool.Pool
}

func NewWellRepository(pool *pgxpool.Pool) *WellRepository {
	return &WellRepository{pool: pool}
}

// wellWithClientSelect joins a well to its owning client and that client's
// user. Inner joins: a well whose chain does not resolve is never returned.
const wellWithClientSelect = `
	SELECT w.id, w.client_id, w.name, w.type, w.location, w.status, w.created_at, w.updated_at,
		c.id, c.user_id, c.address, c.phone, c.created_at, c.updated_at,
		u.id, u.email, u.name, u.user_type, u.created_at, u.updated_at
	FROM wells w
	JOIN clients c ON c.id = w.client_id
	JOIN users u ON u.id = c.user_id
`

type rowScanner interface {
	Scan(dest ...any) error
}

func scanWellWithClient(row rowScanner) (*models.WellWithClient, error) {
	view := &models.WellWithClient{}

	err := row.Scan(
		&view.Well.ID,
		&view.Well.ClientID,
		&view.Well.Name,
		&view.Well.Type,
		&view.Well.Location,
		&view.Well.Status,
		&view.Well.CreatedAt,
		&view.Well.UpdatedAt,
		&view.Client.ID,
		&view.Client.UserID,
		&view.Client.Address,
		&view.Client.Phone,
		&view.Client.CreatedAt,
		&view.Client.UpdatedAt,
		&view.ClientUser.ID,
		&view.ClientUser.Email,
		&view.ClientUser.Name,
		&view.ClientUser.UserType,
		&view.ClientUser.CreatedAt,
		&view.ClientUser.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	view.StatusLabel = view.Well.Status.Label()
	return view, nil
}

// Create inserts a new well.
func (r *WellRepository) Create(ctx context.Context, well *models.Well) error {
	query := `
		INSERT INTO wells (id, client_id, name, type, location, status)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING created_at, updated_at
	`

	err := r.pool.QueryRow(ctx, query,
		well.ID,
		well.ClientID,
		well.Name,
		well.Type,
		well.Location,
		well.Status,
	).Scan(&well.CreatedAt, &well.UpdatedAt)
	if err != nil {
		return fmt.Errorf("failed to create well: %w", err)
	}

	return nil
}

// GetByID retrieves a well by ID.
func (r *WellRepository) GetByID(ctx context.Context, wellID uuid.UUID) (*models.Well, error) {
	well := &models.Well{}

	query := `
		SELECT id, client_id, name, type, location, status, created_at, updated_at
		FROM wells
		WHERE id = $1
	`

	err := r.pool.QueryRow(ctx, query, wellID).Scan(
		&well.ID,
		&well.ClientID,
		&well.Name,
		&well.Type,
		&well.Location,
		&well.Status,
		&well.CreatedAt,
		&well.UpdatedAt,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to get well: %w", notFoundOr(err))
	}

	return well, nil
}

// GetWithClient retrieves a well with its client chain resolved.
func (r *WellRepository) GetWithClient(ctx context.Context, wellID uuid.UUID) (*models.WellWithClient, error) {
	row := r.pool.QueryRow(ctx, wellWithClientSelect+` WHERE w.id = $1`, wellID)

	view, err := scanWellWithClient(row)
	if err != nil {
		return nil, fmt.Errorf("failed to get well with client: %w", notFoundOr(err))
	}

	return view, nil
}

// ListWithClient retrieves every well with its client chain, newest first.
func (r *WellRepository) ListWithClient(ctx context.Context) ([]models.WellWithClient, error) {
	return r.listWithClient(ctx, wellWithClientSelect+` ORDER BY w.created_at DESC`)
}

// ListWithClientByClientID retrieves the wells owned by one client.
func (r *WellRepository) ListWithClientByClientID(ctx context.Context, clientID uuid.UUID) ([]models.WellWithClient, error) {
	return r.listWithClient(ctx, wellWithClientSelect+` WHERE w.client_id = $1 ORDER BY w.created_at DESC`, clientID)
}

func (r *WellRepository) listWithClient(ctx context.Context, query string, args ...any) ([]models.WellWithClient, error) {
	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list wells: %w", err)
	}
	defer rows.Close()

	views := []models.WellWithClient{}
	for rows.Next() {
		view, err := scanWellWithClient(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan well: %w", err)
		}
		views = append(views, *view)
	}

	if rows.Err() != nil {
		return nil, fmt.Errorf("error iterating wells: %w", rows.Err())
	}

	return views, nil
}

// UpdateStatus patches a well's status.
func (r *WellRepository) UpdateStatus(ctx context.Context, wellID uuid.UUID, status models.WellStatus) error {
	query := `UPDATE wells SET status = $1, updated_at = now() WHERE id = $2`

	result, err := r.pool.Exec(ctx, query, status, wellID)
	if err != nil {
		return fmt.Errorf("failed to update well status: %w", err)
	}

	if result.RowsAffected() == 0 {
		return fmt.Errorf("failed to update well status: %w", ErrNotFound)
	}

	return nil
}

// Delete removes a well. Returns ErrInUse when visits or scheduled visits
// still reference it.
func (r *WellRepository) Delete(ctx context.Context, wellID uuid.UUID) error {
	result, err := r.pool.Exec(ctx, `DELETE FROM wells WHERE id = $1`, wellID)
	if err != nil {
		return fmt.Errorf("failed to delete well: %w", inUseOr(err))
	}

	if result.RowsAffected() == 0 {
		return fmt.Errorf("failed to delete well: %w", ErrNotFound)
	}

	return nil
}
