package repository

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/Alison-Albino/EccoServ88-sub000/internal/models"
)

type ProviderRepository struct {
	pool *pgxpool.Pool
}

func NewProviderRepository(pool *pgxpool.Pool) *ProviderRepository {
	return &ProviderRepository{pool: pool}
}

// GetByID retrieves a provider by ID.
func (r *ProviderRepository) GetByID(ctx context.Context, providerID uuid.UUID) (*models.Provider, error) {
	provider := &models.Provider{}

	query := `
		SELECT id, user_id, specialties, phone, created_at, updated_at
		FROM providers
		WHERE id = $1
	`

	err := r.pool.QueryRow(ctx, query, providerID).Scan(
		&provider.ID,
		&provider.UserID,
		&provider.Specialties,
		&provider.Phone,
		&provider.CreatedAt,
		&provider.UpdatedAt,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to get provider: %w", notFoundOr(err))
	}

	return provider, nil
}

// GetWithUser retrieves a provider together with its user record.
func (r *ProviderRepository) GetWithUser(ctx context.Context, providerID uuid.UUID) (*models.UserWithProfile, error) {
	provider := &models.Provider{}
	user := &models.User{}

	query := `
		SELECT p.id, p.user_id, p.specialties, p.phone, p.created_at, p.updated_at,
			u.id, u.email, u.name, u.user_type, u.created_at, u.updated_at
		FROM providers p
		JOIN users u ON u.id = p.user_id
		WHERE p.id = $1
	`

	err := r.pool.QueryRow(ctx, query, providerID).Scan(
		&provider.ID,
		&provider.UserID,
		&provider.Specialties,
		&provider.Phone,
		&provider.CreatedAt,
		&provider.UpdatedAt,
		&user.ID,
		&user.Email,
		&user.Name,
		&user.UserType,
		&user.CreatedAt,
		&user.UpdatedAt,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to get provider with user: %w", notFoundOr(err))
	}

	return &models.UserWithProfile{User: *user, Provider: provider}, nil
}

// ListWithUsers retrieves every provider joined to its user, newest first.
func (r *ProviderRepository) ListWithUsers(ctx context.Context) ([]models.UserWithProfile, error) {
	query := `
		SELECT p.id, p.user_id, p.specialties, p.phone, p.created_at, p.updated_at,
			u.id, u.email, u.name, u.user_type, u.created_at, u.updated_at
		FROM providers p
		JOIN users u ON u.id = p.user_id
		ORDER BY p.created_at DESC
	`

	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list providers: %w", err)
	}
	defer rows.Close()

	views := []models.UserWithProfile{}
	for rows.Next() {
		provider := models.Provider{}
		user := models.User{}
		err := rows.Scan(
			&provider.ID,
			&provider.UserID,
			&provider.Specialties,
			&provider.Phone,
			&provider.CreatedAt,
			&provider.UpdatedAt,
			&user.ID,
			&user.Email,
			&user.Name,
			&user.UserType,
			&user.CreatedAt,
			&user.UpdatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan provider: %w", err)
		}
		providerCopy := provider
		views = append(views, models.UserWithProfile{User: user, Provider: &providerCopy})
	}

	if rows.Err() != nil {
		return nil, fmt.Errorf("error iterating providers: %w", rows.Err())
	}

	return views, nil
}

// Delete removes a provider and its linked user in a single transaction.
// The providers.user_id foreign key cascades, so deleting the user removes
// the profile row as well. Returns ErrInUse when visits or scheduled visits
// still reference the provider.
func (r *ProviderRepository) Delete(ctx context.Context, providerID uuid.UUID) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	var userID uuid.UUID
	err = tx.QueryRow(ctx, `SELECT user_id FROM providers WHERE id = $1`, providerID).Scan(&userID)
	if err != nil {
		return fmt.Errorf("failed to get provider: %w", notFoundOr(err))
	}

	if _, err := tx.Exec(ctx, `DELETE FROM users WHERE id = $1`, userID); err != nil {
		return fmt.Errorf("failed to delete provider user: %w", inUseOr(err))
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}

	return nil
}
