package repository

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/Alison-Albino/EccoServ88-sub000/internal/models"
)

type UserRepository struct {
	pool *pgxpool.Pool
}

func NewUserRepository(pool *pgxpool.Pool) *UserRepository {
	return &UserRepository{pool: pool}
}

// CreateWithProfile creates a user together with its client or provider
// profile in a single transaction. Exactly one of client/provider may be set;
// admins carry neither.
func (r *UserRepository) CreateWithProfile(ctx context.Context, user *models.User, client *models.Client, provider *models.Provider) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	query := `
		INSERT INTO users (id, email, password_hash, name, user_type)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING created_at, updated_at
	`

	err = tx.QueryRow(ctx, query,
		user.ID,
		user.Email,
		user.PasswordHash,
		user.Name,
		user.UserType,
	).Scan(&user.CreatedAt, &user.UpdatedAt)
	if err != nil {
		return fmt.Errorf("failed to create user: %w", err)
	}

	if client != nil {
		query := `
			INSERT INTO clients (id, user_id, address, phone)
			VALUES ($1, $2, $3, $4)
			RETURNING created_at, updated_at
		`
		err = tx.QueryRow(ctx, query, client.ID, client.UserID, client.Address, client.Phone).
			Scan(&client.CreatedAt, &client.UpdatedAt)
		if err != nil {
			return fmt.Errorf("failed to create client profile: %w", err)
		}
	}

	if provider != nil {
		query := `
			INSERT INTO providers (id, user_id, specialties, phone)
			VALUES ($1, $2, $3, $4)
			RETURNING created_at, updated_at
		`
		err = tx.QueryRow(ctx, query, provider.ID, provider.UserID, provider.Specialties, provider.Phone).
			Scan(&provider.CreatedAt, &provider.UpdatedAt)
		if err != nil {
			return fmt.Errorf("failed to create provider profile: %w", err)
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}

	return nil
}

// GetByEmail retrieves a user by email.
func (r *UserRepository) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	user := &models.User{}

	query := `
		SELECT id, email, password_hash, name, user_type, created_at, updated_at
		FROM users
		WHERE email = $1
	`

	err := r.pool.QueryRow(ctx, query, email).Scan(
		&user.ID,
		&user.Email,
		&user.PasswordHash,
		&user.Name,
		&user.UserType,
		&user.CreatedAt,
		&user.UpdatedAt,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to get user by email: %w", notFoundOr(err))
	}

	return user, nil
}

// GetByID retrieves a user by ID.
func (r *UserRepository) GetByID(ctx context.Context, userID uuid.UUID) (*models.User, error) {
	user := &models.User{}

	query := `
		SELECT id, email, password_hash, name, user_type, created_at, updated_at
		FROM users
		WHERE id = $1
	`

	err := r.pool.QueryRow(ctx, query, userID).Scan(
		&user.ID,
		&user.Email,
		&user.PasswordHash,
		&user.Name,
		&user.UserType,
		&user.CreatedAt,
		&user.UpdatedAt,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to get user: %w", notFoundOr(err))
	}

	return user, nil
}

// GetWithProfile retrieves a user with its client or provider profile.
func (r *UserRepository) GetWithProfile(ctx context.Context, userID uuid.UUID) (*models.UserWithProfile, error) {
	user, err := r.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	view := &models.UserWithProfile{User: *user}

	switch user.UserType {
	case models.UserTypeClient:
		client := &models.Client{}
		query := `
			SELECT id, user_id, address, phone, created_at, updated_at
			FROM clients
			WHERE user_id = $1
		`
		err := r.pool.QueryRow(ctx, query, userID).Scan(
			&client.ID,
			&client.UserID,
			&client.Address,
			&client.Phone,
			&client.CreatedAt,
			&client.UpdatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to get client profile: %w", notFoundOr(err))
		}
		view.Client = client

	case models.UserTypeProvider:
		provider := &models.Provider{}
		query := `
			SELECT id, user_id, specialties, phone, created_at, updated_at
			FROM providers
			WHERE user_id = $1
		`
		err := r.pool.QueryRow(ctx, query, userID).Scan(
			&provider.ID,
			&provider.UserID,
			&provider.Specialties,
			&provider.Phone,
			&provider.CreatedAt,
			&provider.UpdatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to get provider profile: %w", notFoundOr(err))
		}
		view.Provider = provider
	}

	return view, nil
}

// UpdatePassword replaces a user's password hash.
func (r *UserRepository) UpdatePassword(ctx context.Context, userID uuid.UUID, passwordHash string) error {
	query := `UPDATE users SET password_hash = $1, updated_at = now() WHERE id = $2`

	result, err := r.pool.Exec(ctx, query, passwordHash, userID)
	if err != nil {
		return fmt.Errorf("failed to update password: %w", err)
	}

	if result.RowsAffected() == 0 {
		return fmt.Errorf("failed to update password: %w", ErrNotFound)
	}

	return nil
}
