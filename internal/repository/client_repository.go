package repository

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/Alison-Albino/EccoServ88-sub000/internal/models"
)

type ClientRepository struct {
	pool *pgxpool.Pool
}

func NewClientRepository(pool *pgxpool.Pool) *ClientRepository {
	return &ClientRepository{pool: pool}
}

// GetByID retrieves a client by ID.
func (r *ClientRepository) GetByID(ctx context.Context, clientID uuid.UUID) (*models.Client, error) {
	client := &models.Client{}

	query := `
		SELECT id, user_id, address, phone, created_at, updated_at
		FROM clients
		WHERE id = $1
	`

	err := r.pool.QueryRow(ctx, query, clientID).Scan(
		&client.ID,
		&client.UserID,
		&client.Address,
		&client.Phone,
		&client.CreatedAt,
		&client.UpdatedAt,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to get client: %w", notFoundOr(err))
	}

	return client, nil
}

// GetWithUser retrieves a client together with its user record.
func (r *ClientRepository) GetWithUser(ctx context.Context, clientID uuid.UUID) (*models.UserWithProfile, error) {
	client := &models.Client{}
	user := &models.User{}

	query := `
		SELECT c.id, c.user_id, c.address, c.phone, c.created_at, c.updated_at,
			u.id, u.email, u.name, u.user_type, u.created_at, u.updated_at
		FROM clients c
		JOIN users u ON u.id = c.user_id
		WHERE c.id = $1
	`

	err := r.pool.QueryRow(ctx, query, clientID).Scan(
		&client.ID,
		&client.UserID,
		&client.Address,
		&client.Phone,
		&client.CreatedAt,
		&client.UpdatedAt,
		&user.ID,
		&user.Email,
		&user.Name,
		&user.UserType,
		&user.CreatedAt,
		&user.UpdatedAt,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to get client with user: %w", notFoundOr(err))
	}

	return &models.UserWithProfile{User: *user, Client: client}, nil
}

// ListWithUsers retrieves every client joined to its user, newest first.
func (r *ClientRepository) ListWithUsers(ctx context.Context) ([]models.UserWithProfile, error) {
	query := `
		SELECT c.id, c.user_id, c.address, c.phone, c.created_at, c.updated_at,
			u.id, u.email, u.name, u.user_type, u.created_at, u.updated_at
		FROM clients c
		JOIN users u ON u.id = c.user_id
		ORDER BY c.created_at DESC
	`

	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list clients: %w", err)
	}
	defer rows.Close()

	views := []models.UserWithProfile{}
	for rows.Next() {
		client := models.Client{}
		user := models.User{}
		err := rows.Scan(
			&client.ID,
			&client.UserID,
			&client.Address,
			&client.Phone,
			&client.CreatedAt,
			&client.UpdatedAt,
			&user.ID,
			&user.Email,
			&user.Name,
			&user.UserType,
			&user.CreatedAt,
			&user.UpdatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan client: %w", err)
		}
		clientCopy := client
		views = append(views, models.UserWithProfile{User: user, Client: &clientCopy})
	}

	if rows.Err() != nil {
		return nil, fmt.Errorf("error iterating clients: %w", rows.Err())
	}

	return views, nil
}
