package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/Alison-Albino/EccoServ88-sub000/internal/models"
	"github.com/Alison-Albino/EccoServ88-sub000/internal/repository"
	"github.com/Alison-Albino/EccoServ88-sub000/internal/utils"
)

// UserStore is the user persistence surface the auth service needs.
type UserStore interface {
	CreateWithProfile(ctx context.Context, user *models.User, client *models.Client, provider *models.Provider) error
	GetByEmail(ctx context.Context, email string) (*models.User, error)
	GetByID(ctx context.Context, userID uuid.UUID) (*models.User, error)
	GetWithProfile(ctx context.Context, userID uuid.UUID) (*models.UserWithProfile, error)
	UpdatePassword(ctx context.Context, userID uuid.UUID, passwordHash string) error
}

// ProfileStore resolves client/provider profiles back to their user, used by
// the administrative password reset.
type ProfileStore interface {
	GetClient(ctx context.Context, clientID uuid.UUID) (*models.Client, error)
	GetProvider(ctx context.Context, providerID uuid.UUID) (*models.Provider, error)
}

type AuthService struct {
	users    UserStore
	profiles ProfileStore
}

func NewAuthService(users UserStore, profiles ProfileStore) *AuthService {
	return &AuthService{users: users, profiles: profiles}
}

// Register creates a user with its client or provider profile. Email
// uniqueness is checked here; the database constraint backs it up.
func (s *AuthService) Register(ctx context.Context, req *models.RegisterRequest) (*models.UserWithProfile, error) {
	if !req.UserType.Valid() {
		return nil, fmt.Errorf("%w: unknown user type %q", ErrValidation, req.UserType)
	}

	email := utils.NormalizeEmail(req.Email)

	if _, err := s.users.GetByEmail(ctx, email); err == nil {
		return nil, ErrEmailExists
	} else if !errors.Is(err, repository.ErrNotFound) {
		return nil, err
	}

	hash, err := utils.HashPassword(req.Password)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	user := &models.User{
		ID:           uuid.New(),
		Email:        email,
		PasswordHash: hash,
		Name:         req.Name,
		UserType:     req.UserType,
	}

	view := &models.UserWithProfile{}

	var client *models.Client
	var provider *models.Provider
	switch req.UserType {
	case models.UserTypeClient:
		client = &models.Client{
			ID:      uuid.New(),
			UserID:  user.ID,
			Address: req.Address,
			Phone:   req.Phone,
		}
		view.Client = client
	case models.UserTypeProvider:
		specialties := req.Specialties
		if specialties == nil {
			specialties = []string{}
		}
		provider = &models.Provider{
			ID:          uuid.New(),
			UserID:      user.ID,
			Specialties: specialties,
			Phone:       req.Phone,
		}
		view.Provider = provider
	}

	if err := s.users.CreateWithProfile(ctx, user, client, provider); err != nil {
		return nil, err
	}

	view.User = *user
	return view, nil
}

// Login verifies credentials and returns the user with its profile.
func (s *AuthService) Login(ctx context.Context, email, password string) (*models.UserWithProfile, error) {
	user, err := s.users.GetByEmail(ctx, utils.NormalizeEmail(email))
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, err
	}

	if !utils.CheckPasswordHash(password, user.PasswordHash) {
		return nil, ErrInvalidCredentials
	}

	return s.users.GetWithProfile(ctx, user.ID)
}

// GetProfile returns the profile view for an authenticated user.
func (s *AuthService) GetProfile(ctx context.Context, userID uuid.UUID) (*models.UserWithProfile, error) {
	return s.users.GetWithProfile(ctx, userID)
}

// ResetClientPassword resets the password of a client's user to a generated
// temporary value and returns it once. Only the hash is stored.
func (s *AuthService) ResetClientPassword(ctx context.Context, clientID uuid.UUID) (string, error) {
	client, err := s.profiles.GetClient(ctx, clientID)
	if err != nil {
		return "", err
	}
	return s.resetPassword(ctx, client.UserID)
}

// ResetProviderPassword resets the password of a provider's user to a
// generated temporary value and returns it once.
func (s *AuthService) ResetProviderPassword(ctx context.Context, providerID uuid.UUID) (string, error) {
	provider, err := s.profiles.GetProvider(ctx, providerID)
	if err != nil {
		return "", err
	}
	return s.resetPassword(ctx, provider.UserID)
}

func (s *AuthService) resetPassword(ctx context.Context, userID uuid.UUID) (string, error) {
	temp := utils.GenerateTemporaryPassword()

	hash, err := utils.HashPassword(temp)
	if err != nil {
		return "", fmt.Errorf("failed to hash password: %w", err)
	}

	if err := s.users.UpdatePassword(ctx, userID, hash); err != nil {
		return "", err
	}

	return temp, nil
}
