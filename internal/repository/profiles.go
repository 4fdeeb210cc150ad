package repository

import (
	"context"

	"github.com/google/uuid"

	"github.com/Alison-Albino/EccoServ88-sub000/internal/models"
)

// Profiles bundles client and provider lookup behind one existence-check
// surface for the services.
type Profiles struct {
	clients   *ClientRepository
	providers *ProviderRepository
}

func NewProfiles(clients *ClientRepository, providers *ProviderRepository) *Profiles {
	return &Profiles{clients: clients, providers: providers}
}

func (p *Profiles) GetClient(ctx context.Context, clientID uuid.UUID) (*models.Client, error) {
	return p.clients.GetByID(ctx, clientID)
}

func (p *Profiles) GetProvider(ctx context.Context, providerID uuid.UUID) (*models.Provider, error) {
	return p.providers.GetByID(ctx, providerID)
}
