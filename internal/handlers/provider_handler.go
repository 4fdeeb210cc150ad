package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/Alison-Albino/EccoServ88-sub000/internal/repository"
	"github.com/Alison-Albino/EccoServ88-sub000/internal/services"
)

// ProviderHandler serves the provider directory.
type ProviderHandler struct {
	providers *repository.ProviderRepository
	visits    *services.VisitService
	auth      *services.AuthService
}

func NewProviderHandler(
	providers *repository.ProviderRepository,
	visits *services.VisitService,
	auth *services.AuthService,
) *ProviderHandler {
	return &ProviderHandler{
		providers: providers,
		visits:    visits,
		auth:      auth,
	}
}

// List returns every provider with its user record.
func (h *ProviderHandler) List(c *gin.Context) {
	providers, err := h.providers.ListWithUsers(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"providers": providers})
}

// Get returns one provider with its user record.
func (h *ProviderHandler) Get(c *gin.Context) {
	providerID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	provider, err := h.providers.GetWithUser(c.Request.Context(), providerID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, provider)
}

// Visits returns the visits performed by a provider.
func (h *ProviderHandler) Visits(c *gin.Context) {
	providerID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	if _, err := h.providers.GetByID(c.Request.Context(), providerID); err != nil {
		respondError(c, err)
		return
	}

	visits, err := h.visits.ListVisitsByProvider(c.Request.Context(), providerID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"visits": visits})
}

// Delete removes a provider and its user account. Providers with recorded
// visits cannot be removed.
func (h *ProviderHandler) Delete(c *gin.Context) {
	providerID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	if err := h.providers.Delete(c.Request.Context(), providerID); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "provider removed"})
}

// ResetPassword issues a temporary password for the provider's user account.
// The plaintext is returned exactly once.
func (h *ProviderHandler) ResetPassword(c *gin.Context) {
	providerID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	password, err := h.auth.ResetProviderPassword(c.Request.Context(), providerID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"temporary_password": password})
}
