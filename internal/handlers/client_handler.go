package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/Alison-Albino/EccoServ88-sub000/internal/repository"
	"github.com/Alison-Albino/EccoServ88-sub000/internal/services"
)

// ClientHandler serves the client directory and its nested resources.
type ClientHandler struct {
	clients  *repository.ClientRepository
	wells    *services.WellService
	visits   *services.VisitService
	invoices *services.InvoiceService
	auth     *services.AuthService
}

func NewClientHandler(
	clients *repository.ClientRepository,
	wells *services.WellService,
	visits *services.VisitService,
	invoices *services.InvoiceService,
	auth *services.AuthService,
) *ClientHandler {
	return &ClientHandler{
		clients:  clients,
		wells:    wells,
		visits:   visits,
		invoices: invoices,
		auth:     auth,
	}
}

// List returns every client with its user record.
func (h *ClientHandler) List(c *gin.Context) {
	clients, err := h.clients.ListWithUsers(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"clients": clients})
}

// Get returns one client with its user record.
func (h *ClientHandler) Get(c *gin.Context) {
	clientID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	client, err := h.clients.GetWithUser(c.Request.Context(), clientID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, client)
}

// Wells returns the wells owned by a client.
func (h *ClientHandler) Wells(c *gin.Context) {
	clientID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	if _, err := h.clients.GetByID(c.Request.Context(), clientID); err != nil {
		respondError(c, err)
		return
	}

	wells, err := h.wells.ListWellsByClient(c.Request.Context(), clientID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"wells": wells})
}

// Visits returns the visits performed on a client's wells.
func (h *ClientHandler) Visits(c *gin.Context) {
	clientID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	if _, err := h.clients.GetByID(c.Request.Context(), clientID); err != nil {
		respondError(c, err)
		return
	}

	visits, err := h.visits.ListVisitsByClient(c.Request.Context(), clientID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"visits": visits})
}

// Invoices returns the invoices billed to a client.
func (h *ClientHandler) Invoices(c *gin.Context) {
	clientID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	if _, err := h.clients.GetByID(c.Request.Context(), clientID); err != nil {
		respondError(c, err)
		return
	}

	invoices, err := h.invoices.ListInvoicesByClient(c.Request.Context(), clientID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"invoices": invoices})
}

// ResetPassword issues a temporary password for the client's user account.
// The plaintext is returned exactly once.
func (h *ClientHandler) ResetPassword(c *gin.Context) {
	clientID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	password, err := h.auth.ResetClientPassword(c.Request.Context(), clientID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"temporary_password": password})
}
