package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/Alison-Albino/EccoServ88-sub000/internal/models"
	"github.com/Alison-Albino/EccoServ88-sub000/internal/services"
)

// WellHandler serves well CRUD and the per-well visit history.
type WellHandler struct {
	wells  *services.WellService
	visits *services.VisitService
}

func NewWellHandler(wells *services.WellService, visits *services.VisitService) *WellHandler {
	return &WellHandler{wells: wells, visits: visits}
}

// Create registers a new well for a client.
func (h *WellHandler) Create(c *gin.Context) {
	var req models.CreateWellRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	well, err := h.wells.CreateWell(c.Request.Context(), &req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, well)
}

// List returns every well with its owner.
func (h *WellHandler) List(c *gin.Context) {
	wells, err := h.wells.ListWells(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"wells": wells})
}

// Get returns one well with its owner.
func (h *WellHandler) Get(c *gin.Context) {
	wellID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	well, err := h.wells.GetWell(c.Request.Context(), wellID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, well)
}

// Visits returns the visit history of one well, most recent first.
func (h *WellHandler) Visits(c *gin.Context) {
	wellID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	if _, err := h.wells.GetWell(c.Request.Context(), wellID); err != nil {
		respondError(c, err)
		return
	}

	visits, err := h.visits.ListVisitsByWell(c.Request.Context(), wellID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"visits": visits})
}

// UpdateStatus patches a well's status.
func (h *WellHandler) UpdateStatus(c *gin.Context) {
	wellID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	var req models.UpdateStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if err := h.wells.UpdateWellStatus(c.Request.Context(), wellID, models.WellStatus(req.Status)); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "well status updated"})
}

// Delete removes a well with no recorded visits.
func (h *WellHandler) Delete(c *gin.Context) {
	wellID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	if err := h.wells.DeleteWell(c.Request.Context(), wellID); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "well removed"})
}
