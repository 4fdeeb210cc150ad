package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/Alison-Albino/EccoServ88-sub000/internal/models"
	"github.com/Alison-Albino/EccoServ88-sub000/internal/services"
)

// ScheduledVisitHandler serves the future visit agenda.
type ScheduledVisitHandler struct {
	visits *services.VisitService
}

func NewScheduledVisitHandler(visits *services.VisitService) *ScheduledVisitHandler {
	return &ScheduledVisitHandler{visits: visits}
}

// Create registers a future visit manually.
func (h *ScheduledVisitHandler) Create(c *gin.Context) {
	var req models.CreateScheduledVisitRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	sv, err := h.visits.CreateScheduledVisit(c.Request.Context(), &req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, sv)
}

// List returns every scheduled visit, soonest first.
func (h *ScheduledVisitHandler) List(c *gin.Context) {
	scheduled, err := h.visits.ListScheduledVisits(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"scheduled_visits": scheduled})
}

// UpdateStatus applies a scheduled visit status transition.
func (h *ScheduledVisitHandler) UpdateStatus(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	var req models.UpdateStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if err := h.visits.UpdateScheduledVisitStatus(c.Request.Context(), id, models.ScheduledVisitStatus(req.Status)); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "scheduled visit status updated"})
}
