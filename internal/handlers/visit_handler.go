package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/Alison-Albino/EccoServ88-sub000/internal/models"
	"github.com/Alison-Albino/EccoServ88-sub000/internal/services"
)

// VisitHandler serves visit recording and history. Visit creation is a
// multipart form: scalar fields plus photo and document files, with material
// lines and water readings as JSON strings.
type VisitHandler struct {
	visits  *services.VisitService
	uploads *services.UploadService
}

func NewVisitHandler(visits *services.VisitService, uploads *services.UploadService) *VisitHandler {
	return &VisitHandler{visits: visits, uploads: uploads}
}

// Create records a visit with its materials, water readings and files.
func (h *VisitHandler) Create(c *gin.Context) {
	wellID, err := uuid.Parse(c.PostForm("well_id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid well_id"})
		return
	}
	providerID, err := uuid.Parse(c.PostForm("provider_id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid provider_id"})
		return
	}

	req := &models.CreateVisitRequest{
		ID:            uuid.New(),
		WellID:        wellID,
		ProviderID:    providerID,
		VisitDate:     c.PostForm("visit_date"),
		ServiceType:   c.PostForm("service_type"),
		VisitType:     models.VisitType(c.PostForm("visit_type")),
		NextVisitDate: c.PostForm("next_visit_date"),
		Observations:  c.PostForm("observations"),
	}

	materials := []models.VisitMaterialInput{}
	if raw := c.PostForm("materials"); raw != "" {
		if err := json.Unmarshal([]byte(raw), &materials); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid materials payload"})
			return
		}
	}

	waterParams := []models.VisitWaterParameterInput{}
	if raw := c.PostForm("water_parameters"); raw != "" {
		if err := json.Unmarshal([]byte(raw), &waterParams); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid water_parameters payload"})
			return
		}
	}

	stored := []services.StoredVisitFile{}
	if form, err := c.MultipartForm(); err == nil && form != nil {
		for _, header := range form.File["photos"] {
			file, err := h.uploads.SaveVisitFile(c.Request.Context(), req.ID, services.FileKindPhoto, header)
			if err != nil {
				h.uploads.CleanupVisitFiles(c.Request.Context(), stored)
				respondError(c, err)
				return
			}
			stored = append(stored, *file)
			req.Photos = append(req.Photos, file.PublicURL)
		}
		for _, header := range form.File["documents"] {
			file, err := h.uploads.SaveVisitFile(c.Request.Context(), req.ID, services.FileKindDocument, header)
			if err != nil {
				h.uploads.CleanupVisitFiles(c.Request.Context(), stored)
				respondError(c, err)
				return
			}
			stored = append(stored, *file)
			req.Documents = append(req.Documents, file.PublicURL)
		}
	}

	visit, err := h.visits.CreateVisit(c.Request.Context(), req, materials, waterParams)
	if err != nil {
		// The visit never landed, so its files must not stay behind.
		h.uploads.CleanupVisitFiles(c.Request.Context(), stored)
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, visit)
}

// List returns every visit with its full chain.
func (h *VisitHandler) List(c *gin.Context) {
	visits, err := h.visits.ListVisits(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"visits": visits})
}

// Get returns one visit with its chain, materials and water readings.
func (h *VisitHandler) Get(c *gin.Context) {
	visitID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	visit, err := h.visits.GetVisit(c.Request.Context(), visitID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, visit)
}

// UpdateStatus applies a visit status transition.
func (h *VisitHandler) UpdateStatus(c *gin.Context) {
	visitID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	var req models.UpdateStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if err := h.visits.UpdateVisitStatus(c.Request.Context(), visitID, models.VisitStatus(req.Status)); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "visit status updated"})
}
