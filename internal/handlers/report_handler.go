package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/Alison-Albino/EccoServ88-sub000/internal/services"
)

// ReportHandler serves the material consumption report.
type ReportHandler struct {
	reports *services.ReportService
}

func NewReportHandler(reports *services.ReportService) *ReportHandler {
	return &ReportHandler{reports: reports}
}

// Consumption aggregates material usage over ?period=week or ?period=month.
func (h *ReportHandler) Consumption(c *gin.Context) {
	period := c.DefaultQuery("period", "week")

	report, err := h.reports.ConsumptionReport(c.Request.Context(), period)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, report)
}
