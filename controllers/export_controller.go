package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/jackgraver/simple-track/services"
)

type ExportController struct {
	Svc *services.ExportService
}

func NewExportController(svc *services.ExportService) *ExportController {
	return &ExportController{Svc: svc}
}

// GET /diet/logs/report?monthoffset=0
func (h *ExportController) Report(c *gin.Context) {
	offset, ok := intQuery(c, "monthoffset")
	if !ok {
		return
	}
	report, err := h.Svc.BuildMonth(c.Request.Context(), offset)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, report)
}

// POST /diet/logs/export?monthoffset=0
func (h *ExportController) Export(c *gin.Context) {
	offset, ok := intQuery(c, "monthoffset")
	if !ok {
		return
	}
	url, report, err := h.Svc.ExportMonth(c.Request.Context(), offset)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"url": url, "month": report.Month, "days": len(report.Days)})
}
