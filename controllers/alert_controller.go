package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/jackgraver/simple-track/services"
)

type AlertController struct {
	Svc *services.AlertService
}

func NewAlertController(svc *services.AlertService) *AlertController {
	return &AlertController{Svc: svc}
}

// GET /diet/alerts?limit=20
func (h *AlertController) List(c *gin.Context) {
	limit, ok := intQuery(c, "limit")
	if !ok {
		return
	}
	alerts, err := h.Svc.List(c.Request.Context(), limit)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, alerts)
}
