package controllers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/jackgraver/simple-track/models"
	"github.com/jackgraver/simple-track/services"
)

type DietLogController struct {
	Days *services.DayService
	now  func() time.Time
}

func NewDietLogController(days *services.DayService) *DietLogController {
	return &DietLogController{Days: days, now: time.Now}
}

func summarizeAll(days []models.MealPlanDay) []services.DaySummary {
	out := make([]services.DaySummary, 0, len(days))
	for i := range days {
		out = append(out, services.Summarize(&days[i]))
	}
	return out
}

// GET /diet/logs/today?offset=-1
func (h *DietLogController) Today(c *gin.Context) {
	offset, ok := intQuery(c, "offset")
	if !ok {
		return
	}
	day, err := h.Days.Today(c.Request.Context(), offset)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"summary": services.Summarize(day),
		"today":   h.now(),
	})
}

func (h *DietLogController) Week(c *gin.Context) {
	days, err := h.Days.Week(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"days":  summarizeAll(days),
		"today": h.now(),
	})
}

// GET /diet/logs/month?monthoffset=-1
func (h *DietLogController) Month(c *gin.Context) {
	offset, ok := intQuery(c, "monthoffset")
	if !ok {
		return
	}
	days, first, last, err := h.Days.Month(c.Request.Context(), offset)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"days":  summarizeAll(days),
		"today": h.now(),
		"range": gin.H{
			"start": first,
			"end":   last,
		},
		"month":  first.Month().String(),
		"offset": offset,
	})
}

// GET /diet/logs/day/:date with date as YYYY-MM-DD
func (h *DietLogController) ByDate(c *gin.Context) {
	date, err := time.Parse("2006-01-02", c.Param("date"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid date format. Use YYYY-MM-DD"})
		return
	}
	day, err := h.Days.ByDate(c.Request.Context(), date)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, services.Summarize(day))
}

// GET /diet/logs/days/:id/summary
func (h *DietLogController) Summary(c *gin.Context) {
	id, ok := uintParam(c, "id")
	if !ok {
		return
	}
	day, err := h.Days.Get(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, services.Summarize(day))
}

// POST /diet/logs/meal
func (h *DietLogController) LogMeal(c *gin.Context) {
	var req services.LogMealRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	dm, err := h.Days.LogMeal(c.Request.Context(), req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, dm)
}

// POST /diet/logs/days/:id/meals
func (h *DietLogController) AddDayMeal(c *gin.Context) {
	id, ok := uintParam(c, "id")
	if !ok {
		return
	}
	var body struct {
		MealID uint              `json:"meal_id" binding:"required"`
		Status models.MealStatus `json:"status" binding:"required"`
	}
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	dm, err := h.Days.AddDayMeal(c.Request.Context(), id, body.MealID, body.Status)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, dm)
}

// PATCH /diet/logs/meals/:id
func (h *DietLogController) SetStatus(c *gin.Context) {
	id, ok := uintParam(c, "id")
	if !ok {
		return
	}
	var body struct {
		Status models.MealStatus `json:"status" binding:"required"`
	}
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	dm, err := h.Days.SetStatus(c.Request.Context(), id, body.Status)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, dm)
}

func (h *DietLogController) RemoveDayMeal(c *gin.Context) {
	id, ok := uintParam(c, "id")
	if !ok {
		return
	}
	if err := h.Days.RemoveDayMeal(c.Request.Context(), id); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// PUT /diet/logs/days/:id/goals
func (h *DietLogController) UpdateGoals(c *gin.Context) {
	id, ok := uintParam(c, "id")
	if !ok {
		return
	}
	var in services.GoalsInput
	if err := c.ShouldBindJSON(&in); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	goals, err := h.Days.UpsertGoals(c.Request.Context(), id, in)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, goals)
}
