package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/jackgraver/simple-track/models"
	"github.com/jackgraver/simple-track/services"
	"github.com/jackgraver/simple-track/utils"
)

type MealController struct {
	Svc *services.MealService
}

func NewMealController(svc *services.MealService) *MealController {
	return &MealController{Svc: svc}
}

// mealView is a meal with its summed nutrition.
type mealView struct {
	*models.Meal
	Totals utils.Totals `json:"totals"`
}

func viewMeal(m *models.Meal) mealView {
	return mealView{Meal: m, Totals: utils.MealTotals(*m)}
}

func (h *MealController) List(c *gin.Context) {
	meals, err := h.Svc.List(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	out := make([]mealView, 0, len(meals))
	for i := range meals {
		out = append(out, viewMeal(&meals[i]))
	}
	c.JSON(http.StatusOK, out)
}

func (h *MealController) Get(c *gin.Context) {
	id, ok := uintParam(c, "id")
	if !ok {
		return
	}
	meal, err := h.Svc.Get(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, viewMeal(meal))
}

func (h *MealController) Create(c *gin.Context) {
	var body struct {
		Name  string                     `json:"name" binding:"required"`
		Items []services.MealItemRequest `json:"items"`
	}
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	meal, err := h.Svc.Create(c.Request.Context(), body.Name, body.Items)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, viewMeal(meal))
}

// PUT /diet/meals/:id renames a meal.
func (h *MealController) Rename(c *gin.Context) {
	id, ok := uintParam(c, "id")
	if !ok {
		return
	}
	var body struct {
		Name string `json:"name" binding:"required"`
	}
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	meal, err := h.Svc.Rename(c.Request.Context(), id, body.Name)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, viewMeal(meal))
}

func (h *MealController) Delete(c *gin.Context) {
	id, ok := uintParam(c, "id")
	if !ok {
		return
	}
	if err := h.Svc.Delete(c.Request.Context(), id); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *MealController) AddItem(c *gin.Context) {
	id, ok := uintParam(c, "id")
	if !ok {
		return
	}
	var req services.MealItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	meal, err := h.Svc.AddItem(c.Request.Context(), id, req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, viewMeal(meal))
}

func (h *MealController) UpdateItem(c *gin.Context) {
	id, ok := uintParam(c, "id")
	if !ok {
		return
	}
	itemID, ok := uintParam(c, "itemId")
	if !ok {
		return
	}
	var body struct {
		Amount *float64 `json:"amount" binding:"required"`
	}
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	meal, err := h.Svc.UpdateItemAmount(c.Request.Context(), id, itemID, *body.Amount)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, viewMeal(meal))
}

func (h *MealController) RemoveItem(c *gin.Context) {
	id, ok := uintParam(c, "id")
	if !ok {
		return
	}
	itemID, ok := uintParam(c, "itemId")
	if !ok {
		return
	}
	meal, err := h.Svc.RemoveItem(c.Request.Context(), id, itemID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, viewMeal(meal))
}
