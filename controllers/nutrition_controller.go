package controllers

import (
	"net/http"
	"strconv"
	"time"

	"backend/models"
	"backend/services"

	"github.com/gin-gonic/gin"
)

type NutritionController struct {
	Svc *services.NutritionService
}

func NewNutritionController(svc *services.NutritionService) *NutritionController {
	return &NutritionController{Svc: svc}
}

type NutritionLogInput struct {
	MealType  string            `json:"meal_type" binding:"required,oneof=breakfast lunch dinner snack"`
	FoodItems []models.FoodItem `json:"food_items" binding:"required,dive"`
	Calories  *float64          `json:"calories" binding:"omitempty,gte=0,lte=5000"`
	ProteinG  *float64          `json:"protein_g" binding:"omitempty,gte=0,lte=500"`
	CarbsG    *float64          `json:"carbs_g" binding:"omitempty,gte=0,lte=1000"`
	FatG      *float64          `json:"fat_g" binding:"omitempty,gte=0,lte=500"`
	FiberG    *float64          `json:"fiber_g" binding:"omitempty,gte=0,lte=100"`
	SodiumMg  *float64          `json:"sodium_mg" binding:"omitempty,gte=0,lte=10000"`
	MealDate  time.Time         `json:"meal_date"`
	Notes     string            `json:"notes" binding:"omitempty,max=500"`
}

func (h *NutritionController) AddLog(c *gin.Context) {
	userID, ok := userIDFromCtx(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}
	childID, ok := uintParam(c, "childId")
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid child id"})
		return
	}

	child, err := services.VerifyChildParent(childID, userID)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
		return
	}

	var input NutritionLogInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	log, err := h.Svc.AddLog(
		child.ID, input.MealType, input.FoodItems,
		input.Calories, input.ProteinG, input.CarbsG, input.FatG, input.FiberG, input.SodiumMg,
		input.MealDate, input.Notes,
	)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusCreated, log)
}

func (h *NutritionController) GetHistory(c *gin.Context) {
	userID, ok := userIDFromCtx(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}
	childID, ok := uintParam(c, "childId")
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid child id"})
		return
	}

	if _, err := services.VerifyChildParent(childID, userID); err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
		return
	}

	logs, err := h.Svc.History(childID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, logs)
}

func (h *NutritionController) GetSummary(c *gin.Context) {
	userID, ok := userIDFromCtx(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}
	childID, ok := uintParam(c, "childId")
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid child id"})
		return
	}

	child, err := services.VerifyChildParent(childID, userID)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
		return
	}

	days := 7
	if v := c.Query("days"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n <= 0 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "days must be a positive integer"})
			return
		}
		days = n
	}

	summary, err := h.Svc.Summary(child, days)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, summary)
}
