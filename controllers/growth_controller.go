package controllers

import (
	"net/http"
	"time"

	"backend/services"

	"github.com/gin-gonic/gin"
)

type GrowthController struct {
	Svc *services.GrowthService
}

func NewGrowthController(svc *services.GrowthService) *GrowthController {
	return &GrowthController{Svc: svc}
}

type GrowthLogInput struct {
	HeightCm            *float64  `json:"height_cm" binding:"omitempty,gte=0,lte=300"`
	WeightKg            *float64  `json:"weight_kg" binding:"omitempty,gte=0,lte=200"`
	HeadCircumferenceCm *float64  `json:"head_circumference_cm" binding:"omitempty,gte=0,lte=100"`
	MeasuredAt          time.Time `json:"measurement_date"`
	Notes               string    `json:"notes" binding:"omitempty,max=500"`
}

func (h *GrowthController) AddLog(c *gin.Context) {
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

	var input GrowthLogInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	log, err := h.Svc.AddLog(child.ID, input.HeightCm, input.WeightKg, input.HeadCircumferenceCm, input.MeasuredAt, input.Notes)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusCreated, log)
}

func (h *GrowthController) GetHistory(c *gin.Context) {
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

func (h *GrowthController) GetStats(c *gin.Context) {
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

	stats, err := h.Svc.Stats(child)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, stats)
}
