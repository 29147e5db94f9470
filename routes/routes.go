package routes

import (
	"backend/controllers"
	"backend/middlewares"
	"backend/services"

	"github.com/gin-gonic/gin"
)

func SetupRouter() *gin.Engine {
	r := gin.Default()

	growthSvc := services.NewGrowthService(services.NewGrowthAnalyzer(nil))
	nutritionSvc := services.NewNutritionService(
		services.NewNutritionAggregator(services.DefaultNutritionTargets, services.DefaultGoalThresholds),
	)
	growthCtl := controllers.NewGrowthController(growthSvc)
	nutritionCtl := controllers.NewNutritionController(nutritionSvc)

	// Public auth routes
	auth := r.Group("/auth")
	{
		auth.POST("/register", controllers.Register)
		auth.POST("/login", controllers.Login)
		auth.POST("/forgot-password", controllers.ForgotPassword)
		auth.POST("/reset-password", controllers.ResetPassword)
	}

	// Protected user routes
	user := r.Group("/user")
	user.Use(middlewares.AuthMiddleware())
	{
		user.GET("/profile", controllers.GetProfile)
		user.PUT("/profile", controllers.UpdateProfile)
	}

	children := r.Group("/children")
	children.Use(middlewares.AuthMiddleware())
	{
		children.POST("", controllers.AddChild)
		children.GET("", controllers.ListChildren)
		children.GET("/:id", controllers.GetChild)
		children.PUT("/:id", controllers.UpdateChild)
		children.DELETE("/:id", controllers.DeleteChild)
	}

	growth := r.Group("/growth")
	growth.Use(middlewares.AuthMiddleware())
	{
		growth.POST("/:childId", growthCtl.AddLog)
		growth.GET("/stats/:childId", growthCtl.GetStats)
		growth.GET("/:childId", growthCtl.GetHistory)
	}

	nutrition := r.Group("/nutrition")
	nutrition.Use(middlewares.AuthMiddleware())
	{
		nutrition.POST("/:childId", nutritionCtl.AddLog)
		nutrition.GET("/summary/:childId", nutritionCtl.GetSummary)
		nutrition.GET("/:childId", nutritionCtl.GetHistory)
	}

	return r
}
