package routes

import (
	"nutritracker/controllers"
	"nutritracker/middlewares"
	"nutritracker/services"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

func SetupRouter(db *gorm.DB) *gin.Engine {
	r := gin.Default()

	authCtl := controllers.NewAuthController(services.NewAuthService(db))
	profileCtl := controllers.NewProfileController(services.NewProfileService(db))
	dayLogCtl := controllers.NewDayLogController(services.NewDayLogService(db))
	mealCtl := controllers.NewMealController(services.NewMealService(db))
	foodCtl := controllers.NewFoodController(services.NewFoodService(db, services.NewNutritionAPIService()))
	summaryCtl := controllers.NewSummaryController(services.NewSummaryService(db))
	accountCtl := controllers.NewAccountController(services.NewAccountService(db))

	api := r.Group("/api")

	// Public auth routes
	auth := api.Group("/auth")
	{
		auth.POST("/register", authCtl.Register)
		auth.POST("/login", authCtl.Login)
	}

	// Everything below requires a valid token.
	protected := api.Group("")
	protected.Use(middlewares.AuthMiddleware())
	{
		protected.GET("/auth/me", authCtl.Me)
		protected.PUT("/auth/password", authCtl.ChangePassword)

		protected.GET("/profile", profileCtl.Get)
		protected.POST("/profile", profileCtl.Save)
		protected.PUT("/profile", profileCtl.Save)

		protected.GET("/day-logs/week/list", dayLogCtl.Week)
		protected.GET("/day-logs/by-id/:dayLogId", dayLogCtl.GetByID)
		protected.GET("/day-logs/:date", dayLogCtl.GetOrCreate)

		protected.POST("/meals", mealCtl.Create)
		protected.GET("/meals/by-day/:dayLogId", mealCtl.ListForDayLog)
		protected.DELETE("/meals/:mealId", mealCtl.Delete)
		protected.GET("/meals/:mealId/items", mealCtl.ListItems)
		protected.PATCH("/meals/:mealId/items/:foodItemId", mealCtl.UpdateQuantity)
		protected.DELETE("/meals/:mealId/items/:foodItemId", mealCtl.RemoveItem)
		protected.DELETE("/meals/:mealId/items", mealCtl.ClearItems)

		protected.GET("/foods", foodCtl.List)
		protected.GET("/foods/search", foodCtl.Search)
		protected.GET("/foods/search-external", foodCtl.SearchExternal)
		protected.POST("/foods/import-external", foodCtl.ImportExternal)
		protected.POST("/foods/add-to-meal", mealCtl.AddFood)
		protected.GET("/foods/:id", foodCtl.Get)
		protected.POST("/foods", foodCtl.Create)
		protected.PUT("/foods/:id", foodCtl.Update)
		protected.DELETE("/foods/:id", foodCtl.Delete)

		protected.GET("/summary/day/:dayLogId", summaryCtl.Day)
		protected.GET("/summary/week", summaryCtl.Week)

		protected.DELETE("/account", accountCtl.Delete)
	}

	return r
}
