package routes

import (
	"github.com/R0D10Nq/AIMood-DiaryBot/config"
	"github.com/R0D10Nq/AIMood-DiaryBot/controllers"
	"github.com/R0D10Nq/AIMood-DiaryBot/crud"
	"github.com/R0D10Nq/AIMood-DiaryBot/middleware"
	"github.com/R0D10Nq/AIMood-DiaryBot/services"
	"github.com/gin-gonic/gin"
)

// RegisterRoutes wires stores, services and controllers onto the gin
// engine. The returned entry controller is used to drain background
// analyses during shutdown.
func RegisterRoutes(r *gin.Engine, inference *services.InferenceService) *controllers.EntryController {
	entryStore := crud.NewMoodEntryCRUD(config.DB)
	userStore := crud.NewUserCRUD(config.DB)

	analyzer := services.NewMoodAnalyzer(inference, entryStore)
	dashboard := services.NewDashboardService(userStore, entryStore, analyzer, config.RedisClient)

	authController := controllers.NewAuthController(userStore)
	entryController := controllers.NewEntryController(entryStore, userStore, analyzer, dashboard)
	analyticsController := controllers.NewAnalyticsController(entryStore, analyzer, inference, dashboard)
	userController := controllers.NewUserController(userStore)

	// Public routes
	public := r.Group("/api/v1")
	{
		public.POST("/auth/telegram", authController.TelegramLogin)
	}

	// Authenticated routes
	private := r.Group("/api/v1")
	private.Use(middleware.AuthMiddleware())
	{
		private.POST("/entries", entryController.CreateEntry)
		private.GET("/entries/recent", entryController.GetRecentEntries)
		private.GET("/entries/check-today", entryController.CheckToday)
		private.GET("/entries/:id", entryController.GetEntry)
		private.PUT("/entries/:id", entryController.UpdateEntry)
		private.DELETE("/entries/:id", entryController.DeleteEntry)
		private.POST("/entries/:id/reanalyze", entryController.ReanalyzeEntry)

		private.GET("/analytics/summary", analyticsController.GetSummary)
		private.GET("/analytics/stats", analyticsController.GetStats)
		private.GET("/analytics/period", analyticsController.GetPeriodAnalytics)
		private.GET("/analytics/trends", analyticsController.GetTrends)
		private.GET("/analytics/recommendations", analyticsController.GetRecommendations)
		private.GET("/analytics/insights", analyticsController.GetInsights)
		private.GET("/analytics/dashboard", analyticsController.GetDashboard)

		private.GET("/user", userController.GetUser)
	}

	// Healthcheck
	r.GET("/ping", func(c *gin.Context) {
		c.JSON(200, gin.H{"message": "pong"})
	})

	return entryController
}
