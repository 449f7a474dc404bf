package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/montyapp/monty-backend/internal/middleware"
)

// RegisterRoutes sets up all API routes
func RegisterRoutes(e *echo.Echo, authMiddleware *middleware.AuthMiddleware, authHandler *AuthHandler, categoryHandler *CategoryHandler, transactionHandler *TransactionHandler, budgetHandler *BudgetHandler, goalHandler *GoalHandler, analyticsHandler *AnalyticsHandler, settingsHandler *SettingsHandler, digestHandler *DigestHandler) {
	e.GET("/health", func(c echo.Context) error {
		return c.JSON(http.StatusOK, map[string]string{"status": "ok"})
	})

	// API version 1
	api := e.Group("/api/v1")

	// Auth routes
	auth := api.Group("/auth")
	auth.POST("/telegram", authHandler.Telegram)
	auth.GET("/me", authHandler.Me, authMiddleware.Authenticate())

	// Category routes (protected)
	categories := api.Group("/categories")
	categories.Use(authMiddleware.Authenticate())
	categories.POST("", categoryHandler.CreateCategory)
	categories.GET("", categoryHandler.GetCategories)
	categories.PATCH("/:id", categoryHandler.UpdateCategory)
	categories.DELETE("/:id", categoryHandler.DeleteCategory)

	// Transaction routes (protected)
	transactions := api.Group("/transactions")
	transactions.Use(authMiddleware.Authenticate())
	transactions.POST("", transactionHandler.CreateTransaction)
	transactions.GET("", transactionHandler.GetTransactions)
	transactions.GET("/export/csv", transactionHandler.ExportCSV)
	transactions.PATCH("/:id", transactionHandler.UpdateTransaction)
	transactions.DELETE("/:id", transactionHandler.DeleteTransaction)

	// Budget routes (protected)
	budgets := api.Group("/budgets")
	budgets.Use(authMiddleware.Authenticate())
	budgets.GET("/current", budgetHandler.GetCurrent)

	// Goal routes (protected)
	goals := api.Group("/goals")
	goals.Use(authMiddleware.Authenticate())
	goals.GET("", goalHandler.GetGoal)

	// Analytics routes (protected)
	analytics := api.Group("/analytics")
	analytics.Use(authMiddleware.Authenticate())
	analytics.GET("", analyticsHandler.GetAnalytics)
	analytics.GET("/period", analyticsHandler.GetPeriodAnalytics)

	// Settings routes (protected)
	settings := api.Group("/settings")
	settings.Use(authMiddleware.Authenticate())
	settings.GET("", settingsHandler.GetSettings)
	settings.POST("", settingsHandler.UpdateSetting)
	settings.GET("/budgets", budgetHandler.GetConfigs)
	settings.POST("/budgets", budgetHandler.SetConfig)

	// Digest routes (protected)
	digest := api.Group("/digest")
	digest.Use(authMiddleware.Authenticate())
	digest.POST("/send", digestHandler.SendDigest)
}
