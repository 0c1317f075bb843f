package routes

import (
	"github.com/gin-gonic/gin"
	"github.com/sortetech/recarga-sorte-backend/internal/config"
	"github.com/sortetech/recarga-sorte-backend/internal/handlers"
	"github.com/sortetech/recarga-sorte-backend/internal/middleware"
)

// HandlerDependencies groups the handlers the router needs
type HandlerDependencies struct {
	AuthHandler       *handlers.AuthHandler
	EntryHandler      *handlers.EntryHandler
	RechargeHandler   *handlers.RechargeHandler
	ValidationHandler *handlers.ValidationHandler
}

// SetupRouter sets up the router
func SetupRouter(cfg *config.Config, deps HandlerDependencies) *gin.Engine {
	router := gin.Default()

	router.Use(middleware.CORSMiddleware(cfg))
	router.Use(middleware.RequestIDMiddleware())
	router.Use(middleware.LoggerMiddleware())

	// Public routes
	public := router.Group("/api/v1")
	{
		public.GET("/health", func(c *gin.Context) {
			c.JSON(200, gin.H{
				"status": "ok",
			})
		})

		auth := public.Group("/auth")
		{
			auth.POST("/login", deps.AuthHandler.Login)
		}
	}

	// Protected routes
	protected := router.Group("/api/v1")
	protected.Use(middleware.JWTAuthMiddleware(cfg))
	{
		protected.POST("/auth/register", deps.AuthHandler.Register)

		// Entry routes
		entries := protected.Group("/entries")
		{
			entries.GET("", deps.EntryHandler.GetEntriesByDateRange)
			entries.GET("/count", deps.EntryHandler.GetEntryCount)
			entries.GET("/:id", deps.EntryHandler.GetEntryByID)
			entries.GET("/game/:gameId", deps.EntryHandler.GetEntriesByGameID)
			entries.GET("/verdict/:verdict", deps.EntryHandler.GetEntriesByVerdict)
			entries.POST("", deps.EntryHandler.CreateEntry)
		}

		// Recharge routes
		recharges := protected.Group("/recharges")
		{
			recharges.GET("/count", deps.RechargeHandler.GetRechargeCount)
			recharges.GET("/:id", deps.RechargeHandler.GetRechargeByID)
			recharges.GET("/game/:gameId", deps.RechargeHandler.GetRechargesByGameID)
			recharges.POST("", deps.RechargeHandler.CreateRecharge)
		}

		// Validation routes
		validation := protected.Group("/validation")
		{
			validation.POST("/run", deps.ValidationHandler.RunValidation)
			validation.GET("/runs", deps.ValidationHandler.GetRuns)
			validation.GET("/runs/:id", deps.ValidationHandler.GetRunByID)
			validation.GET("/report", deps.ValidationHandler.GetLatestReport)
		}
	}

	return router
}
