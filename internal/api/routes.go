package api

import (
	"log"

	"github.com/gin-gonic/gin"
	"github.com/jmoiron/sqlx"

	"github.com/roboexplore/backend/internal/api/handlers"
	"github.com/roboexplore/backend/internal/config"
	"github.com/roboexplore/backend/internal/middleware"
	"github.com/roboexplore/backend/internal/sim"
)

// SetupRoutes configures all API routes
func SetupRoutes(router *gin.Engine, db *sqlx.DB, manager *sim.WorldManager, cfg *config.Config) {
	router.Use(middleware.CORSMiddleware(cfg))
	router.Use(middleware.WebSocketCORSCheck(cfg))

	// No-cache middleware for development
	if cfg.Environment != "production" {
		router.Use(func(c *gin.Context) {
			c.Header("Cache-Control", "no-store, no-cache, must-revalidate, max-age=0")
			c.Header("Pragma", "no-cache")
			c.Header("Expires", "0")
			c.Next()
		})
		log.Println("[DEV MODE] No-cache headers enabled for all routes")
	}

	// API v1 group
	v1 := router.Group("/api/v1")
	{
		v1.GET("/health", handlers.HealthCheck)

		// Level endpoints
		level := v1.Group("/levels")
		{
			level.GET("", handlers.ListLevels(db))
			level.GET("/:id", handlers.GetLevel(db))
			level.POST("", handlers.CreateLevel(db))
		}

		// World session endpoints
		world := v1.Group("/worlds")
		{
			world.POST("", handlers.CreateWorld(manager, cfg))
			world.GET("/:token", handlers.GetWorld(manager))
			world.GET("/:token/ws", handlers.HandleWorldWebSocket())
		}
	}
}
