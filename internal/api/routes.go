package api

import (
	"log"

	"github.com/gin-gonic/gin"
	"github.com/jmoiron/sqlx"

	"github.com/golfero/backend/internal/api/handlers"
	"github.com/golfero/backend/internal/config"
	"github.com/golfero/backend/internal/ws"
)

// SetupRoutes configures all API routes
func SetupRoutes(router *gin.Engine, hub *ws.Hub, db *sqlx.DB, cfg *config.Config) {
	// CORS middleware for browser clients
	router.Use(func(c *gin.Context) {
		c.Header("Access-Control-Allow-Origin", "*")
		c.Header("Access-Control-Allow-Credentials", "true")
		c.Header("Access-Control-Allow-Headers", "Content-Type, Content-Length, Accept-Encoding, Authorization, accept, origin, Cache-Control, X-Requested-With")
		c.Header("Access-Control-Allow-Methods", "POST, OPTIONS, GET, PUT, DELETE")

		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(204)
			return
		}

		c.Next()
	})

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

		// Match endpoints drive the single active match on this server
		match := v1.Group("/match")
		{
			match.GET("/state", handlers.GetMatchState)
			match.GET("/wind", handlers.GetWind)
			match.POST("/shot", handlers.TakeShot)
			match.POST("/loft", handlers.SetLoft)
			match.POST("/spin", handlers.AddSpin)
			match.POST("/reset", handlers.ResetMatch)
			match.GET("/ws", ws.HandleWebSocket(hub))
		}

		// Round history (requires a database)
		rounds := v1.Group("/rounds")
		{
			rounds.GET("", handlers.ListRounds(db))
			rounds.GET("/:match_id/shots", handlers.ListRoundShots(db))
		}
	}
}
