package handlers

import (
	"log"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/jmoiron/sqlx"

	"github.com/golfero/backend/internal/models"
)

// ListRounds returns the most recent persisted rounds, newest first.
func ListRounds(db *sqlx.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		if db == nil {
			c.JSON(http.StatusServiceUnavailable, gin.H{"error": "Round history is not configured"})
			return
		}

		var rounds []models.Round
		err := db.Select(&rounds,
			`SELECT id, match_id, mode, status, player_strokes, rival_strokes, winner, created_at, completed_at
			 FROM rounds ORDER BY created_at DESC LIMIT 20`)
		if err != nil {
			log.Printf("[API] Failed to load rounds: %v", err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load round history"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"rounds": rounds})
	}
}

// ListRoundShots returns the recorded launches of one round in play order.
func ListRoundShots(db *sqlx.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		if db == nil {
			c.JSON(http.StatusServiceUnavailable, gin.H{"error": "Round history is not configured"})
			return
		}

		matchID := c.Param("match_id")
		var shots []models.RoundShot
		err := db.Select(&shots,
			`SELECT id, match_id, seat, stroke_number, dir_x, dir_y, power, loft, created_at
			 FROM round_shots WHERE match_id = $1 ORDER BY stroke_number, seat`,
			matchID)
		if err != nil {
			log.Printf("[API] Failed to load shots for %s: %v", matchID, err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load shot history"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"match_id": matchID, "shots": shots})
	}
}
