package handlers

import (
	"errors"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/golfero/backend/internal/game"
)

// activeMatch resolves the match the server is simulating, writing the error
// response itself when there is none.
func activeMatch(c *gin.Context) *game.Match {
	if game.Manager == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "Match manager not initialized"})
		return nil
	}
	m := game.Manager.ActiveMatch()
	if m == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "No active match"})
		return nil
	}
	return m
}

// shotStatus maps a gameplay precondition failure to an HTTP status.
func shotStatus(err error) int {
	switch {
	case errors.Is(err, game.ErrMatchOver):
		return http.StatusGone
	case errors.Is(err, game.ErrNotYourTurn),
		errors.Is(err, game.ErrBallMoving),
		errors.Is(err, game.ErrAlreadyHoled),
		errors.Is(err, game.ErrWrongMode):
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}

// GetMatchState returns the full snapshot of the active match
func GetMatchState(c *gin.Context) {
	m := activeMatch(c)
	if m == nil {
		return
	}
	c.JSON(http.StatusOK, m.Snapshot())
}

// GetWind returns just the wind portion of the match state
func GetWind(c *gin.Context) {
	m := activeMatch(c)
	if m == nil {
		return
	}
	c.JSON(http.StatusOK, gin.H{"wind": m.Snapshot().Wind})
}

// TakeShot launches the player's ball. Loft is optional; when omitted the
// ball's stored loft setting is used.
func TakeShot(c *gin.Context) {
	m := activeMatch(c)
	if m == nil {
		return
	}

	var req struct {
		DirX  float64  `json:"dir_x"`
		DirY  float64  `json:"dir_y"`
		Power float64  `json:"power" binding:"required"`
		Loft  *float64 `json:"loft,omitempty"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid request. Direction and power required.",
		})
		return
	}

	loft := m.StoredLoft()
	if req.Loft != nil {
		loft = *req.Loft
	}

	if err := m.ShootPlayer(req.DirX, req.DirY, req.Power, loft); err != nil {
		log.Printf("[API] Shot rejected for match %s: %v", m.ID, err)
		c.JSON(shotStatus(err), gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, m.Snapshot())
}

// SetLoft stores the player's loft angle for subsequent shots
func SetLoft(c *gin.Context) {
	m := activeMatch(c)
	if m == nil {
		return
	}

	var req struct {
		Loft float64 `json:"loft"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request. Loft required."})
		return
	}

	if err := m.AdjustLoft(req.Loft); err != nil {
		c.JSON(shotStatus(err), gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"loft": m.StoredLoft()})
}

// AddSpin applies deliberate pre-shot spin to the player's ball
func AddSpin(c *gin.Context) {
	m := activeMatch(c)
	if m == nil {
		return
	}

	var req struct {
		SpinX float64 `json:"spin_x"`
		SpinY float64 `json:"spin_y"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request. spin_x and spin_y required."})
		return
	}

	if err := m.ApplySpin(req.SpinX, req.SpinY); err != nil {
		c.JSON(shotStatus(err), gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

// ResetMatch puts both balls back on the start marker and clears scores
func ResetMatch(c *gin.Context) {
	m := activeMatch(c)
	if m == nil {
		return
	}
	m.Reset()
	c.JSON(http.StatusOK, m.Snapshot())
}
