package game

import (
	"context"
	"encoding/json"
	"log"
	"math/rand"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/redis/go-redis/v9"

	"github.com/golfero/backend/internal/config"
)

// MatchManager owns the live matches and the optional persistence backends.
// Both db and rdb may be nil; every persistence call is skipped silently in
// that case so the simulation never depends on them.
type MatchManager struct {
	db  *sqlx.DB
	rdb *redis.Client
	cfg *config.Config

	mu      sync.RWMutex
	matches map[string]*Match
	active  *Match
}

// Manager is the global match manager instance.
var Manager *MatchManager

// InitializeManager creates the global manager.
func InitializeManager(db *sqlx.DB, rdb *redis.Client, cfg *config.Config) {
	Manager = &MatchManager{
		db:      db,
		rdb:     rdb,
		cfg:     cfg,
		matches: make(map[string]*Match),
	}
	log.Printf("[MANAGER] Match manager initialized (db=%v redis=%v)", db != nil, rdb != nil)
}

// CreateMatch builds a match on the course and registers it as the active one.
func (mm *MatchManager) CreateMatch(mode MatchMode, course *Course, rng *rand.Rand) *Match {
	id := uuid.NewString()
	m := NewMatch(id, mode, course, rng)

	mm.mu.Lock()
	mm.matches[id] = m
	mm.active = m
	mm.mu.Unlock()

	mm.insertRound(m)
	log.Printf("[MANAGER] Created %s match %s (start=%.0f,%.0f hole=%.0f,%.0f)",
		mode, id, m.StartPos.X, m.StartPos.Y, m.HolePos.X, m.HolePos.Y)
	return m
}

// GetMatch looks up a match by ID.
func (mm *MatchManager) GetMatch(id string) (*Match, bool) {
	mm.mu.RLock()
	defer mm.mu.RUnlock()
	m, ok := mm.matches[id]
	return m, ok
}

// ActiveMatch returns the match the server is currently simulating.
func (mm *MatchManager) ActiveMatch() *Match {
	mm.mu.RLock()
	defer mm.mu.RUnlock()
	return mm.active
}

func (mm *MatchManager) insertRound(m *Match) {
	if mm.db == nil {
		return
	}
	_, err := mm.db.Exec(
		`INSERT INTO rounds (match_id, mode, status, created_at) VALUES ($1, $2, $3, NOW())`,
		m.ID, string(m.Mode), string(StatusInProgress))
	if err != nil {
		log.Printf("[MANAGER] Failed to insert round %s: %v", m.ID, err)
	}
}

// RecordShot persists one launch to the shot history.
func (mm *MatchManager) RecordShot(matchID string, seat Seat, stroke int, dirX, dirY, power, loft float64) {
	if mm.db == nil {
		return
	}
	_, err := mm.db.Exec(
		`INSERT INTO round_shots (match_id, seat, stroke_number, dir_x, dir_y, power, loft, created_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, NOW())`,
		matchID, string(seat), stroke, dirX, dirY, power, loft)
	if err != nil {
		log.Printf("[MANAGER] Failed to record shot for %s: %v", matchID, err)
	}
}

// SaveFinalRound marks the round completed and stores the final scores.
// Called by the match itself once both competitors have finished.
func (mm *MatchManager) SaveFinalRound(m *Match) {
	if mm.db == nil {
		return
	}
	winner := "DRAW"
	switch {
	case m.Mode != ModeVersus:
		winner = string(SeatPlayer)
	case m.PlayerStrokes < m.RivalStrokes:
		winner = string(SeatPlayer)
	case m.RivalStrokes < m.PlayerStrokes:
		winner = string(SeatRival)
	}
	_, err := mm.db.Exec(
		`UPDATE rounds SET status=$1, player_strokes=$2, rival_strokes=$3, winner=$4, completed_at=NOW()
		 WHERE match_id=$5`,
		string(StatusCompleted), m.PlayerStrokes, m.RivalStrokes, winner, m.ID)
	if err != nil {
		log.Printf("[MANAGER] Failed to save final round %s: %v", m.ID, err)
	}
}

// SaveMatchToRedis caches the current snapshot for external readers.
func (mm *MatchManager) SaveMatchToRedis(m *Match) {
	if mm.rdb == nil {
		return
	}
	snap := m.Snapshot()
	data, err := json.Marshal(snap)
	if err != nil {
		log.Printf("[MANAGER] Failed to marshal match %s: %v", m.ID, err)
		return
	}
	ctx := context.Background()
	if err := mm.rdb.SetEx(ctx, "match:"+m.ID, data, time.Hour).Err(); err != nil {
		log.Printf("[MANAGER] Failed to cache match %s: %v", m.ID, err)
	}
}

// publishEvent broadcasts a match lifecycle event over Redis pub/sub. The WS
// layer subscribes and forwards to spectators.
func (mm *MatchManager) publishEvent(m *Match, event string) {
	if mm.rdb == nil {
		return
	}
	payload := map[string]interface{}{
		"type":           event,
		"match_id":       m.ID,
		"player_strokes": m.PlayerStrokes,
		"rival_strokes":  m.RivalStrokes,
		"player_won":     m.PlayerWon,
		"rival_won":      m.RivalWon,
	}
	b, _ := json.Marshal(payload)
	if n, err := mm.rdb.Publish(context.Background(), "match_events", b).Result(); err != nil {
		log.Printf("[MANAGER] publish %s failed for match %s: %v", event, m.ID, err)
	} else {
		log.Printf("[MANAGER] published %s for match %s (subscribers=%d)", event, m.ID, n)
	}
}
