package main

import (
	"context"
	"log"
	"math/rand"
	"os"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/jmoiron/sqlx"
	goredis "github.com/redis/go-redis/v9"

	"github.com/golfero/backend/internal/api"
	"github.com/golfero/backend/internal/config"
	"github.com/golfero/backend/internal/database"
	"github.com/golfero/backend/internal/game"
	"github.com/golfero/backend/internal/migrations"
	"github.com/golfero/backend/internal/pipe"
	"github.com/golfero/backend/internal/redis"
	"github.com/golfero/backend/internal/ws"
)

func main() {
	// Initialize configuration (.env is loaded inside)
	cfg := config.Load()

	// Initialize database (optional; empty URL disables round history)
	var db *sqlx.DB
	if cfg.DatabaseURL != "" {
		var err error
		db, err = database.Connect(cfg.DatabaseURL)
		if err != nil {
			log.Fatalf("Failed to connect to database: %v", err)
		}
		defer db.Close()

		// Run migrations on start if requested
		if os.Getenv("MIGRATE_ON_START") == "true" {
			log.Println("↗ Running DB migrations on startup...")
			if err := migrations.RunMigrations(cfg.DatabaseURL); err != nil {
				log.Fatalf("Failed to run migrations: %v", err)
			}
		}
	} else {
		log.Println("[DB] DATABASE_URL not set; round history disabled")
	}

	// Initialize Redis (optional; empty URL disables cache and pub/sub)
	var rdb *goredis.Client
	if cfg.RedisURL != "" {
		var err error
		rdb, err = redis.Connect(cfg.RedisURL)
		if err != nil {
			log.Fatalf("Failed to connect to Redis: %v", err)
		}
		defer rdb.Close()
	} else {
		log.Println("[REDIS] REDIS_URL not set; state cache and events disabled")
	}

	// Initialize Match Manager with persistence backends and config
	game.InitializeManager(db, rdb, cfg)

	// Load the course map; fall back to the built-in layout
	course, err := game.LoadCourse(cfg.CourseMapPath)
	if err != nil {
		log.Printf("[COURSE] Could not load %s (%v); using built-in course", cfg.CourseMapPath, err)
		course = game.DefaultCourse()
	}

	// Wind randomness is the only nondeterminism in the simulation
	seed := cfg.WindSeed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	rng := rand.New(rand.NewSource(seed))

	mode := parseMode(cfg.MatchMode)
	match := game.Manager.CreateMatch(mode, course, rng)

	// The planner channel only exists when a remote planner drives a ball
	var ch *pipe.Channel
	if mode == game.ModeDemo || mode == game.ModeVersus {
		ch = pipe.New(cfg.CommandPipePath, cfg.StatePipePath)
		if err := ch.Setup(); err != nil {
			log.Fatalf("Failed to set up planner channel: %v", err)
		}
		defer ch.Close()
	}

	// Spectator hub plus the Redis match event bridge
	hub := ws.NewHub()
	go hub.Run()
	ws.SetRedisClient(rdb)
	ws.StartMatchEventSubscriber(context.Background(), hub)

	// Start the fixed-timestep match loop
	game.StartRunner(context.Background(), match, ch, cfg.SnapshotIntervalTicks, func(s game.MatchSnapshot) {
		hub.Broadcast(s)
	})

	// Set up Gin router
	if cfg.Environment == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.Default()

	// Initialize API handlers
	api.SetupRoutes(router, hub, db, cfg)

	// Start server
	port := cfg.Port
	if port == "" {
		port = "8080"
	}

	log.Printf("Starting Golfero server on port %s (mode=%s seed=%d)", port, mode, seed)
	if err := router.Run(":" + port); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}

func parseMode(s string) game.MatchMode {
	switch strings.ToUpper(s) {
	case "DEMO":
		return game.ModeDemo
	case "VERSUS":
		return game.ModeVersus
	default:
		return game.ModeSolo
	}
}
