package config

import (
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

type Config struct {
	// Environment
	Environment string

	// Server
	Port string

	// Database (optional; empty disables round history)
	DatabaseURL string

	// Redis (optional; empty disables state cache and event pub/sub)
	RedisURL string

	// Course
	CourseMapPath string

	// Match
	MatchMode             string
	SnapshotIntervalTicks int
	WindSeed              int64 // 0 = seed from the clock

	// Planner channel
	CommandPipePath string
	StatePipePath   string
}

func Load() *Config {
	// Load .env file if it exists
	godotenv.Load()

	return &Config{
		Environment: getEnv("APP_ENV", "development"),
		Port:        getEnv("APP_PORT", "8080"),

		DatabaseURL: getEnv("DATABASE_URL", ""),
		RedisURL:    getEnv("REDIS_URL", ""),

		CourseMapPath: getEnv("COURSE_MAP_PATH", "golf_map.png"),

		MatchMode:             getEnv("MATCH_MODE", "SOLO"),
		SnapshotIntervalTicks: getEnvInt("SNAPSHOT_INTERVAL_TICKS", 60),
		WindSeed:              getEnvInt64("WIND_SEED", 0),

		CommandPipePath: getEnv("COMMAND_PIPE_PATH", "/tmp/golf_ai_pipe"),
		StatePipePath:   getEnv("STATE_PIPE_PATH", "/tmp/golf_state_pipe"),
	}
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intVal, err := strconv.Atoi(value); err == nil {
			return intVal
		}
	}
	return defaultValue
}

func getEnvInt64(key string, defaultValue int64) int64 {
	if value := os.Getenv(key); value != "" {
		if intVal, err := strconv.ParseInt(value, 10, 64); err == nil {
			return intVal
		}
	}
	return defaultValue
}
