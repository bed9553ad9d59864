package config

import (
	"log"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	ServerAddress   string
	ShutdownTimeout time.Duration

	DatabasePath string
	JWTSecret    string // HMAC key used to verify bearer tokens
	LogMode      string // "prod" or "dev"
	CORSOrigin   string

	// Upper bound on concurrent per-scope aggregate queries.
	StatsConcurrency int
}

// Load reads configuration from the environment. Required variables
// abort the process when missing.
func Load() *Config {
	// Load .env file if it exists
	_ = godotenv.Load()
	return &Config{
		ServerAddress:    mustGetenv("SERVER_ADDRESS"),
		ShutdownTimeout:  mustGetDuration("SHUTDOWN_TIMEOUT"),
		DatabasePath:     getenvDefault("DATABASE_PATH", "examhall.db"),
		JWTSecret:        mustGetenv("JWT_SECRET"),
		LogMode:          getenvDefault("LOG_MODE", "dev"),
		CORSOrigin:       getenvDefault("CORS_ORIGIN", "*"),
		StatsConcurrency: getenvInt("STATS_CONCURRENCY", 4),
	}
}

// LoadTooling is Load without the server-only requirements, for CLI
// commands (migrate, seed) that only need the database.
func LoadTooling() *Config {
	_ = godotenv.Load()
	return &Config{
		DatabasePath: getenvDefault("DATABASE_PATH", "examhall.db"),
		JWTSecret:    os.Getenv("JWT_SECRET"),
		LogMode:      getenvDefault("LOG_MODE", "dev"),
	}
}

func mustGetenv(k string) string {
	v := os.Getenv(k)
	if v == "" {
		log.Fatalf("config: required environment variable %s is not set", k)
	}
	return v
}

func mustGetDuration(k string) time.Duration {
	v := os.Getenv(k)
	if v == "" {
		log.Fatalf("config: required environment variable %s is not set", k)
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		log.Fatalf("config: %s=%q is not a valid duration: %v", k, v, err)
	}
	return d
}

func getenvDefault(k, fallback string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return fallback
}

func getenvInt(k string, fallback int) int {
	v := os.Getenv(k)
	if v == "" {
		return fallback
	}
	n, err := strconv.Atoi(v)
	if err != nil || n <= 0 {
		log.Fatalf("config: %s=%q must be a positive integer", k, v)
	}
	return n
}
