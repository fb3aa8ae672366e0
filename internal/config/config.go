// Package config loads runtime settings from the environment, with an
// optional .env file overlay.
package config

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
)

// DefaultSessionSecret is the insecure development fallback used when
// SESSION_SECRET is unset. The server logs a warning when it is in
// effect; production deployments must override it.
const DefaultSessionSecret = "dev-session-secret-change-me"

// Config holds runtime settings for the authgate server.
type Config struct {
	// Server settings.
	Port         string // listen port
	StoreBackend string // "postgres" or "bolt"

	// Relational store settings (postgres backend).
	DBHost     string
	DBPort     string
	DBUser     string
	DBPassword string
	DBName     string

	// Embedded store settings (bolt backend).
	DataFile string

	// Session signing key, injected into the session manager.
	SessionSecret string

	// Bootstrap seed account.
	SeedUsername string
	SeedPassword string
}

// Load reads configuration from the environment. A .env file in the
// working directory is loaded first when present.
func Load() *Config {
	// Missing .env is fine; real environment variables win either way.
	_ = godotenv.Load()

	return &Config{
		Port:         getEnv("PORT", "4000"),
		StoreBackend: getEnv("STORE_BACKEND", "postgres"),

		DBHost:     getEnv("DB_HOST", "localhost"),
		DBPort:     getEnv("DB_PORT", "5432"),
		DBUser:     getEnv("DB_USER", "postgres"),
		DBPassword: getEnv("DB_PASSWORD", ""),
		DBName:     getEnv("DB_NAME", "authgate"),

		DataFile: getEnv("DATA_FILE", "./data/authgate.db"),

		SessionSecret: getEnv("SESSION_SECRET", DefaultSessionSecret),

		SeedUsername: getEnv("SEED_USERNAME", "admin"),
		SeedPassword: getEnv("SEED_PASSWORD", "admin123"),
	}
}

// DatabaseDSN builds the postgres connection string from the DB_*
// settings.
func (c *Config) DatabaseDSN() string {
	return fmt.Sprintf("postgres://%s:%s@%s:%s/%s?sslmode=disable",
		c.DBUser, c.DBPassword, c.DBHost, c.DBPort, c.DBName)
}

func getEnv(key, fallback string) string {
	if value, ok := os.LookupEnv(key); ok && value != "" {
		return value
	}
	return fallback
}
