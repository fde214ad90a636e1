package app

import (
	"errors"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// ErrMissingSessionSecret is returned when SESSION_SECRET is unset. The
// service refuses to start without a real signing key rather than falling
// back to a guessable default.
var ErrMissingSessionSecret = errors.New("SESSION_SECRET must be set")

type Config struct {
	SessionSecret []byte // Required: HMAC key for session tokens
	SessionIssuer string // Optional: issuer claim for session tokens (default: inkwell)

	DatabaseFile        string        // Optional: path to SQLite database file (default: ./notes.db)
	Env                 string        // Environment (dev, staging, prod) (default: dev)
	LogLevel            string        // Log level (debug, info, warn, error) (default: info)
	LogFormat           string        // Log format (json, text) (default: json)
	Port                int           // HTTP server port (default: 8080)
	ShutdownGracePeriod time.Duration // Graceful shutdown timeout (default: 10s)
}

// Production reports whether the service runs with production cookie
// settings (Secure, SameSite=None).
func (c Config) Production() bool {
	return c.Env == "prod" || c.Env == "production"
}

func LoadConfig() (Config, error) {
	// Local development keeps its settings in a .env file; a missing file
	// is not an error.
	_ = godotenv.Load()

	cfg := Config{
		SessionSecret:       []byte(os.Getenv("SESSION_SECRET")),
		SessionIssuer:       getEnvOrDefault("SESSION_ISSUER", "inkwell"),
		DatabaseFile:        getEnvOrDefault("DATABASE_FILE", "notes.db"),
		Env:                 getEnvOrDefault("ENV", "dev"),
		LogLevel:            getEnvOrDefault("LOG_LEVEL", "info"),
		LogFormat:           getEnvOrDefault("LOG_FORMAT", "json"),
		Port:                getEnvIntOrDefault("PORT", 8080),
		ShutdownGracePeriod: getEnvDurationOrDefault("SHUTDOWN_GRACE_PERIOD", 10*time.Second),
	}

	if len(cfg.SessionSecret) == 0 {
		return Config{}, ErrMissingSessionSecret
	}

	return cfg, nil
}

func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvIntOrDefault(key string, defaultValue int) int {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}

	if intValue, err := strconv.Atoi(value); err == nil {
		return intValue
	}

	return defaultValue
}

func getEnvDurationOrDefault(key string, defaultValue time.Duration) time.Duration {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}

	// Try parsing as duration (e.g., "1h", "30m", "90s")
	if duration, err := time.ParseDuration(value); err == nil {
		return duration
	}

	// Try parsing as integer seconds
	if seconds, err := strconv.Atoi(value); err == nil {
		return time.Duration(seconds) * time.Second
	}

	return defaultValue
}
