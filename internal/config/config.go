// Package config loads all environment variables for the assistant.
package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// Config holds all configuration for the CLI and the HTTP API.
type Config struct {
	// Server
	APIHost string
	APIPort string

	// Generation engine (local llama.cpp-style completion server)
	EngineURL string
	// EngineTimeoutMS bounds a single generation call; 0 blocks until
	// the engine answers.
	EngineTimeoutMS int

	// ModelID selects the chat-template family for prompt formatting.
	ModelID string

	// Key store
	KeystorePath string

	// Auth
	AuthEnabled    bool
	JWTSecret      string
	JWTExpiryHours int

	// Timeouts
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
	IdleTimeout  time.Duration
}

// Load reads configuration from a .env file (if present) and the
// environment, with sensible defaults for a local single-user setup.
func Load() (*Config, error) {
	// Missing .env is the normal case, not an error.
	_ = godotenv.Load()

	cfg := &Config{
		APIHost: envOr("API_HOST", "0.0.0.0"),
		APIPort: envOr("API_PORT", "8000"),

		EngineURL:       envOr("ENGINE_URL", "http://127.0.0.1:8080"),
		EngineTimeoutMS: envInt("ENGINE_TIMEOUT_MS", 0),

		ModelID: envOr("MODEL_ID", "microsoft/Phi-3-mini-4k-instruct"),

		KeystorePath: envOr("KEYSTORE_PATH", "api_keys.json"),

		AuthEnabled:    envBool("AUTH_ENABLED", true),
		JWTSecret:      os.Getenv("JWT_SECRET"),
		JWTExpiryHours: envInt("JWT_EXPIRY_HOURS", 24),

		ReadTimeout: 10 * time.Second,
		// Generation can run for minutes on CPU-only hosts.
		WriteTimeout: 10 * time.Minute,
		IdleTimeout:  60 * time.Second,
	}

	return cfg, nil
}

// ValidateServer checks the fields the HTTP server requires.
func (c *Config) ValidateServer() error {
	if c.AuthEnabled && c.JWTSecret == "" {
		return fmt.Errorf("JWT_SECRET is required when AUTH_ENABLED=true")
	}
	return nil
}

// Addr returns the listen address as "host:port".
func (c *Config) Addr() string {
	return fmt.Sprintf("%s:%s", c.APIHost, c.APIPort)
}

// EngineTimeout returns the engine call timeout as a time.Duration.
// Zero means no timeout.
func (c *Config) EngineTimeout() time.Duration {
	return time.Duration(c.EngineTimeoutMS) * time.Millisecond
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func envInt(key string, fallback int) int {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return fallback
	}
	return n
}

func envBool(key string, fallback bool) bool {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		return fallback
	}
	return b
}
