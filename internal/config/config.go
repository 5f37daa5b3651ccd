// Package config loads client configuration from environment variables.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Default backend endpoints tried in order until one is reachable.
var defaultEndpoints = []string{
	"https://api.spendtrack.app/api",
	"https://spendtrack-backend.onrender.com/api",
}

// Config holds all client configuration values.
type Config struct {
	// Endpoints is the ordered list of backend base URLs used for failover.
	Endpoints []string

	// RequestTimeout bounds every backend call. A timed-out request counts
	// as a network failure and is subject to endpoint failover.
	RequestTimeout time.Duration

	// DataFile is the path of the local JSON store holding the session and
	// user preferences.
	DataFile string

	// Env selects the logging encoder ("production" or "development").
	Env string
}

// Load reads configuration from the environment, consulting a .env file when
// present, and validates the result.
func Load() (*Config, error) {
	_ = godotenv.Load()

	cfg := &Config{
		Endpoints: defaultEndpoints,
		Env:       getEnv("SPENDTRACK_ENV", "development"),
	}

	if raw := os.Getenv("SPENDTRACK_API_URLS"); raw != "" {
		var endpoints []string
		for _, u := range strings.Split(raw, ",") {
			u = strings.TrimRight(strings.TrimSpace(u), "/")
			if u != "" {
				endpoints = append(endpoints, u)
			}
		}
		if len(endpoints) == 0 {
			return nil, fmt.Errorf("SPENDTRACK_API_URLS set but contains no usable URLs")
		}
		cfg.Endpoints = endpoints
	}

	timeout, err := parseTimeout(os.Getenv("SPENDTRACK_TIMEOUT"))
	if err != nil {
		return nil, err
	}
	cfg.RequestTimeout = timeout

	cfg.DataFile = os.Getenv("SPENDTRACK_DATA_FILE")
	if cfg.DataFile == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("resolving home directory: %w", err)
		}
		cfg.DataFile = filepath.Join(home, ".spendtrack", "data.json")
	}

	return cfg, nil
}

func parseTimeout(s string) (time.Duration, error) {
	if s == "" {
		return 15 * time.Second, nil
	}
	d, err := time.ParseDuration(s)
	if err != nil {
		return 0, fmt.Errorf("invalid SPENDTRACK_TIMEOUT %q: %w", s, err)
	}
	if d <= 0 {
		return 0, fmt.Errorf("SPENDTRACK_TIMEOUT must be positive, got %v", d)
	}
	return d, nil
}

// getEnv retrieves an environment variable or returns a default value
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
