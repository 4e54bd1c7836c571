// Package config handles application configuration management.
package config

import (
	"os"
	"strconv"
	"time"
)

// Config holds all application configuration.
type Config struct {
	// Base directory for all Dareloop data (~/.dareloop)
	BaseDir string

	// API settings for the Dareloop backend
	API APIConfig

	// Feed pagination settings
	Feed FeedConfig

	// Run lifecycle settings
	Run RunConfig

	// Debug enables verbose GORM logging
	Debug bool
}

// APIConfig holds backend connection settings.
type APIConfig struct {
	// BaseURL of the JSON backend (DARELOOP_API_URL)
	BaseURL string
	// Timeout for a single request
	Timeout time.Duration
	// RequestsPerSecond paces outgoing calls
	RequestsPerSecond float64
	// Burst allowed by the pacer
	Burst int
}

// FeedConfig holds feed pagination settings.
type FeedConfig struct {
	// InitialBatch is the first page size
	InitialBatch int
	// IncrementBatch is requested when the viewer nears the end
	IncrementBatch int
	// CommentPageSize bounds a comment thread load
	CommentPageSize int
}

// RunConfig holds run lifecycle settings.
type RunConfig struct {
	// SkipBudget is the number of whole-challenge skips per run
	SkipBudget int
}

// DefaultConfig returns sensible defaults.
func DefaultConfig() *Config {
	return &Config{
		BaseDir: DefaultBaseDir(),
		API: APIConfig{
			BaseURL:           "http://localhost:8000",
			Timeout:           30 * time.Second,
			RequestsPerSecond: 10,
			Burst:             5,
		},
		Feed: FeedConfig{
			InitialBatch:    3,
			IncrementBatch:  3,
			CommentPageSize: 200,
		},
		Run: RunConfig{
			SkipBudget: 1,
		},
	}
}

// Load reads configuration from environment variables.
func Load() (*Config, error) {
	cfg := DefaultConfig()

	if base := os.Getenv("DARELOOP_BASE_DIR"); base != "" {
		cfg.BaseDir = base
	}
	if url := os.Getenv("DARELOOP_API_URL"); url != "" {
		cfg.API.BaseURL = url
	}
	if v := os.Getenv("DARELOOP_DEBUG"); v != "" {
		cfg.Debug, _ = strconv.ParseBool(v)
	}
	if v := os.Getenv("DARELOOP_SKIP_BUDGET"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n >= 0 {
			cfg.Run.SkipBudget = n
		}
	}

	if err := ensureDirectories(cfg); err != nil {
		return nil, err
	}

	return cfg, nil
}

// ensureDirectories creates required directories if they don't exist.
func ensureDirectories(cfg *Config) error {
	dirs := []string{
		cfg.BaseDir,
		GetPaths(cfg).Staging,
	}
	for _, dir := range dirs {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return err
		}
	}
	return nil
}
