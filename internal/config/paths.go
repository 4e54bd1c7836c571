package config

import (
	"os"
	"path/filepath"

	"github.com/adrg/xdg"
)

// Paths contains commonly used file paths.
type Paths struct {
	Database string // Main SQLite database
	Staging  string // Staged proof media awaiting upload
	Logs     string // Log directory
}

// GetPaths returns all commonly used paths based on config.
func GetPaths(cfg *Config) Paths {
	return Paths{
		Database: filepath.Join(cfg.BaseDir, "dareloop.db"),
		Staging:  filepath.Join(cfg.BaseDir, "staging"),
		Logs:     cfg.BaseDir,
	}
}

// DefaultBaseDir returns the default base directory. Prefers the XDG
// data home; falls back to ~/.dareloop, then a relative directory.
func DefaultBaseDir() string {
	if xdg.DataHome != "" {
		return filepath.Join(xdg.DataHome, "dareloop")
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return ".dareloop"
	}
	return filepath.Join(home, ".dareloop")
}
