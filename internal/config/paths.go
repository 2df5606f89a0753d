package config

import (
	"os"
	"path/filepath"
)

const (
	ConfigFileName = "config.toml"
	ConfigDir      = ".config/t4f"
	// EnvConfigDir overrides the config directory.
	EnvConfigDir = "T4F_CONFIG_DIR"
)

// Paths provides path resolution for t4f config files.
type Paths struct {
	dir string
}

// NewPaths creates a Paths rooted at dir. An empty dir resolves the default
// location: $T4F_CONFIG_DIR, else ~/.config/t4f.
func NewPaths(dir string) *Paths {
	if dir == "" {
		dir = DefaultConfigDir()
	}
	return &Paths{dir: dir}
}

// Dir returns the config directory, or "" when no home directory is known.
func (p *Paths) Dir() string {
	return p.dir
}

// ConfigPath returns the config file path, or "" when Dir is unknown.
func (p *Paths) ConfigPath() string {
	if p.dir == "" {
		return ""
	}
	return filepath.Join(p.dir, ConfigFileName)
}

// DefaultConfigDir returns the directory for the user's config.
func DefaultConfigDir() string {
	if dir := os.Getenv(EnvConfigDir); dir != "" {
		return dir
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ConfigDir)
}
