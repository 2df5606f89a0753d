package store

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"

	"github.com/tools4freee/t4f/internal/config"
	"github.com/tools4freee/t4f/internal/model"
	"github.com/tools4freee/t4f/internal/version"
)

// ErrNoConfigDir is returned when there is nowhere to save config.
var ErrNoConfigDir = errors.New("no config directory: set $HOME or T4F_CONFIG_DIR")

// FileConfigStore implements ConfigStore using the filesystem.
type FileConfigStore struct {
	paths *config.Paths
}

// NewConfigStore creates a config store backed by paths.
func NewConfigStore(paths *config.Paths) *FileConfigStore {
	return &FileConfigStore{paths: paths}
}

// Path returns the config file location.
func (s *FileConfigStore) Path() string {
	return s.paths.ConfigPath()
}

// Exists reports whether the config file is present.
func (s *FileConfigStore) Exists() bool {
	path := s.Path()
	if path == "" {
		return false
	}
	_, err := os.Stat(path)
	return err == nil
}

// Load reads the config from disk, filling unset fields with defaults.
// Returns the default config if the file doesn't exist.
func (s *FileConfigStore) Load() (*model.Config, error) {
	path := s.Path()
	if path == "" {
		return defaultConfig(), nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return defaultConfig(), nil
		}
		return nil, err
	}

	return DecodeConfig(data, path)
}

// Raw returns the config file bytes unparsed.
func (s *FileConfigStore) Raw() ([]byte, error) {
	path := s.Path()
	if path == "" {
		return nil, os.ErrNotExist
	}
	return os.ReadFile(path)
}

// DecodeConfig parses config TOML, validates its schema stamp strictly and
// fills unset fields with defaults. path is only used in error messages.
func DecodeConfig(data []byte, path string) (*model.Config, error) {
	var cfg model.Config
	if err := toml.Unmarshal(data, &cfg); err != nil {
		return nil, err
	}

	if cfg.T4FSchema == "" {
		return nil, version.MissingConfigSchema(path)
	}
	if cfg.T4FSchema != version.CurrentConfigSchema() {
		return nil, version.InvalidConfigSchema(path, cfg.T4FSchema)
	}

	cfg.FillDefaults()
	return &cfg, nil
}

// EncodeConfig renders cfg as TOML.
func EncodeConfig(cfg *model.Config) ([]byte, error) {
	var buf bytes.Buffer
	if err := toml.NewEncoder(&buf).Encode(cfg); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// Save writes cfg to disk, stamping the current schema.
func (s *FileConfigStore) Save(cfg *model.Config) error {
	cfg.T4FSchema = version.CurrentConfigSchema()
	data, err := EncodeConfig(cfg)
	if err != nil {
		return err
	}
	return s.SaveRaw(data)
}

// SaveRaw writes already-validated TOML as is, keeping the user's comments
// and layout.
func (s *FileConfigStore) SaveRaw(data []byte) error {
	path := s.Path()
	if path == "" {
		return ErrNoConfigDir
	}
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return err
	}

	// Write to a temp file and rename so a watcher never reads a half-written file.
	tmp, err := os.CreateTemp(filepath.Dir(path), ".config-*.toml")
	if err != nil {
		return err
	}
	defer os.Remove(tmp.Name())

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return err
	}
	if err := tmp.Close(); err != nil {
		return err
	}
	return os.Rename(tmp.Name(), path)
}

// EnsureExists creates the config file with defaults if it doesn't exist.
func (s *FileConfigStore) EnsureExists() error {
	if s.Exists() {
		return nil
	}
	return s.Save(defaultConfig())
}

func defaultConfig() *model.Config {
	cfg := model.DefaultConfig()
	cfg.T4FSchema = version.CurrentConfigSchema()
	return cfg
}
