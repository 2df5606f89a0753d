package service

import (
	"errors"
	"fmt"
	"os"

	"github.com/tools4freee/t4f/internal/model"
	"github.com/tools4freee/t4f/internal/store"
	"github.com/tools4freee/t4f/internal/version"
)

// ErrConfigExists is returned by Init when a config file is already present.
var ErrConfigExists = errors.New("config file already exists")

// ConfigService handles config file setup and reloads.
type ConfigService struct {
	store store.ConfigStore
}

// NewConfigService creates a new config service.
func NewConfigService(configStore store.ConfigStore) *ConfigService {
	return &ConfigService{store: configStore}
}

// Path returns where the config lives.
func (s *ConfigService) Path() string {
	return s.store.Path()
}

// Exists reports whether a config file is present.
func (s *ConfigService) Exists() bool {
	return s.store.Exists()
}

// Load returns the current config, or defaults when no file exists.
func (s *ConfigService) Load() (*model.Config, error) {
	cfg, err := s.store.Load()
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	return cfg, nil
}

// Init writes a default config. An existing file is only replaced when force is set.
func (s *ConfigService) Init(force bool) (*model.Config, error) {
	if s.store.Exists() && !force {
		return nil, fmt.Errorf("%w: %s", ErrConfigExists, s.store.Path())
	}
	cfg := model.DefaultConfig()
	if err := s.store.Save(cfg); err != nil {
		return nil, fmt.Errorf("failed to write config: %w", err)
	}
	return cfg, nil
}

// Raw returns the config file content for editing, or the rendered defaults
// when no file exists yet.
func (s *ConfigService) Raw() (string, error) {
	data, err := s.store.Raw()
	if errors.Is(err, os.ErrNotExist) {
		cfg := model.DefaultConfig()
		cfg.T4FSchema = version.CurrentConfigSchema()
		data, err = store.EncodeConfig(cfg)
	}
	if err != nil {
		return "", fmt.Errorf("failed to read config: %w", err)
	}
	return string(data), nil
}

// Replace validates content as a complete config file and writes it verbatim.
// Nothing is written when validation fails.
func (s *ConfigService) Replace(content string) (*model.Config, error) {
	cfg, err := store.DecodeConfig([]byte(content), s.store.Path())
	if err != nil {
		return nil, err
	}
	if err := s.store.SaveRaw([]byte(content)); err != nil {
		return nil, fmt.Errorf("failed to write config: %w", err)
	}
	return cfg, nil
}
