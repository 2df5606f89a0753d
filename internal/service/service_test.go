package service

import (
	"os"

	"github.com/tools4freee/t4f/internal/entropy"
	"github.com/tools4freee/t4f/internal/model"
	"github.com/tools4freee/t4f/internal/store"
)

// testConfigStore is an in-memory ConfigStore.
type testConfigStore struct {
	cfg     *model.Config
	raw     []byte
	saves   int
	loadErr error
}

var _ store.ConfigStore = (*testConfigStore)(nil)

func (s *testConfigStore) Path() string { return "/mem/config.toml" }
func (s *testConfigStore) Exists() bool { return s.cfg != nil }

func (s *testConfigStore) Load() (*model.Config, error) {
	if s.loadErr != nil {
		return nil, s.loadErr
	}
	if s.cfg == nil {
		return model.DefaultConfig(), nil
	}
	c := *s.cfg
	return &c, nil
}

func (s *testConfigStore) Save(cfg *model.Config) error {
	c := *cfg
	s.cfg = &c
	s.saves++
	return nil
}

func (s *testConfigStore) Raw() ([]byte, error) {
	if s.raw == nil {
		return nil, os.ErrNotExist
	}
	return s.raw, nil
}

func (s *testConfigStore) SaveRaw(data []byte) error {
	s.raw = data
	s.saves++
	return nil
}

func (s *testConfigStore) EnsureExists() error {
	if s.cfg == nil {
		return s.Save(model.DefaultConfig())
	}
	return nil
}

func newTestGeneratorService() *GeneratorService {
	return NewGeneratorService(entropy.Detect(), model.DefaultConfig().Defaults)
}

func ptr[T any](v T) *T { return &v }
