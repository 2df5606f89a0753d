package api

import (
	"github.com/tools4freee/t4f/internal/config"
	"github.com/tools4freee/t4f/internal/entropy"
	"github.com/tools4freee/t4f/internal/model"
	"github.com/tools4freee/t4f/internal/service"
	"github.com/tools4freee/t4f/internal/store"
)

// ServiceContext bundles the dependencies the HTTP handlers need.
type ServiceContext struct {
	Paths     *config.Paths
	Configs   *service.ConfigService
	Generator *service.GeneratorService
	Config    *model.Config
}

// BuildServiceContext loads config from paths and wires the services around
// the given entropy provider. It performs no disk writes.
func BuildServiceContext(paths *config.Paths, provider entropy.Provider) (*ServiceContext, error) {
	configs := service.NewConfigService(store.NewConfigStore(paths))
	cfg, err := configs.Load()
	if err != nil {
		return nil, err
	}
	return &ServiceContext{
		Paths:     paths,
		Configs:   configs,
		Generator: service.NewGeneratorService(provider, cfg.Defaults),
		Config:    cfg,
	}, nil
}
