package cli

import (
	"os"
	"strings"

	"github.com/tools4freee/t4f/internal/config"
	"github.com/tools4freee/t4f/internal/entropy"
	"github.com/tools4freee/t4f/internal/log"
	"github.com/tools4freee/t4f/internal/model"
	"github.com/tools4freee/t4f/internal/prompt"
	"github.com/tools4freee/t4f/internal/service"
	"github.com/tools4freee/t4f/internal/store"
)

// App holds all the dependencies for the CLI.
type App struct {
	Paths     *config.Paths
	Store     store.ConfigStore
	Configs   *service.ConfigService
	Generator *service.GeneratorService
	Prompter  prompt.Prompter
	Config    *model.Config
}

// NewApp creates a new App with all dependencies wired up.
// If interactive is false, uses NoopPrompter that fails on prompts.
func NewApp(interactive bool) (*App, error) {
	return newApp(config.NewPaths(""), entropy.Detect(), interactive)
}

func newApp(paths *config.Paths, provider entropy.Provider, interactive bool) (*App, error) {
	configStore := store.NewConfigStore(paths)
	configs := service.NewConfigService(configStore)

	// A broken config file should not stop one-off generation; fall back to
	// defaults and say so.
	cfg, err := configs.Load()
	if err != nil {
		PrintWarning("%v (using defaults)", err)
		cfg = model.DefaultConfig()
	}

	log.Init(log.Config{Level: cfg.Log.Level, Pretty: true, Output: os.Stderr})

	var prompter prompt.Prompter
	if interactive {
		prompter = prompt.NewHuhPrompter()
	} else {
		prompter = &prompt.NoopPrompter{}
	}

	return &App{
		Paths:     paths,
		Store:     configStore,
		Configs:   configs,
		Generator: service.NewGeneratorService(provider, cfg.Defaults),
		Prompter:  prompter,
		Config:    cfg,
	}, nil
}

// choose returns value when set, otherwise asks the user to pick one of options.
func (a *App) choose(value, title string, options []string) (string, error) {
	if value != "" {
		return value, nil
	}
	picked, err := a.Prompter.Select(title, options)
	if err != nil {
		return "", requiredInput(strings.ToLower(title), err)
	}
	return picked, nil
}

// exit is swapped out in tests.
var exit = os.Exit

// Fatal prints an error and exits.
func Fatal(err error) {
	PrintError("Error: %v", err)
	exit(1)
}
