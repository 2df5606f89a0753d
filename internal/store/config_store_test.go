package store

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/tools4freee/t4f/internal/config"
	"github.com/tools4freee/t4f/internal/model"
	"github.com/tools4freee/t4f/internal/version"
)

func setupTestConfigStore(t *testing.T) (*FileConfigStore, string) {
	t.Helper()
	dir := t.TempDir()
	return NewConfigStore(config.NewPaths(dir)), dir
}

func TestFileConfigStore_LoadMissingReturnsDefaults(t *testing.T) {
	store, _ := setupTestConfigStore(t)

	cfg, err := store.Load()
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if cfg.Server.Port != model.DefaultPort {
		t.Errorf("Server.Port = %d, want %d", cfg.Server.Port, model.DefaultPort)
	}
	if store.Exists() {
		t.Error("Load should not create the config file")
	}
}

func TestFileConfigStore_SaveAndLoad(t *testing.T) {
	store, _ := setupTestConfigStore(t)

	cfg := model.DefaultConfig()
	cfg.Defaults.HexLength = 64
	cfg.Defaults.Country = "GB"
	cfg.Log.Level = "debug"

	if err := store.Save(cfg); err != nil {
		t.Fatalf("Save failed: %v", err)
	}
	if cfg.T4FSchema != version.CurrentConfigSchema() {
		t.Errorf("Save should stamp the schema, got %q", cfg.T4FSchema)
	}

	loaded, err := store.Load()
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if loaded.Defaults.HexLength != 64 || loaded.Defaults.Country != "GB" || loaded.Log.Level != "debug" {
		t.Errorf("Loaded config mismatch: %+v", loaded)
	}
}

func TestFileConfigStore_PartialFileGetsDefaults(t *testing.T) {
	store, dir := setupTestConfigStore(t)
	content := "t4f_schema = \"config/1\"\n[defaults]\nhex_length = 10\n"
	if err := os.WriteFile(filepath.Join(dir, config.ConfigFileName), []byte(content), 0644); err != nil {
		t.Fatal(err)
	}

	cfg, err := store.Load()
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if cfg.Defaults.HexLength != 10 {
		t.Errorf("HexLength = %d, want 10", cfg.Defaults.HexLength)
	}
	if cfg.Defaults.Coin != "bitcoin" {
		t.Errorf("Coin = %q, want default bitcoin", cfg.Defaults.Coin)
	}
}

func TestFileConfigStore_SchemaErrors(t *testing.T) {
	tests := []struct {
		name    string
		content string
		wantMin bool
		wantMsg string
	}{
		{"missing schema", "[server]\nport = 1\n", false, "no t4f_schema"},
		{"newer schema", "t4f_schema = \"config/9\"\n", true, "requires t4f"},
		{"garbage schema", "t4f_schema = \"board/1\"\n", false, "invalid schema"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			store, dir := setupTestConfigStore(t)
			if err := os.WriteFile(filepath.Join(dir, config.ConfigFileName), []byte(tt.content), 0644); err != nil {
				t.Fatal(err)
			}

			_, err := store.Load()
			var sv *version.SchemaVersionError
			if !errors.As(err, &sv) {
				t.Fatalf("Expected SchemaVersionError, got %v", err)
			}
			if (sv.MinRequired != "") != tt.wantMin {
				t.Errorf("MinRequired = %q", sv.MinRequired)
			}
			if !strings.Contains(err.Error(), tt.wantMsg) {
				t.Errorf("Error %q should contain %q", err, tt.wantMsg)
			}
		})
	}
}

func TestFileConfigStore_InvalidTOML(t *testing.T) {
	store, dir := setupTestConfigStore(t)
	if err := os.WriteFile(filepath.Join(dir, config.ConfigFileName), []byte("not = [valid"), 0644); err != nil {
		t.Fatal(err)
	}
	if _, err := store.Load(); err == nil {
		t.Error("Expected a decode error")
	}
}

func TestFileConfigStore_EnsureExists(t *testing.T) {
	store, _ := setupTestConfigStore(t)

	if err := store.EnsureExists(); err != nil {
		t.Fatalf("EnsureExists failed: %v", err)
	}
	if !store.Exists() {
		t.Fatal("Config file should exist")
	}

	// Existing files are left alone.
	cfg, _ := store.Load()
	cfg.Defaults.HexLength = 7
	if err := store.Save(cfg); err != nil {
		t.Fatal(err)
	}
	if err := store.EnsureExists(); err != nil {
		t.Fatal(err)
	}
	reloaded, _ := store.Load()
	if reloaded.Defaults.HexLength != 7 {
		t.Error("EnsureExists overwrote an existing config")
	}
}

func TestDecodeConfig_RoundTrip(t *testing.T) {
	cfg := model.DefaultConfig()
	cfg.T4FSchema = version.CurrentConfigSchema()
	cfg.Defaults.Coin = "dogecoin"

	data, err := EncodeConfig(cfg)
	if err != nil {
		t.Fatal(err)
	}
	got, err := DecodeConfig(data, "edit.toml")
	if err != nil {
		t.Fatalf("DecodeConfig failed: %v", err)
	}
	if got.Defaults.Coin != "dogecoin" {
		t.Errorf("Coin = %q, want dogecoin", got.Defaults.Coin)
	}
}

func TestDecodeConfig_MissingSchemaNamesPath(t *testing.T) {
	_, err := DecodeConfig([]byte("[defaults]\nhex_length = 4\n"), "edit.toml")
	if err == nil || !strings.Contains(err.Error(), "edit.toml") {
		t.Errorf("Expected schema error naming the file, got %v", err)
	}
}
