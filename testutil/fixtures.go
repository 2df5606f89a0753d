package testutil

import (
	"os"
	"testing"

	"github.com/tools4freee/t4f/internal/config"
	"github.com/tools4freee/t4f/internal/entropy"
)

// TempConfigDir returns Paths rooted at a fresh temp directory. The config
// file does not exist yet.
func TempConfigDir(t *testing.T) *config.Paths {
	t.Helper()
	return config.NewPaths(t.TempDir())
}

// WriteConfig writes raw TOML to the config file under paths.
func WriteConfig(t *testing.T, paths *config.Paths, content string) {
	t.Helper()
	if err := os.WriteFile(paths.ConfigPath(), []byte(content), 0644); err != nil {
		t.Fatalf("failed to write config: %v", err)
	}
}

// ConfigWithDefaults returns a current-schema config file body with the given
// lines placed under [defaults].
func ConfigWithDefaults(lines ...string) string {
	content := "t4f_schema = \"config/1\"\n[defaults]\n"
	for _, l := range lines {
		content += l + "\n"
	}
	return content
}

// DeterministicProvider pairs the real secure source with a seeded pseudo
// source, so cosmetic families replay for the same seed.
func DeterministicProvider(seed uint64) entropy.Provider {
	return entropy.Provider{Secure: entropy.Secure(), Pseudo: entropy.NewDeterministic(seed)}
}

// NoSecureProvider simulates a host without a secure random source.
func NoSecureProvider() entropy.Provider {
	return entropy.Provider{Secure: entropy.Unavailable(), Pseudo: entropy.Pseudo()}
}
