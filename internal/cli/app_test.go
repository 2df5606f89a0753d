package cli

import (
	"strings"
	"testing"

	"github.com/tools4freee/t4f/internal/entropy"
	"github.com/tools4freee/t4f/internal/model"
	"github.com/tools4freee/t4f/testutil"
)

type scriptedPrompter struct {
	selected string
	titles   []string
}

func (p *scriptedPrompter) Select(title string, options []string) (string, error) {
	p.titles = append(p.titles, title)
	return p.selected, nil
}
func (p *scriptedPrompter) Input(title, defaultValue string) (string, error) {
	return defaultValue, nil
}
func (p *scriptedPrompter) Password(title string) (string, error)      { return "secret", nil }
func (p *scriptedPrompter) Confirm(title string, d bool) (bool, error) { return d, nil }

func newTestApp(t *testing.T, interactive bool) *App {
	t.Helper()
	app, err := newApp(testutil.TempConfigDir(t), entropy.Detect(), interactive)
	if err != nil {
		t.Fatalf("newApp failed: %v", err)
	}
	return app
}

func TestNewApp_DefaultsWithoutConfigFile(t *testing.T) {
	app := newTestApp(t, false)
	if app.Config.Defaults.PasswordLength != 16 {
		t.Errorf("Expected default password length 16, got %d", app.Config.Defaults.PasswordLength)
	}
	if app.Configs.Exists() {
		t.Error("newApp must not write a config file")
	}
}

func TestNewApp_BrokenConfigFallsBackToDefaults(t *testing.T) {
	paths := testutil.TempConfigDir(t)
	testutil.WriteConfig(t, paths, "not = [valid")
	app, err := newApp(paths, entropy.Detect(), false)
	if err != nil {
		t.Fatalf("newApp failed: %v", err)
	}
	if app.Config.Defaults.HexLength != model.DefaultConfig().Defaults.HexLength {
		t.Error("Expected defaults after a broken config file")
	}
}

func TestChoose(t *testing.T) {
	app := newTestApp(t, false)

	if got, err := app.choose("ean8", "Code family", nil); err != nil || got != "ean8" {
		t.Errorf("choose with value = %q, %v", got, err)
	}

	_, err := app.choose("", "Code family", []string{"ean8"})
	if err == nil || !strings.Contains(err.Error(), "non-interactive") {
		t.Errorf("Expected non-interactive error, got %v", err)
	}

	p := &scriptedPrompter{selected: "wps"}
	app.Prompter = p
	if got, err := app.choose("", "Code family", []string{"wps"}); err != nil || got != "wps" {
		t.Errorf("choose via prompt = %q, %v", got, err)
	}
	if len(p.titles) != 1 || p.titles[0] != "Code family" {
		t.Errorf("Prompt titles = %v", p.titles)
	}
}

func TestAddressFamily(t *testing.T) {
	tests := []struct {
		kind    string
		want    model.Family
		wantErr bool
	}{
		{"postal", model.FamilyAddress, false},
		{"IPv4", model.FamilyIPv4, false},
		{"mac", model.FamilyMAC, false},
		{" email ", model.FamilyEmail, false},
		{"fax", "", true},
	}
	for _, tt := range tests {
		got, err := addressFamily(tt.kind)
		if (err != nil) != tt.wantErr {
			t.Errorf("addressFamily(%q) error = %v, wantErr %v", tt.kind, err, tt.wantErr)
			continue
		}
		if got != tt.want {
			t.Errorf("addressFamily(%q) = %q, want %q", tt.kind, got, tt.want)
		}
	}
}

func TestParseNumber(t *testing.T) {
	if v, err := parseNumber("min", ""); v != nil || err != nil {
		t.Errorf("Empty should be unset, got %v, %v", v, err)
	}
	if v, err := parseNumber("min", "-12.5"); err != nil || *v != -12.5 {
		t.Errorf("parseNumber(-12.5) = %v, %v", v, err)
	}
	if _, err := parseNumber("max", "ten"); err == nil {
		t.Error("Expected error for non-numeric input")
	}
}

func TestOptionalInt(t *testing.T) {
	if optionalInt(unsetInt) != nil {
		t.Error("unsetInt should map to nil")
	}
	if v := optionalInt(0); v == nil || *v != 0 {
		t.Error("An explicit 0 must be passed through")
	}
}

func TestFindAvailablePort(t *testing.T) {
	port := findAvailablePort("127.0.0.1", 42000)
	if port < 42000 || port >= 42100 {
		t.Errorf("Port %d outside search window", port)
	}
}
