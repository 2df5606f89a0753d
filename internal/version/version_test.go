package version

import (
	"errors"
	"strings"
	"testing"
)

func TestFormatConfigSchema(t *testing.T) {
	tests := []struct {
		version  int
		expected string
	}{
		{1, "config/1"},
		{2, "config/2"},
		{10, "config/10"},
	}
	for _, tt := range tests {
		got := FormatConfigSchema(tt.version)
		if got != tt.expected {
			t.Errorf("FormatConfigSchema(%d) = %q, want %q", tt.version, got, tt.expected)
		}
	}
}

func TestParseConfigVersion(t *testing.T) {
	tests := []struct {
		schema    string
		expected  int
		expectErr bool
	}{
		{"config/1", 1, false},
		{"config/10", 10, false},
		{"global/1", 0, true},   // Wrong prefix
		{"config/", 0, true},    // Missing version
		{"config/abc", 0, true}, // Invalid version
		{"config/0", 0, true},   // Version must be >= 1
		{"config/-1", 0, true},  // Negative version
		{"", 0, true},
	}
	for _, tt := range tests {
		got, err := ParseConfigVersion(tt.schema)
		if tt.expectErr {
			if err == nil {
				t.Errorf("ParseConfigVersion(%q) expected error, got %d", tt.schema, got)
			}
			continue
		}
		if err != nil {
			t.Errorf("ParseConfigVersion(%q) unexpected error: %v", tt.schema, err)
			continue
		}
		if got != tt.expected {
			t.Errorf("ParseConfigVersion(%q) = %d, want %d", tt.schema, got, tt.expected)
		}
	}
}

func TestMinT4FVersionCompleteness(t *testing.T) {
	for v := 1; v <= CurrentConfigVersion; v++ {
		key := FormatConfigSchema(v)
		if _, ok := MinT4FVersion[key]; !ok {
			t.Errorf("MinT4FVersion is missing an entry for %s", key)
		}
	}
}

func TestSchemaErrors(t *testing.T) {
	err := MissingConfigSchema("/tmp/config.toml")
	if !strings.Contains(err.Error(), "t4f config init") {
		t.Errorf("Missing schema error should suggest a fix, got %q", err)
	}

	err = InvalidConfigSchema("/tmp/config.toml", "config/99")
	var sv *SchemaVersionError
	if !errors.As(err, &sv) {
		t.Fatalf("Expected SchemaVersionError, got %T", err)
	}
	if sv.MinRequired == "" {
		t.Error("Newer schema should set MinRequired")
	}

	err = InvalidConfigSchema("/tmp/config.toml", "nonsense")
	if errors.As(err, &sv); sv.MinRequired != "" {
		t.Errorf("Malformed schema should not set MinRequired, got %q", sv.MinRequired)
	}
}
