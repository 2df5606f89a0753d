package generator

import (
	"regexp"
	"testing"

	"github.com/tools4freee/t4f/internal/entropy"
	t4ferr "github.com/tools4freee/t4f/internal/errors"
)

var uuidV4Pattern = regexp.MustCompile(`^[0-9a-f]{8}-[0-9a-f]{4}-4[0-9a-f]{3}-[89ab][0-9a-f]{3}-[0-9a-f]{12}$`)

func TestUUIDv4_Format(t *testing.T) {
	seen := make(map[string]bool)
	for i := 0; i < 10000; i++ {
		u, err := UUIDv4(entropy.Secure())
		if err != nil {
			t.Fatal(err)
		}
		if !uuidV4Pattern.MatchString(u) {
			t.Fatalf("UUIDv4() = %q does not match the v4 layout", u)
		}
		if reason := ValidateUUID(u); reason != "" {
			t.Fatalf("ValidateUUID(%q) = %q", u, reason)
		}
		seen[u] = true
	}
	if len(seen) != 10000 {
		t.Errorf("Expected 10000 distinct UUIDs, got %d", len(seen))
	}
}

func TestUUIDv4_RequiresSecureSource(t *testing.T) {
	if _, err := UUIDv4(entropy.NewDeterministic(1)); !t4ferr.IsEntropyUnavailable(err) {
		t.Errorf("Expected EntropyUnavailable, got %v", err)
	}
}

func TestValidateUUID(t *testing.T) {
	tests := []struct {
		in string
		ok bool
	}{
		{"f47ac10b-58cc-4372-a567-0e02b2c3d479", true},
		{"F47AC10B-58CC-4372-A567-0E02B2C3D479", true},
		{"f47ac10b-58cc-1372-a567-0e02b2c3d479", false},
		{"f47ac10b-58cc-4372-c567-0e02b2c3d479", false},
		{"not-a-uuid", false},
	}
	for _, tt := range tests {
		if got := ValidateUUID(tt.in) == ""; got != tt.ok {
			t.Errorf("ValidateUUID(%q) ok = %v, want %v", tt.in, got, tt.ok)
		}
	}
}
