package generator

import (
	"encoding/base64"
	"regexp"
	"testing"

	"github.com/tools4freee/t4f/internal/entropy"
	t4ferr "github.com/tools4freee/t4f/internal/errors"
)

var hexPattern = regexp.MustCompile(`^[0-9a-f]+$`)

func TestHex_Length(t *testing.T) {
	for _, n := range []int{1, 2, 7, 32, 1024} {
		s, err := Hex(entropy.Secure(), n)
		if err != nil {
			t.Fatalf("Hex(%d) error: %v", n, err)
		}
		if len(s) != n {
			t.Errorf("Hex(%d) length = %d", n, len(s))
		}
		if !hexPattern.MatchString(s) {
			t.Errorf("Hex(%d) = %q is not lowercase hex", n, s)
		}
	}
}

func TestHex_Errors(t *testing.T) {
	for _, n := range []int{0, -1, 1025, 2000} {
		if _, err := Hex(entropy.Secure(), n); !t4ferr.IsOutOfBounds(err) {
			t.Errorf("Hex(%d) error = %v, want OutOfBounds", n, err)
		}
	}
	if _, err := Hex(entropy.Pseudo(), 8); !t4ferr.IsEntropyUnavailable(err) {
		t.Errorf("Hex with pseudo source error = %v, want EntropyUnavailable", err)
	}
}

func TestBase64_DecodesToRequestedBytes(t *testing.T) {
	for _, n := range []int{1, 2, 3, 16, 512} {
		s, err := Base64(entropy.Secure(), n)
		if err != nil {
			t.Fatalf("Base64(%d) error: %v", n, err)
		}
		raw, err := base64.StdEncoding.DecodeString(s)
		if err != nil {
			t.Fatalf("Base64(%d) = %q does not decode: %v", n, s, err)
		}
		if len(raw) != n {
			t.Errorf("Base64(%d) decoded to %d bytes", n, len(raw))
		}
	}
}

func TestBase64_Errors(t *testing.T) {
	if _, err := Base64(entropy.Secure(), 0); !t4ferr.IsOutOfBounds(err) {
		t.Errorf("Base64(0) error = %v", err)
	}
	if _, err := Base64(entropy.Secure(), 513); !t4ferr.IsOutOfBounds(err) {
		t.Errorf("Base64(513) error = %v", err)
	}
	if _, err := Base64(entropy.Unavailable(), 4); !t4ferr.IsEntropyUnavailable(err) {
		t.Errorf("Base64 with unavailable source error = %v", err)
	}
}
