package generator

import (
	"strings"
	"testing"

	"github.com/tools4freee/t4f/internal/entropy"
	t4ferr "github.com/tools4freee/t4f/internal/errors"
)

func TestPassword_ContainsEveryClass(t *testing.T) {
	opts := DefaultPasswordOptions()
	opts.Length = MinPasswordLength
	for i := 0; i < 1000; i++ {
		pw, err := Password(entropy.Secure(), opts)
		if err != nil {
			t.Fatal(err)
		}
		if len(pw) != opts.Length {
			t.Fatalf("Password length = %d, want %d", len(pw), opts.Length)
		}
		for _, class := range []string{lowerChars, upperChars, digitChars, symbolChars} {
			if !strings.ContainsAny(pw, class) {
				t.Fatalf("%q is missing a character from %q", pw, class)
			}
		}
	}
}

func TestPassword_ExcludeAmbiguous(t *testing.T) {
	opts := PasswordOptions{Length: 128, Lower: true, Upper: true, Digits: true, ExcludeAmbiguous: true}
	for i := 0; i < 100; i++ {
		pw, err := Password(entropy.Secure(), opts)
		if err != nil {
			t.Fatal(err)
		}
		if strings.ContainsAny(pw, ambiguous) {
			t.Fatalf("%q contains an ambiguous character", pw)
		}
		if strings.ContainsAny(pw, symbolChars) {
			t.Fatalf("%q contains a symbol although symbols are off", pw)
		}
	}
}

func TestPassword_Errors(t *testing.T) {
	tests := []struct {
		name  string
		src   entropy.Source
		opts  PasswordOptions
		check func(error) bool
	}{
		{"too short", entropy.Secure(), PasswordOptions{Length: 3, Lower: true}, t4ferr.IsOutOfBounds},
		{"too long", entropy.Secure(), PasswordOptions{Length: 129, Lower: true}, t4ferr.IsOutOfBounds},
		{"no classes", entropy.Secure(), PasswordOptions{Length: 12}, t4ferr.IsInvalidParameters},
		{"pseudo source", entropy.Pseudo(), DefaultPasswordOptions(), t4ferr.IsEntropyUnavailable},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Password(tt.src, tt.opts)
			if !tt.check(err) {
				t.Errorf("Password(%+v) error = %v", tt.opts, err)
			}
		})
	}
}
