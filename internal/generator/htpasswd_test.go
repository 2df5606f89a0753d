package generator

import (
	"strings"
	"testing"

	"github.com/tools4freee/t4f/internal/entropy"
	t4ferr "github.com/tools4freee/t4f/internal/errors"
)

func TestHtpasswd_SHA(t *testing.T) {
	line, err := Htpasswd(entropy.Secure(), "admin", "password", HtpasswdSHA)
	if err != nil {
		t.Fatal(err)
	}
	want := "admin:{SHA}W6ph5Mm5Pz8GgiULbPgzG37mj9g="
	if line != want {
		t.Errorf("Htpasswd(sha) = %q, want %q", line, want)
	}
	if !VerifyHtpasswd(line, "password") {
		t.Error("VerifyHtpasswd rejected the right password")
	}
	if VerifyHtpasswd(line, "Password") {
		t.Error("VerifyHtpasswd accepted the wrong password")
	}
}

func TestHtpasswd_Bcrypt(t *testing.T) {
	line, err := Htpasswd(entropy.Secure(), "alice", "s3cret", HtpasswdBcrypt)
	if err != nil {
		t.Fatal(err)
	}
	if !strings.HasPrefix(line, "alice:$2") {
		t.Errorf("Expected a bcrypt hash, got %q", line)
	}
	if strings.Contains(line, "s3cret") {
		t.Error("Plaintext password leaked into the line")
	}
	if !VerifyHtpasswd(line, "s3cret") {
		t.Error("VerifyHtpasswd rejected the right password")
	}
}

func TestHtpasswd_Errors(t *testing.T) {
	tests := []struct {
		name     string
		src      entropy.Source
		user, pw string
		algo     HtpasswdAlgorithm
		check    func(error) bool
	}{
		{"empty user", entropy.Secure(), "", "pw", HtpasswdSHA, t4ferr.IsInvalidParameters},
		{"colon in user", entropy.Secure(), "a:b", "pw", HtpasswdSHA, t4ferr.IsInvalidParameters},
		{"empty password", entropy.Secure(), "bob", "", HtpasswdBcrypt, t4ferr.IsInvalidParameters},
		{"long bcrypt password", entropy.Secure(), "bob", strings.Repeat("x", 73), HtpasswdBcrypt, t4ferr.IsOutOfBounds},
		{"unknown algorithm", entropy.Secure(), "bob", "pw", "md5", t4ferr.IsNotFound},
		{"bcrypt without secure source", entropy.Pseudo(), "bob", "pw", HtpasswdBcrypt, t4ferr.IsEntropyUnavailable},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Htpasswd(tt.src, tt.user, tt.pw, tt.algo)
			if !tt.check(err) {
				t.Errorf("Htpasswd error = %v", err)
			}
		})
	}
}
