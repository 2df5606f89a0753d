package username

import (
	"testing"
)

func TestDefault_EnvVarWins(t *testing.T) {
	t.Setenv(EnvVar, "tester")
	t.Setenv("USER", "os-user")

	if got := Default(nil); got != "tester" {
		t.Errorf("Default() = %q, want tester", got)
	}
}

func TestDefault_FallsBackToUser(t *testing.T) {
	t.Setenv(EnvVar, "")
	t.Setenv("USER", "fallback-user")

	// nil client simulates git not being available
	if got := Default(nil); got != "fallback-user" {
		t.Errorf("Default() = %q, want fallback-user", got)
	}
}

func TestDefault_NothingAvailable(t *testing.T) {
	t.Setenv(EnvVar, "")
	t.Setenv("USER", "")

	if got := Default(nil); got != "" {
		t.Errorf("Default() = %q, want empty", got)
	}
}

func TestLoginFromName(t *testing.T) {
	tests := []struct {
		in, want string
	}{
		{"Ada Lovelace", "ada.lovelace"},
		{"  grace   hopper ", "grace.hopper"},
		{"o'brien: admin", "obrien.admin"},
		{"José Núñez", "jose.nunez"},
		{"", ""},
		{"---", ""},
	}
	for _, tt := range tests {
		if got := loginFromName(tt.in); got != tt.want {
			t.Errorf("loginFromName(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}
