package util

import "testing"

func TestSlugify(t *testing.T) {
	tests := []struct {
		input    string
		expected string
	}{
		// Basic cases
		{"Hello World", "hello-world"},
		{"Maple Street", "maple-street"},

		// Special characters
		{"O'Brien", "o-brien"},
		{"Sainte-Catherine (Rue)", "sainte-catherine-rue"},

		// Multiple spaces/hyphens
		{"Multiple   spaces", "multiple-spaces"},
		{"  Leading spaces", "leading-spaces"},

		// Unicode and accents
		{"Café au lait", "cafe-au-lait"},
		{"Zoë", "zoe"},
		{"François", "francois"},
		{"Martínez", "martinez"},

		// Edge cases
		{"", ""},
		{"   ", ""},
		{"---", ""},
		{"A", "a"},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			result := Slugify(tt.input)
			if result != tt.expected {
				t.Errorf("Slugify(%q) = %q, want %q", tt.input, result, tt.expected)
			}
		})
	}
}

func TestLocalPart(t *testing.T) {
	tests := []struct {
		names    []string
		expected string
	}{
		{[]string{"Zoë", "O'Brien"}, "zoe.obrien"},
		{[]string{"José", "Fernández"}, "jose.fernandez"},
		{[]string{"Mary Ann", "Smith"}, "maryann.smith"},
		{[]string{"Björn", ""}, "bjorn"},
	}
	for _, tt := range tests {
		if got := LocalPart(tt.names...); got != tt.expected {
			t.Errorf("LocalPart(%q) = %q, want %q", tt.names, got, tt.expected)
		}
	}
}
