package util

import (
	"regexp"
	"strings"
	"unicode"

	"golang.org/x/text/unicode/norm"
)

var (
	// Match sequences of non-alphanumeric characters
	nonAlphanumeric = regexp.MustCompile(`[^a-z0-9]+`)
	// Match leading/trailing hyphens
	trimHyphens = regexp.MustCompile(`^-+|-+$`)
)

// SlugWords converts a string to normalized ASCII words.
//   - Converts to lowercase
//   - Normalizes unicode (removes accents)
//   - Treats any run of other characters as a word break
func SlugWords(s string) []string {
	s = strings.ToLower(s)
	s = removeAccents(s)
	s = nonAlphanumeric.ReplaceAllString(s, "-")
	s = trimHyphens.ReplaceAllString(s, "")

	if s == "" {
		return nil
	}

	return strings.Split(s, "-")
}

// Slugify joins SlugWords with hyphens.
func Slugify(s string) string {
	return strings.Join(SlugWords(s), "-")
}

// LocalPart builds an e-mail local part like "zoe.obrien" from display names.
// Apostrophes are dropped rather than treated as word breaks.
func LocalPart(names ...string) string {
	parts := make([]string, 0, len(names))
	for _, n := range names {
		n = strings.NewReplacer("'", "", "’", "").Replace(n)
		if w := strings.Join(SlugWords(n), ""); w != "" {
			parts = append(parts, w)
		}
	}
	return strings.Join(parts, ".")
}

// removeAccents removes diacritical marks from unicode characters.
func removeAccents(s string) string {
	// Decompose unicode characters (NFD normalization)
	result := norm.NFD.String(s)

	// Remove combining characters (accents, diacritics)
	var b strings.Builder
	for _, r := range result {
		if !unicode.Is(unicode.Mn, r) { // Mn = Mark, Nonspacing
			b.WriteRune(r)
		}
	}

	return b.String()
}
