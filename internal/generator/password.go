package generator

import (
	"strings"

	"github.com/samber/lo"

	"github.com/tools4freee/t4f/internal/entropy"
	t4ferr "github.com/tools4freee/t4f/internal/errors"
)

const (
	MinPasswordLength = 4
	MaxPasswordLength = 128
)

const (
	lowerChars  = "abcdefghijklmnopqrstuvwxyz"
	upperChars  = "ABCDEFGHIJKLMNOPQRSTUVWXYZ"
	digitChars  = "0123456789"
	symbolChars = "!#$%&*+-=?@^_~.,:;"
	ambiguous   = "0O1lI|"
)

// PasswordOptions selects length and character classes for Password.
type PasswordOptions struct {
	Length           int  `json:"length" toml:"length"`
	Lower            bool `json:"lower" toml:"lower"`
	Upper            bool `json:"upper" toml:"upper"`
	Digits           bool `json:"digits" toml:"digits"`
	Symbols          bool `json:"symbols" toml:"symbols"`
	ExcludeAmbiguous bool `json:"exclude_ambiguous" toml:"exclude_ambiguous"`
}

// DefaultPasswordOptions is 16 characters from every class.
func DefaultPasswordOptions() PasswordOptions {
	return PasswordOptions{Length: 16, Lower: true, Upper: true, Digits: true, Symbols: true}
}

func (o PasswordOptions) classes() [][]rune {
	var out [][]rune
	add := func(on bool, chars string) {
		if !on {
			return
		}
		set := []rune(chars)
		if o.ExcludeAmbiguous {
			set = lo.Reject(set, func(r rune, _ int) bool {
				return strings.ContainsRune(ambiguous, r)
			})
		}
		out = append(out, set)
	}
	add(o.Lower, lowerChars)
	add(o.Upper, upperChars)
	add(o.Digits, digitChars)
	add(o.Symbols, symbolChars)
	return out
}

// Password returns a secure random password containing at least one
// character from every selected class.
func Password(src entropy.Source, opts PasswordOptions) (string, error) {
	if opts.Length < MinPasswordLength || opts.Length > MaxPasswordLength {
		return "", t4ferr.OutOfBounds("length", opts.Length, MinPasswordLength, MaxPasswordLength)
	}
	classes := opts.classes()
	if len(classes) == 0 {
		return "", t4ferr.InvalidParameter("charset", "select at least one character class")
	}
	if err := entropy.RequireSecure(src); err != nil {
		return "", err
	}

	out := make([]rune, 0, opts.Length)
	for _, class := range classes {
		r, err := entropy.Pick(src, class)
		if err != nil {
			return "", err
		}
		out = append(out, r)
	}
	all := lo.Uniq(lo.Flatten(classes))
	for len(out) < opts.Length {
		r, err := entropy.Pick(src, all)
		if err != nil {
			return "", err
		}
		out = append(out, r)
	}
	if err := entropy.Shuffle(src, out); err != nil {
		return "", err
	}
	return string(out), nil
}
