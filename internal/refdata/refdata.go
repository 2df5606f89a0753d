// Package refdata holds the fixed lookup tables behind the pseudo-data
// generators: postal formats per country, MAC vendor prefixes, EAN country
// prefixes, names for e-mail addresses and coin address shapes.
package refdata

import (
	_ "embed"
	"slices"
	"sort"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/samber/lo"

	t4ferr "github.com/tools4freee/t4f/internal/errors"
)

//go:embed tables.toml
var rawTables []byte

// Tables is the decoded reference data.
type Tables struct {
	Names       Names              `toml:"names"`
	Countries   map[string]Country `toml:"countries"`
	Vendors     map[string]Vendor  `toml:"vendors"`
	Coins       map[string]Coin    `toml:"coins"`
	EANPrefixes []EANPrefix        `toml:"ean_prefixes"`
}

// Names feeds the e-mail generator.
type Names struct {
	First   []string `toml:"first"`
	Last    []string `toml:"last"`
	Domains []string `toml:"domains"`
}

// Country describes how postal addresses look in one country.
// Format placeholders: {number} {street} {city} {state} {postcode} {country}.
type Country struct {
	Name    string   `toml:"name"`
	Format  string   `toml:"format"`
	Streets []string `toml:"streets"`
	Cities  []City   `toml:"cities"`
}

// City is a city with its region and a few matching postcodes.
type City struct {
	Name      string   `toml:"name"`
	State     string   `toml:"state"`
	Postcodes []string `toml:"postcodes"`
}

// Vendor is a hardware vendor and some of its OUI prefixes.
type Vendor struct {
	Name string   `toml:"name"`
	OUIs []string `toml:"ouis"`
}

// Coin describes the textual shape of a coin address.
type Coin struct {
	Name     string   `toml:"name"`
	Encoding string   `toml:"encoding"` // "base58" or "hex"
	Prefixes []string `toml:"prefixes"`
	Length   int      `toml:"length"` // total length including prefix
}

// EANPrefix is a GS1 prefix and the region it is assigned to.
type EANPrefix struct {
	Code   string `toml:"code"`
	Region string `toml:"region"`
}

var tables = mustDecode(rawTables)

func mustDecode(data []byte) *Tables {
	t, err := Decode(data)
	if err != nil {
		panic("refdata: embedded tables are invalid: " + err.Error())
	}
	return t
}

// Decode parses reference tables from TOML.
func Decode(data []byte) (*Tables, error) {
	var t Tables
	if _, err := toml.Decode(string(data), &t); err != nil {
		return nil, err
	}
	return &t, nil
}

// Default returns the embedded tables. They are shared: read them through the
// accessors, which return copies.
func Default() *Tables {
	return tables
}

func normalizeKey(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}

func sortedKeys[V any](m map[string]V) []string {
	keys := lo.Keys(m)
	sort.Strings(keys)
	return keys
}

// CountryCodes returns the supported country codes, sorted.
func (t *Tables) CountryCodes() []string {
	return sortedKeys(t.Countries)
}

// Country looks up a country by ISO code, case-insensitive.
func (t *Tables) Country(code string) (Country, error) {
	c, ok := t.Countries[strings.ToUpper(strings.TrimSpace(code))]
	if !ok {
		return Country{}, t4ferr.UnknownVariant("country", code)
	}
	c.Streets = slices.Clone(c.Streets)
	c.Cities = lo.Map(c.Cities, func(city City, _ int) City {
		city.Postcodes = slices.Clone(city.Postcodes)
		return city
	})
	return c, nil
}

// VendorKeys returns the supported vendor keys, sorted.
func (t *Tables) VendorKeys() []string {
	return sortedKeys(t.Vendors)
}

// Vendor looks up a vendor by key or display name, case-insensitive.
func (t *Tables) Vendor(name string) (Vendor, error) {
	key := normalizeKey(name)
	if v, ok := t.Vendors[key]; ok {
		v.OUIs = slices.Clone(v.OUIs)
		return v, nil
	}
	v, ok := lo.Find(lo.Values(t.Vendors), func(v Vendor) bool {
		return normalizeKey(v.Name) == key
	})
	if !ok {
		return Vendor{}, t4ferr.UnknownVariant("vendor", name)
	}
	v.OUIs = slices.Clone(v.OUIs)
	return v, nil
}

// CoinKeys returns the supported coin keys, sorted.
func (t *Tables) CoinKeys() []string {
	return sortedKeys(t.Coins)
}

// Coin looks up a coin address shape by key.
func (t *Tables) Coin(name string) (Coin, error) {
	c, ok := t.Coins[normalizeKey(name)]
	if !ok {
		return Coin{}, t4ferr.UnknownVariant("coin", name)
	}
	c.Prefixes = slices.Clone(c.Prefixes)
	return c, nil
}

// EmailNames returns a copy of the name lists used for e-mail addresses.
func (t *Tables) EmailNames() Names {
	return Names{
		First:   slices.Clone(t.Names.First),
		Last:    slices.Clone(t.Names.Last),
		Domains: slices.Clone(t.Names.Domains),
	}
}

// EANPrefixCodes returns just the prefix codes.
func (t *Tables) EANPrefixCodes() []string {
	return lo.Map(t.EANPrefixes, func(p EANPrefix, _ int) string {
		return p.Code
	})
}
