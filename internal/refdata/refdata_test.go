package refdata

import (
	"regexp"
	"strings"
	"testing"

	t4ferr "github.com/tools4freee/t4f/internal/errors"
)

var ouiRegex = regexp.MustCompile(`^[0-9A-F]{2}:[0-9A-F]{2}:[0-9A-F]{2}$`)

func TestDefault_Loaded(t *testing.T) {
	tbl := Default()
	if len(tbl.Countries) == 0 {
		t.Fatal("Expected countries to be loaded")
	}
	if len(tbl.Names.First) == 0 || len(tbl.Names.Last) == 0 || len(tbl.Names.Domains) == 0 {
		t.Error("Expected names and domains to be loaded")
	}
	if len(tbl.EANPrefixes) == 0 {
		t.Error("Expected EAN prefixes to be loaded")
	}
}

func TestCountries_WellFormed(t *testing.T) {
	tbl := Default()
	for _, code := range tbl.CountryCodes() {
		c, err := tbl.Country(code)
		if err != nil {
			t.Fatalf("Country(%q): %v", code, err)
		}
		if c.Name == "" || c.Format == "" {
			t.Errorf("%s: missing name or format", code)
		}
		if len(c.Streets) == 0 || len(c.Cities) == 0 {
			t.Errorf("%s: needs streets and cities", code)
		}
		for _, city := range c.Cities {
			if len(city.Postcodes) == 0 {
				t.Errorf("%s/%s: no postcodes", code, city.Name)
			}
		}
		if !strings.Contains(c.Format, "{street}") || !strings.Contains(c.Format, "{city}") {
			t.Errorf("%s: format %q missing placeholders", code, c.Format)
		}
	}
}

func TestCountry_CaseInsensitive(t *testing.T) {
	if _, err := Default().Country("us"); err != nil {
		t.Errorf("Expected lowercase code to resolve: %v", err)
	}
	if _, err := Default().Country("ZZ"); !t4ferr.IsNotFound(err) {
		t.Errorf("Expected NotFound, got %v", err)
	}
}

func TestVendors_OUIFormat(t *testing.T) {
	tbl := Default()
	for _, key := range tbl.VendorKeys() {
		v, _ := tbl.Vendor(key)
		for _, oui := range v.OUIs {
			if !ouiRegex.MatchString(oui) {
				t.Errorf("%s: malformed OUI %q", key, oui)
			}
		}
	}
}

func TestVendor_ByDisplayName(t *testing.T) {
	v, err := Default().Vendor("Raspberry Pi")
	if err != nil {
		t.Fatalf("Vendor by display name failed: %v", err)
	}
	if v.Name != "Raspberry Pi" {
		t.Errorf("Got %q", v.Name)
	}
}

func TestCoins(t *testing.T) {
	tbl := Default()
	for _, key := range tbl.CoinKeys() {
		c, _ := tbl.Coin(key)
		if c.Encoding != "base58" && c.Encoding != "hex" {
			t.Errorf("%s: unknown encoding %q", key, c.Encoding)
		}
		for _, p := range c.Prefixes {
			if len(p) >= c.Length {
				t.Errorf("%s: prefix %q longer than address", key, p)
			}
		}
	}
	if _, err := tbl.Coin("monero"); !t4ferr.IsNotFound(err) {
		t.Errorf("Expected NotFound, got %v", err)
	}
}

func TestEANPrefixCodes(t *testing.T) {
	for _, code := range Default().EANPrefixCodes() {
		if len(code) != 3 {
			t.Errorf("EAN prefix %q should be 3 digits", code)
		}
	}
}

func TestDecode_Invalid(t *testing.T) {
	if _, err := Decode([]byte("countries = [")); err == nil {
		t.Error("Expected decode error for malformed TOML")
	}
}

func TestAccessors_ReturnCopies(t *testing.T) {
	tbl := Default()

	c, _ := tbl.Country("US")
	street, postcode := c.Streets[0], c.Cities[0].Postcodes[0]
	c.Streets[0], c.Cities[0].Postcodes[0] = "changed", "changed"

	v, _ := tbl.Vendor(tbl.VendorKeys()[0])
	oui := v.OUIs[0]
	v.OUIs[0] = "changed"

	coin, _ := tbl.Coin("bitcoin")
	prefix := coin.Prefixes[0]
	coin.Prefixes[0] = "changed"

	names := tbl.EmailNames()
	domain := names.Domains[0]
	names.Domains[0] = "changed"

	again, _ := tbl.Country("US")
	if again.Streets[0] != street || again.Cities[0].Postcodes[0] != postcode {
		t.Error("Country shares slices with the tables")
	}
	if v2, _ := tbl.Vendor(tbl.VendorKeys()[0]); v2.OUIs[0] != oui {
		t.Error("Vendor shares slices with the tables")
	}
	if c2, _ := tbl.Coin("bitcoin"); c2.Prefixes[0] != prefix {
		t.Error("Coin shares slices with the tables")
	}
	if tbl.EmailNames().Domains[0] != domain {
		t.Error("EmailNames shares slices with the tables")
	}
}
