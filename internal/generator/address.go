package generator

import (
	"encoding/hex"
	"fmt"
	"net/netip"
	"strconv"
	"strings"

	"github.com/tools4freee/t4f/internal/entropy"
	t4ferr "github.com/tools4freee/t4f/internal/errors"
	"github.com/tools4freee/t4f/internal/refdata"
	"github.com/tools4freee/t4f/internal/util"
)

// AddressKind selects which kind of pseudo-address FormattedAddress builds.
type AddressKind string

const (
	AddressPostal AddressKind = "postal"
	AddressIPv4   AddressKind = "ipv4"
	AddressIPv6   AddressKind = "ipv6"
	AddressMAC    AddressKind = "mac"
	AddressCoin   AddressKind = "coin"
	AddressEmail  AddressKind = "email"
)

// AddressKinds lists every kind in display order.
var AddressKinds = []AddressKind{AddressPostal, AddressIPv4, AddressIPv6, AddressMAC, AddressCoin, AddressEmail}

// AddressRequest parameterizes FormattedAddress.
//
// Variant means: postal → country code (default US); ipv4 → "private" or any;
// ipv6 → "ula" or any; mac → vendor key or name (default random locally
// administered); coin → coin key (default bitcoin); email → domain.
// Separator is only used by mac: ":" (default), "-", "." or "none".
type AddressRequest struct {
	Kind      AddressKind `json:"kind"`
	Variant   string      `json:"variant,omitempty"`
	Separator string      `json:"separator,omitempty"`
}

// FormattedAddress builds a plausible-looking address. Output is cosmetic:
// coin addresses carry no valid checksum and postal addresses need not exist.
func FormattedAddress(src entropy.Source, req AddressRequest) (string, error) {
	switch AddressKind(strings.ToLower(string(req.Kind))) {
	case AddressPostal:
		return postalAddress(src, req.Variant)
	case AddressIPv4:
		return ipv4Address(src, req.Variant)
	case AddressIPv6:
		return ipv6Address(src, req.Variant)
	case AddressMAC:
		return macAddress(src, req.Variant, req.Separator)
	case AddressCoin:
		return coinAddress(src, req.Variant)
	case AddressEmail:
		return Email(src, req.Variant)
	default:
		return "", t4ferr.UnknownVariant("address kind", string(req.Kind))
	}
}

func postalAddress(src entropy.Source, country string) (string, error) {
	if country == "" {
		country = "US"
	}
	c, err := refdata.Default().Country(country)
	if err != nil {
		return "", err
	}
	city, err := entropy.Pick(src, c.Cities)
	if err != nil {
		return "", err
	}
	street, err := entropy.Pick(src, c.Streets)
	if err != nil {
		return "", err
	}
	postcode, err := entropy.Pick(src, city.Postcodes)
	if err != nil {
		return "", err
	}
	number, err := entropy.Between(src, 1, 250)
	if err != nil {
		return "", err
	}
	r := strings.NewReplacer(
		"{number}", strconv.FormatInt(number, 10),
		"{street}", street,
		"{city}", city.Name,
		"{state}", city.State,
		"{postcode}", postcode,
		"{country}", c.Name,
	)
	return r.Replace(c.Format), nil
}

func ipv4Address(src entropy.Source, variant string) (string, error) {
	variant = strings.ToLower(variant)
	switch variant {
	case "", "any", "private":
	default:
		return "", t4ferr.UnknownVariant("ipv4 variant", variant)
	}
	var b [4]byte
	if err := src.Read(b[:]); err != nil {
		return "", err
	}
	if variant == "private" {
		b[0], b[1] = 192, 168
	}
	return netip.AddrFrom4(b).String(), nil
}

func ipv6Address(src entropy.Source, variant string) (string, error) {
	variant = strings.ToLower(variant)
	switch variant {
	case "", "any", "ula":
	default:
		return "", t4ferr.UnknownVariant("ipv6 variant", variant)
	}
	var b [16]byte
	if err := src.Read(b[:]); err != nil {
		return "", err
	}
	if variant == "ula" {
		b[0] = 0xfd
	}
	// Always the full eight groups, never the :: shorthand.
	groups := make([]string, 8)
	for i := range groups {
		groups[i] = hex.EncodeToString(b[2*i : 2*i+2])
	}
	return strings.Join(groups, ":"), nil
}

func macAddress(src entropy.Source, vendor, sep string) (string, error) {
	switch sep {
	case "":
		sep = ":"
	case ":", "-", ".":
	case "none":
		sep = ""
	default:
		return "", t4ferr.InvalidParameter("separator", fmt.Sprintf("%q is not one of : - . none", sep))
	}

	var v *refdata.Vendor
	if vendor != "" && !strings.EqualFold(vendor, "random") {
		found, err := refdata.Default().Vendor(vendor)
		if err != nil {
			return "", err
		}
		v = &found
	}

	var b [6]byte
	if err := src.Read(b[:]); err != nil {
		return "", err
	}
	if v == nil {
		// Locally administered, unicast.
		b[0] = (b[0] | 0x02) &^ 0x01
	} else {
		oui, err := entropy.Pick(src, v.OUIs)
		if err != nil {
			return "", err
		}
		raw, err := hex.DecodeString(strings.ReplaceAll(oui, ":", ""))
		if err != nil || len(raw) != 3 {
			return "", fmt.Errorf("vendor %s has malformed OUI %q", v.Name, oui)
		}
		copy(b[:3], raw)
	}

	digits := strings.ToUpper(hex.EncodeToString(b[:]))
	if sep == "." {
		return digits[0:4] + "." + digits[4:8] + "." + digits[8:12], nil
	}
	pairs := make([]string, 6)
	for i := range pairs {
		pairs[i] = digits[2*i : 2*i+2]
	}
	return strings.Join(pairs, sep), nil
}

const base58Alphabet = "123456789ABCDEFGHJKLMNPQRSTUVWXYZabcdefghijkmnopqrstuvwxyz"

func coinAddress(src entropy.Source, name string) (string, error) {
	if name == "" {
		name = "bitcoin"
	}
	coin, err := refdata.Default().Coin(name)
	if err != nil {
		return "", err
	}
	prefix, err := entropy.Pick(src, coin.Prefixes)
	if err != nil {
		return "", err
	}

	alphabet := base58Alphabet
	if coin.Encoding == "hex" {
		alphabet = "0123456789abcdef"
	}
	var b strings.Builder
	b.WriteString(prefix)
	for b.Len() < coin.Length {
		i, err := entropy.IntN(src, int64(len(alphabet)))
		if err != nil {
			return "", err
		}
		b.WriteByte(alphabet[i])
	}
	return b.String(), nil
}

// Email returns a cosmetic first.last address at domain, or at a random
// reference domain when domain is empty. Names are accent-stripped.
func Email(src entropy.Source, domain string) (string, error) {
	names := refdata.Default().EmailNames()
	domain = strings.ToLower(strings.TrimSpace(domain))
	if domain != "" && (strings.ContainsAny(domain, "@ ") || !strings.Contains(domain, ".")) {
		return "", t4ferr.InvalidParameter("domain", fmt.Sprintf("%q is not a domain name", domain))
	}

	first, err := entropy.Pick(src, names.First)
	if err != nil {
		return "", err
	}
	last, err := entropy.Pick(src, names.Last)
	if err != nil {
		return "", err
	}
	if domain == "" {
		if domain, err = entropy.Pick(src, names.Domains); err != nil {
			return "", err
		}
	}

	local := util.LocalPart(first, last)
	n, err := entropy.IntN(src, 100)
	if err != nil {
		return "", err
	}
	if n >= 50 {
		local += strconv.FormatInt(n, 10)
	}
	return local + "@" + domain, nil
}
