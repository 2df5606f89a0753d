package model

import (
	"sort"
	"strings"

	"github.com/samber/lo"

	t4ferr "github.com/tools4freee/t4f/internal/errors"
)

// Family names one generator exposed by the CLI and API.
type Family string

const (
	FamilyInteger  Family = "integer"
	FamilyFloat    Family = "float"
	FamilyPrime    Family = "prime"
	FamilyHex      Family = "hex"
	FamilyBase64   Family = "base64"
	FamilyUUID     Family = "uuid"
	FamilyIMEI     Family = "imei"
	FamilyEAN13    Family = "ean13"
	FamilyEAN8     Family = "ean8"
	FamilyISBN10   Family = "isbn10"
	FamilyISBN13   Family = "isbn13"
	FamilyWPS      Family = "wps"
	FamilyAddress  Family = "address"
	FamilyIPv4     Family = "ipv4"
	FamilyIPv6     Family = "ipv6"
	FamilyMAC      Family = "mac"
	FamilyCoin     Family = "coin"
	FamilyEmail    Family = "email"
	FamilyPassword Family = "password"
	FamilyHtpasswd Family = "htpasswd"
	FamilyDate     Family = "date"
	FamilyID       Family = "id"
)

// FamilyInfo describes a family for listings.
type FamilyInfo struct {
	Name        Family `json:"name"`
	Description string `json:"description"`
	// Secure families draw only from the cryptographically secure source.
	Secure bool `json:"secure"`
	// Validates is true when Validate accepts values of this family.
	Validates bool `json:"validates"`
}

var families = []FamilyInfo{
	{FamilyInteger, "Uniform integer in [min, max]", false, false},
	{FamilyFloat, "Uniform decimal in [min, max] at a fixed precision", false, false},
	{FamilyPrime, "Random prime in [min, max]", false, false},
	{FamilyHex, "Random lowercase hex string", true, false},
	{FamilyBase64, "Random bytes, Base64 encoded", true, false},
	{FamilyUUID, "RFC 4122 version 4 UUID", true, true},
	{FamilyIMEI, "15-digit IMEI with check digit", false, true},
	{FamilyEAN13, "EAN-13 barcode number", false, true},
	{FamilyEAN8, "EAN-8 barcode number", false, true},
	{FamilyISBN10, "ISBN-10 with mod-11 check character", false, true},
	{FamilyISBN13, "ISBN-13 with the 978 prefix", false, true},
	{FamilyWPS, "8-digit WPS PIN", false, true},
	{FamilyAddress, "Postal address for a country", false, false},
	{FamilyIPv4, "IPv4 address", false, false},
	{FamilyIPv6, "IPv6 address, full form", false, false},
	{FamilyMAC, "MAC address, optionally with a vendor prefix", false, false},
	{FamilyCoin, "Cosmetic cryptocurrency address", false, false},
	{FamilyEmail, "Cosmetic e-mail address", false, false},
	{FamilyPassword, "Password from selected character classes", true, false},
	{FamilyHtpasswd, "Apache htpasswd line", true, true},
	{FamilyDate, "Calendar date in [from, to]", false, false},
	{FamilyID, "Other unique ids: uuidv7, ulid, ksuid, nanoid, cuid2", true, true},
}

// Families returns every family, sorted by name.
func Families() []FamilyInfo {
	out := make([]FamilyInfo, len(families))
	copy(out, families)
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out
}

// FamilyNames returns every family name, sorted.
func FamilyNames() []string {
	return lo.Map(Families(), func(f FamilyInfo, _ int) string { return string(f.Name) })
}

// ParseFamily resolves a family name, ignoring case, spaces and dashes
// ("EAN-13" and "ean13" are the same family).
func ParseFamily(s string) (Family, error) {
	key := Family(strings.ReplaceAll(strings.Join(strings.Fields(strings.ToLower(s)), ""), "-", ""))
	if _, ok := lo.Find(families, func(f FamilyInfo) bool { return f.Name == key }); !ok {
		return "", t4ferr.UnknownFamily(s)
	}
	return key, nil
}

// Info returns the descriptor for f.
func (f Family) Info() (FamilyInfo, bool) {
	return lo.Find(families, func(i FamilyInfo) bool { return i.Name == f })
}
