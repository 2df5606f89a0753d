package generator

import (
	"fmt"

	"github.com/google/uuid"

	"github.com/tools4freee/t4f/internal/entropy"
)

// UUIDv4 returns an RFC 4122 version 4 UUID built from 16 secure random bytes.
// No uniqueness check is made against earlier values.
func UUIDv4(src entropy.Source) (string, error) {
	b, err := secureBytes(src, 16)
	if err != nil {
		return "", err
	}
	b[6] = (b[6] & 0x0f) | 0x40 // version 4
	b[8] = (b[8] & 0x3f) | 0x80 // variant 10
	u, err := uuid.FromBytes(b)
	if err != nil {
		return "", err
	}
	return u.String(), nil
}

// ValidateUUID reports why s is not a version 4 RFC 4122 UUID, or "" if it is.
func ValidateUUID(s string) string {
	u, err := uuid.Parse(s)
	if err != nil {
		return fmt.Sprintf("invalid UUID format: %v", err)
	}
	if u.Version() != 4 {
		return fmt.Sprintf("expected UUID v4, got v%d", u.Version())
	}
	if u.Variant() != uuid.RFC4122 {
		return fmt.Sprintf("expected RFC 4122 variant, got %s", u.Variant())
	}
	return ""
}
