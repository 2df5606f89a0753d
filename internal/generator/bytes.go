package generator

import (
	"encoding/base64"
	"encoding/hex"

	"github.com/tools4freee/t4f/internal/entropy"
	t4ferr "github.com/tools4freee/t4f/internal/errors"
)

const (
	MaxHexLength   = 1024
	MaxBase64Bytes = 512
)

// Hex returns exactly n lowercase hex characters drawn from a secure source.
func Hex(src entropy.Source, n int) (string, error) {
	if n < 1 || n > MaxHexLength {
		return "", t4ferr.OutOfBounds("length", n, 1, MaxHexLength)
	}
	buf, err := secureBytes(src, (n+1)/2)
	if err != nil {
		return "", err
	}
	return hex.EncodeToString(buf)[:n], nil
}

// Base64 returns n secure random bytes in standard padded Base64.
func Base64(src entropy.Source, n int) (string, error) {
	if n < 1 || n > MaxBase64Bytes {
		return "", t4ferr.OutOfBounds("length", n, 1, MaxBase64Bytes)
	}
	buf, err := secureBytes(src, n)
	if err != nil {
		return "", err
	}
	return base64.StdEncoding.EncodeToString(buf), nil
}

func secureBytes(src entropy.Source, n int) ([]byte, error) {
	if err := entropy.RequireSecure(src); err != nil {
		return nil, err
	}
	buf := make([]byte, n)
	if err := src.Read(buf); err != nil {
		return nil, err
	}
	return buf, nil
}
