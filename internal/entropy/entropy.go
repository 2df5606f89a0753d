// Package entropy abstracts the random-byte providers the generators draw from.
//
// Two kinds of source exist: a secure one backed by crypto/rand, required for
// passwords, keys, tokens and UUIDs, and a pseudo-random one backed by
// math/rand/v2 for cosmetic data. A Provider holding both is resolved once at
// startup by Detect and injected into callers; generators never reach for a
// global source themselves.
package entropy

import (
	"crypto/rand"
	"encoding/binary"
	"errors"
	"io"

	t4ferr "github.com/tools4freee/t4f/internal/errors"
)

// Source produces random bytes.
type Source interface {
	// Read fills p completely or returns an error.
	Read(p []byte) error

	// Secure reports whether the bytes are suitable for security-sensitive output.
	Secure() bool
}

// Provider bundles the two sources a caller may choose between.
type Provider struct {
	Secure Source
	Pseudo Source
}

// Available reports whether the secure source passed its startup probe.
func (p Provider) Available() bool {
	return p.Secure != nil && p.Secure.Secure()
}

// Detect probes crypto/rand and returns a Provider. If the probe fails the
// secure slot holds an unavailable source, so every secure generator fails
// fast with EntropyUnavailable instead of silently degrading.
func Detect() Provider {
	return detect(rand.Reader)
}

func detect(r io.Reader) Provider {
	probe := make([]byte, 1)
	if _, err := io.ReadFull(r, probe); err != nil {
		return Provider{Secure: unavailableSource{cause: err}, Pseudo: Pseudo()}
	}
	return Provider{Secure: readerSource{r: r}, Pseudo: Pseudo()}
}

// Secure returns the crypto/rand backed source.
func Secure() Source {
	return readerSource{r: rand.Reader}
}

type readerSource struct {
	r io.Reader
}

func (s readerSource) Read(p []byte) error {
	if _, err := io.ReadFull(s.r, p); err != nil {
		return t4ferr.EntropyUnavailable(err)
	}
	return nil
}

func (s readerSource) Secure() bool { return true }

var errNoSecureSource = errors.New("no secure random source in this environment")

// Unavailable returns a source that fails every read. It stands in for a
// missing secure source.
func Unavailable() Source {
	return unavailableSource{cause: errNoSecureSource}
}

type unavailableSource struct {
	cause error
}

func (s unavailableSource) Read(p []byte) error {
	return t4ferr.EntropyUnavailable(s.cause)
}

func (s unavailableSource) Secure() bool { return false }

// RequireSecure fails with EntropyUnavailable unless src is a usable secure source.
func RequireSecure(src Source) error {
	if src == nil {
		return t4ferr.EntropyUnavailable(errNoSecureSource)
	}
	if !src.Secure() {
		if u, ok := src.(unavailableSource); ok {
			return t4ferr.EntropyUnavailable(u.cause)
		}
		return t4ferr.EntropyUnavailable(errors.New("source is not cryptographically secure"))
	}
	return nil
}

// Reader adapts a Source to io.Reader for libraries that take one.
func Reader(src Source) io.Reader {
	return sourceReader{src: src}
}

type sourceReader struct {
	src Source
}

func (r sourceReader) Read(p []byte) (int, error) {
	if err := r.src.Read(p); err != nil {
		return 0, err
	}
	return len(p), nil
}

// Uint64 draws 64 random bits.
func Uint64(src Source) (uint64, error) {
	var b [8]byte
	if err := src.Read(b[:]); err != nil {
		return 0, err
	}
	return binary.LittleEndian.Uint64(b[:]), nil
}

// IntN returns a uniform value in [0, n). n must be positive.
func IntN(src Source, n int64) (int64, error) {
	if n <= 0 {
		panic("entropy: IntN called with non-positive n")
	}
	un := uint64(n)
	// Values below threshold would bias the modulo; redraw them.
	threshold := -un % un
	for {
		v, err := Uint64(src)
		if err != nil {
			return 0, err
		}
		if v >= threshold {
			return int64(v % un), nil
		}
	}
}

// Between returns a uniform value in [min, max], inclusive.
func Between(src Source, min, max int64) (int64, error) {
	v, err := IntN(src, max-min+1)
	if err != nil {
		return 0, err
	}
	return min + v, nil
}

// Float64 returns a uniform value in [0, 1) with 53 bits of precision.
func Float64(src Source) (float64, error) {
	v, err := Uint64(src)
	if err != nil {
		return 0, err
	}
	return float64(v>>11) / (1 << 53), nil
}

// Pick returns a uniformly chosen element of items. items must not be empty.
func Pick[T any](src Source, items []T) (T, error) {
	var zero T
	if len(items) == 0 {
		panic("entropy: Pick called with no items")
	}
	i, err := IntN(src, int64(len(items)))
	if err != nil {
		return zero, err
	}
	return items[i], nil
}

// Shuffle permutes items in place (Fisher-Yates).
func Shuffle[T any](src Source, items []T) error {
	for i := len(items) - 1; i > 0; i-- {
		j, err := IntN(src, int64(i+1))
		if err != nil {
			return err
		}
		items[i], items[j] = items[j], items[i]
	}
	return nil
}
