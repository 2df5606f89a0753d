package generator

import (
	"github.com/tools4freee/t4f/internal/entropy"
	t4ferr "github.com/tools4freee/t4f/internal/errors"
)

const (
	// MaxPrime is the upper bound for prime requests.
	MaxPrime = 1_000_000
	// PrimeAttempts is the rejection-sampling budget.
	PrimeAttempts = 1000
)

// Prime draws uniform integers from [min, max] until one is prime, giving up
// with NoPrimeFound after PrimeAttempts draws. Ranges with no or very few
// primes can legitimately fail; callers should present that as retryable.
func Prime(src entropy.Source, min, max int64) (int64, error) {
	if min >= max {
		return 0, t4ferr.InvalidRange(min, max)
	}
	if min < 1 {
		return 0, t4ferr.OutOfBounds("min", min, 1, MaxPrime)
	}
	if max > MaxPrime {
		return 0, t4ferr.OutOfBounds("max", max, 1, MaxPrime)
	}

	for i := 0; i < PrimeAttempts; i++ {
		n, err := entropy.Between(src, min, max)
		if err != nil {
			return 0, err
		}
		if IsPrime(n) {
			return n, nil
		}
	}
	return 0, t4ferr.NoPrimeFound(min, max, PrimeAttempts)
}

// IsPrime tests n by trial division up to √n, skipping multiples of 2 and 3.
func IsPrime(n int64) bool {
	if n < 2 {
		return false
	}
	if n < 4 {
		return true
	}
	if n%2 == 0 || n%3 == 0 {
		return false
	}
	for i := int64(5); i*i <= n; i += 6 {
		if n%i == 0 || n%(i+2) == 0 {
			return false
		}
	}
	return true
}
