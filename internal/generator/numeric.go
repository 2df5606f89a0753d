// Package generator is the identifier-generation library. Every function is
// pure apart from the entropy it draws from the Source it is handed; nothing
// is cached between calls and parameters are validated before any entropy is
// consumed.
package generator

import (
	"math"

	"github.com/tools4freee/t4f/internal/entropy"
	t4ferr "github.com/tools4freee/t4f/internal/errors"
)

const (
	// MaxMagnitude bounds both ends of numeric ranges.
	MaxMagnitude = 1_000_000
	// MaxPrecision is the most decimal places a float request may ask for.
	MaxPrecision = 10
)

// RangedInteger returns a uniform integer in [min, max].
func RangedInteger(src entropy.Source, min, max int64) (int64, error) {
	if min >= max {
		return 0, t4ferr.InvalidRange(min, max)
	}
	if err := checkMagnitude(float64(min), float64(max)); err != nil {
		return 0, err
	}
	return entropy.Between(src, min, max)
}

// RangedFloat returns a uniform value in [min, max] rounded half away from
// zero to precision decimal places. The result never carries more than
// precision fractional digits.
func RangedFloat(src entropy.Source, min, max float64, precision int) (float64, error) {
	if math.IsNaN(min) || math.IsNaN(max) {
		return 0, t4ferr.InvalidParameter("range", "bounds must be numbers")
	}
	if min >= max {
		return 0, t4ferr.InvalidRange(min, max)
	}
	if err := checkMagnitude(min, max); err != nil {
		return 0, err
	}
	if precision < 0 || precision > MaxPrecision {
		return 0, t4ferr.InvalidPrecision(precision, MaxPrecision)
	}

	scale := math.Pow10(precision)
	// Smallest and largest values on the precision grid inside [min, max].
	lo := math.Ceil(min*scale-1e-9) / scale
	hi := math.Floor(max*scale+1e-9) / scale
	if lo > hi {
		return 0, &t4ferr.ValidationError{
			Kind:    t4ferr.ErrInvalidPrecision,
			Field:   "precision",
			Message: "no value with that many decimals lies inside the range",
		}
	}

	f, err := entropy.Float64(src)
	if err != nil {
		return 0, err
	}
	v := math.Round((f*(max-min)+min)*scale) / scale
	return math.Max(lo, math.Min(hi, v)), nil
}

func checkMagnitude(min, max float64) error {
	if min < -MaxMagnitude || min > MaxMagnitude {
		return t4ferr.OutOfBounds("min", min, -MaxMagnitude, MaxMagnitude)
	}
	if max < -MaxMagnitude || max > MaxMagnitude {
		return t4ferr.OutOfBounds("max", max, -MaxMagnitude, MaxMagnitude)
	}
	return nil
}
