package errors

import (
	"errors"
	"fmt"
)

// Standard sentinel errors for type checking
var (
	ErrInvalidRange       = errors.New("invalid range")
	ErrOutOfBounds        = errors.New("out of bounds")
	ErrInvalidPrecision   = errors.New("invalid precision")
	ErrNoPrimeFound       = errors.New("no prime found")
	ErrEntropyUnavailable = errors.New("secure entropy unavailable")
	ErrInvalidParameters  = errors.New("invalid parameters")
	ErrNotFound           = errors.New("not found")
)

// ValidationError indicates a request that was rejected before any entropy was consumed.
// Kind is one of the sentinels above and is what errors.Is matches against.
type ValidationError struct {
	Kind    error
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	if e.Field != "" {
		return fmt.Sprintf("invalid %s: %s", e.Field, e.Message)
	}
	return e.Message
}

func (e *ValidationError) Unwrap() error {
	if e.Kind == nil {
		return ErrInvalidParameters
	}
	return e.Kind
}

// NoPrimeFoundError is returned when rejection sampling exhausts its attempt budget.
// The condition is retryable by the user.
type NoPrimeFoundError struct {
	Min      int64
	Max      int64
	Attempts int
}

func (e *NoPrimeFoundError) Error() string {
	return fmt.Sprintf("no prime found in [%d, %d] after %d attempts, try again or widen the range", e.Min, e.Max, e.Attempts)
}

func (e *NoPrimeFoundError) Unwrap() error {
	return ErrNoPrimeFound
}

// EntropyError indicates the secure random source is missing or failed.
type EntropyError struct {
	Cause error
}

func (e *EntropyError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("secure random source unavailable: %v", e.Cause)
	}
	return "secure random source unavailable"
}

func (e *EntropyError) Unwrap() []error {
	if e.Cause != nil {
		return []error{ErrEntropyUnavailable, e.Cause}
	}
	return []error{ErrEntropyUnavailable}
}

// NotFoundError indicates an unknown family, variant, or reference entry.
type NotFoundError struct {
	Resource string // "family", "country", "vendor"
	ID       string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s not found: %s", e.Resource, e.ID)
}

func (e *NotFoundError) Unwrap() error {
	return ErrNotFound
}

// Helper constructors for common cases

func InvalidRange(min, max any) error {
	return &ValidationError{
		Kind:    ErrInvalidRange,
		Field:   "range",
		Message: fmt.Sprintf("min (%v) must be less than max (%v)", min, max),
	}
}

func OutOfBounds(field string, value, lo, hi any) error {
	return &ValidationError{
		Kind:    ErrOutOfBounds,
		Field:   field,
		Message: fmt.Sprintf("%v is outside [%v, %v]", value, lo, hi),
	}
}

func InvalidPrecision(p, max int) error {
	return &ValidationError{
		Kind:    ErrInvalidPrecision,
		Field:   "precision",
		Message: fmt.Sprintf("%d is outside [0, %d]", p, max),
	}
}

func InvalidParameter(field, message string) error {
	return &ValidationError{Kind: ErrInvalidParameters, Field: field, Message: message}
}

func NoPrimeFound(min, max int64, attempts int) error {
	return &NoPrimeFoundError{Min: min, Max: max, Attempts: attempts}
}

func EntropyUnavailable(cause error) error {
	return &EntropyError{Cause: cause}
}

func UnknownFamily(name string) error {
	return &NotFoundError{Resource: "family", ID: name}
}

func UnknownVariant(resource, name string) error {
	return &NotFoundError{Resource: resource, ID: name}
}

// IsInvalidRange checks if an error is an invalid-range error.
func IsInvalidRange(err error) bool {
	return errors.Is(err, ErrInvalidRange)
}

// IsOutOfBounds checks if an error is an out-of-bounds error.
func IsOutOfBounds(err error) bool {
	return errors.Is(err, ErrOutOfBounds)
}

// IsInvalidPrecision checks if an error is an invalid-precision error.
func IsInvalidPrecision(err error) bool {
	return errors.Is(err, ErrInvalidPrecision)
}

// IsNoPrimeFound checks if an error is an exhausted prime search.
func IsNoPrimeFound(err error) bool {
	return errors.Is(err, ErrNoPrimeFound)
}

// IsEntropyUnavailable checks if an error reports a missing secure source.
func IsEntropyUnavailable(err error) bool {
	return errors.Is(err, ErrEntropyUnavailable)
}

// IsInvalidParameters checks if an error is a generic parameter error.
func IsInvalidParameters(err error) bool {
	return errors.Is(err, ErrInvalidParameters)
}

// IsNotFound checks if an error is a not-found error.
func IsNotFound(err error) bool {
	return errors.Is(err, ErrNotFound)
}

// IsValidationError checks if an error was raised before generation started.
func IsValidationError(err error) bool {
	var v *ValidationError
	return errors.As(err, &v)
}

// Code returns a stable machine-readable code for err.
func Code(err error) string {
	switch {
	case err == nil:
		return ""
	case IsInvalidRange(err):
		return "INVALID_RANGE"
	case IsOutOfBounds(err):
		return "OUT_OF_BOUNDS"
	case IsInvalidPrecision(err):
		return "INVALID_PRECISION"
	case IsNoPrimeFound(err):
		return "NO_PRIME_FOUND"
	case IsEntropyUnavailable(err):
		return "ENTROPY_UNAVAILABLE"
	case IsInvalidParameters(err):
		return "INVALID_PARAMETERS"
	case IsNotFound(err):
		return "NOT_FOUND"
	default:
		return "INTERNAL_ERROR"
	}
}
