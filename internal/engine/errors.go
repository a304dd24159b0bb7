package engine

import (
	"errors"
	"fmt"

	"github.com/Dan9191/mortgage-service/internal/profiles"
)

var (
	// ErrInvalidInput marks applications rejected before normalization
	ErrInvalidInput = errors.New("invalid input")
	// ErrUnresolvableRate marks applications without a positive annual rate
	ErrUnresolvableRate = errors.New("unresolvable rate")
	// ErrUnsupportedCountry marks applications for a country without profile
	ErrUnsupportedCountry = profiles.ErrUnsupportedCountry
	// ErrExternalFeedUnavailable is reported by rate feeds. Evaluate never
	// returns it; the result carries RatesFallback instead.
	ErrExternalFeedUnavailable = errors.New("external feed unavailable")
)

// InputError describes which field made an application unusable
type InputError struct {
	Field  string
	Reason string
	Err    error
}

func (e *InputError) Error() string {
	return fmt.Sprintf("%v: %s: %s", e.Err, e.Field, e.Reason)
}

func (e *InputError) Unwrap() error {
	return e.Err
}

func invalid(field, reason string) error {
	return &InputError{Field: field, Reason: reason, Err: ErrInvalidInput}
}

func unresolvable(field, reason string) error {
	return &InputError{Field: field, Reason: reason, Err: ErrUnresolvableRate}
}

// Error kinds exposed to API clients
const (
	KindInvalidInput       = "invalid_input"
	KindUnresolvableRate   = "unresolvable_rate"
	KindUnsupportedCountry = "unsupported_country"
	KindFeedUnavailable    = "external_feed_unavailable"
	KindInternal           = "internal"
)

// Kind maps an error to a stable identifier
func Kind(err error) string {
	switch {
	case errors.Is(err, ErrInvalidInput):
		return KindInvalidInput
	case errors.Is(err, ErrUnresolvableRate):
		return KindUnresolvableRate
	case errors.Is(err, ErrUnsupportedCountry):
		return KindUnsupportedCountry
	case errors.Is(err, ErrExternalFeedUnavailable):
		return KindFeedUnavailable
	default:
		return KindInternal
	}
}
