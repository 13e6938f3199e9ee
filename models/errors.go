package models

import (
	"errors"
	"fmt"
)

// Sentinel errors for the scoring core. Handlers map these onto HTTP statuses;
// the core itself never substitutes a default score for any of them.
var (
	// ErrInvalidBirthChart marks missing or malformed birth data. Not
	// recoverable; no partial score is returned.
	ErrInvalidBirthChart = errors.New("invalid birth chart")

	// ErrEphemerisUnavailable marks a provider failure (e.g. date outside the
	// supported range). The adapter retries once against its cache before
	// surfacing this.
	ErrEphemerisUnavailable = errors.New("ephemeris unavailable")

	// ErrConfigInconsistent marks a weight vector that fails to sum to 1.0
	// after mode adjustment. A programming/config error, never user-facing.
	ErrConfigInconsistent = errors.New("inconsistent engine configuration")
)

// InvalidBirthChartError wraps ErrInvalidBirthChart with a caller-facing reason.
type InvalidBirthChartError struct {
	Reason string
}

func (e *InvalidBirthChartError) Error() string {
	return fmt.Sprintf("invalid birth chart: %s", e.Reason)
}

func (e *InvalidBirthChartError) Unwrap() error { return ErrInvalidBirthChart }

// EphemerisError wraps ErrEphemerisUnavailable with the failing instant.
type EphemerisError struct {
	JD     float64
	Reason string
}

func (e *EphemerisError) Error() string {
	return fmt.Sprintf("ephemeris unavailable for JD %.5f: %s", e.JD, e.Reason)
}

func (e *EphemerisError) Unwrap() error { return ErrEphemerisUnavailable }
