package domain

import (
	"errors"
	"fmt"
)

// ErrNotFound is returned by repo and service functions when the requested
// resource does not exist in the database.
// Handlers should map this to HTTP 404.
var ErrNotFound = errors.New("not found")

// ErrValidation is returned by service functions when input fails business
// rule validation (e.g. missing required field, cycle hours out of range).
// Handlers should map this to HTTP 422 Unprocessable Entity.
var ErrValidation = errors.New("validation error")

// ErrConflict is returned when an operation would violate a state-machine
// rule, such as certifying an already-certified log sheet.
// Handlers should map this to HTTP 409 Conflict.
var ErrConflict = errors.New("conflict")

// ErrUpstream is returned when the external geocoding or routing provider
// fails or is misconfigured. The provider's message is preserved in the
// wrapping error. Handlers should map this to HTTP 502 Bad Gateway.
// Upstream failures are never retried silently.
var ErrUpstream = errors.New("upstream service error")

// FieldErrors maps request field names to human-readable messages so a
// caller sees every bad field at once. It unwraps to ErrValidation.
type FieldErrors map[string]string

func (fe FieldErrors) Error() string {
	return fmt.Sprintf("validation failed on %d field(s)", len(fe))
}

func (fe FieldErrors) Unwrap() error { return ErrValidation }

// InfeasibleTripError reports that a requested trip cannot be driven with
// the hours remaining in the driver's 70-hour/8-day cycle. It carries the
// shortfall so handlers can render the exact numbers instead of a generic
// failure message.
type InfeasibleTripError struct {
	AvailableHours float64
	RequiredHours  float64
}

func (e *InfeasibleTripError) Error() string {
	return fmt.Sprintf("trip exceeds available cycle hours: requires %.2fh, %.2fh available",
		e.RequiredHours, e.AvailableHours)
}
