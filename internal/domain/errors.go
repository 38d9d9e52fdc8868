package domain

import (
	"errors"
	"fmt"
)

var (
	// ErrNotFound indicates the requested entity was not found.
	ErrNotFound = errors.New("not found")
	// ErrUnauthorized indicates the upstream API rejected the bearer token.
	// It is an authentication failure, never a payment failure.
	ErrUnauthorized = errors.New("unauthorized")
	// ErrUnknownStatus indicates a status value outside the known set.
	ErrUnknownStatus = errors.New("unknown status")
	// ErrGatewayNotReady blocks online checkout until the payment gateway
	// configuration has loaded. Recoverable by waiting; never a fallback to COD.
	ErrGatewayNotReady = errors.New("payment gateway loading")
	// ErrCheckoutInFlight rejects a second submission while one is pending.
	ErrCheckoutInFlight = errors.New("checkout already in progress")
	// ErrVerificationFailed is terminal: the gateway may have captured funds
	// without a verified order. Directed to support, never auto-retried.
	ErrVerificationFailed = errors.New("payment verification failed")
	// ErrSessionSettled indicates a checkout session already reached an
	// outcome and cannot settle again.
	ErrSessionSettled = errors.New("checkout session already settled")
	// ErrCancellationNotAllowed rejects a cancellation request for an order
	// whose status is no longer eligible.
	ErrCancellationNotAllowed = errors.New("cancellation not allowed")
)

// ValidationError reports a client-side gate failure before any network
// call is made.
type ValidationError struct {
	Field string
	Msg   string
}

func (e *ValidationError) Error() string {
	if e.Field == "" {
		return e.Msg
	}
	return fmt.Sprintf("%s: %s", e.Field, e.Msg)
}

// NewValidationError builds a ValidationError for a named field.
func NewValidationError(field, msg string) error {
	return &ValidationError{Field: field, Msg: msg}
}

// Validate checks that every shipping field is present. The server remains
// authoritative; this gate only saves a round trip.
func (a ShippingAddress) Validate() error {
	fields := []struct {
		name  string
		value string
	}{
		{"name", a.Name},
		{"phone", a.Phone},
		{"street", a.Street},
		{"city", a.City},
		{"state", a.State},
		{"pincode", a.Pincode},
		{"country", a.Country},
	}
	for _, f := range fields {
		if f.value == "" {
			return NewValidationError(f.name, "required")
		}
	}
	return nil
}
