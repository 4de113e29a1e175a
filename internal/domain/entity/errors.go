package entity

import (
	"errors"
	"fmt"

	"github.com/hapkiduki/shipping-go/internal/domain/valueobject"
)

// Shipping errors define the failure conditions surfaced by the shipping layer.
var (
	ErrInvalidWeight         = errors.New("shipment weight must be positive")
	ErrInvalidValue          = errors.New("shipment declared value cannot be negative")
	ErrInvalidTrackingNumber = errors.New("tracking number cannot be empty")

	// ErrCarrierNotFound is returned when an operation targets a carrier
	// that has no registered adapter.
	ErrCarrierNotFound = errors.New("carrier not found")

	// ErrNilAdapter is returned when registering a nil adapter.
	ErrNilAdapter = errors.New("carrier adapter cannot be nil")

	// ErrMissingAPIKey is returned when an adapter is built without credentials.
	ErrMissingAPIKey = errors.New("carrier api key is required")
)

// CarrierOp names the adapter operation that failed.
type CarrierOp string

const (
	OpQuote    CarrierOp = "quote"
	OpCreate   CarrierOp = "create_shipment"
	OpTracking CarrierOp = "tracking"
)

// CarrierErrorKind classifies adapter failures so callers can choose a
// retry or fallback policy.
type CarrierErrorKind string

const (
	// KindUnavailable covers network failures and carrier outages.
	KindUnavailable CarrierErrorKind = "unavailable"

	// KindTimeout means the carrier did not answer before the deadline.
	KindTimeout CarrierErrorKind = "timeout"

	// KindRejected means the carrier refused the request (invalid data,
	// unsupported route, unknown tracking number).
	KindRejected CarrierErrorKind = "rejected"
)

// CarrierError is the error returned by adapters when a carrier call fails.
type CarrierError struct {
	Carrier valueobject.Carrier
	Op      CarrierOp
	Kind    CarrierErrorKind
	Err     error
}

// NewCarrierError creates a CarrierError.
//
// Parameters:
//   - carrier: the failing carrier
//   - op: the operation being performed
//   - kind: failure classification
//   - err: the underlying cause (may be nil)
//
// Returns:
//   - *CarrierError: the error value
func NewCarrierError(carrier valueobject.Carrier, op CarrierOp, kind CarrierErrorKind, err error) *CarrierError {
	return &CarrierError{Carrier: carrier, Op: op, Kind: kind, Err: err}
}

// Error implements error.
func (e *CarrierError) Error() string {
	if e.Err == nil {
		return fmt.Sprintf("carrier %s %s: %s", e.Carrier, e.Op, e.Kind)
	}
	return fmt.Sprintf("carrier %s %s: %s: %v", e.Carrier, e.Op, e.Kind, e.Err)
}

// Unwrap returns the underlying cause.
func (e *CarrierError) Unwrap() error {
	return e.Err
}

// AsCarrierError extracts a CarrierError from err's chain.
//
// Parameters:
//   - err: error to inspect
//
// Returns:
//   - *CarrierError: the carrier error, or nil
//   - bool: true if one was found
func AsCarrierError(err error) (*CarrierError, bool) {
	var ce *CarrierError
	if errors.As(err, &ce) {
		return ce, true
	}
	return nil, false
}

// IsCarrierError checks if err was produced by a carrier adapter with the given kind.
func IsCarrierError(err error, kind CarrierErrorKind) bool {
	ce, ok := AsCarrierError(err)
	return ok && ce.Kind == kind
}

// IsNotFoundError checks if the error means the carrier is not registered.
func IsNotFoundError(err error) bool {
	return errors.Is(err, ErrCarrierNotFound)
}

// IsValidationError checks if the error comes from invalid caller input.
//
// Parameters:
//   - err: error to check
//
// Returns:
//   - bool: true if the error indicates invalid input
func IsValidationError(err error) bool {
	return errors.Is(err, ErrInvalidWeight) ||
		errors.Is(err, ErrInvalidValue) ||
		errors.Is(err, ErrInvalidTrackingNumber) ||
		errors.Is(err, valueobject.ErrInvalidDimensions) ||
		errors.Is(err, valueobject.ErrUnknownCarrier)
}
