// Package valueobject contains value objects that represent concepts without identity.
// Value objects are immutable and compared by their attributes rather than identity.
// They encapsulate validation logic and ensure data integrity.
//
// Value Objects follow these principles:
//   - Immutability: Once created, they cannot be changed.
//   - Equality: Two value objects are equal if all their attributes are equal.
//   - Self-validation: They validate their own data upon creation.
package valueobject

import (
	"errors"
	"fmt"
	"strings"
)

// ErrUnknownCarrier is returned when a carrier identifier is outside the supported set.
var ErrUnknownCarrier = errors.New("unknown carrier")

// Carrier identifies a shipping provider. The set is closed: only the
// constants below are valid registry keys and quote literals.
type Carrier string

// Supported carriers.
const (
	CarrierEnvia    Carrier = "envia"    // Light packages, express service
	CarrierWelivery Carrier = "welivery" // Medium packages with moderate value
	CarrierCorreo   Carrier = "correo"   // Heavy or high-value packages
)

// AllCarriers returns every supported carrier in canonical order.
//
// Returns:
//   - []Carrier: envia, welivery, correo
func AllCarriers() []Carrier {
	return []Carrier{CarrierEnvia, CarrierWelivery, CarrierCorreo}
}

// ParseCarrier converts a raw identifier into a Carrier.
// Matching is case-insensitive and ignores surrounding whitespace.
//
// Parameters:
//   - raw: carrier identifier (e.g., "envia")
//
// Returns:
//   - Carrier: the parsed carrier
//   - error: ErrUnknownCarrier if raw is not a supported carrier
func ParseCarrier(raw string) (Carrier, error) {
	c := Carrier(strings.ToLower(strings.TrimSpace(raw)))
	if !c.IsValid() {
		return "", fmt.Errorf("%w: %q", ErrUnknownCarrier, raw)
	}
	return c, nil
}

// IsValid reports whether c belongs to the supported set.
func (c Carrier) IsValid() bool {
	switch c {
	case CarrierEnvia, CarrierWelivery, CarrierCorreo:
		return true
	}
	return false
}

// TrackingPrefix returns the prefix used for this carrier's tracking numbers.
func (c Carrier) TrackingPrefix() string {
	switch c {
	case CarrierEnvia:
		return "ENV"
	case CarrierWelivery:
		return "WLV"
	case CarrierCorreo:
		return "COR"
	}
	return ""
}

// String implements fmt.Stringer.
func (c Carrier) String() string {
	return string(c)
}
