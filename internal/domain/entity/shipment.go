// Package entity contains the core business entities of the shipping domain.
package entity

import (
	"time"

	"github.com/hapkiduki/shipping-go/internal/domain/valueobject"
)

// ShipmentDetails describes a prospective shipment.
// It is passed by value and never retained across calls.
type ShipmentDetails struct {
	// Weight in kilograms (must be positive)
	Weight float64 `json:"weight"`

	// Value is the declared monetary value (must be non-negative)
	Value float64 `json:"value"`

	// Origin is an opaque location identifier
	Origin string `json:"origin"`

	// Destination is an opaque location identifier
	Destination string `json:"destination"`

	// Dimensions is optional; nil when unknown
	Dimensions *valueobject.Dimensions `json:"dimensions,omitempty"`
}

// NewShipmentDetails creates validated ShipmentDetails.
//
// Parameters:
//   - weight: package weight in kg (must be positive)
//   - value: declared value (must be non-negative)
//   - origin: origin location identifier
//   - destination: destination location identifier
//   - dimensions: optional package dimensions (nil if unknown)
//
// Returns:
//   - ShipmentDetails: the validated details
//   - error: validation error if input is invalid
func NewShipmentDetails(
	weight, value float64,
	origin, destination string,
	dimensions *valueobject.Dimensions,
) (ShipmentDetails, error) {
	d := ShipmentDetails{
		Weight:      weight,
		Value:       value,
		Origin:      origin,
		Destination: destination,
	}
	if dimensions != nil {
		dims := *dimensions
		d.Dimensions = &dims
	}
	if err := d.Validate(); err != nil {
		return ShipmentDetails{}, err
	}
	return d, nil
}

// Validate checks the shipment invariants.
func (d ShipmentDetails) Validate() error {
	// NaN fails both comparisons, so test for the valid range.
	if !(d.Weight > 0) {
		return ErrInvalidWeight
	}
	if !(d.Value >= 0) {
		return ErrInvalidValue
	}
	if d.Dimensions != nil {
		return d.Dimensions.Validate()
	}
	return nil
}

// CarrierQuote is a priced, time-estimated offer from one carrier.
type CarrierQuote struct {
	Carrier       valueobject.Carrier `json:"carrier"`
	Price         float64             `json:"price"`
	EstimatedDays int                 `json:"estimated_days"`
	Service       string              `json:"service"`
}

// ShipmentLabel is the result of creating a shipment with a carrier.
// The caller is responsible for storing it.
type ShipmentLabel struct {
	Carrier        valueobject.Carrier `json:"carrier"`
	TrackingNumber string              `json:"tracking_number"`
	LabelURL       string              `json:"label_url"`
}

// TrackingEvent is one carrier-reported step of a shipment.
type TrackingEvent struct {
	Timestamp time.Time                  `json:"timestamp"`
	Location  string                     `json:"location"`
	Status    valueobject.TrackingStatus `json:"status"`
}

// TrackingInfo is the tracking payload returned by a carrier.
// Events keep the order in which the carrier reported them.
type TrackingInfo struct {
	Carrier        valueobject.Carrier        `json:"carrier"`
	TrackingNumber string                     `json:"tracking_number"`
	Status         valueobject.TrackingStatus `json:"status"`
	Events         []TrackingEvent            `json:"events"`
}

// Delivered reports whether the shipment reached its final state.
func (t TrackingInfo) Delivered() bool {
	return t.Status.IsFinal()
}

// LatestEvent returns the last event reported by the carrier.
//
// Returns:
//   - TrackingEvent: the most recent event
//   - bool: false if the carrier reported no events
func (t TrackingInfo) LatestEvent() (TrackingEvent, bool) {
	if len(t.Events) == 0 {
		return TrackingEvent{}, false
	}
	return t.Events[len(t.Events)-1], true
}
