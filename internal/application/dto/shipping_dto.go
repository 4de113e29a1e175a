package dto

import (
	"errors"
	"strings"
	"time"

	"github.com/hapkiduki/shipping-go/internal/domain/entity"
	"github.com/hapkiduki/shipping-go/internal/domain/valueobject"
	"github.com/samber/lo"
)

// ShipmentRequest is the body of quote, recommendation and shipment requests.
type ShipmentRequest struct {
	// Weight in kilograms.
	Weight float64 `json:"weight"`

	// Value is the declared monetary value.
	Value float64 `json:"value"`

	// Origin location identifier.
	Origin string `json:"origin"`

	// Destination location identifier.
	Destination string `json:"destination"`

	// Dimensions of the package in centimeters (optional).
	Dimensions *valueobject.Dimensions `json:"dimensions,omitempty"`

	// Carrier forces a carrier on shipment creation (optional).
	Carrier string `json:"carrier,omitempty"`
}

// ToDetails validates the request and converts it into ShipmentDetails.
//
// Returns:
//   - entity.ShipmentDetails: the validated details
//   - []ValidationError: field errors, nil when the request is valid
func (r ShipmentRequest) ToDetails() (entity.ShipmentDetails, []ValidationError) {
	details, err := entity.NewShipmentDetails(r.Weight, r.Value, r.Origin, r.Destination, r.Dimensions)
	if err == nil {
		return details, nil
	}

	var field string
	var value any
	switch {
	case errors.Is(err, entity.ErrInvalidWeight):
		field, value = "weight", r.Weight
	case errors.Is(err, entity.ErrInvalidValue):
		field, value = "value", r.Value
	case errors.Is(err, valueobject.ErrInvalidDimensions):
		field, value = "dimensions", r.Dimensions
	default:
		field = "body"
	}
	return entity.ShipmentDetails{}, []ValidationError{{Field: field, Message: err.Error(), Value: value}}
}

// CarrierOverride parses the optional carrier field.
//
// Returns:
//   - valueobject.Carrier: the carrier, or "" when none was given
//   - error: valueobject.ErrUnknownCarrier for an unsupported carrier
func (r ShipmentRequest) CarrierOverride() (valueobject.Carrier, error) {
	if strings.TrimSpace(r.Carrier) == "" {
		return "", nil
	}
	return valueobject.ParseCarrier(r.Carrier)
}

// QuoteDTO is one carrier offer.
type QuoteDTO struct {
	Carrier       string  `json:"carrier"`
	Price         float64 `json:"price"`
	EstimatedDays int     `json:"estimated_days"`
	Service       string  `json:"service"`
}

// QuotesResponse lists the offers for a shipment.
type QuotesResponse struct {
	// Quotes sorted ascending by price.
	Quotes []QuoteDTO `json:"quotes"`

	// FailedCarriers lists carriers that could not quote.
	FailedCarriers []string `json:"failed_carriers"`

	// Recommended is the carrier preferred by the selection policy.
	Recommended string `json:"recommended"`
}

// NewQuotesResponse builds a QuotesResponse.
func NewQuotesResponse(quotes []entity.CarrierQuote, failed []valueobject.Carrier, recommended valueobject.Carrier) QuotesResponse {
	return QuotesResponse{
		Quotes: lo.Map(quotes, func(q entity.CarrierQuote, _ int) QuoteDTO {
			return QuoteDTO{
				Carrier:       string(q.Carrier),
				Price:         q.Price,
				EstimatedDays: q.EstimatedDays,
				Service:       q.Service,
			}
		}),
		FailedCarriers: CarrierNames(failed),
		Recommended:    string(recommended),
	}
}

// RecommendationResponse names the carrier the selection policy prefers.
type RecommendationResponse struct {
	Carrier    string `json:"carrier"`
	Registered bool   `json:"registered"`
}

// ShipmentResponse is returned after a shipment is created.
type ShipmentResponse struct {
	Carrier        string `json:"carrier"`
	TrackingNumber string `json:"tracking_number"`
	LabelURL       string `json:"label_url"`
}

// NewShipmentResponse builds a ShipmentResponse.
func NewShipmentResponse(label entity.ShipmentLabel) ShipmentResponse {
	return ShipmentResponse{
		Carrier:        string(label.Carrier),
		TrackingNumber: label.TrackingNumber,
		LabelURL:       label.LabelURL,
	}
}

// TrackingEventDTO is one tracking step.
type TrackingEventDTO struct {
	Timestamp string `json:"timestamp"`
	Location  string `json:"location"`
	Status    string `json:"status"`
}

// TrackingResponse is the tracking payload of a shipment.
type TrackingResponse struct {
	Carrier        string             `json:"carrier"`
	TrackingNumber string             `json:"tracking_number"`
	Status         string             `json:"status"`
	Delivered      bool               `json:"delivered"`
	Events         []TrackingEventDTO `json:"events"`
}

// NewTrackingResponse builds a TrackingResponse, keeping the carrier's event order.
func NewTrackingResponse(info entity.TrackingInfo) TrackingResponse {
	return TrackingResponse{
		Carrier:        string(info.Carrier),
		TrackingNumber: info.TrackingNumber,
		Status:         string(info.Status),
		Delivered:      info.Delivered(),
		Events: lo.Map(info.Events, func(e entity.TrackingEvent, _ int) TrackingEventDTO {
			return TrackingEventDTO{
				Timestamp: e.Timestamp.UTC().Format(time.RFC3339),
				Location:  e.Location,
				Status:    string(e.Status),
			}
		}),
	}
}

// CarrierNames converts carriers to their identifiers. Never returns nil.
func CarrierNames(carriers []valueobject.Carrier) []string {
	return lo.Map(carriers, func(c valueobject.Carrier, _ int) string {
		return string(c)
	})
}
