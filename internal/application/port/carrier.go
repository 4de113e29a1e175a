package port

import (
	"context"

	"github.com/hapkiduki/shipping-go/internal/domain/entity"
)

// CarrierAdapter wraps one carrier's pricing, dispatch and tracking behind
// a uniform contract. Any value satisfying it can be registered with the
// shipping service.
//
// Implementations backed by a network call must honour ctx and report
// failures as *entity.CarrierError so callers can tell a timeout from a
// rejection.
type CarrierAdapter interface {
	// Name returns the human readable carrier name (e.g., "Envia").
	Name() string

	// CalculateShipping prices a shipment.
	//
	// Parameters:
	//   - ctx: context for cancellation and deadlines
	//   - details: the shipment to price
	//
	// Returns:
	//   - entity.CarrierQuote: the carrier's offer
	//   - error: any error encountered while quoting
	CalculateShipping(ctx context.Context, details entity.ShipmentDetails) (entity.CarrierQuote, error)

	// CreateShipment books a shipment and issues its label.
	//
	// Parameters:
	//   - ctx: context for cancellation and deadlines
	//   - details: the shipment to dispatch
	//
	// Returns:
	//   - entity.ShipmentLabel: tracking number and label URL
	//   - error: *entity.CarrierError on carrier failure
	CreateShipment(ctx context.Context, details entity.ShipmentDetails) (entity.ShipmentLabel, error)

	// GetTracking looks up the status and event history of a shipment.
	// Missing history is not an error; Events may be empty.
	//
	// Parameters:
	//   - ctx: context for cancellation and deadlines
	//   - trackingNumber: number issued by CreateShipment
	//
	// Returns:
	//   - entity.TrackingInfo: status and carrier-ordered events
	//   - error: *entity.CarrierError on carrier failure
	GetTracking(ctx context.Context, trackingNumber string) (entity.TrackingInfo, error)
}
