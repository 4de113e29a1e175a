package valueobject

// TrackingStatus is a step in a shipment's lifecycle as reported by a carrier.
type TrackingStatus string

const (
	TrackingStatusCreated        TrackingStatus = "created"          // Label issued, not yet handed over
	TrackingStatusPicked         TrackingStatus = "picked"           // Collected by the carrier
	TrackingStatusInTransit      TrackingStatus = "in_transit"       // Moving through the carrier network
	TrackingStatusOutForDelivery TrackingStatus = "out_for_delivery" // On the last-mile vehicle
	TrackingStatusDelivered      TrackingStatus = "delivered"        // Handed to the recipient
)

// IsFinal reports whether no further events are expected.
func (s TrackingStatus) IsFinal() bool {
	return s == TrackingStatusDelivered
}
