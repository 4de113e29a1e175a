// Package carrier provides the carrier adapters (Envia, Welivery, Correo).
//
// The adapters are stubs: pricing is a deterministic per-carrier tariff,
// shipment creation issues a fresh tracking number and a placeholder label,
// and tracking returns the carrier's typical state. They still take an API
// key and honour context cancellation so a real integration can replace
// any of them without changing callers.
package carrier

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/hapkiduki/shipping-go/internal/application/port"
	"github.com/hapkiduki/shipping-go/internal/domain/entity"
	"github.com/hapkiduki/shipping-go/internal/domain/valueobject"
)

// DefaultLabelBaseURL is where stub labels point to when no base URL is configured.
const DefaultLabelBaseURL = "https://example.com/labels"

// Config holds the credentials and endpoints of one carrier.
type Config struct {
	// APIKey is the carrier credential (required).
	APIKey string

	// LabelBaseURL is the prefix of issued label URLs.
	LabelBaseURL string
}

// Tariff is a linear pricing formula:
//
//	price = Base + weight*PerKg + value*InsuranceRate
type Tariff struct {
	Base          float64
	PerKg         float64
	InsuranceRate float64
	EstimatedDays int
	Service       string
}

// Price computes the tariff for a shipment.
func (t Tariff) Price(details entity.ShipmentDetails) float64 {
	return t.Base + details.Weight*t.PerKg + details.Value*t.InsuranceRate
}

// trackingProfile is the state a stub carrier reports for any shipment.
type trackingProfile struct {
	status      valueobject.TrackingStatus
	location    string
	eventStatus valueobject.TrackingStatus
}

// Adapter is a stub carrier integration.
type Adapter struct {
	carrier      valueobject.Carrier
	name         string
	apiKey       string
	labelBaseURL string
	tariff       Tariff
	tracking     trackingProfile
	log          port.Logger
	now          func() time.Time
}

var _ port.CarrierAdapter = (*Adapter)(nil)

func newAdapter(
	carrier valueobject.Carrier,
	name string,
	tariff Tariff,
	tracking trackingProfile,
	cfg Config,
	log port.Logger,
) (*Adapter, error) {
	if strings.TrimSpace(cfg.APIKey) == "" {
		return nil, fmt.Errorf("%s: %w", carrier, entity.ErrMissingAPIKey)
	}

	base := strings.TrimRight(cfg.LabelBaseURL, "/")
	if base == "" {
		base = DefaultLabelBaseURL
	}

	return &Adapter{
		carrier:      carrier,
		name:         name,
		apiKey:       cfg.APIKey,
		labelBaseURL: base,
		tariff:       tariff,
		tracking:     tracking,
		log:          log.With("carrier", string(carrier)),
		now:          time.Now,
	}, nil
}

// Name implements port.CarrierAdapter.
func (a *Adapter) Name() string {
	return a.name
}

// Carrier returns the carrier identifier served by this adapter.
func (a *Adapter) Carrier() valueobject.Carrier {
	return a.carrier
}

// Tariff returns the pricing formula of this adapter.
func (a *Adapter) Tariff() Tariff {
	return a.tariff
}

// CalculateShipping implements port.CarrierAdapter.
func (a *Adapter) CalculateShipping(ctx context.Context, details entity.ShipmentDetails) (entity.CarrierQuote, error) {
	if err := a.checkContext(ctx, entity.OpQuote); err != nil {
		return entity.CarrierQuote{}, err
	}

	a.log.WithContext(ctx).Debug("Calculating shipping",
		"weight", details.Weight,
		"value", details.Value,
		"origin", details.Origin,
		"destination", details.Destination,
	)

	return entity.CarrierQuote{
		Carrier:       a.carrier,
		Price:         a.tariff.Price(details),
		EstimatedDays: a.tariff.EstimatedDays,
		Service:       a.tariff.Service,
	}, nil
}

// CreateShipment implements port.CarrierAdapter.
func (a *Adapter) CreateShipment(ctx context.Context, details entity.ShipmentDetails) (entity.ShipmentLabel, error) {
	if err := a.checkContext(ctx, entity.OpCreate); err != nil {
		return entity.ShipmentLabel{}, err
	}

	label := entity.ShipmentLabel{
		Carrier:        a.carrier,
		TrackingNumber: a.newTrackingNumber(),
		LabelURL:       fmt.Sprintf("%s/%s-label.pdf", a.labelBaseURL, a.carrier),
	}

	a.log.WithContext(ctx).Debug("Creating shipment",
		"tracking_number", label.TrackingNumber,
		"origin", details.Origin,
		"destination", details.Destination,
	)

	return label, nil
}

// GetTracking implements port.CarrierAdapter.
func (a *Adapter) GetTracking(ctx context.Context, trackingNumber string) (entity.TrackingInfo, error) {
	if err := a.checkContext(ctx, entity.OpTracking); err != nil {
		return entity.TrackingInfo{}, err
	}

	a.log.WithContext(ctx).Debug("Getting tracking", "tracking_number", trackingNumber)

	return entity.TrackingInfo{
		Carrier:        a.carrier,
		TrackingNumber: trackingNumber,
		Status:         a.tracking.status,
		Events: []entity.TrackingEvent{
			{
				Timestamp: a.now().UTC(),
				Location:  a.tracking.location,
				Status:    a.tracking.eventStatus,
			},
		},
	}, nil
}

// newTrackingNumber returns prefix + unix millis + 8 random hex chars, upper-cased.
func (a *Adapter) newTrackingNumber() string {
	random := strings.ReplaceAll(uuid.NewString(), "-", "")[:8]
	return strings.ToUpper(fmt.Sprintf("%s%d%s", a.carrier.TrackingPrefix(), a.now().UnixMilli(), random))
}

// checkContext turns a done context into a CarrierError.
func (a *Adapter) checkContext(ctx context.Context, op entity.CarrierOp) error {
	err := ctx.Err()
	if err == nil {
		return nil
	}
	kind := entity.KindUnavailable
	if errors.Is(err, context.DeadlineExceeded) {
		kind = entity.KindTimeout
	}
	return entity.NewCarrierError(a.carrier, op, kind, err)
}
