package carrier

import (
	"fmt"

	"github.com/hapkiduki/shipping-go/internal/application/port"
	"github.com/hapkiduki/shipping-go/internal/domain/valueobject"
)

// Tariffs of the supported carriers.
var (
	// EnviaTariff targets light packages; price depends on weight only.
	EnviaTariff = Tariff{Base: 80, PerKg: 15, EstimatedDays: 2, Service: "Envia Express"}

	// WeliveryTariff targets medium packages with moderate value.
	WeliveryTariff = Tariff{Base: 120, PerKg: 10, InsuranceRate: 0.02, EstimatedDays: 3, Service: "Welivery Standard"}

	// CorreoTariff targets heavy or high-value packages.
	CorreoTariff = Tariff{Base: 200, PerKg: 8, InsuranceRate: 0.03, EstimatedDays: 5, Service: "Correo Certificado"}
)

// NewEnvia creates the Envia adapter.
//
// Parameters:
//   - cfg: carrier credentials and label endpoint
//   - log: the logger to use
//
// Returns:
//   - *Adapter: the Envia adapter
//   - error: entity.ErrMissingAPIKey if cfg.APIKey is empty
func NewEnvia(cfg Config, log port.Logger) (*Adapter, error) {
	return newAdapter(valueobject.CarrierEnvia, "Envia", EnviaTariff, trackingProfile{
		status:      valueobject.TrackingStatusInTransit,
		location:    "Centro de Distribución",
		eventStatus: valueobject.TrackingStatusPicked,
	}, cfg, log)
}

// NewWelivery creates the Welivery adapter.
func NewWelivery(cfg Config, log port.Logger) (*Adapter, error) {
	return newAdapter(valueobject.CarrierWelivery, "Welivery", WeliveryTariff, trackingProfile{
		status:      valueobject.TrackingStatusInTransit,
		location:    "En ruta",
		eventStatus: valueobject.TrackingStatusInTransit,
	}, cfg, log)
}

// NewCorreo creates the Correo adapter.
func NewCorreo(cfg Config, log port.Logger) (*Adapter, error) {
	return newAdapter(valueobject.CarrierCorreo, "Correo", CorreoTariff, trackingProfile{
		status:      valueobject.TrackingStatusDelivered,
		location:    "Oficina Postal",
		eventStatus: valueobject.TrackingStatusDelivered,
	}, cfg, log)
}

// New returns the adapter for the given carrier.
//
// Parameters:
//   - c: the carrier to build
//   - cfg: carrier credentials and label endpoint
//   - log: the logger to use
//
// Returns:
//   - *Adapter: the adapter
//   - error: valueobject.ErrUnknownCarrier for an unsupported carrier
func New(c valueobject.Carrier, cfg Config, log port.Logger) (*Adapter, error) {
	switch c {
	case valueobject.CarrierEnvia:
		return NewEnvia(cfg, log)
	case valueobject.CarrierWelivery:
		return NewWelivery(cfg, log)
	case valueobject.CarrierCorreo:
		return NewCorreo(cfg, log)
	}
	return nil, fmt.Errorf("%w: %q", valueobject.ErrUnknownCarrier, string(c))
}

// Registrar is the part of the shipping service that accepts adapters.
type Registrar interface {
	RegisterAdapter(c valueobject.Carrier, adapter port.CarrierAdapter) error
}

// Setting enables a carrier and carries its configuration.
type Setting struct {
	Enabled bool
	Config  Config
}

// RegisterConfigured builds every enabled carrier and registers it, in the
// canonical envia, welivery, correo order.
//
// Parameters:
//   - r: the registry to populate
//   - settings: per-carrier settings
//   - log: the logger handed to each adapter
//
// Returns:
//   - []valueobject.Carrier: the carriers that were registered
//   - error: the first construction or registration error
func RegisterConfigured(r Registrar, settings map[valueobject.Carrier]Setting, log port.Logger) ([]valueobject.Carrier, error) {
	registered := make([]valueobject.Carrier, 0, len(settings))
	for _, c := range valueobject.AllCarriers() {
		s, ok := settings[c]
		if !ok || !s.Enabled {
			continue
		}

		adapter, err := New(c, s.Config, log)
		if err != nil {
			return registered, err
		}
		if err := r.RegisterAdapter(c, adapter); err != nil {
			return registered, fmt.Errorf("register %s: %w", c, err)
		}
		registered = append(registered, c)
	}

	if len(registered) == 0 {
		log.Warn("No carriers enabled; quotes will be empty")
	}
	return registered, nil
}
