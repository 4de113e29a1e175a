// Package service contains the application services that orchestrate
// domain policies and carrier adapters.
package service

import (
	"cmp"
	"context"
	"fmt"
	"slices"
	"strings"
	"sync"
	"time"

	"github.com/hapkiduki/shipping-go/internal/application/port"
	"github.com/hapkiduki/shipping-go/internal/domain/entity"
	"github.com/hapkiduki/shipping-go/internal/domain/policy"
	"github.com/hapkiduki/shipping-go/internal/domain/valueobject"
	"go.uber.org/multierr"
	"golang.org/x/sync/errgroup"
)

// Options tunes the shipping service.
type Options struct {
	// QuoteTimeout bounds each carrier's quote call. Zero disables the bound.
	QuoteTimeout time.Duration

	// MaxConcurrentQuotes caps in-flight quote calls. Zero or less means no cap.
	MaxConcurrentQuotes int
}

// DefaultOptions returns the default service options.
func DefaultOptions() Options {
	return Options{
		QuoteTimeout:        5 * time.Second,
		MaxConcurrentQuotes: 0,
	}
}

// QuoteResult is the outcome of quoting every registered carrier.
type QuoteResult struct {
	// Quotes sorted ascending by price; equal prices keep registration order.
	Quotes []entity.CarrierQuote

	// Failed lists the carriers whose quote was omitted, in registration order.
	Failed []valueobject.Carrier

	// Err combines the failures of the omitted carriers; nil when none failed.
	Err error
}

// ShippingService owns the carrier registry and exposes quoting, shipment
// creation and tracking over it.
//
// The registry may be modified at runtime; every operation works on a
// snapshot taken when it starts.
type ShippingService struct {
	mu       sync.RWMutex
	adapters map[valueobject.Carrier]port.CarrierAdapter
	order    []valueobject.Carrier

	selectCarrier func(weight, value float64) valueobject.Carrier
	opts          Options
	log           port.Logger
}

// NewShippingService creates an empty shipping service.
//
// Parameters:
//   - log: the logger to use
//   - opts: service options
//
// Returns:
//   - *ShippingService: the service, with no carriers registered
func NewShippingService(log port.Logger, opts Options) *ShippingService {
	return &ShippingService{
		adapters:      make(map[valueobject.Carrier]port.CarrierAdapter),
		selectCarrier: policy.SelectCarrier,
		opts:          opts,
		log:           log.With("component", "shipping_service"),
	}
}

// RegisterAdapter registers adapter for carrier, replacing any previous one.
// A replaced carrier keeps its original registration position.
//
// Parameters:
//   - carrier: the carrier served by adapter
//   - adapter: the carrier integration
//
// Returns:
//   - error: valueobject.ErrUnknownCarrier or entity.ErrNilAdapter
func (s *ShippingService) RegisterAdapter(carrier valueobject.Carrier, adapter port.CarrierAdapter) error {
	if !carrier.IsValid() {
		return fmt.Errorf("%w: %q", valueobject.ErrUnknownCarrier, string(carrier))
	}
	if adapter == nil {
		return entity.ErrNilAdapter
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.adapters[carrier]; !exists {
		s.order = append(s.order, carrier)
	}
	s.adapters[carrier] = adapter

	s.log.Info("Carrier adapter registered", "carrier", string(carrier), "adapter", adapter.Name())
	return nil
}

// Carriers returns the registered carriers in registration order.
func (s *ShippingService) Carriers() []valueobject.Carrier {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return slices.Clone(s.order)
}

// RecommendCarrier returns the carrier the selection policy prefers for details.
// The carrier is not required to be registered.
func (s *ShippingService) RecommendCarrier(details entity.ShipmentDetails) valueobject.Carrier {
	return s.selectCarrier(details.Weight, details.Value)
}

type registration struct {
	carrier valueobject.Carrier
	adapter port.CarrierAdapter
}

func (s *ShippingService) snapshot() []registration {
	s.mu.RLock()
	defer s.mu.RUnlock()

	regs := make([]registration, 0, len(s.order))
	for _, c := range s.order {
		regs = append(regs, registration{carrier: c, adapter: s.adapters[c]})
	}
	return regs
}

func (s *ShippingService) lookup(carrier valueobject.Carrier) (port.CarrierAdapter, error) {
	s.mu.RLock()
	adapter, ok := s.adapters[carrier]
	s.mu.RUnlock()

	if !ok {
		return nil, fmt.Errorf("%w: %s", entity.ErrCarrierNotFound, carrier)
	}
	return adapter, nil
}

// GetQuotes asks every registered carrier for a quote and returns the
// successful ones sorted by price. It never fails: a carrier that errors,
// panics or exceeds the quote timeout is logged and left out.
//
// Parameters:
//   - ctx: context for cancellation and deadlines
//   - details: the shipment to price
//
// Returns:
//   - []entity.CarrierQuote: quotes sorted ascending by price (possibly empty)
func (s *ShippingService) GetQuotes(ctx context.Context, details entity.ShipmentDetails) []entity.CarrierQuote {
	return s.QuoteAll(ctx, details).Quotes
}

// QuoteAll behaves like GetQuotes and also reports which carriers failed.
//
// Parameters:
//   - ctx: context for cancellation and deadlines
//   - details: the shipment to price
//
// Returns:
//   - QuoteResult: sorted quotes plus the omitted carriers
func (s *ShippingService) QuoteAll(ctx context.Context, details entity.ShipmentDetails) QuoteResult {
	regs := s.snapshot()
	log := s.log.WithContext(ctx)

	quotes := make([]entity.CarrierQuote, len(regs))
	errs := make([]error, len(regs))

	var g errgroup.Group
	if s.opts.MaxConcurrentQuotes > 0 {
		g.SetLimit(s.opts.MaxConcurrentQuotes)
	}

	for i, reg := range regs {
		i, reg := i, reg
		g.Go(func() error {
			quotes[i], errs[i] = s.quote(ctx, reg, details)
			return nil
		})
	}
	_ = g.Wait()

	result := QuoteResult{Quotes: make([]entity.CarrierQuote, 0, len(regs))}
	for i, reg := range regs {
		if errs[i] != nil {
			log.Error("Error getting quote", "carrier", string(reg.carrier), "adapter", reg.adapter.Name(), "error", errs[i])
			result.Failed = append(result.Failed, reg.carrier)
			result.Err = multierr.Append(result.Err, errs[i])
			continue
		}
		result.Quotes = append(result.Quotes, quotes[i])
	}

	slices.SortStableFunc(result.Quotes, func(a, b entity.CarrierQuote) int {
		return cmp.Compare(a.Price, b.Price)
	})

	log.Debug("Quotes collected", "quotes", len(result.Quotes), "failed", len(result.Failed))
	return result
}

type quoteOutcome struct {
	quote entity.CarrierQuote
	err   error
}

// quote calls one adapter under the quote timeout. The call is abandoned,
// not awaited, once the deadline passes so a carrier that ignores its
// context cannot stall the fan-out.
func (s *ShippingService) quote(ctx context.Context, reg registration, details entity.ShipmentDetails) (entity.CarrierQuote, error) {
	if s.opts.QuoteTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.opts.QuoteTimeout)
		defer cancel()
	}

	done := make(chan quoteOutcome, 1)
	go func() {
		defer func() {
			if r := recover(); r != nil {
				done <- quoteOutcome{err: entity.NewCarrierError(reg.carrier, entity.OpQuote, entity.KindUnavailable, fmt.Errorf("adapter panic: %v", r))}
			}
		}()
		q, err := reg.adapter.CalculateShipping(ctx, details)
		done <- quoteOutcome{quote: q, err: err}
	}()

	select {
	case out := <-done:
		return out.quote, out.err
	case <-ctx.Done():
		return entity.CarrierQuote{}, entity.NewCarrierError(reg.carrier, entity.OpQuote, entity.KindTimeout, ctx.Err())
	}
}

// CreateShipment books details with a carrier. When carrier is empty the
// selection policy picks one from the package weight and value.
// Adapter errors are returned unchanged.
//
// Parameters:
//   - ctx: context for cancellation and deadlines
//   - details: the shipment to dispatch
//   - carrier: explicit carrier, or "" to let the policy choose
//
// Returns:
//   - entity.ShipmentLabel: the adapter's result
//   - error: validation error, entity.ErrCarrierNotFound, or the adapter's error
func (s *ShippingService) CreateShipment(ctx context.Context, details entity.ShipmentDetails, carrier valueobject.Carrier) (entity.ShipmentLabel, error) {
	if err := details.Validate(); err != nil {
		return entity.ShipmentLabel{}, err
	}

	if carrier == "" {
		carrier = s.selectCarrier(details.Weight, details.Value)
	}

	adapter, err := s.lookup(carrier)
	if err != nil {
		return entity.ShipmentLabel{}, err
	}

	label, err := adapter.CreateShipment(ctx, details)
	if err != nil {
		s.log.WithContext(ctx).Error("Shipment creation failed", "carrier", string(carrier), "error", err)
		return entity.ShipmentLabel{}, err
	}

	s.log.WithContext(ctx).Info("Shipment created",
		"carrier", string(carrier),
		"tracking_number", label.TrackingNumber,
	)
	return label, nil
}

// TrackShipment returns the carrier's tracking payload for trackingNumber.
// Adapter errors are returned unchanged.
//
// Parameters:
//   - ctx: context for cancellation and deadlines
//   - carrier: the carrier that issued the tracking number
//   - trackingNumber: the number to look up
//
// Returns:
//   - entity.TrackingInfo: the adapter's result
//   - error: entity.ErrCarrierNotFound, entity.ErrInvalidTrackingNumber, or the adapter's error
func (s *ShippingService) TrackShipment(ctx context.Context, carrier valueobject.Carrier, trackingNumber string) (entity.TrackingInfo, error) {
	adapter, err := s.lookup(carrier)
	if err != nil {
		return entity.TrackingInfo{}, err
	}

	trackingNumber = strings.TrimSpace(trackingNumber)
	if trackingNumber == "" {
		return entity.TrackingInfo{}, entity.ErrInvalidTrackingNumber
	}

	return adapter.GetTracking(ctx, trackingNumber)
}
