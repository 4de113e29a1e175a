// Package handler exposes the shipping service over HTTP.
package handler

import (
	"context"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/render"
	"github.com/hapkiduki/shipping-go/internal/application/dto"
	"github.com/hapkiduki/shipping-go/internal/application/port"
	"github.com/hapkiduki/shipping-go/internal/application/service"
	"github.com/hapkiduki/shipping-go/internal/domain/entity"
	"github.com/hapkiduki/shipping-go/internal/domain/valueobject"
	"github.com/hapkiduki/shipping-go/internal/interfaces/http/response"
	"github.com/samber/lo"
)

// ShippingService is the subset of the application service used by the handler.
type ShippingService interface {
	Carriers() []valueobject.Carrier
	RecommendCarrier(details entity.ShipmentDetails) valueobject.Carrier
	QuoteAll(ctx context.Context, details entity.ShipmentDetails) service.QuoteResult
	CreateShipment(ctx context.Context, details entity.ShipmentDetails, carrier valueobject.Carrier) (entity.ShipmentLabel, error)
	TrackShipment(ctx context.Context, carrier valueobject.Carrier, trackingNumber string) (entity.TrackingInfo, error)
}

// ShippingHandler serves the quoting, shipment and tracking endpoints.
type ShippingHandler struct {
	svc ShippingService
	log port.Logger
}

// NewShippingHandler creates a new ShippingHandler.
func NewShippingHandler(svc ShippingService, log port.Logger) *ShippingHandler {
	return &ShippingHandler{
		svc: svc,
		log: log.With("component", "shipping_handler"),
	}
}

// Routes returns the /api/v1 sub-router.
func (h *ShippingHandler) Routes() chi.Router {
	r := chi.NewRouter()

	r.Get("/carriers", h.ListCarriers)

	r.Route("/shipping", func(r chi.Router) {
		r.Post("/quotes", h.Quote)
		r.Post("/recommendation", h.Recommend)
	})

	r.Route("/shipments", func(r chi.Router) {
		r.Post("/", h.CreateShipment)
		r.Get("/{carrier}/{trackingNumber}/tracking", h.Track)
	})

	return r
}

// ListCarriers handles GET /carriers.
func (h *ShippingHandler) ListCarriers(w http.ResponseWriter, r *http.Request) {
	response.Success(w, r, http.StatusOK, dto.CarrierNames(h.svc.Carriers()))
}

// Quote handles POST /shipping/quotes.
func (h *ShippingHandler) Quote(w http.ResponseWriter, r *http.Request) {
	req, ok := h.decode(w, r)
	if !ok {
		return
	}
	details, verrs := req.ToDetails()
	if verrs != nil {
		response.ValidationError(w, r, verrs)
		return
	}

	result := h.svc.QuoteAll(r.Context(), details)
	response.Success(w, r, http.StatusOK,
		dto.NewQuotesResponse(result.Quotes, result.Failed, h.svc.RecommendCarrier(details)))
}

// Recommend handles POST /shipping/recommendation.
func (h *ShippingHandler) Recommend(w http.ResponseWriter, r *http.Request) {
	req, ok := h.decode(w, r)
	if !ok {
		return
	}
	details, verrs := req.ToDetails()
	if verrs != nil {
		response.ValidationError(w, r, verrs)
		return
	}

	recommended := h.svc.RecommendCarrier(details)
	response.Success(w, r, http.StatusOK, dto.RecommendationResponse{
		Carrier:    string(recommended),
		Registered: lo.Contains(h.svc.Carriers(), recommended),
	})
}

// CreateShipment handles POST /shipments.
func (h *ShippingHandler) CreateShipment(w http.ResponseWriter, r *http.Request) {
	req, ok := h.decode(w, r)
	if !ok {
		return
	}
	details, verrs := req.ToDetails()
	if verrs != nil {
		response.ValidationError(w, r, verrs)
		return
	}
	carrier, err := req.CarrierOverride()
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	label, err := h.svc.CreateShipment(r.Context(), details, carrier)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	response.Success(w, r, http.StatusCreated, dto.NewShipmentResponse(label))
}

// Track handles GET /shipments/{carrier}/{trackingNumber}/tracking.
func (h *ShippingHandler) Track(w http.ResponseWriter, r *http.Request) {
	carrier, err := valueobject.ParseCarrier(chi.URLParam(r, "carrier"))
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	info, err := h.svc.TrackShipment(r.Context(), carrier, chi.URLParam(r, "trackingNumber"))
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	response.Success(w, r, http.StatusOK, dto.NewTrackingResponse(info))
}

func (h *ShippingHandler) decode(w http.ResponseWriter, r *http.Request) (dto.ShipmentRequest, bool) {
	var req dto.ShipmentRequest
	if err := render.DecodeJSON(r.Body, &req); err != nil {
		response.Error(w, r, http.StatusBadRequest, response.CodeInvalidJSON, "Request body is not valid JSON")
		return req, false
	}
	return req, true
}

// writeError maps domain and carrier errors to HTTP responses.
func (h *ShippingHandler) writeError(w http.ResponseWriter, r *http.Request, err error) {
	status, code := http.StatusInternalServerError, response.CodeInternal
	message := "An unexpected error occurred"

	switch {
	case errors.Is(err, valueobject.ErrUnknownCarrier):
		status, code, message = http.StatusBadRequest, response.CodeInvalidCarrier, err.Error()
	case entity.IsValidationError(err):
		status, code, message = http.StatusBadRequest, response.CodeValidation, err.Error()
	case entity.IsNotFoundError(err):
		status, code, message = http.StatusNotFound, response.CodeCarrierNotFound, err.Error()
	case entity.IsCarrierError(err, entity.KindTimeout):
		status, code, message = http.StatusGatewayTimeout, response.CodeCarrierTimeout, err.Error()
	case entity.IsCarrierError(err, entity.KindUnavailable):
		status, code, message = http.StatusServiceUnavailable, response.CodeCarrierUnavailable, err.Error()
	case entity.IsCarrierError(err, entity.KindRejected):
		status, code, message = http.StatusUnprocessableEntity, response.CodeCarrierRejected, err.Error()
	}

	l := h.log.WithContext(r.Context())
	if status >= http.StatusInternalServerError {
		l.Error("Request failed", "status", status, "error", err)
	} else {
		l.Warn("Request rejected", "status", status, "error", err)
	}
	response.Error(w, r, status, code, message)
}
