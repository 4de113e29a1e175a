// Package response writes the standard API envelope.
package response

import (
	"net/http"
	"time"

	"github.com/go-chi/render"
	"github.com/hapkiduki/shipping-go/internal/application/dto"
	"github.com/hapkiduki/shipping-go/pkg/logger"
)

// Error codes returned in the API envelope.
const (
	CodeValidation         = "VALIDATION_ERROR"
	CodeInvalidJSON        = "INVALID_JSON"
	CodeInvalidCarrier     = "INVALID_CARRIER"
	CodeCarrierNotFound    = "CARRIER_NOT_FOUND"
	CodeCarrierTimeout     = "CARRIER_TIMEOUT"
	CodeCarrierUnavailable = "CARRIER_UNAVAILABLE"
	CodeCarrierRejected    = "CARRIER_REJECTED"
	CodeNotFound           = "NOT_FOUND"
	CodeMethodNotAllowed   = "METHOD_NOT_ALLOWED"
	CodeUnsupportedMedia   = "UNSUPPORTED_MEDIA_TYPE"
	CodeRateLimited        = "RATE_LIMITED"
	CodeInternal           = "INTERNAL_ERROR"
)

// meta builds the response metadata from the request context and the
// headers already set by middleware.
func meta(w http.ResponseWriter, r *http.Request) *dto.ResponseMeta {
	m := &dto.ResponseMeta{
		Timestamp: time.Now().UTC().Format(time.RFC3339),
		Version:   w.Header().Get("X-API-Version"),
	}
	if id, ok := r.Context().Value(logger.RequestIDKey).(string); ok {
		m.RequestID = id
	}
	return m
}

// Success writes data wrapped in a successful envelope.
//
// Parameters:
//   - w: the response writer
//   - r: the request being answered
//   - status: HTTP status code
//   - data: the payload
func Success[T any](w http.ResponseWriter, r *http.Request, status int, data T) {
	body := dto.NewSuccessResponse(data)
	body.Meta = meta(w, r)
	render.Status(r, status)
	render.JSON(w, r, body)
}

// Error writes an error envelope.
//
// Parameters:
//   - w: the response writer
//   - r: the request being answered
//   - status: HTTP status code
//   - code: machine readable error code
//   - message: human readable message
func Error(w http.ResponseWriter, r *http.Request, status int, code, message string) {
	body := dto.NewErrorResponse[any](code, message)
	body.Meta = meta(w, r)
	render.Status(r, status)
	render.JSON(w, r, body)
}

// ValidationError writes a 400 envelope listing field errors.
func ValidationError(w http.ResponseWriter, r *http.Request, errs []dto.ValidationError) {
	body := dto.NewValidationErrorResponse[any](errs)
	body.Meta = meta(w, r)
	render.Status(r, http.StatusBadRequest)
	render.JSON(w, r, body)
}
