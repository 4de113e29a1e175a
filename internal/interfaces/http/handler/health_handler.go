package handler

import (
	"net/http"
	"time"

	"github.com/hapkiduki/shipping-go/internal/application/dto"
	"github.com/hapkiduki/shipping-go/internal/domain/valueobject"
	"github.com/hapkiduki/shipping-go/internal/interfaces/http/response"
)

// CarrierLister reports the registered carriers.
type CarrierLister interface {
	Carriers() []valueobject.Carrier
}

// Health returns the liveness handler.
//
// Parameters:
//   - version: the build version
//   - started: process start time, for uptime
//   - carriers: source of the registered carriers
func Health(version string, started time.Time, carriers CarrierLister) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		response.Success(w, r, http.StatusOK, dto.HealthResponse{
			Status:   "healthy",
			Version:  version,
			Uptime:   time.Since(started).Round(time.Second).String(),
			Carriers: dto.CarrierNames(carriers.Carriers()),
		})
	}
}

// NotFound handles unmatched routes.
func NotFound(w http.ResponseWriter, r *http.Request) {
	response.Error(w, r, http.StatusNotFound, response.CodeNotFound, "The requested resource was not found")
}

// MethodNotAllowed handles routes matched with the wrong method.
func MethodNotAllowed(w http.ResponseWriter, r *http.Request) {
	response.Error(w, r, http.StatusMethodNotAllowed, response.CodeMethodNotAllowed, "The requested method is not allowed for this resource")
}
