package handler

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/hapkiduki/shipping-go/internal/application/port"
	"github.com/hapkiduki/shipping-go/internal/interfaces/http/middleware"
)

// RouterOptions configures NewRouter.
type RouterOptions struct {
	Version            string
	Started            time.Time
	RequestTimeout     time.Duration
	MaxRequestSize     int64
	CORSAllowedOrigins []string
	RateLimit          middleware.RateLimiterConfig
}

// NewRouter builds the HTTP router with the full middleware stack.
//
// Parameters:
//   - svc: the shipping service
//   - log: the logger to use
//   - opts: router options
//
// Returns:
//   - http.Handler: the router
func NewRouter(svc ShippingService, log port.Logger, opts RouterOptions) http.Handler {
	if opts.Started.IsZero() {
		opts.Started = time.Now()
	}

	r := chi.NewRouter()

	// Order matters! Middleware is executed in the order added.
	r.Use(chimw.RealIP)
	r.Use(middleware.RequestID)
	r.Use(middleware.Logger(log))
	r.Use(middleware.Recoverer(log))
	if opts.RequestTimeout > 0 {
		r.Use(chimw.Timeout(opts.RequestTimeout))
	}
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   opts.CORSAllowedOrigins,
		AllowedMethods:   []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "X-Request-ID"},
		ExposedHeaders:   []string{"X-Request-ID", "X-API-Version"},
		AllowCredentials: false,
		MaxAge:           300,
	}))
	if opts.RateLimit.RequestsPerSecond > 0 {
		r.Use(middleware.RateLimiter(opts.RateLimit))
	}
	r.Use(middleware.SecureHeaders)
	r.Use(middleware.APIVersion(opts.Version))
	r.Use(middleware.ContentTypeJSON)
	r.Use(middleware.MaxBodySize(opts.MaxRequestSize))

	r.Get("/health", Health(opts.Version, opts.Started, svc))
	r.Mount("/api/v1", NewShippingHandler(svc, log).Routes())

	r.NotFound(NotFound)
	r.MethodNotAllowed(MethodNotAllowed)

	return r
}
