// Package main is the entry point of the shipping quotation and dispatch API.
//
// 12-Factor App compilance:
//   - III. Config: Configuration via environment variables
//   - VI. Processes: Stateless processes
//   - VII. Port Binding: Self-contained HTTP server
//   - IX. Disposability: Graceful shutdown
//   - XI. Logs: Structured logging to stdout
//
// Usage:
//
//	go run ./cmd/shipping-api [-config path/to/config.yaml]
//
// Environment Variables:
//
//	SHP_ENVIRONMENT         - Deployment environment (development, staging, production)
//	SHP_SERVER_PORT         - HTTP server port (default: 8080)
//	ENVIA_API_KEY           - Envia credentials
//	WELIVERY_API_KEY        - Welivery credentials
//	CORREO_API_KEY          - Correo credentials
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/hapkiduki/shipping-go/internal/application/service"
	"github.com/hapkiduki/shipping-go/internal/infrastructure/carrier"
	"github.com/hapkiduki/shipping-go/internal/infrastructure/config"
	"github.com/hapkiduki/shipping-go/internal/infrastructure/logging"
	"github.com/hapkiduki/shipping-go/internal/interfaces/http/handler"
	"github.com/hapkiduki/shipping-go/internal/interfaces/http/middleware"
	"github.com/hapkiduki/shipping-go/pkg/logger"
)

// version is set at build time via ldflags
var version = "dev"

func main() {
	started := time.Now()

	configFile := flag.String("config", "", "path to a YAML config file")
	flag.Parse()

	// Load configuration
	cfg := config.MustLoad(*configFile)

	// Initialize logger
	base := logger.MustNew(logger.Config{
		Level:       cfg.Log.Level,
		Format:      cfg.Log.Format,
		Development: cfg.IsDevelopment(),
	})
	defer func() { _ = base.Sync() }()
	log := logging.New(base.Named("shipping-api"))

	log.Info("Starting shipping API",
		"version", version,
		"environment", cfg.App.Environment,
	)

	// Create context that listens for shutdown signals
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	svc := service.NewShippingService(log, service.Options{
		QuoteTimeout:        cfg.Shipping.QuoteTimeout,
		MaxConcurrentQuotes: cfg.Shipping.MaxConcurrentQuotes,
	})
	registered, err := carrier.RegisterConfigured(svc, cfg.Carriers.Settings(), log)
	if err != nil {
		log.Fatal("Carrier registration failed", "error", err)
	}
	log.Info("Carriers registered", "carriers", registered)

	rateLimit := middleware.DefaultRateLimiterConfig()
	rateLimit.RequestsPerSecond = cfg.Server.RateLimitPerSecond
	rateLimit.Burst = cfg.Server.RateLimitBurst

	router := handler.NewRouter(svc, log, handler.RouterOptions{
		Version:            version,
		Started:            started,
		RequestTimeout:     cfg.Server.RequestTimeout,
		MaxRequestSize:     cfg.Server.MaxRequestSize,
		CORSAllowedOrigins: cfg.Server.CORSAllowedOrigins,
		RateLimit:          rateLimit,
	})

	addr := fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port)
	server := &http.Server{
		Addr:         addr,
		Handler:      router,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout,
	}

	// Start server in a goroutine
	go func() {
		log.Info("HTTP server starting", "address", addr)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal("HTTP server failed", "error", err)
		}
	}()

	// Wait for interrupt signal
	<-ctx.Done()

	log.Info("Shutdown signal received")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Error("Server forced to shutdown", "error", err)
	}
	log.Info("Server shutdown complete")
}
