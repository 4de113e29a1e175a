// Package config provides configuration management for the application.
// It follows the 12-Factor App methodology by loading configuration
// from environment variables and supporting external configuration files.
//
// 12-Factor App Compliance:
//   - III. Config: Store config in the environment
//   - Configuration is loaded from environment variables
//   - Carrier API keys only via environment
//   - No config files checked into version control
package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/hapkiduki/shipping-go/internal/domain/valueobject"
	"github.com/hapkiduki/shipping-go/internal/infrastructure/carrier"
	"github.com/spf13/viper"
)

// EnvPrefix is the prefix of every environment variable read by Load.
const EnvPrefix = "SHP"

// Config holds all application configuration.
type Config struct {
	// App contains application-level configuration
	App AppConfig `mapstructure:"app"`

	// Server contains HTTP server configuration
	Server ServerConfig `mapstructure:"server"`

	// Log contains logger configuration
	Log LogConfig `mapstructure:"log"`

	// Shipping tunes the quoting fan-out
	Shipping ShippingConfig `mapstructure:"shipping"`

	// Carriers configures each carrier adapter
	Carriers CarriersConfig `mapstructure:"carriers"`
}

// AppConfig contains application-level configuration.
type AppConfig struct {
	Name        string `mapstructure:"name"`
	Environment string `mapstructure:"environment"`
	Version     string `mapstructure:"version"`
}

// ServerConfig contains HTTP server configuration.
type ServerConfig struct {
	// Host is the server bind address
	Host string `mapstructure:"host"`

	// Port is the server port
	Port int `mapstructure:"port"`

	// ReadTimeout is the maximum duration for reading the entire request, including the body
	ReadTimeout time.Duration `mapstructure:"read_timeout"`

	// WriteTimeout is the maximum duration before timing out writes of the response
	WriteTimeout time.Duration `mapstructure:"write_timeout"`

	// IdleTimeout is the maximum amount of time to wait for the next request when keep-alives are enabled
	IdleTimeout time.Duration `mapstructure:"idle_timeout"`

	// RequestTimeout bounds the handling of a single request
	RequestTimeout time.Duration `mapstructure:"request_timeout"`

	// ShutdownTimeout is the maximum duration for graceful server shutdown
	ShutdownTimeout time.Duration `mapstructure:"shutdown_timeout"`

	// MaxRequestSize is the maximum allowed request body size
	MaxRequestSize int64 `mapstructure:"max_request_size"`

	// CORSAllowedOrigins is a list of allowed origins for CORS
	CORSAllowedOrigins []string `mapstructure:"cors_allowed_origins"`

	// RateLimitPerSecond is the sustained request rate allowed per client
	RateLimitPerSecond float64 `mapstructure:"rate_limit_per_second"`

	// RateLimitBurst is the token bucket size per client
	RateLimitBurst int `mapstructure:"rate_limit_burst"`
}

// LogConfig contains logger configuration.
type LogConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
}

// ShippingConfig tunes the shipping service.
type ShippingConfig struct {
	// QuoteTimeout bounds each carrier's quote call
	QuoteTimeout time.Duration `mapstructure:"quote_timeout"`

	// MaxConcurrentQuotes caps in-flight quote calls (0 = unlimited)
	MaxConcurrentQuotes int `mapstructure:"max_concurrent_quotes"`
}

// CarrierConfig configures one carrier adapter.
type CarrierConfig struct {
	Enabled      bool   `mapstructure:"enabled"`
	APIKey       string `mapstructure:"api_key"`
	LabelBaseURL string `mapstructure:"label_base_url"`
}

// CarriersConfig configures every supported carrier.
type CarriersConfig struct {
	Envia    CarrierConfig `mapstructure:"envia"`
	Welivery CarrierConfig `mapstructure:"welivery"`
	Correo   CarrierConfig `mapstructure:"correo"`
}

// Settings converts the carrier configuration into adapter settings.
func (c CarriersConfig) Settings() map[valueobject.Carrier]carrier.Setting {
	toSetting := func(cc CarrierConfig) carrier.Setting {
		return carrier.Setting{
			Enabled: cc.Enabled,
			Config:  carrier.Config{APIKey: cc.APIKey, LabelBaseURL: cc.LabelBaseURL},
		}
	}
	return map[valueobject.Carrier]carrier.Setting{
		valueobject.CarrierEnvia:    toSetting(c.Envia),
		valueobject.CarrierWelivery: toSetting(c.Welivery),
		valueobject.CarrierCorreo:   toSetting(c.Correo),
	}
}

// Load loads the configuration from environment variables and config files.
// It follows this precedence (highest to lowest):
//  1. Environment variables
//  2. Config file (if provided)
//  3. Default values
//
// Parameters:
//   - configFile: explicit config file path, or "" to search the default locations
//
// Returns:
//   - *Config: The loaded configuration
//   - error: Any error encountered during loading or validation
func Load(configFile string) (*Config, error) {
	v := viper.New()

	setDefaults(v)

	if configFile != "" {
		v.SetConfigFile(configFile)
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		v.AddConfigPath("./configs")
		v.AddConfigPath("/etc/shipping-go")
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if configFile != "" || !errors.As(err, &notFound) {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
		// Config file not found is OK, we'll use env vars and defaults
	}

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	bindEnvVars(v)

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// setDefaults sets default configuration values.
func setDefaults(v *viper.Viper) {
	v.SetDefault("app.name", "shipping-go")
	v.SetDefault("app.environment", "development")
	v.SetDefault("app.version", "1.0.0")

	v.SetDefault("server.host", "0.0.0.0")
	v.SetDefault("server.port", 8080)
	v.SetDefault("server.read_timeout", 15*time.Second)
	v.SetDefault("server.write_timeout", 15*time.Second)
	v.SetDefault("server.idle_timeout", 60*time.Second)
	v.SetDefault("server.request_timeout", 30*time.Second)
	v.SetDefault("server.shutdown_timeout", 30*time.Second)
	v.SetDefault("server.max_request_size", 1<<20) // 1MB
	v.SetDefault("server.cors_allowed_origins", []string{"*"})
	v.SetDefault("server.rate_limit_per_second", 10.0)
	v.SetDefault("server.rate_limit_burst", 20)

	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "json")

	v.SetDefault("shipping.quote_timeout", 5*time.Second)
	v.SetDefault("shipping.max_concurrent_quotes", 0)

	for _, c := range valueobject.AllCarriers() {
		v.SetDefault("carriers."+string(c)+".enabled", true)
		v.SetDefault("carriers."+string(c)+".api_key", "")
		v.SetDefault("carriers."+string(c)+".label_base_url", carrier.DefaultLabelBaseURL)
	}
}

// bindEnvVars binds well-known environment variables to configuration keys.
// Carrier keys are accepted both as SHP_CARRIERS_<CARRIER>_API_KEY and as
// the shorter <CARRIER>_API_KEY.
func bindEnvVars(v *viper.Viper) {
	_ = v.BindEnv("app.environment", EnvPrefix+"_ENVIRONMENT")
	_ = v.BindEnv("server.port", EnvPrefix+"_SERVER_PORT", "PORT")

	for _, c := range valueobject.AllCarriers() {
		upper := strings.ToUpper(string(c))
		_ = v.BindEnv("carriers."+string(c)+".api_key",
			EnvPrefix+"_CARRIERS_"+upper+"_API_KEY",
			upper+"_API_KEY",
		)
	}
}

// Validate checks the configuration for values the application cannot run with.
func (c *Config) Validate() error {
	if c.Server.Port <= 0 || c.Server.Port > 65535 {
		return fmt.Errorf("invalid server port: %d", c.Server.Port)
	}
	if c.Shipping.QuoteTimeout < 0 {
		return fmt.Errorf("invalid shipping quote timeout: %s", c.Shipping.QuoteTimeout)
	}
	if c.Shipping.MaxConcurrentQuotes < 0 {
		return fmt.Errorf("invalid max concurrent quotes: %d", c.Shipping.MaxConcurrentQuotes)
	}
	return nil
}

// IsDevelopment reports whether the app runs in the development environment.
func (c *Config) IsDevelopment() bool {
	return c.App.Environment == "development"
}

// MustLoad loads the configuration and panics on error.
// Use this in application entry points where configuration is required.
func MustLoad(configFile string) *Config {
	cfg, err := Load(configFile)
	if err != nil {
		panic(fmt.Sprintf("failed to load config: %v", err))
	}
	return cfg
}
