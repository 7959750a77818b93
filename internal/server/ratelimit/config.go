package ratelimit

import (
	"net/http"
	"time"

	"github.com/jonathan/job-assistant/internal/config"
)

// Default values used when a Config leaves them unset.
const (
	DefaultCleanupInterval = 5 * time.Minute
	DefaultIdleTimeout     = time.Hour
)

// EndpointConfig represents rate limiting configuration for a specific endpoint.
type EndpointConfig struct {
	Path   string        // Endpoint path pattern (supports prefix matching)
	Method string        // HTTP method (GET, POST, etc.)
	Limit  int           // Maximum requests per window
	Window time.Duration // Time window
	Burst  int           // Burst capacity (defaults to Limit if 0)
}

// Config holds rate limiting configuration.
type Config struct {
	Enabled         bool
	DefaultLimit    int
	DefaultWindow   time.Duration
	DefaultBurst    int
	CleanupInterval time.Duration
	IdleTimeout     time.Duration
	EndpointConfigs []EndpointConfig
}

// FromConfig builds a limiter Config from the application settings.
// The LLM-backed routes get their own hourly budget when LLMPerHour is positive.
func FromConfig(cfg config.RateLimitConfig) *Config {
	if !cfg.Enabled {
		return &Config{Enabled: false}
	}
	return &Config{
		Enabled:         true,
		DefaultLimit:    cfg.RequestsPerMinute,
		DefaultWindow:   time.Minute,
		DefaultBurst:    cfg.Burst,
		CleanupInterval: DefaultCleanupInterval,
		IdleTimeout:     DefaultIdleTimeout,
		EndpointConfigs: LLMEndpointConfigs(cfg.LLMPerHour),
	}
}

// LLMEndpointConfigs returns the hourly limits for routes that call a language model.
func LLMEndpointConfigs(perHour int) []EndpointConfig {
	if perHour <= 0 {
		return nil
	}
	burst := min(perHour, 5)
	return []EndpointConfig{
		{Path: "/api/resume/analyze", Method: http.MethodPost, Limit: perHour, Window: time.Hour, Burst: burst},
		{Path: "/api/generate/answer", Method: http.MethodPost, Limit: perHour, Window: time.Hour, Burst: burst},
	}
}
