package ratelimit

import (
	"fmt"
	"time"

	"github.com/caarlos0/env/v11"
)

// EndpointConfig overrides the default limit for one route.
type EndpointConfig struct {
	Path   string  // Route path; a trailing "/" matches every path below it
	Method string  // HTTP method
	RPS    float64 // Sustained requests per second
	Burst  int     // Bucket capacity
}

// Config holds rate limiting configuration.
type Config struct {
	Enabled         bool
	RPS             float64 // Default per-client rate
	Burst           int
	IdleTTL         time.Duration
	CleanupInterval time.Duration
	Whitelist       []string
	Blacklist       []string
	EndpointConfigs []EndpointConfig
}

// envConfig is the part of Config read from the environment.
type envConfig struct {
	Enabled         bool          `env:"RATE_LIMIT_ENABLED" envDefault:"true"`
	IdleTTL         time.Duration `env:"RATE_LIMIT_IDLE_TTL" envDefault:"1h"`
	CleanupInterval time.Duration `env:"RATE_LIMIT_CLEANUP_INTERVAL" envDefault:"5m"`
	Whitelist       []string      `env:"RATE_LIMIT_WHITELIST" envSeparator:","`
	Blacklist       []string      `env:"RATE_LIMIT_BLACKLIST" envSeparator:","`
}

// LoadConfig builds the limiter configuration with rps and burst as the
// default per-client rate and the remaining settings from the environment.
func LoadConfig(rps float64, burst int) (*Config, error) {
	var e envConfig
	if err := env.Parse(&e); err != nil {
		return nil, fmt.Errorf("parse rate limit env: %w", err)
	}
	return &Config{
		Enabled:         e.Enabled,
		RPS:             rps,
		Burst:           burst,
		IdleTTL:         e.IdleTTL,
		CleanupInterval: e.CleanupInterval,
		Whitelist:       e.Whitelist,
		Blacklist:       e.Blacklist,
		EndpointConfigs: DefaultEndpointConfigs(),
	}, nil
}

// DefaultEndpointConfigs returns the limits of the routes that call the
// generative service or touch credentials.
func DefaultEndpointConfigs() []EndpointConfig {
	return []EndpointConfig{
		// Generative calls
		{Path: "/recommendations", Method: "POST", RPS: 10.0 / 60, Burst: 2},
		{Path: "/chat", Method: "POST", RPS: 30.0 / 60, Burst: 5},

		// Credential checks
		{Path: "/auth/", Method: "POST", RPS: 1, Burst: 5},
	}
}
