package config

import (
	"fmt"

	"github.com/caarlos0/env/v11"
)

// JWTConfig holds configuration for bearer token signing.
// Tokens carry no expiry: sessions last until the user signs out.
type JWTConfig struct {
	Secret string `env:"JWT_SECRET,required,notEmpty"`
}

// NewJWTConfig creates a new JWT configuration from the JWT_SECRET
// environment variable.
func NewJWTConfig() (*JWTConfig, error) {
	var cfg JWTConfig
	if err := env.Parse(&cfg); err != nil {
		return nil, fmt.Errorf("parse env: %w", err)
	}
	if len(cfg.Secret) < 16 {
		return nil, fmt.Errorf("JWT_SECRET must be at least 16 characters, got %d", len(cfg.Secret))
	}
	return &cfg, nil
}
