// Package config provides configuration loading and validation for the CLI and server.
package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/caarlos0/env/v11"
	"github.com/jonathan/career-guide/internal/llm"
)

// Config is the application configuration. Values come from an optional JSON
// file and from environment variables; the environment wins, then defaults
// fill whatever is still empty. CLI flags override the merged result.
type Config struct {
	// Generative service
	APIKey string `json:"api_key,omitempty" env:"GEMINI_API_KEY"` // Gemini API key
	Model  string `json:"model,omitempty" env:"CAREER_GUIDE_MODEL"`

	// Storage
	StoreURL string `json:"store_url,omitempty" env:"CAREER_GUIDE_STORE_URL"` // sqlite://, postgres://, redis:// or memory://

	// Resume export
	PDFEngine string `json:"pdf_engine,omitempty" env:"CAREER_GUIDE_PDF_ENGINE"` // fpdf or chrome

	// HTTP server
	Port           int      `json:"port,omitempty" env:"PORT"`
	RateLimitRPS   float64  `json:"rate_limit_rps,omitempty" env:"CAREER_GUIDE_RATE_LIMIT_RPS"`
	RateLimitBurst int      `json:"rate_limit_burst,omitempty" env:"CAREER_GUIDE_RATE_LIMIT_BURST"`
	AllowedOrigins []string `json:"allowed_origins,omitempty" env:"CAREER_GUIDE_ALLOWED_ORIGINS" envSeparator:","`

	// Behavior
	Verbose bool `json:"verbose,omitempty" env:"CAREER_GUIDE_VERBOSE"`
}

// Defaults returns the built-in configuration.
func Defaults() Config {
	return Config{
		Model:          llm.DefaultModel,
		StoreURL:       "sqlite://" + defaultStorePath(),
		PDFEngine:      "fpdf",
		Port:           8080,
		RateLimitRPS:   5,
		RateLimitBurst: 10,
		AllowedOrigins: []string{"http://localhost:3000"},
	}
}

func defaultStorePath() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		dir = "."
	}
	return filepath.Join(dir, "career-guide", "career-guide.db")
}

// Load builds the effective configuration from the JSON file at path (skipped
// when path is empty), the environment and the defaults.
func Load(path string) (*Config, error) {
	fileCfg := &Config{}
	if path != "" {
		var err error
		if fileCfg, err = LoadConfig(path); err != nil {
			return nil, err
		}
	}

	envCfg, err := FromEnv()
	if err != nil {
		return nil, err
	}

	merged := envCfg.MergeWithDefaults(*fileCfg)
	merged = merged.MergeWithDefaults(Defaults())
	if err := merged.Validate(); err != nil {
		return nil, err
	}
	return &merged, nil
}

// FromEnv reads the configuration fields that are set in the environment.
func FromEnv() (*Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return nil, fmt.Errorf("parse env: %w", err)
	}
	return &cfg, nil
}

// LoadConfig loads configuration from a JSON file.
// Returns an error if the file cannot be read or parsed.
func LoadConfig(path string) (*Config, error) {
	if path == "" {
		return nil, fmt.Errorf("config path is empty")
	}

	// Resolve path relative to current directory if not absolute
	if !filepath.IsAbs(path) {
		cwd, err := os.Getwd()
		if err != nil {
			return nil, fmt.Errorf("failed to get current directory: %w", err)
		}
		path = filepath.Join(cwd, path)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
	}

	var cfg Config
	if err := json.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config JSON: %w", err)
	}

	return &cfg, nil
}

// Validate checks that the configuration has valid values.
// The API key is not required here; counselor calls report it missing.
func (c *Config) Validate() error {
	if c.Port < 0 || c.Port > 65535 {
		return fmt.Errorf("config error: 'port' must be between 0 and 65535, got %d", c.Port)
	}
	if c.RateLimitRPS < 0 {
		return fmt.Errorf("config error: 'rate_limit_rps' must be non-negative")
	}
	if c.RateLimitBurst < 0 {
		return fmt.Errorf("config error: 'rate_limit_burst' must be non-negative")
	}
	switch c.PDFEngine {
	case "", "fpdf", "chrome":
	default:
		return fmt.Errorf("config error: 'pdf_engine' must be fpdf or chrome, got %q", c.PDFEngine)
	}
	return nil
}

// MergeWithDefaults returns a new Config with empty fields filled from defaults.
func (c *Config) MergeWithDefaults(defaults Config) Config {
	result := *c

	// String fields: use default if empty
	if result.APIKey == "" {
		result.APIKey = defaults.APIKey
	}
	if result.Model == "" {
		result.Model = defaults.Model
	}
	if result.StoreURL == "" {
		result.StoreURL = defaults.StoreURL
	}
	if result.PDFEngine == "" {
		result.PDFEngine = defaults.PDFEngine
	}
	if len(result.AllowedOrigins) == 0 {
		result.AllowedOrigins = defaults.AllowedOrigins
	}

	// Numeric fields: use default if zero
	if result.Port == 0 {
		result.Port = defaults.Port
	}
	if result.RateLimitRPS == 0 {
		result.RateLimitRPS = defaults.RateLimitRPS
	}
	if result.RateLimitBurst == 0 {
		result.RateLimitBurst = defaults.RateLimitBurst
	}

	// Bool fields: cannot distinguish unset from false, so either source enables
	result.Verbose = result.Verbose || defaults.Verbose

	return result
}

// LLMConfig returns the model configuration with the configured model on the
// standard tier.
func (c *Config) LLMConfig() *llm.Config {
	base := llm.DefaultGeminiConfig()
	if c.Model == "" {
		return base
	}
	return base.WithModel(llm.TierStandard, c.Model)
}
