package transport

import (
	"fmt"

	"github.com/kelseyhightower/envconfig"
)

// Config holds the settings of the HTTP transport.
type Config struct {
	BaseURL    string `envconfig:"API_URL" default:"http://localhost:8000"`
	Token      string `envconfig:"API_TOKEN"`
	TimeoutMs  int    `envconfig:"TIMEOUT_MS" default:"10000"`
	MaxRetries int    `envconfig:"MAX_RETRIES" default:"1"`
	LogCalls   bool   `envconfig:"LOG_CALLS" default:"false"`
}

// DefaultConfig returns a Config with sensible defaults.
func DefaultConfig() Config {
	return Config{
		BaseURL:    "http://localhost:8000",
		TimeoutMs:  10000,
		MaxRetries: 1,
	}
}

// LoadConfig reads EJOURNAL_* environment variables, falling back to
// defaults for any unset values.
func LoadConfig() (Config, error) {
	cfg := DefaultConfig()
	if err := envconfig.Process("EJOURNAL", &cfg); err != nil {
		return Config{}, fmt.Errorf("processing transport config: %w", err)
	}
	if cfg.TimeoutMs <= 0 {
		cfg.TimeoutMs = DefaultConfig().TimeoutMs
	}
	if cfg.MaxRetries < 0 {
		cfg.MaxRetries = 0
	}
	return cfg, nil
}
