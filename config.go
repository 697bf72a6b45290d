package autothunk

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/LyraHealth/auto-thunk/httpclient"
	"github.com/LyraHealth/auto-thunk/store"
)

// Config holds configuration for a Store.
type Config struct {
	// HTTP configures the default HTTP client. Ignored when a client is
	// supplied with WithHTTPClient.
	HTTP httpclient.Config `yaml:"http"`

	// SubscriberBuffer is the default buffer size for change subscriptions.
	SubscriberBuffer int `yaml:"subscriber_buffer"`

	// Logging installs the dispatch logging middleware.
	Logging bool `yaml:"logging"`

	// Tracing installs the OpenTelemetry tracing middleware.
	Tracing bool `yaml:"tracing"`

	// Metrics installs the OpenTelemetry metrics middleware.
	Metrics bool `yaml:"metrics"`
}

// DefaultConfig returns a Config with sensible defaults.
func DefaultConfig() Config {
	return Config{
		HTTP:             httpclient.DefaultConfig(),
		SubscriberBuffer: store.DefaultBufferSize,
		Tracing:          true,
		Metrics:          true,
	}
}

// Validate checks the configuration.
func (c Config) Validate() error {
	if c.SubscriberBuffer < 0 {
		return fmt.Errorf("%w: negative subscriber_buffer %d", ErrInvalidConfig, c.SubscriberBuffer)
	}
	if err := c.HTTP.Validate(); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidConfig, err)
	}
	return nil
}

// ParseConfig decodes YAML over DefaultConfig and validates the result.
func ParseConfig(data []byte) (Config, error) {
	cfg := DefaultConfig()
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("%w: %w", ErrInvalidConfig, err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// LoadConfig reads and parses a YAML configuration file.
func LoadConfig(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("autothunk: read config: %w", err)
	}
	return ParseConfig(data)
}
