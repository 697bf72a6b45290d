package httpclient

import (
	"errors"
	"fmt"
	"net/url"
	"os"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/LyraHealth/auto-thunk/codec"
)

// ErrInvalidBaseURL is returned when the configured base URL is not absolute.
var ErrInvalidBaseURL = errors.New("httpclient: base_url must be an absolute URL")

// Config holds configuration for the HTTP client.
type Config struct {
	// BaseURL is prepended to relative request URLs.
	BaseURL string `yaml:"base_url"`

	// Timeout bounds each request, including reading the body. Zero means
	// no client-side limit.
	Timeout time.Duration `yaml:"timeout"`

	// Headers are sent with every request. Request headers win on conflict.
	Headers map[string]string `yaml:"headers"`

	// Codec names the body codec ("json" or "msgpack").
	Codec string `yaml:"codec"`

	// MaxResponseBytes caps how much of a response body is read.
	MaxResponseBytes int64 `yaml:"max_response_bytes"`
}

// DefaultConfig returns a Config with sensible defaults.
func DefaultConfig() Config {
	return Config{
		Timeout:          30 * time.Second,
		Codec:            codec.NameJSON,
		MaxResponseBytes: 10 << 20,
	}
}

// Validate reports configuration errors.
func (c Config) Validate() error {
	if c.BaseURL != "" {
		u, err := url.Parse(c.BaseURL)
		if err != nil || u.Scheme == "" || u.Host == "" {
			return fmt.Errorf("%w: %q", ErrInvalidBaseURL, c.BaseURL)
		}
	}
	if c.Codec != "" && c.Codec != codec.NameJSON && c.Codec != codec.NameMsgpack {
		return fmt.Errorf("httpclient: unknown codec %q", c.Codec)
	}
	return nil
}

// ParseConfig decodes a YAML document over DefaultConfig.
func ParseConfig(data []byte) (Config, error) {
	cfg := DefaultConfig()
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("httpclient: parse config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// LoadConfig reads and decodes a YAML config file.
func LoadConfig(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("httpclient: read config: %w", err)
	}
	return ParseConfig(data)
}
