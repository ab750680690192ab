// Package config reads client settings from YAML.
//
// A minimal configuration only names the service:
//
//	base_url: https://vss.example.com/vss
//	store_id: wallet
//
// Omitted settings take the client defaults.
package config

import (
	"encoding/hex"
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/decred/dcrd/dcrec/secp256k1/v4"
	"gopkg.in/yaml.v3"

	vss "github.com/tarantool/go-vss"
	"github.com/tarantool/go-vss/header"
	"github.com/tarantool/go-vss/transport"
)

// ErrInvalidConfig is wrapped by all validation failures.
var ErrInvalidConfig = errors.New("invalid config")

// Retry configures the default retry policy.
type Retry struct {
	BaseDelay     time.Duration `yaml:"base_delay"`
	MaxAttempts   int           `yaml:"max_attempts"`
	MaxTotalDelay time.Duration `yaml:"max_total_delay"`
	MaxJitter     time.Duration `yaml:"max_jitter"`
}

// Config is the file representation of client settings.
type Config struct {
	BaseURL         string            `yaml:"base_url"`
	StoreID         string            `yaml:"store_id"`
	Timeout         time.Duration     `yaml:"timeout"`
	MaxResponseSize int64             `yaml:"max_response_size"`
	Capacity        int               `yaml:"capacity"`
	Headers         map[string]string `yaml:"headers"`
	// SigningKey is a hex-encoded secp256k1 private key. When set, requests
	// are authorized with a signature token and Headers are sent alongside.
	SigningKey string `yaml:"signing_key"`
	Retry      Retry  `yaml:"retry"`
}

// Default returns the configuration with all defaults filled in.
func Default() Config {
	retryCfg := vss.DefaultRetryConfig()

	return Config{
		BaseURL:         "",
		StoreID:         "",
		Timeout:         transport.DefaultTimeout,
		MaxResponseSize: transport.DefaultMaxResponseSize,
		Capacity:        transport.DefaultCapacity,
		Headers:         nil,
		SigningKey:      "",
		Retry: Retry{
			BaseDelay:     retryCfg.BaseDelay,
			MaxAttempts:   retryCfg.MaxAttempts,
			MaxTotalDelay: retryCfg.MaxTotalDelay,
			MaxJitter:     retryCfg.MaxJitter,
		},
	}
}

// Parse decodes and validates a YAML document. Fields missing in data keep
// their default values.
func Parse(data []byte) (Config, error) {
	cfg := Default()

	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("failed to parse config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}

	return cfg, nil
}

// Load reads and parses the file at path.
func Load(path string) (Config, error) {
	data, err := os.ReadFile(path) //nolint:gosec
	if err != nil {
		return Config{}, fmt.Errorf("failed to read config: %w", err)
	}

	return Parse(data)
}

// Validate checks that the configuration can build a client.
func (c Config) Validate() error {
	switch {
	case c.BaseURL == "":
		return fmt.Errorf("%w: base_url is required", ErrInvalidConfig)
	case c.Timeout < 0:
		return fmt.Errorf("%w: timeout must not be negative", ErrInvalidConfig)
	case c.MaxResponseSize <= 0:
		return fmt.Errorf("%w: max_response_size must be positive", ErrInvalidConfig)
	case c.Capacity <= 0:
		return fmt.Errorf("%w: capacity must be positive", ErrInvalidConfig)
	case c.Retry.MaxAttempts <= 0:
		return fmt.Errorf("%w: retry.max_attempts must be positive", ErrInvalidConfig)
	case c.Retry.BaseDelay < 0 || c.Retry.MaxTotalDelay < 0 || c.Retry.MaxJitter < 0:
		return fmt.Errorf("%w: retry delays must not be negative", ErrInvalidConfig)
	}

	if c.SigningKey != "" {
		if _, err := c.privateKey(); err != nil {
			return err
		}
	}

	return nil
}

func (c Config) privateKey() (*secp256k1.PrivateKey, error) {
	raw, err := hex.DecodeString(c.SigningKey)
	if err != nil || len(raw) != secp256k1.PrivKeyBytesLen {
		return nil, fmt.Errorf("%w: signing_key must be %d hex-encoded bytes", ErrInvalidConfig, secp256k1.PrivKeyBytesLen)
	}

	return secp256k1.PrivKeyFromBytes(raw), nil
}

// HeaderProvider builds the provider described by the configuration.
func (c Config) HeaderProvider() (header.Provider, error) {
	if c.SigningKey == "" {
		return header.NewStatic(c.Headers), nil
	}

	key, err := c.privateKey()
	if err != nil {
		return nil, err
	}

	return header.NewSigsAuth(key, c.Headers), nil
}

// Options converts the configuration into client options.
func (c Config) Options() ([]vss.Option, error) {
	provider, err := c.HeaderProvider()
	if err != nil {
		return nil, err
	}

	return []vss.Option{
		vss.WithTimeout(c.Timeout),
		vss.WithMaxResponseSize(c.MaxResponseSize),
		vss.WithCapacity(c.Capacity),
		vss.WithHeaderProvider(provider),
		vss.WithRetryPolicy(vss.NewRetryPolicy(vss.RetryConfig{
			BaseDelay:     c.Retry.BaseDelay,
			MaxAttempts:   c.Retry.MaxAttempts,
			MaxTotalDelay: c.Retry.MaxTotalDelay,
			MaxJitter:     c.Retry.MaxJitter,
		})),
	}, nil
}

// NewClient validates the configuration and creates a client. Extra options
// are applied after the configured ones.
func (c Config) NewClient(extra ...vss.Option) (*vss.Client, error) {
	if err := c.Validate(); err != nil {
		return nil, err
	}

	opts, err := c.Options()
	if err != nil {
		return nil, err
	}

	return vss.New(c.BaseURL, append(opts, extra...)...)
}
