// Package config provides a centralized entrypoint for the application parameters.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/creasty/defaults"
	"gopkg.in/yaml.v3"

	"github.com/bitego/snipcart-webhook-app/internal/taxes"
)

var (
	// Global is a struct that contains the global configuration.
	Global global
	// Snipcart is a struct that contains the configuration for the Snipcart API.
	Snipcart snipcart
	// Taxes is a struct that contains the tax calculation configuration.
	Taxes taxation
	// Service is a struct that contains the configuration for the HTTP service.
	Service service
)

type global struct {
	// Logging is a struct that contains the logging configuration.
	Logging struct {
		// Verbosity is the verbosity level of the application. It represents slog levels.
		Verbosity int `yaml:"verbosity,omitempty"`
		// CallerTrace is a flag that enables the caller trace in the logger.
		CallerTrace bool `yaml:"callerTrace,omitempty"`
	} `yaml:"logging,omitempty"`
	// LocalDevelopment skips the token handshake so the endpoint can be exercised
	// without a reachable Snipcart API. Trust boundary, not a security setting.
	LocalDevelopment bool `yaml:"localDevelopment,omitempty"`
}

type snipcart struct {
	// APIBase is the Snipcart API root used for the token handshake.
	APIBase string `yaml:"apiBase,omitempty" default:"https://app.snipcart.com/api"`
	// ValidationPath is the request validation resource under the API root.
	ValidationPath string `yaml:"validationPath,omitempty" default:"requestvalidation"`
	// HandshakeTimeout bounds the synchronous token handshake.
	HandshakeTimeout time.Duration `yaml:"handshakeTimeout,omitempty" default:"5s"`
}

type taxation struct {
	// Provider is the store's tax provider. Only "integrated" enables the engine.
	Provider string `yaml:"provider,omitempty" default:"integrated"`
	// ShippingMode selects the shipping tax strategy: none, fixed, highest or split.
	ShippingMode string `yaml:"shippingMode,omitempty" default:"fixed"`
	// IncludedInPrice marks all configured taxes as contained in item prices.
	IncludedInPrice bool `yaml:"includedInPrice,omitempty"`
	// Definitions is the ordered list of configured taxes.
	Definitions taxes.Definitions `yaml:"definitions,omitempty"`
}

type service struct {
	Path    string        `yaml:"path,omitempty" default:"/webhooks/snipcart"`
	Addr    string        `yaml:"addr,omitempty"`
	Port    string        `yaml:"port,omitempty" default:"8080"`
	Timeout time.Duration `yaml:"timeout,omitempty" default:"5s"`
	// Metrics enables the Prometheus /metrics endpoint.
	Metrics bool `yaml:"metrics,omitempty" default:"true"`
}

// SetDefaults sets the default values for the configuration.
func SetDefaults() error {
	return errors.Join(
		defaults.Set(&Global),
		defaults.Set(&Snipcart),
		defaults.Set(&Taxes),
		defaults.Set(&Service),
	)
}

// LoadFromFile loads the configuration from a file.
func LoadFromFile(path string) error {
	if len(path) == 0 {
		return nil
	}
	fstat, err := os.Stat(path)
	if err != nil {
		return nil //nolint:nilerr // If the file does not exist, we ignore it.
	}
	if fstat.IsDir() {
		return fmt.Errorf("configuration file %s is a directory", path)
	}
	if !fstat.Mode().IsRegular() {
		return fmt.Errorf("configuration file %s is not a regular file", path)
	}

	content, err := os.ReadFile(filepath.Clean(path))
	if err != nil {
		return fmt.Errorf("failed to read configuration file %s: %w", path, err)
	}
	type all struct {
		Global   global   `yaml:"global,omitempty"`
		Snipcart snipcart `yaml:"snipcart,omitempty"`
		Taxes    taxation `yaml:"taxes,omitempty"`
		Service  service  `yaml:"service,omitempty"`
	}
	var a all
	if err = yaml.Unmarshal(content, &a); err != nil {
		return fmt.Errorf("failed to unmarshal configuration file %s: %w", path, err)
	}
	Global = a.Global
	Snipcart = a.Snipcart
	Taxes = a.Taxes
	Service = a.Service

	return nil
}
