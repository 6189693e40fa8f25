// Package config provides configuration structs and utilities for the modelworth application.
package config

import (
	"errors"
	"fmt"
	"net/url"
	"time"
)

// Config represents the root configuration for the modelworth application.
type Config struct {
	Pricing       PricingConfig       `yaml:"pricing"`
	Sources       SourceConfigs       `yaml:"sources"`
	Value         ValueConfig         `yaml:"value"`
	Logging       LoggingConfig       `yaml:"logging"`
	Storage       StorageConfig       `yaml:"storage"`
	Observability ObservabilityConfig `yaml:"observability"`
}

// PricingConfig holds configuration for the pricing catalog.
type PricingConfig struct {
	DefaultSource string `yaml:"default_source"` // openrouter, helicone, litellm
}

// SourceConfigs holds endpoint configuration for all supported pricing sources.
type SourceConfigs struct {
	OpenRouter SourceConfig `yaml:"openrouter"`
	Helicone   SourceConfig `yaml:"helicone"`
	LiteLLM    SourceConfig `yaml:"litellm"`
}

// SourceConfig holds endpoint configuration for a single pricing source.
type SourceConfig struct {
	URL     string        `yaml:"url,omitempty"` // Optional custom endpoint
	Timeout time.Duration `yaml:"timeout"`
}

// ValueConfig holds configuration for value scoring.
type ValueConfig struct {
	Baseline      float64 `yaml:"baseline"`        // Minimum score to count as meaningful
	RankDecayBase float64 `yaml:"rank_decay_base"` // Per-rank decay multiplier
}

// LoggingConfig holds configuration for application logging.
type LoggingConfig struct {
	Level  string `yaml:"level"`  // debug, info, warn, error
	Format string `yaml:"format"` // json, text
}

// StorageConfig holds configuration for local persistence.
type StorageConfig struct {
	Path string `yaml:"path"` // SQLite database path
}

// ObservabilityConfig holds configuration for observability features.
type ObservabilityConfig struct {
	Tracing TracingConfig `yaml:"tracing"`
}

// TracingConfig holds configuration for distributed tracing.
type TracingConfig struct {
	Enabled      bool    `yaml:"enabled"`       // Whether tracing is enabled
	ExporterType string  `yaml:"exporter_type"` // none, stdout, otlp
	OTLPEndpoint string  `yaml:"otlp_endpoint"` // OTLP collector endpoint
	SampleRate   float64 `yaml:"sample_rate"`   // Sampling rate (0.0 to 1.0)
	ServiceName  string  `yaml:"service_name"`  // Service name for traces
}

// Default configuration values.
const (
	DefaultSource  = "litellm"
	DefaultTimeout = 30 * time.Second

	DefaultLogLevel  = "info"
	DefaultLogFormat = "text"

	DefaultStoragePath = "~/.modelworth/modelworth.db"

	// Value scoring defaults
	DefaultValueBaseline      = 1000.0
	DefaultValueRankDecayBase = 0.97

	// Observability defaults
	DefaultTracingEnabled      = false
	DefaultTracingExporterType = "none"
	DefaultTracingSampleRate   = 1.0
	DefaultTracingServiceName  = "modelworth"
)

// Valid pricing sources.
var validSources = map[string]bool{
	"openrouter": true,
	"helicone":   true,
	"litellm":    true,
}

// Valid log levels.
var validLogLevels = map[string]bool{
	"debug": true,
	"info":  true,
	"warn":  true,
	"error": true,
}

// Valid log formats.
var validLogFormats = map[string]bool{
	"json": true,
	"text": true,
}

// Valid tracing exporter types.
var validTracingExporterTypes = map[string]bool{
	"none":   true,
	"stdout": true,
	"otlp":   true,
}

// NewDefaultConfig creates a new Config with sensible default values.
func NewDefaultConfig() *Config {
	return &Config{
		Pricing: PricingConfig{
			DefaultSource: DefaultSource,
		},
		Sources: SourceConfigs{
			OpenRouter: SourceConfig{Timeout: DefaultTimeout},
			Helicone:   SourceConfig{Timeout: DefaultTimeout},
			LiteLLM:    SourceConfig{Timeout: DefaultTimeout},
		},
		Value: ValueConfig{
			Baseline:      DefaultValueBaseline,
			RankDecayBase: DefaultValueRankDecayBase,
		},
		Logging: LoggingConfig{
			Level:  DefaultLogLevel,
			Format: DefaultLogFormat,
		},
		Storage: StorageConfig{
			Path: DefaultStoragePath,
		},
		Observability: ObservabilityConfig{
			Tracing: TracingConfig{
				Enabled:      DefaultTracingEnabled,
				ExporterType: DefaultTracingExporterType,
				SampleRate:   DefaultTracingSampleRate,
				ServiceName:  DefaultTracingServiceName,
			},
		},
	}
}

// Validate checks if the configuration is valid and returns an error if not.
func (c *Config) Validate() error {
	var errs []error

	if err := c.Pricing.Validate(); err != nil {
		errs = append(errs, fmt.Errorf("pricing: %w", err))
	}

	if err := c.Sources.Validate(); err != nil {
		errs = append(errs, fmt.Errorf("sources: %w", err))
	}

	if err := c.Value.Validate(); err != nil {
		errs = append(errs, fmt.Errorf("value: %w", err))
	}

	if err := c.Logging.Validate(); err != nil {
		errs = append(errs, fmt.Errorf("logging: %w", err))
	}

	if err := c.Storage.Validate(); err != nil {
		errs = append(errs, fmt.Errorf("storage: %w", err))
	}

	if err := c.Observability.Validate(); err != nil {
		errs = append(errs, fmt.Errorf("observability: %w", err))
	}

	if len(errs) > 0 {
		return errors.Join(errs...)
	}

	return nil
}

// Validate checks if the PricingConfig is valid.
func (p *PricingConfig) Validate() error {
	if p.DefaultSource != "" && !validSources[p.DefaultSource] {
		return fmt.Errorf("invalid default_source %q: must be one of openrouter, helicone, litellm", p.DefaultSource)
	}
	return nil
}

// Validate checks if the SourceConfigs is valid.
func (s *SourceConfigs) Validate() error {
	var errs []error

	if err := s.OpenRouter.Validate("openrouter"); err != nil {
		errs = append(errs, err)
	}

	if err := s.Helicone.Validate("helicone"); err != nil {
		errs = append(errs, err)
	}

	if err := s.LiteLLM.Validate("litellm"); err != nil {
		errs = append(errs, err)
	}

	if len(errs) > 0 {
		return errors.Join(errs...)
	}

	return nil
}

// Validate checks if the SourceConfig is valid.
func (s *SourceConfig) Validate(sourceName string) error {
	var errs []error

	if s.Timeout < 0 {
		errs = append(errs, fmt.Errorf("%s: timeout must be non-negative", sourceName))
	}

	if s.URL != "" {
		parsedURL, err := url.Parse(s.URL)
		if err != nil {
			errs = append(errs, fmt.Errorf("%s: invalid url: %w", sourceName, err))
		} else if parsedURL.Scheme != "http" && parsedURL.Scheme != "https" {
			errs = append(errs, fmt.Errorf("%s: url must use http or https scheme", sourceName))
		}
	}

	if len(errs) > 0 {
		return errors.Join(errs...)
	}

	return nil
}

// Validate checks if the ValueConfig is valid.
func (v *ValueConfig) Validate() error {
	var errs []error

	if v.Baseline < 0 {
		errs = append(errs, errors.New("baseline must be non-negative"))
	}

	if v.RankDecayBase <= 0 || v.RankDecayBase > 1 {
		errs = append(errs, errors.New("rank_decay_base must be in (0.0, 1.0]"))
	}

	if len(errs) > 0 {
		return errors.Join(errs...)
	}

	return nil
}

// Validate checks if the LoggingConfig is valid.
func (l *LoggingConfig) Validate() error {
	var errs []error

	if l.Level != "" && !validLogLevels[l.Level] {
		errs = append(errs, fmt.Errorf("invalid log level %q: must be one of debug, info, warn, error", l.Level))
	}

	if l.Format != "" && !validLogFormats[l.Format] {
		errs = append(errs, fmt.Errorf("invalid log format %q: must be one of json, text", l.Format))
	}

	if len(errs) > 0 {
		return errors.Join(errs...)
	}

	return nil
}

// Validate checks if the StorageConfig is valid.
func (s *StorageConfig) Validate() error {
	if s.Path == "" {
		return errors.New("path is required")
	}
	return nil
}

// Validate checks if the ObservabilityConfig is valid.
func (o *ObservabilityConfig) Validate() error {
	if err := o.Tracing.Validate(); err != nil {
		return fmt.Errorf("tracing: %w", err)
	}
	return nil
}

// Validate checks if the TracingConfig is valid.
func (t *TracingConfig) Validate() error {
	var errs []error

	if t.Enabled {
		if t.ExporterType != "" && !validTracingExporterTypes[t.ExporterType] {
			errs = append(errs, fmt.Errorf("invalid exporter_type %q: must be one of none, stdout, otlp", t.ExporterType))
		}
		if t.ExporterType == "otlp" && t.OTLPEndpoint == "" {
			errs = append(errs, errors.New("otlp_endpoint is required when exporter_type is 'otlp'"))
		}
		if t.SampleRate < 0 || t.SampleRate > 1 {
			errs = append(errs, errors.New("sample_rate must be between 0.0 and 1.0"))
		}
		if t.ServiceName == "" {
			errs = append(errs, errors.New("service_name is required when tracing is enabled"))
		}
	}

	if len(errs) > 0 {
		return errors.Join(errs...)
	}

	return nil
}
