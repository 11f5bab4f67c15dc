package main

import (
	"slices"
	"time"

	"github.com/kbukum/seqkit/config"
	"github.com/kbukum/seqkit/resilience"
	"github.com/kbukum/seqkit/validation"
	"github.com/kbukum/seqkit/version"
)

const serviceName = "seqdemo"

// DemoConfig is the seqdemo configuration, loaded from config.yml, .env
// and SEQDEMO-style environment variables (LISTING_DIR, WATCH_TIMEOUT, ...).
type DemoConfig struct {
	config.ServiceConfig `yaml:",inline" mapstructure:",squash"`

	// Only restricts the run to the named demos. Empty runs all of them.
	Only    []string               `yaml:"only" mapstructure:"only" validate:"dive,oneof=prices friends names first reduce runes people grouping listing flatten watch"`
	Listing ListingConfig          `yaml:"listing" mapstructure:"listing"`
	Watch   WatchConfig            `yaml:"watch" mapstructure:"watch"`
	Retry   resilience.RetryConfig `yaml:"retry" mapstructure:"retry"`
	Tracing TracingConfig          `yaml:"tracing" mapstructure:"tracing"`
	Metrics MetricsConfig          `yaml:"metrics" mapstructure:"metrics"`
}

// ListingConfig drives the directory demos.
type ListingConfig struct {
	Dir       string `yaml:"dir" mapstructure:"dir" validate:"required"`
	TextDir   string `yaml:"text_dir" mapstructure:"text_dir"`
	Pattern   string `yaml:"pattern" mapstructure:"pattern" validate:"omitempty,glob"`
	BatchSize int    `yaml:"batch_size" mapstructure:"batch_size" validate:"gte=0"`
}

// WatchConfig drives the file-change demo.
type WatchConfig struct {
	Enabled bool          `yaml:"enabled" mapstructure:"enabled"`
	Path    string        `yaml:"path" mapstructure:"path"`
	Timeout time.Duration `yaml:"timeout" mapstructure:"timeout" validate:"gte=0"`
}

// TracingConfig enables OTLP span export.
type TracingConfig struct {
	Enabled    bool    `yaml:"enabled" mapstructure:"enabled"`
	Endpoint   string  `yaml:"endpoint" mapstructure:"endpoint"`
	Insecure   bool    `yaml:"insecure" mapstructure:"insecure"`
	SampleRate float64 `yaml:"sample_rate" mapstructure:"sample_rate" validate:"gte=0,lte=1"`
}

// MetricsConfig enables OTLP metric export.
type MetricsConfig struct {
	Enabled  bool          `yaml:"enabled" mapstructure:"enabled"`
	Endpoint string        `yaml:"endpoint" mapstructure:"endpoint"`
	Insecure bool          `yaml:"insecure" mapstructure:"insecure"`
	Interval time.Duration `yaml:"interval" mapstructure:"interval" validate:"gte=0"`
}

// ApplyDefaults fills in empty fields.
func (c *DemoConfig) ApplyDefaults() {
	if c.Name == "" {
		c.Name = serviceName
	}
	if c.Version == "" {
		c.Version = version.Get().Short()
	}
	c.ServiceConfig.ApplyDefaults()

	if c.Listing.Dir == "" {
		c.Listing.Dir = "."
	}
	if c.Listing.TextDir == "" {
		c.Listing.TextDir = c.Listing.Dir
	}
	if c.Listing.Pattern == "" {
		c.Listing.Pattern = "*.txt"
	}
	if c.Watch.Path == "" {
		c.Watch.Path = c.Listing.TextDir
	}
	if c.Watch.Timeout == 0 {
		c.Watch.Timeout = time.Minute
	}
	if c.Retry.MaxAttempts == 0 {
		c.Retry = resilience.DefaultRetryConfig()
	}
	if c.Tracing.SampleRate == 0 {
		c.Tracing.SampleRate = 1.0
	}
	if c.Metrics.Interval == 0 {
		c.Metrics.Interval = 15 * time.Second
	}
}

// Validate checks struct tags, the service section and cross-field rules.
func (c *DemoConfig) Validate() error {
	if err := validation.Validate(c); err != nil {
		return err
	}
	if err := c.ServiceConfig.Validate(); err != nil {
		return err
	}

	v := validation.New()
	v.Custom(!c.Tracing.Enabled || c.Tracing.Endpoint != "", "tracing.endpoint", "is required when tracing is enabled")
	v.Custom(!c.Metrics.Enabled || c.Metrics.Endpoint != "", "metrics.endpoint", "is required when metrics are enabled")
	if c.Watch.Enabled {
		v.Required("watch.path", c.Watch.Path)
	}
	if err := v.Validate(); err != nil {
		return err
	}
	return nil
}

// runs reports whether the named demo is selected.
func (c *DemoConfig) runs(name string) bool {
	return len(c.Only) == 0 || slices.Contains(c.Only, name)
}
