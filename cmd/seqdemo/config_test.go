package main

import (
	"testing"
	"time"

	"github.com/spf13/afero"

	"github.com/kbukum/seqkit/config"
	"github.com/kbukum/seqkit/errors"
)

const demoYAML = `
name: seqdemo
environment: staging
only: [listing, flatten]
listing:
  dir: /data
  pattern: "*.log"
watch:
  enabled: true
  timeout: 30s
retry:
  max_attempts: 5
  initial_backoff: 10ms
`

func TestDemoConfig_Load(t *testing.T) {
	fs := afero.NewMemMapFs()
	if err := afero.WriteFile(fs, "config.yml", []byte(demoYAML), 0o644); err != nil {
		t.Fatal(err)
	}

	var cfg DemoConfig
	if err := config.LoadConfig(serviceName, &cfg, config.WithFs(fs)); err != nil {
		t.Fatalf("LoadConfig failed: %v", err)
	}
	cfg.ApplyDefaults()
	if err := cfg.Validate(); err != nil {
		t.Fatalf("Validate failed: %v", err)
	}

	if cfg.Environment != "staging" || len(cfg.Only) != 2 {
		t.Errorf("unexpected config %+v", cfg)
	}
	if cfg.Listing.Dir != "/data" || cfg.Listing.TextDir != "/data" || cfg.Listing.Pattern != "*.log" {
		t.Errorf("unexpected listing %+v", cfg.Listing)
	}
	if !cfg.Watch.Enabled || cfg.Watch.Timeout != 30*time.Second || cfg.Watch.Path != "/data" {
		t.Errorf("unexpected watch %+v", cfg.Watch)
	}
	if cfg.Retry.MaxAttempts != 5 || cfg.Retry.InitialBackoff != 10*time.Millisecond {
		t.Errorf("unexpected retry %+v", cfg.Retry)
	}
	if !cfg.runs("flatten") || cfg.runs("prices") {
		t.Error("expected only listing and flatten to run")
	}
}

func TestDemoConfig_ApplyDefaults(t *testing.T) {
	var cfg DemoConfig
	cfg.ApplyDefaults()

	if cfg.Name != serviceName || cfg.Version == "" {
		t.Errorf("unexpected service config %+v", cfg.ServiceConfig)
	}
	if cfg.Listing.Dir != "." || cfg.Listing.Pattern != "*.txt" {
		t.Errorf("unexpected listing %+v", cfg.Listing)
	}
	if cfg.Watch.Timeout != time.Minute || cfg.Watch.Enabled {
		t.Errorf("unexpected watch %+v", cfg.Watch)
	}
	if cfg.Retry.MaxAttempts != 3 || cfg.Retry.RetryIf == nil {
		t.Errorf("expected default retry config, got %+v", cfg.Retry)
	}
	if !cfg.runs("prices") {
		t.Error("expected every demo to run by default")
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("defaults should validate: %v", err)
	}
}

func TestDemoConfig_Validate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*DemoConfig)
	}{
		{"bad glob", func(c *DemoConfig) { c.Listing.Pattern = "[" }},
		{"unknown demo", func(c *DemoConfig) { c.Only = []string{"bogus"} }},
		{"negative batch", func(c *DemoConfig) { c.Listing.BatchSize = -1 }},
		{"negative timeout", func(c *DemoConfig) { c.Watch.Timeout = -time.Second }},
		{"sample rate", func(c *DemoConfig) { c.Tracing.SampleRate = 2 }},
		{"jitter", func(c *DemoConfig) { c.Retry.Jitter = 1.5 }},
		{"tracing without endpoint", func(c *DemoConfig) { c.Tracing.Enabled = true }},
		{"metrics without endpoint", func(c *DemoConfig) { c.Metrics.Enabled = true }},
		{"bad environment", func(c *DemoConfig) { c.Environment = "moon" }},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			var cfg DemoConfig
			cfg.ApplyDefaults()
			tc.mutate(&cfg)
			err := cfg.Validate()
			if !errors.HasCode(err, errors.ErrCodeInvalidConfig) {
				t.Errorf("expected INVALID_CONFIG, got %v", err)
			}
		})
	}
}
