package config

import (
	"os"
	"slices"
	"strings"
	"testing"

	"github.com/spf13/afero"

	"github.com/kbukum/seqkit/errors"
)

type watchConfig struct {
	Dir     string `mapstructure:"dir"`
	QuietMS int    `mapstructure:"quiet_ms"`
}

type appConfig struct {
	ServiceConfig `yaml:",inline" mapstructure:",squash"`
	Watch         watchConfig `yaml:"watch" mapstructure:"watch"`
	Label         string      `mapstructure:"seqtest_label"`
}

const appYAML = `
name: seqdemo
environment: staging
logging:
  level: info
  format: json
watch:
  dir: /tmp/inbox
  quiet_ms: 100
`

func memFs(t *testing.T, files map[string]string) afero.Fs {
	t.Helper()
	fs := afero.NewMemMapFs()
	for path, body := range files {
		if err := afero.WriteFile(fs, path, []byte(body), 0o644); err != nil {
			t.Fatal(err)
		}
	}
	return fs
}

func TestServiceConfigApplyDefaults(t *testing.T) {
	t.Run("empty environment defaults to development", func(t *testing.T) {
		cfg := ServiceConfig{Name: "svc"}
		cfg.ApplyDefaults()
		if cfg.Environment != "development" || !cfg.Debug {
			t.Errorf("unexpected defaults: %+v", cfg)
		}
		if cfg.Logging.Level != "debug" {
			t.Errorf("expected debug logging in development, got %q", cfg.Logging.Level)
		}
	})

	t.Run("production keeps debug off", func(t *testing.T) {
		cfg := ServiceConfig{Name: "svc", Environment: "production"}
		cfg.ApplyDefaults()
		if cfg.Debug {
			t.Error("expected debug=false for production")
		}
		if cfg.Logging.Level != "info" {
			t.Errorf("expected info logging, got %q", cfg.Logging.Level)
		}
	})

	t.Run("configured level wins", func(t *testing.T) {
		cfg := ServiceConfig{Name: "svc"}
		cfg.Logging.Level = "warn"
		cfg.ApplyDefaults()
		if cfg.Logging.Level != "warn" {
			t.Errorf("expected warn, got %q", cfg.Logging.Level)
		}
	})
}

func TestServiceConfigValidate(t *testing.T) {
	valid := func() ServiceConfig {
		cfg := ServiceConfig{Name: "svc", Environment: "staging"}
		cfg.ApplyDefaults()
		return cfg
	}
	tests := []struct {
		name    string
		mutate  func(*ServiceConfig)
		wantErr string
	}{
		{"valid", func(*ServiceConfig) {}, ""},
		{"missing name", func(c *ServiceConfig) { c.Name = "" }, "config.name is required"},
		{"invalid environment", func(c *ServiceConfig) { c.Environment = "qa" }, "config.environment must be one of"},
		{"invalid logging", func(c *ServiceConfig) { c.Logging.Format = "xml" }, "config.logging"},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			cfg := valid()
			tc.mutate(&cfg)
			err := cfg.Validate()
			if tc.wantErr == "" {
				if err != nil {
					t.Errorf("unexpected error: %v", err)
				}
				return
			}
			if !errors.HasCode(err, errors.ErrCodeInvalidConfig) {
				t.Fatalf("expected INVALID_CONFIG, got %v", err)
			}
			if !strings.Contains(err.Error(), tc.wantErr) {
				t.Errorf("expected error containing %q, got %q", tc.wantErr, err.Error())
			}
		})
	}
}

func TestLoadConfig_YAML(t *testing.T) {
	fs := memFs(t, map[string]string{"config.yml": appYAML})

	var cfg appConfig
	if err := LoadConfig("seqdemo", &cfg, WithFs(fs)); err != nil {
		t.Fatalf("LoadConfig failed: %v", err)
	}
	if cfg.Name != "seqdemo" || cfg.Environment != "staging" {
		t.Errorf("unexpected service config %+v", cfg.ServiceConfig)
	}
	if cfg.Logging.Format != "json" {
		t.Errorf("expected nested logging config, got %+v", cfg.Logging)
	}
	if cfg.Watch.Dir != "/tmp/inbox" || cfg.Watch.QuietMS != 100 {
		t.Errorf("unexpected watch config %+v", cfg.Watch)
	}
}

func TestLoadConfig_EnvOverridesFile(t *testing.T) {
	fs := memFs(t, map[string]string{"config/config.yml": appYAML})
	t.Setenv("WATCH_QUIET_MS", "250")
	t.Setenv("LOGGING_LEVEL", "warn")

	var cfg appConfig
	if err := LoadConfig("seqdemo", &cfg, WithFs(fs)); err != nil {
		t.Fatal(err)
	}
	if cfg.Watch.QuietMS != 250 {
		t.Errorf("expected env override 250, got %d", cfg.Watch.QuietMS)
	}
	if cfg.Logging.Level != "warn" {
		t.Errorf("expected env override warn, got %q", cfg.Logging.Level)
	}
	if cfg.Watch.Dir != "/tmp/inbox" {
		t.Errorf("expected file value kept, got %q", cfg.Watch.Dir)
	}
}

func TestLoadConfig_DotEnv(t *testing.T) {
	fs := memFs(t, map[string]string{
		"config.yml":       appYAML,
		"cmd/seqdemo/.env": "SEQTEST_LABEL=from-dotenv\n",
	})
	t.Cleanup(func() { os.Unsetenv("SEQTEST_LABEL") })

	var cfg appConfig
	if err := LoadConfig("seqdemo", &cfg, WithFs(fs)); err != nil {
		t.Fatal(err)
	}
	if cfg.Label != "from-dotenv" {
		t.Errorf("expected value from .env, got %q", cfg.Label)
	}
}

func TestLoadConfig_DotEnvDoesNotOverrideEnvironment(t *testing.T) {
	fs := memFs(t, map[string]string{"custom.env": "SEQTEST_LABEL=from-dotenv\n"})
	t.Setenv("SEQTEST_LABEL", "from-env")

	var cfg appConfig
	if err := LoadConfig("seqdemo", &cfg, WithFs(fs), WithEnvFile("custom.env")); err != nil {
		t.Fatal(err)
	}
	if cfg.Label != "from-env" {
		t.Errorf("expected process environment to win, got %q", cfg.Label)
	}
}

func TestLoadConfig_MissingFile(t *testing.T) {
	var cfg appConfig
	err := LoadConfig("seqdemo", &cfg, WithFs(afero.NewMemMapFs()), WithConfigFile("/nonexistent/path.yml"))
	if err != nil {
		t.Fatalf("expected LoadConfig to succeed with missing file, got %v", err)
	}
}

func TestLoadConfig_MalformedFile(t *testing.T) {
	fs := memFs(t, map[string]string{"config.yml": "name: [unterminated"})
	var cfg appConfig
	err := LoadConfig("seqdemo", &cfg, WithFs(fs))
	if !errors.HasCode(err, errors.ErrCodeInvalidConfig) {
		t.Errorf("expected INVALID_CONFIG, got %v", err)
	}
}

func TestResolver_SearchOrder(t *testing.T) {
	fs := memFs(t, map[string]string{
		"cmd/seqdemo/config.yml": "",
		"config.yml":             "",
		"config/.env.seqdemo":    "",
		".env":                   "",
	})
	files := (&Resolver{Fs: fs}).ResolveFiles("seqdemo", LoaderConfig{})
	if files.ConfigFile != "cmd/seqdemo/config.yml" {
		t.Errorf("expected service config first, got %q", files.ConfigFile)
	}
	if files.EnvFile != "config/.env.seqdemo" {
		t.Errorf("expected service env file first, got %q", files.EnvFile)
	}
}

func TestResolver_ExplicitPaths(t *testing.T) {
	files := (&Resolver{Fs: afero.NewMemMapFs()}).ResolveFiles("seqdemo", LoaderConfig{
		ConfigFile: "/etc/seq.yml",
		EnvFile:    "/etc/seq.env",
	})
	if files.ConfigFile != "/etc/seq.yml" || files.EnvFile != "/etc/seq.env" {
		t.Errorf("explicit paths should be kept, got %+v", files)
	}
}

func TestEnvKeyVariants(t *testing.T) {
	got := envKeyVariants("WATCH_QUIET_MS")
	for _, want := range []string{"watch_quiet_ms", "watch.quiet.ms", "watch.quiet_ms", "watch_quiet.ms"} {
		if !slices.Contains(got, want) {
			t.Errorf("missing variant %q in %v", want, got)
		}
	}
	if single := envKeyVariants("DEBUG"); !slices.Equal(single, []string{"debug"}) {
		t.Errorf("got %v", single)
	}
	seen := map[string]bool{}
	for _, v := range envKeyVariants("A_B_C_D") {
		if seen[v] {
			t.Errorf("duplicate variant %q", v)
		}
		seen[v] = true
	}
}
