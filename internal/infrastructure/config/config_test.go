package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func TestNewDefaultConfig(t *testing.T) {
	cfg := NewDefaultConfig()

	if cfg.Pricing.DefaultSource != DefaultSource {
		t.Errorf("default source = %q, want %q", cfg.Pricing.DefaultSource, DefaultSource)
	}
	if cfg.Value.Baseline != DefaultValueBaseline {
		t.Errorf("baseline = %v, want %v", cfg.Value.Baseline, DefaultValueBaseline)
	}
	if cfg.Value.RankDecayBase != DefaultValueRankDecayBase {
		t.Errorf("rank_decay_base = %v, want %v", cfg.Value.RankDecayBase, DefaultValueRankDecayBase)
	}
	if cfg.Sources.OpenRouter.Timeout != DefaultTimeout {
		t.Errorf("openrouter timeout = %v, want %v", cfg.Sources.OpenRouter.Timeout, DefaultTimeout)
	}

	if err := cfg.Validate(); err != nil {
		t.Errorf("default config must validate, got %v", err)
	}
}

func TestConfigValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr string
	}{
		{
			name:    "valid",
			mutate:  func(c *Config) {},
			wantErr: "",
		},
		{
			name: "invalid source",
			mutate: func(c *Config) {
				c.Pricing.DefaultSource = "modelzoo"
			},
			wantErr: "default_source",
		},
		{
			name: "negative timeout",
			mutate: func(c *Config) {
				c.Sources.Helicone.Timeout = -time.Second
			},
			wantErr: "timeout must be non-negative",
		},
		{
			name: "bad source url scheme",
			mutate: func(c *Config) {
				c.Sources.LiteLLM.URL = "ftp://example.com/prices.json"
			},
			wantErr: "http or https",
		},
		{
			name: "decay out of range",
			mutate: func(c *Config) {
				c.Value.RankDecayBase = 1.5
			},
			wantErr: "rank_decay_base",
		},
		{
			name: "decay zero",
			mutate: func(c *Config) {
				c.Value.RankDecayBase = 0
			},
			wantErr: "rank_decay_base",
		},
		{
			name: "negative baseline",
			mutate: func(c *Config) {
				c.Value.Baseline = -1
			},
			wantErr: "baseline",
		},
		{
			name: "bad log level",
			mutate: func(c *Config) {
				c.Logging.Level = "verbose"
			},
			wantErr: "invalid log level",
		},
		{
			name: "empty storage path",
			mutate: func(c *Config) {
				c.Storage.Path = ""
			},
			wantErr: "path is required",
		},
		{
			name: "otlp without endpoint",
			mutate: func(c *Config) {
				c.Observability.Tracing.Enabled = true
				c.Observability.Tracing.ExporterType = "otlp"
			},
			wantErr: "otlp_endpoint is required",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := NewDefaultConfig()
			tt.mutate(cfg)

			err := cfg.Validate()
			if tt.wantErr == "" {
				if err != nil {
					t.Errorf("Validate() error = %v, want nil", err)
				}
				return
			}
			if err == nil {
				t.Fatal("Validate() error = nil, want error")
			}
			if !strings.Contains(err.Error(), tt.wantErr) {
				t.Errorf("Validate() error = %v, want it to mention %q", err, tt.wantErr)
			}
		})
	}
}

func TestLoaderLoadMissingFileReturnsDefaults(t *testing.T) {
	loader, err := NewLoader(t.TempDir())
	if err != nil {
		t.Fatalf("NewLoader() error = %v", err)
	}

	cfg, err := loader.Load("")
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg.Pricing.DefaultSource != DefaultSource {
		t.Errorf("expected defaults, got source %q", cfg.Pricing.DefaultSource)
	}
}

func TestLoaderLoadOverridesDefaults(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")

	content := `
pricing:
  default_source: openrouter
value:
  baseline: 500
logging:
  format: json
`
	if err := os.WriteFile(path, []byte(content), 0600); err != nil {
		t.Fatal(err)
	}

	loader, err := NewLoader(dir)
	if err != nil {
		t.Fatalf("NewLoader() error = %v", err)
	}

	cfg, err := loader.Load(path)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if cfg.Pricing.DefaultSource != "openrouter" {
		t.Errorf("default_source = %q, want openrouter", cfg.Pricing.DefaultSource)
	}
	if cfg.Value.Baseline != 500 {
		t.Errorf("baseline = %v, want 500", cfg.Value.Baseline)
	}
	if cfg.Logging.Format != "json" {
		t.Errorf("format = %q, want json", cfg.Logging.Format)
	}
	// Unset values keep their defaults
	if cfg.Value.RankDecayBase != DefaultValueRankDecayBase {
		t.Errorf("rank_decay_base = %v, want default", cfg.Value.RankDecayBase)
	}
}

func TestLoaderSaveRoundTrip(t *testing.T) {
	dir := t.TempDir()
	loader, err := NewLoader(dir)
	if err != nil {
		t.Fatalf("NewLoader() error = %v", err)
	}

	cfg := NewDefaultConfig()
	cfg.Pricing.DefaultSource = "helicone"

	if err := loader.Save(cfg, ""); err != nil {
		t.Fatalf("Save() error = %v", err)
	}

	loaded, err := loader.LoadFromFile(loader.DefaultConfigPath())
	if err != nil {
		t.Fatalf("LoadFromFile() error = %v", err)
	}
	if loaded.Pricing.DefaultSource != "helicone" {
		t.Errorf("round-tripped source = %q, want helicone", loaded.Pricing.DefaultSource)
	}
}

func TestLoadFromFileMissing(t *testing.T) {
	loader, err := NewLoader(t.TempDir())
	if err != nil {
		t.Fatalf("NewLoader() error = %v", err)
	}

	if _, err := loader.LoadFromFile(filepath.Join(loader.ConfigDir(), "nope.yaml")); err == nil {
		t.Error("expected error for missing file")
	}
}

func TestExpandPath(t *testing.T) {
	home, err := os.UserHomeDir()
	if err != nil {
		t.Skip("no home directory")
	}

	got, err := ExpandPath("~/.modelworth/modelworth.db")
	if err != nil {
		t.Fatalf("ExpandPath() error = %v", err)
	}
	want := filepath.Join(home, ".modelworth", "modelworth.db")
	if got != want {
		t.Errorf("ExpandPath() = %q, want %q", got, want)
	}

	got, err = ExpandPath("/absolute/path.db")
	if err != nil {
		t.Fatalf("ExpandPath() error = %v", err)
	}
	if got != "/absolute/path.db" {
		t.Errorf("ExpandPath() = %q, want unchanged", got)
	}
}
