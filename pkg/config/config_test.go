package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestParse_MergesDefaults(t *testing.T) {
	cfg, err := Parse([]byte(`
[browser]
path = "/opt/chrome/chrome"

[target]
value = "signin"

[api]
port = 9000
`))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.Browser.Path != "/opt/chrome/chrome" {
		t.Fatalf("expected browser path from file, got %q", cfg.Browser.Path)
	}
	if cfg.Browser.Backend != "webdriver" {
		t.Fatalf("expected default backend, got %q", cfg.Browser.Backend)
	}
	if !cfg.Browser.Headless || !cfg.Save.Enabled {
		t.Fatal("expected boolean defaults to survive a partial file")
	}
	if cfg.Target.Value != "signin" || cfg.Target.Strategy != "class_name" {
		t.Fatalf("unexpected target: %+v", cfg.Target)
	}
	if cfg.API.Port != 9000 || cfg.API.MaxConcurrent != 2 {
		t.Fatalf("unexpected api section: %+v", cfg.API)
	}
}

func TestParse_Invalid(t *testing.T) {
	if _, err := Parse([]byte("[browser\npath=")); err == nil {
		t.Fatal("expected parse error")
	}
}

func TestTimeout(t *testing.T) {
	cfg := DefaultConfig()
	if cfg.Timeout() != DefaultTimeoutSeconds*time.Second {
		t.Fatalf("unexpected default timeout %v", cfg.Timeout())
	}
	cfg.Extract.TimeoutSeconds = 0
	if cfg.Timeout() != 0 {
		t.Fatalf("expected no timeout, got %v", cfg.Timeout())
	}
}

func TestLoad_CreatesDefaultFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "config.toml")
	t.Setenv("HTML_EXTRACT_CONFIG", path)
	t.Setenv("HTML_EXTRACT_DRIVER", "/tmp/chromedriver")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.Browser.Driver != "/tmp/chromedriver" {
		t.Fatalf("expected env override, got %q", cfg.Browser.Driver)
	}
	if _, err := os.Stat(path); err != nil {
		t.Fatalf("expected config file to be created: %v", err)
	}

	cfg.Target.URL = "https://example.org"
	if err := Save(cfg); err != nil {
		t.Fatalf("unexpected save error: %v", err)
	}
	reloaded, err := Load()
	if err != nil {
		t.Fatalf("unexpected reload error: %v", err)
	}
	if reloaded.Target.URL != "https://example.org" {
		t.Fatalf("expected saved URL, got %q", reloaded.Target.URL)
	}
}

func TestServerURL(t *testing.T) {
	cfg := DefaultConfig()
	if got := cfg.ServerURL(); got != "http://127.0.0.1:8090" {
		t.Fatalf("unexpected derived url %q", got)
	}
	cfg.API.BaseURL = "https://extract.internal"
	if got := cfg.ServerURL(); got != "https://extract.internal" {
		t.Fatalf("expected base_url to win, got %q", got)
	}
}
