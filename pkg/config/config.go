package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"html-extract-go/pkg/utils"

	"github.com/pelletier/go-toml/v2"
)

// File names used by the save flow.
const (
	DefaultSaveFileName   = "form.txt"
	CustomSaveFileName    = "form.html"
	DefaultTimeoutSeconds = 60
)

type Config struct {
	// Browser session
	Browser struct {
		Path      string `toml:"path"`
		Driver    string `toml:"driver"`
		Backend   string `toml:"backend"` // webdriver, rod or static
		Headless  bool   `toml:"headless"`
		NoSandbox bool   `toml:"no_sandbox"`
	} `toml:"browser"`

	// Form defaults for the target element
	Target struct {
		URL      string `toml:"url"`
		Strategy string `toml:"strategy"`
		Value    string `toml:"value"`
	} `toml:"target"`

	// Save options
	Save struct {
		Enabled     bool   `toml:"enabled"`
		DefaultPath string `toml:"default_path"`
		CustomDir   string `toml:"custom_dir"`
	} `toml:"save"`

	// Extraction
	Extract struct {
		TimeoutSeconds int `toml:"timeout_seconds"` // 0 disables the timeout
	} `toml:"extract"`

	// API
	API struct {
		Host          string `toml:"host"`
		Port          int    `toml:"port"`
		MaxConcurrent int    `toml:"max_concurrent"`
		BaseURL       string `toml:"base_url"` // used by the remote backend; empty means http://host:port
	} `toml:"api"`
}

// DefaultConfig returns a config with default values
func DefaultConfig() *Config {
	cfg := &Config{}
	cfg.Browser.Path = "/usr/bin/google-chrome"
	cfg.Browser.Driver = "/usr/bin/chromedriver"
	cfg.Browser.Backend = "webdriver"
	cfg.Browser.Headless = true
	cfg.Target.URL = "https://example.com/login.html"
	cfg.Target.Strategy = "class_name"
	cfg.Target.Value = "login-form"
	cfg.Save.Enabled = true
	cfg.Save.DefaultPath = defaultSavePath()
	cfg.Extract.TimeoutSeconds = DefaultTimeoutSeconds
	cfg.API.Host = "127.0.0.1"
	cfg.API.Port = 8090
	cfg.API.MaxConcurrent = 2
	return cfg
}

func defaultSavePath() string {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return DefaultSaveFileName
	}
	return filepath.Join(homeDir, "Downloads", DefaultSaveFileName)
}

// Timeout returns the extraction timeout, zero meaning none.
func (c *Config) Timeout() time.Duration {
	if c.Extract.TimeoutSeconds <= 0 {
		return 0
	}
	return time.Duration(c.Extract.TimeoutSeconds) * time.Second
}

// ServerURL is the API address the remote backend talks to.
func (c *Config) ServerURL() string {
	if c.API.BaseURL != "" {
		return c.API.BaseURL
	}
	return fmt.Sprintf("http://%s:%d", c.API.Host, c.API.Port)
}

// ConfigPath returns the path to the config file.
// HTML_EXTRACT_CONFIG overrides the default location.
func ConfigPath() (string, error) {
	if p := os.Getenv("HTML_EXTRACT_CONFIG"); p != "" {
		return utils.ExpandHome(p)
	}
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to get home directory: %w", err)
	}
	configDir := filepath.Join(homeDir, ".config", "html-extract")
	return filepath.Join(configDir, "config.toml"), nil
}

// Load reads configuration from ~/.config/html-extract/config.toml
// Creates the file with defaults if it doesn't exist
func Load() (*Config, error) {
	configPath, err := ConfigPath()
	if err != nil {
		return nil, err
	}

	if _, err := os.Stat(configPath); os.IsNotExist(err) {
		cfg := DefaultConfig()
		applyEnv(cfg)

		if err := Save(cfg); err != nil {
			return nil, fmt.Errorf("failed to create default config: %w", err)
		}
		return cfg, nil
	}

	data, err := os.ReadFile(configPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	cfg, err := Parse(data)
	if err != nil {
		return nil, err
	}
	applyEnv(cfg)
	return cfg, nil
}

// Parse decodes TOML and merges it with defaults for any missing values.
func Parse(data []byte) (*Config, error) {
	// Start from defaults so booleans absent from the file keep their default.
	cfg := DefaultConfig()
	if err := toml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	defaultCfg := DefaultConfig()
	if cfg.Browser.Backend == "" {
		cfg.Browser.Backend = defaultCfg.Browser.Backend
	}
	if cfg.Target.Strategy == "" {
		cfg.Target.Strategy = defaultCfg.Target.Strategy
	}
	if cfg.Save.DefaultPath == "" {
		cfg.Save.DefaultPath = defaultCfg.Save.DefaultPath
	}
	if cfg.Extract.TimeoutSeconds < 0 {
		cfg.Extract.TimeoutSeconds = 0
	}
	if cfg.API.Host == "" {
		cfg.API.Host = defaultCfg.API.Host
	}
	if cfg.API.Port == 0 {
		cfg.API.Port = defaultCfg.API.Port
	}
	if cfg.API.MaxConcurrent <= 0 {
		cfg.API.MaxConcurrent = defaultCfg.API.MaxConcurrent
	}

	return cfg, nil
}

// applyEnv overrides values from environment variables if set
func applyEnv(cfg *Config) {
	if v := os.Getenv("HTML_EXTRACT_BROWSER"); v != "" {
		cfg.Browser.Path = v
	}
	if v := os.Getenv("HTML_EXTRACT_DRIVER"); v != "" {
		cfg.Browser.Driver = v
	}
	if v := os.Getenv("HTML_EXTRACT_BACKEND"); v != "" {
		cfg.Browser.Backend = v
	}
}

// Save writes the configuration to the config file
func Save(cfg *Config) error {
	configPath, err := ConfigPath()
	if err != nil {
		return err
	}

	configDir := filepath.Dir(configPath)
	if err := os.MkdirAll(configDir, 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	data, err := toml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	if err := os.WriteFile(configPath, data, 0644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	return nil
}
