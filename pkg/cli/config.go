package cli

import (
	"fmt"
	"strconv"
	"strings"

	"html-extract-go/pkg/cli/client"
	"html-extract-go/pkg/config"
	"html-extract-go/pkg/extractor"
	"html-extract-go/pkg/models"

	"github.com/pelletier/go-toml/v2"
)

// ShowConfig displays the current configuration
func (a *App) ShowConfig() {
	data, err := toml.Marshal(a.cfg)
	if err != nil {
		fmt.Fprintf(a.errOut, "Error marshaling config: %v\n", err)
		return
	}
	fmt.Fprintln(a.out, string(data))
}

// SetConfig sets a configuration value and saves the file.
// Format: section.key=value (e.g., "browser.path=/usr/bin/chromium")
func (a *App) SetConfig(setStr string) error {
	if err := applySetting(a.cfg, setStr); err != nil {
		return err
	}
	return config.Save(a.cfg)
}

func applySetting(cfg *config.Config, setStr string) error {
	parts := strings.SplitN(setStr, "=", 2)
	if len(parts) != 2 {
		return fmt.Errorf("invalid format: expected 'section.key=value'")
	}

	keyPath := strings.Split(parts[0], ".")
	value := parts[1]

	if len(keyPath) != 2 {
		return fmt.Errorf("invalid key format: expected 'section.key'")
	}

	section := keyPath[0]
	key := keyPath[1]

	switch section {
	case "browser":
		switch key {
		case "path":
			cfg.Browser.Path = value
		case "driver":
			cfg.Browser.Driver = value
		case "backend":
			if !strings.EqualFold(value, client.BackendRemote) {
				if _, err := extractor.New(value, extractor.DefaultOptions()); err != nil {
					return err
				}
			}
			cfg.Browser.Backend = strings.ToLower(value)
		case "headless":
			b, err := parseBool(key, value)
			if err != nil {
				return err
			}
			cfg.Browser.Headless = b
		case "no_sandbox":
			b, err := parseBool(key, value)
			if err != nil {
				return err
			}
			cfg.Browser.NoSandbox = b
		default:
			return fmt.Errorf("unknown browser key: %s", key)
		}
	case "target":
		switch key {
		case "url":
			cfg.Target.URL = value
		case "strategy":
			s, err := models.ParseStrategy(value)
			if err != nil {
				return err
			}
			cfg.Target.Strategy = string(s)
		case "value":
			cfg.Target.Value = value
		default:
			return fmt.Errorf("unknown target key: %s", key)
		}
	case "save":
		switch key {
		case "enabled":
			b, err := parseBool(key, value)
			if err != nil {
				return err
			}
			cfg.Save.Enabled = b
		case "default_path":
			cfg.Save.DefaultPath = value
		case "custom_dir":
			cfg.Save.CustomDir = value
		default:
			return fmt.Errorf("unknown save key: %s", key)
		}
	case "extract":
		switch key {
		case "timeout_seconds":
			var timeout int
			if _, err := fmt.Sscanf(value, "%d", &timeout); err != nil || timeout < 0 {
				return fmt.Errorf("invalid timeout_seconds value: %s", value)
			}
			cfg.Extract.TimeoutSeconds = timeout
		default:
			return fmt.Errorf("unknown extract key: %s", key)
		}
	case "api":
		switch key {
		case "host":
			cfg.API.Host = value
		case "port":
			var port int
			if _, err := fmt.Sscanf(value, "%d", &port); err != nil {
				return fmt.Errorf("invalid port value: %s", value)
			}
			cfg.API.Port = port
		case "base_url":
			cfg.API.BaseURL = value
		case "max_concurrent":
			var n int
			if _, err := fmt.Sscanf(value, "%d", &n); err != nil || n <= 0 {
				return fmt.Errorf("invalid max_concurrent value: %s", value)
			}
			cfg.API.MaxConcurrent = n
		default:
			return fmt.Errorf("unknown api key: %s", key)
		}
	default:
		return fmt.Errorf("unknown section: %s", section)
	}

	return nil
}

func parseBool(key, value string) (bool, error) {
	b, err := strconv.ParseBool(value)
	if err != nil {
		return false, fmt.Errorf("invalid %s value: %s", key, value)
	}
	return b, nil
}
