package utils

import (
	"fmt"
	"net/url"
	"os"
	"strings"
)

// ValidateURL trims and validates a URL string, returning a normalized value
// or an error if the URL is empty or invalid.
func ValidateURL(raw string) (string, error) {
	s := strings.TrimSpace(raw)
	if s == "" {
		return "", fmt.Errorf("URL is required")
	}
	u, err := url.Parse(s)
	if err != nil {
		return "", fmt.Errorf("invalid URL: %w", err)
	}
	if u.Scheme == "" || (u.Host == "" && u.Scheme != "file") {
		return "", fmt.Errorf("invalid URL: %q needs a scheme and host", s)
	}
	return s, nil
}

// ExpandHome replaces a leading ~ with the user's home directory.
func ExpandHome(p string) (string, error) {
	if !strings.HasPrefix(p, "~") {
		return p, nil
	}
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to get home directory: %w", err)
	}
	return strings.Replace(p, "~", homeDir, 1), nil
}
