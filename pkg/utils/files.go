package utils

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// WriteTextFile writes content as UTF-8 text to path, expanding a leading ~
// and creating the parent directory. It returns the path actually written.
func WriteTextFile(path, content string) (string, error) {
	path, err := ExpandHome(strings.TrimSpace(path))
	if err != nil {
		return "", err
	}
	if path == "" {
		return "", fmt.Errorf("file path is required")
	}
	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return "", fmt.Errorf("failed to create directory %s: %w", dir, err)
		}
	}
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		return "", fmt.Errorf("failed to write %s: %w", path, err)
	}
	return path, nil
}
