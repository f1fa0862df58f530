package models

import (
	"fmt"
	"strings"
	"time"
)

// LookupStrategy selects the attribute used to locate the element.
type LookupStrategy string

const (
	ByClassName LookupStrategy = "class_name"
	ByID        LookupStrategy = "id"
)

// Strategies lists the supported strategies in display order.
var Strategies = []LookupStrategy{ByClassName, ByID}

// ParseStrategy converts user input into a LookupStrategy.
func ParseStrategy(s string) (LookupStrategy, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "class_name", "class", "classname":
		return ByClassName, nil
	case "id":
		return ByID, nil
	}
	return "", fmt.Errorf("unknown lookup strategy %q (expected class_name or id)", s)
}

func (s LookupStrategy) String() string {
	return string(s)
}

// Valid reports whether s is one of the canonical strategies. Use
// ParseStrategy first for free-form input.
func (s LookupStrategy) Valid() bool {
	return s == ByClassName || s == ByID
}

// ExtractionRequest carries everything needed for one extraction run
type ExtractionRequest struct {
	BrowserPath string         `json:"browser_path" toml:"browser_path"`
	DriverPath  string         `json:"driver_path" toml:"driver_path"`
	TargetURL   string         `json:"url" toml:"url"`
	Strategy    LookupStrategy `json:"strategy" toml:"strategy"`
	Value       string         `json:"value" toml:"value"`
}

// Validate reports every required field that is empty, then rejects a
// strategy that is not canonical.
func (r ExtractionRequest) Validate() error {
	var missing []string
	if strings.TrimSpace(r.BrowserPath) == "" {
		missing = append(missing, "browser path")
	}
	if strings.TrimSpace(r.DriverPath) == "" {
		missing = append(missing, "driver path")
	}
	if strings.TrimSpace(r.TargetURL) == "" {
		missing = append(missing, "URL")
	}
	if r.Strategy == "" {
		missing = append(missing, "lookup strategy")
	}
	if strings.TrimSpace(r.Value) == "" {
		missing = append(missing, "element name")
	}
	if len(missing) > 0 {
		return &ValidationError{Fields: missing}
	}
	if !r.Strategy.Valid() {
		return &ValidationError{
			Fields: []string{"lookup strategy"},
			Reason: fmt.Sprintf("unknown lookup strategy %q (expected class_name or id)", r.Strategy),
		}
	}
	return nil
}

// ValidationError is returned before any browser work starts.
type ValidationError struct {
	Fields []string
	Reason string
}

func (e *ValidationError) Error() string {
	if e.Reason != "" {
		return e.Reason
	}
	return "please fill in all fields: " + strings.Join(e.Fields, ", ")
}

// ExtractionResult is the outcome reported by the one-shot CLI and the API.
type ExtractionResult struct {
	RequestID   string         `json:"request_id,omitempty"`
	URL         string         `json:"url"`
	Strategy    LookupStrategy `json:"strategy"`
	Value       string         `json:"value"`
	Backend     string         `json:"backend"`
	Markup      string         `json:"markup"`
	Duration    time.Duration  `json:"duration_ns"`
	ExtractedAt time.Time      `json:"extracted_at"`
}
