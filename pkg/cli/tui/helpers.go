package tui

import (
	"errors"
	"fmt"
	"strings"

	"html-extract-go/pkg/extractor"
	"html-extract-go/pkg/models"
)

// renderInlineWarning renders a warning message inline (without full warning view formatting)
func renderInlineWarning(message string) string {
	return renderWarning(message)
}

// renderProgress renders the in-flight extraction line
func renderProgress(spinnerView string, stage extractor.Stage, message string) string {
	stageLabel := string(stage)
	if stageLabel == "" {
		stageLabel = "starting"
	}
	var b strings.Builder
	b.WriteString(spinnerView)
	b.WriteString(" ")
	b.WriteString(fieldLabelStyle.Render("Stage:"))
	b.WriteString(stageLabel)
	if message != "" {
		b.WriteString("  ")
		b.WriteString(infoStyle.Render(message))
	}
	return b.String()
}

// truncateLeft keeps the tail of long paths, which is the informative part
func truncateLeft(s string, maxLen int) string {
	if maxLen < 4 || len(s) <= maxLen {
		return s
	}
	return "..." + s[len(s)-maxLen+3:]
}

// userFacingError prefixes validation failures so the user knows nothing ran.
// Extraction errors are returned unchanged so their message reaches the user verbatim.
func userFacingError(err error) error {
	if err == nil {
		return nil
	}

	var vErr *models.ValidationError
	if errors.As(err, &vErr) {
		return fmt.Errorf("validation failed: %s", vErr.Error())
	}

	var exErr *extractor.ExtractionError
	if errors.As(err, &exErr) {
		return exErr
	}

	return err
}
