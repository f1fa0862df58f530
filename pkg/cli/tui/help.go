package tui

import (
	"fmt"
	"strings"
)

// HelpItem represents a single keyboard shortcut and its description
type HelpItem struct {
	Key         string
	Description string
}

// CommonHelpContent returns help for frame-level commands
func CommonHelpContent() string {
	items := []HelpItem{
		{"F1", "Toggle help"},
		{"Esc", "Close dialog / Quit"},
		{"Ctrl+C", "Force quit"},
	}
	return renderHelpItems(items)
}

// ExtractFormHelpContent returns help for the extraction form
func ExtractFormHelpContent() string {
	items := []HelpItem{
		{"Tab / Shift+Tab", "Next / previous field"},
		{"↑ / ↓", "Next / previous field"},
		{"Space / ← / →", "Toggle option (strategy, save, path mode)"},
		{"Enter", "Next field / press focused button"},
		{"Ctrl+R", "Extract element HTML"},
		{"Ctrl+Y", "Copy result to clipboard"},
		{"Ctrl+S", "Save result to file"},
		{"Ctrl+O", "Browse for the focused path"},
		{"PgUp / PgDn", "Scroll result"},
	}
	return renderHelpItems(items) + "\n" + CommonHelpContent()
}

// renderHelpItems formats help items into a readable string
func renderHelpItems(items []HelpItem) string {
	var b strings.Builder
	keyStyle := boldStyle.Foreground(colorPrimary)
	for _, item := range items {
		b.WriteString(fmt.Sprintf("  %s  %s\n",
			keyStyle.Render(fmt.Sprintf("%-16s", item.Key)),
			item.Description))
	}
	return b.String()
}
