package tui

import (
	"io"
	"os"

	"github.com/atotto/clipboard"
	"github.com/aymanbagabas/go-osc52/v2"

	"html-extract-go/pkg/cli/logger"
)

// Clipboard writes text to a clipboard.
type Clipboard interface {
	WriteAll(text string) error
}

// SystemClipboard uses the OS clipboard and falls back to an OSC52 escape
// sequence when no clipboard utility is available (e.g. over SSH).
type SystemClipboard struct {
	fallback io.Writer
}

// NewSystemClipboard returns a clipboard that falls back to OSC52 on stderr.
func NewSystemClipboard() *SystemClipboard {
	return &SystemClipboard{fallback: os.Stderr}
}

func (c *SystemClipboard) WriteAll(text string) error {
	err := clipboard.WriteAll(text)
	if err == nil {
		return nil
	}
	if c.fallback == nil {
		return err
	}
	logger.LogError(err, "system clipboard unavailable, using OSC52")
	if _, oscErr := osc52.New(text).WriteTo(c.fallback); oscErr != nil {
		return err
	}
	return nil
}
