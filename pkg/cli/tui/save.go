package tui

import (
	"path/filepath"
	"strings"

	"html-extract-go/pkg/config"
)

// SaveMode is the selected save-location radio option.
type SaveMode int

const (
	SaveModeNone SaveMode = iota
	SaveModeDefault
	SaveModeCustom
)

// SaveOptions mirrors the save controls of the form.
type SaveOptions struct {
	Enabled     bool
	Mode        SaveMode
	DefaultPath string
	CustomDir   string
}

// SaveTarget is the outcome of resolving where a result goes.
type SaveTarget struct {
	Skip   bool   // saving is switched off
	Prompt bool   // ask the user for a full path
	Path   string // resolved path when neither Skip nor Prompt
}

// ResolveSavePath picks the file path: the default path, then the custom
// directory joined with the custom file name, then an interactive prompt.
func ResolveSavePath(opts SaveOptions) SaveTarget {
	if !opts.Enabled {
		return SaveTarget{Skip: true}
	}
	switch {
	case opts.Mode == SaveModeDefault && strings.TrimSpace(opts.DefaultPath) != "":
		return SaveTarget{Path: opts.DefaultPath}
	case opts.Mode == SaveModeCustom && strings.TrimSpace(opts.CustomDir) != "":
		return SaveTarget{Path: filepath.Join(strings.TrimSpace(opts.CustomDir), config.CustomSaveFileName)}
	}
	return SaveTarget{Prompt: true}
}
