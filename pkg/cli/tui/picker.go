package tui

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/bubbles/filepicker"
	tea "github.com/charmbracelet/bubbletea"
)

// pathPicker is the browse dialog: a file picker bound to the form field it fills.
type pathPicker struct {
	target  field
	title   string
	dirOnly bool
	model   filepicker.Model
}

func newPathPicker(target field, title string, dirOnly bool, current string, height int) *pathPicker {
	fp := filepicker.New()
	fp.CurrentDirectory = startDirectory(current)
	fp.DirAllowed = dirOnly
	fp.FileAllowed = !dirOnly
	fp.ShowHidden = false
	fp.AutoHeight = false
	if height < 5 {
		height = 5
	}
	fp.Height = height

	return &pathPicker{
		target:  target,
		title:   title,
		dirOnly: dirOnly,
		model:   fp,
	}
}

// startDirectory opens the picker next to the current value when possible.
func startDirectory(current string) string {
	current = strings.TrimSpace(current)
	if current != "" {
		if info, err := os.Stat(current); err == nil {
			if info.IsDir() {
				return current
			}
			return filepath.Dir(current)
		}
		if dir := filepath.Dir(current); dir != "." {
			if info, err := os.Stat(dir); err == nil && info.IsDir() {
				return dir
			}
		}
	}
	if home, err := os.UserHomeDir(); err == nil {
		return home
	}
	return "."
}

func (p *pathPicker) Init() tea.Cmd {
	return p.model.Init()
}

// Update forwards msg to the file picker and reports a selected path, if any.
func (p *pathPicker) Update(msg tea.Msg) (string, tea.Cmd) {
	var cmd tea.Cmd
	p.model, cmd = p.model.Update(msg)
	if ok, path := p.model.DidSelectFile(msg); ok {
		return path, cmd
	}
	return "", cmd
}

func (p *pathPicker) View() string {
	var b strings.Builder
	b.WriteString(renderTitle(p.title))
	b.WriteString(mutedStyle.Render(p.model.CurrentDirectory))
	b.WriteString("\n\n")
	b.WriteString(p.model.View())
	b.WriteString("\n")
	hint := "(Enter to select a file, ←/→ to move between folders, Esc to cancel)"
	if p.dirOnly {
		hint = "(Enter on a folder to select it, ← to go up, Esc to cancel)"
	}
	b.WriteString(helpStyle.Render(hint))
	return b.String()
}
