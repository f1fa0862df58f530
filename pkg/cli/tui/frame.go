package tui

import (
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"html-extract-go/pkg/cli/logger"
)

// Frame wraps a model with a title header, a shortcut footer and a help overlay.
type Frame struct {
	model  tea.Model
	width  int
	height int
	config FrameConfig

	showHelp    bool
	helpContent string
}

// FrameConfig configures the frame
type FrameConfig struct {
	Title       string
	Version     string
	MinWidth    int           // Minimum terminal width
	MinHeight   int           // Minimum terminal height
	HelpContent func() string // Function to generate help text
}

const (
	frameHeaderHeight = 3
	frameFooterHeight = 2
)

// NewFrame creates a new frame around a model
func NewFrame(model tea.Model, config FrameConfig) *Frame {
	return &Frame{
		model:  model,
		config: config,
		width:  80, // Default
		height: 24, // Default
	}
}

func (f *Frame) Init() tea.Cmd {
	if f.model == nil {
		return nil
	}
	return f.model.Init()
}

func (f *Frame) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		logger.Debug("Frame.Update: WindowSizeMsg, width=%d, height=%d", msg.Width, msg.Height)
		f.width = msg.Width
		f.height = msg.Height
		if f.config.MinWidth > 0 && f.width < f.config.MinWidth {
			f.width = f.config.MinWidth
		}
		if f.config.MinHeight > 0 && f.height < f.config.MinHeight {
			f.height = f.config.MinHeight
		}

		// The wrapped model only gets the space between header and footer.
		inner := tea.WindowSizeMsg{
			Width:  f.width,
			Height: f.height - frameHeaderHeight - frameFooterHeight,
		}
		var cmd tea.Cmd
		if f.model != nil {
			f.model, cmd = f.model.Update(inner)
		}
		return f, cmd

	case tea.KeyMsg:
		switch msg.String() {
		case "f1":
			f.showHelp = !f.showHelp
			if f.showHelp && f.config.HelpContent != nil {
				f.helpContent = f.config.HelpContent()
			}
			return f, nil
		case "esc":
			if f.showHelp {
				f.showHelp = false
				return f, nil
			}
		}
		// While help is showing, only ctrl+c reaches the model.
		if f.showHelp && msg.String() != "ctrl+c" {
			return f, nil
		}
	}

	var cmd tea.Cmd
	if f.model != nil {
		f.model, cmd = f.model.Update(msg)
	}
	return f, cmd
}

func (f *Frame) View() string {
	if f.showHelp {
		return f.renderHelpOverlay()
	}

	content := ""
	if f.model != nil {
		content = f.model.View()
	}

	return lipgloss.JoinVertical(lipgloss.Left,
		f.renderHeader(),
		content,
		f.renderFooter(),
	)
}

func (f *Frame) renderHeader() string {
	title := f.config.Title
	if f.config.Version != "" {
		title += " " + mutedStyle.Render(f.config.Version)
	}
	return titleStyle.Render(title) + "\n" + renderDivider(f.width)
}

func (f *Frame) renderFooter() string {
	shortcuts := []string{"ctrl+r extract", "ctrl+y copy", "ctrl+s save", "ctrl+o browse", "F1 help", "esc quit"}
	return "\n" + helpStyle.Render(strings.Join(shortcuts, " • "))
}

func (f *Frame) renderHelpOverlay() string {
	helpText := f.helpContent
	if helpText == "" {
		helpText = "No help available"
	}

	overlayStyle := lipgloss.NewStyle().
		Width(f.width-2).
		Border(lipgloss.RoundedBorder()).
		BorderForeground(colorPrimary).
		Padding(1, 2)

	title := titleStyle.Render("Keyboard Shortcuts")
	closeHint := helpStyle.Render("Press F1 or Esc to close")

	return overlayStyle.Render(
		lipgloss.JoinVertical(lipgloss.Left, title, helpText, closeHint),
	)
}
