package tui

import (
	"fmt"
	"strings"
	"time"

	"html-extract-go/pkg/models"

	"github.com/charmbracelet/lipgloss"
)

// View implements tea.Model.
func (m *ExtractForm) View() string {
	switch m.modal {
	case modalPicker:
		if m.picker != nil {
			return m.picker.View()
		}
	case modalSavePrompt:
		return m.renderSavePrompt()
	}

	var b strings.Builder

	b.WriteString(sectionStyle.Render("Browser"))
	b.WriteString("\n")
	b.WriteString(m.renderInputRow(fieldBrowser, "Chrome path:", &m.browserInput))
	b.WriteString(m.renderInputRow(fieldDriver, "Driver path:", &m.driverInput))
	b.WriteString("\n")

	b.WriteString(sectionStyle.Render("Target"))
	b.WriteString("\n")
	b.WriteString(m.renderInputRow(fieldURL, "URL:", &m.urlInput))
	b.WriteString(m.renderStrategyRow())
	b.WriteString(m.renderInputRow(fieldValue, "Element name:", &m.valueInput))
	b.WriteString("\n")

	b.WriteString(sectionStyle.Render("Save options"))
	b.WriteString("\n")
	b.WriteString(m.renderSaveRows())
	b.WriteString("\n")

	b.WriteString(m.renderButtons())
	b.WriteString("\n")

	if m.phase == phaseRunning {
		b.WriteString(renderProgress(m.spinner.View(), m.progressStage, m.progressMsg))
		b.WriteString("\n")
	} else if m.notice != "" {
		b.WriteString(m.renderNotice())
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(m.renderResult())

	return b.String()
}

func (m *ExtractForm) marker(f field) string {
	if m.focus == f && m.modal == modalNone {
		return selectedMarkerStyle.Render("→ ")
	}
	return "  "
}

func (m *ExtractForm) label(f field, text string) string {
	style := fieldLabelStyle
	if !m.fieldEnabled(f) {
		style = disabledLabelStyle
	}
	return style.Width(16).Render(text)
}

func (m *ExtractForm) renderInputRow(f field, label string, in interface{ View() string }) string {
	view := in.View()
	if !m.fieldEnabled(f) {
		view = mutedStyle.Render(m.input(f).Value())
	}
	return m.marker(f) + m.label(f, label) + view + "\n"
}

func renderOption(selected bool, text string, enabled bool) string {
	mark := "( )"
	if selected {
		mark = "(•)"
	}
	s := mark + " " + text
	if !enabled {
		return mutedStyle.Render(s)
	}
	if selected {
		return boldStyle.Render(s)
	}
	return s
}

func (m *ExtractForm) renderStrategyRow() string {
	var opts []string
	for _, s := range models.Strategies {
		opts = append(opts, renderOption(m.strategy == s, string(s), true))
	}
	return m.marker(fieldStrategy) + m.label(fieldStrategy, "Element type:") + strings.Join(opts, "   ") + "\n"
}

func (m *ExtractForm) renderSaveRows() string {
	var b strings.Builder

	check := "[ ]"
	if m.saveEnabled {
		check = "[x]"
	}
	b.WriteString(m.marker(fieldSaveToggle) + m.label(fieldSaveToggle, "Save as file:") + check + "\n")

	defaultLabel := fmt.Sprintf("Default path (%s)", truncateLeft(m.defaultPath, 40))
	b.WriteString(m.marker(fieldSaveMode) + m.label(fieldSaveMode, "Location:") +
		renderOption(m.saveMode == SaveModeDefault, defaultLabel, m.radiosEnabled()) + "   " +
		renderOption(m.saveMode == SaveModeCustom, "Custom directory", m.radiosEnabled()) + "\n")

	b.WriteString(m.renderInputRow(fieldCustomDir, "Directory:", &m.customDirInput))
	if m.customDirEnabled() && strings.TrimSpace(m.customDirInput.Value()) == "" {
		b.WriteString("  " + renderInlineWarning("No directory set; you will be asked for a file path on save"))
		b.WriteString("\n")
	}
	return b.String()
}

func (m *ExtractForm) renderButton(f field, text string) string {
	switch {
	case !m.fieldEnabled(f):
		return disabledButtonStyle.Render(text)
	case m.focus == f:
		return activeButtonStyle.Render(text)
	}
	return buttonStyle.Render(text)
}

func (m *ExtractForm) renderButtons() string {
	return "  " + lipgloss.JoinHorizontal(lipgloss.Top,
		m.renderButton(fieldExtractButton, m.triggerLabel()),
		m.renderButton(fieldCopyButton, "Copy to clipboard"),
		m.renderButton(fieldSaveButton, "Save to file"),
	) + "\n"
}

func (m *ExtractForm) renderNotice() string {
	switch m.noticeKind {
	case noticeSuccess:
		s := renderSuccess(m.notice)
		if m.phase == phaseSucceeded && m.duration > 0 && strings.HasPrefix(m.notice, "Element") {
			s += mutedStyle.Render(fmt.Sprintf(" (%s)", m.duration.Round(time.Millisecond)))
		}
		return s
	case noticeError:
		return renderError(m.notice)
	case noticeInfo:
		return infoStyle.Render(m.notice)
	}
	return ""
}

func (m *ExtractForm) renderResult() string {
	var b strings.Builder
	b.WriteString(fieldLabelStyle.Render("Element HTML:"))
	if !m.hasResult {
		b.WriteString(mutedStyle.Render("(nothing extracted yet)"))
		b.WriteString("\n")
		return b.String()
	}
	b.WriteString(mutedStyle.Render(fmt.Sprintf("%d characters", len(m.result))))
	b.WriteString("\n")
	b.WriteString(resultBoxStyle.Render(m.resultView.View()))
	b.WriteString("\n")
	return b.String()
}

func (m *ExtractForm) refreshResultView() {
	if !m.hasResult {
		m.resultView.SetContent("")
		return
	}
	wrapped := lipgloss.NewStyle().Width(m.resultView.Width).Render(m.result)
	m.resultView.SetContent(wrapped)
	m.resultView.GotoTop()
}

func (m *ExtractForm) renderSavePrompt() string {
	var b strings.Builder
	b.WriteString(renderTitle("Save HTML file"))
	b.WriteString(fieldLabelStyle.Render("Full file path:"))
	b.WriteString("\n")
	b.WriteString(m.savePrompt.View())
	b.WriteString("\n\n")
	b.WriteString(helpStyle.Render("(Enter to save, Esc to cancel)"))
	b.WriteString("\n")
	return b.String()
}
