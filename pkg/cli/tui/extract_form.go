package tui

import (
	"context"
	"strings"
	"sync"
	"time"

	"html-extract-go/pkg/cli/logger"
	"html-extract-go/pkg/extractor"
	"html-extract-go/pkg/models"
	"html-extract-go/pkg/utils"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
)

const (
	labelExtract    = "Extract HTML"
	labelExtracting = "Extracting..."
)

// field identifies a focusable control of the form, in tab order.
type field int

const (
	fieldBrowser field = iota
	fieldDriver
	fieldURL
	fieldStrategy
	fieldValue
	fieldSaveToggle
	fieldSaveMode
	fieldCustomDir
	fieldExtractButton
	fieldCopyButton
	fieldSaveButton
	fieldCount
)

// phase is the extraction state machine. Succeeded and Failed behave like
// Idle; they only remember how the last run ended.
type phase int

const (
	phaseIdle phase = iota
	phaseRunning
	phaseSucceeded
	phaseFailed
)

type noticeKind int

const (
	noticeNone noticeKind = iota
	noticeSuccess
	noticeError
	noticeInfo
)

type modal int

const (
	modalNone modal = iota
	modalSavePrompt
	modalPicker
)

// FormDefaults pre-fills the form.
type FormDefaults struct {
	BrowserPath string
	DriverPath  string
	URL         string
	Strategy    models.LookupStrategy
	Value       string
	SaveEnabled bool
	DefaultPath string
	CustomDir   string
}

// ExtractForm is the Bubble Tea model for the extraction form. It owns the
// current result; nothing else reads or writes it.
type ExtractForm struct {
	// Core dependencies
	extractor extractor.Extractor
	clipboard Clipboard
	timeout   time.Duration

	// Inputs
	browserInput   textinput.Model
	driverInput    textinput.Model
	urlInput       textinput.Model
	valueInput     textinput.Model
	customDirInput textinput.Model
	strategy       models.LookupStrategy
	saveEnabled    bool
	saveMode       SaveMode
	defaultPath    string
	focus          field

	// Flow / state
	phase      phase
	result     string
	hasResult  bool
	notice     string
	noticeKind noticeKind

	// Extraction state
	runID         int
	cancel        context.CancelFunc
	progressStage extractor.Stage
	progressMsg   string
	startTime     time.Time
	duration      time.Duration
	spinner       spinner.Model
	workers       sync.WaitGroup

	// Dialogs
	modal      modal
	savePrompt textinput.Model
	picker     *pathPicker

	// Result display
	resultView viewport.Model
	width      int
	height     int
}

// NewExtractForm creates the extraction form model.
func NewExtractForm(
	ex extractor.Extractor,
	cb Clipboard,
	timeout time.Duration,
	defaults FormDefaults,
) *ExtractForm {
	newInput := func(placeholder, value string, limit int) textinput.Model {
		in := textinput.New()
		in.Placeholder = placeholder
		in.CharLimit = limit
		in.Width = 60
		in.SetValue(value)
		return in
	}

	strategy := defaults.Strategy
	if strategy == "" {
		strategy = models.ByClassName
	}

	prompt := newInput("/path/to/form.txt", "", 4096)

	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = infoStyle

	m := &ExtractForm{
		extractor:      ex,
		clipboard:      cb,
		timeout:        timeout,
		browserInput:   newInput("/usr/bin/google-chrome", defaults.BrowserPath, 4096),
		driverInput:    newInput("/usr/bin/chromedriver", defaults.DriverPath, 4096),
		urlInput:       newInput("https://example.com/login.html", defaults.URL, 2048),
		valueInput:     newInput("login-form", defaults.Value, 512),
		customDirInput: newInput("/path/to/directory", defaults.CustomDir, 4096),
		strategy:       strategy,
		saveEnabled:    defaults.SaveEnabled,
		saveMode:       SaveModeDefault,
		defaultPath:    defaults.DefaultPath,
		focus:          fieldBrowser,
		phase:          phaseIdle,
		savePrompt:     prompt,
		spinner:        sp,
		resultView:     viewport.New(80, 8),
		width:          80,
		height:         24,
	}
	m.focusCurrentField()
	return m
}

// Init implements tea.Model.
func (m *ExtractForm) Init() tea.Cmd {
	return textinput.Blink
}

// Shutdown cancels an in-flight extraction and waits up to wait for its
// browser and driver to be released.
func (m *ExtractForm) Shutdown(wait time.Duration) {
	if m.cancel != nil {
		m.cancel()
	}
	done := make(chan struct{})
	go func() {
		m.workers.Wait()
		close(done)
	}()
	select {
	case <-done:
	case <-time.After(wait):
		logger.Log("shutdown: extraction still running after %s", wait)
	}
}

// Update implements tea.Model.
func (m *ExtractForm) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.layout()
		return m, nil

	case progressEnvelope:
		if msg.msg.runID == m.runID && m.phase == phaseRunning {
			m.progressStage = msg.msg.stage
			m.progressMsg = msg.msg.message
		}
		return m, waitForProgress(msg.next)

	case extractDoneMsg:
		if msg.runID != m.runID {
			return m, nil
		}
		return m.finishExtraction(msg)

	case copyDoneMsg:
		if msg.err != nil {
			logger.LogError(msg.err, "copy to clipboard failed")
			m.setNotice(noticeError, "Copy failed: "+msg.err.Error())
			return m, nil
		}
		m.setNotice(noticeSuccess, "HTML copied to clipboard")
		return m, nil

	case saveDoneMsg:
		if msg.err != nil {
			logger.LogError(msg.err, "save failed")
			m.setNotice(noticeError, "Error saving file: "+msg.err.Error())
			return m, nil
		}
		logger.Log("result saved to %s", msg.path)
		m.setNotice(noticeSuccess, "File saved to "+msg.path)
		return m, nil

	case spinner.TickMsg:
		if m.phase != phaseRunning {
			return m, nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	case tea.KeyMsg:
		switch m.modal {
		case modalSavePrompt:
			return m.handleSavePromptKey(msg)
		case modalPicker:
			return m.handlePickerKey(msg)
		}
		return m.handleFormKey(msg)
	}

	// Non-key messages (blink, directory listings) go to the active widget.
	if m.modal == modalPicker && m.picker != nil {
		_, cmd := m.picker.Update(msg)
		return m, cmd
	}
	if m.modal == modalSavePrompt {
		var cmd tea.Cmd
		m.savePrompt, cmd = m.savePrompt.Update(msg)
		return m, cmd
	}
	return m, m.updateFocusedInput(msg)
}

func (m *ExtractForm) handleFormKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "ctrl+c", "esc":
		if m.cancel != nil {
			m.cancel()
		}
		return m, tea.Quit
	case "ctrl+r":
		return m.startExtraction()
	case "ctrl+y":
		return m, m.copyResult()
	case "ctrl+s":
		return m.saveResult()
	case "ctrl+o":
		return m.openPicker()
	case "tab", "down":
		m.moveFocus(1)
		return m, textinput.Blink
	case "shift+tab", "up":
		m.moveFocus(-1)
		return m, textinput.Blink
	case "pgup", "pgdown":
		var cmd tea.Cmd
		m.resultView, cmd = m.resultView.Update(msg)
		return m, cmd
	}

	switch m.focus {
	case fieldStrategy:
		switch msg.String() {
		case " ", "left", "right", "h", "l":
			m.toggleStrategy()
			return m, nil
		case "enter":
			m.moveFocus(1)
			return m, textinput.Blink
		}
		return m, nil

	case fieldSaveToggle:
		switch msg.String() {
		case " ", "enter":
			m.setSaveEnabled(!m.saveEnabled)
			return m, nil
		}
		return m, nil

	case fieldSaveMode:
		switch msg.String() {
		case " ", "left", "right", "h", "l":
			if m.saveMode == SaveModeCustom {
				m.selectSaveMode(SaveModeDefault)
			} else {
				m.selectSaveMode(SaveModeCustom)
			}
			return m, nil
		case "enter":
			m.moveFocus(1)
			return m, textinput.Blink
		}
		return m, nil

	case fieldExtractButton, fieldCopyButton, fieldSaveButton:
		switch msg.String() {
		case " ", "enter":
			return m.pressButton(m.focus)
		}
		return m, nil
	}

	if msg.String() == "enter" {
		m.moveFocus(1)
		return m, textinput.Blink
	}
	return m, m.updateFocusedInput(msg)
}

func (m *ExtractForm) pressButton(f field) (tea.Model, tea.Cmd) {
	switch f {
	case fieldExtractButton:
		return m.startExtraction()
	case fieldCopyButton:
		return m, m.copyResult()
	case fieldSaveButton:
		return m.saveResult()
	}
	return m, nil
}

// request builds the extraction request from the form fields.
func (m *ExtractForm) request() models.ExtractionRequest {
	return models.ExtractionRequest{
		BrowserPath: strings.TrimSpace(m.browserInput.Value()),
		DriverPath:  strings.TrimSpace(m.driverInput.Value()),
		TargetURL:   strings.TrimSpace(m.urlInput.Value()),
		Strategy:    m.strategy,
		Value:       strings.TrimSpace(m.valueInput.Value()),
	}
}

// startExtraction validates the form and hands the request to a background command.
func (m *ExtractForm) startExtraction() (tea.Model, tea.Cmd) {
	if !m.triggerEnabled() {
		return m, nil
	}

	req := m.request()
	if err := req.Validate(); err != nil {
		m.setNotice(noticeError, userFacingError(err).Error())
		return m, nil
	}
	if _, err := utils.ValidateURL(req.TargetURL); err != nil {
		m.setNotice(noticeError, "validation failed: "+err.Error())
		return m, nil
	}

	m.runID++
	m.phase = phaseRunning
	m.progressStage = ""
	m.progressMsg = "Starting..."
	m.startTime = time.Now()
	m.duration = 0
	m.setNotice(noticeNone, "")

	ctx, cancel := context.WithCancel(context.Background())
	m.cancel = cancel

	logger.Log("extraction started: run=%d backend=%s url=%s %s=%q",
		m.runID, m.extractor.Name(), req.TargetURL, req.Strategy, req.Value)

	events := make(chan extractProgressMsg, 16)
	m.workers.Add(1)
	return m, tea.Batch(
		m.runExtraction(ctx, cancel, m.runID, req, events),
		waitForProgress(events),
		m.spinner.Tick,
	)
}

// runExtraction performs the blocking extraction and resolves with one extractDoneMsg.
func (m *ExtractForm) runExtraction(
	ctx context.Context,
	cancel context.CancelFunc,
	runID int,
	req models.ExtractionRequest,
	events chan<- extractProgressMsg,
) tea.Cmd {
	ex := m.extractor
	timeout := m.timeout
	return func() tea.Msg {
		defer m.workers.Done()
		defer cancel()
		defer close(events)

		progress := func(stage extractor.Stage, message string) {
			select {
			case events <- extractProgressMsg{runID: runID, stage: stage, message: message}:
			default:
			}
		}

		res, err := extractor.Run(ctx, ex, req, timeout, progress)
		if err != nil {
			return extractDoneMsg{runID: runID, err: err}
		}
		return extractDoneMsg{runID: runID, markup: res.Markup}
	}
}

// waitForProgress delivers progress events one at a time until the run closes the channel.
func waitForProgress(events <-chan extractProgressMsg) tea.Cmd {
	return func() tea.Msg {
		msg, ok := <-events
		if !ok {
			return nil
		}
		return progressEnvelope{msg: msg, next: events}
	}
}

// progressEnvelope carries a progress event plus the channel to keep reading.
type progressEnvelope struct {
	msg  extractProgressMsg
	next <-chan extractProgressMsg
}

func (m *ExtractForm) finishExtraction(msg extractDoneMsg) (tea.Model, tea.Cmd) {
	m.duration = time.Since(m.startTime)
	m.cancel = nil
	m.progressStage = ""
	m.progressMsg = ""

	if msg.err != nil {
		logger.LogError(msg.err, "extraction failed: run=%d after %s", msg.runID, m.duration)
		m.phase = phaseFailed
		m.setNotice(noticeError, userFacingError(msg.err).Error())
		return m, nil
	}

	logger.Log("extraction succeeded: run=%d bytes=%d after %s", msg.runID, len(msg.markup), m.duration)
	m.phase = phaseSucceeded
	m.result = msg.markup
	m.hasResult = true
	m.refreshResultView()
	m.setNotice(noticeSuccess, "Element HTML extracted")
	return m, nil
}

func (m *ExtractForm) copyResult() tea.Cmd {
	if !m.hasResult {
		return nil
	}
	cb := m.clipboard
	markup := m.result
	return func() tea.Msg {
		return copyDoneMsg{err: cb.WriteAll(markup)}
	}
}

// saveResult runs the save sub-flow for the current result.
func (m *ExtractForm) saveResult() (tea.Model, tea.Cmd) {
	if !m.hasResult {
		return m, nil
	}
	target := ResolveSavePath(m.saveOptions())
	switch {
	case target.Skip:
		return m, nil
	case target.Prompt:
		m.modal = modalSavePrompt
		m.savePrompt.SetValue("")
		m.savePrompt.Focus()
		return m, textinput.Blink
	}
	return m, saveCmd(target.Path, m.result)
}

func saveCmd(path, markup string) tea.Cmd {
	return func() tea.Msg {
		written, err := utils.WriteTextFile(path, markup)
		if err != nil {
			return saveDoneMsg{path: path, err: err}
		}
		return saveDoneMsg{path: written}
	}
}

func (m *ExtractForm) saveOptions() SaveOptions {
	return SaveOptions{
		Enabled:     m.saveEnabled,
		Mode:        m.saveMode,
		DefaultPath: m.defaultPath,
		CustomDir:   m.customDirInput.Value(),
	}
}

func (m *ExtractForm) handleSavePromptKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "ctrl+c":
		if m.cancel != nil {
			m.cancel()
		}
		return m, tea.Quit
	case "esc":
		m.closeModal()
		return m, nil
	case "enter":
		path := strings.TrimSpace(m.savePrompt.Value())
		m.closeModal()
		// A cancelled prompt is a silent no-op.
		if path == "" {
			return m, nil
		}
		return m, saveCmd(path, m.result)
	}
	var cmd tea.Cmd
	m.savePrompt, cmd = m.savePrompt.Update(msg)
	return m, cmd
}

// openPicker opens the browse dialog for the focused path field.
func (m *ExtractForm) openPicker() (tea.Model, tea.Cmd) {
	pickerHeight := m.height - 10
	switch m.focus {
	case fieldBrowser:
		m.picker = newPathPicker(fieldBrowser, "Select Chrome executable", false, m.browserInput.Value(), pickerHeight)
	case fieldDriver:
		m.picker = newPathPicker(fieldDriver, "Select ChromeDriver", false, m.driverInput.Value(), pickerHeight)
	case fieldSaveMode, fieldCustomDir:
		if !m.browseEnabled() {
			return m, nil
		}
		m.picker = newPathPicker(fieldCustomDir, "Select save directory", true, m.customDirInput.Value(), pickerHeight)
	default:
		m.setNotice(noticeInfo, "Browse works on the browser, driver and custom directory fields")
		return m, nil
	}
	m.modal = modalPicker
	return m, m.picker.Init()
}

func (m *ExtractForm) handlePickerKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "ctrl+c":
		if m.cancel != nil {
			m.cancel()
		}
		return m, tea.Quit
	case "esc", "q":
		m.closeModal()
		return m, nil
	}

	path, cmd := m.picker.Update(msg)
	if path == "" {
		return m, cmd
	}

	switch m.picker.target {
	case fieldBrowser:
		m.browserInput.SetValue(path)
	case fieldDriver:
		m.driverInput.SetValue(path)
	case fieldCustomDir:
		m.customDirInput.SetValue(path)
	}
	logger.Log("picker selected %s", path)
	m.closeModal()
	return m, nil
}

func (m *ExtractForm) closeModal() {
	m.modal = modalNone
	m.picker = nil
	m.savePrompt.Blur()
	m.focusCurrentField()
}

// setSaveEnabled toggles save-as-file. Turning it off disables both radios
// and the custom directory; turning it on re-enables the radios, and the
// directory field only when the custom option is selected.
func (m *ExtractForm) setSaveEnabled(enabled bool) {
	m.saveEnabled = enabled
	m.focusCurrentField()
}

func (m *ExtractForm) selectSaveMode(mode SaveMode) {
	if !m.saveEnabled {
		return
	}
	m.saveMode = mode
	m.focusCurrentField()
}

func (m *ExtractForm) toggleStrategy() {
	if m.strategy == models.ByClassName {
		m.strategy = models.ByID
	} else {
		m.strategy = models.ByClassName
	}
}

func (m *ExtractForm) triggerEnabled() bool { return m.phase != phaseRunning }

func (m *ExtractForm) triggerLabel() string {
	if m.phase == phaseRunning {
		return labelExtracting
	}
	return labelExtract
}

func (m *ExtractForm) copyEnabled() bool { return m.hasResult }

func (m *ExtractForm) saveEnabledAction() bool { return m.hasResult }

func (m *ExtractForm) radiosEnabled() bool { return m.saveEnabled }

func (m *ExtractForm) browseEnabled() bool { return m.saveEnabled }

func (m *ExtractForm) customDirEnabled() bool {
	return m.saveEnabled && m.saveMode == SaveModeCustom
}

// fieldEnabled reports whether f can take focus.
func (m *ExtractForm) fieldEnabled(f field) bool {
	switch f {
	case fieldSaveMode:
		return m.radiosEnabled()
	case fieldCustomDir:
		return m.customDirEnabled()
	case fieldExtractButton:
		return m.triggerEnabled()
	case fieldCopyButton:
		return m.copyEnabled()
	case fieldSaveButton:
		return m.saveEnabledAction()
	}
	return true
}

// moveFocus steps through enabled fields in tab order.
func (m *ExtractForm) moveFocus(delta int) {
	next := m.focus
	for i := 0; i < int(fieldCount); i++ {
		next = field((int(next) + delta + int(fieldCount)) % int(fieldCount))
		if m.fieldEnabled(next) {
			break
		}
	}
	m.focus = next
	m.focusCurrentField()
}

func (m *ExtractForm) input(f field) *textinput.Model {
	switch f {
	case fieldBrowser:
		return &m.browserInput
	case fieldDriver:
		return &m.driverInput
	case fieldURL:
		return &m.urlInput
	case fieldValue:
		return &m.valueInput
	case fieldCustomDir:
		return &m.customDirInput
	}
	return nil
}

func (m *ExtractForm) focusCurrentField() {
	for _, f := range []field{fieldBrowser, fieldDriver, fieldURL, fieldValue, fieldCustomDir} {
		m.input(f).Blur()
	}
	if !m.fieldEnabled(m.focus) {
		m.moveFocus(1)
		return
	}
	if in := m.input(m.focus); in != nil {
		in.Focus()
	}
}

func (m *ExtractForm) updateFocusedInput(msg tea.Msg) tea.Cmd {
	in := m.input(m.focus)
	if in == nil || !m.fieldEnabled(m.focus) {
		return nil
	}
	var cmd tea.Cmd
	*in, cmd = in.Update(msg)
	return cmd
}

func (m *ExtractForm) setNotice(kind noticeKind, text string) {
	m.noticeKind = kind
	m.notice = text
}

func (m *ExtractForm) layout() {
	inputWidth := m.width - 28
	if inputWidth < 20 {
		inputWidth = 20
	}
	for _, f := range []field{fieldBrowser, fieldDriver, fieldURL, fieldValue, fieldCustomDir} {
		m.input(f).Width = inputWidth
	}
	m.savePrompt.Width = inputWidth

	m.resultView.Width = m.width - 4
	if m.resultView.Width < 20 {
		m.resultView.Width = 20
	}
	// Form rows take roughly 22 lines; the result box gets the rest.
	h := m.height - 24
	if h < 3 {
		h = 3
	}
	m.resultView.Height = h
	m.refreshResultView()
}
