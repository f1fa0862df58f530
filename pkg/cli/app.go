package cli

import (
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"html-extract-go/pkg/cli/client"
	"html-extract-go/pkg/cli/logger"
	"html-extract-go/pkg/cli/tui"
	"html-extract-go/pkg/config"
	"html-extract-go/pkg/extractor"
	"html-extract-go/pkg/models"

	tea "github.com/charmbracelet/bubbletea"
)

// shutdownWait bounds how long quitting waits for a running browser to exit.
const shutdownWait = 10 * time.Second

type App struct {
	cfg *config.Config

	// newExtractor builds the backend; tests swap it for a fake.
	newExtractor func(backend string, opts extractor.Options) (extractor.Extractor, error)
	out          io.Writer
	errOut       io.Writer
}

func NewApp(cfg *config.Config) *App {
	return &App{
		cfg:          cfg,
		newExtractor: extractor.New,
		out:          os.Stdout,
		errOut:       os.Stderr,
	}
}

// extractorOptions maps the browser section onto backend options. Driver
// output goes to the log file so it never draws over the TUI.
func (a *App) extractorOptions() extractor.Options {
	opts := extractor.DefaultOptions()
	opts.Headless = a.cfg.Browser.Headless
	opts.NoSandbox = a.cfg.Browser.NoSandbox
	opts.DriverOutput = logger.Writer()
	return opts
}

// buildExtractor returns the backend named by backend, or an API client
// when it is "remote".
func (a *App) buildExtractor(backend string) (extractor.Extractor, error) {
	if strings.EqualFold(strings.TrimSpace(backend), client.BackendRemote) {
		return client.NewClient(a.cfg.ServerURL(), 0), nil
	}
	return a.newExtractor(backend, a.extractorOptions())
}

func (a *App) formDefaults() tui.FormDefaults {
	strategy, err := models.ParseStrategy(a.cfg.Target.Strategy)
	if err != nil {
		logger.LogError(err, "ignoring configured strategy")
		strategy = models.ByClassName
	}
	return tui.FormDefaults{
		BrowserPath: a.cfg.Browser.Path,
		DriverPath:  a.cfg.Browser.Driver,
		URL:         a.cfg.Target.URL,
		Strategy:    strategy,
		Value:       a.cfg.Target.Value,
		SaveEnabled: a.cfg.Save.Enabled,
		DefaultPath: a.cfg.Save.DefaultPath,
		CustomDir:   a.cfg.Save.CustomDir,
	}
}

// Run starts the interactive shell and blocks until the user quits.
func (a *App) Run() error {
	ex, err := a.buildExtractor(a.cfg.Browser.Backend)
	if err != nil {
		return fmt.Errorf("failed to initialize extractor: %w", err)
	}
	logger.Log("starting TUI: backend=%s timeout=%s", ex.Name(), a.cfg.Timeout())

	form := tui.NewExtractForm(ex, tui.NewSystemClipboard(), a.cfg.Timeout(), a.formDefaults())
	frame := tui.NewFrame(form, tui.FrameConfig{
		Title:       "HTML Element Extractor",
		MinWidth:    60,
		MinHeight:   20,
		HelpContent: tui.ExtractFormHelpContent,
	})

	p := tea.NewProgram(frame, tea.WithAltScreen())
	_, runErr := p.Run()

	// Quitting mid-run must not leave a browser behind.
	form.Shutdown(shutdownWait)
	if runErr != nil {
		return fmt.Errorf("TUI exited with error: %w", runErr)
	}
	return nil
}
