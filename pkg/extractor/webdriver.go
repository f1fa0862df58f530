package extractor

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net"
	"sync"

	"html-extract-go/pkg/models"

	"github.com/tebeka/selenium"
	"github.com/tebeka/selenium/chrome"
)

// WebDriver drives Chrome through a chromedriver binary.
type WebDriver struct {
	headless  bool
	noSandbox bool
	output    io.Writer
}

// NewWebDriver creates the chromedriver-backed extractor.
func NewWebDriver(opts Options) *WebDriver {
	out := opts.DriverOutput
	if out == nil {
		out = io.Discard
	}
	return &WebDriver{
		headless:  opts.Headless,
		noSandbox: opts.NoSandbox,
		output:    out,
	}
}

func (w *WebDriver) Name() string { return BackendWebDriver }

type sessionResult struct {
	markup string
	stage  Stage
	err    error
}

// Extract starts the driver service, runs the session and stops the service.
// The selenium client has no context support, so cancellation stops the
// driver service, which tears down the session and unblocks any pending call.
func (w *WebDriver) Extract(ctx context.Context, req models.ExtractionRequest, progress ProgressFunc) (string, error) {
	progress.report(StageLaunch, "Starting chromedriver...")

	port, err := freePort()
	if err != nil {
		return "", newExtractionError(StageLaunch, fmt.Errorf("failed to reserve driver port: %w", err))
	}

	service, err := selenium.NewChromeDriverService(req.DriverPath, port, selenium.Output(w.output))
	if err != nil {
		return "", newExtractionError(StageLaunch, err)
	}
	var stopOnce sync.Once
	stop := func() {
		stopOnce.Do(func() { _ = service.Stop() })
	}
	defer stop()

	done := make(chan sessionResult, 1)
	go func() {
		markup, stage, err := w.session(req, port, progress)
		done <- sessionResult{markup: markup, stage: stage, err: err}
	}()

	select {
	case r := <-done:
		if r.err != nil {
			return "", r.err
		}
		return r.markup, nil
	case <-ctx.Done():
		stop()
		r := <-done
		return "", contextError(r.stage, ctx.Err())
	}
}

func (w *WebDriver) session(req models.ExtractionRequest, port int, progress ProgressFunc) (string, Stage, error) {
	caps := selenium.Capabilities{"browserName": "chrome"}
	caps.AddChrome(chrome.Capabilities{
		Path: req.BrowserPath,
		Args: w.chromeArgs(),
	})

	progress.report(StageLaunch, "Starting headless Chrome...")
	// NewChromeDriverService starts chromedriver with --url-base=wd/hub.
	wd, err := selenium.NewRemote(caps, fmt.Sprintf("http://127.0.0.1:%d/wd/hub", port))
	if err != nil {
		return "", StageLaunch, newExtractionError(StageLaunch, err)
	}
	defer wd.Quit()

	progress.report(StageNavigate, "Loading "+req.TargetURL)
	if err := wd.Get(req.TargetURL); err != nil {
		return "", StageNavigate, newExtractionError(StageNavigate, err)
	}

	by := selenium.ByClassName
	if req.Strategy == models.ByID {
		by = selenium.ByID
	}

	progress.report(StageLocate, fmt.Sprintf("Looking for %s %q", req.Strategy, req.Value))
	elem, err := wd.FindElement(by, req.Value)
	if err != nil {
		var seErr *selenium.Error
		if errors.As(err, &seErr) && seErr.Err == "no such element" {
			return "", StageLocate, newNotFoundError(req.Strategy, req.Value, nil)
		}
		return "", StageLocate, newExtractionError(StageLocate, err)
	}

	progress.report(StageRead, "Reading outer HTML")
	markup, err := elem.GetAttribute("outerHTML")
	if err != nil {
		return "", StageRead, newExtractionError(StageRead, err)
	}

	progress.report(StageComplete, "Done")
	return markup, StageComplete, nil
}

func (w *WebDriver) chromeArgs() []string {
	var args []string
	if w.headless {
		args = append(args, "--headless")
	}
	if w.noSandbox {
		args = append(args, "--no-sandbox", "--disable-dev-shm-usage")
	}
	return args
}

// freePort asks the kernel for an unused local port for the driver service.
func freePort() (int, error) {
	l, err := net.Listen("tcp", "127.0.0.1:0")
	if err != nil {
		return 0, err
	}
	defer l.Close()
	return l.Addr().(*net.TCPAddr).Port, nil
}
