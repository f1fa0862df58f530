package extractor

import (
	"context"
	"errors"
	"fmt"

	"html-extract-go/pkg/models"

	"github.com/go-rod/rod"
	"github.com/go-rod/rod/lib/launcher"
	"github.com/go-rod/rod/lib/proto"
)

// Rod drives Chrome over the DevTools protocol. The driver path is not used.
type Rod struct {
	headless  bool
	noSandbox bool
}

// NewRod creates the CDP-backed extractor.
func NewRod(opts Options) *Rod {
	return &Rod{
		headless:  opts.Headless,
		noSandbox: opts.NoSandbox,
	}
}

func (r *Rod) Name() string { return BackendRod }

func (r *Rod) Extract(ctx context.Context, req models.ExtractionRequest, progress ProgressFunc) (string, error) {
	selector, err := CSSSelector(req.Strategy, req.Value)
	if err != nil {
		return "", newExtractionError(StageLocate, err)
	}

	progress.report(StageLaunch, "Starting headless Chrome...")
	l := launcher.New().Context(ctx).Headless(r.headless)
	if req.BrowserPath != "" {
		l = l.Bin(req.BrowserPath)
	}
	if r.noSandbox {
		l = l.NoSandbox(true)
	}

	wsURL, err := l.Launch()
	if err != nil {
		// Cleanup waits for the process to exit, which never happens if it never started.
		l.Kill()
		return "", r.fail(ctx, StageLaunch, fmt.Errorf("failed to launch chrome: %w", err))
	}
	defer func() {
		l.Kill()
		l.Cleanup()
	}()

	browser := rod.New().ControlURL(wsURL).Context(ctx)
	if err := browser.Connect(); err != nil {
		return "", r.fail(ctx, StageLaunch, fmt.Errorf("failed to connect to chrome: %w", err))
	}
	defer browser.Close()

	page, err := browser.Page(proto.TargetCreateTarget{})
	if err != nil {
		return "", r.fail(ctx, StageLaunch, fmt.Errorf("failed to create new page: %w", err))
	}
	defer page.Close()

	progress.report(StageNavigate, "Loading "+req.TargetURL)
	if err := page.Navigate(req.TargetURL); err != nil {
		return "", r.fail(ctx, StageNavigate, fmt.Errorf("failed to navigate to %s: %w", req.TargetURL, err))
	}
	if err := page.WaitLoad(); err != nil {
		return "", r.fail(ctx, StageNavigate, fmt.Errorf("failed to wait for page load: %w", err))
	}

	progress.report(StageLocate, fmt.Sprintf("Looking for %s %q", req.Strategy, req.Value))
	// NotFoundSleeper makes the lookup fail immediately instead of polling.
	el, err := page.Sleeper(rod.NotFoundSleeper).Element(selector)
	if err != nil {
		var nf *rod.ElementNotFoundError
		if errors.As(err, &nf) {
			return "", newNotFoundError(req.Strategy, req.Value, nil)
		}
		return "", r.fail(ctx, StageLocate, err)
	}

	progress.report(StageRead, "Reading outer HTML")
	markup, err := el.HTML()
	if err != nil {
		return "", r.fail(ctx, StageRead, err)
	}

	progress.report(StageComplete, "Done")
	return markup, nil
}

func (r *Rod) fail(ctx context.Context, stage Stage, err error) error {
	if ctx.Err() != nil {
		return contextError(stage, ctx.Err())
	}
	return newExtractionError(stage, err)
}
