package extractor

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"html-extract-go/pkg/models"
)

// Backend names accepted by New.
const (
	BackendWebDriver = "webdriver"
	BackendRod       = "rod"
	BackendStatic    = "static"
)

// Backends lists the supported backends, default first.
var Backends = []string{BackendWebDriver, BackendRod, BackendStatic}

// Options configures the backends. Unused fields are ignored by each backend.
type Options struct {
	Headless     bool
	NoSandbox    bool
	DriverOutput io.Writer    // webdriver: chromedriver stdout/stderr
	HTTPClient   *http.Client // static
	UserAgent    string       // static
}

// DefaultOptions returns headless options.
func DefaultOptions() Options {
	return Options{Headless: true}
}

// New returns the extractor for the named backend. An empty name selects webdriver.
func New(backend string, opts Options) (Extractor, error) {
	switch strings.ToLower(strings.TrimSpace(backend)) {
	case "", BackendWebDriver:
		return NewWebDriver(opts), nil
	case BackendRod:
		return NewRod(opts), nil
	case BackendStatic:
		return NewStatic(opts), nil
	}
	return nil, fmt.Errorf("unknown backend %q (expected one of %s)", backend, strings.Join(Backends, ", "))
}

// Run validates the request, applies the timeout (0 means none) and runs the
// extraction. Any failure is returned as a *models.ValidationError or an
// *ExtractionError.
func Run(
	ctx context.Context,
	e Extractor,
	req models.ExtractionRequest,
	timeout time.Duration,
	progress ProgressFunc,
) (*models.ExtractionResult, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	if timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, timeout)
		defer cancel()
	}

	start := time.Now()
	markup, err := e.Extract(ctx, req, progress)
	if err != nil {
		return nil, newExtractionError(StageComplete, err)
	}

	return &models.ExtractionResult{
		URL:         req.TargetURL,
		Strategy:    req.Strategy,
		Value:       req.Value,
		Backend:     e.Name(),
		Markup:      markup,
		Duration:    time.Since(start),
		ExtractedAt: time.Now().UTC(),
	}, nil
}
