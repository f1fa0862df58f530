package cli

import (
	"context"
	"fmt"
	"strings"

	"html-extract-go/pkg/cli/logger"
	"html-extract-go/pkg/extractor"
	"html-extract-go/pkg/models"
	"html-extract-go/pkg/utils"
)

// ExtractFlags holds the -extract overrides. Empty fields fall back to config.
type ExtractFlags struct {
	URL     string
	By      string
	Value   string
	Browser string
	Driver  string
	Backend string
	Out     string
}

// HandleExtractCommand runs one extraction without the TUI, printing the
// markup to stdout or writing it to flags.Out.
func (a *App) HandleExtractCommand(ctx context.Context, flags ExtractFlags) error {
	req, err := a.buildRequest(flags)
	if err != nil {
		return err
	}
	if err := req.Validate(); err != nil {
		return err
	}
	if req.TargetURL, err = utils.ValidateURL(req.TargetURL); err != nil {
		return err
	}

	backend := pick(flags.Backend, a.cfg.Browser.Backend)
	ex, err := a.buildExtractor(backend)
	if err != nil {
		return fmt.Errorf("failed to initialize extractor: %w", err)
	}

	fmt.Fprintf(a.errOut, "⏳ Extracting %s %q from %s (%s)\n", req.Strategy, req.Value, req.TargetURL, ex.Name())
	progress := func(stage extractor.Stage, message string) {
		logger.Debug("extract stage=%s %s", stage, message)
		fmt.Fprintf(a.errOut, "   %s: %s\n", stage, message)
	}

	result, err := extractor.Run(ctx, ex, req, a.cfg.Timeout(), progress)
	if err != nil {
		logger.LogError(err, "one-shot extraction failed")
		return err
	}
	logger.Log("one-shot extraction succeeded: bytes=%d after %s", len(result.Markup), result.Duration)

	if flags.Out == "" {
		fmt.Fprintln(a.out, result.Markup)
		return nil
	}

	path, err := utils.WriteTextFile(flags.Out, result.Markup)
	if err != nil {
		return err
	}
	fmt.Fprintf(a.errOut, "✓ Saved %d characters to %s\n", len(result.Markup), path)
	return nil
}

func (a *App) buildRequest(flags ExtractFlags) (models.ExtractionRequest, error) {
	strategy, err := models.ParseStrategy(pick(flags.By, a.cfg.Target.Strategy))
	if err != nil {
		return models.ExtractionRequest{}, err
	}
	return models.ExtractionRequest{
		BrowserPath: pick(flags.Browser, a.cfg.Browser.Path),
		DriverPath:  pick(flags.Driver, a.cfg.Browser.Driver),
		TargetURL:   pick(flags.URL, a.cfg.Target.URL),
		Strategy:    strategy,
		Value:       pick(flags.Value, a.cfg.Target.Value),
	}, nil
}

// pick returns override unless it is blank.
func pick(override, fallback string) string {
	if s := strings.TrimSpace(override); s != "" {
		return s
	}
	return fallback
}
