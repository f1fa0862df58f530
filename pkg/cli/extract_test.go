package cli

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"html-extract-go/pkg/config"
	"html-extract-go/pkg/extractor"
	"html-extract-go/pkg/models"
)

type fakeExtractor struct {
	markup string
	err    error
	got    models.ExtractionRequest
	calls  int
}

func (f *fakeExtractor) Name() string { return "fake" }

func (f *fakeExtractor) Extract(_ context.Context, req models.ExtractionRequest, progress extractor.ProgressFunc) (string, error) {
	f.calls++
	f.got = req
	if progress != nil {
		progress(extractor.StageNavigate, "Loading page...")
	}
	return f.markup, f.err
}

func newTestApp(ex *fakeExtractor) (*App, *bytes.Buffer, *bytes.Buffer, *string) {
	var out, errOut bytes.Buffer
	backend := new(string)
	app := NewApp(config.DefaultConfig())
	app.out = &out
	app.errOut = &errOut
	app.newExtractor = func(name string, _ extractor.Options) (extractor.Extractor, error) {
		*backend = name
		return ex, nil
	}
	return app, &out, &errOut, backend
}

func TestHandleExtractCommand_PrintsMarkup(t *testing.T) {
	ex := &fakeExtractor{markup: `<div id="main"></div>`}
	app, out, errOut, backend := newTestApp(ex)

	err := app.HandleExtractCommand(context.Background(), ExtractFlags{
		URL:     "https://example.org/page",
		By:      "id",
		Value:   "main",
		Backend: "static",
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if strings.TrimSpace(out.String()) != `<div id="main"></div>` {
		t.Fatalf("unexpected stdout %q", out.String())
	}
	if !strings.Contains(errOut.String(), "navigate") {
		t.Fatalf("expected progress on stderr, got %q", errOut.String())
	}
	if *backend != "static" {
		t.Fatalf("expected static backend, got %q", *backend)
	}
	// Unset flags fall back to config.
	if ex.got.BrowserPath != "/usr/bin/google-chrome" || ex.got.Strategy != models.ByID {
		t.Fatalf("unexpected request %+v", ex.got)
	}
}

func TestHandleExtractCommand_WritesOut(t *testing.T) {
	ex := &fakeExtractor{markup: "<form></form>"}
	app, out, _, _ := newTestApp(ex)
	path := filepath.Join(t.TempDir(), "out", "form.html")

	if err := app.HandleExtractCommand(context.Background(), ExtractFlags{Out: path}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if out.Len() != 0 {
		t.Fatalf("stdout should be empty, got %q", out.String())
	}
	data, err := os.ReadFile(path)
	if err != nil || string(data) != "<form></form>" {
		t.Fatalf("expected saved markup, got %q (%v)", data, err)
	}
}

func TestHandleExtractCommand_ValidationStopsEarly(t *testing.T) {
	ex := &fakeExtractor{}
	app, _, _, _ := newTestApp(ex)
	app.cfg.Target.Value = ""

	err := app.HandleExtractCommand(context.Background(), ExtractFlags{})
	var vErr *models.ValidationError
	if !errors.As(err, &vErr) {
		t.Fatalf("expected ValidationError, got %v", err)
	}
	if ex.calls != 0 {
		t.Fatal("extractor must not run")
	}

	if err := app.HandleExtractCommand(context.Background(), ExtractFlags{Value: "x", By: "xpath"}); err == nil {
		t.Fatal("expected error for unknown strategy")
	}
}

func TestHandleExtractCommand_ErrorVerbatim(t *testing.T) {
	ex := &fakeExtractor{err: errors.New("session not created")}
	app, _, _, _ := newTestApp(ex)

	err := app.HandleExtractCommand(context.Background(), ExtractFlags{})
	if err == nil || err.Error() != "session not created" {
		t.Fatalf("expected verbatim error, got %v", err)
	}
}
