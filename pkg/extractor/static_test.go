package extractor

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"html-extract-go/pkg/models"
)

const loginPage = `<!DOCTYPE html>
<html><head><title>Login</title></head>
<body>
<header class="nav">menu</header>
<div class="login-form"><input/></div>
<div id="footer" class="wide muted">bye</div>
</body></html>`

func newPageServer(t *testing.T, body string) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/missing" {
			http.NotFound(w, r)
			return
		}
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		fmt.Fprint(w, body)
	}))
	t.Cleanup(srv.Close)
	return srv
}

func staticRequest(url string, strategy models.LookupStrategy, value string) models.ExtractionRequest {
	return models.ExtractionRequest{
		BrowserPath: "/bin/chrome",
		DriverPath:  "/bin/chromedriver",
		TargetURL:   url,
		Strategy:    strategy,
		Value:       value,
	}
}

func TestStatic_ExtractByClassName(t *testing.T) {
	srv := newPageServer(t, loginPage)
	s := NewStatic(Options{})

	got, err := s.Extract(context.Background(), staticRequest(srv.URL+"/login", models.ByClassName, "login-form"), nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := `<div class="login-form"><input/></div>`
	if got != want {
		t.Fatalf("expected %q, got %q", want, got)
	}
}

func TestStatic_ExtractByClassToken(t *testing.T) {
	srv := newPageServer(t, loginPage)
	s := NewStatic(Options{})

	got, err := s.Extract(context.Background(), staticRequest(srv.URL, models.ByClassName, "muted"), nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := `<div id="footer" class="wide muted">bye</div>`
	if got != want {
		t.Fatalf("expected %q, got %q", want, got)
	}
}

func TestStatic_ExtractByID(t *testing.T) {
	srv := newPageServer(t, loginPage)
	s := NewStatic(Options{})

	got, err := s.Extract(context.Background(), staticRequest(srv.URL, models.ByID, "footer"), nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := `<div id="footer" class="wide muted">bye</div>`
	if got != want {
		t.Fatalf("expected %q, got %q", want, got)
	}
}

func TestStatic_NotFound(t *testing.T) {
	srv := newPageServer(t, `<html><body><div class="signup"></div></body></html>`)
	s := NewStatic(Options{})

	_, err := s.Extract(context.Background(), staticRequest(srv.URL, models.ByClassName, "login-form"), nil)
	var exErr *ExtractionError
	if !errors.As(err, &exErr) {
		t.Fatalf("expected ExtractionError, got %v", err)
	}
	if !errors.Is(err, ErrElementNotFound) {
		t.Fatalf("expected ErrElementNotFound, got %v", err)
	}
	if exErr.Stage != StageLocate {
		t.Fatalf("expected stage %s, got %s", StageLocate, exErr.Stage)
	}
}

func TestStatic_HTTPError(t *testing.T) {
	srv := newPageServer(t, loginPage)
	s := NewStatic(Options{})

	_, err := s.Extract(context.Background(), staticRequest(srv.URL+"/missing", models.ByID, "footer"), nil)
	var exErr *ExtractionError
	if !errors.As(err, &exErr) {
		t.Fatalf("expected ExtractionError, got %v", err)
	}
	if exErr.Stage != StageNavigate {
		t.Fatalf("expected stage %s, got %s", StageNavigate, exErr.Stage)
	}
}

func TestStatic_ReportsProgress(t *testing.T) {
	srv := newPageServer(t, loginPage)
	s := NewStatic(Options{})

	var stages []Stage
	_, err := s.Extract(context.Background(), staticRequest(srv.URL, models.ByID, "footer"), func(stage Stage, _ string) {
		stages = append(stages, stage)
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := []Stage{StageNavigate, StageLocate, StageRead, StageComplete}
	if len(stages) != len(want) {
		t.Fatalf("expected stages %v, got %v", want, stages)
	}
	for i := range want {
		if stages[i] != want[i] {
			t.Fatalf("expected stages %v, got %v", want, stages)
		}
	}
}
