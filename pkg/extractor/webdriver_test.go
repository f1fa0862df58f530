package extractor

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net"
	"net/http"
	"os"
	"strings"
	"testing"
	"time"

	"html-extract-go/pkg/models"
)

// fakeDriverEnv makes the test binary act as chromedriver when it is
// started by selenium.NewChromeDriverService.
const fakeDriverEnv = "HTML_EXTRACT_FAKE_CHROMEDRIVER"

func TestMain(m *testing.M) {
	if os.Getenv(fakeDriverEnv) != "" {
		os.Exit(runFakeDriver(os.Args[1:]))
	}
	os.Exit(m.Run())
}

const fakeSessionID = "fake-session"

// fakeElements maps a css selector to an element id and its outer HTML.
var fakeElements = map[string]struct{ id, markup string }{
	".login-form": {"el-login", `<div class="login-form"><input/></div>`},
	"#footer":     {"el-footer", `<div id="footer" class="wide muted">bye</div>`},
}

// runFakeDriver speaks enough of the W3C WebDriver protocol for one session.
// Like chromedriver it only answers under --url-base.
func runFakeDriver(args []string) int {
	port, base := "", ""
	for _, arg := range args {
		switch {
		case strings.HasPrefix(arg, "--port="):
			port = strings.TrimPrefix(arg, "--port=")
		case strings.HasPrefix(arg, "--url-base="):
			base = strings.TrimPrefix(arg, "--url-base=")
		}
	}
	if port == "" {
		fmt.Fprintln(os.Stderr, "fake chromedriver: missing --port")
		return 2
	}
	base = "/" + strings.Trim(base, "/")
	if base == "/" {
		base = ""
	}

	ln, err := net.Listen("tcp", "127.0.0.1:"+port)
	if err != nil {
		fmt.Fprintln(os.Stderr, "fake chromedriver:", err)
		return 1
	}

	// Never outlive the test that started it.
	go func() {
		time.Sleep(30 * time.Second)
		os.Exit(0)
	}()

	_ = http.Serve(ln, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !strings.HasPrefix(r.URL.Path, base+"/") {
			writeDriverError(w, http.StatusNotFound, "unknown command", "unknown command: "+r.URL.Path)
			return
		}
		path := strings.TrimPrefix(r.URL.Path, base)
		session := "/session/" + fakeSessionID

		switch {
		case path == "/status":
			writeDriverValue(w, map[string]any{"ready": true, "message": "fake chromedriver ready"})
		case path == "/shutdown":
			writeDriverValue(w, nil)
			go func() {
				time.Sleep(50 * time.Millisecond)
				os.Exit(0)
			}()
		case r.Method == http.MethodPost && path == "/session":
			writeDriverValue(w, map[string]any{
				"sessionId":    fakeSessionID,
				"capabilities": map[string]any{"browserName": "chrome"},
			})
		case r.Method == http.MethodDelete && path == session:
			writeDriverValue(w, nil)
		case r.Method == http.MethodPost && path == session+"/url":
			writeDriverValue(w, nil)
		case r.Method == http.MethodPost && path == session+"/element":
			var body struct {
				Using string `json:"using"`
				Value string `json:"value"`
			}
			if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
				writeDriverError(w, http.StatusBadRequest, "invalid argument", err.Error())
				return
			}
			selector := body.Value
			switch body.Using {
			case "class name":
				selector = "." + body.Value
			case "id":
				selector = "#" + body.Value
			}
			el, ok := fakeElements[selector]
			if !ok {
				writeDriverError(w, http.StatusNotFound, "no such element",
					fmt.Sprintf("no such element: Unable to locate element: {\"method\":%q,\"selector\":%q}", body.Using, body.Value))
				return
			}
			writeDriverValue(w, map[string]string{
				"element-6066-11e4-a52e-4f735466cecf": el.id,
				"ELEMENT":                             el.id,
			})
		case r.Method == http.MethodGet && strings.HasPrefix(path, session+"/element/") && strings.HasSuffix(path, "/attribute/outerHTML"):
			id := strings.TrimSuffix(strings.TrimPrefix(path, session+"/element/"), "/attribute/outerHTML")
			for _, el := range fakeElements {
				if el.id == id {
					writeDriverValue(w, el.markup)
					return
				}
			}
			writeDriverError(w, http.StatusNotFound, "no such element", "stale element "+id)
		default:
			writeDriverError(w, http.StatusNotFound, "unknown command", "unknown command: "+r.URL.Path)
		}
	}))
	return 0
}

func writeDriverValue(w http.ResponseWriter, value any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	_ = json.NewEncoder(w).Encode(map[string]any{"value": value})
}

func writeDriverError(w http.ResponseWriter, status int, code, message string) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(map[string]any{
		"value": map[string]string{"error": code, "message": message},
	})
}

// fakeDriverRequest points the webdriver backend at this test binary acting
// as chromedriver.
func fakeDriverRequest(t *testing.T, strategy models.LookupStrategy, value string) models.ExtractionRequest {
	t.Helper()
	exe, err := os.Executable()
	if err != nil {
		t.Skipf("cannot locate test binary: %v", err)
	}
	t.Setenv(fakeDriverEnv, "1")
	return models.ExtractionRequest{
		BrowserPath: "/bin/chrome",
		DriverPath:  exe,
		TargetURL:   "https://example.com/login",
		Strategy:    strategy,
		Value:       value,
	}
}

func TestWebDriver_ExtractThroughDriverService(t *testing.T) {
	for _, tc := range []struct {
		strategy models.LookupStrategy
		value    string
		want     string
	}{
		{models.ByClassName, "login-form", `<div class="login-form"><input/></div>`},
		{models.ByID, "footer", `<div id="footer" class="wide muted">bye</div>`},
	} {
		req := fakeDriverRequest(t, tc.strategy, tc.value)

		var stages []Stage
		progress := func(s Stage, _ string) { stages = append(stages, s) }

		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		got, err := NewWebDriver(DefaultOptions()).Extract(ctx, req, progress)
		cancel()
		if err != nil {
			t.Fatalf("%s %q: unexpected error: %v", tc.strategy, tc.value, err)
		}
		if got != tc.want {
			t.Fatalf("%s %q: expected %q, got %q", tc.strategy, tc.value, tc.want, got)
		}
		if len(stages) == 0 || stages[len(stages)-1] != StageComplete {
			t.Fatalf("expected progress to end with %s, got %v", StageComplete, stages)
		}
	}
}

func TestWebDriver_ElementNotFound(t *testing.T) {
	req := fakeDriverRequest(t, models.ByClassName, "signup-form")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	_, err := NewWebDriver(DefaultOptions()).Extract(ctx, req, nil)
	if !errors.Is(err, ErrElementNotFound) {
		t.Fatalf("expected ErrElementNotFound, got %v", err)
	}
	var exErr *ExtractionError
	if !errors.As(err, &exErr) || exErr.Stage != StageLocate {
		t.Fatalf("expected locate-stage ExtractionError, got %#v", err)
	}
	if !strings.Contains(err.Error(), `class_name "signup-form"`) {
		t.Fatalf("expected lookup in message, got %q", err.Error())
	}
}

func TestWebDriver_MissingDriverBinary(t *testing.T) {
	req := staticRequest("https://example.com/login", models.ByClassName, "login-form")
	req.DriverPath = "/nonexistent/chromedriver"

	_, err := NewWebDriver(DefaultOptions()).Extract(context.Background(), req, nil)
	var exErr *ExtractionError
	if !errors.As(err, &exErr) || exErr.Stage != StageLaunch {
		t.Fatalf("expected launch-stage ExtractionError, got %v", err)
	}
}
