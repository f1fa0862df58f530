package logger

import (
	"bytes"
	"errors"
	"os"
	"strings"
	"testing"
)

func TestLog_NoopBeforeInit(t *testing.T) {
	CloseLog()
	Log("nothing %d", 1)
	LogError(errors.New("boom"), "nothing")
}

func TestSetOutput(t *testing.T) {
	var buf bytes.Buffer
	SetOutput(&buf)
	defer CloseLog()

	Log("extraction started: url=%s", "https://example.com")
	LogError(errors.New("no such element"), "extraction failed")

	out := buf.String()
	if !strings.Contains(out, "extraction started: url=https://example.com") {
		t.Fatalf("missing info line in %q", out)
	}
	if !strings.Contains(out, "level=ERROR") || !strings.Contains(out, "no such element") {
		t.Fatalf("missing error line in %q", out)
	}
}

func TestInit_WritesFile(t *testing.T) {
	dir := t.TempDir()
	name := Init(dir)
	defer CloseLog()
	if name == "" {
		t.Fatal("expected a log file name")
	}

	Log("hello")
	data, err := os.ReadFile(name)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !strings.Contains(string(data), "hello") {
		t.Fatalf("expected log line in file, got %q", data)
	}
}
