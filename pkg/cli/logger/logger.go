package logger

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"sync"
	"time"
)

var (
	mu      sync.Mutex
	logger  *slog.Logger
	logFile *os.File
)

// Init opens a timestamped log file under logDir. The TUI owns the terminal,
// so logs never go to stdout. If the file can't be created, logs go to stderr.
// Until Init is called, logging is a no-op.
func Init(logDir string) string {
	mu.Lock()
	defer mu.Unlock()

	if err := os.MkdirAll(logDir, 0755); err != nil {
		logger = newLogger(os.Stderr)
		return ""
	}

	logFileName := filepath.Join(logDir, fmt.Sprintf("cli-%s.log", time.Now().Format("20060102-150405")))
	f, err := os.OpenFile(logFileName, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
	if err != nil {
		logger = newLogger(os.Stderr)
		return ""
	}

	logFile = f
	logger = newLogger(f)
	return logFileName
}

// SetOutput redirects logging to w (tests, API server).
func SetOutput(w io.Writer) {
	mu.Lock()
	defer mu.Unlock()
	logger = newLogger(w)
}

func newLogger(w io.Writer) *slog.Logger {
	level := slog.LevelInfo
	if os.Getenv("LOG_LEVEL") == "debug" {
		level = slog.LevelDebug
	}
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: level})).With("app", "html-extract")
}

func current() *slog.Logger {
	mu.Lock()
	defer mu.Unlock()
	return logger
}

// Log writes a log message
func Log(format string, v ...interface{}) {
	if l := current(); l != nil {
		l.Info(fmt.Sprintf(format, v...))
	}
}

// Debug writes a debug message, shown only with LOG_LEVEL=debug
func Debug(format string, v ...interface{}) {
	if l := current(); l != nil {
		l.Debug(fmt.Sprintf(format, v...))
	}
}

// LogError writes an error log message
func LogError(err error, format string, v ...interface{}) {
	if l := current(); l != nil {
		l.Error(fmt.Sprintf(format, v...), "err", err)
	}
}

// Writer returns the open log file for child process output, or io.Discard.
func Writer() io.Writer {
	mu.Lock()
	defer mu.Unlock()
	if logFile != nil {
		return logFile
	}
	return io.Discard
}

// CloseLog closes the log file
func CloseLog() {
	mu.Lock()
	defer mu.Unlock()
	if logFile != nil {
		logFile.Close()
		logFile = nil
	}
	logger = nil
}
