package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"html-extract-go/pkg/api"
	"html-extract-go/pkg/cli/logger"
	"html-extract-go/pkg/config"
	"html-extract-go/pkg/extractor"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	// The server has no TUI, so logs go straight to stdout.
	logger.SetOutput(os.Stdout)
	defer logger.CloseLog()

	// Initialize extractor
	opts := extractor.DefaultOptions()
	opts.Headless = cfg.Browser.Headless
	opts.NoSandbox = cfg.Browser.NoSandbox
	ex, err := extractor.New(cfg.Browser.Backend, opts)
	if err != nil {
		log.Fatalf("failed to initialize extractor: %v", err)
	}

	// Initialize router
	router := api.NewRouter(cfg, ex)

	// Responses wait for the extraction; zero means no write deadline.
	var writeTimeout time.Duration
	if t := cfg.Timeout(); t > 0 {
		writeTimeout = t + 15*time.Second
	}

	// Create server
	srv := &http.Server{
		Addr:         fmt.Sprintf("%s:%d", cfg.API.Host, cfg.API.Port),
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: writeTimeout,
		IdleTimeout:  60 * time.Second,
	}

	// Start server in goroutine
	go func() {
		logger.Log("API server starting on %s (backend=%s, max_concurrent=%d)", srv.Addr, ex.Name(), cfg.API.MaxConcurrent)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("server failed: %v", err)
		}
	}()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Log("shutting down server...")
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Fatalf("server forced to shutdown: %v", err)
	}

	logger.Log("server exited")
}
