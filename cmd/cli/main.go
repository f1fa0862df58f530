package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"

	"html-extract-go/pkg/cli"
	"html-extract-go/pkg/cli/logger"
	"html-extract-go/pkg/config"
)

func main() {
	var (
		// Config commands
		configShow = flag.Bool("config-show", false, "Show current configuration")
		configSet  = flag.String("config-set", "", "Set a config value (format: section.key=value)")

		// One-shot extraction
		extractMode = flag.Bool("extract", false, "Extract once and print the element HTML (no TUI)")
		urlFlag     = flag.String("url", "", "Page URL (default from config)")
		byFlag      = flag.String("by", "", "Lookup strategy: class_name or id (default from config)")
		valueFlag   = flag.String("value", "", "Class name or id to look up (default from config)")
		browserFlag = flag.String("browser", "", "Chrome executable path (default from config)")
		driverFlag  = flag.String("driver", "", "ChromeDriver path (default from config)")
		backendFlag = flag.String("backend", "", "Backend: webdriver, rod, static or remote (default from config)")
		outFlag     = flag.String("out", "", "Write the HTML to this file instead of stdout")
	)
	flag.Parse()

	logFile := logger.Init("tmp")
	defer logger.CloseLog()
	if logFile != "" {
		logger.Log("logging to %s", logFile)
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	app := cli.NewApp(cfg)

	// Handle config commands first (no browser needed)
	if *configShow {
		app.ShowConfig()
		return
	}
	if *configSet != "" {
		if err := app.SetConfig(*configSet); err != nil {
			log.Fatalf("failed to set config: %v", err)
		}
		fmt.Println("Configuration updated successfully")
		return
	}

	if *extractMode {
		ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
		err := app.HandleExtractCommand(ctx, cli.ExtractFlags{
			URL:     *urlFlag,
			By:      *byFlag,
			Value:   *valueFlag,
			Browser: *browserFlag,
			Driver:  *driverFlag,
			Backend: *backendFlag,
			Out:     *outFlag,
		})
		stop()
		if err != nil {
			fmt.Fprintf(os.Stderr, "✗ %v\n", err)
			logger.CloseLog()
			os.Exit(1)
		}
		return
	}

	// Interactive TUI mode
	if err := app.Run(); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		logger.CloseLog()
		os.Exit(1)
	}
}
