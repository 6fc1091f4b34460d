package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"golang.org/x/term"

	"github.com/atomicstack/spider-tui/internal/app"
	"github.com/atomicstack/spider-tui/internal/config"
	"github.com/atomicstack/spider-tui/internal/logging"
	"github.com/atomicstack/spider-tui/internal/logging/events"
)

func main() {
	cfg := config.MustLoad()
	if err := config.Validate(cfg); err != nil {
		fmt.Fprintf(os.Stderr, "Configuration error: %v\n", err)
		os.Exit(2)
	}
	if err := logging.Configure(cfg.Logging.FilePath); err != nil {
		fmt.Fprintf(os.Stderr, "Log file error: %v\n", err)
		os.Exit(2)
	}
	logging.SetTraceEnabled(cfg.Logging.Trace)

	events.App.Start(startupTracePayload(cfg))

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	if err := app.Run(ctx, cfg.App); err != nil {
		logging.Error(err)
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		stop()
		os.Exit(1)
	}
}

// startupTracePayload bundles runtime context for trace logging.
func startupTracePayload(cfg config.Config) map[string]interface{} {
	flags := make(map[string]interface{}, len(cfg.Flags)+2)
	for k, v := range cfg.Flags {
		flags[k] = v
	}
	flags["trace"] = cfg.Logging.Trace
	flags["log-path"] = cfg.Logging.FilePath
	payload := map[string]interface{}{
		"argv":    cfg.Args,
		"flags":   flags,
		"config":  cfg,
		"version": app.Version,
	}
	if exe, err := os.Executable(); err == nil {
		payload["executable"] = exe
	} else {
		payload["executableError"] = err.Error()
	}
	if cwd, err := os.Getwd(); err == nil {
		payload["cwd"] = cwd
	} else {
		payload["cwdError"] = err.Error()
	}
	payload["tty"] = collectTTYDetails()
	return payload
}

type ttyDetails struct {
	Detected *ttyDetected     `json:"detected,omitempty"`
	Probes   []ttyProbeResult `json:"probes"`
}

type ttyDetected struct {
	Source string `json:"source"`
	Width  int    `json:"width"`
	Height int    `json:"height"`
}

type ttyProbeResult struct {
	Name       string `json:"name"`
	IsTerminal bool   `json:"is_terminal"`
	Width      int    `json:"width,omitempty"`
	Height     int    `json:"height,omitempty"`
	Error      string `json:"error,omitempty"`
}

// collectTTYDetails reports which standard descriptors are terminals and
// their sizes. The first sized terminal is the detected one.
func collectTTYDetails() ttyDetails {
	probes := []struct {
		name string
		file *os.File
	}{
		{"stdin", os.Stdin},
		{"stdout", os.Stdout},
		{"stderr", os.Stderr},
	}
	details := ttyDetails{Probes: make([]ttyProbeResult, 0, len(probes))}
	for _, probe := range probes {
		entry := ttyProbeResult{Name: probe.name}
		fd := int(probe.file.Fd())
		if term.IsTerminal(fd) {
			entry.IsTerminal = true
			width, height, err := term.GetSize(fd)
			if err != nil {
				entry.Error = err.Error()
			} else {
				entry.Width, entry.Height = width, height
				if details.Detected == nil {
					details.Detected = &ttyDetected{Source: probe.name, Width: width, Height: height}
				}
			}
		}
		details.Probes = append(details.Probes, entry)
	}
	return details
}
