package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/dm/pulse/internal/client"
	"github.com/dm/pulse/internal/config"
	"github.com/dm/pulse/internal/tui"
)

// errUsage reports a command-line mistake; usage has already been printed.
var errUsage = errors.New("usage error")

// parseArgs builds the effective config: defaults, then the --config file,
// then flags that were set explicitly, then the positional endpoint.
func parseArgs(args []string, stderr io.Writer) (*config.Config, error) {
	fs := flag.NewFlagSet("pulse", flag.ContinueOnError)
	fs.SetOutput(stderr)

	var (
		configPath = fs.String("config", "", "YAML config file")
		interval   = fs.Duration("interval", time.Second, "refresh interval (e.g. 1s, 500ms)")
		timeout    = fs.Duration("timeout", 5*time.Second, "per-fetch timeout")
		insecure   = fs.Bool("insecure", false, "skip TLS certificate verification")
		logFile    = fs.String("log-file", "pulse.log", "log file (the terminal is used for the dashboard)")
		logLevel   = fs.String("log-level", "info", "log level: debug, info, warn, error")
	)
	fs.Usage = func() {
		fmt.Fprintf(stderr, "usage: pulse [flags] [stats-uri]\n\n")
		fmt.Fprintf(stderr, "examples:\n")
		fmt.Fprintf(stderr, "  pulse http://localhost:5000\n")
		fmt.Fprintf(stderr, "  pulse --interval 2s https://stats.example.com\n")
		fmt.Fprintf(stderr, "  pulse --config pulse.yaml\n\n")
		fs.PrintDefaults()
	}
	if err := fs.Parse(args); err != nil {
		return nil, errUsage
	}

	rest := fs.Args()
	// Reject extra positional arguments. Parse stops at the first non-flag
	// argument, so trailing --flags would also be silently ignored.
	if len(rest) > 1 {
		extra := rest[1]
		if len(extra) > 1 && extra[0] == '-' {
			fmt.Fprintf(stderr, "error: flag %q must be placed before the URI\n", extra)
		} else {
			fmt.Fprintf(stderr, "error: unexpected argument %q\n", extra)
		}
		fs.Usage()
		return nil, errUsage
	}

	cfg := config.Default()
	if *configPath != "" {
		loaded, err := config.Load(*configPath)
		if err != nil {
			return nil, err
		}
		cfg = loaded
	}

	fs.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "interval":
			cfg.Interval = *interval
		case "timeout":
			cfg.FetchTimeout = *timeout
		case "insecure":
			cfg.Insecure = *insecure
		case "log-file":
			cfg.Logging.File = *logFile
		case "log-level":
			cfg.Logging.Level = *logLevel
		}
	})
	if len(rest) == 1 {
		cfg.Endpoint = rest[0]
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	base, err := config.ParseEndpoint(cfg.Endpoint)
	if err != nil {
		return nil, err
	}
	cfg.Endpoint = base
	return cfg, nil
}

func run(args []string) error {
	cfg, err := parseArgs(args, os.Stderr)
	if err != nil {
		return err
	}

	// The dashboard owns the terminal, so logs go to a file.
	f, err := tea.LogToFile(cfg.Logging.File, "pulse")
	if err != nil {
		return fmt.Errorf("open log file: %w", err)
	}
	defer f.Close()

	level, _ := config.ParseLevel(cfg.Logging.Level)
	logger := slog.New(slog.NewTextHandler(f, &slog.HandlerOptions{Level: level}))

	c, err := client.NewDefaultClient(client.ClientConfig{
		BaseURL:            cfg.Endpoint,
		StatsPath:          cfg.StatsPath,
		InsecureSkipVerify: cfg.Insecure,
		RequestTimeout:     cfg.FetchTimeout,
	})
	if err != nil {
		return err
	}

	if err := c.Ping(context.Background()); err != nil {
		// Not fatal: the dashboard keeps polling and renders once the
		// backend answers.
		logger.Warn("stats backend not reachable yet", "endpoint", cfg.Endpoint, "err", err)
	}

	logger.Info("starting dashboard", "endpoint", cfg.Endpoint, "interval", cfg.Interval)
	app := tui.NewApp(c, tui.Options{
		Interval:     cfg.Interval,
		FetchTimeout: cfg.FetchTimeout,
		Logger:       logger,
	})
	if _, err := tea.NewProgram(app, tea.WithAltScreen()).Run(); err != nil {
		return fmt.Errorf("dashboard: %w", err)
	}
	return nil
}

func main() {
	if err := run(os.Args[1:]); err != nil {
		if !errors.Is(err, errUsage) {
			fmt.Fprintf(os.Stderr, "error: %v\n", err)
		}
		os.Exit(1)
	}
}
