package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/dm/pulse/internal/config"
	"github.com/dm/pulse/internal/engine"
	"github.com/dm/pulse/internal/server"
)

const shutdownTimeout = 5 * time.Second

var errUsage = errors.New("usage error")

// parseArgs builds the server config: defaults, then --config, then flags
// that were set explicitly.
func parseArgs(args []string, stderr io.Writer) (*config.Config, error) {
	fs := flag.NewFlagSet("pulse-statsd", flag.ContinueOnError)
	fs.SetOutput(stderr)

	var (
		configPath = fs.String("config", "", "YAML config file (server: section)")
		addr       = fs.String("addr", ":5000", "listen address")
		tick       = fs.Duration("tick", time.Second, "simulation step period")
		seed       = fs.Uint64("seed", 0, "random seed, 0 = time based")
		logLevel   = fs.String("log-level", "info", "log level: debug, info, warn, error")
	)
	fs.Usage = func() {
		fmt.Fprintf(stderr, "usage: pulse-statsd [flags]\n\n")
		fs.PrintDefaults()
	}
	if err := fs.Parse(args); err != nil {
		return nil, errUsage
	}
	if fs.NArg() > 0 {
		fmt.Fprintf(stderr, "error: unexpected argument %q\n", fs.Arg(0))
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
		case "addr":
			cfg.Server.Addr = *addr
		case "tick":
			cfg.Server.Tick = *tick
		case "seed":
			cfg.Server.Seed = *seed
		case "log-level":
			cfg.Logging.Level = *logLevel
		}
	})
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// serve runs the simulator and the HTTP server until ctx is cancelled or
// either fails, then shuts the server down.
func serve(ctx context.Context, cfg *config.Config, logger *slog.Logger, srv *server.Server, sim *engine.Simulator) error {
	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		return sim.Run(gctx, cfg.Server.Tick)
	})
	g.Go(srv.Start)
	g.Go(func() error {
		<-gctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		return srv.Stop(shutdownCtx)
	})

	if err := g.Wait(); err != nil {
		return err
	}
	logger.Info("stats server stopped")
	return nil
}

func run(args []string) error {
	cfg, err := parseArgs(args, os.Stderr)
	if err != nil {
		return err
	}

	level, _ := config.ParseLevel(cfg.Logging.Level)
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))

	sim := engine.NewSimulator(cfg.SimulatorConfig())
	srv := server.New(logger, cfg.Server.Addr, sim)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	logger.Info("starting stats simulator",
		"addr", cfg.Server.Addr,
		"tick", cfg.Server.Tick,
		"threshold", cfg.Server.Threshold,
	)
	return serve(ctx, cfg, logger, srv, sim)
}

func main() {
	if err := run(os.Args[1:]); err != nil {
		if !errors.Is(err, errUsage) {
			fmt.Fprintf(os.Stderr, "error: %v\n", err)
		}
		os.Exit(1)
	}
}
