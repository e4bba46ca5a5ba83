package main

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dm/pulse/internal/engine"
	"github.com/dm/pulse/internal/server"
)

func TestParseArgs(t *testing.T) {
	var stderr bytes.Buffer
	cfg, err := parseArgs([]string{"--addr", "127.0.0.1:7000", "--tick", "250ms", "--seed", "9"}, &stderr)
	require.NoError(t, err)
	assert.Equal(t, "127.0.0.1:7000", cfg.Server.Addr)
	assert.Equal(t, 250*time.Millisecond, cfg.Server.Tick)
	assert.Equal(t, uint64(9), cfg.Server.Seed)
	assert.Equal(t, 25.0, cfg.Server.Threshold)
}

func TestParseArgs_Errors(t *testing.T) {
	var stderr bytes.Buffer
	_, err := parseArgs([]string{"extra"}, &stderr)
	assert.True(t, errors.Is(err, errUsage))
	assert.Contains(t, stderr.String(), "unexpected argument")

	_, err = parseArgs([]string{"--tick", "0s"}, &stderr)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "server.tick")
}

func TestServe_StopsOnCancel(t *testing.T) {
	var stderr bytes.Buffer
	cfg, err := parseArgs([]string{"--addr", "127.0.0.1:0", "--tick", "10ms", "--seed", "1"}, &stderr)
	require.NoError(t, err)

	logger := slog.New(slog.NewTextHandler(&bytes.Buffer{}, nil))
	sim := engine.NewSimulator(cfg.SimulatorConfig())
	before := sim.Snapshot().Summary.TotalRecords

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- serve(ctx, cfg, logger, server.New(logger, cfg.Server.Addr, sim), sim) }()

	time.Sleep(100 * time.Millisecond)
	cancel()

	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(3 * time.Second):
		t.Fatal("serve did not return after cancel")
	}
	assert.Greater(t, sim.Snapshot().Summary.TotalRecords, before, "simulator advanced while serving")
}

func TestServe_ListenFailure(t *testing.T) {
	var stderr bytes.Buffer
	cfg, err := parseArgs([]string{"--addr", "256.0.0.1:bad"}, &stderr)
	require.NoError(t, err)

	logger := slog.New(slog.NewTextHandler(&bytes.Buffer{}, nil))
	sim := engine.NewSimulator(cfg.SimulatorConfig())

	err = serve(context.Background(), cfg, logger, server.New(logger, cfg.Server.Addr, sim), sim)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "listen")
}
