package config

import (
	"fmt"
	"log/slog"
	"net/url"
	"os"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/dm/pulse/internal/engine"
)

type LoggingConfig struct {
	File  string `yaml:"file"`  // Log file for the dashboard (default "pulse.log")
	Level string `yaml:"level"` // "debug", "info", "warn" or "error" (default "info")
}

type ServerConfig struct {
	Addr           string        `yaml:"addr"`            // Listen address (default ":5000")
	Tick           time.Duration `yaml:"tick"`            // Simulator step period (default 1s)
	Seed           uint64        `yaml:"seed"`            // RNG seed, 0 = time based
	Threshold      float64       `yaml:"threshold"`       // Rejection rate (%) that flags a district
	MinSamples     int64         `yaml:"min_samples"`     // Windowed requests before a district is judged
	Window         int           `yaml:"window"`          // Steps per district window
	MaxAnomalies   int           `yaml:"max_anomalies"`   // Anomaly list cap
	IncidentChance float64       `yaml:"incident_chance"` // Per-step chance of a rejection incident
}

type Config struct {
	Endpoint     string        `yaml:"endpoint"`      // Base URL of the stats service
	StatsPath    string        `yaml:"stats_path"`    // Snapshot path (default "/api/stats")
	Interval     time.Duration `yaml:"interval"`      // Refresh period (default 1s)
	FetchTimeout time.Duration `yaml:"fetch_timeout"` // Per-fetch deadline (default 5s)
	Insecure     bool          `yaml:"insecure"`      // Skip TLS certificate verification
	Logging      LoggingConfig `yaml:"logging"`
	Server       ServerConfig  `yaml:"server"`

	path string `yaml:"-"` // Path to config file (set during Load)
}

// Path returns the path the config was loaded from, or "".
func (c *Config) Path() string { return c.path }

// Default returns a config with every default applied.
func Default() *Config {
	det := engine.DefaultDetectorConfig()
	sim := engine.DefaultSimulatorConfig()
	return &Config{
		Endpoint:     "http://localhost:5000",
		StatsPath:    "/api/stats",
		Interval:     time.Second,
		FetchTimeout: 5 * time.Second,
		Logging: LoggingConfig{
			File:  "pulse.log",
			Level: "info",
		},
		Server: ServerConfig{
			Addr:           ":5000",
			Tick:           time.Second,
			Threshold:      det.Threshold,
			MinSamples:     det.MinSamples,
			Window:         det.Window,
			MaxAnomalies:   det.MaxAnomalies,
			IncidentChance: sim.IncidentChance,
		},
	}
}

// Load reads a YAML config file over the defaults and validates the result.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config: %w", err)
	}
	cfg, err := Parse(data)
	if err != nil {
		return nil, err
	}
	cfg.path = path
	return cfg, nil
}

// Parse decodes YAML over the defaults and validates the result.
func Parse(data []byte) (*Config, error) {
	cfg := Default()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks the config after flags and file have been merged.
func (c *Config) Validate() error {
	if _, err := ParseEndpoint(c.Endpoint); err != nil {
		return err
	}
	if !strings.HasPrefix(c.StatsPath, "/") {
		return fmt.Errorf("stats_path %q must start with /", c.StatsPath)
	}
	if c.Interval <= 0 {
		return fmt.Errorf("interval must be positive")
	}
	if c.FetchTimeout <= 0 {
		return fmt.Errorf("fetch_timeout must be positive")
	}
	if _, err := ParseLevel(c.Logging.Level); err != nil {
		return err
	}
	if c.Server.Addr == "" {
		return fmt.Errorf("server.addr is required")
	}
	if c.Server.Tick <= 0 {
		return fmt.Errorf("server.tick must be positive")
	}
	if c.Server.Threshold <= 0 || c.Server.Threshold >= 100 {
		return fmt.Errorf("server.threshold must be between 0 and 100, got %v", c.Server.Threshold)
	}
	if c.Server.MinSamples < 0 || c.Server.Window < 0 || c.Server.MaxAnomalies < 0 {
		return fmt.Errorf("server.min_samples, server.window and server.max_anomalies must not be negative")
	}
	if c.Server.IncidentChance < 0 || c.Server.IncidentChance > 1 {
		return fmt.Errorf("server.incident_chance must be between 0 and 1, got %v", c.Server.IncidentChance)
	}
	return nil
}

// SimulatorConfig maps the server section onto the simulator's settings.
func (c *Config) SimulatorConfig() engine.SimulatorConfig {
	sim := engine.DefaultSimulatorConfig()
	sim.Seed = c.Server.Seed
	sim.IncidentChance = c.Server.IncidentChance
	sim.Detector = engine.DetectorConfig{
		Threshold:    c.Server.Threshold,
		MinSamples:   c.Server.MinSamples,
		Window:       c.Server.Window,
		MaxAnomalies: c.Server.MaxAnomalies,
	}
	return sim
}

// ParseEndpoint parses a stats service URI and returns its base URL with
// credentials, query and fragment removed.
func ParseEndpoint(raw string) (string, error) {
	u, err := url.Parse(raw)
	if err != nil {
		return "", fmt.Errorf("invalid URI %q: %w", raw, err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return "", fmt.Errorf("unsupported scheme %q (must be http or https)", u.Scheme)
	}
	if u.Hostname() == "" {
		return "", fmt.Errorf("invalid URI %q: host is required", raw)
	}
	if p := u.Port(); p != "" {
		n, err := strconv.Atoi(p)
		if err != nil || n < 1 || n > 65535 {
			return "", fmt.Errorf("invalid URI %q: port must be 1-65535", raw)
		}
	}
	u.User = nil
	u.RawQuery = ""
	u.ForceQuery = false
	u.Fragment = ""
	u.Path = strings.TrimRight(u.Path, "/")
	u.RawPath = ""
	return u.String(), nil
}

// ParseLevel maps a level name onto slog.Level. An empty name is info.
func ParseLevel(s string) (slog.Level, error) {
	var l slog.Level
	if s == "" {
		return slog.LevelInfo, nil
	}
	if err := l.UnmarshalText([]byte(s)); err != nil {
		return 0, fmt.Errorf("logging.level: %w", err)
	}
	return l, nil
}
