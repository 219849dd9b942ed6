// Package commands implements the kssg command line.
package commands

import (
	"errors"
	"log/slog"
	"os"

	"github.com/alecthomas/kong"
	prom "github.com/prometheus/client_golang/prometheus"

	"git.home.luguber.info/inful/kssg/internal/config"
	kerrors "git.home.luguber.info/inful/kssg/internal/errors"
	"git.home.luguber.info/inful/kssg/internal/generator"
	"git.home.luguber.info/inful/kssg/internal/metrics"
)

// Global context passed to subcommands.
type Global struct {
	Logger *slog.Logger
}

// CLI definition & global flags.
type CLI struct {
	Config  string           `short:"c" help:"Configuration file path" default:"kssg.json" type:"path"`
	Verbose bool             `short:"v" help:"Enable verbose logging"`
	Version kong.VersionFlag `name:"version" help:"Show version and exit"`

	Init    InitCmd    `cmd:"" help:"Initialize a workspace"`
	Build   BuildCmd   `cmd:"" help:"Build the site"`
	Clean   CleanCmd   `cmd:"" help:"Delete any previous build results"`
	Rebuild RebuildCmd `cmd:"" help:"Clean, then build"`
	Watch   WatchCmd   `cmd:"" help:"Serve the site and rebuild on changes"`
}

// AfterApply runs after flag parsing; setup logging once.
// nolint:unparam // AfterApply currently never returns an error.
func (c *CLI) AfterApply() error {
	level := slog.LevelInfo
	if c.Verbose {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
	slog.SetDefault(logger)
	return nil
}

// loadConfig loads the workspace configuration and categorizes failures.
func loadConfig(path string) (*config.Config, error) {
	cfg, err := config.Load(path)
	switch {
	case err == nil:
		return cfg, nil
	case errors.Is(err, config.ErrConfigMissing):
		return nil, kerrors.ConfigNotFound(path, err)
	default:
		return nil, kerrors.ConfigInvalid(path, err)
	}
}

// newGenerator creates a generator for cfg. A Prometheus recorder is
// attached when withMetrics is set or the configuration asks for a metrics
// textfile.
func newGenerator(cfg *config.Config, withMetrics bool) (*generator.Generator, *metrics.PrometheusRecorder) {
	g := generator.New(cfg)
	if !withMetrics && cfg.MetricsFile == "" {
		return g, nil
	}
	rec := metrics.NewPrometheusRecorder(prom.NewRegistry())
	g.WithRecorder(rec)
	return g, rec
}
