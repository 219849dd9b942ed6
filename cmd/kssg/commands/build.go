package commands

import (
	"context"
	"fmt"
	"os/signal"
	"syscall"
	"time"

	"git.home.luguber.info/inful/kssg/internal/generator"
)

// BuildCmd implements the 'build' command.
type BuildCmd struct{}

func (b *BuildCmd) Run(_ *Global, root *CLI) error {
	return runBuild(root, func(ctx context.Context, g *generator.Generator) (*generator.Result, error) {
		return g.Build(ctx)
	})
}

// CleanCmd implements the 'clean' command.
type CleanCmd struct{}

func (c *CleanCmd) Run(_ *Global, root *CLI) error {
	cfg, err := loadConfig(root.Config)
	if err != nil {
		return err
	}
	g, _ := newGenerator(cfg, false)
	return g.Clean()
}

// RebuildCmd implements the 'rebuild' command.
type RebuildCmd struct{}

func (r *RebuildCmd) Run(_ *Global, root *CLI) error {
	return runBuild(root, func(ctx context.Context, g *generator.Generator) (*generator.Result, error) {
		return g.Rebuild(ctx)
	})
}

func runBuild(root *CLI, run func(context.Context, *generator.Generator) (*generator.Result, error)) error {
	cfg, err := loadConfig(root.Config)
	if err != nil {
		return err
	}

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	g, _ := newGenerator(cfg, false)
	res, err := run(ctx, g)
	if err != nil {
		return err
	}
	fmt.Printf("Built %d pages and %d posts into %s (%d files, %s)\n",
		res.Pages, res.Posts, cfg.OutputPath, res.Written, res.Duration.Round(time.Millisecond))
	return nil
}
