// Package generator runs the two-phase site build.
//
// Phase 1 walks the source tree in lexicographic order, classifies every
// file and collects page and post summaries. Phase 2 renders every item in
// the same order against the complete, sorted context. Nothing is written
// before Phase 1 has succeeded.
package generator

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/google/uuid"

	"git.home.luguber.info/inful/kssg/internal/config"
	kerrors "git.home.luguber.info/inful/kssg/internal/errors"
	"git.home.luguber.info/inful/kssg/internal/git"
	"git.home.luguber.info/inful/kssg/internal/items"
	"git.home.luguber.info/inful/kssg/internal/logfields"
	"git.home.luguber.info/inful/kssg/internal/markdown"
	"git.home.luguber.info/inful/kssg/internal/metrics"
	"git.home.luguber.info/inful/kssg/internal/observability"
	"git.home.luguber.info/inful/kssg/internal/site"
	"git.home.luguber.info/inful/kssg/internal/templates"
)

const (
	stageDiscover = "discover"
	stageRender   = "render"
)

// Generator builds the site described by a configuration. A Generator
// holds no state between builds.
type Generator struct {
	cfg      *config.Config
	recorder metrics.Recorder
	revision func(dir string) (git.Revision, error)
	newID    func() string
}

// New creates a generator for cfg.
func New(cfg *config.Config) *Generator {
	return &Generator{
		cfg:      cfg,
		recorder: metrics.NoopRecorder{},
		revision: git.ReadHead,
		newID: uuid.NewString,
	}
}

// WithRecorder sets the metrics recorder.
func (g *Generator) WithRecorder(r metrics.Recorder) *Generator {
	if r == nil {
		r = metrics.NoopRecorder{}
	}
	g.recorder = r
	return g
}

// WithRevisionFunc replaces the lookup of the workspace revision (for testing).
func (g *Generator) WithRevisionFunc(fn func(dir string) (git.Revision, error)) *Generator {
	g.revision = fn
	return g
}

// Build runs discovery and rendering once.
func (g *Generator) Build(ctx context.Context) (*Result, error) {
	start := time.Now()
	result := &Result{BuildID: g.newID(), StartTime: start}
	ctx = observability.WithBuildID(ctx, result.BuildID)

	err := g.build(ctx, result)

	result.EndTime = time.Now()
	result.Duration = result.EndTime.Sub(start)
	g.recorder.ObserveBuildDuration(result.Duration)

	switch {
	case err == nil:
		result.Status = StatusSuccess
		g.recorder.IncBuildOutcome(metrics.BuildOutcomeSuccess)
		observability.InfoContext(ctx, "Build completed",
			logfields.Count(result.Written),
			logfields.DurationMS(float64(result.Duration.Microseconds())/1000))
	case errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded):
		result.Status = StatusCanceled
		g.recorder.IncBuildOutcome(metrics.BuildOutcomeCanceled)
	default:
		result.Status = StatusFailed
		g.recorder.IncBuildOutcome(metrics.BuildOutcomeFailed)
	}

	g.exportMetrics(ctx)
	return result, err
}

func (g *Generator) build(ctx context.Context, result *Result) error {
	stageStart := time.Now()
	dctx := observability.WithStage(ctx, stageDiscover)
	observability.DebugContext(dctx, "Discovering sources", logfields.Path(g.cfg.SrcPath))

	found, summaries, err := g.discover(dctx)
	g.recorder.ObserveStageDuration(stageDiscover, time.Since(stageStart))
	if err != nil {
		g.recorder.IncStageResult(stageDiscover, stageResult(err))
		return err
	}
	g.recorder.IncStageResult(stageDiscover, metrics.ResultSuccess)
	result.Items = len(found)
	result.countKinds(found)
	for kind, n := range result.Kinds {
		g.recorder.AddItems(kind, n)
	}

	rev := g.readRevision(dctx)
	s, err := site.New(g.cfg.SiteTitle, g.cfg.SiteBaseURL, rev.Hash)
	if err != nil {
		return kerrors.Wrap(err, kerrors.CategoryConfig, kerrors.SeverityFatal, "invalid base URL")
	}
	s.ShortRevision, s.Branch = rev.Short(), rev.Branch
	sctx := site.NewContext(s, summaries)
	result.Pages = sctx.Pages.Len()
	result.Posts = sctx.Posts.Len()

	stageStart = time.Now()
	rctx := observability.WithStage(ctx, stageRender)
	err = g.render(rctx, found, sctx, result)
	g.recorder.ObserveStageDuration(stageRender, time.Since(stageStart))
	if err != nil {
		g.recorder.IncStageResult(stageRender, stageResult(err))
		return err
	}
	g.recorder.IncStageResult(stageRender, metrics.ResultSuccess)
	return nil
}

// render is Phase 2. Every item sees its own summary as the current page.
func (g *Generator) render(ctx context.Context, found []discovered, sctx *site.Context, result *Result) error {
	md := markdown.New()
	env := &items.Env{
		Templates: templates.NewEnvironment(g.cfg.SrcPath, templates.Funcs(templates.FuncOptions{
			AbsURL:   sctx.Site.URL,
			Markdown: md.ToHTML,
		})),
		Markdown:     md,
		PostTemplate: g.cfg.PostTemplate,
		OutputRoot:   g.cfg.OutputPath,
	}

	for _, d := range found {
		if err := ctx.Err(); err != nil {
			return err
		}
		if d.item.Kind == items.Ignore {
			continue
		}
		if err := items.Render(d.item, env, sctx.Render(d.summary)); err != nil {
			return classifyRenderError(d.item.Rel, err)
		}
		result.Written++
		observability.DebugContext(ctx, "Rendered item",
			logfields.Item(d.item.Rel),
			logfields.Kind(d.item.Kind.String()),
			logfields.Link(d.item.Link))
	}
	return nil
}

func (g *Generator) readRevision(ctx context.Context) git.Revision {
	if g.revision == nil {
		return git.Revision{}
	}
	rev, err := g.revision(g.cfg.Root)
	if err != nil {
		if !errors.Is(err, git.ErrNotRepository) {
			observability.WarnContext(ctx, "Could not read source revision", logfields.Error(err))
		}
		return git.Revision{}
	}
	return rev
}

// exportMetrics writes the Prometheus textfile when one is configured.
func (g *Generator) exportMetrics(ctx context.Context) {
	pr, ok := g.recorder.(*metrics.PrometheusRecorder)
	if !ok || g.cfg.MetricsFile == "" {
		return
	}
	if err := metrics.WriteTextfile(pr.Registry(), g.cfg.MetricsFile); err != nil {
		observability.WarnContext(ctx, "Failed to export metrics", logfields.Path(g.cfg.MetricsFile), logfields.Error(err))
	}
}

// Clean removes the output directory and recreates it empty. It is safe to
// call repeatedly and when the directory does not exist.
func (g *Generator) Clean() error {
	if err := os.RemoveAll(g.cfg.OutputPath); err != nil {
		return kerrors.FileSystemError("clean", fmt.Errorf("remove %s: %w", g.cfg.OutputPath, err))
	}
	// #nosec G301 -- published site output.
	if err := os.MkdirAll(g.cfg.OutputPath, 0o755); err != nil {
		return kerrors.FileSystemError("clean", fmt.Errorf("create %s: %w", g.cfg.OutputPath, err))
	}
	slog.Debug("Cleaned output directory", logfields.Path(g.cfg.OutputPath))
	return nil
}

// Rebuild cleans the output directory and builds.
func (g *Generator) Rebuild(ctx context.Context) (*Result, error) {
	if err := g.Clean(); err != nil {
		return nil, err
	}
	return g.Build(ctx)
}

func classifyRenderError(rel string, err error) error {
	switch {
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		return err
	case errors.Is(err, templates.ErrTemplate), errors.Is(err, templates.ErrTemplateNotFound):
		return kerrors.TemplateFailed(rel, err)
	default:
		return kerrors.FileSystemError("render "+rel, err)
	}
}

func stageResult(err error) metrics.ResultLabel {
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return metrics.ResultCanceled
	}
	return metrics.ResultFatal
}
