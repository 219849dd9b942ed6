package preview

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"strconv"
	"time"

	"github.com/google/uuid"
	prom "github.com/prometheus/client_golang/prometheus"

	"git.home.luguber.info/inful/kssg/internal/config"
	"git.home.luguber.info/inful/kssg/internal/generator"
	"git.home.luguber.info/inful/kssg/internal/logfields"
	"git.home.luguber.info/inful/kssg/internal/metrics"
)

const shutdownTimeout = 5 * time.Second

// Builder rebuilds the site from scratch.
type Builder interface {
	Rebuild(ctx context.Context) (*generator.Result, error)
}

// Options configures Serve.
type Options struct {
	// Registry is served at /metrics and feeds live reload metrics when set.
	Registry *prom.Registry
	// Recorder observes the live reload hub. Defaults to a no-op.
	Recorder metrics.LiveReloadRecorder
}

// Serve builds the site, serves the output directory on cfg.Addr() and
// rebuilds on source changes until ctx is canceled. Build failures are
// logged and do not stop the server.
func Serve(ctx context.Context, cfg *config.Config, b Builder, opts Options) error {
	ln, err := net.Listen("tcp", cfg.Addr())
	if err != nil {
		return fmt.Errorf("listen on %s: %w", cfg.Addr(), err)
	}
	return serve(ctx, ln, cfg, b, opts)
}

func serve(ctx context.Context, ln net.Listener, cfg *config.Config, b Builder, opts Options) error {
	var hub *Hub
	if cfg.LiveReload {
		hub = NewHub(opts.Recorder)
	}
	rebuild := func(ctx context.Context) {
		slog.Info("Rebuilding site")
		res, err := b.Rebuild(ctx)
		if err != nil {
			slog.Error("Build failed", logfields.Error(err))
		}
		if hub != nil {
			hub.Broadcast(reloadToken(res))
		}
	}

	rebuild(ctx)

	w, err := newWatcher(cfg.SrcPath)
	if err != nil {
		_ = ln.Close()
		return err
	}
	defer func() { _ = w.Close() }()

	srv := NewServer(ServerOptions{
		Addr:      ln.Addr().String(),
		OutputDir: cfg.OutputPath,
		Hub:       hub,
		Registry:  opts.Registry,
	})
	serveErr := make(chan error, 1)
	go func() { serveErr <- srv.Serve(ln) }()

	url := "http://" + ln.Addr().String() + "/"
	slog.Info("Serving site", logfields.URL(url), slog.Bool("live_reload", hub != nil))
	if cfg.ServerOpenBrowserTab {
		if err := openBrowser(url); err != nil {
			slog.Warn("Failed to open browser", logfields.Error(err))
		}
	}

	loopCtx, stop := context.WithCancel(ctx)
	loopDone := make(chan struct{})
	go func() {
		defer close(loopDone)
		watchLoop(loopCtx, w, rebuild)
	}()

	var result error
	select {
	case <-ctx.Done():
	case err := <-serveErr:
		result = err
	}
	stop()
	<-loopDone

	slog.Info("Shutting down preview server")
	shutdownCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil && !errors.Is(err, context.DeadlineExceeded) {
		slog.Warn("HTTP server shutdown error", logfields.Error(err))
	}
	return result
}

// reloadToken identifies a finished rebuild.
func reloadToken(res *generator.Result) string {
	if res != nil && res.BuildID != "" {
		return res.BuildID
	}
	if id, err := uuid.NewRandom(); err == nil {
		return id.String()
	}
	return strconv.FormatInt(time.Now().UnixNano(), 10)
}
