package preview

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	prom "github.com/prometheus/client_golang/prometheus"

	"git.home.luguber.info/inful/kssg/internal/logfields"
	"git.home.luguber.info/inful/kssg/internal/metrics"
)

// Server serves the output directory.
type Server struct {
	router *chi.Mux
	server *http.Server
	hub    *Hub
}

// ServerOptions configures NewServer.
type ServerOptions struct {
	Addr      string
	OutputDir string
	// Hub enables /livereload, /livereload.js and script injection when set.
	Hub *Hub
	// Registry is exposed at /metrics when set.
	Registry *prom.Registry
}

// NewServer creates a server for opts.
func NewServer(opts ServerOptions) *Server {
	s := &Server{router: chi.NewRouter(), hub: opts.Hub}
	s.setupRoutes(opts)
	s.server = &http.Server{
		Addr:              opts.Addr,
		Handler:           s.router,
		ReadHeaderTimeout: 10 * time.Second,
		IdleTimeout:       120 * time.Second,
	}
	return s
}

func (s *Server) setupRoutes(opts ServerOptions) {
	s.router.Use(middleware.RequestID)
	s.router.Use(middleware.Recoverer)
	s.router.Use(requestLogger)
	s.router.Use(noCache)

	if opts.Registry != nil {
		s.router.Handle("/metrics", metrics.HTTPHandler(opts.Registry))
	}

	files := http.FileServer(http.Dir(opts.OutputDir))
	if s.hub != nil {
		s.router.Handle("/livereload", s.hub)
		s.router.Get("/livereload.js", func(w http.ResponseWriter, _ *http.Request) {
			w.Header().Set("Content-Type", "application/javascript; charset=utf-8")
			_, _ = w.Write([]byte(Script))
		})
		files = injectScript(files)
	}
	s.router.Handle("/*", files)
}

// Handler returns the root handler.
func (s *Server) Handler() http.Handler {
	return s.router
}

// Serve accepts connections on ln until Shutdown.
func (s *Server) Serve(ln net.Listener) error {
	slog.Info("Preview server listening", logfields.Addr(ln.Addr().String()))
	if err := s.server.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("preview server: %w", err)
	}
	return nil
}

// Shutdown disconnects live reload clients and stops the server.
func (s *Server) Shutdown(ctx context.Context) error {
	if s.hub != nil {
		s.hub.Shutdown()
	}
	return s.server.Shutdown(ctx)
}

func noCache(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Cache-Control", "no-cache, no-store, must-revalidate")
		w.Header().Set("Pragma", "no-cache")
		w.Header().Set("Expires", "0")
		next.ServeHTTP(w, r)
	})
}

func requestLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		start := time.Now()
		next.ServeHTTP(ww, r)
		slog.Debug("HTTP request",
			logfields.Method(r.Method),
			logfields.URL(r.URL.Path),
			logfields.Status(ww.Status()),
			logfields.DurationMS(float64(time.Since(start).Microseconds())/1000),
			slog.String("request_id", middleware.GetReqID(r.Context())))
	})
}
