// Package api implements the debruijn HTTP API.
//
// The API exposes graph construction and retrieval over JSON:
//
//	GET    /healthz                  - liveness and version
//	GET    /v1/stats                 - build/render/cache counters
//	POST   /v1/graphs                - build and persist a graph
//	GET    /v1/graphs                - list stored graphs (summaries)
//	GET    /v1/graphs/{id}           - full stored graph
//	GET    /v1/graphs/{id}/render    - rendered artifact (?format=text|dot|svg)
//	DELETE /v1/graphs/{id}           - remove a stored graph
//
// Errors are returned as {"error": {"code", "message"}} with the codes
// from pkg/errors mapped to HTTP status codes.
package api

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/charmbracelet/log"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/graphomics/debruijn/pkg/observability"
	"github.com/graphomics/debruijn/pkg/pipeline"
	"github.com/graphomics/debruijn/pkg/store"
)

// shutdownTimeout bounds connection draining on server shutdown.
const shutdownTimeout = 10 * time.Second

// Config carries the server's collaborators.
// Nil fields are replaced with sensible defaults by New.
type Config struct {
	Store     store.Store
	Runner    *pipeline.Runner
	Logger    *log.Logger
	Collector *observability.Collector
}

// Server is the debruijn HTTP API server.
type Server struct {
	store     store.Store
	runner    *pipeline.Runner
	logger    *log.Logger
	collector *observability.Collector
}

// New creates a server. Nil config fields default to an in-memory
// store, an uncached runner, the default logger, and a fresh stats
// collector registered with the observability hooks.
func New(cfg Config) *Server {
	if cfg.Logger == nil {
		cfg.Logger = log.Default()
	}
	if cfg.Store == nil {
		cfg.Store = store.NewMemoryStore()
	}
	if cfg.Runner == nil {
		cfg.Runner = pipeline.NewRunner(nil, nil, cfg.Logger)
	}
	if cfg.Collector == nil {
		cfg.Collector = observability.NewCollector()
		observability.SetPipelineHooks(cfg.Collector)
		observability.SetCacheHooks(cfg.Collector)
	}
	return &Server{
		store:     cfg.Store,
		runner:    cfg.Runner,
		logger:    cfg.Logger,
		collector: cfg.Collector,
	}
}

// Router builds the chi router with all routes and middleware.
func (s *Server) Router() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Recoverer)
	r.Use(s.requestLogger)

	r.Get("/healthz", s.handleHealth)

	r.Route("/v1", func(r chi.Router) {
		r.Get("/stats", s.handleStats)
		r.Route("/graphs", func(r chi.Router) {
			r.Post("/", s.handleCreateGraph)
			r.Get("/", s.handleListGraphs)
			r.Get("/{id}", s.handleGetGraph)
			r.Get("/{id}/render", s.handleRenderGraph)
			r.Delete("/{id}", s.handleDeleteGraph)
		})
	})

	return r
}

// Run serves the API on addr until ctx is cancelled, then drains
// connections for up to shutdownTimeout.
func (s *Server) Run(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           s.Router(),
		ReadHeaderTimeout: 5 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("serving API", "addr", addr)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
		s.logger.Info("shutting down", "timeout", shutdownTimeout)
		drainCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		return srv.Shutdown(drainCtx)
	}
}

// requestLogger logs each request with its status and duration.
func (s *Server) requestLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		next.ServeHTTP(ww, r)
		s.logger.Debug("request",
			"method", r.Method,
			"path", r.URL.Path,
			"status", ww.Status(),
			"bytes", ww.BytesWritten(),
			"duration", time.Since(start))
	})
}
