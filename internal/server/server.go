// Package server exposes the algorithm engine over HTTP.
//
// Routes:
//
//	GET  /healthz                         liveness and build info
//	GET  /api/v1/algorithms               registered algorithms
//	GET  /api/v1/algorithms/{name}        one algorithm
//	GET  /api/v1/algorithms/{name}/code   pseudocode listing
//	POST /api/v1/executions               run an algorithm, return the trace
//	POST /api/v1/frames                   run, then render the graph at one step
//	GET  /metrics                         Prometheus metrics (when enabled)
//
// Errors are JSON objects {"error": {"code", "message"}} whose HTTP status
// follows the error code.
package server

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/charmbracelet/log"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-playground/validator/v10"

	"github.com/matzehuels/algotrace/pkg/engine"
)

const (
	// maxBodyBytes caps request bodies.
	maxBodyBytes = 4 << 20

	shutdownTimeout = 10 * time.Second
)

// Server routes API requests to an engine runner.
type Server struct {
	runner   *engine.Runner
	logger   *log.Logger
	validate *validator.Validate
	metrics  http.Handler
}

// Option configures a Server.
type Option func(*Server)

// WithMetrics mounts h at /metrics.
func WithMetrics(h http.Handler) Option {
	return func(s *Server) { s.metrics = h }
}

// New creates a server. A nil logger falls back to the runner's.
func New(runner *engine.Runner, logger *log.Logger, opts ...Option) *Server {
	if logger == nil {
		logger = runner.Logger
	}
	s := &Server{
		runner:   runner,
		logger:   logger,
		validate: newValidator(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Handler returns the routed HTTP handler.
func (s *Server) Handler() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(s.observe)
	r.Use(middleware.Recoverer)

	r.Get("/healthz", s.handleHealth)
	r.Route("/api/v1", func(r chi.Router) {
		r.Get("/algorithms", s.handleAlgorithms)
		r.Get("/algorithms/{name}", s.handleAlgorithm)
		r.Get("/algorithms/{name}/code", s.handleCode)
		r.Post("/executions", s.handleExecute)
		r.Post("/frames", s.handleFrame)
	})
	if s.metrics != nil {
		r.Method(http.MethodGet, "/metrics", s.metrics)
	}
	r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		writeError(w, notFound(r.URL.Path))
	})
	return r
}

// ListenAndServe serves on addr until ctx is cancelled, then shuts down
// gracefully.
func (s *Server) ListenAndServe(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           s.Handler(),
		ReadHeaderTimeout: 5 * time.Second,
	}

	errc := make(chan error, 1)
	go func() {
		s.logger.Info("listening", "addr", addr)
		errc <- srv.ListenAndServe()
	}()

	select {
	case err := <-errc:
		return err
	case <-ctx.Done():
	}

	s.logger.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return err
	}
	if err := <-errc; err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return ctx.Err()
}
