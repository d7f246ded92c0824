// Package server exposes table detection over HTTP.
//
// Routes:
//
//	GET  /healthz             liveness and build information
//	GET  /v1/metrics          fitness metrics in weight order
//	POST /v1/detect           detect tables in a sheet document
//	POST /v1/evaluate         compare detected tables with ground truth
//
// Every response carries an X-Request-ID header. Errors are returned as
// {"error": {"code": "...", "message": "..."}, "request_id": "..."} with a
// status derived from the error code.
package server

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/charmbracelet/log"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/matzehuels/sheetgraph/pkg/config"
	"github.com/matzehuels/sheetgraph/pkg/pipeline"
)

// Request limits.
const (
	DefaultMaxBodyBytes = 8 << 20
	// DefaultMaxRegions bounds the regions of one sheet document.
	DefaultMaxRegions = 1000
	// DefaultMaxTables bounds the boxes of one evaluation request.
	DefaultMaxTables = 1000
)

// Server serves the detection API.
type Server struct {
	runner     *pipeline.Runner
	config     *config.Config
	logger     *log.Logger
	maxBody    int64
	maxRegions int
	maxTables  int
}

// New creates a server. A nil cfg uses config.Default().
func New(runner *pipeline.Runner, cfg *config.Config, logger *log.Logger) *Server {
	if cfg == nil {
		cfg = config.Default()
	}
	if logger == nil {
		logger = log.Default()
	}
	if runner == nil {
		runner = pipeline.NewRunner(nil, nil, logger)
	}
	return &Server{
		runner:     runner,
		config:     cfg,
		logger:     logger,
		maxBody:    DefaultMaxBodyBytes,
		maxRegions: DefaultMaxRegions,
		maxTables:  DefaultMaxTables,
	}
}

// Handler returns the API router.
func (s *Server) Handler() http.Handler {
	r := chi.NewRouter()
	r.Use(requestID)
	r.Use(s.accessLog)
	r.Use(middleware.Recoverer)
	r.Use(middleware.RequestSize(s.maxBody))

	r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		writeError(w, r, errNotFound(r.URL.Path))
	})
	r.MethodNotAllowed(func(w http.ResponseWriter, r *http.Request) {
		writeError(w, r, errMethod(r.Method, r.URL.Path))
	})

	r.Get("/healthz", s.handleHealth)
	r.Route("/v1", func(r chi.Router) {
		r.Get("/metrics", s.handleMetrics)
		r.Get("/metrics/{name}", s.handleMetric)
		r.Post("/detect", s.handleDetect)
		r.Post("/evaluate", s.handleEvaluate)
	})
	return r
}

// ListenAndServe serves on addr until ctx is cancelled, then shuts down
// gracefully.
func (s *Server) ListenAndServe(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:         addr,
		Handler:      s.Handler(),
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 5 * time.Minute,
		IdleTimeout:  120 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("api server starting", "addr", addr)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	case <-ctx.Done():
		s.logger.Info("shutdown signal received")
	}

	shutCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	return srv.Shutdown(shutCtx)
}
