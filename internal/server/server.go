// Package server implements the wiretrace HTTP API.
//
// The server exposes the rendering pipeline over a small JSON API:
//
//	POST /api/render    render circuit text into one artifact format
//	POST /api/validate  report diagnostics without rendering
//	POST /api/parse     return the parsed circuit model
//	GET  /healthz       liveness probe with build info
//
// Handlers share one pipeline.Runner, so CLI and server runs cache and
// behave identically.
package server

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/charmbracelet/log"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/wiretrace/wiretrace/pkg/pipeline"
)

// Server hosts the wiretrace HTTP API.
type Server struct {
	addr   string
	runner *pipeline.Runner
	logger *log.Logger
}

// New creates a server bound to addr. A nil runner gets a cacheless default;
// a nil logger falls back to the package default.
func New(addr string, runner *pipeline.Runner, logger *log.Logger) *Server {
	if runner == nil {
		runner = pipeline.NewRunner(nil, nil, logger)
	}
	if logger == nil {
		logger = log.Default()
	}
	return &Server{
		addr:   addr,
		runner: runner,
		logger: logger,
	}
}

// Handler builds the route tree.
func (s *Server) Handler() http.Handler {
	r := chi.NewRouter()

	r.Use(s.requestID)
	r.Use(s.requestLogger)
	r.Use(middleware.Recoverer)

	r.Get("/healthz", s.handleHealthz)
	r.Route("/api", func(r chi.Router) {
		r.Post("/render", s.handleRender)
		r.Post("/validate", s.handleValidate)
		r.Post("/parse", s.handleParse)
	})

	return r
}

// ListenAndServe runs the server until ctx is canceled, then drains
// in-flight requests.
func (s *Server) ListenAndServe(ctx context.Context) error {
	srv := &http.Server{
		Addr:              s.addr,
		Handler:           s.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.ListenAndServe()
	}()

	s.logger.Info("listening", "addr", s.addr)

	select {
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	}
}
