// Package server exposes the diagram pipeline over HTTP.
//
// Routes (all request and response bodies are JSON unless noted):
//
//	POST /v1/tree             graph → reduced tree and reduction stats
//	POST /v1/layout           graph → layout
//	POST /v1/diagram          graph → artifact (?format=svg|png|pdf|json|dot)
//	POST /v1/text             {title, text, prefix} → paginated PNG pages
//	POST /v1/viewport/fit     natural and viewport sizes → transform
//	POST /v1/viewport/zoom    transform, factor and focus → transform
//	GET  /healthz             liveness
//
// Every response carries an X-Request-ID header. Errors are returned as
// {"error": message, "code": code}.
package server

import (
	"context"
	"errors"
	"net"
	"net/http"
	"time"

	"github.com/charmbracelet/log"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/matzehuels/mindmap/pkg/pipeline"
)

// MaxBodyBytes bounds request bodies.
const MaxBodyBytes = 8 << 20

// Server serves the pipeline API. It holds no per-request state.
type Server struct {
	runner *pipeline.Runner
	opts   pipeline.Options
	logger *log.Logger
	router chi.Router
}

// New creates a server that runs requests through runner with base options
// opts. A nil logger uses the default logger.
func New(runner *pipeline.Runner, opts pipeline.Options, logger *log.Logger) *Server {
	if logger == nil {
		logger = log.Default()
	}
	if runner == nil {
		runner = pipeline.NewRunner(nil, nil, logger)
	}
	s := &Server{runner: runner, opts: opts, logger: logger}
	s.router = s.routes()
	return s
}

// Handler returns the HTTP handler.
func (s *Server) Handler() http.Handler { return s.router }

func (s *Server) routes() chi.Router {
	r := chi.NewRouter()
	r.Use(requestID)
	r.Use(s.logRequests)
	r.Use(middleware.Recoverer)

	r.Get("/healthz", s.handleHealth)
	r.Route("/v1", func(r chi.Router) {
		r.Use(middleware.AllowContentType("application/json"))
		r.Post("/tree", s.handleTree)
		r.Post("/layout", s.handleLayout)
		r.Post("/diagram", s.handleDiagram)
		r.Post("/text", s.handleText)
		r.Post("/viewport/fit", s.handleViewportFit)
		r.Post("/viewport/zoom", s.handleViewportZoom)
	})
	return r
}

// ListenAndServe serves on addr until ctx is cancelled, then shuts down
// gracefully.
func (s *Server) ListenAndServe(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           s.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
		BaseContext:       func(net.Listener) context.Context { return ctx },
	}

	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("listening", "addr", addr)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		s.logger.Info("shutting down")
		return srv.Shutdown(shutdownCtx)
	}
}
