// Package server provides the HTTP API for Starplot.
//
// The server exposes the normalize → render pipeline over HTTP:
//
//	POST /api/v1/plots      render a plot from measurement datasets
//	GET  /api/v1/colormaps  list supported colormap names
//	GET  /healthz           liveness probe
//	GET  /metrics           Prometheus metrics
//
// Plot responses carry the rendered artifact directly when a single format
// is requested, or a JSON envelope with base64 artifacts for multi-format
// requests.
package server

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/charmbracelet/log"
	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/astroviz/starplot/pkg/buildinfo"
	"github.com/astroviz/starplot/pkg/config"
	"github.com/astroviz/starplot/pkg/pipeline"
)

type ctxKey int

const requestIDKey ctxKey = iota

func withRequestID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, requestIDKey, id)
}

func requestIDFrom(ctx context.Context) string {
	id, _ := ctx.Value(requestIDKey).(string)
	return id
}

// Server serves the plotting pipeline over HTTP.
type Server struct {
	cfg     config.Server
	runner  *pipeline.Runner
	logger  *log.Logger
	metrics *Metrics
	httpSrv *http.Server
}

// New builds a server around the given runner. A nil metrics registers
// against the global Prometheus registry.
func New(cfg config.Server, runner *pipeline.Runner, logger *log.Logger, metrics *Metrics) (*Server, error) {
	if logger == nil {
		logger = log.Default()
	}
	if metrics == nil {
		var err error
		metrics, err = NewMetrics(nil)
		if err != nil {
			return nil, err
		}
	}
	metrics.RegisterHooks()

	s := &Server{
		cfg:     cfg,
		runner:  runner,
		logger:  logger,
		metrics: metrics,
	}
	s.httpSrv = &http.Server{
		Addr:              cfg.Addr,
		Handler:           s.Router(),
		ReadHeaderTimeout: 10 * time.Second,
	}
	return s, nil
}

// Router builds the HTTP routing tree.
func (s *Server) Router() http.Handler {
	r := chi.NewRouter()

	r.Use(requestID)
	r.Use(chimiddleware.RealIP)
	r.Use(chimiddleware.Recoverer)
	r.Use(requestLogger(s.logger))

	r.Get("/healthz", s.handleHealth)
	r.Method(http.MethodGet, "/metrics",
		promhttp.HandlerFor(s.metrics.Gatherer(), promhttp.HandlerOpts{}))

	r.Route("/api/v1", func(r chi.Router) {
		r.Post("/plots", s.handlePlots)
		r.Get("/colormaps", s.handleColormaps)
	})

	return r
}

// Start serves until ctx is canceled, then shuts down gracefully.
func (s *Server) Start(ctx context.Context) error {
	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("server listening", "addr", s.cfg.Addr, "version", buildinfo.Version)
		if err := s.httpSrv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
			return
		}
		errCh <- nil
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	s.logger.Info("shutting down server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := s.httpSrv.Shutdown(shutdownCtx); err != nil {
		return err
	}
	return <-errCh
}
