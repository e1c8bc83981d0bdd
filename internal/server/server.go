// Package server exposes the estimator over HTTP.
package server

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"

	"github.com/rshade/sustainamine/internal/lca"
)

// TraceIDHeader carries the request trace ID in both directions.
const TraceIDHeader = "X-Trace-ID"

const (
	maxBodyBytes      = 1 << 20
	readHeaderTimeout = 5 * time.Second
)

// CORSOptions configures cross-origin access. CORS is disabled when
// AllowedOrigins is empty.
type CORSOptions struct {
	AllowedOrigins   []string
	AllowCredentials bool
	MaxAge           int
}

// Server routes HTTP requests to an Estimator.
type Server struct {
	router    chi.Router
	estimator *lca.Estimator
	logger    zerolog.Logger
	metrics   *metrics
}

// New returns a Server computing with estimator.
func New(estimator *lca.Estimator, corsOpts CORSOptions, logger zerolog.Logger) *Server {
	s := &Server{
		router:    chi.NewRouter(),
		estimator: estimator,
		logger:    logger,
		metrics:   newMetrics(),
	}

	s.router.Use(middleware.Recoverer)
	if len(corsOpts.AllowedOrigins) > 0 {
		s.router.Use(cors.Handler(cors.Options{
			AllowedOrigins:   corsOpts.AllowedOrigins,
			AllowedMethods:   []string{http.MethodGet, http.MethodPost, http.MethodOptions},
			AllowedHeaders:   []string{"Accept", "Content-Type", TraceIDHeader},
			ExposedHeaders:   []string{TraceIDHeader},
			AllowCredentials: corsOpts.AllowCredentials,
			MaxAge:           corsOpts.MaxAge,
		}))
	}
	s.router.Use(s.traceRequests)

	s.router.Get("/healthz", s.handleHealth)
	s.router.Method(http.MethodGet, "/metrics", promhttp.HandlerFor(s.metrics.registry, promhttp.HandlerOpts{}))
	s.router.Route("/v1", func(r chi.Router) {
		r.Post("/estimates", s.handleEstimate)
		r.Get("/factors", s.handleFactors)
	})
	return s
}

// ServeHTTP implements http.Handler.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

// ListenAndServe serves on addr until ctx is done, then shuts down,
// waiting at most shutdownTimeout for in-flight requests.
func (s *Server) ListenAndServe(ctx context.Context, addr string, shutdownTimeout time.Duration) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           s,
		ReadHeaderTimeout: readHeaderTimeout,
	}

	errCh := make(chan error, 1)
	go func() {
		s.logger.Info().Str("addr", addr).Msg("Starting estimate server")
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return fmt.Errorf("serving on %s: %w", addr, err)
	case <-ctx.Done():
	}

	s.logger.Info().Msg("Shutting down estimate server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown failed: %w", err)
	}
	return nil
}

// traceRequests assigns a trace ID, attaches a request-scoped logger to the
// context and logs each completed request.
func (s *Server) traceRequests(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		traceID := r.Header.Get(TraceIDHeader)
		if traceID == "" {
			traceID = uuid.New().String()
		}
		w.Header().Set(TraceIDHeader, traceID)

		logger := s.logger.With().Str("trace_id", traceID).Logger()
		r = r.WithContext(logger.WithContext(r.Context()))

		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		start := time.Now()
		next.ServeHTTP(ww, r)

		logger.Info().
			Str("method", r.Method).
			Str("path", r.URL.Path).
			Int("status", ww.Status()).
			Dur("duration", time.Since(start)).
			Msg("request handled")
	})
}
