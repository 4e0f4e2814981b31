// Package server exposes the splitter over HTTP.
//
// Endpoints:
//
//	GET  /health
//	GET  /split/{word}?method=mixed&variant=nudansk&lang=da
//	POST /split   body: {"text":"...","method":"...","variant":"...","lang":"..."}
//	GET  /metrics
package server

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/cors"

	"dslsplit/config"
	"dslsplit/internal/usecase"
)

type Server struct {
	split   *usecase.SplitUseCase
	cfg     config.ServiceConfig
	metrics *Metrics
	handler http.Handler
}

// New builds the service handler. reg receives the service metrics and is
// served on /metrics.
func New(split *usecase.SplitUseCase, cfg config.ServiceConfig, reg *prometheus.Registry) *Server {
	s := &Server{
		split:   split,
		cfg:     cfg,
		metrics: NewMetrics(reg),
	}

	mux := http.NewServeMux()
	mux.Handle("GET /health", s.instrument("health", http.HandlerFunc(s.handleHealth)))
	mux.Handle("GET /split/{word}", s.instrument("split_word", s.secured(http.HandlerFunc(s.handleSplitWord))))
	mux.Handle("POST /split", s.instrument("split_text", s.secured(http.HandlerFunc(s.handleSplitText))))
	mux.Handle("GET /metrics", promhttp.HandlerFor(reg, promhttp.HandlerOpts{}))

	if len(cfg.Origins) > 0 {
		slog.Info("allowed origins", slog.Any("origins", cfg.Origins))
	} else {
		slog.Info("no CORS restrictions")
	}
	c := cors.New(cors.Options{
		AllowedOrigins:   cfg.Origins, // empty allows all
		AllowedMethods:   []string{http.MethodGet, http.MethodPost},
		AllowedHeaders:   []string{"Content-Type", apiKeyHeader},
		AllowCredentials: len(cfg.Origins) > 0,
	})

	s.handler = c.Handler(s.withRequestID(s.withTimeout(mux)))
	return s
}

func (s *Server) Handler() http.Handler {
	return s.handler
}

// ListenAndServe serves until ctx is done, then shuts down gracefully.
func (s *Server) ListenAndServe(ctx context.Context) error {
	srv := &http.Server{
		Addr:              s.cfg.Addr,
		Handler:           s.handler,
		ReadHeaderTimeout: 5 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		slog.Info("listening", slog.String("addr", s.cfg.Addr))
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
		slog.Info("shutting down")
		return srv.Shutdown(shutdownCtx)
	}
}
