// Package rest exposes the compliance engine over HTTP: the session
// event log, report generation, CSV export, and the continuous
// monitor's lifecycle and stores.
package rest

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"go.uber.org/zap"

	"github.com/gaia-qao/compliance-backend/internal/infrastructure/config"
)

// Server wraps the HTTP listener around the handler set.
type Server struct {
	config     *config.Config
	logger     *zap.Logger
	httpServer *http.Server
}

// Middleware wraps the whole route set.
type Middleware func(http.Handler) http.Handler

// NewServer builds the server with its routes registered. Extra
// handlers (such as /metrics) are mounted alongside the API routes;
// middlewares apply outermost-first to everything.
func NewServer(cfg *config.Config, logger *zap.Logger, handler *Handler, extra map[string]http.Handler, middlewares ...Middleware) *Server {
	mux := http.NewServeMux()
	handler.Register(mux)
	for pattern, h := range extra {
		mux.Handle(pattern, h)
	}

	var root http.Handler = mux
	for i := len(middlewares) - 1; i >= 0; i-- {
		root = middlewares[i](root)
	}

	return &Server{
		config: cfg,
		logger: logger,
		httpServer: &http.Server{
			Addr:         fmt.Sprintf(":%d", cfg.Server.Port),
			Handler:      root,
			ReadTimeout:  cfg.Server.ReadTimeout,
			WriteTimeout: cfg.Server.WriteTimeout,
		},
	}
}

// Run serves until the context is canceled, then drains connections
// within the configured shutdown timeout.
func (s *Server) Run(ctx context.Context) error {
	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("http server listening", zap.String("addr", s.httpServer.Addr))
		if err := s.httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	s.logger.Info("shutting down http server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), s.config.Server.ShutdownTimeout)
	defer cancel()
	return s.httpServer.Shutdown(shutdownCtx)
}
