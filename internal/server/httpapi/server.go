// Package httpapi hosts the HTTP surface over the session manager: the auth
// endpoints, the bearer-token middleware, and the refresh-token cookie.
// Wire shapes live here; the token protocol itself lives in services.
package httpapi

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/yshalenyk/ordertrack/internal/logging"
	"github.com/yshalenyk/ordertrack/internal/server/config"
	"github.com/yshalenyk/ordertrack/internal/server/guard"
	"github.com/yshalenyk/ordertrack/internal/server/ratelimit"
	"github.com/yshalenyk/ordertrack/internal/server/services"
)

type Server struct {
	cfg      *config.Config
	logger   logging.Logger
	sessions *services.SessionManager
	guard    *guard.Guard
	limiter  *ratelimit.Limiter
}

// NewServer wires the HTTP layer. limiter may be nil, in which case the
// auth endpoints are not rate limited.
func NewServer(cfg *config.Config, logger logging.Logger, sessions *services.SessionManager,
	g *guard.Guard, limiter *ratelimit.Limiter) *Server {
	return &Server{
		cfg:      cfg,
		logger:   logger,
		sessions: sessions,
		guard:    g,
		limiter:  limiter,
	}
}

// Run serves HTTP until ctx is cancelled, then shuts down gracefully.
func (s *Server) Run(ctx context.Context) error {
	srv := &http.Server{
		Addr:              s.cfg.EndpointAddr,
		Handler:           s.Router(),
		ReadHeaderTimeout: 5 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.ListenAndServe()
	}()

	s.logger.Info(ctx, "http server listening", "addr", s.cfg.EndpointAddr)

	select {
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	}
}
