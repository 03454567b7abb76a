package httpapi

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/passvault/passvault/internal/logging"
)

const shutdownTimeout = 10 * time.Second

// Server wraps http.Server with context-driven graceful shutdown.
type Server struct {
	srv     *http.Server
	limiter *ipRateLimiter
	logger  logging.Logger
}

func NewServer(addr string, deps *RouterDeps) *Server {
	handler, limiter := NewRouter(deps)

	return &Server{
		srv: &http.Server{
			Addr:         addr,
			Handler:      handler,
			ReadTimeout:  15 * time.Second,
			WriteTimeout: 15 * time.Second,
		},
		limiter: limiter,
		logger:  deps.Logger.With("module", "http_server"),
	}
}

// Run starts the server and blocks until ctx is cancelled or the listener
// fails. On cancellation in-flight requests get shutdownTimeout to finish.
func (s *Server) Run(ctx context.Context) error {
	errCh := make(chan error, 1)

	go func() {
		s.logger.Info(ctx, "Starting HTTP server", "address", s.srv.Addr)
		if err := s.srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	select {
	case err := <-errCh:
		s.limiter.Stop()
		return err
	case <-ctx.Done():
	}

	s.logger.Info(ctx, "Stopping HTTP server...")
	s.limiter.Stop()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	return s.srv.Shutdown(shutdownCtx)
}
