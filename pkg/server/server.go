// Package server exposes the offering aggregation pipeline over HTTP.
package server

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"sync"
	"time"

	"golang.org/x/time/rate"

	"github.com/cheapamd/camd/pkg/aggregator"
	"github.com/cheapamd/camd/pkg/cache"
	"github.com/cheapamd/camd/pkg/config"
)

// Server serves offering queries, health endpoints and metrics.
type Server struct {
	name    string
	version string
	cfg     *Config

	agg         *aggregator.Aggregator
	store       cache.Store
	cacheWindow time.Duration

	limiter *rate.Limiter

	mu    sync.RWMutex
	ready bool
}

// Option configures a Server.
type Option func(*Server)

// WithName sets the service name reported on the default route.
func WithName(name string) Option {
	return func(s *Server) { s.name = name }
}

// WithVersion sets the version reported on the default route.
func WithVersion(version string) Option {
	return func(s *Server) { s.version = version }
}

// WithConfig replaces the default configuration.
func WithConfig(cfg *Config) Option {
	return func(s *Server) {
		if cfg != nil {
			s.cfg = cfg
		}
	}
}

// WithAggregator sets the aggregator backing /v1/offerings.
func WithAggregator(agg *aggregator.Aggregator) Option {
	return func(s *Server) { s.agg = agg }
}

// WithCache sets the result cache and its freshness window.
func WithCache(store cache.Store, window time.Duration) Option {
	return func(s *Server) {
		s.store = store
		s.cacheWindow = window
	}
}

// New creates a Server with the given options applied over defaults.
func New(opts ...Option) *Server {
	s := &Server{
		name:        "camd-api",
		version:     "dev",
		cfg:         DefaultConfig(),
		agg:         aggregator.New(nil),
		store:       cache.NewMemoryStore(),
		cacheWindow: config.DefaultCacheWindow,
	}
	for _, opt := range opts {
		opt(s)
	}
	s.limiter = rate.NewLimiter(s.cfg.RateLimit, s.cfg.RateLimitBurst)
	return s
}

// Run starts the HTTP server and blocks until ctx is canceled or the
// listener fails. Shutdown is graceful within cfg.ShutdownTimeout.
func (s *Server) Run(ctx context.Context) error {
	srv := &http.Server{
		Addr:         s.cfg.ListenAddr(),
		Handler:      s.setupRoutes(),
		ReadTimeout:  s.cfg.ReadTimeout,
		WriteTimeout: s.cfg.WriteTimeout,
		IdleTimeout:  s.cfg.IdleTimeout,
	}

	errCh := make(chan error, 1)
	go func() {
		slog.Info("listening", "addr", srv.Addr)
		errCh <- srv.ListenAndServe()
	}()

	s.setReady(true)

	select {
	case err := <-errCh:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	case <-ctx.Done():
	}

	s.setReady(false)
	slog.Info("shutting down", "timeout", s.cfg.ShutdownTimeout)

	shutdownCtx, cancel := context.WithTimeout(context.Background(), s.cfg.ShutdownTimeout)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}

func (s *Server) setReady(ready bool) {
	s.mu.Lock()
	s.ready = ready
	s.mu.Unlock()
}
