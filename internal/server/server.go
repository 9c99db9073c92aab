// Package server owns the HTTP listener and the resources it must release on exit.
package server

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"

	"github.com/yigit/enlistment/internal/bootstrap"
	"github.com/yigit/enlistment/internal/config"
)

type Server struct {
	http            *http.Server
	shutdownTimeout time.Duration
	pool            *pgxpool.Pool
	redis           *redis.Client
	logger          zerolog.Logger
}

// NewServer loads configPath, connects to PostgreSQL (and Redis when enabled),
// migrates, seeds and builds the router. Nothing is listening yet.
func NewServer(ctx context.Context, configPath string) (*Server, error) {
	cfg, lgr, err := bootstrap.LoadConfigAndSetupLogger(configPath)
	if err != nil {
		return nil, fmt.Errorf("failed to load config or setup logger: %w", err)
	}

	pool, err := bootstrap.SetupDatabase(ctx, cfg, lgr)
	if err != nil {
		return nil, fmt.Errorf("failed to setup database: %w", err)
	}

	revocations, redisClient, err := bootstrap.SetupRevocationStore(ctx, cfg, lgr)
	if err != nil {
		pool.Close()
		return nil, fmt.Errorf("failed to setup token revocation store: %w", err)
	}

	deps := bootstrap.BuildDependencies(cfg, pool, revocations, lgr)

	return &Server{
		http:            newHTTPServer(cfg, bootstrap.SetupRouter(cfg, deps, pool, lgr)),
		shutdownTimeout: cfg.ShutdownTimeout(),
		pool:            pool,
		redis:           redisClient,
		logger:          lgr,
	}, nil
}

func newHTTPServer(cfg *config.Config, handler http.Handler) *http.Server {
	return &http.Server{
		Addr:              ":" + cfg.Server.Port,
		Handler:           handler,
		ReadTimeout:       cfg.ReadTimeout(),
		ReadHeaderTimeout: cfg.ReadTimeout(),
		WriteTimeout:      cfg.WriteTimeout(),
		IdleTimeout:       2 * time.Minute,
	}
}

// Run serves until ctx is cancelled or the listener fails, then drains
// in-flight requests and releases the pool and Redis client.
func (s *Server) Run(ctx context.Context) error {
	listenErr := make(chan error, 1)
	go func() {
		s.logger.Info().Str("addr", s.http.Addr).Msg("HTTP server listening")
		listenErr <- s.http.ListenAndServe()
	}()

	select {
	case err := <-listenErr:
		s.release()
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return fmt.Errorf("http server stopped: %w", err)
	case <-ctx.Done():
		s.logger.Info().Msg("Shutdown requested")
	}

	return s.Shutdown()
}

// Shutdown stops accepting connections and waits up to the configured
// shutdown timeout for active requests.
func (s *Server) Shutdown() error {
	ctx, cancel := context.WithTimeout(context.Background(), s.shutdownTimeout)
	defer cancel()

	err := s.http.Shutdown(ctx)
	if err != nil {
		s.logger.Error().Err(err).Dur("timeout", s.shutdownTimeout).Msg("HTTP server did not drain in time")
		err = fmt.Errorf("graceful shutdown: %w", err)
	}

	s.release()
	s.logger.Info().Msg("Server stopped")
	return err
}

func (s *Server) release() {
	if s.redis != nil {
		if err := s.redis.Close(); err != nil {
			s.logger.Warn().Err(err).Msg("Failed to close redis client")
		}
		s.redis = nil
	}
	if s.pool != nil {
		s.pool.Close()
		s.pool = nil
	}
}
