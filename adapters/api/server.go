package api

import (
	"context"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"seqentropy/internal"
	"seqentropy/internal/complexity"
	"seqentropy/internal/surrogate"
	"seqentropy/ports"
)

// Config holds the API limits and estimator defaults
type Config struct {
	EstimatorOptions []complexity.Option
	Surrogate        surrogate.Config
	Workers          int
	MaxLength        int
	MaxBatch         int
	MaxSurrogates    int
	RequestTimeout   time.Duration
}

// DefaultMaxSurrogates bounds the surrogate count a request may ask for
const DefaultMaxSurrogates = 9999

// Server exposes the complexity estimators over HTTP
type Server struct {
	router *chi.Mux
	config Config
	rng    ports.RNGPort
	logger *internal.Logger
}

// NewServer creates a server and registers its routes
func NewServer(config Config, rng ports.RNGPort, logger *internal.Logger) *Server {
	if logger == nil {
		logger = internal.DefaultLogger
	}
	if config.MaxSurrogates <= 0 {
		config.MaxSurrogates = DefaultMaxSurrogates
	}
	if config.RequestTimeout <= 0 {
		config.RequestTimeout = 30 * time.Second
	}
	s := &Server{
		router: chi.NewRouter(),
		config: config,
		rng:    rng,
		logger: logger.WithComponent("API"),
	}
	s.setupMiddleware()
	s.setupRoutes()
	return s
}

// setupMiddleware configures HTTP middleware
func (s *Server) setupMiddleware() {
	s.router.Use(middleware.RequestID)
	s.router.Use(middleware.Recoverer)
	s.router.Use(middleware.Timeout(s.config.RequestTimeout))
}

// setupRoutes configures the API routes
func (s *Server) setupRoutes() {
	s.router.Get("/healthz", s.handleHealth)
	s.router.Route("/v1", func(r chi.Router) {
		r.Get("/estimators", s.handleEstimators)
		r.Post("/complexity", s.handleComplexity)
		r.Post("/surrogate", s.handleSurrogate)
		r.Post("/batch", s.handleBatch)
	})
}

// Handler returns the root HTTP handler
func (s *Server) Handler() http.Handler {
	return s.router
}

// ListenAndServe serves on addr until ctx is cancelled, then shuts down
// gracefully.
func (s *Server) ListenAndServe(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           s.router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("Listening on %s", addr)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
		s.logger.Info("Shutting down")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	}
}
