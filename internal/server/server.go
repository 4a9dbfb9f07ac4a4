package server

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"

	"github.com/LarissaMorrell/blog-app-mongoose-challenge-solution/internal/config"
	"github.com/LarissaMorrell/blog-app-mongoose-challenge-solution/internal/logger"
	"github.com/LarissaMorrell/blog-app-mongoose-challenge-solution/internal/server/handlers"
	"github.com/LarissaMorrell/blog-app-mongoose-challenge-solution/internal/server/middleware"
	"github.com/LarissaMorrell/blog-app-mongoose-challenge-solution/internal/store"
	"github.com/LarissaMorrell/blog-app-mongoose-challenge-solution/internal/version"
)

type Server struct {
	store  store.Store
	config *config.ServerEnvironment
	logger *slog.Logger
	router *chi.Mux
}

func NewServer(
	s store.Store,
	cfg *config.ServerEnvironment,
	logger *slog.Logger,
) *Server {
	server := &Server{
		store:  s,
		config: cfg,
		logger: logger,
		router: chi.NewRouter(),
	}

	server.setupMiddleware()
	server.registerRoutes()

	return server
}

// Router exposes the configured handler, e.g. for httptest servers
func (s *Server) Router() http.Handler {
	return s.router
}

func (s *Server) setupMiddleware() {
	s.router.Use(chimiddleware.RequestID)
	s.router.Use(chimiddleware.RealIP)
	s.router.Use(logger.RequestLogging(s.logger))
	s.router.Use(chimiddleware.Recoverer)
	s.router.Use(chimiddleware.Timeout(s.config.RequestTimeout))
	s.router.Use(middleware.SecurityHeaders(s.config.Environment))
}

func (s *Server) registerRoutes() {
	s.router.Route("/health", func(r chi.Router) {
		r.Get("/live", handlers.HandleHealth)
		r.Get("/ready", handlers.HandleReadiness(s.store, s.config.DatabasePingTimeout))
	})
	s.router.Get("/version", handlers.HandleVersion(version.Get()))

	s.router.Route("/posts", func(r chi.Router) {
		r.Use(middleware.RateLimit(s.config.RateLimitRPS, s.config.RateLimitBurst))
		r.Use(middleware.RequestSizeLimit(s.config.MaxRequestBodyBytes))

		r.Get("/", handlers.HandleListPosts(s.store))
		r.Post("/", handlers.HandleCreatePost(s.store))
		r.Get("/{id}", handlers.HandleGetPost(s.store))
		r.Put("/{id}", handlers.HandleUpdatePost(s.store))
		r.Delete("/{id}", handlers.HandleDeletePost(s.store))
	})
}

// Start serves HTTP until ctx is cancelled, then shuts down gracefully
func (s *Server) Start(ctx context.Context) error {
	serverAddr := net.JoinHostPort(s.config.Host, strconv.Itoa(s.config.Port))

	httpServer := &http.Server{
		Addr:         serverAddr,
		Handler:      s.router,
		ReadTimeout:  s.config.ReadTimeout,
		WriteTimeout: s.config.WriteTimeout,
		IdleTimeout:  s.config.IdleTimeout,
	}

	serverErrors := make(chan error, 1)

	go func() {
		s.logger.Info("service listening",
			slog.String("environment", s.config.Environment),
			slog.String("address", serverAddr),
			slog.String("store", store.Backend(s.config.DatabaseURL)))

		err := httpServer.ListenAndServe()
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErrors <- fmt.Errorf("server failed to start: %w", err)
		}
	}()

	select {
	case err := <-serverErrors:
		return err
	case <-ctx.Done():
		s.logger.Info("shutdown signal received")
	}

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), s.config.ServerShutdownTimeout)
	defer shutdownCancel()

	s.logger.Info("shutting down HTTP server")

	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		s.logger.Warn("HTTP server shutdown error",
			slog.String("error", err.Error()))
		return fmt.Errorf("HTTP server shutdown failed: %w", err)
	}

	s.logger.Info("HTTP server shutdown complete")
	return nil
}

// DatabaseShutdown closes the store once the HTTP server has stopped
func (s *Server) DatabaseShutdown() {
	if s.store == nil {
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), s.config.ServerShutdownTimeout)
	defer cancel()

	if err := s.store.Close(ctx); err != nil {
		s.logger.Warn("failed to close store", slog.String("error", err.Error()))
		return
	}
	s.logger.Info("store connection closed")
}
