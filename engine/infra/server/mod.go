package server

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/slowerai/backend/engine/infra/monitoring"
	"github.com/slowerai/backend/engine/user/router"
	"github.com/slowerai/backend/engine/user/uc"
	"github.com/slowerai/backend/pkg/logger"
)

// Dependencies are constructed by the caller and injected into the server.
type Dependencies struct {
	Health     HealthChecker
	Users      *uc.Factory
	Monitoring *monitoring.Service
}

type Server struct {
	Config *Config
	deps   Dependencies
	router *gin.Engine
}

func NewServer(ctx context.Context, config Config, deps Dependencies) (*Server, error) {
	if deps.Users == nil {
		return nil, fmt.Errorf("server: user use case factory is required")
	}
	s := &Server{Config: &config, deps: deps}
	s.buildRouter(ctx)
	return s, nil
}

// Handler returns the assembled gin engine.
func (s *Server) Handler() http.Handler {
	return s.router
}

func (s *Server) buildRouter(ctx context.Context) {
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(RequestIDMiddleware(logger.FromContext(ctx)))
	r.Use(LoggerMiddleware())
	r.Use(CORSMiddleware(s.Config.CORSAllowedOrigins))
	if s.deps.Monitoring != nil {
		r.Use(s.deps.Monitoring.GinMiddleware())
		r.GET("/metrics", gin.WrapH(s.deps.Monitoring.ExporterHandler()))
	}
	api := r.Group("/api")
	api.GET("/health", CreateHealthHandler(s.deps.Health, s.Config.Environment))
	router.RegisterRoutes(api, s.deps.Users)
	s.router = r
}

// Run serves HTTP until ctx is canceled or the process receives SIGINT or SIGTERM.
func (s *Server) Run(ctx context.Context) error {
	srv := s.createHTTPServer(ctx)
	errCh := make(chan error, 1)
	go s.startServer(ctx, srv, errCh)
	return s.handleGracefulShutdown(ctx, srv, errCh)
}

func (s *Server) createHTTPServer(ctx context.Context) *http.Server {
	addr := s.Config.FullAddress()
	logger.FromContext(ctx).Info("Starting HTTP server",
		"address", fmt.Sprintf("http://%s", addr),
		"environment", s.Config.Environment,
	)
	return &http.Server{
		Addr:              addr,
		Handler:           s.router,
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       15 * time.Second,
		WriteTimeout:      15 * time.Second,
		IdleTimeout:       60 * time.Second,
	}
}

func (s *Server) startServer(ctx context.Context, srv *http.Server, errCh chan<- error) {
	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		logger.FromContext(ctx).Error("Server failed to start", "error", err)
		errCh <- err
	}
	close(errCh)
}

func (s *Server) handleGracefulShutdown(ctx context.Context, srv *http.Server, errCh <-chan error) error {
	log := logger.FromContext(ctx)
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	defer signal.Stop(quit)
	select {
	case err, ok := <-errCh:
		if ok && err != nil {
			return fmt.Errorf("server failed: %w", err)
		}
		return nil
	case sig := <-quit:
		log.Debug("Received shutdown signal, initiating graceful shutdown", "signal", sig.String())
	case <-ctx.Done():
		log.Debug("Context canceled, initiating graceful shutdown")
	}
	shutdownCtx, shutdownCancel := context.WithTimeout(context.WithoutCancel(ctx), s.Config.shutdownTimeout())
	defer shutdownCancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("server shutdown failed: %w", err)
	}
	log.Info("Server shutdown completed successfully")
	return nil
}
