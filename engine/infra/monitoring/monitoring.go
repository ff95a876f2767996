package monitoring

import (
	"context"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/slowerai/backend/engine/infra/monitoring/metrics"
	"github.com/slowerai/backend/pkg/logger"
)

// Service owns the Prometheus registry and the HTTP instruments.
type Service struct {
	registry *prometheus.Registry
	http     *httpMetrics
}

// NewMonitoringService creates a registry with runtime collectors and HTTP metrics.
func NewMonitoringService(ctx context.Context) (*Service, error) {
	registry := prometheus.NewRegistry()
	if err := registry.Register(collectors.NewGoCollector()); err != nil {
		return nil, fmt.Errorf("failed to register go collector: %w", err)
	}
	if err := registry.Register(collectors.NewProcessCollector(collectors.ProcessCollectorOpts{})); err != nil {
		return nil, fmt.Errorf("failed to register process collector: %w", err)
	}
	httpMetrics, err := newHTTPMetrics(registry)
	if err != nil {
		return nil, err
	}
	logger.FromContext(ctx).Info("Monitoring service initialized successfully", "namespace", metrics.Namespace)
	return &Service{registry: registry, http: httpMetrics}, nil
}

// Register adds an extra collector, such as database pool statistics.
func (s *Service) Register(c prometheus.Collector) error {
	if err := s.registry.Register(c); err != nil {
		return fmt.Errorf("failed to register collector: %w", err)
	}
	return nil
}

// Registry exposes the underlying registry for tests and custom exporters.
func (s *Service) Registry() *prometheus.Registry {
	return s.registry
}

// GinMiddleware returns Gin middleware for HTTP metrics.
func (s *Service) GinMiddleware() gin.HandlerFunc {
	return s.http.middleware()
}

// ExporterHandler returns an HTTP handler for the /metrics endpoint
func (s *Service) ExporterHandler() http.Handler {
	return promhttp.HandlerFor(s.registry, promhttp.HandlerOpts{Registry: s.registry})
}
