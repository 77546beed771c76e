package services

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"runtime"
	"time"

	"fcdash/internal/config"
)

// HealthService provides health check functionality
type HealthService struct {
	version   string
	buildTime string
	config    *config.Config
	dashboard *DashboardService
	startTime time.Time
	logger    *slog.Logger
}

// HealthStatus represents the health status response
type HealthStatus struct {
	Status    string                 `json:"status"`
	Timestamp time.Time              `json:"timestamp"`
	Version   string                 `json:"version"`
	Runtime   map[string]interface{} `json:"runtime,omitempty"`
	Services  map[string]interface{} `json:"services,omitempty"`
}

// ServiceHealth represents individual service health
type ServiceHealth struct {
	Status  string `json:"status"`
	Message string `json:"message,omitempty"`
}

// NewHealthService creates a new health service with injected dependencies
func NewHealthService(version, buildTime string, cfg *config.Config, dashboard *DashboardService, logger *slog.Logger) *HealthService {
	if logger == nil {
		logger = slog.Default()
	}

	logger.Info("HealthService initialized",
		slog.String("version", version),
		slog.String("build_time", buildTime))

	return &HealthService{
		version:   version,
		buildTime: buildTime,
		config:    cfg,
		dashboard: dashboard,
		startTime: time.Now(),
		logger:    logger,
	}
}

// HealthCheck returns the overall service health
func (hs *HealthService) HealthCheck(ctx context.Context) HealthStatus {
	services := map[string]interface{}{
		"sources": hs.checkSourceHealth(),
		"dataset": hs.checkDatasetHealth(ctx),
	}

	status := "healthy"
	for _, svc := range services {
		if health, ok := svc.(ServiceHealth); ok && health.Status != "healthy" {
			status = "degraded"
			break
		}
	}

	return HealthStatus{
		Status:    status,
		Timestamp: time.Now(),
		Version:   hs.version,
		Runtime: map[string]interface{}{
			"go_version":     runtime.Version(),
			"os":             runtime.GOOS,
			"arch":           runtime.GOARCH,
			"uptime_seconds": time.Since(hs.startTime).Seconds(),
		},
		Services: services,
	}
}

// ReadinessCheck reports whether the service can serve views: the three
// source files must be readable and the dataset loadable.
func (hs *HealthService) ReadinessCheck(ctx context.Context) HealthStatus {
	status := "ready"
	services := map[string]interface{}{}

	sources := hs.checkSourceHealth()
	services["sources"] = sources
	if sources.Status != "healthy" {
		status = "not_ready"
	}

	if status == "ready" {
		ds := hs.checkDatasetHealth(ctx)
		services["dataset"] = ds
		if ds.Status != "healthy" {
			status = "not_ready"
		}
	}

	return HealthStatus{
		Status:    status,
		Timestamp: time.Now(),
		Version:   hs.version,
		Services:  services,
	}
}

// LivenessCheck reports that the process is alive
func (hs *HealthService) LivenessCheck(ctx context.Context) HealthStatus {
	return HealthStatus{
		Status:    "alive",
		Timestamp: time.Now(),
		Version:   hs.version,
	}
}

// Version returns build information
func (hs *HealthService) Version() map[string]interface{} {
	return map[string]interface{}{
		"version":    hs.version,
		"build_time": hs.buildTime,
		"go_version": runtime.Version(),
	}
}

// checkSourceHealth verifies the three source files exist
func (hs *HealthService) checkSourceHealth() ServiceHealth {
	for _, path := range hs.config.SourcePaths() {
		if _, err := os.Stat(path); err != nil {
			return ServiceHealth{
				Status:  "unhealthy",
				Message: fmt.Sprintf("source file missing: %s", path),
			}
		}
	}
	return ServiceHealth{Status: "healthy"}
}

// checkDatasetHealth verifies the unified table loads and has usable rows
func (hs *HealthService) checkDatasetHealth(ctx context.Context) ServiceHealth {
	if hs.dashboard == nil {
		return ServiceHealth{Status: "unknown", Message: "dashboard service not wired"}
	}

	options, err := hs.dashboard.Options(ctx)
	if err != nil {
		return ServiceHealth{Status: "unhealthy", Message: err.Error()}
	}

	return ServiceHealth{
		Status: "healthy",
		Message: fmt.Sprintf("%d countries, %d indicators, years %d-%d",
			len(options.Countries), len(options.Indicators), options.YearMin, options.YearMax),
	}
}

// CacheStats exposes the dataset cache counters for diagnostics
func (hs *HealthService) CacheStats() map[string]interface{} {
	if hs.dashboard == nil {
		return map[string]interface{}{}
	}
	hits, misses := hs.dashboard.cache.Stats()
	return map[string]interface{}{
		"hits":    hits,
		"misses":  misses,
		"entries": hs.dashboard.cache.Len(),
	}
}
