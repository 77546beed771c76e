package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"fcdash/internal/config"
)

func TestHealthService_HealthCheck(t *testing.T) {
	dashboard := newTestService(t)
	hs := NewHealthService("v1.0.0-test", "2026-01-01T00:00:00Z", dashboard.config, dashboard, nil)

	status := hs.HealthCheck(context.Background())

	assert.Equal(t, "healthy", status.Status)
	assert.Equal(t, "v1.0.0-test", status.Version)
	require.Contains(t, status.Services, "sources")
	require.Contains(t, status.Services, "dataset")
}

func TestHealthService_ReadinessWithMissingSources(t *testing.T) {
	cfg := config.Default()
	cfg.Paths.DataDir = t.TempDir()
	dashboard := NewDashboardService(cfg)
	hs := NewHealthService("v1.0.0-test", "", cfg, dashboard, nil)

	status := hs.ReadinessCheck(context.Background())

	assert.Equal(t, "not_ready", status.Status)
	sources := status.Services["sources"].(ServiceHealth)
	assert.Equal(t, "unhealthy", sources.Status)
	assert.Contains(t, sources.Message, "source file missing")
}

func TestHealthService_Liveness(t *testing.T) {
	hs := NewHealthService("v1.0.0-test", "", config.Default(), nil, nil)

	status := hs.LivenessCheck(context.Background())
	assert.Equal(t, "alive", status.Status)
}

func TestHealthService_CacheStats(t *testing.T) {
	dashboard := newTestService(t)
	hs := NewHealthService("v1.0.0-test", "", dashboard.config, dashboard, nil)

	require.NoError(t, dashboard.Warmup(context.Background()))
	_, err := dashboard.Options(context.Background())
	require.NoError(t, err)

	stats := hs.CacheStats()
	assert.Equal(t, int64(1), stats["misses"])
	assert.Equal(t, int64(1), stats["hits"])
	assert.Equal(t, 1, stats["entries"])
}
