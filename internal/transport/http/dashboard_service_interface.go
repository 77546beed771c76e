package http

import (
	"context"

	"fcdash/internal/services"
	"fcdash/pkg/contracts/domain"
)

// DashboardServiceInterface defines the interface for dashboard operations
type DashboardServiceInterface interface {
	Options(ctx context.Context) (*domain.DashboardOptions, error)
	View(ctx context.Context, req services.ViewRequest) (*domain.DashboardView, error)
}
