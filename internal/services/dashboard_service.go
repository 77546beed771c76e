package services

import (
	"context"
	"fmt"
	"log/slog"

	"fcdash/internal/config"
	"fcdash/internal/dataset"
	"fcdash/pkg/contracts/domain"
)

// ViewRequest is one validated filter state.
type ViewRequest struct {
	Countries []string        `json:"countries" validate:"required,min=1,max=2,dive,required"`
	Indicator string          `json:"indicator" validate:"required"`
	Mode      domain.DataMode `json:"mode" validate:"required"`
	YearFrom  int             `json:"year_from"`
	YearTo    int             `json:"year_to" validate:"gtefield=YearFrom"`
}

// DashboardService builds filter options and rendered views over the
// memoized unified dataset.
type DashboardService struct {
	config *config.Config
	cache  *dataset.Cache
	logger *slog.Logger

	// optional hooks for cache observability
	OnLoad     func()
	OnCacheHit func()
}

// NewDashboardService creates a new dashboard service using default logger
func NewDashboardService(cfg *config.Config) *DashboardService {
	return NewDashboardServiceWithLogger(cfg, slog.Default())
}

// NewDashboardServiceWithLogger creates a new dashboard service with a specific logger
func NewDashboardServiceWithLogger(cfg *config.Config, logger *slog.Logger) *DashboardService {
	if logger == nil {
		logger = slog.Default()
	}

	paths := cfg.SourcePaths()
	logger.Info("DashboardService initialized with sources",
		slog.String("source_a", paths[0]),
		slog.String("source_b", paths[1]),
		slog.String("source_c", paths[2]))

	return &DashboardService{
		config: cfg,
		cache:  dataset.NewCache(),
		logger: logger,
	}
}

// records returns the memoized unified table.
func (s *DashboardService) records(ctx context.Context) ([]domain.IndicatorRecord, error) {
	paths := s.config.SourcePaths()
	records, cached, err := s.cache.Load(ctx, paths[0], paths[1], paths[2])
	if err != nil {
		return nil, fmt.Errorf("dataset load failed: %w", err)
	}

	if cached {
		if s.OnCacheHit != nil {
			s.OnCacheHit()
		}
	} else if s.OnLoad != nil {
		s.OnLoad()
	}

	return records, nil
}

// Warmup loads the dataset eagerly so a broken source fails startup rather
// than the first request.
func (s *DashboardService) Warmup(ctx context.Context) error {
	_, err := s.records(ctx)
	return err
}

// Options returns the selectable filter controls derived from the dataset:
// sorted countries and indicators, the observed year bounds, and the
// defaults (first two countries, full range, "Actual + Forecast").
func (s *DashboardService) Options(ctx context.Context) (*domain.DashboardOptions, error) {
	records, err := s.records(ctx)
	if err != nil {
		return nil, err
	}

	countries := dataset.Countries(records)
	yearMin, yearMax, ok := dataset.YearBounds(records)
	if len(countries) == 0 || !ok {
		return nil, ErrEmptyDataset
	}

	defaults := countries
	if len(defaults) > 2 {
		defaults = defaults[:2]
	}

	return &domain.DashboardOptions{
		Countries:        countries,
		Indicators:       dataset.Indicators(records),
		Modes:            domain.Modes(),
		DefaultMode:      domain.ModeActualForecast,
		DefaultCountries: defaults,
		YearMin:          yearMin,
		YearMax:          yearMax,
	}, nil
}

// View runs the filter pipeline for a validated request and produces the
// chart spec plus the table view. An empty result yields ErrNoData.
// The request must have passed transport validation: 1-2 countries, a known
// mode, and year_from <= year_to; ValidateRequest enforces this for callers
// that bypass the HTTP layer.
func (s *DashboardService) View(ctx context.Context, req ViewRequest) (*domain.DashboardView, error) {
	if err := s.ValidateRequest(req); err != nil {
		return nil, err
	}

	records, err := s.records(ctx)
	if err != nil {
		return nil, err
	}

	filtered := dataset.Filter(records, dataset.FilterOptions{
		Countries: req.Countries,
		Indicator: req.Indicator,
		Mode:      req.Mode,
		YearFrom:  req.YearFrom,
		YearTo:    req.YearTo,
	})

	if len(filtered) == 0 {
		s.logger.InfoContext(ctx, "view matched no rows",
			slog.Any("countries", req.Countries),
			slog.String("indicator", req.Indicator),
			slog.String("mode", string(req.Mode)))
		return nil, ErrNoData
	}

	view := &domain.DashboardView{
		Chart: buildChartSpec(filtered),
		Table: buildTableView(filtered),
		Count: len(filtered),
	}

	s.logger.DebugContext(ctx, "view rendered",
		slog.Any("countries", req.Countries),
		slog.String("indicator", req.Indicator),
		slog.Int("rows", len(filtered)))

	return view, nil
}

// ValidateRequest checks the selection bounds without touching the dataset.
// Zero or more than two countries, an unknown mode, or an inverted year
// range all reject the request before the pipeline runs.
func (s *DashboardService) ValidateRequest(req ViewRequest) error {
	if len(req.Countries) < 1 || len(req.Countries) > 2 {
		return ErrCountrySelection
	}
	if !req.Mode.Valid() {
		return ErrInvalidMode
	}
	if req.YearFrom > req.YearTo {
		return ErrInvalidYearRange
	}
	return nil
}
