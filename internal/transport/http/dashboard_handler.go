package http

import (
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/render"
	"github.com/go-playground/validator/v10"

	apierrors "fcdash/internal/errors"
	"fcdash/internal/middleware"
	"fcdash/internal/services"
	"fcdash/pkg/contracts/domain"
)

// DashboardHandler handles dashboard HTTP requests with RFC 7807 compliance
type DashboardHandler struct {
	service      DashboardServiceInterface
	logger       *slog.Logger
	errorHandler *apierrors.ErrorHandler
	validate     *validator.Validate
	onView       func()
	onEmptyView  func()
}

// NewDashboardHandler creates a new dashboard handler with RFC 7807 error handling
func NewDashboardHandler(service DashboardServiceInterface, logger *slog.Logger, errorHandler *apierrors.ErrorHandler) *DashboardHandler {
	return &DashboardHandler{
		service:      service,
		logger:       logger.With(slog.String("component", "dashboard_handler")),
		errorHandler: errorHandler,
		validate:     validator.New(),
	}
}

// WithViewCounters wires optional metric callbacks for served and empty views
func (h *DashboardHandler) WithViewCounters(onView, onEmptyView func()) *DashboardHandler {
	h.onView = onView
	h.onEmptyView = onEmptyView
	return h
}

// Routes returns the dashboard routes with proper Chi patterns
func (h *DashboardHandler) Routes() chi.Router {
	r := chi.NewRouter()

	r.Use(render.SetContentType(render.ContentTypeJSON))

	r.Get("/options", h.GetOptions)
	r.Get("/view", h.GetView)

	return r
}

// GetOptions handles GET /api/dashboard/options
func (h *DashboardHandler) GetOptions(w http.ResponseWriter, r *http.Request) {
	reqID := middleware.GetRequestID(r.Context())

	h.logger.InfoContext(r.Context(), "fetching dashboard options",
		slog.String("request_id", reqID),
		slog.String("method", r.Method),
		slog.String("path", r.URL.Path),
	)

	options, err := h.service.Options(r.Context())
	if err != nil {
		h.logger.ErrorContext(r.Context(), "failed to get options",
			slog.String("error", err.Error()),
			slog.String("request_id", reqID),
		)

		if errors.Is(err, services.ErrEmptyDataset) {
			h.errorHandler.HandleError(w, r, apierrors.New(
				http.StatusNotFound,
				"EMPTY_DATASET",
				"The source files contain no usable rows",
			))
			return
		}

		h.errorHandler.HandleError(w, r, err)
		return
	}

	render.JSON(w, r, map[string]interface{}{
		"status": "success",
		"data":   options,
	})
}

// GetView handles GET /api/dashboard/view
func (h *DashboardHandler) GetView(w http.ResponseWriter, r *http.Request) {
	reqID := middleware.GetRequestID(r.Context())

	req, apiErr := h.parseViewRequest(r)
	if apiErr != nil {
		h.errorHandler.HandleError(w, r, apiErr)
		return
	}

	h.logger.InfoContext(r.Context(), "rendering dashboard view",
		slog.String("request_id", reqID),
		slog.Any("countries", req.Countries),
		slog.String("indicator", req.Indicator),
		slog.String("mode", string(req.Mode)),
		slog.Int("year_from", req.YearFrom),
		slog.Int("year_to", req.YearTo),
	)

	view, err := h.service.View(r.Context(), *req)
	if err != nil {
		h.handleViewError(w, r, *req, err)
		return
	}

	if h.onView != nil {
		h.onView()
	}

	render.JSON(w, r, map[string]interface{}{
		"status": "success",
		"data":   view,
		"count":  view.Count,
	})
}

// handleViewError maps service errors onto API errors
func (h *DashboardHandler) handleViewError(w http.ResponseWriter, r *http.Request, req services.ViewRequest, err error) {
	reqID := middleware.GetRequestID(r.Context())

	h.logger.ErrorContext(r.Context(), "failed to render view",
		slog.String("error", err.Error()),
		slog.String("request_id", reqID),
	)

	switch {
	case errors.Is(err, services.ErrNoData):
		if h.onEmptyView != nil {
			h.onEmptyView()
		}
		h.errorHandler.HandleError(w, r, apierrors.NewWithDetails(
			http.StatusNotFound,
			"NO_DATA",
			"No data available for the selected filters",
			map[string]interface{}{
				"countries": req.Countries,
				"indicator": req.Indicator,
				"mode":      req.Mode,
				"year_from": req.YearFrom,
				"year_to":   req.YearTo,
			},
		))

	case errors.Is(err, services.ErrCountrySelection):
		h.errorHandler.HandleError(w, r, apierrors.ErrValidation("country",
			"Select at least one and at most two countries"))

	case errors.Is(err, services.ErrInvalidMode):
		h.errorHandler.HandleError(w, r, apierrors.ErrValidation("mode",
			fmt.Sprintf("Invalid mode %q. Must be one of: %q, %q, %q",
				req.Mode, domain.ModeActualOnly, domain.ModeForecastOnly, domain.ModeActualForecast)))

	case errors.Is(err, services.ErrInvalidYearRange):
		h.errorHandler.HandleError(w, r, apierrors.ErrValidation("year_range",
			"year_from must not exceed year_to"))

	default:
		h.errorHandler.HandleError(w, r, err)
	}
}

// parseViewRequest binds and validates the view query parameters.
// The country bound (1-2) is enforced here so the filter pipeline is never
// invoked with an invalid selection.
func (h *DashboardHandler) parseViewRequest(r *http.Request) (*services.ViewRequest, *apierrors.APIError) {
	query := r.URL.Query()

	req := services.ViewRequest{
		Countries: query["country"],
		Indicator: query.Get("indicator"),
		Mode:      domain.ModeActualForecast,
	}

	if rawMode := query.Get("mode"); rawMode != "" {
		req.Mode = domain.DataMode(rawMode)
		if !req.Mode.Valid() {
			return nil, apierrors.ErrValidation("mode",
				fmt.Sprintf("Invalid mode %q. Must be one of: %q, %q, %q",
					rawMode, domain.ModeActualOnly, domain.ModeForecastOnly, domain.ModeActualForecast))
		}
	}

	if len(req.Countries) == 0 {
		return nil, apierrors.ErrValidation("country", "Please select at least one country")
	}
	if len(req.Countries) > 2 {
		return nil, apierrors.ErrValidation("country", "Maximum of two countries allowed")
	}

	yearFrom, err := strconv.Atoi(query.Get("year_from"))
	if err != nil {
		return nil, apierrors.ErrValidation("year_from", "year_from must be an integer")
	}
	yearTo, err := strconv.Atoi(query.Get("year_to"))
	if err != nil {
		return nil, apierrors.ErrValidation("year_to", "year_to must be an integer")
	}
	req.YearFrom = yearFrom
	req.YearTo = yearTo

	if err := h.validate.Struct(req); err != nil {
		var fieldErrors []apierrors.ValidationError
		var invalid validator.ValidationErrors
		if errors.As(err, &invalid) {
			for _, fe := range invalid {
				fieldErrors = append(fieldErrors, apierrors.ValidationError{
					Field:   fe.Field(),
					Message: fmt.Sprintf("failed on the %q rule", fe.Tag()),
				})
			}
			return nil, apierrors.NewValidationErrors(fieldErrors)
		}
		return nil, apierrors.InvalidRequestWithError(err)
	}

	return &req, nil
}
