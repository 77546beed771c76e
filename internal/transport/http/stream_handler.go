package http

import (
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"github.com/gorilla/websocket"

	"fcdash/internal/middleware"
	"fcdash/internal/services"
)

// StreamHandler serves the dashboard over a websocket: the page sends one
// filter message per control change and receives the recomputed view in
// response. Each frame is handled synchronously; there are no background
// pushes and no server-side debouncing.
type StreamHandler struct {
	service        DashboardServiceInterface
	logger         *slog.Logger
	allowedOrigins []string
	upgrader       websocket.Upgrader
}

// streamResponse is one reply frame.
type streamResponse struct {
	Status string      `json:"status"`
	Data   interface{} `json:"data,omitempty"`
	Error  *streamErr  `json:"error,omitempty"`
}

type streamErr struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// NewStreamHandler creates a websocket handler for live filter updates
func NewStreamHandler(service DashboardServiceInterface, allowedOrigins []string, logger *slog.Logger) *StreamHandler {
	h := &StreamHandler{
		service:        service,
		logger:         logger.With(slog.String("component", "stream_handler")),
		allowedOrigins: allowedOrigins,
	}
	h.upgrader = websocket.Upgrader{
		ReadBufferSize:  1024,
		WriteBufferSize: 1024,
		CheckOrigin:     h.checkOrigin,
	}
	return h
}

// ServeHTTP handles GET /api/dashboard/stream
func (h *StreamHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	reqID := middleware.GetRequestID(r.Context())

	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		// Upgrade already wrote the HTTP error
		h.logger.ErrorContext(r.Context(), "websocket upgrade failed",
			slog.String("error", err.Error()),
			slog.String("request_id", reqID),
			slog.String("origin", r.Header.Get("Origin")))
		return
	}
	defer conn.Close()

	h.logger.InfoContext(r.Context(), "stream connected",
		slog.String("request_id", reqID),
		slog.String("remote_addr", r.RemoteAddr))

	for {
		var req services.ViewRequest
		if err := conn.ReadJSON(&req); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				h.logger.WarnContext(r.Context(), "stream read failed",
					slog.String("error", err.Error()),
					slog.String("request_id", reqID))
			}
			return
		}

		if err := conn.WriteJSON(h.respond(r, req)); err != nil {
			h.logger.WarnContext(r.Context(), "stream write failed",
				slog.String("error", err.Error()),
				slog.String("request_id", reqID))
			return
		}
	}
}

// respond recomputes the view for one filter message
func (h *StreamHandler) respond(r *http.Request, req services.ViewRequest) streamResponse {
	view, err := h.service.View(r.Context(), req)
	if err != nil {
		return streamResponse{Status: "error", Error: streamError(err)}
	}
	return streamResponse{Status: "success", Data: view}
}

// streamError maps service errors onto frame error codes
func streamError(err error) *streamErr {
	switch {
	case errors.Is(err, services.ErrNoData):
		return &streamErr{Code: "NO_DATA", Message: "No data available for the selected filters"}
	case errors.Is(err, services.ErrCountrySelection):
		return &streamErr{Code: "VALIDATION_FAILED", Message: "Select at least one and at most two countries"}
	case errors.Is(err, services.ErrInvalidMode):
		return &streamErr{Code: "VALIDATION_FAILED", Message: "Invalid data mode"}
	case errors.Is(err, services.ErrInvalidYearRange):
		return &streamErr{Code: "VALIDATION_FAILED", Message: "year_from must not exceed year_to"}
	default:
		return &streamErr{Code: "INTERNAL_SERVER_ERROR", Message: "Internal server error"}
	}
}

// checkOrigin validates the websocket origin against the configured list
func (h *StreamHandler) checkOrigin(r *http.Request) bool {
	origin := r.Header.Get("Origin")
	if origin == "" {
		return true
	}
	for _, allowed := range h.allowedOrigins {
		if allowed == "*" || strings.EqualFold(allowed, origin) {
			return true
		}
	}
	return false
}
