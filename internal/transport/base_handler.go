package transport

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"strconv"

	apperrors "github.com/wrkforce/employee-management/internal"
	"github.com/wrkforce/employee-management/internal/core/common/query"
	"github.com/wrkforce/employee-management/pkg/logger"
)

// BaseHandler provides common functionality for HTTP handlers
type BaseHandler struct {
	Logger *slog.Logger
}

// NewBaseHandler creates a base handler with logger
func NewBaseHandler(lg *slog.Logger) *BaseHandler {
	if lg == nil {
		lg = logger.L()
	}
	return &BaseHandler{Logger: lg}
}

// WriteJSON writes a JSON response
func (h *BaseHandler) WriteJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		h.Logger.Error("failed to encode JSON response", "error", err)
	}
}

// WriteError writes an error response
func (h *BaseHandler) WriteError(w http.ResponseWriter, status int, message string) {
	h.Logger.Error("http error", "status", status, "message", message)
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	errorResp := map[string]interface{}{
		"code":    status,
		"message": message,
	}

	if err := json.NewEncoder(w).Encode(errorResp); err != nil {
		h.Logger.Error("failed to encode error response", "error", err)
	}
}

// HandleServiceError maps service errors to HTTP responses. AppErrors carry
// their own status code; anything else is a server-side failure.
func (h *BaseHandler) HandleServiceError(w http.ResponseWriter, err error) {
	if appErr, ok := apperrors.IsAppError(err); ok {
		if appErr.StatusCode >= http.StatusInternalServerError {
			h.Logger.Error("service error", "error", appErr, "cause", appErr.Cause)
		} else {
			h.Logger.Warn("request rejected", "error", appErr)
		}
		status, body := appErr.ToHTTPResponse()
		h.WriteJSON(w, status, body)
		return
	}

	h.Logger.Error("unexpected service error", "error", err)
	h.WriteError(w, http.StatusInternalServerError, "internal server error")
}

// ParseListParams extracts page/size/search/ordering from the query string.
// A supplied page or size that is non-numeric or out of range is rejected;
// absent values get their defaults later in ListParams.Normalize.
func ParseListParams(r *http.Request) (query.ListParams, *apperrors.AppError) {
	q := r.URL.Query()

	params := query.ListParams{
		Search:  q.Get("search"),
		OrderBy: q.Get("order_by"),
	}

	if raw := q.Get("page"); raw != "" {
		page, err := strconv.Atoi(raw)
		if err != nil || page < 1 {
			return params, apperrors.NewValidationFieldError("page",
				"page must be an integer greater than or equal to 1",
				apperrors.ErrCodeValidationFailed)
		}
		params.Page = page
	}
	if raw := q.Get("size"); raw != "" {
		size, err := strconv.Atoi(raw)
		if err != nil || size < 1 || size > query.MaxSize {
			return params, apperrors.NewValidationFieldError("size",
				fmt.Sprintf("size must be an integer between 1 and %d", query.MaxSize),
				apperrors.ErrCodeValidationFailed)
		}
		params.Size = size
	}
	if raw := q.Get("order_desc"); raw != "" {
		if desc, err := strconv.ParseBool(raw); err == nil {
			params.OrderDesc = desc
		}
	}

	return params, nil
}
