package errors

import (
	"encoding/json"
	"log/slog"
	"net/http"
)

// HTTPErrorAdapter writes classified errors as JSON responses.
type HTTPErrorAdapter struct {
	logger *slog.Logger
}

// NewHTTPErrorAdapter creates a new HTTP error adapter.
func NewHTTPErrorAdapter(logger *slog.Logger) *HTTPErrorAdapter {
	if logger == nil {
		logger = slog.Default()
	}
	return &HTTPErrorAdapter{logger: logger}
}

// ErrorResponse is the JSON body written for failed requests.
type ErrorResponse struct {
	Category ErrorCategory `json:"category"`
	Message  string        `json:"message"`
	Context  ContextFields `json:"context,omitempty"`
}

// StatusCodeFor maps an error to an HTTP status code.
func (a *HTTPErrorAdapter) StatusCodeFor(err error) int {
	switch GetCategory(err) {
	case CategoryValidation:
		return http.StatusBadRequest
	case CategoryConfig, CategoryInternal, CategoryRender, CategoryFileSystem:
		return http.StatusInternalServerError
	case CategoryCache, CategoryServer:
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}

// WriteErrorResponse writes err to w with the mapped status code.
func (a *HTTPErrorAdapter) WriteErrorResponse(w http.ResponseWriter, err error) {
	status := a.StatusCodeFor(err)

	resp := ErrorResponse{Category: GetCategory(err), Message: err.Error()}
	if ce, ok := As(err); ok {
		resp.Message = ce.Message
		resp.Context = ce.Context
	}

	if status >= http.StatusInternalServerError {
		a.logger.Error("request failed", "error", err, "status", status)
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if encErr := json.NewEncoder(w).Encode(resp); encErr != nil {
		a.logger.Warn("failed to encode error response", "error", encErr)
	}
}
