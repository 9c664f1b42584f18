package handlers

import (
	"net/http"
	"time"

	"github.com/domeafavour/hello-ast/internal/errors"
	"github.com/domeafavour/hello-ast/internal/server/responses"
	"github.com/domeafavour/hello-ast/internal/version"
)

// MonitoringHandlers serves the health endpoint.
type MonitoringHandlers struct {
	startTime    time.Time
	errorAdapter *errors.HTTPErrorAdapter
}

func NewMonitoringHandlers(startTime time.Time, adapter *errors.HTTPErrorAdapter) *MonitoringHandlers {
	if adapter == nil {
		adapter = errors.NewHTTPErrorAdapter(nil)
	}
	return &MonitoringHandlers{startTime: startTime, errorAdapter: adapter}
}

// HandleHealthCheck reports liveness and uptime.
func (h *MonitoringHandlers) HandleHealthCheck(w http.ResponseWriter, _ *http.Request) {
	health := &responses.HealthResponse{
		Status:    "healthy",
		Timestamp: time.Now().UTC(),
		Version:   version.Version,
		Uptime:    time.Since(h.startTime).Seconds(),
	}
	if err := writeJSON(w, http.StatusOK, health); err != nil {
		h.errorAdapter.WriteErrorResponse(w, errors.InternalError("failed to write health response", err))
	}
}
