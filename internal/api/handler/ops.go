// Package handler implements the HTTP request handlers.
package handler

import (
	"net/http"

	"github.com/sailgate/sailgate/internal/api/models"
	"github.com/sailgate/sailgate/internal/api/response"
	"github.com/sailgate/sailgate/internal/provider/resilience"
)

// OpsHandler serves liveness and operational status endpoints.
type OpsHandler struct {
	version  string
	registry *resilience.Registry
}

// NewOpsHandler creates an ops handler. The registry may be nil when no
// resilient clients are registered.
func NewOpsHandler(version string, registry *resilience.Registry) *OpsHandler {
	return &OpsHandler{version: version, registry: registry}
}

// HealthCheck handles GET /healthz.
func (h *OpsHandler) HealthCheck(w http.ResponseWriter, r *http.Request) {
	response.JSON(w, r, http.StatusOK, models.HealthResponse{Status: "ok", Version: h.version})
}

// ProviderHealth handles GET /v1/providers/health. It reports circuit
// breaker state and last success/failure per upstream provider.
func (h *OpsHandler) ProviderHealth(w http.ResponseWriter, r *http.Request) {
	if h.registry == nil {
		response.JSON(w, r, http.StatusOK, []resilience.Health{})
		return
	}
	response.JSON(w, r, http.StatusOK, h.registry.AllHealth())
}
