package handler

import (
	"encoding/json"
	"net/http"

	"github.com/sailgate/sailgate/internal/api/response"
	"github.com/sailgate/sailgate/internal/fusion"
	"github.com/sailgate/sailgate/internal/observability"
)

// DecisionHandler serves the voyage gating endpoint.
type DecisionHandler struct {
	coeffs  fusion.Coefficients
	metrics *observability.Metrics
}

// NewDecisionHandler creates a decision handler with the default
// coefficient set.
func NewDecisionHandler(metrics *observability.Metrics) *DecisionHandler {
	return &DecisionHandler{coeffs: fusion.DefaultCoefficients(), metrics: metrics}
}

// PostDecision handles POST /v1/decision.
func (h *DecisionHandler) PostDecision(w http.ResponseWriter, r *http.Request) {
	var in fusion.Inputs
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		response.BadRequest(w, r, "invalid JSON body")
		return
	}

	result, err := fusion.DecideAndETA(in, h.coeffs)
	if err != nil {
		response.BadRequest(w, r, err.Error())
		return
	}

	if h.metrics != nil {
		h.metrics.Decisions.WithLabelValues(result.Decision).Inc()
	}

	response.JSON(w, r, http.StatusOK, result)
}
