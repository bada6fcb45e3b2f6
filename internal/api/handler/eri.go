package handler

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/sailgate/sailgate/internal/api/models"
	"github.com/sailgate/sailgate/internal/api/response"
	"github.com/sailgate/sailgate/internal/eri"
	"github.com/sailgate/sailgate/internal/marine"
	"github.com/sailgate/sailgate/internal/pipeline"
	"github.com/sailgate/sailgate/internal/voyage"
)

// ERIHandler serves environmental risk index scores per route.
type ERIHandler struct {
	repo  *voyage.Repository
	rules *eri.RuleSet
	hours int
}

// NewERIHandler creates an ERI handler.
func NewERIHandler(repo *voyage.Repository, rules *eri.RuleSet, hours int) *ERIHandler {
	return &ERIHandler{repo: repo, rules: rules, hours: hours}
}

// GetRouteERI handles GET /v1/routes/{routeID}/eri. The forecast window is
// quality controlled before scoring.
func (h *ERIHandler) GetRouteERI(w http.ResponseWriter, r *http.Request) {
	routeID := chi.URLParam(r, "routeID")

	_, points, err := h.repo.FetchForRoute(r.Context(), routeID, h.hours)
	if err != nil {
		if _, lookupErr := h.repo.Routes().Get(routeID); lookupErr != nil {
			response.NotFound(w, r, "unknown route")
			return
		}
		response.ServiceUnavailable(w, r, "forecast temporarily unavailable")
		return
	}

	// The fallback chain does not preserve which provider produced the
	// cached points, so the scored series carries the merged-scope label.
	series := marine.ForecastToTimeseries(points, "multi").SortedByTime()
	conditioned := pipeline.ApplyQualityControls(series, pipeline.DefaultPhysicalBounds, pipeline.DefaultIQRMultiplier)
	scored := eri.ComputeTimeseries(conditioned, h.rules)

	response.JSON(w, r, http.StatusOK, models.NewERIResponse(routeID, scored))
}
