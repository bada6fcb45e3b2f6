package handler

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/sailgate/sailgate/internal/api/response"
	"github.com/sailgate/sailgate/internal/voyage"
)

// scheduleHorizonHours covers the full week of candidate windows.
const scheduleHorizonHours = 192

// VoyageHandler serves route listing and departure scheduling.
type VoyageHandler struct {
	repo      *voyage.Repository
	scheduler *voyage.Scheduler
}

// NewVoyageHandler creates a voyage handler.
func NewVoyageHandler(repo *voyage.Repository, scheduler *voyage.Scheduler) *VoyageHandler {
	return &VoyageHandler{repo: repo, scheduler: scheduler}
}

// ListRoutes handles GET /v1/routes.
func (h *VoyageHandler) ListRoutes(w http.ResponseWriter, r *http.Request) {
	response.JSON(w, r, http.StatusOK, h.repo.Routes().All())
}

// GetRouteSchedule handles GET /v1/routes/{routeID}/schedule.
func (h *VoyageHandler) GetRouteSchedule(w http.ResponseWriter, r *http.Request) {
	routeID := chi.URLParam(r, "routeID")

	route, points, err := h.repo.FetchForRoute(r.Context(), routeID, scheduleHorizonHours)
	if err != nil {
		if _, lookupErr := h.repo.Routes().Get(routeID); lookupErr != nil {
			response.NotFound(w, r, "unknown route")
			return
		}
		response.ServiceUnavailable(w, r, "forecast temporarily unavailable")
		return
	}

	response.JSON(w, r, http.StatusOK, h.scheduler.SuggestWeeklySchedule(route, points))
}
