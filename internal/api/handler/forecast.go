package handler

import (
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/sailgate/sailgate/internal/api/models"
	"github.com/sailgate/sailgate/internal/api/response"
	"github.com/sailgate/sailgate/internal/voyage"
)

// ForecastHandler serves merged forecast windows.
type ForecastHandler struct {
	repo         *voyage.Repository
	defaultHours int
}

// NewForecastHandler creates a forecast handler.
func NewForecastHandler(repo *voyage.Repository, defaultHours int) *ForecastHandler {
	return &ForecastHandler{repo: repo, defaultHours: defaultHours}
}

// GetForecast handles GET /v1/forecast?lat=..&lon=..&hours=..
func (h *ForecastHandler) GetForecast(w http.ResponseWriter, r *http.Request) {
	lat, err := strconv.ParseFloat(r.URL.Query().Get("lat"), 64)
	if err != nil {
		response.BadRequest(w, r, "lat must be a number")
		return
	}
	lon, err := strconv.ParseFloat(r.URL.Query().Get("lon"), 64)
	if err != nil {
		response.BadRequest(w, r, "lon must be a number")
		return
	}
	if lat < -90 || lat > 90 || lon < -180 || lon > 180 {
		response.BadRequest(w, r, "coordinates out of range")
		return
	}

	hours := h.defaultHours
	if raw := r.URL.Query().Get("hours"); raw != "" {
		hours, err = strconv.Atoi(raw)
		if err != nil || hours <= 0 {
			response.BadRequest(w, r, "hours must be a positive integer")
			return
		}
	}

	points, err := h.repo.FetchForPoint(r.Context(), lat, lon, hours)
	if err != nil {
		response.ServiceUnavailable(w, r, "forecast temporarily unavailable")
		return
	}

	response.JSON(w, r, http.StatusOK, models.ForecastResponse{
		Lat:    lat,
		Lon:    lon,
		Hours:  hours,
		Points: points,
	})
}

// GetRouteForecast handles GET /v1/routes/{routeID}/forecast.
func (h *ForecastHandler) GetRouteForecast(w http.ResponseWriter, r *http.Request) {
	routeID := chi.URLParam(r, "routeID")

	route, points, err := h.repo.FetchForRoute(r.Context(), routeID, h.defaultHours)
	if err != nil {
		if _, lookupErr := h.repo.Routes().Get(routeID); lookupErr != nil {
			response.NotFound(w, r, "unknown route")
			return
		}
		response.ServiceUnavailable(w, r, "forecast temporarily unavailable")
		return
	}

	response.JSON(w, r, http.StatusOK, models.RouteForecastResponse{
		Route:  route,
		Hours:  h.defaultHours,
		Points: points,
	})
}
