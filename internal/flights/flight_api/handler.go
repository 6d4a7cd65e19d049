package flight_api

import (
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"airport-booking/internal/apperr"
	"airport-booking/internal/flights"
	"airport-booking/internal/flights/db"
	"airport-booking/internal/logger"
	"airport-booking/internal/models"
	"airport-booking/internal/utils"
)

// parseDateParam accepts a plain date or a full timestamp; either way the
// filter matches the whole calendar day.
func parseDateParam(v string) (time.Time, error) {
	if t, err := time.Parse("2006-01-02", v); err == nil {
		return t, nil
	}
	return time.Parse(time.RFC3339, v)
}

type Handler struct {
	Service *flights.Service
	Logger  *logger.Logger
}

func NewHandler(service *flights.Service, log *logger.Logger) *Handler {
	return &Handler{Service: service, Logger: log}
}

func (h *Handler) RegisterRoutes(r chi.Router, requireAdmin func(http.Handler) http.Handler) {
	r.Route("/routes", func(r chi.Router) {
		r.Get("/", h.ListRoutes)
		r.Get("/{routeId}", h.GetRoute)
		r.With(requireAdmin).Post("/", h.CreateRoute)
		r.With(requireAdmin).Delete("/{routeId}", h.DeleteRoute)
	})
	r.Route("/flights", func(r chi.Router) {
		r.Get("/", h.ListFlights)
		r.Get("/{flightId}", h.GetFlight)
		r.With(requireAdmin).Post("/", h.CreateFlight)
		r.With(requireAdmin).Put("/{flightId}/crew", h.SetFlightCrew)
		r.With(requireAdmin).Delete("/{flightId}", h.DeleteFlight)
	})
}

// ---------------- ROUTES ----------------

func (h *Handler) CreateRoute(w http.ResponseWriter, r *http.Request) {
	var req models.RouteRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request body: "+err.Error(), http.StatusBadRequest)
		return
	}

	route, err := h.Service.CreateRoute(r.Context(), req)
	if err != nil {
		h.Logger.Error("API", fmt.Sprintf("CreateRoute: %v", err))
		utils.WriteError(w, err)
		return
	}
	utils.WriteJSON(w, http.StatusCreated, route)
}

func (h *Handler) ListRoutes(w http.ResponseWriter, r *http.Request) {
	filter := db.RouteFilter{
		Source:      r.URL.Query().Get("source"),
		Destination: r.URL.Query().Get("destination"),
		OrderBy:     r.URL.Query().Get("order_by"),
	}
	routes, err := h.Service.ListRoutes(r.Context(), filter)
	if err != nil {
		h.Logger.Error("API", fmt.Sprintf("ListRoutes: %v", err))
		utils.WriteError(w, err)
		return
	}

	views := make([]models.RouteListView, len(routes))
	for i := range routes {
		views[i] = routes[i].ToListView()
	}
	utils.WriteJSON(w, http.StatusOK, views)
}

func (h *Handler) GetRoute(w http.ResponseWriter, r *http.Request) {
	route, err := h.Service.GetRoute(r.Context(), chi.URLParam(r, "routeId"))
	if err != nil {
		utils.WriteError(w, err)
		return
	}
	utils.WriteJSON(w, http.StatusOK, route)
}

func (h *Handler) DeleteRoute(w http.ResponseWriter, r *http.Request) {
	if err := h.Service.DeleteRoute(r.Context(), chi.URLParam(r, "routeId")); err != nil {
		utils.WriteError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// ---------------- FLIGHTS ----------------

func (h *Handler) CreateFlight(w http.ResponseWriter, r *http.Request) {
	var req models.FlightRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request body: "+err.Error(), http.StatusBadRequest)
		return
	}

	flight, err := h.Service.CreateFlight(r.Context(), req)
	if err != nil {
		h.Logger.Error("API", fmt.Sprintf("CreateFlight: %v", err))
		utils.WriteError(w, err)
		return
	}
	utils.WriteJSON(w, http.StatusCreated, flight)
}

func (h *Handler) ListFlights(w http.ResponseWriter, r *http.Request) {
	filter := db.FlightFilter{
		Source:      r.URL.Query().Get("source"),
		Destination: r.URL.Query().Get("destination"),
		OrderBy:     r.URL.Query().Get("order_by"),
	}
	if v := r.URL.Query().Get("departure_time"); v != "" {
		t, err := parseDateParam(v)
		if err != nil {
			utils.WriteError(w, apperr.NewValidation("departure_time", "must be a date (2006-01-02) or RFC3339 timestamp"))
			return
		}
		filter.DepartureDate = t
	}
	if v := r.URL.Query().Get("arrival_time"); v != "" {
		t, err := parseDateParam(v)
		if err != nil {
			utils.WriteError(w, apperr.NewValidation("arrival_time", "must be a date (2006-01-02) or RFC3339 timestamp"))
			return
		}
		filter.ArrivalDate = t
	}

	flightList, err := h.Service.ListFlights(r.Context(), filter)
	if err != nil {
		h.Logger.Error("API", fmt.Sprintf("ListFlights: %v", err))
		utils.WriteError(w, err)
		return
	}

	views := make([]models.FlightListView, len(flightList))
	for i := range flightList {
		views[i] = flightList[i].ToListView()
	}
	utils.WriteJSON(w, http.StatusOK, views)
}

func (h *Handler) GetFlight(w http.ResponseWriter, r *http.Request) {
	flight, err := h.Service.GetFlight(r.Context(), chi.URLParam(r, "flightId"))
	if err != nil {
		utils.WriteError(w, err)
		return
	}
	utils.WriteJSON(w, http.StatusOK, flight)
}

func (h *Handler) SetFlightCrew(w http.ResponseWriter, r *http.Request) {
	flightID := chi.URLParam(r, "flightId")

	var req models.FlightCrewRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request body: "+err.Error(), http.StatusBadRequest)
		return
	}

	if err := h.Service.SetCrew(r.Context(), flightID, req); err != nil {
		h.Logger.Error("API", fmt.Sprintf("SetFlightCrew: %v", err))
		utils.WriteError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) DeleteFlight(w http.ResponseWriter, r *http.Request) {
	if err := h.Service.DeleteFlight(r.Context(), chi.URLParam(r, "flightId")); err != nil {
		utils.WriteError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
