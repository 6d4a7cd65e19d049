package catalog_api

import (
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/go-chi/chi/v5"

	"airport-booking/internal/catalog"
	"airport-booking/internal/catalog/db"
	"airport-booking/internal/logger"
	"airport-booking/internal/models"
	"airport-booking/internal/utils"
)

type Handler struct {
	Service *catalog.Service
	Logger  *logger.Logger
}

func NewHandler(service *catalog.Service, log *logger.Logger) *Handler {
	return &Handler{Service: service, Logger: log}
}

// RegisterRoutes mounts the reference-catalog resources. Reads are open to
// any authenticated caller; writes go through the admin gate.
func (h *Handler) RegisterRoutes(r chi.Router, requireAdmin func(http.Handler) http.Handler) {
	r.Route("/countries", func(r chi.Router) {
		r.Get("/", h.ListCountries)
		r.Get("/{countryId}", h.GetCountry)
		r.With(requireAdmin).Post("/", h.CreateCountry)
		r.With(requireAdmin).Delete("/{countryId}", h.DeleteCountry)
	})
	r.Route("/cities", func(r chi.Router) {
		r.Get("/", h.ListCities)
		r.Get("/{cityId}", h.GetCity)
		r.With(requireAdmin).Post("/", h.CreateCity)
		r.With(requireAdmin).Delete("/{cityId}", h.DeleteCity)
	})
	r.Route("/airports", func(r chi.Router) {
		r.Get("/", h.ListAirports)
		r.Get("/{airportId}", h.GetAirport)
		r.With(requireAdmin).Post("/", h.CreateAirport)
		r.With(requireAdmin).Delete("/{airportId}", h.DeleteAirport)
	})
	r.Route("/airplane_types", func(r chi.Router) {
		r.Get("/", h.ListAirplaneTypes)
		r.Get("/{typeId}", h.GetAirplaneType)
		r.With(requireAdmin).Post("/", h.CreateAirplaneType)
	})
	r.Route("/airplanes", func(r chi.Router) {
		r.Get("/", h.ListAirplanes)
		r.Get("/{airplaneId}", h.GetAirplane)
		r.With(requireAdmin).Post("/", h.CreateAirplane)
	})
	r.Route("/crews", func(r chi.Router) {
		r.Get("/", h.ListCrews)
		r.Get("/{crewId}", h.GetCrew)
		r.With(requireAdmin).Post("/", h.CreateCrew)
	})
}

// ---------------- COUNTRIES ----------------

func (h *Handler) CreateCountry(w http.ResponseWriter, r *http.Request) {
	var req models.CountryRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request body: "+err.Error(), http.StatusBadRequest)
		return
	}

	country, err := h.Service.CreateCountry(r.Context(), req)
	if err != nil {
		h.Logger.Error("API", fmt.Sprintf("CreateCountry: %v", err))
		utils.WriteError(w, err)
		return
	}
	utils.WriteJSON(w, http.StatusCreated, country)
}

func (h *Handler) ListCountries(w http.ResponseWriter, r *http.Request) {
	countries, err := h.Service.ListCountries(r.Context())
	if err != nil {
		h.Logger.Error("API", fmt.Sprintf("ListCountries: %v", err))
		utils.WriteError(w, err)
		return
	}
	utils.WriteJSON(w, http.StatusOK, countries)
}

func (h *Handler) GetCountry(w http.ResponseWriter, r *http.Request) {
	country, err := h.Service.GetCountry(r.Context(), chi.URLParam(r, "countryId"))
	if err != nil {
		utils.WriteError(w, err)
		return
	}
	utils.WriteJSON(w, http.StatusOK, country)
}

func (h *Handler) DeleteCountry(w http.ResponseWriter, r *http.Request) {
	if err := h.Service.DeleteCountry(r.Context(), chi.URLParam(r, "countryId")); err != nil {
		utils.WriteError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// ---------------- CITIES ----------------

func (h *Handler) CreateCity(w http.ResponseWriter, r *http.Request) {
	var req models.CityRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request body: "+err.Error(), http.StatusBadRequest)
		return
	}

	city, err := h.Service.CreateCity(r.Context(), req)
	if err != nil {
		h.Logger.Error("API", fmt.Sprintf("CreateCity: %v", err))
		utils.WriteError(w, err)
		return
	}
	utils.WriteJSON(w, http.StatusCreated, city)
}

func (h *Handler) ListCities(w http.ResponseWriter, r *http.Request) {
	filter := db.CityFilter{
		Name:    r.URL.Query().Get("name"),
		Country: r.URL.Query().Get("country"),
	}
	cities, err := h.Service.ListCities(r.Context(), filter)
	if err != nil {
		h.Logger.Error("API", fmt.Sprintf("ListCities: %v", err))
		utils.WriteError(w, err)
		return
	}

	views := make([]models.CityListView, len(cities))
	for i := range cities {
		views[i] = cities[i].ToListView()
	}
	utils.WriteJSON(w, http.StatusOK, views)
}

func (h *Handler) GetCity(w http.ResponseWriter, r *http.Request) {
	city, err := h.Service.GetCity(r.Context(), chi.URLParam(r, "cityId"))
	if err != nil {
		utils.WriteError(w, err)
		return
	}
	utils.WriteJSON(w, http.StatusOK, city)
}

func (h *Handler) DeleteCity(w http.ResponseWriter, r *http.Request) {
	if err := h.Service.DeleteCity(r.Context(), chi.URLParam(r, "cityId")); err != nil {
		utils.WriteError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// ---------------- AIRPORTS ----------------

func (h *Handler) CreateAirport(w http.ResponseWriter, r *http.Request) {
	var req models.AirportRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request body: "+err.Error(), http.StatusBadRequest)
		return
	}

	airport, err := h.Service.CreateAirport(r.Context(), req)
	if err != nil {
		h.Logger.Error("API", fmt.Sprintf("CreateAirport: %v", err))
		utils.WriteError(w, err)
		return
	}
	utils.WriteJSON(w, http.StatusCreated, airport)
}

func (h *Handler) ListAirports(w http.ResponseWriter, r *http.Request) {
	filter := db.AirportFilter{
		Name: r.URL.Query().Get("name"),
		City: r.URL.Query().Get("city"),
	}
	airports, err := h.Service.ListAirports(r.Context(), filter)
	if err != nil {
		h.Logger.Error("API", fmt.Sprintf("ListAirports: %v", err))
		utils.WriteError(w, err)
		return
	}

	views := make([]models.AirportListView, len(airports))
	for i := range airports {
		views[i] = airports[i].ToListView()
	}
	utils.WriteJSON(w, http.StatusOK, views)
}

func (h *Handler) GetAirport(w http.ResponseWriter, r *http.Request) {
	airport, err := h.Service.GetAirport(r.Context(), chi.URLParam(r, "airportId"))
	if err != nil {
		utils.WriteError(w, err)
		return
	}
	utils.WriteJSON(w, http.StatusOK, airport)
}

func (h *Handler) DeleteAirport(w http.ResponseWriter, r *http.Request) {
	if err := h.Service.DeleteAirport(r.Context(), chi.URLParam(r, "airportId")); err != nil {
		utils.WriteError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// ---------------- AIRPLANE TYPES ----------------

func (h *Handler) CreateAirplaneType(w http.ResponseWriter, r *http.Request) {
	var req models.AirplaneTypeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request body: "+err.Error(), http.StatusBadRequest)
		return
	}

	airplaneType, err := h.Service.CreateAirplaneType(r.Context(), req)
	if err != nil {
		h.Logger.Error("API", fmt.Sprintf("CreateAirplaneType: %v", err))
		utils.WriteError(w, err)
		return
	}
	utils.WriteJSON(w, http.StatusCreated, airplaneType)
}

func (h *Handler) ListAirplaneTypes(w http.ResponseWriter, r *http.Request) {
	types, err := h.Service.ListAirplaneTypes(r.Context())
	if err != nil {
		utils.WriteError(w, err)
		return
	}
	utils.WriteJSON(w, http.StatusOK, types)
}

func (h *Handler) GetAirplaneType(w http.ResponseWriter, r *http.Request) {
	airplaneType, err := h.Service.GetAirplaneType(r.Context(), chi.URLParam(r, "typeId"))
	if err != nil {
		utils.WriteError(w, err)
		return
	}
	utils.WriteJSON(w, http.StatusOK, airplaneType)
}

// ---------------- AIRPLANES ----------------

func (h *Handler) CreateAirplane(w http.ResponseWriter, r *http.Request) {
	var req models.AirplaneRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request body: "+err.Error(), http.StatusBadRequest)
		return
	}

	airplane, err := h.Service.CreateAirplane(r.Context(), req)
	if err != nil {
		h.Logger.Error("API", fmt.Sprintf("CreateAirplane: %v", err))
		utils.WriteError(w, err)
		return
	}
	utils.WriteJSON(w, http.StatusCreated, airplane.ToListView())
}

func (h *Handler) ListAirplanes(w http.ResponseWriter, r *http.Request) {
	filter := db.AirplaneFilter{
		Name: r.URL.Query().Get("name"),
		Type: r.URL.Query().Get("type"),
	}
	airplanes, err := h.Service.ListAirplanes(r.Context(), filter)
	if err != nil {
		utils.WriteError(w, err)
		return
	}

	views := make([]models.AirplaneListView, len(airplanes))
	for i := range airplanes {
		views[i] = airplanes[i].ToListView()
	}
	utils.WriteJSON(w, http.StatusOK, views)
}

func (h *Handler) GetAirplane(w http.ResponseWriter, r *http.Request) {
	airplane, err := h.Service.GetAirplane(r.Context(), chi.URLParam(r, "airplaneId"))
	if err != nil {
		utils.WriteError(w, err)
		return
	}
	utils.WriteJSON(w, http.StatusOK, airplane.ToListView())
}

// ---------------- CREWS ----------------

func (h *Handler) CreateCrew(w http.ResponseWriter, r *http.Request) {
	var req models.CrewRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request body: "+err.Error(), http.StatusBadRequest)
		return
	}

	crew, err := h.Service.CreateCrew(r.Context(), req)
	if err != nil {
		h.Logger.Error("API", fmt.Sprintf("CreateCrew: %v", err))
		utils.WriteError(w, err)
		return
	}
	utils.WriteJSON(w, http.StatusCreated, crew)
}

func (h *Handler) ListCrews(w http.ResponseWriter, r *http.Request) {
	crews, err := h.Service.ListCrews(r.Context(), r.URL.Query().Get("search"))
	if err != nil {
		utils.WriteError(w, err)
		return
	}

	views := make([]models.CrewListView, len(crews))
	for i := range crews {
		views[i] = crews[i].ToListView()
	}
	utils.WriteJSON(w, http.StatusOK, views)
}

func (h *Handler) GetCrew(w http.ResponseWriter, r *http.Request) {
	crew, err := h.Service.GetCrew(r.Context(), chi.URLParam(r, "crewId"))
	if err != nil {
		utils.WriteError(w, err)
		return
	}
	utils.WriteJSON(w, http.StatusOK, crew)
}
