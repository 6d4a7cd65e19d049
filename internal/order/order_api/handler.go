package order_api

import (
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/go-chi/chi/v5"

	"airport-booking/internal/auth"
	"airport-booking/internal/logger"
	"airport-booking/internal/models"
	"airport-booking/internal/order"
	"airport-booking/internal/utils"
)

type Handler struct {
	OrderService *order.OrderService
	Logger       *logger.Logger
}

func NewHandler(orderService *order.OrderService, log *logger.Logger) *Handler {
	return &Handler{OrderService: orderService, Logger: log}
}

// RegisterRoutes mounts the order resource. Every route is owner-scoped:
// the subject from the bearer token is the only user whose orders are
// visible or writable.
func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Route("/orders", func(r chi.Router) {
		r.Post("/", h.PlaceOrder)
		r.Get("/", h.ListOrders)
		r.Get("/{orderId}", h.GetOrder)
	})
}

func (h *Handler) PlaceOrder(w http.ResponseWriter, r *http.Request) {
	userID := auth.UserID(r.Context())
	if userID == "" {
		http.Error(w, "missing authentication", http.StatusUnauthorized)
		return
	}

	var req models.OrderRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.Logger.Error("API", fmt.Sprintf("PlaceOrder: failed to decode request body: %v", err))
		http.Error(w, "Invalid request body: "+err.Error(), http.StatusBadRequest)
		return
	}

	response, err := h.OrderService.PlaceOrder(r.Context(), userID, req)
	if err != nil {
		h.Logger.Error("API", fmt.Sprintf("PlaceOrder: %v", err))
		utils.WriteError(w, err)
		return
	}

	h.Logger.LogOrder("CREATE", response.OrderID, fmt.Sprintf("%d tickets issued for user %s", len(response.Tickets), userID))
	utils.WriteJSON(w, http.StatusCreated, response)
}

func (h *Handler) GetOrder(w http.ResponseWriter, r *http.Request) {
	userID := auth.UserID(r.Context())
	if userID == "" {
		http.Error(w, "missing authentication", http.StatusUnauthorized)
		return
	}

	orderID := chi.URLParam(r, "orderId")
	response, err := h.OrderService.GetOrder(r.Context(), userID, orderID)
	if err != nil {
		utils.WriteError(w, err)
		return
	}
	utils.WriteJSON(w, http.StatusOK, response)
}

func (h *Handler) ListOrders(w http.ResponseWriter, r *http.Request) {
	userID := auth.UserID(r.Context())
	if userID == "" {
		http.Error(w, "missing authentication", http.StatusUnauthorized)
		return
	}

	responses, err := h.OrderService.ListOrders(r.Context(), userID)
	if err != nil {
		h.Logger.Error("API", fmt.Sprintf("ListOrders: %v", err))
		utils.WriteError(w, err)
		return
	}
	utils.WriteJSON(w, http.StatusOK, responses)
}
