package controllers

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"go-shop/middleware"
	"go-shop/services"
)

// OrderController handles order requests.
type OrderController struct {
	orders services.OrderService
}

// NewOrderController creates a new OrderController.
func NewOrderController(orders services.OrderService) *OrderController {
	return &OrderController{orders: orders}
}

// PlaceOrder converts the user's cart into an order.
func (oc *OrderController) PlaceOrder(w http.ResponseWriter, r *http.Request) {
	claims, ok := middleware.ClaimsFrom(r.Context())
	if !ok {
		respondMessage(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	order, err := oc.orders.PlaceOrder(r.Context(), claims.Email())
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusCreated, order)
}

// GetOrders returns the user's orders, newest first.
func (oc *OrderController) GetOrders(w http.ResponseWriter, r *http.Request) {
	claims, ok := middleware.ClaimsFrom(r.Context())
	if !ok {
		respondMessage(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	orders, err := oc.orders.Orders(r.Context(), claims.Email())
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, map[string]interface{}{
		"orders":       orders,
		"total_orders": len(orders),
	})
}

// CancelOrder cancels the user's own order while still Processing.
func (oc *OrderController) CancelOrder(w http.ResponseWriter, r *http.Request) {
	claims, ok := middleware.ClaimsFrom(r.Context())
	if !ok {
		respondMessage(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	order, err := oc.orders.CancelOrder(r.Context(), claims.Email(), mux.Vars(r)["id"])
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, order)
}

// GetAllOrders lists every order, paginated (admin only).
func (oc *OrderController) GetAllOrders(w http.ResponseWriter, r *http.Request) {
	page, _ := strconv.ParseInt(r.URL.Query().Get("page"), 10, 64)
	limit, _ := strconv.ParseInt(r.URL.Query().Get("limit"), 10, 64)

	orders, total, err := oc.orders.AllOrders(r.Context(), page, limit)
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, map[string]interface{}{
		"orders":       orders,
		"total_orders": total,
	})
}

// UpdateOrderStatus overwrites an order's status (admin only).
func (oc *OrderController) UpdateOrderStatus(w http.ResponseWriter, r *http.Request) {
	var payload struct {
		Status string `json:"status"`
	}
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		respondMessage(w, http.StatusBadRequest, "Invalid input")
		return
	}

	order, err := oc.orders.UpdateStatus(r.Context(), mux.Vars(r)["id"], payload.Status)
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, order)
}
