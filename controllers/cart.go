package controllers

import (
	"encoding/json"
	"net/http"

	"github.com/gorilla/mux"

	"go-shop/middleware"
	"go-shop/services"
)

// CartController handles cart requests. All routes require
// authentication.
type CartController struct {
	carts services.CartService
}

// NewCartController creates a new CartController.
func NewCartController(carts services.CartService) *CartController {
	return &CartController{carts: carts}
}

// AddToCart adds one unit of a product to the user's cart.
func (cc *CartController) AddToCart(w http.ResponseWriter, r *http.Request) {
	claims, ok := middleware.ClaimsFrom(r.Context())
	if !ok {
		respondMessage(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	if err := cc.carts.Add(r.Context(), claims.Email(), mux.Vars(r)["product_id"]); err != nil {
		respondError(w, err)
		return
	}
	respondMessage(w, http.StatusOK, "Product added to cart")
}

// GetCart returns the user's cart lines.
func (cc *CartController) GetCart(w http.ResponseWriter, r *http.Request) {
	claims, ok := middleware.ClaimsFrom(r.Context())
	if !ok {
		respondMessage(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	items, err := cc.carts.Items(r.Context(), claims.Email())
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, map[string]interface{}{
		"cart_items":  items,
		"total_items": len(items),
	})
}

// UpdateQuantity sets the quantity of one cart line.
func (cc *CartController) UpdateQuantity(w http.ResponseWriter, r *http.Request) {
	claims, ok := middleware.ClaimsFrom(r.Context())
	if !ok {
		respondMessage(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	var payload struct {
		Quantity int `json:"quantity"`
	}
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		respondMessage(w, http.StatusBadRequest, "Invalid input")
		return
	}

	err := cc.carts.UpdateQuantity(r.Context(), claims.Email(), mux.Vars(r)["product_id"], payload.Quantity)
	if err != nil {
		respondError(w, err)
		return
	}
	respondMessage(w, http.StatusOK, "Cart updated successfully")
}

// RemoveFromCart deletes one cart line.
func (cc *CartController) RemoveFromCart(w http.ResponseWriter, r *http.Request) {
	claims, ok := middleware.ClaimsFrom(r.Context())
	if !ok {
		respondMessage(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	if err := cc.carts.Remove(r.Context(), claims.Email(), mux.Vars(r)["product_id"]); err != nil {
		respondError(w, err)
		return
	}
	respondMessage(w, http.StatusOK, "Product removed from cart")
}

// ClearCart deletes every line in the user's cart.
func (cc *CartController) ClearCart(w http.ResponseWriter, r *http.Request) {
	claims, ok := middleware.ClaimsFrom(r.Context())
	if !ok {
		respondMessage(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	if err := cc.carts.Clear(r.Context(), claims.Email()); err != nil {
		respondError(w, err)
		return
	}
	respondMessage(w, http.StatusOK, "Cart cleared successfully")
}
