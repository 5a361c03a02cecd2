package controllers

import (
	"net/http"

	"github.com/gorilla/mux"

	"go-shop/middleware"
	"go-shop/services"
)

// WishlistController handles wishlist requests. All routes require
// authentication.
type WishlistController struct {
	wishlist services.WishlistService
}

// NewWishlistController creates a new WishlistController.
func NewWishlistController(wishlist services.WishlistService) *WishlistController {
	return &WishlistController{wishlist: wishlist}
}

// AddToWishlist adds a product to the user's wishlist.
func (wc *WishlistController) AddToWishlist(w http.ResponseWriter, r *http.Request) {
	claims, ok := middleware.ClaimsFrom(r.Context())
	if !ok {
		respondMessage(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	if err := wc.wishlist.Add(r.Context(), claims.Email(), mux.Vars(r)["product_id"]); err != nil {
		respondError(w, err)
		return
	}
	respondMessage(w, http.StatusOK, "Product added to wishlist")
}

// GetWishlist returns the user's wishlist.
func (wc *WishlistController) GetWishlist(w http.ResponseWriter, r *http.Request) {
	claims, ok := middleware.ClaimsFrom(r.Context())
	if !ok {
		respondMessage(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	items, err := wc.wishlist.Items(r.Context(), claims.Email())
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, map[string]interface{}{
		"wishlist":    items,
		"total_items": len(items),
	})
}

// RemoveFromWishlist deletes one wishlist entry.
func (wc *WishlistController) RemoveFromWishlist(w http.ResponseWriter, r *http.Request) {
	claims, ok := middleware.ClaimsFrom(r.Context())
	if !ok {
		respondMessage(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	if err := wc.wishlist.Remove(r.Context(), claims.Email(), mux.Vars(r)["product_id"]); err != nil {
		respondError(w, err)
		return
	}
	respondMessage(w, http.StatusOK, "Product removed from wishlist")
}

// MoveToCart moves a product from the wishlist into the cart.
func (wc *WishlistController) MoveToCart(w http.ResponseWriter, r *http.Request) {
	claims, ok := middleware.ClaimsFrom(r.Context())
	if !ok {
		respondMessage(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	if err := wc.wishlist.MoveToCart(r.Context(), claims.Email(), mux.Vars(r)["product_id"]); err != nil {
		respondError(w, err)
		return
	}
	respondMessage(w, http.StatusOK, "Product moved from wishlist to cart")
}
