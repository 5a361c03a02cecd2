// routes/routes.go
package routes

import (
	"github.com/gorilla/mux"

	"go-shop/controllers"
	"go-shop/middleware"
)

// RegisterRoutes sets up all the routes for the application.
func RegisterRoutes(
	router *mux.Router,
	auth *middleware.Auth,
	userController *controllers.UserController,
	productController *controllers.ProductController,
	cartController *controllers.CartController,
	wishlistController *controllers.WishlistController,
	orderController *controllers.OrderController,
) {
	// Public auth routes
	router.HandleFunc("/auth/register", userController.Register).Methods("POST")
	router.HandleFunc("/auth/login", userController.Login).Methods("POST")
	router.HandleFunc("/auth/verify", userController.VerifyEmail).Methods("GET")
	router.HandleFunc("/auth/forgot-password", userController.ForgotPassword).Methods("POST")
	router.HandleFunc("/auth/reset-password/{token}", userController.ResetPassword).Methods("POST")

	// Public catalog reads
	router.HandleFunc("/products", productController.GetProducts).Methods("GET")
	router.HandleFunc("/products/{id}", productController.GetProductByID).Methods("GET")

	// Session-bearing routes
	protected := router.NewRoute().Subrouter()
	protected.Use(auth.Authenticate)
	protected.HandleFunc("/auth/logout", userController.Logout).Methods("POST")
	protected.HandleFunc("/profile", userController.GetProfile).Methods("GET")
	protected.HandleFunc("/profile", userController.UpdateProfile).Methods("PUT")

	protected.HandleFunc("/cart", cartController.GetCart).Methods("GET")
	protected.HandleFunc("/cart/add/{product_id}", cartController.AddToCart).Methods("POST")
	protected.HandleFunc("/cart/update/{product_id}", cartController.UpdateQuantity).Methods("PUT")
	protected.HandleFunc("/cart/remove/{product_id}", cartController.RemoveFromCart).Methods("DELETE")
	protected.HandleFunc("/cart/clear", cartController.ClearCart).Methods("DELETE")

	protected.HandleFunc("/wishlist", wishlistController.GetWishlist).Methods("GET")
	protected.HandleFunc("/wishlist/add/{product_id}", wishlistController.AddToWishlist).Methods("POST")
	protected.HandleFunc("/wishlist/remove/{product_id}", wishlistController.RemoveFromWishlist).Methods("DELETE")
	protected.HandleFunc("/wishlist/move-to-cart/{product_id}", wishlistController.MoveToCart).Methods("POST")

	protected.HandleFunc("/orders/place", orderController.PlaceOrder).Methods("POST")
	protected.HandleFunc("/orders/my-orders", orderController.GetOrders).Methods("GET")
	protected.HandleFunc("/orders/cancel/{id}", orderController.CancelOrder).Methods("DELETE")

	// Admin routes
	admin := router.NewRoute().Subrouter()
	admin.Use(auth.Authenticate)
	admin.Use(auth.RequireAdmin)
	admin.HandleFunc("/products", productController.CreateProduct).Methods("POST")
	admin.HandleFunc("/products/{name}", productController.UpdateProduct).Methods("PUT")
	admin.HandleFunc("/products/{name}", productController.DeleteProduct).Methods("DELETE")
	admin.HandleFunc("/orders/all", orderController.GetAllOrders).Methods("GET")
	admin.HandleFunc("/orders/update-status/{id}", orderController.UpdateOrderStatus).Methods("PUT")
}
