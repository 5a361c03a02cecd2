// main.go
package main

import (
	"context"
	"log"
	"net/http"
	"time"

	"github.com/gorilla/mux"
	"go.uber.org/zap"

	"go-shop/config"
	"go-shop/controllers"
	"go-shop/middleware"
	"go-shop/repository"
	"go-shop/routes"
	"go-shop/services"
	"go-shop/utils"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatal(err)
	}

	zapLogger, err := zap.NewProduction()
	if err != nil {
		log.Fatal(err)
	}
	defer zapLogger.Sync() //nolint:errcheck
	logger := zapLogger.Sugar()

	// Connect to MongoDB
	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	client, err := repository.Connect(ctx, cfg.MongoURI)
	if err != nil {
		logger.Fatalw("failed to connect to MongoDB", "error", err)
	}
	defer func() {
		if err := client.Disconnect(context.Background()); err != nil {
			logger.Errorw("failed to disconnect from MongoDB", "error", err)
		}
	}()

	db := client.Database(cfg.MongoDB)
	if err := repository.EnsureIndexes(ctx, db); err != nil {
		logger.Fatalw("failed to create indexes", "error", err)
	}

	// Repositories
	userRepo := repository.NewUserRepository(db)
	productRepo := repository.NewProductRepository(db)
	cartRepo := repository.NewCartRepository(db)
	wishlistRepo := repository.NewWishlistRepository(db)
	orderRepo := repository.NewOrderRepository(db)
	blacklistRepo := repository.NewBlacklistRepository(db)

	// Outgoing mail
	var mailer utils.Notifier
	if cfg.SendGridAPIKey != "" {
		mailer = utils.NewSendGridNotifier(cfg.SendGridAPIKey, cfg.EmailSender)
	} else {
		logger.Warn("SENDGRID_API_KEY not set, outgoing mail disabled")
	}

	// Services
	tokenService := services.NewTokenService([]byte(cfg.JWTSecret), blacklistRepo)
	authService := services.NewAuthService(userRepo, tokenService, mailer, logger, services.AuthConfig{
		BaseURL:              cfg.BaseURL,
		VerificationTokenTTL: cfg.VerificationTokenTTL,
		SessionTokenTTL:      cfg.SessionTokenTTL,
	})
	productService := services.NewProductService(productRepo)
	cartService := services.NewCartService(cartRepo, productRepo)
	wishlistService := services.NewWishlistService(wishlistRepo, cartRepo, productRepo)
	orderService := services.NewOrderService(orderRepo, cartRepo, productRepo, mailer, logger, services.OrderConfig{
		InitialStatus: cfg.OrderInitialStatus,
	})

	// Controllers
	userController := controllers.NewUserController(authService)
	productController := controllers.NewProductController(productService)
	cartController := controllers.NewCartController(cartService)
	wishlistController := controllers.NewWishlistController(wishlistService)
	orderController := controllers.NewOrderController(orderService)

	// Router
	router := mux.NewRouter()
	router.Use(middleware.RequestLogger(logger))
	auth := middleware.NewAuth(tokenService)
	routes.RegisterRoutes(router, auth, userController, productController, cartController, wishlistController, orderController)

	logger.Infow("server starting", "port", cfg.Port)
	if err := http.ListenAndServe(":"+cfg.Port, router); err != nil {
		logger.Fatalw("server stopped", "error", err)
	}
}
