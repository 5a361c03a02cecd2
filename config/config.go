package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"

	"go-shop/models"
)

// Config carries everything the application reads from the environment.
type Config struct {
	Port      string
	MongoURI  string
	MongoDB   string
	JWTSecret string
	BaseURL   string

	SendGridAPIKey string
	EmailSender    string

	VerificationTokenTTL time.Duration
	SessionTokenTTL      time.Duration

	// OrderInitialStatus is assigned to newly placed orders.
	OrderInitialStatus string
}

// Load reads configuration from the environment, preferring a local
// .env file when present.
func Load() (*Config, error) {
	// A missing .env is fine; plain environment variables still apply.
	_ = godotenv.Load()

	cfg := &Config{
		Port:                 getEnv("PORT", "8000"),
		MongoURI:             os.Getenv("MONGO_URI"),
		MongoDB:              getEnv("MONGO_DB", "ecommerce"),
		JWTSecret:            os.Getenv("JWT_SECRET"),
		BaseURL:              getEnv("BASE_URL", "http://localhost:8000"),
		SendGridAPIKey:       os.Getenv("SENDGRID_API_KEY"),
		EmailSender:          os.Getenv("EMAIL_SENDER"),
		VerificationTokenTTL: time.Duration(getEnvAsInt("VERIFICATION_TOKEN_EXPIRE_HOURS", 1)) * time.Hour,
		SessionTokenTTL:      time.Duration(getEnvAsInt("SESSION_TOKEN_EXPIRE_HOURS", 24)) * time.Hour,
		OrderInitialStatus:   getEnv("ORDER_INITIAL_STATUS", models.StatusProcessing),
	}

	if cfg.MongoURI == "" {
		return nil, fmt.Errorf("MONGO_URI is not set")
	}
	if cfg.JWTSecret == "" {
		return nil, fmt.Errorf("JWT_SECRET is not set")
	}
	if !models.ValidStatus(cfg.OrderInitialStatus) {
		return nil, fmt.Errorf("ORDER_INITIAL_STATUS %q is not a valid order status", cfg.OrderInitialStatus)
	}

	return cfg, nil
}

func getEnv(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}

func getEnvAsInt(key string, fallback int) int {
	value := os.Getenv(key)
	if value == "" {
		return fallback
	}

	parsed, err := strconv.Atoi(value)
	if err != nil {
		return fallback
	}
	return parsed
}
