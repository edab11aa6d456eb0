package config

import (
	"os"
	"strconv"

	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"
)

var (
	PORT        string
	DB_URL      string
	JWT_SECRET  string
	CORS_ORIGIN string
	APP_URL     string

	STRIPE_SECRET_KEY     string
	STRIPE_WEBHOOK_SECRET string

	GOOGLE_CLIENT_ID         string
	GOOGLE_CLIENT_SECRET     string
	GOOGLE_REDIRECT_URL      string
	GOOGLE_FRONTEND_REDIRECT string

	// Fixed USD per ETH conversion used when quoting crypto amounts.
	// A live price oracle is a deliberate non-goal for now.
	ETH_USD_RATE float64

	CHAIN_RPC_URL           string
	GALLERY_WALLET_ADDRESS  string
	CHAIN_MIN_CONFIRMATIONS uint64
	CHAIN_POLL_SECONDS      int

	OFFER_DEFAULT_EXPIRY_DAYS int
)

func LoadEnv() {
	if err := godotenv.Load(); err != nil {
		logrus.Info("No .env file found. Using system environment variables.")
	}

	PORT = getEnv("PORT", "8080")
	DB_URL = mustEnv("DB_URL")
	JWT_SECRET = mustEnv("JWT_SECRET")
	CORS_ORIGIN = getEnv("CORS_ORIGIN", "http://localhost:5173")
	APP_URL = getEnv("APP_URL", "http://localhost:5173")

	STRIPE_SECRET_KEY = getEnv("STRIPE_SECRET_KEY", "")
	STRIPE_WEBHOOK_SECRET = getEnv("STRIPE_WEBHOOK_SECRET", "")

	GOOGLE_CLIENT_ID = getEnv("GOOGLE_CLIENT_ID", "")
	GOOGLE_CLIENT_SECRET = getEnv("GOOGLE_CLIENT_SECRET", "")
	GOOGLE_REDIRECT_URL = getEnv("GOOGLE_REDIRECT_URL", "")
	GOOGLE_FRONTEND_REDIRECT = getEnv("GOOGLE_FRONTEND_REDIRECT", "")

	ETH_USD_RATE = getEnvFloat("ETH_USD_RATE", 3500)

	CHAIN_RPC_URL = getEnv("CHAIN_RPC_URL", "")
	GALLERY_WALLET_ADDRESS = getEnv("GALLERY_WALLET_ADDRESS", "")
	CHAIN_MIN_CONFIRMATIONS = uint64(getEnvInt("CHAIN_MIN_CONFIRMATIONS", 3))
	CHAIN_POLL_SECONDS = getEnvInt("CHAIN_POLL_SECONDS", 30)

	OFFER_DEFAULT_EXPIRY_DAYS = getEnvInt("OFFER_DEFAULT_EXPIRY_DAYS", 7)
}

func mustEnv(key string) string {
	v, ok := os.LookupEnv(key)
	if !ok || v == "" {
		logrus.Fatalf("Missing required environment variable: %s", key)
	}
	return v
}

func getEnv(key string, fallback string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	if value, exists := os.LookupEnv(key); exists {
		if n, err := strconv.Atoi(value); err == nil {
			return n
		}
		logrus.Warnf("Ignoring non-numeric %s=%q", key, value)
	}
	return fallback
}

func getEnvFloat(key string, fallback float64) float64 {
	if value, exists := os.LookupEnv(key); exists {
		if f, err := strconv.ParseFloat(value, 64); err == nil && f > 0 {
			return f
		}
		logrus.Warnf("Ignoring invalid %s=%q", key, value)
	}
	return fallback
}
