package config

import (
	"log"
	"os"

	"github.com/joho/godotenv"
)

var (
	PORT       string
	DB_URL     string
	JWT_SECRET string
	APP_ENV    string
	APP_URL    string

	// Two conventions exist across deployments; either env var carries the
	// identity-provider service account / project config.
	FIREBASE_CONFIG     string
	FIREBASE_PROJECT_ID string
	AUTH_DEV_BYPASS     bool

	GEMINI_API_KEY string

	TWITTER_CLIENT_ID     string
	TWITTER_CLIENT_SECRET string
	TWITTER_REDIRECT_URL  string

	// legacy OAuth 1.0a integration path
	TWITTER_CONSUMER_KEY    string
	TWITTER_CONSUMER_SECRET string
)

func LoadEnv() {
	err := godotenv.Load()
	if err != nil {
		log.Println("No .env file found. Using system environment variables.")
	}

	PORT = getEnv("PORT", "8080")
	DB_URL = mustEnv("DB_URL")
	JWT_SECRET = mustEnv("JWT_SECRET")
	APP_ENV = getEnv("APP_ENV", "development")
	APP_URL = getEnv("APP_URL", "http://localhost:5173")

	FIREBASE_CONFIG = getEnv("FIREBASE_CONFIG", os.Getenv("FIREBASE_SERVICE_ACCOUNT"))
	FIREBASE_PROJECT_ID = getEnv("FIREBASE_PROJECT_ID", "")
	AUTH_DEV_BYPASS = getEnv("AUTH_DEV_BYPASS", "") == "true" && APP_ENV == "development"

	GEMINI_API_KEY = getEnv("GEMINI_API_KEY", "")

	TWITTER_CLIENT_ID = getEnv("TWITTER_CLIENT_ID", "")
	TWITTER_CLIENT_SECRET = getEnv("TWITTER_CLIENT_SECRET", "")
	TWITTER_REDIRECT_URL = getEnv("TWITTER_REDIRECT_URL", "")

	TWITTER_CONSUMER_KEY = getEnv("TWITTER_CONSUMER_KEY", "")
	TWITTER_CONSUMER_SECRET = getEnv("TWITTER_CONSUMER_SECRET", "")
}

func mustEnv(key string) string {
	v, ok := os.LookupEnv(key)
	if !ok || v == "" {
		log.Fatalf("Missing required environment variable: %s", key)
	}
	return v
}

func getEnv(key string, fallback string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return fallback
}
