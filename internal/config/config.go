package config

import (
	"log"
	"os"

	"github.com/joho/godotenv"
)

type Config struct {
	MongoURI     string
	MongoDB      string
	GeminiAPIKey string
	JWTSecret    string
	HTTPPort     string
	LogLevel     string
}

var AppConfig Config

func LoadConfig() {
	err := godotenv.Load() // Load .env file if it exists
	if err != nil {
		log.Println("No .env file found, relying on environment variables")
	}

	AppConfig = Config{
		MongoURI:     getEnv("MONGO_URI", ""),
		MongoDB:      getEnv("MONGO_DB", "remi"),
		GeminiAPIKey: getEnv("GEMINI_API_KEY", ""),
		JWTSecret:    getEnv("JWT_SECRET", ""),
		HTTPPort:     getEnv("HTTP_PORT", "3000"),
		LogLevel:     getEnv("LOG_LEVEL", "INFO"),
	}

	if AppConfig.MongoURI == "" {
		log.Fatal("MONGO_URI environment variable is required")
	}

	if AppConfig.GeminiAPIKey == "" {
		log.Fatal("GEMINI_API_KEY environment variable is required")
	}

	if AppConfig.JWTSecret == "" {
		log.Fatal("JWT_SECRET environment variable is required")
	}
}

func getEnv(key string, defaultValue string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return defaultValue
}
