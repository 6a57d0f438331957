package config

import (
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

var AppEnv Config

type Config struct {
	MongoURI          string
	DBName            string
	Port              string
	BaseURL           string
	PaystackSecretKey string
	PaystackPublicKey string
	SessionSecret     string
	SessionTTL        time.Duration
	GatewayTimeout    time.Duration
}

func Load() {
	if err := godotenv.Load(); err != nil {
		log.Println(".env not loaded:", err)
	}
	AppEnv = Config{
		MongoURI:          getEnvOrDefault("MONGO_URI", "mongodb://localhost:27017"),
		DBName:            getEnvOrDefault("DB_NAME", "restaurant-chatbot"),
		Port:              getEnvOrDefault("PORT", "3000"),
		BaseURL:           getEnvOrDefault("BASE_URL", "http://localhost:3000"),
		PaystackSecretKey: getEnvOrDefault("PAYSTACK_SECRET_KEY", ""),
		PaystackPublicKey: getEnvOrDefault("PAYSTACK_PUBLIC_KEY", ""),
		SessionSecret:     getEnvOrDefault("SESSION_SECRET", "default-secret-change-in-production"),
		SessionTTL:        getDurationEnv("SESSION_TTL", 24, time.Hour),
		GatewayTimeout:    getDurationEnv("GATEWAY_TIMEOUT", 15, time.Second),
	}
}

func getEnvOrDefault(key, defaultValue string) string {
	if value := strings.TrimSpace(os.Getenv(key)); value != "" {
		return value
	}
	return defaultValue
}

func getDurationEnv(key string, defaultValue int, unit time.Duration) time.Duration {
	if value := strings.TrimSpace(os.Getenv(key)); value != "" {
		if parsed, err := strconv.Atoi(value); err == nil && parsed > 0 {
			return time.Duration(parsed) * unit
		}
	}
	return time.Duration(defaultValue) * unit
}
