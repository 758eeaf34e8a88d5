package config

import (
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// Config holds all server configuration, loaded from the environment with
// development defaults.
type Config struct {
	Port      string
	MongoURI  string
	MongoDB   string
	RedisAddr string

	OwnerUsername string
	OwnerPassword string
	JWTSecret     string

	InsightTTL time.Duration

	CORSAllowedOrigins string
	CORSAllowedMethods string
	CORSAllowedHeaders string
}

// Load reads configuration from a .env file (when present) and the
// environment.
func Load() *Config {
	// Missing .env is fine; the environment still applies.
	_ = godotenv.Load()

	return &Config{
		Port:      getEnvOrDefault("PORT", "8080"),
		MongoURI:  getEnvOrDefault("MONGO_URI", "mongodb://localhost:27017"),
		MongoDB:   getEnvOrDefault("MONGO_DB", "pulsepoll"),
		RedisAddr: getEnvOrDefault("REDIS_ADDR", "localhost:6379"),

		OwnerUsername: getEnvOrDefault("OWNER_USERNAME", "admin"),
		OwnerPassword: getEnvOrDefault("OWNER_PASSWORD", "password123"),
		JWTSecret:     getEnvOrDefault("JWT_SECRET", "dev-secret-change-in-production"),

		InsightTTL: getEnvDuration("INSIGHT_CACHE_TTL_MIN", 15),

		CORSAllowedOrigins: getEnvOrDefault("CORS_ALLOWED_ORIGINS", "*"),
		CORSAllowedMethods: getEnvOrDefault("CORS_ALLOWED_METHODS", "GET, POST, PUT, DELETE, OPTIONS"),
		CORSAllowedHeaders: getEnvOrDefault("CORS_ALLOWED_HEADERS", "Content-Type, Authorization"),
	}
}

func getEnvOrDefault(key, defaultValue string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return defaultValue
}

func getEnvDuration(key string, defaultMinutes int) time.Duration {
	if v := os.Getenv(key); v != "" {
		if minutes, err := strconv.Atoi(v); err == nil && minutes > 0 {
			return time.Duration(minutes) * time.Minute
		}
	}
	return time.Duration(defaultMinutes) * time.Minute
}
