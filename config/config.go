package config

import (
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

type Config struct {
	Port    string
	GinMode string

	MongoURI string
	MongoDB  string

	JWTSecret     string
	JWTExpiresHrs int

	OpenRouterAPIKey  string
	OpenRouterBaseURL string
	OpenRouterModel   string

	S3Region      string
	S3Bucket      string
	CloudFrontURL string

	LogLevel string
}

// Load reads .env (if present) and builds the runtime configuration.
// Missing optional values fall back to the defaults the frontend expects.
func Load() *Config {
	_ = godotenv.Load()

	return &Config{
		Port:    getEnv("PORT", "5000"),
		GinMode: getEnv("GIN_MODE", "debug"),

		MongoURI: getEnv("MONGODB_URI", "mongodb://localhost:27017"),
		MongoDB:  getEnv("MONGODB_DB", "bitewise-vlm"),

		JWTSecret:     getEnv("JWT_SECRET", "default_jwt_secret"),
		JWTExpiresHrs: getEnvInt("JWT_EXPIRES_HOURS", 168),

		OpenRouterAPIKey:  getEnv("OPENROUTER_API_KEY", ""),
		OpenRouterBaseURL: getEnv("OPENROUTER_BASE_URL", "https://openrouter.ai/api/v1/chat/completions"),
		OpenRouterModel:   getEnv("OPENROUTER_MODEL", "google/gemini-2.0-flash-exp:free"),

		S3Region:      getEnv("S3_REGION", getEnv("AWS_REGION", "us-east-1")),
		S3Bucket:      getEnv("S3_BUCKET", ""),
		CloudFrontURL: getEnv("CLOUDFRONT_URL", ""),

		LogLevel: getEnv("LOG_LEVEL", "info"),
	}
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return fallback
}
