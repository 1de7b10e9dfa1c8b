package config

import (
	"os"

	"github.com/joho/godotenv"
)

// Config carries every environment setting the server reads, resolved
// once at startup.
type Config struct {
	Port         string
	DatabaseURL  string
	CORSOrigin   string
	GeminiAPIKey string

	// External users service issuing and resolving session tokens.
	UsersServiceURL    string
	UsersServiceAPIKey string
}

// New loads .env (if present) and reads the environment. Missing or
// empty GeminiAPIKey is allowed here; the entry-creation endpoint
// reports it as a configuration error instead.
func New() *Config {
	_ = godotenv.Load()

	return &Config{
		Port:               getEnv("PORT", "8080"),
		DatabaseURL:        getEnv("DATABASE_URL", ""),
		CORSOrigin:         getEnv("CORS_ORIGIN", "*"),
		GeminiAPIKey:       getEnv("GEMINI_API_KEY", ""),
		UsersServiceURL:    getEnv("USERS_SERVICE_API_URL", ""),
		UsersServiceAPIKey: getEnv("USERS_SERVICE_API_KEY", ""),
	}
}

func getEnv(key, defaultVal string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultVal
}
