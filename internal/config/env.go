package config

import (
	"log/slog"

	"github.com/joho/godotenv"
)

// loadEnvFile loads environment variables from .env/.env.local files.
// Existing process environment variables are not overwritten. Absence of
// any env file is not an error.
func loadEnvFile() {
	for _, envPath := range []string{".env", ".env.local"} {
		if err := godotenv.Load(envPath); err == nil {
			slog.Debug("Loaded environment variables", "path", envPath)
			return
		}
	}
}
