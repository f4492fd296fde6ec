// Package config loads server configuration from the environment.
package config

import (
	"os"

	"github.com/joho/godotenv"
)

// Config holds all runtime configuration for the server.
type Config struct {
	DatabasePath string
	DataDir      string // attachment storage
	FrontendURL  string
	DevMode      bool

	SMTPHost string
	SMTPPort string
	SMTPUser string
	SMTPPass string
	SMTPFrom string

	OpenAIKey string
}

// FromEnv creates a Config from environment variables. A .env file in the
// working directory is loaded first if present; real environment variables
// win over .env entries.
func FromEnv() Config {
	// godotenv.Load never overrides variables already set in the environment.
	_ = godotenv.Load()

	return Config{
		DatabasePath: firstEnv("RENTROLL_DB", "DATABASE_URL"),
		DataDir:      envOrDefault("RENTROLL_DATA_DIR", "./data"),
		FrontendURL:  envOrDefault("FRONTEND_URL", "http://localhost:3000"),
		DevMode:      os.Getenv("RENTROLL_DEV_MODE") == "true",

		SMTPHost: os.Getenv("SMTP_HOST"),
		SMTPPort: envOrDefault("SMTP_PORT", "587"),
		SMTPUser: os.Getenv("SMTP_USER"),
		SMTPPass: os.Getenv("SMTP_PASS"),
		SMTPFrom: os.Getenv("SMTP_FROM"),

		OpenAIKey: os.Getenv("OPENAI_API_KEY"),
	}
}

func envOrDefault(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func firstEnv(keys ...string) string {
	for _, k := range keys {
		if v := os.Getenv(k); v != "" {
			return v
		}
	}
	return ""
}
