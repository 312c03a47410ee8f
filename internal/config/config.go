package config

import (
	"os"
)

type Config struct {
	// Supabase
	SupabaseURL            string
	SupabasePublishableKey string
	SupabaseJWTSecret      string
	SupabaseStorageBucket  string

	// Database
	DatabaseURL string

	// Server
	Port           string
	Environment    string
	AllowedOrigins string
}

func Load() *Config {
	return &Config{
		SupabaseURL:            getEnv("SUPABASE_URL", ""),
		SupabasePublishableKey: getEnv("SUPABASE_PUBLISHABLE_KEY", ""),
		SupabaseJWTSecret:      getEnv("SUPABASE_JWT_SECRET", ""),
		SupabaseStorageBucket:  getEnv("SUPABASE_STORAGE_BUCKET", "generated-media"),

		DatabaseURL: getEnv("DATABASE_URL", ""),

		Port:           getEnv("PORT", "8080"),
		Environment:    getEnv("ENVIRONMENT", "development"),
		AllowedOrigins: getEnv("ALLOWED_ORIGINS", "http://localhost:3000"),
	}
}

// IsSupabaseConfigured reports whether the remote backend can be reached.
// When false the server runs in degraded mode: auth and persistence
// operations fail fast and credit changes stay in memory only.
func (c *Config) IsSupabaseConfigured() bool {
	return c.SupabaseURL != "" && c.SupabasePublishableKey != ""
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
