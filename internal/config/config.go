package config

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
)

// Config holds the environment-supplied settings for the gateway process.
// The member store base URL and API key are never hardcoded.
type Config struct {
	Env         string
	Port        string
	StoreURL    string
	StoreAPIKey string
}

// Load reads configuration from the environment, honoring a .env file when
// one is present.
func Load() (*Config, error) {
	// A missing .env file is fine; real deployments inject the environment.
	_ = godotenv.Load()

	cfg := &Config{
		Env:         getenv("ENV", "production"),
		Port:        getenv("PORT", "8080"),
		StoreURL:    os.Getenv("STORE_URL"),
		StoreAPIKey: os.Getenv("STORE_API_KEY"),
	}

	if cfg.StoreURL == "" {
		return nil, fmt.Errorf("environment variable STORE_URL is not set")
	}
	if cfg.StoreAPIKey == "" {
		return nil, fmt.Errorf("environment variable STORE_API_KEY is not set")
	}
	return cfg, nil
}

// IsDev reports whether the process runs in a development environment.
func (c *Config) IsDev() bool {
	return c.Env == "development"
}

func getenv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
