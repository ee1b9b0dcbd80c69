package config

import "testing"

func TestLoadRequiresStoreURL(t *testing.T) {
	t.Setenv("STORE_URL", "")
	t.Setenv("STORE_API_KEY", "secret")

	if _, err := Load(); err == nil {
		t.Fatal("expected error when STORE_URL is unset")
	}
}

func TestLoadRequiresStoreAPIKey(t *testing.T) {
	t.Setenv("STORE_URL", "https://store.example.com")
	t.Setenv("STORE_API_KEY", "")

	if _, err := Load(); err == nil {
		t.Fatal("expected error when STORE_API_KEY is unset")
	}
}

func TestLoadAppliesDefaults(t *testing.T) {
	t.Setenv("STORE_URL", "https://store.example.com")
	t.Setenv("STORE_API_KEY", "secret")
	t.Setenv("PORT", "")
	t.Setenv("ENV", "")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.Port != "8080" {
		t.Errorf("expected default port 8080, got %s", cfg.Port)
	}
	if cfg.Env != "production" {
		t.Errorf("expected default env production, got %s", cfg.Env)
	}
	if cfg.IsDev() {
		t.Error("expected IsDev to be false by default")
	}
}

func TestLoadReadsEnvironment(t *testing.T) {
	t.Setenv("STORE_URL", "https://store.example.com/api")
	t.Setenv("STORE_API_KEY", "key-123")
	t.Setenv("PORT", "9090")
	t.Setenv("ENV", "development")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.StoreURL != "https://store.example.com/api" {
		t.Errorf("unexpected store URL: %s", cfg.StoreURL)
	}
	if cfg.StoreAPIKey != "key-123" {
		t.Errorf("unexpected api key: %s", cfg.StoreAPIKey)
	}
	if cfg.Port != "9090" {
		t.Errorf("unexpected port: %s", cfg.Port)
	}
	if !cfg.IsDev() {
		t.Error("expected IsDev to be true")
	}
}
