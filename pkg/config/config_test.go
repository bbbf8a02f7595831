package config

import (
	"os"
	"testing"
	"time"
)

func TestLoad_Success(t *testing.T) {
	setMinimalEnv(t)

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() returned unexpected error: %v", err)
	}

	if cfg.App.Env != "production" {
		t.Fatalf("expected App.Env to be production, got %q", cfg.App.Env)
	}
	if !cfg.App.IsProd() {
		t.Fatal("expected IsProd for a production env")
	}

	if cfg.Redis.URL != "redis://localhost:6379/0" {
		t.Fatalf("unexpected Redis URL: %q", cfg.Redis.URL)
	}

	if cfg.Catalog.UpstreamURL != "http://catalog.internal:9000" {
		t.Fatalf("unexpected upstream URL: %q", cfg.Catalog.UpstreamURL)
	}
	if cfg.Catalog.FetchTimeout != 10*time.Second {
		t.Fatalf("expected default fetch timeout 10s, got %v", cfg.Catalog.FetchTimeout)
	}
	if cfg.Catalog.RefreshInterval != 5*time.Minute {
		t.Fatalf("expected default refresh interval 5m, got %v", cfg.Catalog.RefreshInterval)
	}

	if got := cfg.Session.TTL(); got != 43200*time.Minute {
		t.Fatalf("expected default session ttl, got %v", got)
	}
	if cfg.Cart.SnapshotTTL != 720*time.Hour {
		t.Fatalf("expected default snapshot ttl 720h, got %v", cfg.Cart.SnapshotTTL)
	}
	if cfg.Checkout.TaxRate != "0.08" {
		t.Fatalf("expected default tax rate, got %q", cfg.Checkout.TaxRate)
	}
}

func TestLoad_MissingRequired(t *testing.T) {
	setMinimalEnv(t)
	if err := os.Unsetenv("STOREFRONT_APP_ENV"); err != nil {
		t.Fatalf("failed to unset STOREFRONT_APP_ENV: %v", err)
	}

	if _, err := Load(); err == nil {
		t.Fatal("expected missing required env to return an error")
	}
}

func setMinimalEnv(t *testing.T) {
	t.Helper()

	t.Setenv("STOREFRONT_APP_ENV", "production")
	t.Setenv("STOREFRONT_APP_PORT", "8081")
	t.Setenv("STOREFRONT_CATALOG_UPSTREAM_URL", "http://catalog.internal:9000")
	t.Setenv("STOREFRONT_REDIS_URL", "redis://localhost:6379/0")
	t.Setenv("STOREFRONT_SESSION_SECRET", "config-test-secret")
}

func TestAppEnvHelpers(t *testing.T) {
	app := AppConfig{Env: "Development"}
	if !app.IsDev() || app.IsProd() {
		t.Fatalf("expected a dev environment, got dev=%v prod=%v", app.IsDev(), app.IsProd())
	}
	app.Env = "PRODUCTION"
	if app.IsDev() || !app.IsProd() {
		t.Fatalf("expected a prod environment, got dev=%v prod=%v", app.IsDev(), app.IsProd())
	}
}
