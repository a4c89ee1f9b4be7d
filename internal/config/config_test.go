package config

import (
	"testing"
	"time"
)

func TestDefaultConfig(t *testing.T) {
	cfg := defaultConfig()

	if cfg.Stock.AppID != "stock-management-app" {
		t.Errorf("Stock.AppID = %q, want stock-management-app", cfg.Stock.AppID)
	}
	if cfg.Pubsub.Name != "orders" {
		t.Errorf("Pubsub.Name = %q, want orders", cfg.Pubsub.Name)
	}
	if cfg.Sidecar.MaxRetries != 3 {
		t.Errorf("Sidecar.MaxRetries = %d, want 3", cfg.Sidecar.MaxRetries)
	}
	if cfg.Sidecar.RetryDelay != 2*time.Second {
		t.Errorf("Sidecar.RetryDelay = %v, want 2s", cfg.Sidecar.RetryDelay)
	}
	if cfg.Secrets.Enabled() {
		t.Error("Secrets should be disabled by default")
	}
	if !cfg.Metrics.Enabled || cfg.Metrics.Address != ":9090" {
		t.Errorf("Metrics = %+v, want enabled on :9090", cfg.Metrics)
	}
}

func TestLoad(t *testing.T) {
	t.Run("defaults", func(t *testing.T) {
		cfg, err := Load()
		if err != nil {
			t.Fatalf("Load() unexpected error = %v", err)
		}
		if cfg.Stock.AppID != "stock-management-app" {
			t.Errorf("Stock.AppID = %q, want stock-management-app", cfg.Stock.AppID)
		}
		if cfg.Secrets.CacheTTL != 5*time.Minute {
			t.Errorf("Secrets.CacheTTL = %v, want 5m", cfg.Secrets.CacheTTL)
		}
	})

	t.Run("environment overrides", func(t *testing.T) {
		t.Setenv("STOCK_APP_ID", "stock-v2")
		t.Setenv("PUBSUB_NAME", "orderpubsub")
		t.Setenv("MAX_RETRIES", "5")
		t.Setenv("RETRY_DELAY", "500ms")
		t.Setenv("SECRETS_PREFIX", "shop/recommendation")
		t.Setenv("METRICS_ADDRESS", ":9191")

		cfg, err := Load()
		if err != nil {
			t.Fatalf("Load() unexpected error = %v", err)
		}
		if cfg.Stock.AppID != "stock-v2" {
			t.Errorf("Stock.AppID = %q, want stock-v2", cfg.Stock.AppID)
		}
		if cfg.Pubsub.Name != "orderpubsub" {
			t.Errorf("Pubsub.Name = %q, want orderpubsub", cfg.Pubsub.Name)
		}
		if cfg.Sidecar.MaxRetries != 5 {
			t.Errorf("Sidecar.MaxRetries = %d, want 5", cfg.Sidecar.MaxRetries)
		}
		if cfg.Sidecar.RetryDelay != 500*time.Millisecond {
			t.Errorf("Sidecar.RetryDelay = %v, want 500ms", cfg.Sidecar.RetryDelay)
		}
		if !cfg.Secrets.Enabled() {
			t.Error("Secrets should be enabled when a prefix is set")
		}
		if cfg.Metrics.Address != ":9191" {
			t.Errorf("Metrics.Address = %q, want :9191", cfg.Metrics.Address)
		}
	})

	t.Run("invalid value", func(t *testing.T) {
		t.Setenv("STOCK_APP_ID", "")
		t.Setenv("MAX_RETRIES", "-1")

		if _, err := Load(); err == nil {
			t.Error("Load() expected validation error, got nil")
		}
	})
}

func TestEnvTransformFunc(t *testing.T) {
	tests := []struct {
		key  string
		want string
	}{
		{"STOCK_APP_ID", "stock.app_id"},
		{"token_refresh_interval", "secrets.refresh_interval"},
		{"PATH", ""},
	}

	for _, tt := range tests {
		t.Run(tt.key, func(t *testing.T) {
			if got := envTransformFunc(tt.key); got != tt.want {
				t.Errorf("envTransformFunc(%q) = %q, want %q", tt.key, got, tt.want)
			}
		})
	}
}
