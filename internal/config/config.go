// Package config loads the service-specific settings that sit next to the
// go-bricks application config: where the stock collaborator lives, how the
// sidecar is reached and where metrics are exposed.
package config

import (
	"time"
)

// Config holds the recommendation service settings.
type Config struct {
	Stock   StockConfig   `koanf:"stock"`
	Pubsub  PubsubConfig  `koanf:"pubsub"`
	Sidecar SidecarConfig `koanf:"sidecar"`
	Secrets SecretsConfig `koanf:"secrets"`
	Metrics MetricsConfig `koanf:"metrics"`
}

// StockConfig identifies the stock management collaborator.
type StockConfig struct {
	AppID string `koanf:"app_id" validate:"required"`
}

// PubsubConfig names the pubsub component carrying order events.
type PubsubConfig struct {
	Name string `koanf:"name" validate:"required"`
}

// SidecarConfig controls how the Dapr client is dialed.
type SidecarConfig struct {
	// Address is the sidecar gRPC address. Empty means the SDK default
	// (DAPR_GRPC_ENDPOINT / DAPR_GRPC_PORT).
	Address    string        `koanf:"address"`
	MaxRetries int           `koanf:"max_retries" validate:"gte=0"`
	RetryDelay time.Duration `koanf:"retry_delay" validate:"gte=0"`
}

// SecretsConfig configures the optional AWS Secrets Manager token source.
type SecretsConfig struct {
	Prefix          string        `koanf:"prefix"`
	CacheTTL        time.Duration `koanf:"cache_ttl" validate:"gt=0"`
	CacheMaxSize    int           `koanf:"cache_max_size" validate:"gt=0"`
	EndpointURL     string        `koanf:"endpoint_url" validate:"omitempty,url"`
	RefreshInterval time.Duration `koanf:"refresh_interval" validate:"gt=0"`
}

// Enabled reports whether a secrets prefix was configured.
func (s SecretsConfig) Enabled() bool {
	return s.Prefix != ""
}

// MetricsConfig configures the Prometheus listener.
type MetricsConfig struct {
	Enabled bool   `koanf:"enabled"`
	Address string `koanf:"address" validate:"required_if=Enabled true"`
}

func defaultConfig() *Config {
	return &Config{
		Stock: StockConfig{
			AppID: "stock-management-app",
		},
		Pubsub: PubsubConfig{
			Name: "orders",
		},
		Sidecar: SidecarConfig{
			MaxRetries: 3,
			RetryDelay: 2 * time.Second,
		},
		Secrets: SecretsConfig{
			CacheTTL:        5 * time.Minute,
			CacheMaxSize:    16,
			RefreshInterval: 5 * time.Minute,
		},
		Metrics: MetricsConfig{
			Enabled: true,
			Address: ":9090",
		},
	}
}
