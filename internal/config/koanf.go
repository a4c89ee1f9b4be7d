package config

import (
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/structs"
	"github.com/knadh/koanf/v2"
)

// envMappings maps environment variable names (lowercased) to config keys.
// Unlisted variables are ignored.
var envMappings = map[string]string{
	"stock_app_id":           "stock.app_id",
	"pubsub_name":            "pubsub.name",
	"dapr_grpc_address":      "sidecar.address",
	"max_retries":            "sidecar.max_retries",
	"retry_delay":            "sidecar.retry_delay",
	"secrets_prefix":         "secrets.prefix",
	"secrets_cache_ttl":      "secrets.cache_ttl",
	"secrets_cache_max_size": "secrets.cache_max_size",
	"aws_endpoint_url":       "secrets.endpoint_url",
	"token_refresh_interval": "secrets.refresh_interval",
	"metrics_enabled":        "metrics.enabled",
	"metrics_address":        "metrics.address",
}

// Load builds the configuration from defaults overridden by environment
// variables, then validates it.
func Load() (*Config, error) {
	k := koanf.New(".")

	if err := k.Load(structs.Provider(defaultConfig(), "koanf"), nil); err != nil {
		return nil, fmt.Errorf("failed to load defaults: %w", err)
	}

	if err := k.Load(env.Provider("", ".", envTransformFunc), nil); err != nil {
		return nil, fmt.Errorf("failed to load environment variables: %w", err)
	}

	cfg := &Config{}
	if err := k.Unmarshal("", cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal configuration: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return cfg, nil
}

// Validate checks field constraints.
func (c *Config) Validate() error {
	return validator.New().Struct(c)
}

func envTransformFunc(key string) string {
	return envMappings[strings.ToLower(key)]
}
