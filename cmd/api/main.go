// Package main is the entry point for the recommendation service.
package main

import (
	"context"
	"time"

	"github.com/gaborage/go-bricks/app"
	"github.com/gaborage/go-bricks/logger"

	"github.com/gaborage/recommendation-service/internal/config"
	"github.com/gaborage/recommendation-service/internal/metrics"
	"github.com/gaborage/recommendation-service/internal/modules/analytics"
	"github.com/gaborage/recommendation-service/internal/modules/health"
	"github.com/gaborage/recommendation-service/internal/modules/recommendations"
	"github.com/gaborage/recommendation-service/internal/modules/shared/secrets"
	"github.com/gaborage/recommendation-service/internal/modules/shared/sidecar"
)

func main() {
	application, log, err := app.New()
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to initialize application")
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to load service configuration")
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// The connector takes an interface; keep it untyped-nil when secrets are off.
	var tokens *secrets.AWSTokenSource
	var tokenSource sidecar.TokenSource
	if cfg.Secrets.Enabled() {
		tokens, err = secrets.NewAWSTokenSource(ctx, log, cfg.Secrets)
		if err != nil {
			log.Fatal().Err(err).Msg("Failed to initialize sidecar token source")
		}
		tokenSource = tokens
	}

	connector := sidecar.NewConnector(cfg.Sidecar, tokenSource, log)
	go func() {
		if err := connector.Warm(ctx); err != nil {
			log.Warn().Err(err).Msg("Sidecar not reachable at startup, will dial on first request")
		}
	}()

	var metricsServer *metrics.Server
	if cfg.Metrics.Enabled {
		metricsServer = metrics.NewServer(cfg.Metrics.Address)
		go func() {
			log.Info().Str("address", cfg.Metrics.Address).Msg("Serving metrics")
			if err := metricsServer.Start(); err != nil {
				log.Error().Err(err).Msg("Metrics server stopped")
			}
		}()
	}

	if err := registerModules(application, getModulesToLoad(cfg, connector, tokens), log); err != nil {
		log.Fatal().Err(err).Msg("Failed to register modules")
	}

	runErr := application.Run()

	cancel()
	if metricsServer != nil {
		shutdownCtx, done := context.WithTimeout(context.Background(), 5*time.Second)
		if err := metricsServer.Shutdown(shutdownCtx); err != nil {
			log.Warn().Err(err).Msg("Failed to stop metrics server")
		}
		done()
	}

	if runErr != nil {
		log.Fatal().Err(runErr).Msg("Failed to start application")
	}
}

type ModuleConfig struct {
	Name    string
	Enabled bool
	Module  app.Module
}

func getModulesToLoad(cfg *config.Config, connector *sidecar.Connector, tokens *secrets.AWSTokenSource) []ModuleConfig {
	return []ModuleConfig{
		{
			Name:    "health",
			Enabled: true,
			Module:  health.NewModule(),
		},
		{
			Name:    "recommendations",
			Enabled: true,
			Module:  recommendations.NewModule(cfg, connector, tokens),
		},
		{
			Name:    "analytics",
			Enabled: true,
			Module:  analytics.NewModule(),
		},
	}
}

func registerModules(appInstance *app.App, modules []ModuleConfig, log logger.Logger) error {
	for _, mod := range modules {
		if !mod.Enabled {
			log.Info().Str("module", mod.Name).Msg("Module is disabled, skipping registration")
			continue
		}

		if err := appInstance.RegisterModule(mod.Module); err != nil {
			return err
		}
		log.Info().Str("module", mod.Name).Msg("Module registered")
	}

	return nil
}
