// Package analytics captures client-reported product interactions.
package analytics

import (
	"github.com/gaborage/go-bricks/app"
	"github.com/gaborage/go-bricks/logger"
	"github.com/gaborage/go-bricks/messaging"
	"github.com/gaborage/go-bricks/server"

	"github.com/gaborage/recommendation-service/internal/modules/analytics/handlers"
	"github.com/gaborage/recommendation-service/internal/modules/analytics/service"
	"github.com/gaborage/recommendation-service/internal/modules/analytics/sink"
)

// Module exposes POST /interactions.
type Module struct {
	service *service.AnalyticsService
	handler *handlers.AnalyticsHandler
	logger  logger.Logger
}

// NewModule creates a new analytics module instance.
func NewModule() *Module {
	return &Module{}
}

// Name returns the module name for registration.
func (m *Module) Name() string {
	return "analytics"
}

// Init initializes the module with application dependencies.
func (m *Module) Init(deps *app.ModuleDeps) error {
	m.logger = deps.Logger.WithFields(map[string]any{
		"module": "analytics",
	})

	m.service = service.NewService(sink.NewLogSink(m.logger), m.logger)
	m.handler = handlers.NewAnalyticsHandler(m.service, m.logger)

	m.logger.Info().Msg("Analytics module initialized successfully")
	return nil
}

// RegisterRoutes registers HTTP endpoints for analytics operations.
func (m *Module) RegisterRoutes(hr *server.HandlerRegistry, r server.RouteRegistrar) {
	m.handler.RegisterRoutes(hr, r)
}

// DeclareMessaging declares messaging infrastructure for this module.
func (m *Module) DeclareMessaging(_ *messaging.Declarations) {}

// RegisterJobs registers scheduled jobs for this module.
func (m *Module) RegisterJobs(_ app.JobRegistrar) error {
	return nil
}

// Shutdown performs cleanup when the module is stopped.
func (m *Module) Shutdown() error {
	m.logger.Info().Msg("Shutting down analytics module")
	return nil
}
