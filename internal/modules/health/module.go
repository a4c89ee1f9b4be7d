// Package health serves the liveness and readiness checks used by the
// deployment platform. Both are static and never consult dependencies.
package health

import (
	"github.com/gaborage/go-bricks/app"
	"github.com/gaborage/go-bricks/logger"
	"github.com/gaborage/go-bricks/messaging"
	"github.com/gaborage/go-bricks/server"

	"github.com/gaborage/recommendation-service/internal/modules/health/handlers"
)

// Module registers /healthz and /ready.
type Module struct {
	handler *handlers.StatusHandler
	logger  logger.Logger
}

// NewModule creates a new health module instance.
func NewModule() *Module {
	return &Module{}
}

// Name returns the module name for registration.
func (m *Module) Name() string {
	return "health"
}

// Init initializes the module with application dependencies.
func (m *Module) Init(deps *app.ModuleDeps) error {
	m.logger = deps.Logger.WithFields(map[string]any{
		"module": "health",
	})
	m.handler = handlers.NewStatusHandler()
	m.logger.Info().Msg("Health module initialized")
	return nil
}

// RegisterRoutes registers the liveness and readiness endpoints.
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
	return nil
}
