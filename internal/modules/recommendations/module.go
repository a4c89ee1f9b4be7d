// Package recommendations serves product recommendations and keeps the
// stock management popularity counters fed from processed orders.
package recommendations

import (
	"context"

	"github.com/gaborage/go-bricks/app"
	"github.com/gaborage/go-bricks/logger"
	"github.com/gaborage/go-bricks/messaging"
	"github.com/gaborage/go-bricks/server"

	"github.com/gaborage/recommendation-service/internal/config"
	"github.com/gaborage/recommendation-service/internal/modules/recommendations/handlers"
	"github.com/gaborage/recommendation-service/internal/modules/recommendations/job"
	"github.com/gaborage/recommendation-service/internal/modules/recommendations/service"
	"github.com/gaborage/recommendation-service/internal/modules/shared/secrets"
	"github.com/gaborage/recommendation-service/internal/modules/shared/stock"
)

// Sidecar is the connector contract the module relies on.
type Sidecar interface {
	Invoker(ctx context.Context) (stock.Invoker, error)
	RefreshToken(ctx context.Context) error
	Close()
}

// Module wires the stock client, recommendation service and handlers
type Module struct {
	cfg     *config.Config
	sidecar Sidecar
	tokens  *secrets.AWSTokenSource
	service *service.RecommendationService
	handler *handlers.RecommendationHandler
	logger  logger.Logger
}

// NewModule creates a new recommendations module. tokens may be nil when
// no secrets prefix is configured.
func NewModule(cfg *config.Config, sidecar Sidecar, tokens *secrets.AWSTokenSource) *Module {
	return &Module{
		cfg:     cfg,
		sidecar: sidecar,
		tokens:  tokens,
	}
}

// Name returns the module name for registration
func (m *Module) Name() string {
	return "recommendations"
}

// Init initializes the module with application dependencies
func (m *Module) Init(deps *app.ModuleDeps) error {
	m.logger = deps.Logger.WithFields(map[string]any{
		"module": "recommendations",
	})

	m.logger.Info().Msg("Initializing recommendations module")

	stockClient := stock.NewClient(m.cfg.Stock.AppID, m.sidecar.Invoker, m.logger)
	m.service = service.NewService(stockClient, m.logger)
	m.handler = handlers.NewRecommendationHandler(m.service, m.cfg.Pubsub.Name, m.logger)

	m.logger.Info().
		Str("stockAppID", m.cfg.Stock.AppID).
		Str("pubsub", m.cfg.Pubsub.Name).
		Msg("Recommendations module initialized successfully")

	return nil
}

// RegisterRoutes registers HTTP endpoints for recommendations and the topic subscription
func (m *Module) RegisterRoutes(hr *server.HandlerRegistry, r server.RouteRegistrar) {
	m.handler.RegisterRoutes(hr, r)
}

// DeclareMessaging declares messaging infrastructure for this module.
func (m *Module) DeclareMessaging(_ *messaging.Declarations) {
	// Order events arrive through the sidecar subscription route, not AMQP.
}

// RegisterJobs registers the sidecar token refresh when a token source is configured
func (m *Module) RegisterJobs(scheduler app.JobRegistrar) error {
	if m.tokens == nil {
		return nil
	}
	return scheduler.FixedRate("sidecar-token-refresh", &job.TokenRefreshJob{
		Tokens:    m.tokens,
		Refresher: m.sidecar,
	}, m.cfg.Secrets.RefreshInterval)
}

// Shutdown releases the sidecar client
func (m *Module) Shutdown() error {
	m.logger.Info().Msg("Shutting down recommendations module")
	m.sidecar.Close()
	return nil
}
