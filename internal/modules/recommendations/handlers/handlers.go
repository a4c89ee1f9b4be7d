// Package handlers provides HTTP handlers for the recommendations module.
// Responses are served raw, without the go-bricks envelope, to match the
// shapes expected by the storefront and the sidecar.
package handlers

import (
	"context"
	"net/http"

	"github.com/gaborage/go-bricks/logger"
	"github.com/gaborage/go-bricks/server"

	"github.com/gaborage/recommendation-service/internal/modules/recommendations/domain"
	"github.com/gaborage/recommendation-service/internal/modules/shared/httpjson"
)

const (
	processingFailedMessage = "An error occurred during processing"
	orderFailedMessage      = "Failed to process order data"
)

type RecommendationsRequest struct{}

type PopularProductsRequest struct{}

type SubscriptionRequest struct{}

// UpdatePopularProductsRequest carries nothing bound by the framework. The
// order event is decoded from the captured body so CloudEvent deliveries
// (application/cloudevents+json) and plain JSON posts are both accepted.
type UpdatePopularProductsRequest struct{}

type RecommendationsResponse struct {
	Products []domain.Product `json:"products"`
}

type PopularProductsResponse struct {
	PopularProducts []domain.Product `json:"popular_products"`
}

type MessageResponse struct {
	Message string `json:"message"`
}

type SubscriptionConfigResponse struct {
	Subscriptions []domain.Subscription `json:"subscriptions"`
}

// RecommendationServiceInterface defines the service contract for handlers
type RecommendationServiceInterface interface {
	Recommend(ctx context.Context) []domain.Product
	PopularProducts(ctx context.Context) []domain.Product
	ApplyOrder(ctx context.Context, event domain.OrderProcessedEvent) int
}

type RecommendationHandler struct {
	service    RecommendationServiceInterface
	pubsubName string
	logger     logger.Logger
}

func NewRecommendationHandler(s RecommendationServiceInterface, pubsubName string, l logger.Logger) *RecommendationHandler {
	return &RecommendationHandler{
		service:    s,
		pubsubName: pubsubName,
		logger:     l,
	}
}

// Recommendations handles GET /recommendations.
func (h *RecommendationHandler) Recommendations(_ RecommendationsRequest, ctx server.HandlerContext) (*RecommendationsResponse, server.IAPIError) {
	h.logger.Info().Msg("Request received for recommendations")

	products := h.service.Recommend(ctx.Echo.Request().Context())
	if products == nil {
		products = []domain.Product{}
	}
	return &RecommendationsResponse{Products: products}, nil
}

// PopularProducts handles GET /popular.
func (h *RecommendationHandler) PopularProducts(_ PopularProductsRequest, ctx server.HandlerContext) (*PopularProductsResponse, server.IAPIError) {
	h.logger.Info().Msg("Request received for popular products")

	products := h.service.PopularProducts(ctx.Echo.Request().Context())
	if products == nil {
		products = []domain.Product{}
	}
	return &PopularProductsResponse{PopularProducts: products}, nil
}

// UpdatePopularProducts handles POST /updatePopularProducts, the delivery
// route of the orderProcessed subscription. Once the body decodes the event
// is acknowledged; per-item failures never change that.
func (h *RecommendationHandler) UpdatePopularProducts(_ UpdatePopularProductsRequest, ctx server.HandlerContext) (httpjson.Response, server.IAPIError) {
	h.logger.Info().Msg("Received order data for updating popular products")

	var event domain.OrderProcessedEvent
	if err := httpjson.Decode(ctx.Echo, &event); err != nil {
		h.logger.Error().Err(err).Msg("Error processing order data")
		return httpjson.Error(http.StatusInternalServerError, orderFailedMessage), nil
	}

	h.service.ApplyOrder(ctx.Echo.Request().Context(), event)

	return httpjson.OK(&MessageResponse{Message: "Processed order data for updating popular products"}), nil
}

// SubscriptionConfig handles GET /dapr/config.
func (h *RecommendationHandler) SubscriptionConfig(_ SubscriptionRequest, _ server.HandlerContext) (*SubscriptionConfigResponse, server.IAPIError) {
	h.logger.Info().Msg("Serving sidecar configuration")

	return &SubscriptionConfigResponse{
		Subscriptions: []domain.Subscription{domain.OrderProcessedSubscription(h.pubsubName)},
	}, nil
}

// Subscriptions handles GET /dapr/subscribe.
func (h *RecommendationHandler) Subscriptions(_ SubscriptionRequest, _ server.HandlerContext) ([]domain.Subscription, server.IAPIError) {
	h.logger.Info().Str("topic", domain.OrderProcessedTopic).Msg("Serving topic subscriptions")

	return []domain.Subscription{domain.OrderProcessedSubscription(h.pubsubName)}, nil
}

// RegisterRoutes registers recommendation and subscription routes
func (h *RecommendationHandler) RegisterRoutes(hr *server.HandlerRegistry, r server.RouteRegistrar) {
	catalog := httpjson.Guard(r, h.logger, processingFailedMessage)
	server.GET(hr, catalog, "/recommendations", h.Recommendations,
		server.WithRawResponse(),
		server.WithTags("recommendations"),
	)
	server.GET(hr, catalog, "/popular", h.PopularProducts,
		server.WithRawResponse(),
		server.WithTags("recommendations"),
	)

	orders := httpjson.GuardWithBody(r, h.logger, orderFailedMessage)
	server.POST(hr, orders, domain.OrderProcessedRoute, h.UpdatePopularProducts,
		server.WithRawResponse(),
		server.WithTags("subscriptions"),
	)

	server.GET(hr, r, "/dapr/config", h.SubscriptionConfig,
		server.WithRawResponse(),
		server.WithTags("subscriptions"),
	)
	server.GET(hr, r, "/dapr/subscribe", h.Subscriptions,
		server.WithRawResponse(),
		server.WithTags("subscriptions"),
	)
}
