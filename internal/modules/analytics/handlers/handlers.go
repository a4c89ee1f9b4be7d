// Package handlers provides HTTP handlers for the analytics module.
package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/gaborage/go-bricks/logger"
	"github.com/gaborage/go-bricks/server"

	"github.com/gaborage/recommendation-service/internal/modules/analytics/domain"
	"github.com/gaborage/recommendation-service/internal/modules/analytics/service"
	"github.com/gaborage/recommendation-service/internal/modules/shared/httpjson"
)

const (
	missingDataMessage   = "Missing required interaction data"
	internalErrorMessage = "An internal error occurred"
)

// RecordInteractionRequest binds nothing; the payload is decoded from the
// captured body so parse failures map to this route's own error body.
type RecordInteractionRequest struct{}

// InteractionPayload is the body of POST /interactions. Values are kept raw;
// only their presence matters.
type InteractionPayload struct {
	ProductID json.RawMessage `json:"productId"`
	Timestamp json.RawMessage `json:"timestamp"`
	Type      json.RawMessage `json:"type"`
	Details   json.RawMessage `json:"details"`
}

// MessageResponse is a plain acknowledgement body.
type MessageResponse struct {
	Message string `json:"message"`
}

// AnalyticsServiceInterface defines the service contract for handlers.
type AnalyticsServiceInterface interface {
	RecordInteraction(ctx context.Context, interaction *domain.Interaction) error
}

// AnalyticsHandler handles HTTP requests for interaction capture.
type AnalyticsHandler struct {
	service AnalyticsServiceInterface
	logger  logger.Logger
}

// NewAnalyticsHandler creates a new analytics handler.
func NewAnalyticsHandler(s AnalyticsServiceInterface, l logger.Logger) *AnalyticsHandler {
	return &AnalyticsHandler{
		service: s,
		logger:  l,
	}
}

// RecordInteraction handles POST /interactions.
func (h *AnalyticsHandler) RecordInteraction(_ RecordInteractionRequest, ctx server.HandlerContext) (httpjson.Response, server.IAPIError) {
	var payload InteractionPayload
	if err := httpjson.Decode(ctx.Echo, &payload); err != nil {
		h.logger.Error().Err(err).Msg("Unexpected error in interaction payload")
		return httpjson.Error(http.StatusInternalServerError, internalErrorMessage), nil
	}

	interaction := &domain.Interaction{
		ProductID: payload.ProductID,
		Timestamp: payload.Timestamp,
		Type:      payload.Type,
		Details:   payload.Details,
	}

	err := h.service.RecordInteraction(ctx.Echo.Request().Context(), interaction)
	switch {
	case errors.Is(err, service.ErrValidation):
		return httpjson.Error(http.StatusBadRequest, missingDataMessage), nil
	case err != nil:
		h.logger.Error().Err(err).Msg("Failed to record interaction")
		return httpjson.Error(http.StatusInternalServerError, internalErrorMessage), nil
	}

	return httpjson.OK(&MessageResponse{Message: "Interaction recorded successfully"}), nil
}

// RegisterRoutes registers analytics HTTP routes.
func (h *AnalyticsHandler) RegisterRoutes(hr *server.HandlerRegistry, r server.RouteRegistrar) {
	routes := httpjson.GuardWithBody(r, h.logger, internalErrorMessage)
	server.POST(hr, routes, "/interactions", h.RecordInteraction,
		server.WithRawResponse(),
		server.WithTags("analytics"),
	)
}
