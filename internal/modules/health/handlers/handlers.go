// Package handlers provides the liveness and readiness handlers for the
// health module.
package handlers

import (
	"github.com/gaborage/go-bricks/server"
)

const (
	StatusHealthy = "Healthy"
	StatusReady   = "Ready"
)

// StatusRequest carries no input.
type StatusRequest struct{}

// StatusResponse is the liveness and readiness body.
type StatusResponse struct {
	Status string `json:"status"`
}

// StatusHandler answers liveness and readiness checks.
type StatusHandler struct{}

// NewStatusHandler creates a new status handler.
func NewStatusHandler() *StatusHandler {
	return &StatusHandler{}
}

// Healthz handles GET /healthz.
func (h *StatusHandler) Healthz(_ StatusRequest, _ server.HandlerContext) (*StatusResponse, server.IAPIError) {
	return &StatusResponse{Status: StatusHealthy}, nil
}

// Ready handles GET /ready.
func (h *StatusHandler) Ready(_ StatusRequest, _ server.HandlerContext) (*StatusResponse, server.IAPIError) {
	return &StatusResponse{Status: StatusReady}, nil
}

// RegisterRoutes registers both checks without the response envelope.
func (h *StatusHandler) RegisterRoutes(hr *server.HandlerRegistry, r server.RouteRegistrar) {
	server.GET(hr, r, "/healthz", h.Healthz,
		server.WithRawResponse(),
		server.WithTags("health"),
	)
	server.GET(hr, r, "/ready", h.Ready,
		server.WithRawResponse(),
		server.WithTags("health"),
	)
}
