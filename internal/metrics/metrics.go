// Package metrics defines the Prometheus collectors exported by the service
// and the listener that serves them.
package metrics

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Outcome label values.
const (
	OutcomeSuccess = "success"
	OutcomeFailure = "failure"
)

// Cache lookup label values.
const (
	CacheHit  = "hit"
	CacheMiss = "miss"
)

var (
	// StockInvocations counts sidecar invocations of the stock management app.
	StockInvocations = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "recommendation_stock_invocations_total",
			Help: "Total stock management invocations by method and outcome",
		},
		[]string{"method", "outcome"},
	)

	// StockInvocationDuration tracks stock management invocation latency.
	StockInvocationDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "recommendation_stock_invocation_duration_seconds",
			Help:    "Stock management invocation latency in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method"},
	)

	// RecommendedProducts observes how many products each recommendation returned.
	RecommendedProducts = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "recommendation_products_returned",
			Help:    "Number of products returned per recommendation request",
			Buckets: []float64{0, 1, 2, 3, 4},
		},
	)

	// PopularityUpdates counts per-item popularity updates triggered by order events.
	PopularityUpdates = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "recommendation_popularity_updates_total",
			Help: "Total popularity updates forwarded from order events by outcome",
		},
		[]string{"outcome"},
	)

	// InteractionsRecorded counts accepted interaction payloads.
	InteractionsRecorded = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "recommendation_interactions_recorded_total",
			Help: "Total interactions accepted",
		},
	)

	// SidecarConnections counts sidecar dial attempts by outcome.
	SidecarConnections = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "recommendation_sidecar_connections_total",
			Help: "Total sidecar client dial attempts by outcome",
		},
		[]string{"outcome"},
	)

	// TokenCacheLookups counts sidecar API token reads served from or missing the cache.
	TokenCacheLookups = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "recommendation_token_cache_lookups_total",
			Help: "Sidecar API token cache lookups by result",
		},
		[]string{"result"},
	)

	// TokenFetches counts Secrets Manager reads of the sidecar API token by outcome.
	TokenFetches = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "recommendation_token_fetches_total",
			Help: "Sidecar API token fetches from AWS Secrets Manager by outcome",
		},
		[]string{"outcome"},
	)
)

// Outcome maps an error to its outcome label.
func Outcome(err error) string {
	if err != nil {
		return OutcomeFailure
	}
	return OutcomeSuccess
}

// Server serves /metrics on a dedicated listener.
type Server struct {
	srv *http.Server
}

// NewServer creates a metrics server bound to addr.
func NewServer(addr string) *Server {
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.Handler())
	return &Server{
		srv: &http.Server{
			Addr:              addr,
			Handler:           mux,
			ReadHeaderTimeout: 5 * time.Second,
		},
	}
}

// Start serves until Shutdown is called. It returns nil on graceful close.
func (s *Server) Start() error {
	if err := s.srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

// Shutdown stops the listener.
func (s *Server) Shutdown(ctx context.Context) error {
	return s.srv.Shutdown(ctx)
}
