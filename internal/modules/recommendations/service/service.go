// Package service implements recommendation, popularity and order-event
// handling on top of the stock management app.
package service

import (
	"context"
	"math/rand/v2"
	"sync"

	"github.com/gaborage/go-bricks/logger"

	"github.com/gaborage/recommendation-service/internal/metrics"
	"github.com/gaborage/recommendation-service/internal/modules/recommendations/domain"
)

// popularProductIDs is the fixed set served by the popular endpoint.
var popularProductIDs = []domain.ProductID{"2", "3", "4", "5"}

// PopularProductIDs returns a copy of the fixed popular identifier set.
func PopularProductIDs() []domain.ProductID {
	ids := make([]domain.ProductID, len(popularProductIDs))
	copy(ids, popularProductIDs)
	return ids
}

// StockClient is the stock management contract used by the service.
type StockClient interface {
	ListProducts(ctx context.Context) ([]domain.Product, error)
	GetProduct(ctx context.Context, id domain.ProductID) (*domain.Product, error)
	UpdateProductPopularity(ctx context.Context, id domain.ProductID, quantity int) error
}

// RecommendationService turns stock data into recommendations. Collaborator
// failures are logged and absorbed.
type RecommendationService struct {
	stock  StockClient
	logger logger.Logger

	rngMu sync.Mutex
	rng   *rand.Rand
}

// NewService creates a recommendation service.
func NewService(stock StockClient, log logger.Logger) *RecommendationService {
	return NewServiceWithRand(stock, log, rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64())))
}

// NewServiceWithRand creates a recommendation service with a fixed random source.
func NewServiceWithRand(stock StockClient, log logger.Logger, rng *rand.Rand) *RecommendationService {
	return &RecommendationService{
		stock:  stock,
		logger: log,
		rng:    rng,
	}
}

// Recommend returns up to domain.RecommendationSize random products. An
// unreachable or empty catalog yields an empty list.
func (s *RecommendationService) Recommend(ctx context.Context) []domain.Product {
	s.logger.Info().Msg("Generating product recommendations")

	products, err := s.stock.ListProducts(ctx)
	if err != nil {
		s.logger.Error().Err(err).Msg("Failed to fetch products for recommendations")
		return []domain.Product{}
	}
	if len(products) == 0 {
		s.logger.Warn().Msg("No products available for recommendations")
		return []domain.Product{}
	}

	s.rngMu.Lock()
	recommended := domain.Sample(products, domain.RecommendationSize, s.rng)
	s.rngMu.Unlock()

	metrics.RecommendedProducts.Observe(float64(len(recommended)))
	s.logger.Info().
		Int("available", len(products)).
		Int("recommended", len(recommended)).
		Msg("Recommended products selected")

	return recommended
}

// PopularProducts fetches details for the fixed popular set, one call per
// identifier in order. Failed lookups are skipped.
func (s *RecommendationService) PopularProducts(ctx context.Context) []domain.Product {
	products := make([]domain.Product, 0, len(popularProductIDs))

	for _, id := range popularProductIDs {
		s.logger.Debug().Str("productID", id.String()).Msg("Fetching product details")

		product, err := s.stock.GetProduct(ctx, id)
		if err != nil {
			s.logger.Error().Err(err).Str("productID", id.String()).Msg("Failed to fetch product details")
			continue
		}
		products = append(products, *product)
	}

	s.logger.Info().
		Int("requested", len(popularProductIDs)).
		Int("fetched", len(products)).
		Msg("Popular products fetched")

	return products
}

// ApplyOrder forwards one popularity update per order line, sequentially.
// A failed update is logged and does not stop the remaining lines. It
// returns how many updates succeeded.
func (s *RecommendationService) ApplyOrder(ctx context.Context, event domain.OrderProcessedEvent) int {
	items := event.LineItems()
	updated := 0

	for i, item := range items {
		if item.ID.IsZero() {
			s.logger.Warn().Int("item", i).Msg("Skipping order item without product id")
			metrics.PopularityUpdates.WithLabelValues(metrics.OutcomeFailure).Inc()
			continue
		}

		err := s.stock.UpdateProductPopularity(ctx, item.ID, item.Quantity)
		metrics.PopularityUpdates.WithLabelValues(metrics.Outcome(err)).Inc()
		if err != nil {
			s.logger.Error().
				Err(err).
				Str("productID", item.ID.String()).
				Int("quantity", item.Quantity).
				Msg("Failed to update product popularity")
			continue
		}

		updated++
		s.logger.Info().
			Str("productID", item.ID.String()).
			Int("quantity", item.Quantity).
			Msg("Popularity updated for product")
	}

	s.logger.Info().
		Int("items", len(items)).
		Int("updated", updated).
		Msg("Processed order data for popular products")

	return updated
}
