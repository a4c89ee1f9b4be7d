// Package service provides business logic for the analytics module.
package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/gaborage/go-bricks/logger"
	"github.com/google/uuid"

	"github.com/gaborage/recommendation-service/internal/metrics"
	"github.com/gaborage/recommendation-service/internal/modules/analytics/domain"
	"github.com/gaborage/recommendation-service/internal/modules/analytics/sink"
)

// ErrValidation indicates the interaction payload is incomplete (HTTP 400).
var ErrValidation = errors.New("missing required interaction data")

// AnalyticsService records client interactions.
type AnalyticsService struct {
	sink   sink.Sink
	logger logger.Logger
	now    func() time.Time
}

// NewService creates a new analytics service.
func NewService(s sink.Sink, log logger.Logger) *AnalyticsService {
	return &AnalyticsService{
		sink:   s,
		logger: log,
		now:    time.Now,
	}
}

// RecordInteraction validates field presence, logs the interaction and hands
// it to the sink. Sink failures are logged and not returned.
func (s *AnalyticsService) RecordInteraction(ctx context.Context, interaction *domain.Interaction) error {
	if missing := interaction.MissingFields(); len(missing) > 0 {
		s.logger.Warn().
			Str("missing", strings.Join(missing, ",")).
			Msg("Rejected interaction with missing fields")
		return fmt.Errorf("%w: %s", ErrValidation, strings.Join(missing, ", "))
	}

	interaction.ID = uuid.New().String()
	interaction.ReceivedAt = s.now().UTC()

	s.logger.Info().
		Str("interactionId", interaction.ID).
		Str("productId", string(interaction.ProductID)).
		Str("timestamp", string(interaction.Timestamp)).
		Str("type", string(interaction.Type)).
		Str("details", string(interaction.Details)).
		Msg("Recording interaction")

	if err := s.sink.Send(ctx, interaction); err != nil {
		s.logger.Error().
			Err(err).
			Str("interactionId", interaction.ID).
			Msg("Error sending interaction data to analytics service")
	}

	metrics.InteractionsRecorded.Inc()
	return nil
}
