// Package sink is the hand-off point for accepted interactions.
package sink

import (
	"context"

	"github.com/gaborage/go-bricks/logger"

	"github.com/gaborage/recommendation-service/internal/modules/analytics/domain"
)

// Sink receives accepted interactions.
type Sink interface {
	Send(ctx context.Context, interaction *domain.Interaction) error
}

// LogSink logs interactions. No analytics backend is wired yet; this is
// where one would be called.
type LogSink struct {
	logger logger.Logger
}

// NewLogSink creates a logging sink.
func NewLogSink(log logger.Logger) *LogSink {
	return &LogSink{logger: log}
}

// Send logs the interaction.
func (s *LogSink) Send(_ context.Context, interaction *domain.Interaction) error {
	s.logger.Info().
		Str("interactionId", interaction.ID).
		Str("productId", string(interaction.ProductID)).
		Str("type", string(interaction.Type)).
		Msg("Sending interaction data to analytics service")
	return nil
}
