package sink

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/gaborage/go-bricks/logger"

	"github.com/gaborage/recommendation-service/internal/modules/analytics/domain"
)

func TestLogSinkSend(t *testing.T) {
	s := NewLogSink(logger.New("info", false))
	err := s.Send(context.Background(), &domain.Interaction{
		ID:        "abc",
		ProductID: json.RawMessage(`1`),
		Type:      json.RawMessage(`"view"`),
	})
	if err != nil {
		t.Errorf("Send() unexpected error = %v", err)
	}
}
