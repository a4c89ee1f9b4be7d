package service

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/gaborage/go-bricks/logger"
	"github.com/google/uuid"

	"github.com/gaborage/recommendation-service/internal/modules/analytics/domain"
)

// mockSink implements sink.Sink for testing
type mockSink struct {
	sendFunc func(ctx context.Context, interaction *domain.Interaction) error
	sent     []*domain.Interaction
}

func (m *mockSink) Send(ctx context.Context, interaction *domain.Interaction) error {
	m.sent = append(m.sent, interaction)
	if m.sendFunc != nil {
		return m.sendFunc(ctx, interaction)
	}
	return nil
}

func completeInteraction() *domain.Interaction {
	return &domain.Interaction{
		ProductID: json.RawMessage(`"2"`),
		Timestamp: json.RawMessage(`"2024-05-01T10:00:00Z"`),
		Type:      json.RawMessage(`"view"`),
		Details:   json.RawMessage(`{}`),
	}
}

func TestRecordInteraction(t *testing.T) {
	fixed := time.Date(2024, 5, 1, 10, 0, 1, 0, time.UTC)

	tests := []struct {
		name        string
		interaction func() *domain.Interaction
		sendFunc    func(ctx context.Context, interaction *domain.Interaction) error
		wantErr     error
		wantSent    int
	}{
		{
			name:        "complete interaction",
			interaction: completeInteraction,
			wantSent:    1,
		},
		{
			name: "missing type",
			interaction: func() *domain.Interaction {
				i := completeInteraction()
				i.Type = nil
				return i
			},
			wantErr:  ErrValidation,
			wantSent: 0,
		},
		{
			name:        "sink failure is absorbed",
			interaction: completeInteraction,
			sendFunc: func(context.Context, *domain.Interaction) error {
				return errors.New("analytics backend down")
			},
			wantSent: 1,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := &mockSink{sendFunc: tt.sendFunc}
			svc := NewService(s, logger.New("info", false))
			svc.now = func() time.Time { return fixed }

			interaction := tt.interaction()
			err := svc.RecordInteraction(context.Background(), interaction)

			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Fatalf("RecordInteraction() error = %v, want %v", err, tt.wantErr)
				}
			} else if err != nil {
				t.Fatalf("RecordInteraction() unexpected error = %v", err)
			}

			if len(s.sent) != tt.wantSent {
				t.Fatalf("RecordInteraction() sent = %d, want %d", len(s.sent), tt.wantSent)
			}
			if tt.wantSent == 0 {
				return
			}
			if _, err := uuid.Parse(interaction.ID); err != nil {
				t.Errorf("RecordInteraction() id = %q, want a uuid", interaction.ID)
			}
			if !interaction.ReceivedAt.Equal(fixed) {
				t.Errorf("RecordInteraction() receivedAt = %v, want %v", interaction.ReceivedAt, fixed)
			}
		})
	}
}
