package notify

import (
	"context"
	"log/slog"

	"github.com/google/uuid"

	"kidcheck/internal/usecase/commands"
)

// NopNotifier stands in when no NATS URL is configured. Transitions
// proceed as usual; the push is simply dropped.
type NopNotifier struct{}

func NewNopNotifier() *NopNotifier {
	return &NopNotifier{}
}

func (n *NopNotifier) PublishStatusChange(_ context.Context, requesterID uuid.UUID, event commands.StatusNotification) error {
	slog.Debug("push notifications disabled, dropping status change",
		"requester_id", requesterID,
		"request_id", event.RequestID,
		"status", event.Status,
	)
	return nil
}
