// Package notify delivers status-change pushes to requesters over NATS.
// Delivery is best-effort: the check-in workflow never depends on it.
package notify

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/google/uuid"
	"github.com/nats-io/nats.go"

	"kidcheck/internal/usecase/commands"
)

// Subjects are per-requester so a client can subscribe to exactly its
// own stream: checkin.parent.<requester-uuid>.
const subjectPrefix = "checkin.parent."

type NATSNotifier struct {
	conn *nats.Conn
}

func NewNATSNotifier(url string) (*NATSNotifier, func(), error) {
	conn, err := nats.Connect(url)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to connect to NATS: %w", err)
	}

	cleanup := func() {
		conn.Close()
	}
	return &NATSNotifier{conn: conn}, cleanup, nil
}

func (n *NATSNotifier) PublishStatusChange(ctx context.Context, requesterID uuid.UUID, event commands.StatusNotification) error {
	payload, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("failed to marshal status notification: %w", err)
	}

	if err := n.conn.Publish(subjectPrefix+requesterID.String(), payload); err != nil {
		return fmt.Errorf("failed to publish status notification: %w", err)
	}
	return n.conn.FlushWithContext(ctx)
}
