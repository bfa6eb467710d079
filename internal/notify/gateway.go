package notify

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"

	"storefront/internal/usecase/commands"
	"storefront/internal/usecase/shared"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

// Gateway persists a notification row and pushes it to the recipient's
// personal channel. The push is best-effort: a recipient who is offline still
// sees the notification on their next fetch.
type Gateway struct {
	notifs shared.NotificationRepository
	client *redis.Client
	prefix string
}

func NewGateway(notifs shared.NotificationRepository, client *redis.Client, prefix string) *Gateway {
	return &Gateway{notifs: notifs, client: client, prefix: prefix}
}

var _ commands.NotificationGateway = (*Gateway)(nil)

func (g *Gateway) Notify(ctx context.Context, recipientID uuid.UUID, kind, title, body string, meta []byte, actionURL *string) error {
	if err := g.notifs.Create(ctx, recipientID, kind, title, body, meta, actionURL); err != nil {
		return err
	}

	msg, err := json.Marshal(map[string]any{
		"recipient_id": recipientID,
		"kind":         kind,
		"title":        title,
		"body":         body,
	})
	if err != nil {
		return nil
	}
	channel := fmt.Sprintf("%s:notify:%s", g.prefix, recipientID)
	if err := g.client.Publish(ctx, channel, msg).Err(); err != nil {
		slog.Warn("failed to push notification",
			"recipient_id", recipientID.String(),
			"error", err.Error())
	}
	return nil
}
