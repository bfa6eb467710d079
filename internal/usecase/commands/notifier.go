package commands

import (
	"context"
	"log/slog"
	"time"

	"storefront/internal/usecase/shared"

	"github.com/google/uuid"
)

const notifyTimeout = 5 * time.Second

// adminNotifier fans notifications out to every admin user and mirrors the
// event on the realtime bus. It runs post-commit and never fails the command
// that triggered it.
type adminNotifier struct {
	gateway NotificationGateway
	bus     RealtimeBus
	admins  shared.AdminDirectory
}

func newAdminNotifier(gateway NotificationGateway, bus RealtimeBus, admins shared.AdminDirectory) *adminNotifier {
	return &adminNotifier{gateway: gateway, bus: bus, admins: admins}
}

func (n *adminNotifier) broadcast(topic, kind, title, body string, meta []byte, payload any) {
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), notifyTimeout)
		defer cancel()

		if err := n.bus.Emit(ctx, topic, payload); err != nil {
			slog.Warn("failed to emit realtime event", "topic", topic, "error", err.Error())
		}

		adminIDs, err := n.admins.AdminIDs(ctx)
		if err != nil {
			slog.Warn("failed to resolve admin recipients", "topic", topic, "error", err.Error())
			return
		}
		for _, id := range adminIDs {
			if err := n.gateway.Notify(ctx, id, kind, title, body, meta, nil); err != nil {
				slog.Warn("failed to notify admin",
					"topic", topic,
					"recipient_id", id.String(),
					"error", err.Error())
			}
		}
	}()
}

func (n *adminNotifier) emit(topic string, payload any) {
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), notifyTimeout)
		defer cancel()

		if err := n.bus.Emit(ctx, topic, payload); err != nil {
			slog.Warn("failed to emit realtime event", "topic", topic, "error", err.Error())
		}
	}()
}

func (n *adminNotifier) notifyOne(recipientID uuid.UUID, kind, title, body string, meta []byte) {
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), notifyTimeout)
		defer cancel()

		if err := n.gateway.Notify(ctx, recipientID, kind, title, body, meta, nil); err != nil {
			slog.Warn("failed to notify user",
				"recipient_id", recipientID.String(),
				"error", err.Error())
		}
	}()
}
