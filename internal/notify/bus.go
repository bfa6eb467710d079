package notify

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"storefront/internal/pkg/clock"
	"storefront/internal/pkg/errs"
	"storefront/internal/usecase/commands"

	"github.com/redis/go-redis/v9"
)

// RedisBus publishes storefront events over Redis pub/sub. Each topic maps to
// its own channel so socket gateways can subscribe selectively.
type RedisBus struct {
	client *redis.Client
	prefix string
	clock  clock.Clock
}

func NewRedisBus(client *redis.Client, prefix string, clk clock.Clock) *RedisBus {
	return &RedisBus{client: client, prefix: prefix, clock: clk}
}

var _ commands.RealtimeBus = (*RedisBus)(nil)

type envelope struct {
	Topic     string    `json:"topic"`
	Payload   any       `json:"payload"`
	EmittedAt time.Time `json:"emitted_at"`
}

func (b *RedisBus) Emit(ctx context.Context, topic string, payload any) error {
	msg, err := json.Marshal(envelope{
		Topic:     topic,
		Payload:   payload,
		EmittedAt: b.clock.Now(),
	})
	if err != nil {
		return errs.Wrap(err, "failed to marshal event payload")
	}

	channel := fmt.Sprintf("%s:events:%s", b.prefix, topic)
	if err := b.client.Publish(ctx, channel, msg).Err(); err != nil {
		return errs.Wrap(err, "failed to publish event")
	}
	return nil
}
