package bootstrap

import (
	"context"

	"storefront/internal/notify"
	"storefront/internal/pkg/clock"
	"storefront/internal/pkg/config"
	"storefront/internal/usecase/commands"
	"storefront/internal/usecase/shared"

	"github.com/redis/go-redis/v9"
	"go.uber.org/fx"
)

var RedisModule = fx.Module("redis",
	fx.Provide(
		NewRedis,
		fx.Annotate(
			NewRealtimeBus,
			fx.As(new(commands.RealtimeBus)),
		),
		fx.Annotate(
			NewNotificationGateway,
			fx.As(new(commands.NotificationGateway)),
		),
	),
)

func NewRedis(lc fx.Lifecycle, cfg config.Config) (*redis.Client, error) {
	client, cleanup, err := notify.NewRedisClient(cfg.Redis)
	if err != nil {
		return nil, err
	}

	lc.Append(fx.Hook{
		OnStop: func(_ context.Context) error {
			if cleanup != nil {
				cleanup()
			}
			return nil
		},
	})

	return client, nil
}

func NewRealtimeBus(client *redis.Client, cfg config.Config, clk clock.Clock) *notify.RedisBus {
	return notify.NewRedisBus(client, cfg.Redis.ChannelPrefix, clk)
}

func NewNotificationGateway(notifs shared.NotificationRepository, client *redis.Client, cfg config.Config) *notify.Gateway {
	return notify.NewGateway(notifs, client, cfg.Redis.ChannelPrefix)
}
