package bootstrap

import (
	"context"
	"log/slog"

	"storefront/internal/pkg/config"
	"storefront/internal/scheduler"
	"storefront/internal/usecase/commands"

	"go.uber.org/fx"
)

var SchedulerModule = fx.Module("scheduler",
	fx.Provide(
		scheduler.NewJobSweeper,
		NewDispatcher,
	),
	fx.Invoke(StartDispatcher),
)

// Task order mirrors a single logical sweep: one-shot jobs first, then
// activations, then expirations.
func NewDispatcher(cfg config.Config, sweeper *scheduler.JobSweeper, discounts commands.DiscountCommands) *scheduler.PeriodicDispatcher {
	return scheduler.NewPeriodicDispatcher(cfg.Scheduler.Interval,
		scheduler.Task{Name: "job_sweep", Run: sweeper.Sweep},
		scheduler.Task{Name: "discount_activate", Run: func(ctx context.Context) error {
			_, err := discounts.ActivateDue(ctx)
			return err
		}},
		scheduler.Task{Name: "discount_expire", Run: func(ctx context.Context) error {
			_, err := discounts.ExpireDue(ctx)
			return err
		}},
	)
}

func StartDispatcher(lc fx.Lifecycle, cfg config.Config, dispatcher *scheduler.PeriodicDispatcher) {
	if !cfg.Scheduler.Enabled {
		slog.Info("periodic dispatcher disabled by configuration")
		return
	}

	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			dispatcher.Start(ctx)
			return nil
		},
		OnStop: func(_ context.Context) error {
			dispatcher.Stop()
			return nil
		},
	})
}
