package components

import (
	"context"
	"log/slog"

	"applytrack/internal/pkg/config"
	"applytrack/internal/usecase/automation"

	"go.uber.org/fx"
)

var SchedulerModule = fx.Module("scheduler",
	fx.Invoke(startScheduler),
)

func startScheduler(lc fx.Lifecycle, s *automation.Scheduler, cfg config.Config, logger *slog.Logger) {
	if !cfg.Automation.Enabled {
		logger.Info("automation scheduler disabled, ticks run only on demand")
		return
	}
	lc.Append(fx.Hook{
		OnStart: func(_ context.Context) error {
			// the start context is cancelled once startup completes
			return s.Start(context.Background())
		},
		OnStop: func(ctx context.Context) error {
			return s.Stop(ctx)
		},
	})
}
