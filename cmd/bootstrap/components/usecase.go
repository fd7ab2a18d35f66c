package components

import (
	"log/slog"

	domauto "applytrack/internal/domain/automation"
	"applytrack/internal/pkg/clock"
	"applytrack/internal/pkg/config"
	"applytrack/internal/usecase"
	"applytrack/internal/usecase/automation"
	"applytrack/internal/usecase/commands"
	"applytrack/internal/usecase/queries"
	"applytrack/internal/usecase/shared"

	"go.uber.org/fx"
)

var UseCaseModule = fx.Module("usecase",
	usecaseBaseOption,
	usecaseQueriesModule,
	usecaseValidatorsModule,
	usecaseCommandsModule,
	usecaseAutomationModule,
)

var usecaseBaseOption = fx.Provide(
	clock.NewRealClock,
)

var usecaseCommandsModule = fx.Module("usecase/commands",
	fx.Provide(
		commands.NewRuleCommands,
		commands.NewJobCommands,
	),
)

var usecaseQueriesModule = fx.Module("usecase/queries",
	fx.Provide(
		queries.NewRuleQueries,
		queries.NewJobQueries,
	),
)

var usecaseValidatorsModule = fx.Module("usecase/validators",
	fx.Provide(
		usecase.NewTokenValidator,
	),
)

var usecaseAutomationModule = fx.Module("usecase/automation",
	fx.Provide(
		newRuleHandlers,
		fx.Annotate(
			newDispatcher,
			fx.As(new(automation.Executor)),
		),
		newScheduler,
		func(s *automation.Scheduler) automation.TickRunner { return s },
	),
)

func newRuleHandlers(jobs shared.JobRecordRepository, clk clock.Clock, logger *slog.Logger) []automation.Handler {
	return automation.NewHandlers(automation.Deps{
		Jobs:   jobs,
		Clock:  clk,
		Logger: logger,
	})
}

func newDispatcher(handlers []automation.Handler, rules shared.RuleRepository, clk clock.Clock, logger *slog.Logger, cfg config.Config) (*automation.Dispatcher, error) {
	retry := domauto.RetryPolicy{
		MaxAttempts: cfg.Automation.RetryMaxAttempts,
		BaseDelay:   cfg.Automation.RetryBaseDelay,
		MaxDelay:    cfg.Automation.RetryMaxDelay,
	}
	return automation.NewDispatcher(handlers, rules, clk, logger, retry)
}

func newScheduler(rules shared.RuleRepository, executor automation.Executor, locker shared.Locker, clk clock.Clock, logger *slog.Logger, cfg config.Config) (*automation.Scheduler, error) {
	cadence, err := automation.ParseCadence(cfg.Automation.Schedule)
	if err != nil {
		return nil, err
	}
	return automation.NewScheduler(rules, executor, locker, clk, cadence, logger), nil
}
