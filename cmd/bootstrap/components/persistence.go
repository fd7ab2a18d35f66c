package components

import (
	"context"
	"log/slog"

	"applytrack/internal/infra/db"
	"applytrack/internal/infra/lock"
	"applytrack/internal/infra/memstore"
	"applytrack/internal/infra/repository"
	"applytrack/internal/pkg/config"
	"applytrack/internal/usecase/queries"
	"applytrack/internal/usecase/shared"

	"github.com/jackc/pgx/v5/stdlib"
	"go.uber.org/fx"
)

var PersistenceModule = fx.Module("persistence",
	fx.Provide(
		NewStores,
	),
)

// Stores is every persistence port the use cases depend on, backed by one
// driver chosen at startup.
type Stores struct {
	fx.Out

	Rules     shared.RuleRepository
	Jobs      shared.JobRecordRepository
	Locker    shared.Locker
	RuleReads queries.RuleReadStore
	JobReads  queries.JobReadStore
}

func NewStores(lc fx.Lifecycle, cfg config.Config, logger *slog.Logger) (Stores, error) {
	if cfg.Store.Driver == config.StoreDriverMemory {
		logger.Warn("using in-memory store, data will not survive a restart")
		rules, jobs := memstore.NewRuleStore(), memstore.NewJobStore()
		return Stores{
			Rules:     rules,
			Jobs:      jobs,
			Locker:    lock.NoopLocker{},
			RuleReads: rules,
			JobReads:  jobs,
		}, nil
	}

	pool, cleanup, err := db.Connect(cfg.DB)
	if err != nil {
		return Stores{}, err
	}
	// the advisory lock pins a database/sql connection on the same pool
	sqlDB := stdlib.OpenDBFromPool(pool)

	lc.Append(fx.Hook{
		OnStop: func(_ context.Context) error {
			if err := sqlDB.Close(); err != nil {
				logger.Warn("failed to close lock connections", "error", err)
			}
			cleanup()
			return nil
		},
	})

	rules := repository.NewRuleRepository(pool)
	jobs := repository.NewJobRecordRepository(pool)
	return Stores{
		Rules:     rules,
		Jobs:      jobs,
		Locker:    lock.NewAdvisoryLocker(sqlDB, cfg.Automation.LockKey, logger),
		RuleReads: rules,
		JobReads:  jobs,
	}, nil
}
