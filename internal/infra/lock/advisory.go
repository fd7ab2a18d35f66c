package lock

import (
	"context"
	"database/sql"
	"database/sql/driver"
	"log/slog"
	"time"

	"applytrack/internal/pkg/errs"
)

const releaseTimeout = 5 * time.Second

// AdvisoryLocker elects a single scheduler across processes with a session
// level Postgres advisory lock. Lock and unlock must run on the same
// connection, so a dedicated *sql.Conn is pinned for the duration.
type AdvisoryLocker struct {
	db     *sql.DB
	key    int64
	logger *slog.Logger
}

func NewAdvisoryLocker(db *sql.DB, key int64, logger *slog.Logger) *AdvisoryLocker {
	return &AdvisoryLocker{db: db, key: key, logger: logger}
}

func (l *AdvisoryLocker) TryAcquire(ctx context.Context) (func(), bool, error) {
	conn, err := l.db.Conn(ctx)
	if err != nil {
		return nil, false, errs.Wrap(err, "failed to reserve lock connection")
	}

	var acquired bool
	if err := conn.QueryRowContext(ctx, "SELECT pg_try_advisory_lock($1)", l.key).Scan(&acquired); err != nil {
		_ = conn.Close()
		return nil, false, errs.Wrap(err, "failed to acquire lock")
	}
	if !acquired {
		_ = conn.Close()
		return nil, false, nil
	}

	release := func() {
		// the tick context may already be cancelled during shutdown
		rctx, cancel := context.WithTimeout(context.Background(), releaseTimeout)
		defer cancel()

		var released bool
		if err := conn.QueryRowContext(rctx, "SELECT pg_advisory_unlock($1)", l.key).Scan(&released); err != nil {
			l.logger.Error("failed to release lock, discarding its session", "key", l.key, "error", err)
			// the session may still hold the lock; closing it ends the lock
			// instead of parking it in the pool
			_ = conn.Raw(func(any) error { return driver.ErrBadConn })
			return
		}
		if !released {
			l.logger.Warn("advisory lock was not held at release", "key", l.key)
		}
		if err := conn.Close(); err != nil {
			l.logger.Warn("failed to return lock connection", "error", err)
		}
	}
	return release, true, nil
}

// NoopLocker always grants the lock. Used with the in-memory store where
// there is only ever one process.
type NoopLocker struct{}

func (NoopLocker) TryAcquire(context.Context) (func(), bool, error) {
	return func() {}, true, nil
}
