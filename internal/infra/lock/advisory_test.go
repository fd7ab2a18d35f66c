//go:build unit

package lock_test

import (
	"context"
	"database/sql"
	"io"
	"log/slog"
	"testing"

	"applytrack/internal/infra/lock"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testKey int64 = 724001

func newLocker(t *testing.T) (*lock.AdvisoryLocker, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	return lock.NewAdvisoryLocker(db, testKey, logger), mock
}

func TestAdvisoryLocker_Acquired(t *testing.T) {
	l, mock := newLocker(t)

	mock.ExpectQuery("SELECT pg_try_advisory_lock").
		WithArgs(testKey).
		WillReturnRows(sqlmock.NewRows([]string{"pg_try_advisory_lock"}).AddRow(true))
	mock.ExpectQuery("SELECT pg_advisory_unlock").
		WithArgs(testKey).
		WillReturnRows(sqlmock.NewRows([]string{"pg_advisory_unlock"}).AddRow(true))

	release, acquired, err := l.TryAcquire(context.Background())
	require.NoError(t, err)
	require.True(t, acquired)
	require.NotNil(t, release)

	release()
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestAdvisoryLocker_HeldElsewhere(t *testing.T) {
	l, mock := newLocker(t)

	mock.ExpectQuery("SELECT pg_try_advisory_lock").
		WithArgs(testKey).
		WillReturnRows(sqlmock.NewRows([]string{"pg_try_advisory_lock"}).AddRow(false))

	release, acquired, err := l.TryAcquire(context.Background())
	require.NoError(t, err)
	assert.False(t, acquired)
	assert.Nil(t, release)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestAdvisoryLocker_QueryError(t *testing.T) {
	l, mock := newLocker(t)

	mock.ExpectQuery("SELECT pg_try_advisory_lock").
		WithArgs(testKey).
		WillReturnError(sql.ErrConnDone)

	_, acquired, err := l.TryAcquire(context.Background())
	require.Error(t, err)
	assert.False(t, acquired)
	assert.Contains(t, err.Error(), "failed to acquire lock")
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestAdvisoryLocker_ReleaseErrorDiscardsSession(t *testing.T) {
	l, mock := newLocker(t)

	mock.ExpectQuery("SELECT pg_try_advisory_lock").
		WithArgs(testKey).
		WillReturnRows(sqlmock.NewRows([]string{"pg_try_advisory_lock"}).AddRow(true))
	mock.ExpectQuery("SELECT pg_advisory_unlock").
		WithArgs(testKey).
		WillReturnError(sql.ErrConnDone)
	// the pool closes the session rather than reusing it
	mock.ExpectClose()

	release, acquired, err := l.TryAcquire(context.Background())
	require.NoError(t, err)
	require.True(t, acquired)

	assert.NotPanics(t, release)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestNoopLocker(t *testing.T) {
	release, acquired, err := lock.NoopLocker{}.TryAcquire(context.Background())
	require.NoError(t, err)
	assert.True(t, acquired)
	release()
}
