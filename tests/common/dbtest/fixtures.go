//go:build integration || e2e

package dbtest

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/stretchr/testify/require"
)

// CreateTestJob inserts a bare job record with one status history entry.
func CreateTestJob(t *testing.T, db DBLike, ownerID uuid.UUID, company, status string) uuid.UUID {
	t.Helper()

	jobID := uuid.New()
	now := time.Now().UTC()
	history, err := json.Marshal([]map[string]any{{"status": status, "timestamp": now}})
	require.NoError(t, err)

	_, err = db.Exec(context.Background(), `
		INSERT INTO job_records (id, owner_user_id, company, position, recruiter_name, status, status_history)
		VALUES ($1, $2, $3, 'Backend Engineer', 'Dana', $4, $5)`,
		jobID, ownerID, company, status, history)
	require.NoError(t, err)

	return jobID
}

// CreateTestRule inserts an enabled rule with the given schedule.
func CreateTestRule(t *testing.T, db DBLike, ownerID uuid.UUID, ruleType string, config any, schedule time.Time) uuid.UUID {
	t.Helper()

	raw, err := json.Marshal(config)
	require.NoError(t, err)

	ruleID := uuid.New()
	_, err = db.Exec(context.Background(), `
		INSERT INTO automation_rules (id, owner_user_id, type, config, schedule)
		VALUES ($1, $2, $3, $4, $5)`,
		ruleID, ownerID, ruleType, raw, schedule)
	require.NoError(t, err)

	return ruleID
}

// RuleLastRunAt returns nil while the rule is uncommitted.
func RuleLastRunAt(t *testing.T, db DBLike, ruleID uuid.UUID) *time.Time {
	t.Helper()

	var lastRunAt *time.Time
	err := db.QueryRow(context.Background(), `SELECT last_run_at FROM automation_rules WHERE id = $1`, ruleID).Scan(&lastRunAt)
	require.NoError(t, err)
	return lastRunAt
}

var (
	buildTruncateOnce sync.Once
	truncateSQL       atomic.Value // string
)

// truncates all tables
func ResetDB(pool *pgxpool.Pool) error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	buildTruncateOnce.Do(func() {
		rows, err := pool.Query(ctx, `
		  SELECT 'public.' || quote_ident(tablename)
		  FROM pg_tables
		  WHERE schemaname = 'public'
		    AND tablename NOT IN ('schema_migrations')`)
		if err != nil {
			truncateSQL.Store("")
			return
		}
		defer rows.Close()
		var tables []string
		for rows.Next() {
			var t string
			if err := rows.Scan(&t); err != nil {
				truncateSQL.Store("")
				return
			}
			tables = append(tables, t)
		}
		if rows.Err() != nil {
			truncateSQL.Store("")
			return
		}
		if len(tables) == 0 {
			truncateSQL.Store("SELECT 1")
			return
		}
		truncateSQL.Store("TRUNCATE " + strings.Join(tables, ", ") + " RESTART IDENTITY CASCADE;")
	})
	sqlAny := truncateSQL.Load()
	if sqlAny == nil || sqlAny.(string) == "" {
		return fmt.Errorf("failed to build TRUNCATE SQL")
	}
	_, err := pool.Exec(ctx, sqlAny.(string))
	return err
}
