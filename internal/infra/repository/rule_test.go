//go:build integration

package repository_test

import (
	"context"
	"encoding/json"
	"time"

	"applytrack/internal/domain/automation"
	"applytrack/internal/infra"
	"applytrack/internal/infra/repository"
	"applytrack/internal/pkg/errs"
	"applytrack/tests/common/dbtest"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func (s *repositorySuite) TestRuleRepository_ListDue() {
	ctx := context.Background()
	repo := repository.NewRuleRepository(s.pool)
	now := time.Now().UTC().Truncate(time.Microsecond)
	owner := uuid.New()
	cfg := map[string]string{"jobId": uuid.NewString()}

	s.Run("selects only eligible rules in schedule order", func() {
		t := s.T()

		later := dbtest.CreateTestRule(t, s.pool, owner, "follow_up", cfg, now.Add(-time.Minute))
		earlier := dbtest.CreateTestRule(t, s.pool, owner, "checklist", cfg, now.Add(-time.Hour))
		dbtest.CreateTestRule(t, s.pool, owner, "follow_up", cfg, now.Add(time.Hour))
		disabled := dbtest.CreateTestRule(t, s.pool, owner, "follow_up", cfg, now.Add(-time.Hour))
		_, err := s.pool.Exec(ctx, `UPDATE automation_rules SET enabled = false WHERE id = $1`, disabled)
		require.NoError(t, err)
		ran := dbtest.CreateTestRule(t, s.pool, owner, "follow_up", cfg, now.Add(-time.Hour))
		require.NoError(t, repo.MarkRun(ctx, ran, now))

		due, err := repo.ListDue(ctx, now)
		require.NoError(t, err)

		ids := make([]uuid.UUID, 0, len(due))
		for _, r := range due {
			ids = append(ids, r.ID())
		}
		assert.Equal(t, []uuid.UUID{earlier, later}, ids)
		assert.Equal(t, automation.TypeChecklist, due[0].Type())
		assert.JSONEq(t, `{"jobId":"`+cfg["jobId"]+`"}`, string(due[0].Config()))
	})

	s.Run("unknown type rows are still returned", func() {
		t := s.T()

		id := dbtest.CreateTestRule(t, s.pool, owner, "send_fax", cfg, now.Add(-time.Minute))

		due, err := repo.ListDue(ctx, now)
		require.NoError(t, err)
		require.Len(t, due, 1)
		assert.Equal(t, id, due[0].ID())
		assert.False(t, due[0].Type().IsValid())
	})

	s.Run("backoff and dead letter gate eligibility", func() {
		t := s.T()

		backingOff := dbtest.CreateTestRule(t, s.pool, owner, "follow_up", cfg, now.Add(-time.Hour))
		next := now.Add(time.Minute)
		require.NoError(t, repo.RecordFailure(ctx, backingOff, automation.Failure{Attempts: 1, LastError: "boom", NextAttemptAt: &next}, now))

		dead := dbtest.CreateTestRule(t, s.pool, owner, "follow_up", cfg, now.Add(-time.Hour))
		require.NoError(t, repo.RecordFailure(ctx, dead, automation.Failure{Attempts: 3, LastError: "boom", DeadLettered: true}, now))

		due, err := repo.ListDue(ctx, now)
		require.NoError(t, err)
		assert.Empty(t, due)

		due, err = repo.ListDue(ctx, now.Add(2*time.Minute))
		require.NoError(t, err)
		require.Len(t, due, 1)
		assert.Equal(t, backingOff, due[0].ID())
		assert.Equal(t, 1, due[0].Attempts())
		assert.Equal(t, "boom", due[0].LastError())
	})
}

func (s *repositorySuite) TestRuleRepository_MarkRun() {
	ctx := context.Background()
	repo := repository.NewRuleRepository(s.pool)
	now := time.Now().UTC()

	s.Run("commits exactly once", func() {
		t := s.T()
		id := dbtest.CreateTestRule(t, s.pool, uuid.New(), "follow_up", map[string]any{}, now)

		require.NoError(t, repo.MarkRun(ctx, id, now))
		err := repo.MarkRun(ctx, id, now.Add(time.Minute))
		require.Error(t, err)
		assert.True(t, errs.Is(err, errs.ErrRuleAlreadyRun))

		lastRunAt := dbtest.RuleLastRunAt(t, s.pool, id)
		require.NotNil(t, lastRunAt)
		assert.WithinDuration(t, now, *lastRunAt, time.Millisecond)
	})

	s.Run("missing rule", func() {
		t := s.T()
		err := repo.MarkRun(ctx, uuid.New(), now)
		require.Error(t, err)
		assert.True(t, errs.Is(err, errs.ErrRuleNotFound))
		assert.True(t, infra.IsKind(err, infra.KindNotFound))
	})
}

func (s *repositorySuite) TestRuleRepository_OwnerOperations() {
	ctx := context.Background()
	repo := repository.NewRuleRepository(s.pool)
	now := time.Now().UTC().Truncate(time.Microsecond)
	owner := uuid.New()

	rule, err := automation.NewRule(owner, automation.TypeFollowUp, json.RawMessage(`{"jobId":"x"}`), now, true, now)
	require.NoError(s.T(), err)

	s.Run("create, find, list, reset and toggle", func() {
		t := s.T()

		require.NoError(t, repo.Create(ctx, rule))

		found, err := repo.FindByOwner(ctx, rule.ID(), owner)
		require.NoError(t, err)
		assert.Equal(t, rule.Type(), found.Type())
		assert.True(t, found.Schedule().Equal(now))

		_, err = repo.FindByOwner(ctx, rule.ID(), uuid.New())
		assert.True(t, errs.Is(err, errs.ErrRuleNotFound), "other owners must not see the rule")

		list, err := repo.ListByOwner(ctx, owner)
		require.NoError(t, err)
		assert.Len(t, list, 1)

		require.NoError(t, repo.MarkRun(ctx, rule.ID(), now))
		reset, err := repo.Reset(ctx, rule.ID(), owner, now.Add(time.Minute))
		require.NoError(t, err)
		assert.Nil(t, reset.LastRunAt())
		assert.True(t, reset.IsDue(now.Add(time.Minute)))

		disabled, err := repo.SetEnabled(ctx, rule.ID(), owner, false, now)
		require.NoError(t, err)
		assert.False(t, disabled.Enabled())

		_, err = repo.SetEnabled(ctx, rule.ID(), uuid.New(), true, now)
		assert.True(t, errs.Is(err, errs.ErrRuleNotFound))
	})
}
