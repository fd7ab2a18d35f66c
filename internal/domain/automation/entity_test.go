//go:build unit

package automation_test

import (
	"encoding/json"
	"testing"
	"time"

	"applytrack/internal/domain/automation"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var baseTime = time.Date(2025, 3, 1, 9, 0, 0, 0, time.UTC)

func TestParseType(t *testing.T) {
	for _, rt := range automation.AllTypes() {
		got, err := automation.ParseType(rt.String())
		require.NoError(t, err)
		assert.Equal(t, rt, got)
	}

	_, err := automation.ParseType("send_email")
	assert.ErrorIs(t, err, automation.ErrInvalidRuleType)
}

func TestNewRule(t *testing.T) {
	owner := uuid.New()

	t.Run("success", func(t *testing.T) {
		rule, err := automation.NewRule(owner, automation.TypeFollowUp, json.RawMessage(`{"jobId":"x"}`), baseTime, true, baseTime)
		require.NoError(t, err)
		assert.NotEqual(t, uuid.Nil, rule.ID())
		assert.Nil(t, rule.LastRunAt())
		assert.True(t, rule.Enabled())
		assert.JSONEq(t, `{"jobId":"x"}`, string(rule.Config()))
	})

	t.Run("empty config becomes object", func(t *testing.T) {
		rule, err := automation.NewRule(owner, automation.TypeChecklist, nil, baseTime, true, baseTime)
		require.NoError(t, err)
		assert.Equal(t, "{}", string(rule.Config()))
	})

	testCases := []struct {
		name     string
		owner    uuid.UUID
		ruleType automation.RuleType
		schedule time.Time
		errIs    error
	}{
		{name: "missing owner", owner: uuid.Nil, ruleType: automation.TypeFollowUp, schedule: baseTime, errIs: automation.ErrMissingOwner},
		{name: "unknown type", owner: owner, ruleType: "bogus", schedule: baseTime, errIs: automation.ErrInvalidRuleType},
		{name: "zero schedule", owner: owner, ruleType: automation.TypeFollowUp, errIs: automation.ErrMissingSchedule},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := automation.NewRule(tc.owner, tc.ruleType, nil, tc.schedule, true, baseTime)
			assert.ErrorIs(t, err, tc.errIs)
		})
	}
}

func TestRule_IsDue(t *testing.T) {
	past := baseTime.Add(-time.Minute)
	future := baseTime.Add(time.Minute)
	ran := baseTime.Add(-time.Second)

	testCases := []struct {
		name  string
		state automation.RuleState
		want  bool
	}{
		{name: "schedule in past", state: automation.RuleState{Enabled: true, Schedule: past}, want: true},
		{name: "schedule equals now", state: automation.RuleState{Enabled: true, Schedule: baseTime}, want: true},
		{name: "schedule in future", state: automation.RuleState{Enabled: true, Schedule: future}},
		{name: "disabled", state: automation.RuleState{Enabled: false, Schedule: past}},
		{name: "already run", state: automation.RuleState{Enabled: true, Schedule: past, LastRunAt: &ran}},
		{name: "dead lettered", state: automation.RuleState{Enabled: true, Schedule: past, DeadLetteredAt: &ran}},
		{name: "backing off", state: automation.RuleState{Enabled: true, Schedule: past, NextAttemptAt: &future}},
		{name: "backoff elapsed", state: automation.RuleState{Enabled: true, Schedule: past, NextAttemptAt: &past}, want: true},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			rule := automation.ReconstructRule(tc.state)
			assert.Equal(t, tc.want, rule.IsDue(baseTime))
		})
	}
}

func TestRule_Lifecycle(t *testing.T) {
	rule, err := automation.NewRule(uuid.New(), automation.TypeFollowUp, nil, baseTime, true, baseTime)
	require.NoError(t, err)

	assert.True(t, rule.MarkRun(baseTime))
	assert.False(t, rule.MarkRun(baseTime.Add(time.Minute)), "second commit must be refused")
	require.NotNil(t, rule.LastRunAt())
	assert.Equal(t, baseTime, *rule.LastRunAt())
	assert.False(t, rule.IsDue(baseTime.Add(time.Hour)))

	next := baseTime.Add(time.Hour)
	rule.RecordFailure(automation.Failure{Attempts: 2, LastError: "boom", NextAttemptAt: &next, DeadLettered: true}, baseTime)
	assert.Equal(t, 2, rule.Attempts())
	assert.NotNil(t, rule.DeadLetteredAt())

	rule.Reset(baseTime.Add(time.Minute))
	assert.Nil(t, rule.LastRunAt())
	assert.Nil(t, rule.DeadLetteredAt())
	assert.Nil(t, rule.NextAttemptAt())
	assert.Zero(t, rule.Attempts())
	assert.Empty(t, rule.LastError())
	assert.True(t, rule.IsDue(baseTime.Add(time.Minute)))

	rule.SetEnabled(false, baseTime)
	assert.False(t, rule.IsDue(baseTime.Add(time.Minute)))
}

func TestRetryPolicy(t *testing.T) {
	t.Run("zero value is disabled", func(t *testing.T) {
		assert.False(t, automation.RetryPolicy{}.Enabled())
		assert.False(t, automation.RetryPolicy{MaxDelay: time.Hour}.Enabled())
	})

	t.Run("capped exponential delay", func(t *testing.T) {
		p := automation.RetryPolicy{BaseDelay: time.Minute, MaxDelay: 5 * time.Minute}
		assert.Equal(t, time.Minute, p.Delay(1))
		assert.Equal(t, 2*time.Minute, p.Delay(2))
		assert.Equal(t, 4*time.Minute, p.Delay(3))
		assert.Equal(t, 5*time.Minute, p.Delay(4))
		assert.Equal(t, 5*time.Minute, p.Delay(60))
	})

	t.Run("next schedules backoff", func(t *testing.T) {
		p := automation.RetryPolicy{MaxAttempts: 3, BaseDelay: time.Minute, MaxDelay: time.Hour}
		f := p.Next(0, assert.AnError, baseTime)
		assert.Equal(t, 1, f.Attempts)
		assert.Equal(t, assert.AnError.Error(), f.LastError)
		require.NotNil(t, f.NextAttemptAt)
		assert.Equal(t, baseTime.Add(time.Minute), *f.NextAttemptAt)
		assert.False(t, f.DeadLettered)
	})

	t.Run("max attempts dead letters", func(t *testing.T) {
		p := automation.RetryPolicy{MaxAttempts: 3}
		f := p.Next(2, assert.AnError, baseTime)
		assert.Equal(t, 3, f.Attempts)
		assert.True(t, f.DeadLettered)
		assert.Nil(t, f.NextAttemptAt)
	})
}
