//go:build unit

package automation_test

import (
	"context"
	"testing"
	"time"

	"applytrack/internal/domain/application"
	domauto "applytrack/internal/domain/automation"
	"applytrack/internal/infra/lock"
	"applytrack/internal/infra/memstore"
	"applytrack/internal/pkg/clock"
	"applytrack/internal/pkg/errs"
	"applytrack/internal/usecase/automation"
	automationmock "applytrack/tests/mock/automation"
	sharedmock "applytrack/tests/mock/shared"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
	"go.uber.org/mock/gomock"
)

func TestParseCadence(t *testing.T) {
	sched, err := automation.ParseCadence("@every 1m")
	require.NoError(t, err)
	assert.Equal(t, baseTime.Add(time.Minute), sched.Next(baseTime))

	sched, err = automation.ParseCadence("*/5 * * * *")
	require.NoError(t, err)
	assert.Equal(t, baseTime.Add(5*time.Minute), sched.Next(baseTime))

	_, err = automation.ParseCadence("every minute")
	assert.Error(t, err)
}

type SchedulerTestSuite struct {
	suite.Suite
	ctx       context.Context
	clk       *clock.MockClock
	rules     *memstore.RuleStore
	jobs      *memstore.JobStore
	scheduler *automation.Scheduler
	owner     uuid.UUID
}

func (s *SchedulerTestSuite) SetupTest() {
	s.ctx = context.Background()
	s.clk = clock.NewMockClock(baseTime)
	s.rules = memstore.NewRuleStore()
	s.jobs = memstore.NewJobStore()
	s.owner = uuid.New()

	logger := discardLogger()
	handlers := automation.NewHandlers(automation.Deps{Jobs: s.jobs, Clock: s.clk, Logger: logger})
	dispatcher, err := automation.NewDispatcher(handlers, s.rules, s.clk, logger, domauto.RetryPolicy{})
	s.Require().NoError(err)
	cadence, err := automation.ParseCadence("@every 1m")
	s.Require().NoError(err)

	s.scheduler = automation.NewScheduler(s.rules, dispatcher, lock.NoopLocker{}, s.clk, cadence, logger)
}

func TestSchedulerTestSuite(t *testing.T) {
	suite.Run(t, new(SchedulerTestSuite))
}

func (s *SchedulerTestSuite) createJob(owner uuid.UUID, status application.Status) uuid.UUID {
	rec, err := application.NewRecord(owner, "Acme", "Backend Engineer", "Dana", status, baseTime.Add(-time.Hour))
	s.Require().NoError(err)
	s.Require().NoError(s.jobs.Create(s.ctx, rec))
	return rec.ID()
}

func (s *SchedulerTestSuite) createRule(owner uuid.UUID, rt domauto.RuleType, cfg any, schedule time.Time) *domauto.Rule {
	rule := mustRule(s.T(), owner, rt, cfg)
	st := rule.State()
	st.Schedule = schedule
	rule = domauto.ReconstructRule(st)
	s.Require().NoError(s.rules.Create(s.ctx, rule))
	return rule
}

func (s *SchedulerTestSuite) job(id uuid.UUID) *application.Record {
	rec, err := s.jobs.FindByOwner(s.ctx, id, s.owner)
	s.Require().NoError(err)
	return rec
}

func (s *SchedulerTestSuite) lastRun(id uuid.UUID, owner uuid.UUID) *time.Time {
	rule, err := s.rules.FindByOwner(s.ctx, id, owner)
	s.Require().NoError(err)
	return rule.LastRunAt()
}

func (s *SchedulerTestSuite) TestTick_FollowUpRunsExactlyOnce() {
	jobID := s.createJob(s.owner, application.StatusApplied)
	rule := s.createRule(s.owner, domauto.TypeFollowUp, map[string]any{"jobId": jobID.String(), "message": "Ping Dana", "interval": "7d"}, baseTime.Add(-time.Minute))

	report, err := s.scheduler.Tick(s.ctx)
	s.Require().NoError(err)
	s.Equal(1, report.Selected)
	s.Equal(1, report.Applied)

	tasks := s.job(jobID).FollowUpTasks()
	s.Require().Len(tasks, 1)
	s.Equal("Ping Dana", tasks[0].Note)
	s.Equal("7d", tasks[0].Interval)
	s.Equal(application.FollowUpTypeAutomation, tasks[0].Type)
	s.False(tasks[0].Completed)
	s.Equal(baseTime, tasks[0].CreatedAt)
	s.Require().NotNil(s.lastRun(rule.ID(), s.owner))

	s.clk.Add(time.Hour)
	report, err = s.scheduler.Tick(s.ctx)
	s.Require().NoError(err)
	s.Zero(report.Selected)
	s.Len(s.job(jobID).FollowUpTasks(), 1)
}

func (s *SchedulerTestSuite) TestTick_SelectsOnlyDueRules() {
	jobID := s.createJob(s.owner, application.StatusApplied)
	cfg := map[string]any{"jobId": jobID.String()}

	due := s.createRule(s.owner, domauto.TypeFollowUp, cfg, baseTime)
	future := s.createRule(s.owner, domauto.TypeFollowUp, cfg, baseTime.Add(time.Second))
	disabled := s.createRule(s.owner, domauto.TypeFollowUp, cfg, baseTime.Add(-time.Hour))
	_, err := s.rules.SetEnabled(s.ctx, disabled.ID(), s.owner, false, baseTime)
	s.Require().NoError(err)

	report, err := s.scheduler.Tick(s.ctx)
	s.Require().NoError(err)

	s.Equal(1, report.Selected)
	s.NotNil(s.lastRun(due.ID(), s.owner))
	s.Nil(s.lastRun(future.ID(), s.owner))
	s.Nil(s.lastRun(disabled.ID(), s.owner))
	s.Len(s.job(jobID).FollowUpTasks(), 1)
}

func (s *SchedulerTestSuite) TestTick_RuleCannotTouchAnotherOwnersJob() {
	stranger := uuid.New()
	jobID := s.createJob(s.owner, application.StatusApplied)
	before := s.job(jobID).State()
	rule := s.createRule(stranger, domauto.TypeFollowUp, map[string]any{"jobId": jobID.String()}, baseTime)

	report, err := s.scheduler.Tick(s.ctx)
	s.Require().NoError(err)

	s.Equal(1, report.Skipped)
	s.Equal(before, s.job(jobID).State())
	s.NotNil(s.lastRun(rule.ID(), stranger))
}

func (s *SchedulerTestSuite) TestTick_EmptyPackageConfigIsCommittedAsSkip() {
	jobID := s.createJob(s.owner, application.StatusApplied)
	rule := s.createRule(s.owner, domauto.TypeApplicationPackage, map[string]any{"jobId": jobID.String()}, baseTime)

	report, err := s.scheduler.Tick(s.ctx)
	s.Require().NoError(err)

	s.Equal(1, report.Skipped)
	s.Nil(s.job(jobID).ApplicationPackage())
	s.NotNil(s.lastRun(rule.ID(), s.owner))
}

func (s *SchedulerTestSuite) TestTick_SubmissionScheduleDedupesStatusHistory() {
	jobID := s.createJob(s.owner, application.StatusInterested)
	cfg := map[string]any{"jobId": jobID.String(), "newStatus": "applied"}
	s.createRule(s.owner, domauto.TypeSubmissionSchedule, cfg, baseTime.Add(-2*time.Minute))
	s.createRule(s.owner, domauto.TypeSubmissionSchedule, cfg, baseTime.Add(-time.Minute))

	report, err := s.scheduler.Tick(s.ctx)
	s.Require().NoError(err)
	s.Equal(2, report.Applied)

	rec := s.job(jobID)
	s.Equal(application.StatusApplied, rec.Status())
	history := rec.StatusHistory()
	s.Require().Len(history, 2)
	s.Equal(application.StatusInterested, history[0].Status)
	s.Equal(application.StatusApplied, history[1].Status)
	s.Equal(baseTime, history[1].Timestamp)
}

func (s *SchedulerTestSuite) TestTick_ChecklistAndTemplate() {
	jobID := s.createJob(s.owner, application.StatusApplied)
	s.createRule(s.owner, domauto.TypeChecklist, map[string]any{
		"jobId":                jobID.String(),
		"items":                []string{"Research company", "Prepare questions"},
		"autoCompleteOnStatus": "applied",
	}, baseTime.Add(-2*time.Minute))
	s.createRule(s.owner, domauto.TypeTemplateResponse, map[string]any{
		"jobId":        jobID.String(),
		"templateName": domauto.TemplateApplicationFollowUp,
	}, baseTime.Add(-time.Minute))

	report, err := s.scheduler.Tick(s.ctx)
	s.Require().NoError(err)
	s.Equal(2, report.Applied)

	rec := s.job(jobID)
	s.Require().Len(rec.Checklist(), 2)
	for _, item := range rec.Checklist() {
		s.True(item.Completed)
		s.Equal(application.ChecklistSourceAutomation, item.Source)
	}
	s.Require().Len(rec.TemplateResponses(), 1)
	msg := rec.TemplateResponses()[0].Message
	s.Contains(msg, "Dear Dana")
	s.Contains(msg, "Backend Engineer position at Acme")
}

func (s *SchedulerTestSuite) TestTick_UnknownTypeStaysPending() {
	st := domauto.RuleState{
		ID:          uuid.New(),
		OwnerUserID: s.owner,
		Type:        domauto.RuleType("email_blast"),
		Config:      []byte(`{}`),
		Schedule:    baseTime,
		Enabled:     true,
		CreatedAt:   baseTime,
		UpdatedAt:   baseTime,
	}
	s.rules.Put(st)

	for range 2 {
		report, err := s.scheduler.Tick(s.ctx)
		s.Require().NoError(err)
		s.Equal(1, report.Selected)
		s.Equal(1, report.UnknownType)
	}
	s.Nil(s.lastRun(st.ID, s.owner))
}

func (s *SchedulerTestSuite) TestStats() {
	jobID := s.createJob(s.owner, application.StatusApplied)
	s.createRule(s.owner, domauto.TypeFollowUp, map[string]any{"jobId": jobID.String()}, baseTime)

	s.Zero(s.scheduler.Stats().Ticks)

	_, err := s.scheduler.Tick(s.ctx)
	s.Require().NoError(err)

	st := s.scheduler.Stats()
	s.EqualValues(1, st.Ticks)
	s.Equal(baseTime, st.LastTickAt)
	s.Require().NotNil(st.LastReport)
	s.Equal(1, st.LastReport.Applied)
	s.False(st.Running)
}

func (s *SchedulerTestSuite) TestRunLoop() {
	jobID := s.createJob(s.owner, application.StatusApplied)
	s.createRule(s.owner, domauto.TypeFollowUp, map[string]any{"jobId": jobID.String()}, baseTime.Add(30*time.Second))

	s.Require().NoError(s.scheduler.Start(s.ctx))
	s.Error(s.scheduler.Start(s.ctx))
	s.True(s.scheduler.Stats().Running)

	s.Eventually(func() bool { return s.clk.PendingTimers() == 1 }, time.Second, 5*time.Millisecond)
	s.Empty(s.job(jobID).FollowUpTasks())

	s.clk.Add(time.Minute)
	s.Eventually(func() bool {
		return len(s.job(jobID).FollowUpTasks()) == 1
	}, time.Second, 5*time.Millisecond)

	s.Eventually(func() bool { return s.clk.PendingTimers() == 1 }, time.Second, 5*time.Millisecond)
	s.clk.Add(time.Minute)
	s.Eventually(func() bool { return s.scheduler.Stats().Ticks == 2 }, time.Second, 5*time.Millisecond)
	s.Len(s.job(jobID).FollowUpTasks(), 1)

	ctx, cancel := context.WithTimeout(s.ctx, time.Second)
	defer cancel()
	s.Require().NoError(s.scheduler.Stop(ctx))
	s.False(s.scheduler.Stats().Running)
	s.NoError(s.scheduler.Stop(ctx))
}

func TestScheduler_LockNotTaken(t *testing.T) {
	ctrl := gomock.NewController(t)
	rules := sharedmock.NewMockRuleRepository(ctrl)
	executor := automationmock.NewMockExecutor(ctrl)
	locker := sharedmock.NewMockLocker(ctrl)
	cadence, err := automation.ParseCadence("@every 1m")
	require.NoError(t, err)
	sched := automation.NewScheduler(rules, executor, locker, clock.NewMockClock(baseTime), cadence, discardLogger())

	t.Run("held elsewhere", func(t *testing.T) {
		locker.EXPECT().TryAcquire(gomock.Any()).Return(nil, false, nil)

		_, err := sched.Tick(context.Background())

		assert.True(t, errs.Is(err, errs.ErrLeaderLockNotTaken))
		assert.Zero(t, sched.Stats().Ticks)
	})

	t.Run("lock error", func(t *testing.T) {
		locker.EXPECT().TryAcquire(gomock.Any()).Return(nil, false, errs.New("conn refused"))

		_, err := sched.Tick(context.Background())

		assert.Error(t, err)
		assert.False(t, errs.Is(err, errs.ErrLeaderLockNotTaken))
	})

	t.Run("acquired lock is released after the tick", func(t *testing.T) {
		released := false
		rule := mustRule(t, uuid.New(), domauto.TypeFollowUp, map[string]any{"jobId": uuid.NewString()})
		gomock.InOrder(
			locker.EXPECT().TryAcquire(gomock.Any()).Return(func() { released = true }, true, nil),
			rules.EXPECT().ListDue(gomock.Any(), baseTime).Return([]*domauto.Rule{rule}, nil),
			executor.EXPECT().Execute(gomock.Any(), rule).Return(automation.Outcome{}, errs.New("boom")),
		)

		report, err := sched.Tick(context.Background())

		require.NoError(t, err)
		assert.Equal(t, 1, report.Failed)
		assert.True(t, released)
	})

	t.Run("list failure is returned", func(t *testing.T) {
		locker.EXPECT().TryAcquire(gomock.Any()).Return(func() {}, true, nil)
		rules.EXPECT().ListDue(gomock.Any(), gomock.Any()).Return(nil, errs.New("db down"))

		_, err := sched.Tick(context.Background())

		assert.ErrorContains(t, err, "db down")
	})
}

func TestScheduler_ManualTickJoinsInFlightTick(t *testing.T) {
	ctrl := gomock.NewController(t)
	rules := sharedmock.NewMockRuleRepository(ctrl)
	executor := automationmock.NewMockExecutor(ctrl)
	locker := sharedmock.NewMockLocker(ctrl)
	cadence, err := automation.ParseCadence("@every 1m")
	require.NoError(t, err)
	sched := automation.NewScheduler(rules, executor, locker, clock.NewMockClock(baseTime), cadence, discardLogger())

	rule := mustRule(t, uuid.New(), domauto.TypeFollowUp, map[string]any{"jobId": uuid.NewString()})
	entered := make(chan struct{})
	unblock := make(chan struct{})
	locker.EXPECT().TryAcquire(gomock.Any()).Return(func() {}, true, nil).Times(1)
	rules.EXPECT().ListDue(gomock.Any(), baseTime).Return([]*domauto.Rule{rule}, nil).Times(1)
	executor.EXPECT().Execute(gomock.Any(), rule).DoAndReturn(func(context.Context, *domauto.Rule) (automation.Outcome, error) {
		close(entered)
		<-unblock
		return automation.Applied(), nil
	}).Times(1)

	reports := make(chan automation.TickReport, 2)
	go func() {
		r, err := sched.Tick(context.Background())
		assert.NoError(t, err)
		reports <- r
	}()
	<-entered
	go func() {
		r, err := sched.Tick(context.Background())
		assert.NoError(t, err)
		reports <- r
	}()
	// give the second caller time to reach the in-flight call
	time.Sleep(50 * time.Millisecond)
	close(unblock)

	first, second := <-reports, <-reports
	assert.Equal(t, first, second)
	assert.Equal(t, 1, first.Applied)
	assert.EqualValues(t, 1, sched.Stats().Ticks)
}

// contextRuleStore refuses commits on a finished context, as the pgx store does.
type contextRuleStore struct {
	*memstore.RuleStore
}

func (r contextRuleStore) MarkRun(ctx context.Context, id uuid.UUID, at time.Time) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	return r.RuleStore.MarkRun(ctx, id, at)
}

// cancelAfterFollowUp cancels the caller once the follow-up has been stored.
type cancelAfterFollowUp struct {
	*memstore.JobStore
	cancel context.CancelFunc
}

func (j cancelAfterFollowUp) AppendFollowUpTask(ctx context.Context, id, ownerUserID uuid.UUID, note, interval string, at time.Time) error {
	err := j.JobStore.AppendFollowUpTask(ctx, id, ownerUserID, note, interval, at)
	j.cancel()
	return err
}

func TestScheduler_CallerCancellationAfterMutation(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	clk := clock.NewMockClock(baseTime)
	rules := contextRuleStore{RuleStore: memstore.NewRuleStore()}
	jobs := cancelAfterFollowUp{JobStore: memstore.NewJobStore(), cancel: cancel}
	logger := discardLogger()
	dispatcher, err := automation.NewDispatcher(
		automation.NewHandlers(automation.Deps{Jobs: jobs, Clock: clk, Logger: logger}),
		rules, clk, logger, domauto.RetryPolicy{})
	require.NoError(t, err)
	cadence, err := automation.ParseCadence("@every 1m")
	require.NoError(t, err)
	sched := automation.NewScheduler(rules, dispatcher, lock.NoopLocker{}, clk, cadence, logger)

	owner := uuid.New()
	rec, err := application.NewRecord(owner, "Acme", "Backend Engineer", "Dana", application.StatusApplied, baseTime.Add(-time.Hour))
	require.NoError(t, err)
	require.NoError(t, jobs.Create(context.Background(), rec))
	rule := mustRule(t, owner, domauto.TypeFollowUp, map[string]any{"jobId": rec.ID().String(), "message": "Check status"})
	require.NoError(t, rules.Create(context.Background(), rule))

	// the caller may stop waiting before the pass reports
	_, _ = sched.Tick(ctx)

	// joins the first pass if it is still running
	_, err = sched.Tick(context.Background())
	require.NoError(t, err)

	report, err := sched.Tick(context.Background())
	require.NoError(t, err)
	assert.Zero(t, report.Selected)

	got, err := jobs.FindByOwner(context.Background(), rec.ID(), owner)
	require.NoError(t, err)
	assert.Len(t, got.FollowUpTasks(), 1)
	stored, err := rules.FindByOwner(context.Background(), rule.ID(), owner)
	require.NoError(t, err)
	assert.NotNil(t, stored.LastRunAt())
}

func TestScheduler_StopInterruptsBetweenRules(t *testing.T) {
	ctrl := gomock.NewController(t)
	rules := sharedmock.NewMockRuleRepository(ctrl)
	executor := automationmock.NewMockExecutor(ctrl)
	cadence, err := automation.ParseCadence("@every 1m")
	require.NoError(t, err)
	sched := automation.NewScheduler(rules, executor, lock.NoopLocker{}, clock.NewMockClock(baseTime), cadence, discardLogger())
	require.NoError(t, sched.Start(context.Background()))

	first := mustRule(t, uuid.New(), domauto.TypeFollowUp, map[string]any{"jobId": uuid.NewString()})
	second := mustRule(t, uuid.New(), domauto.TypeFollowUp, map[string]any{"jobId": uuid.NewString()})
	rules.EXPECT().ListDue(gomock.Any(), baseTime).Return([]*domauto.Rule{first, second}, nil)
	executor.EXPECT().Execute(gomock.Any(), first).
		DoAndReturn(func(ctx context.Context, _ *domauto.Rule) (automation.Outcome, error) {
			stopCtx, cancel := context.WithTimeout(context.Background(), time.Second)
			defer cancel()
			assert.NoError(t, sched.Stop(stopCtx))
			assert.NoError(t, ctx.Err(), "a started rule keeps its context")
			return automation.Applied(), nil
		})

	report, err := sched.Tick(context.Background())

	require.NoError(t, err)
	assert.Equal(t, 2, report.Selected)
	assert.Equal(t, 1, report.Applied)
}
