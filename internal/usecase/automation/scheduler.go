package automation

import (
	"context"
	"log/slog"
	"sync"
	"time"

	domauto "applytrack/internal/domain/automation"
	"applytrack/internal/pkg/clock"
	"applytrack/internal/pkg/errs"
	"applytrack/internal/usecase/shared"

	"github.com/robfig/cron/v3"
	"golang.org/x/sync/singleflight"
)

//go:generate mockgen -source=scheduler.go -destination=../../../tests/mock/automation/scheduler_mock.go -package=automationmock

// Executor runs a single rule.
type Executor interface {
	Execute(ctx context.Context, rule *domauto.Rule) (Outcome, error)
}

// TickRunner is what the operator API needs from the scheduler.
type TickRunner interface {
	Tick(ctx context.Context) (TickReport, error)
	Stats() Stats
}

type TickReport struct {
	StartedAt   time.Time     `json:"startedAt"`
	Duration    time.Duration `json:"duration"`
	Selected    int           `json:"selected"`
	Applied     int           `json:"applied"`
	Skipped     int           `json:"skipped"`
	Failed      int           `json:"failed"`
	UnknownType int           `json:"unknownType"`
}

type Stats struct {
	Running    bool        `json:"running"`
	Ticks      int64       `json:"ticks"`
	LastTickAt time.Time   `json:"lastTickAt"`
	LastReport *TickReport `json:"lastReport,omitempty"`
}

// ParseCadence accepts any standard cron expression or descriptor such as
// "@every 1m" or "*/5 * * * *".
func ParseCadence(expr string) (cron.Schedule, error) {
	sched, err := cron.ParseStandard(expr)
	if err != nil {
		return nil, errs.Wrapf(err, "invalid automation schedule %q", expr)
	}
	return sched, nil
}

// Scheduler polls for due rules on a cron cadence and feeds them to the
// executor one at a time. Ticks never overlap: a tick requested while one is
// in flight waits for and shares the in-flight result.
type Scheduler struct {
	rules    shared.RuleRepository
	executor Executor
	locker   shared.Locker
	clock    clock.Clock
	cadence  cron.Schedule
	logger   *slog.Logger

	flight singleflight.Group

	mu       sync.Mutex
	stats    Stats
	lifetime context.Context
	cancel   context.CancelFunc
	done     chan struct{}
}

func NewScheduler(rules shared.RuleRepository, executor Executor, locker shared.Locker, clk clock.Clock, cadence cron.Schedule, logger *slog.Logger) *Scheduler {
	return &Scheduler{
		rules:    rules,
		executor: executor,
		locker:   locker,
		clock:    clk,
		cadence:  cadence,
		logger:   logger,
		lifetime: context.Background(),
	}
}

// Start launches the loop goroutine. The loop ends when ctx is cancelled or
// Stop is called.
func (s *Scheduler) Start(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.cancel != nil {
		return errs.New("scheduler already started")
	}
	loopCtx, cancel := context.WithCancel(ctx)
	s.lifetime = loopCtx
	s.cancel = cancel
	s.done = make(chan struct{})
	s.stats.Running = true

	go s.run(loopCtx, s.done)
	s.logger.Info("automation scheduler started", "next_tick", s.cadence.Next(s.clock.Now()))
	return nil
}

// Stop cancels the loop and waits for the in-flight tick, or until ctx ends.
func (s *Scheduler) Stop(ctx context.Context) error {
	s.mu.Lock()
	cancel, done := s.cancel, s.done
	s.cancel, s.done = nil, nil
	s.lifetime = context.Background()
	s.mu.Unlock()

	if cancel == nil {
		return nil
	}
	cancel()

	select {
	case <-done:
		s.logger.Info("automation scheduler stopped")
		return nil
	case <-ctx.Done():
		return errs.Wrap(ctx.Err(), "waiting for in-flight tick")
	}
}

func (s *Scheduler) run(ctx context.Context, done chan struct{}) {
	defer func() {
		s.mu.Lock()
		s.stats.Running = false
		s.mu.Unlock()
		close(done)
	}()

	for {
		now := s.clock.Now()
		timer := s.clock.NewTimer(s.cadence.Next(now).Sub(now))

		select {
		case <-ctx.Done():
			timer.Stop()
			return
		case <-timer.C():
			res := <-s.flight.DoChan("tick", s.sharedTick)
			if err := res.Err; err != nil {
				if errs.Is(err, errs.ErrLeaderLockNotTaken) {
					s.logger.Debug("tick skipped, another instance holds the lock")
					continue
				}
				s.logger.Warn("automation tick failed", "error", err)
			}
		}
	}
}

// Tick runs one polling pass now, or joins the one in flight. ctx only bounds
// the wait: the pass itself runs until it finishes or the scheduler stops.
func (s *Scheduler) Tick(ctx context.Context) (TickReport, error) {
	select {
	case res := <-s.flight.DoChan("tick", s.sharedTick):
		report, _ := res.Val.(TickReport)
		return report, res.Err
	case <-ctx.Done():
		return TickReport{}, errs.Wrap(ctx.Err(), "waiting for tick")
	}
}

func (s *Scheduler) sharedTick() (any, error) {
	s.mu.Lock()
	ctx := s.lifetime
	s.mu.Unlock()
	return s.tick(ctx)
}

func (s *Scheduler) tick(ctx context.Context) (TickReport, error) {
	report := TickReport{StartedAt: s.clock.Now()}

	release, acquired, err := s.locker.TryAcquire(ctx)
	if err != nil {
		return report, errs.Wrap(err, "acquire scheduler lock")
	}
	if !acquired {
		return report, errs.Mark(errs.New("scheduler lock held elsewhere"), errs.ErrLeaderLockNotTaken)
	}
	defer release()

	tickNo := s.beginTick(report.StartedAt)

	due, err := s.rules.ListDue(ctx, report.StartedAt)
	if err != nil {
		s.finishTick(&report)
		return report, errs.Wrap(err, "list due rules")
	}
	report.Selected = len(due)

	for _, rule := range due {
		if ctx.Err() != nil {
			s.logger.Info("tick interrupted", "tick", tickNo, "remaining", report.Selected-report.Applied-report.Skipped-report.Failed-report.UnknownType)
			break
		}
		// a started rule always reaches its commit
		out, err := s.executor.Execute(context.WithoutCancel(ctx), rule)
		switch {
		case errs.Is(err, errs.ErrUnknownRuleType):
			report.UnknownType++
		case err != nil:
			report.Failed++
		case out.Result == ResultSkipped:
			report.Skipped++
		default:
			report.Applied++
		}
	}

	s.finishTick(&report)
	if report.Selected > 0 {
		s.logger.Info("automation tick finished",
			"tick", tickNo,
			"selected", report.Selected,
			"applied", report.Applied,
			"skipped", report.Skipped,
			"failed", report.Failed,
			"unknown_type", report.UnknownType,
			"duration", report.Duration)
	}
	return report, nil
}

func (s *Scheduler) beginTick(at time.Time) int64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.stats.Ticks++
	s.stats.LastTickAt = at
	return s.stats.Ticks
}

func (s *Scheduler) finishTick(report *TickReport) {
	report.Duration = s.clock.Now().Sub(report.StartedAt)

	s.mu.Lock()
	defer s.mu.Unlock()
	r := *report
	s.stats.LastReport = &r
}

func (s *Scheduler) Stats() Stats {
	s.mu.Lock()
	defer s.mu.Unlock()
	st := s.stats
	if st.LastReport != nil {
		r := *st.LastReport
		st.LastReport = &r
	}
	return st
}
