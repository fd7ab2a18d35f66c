package automation

import (
	"context"
	"fmt"
	"log/slog"
	"runtime/debug"

	domauto "applytrack/internal/domain/automation"
	"applytrack/internal/pkg/clock"
	"applytrack/internal/pkg/errs"
	"applytrack/internal/usecase/shared"
)

// Dispatcher routes a due rule to its handler and commits it. The table is
// fixed at construction and must cover every known rule type exactly once.
type Dispatcher struct {
	handlers map[domauto.RuleType]Handler
	rules    shared.RuleRepository
	clock    clock.Clock
	logger   *slog.Logger
	retry    domauto.RetryPolicy
}

func NewDispatcher(handlers []Handler, rules shared.RuleRepository, clk clock.Clock, logger *slog.Logger, retry domauto.RetryPolicy) (*Dispatcher, error) {
	table := make(map[domauto.RuleType]Handler, len(handlers))
	for _, h := range handlers {
		t := h.Type()
		if !t.IsValid() {
			return nil, errs.Mark(errs.Newf("handler registered for unknown type %q", t), errs.ErrUnknownRuleType)
		}
		if _, dup := table[t]; dup {
			return nil, errs.Mark(errs.Newf("more than one handler for %q", t), errs.ErrDuplicateHandler)
		}
		table[t] = h
	}
	for _, t := range domauto.AllTypes() {
		if _, ok := table[t]; !ok {
			return nil, errs.Mark(errs.Newf("no handler for %q", t), errs.ErrMissingHandler)
		}
	}

	return &Dispatcher{
		handlers: table,
		rules:    rules,
		clock:    clk,
		logger:   logger,
		retry:    retry,
	}, nil
}

// Execute runs one rule. On success (including handled skips) the rule is
// committed with last_run_at. Unknown types are left untouched. Handler
// errors and panics leave the rule uncommitted; with an enabled retry policy
// the failure is recorded for backoff.
func (d *Dispatcher) Execute(ctx context.Context, rule *domauto.Rule) (Outcome, error) {
	attrs := ruleAttrs(rule)

	h, ok := d.handlers[rule.Type()]
	if !ok {
		d.logger.Error("unknown rule type, leaving rule unmarked", attrs...)
		return Outcome{}, errs.Mark(errs.Newf("rule %s has type %q", rule.ID(), rule.Type()), errs.ErrUnknownRuleType)
	}

	out, err := d.run(ctx, h, rule)
	// bookkeeping must land even if the caller gives up after the handler ran
	commitCtx := context.WithoutCancel(ctx)
	if err != nil {
		d.logger.Error("rule execution failed", append(attrs, "error", err)...)
		d.recordFailure(commitCtx, rule, err)
		return out, err
	}

	if err := d.rules.MarkRun(commitCtx, rule.ID(), d.clock.Now()); err != nil {
		if errs.Is(err, errs.ErrRuleAlreadyRun) {
			d.logger.Warn("rule was committed concurrently", attrs...)
			return out, nil
		}
		d.logger.Error("failed to mark rule as run", append(attrs, "error", err)...)
		return out, errs.Wrap(err, "mark rule run")
	}

	if out.Result == ResultSkipped {
		d.logger.Info("rule skipped", append(attrs, "reason", out.Reason)...)
	} else {
		d.logger.Info("rule applied", attrs...)
	}
	return out, nil
}

func (d *Dispatcher) run(ctx context.Context, h Handler, rule *domauto.Rule) (out Outcome, err error) {
	defer func() {
		if r := recover(); r != nil {
			d.logger.Error("handler panicked", append(ruleAttrs(rule), "panic", r, "stack", string(debug.Stack()))...)
			err = errs.Mark(errs.New(fmt.Sprint(r)), errs.ErrHandlerPanicked)
			out = Outcome{}
		}
	}()
	return h.Run(ctx, rule)
}

func (d *Dispatcher) recordFailure(ctx context.Context, rule *domauto.Rule, cause error) {
	if !d.retry.Enabled() {
		return
	}
	f := d.retry.Next(rule.Attempts(), cause, d.clock.Now())
	if err := d.rules.RecordFailure(ctx, rule.ID(), f, d.clock.Now()); err != nil {
		d.logger.Error("failed to record rule failure", append(ruleAttrs(rule), "error", err)...)
		return
	}
	if f.DeadLettered {
		d.logger.Warn("rule dead-lettered", append(ruleAttrs(rule), "attempts", f.Attempts)...)
	}
}
