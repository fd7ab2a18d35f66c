package automation

import (
	"context"

	domauto "applytrack/internal/domain/automation"
)

// FollowUpHandler appends a reminder task. It is not idempotent on its own;
// the dispatcher's one-shot commit keeps it to a single task per rule.
type FollowUpHandler struct {
	handlerBase
}

func (h *FollowUpHandler) Type() domauto.RuleType {
	return domauto.TypeFollowUp
}

func (h *FollowUpHandler) Run(ctx context.Context, rule *domauto.Rule) (Outcome, error) {
	cfg, err := domauto.DecodeConfig[domauto.FollowUpConfig](rule.Config())
	if err != nil {
		return h.invalidConfig(rule, err), nil
	}

	jobID := cfg.Target()
	err = h.jobs.AppendFollowUpTask(ctx, jobID, rule.OwnerUserID(), cfg.Note(), string(cfg.Interval), h.clock.Now())
	return h.settle(rule, jobID, err)
}
