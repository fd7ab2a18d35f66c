package automation

import (
	"context"

	domauto "applytrack/internal/domain/automation"
	"applytrack/internal/pkg/errs"
)

// SubmissionScheduleHandler moves one or more jobs to a new status. Each job
// is resolved on its own: a missing job does not stop the others.
type SubmissionScheduleHandler struct {
	handlerBase
}

func (h *SubmissionScheduleHandler) Type() domauto.RuleType {
	return domauto.TypeSubmissionSchedule
}

func (h *SubmissionScheduleHandler) Run(ctx context.Context, rule *domauto.Rule) (Outcome, error) {
	cfg, err := domauto.DecodeConfig[domauto.SubmissionScheduleConfig](rule.Config())
	if err != nil {
		return h.invalidConfig(rule, err), nil
	}

	now := h.clock.Now()
	var updated int
	for _, jobID := range cfg.Targets() {
		changed, err := h.jobs.AppendStatusIfChanged(ctx, jobID, rule.OwnerUserID(), cfg.NewStatus, now)
		if err != nil {
			if errs.Is(err, errs.ErrJobNotFound) {
				h.jobMissing(rule, jobID)
				continue
			}
			return Outcome{}, errs.Wrapf(err, "set status on job %s", jobID)
		}
		updated++
		h.logger.Debug("status applied", append(ruleAttrs(rule), "job_id", jobID, "status", cfg.NewStatus, "history_appended", changed)...)
	}

	if updated == 0 {
		return Skipped("job not found"), nil
	}
	return Applied(), nil
}
