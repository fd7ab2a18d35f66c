package automation

import (
	"context"

	domauto "applytrack/internal/domain/automation"
)

type ChecklistHandler struct {
	handlerBase
}

func (h *ChecklistHandler) Type() domauto.RuleType {
	return domauto.TypeChecklist
}

func (h *ChecklistHandler) Run(ctx context.Context, rule *domauto.Rule) (Outcome, error) {
	cfg, err := domauto.DecodeConfig[domauto.ChecklistConfig](rule.Config())
	if err != nil {
		return h.invalidConfig(rule, err), nil
	}

	jobID := cfg.Target()
	res, err := h.jobs.AddChecklistItemsIfAbsent(ctx, jobID, rule.OwnerUserID(), cfg.Labels(), cfg.AutoCompleteOnStatus, h.clock.Now())
	if err == nil {
		h.logger.Debug("checklist updated", append(ruleAttrs(rule), "job_id", jobID, "added", res.Added, "completed", res.Completed)...)
	}
	return h.settle(rule, jobID, err)
}
