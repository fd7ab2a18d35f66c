package automation

import (
	"context"

	"applytrack/internal/domain/application"
	domauto "applytrack/internal/domain/automation"
)

// TemplateResponseHandler renders a message against the locked job record so
// fallbacks read the same fields that are being written.
type TemplateResponseHandler struct {
	handlerBase
}

func (h *TemplateResponseHandler) Type() domauto.RuleType {
	return domauto.TypeTemplateResponse
}

func (h *TemplateResponseHandler) Run(ctx context.Context, rule *domauto.Rule) (Outcome, error) {
	cfg, err := domauto.DecodeConfig[domauto.TemplateResponseConfig](rule.Config())
	if err != nil {
		return h.invalidConfig(rule, err), nil
	}

	render := func(rec *application.Record) string {
		return domauto.RenderTemplate(cfg.TemplateName, cfg.Variables, domauto.JobFields{
			RecruiterName: rec.RecruiterName(),
			Position:      rec.Position(),
			Company:       rec.Company(),
		})
	}

	jobID := cfg.Target()
	err = h.jobs.AppendTemplateResponse(ctx, jobID, rule.OwnerUserID(), cfg.TemplateName, render, h.clock.Now())
	return h.settle(rule, jobID, err)
}
