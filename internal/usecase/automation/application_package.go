package automation

import (
	"context"

	domauto "applytrack/internal/domain/automation"
)

// ApplicationPackageHandler overwrites the job's package snapshot.
type ApplicationPackageHandler struct {
	handlerBase
}

func (h *ApplicationPackageHandler) Type() domauto.RuleType {
	return domauto.TypeApplicationPackage
}

func (h *ApplicationPackageHandler) Run(ctx context.Context, rule *domauto.Rule) (Outcome, error) {
	cfg, err := domauto.DecodeConfig[domauto.ApplicationPackageConfig](rule.Config())
	if err != nil {
		return h.invalidConfig(rule, err), nil
	}

	jobID := cfg.Target()
	err = h.jobs.SetApplicationPackage(ctx, jobID, rule.OwnerUserID(), cfg.Package(rule.ID()), h.clock.Now())
	return h.settle(rule, jobID, err)
}
