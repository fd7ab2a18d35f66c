package automation

import (
	"context"
	"errors"
	"log/slog"

	"applytrack/internal/domain/application"
	domauto "applytrack/internal/domain/automation"
	"applytrack/internal/pkg/clock"
	"applytrack/internal/pkg/errs"
	"applytrack/internal/usecase/shared"

	"github.com/google/uuid"
)

type Result string

const (
	ResultApplied Result = "applied"
	ResultSkipped Result = "skipped"
)

type Outcome struct {
	Result Result
	Reason string
}

func Applied() Outcome {
	return Outcome{Result: ResultApplied}
}

func Skipped(reason string) Outcome {
	return Outcome{Result: ResultSkipped, Reason: reason}
}

//go:generate mockgen -source=handler.go -destination=../../../tests/mock/automation/handler_mock.go -package=automationmock

// Handler applies one rule type. Invalid config and missing jobs are
// reported as skipped outcomes; only infrastructure failures are returned as
// errors.
type Handler interface {
	Type() domauto.RuleType
	Run(ctx context.Context, rule *domauto.Rule) (Outcome, error)
}

// Deps is what every built-in handler needs.
type Deps struct {
	Jobs   shared.JobRecordRepository
	Clock  clock.Clock
	Logger *slog.Logger
}

// NewHandlers returns one handler per known rule type.
func NewHandlers(deps Deps) []Handler {
	base := handlerBase{jobs: deps.Jobs, clock: deps.Clock, logger: deps.Logger}
	return []Handler{
		&ApplicationPackageHandler{handlerBase: base},
		&SubmissionScheduleHandler{handlerBase: base},
		&FollowUpHandler{handlerBase: base},
		&ChecklistHandler{handlerBase: base},
		&TemplateResponseHandler{handlerBase: base},
	}
}

type handlerBase struct {
	jobs   shared.JobRecordRepository
	clock  clock.Clock
	logger *slog.Logger
}

func (b handlerBase) invalidConfig(rule *domauto.Rule, err error) Outcome {
	b.logger.Warn("skipping rule with invalid config", append(ruleAttrs(rule), "error", err)...)
	return Skipped("invalid config: " + err.Error())
}

func (b handlerBase) jobMissing(rule *domauto.Rule, jobID uuid.UUID) Outcome {
	b.logger.Info("skipping rule: job not found for owner", append(ruleAttrs(rule), "job_id", jobID)...)
	return Skipped("job not found")
}

// settle turns a repository error into an outcome. Missing jobs and domain
// validation failures are handled skips; anything else propagates.
func (b handlerBase) settle(rule *domauto.Rule, jobID uuid.UUID, err error) (Outcome, error) {
	switch {
	case err == nil:
		return Applied(), nil
	case errs.Is(err, errs.ErrJobNotFound):
		return b.jobMissing(rule, jobID), nil
	case isValidationErr(err):
		return b.invalidConfig(rule, err), nil
	default:
		return Outcome{}, errs.Wrapf(err, "apply %s to job %s", rule.Type(), jobID)
	}
}

func isValidationErr(err error) bool {
	return errors.Is(err, application.ErrEmptyPackage) ||
		errors.Is(err, application.ErrEmptyChecklist) ||
		errors.Is(err, application.ErrInvalidStatus)
}

func ruleAttrs(rule *domauto.Rule) []any {
	return []any{
		"rule_id", rule.ID(),
		"rule_type", rule.Type(),
		"owner_user_id", rule.OwnerUserID(),
	}
}
