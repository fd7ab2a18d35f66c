package commands

import (
	"context"
	"encoding/json"
	"time"

	domauto "applytrack/internal/domain/automation"
	"applytrack/internal/pkg/clock"
	"applytrack/internal/pkg/errs"
	"applytrack/internal/usecase/queries"
	"applytrack/internal/usecase/shared"

	"github.com/google/uuid"
)

//go:generate mockgen -source=rule.go -destination=../../../tests/mock/commands/rule_mock.go -package=commandsmock

type CreateRuleRequest struct {
	Type     string
	Config   json.RawMessage
	Schedule *time.Time
	Enabled  *bool
}

type RuleCommands interface {
	CreateRule(ctx context.Context, req CreateRuleRequest, ownerUserID uuid.UUID) (*queries.RuleView, error)
	ResetRule(ctx context.Context, id, ownerUserID uuid.UUID) (*queries.RuleView, error)
	SetRuleEnabled(ctx context.Context, id, ownerUserID uuid.UUID, enabled bool) (*queries.RuleView, error)
}

type ruleCommandsImpl struct {
	rules shared.RuleRepository
	clock clock.Clock
}

func NewRuleCommands(rules shared.RuleRepository, clk clock.Clock) RuleCommands {
	return &ruleCommandsImpl{rules: rules, clock: clk}
}

// CreateRule stores a new rule for the caller. The config is validated for the
// rule type up front; schedule defaults to now and enabled to true.
func (uc *ruleCommandsImpl) CreateRule(ctx context.Context, req CreateRuleRequest, ownerUserID uuid.UUID) (*queries.RuleView, error) {
	ruleType, err := domauto.ParseType(req.Type)
	if err != nil {
		return nil, errs.Mark(err, errs.ErrUnknownRuleType)
	}
	if err := domauto.ValidateConfig(ruleType, req.Config); err != nil {
		return nil, err
	}

	now := uc.clock.Now()
	schedule := now
	if req.Schedule != nil && !req.Schedule.IsZero() {
		schedule = req.Schedule.UTC()
	}
	enabled := true
	if req.Enabled != nil {
		enabled = *req.Enabled
	}

	rule, err := domauto.NewRule(ownerUserID, ruleType, req.Config, schedule, enabled, now)
	if err != nil {
		return nil, err
	}
	if err := uc.rules.Create(ctx, rule); err != nil {
		return nil, errs.Wrap(err, "create rule")
	}
	return queries.NewRuleView(rule), nil
}

// ResetRule clears last_run_at and retry bookkeeping so the rule fires again.
func (uc *ruleCommandsImpl) ResetRule(ctx context.Context, id, ownerUserID uuid.UUID) (*queries.RuleView, error) {
	rule, err := uc.rules.Reset(ctx, id, ownerUserID, uc.clock.Now())
	if err != nil {
		return nil, err
	}
	return queries.NewRuleView(rule), nil
}

func (uc *ruleCommandsImpl) SetRuleEnabled(ctx context.Context, id, ownerUserID uuid.UUID, enabled bool) (*queries.RuleView, error) {
	rule, err := uc.rules.SetEnabled(ctx, id, ownerUserID, enabled, uc.clock.Now())
	if err != nil {
		return nil, err
	}
	return queries.NewRuleView(rule), nil
}
