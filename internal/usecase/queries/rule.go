package queries

import (
	"context"
	"encoding/json"
	"time"

	domauto "applytrack/internal/domain/automation"

	"github.com/google/uuid"
)

//go:generate mockgen -source=rule.go -destination=../../../tests/mock/queries/rule_mock.go -package=queriesmock

type RuleView struct {
	ID             uuid.UUID       `json:"id"`
	OwnerUserID    uuid.UUID       `json:"ownerUserId"`
	Type           string          `json:"type"`
	Config         json.RawMessage `json:"config"`
	Schedule       time.Time       `json:"schedule"`
	Enabled        bool            `json:"enabled"`
	LastRunAt      *time.Time      `json:"lastRunAt,omitempty"`
	Attempts       int             `json:"attempts"`
	LastError      string          `json:"lastError,omitempty"`
	NextAttemptAt  *time.Time      `json:"nextAttemptAt,omitempty"`
	DeadLetteredAt *time.Time      `json:"deadLetteredAt,omitempty"`
	CreatedAt      time.Time       `json:"createdAt"`
	UpdatedAt      time.Time       `json:"updatedAt"`
}

func NewRuleView(r *domauto.Rule) *RuleView {
	return &RuleView{
		ID:             r.ID(),
		OwnerUserID:    r.OwnerUserID(),
		Type:           r.Type().String(),
		Config:         r.Config(),
		Schedule:       r.Schedule(),
		Enabled:        r.Enabled(),
		LastRunAt:      r.LastRunAt(),
		Attempts:       r.Attempts(),
		LastError:      r.LastError(),
		NextAttemptAt:  r.NextAttemptAt(),
		DeadLetteredAt: r.DeadLetteredAt(),
		CreatedAt:      r.CreatedAt(),
		UpdatedAt:      r.UpdatedAt(),
	}
}

// RuleReadStore is the read subset of the rule repository.
type RuleReadStore interface {
	FindByOwner(ctx context.Context, id, ownerUserID uuid.UUID) (*domauto.Rule, error)
	ListByOwner(ctx context.Context, ownerUserID uuid.UUID) ([]*domauto.Rule, error)
}

type RuleQueries interface {
	GetRule(ctx context.Context, id, ownerUserID uuid.UUID) (*RuleView, error)
	ListRules(ctx context.Context, ownerUserID uuid.UUID) ([]*RuleView, error)
}

type ruleQueriesImpl struct {
	repo RuleReadStore
}

func NewRuleQueries(repo RuleReadStore) RuleQueries {
	return &ruleQueriesImpl{repo: repo}
}

func (q *ruleQueriesImpl) GetRule(ctx context.Context, id, ownerUserID uuid.UUID) (*RuleView, error) {
	r, err := q.repo.FindByOwner(ctx, id, ownerUserID)
	if err != nil {
		return nil, err
	}
	return NewRuleView(r), nil
}

func (q *ruleQueriesImpl) ListRules(ctx context.Context, ownerUserID uuid.UUID) ([]*RuleView, error) {
	rules, err := q.repo.ListByOwner(ctx, ownerUserID)
	if err != nil {
		return nil, err
	}
	views := make([]*RuleView, len(rules))
	for i, r := range rules {
		views[i] = NewRuleView(r)
	}
	return views, nil
}
