//go:build unit || integration || e2e

package builder

import (
	"encoding/json"
	"time"

	domauto "applytrack/internal/domain/automation"
	reqdto "applytrack/internal/handler/dto/request"
	"applytrack/internal/usecase/queries"

	"github.com/google/uuid"
)

type RuleBuilder struct {
	OwnerUserID uuid.UUID
	Type        domauto.RuleType
	Config      any
	Schedule    time.Time
	Enabled     bool
	CreatedAt   time.Time
}

func NewRuleBuilder() *RuleBuilder {
	now := time.Date(2025, 3, 1, 9, 0, 0, 0, time.UTC)
	return &RuleBuilder{
		OwnerUserID: uuid.New(),
		Type:        domauto.TypeFollowUp,
		Config:      map[string]any{"jobId": uuid.NewString(), "message": "Check in with recruiter"},
		Schedule:    now,
		Enabled:     true,
		CreatedAt:   now,
	}
}

func (b *RuleBuilder) With(mutate func(*RuleBuilder)) *RuleBuilder {
	mutate(b)
	return b
}

func (b *RuleBuilder) WithOwner(id uuid.UUID) *RuleBuilder {
	b.OwnerUserID = id
	return b
}

func (b *RuleBuilder) WithType(t domauto.RuleType) *RuleBuilder {
	b.Type = t
	return b
}

func (b *RuleBuilder) WithConfig(cfg any) *RuleBuilder {
	b.Config = cfg
	return b
}

func (b *RuleBuilder) WithSchedule(t time.Time) *RuleBuilder {
	b.Schedule = t
	return b
}

func (b *RuleBuilder) Disabled() *RuleBuilder {
	b.Enabled = false
	return b
}

func (b *RuleBuilder) rawConfig() json.RawMessage {
	if raw, ok := b.Config.(json.RawMessage); ok {
		return raw
	}
	if s, ok := b.Config.(string); ok {
		return json.RawMessage(s)
	}
	raw, err := json.Marshal(b.Config)
	if err != nil {
		panic(err)
	}
	return raw
}

// Build methods
func (b *RuleBuilder) BuildDomain() (*domauto.Rule, error) {
	return domauto.NewRule(b.OwnerUserID, b.Type, b.rawConfig(), b.Schedule, b.Enabled, b.CreatedAt)
}

// BuildState skips validation so tests can seed rows the API would reject.
func (b *RuleBuilder) BuildState() domauto.RuleState {
	return domauto.RuleState{
		ID:          uuid.New(),
		OwnerUserID: b.OwnerUserID,
		Type:        b.Type,
		Config:      b.rawConfig(),
		Schedule:    b.Schedule,
		Enabled:     b.Enabled,
		CreatedAt:   b.CreatedAt,
		UpdatedAt:   b.CreatedAt,
	}
}

func (b *RuleBuilder) BuildCreateRequestDTO() reqdto.CreateRuleRequest {
	schedule := b.Schedule
	enabled := b.Enabled
	return reqdto.CreateRuleRequest{
		Type:     string(b.Type),
		Config:   b.rawConfig(),
		Schedule: &schedule,
		Enabled:  &enabled,
	}
}

func (b *RuleBuilder) BuildView() *queries.RuleView {
	return queries.NewRuleView(domauto.ReconstructRule(b.BuildState()))
}
