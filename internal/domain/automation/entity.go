package automation

import (
	"encoding/json"
	"slices"
	"time"

	"github.com/google/uuid"
)

// Rule is a one-shot automation definition. lastRunAt is the commit marker:
// once set the rule is never selected again until an operator resets it.
type Rule struct {
	id             uuid.UUID
	ownerUserID    uuid.UUID
	ruleType       RuleType
	config         json.RawMessage
	schedule       time.Time
	enabled        bool
	lastRunAt      *time.Time
	attempts       int
	lastError      string
	nextAttemptAt  *time.Time
	deadLetteredAt *time.Time
	createdAt      time.Time
	updatedAt      time.Time
}

// RuleState is the persisted shape of a Rule.
type RuleState struct {
	ID             uuid.UUID
	OwnerUserID    uuid.UUID
	Type           RuleType
	Config         json.RawMessage
	Schedule       time.Time
	Enabled        bool
	LastRunAt      *time.Time
	Attempts       int
	LastError      string
	NextAttemptAt  *time.Time
	DeadLetteredAt *time.Time
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

// NewRule builds an enabled-or-disabled rule. The type is checked against
// the closed set; the config payload is kept opaque here and validated by the
// handler when the rule runs.
func NewRule(ownerUserID uuid.UUID, ruleType RuleType, config json.RawMessage, schedule time.Time, enabled bool, now time.Time) (*Rule, error) {
	if ownerUserID == uuid.Nil {
		return nil, ErrMissingOwner
	}
	if !ruleType.IsValid() {
		return nil, ErrInvalidRuleType
	}
	if schedule.IsZero() {
		return nil, ErrMissingSchedule
	}
	if len(config) == 0 {
		config = json.RawMessage("{}")
	}

	return &Rule{
		id:          uuid.New(),
		ownerUserID: ownerUserID,
		ruleType:    ruleType,
		config:      slices.Clone(config),
		schedule:    schedule,
		enabled:     enabled,
		createdAt:   now,
		updatedAt:   now,
	}, nil
}

// ReconstructRule rebuilds a rule from storage without validation. Rows with
// a type outside the closed set are loaded as-is so the dispatcher can report
// them.
func ReconstructRule(s RuleState) *Rule {
	return &Rule{
		id:             s.ID,
		ownerUserID:    s.OwnerUserID,
		ruleType:       s.Type,
		config:         slices.Clone(s.Config),
		schedule:       s.Schedule,
		enabled:        s.Enabled,
		lastRunAt:      cloneTime(s.LastRunAt),
		attempts:       s.Attempts,
		lastError:      s.LastError,
		nextAttemptAt:  cloneTime(s.NextAttemptAt),
		deadLetteredAt: cloneTime(s.DeadLetteredAt),
		createdAt:      s.CreatedAt,
		updatedAt:      s.UpdatedAt,
	}
}

func (r *Rule) State() RuleState {
	return RuleState{
		ID:             r.id,
		OwnerUserID:    r.ownerUserID,
		Type:           r.ruleType,
		Config:         slices.Clone(r.config),
		Schedule:       r.schedule,
		Enabled:        r.enabled,
		LastRunAt:      cloneTime(r.lastRunAt),
		Attempts:       r.attempts,
		LastError:      r.lastError,
		NextAttemptAt:  cloneTime(r.nextAttemptAt),
		DeadLetteredAt: cloneTime(r.deadLetteredAt),
		CreatedAt:      r.createdAt,
		UpdatedAt:      r.updatedAt,
	}
}

// IsDue is the eligibility predicate shared by every store:
// enabled, scheduled at or before now, never run, not dead-lettered, and past
// any backoff deadline.
func (r *Rule) IsDue(now time.Time) bool {
	if !r.enabled || r.lastRunAt != nil || r.deadLetteredAt != nil {
		return false
	}
	if r.schedule.After(now) {
		return false
	}
	if r.nextAttemptAt != nil && r.nextAttemptAt.After(now) {
		return false
	}
	return true
}

// MarkRun commits the rule. It reports false when the rule had already run.
func (r *Rule) MarkRun(at time.Time) bool {
	if r.lastRunAt != nil {
		return false
	}
	t := at
	r.lastRunAt = &t
	r.updatedAt = at
	return true
}

// RecordFailure stores retry bookkeeping for a failed execution.
func (r *Rule) RecordFailure(f Failure, at time.Time) {
	r.attempts = f.Attempts
	r.lastError = f.LastError
	r.nextAttemptAt = cloneTime(f.NextAttemptAt)
	if f.DeadLettered {
		t := at
		r.deadLetteredAt = &t
	}
	r.updatedAt = at
}

// Reset re-arms the rule for another execution.
func (r *Rule) Reset(at time.Time) {
	r.lastRunAt = nil
	r.attempts = 0
	r.lastError = ""
	r.nextAttemptAt = nil
	r.deadLetteredAt = nil
	r.updatedAt = at
}

func (r *Rule) SetEnabled(enabled bool, at time.Time) {
	r.enabled = enabled
	r.updatedAt = at
}

func (r *Rule) ID() uuid.UUID              { return r.id }
func (r *Rule) OwnerUserID() uuid.UUID     { return r.ownerUserID }
func (r *Rule) Type() RuleType             { return r.ruleType }
func (r *Rule) Config() json.RawMessage    { return slices.Clone(r.config) }
func (r *Rule) Schedule() time.Time        { return r.schedule }
func (r *Rule) Enabled() bool              { return r.enabled }
func (r *Rule) LastRunAt() *time.Time      { return cloneTime(r.lastRunAt) }
func (r *Rule) Attempts() int              { return r.attempts }
func (r *Rule) LastError() string          { return r.lastError }
func (r *Rule) NextAttemptAt() *time.Time  { return cloneTime(r.nextAttemptAt) }
func (r *Rule) DeadLetteredAt() *time.Time { return cloneTime(r.deadLetteredAt) }
func (r *Rule) CreatedAt() time.Time       { return r.createdAt }
func (r *Rule) UpdatedAt() time.Time       { return r.updatedAt }

func cloneTime(t *time.Time) *time.Time {
	if t == nil {
		return nil
	}
	v := *t
	return &v
}
