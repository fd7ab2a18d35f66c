package memstore

import (
	"context"
	"sort"
	"sync"
	"time"

	"applytrack/internal/domain/automation"
	"applytrack/internal/infra"
	"applytrack/internal/pkg/errs"

	"github.com/google/uuid"
)

// RuleStore keeps rules in process memory. Rules are stored by state and
// handed out as fresh copies so callers never share mutable entities.
type RuleStore struct {
	mu    sync.Mutex
	rules map[uuid.UUID]automation.RuleState
}

func NewRuleStore() *RuleStore {
	return &RuleStore{rules: make(map[uuid.UUID]automation.RuleState)}
}

func (s *RuleStore) ListDue(_ context.Context, now time.Time) ([]*automation.Rule, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var due []*automation.Rule
	for _, st := range s.rules {
		rule := automation.ReconstructRule(st)
		if rule.IsDue(now) {
			due = append(due, rule)
		}
	}
	sort.Slice(due, func(i, j int) bool {
		if !due[i].Schedule().Equal(due[j].Schedule()) {
			return due[i].Schedule().Before(due[j].Schedule())
		}
		return due[i].ID().String() < due[j].ID().String()
	})
	return due, nil
}

func (s *RuleStore) MarkRun(_ context.Context, id uuid.UUID, at time.Time) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	st, ok := s.rules[id]
	if !ok {
		return ruleNotFound()
	}
	rule := automation.ReconstructRule(st)
	if !rule.MarkRun(at) {
		return errs.Mark(errs.Newf("rule %s already executed", id), errs.ErrRuleAlreadyRun)
	}
	s.rules[id] = rule.State()
	return nil
}

func (s *RuleStore) RecordFailure(_ context.Context, id uuid.UUID, f automation.Failure, at time.Time) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	st, ok := s.rules[id]
	if !ok {
		return ruleNotFound()
	}
	if st.LastRunAt != nil {
		return errs.Mark(errs.Newf("rule %s already executed", id), errs.ErrRuleAlreadyRun)
	}
	rule := automation.ReconstructRule(st)
	rule.RecordFailure(f, at)
	s.rules[id] = rule.State()
	return nil
}

func (s *RuleStore) Create(_ context.Context, rule *automation.Rule) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.rules[rule.ID()]; exists {
		return infra.WrapRepoErr("rule already exists", nil, infra.KindDuplicateKey)
	}
	s.rules[rule.ID()] = rule.State()
	return nil
}

func (s *RuleStore) FindByOwner(_ context.Context, id, ownerUserID uuid.UUID) (*automation.Rule, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	st, ok := s.rules[id]
	if !ok || st.OwnerUserID != ownerUserID {
		return nil, ruleNotFound()
	}
	return automation.ReconstructRule(st), nil
}

func (s *RuleStore) ListByOwner(_ context.Context, ownerUserID uuid.UUID) ([]*automation.Rule, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var rules []*automation.Rule
	for _, st := range s.rules {
		if st.OwnerUserID == ownerUserID {
			rules = append(rules, automation.ReconstructRule(st))
		}
	}
	sort.Slice(rules, func(i, j int) bool {
		if !rules[i].CreatedAt().Equal(rules[j].CreatedAt()) {
			return rules[i].CreatedAt().After(rules[j].CreatedAt())
		}
		return rules[i].ID().String() < rules[j].ID().String()
	})
	return rules, nil
}

func (s *RuleStore) Reset(_ context.Context, id, ownerUserID uuid.UUID, at time.Time) (*automation.Rule, error) {
	return s.update(id, ownerUserID, func(r *automation.Rule) { r.Reset(at) })
}

func (s *RuleStore) SetEnabled(_ context.Context, id, ownerUserID uuid.UUID, enabled bool, at time.Time) (*automation.Rule, error) {
	return s.update(id, ownerUserID, func(r *automation.Rule) { r.SetEnabled(enabled, at) })
}

// Put stores a rule as-is, bypassing validation. Used to seed rows that
// could not be created through NewRule, such as unknown types.
func (s *RuleStore) Put(st automation.RuleState) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.rules[st.ID] = automation.ReconstructRule(st).State()
}

func (s *RuleStore) update(id, ownerUserID uuid.UUID, fn func(r *automation.Rule)) (*automation.Rule, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	st, ok := s.rules[id]
	if !ok || st.OwnerUserID != ownerUserID {
		return nil, ruleNotFound()
	}
	rule := automation.ReconstructRule(st)
	fn(rule)
	s.rules[id] = rule.State()
	return automation.ReconstructRule(s.rules[id]), nil
}

func ruleNotFound() error {
	return errs.Mark(infra.WrapRepoErr("rule not found", nil, infra.KindNotFound), errs.ErrRuleNotFound)
}
