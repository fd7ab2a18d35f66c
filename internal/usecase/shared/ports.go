package shared

import (
	"context"
	"time"

	"applytrack/internal/domain/application"
	"applytrack/internal/domain/automation"

	"github.com/google/uuid"
)

//go:generate mockgen -source=ports.go -destination=../../../tests/mock/shared/ports_mock.go -package=sharedmock

// RuleRepository is the durable rule store. Lookups that miss return an
// error marked with errs.ErrRuleNotFound.
type RuleRepository interface {
	// ListDue returns rules eligible at now ordered by schedule then id.
	ListDue(ctx context.Context, now time.Time) ([]*automation.Rule, error)
	// MarkRun sets last_run_at only if it is still unset; a second commit
	// returns errs.ErrRuleAlreadyRun.
	MarkRun(ctx context.Context, id uuid.UUID, at time.Time) error
	RecordFailure(ctx context.Context, id uuid.UUID, f automation.Failure, at time.Time) error

	Create(ctx context.Context, rule *automation.Rule) error
	FindByOwner(ctx context.Context, id, ownerUserID uuid.UUID) (*automation.Rule, error)
	ListByOwner(ctx context.Context, ownerUserID uuid.UUID) ([]*automation.Rule, error)
	Reset(ctx context.Context, id, ownerUserID uuid.UUID, at time.Time) (*automation.Rule, error)
	SetEnabled(ctx context.Context, id, ownerUserID uuid.UUID, enabled bool, at time.Time) (*automation.Rule, error)
}

type ChecklistResult struct {
	Added     int
	Completed int
}

// TemplateRenderer renders a message from the locked job record.
type TemplateRenderer func(rec *application.Record) string

// JobRecordRepository mutates job records. Every method filters on both id
// and owner; a miss returns an error marked with errs.ErrJobNotFound and
// touches nothing.
type JobRecordRepository interface {
	FindByOwner(ctx context.Context, id, ownerUserID uuid.UUID) (*application.Record, error)
	Create(ctx context.Context, rec *application.Record) error

	SetApplicationPackage(ctx context.Context, id, ownerUserID uuid.UUID, pkg application.Package, at time.Time) error
	AppendStatusIfChanged(ctx context.Context, id, ownerUserID uuid.UUID, status application.Status, at time.Time) (bool, error)
	AddChecklistItemsIfAbsent(ctx context.Context, id, ownerUserID uuid.UUID, labels []string, autoCompleteOn application.Status, at time.Time) (ChecklistResult, error)
	AppendFollowUpTask(ctx context.Context, id, ownerUserID uuid.UUID, note, interval string, at time.Time) error
	AppendTemplateResponse(ctx context.Context, id, ownerUserID uuid.UUID, templateName string, render TemplateRenderer, at time.Time) error
}

// Locker provides cross-process mutual exclusion for scheduler ticks.
type Locker interface {
	// TryAcquire does not block. When acquired is false release is nil.
	TryAcquire(ctx context.Context) (release func(), acquired bool, err error)
}
