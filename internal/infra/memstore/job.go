package memstore

import (
	"context"
	"sync"
	"time"

	"applytrack/internal/domain/application"
	"applytrack/internal/infra"
	"applytrack/internal/pkg/errs"
	"applytrack/internal/usecase/shared"

	"github.com/google/uuid"
)

type jobKey struct {
	id    uuid.UUID
	owner uuid.UUID
}

// JobStore keys records by id and owner so a lookup with the wrong owner is
// indistinguishable from a missing record.
type JobStore struct {
	mu   sync.Mutex
	jobs map[jobKey]application.RecordState
}

func NewJobStore() *JobStore {
	return &JobStore{jobs: make(map[jobKey]application.RecordState)}
}

func (s *JobStore) FindByOwner(_ context.Context, id, ownerUserID uuid.UUID) (*application.Record, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	st, ok := s.jobs[jobKey{id: id, owner: ownerUserID}]
	if !ok {
		return nil, jobNotFound()
	}
	return application.ReconstructRecord(st), nil
}

func (s *JobStore) Create(_ context.Context, rec *application.Record) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for k := range s.jobs {
		if k.id == rec.ID() {
			return infra.WrapRepoErr("job record already exists", nil, infra.KindDuplicateKey)
		}
	}
	s.jobs[jobKey{id: rec.ID(), owner: rec.OwnerUserID()}] = rec.State()
	return nil
}

func (s *JobStore) SetApplicationPackage(_ context.Context, id, ownerUserID uuid.UUID, pkg application.Package, at time.Time) error {
	return s.mutate(id, ownerUserID, func(rec *application.Record) error {
		return rec.SetPackage(pkg, at)
	})
}

func (s *JobStore) AppendStatusIfChanged(_ context.Context, id, ownerUserID uuid.UUID, status application.Status, at time.Time) (bool, error) {
	var changed bool
	err := s.mutate(id, ownerUserID, func(rec *application.Record) error {
		var err error
		changed, err = rec.ApplyStatus(status, at)
		return err
	})
	return changed, err
}

func (s *JobStore) AddChecklistItemsIfAbsent(_ context.Context, id, ownerUserID uuid.UUID, labels []string, autoCompleteOn application.Status, at time.Time) (shared.ChecklistResult, error) {
	var res shared.ChecklistResult
	err := s.mutate(id, ownerUserID, func(rec *application.Record) error {
		var err error
		res.Added, res.Completed, err = rec.AddChecklistItems(labels, autoCompleteOn, at)
		return err
	})
	return res, err
}

func (s *JobStore) AppendFollowUpTask(_ context.Context, id, ownerUserID uuid.UUID, note, interval string, at time.Time) error {
	return s.mutate(id, ownerUserID, func(rec *application.Record) error {
		rec.AppendFollowUp(note, interval, at)
		return nil
	})
}

func (s *JobStore) AppendTemplateResponse(_ context.Context, id, ownerUserID uuid.UUID, templateName string, render shared.TemplateRenderer, at time.Time) error {
	return s.mutate(id, ownerUserID, func(rec *application.Record) error {
		rec.AppendTemplateResponse(templateName, render(rec), at)
		return nil
	})
}

// mutate applies fn to a copy and stores it only if fn succeeds, so a failed
// mutation leaves the stored record untouched.
func (s *JobStore) mutate(id, ownerUserID uuid.UUID, fn func(rec *application.Record) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	key := jobKey{id: id, owner: ownerUserID}
	st, ok := s.jobs[key]
	if !ok {
		return jobNotFound()
	}
	rec := application.ReconstructRecord(st)
	if err := fn(rec); err != nil {
		return err
	}
	s.jobs[key] = rec.State()
	return nil
}

func jobNotFound() error {
	return errs.Mark(infra.WrapRepoErr("job record not found", nil, infra.KindNotFound), errs.ErrJobNotFound)
}
