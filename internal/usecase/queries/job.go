package queries

import (
	"context"
	"time"

	"applytrack/internal/domain/application"

	"github.com/google/uuid"
)

//go:generate mockgen -source=job.go -destination=../../../tests/mock/queries/job_mock.go -package=queriesmock

// JobView is a job record with its full automation trail.
type JobView struct {
	ID                 uuid.UUID                      `json:"id"`
	OwnerUserID        uuid.UUID                      `json:"ownerUserId"`
	Company            string                         `json:"company"`
	Position           string                         `json:"position"`
	RecruiterName      string                         `json:"recruiterName,omitempty"`
	Status             string                         `json:"status"`
	ApplicationHistory []application.HistoryEntry     `json:"applicationHistory"`
	StatusHistory      []application.StatusChange     `json:"statusHistory"`
	Checklist          []application.ChecklistItem    `json:"checklist"`
	FollowUpTasks      []application.FollowUpTask     `json:"followUpTasks"`
	TemplateResponses  []application.TemplateResponse `json:"templateResponses"`
	ApplicationPackage *application.Package           `json:"applicationPackage,omitempty"`
	CreatedAt          time.Time                      `json:"createdAt"`
	UpdatedAt          time.Time                      `json:"updatedAt"`
}

func NewJobView(r *application.Record) *JobView {
	return &JobView{
		ID:                 r.ID(),
		OwnerUserID:        r.OwnerUserID(),
		Company:            r.Company(),
		Position:           r.Position(),
		RecruiterName:      r.RecruiterName(),
		Status:             r.Status().String(),
		ApplicationHistory: nonNil(r.ApplicationHistory()),
		StatusHistory:      nonNil(r.StatusHistory()),
		Checklist:          nonNil(r.Checklist()),
		FollowUpTasks:      nonNil(r.FollowUpTasks()),
		TemplateResponses:  nonNil(r.TemplateResponses()),
		ApplicationPackage: r.ApplicationPackage(),
		CreatedAt:          r.CreatedAt(),
		UpdatedAt:          r.UpdatedAt(),
	}
}

// nonNil keeps empty trails as [] in JSON.
func nonNil[T any](s []T) []T {
	if s == nil {
		return []T{}
	}
	return s
}

type JobReadStore interface {
	FindByOwner(ctx context.Context, id, ownerUserID uuid.UUID) (*application.Record, error)
}

type JobQueries interface {
	GetJob(ctx context.Context, id, ownerUserID uuid.UUID) (*JobView, error)
}

type jobQueriesImpl struct {
	repo JobReadStore
}

func NewJobQueries(repo JobReadStore) JobQueries {
	return &jobQueriesImpl{repo: repo}
}

func (q *jobQueriesImpl) GetJob(ctx context.Context, id, ownerUserID uuid.UUID) (*JobView, error) {
	rec, err := q.repo.FindByOwner(ctx, id, ownerUserID)
	if err != nil {
		return nil, err
	}
	return NewJobView(rec), nil
}
