package commands

import (
	"context"

	"applytrack/internal/domain/application"
	"applytrack/internal/pkg/clock"
	"applytrack/internal/pkg/errs"
	"applytrack/internal/usecase/queries"
	"applytrack/internal/usecase/shared"

	"github.com/google/uuid"
)

//go:generate mockgen -source=job.go -destination=../../../tests/mock/commands/job_mock.go -package=commandsmock

type CreateJobRequest struct {
	Company       string
	Position      string
	RecruiterName string
	Status        string
}

type JobCommands interface {
	CreateJob(ctx context.Context, req CreateJobRequest, ownerUserID uuid.UUID) (*queries.JobView, error)
}

type jobCommandsImpl struct {
	jobs  shared.JobRecordRepository
	clock clock.Clock
}

func NewJobCommands(jobs shared.JobRecordRepository, clk clock.Clock) JobCommands {
	return &jobCommandsImpl{jobs: jobs, clock: clk}
}

func (uc *jobCommandsImpl) CreateJob(ctx context.Context, req CreateJobRequest, ownerUserID uuid.UUID) (*queries.JobView, error) {
	rec, err := application.NewRecord(ownerUserID, req.Company, req.Position, req.RecruiterName, application.Status(req.Status), uc.clock.Now())
	if err != nil {
		return nil, err
	}
	if err := uc.jobs.Create(ctx, rec); err != nil {
		return nil, errs.Wrap(err, "create job record")
	}
	return queries.NewJobView(rec), nil
}
