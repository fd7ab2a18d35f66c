//go:build unit || integration || e2e

package builder

import (
	"time"

	"applytrack/internal/domain/application"
	reqdto "applytrack/internal/handler/dto/request"
	"applytrack/internal/usecase/queries"

	"github.com/google/uuid"
)

type JobBuilder struct {
	OwnerUserID   uuid.UUID
	Company       string
	Position      string
	RecruiterName string
	Status        application.Status
	CreatedAt     time.Time
}

func NewJobBuilder() *JobBuilder {
	return &JobBuilder{
		OwnerUserID:   uuid.New(),
		Company:       "Acme",
		Position:      "Backend Engineer",
		RecruiterName: "Dana",
		Status:        application.StatusApplied,
		CreatedAt:     time.Date(2025, 3, 1, 8, 0, 0, 0, time.UTC),
	}
}

func (b *JobBuilder) With(mutate func(*JobBuilder)) *JobBuilder {
	mutate(b)
	return b
}

func (b *JobBuilder) WithOwner(id uuid.UUID) *JobBuilder {
	b.OwnerUserID = id
	return b
}

func (b *JobBuilder) WithStatus(s application.Status) *JobBuilder {
	b.Status = s
	return b
}

// Build methods
func (b *JobBuilder) BuildDomain() (*application.Record, error) {
	return application.NewRecord(b.OwnerUserID, b.Company, b.Position, b.RecruiterName, b.Status, b.CreatedAt)
}

func (b *JobBuilder) BuildCreateRequestDTO() reqdto.CreateJobRequest {
	return reqdto.CreateJobRequest{
		Company:       b.Company,
		Position:      b.Position,
		RecruiterName: b.RecruiterName,
		Status:        string(b.Status),
	}
}

func (b *JobBuilder) BuildView() *queries.JobView {
	rec, err := b.BuildDomain()
	if err != nil {
		panic(err)
	}
	return queries.NewJobView(rec)
}
