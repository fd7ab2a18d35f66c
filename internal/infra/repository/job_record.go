package repository

import (
	"context"
	"time"

	"applytrack/internal/domain/application"
	"applytrack/internal/infra"
	"applytrack/internal/infra/db"
	"applytrack/internal/pkg/errs"
	"applytrack/internal/pkg/pgconv"
	"applytrack/internal/usecase/shared"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

const jobColumns = `id, owner_user_id, company, position, recruiter_name, status,
	application_history, status_history, checklist, follow_up_tasks, template_responses,
	application_package, created_at, updated_at`

// Pool is the subset of *pgxpool.Pool the job repository needs.
type Pool interface {
	db.DBTX
	db.TxBeginner
}

// JobRecordRepository runs every mutation as SELECT ... FOR UPDATE, a domain
// method on the loaded record, then a single UPDATE, inside one transaction.
type JobRecordRepository struct {
	pool Pool
}

func NewJobRecordRepository(pool Pool) *JobRecordRepository {
	return &JobRecordRepository{pool: pool}
}

func (r *JobRecordRepository) FindByOwner(ctx context.Context, id, ownerUserID uuid.UUID) (*application.Record, error) {
	return findJob(ctx, r.pool, id, ownerUserID, false)
}

func (r *JobRecordRepository) Create(ctx context.Context, rec *application.Record) error {
	s := rec.State()
	cols, err := encodeTrails(s)
	if err != nil {
		return infra.WrapRepoErr("failed to encode job record", err)
	}
	_, err = r.pool.Exec(ctx, `
		INSERT INTO job_records (id, owner_user_id, company, position, recruiter_name, status,
			application_history, status_history, checklist, follow_up_tasks, template_responses,
			application_package, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14)`,
		s.ID, s.OwnerUserID, s.Company, s.Position, s.RecruiterName, string(s.Status),
		cols.history, cols.statusHistory, cols.checklist, cols.followUps, cols.templates,
		cols.pkg, s.CreatedAt, s.UpdatedAt)
	if err != nil {
		return infra.WrapRepoErr("failed to create job record", err)
	}
	return nil
}

func (r *JobRecordRepository) SetApplicationPackage(ctx context.Context, id, ownerUserID uuid.UUID, pkg application.Package, at time.Time) error {
	return r.mutate(ctx, id, ownerUserID, func(rec *application.Record) error {
		return rec.SetPackage(pkg, at)
	})
}

func (r *JobRecordRepository) AppendStatusIfChanged(ctx context.Context, id, ownerUserID uuid.UUID, status application.Status, at time.Time) (bool, error) {
	var changed bool
	err := r.mutate(ctx, id, ownerUserID, func(rec *application.Record) error {
		var err error
		changed, err = rec.ApplyStatus(status, at)
		return err
	})
	return changed, err
}

func (r *JobRecordRepository) AddChecklistItemsIfAbsent(ctx context.Context, id, ownerUserID uuid.UUID, labels []string, autoCompleteOn application.Status, at time.Time) (shared.ChecklistResult, error) {
	var res shared.ChecklistResult
	err := r.mutate(ctx, id, ownerUserID, func(rec *application.Record) error {
		var err error
		res.Added, res.Completed, err = rec.AddChecklistItems(labels, autoCompleteOn, at)
		return err
	})
	return res, err
}

func (r *JobRecordRepository) AppendFollowUpTask(ctx context.Context, id, ownerUserID uuid.UUID, note, interval string, at time.Time) error {
	return r.mutate(ctx, id, ownerUserID, func(rec *application.Record) error {
		rec.AppendFollowUp(note, interval, at)
		return nil
	})
}

func (r *JobRecordRepository) AppendTemplateResponse(ctx context.Context, id, ownerUserID uuid.UUID, templateName string, render shared.TemplateRenderer, at time.Time) error {
	return r.mutate(ctx, id, ownerUserID, func(rec *application.Record) error {
		rec.AppendTemplateResponse(templateName, render(rec), at)
		return nil
	})
}

func (r *JobRecordRepository) mutate(ctx context.Context, id, ownerUserID uuid.UUID, fn func(rec *application.Record) error) error {
	_, err := db.WithDefaultRetry(ctx, r.pool, func(tx db.DBTX) (struct{}, error) {
		rec, err := findJob(ctx, tx, id, ownerUserID, true)
		if err != nil {
			return struct{}{}, err
		}
		if err := fn(rec); err != nil {
			return struct{}{}, err
		}
		return struct{}{}, saveJob(ctx, tx, rec)
	})
	return err
}

func findJob(ctx context.Context, conn db.DBTX, id, ownerUserID uuid.UUID, forUpdate bool) (*application.Record, error) {
	query := `SELECT ` + jobColumns + ` FROM job_records WHERE id = $1 AND owner_user_id = $2`
	if forUpdate {
		query += ` FOR UPDATE`
	}
	rec, err := scanJob(conn.QueryRow(ctx, query, id, ownerUserID))
	if err != nil {
		if pgconv.IsNoRows(err) {
			return nil, errs.Mark(infra.WrapRepoErr("job record not found", err, infra.KindNotFound), errs.ErrJobNotFound)
		}
		return nil, infra.WrapRepoErr("failed to load job record", err)
	}
	return rec, nil
}

func saveJob(ctx context.Context, conn db.DBTX, rec *application.Record) error {
	s := rec.State()
	cols, err := encodeTrails(s)
	if err != nil {
		return infra.WrapRepoErr("failed to encode job record", err)
	}
	_, err = conn.Exec(ctx, `
		UPDATE job_records
		SET status = $3,
		    application_history = $4,
		    status_history = $5,
		    checklist = $6,
		    follow_up_tasks = $7,
		    template_responses = $8,
		    application_package = $9,
		    updated_at = $10
		WHERE id = $1 AND owner_user_id = $2`,
		s.ID, s.OwnerUserID, string(s.Status),
		cols.history, cols.statusHistory, cols.checklist, cols.followUps, cols.templates, cols.pkg,
		s.UpdatedAt)
	if err != nil {
		return infra.WrapRepoErr("failed to update job record", err)
	}
	return nil
}

type trailColumns struct {
	history, statusHistory, checklist, followUps, templates, pkg []byte
}

func encodeTrails(s application.RecordState) (trailColumns, error) {
	var (
		c   trailColumns
		err error
	)
	if c.history, err = pgconv.JSONArray(s.ApplicationHistory); err != nil {
		return c, err
	}
	if c.statusHistory, err = pgconv.JSONArray(s.StatusHistory); err != nil {
		return c, err
	}
	if c.checklist, err = pgconv.JSONArray(s.Checklist); err != nil {
		return c, err
	}
	if c.followUps, err = pgconv.JSONArray(s.FollowUpTasks); err != nil {
		return c, err
	}
	if c.templates, err = pgconv.JSONArray(s.TemplateResponses); err != nil {
		return c, err
	}
	if c.pkg, err = pgconv.JSONObject(s.ApplicationPackage); err != nil {
		return c, err
	}
	return c, nil
}

func scanJob(row pgx.Row) (*application.Record, error) {
	var (
		s      application.RecordState
		status string
		c      trailColumns
	)
	err := row.Scan(
		&s.ID, &s.OwnerUserID, &s.Company, &s.Position, &s.RecruiterName, &status,
		&c.history, &c.statusHistory, &c.checklist, &c.followUps, &c.templates,
		&c.pkg, &s.CreatedAt, &s.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	s.Status = application.Status(status)

	if s.ApplicationHistory, err = pgconv.JSONArrayFrom[application.HistoryEntry](c.history); err != nil {
		return nil, errs.Wrap(err, "decode application_history")
	}
	if s.StatusHistory, err = pgconv.JSONArrayFrom[application.StatusChange](c.statusHistory); err != nil {
		return nil, errs.Wrap(err, "decode status_history")
	}
	if s.Checklist, err = pgconv.JSONArrayFrom[application.ChecklistItem](c.checklist); err != nil {
		return nil, errs.Wrap(err, "decode checklist")
	}
	if s.FollowUpTasks, err = pgconv.JSONArrayFrom[application.FollowUpTask](c.followUps); err != nil {
		return nil, errs.Wrap(err, "decode follow_up_tasks")
	}
	if s.TemplateResponses, err = pgconv.JSONArrayFrom[application.TemplateResponse](c.templates); err != nil {
		return nil, errs.Wrap(err, "decode template_responses")
	}
	if s.ApplicationPackage, err = pgconv.JSONObjectFrom[application.Package](c.pkg); err != nil {
		return nil, errs.Wrap(err, "decode application_package")
	}
	return application.ReconstructRecord(s), nil
}
