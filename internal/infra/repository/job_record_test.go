//go:build integration

package repository_test

import (
	"context"
	"sync"
	"time"

	"applytrack/internal/domain/application"
	"applytrack/internal/infra/repository"
	"applytrack/internal/pkg/errs"
	"applytrack/tests/common/dbtest"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func (s *repositorySuite) TestJobRecordRepository_RoundTrip() {
	ctx := context.Background()
	repo := repository.NewJobRecordRepository(s.pool)
	now := time.Now().UTC().Truncate(time.Microsecond)
	owner := uuid.New()

	s.Run("created record is read back unchanged", func() {
		t := s.T()

		rec, err := application.NewRecord(owner, "Acme", "SRE", "Dana", application.StatusApplied, now)
		require.NoError(t, err)
		require.NoError(t, repo.Create(ctx, rec))

		got, err := repo.FindByOwner(ctx, rec.ID(), owner)
		require.NoError(t, err)

		diff := cmp.Diff(rec.State(), got.State(), cmpopts.EquateApproxTime(time.Millisecond), cmpopts.EquateEmpty())
		assert.Empty(t, diff)

		_, err = repo.FindByOwner(ctx, rec.ID(), uuid.New())
		assert.True(t, errs.Is(err, errs.ErrJobNotFound))
	})
}

func (s *repositorySuite) TestJobRecordRepository_Mutations() {
	ctx := context.Background()
	repo := repository.NewJobRecordRepository(s.pool)
	now := time.Now().UTC().Truncate(time.Microsecond)
	owner := uuid.New()

	s.Run("status is deduplicated", func() {
		t := s.T()
		jobID := dbtest.CreateTestJob(t, s.pool, owner, "Acme", "applied")

		changed, err := repo.AppendStatusIfChanged(ctx, jobID, owner, application.StatusApplied, now)
		require.NoError(t, err)
		assert.False(t, changed)

		changed, err = repo.AppendStatusIfChanged(ctx, jobID, owner, application.StatusInterview, now)
		require.NoError(t, err)
		assert.True(t, changed)

		rec, err := repo.FindByOwner(ctx, jobID, owner)
		require.NoError(t, err)
		assert.Equal(t, application.StatusInterview, rec.Status())
		assert.Len(t, rec.StatusHistory(), 2)
		assert.Len(t, rec.ApplicationHistory(), 2)
	})

	s.Run("checklist, follow up, template and package", func() {
		t := s.T()
		jobID := dbtest.CreateTestJob(t, s.pool, owner, "Acme", "offer")
		ruleID := uuid.New()

		res, err := repo.AddChecklistItemsIfAbsent(ctx, jobID, owner, []string{"Negotiate", "Sign"}, application.StatusOffer, now)
		require.NoError(t, err)
		assert.Equal(t, 2, res.Added)
		assert.Equal(t, 2, res.Completed)

		res, err = repo.AddChecklistItemsIfAbsent(ctx, jobID, owner, []string{"Sign"}, "", now)
		require.NoError(t, err)
		assert.Zero(t, res.Added)

		require.NoError(t, repo.AppendFollowUpTask(ctx, jobID, owner, "Follow up on application", "7", now))
		require.NoError(t, repo.AppendTemplateResponse(ctx, jobID, owner, "thank_you", func(rec *application.Record) string {
			return "Hi " + rec.RecruiterName()
		}, now))
		require.NoError(t, repo.SetApplicationPackage(ctx, jobID, owner, application.Package{ResumeID: "r1", GeneratedByRuleID: ruleID}, now))

		rec, err := repo.FindByOwner(ctx, jobID, owner)
		require.NoError(t, err)
		assert.Len(t, rec.Checklist(), 2)
		require.Len(t, rec.FollowUpTasks(), 1)
		assert.Equal(t, application.FollowUpTypeAutomation, rec.FollowUpTasks()[0].Type)
		require.Len(t, rec.TemplateResponses(), 1)
		assert.Equal(t, "Hi Dana", rec.TemplateResponses()[0].Message)
		require.NotNil(t, rec.ApplicationPackage())
		assert.Equal(t, ruleID, rec.ApplicationPackage().GeneratedByRuleID)
	})

	s.Run("other owner cannot mutate", func() {
		t := s.T()
		jobID := dbtest.CreateTestJob(t, s.pool, owner, "Acme", "applied")
		stranger := uuid.New()

		err := repo.AppendFollowUpTask(ctx, jobID, stranger, "x", "", now)
		assert.True(t, errs.Is(err, errs.ErrJobNotFound))
		_, err = repo.AppendStatusIfChanged(ctx, jobID, stranger, application.StatusRejected, now)
		assert.True(t, errs.Is(err, errs.ErrJobNotFound))

		rec, err := repo.FindByOwner(ctx, jobID, owner)
		require.NoError(t, err)
		assert.Empty(t, rec.FollowUpTasks())
		assert.Equal(t, application.StatusApplied, rec.Status())
	})

	s.Run("concurrent appends are serialized by the row lock", func() {
		t := s.T()
		jobID := dbtest.CreateTestJob(t, s.pool, owner, "Acme", "applied")

		const n = 8
		var wg sync.WaitGroup
		errCh := make(chan error, n)
		for i := range n {
			wg.Add(1)
			go func(i int) {
				defer wg.Done()
				errCh <- repo.AppendFollowUpTask(ctx, jobID, owner, "note", "", now.Add(time.Duration(i)*time.Second))
			}(i)
		}
		wg.Wait()
		close(errCh)
		for err := range errCh {
			require.NoError(t, err)
		}

		rec, err := repo.FindByOwner(ctx, jobID, owner)
		require.NoError(t, err)
		assert.Len(t, rec.FollowUpTasks(), n)
	})
}
