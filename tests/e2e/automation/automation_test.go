//go:build e2e

package automation_test

import (
	"fmt"
	"net/http"
	"testing"
	"time"

	"applytrack/internal/domain/application"
	domauto "applytrack/internal/domain/automation"
	"applytrack/internal/domain/user"
	"applytrack/internal/handler/dto/response"
	"applytrack/tests/common/builder"
	"applytrack/tests/common/dbtest"
	"applytrack/tests/common/httptest"
	"applytrack/tests/e2e"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
)

const (
	rulesURL     = "/api/automation/rules"
	ruleURL      = "/api/automation/rules/%s"
	ticksURL     = "/api/automation/ticks"
	schedulerURL = "/api/automation/scheduler"
	jobsURL      = "/api/jobs"
	jobURL       = "/api/jobs/%s"
)

type AutomationSuite struct {
	e2e.SharedSuite
}

func TestAutomationSuite(t *testing.T) {
	t.Parallel()
	suite.Run(t, new(AutomationSuite))
}

// =============================================================================
// helpers
// =============================================================================

func (s *AutomationSuite) createJob(token string, b *builder.JobBuilder) *response.JobResponse {
	t := s.T()
	w := httptest.PerformRequest(t, s.Router, http.MethodPost, jobsURL, b.BuildCreateRequestDTO(), token)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	var job response.JobResponse
	_ = httptest.DecodeResponseBody(t, w.Body, &job)
	return &job
}

func (s *AutomationSuite) getJob(token, id string) *response.JobResponse {
	t := s.T()
	w := httptest.PerformRequest(t, s.Router, http.MethodGet, fmt.Sprintf(jobURL, id), nil, token)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var job response.JobResponse
	_ = httptest.DecodeResponseBody(t, w.Body, &job)
	return &job
}

func (s *AutomationSuite) createRule(token string, b *builder.RuleBuilder) *response.RuleResponse {
	t := s.T()
	w := httptest.PerformRequest(t, s.Router, http.MethodPost, rulesURL, b.BuildCreateRequestDTO(), token)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	var rule response.RuleResponse
	_ = httptest.DecodeResponseBody(t, w.Body, &rule)
	return &rule
}

func (s *AutomationSuite) getRule(token, id string) *response.RuleResponse {
	t := s.T()
	w := httptest.PerformRequest(t, s.Router, http.MethodGet, fmt.Sprintf(ruleURL, id), nil, token)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var rule response.RuleResponse
	_ = httptest.DecodeResponseBody(t, w.Body, &rule)
	return &rule
}

func (s *AutomationSuite) tick() *response.TickReportResponse {
	t := s.T()
	_, admin := s.Tokens.NewUser(t, user.RoleAdmin)
	w := httptest.PerformRequest(t, s.Router, http.MethodPost, ticksURL, nil, admin)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var report response.TickReportResponse
	_ = httptest.DecodeResponseBody(t, w.Body, &report)
	return &report
}

func past() time.Time {
	return time.Now().UTC().Add(-time.Minute).Truncate(time.Millisecond)
}

var ignoreReportTiming = cmpopts.IgnoreFields(response.TickReportResponse{}, "StartedAt", "DurationMs")

// =============================================================================
// TestAuthorization
// =============================================================================

func (s *AutomationSuite) TestAuthorization() {
	s.Run("Error case: missing token is rejected", func() {
		w := httptest.PerformRequest(s.T(), s.Router, http.MethodGet, rulesURL, nil, "")
		require.Equal(s.T(), http.StatusUnauthorized, w.Code)
	})

	s.Run("Error case: expired token is rejected", func() {
		token := s.Tokens.CreateExpiredToken(s.T(), uuid.New(), user.RoleOperator)
		w := httptest.PerformRequest(s.T(), s.Router, http.MethodGet, rulesURL, nil, token)
		require.Equal(s.T(), http.StatusUnauthorized, w.Code)
	})

	s.Run("Normal case: request id is echoed back", func() {
		_, token := s.Tokens.NewUser(s.T(), user.RoleViewer)
		w := httptest.PerformRequestWithHeaders(s.T(), s.Router, http.MethodGet, rulesURL, nil, token,
			http.Header{"X-Request-ID": {"e2e-trace-1"}})
		require.Equal(s.T(), http.StatusOK, w.Code)
		require.Equal(s.T(), "e2e-trace-1", w.Header().Get("X-Request-ID"))
	})

	s.Run("Error case: operator cannot trigger a tick", func() {
		_, token := s.Tokens.NewUser(s.T(), user.RoleOperator)
		w := httptest.PerformRequest(s.T(), s.Router, http.MethodPost, ticksURL, nil, token)
		require.Equal(s.T(), http.StatusForbidden, w.Code)
	})

	s.Run("Error case: operator cannot read scheduler stats", func() {
		_, token := s.Tokens.NewUser(s.T(), user.RoleOperator)
		w := httptest.PerformRequest(s.T(), s.Router, http.MethodGet, schedulerURL, nil, token)
		require.Equal(s.T(), http.StatusForbidden, w.Code)
	})
}

// =============================================================================
// TestCreateRule
// =============================================================================

func (s *AutomationSuite) TestCreateRule() {
	s.Run("Normal case: rule is created and listed for its owner only", func() {
		t := s.T()
		_, token := s.Tokens.NewUser(t, user.RoleOperator)
		_, other := s.Tokens.NewUser(t, user.RoleOperator)

		created := s.createRule(token, builder.NewRuleBuilder().WithSchedule(past()))
		require.NotEmpty(t, created.ID)
		require.Equal(t, string(domauto.TypeFollowUp), created.Type)
		require.True(t, created.Enabled)
		require.Nil(t, created.LastRunAt)

		w := httptest.PerformRequest(t, s.Router, http.MethodGet, rulesURL, nil, token)
		require.Equal(t, http.StatusOK, w.Code)
		var list response.RuleListResponse
		_ = httptest.DecodeResponseBody(t, w.Body, &list)
		require.Len(t, list.Rules, 1)
		require.Equal(t, created.ID, list.Rules[0].ID)

		w = httptest.PerformRequest(t, s.Router, http.MethodGet, fmt.Sprintf(ruleURL, created.ID), nil, other)
		require.Equal(t, http.StatusNotFound, w.Code)
	})

	s.Run("Error case: unknown rule type", func() {
		_, token := s.Tokens.NewUser(s.T(), user.RoleOperator)
		req := builder.NewRuleBuilder().WithType("email_blast").BuildCreateRequestDTO()
		w := httptest.PerformRequest(s.T(), s.Router, http.MethodPost, rulesURL, req, token)
		require.Equal(s.T(), http.StatusBadRequest, w.Code, w.Body.String())
	})

	s.Run("Error case: config without a job id", func() {
		_, token := s.Tokens.NewUser(s.T(), user.RoleOperator)
		req := builder.NewRuleBuilder().WithConfig(map[string]any{"message": "hi"}).BuildCreateRequestDTO()
		w := httptest.PerformRequest(s.T(), s.Router, http.MethodPost, rulesURL, req, token)
		httptest.AssertErrorDetail(s.T(), w, http.StatusBadRequest, "jobId is required")
	})
}

// =============================================================================
// TestTick - rules run through the full stack against Postgres
// =============================================================================

func (s *AutomationSuite) TestTick() {
	s.Run("Normal case: follow-up rule runs exactly once", func() {
		t := s.T()
		_, token := s.Tokens.NewUser(t, user.RoleOperator)
		job := s.createJob(token, builder.NewJobBuilder())

		rule := s.createRule(token, builder.NewRuleBuilder().
			WithConfig(map[string]any{"jobId": job.ID, "message": "Ping Dana", "interval": "7"}).
			WithSchedule(past()))

		report := s.tick()
		want := response.TickReportResponse{Selected: 1, Applied: 1}
		require.Empty(t, cmp.Diff(want, *report, ignoreReportTiming))

		got := s.getJob(token, job.ID)
		require.Len(t, got.FollowUpTasks, 1)
		require.Equal(t, "Ping Dana", got.FollowUpTasks[0].Note)
		require.Equal(t, "7", got.FollowUpTasks[0].Interval)
		require.Equal(t, application.FollowUpTypeAutomation, got.FollowUpTasks[0].Type)

		require.NotNil(t, s.getRule(token, rule.ID).LastRunAt)

		report = s.tick()
		require.Equal(t, 0, report.Selected)
		require.Len(t, s.getJob(token, job.ID).FollowUpTasks, 1)
	})

	s.Run("Normal case: future and disabled rules are not selected", func() {
		t := s.T()
		_, token := s.Tokens.NewUser(t, user.RoleOperator)
		job := s.createJob(token, builder.NewJobBuilder())
		cfg := map[string]any{"jobId": job.ID}

		s.createRule(token, builder.NewRuleBuilder().WithConfig(cfg).WithSchedule(time.Now().UTC().Add(time.Hour)))
		s.createRule(token, builder.NewRuleBuilder().WithConfig(cfg).WithSchedule(past()).Disabled())

		require.Equal(t, 0, s.tick().Selected)
		require.Empty(t, s.getJob(token, job.ID).FollowUpTasks)
	})

	s.Run("Normal case: submission schedule updates every target", func() {
		t := s.T()
		ownerID, token := s.Tokens.NewUser(t, user.RoleOperator)
		first := dbtest.CreateTestJob(t, s.DB, ownerID, "Acme", string(application.StatusApplied))
		second := dbtest.CreateTestJob(t, s.DB, ownerID, "Globex", string(application.StatusApplied))

		s.createRule(token, builder.NewRuleBuilder().
			WithType(domauto.TypeSubmissionSchedule).
			WithConfig(map[string]any{
				"jobIds":    []string{first.String(), second.String()},
				"newStatus": application.StatusInterview,
			}).
			WithSchedule(past()))

		report := s.tick()
		require.Equal(t, 1, report.Applied)

		for _, id := range []uuid.UUID{first, second} {
			got := s.getJob(token, id.String())
			require.Equal(t, string(application.StatusInterview), got.Status)
			require.Len(t, got.StatusHistory, 2)
		}
	})

	s.Run("Normal case: checklist and template response", func() {
		t := s.T()
		_, token := s.Tokens.NewUser(t, user.RoleOperator)
		job := s.createJob(token, builder.NewJobBuilder().WithStatus(application.StatusOffer))

		s.createRule(token, builder.NewRuleBuilder().
			WithType(domauto.TypeChecklist).
			WithConfig(map[string]any{
				"jobId":                job.ID,
				"items":                []map[string]string{{"label": "Send references"}, {"label": " Send references "}},
				"autoCompleteOnStatus": application.StatusOffer,
			}).
			WithSchedule(past()))
		s.createRule(token, builder.NewRuleBuilder().
			WithType(domauto.TypeTemplateResponse).
			WithConfig(map[string]any{"jobId": job.ID, "templateName": domauto.TemplateThankYou}).
			WithSchedule(past()))

		report := s.tick()
		require.Equal(t, 2, report.Applied)

		got := s.getJob(token, job.ID)
		require.Len(t, got.Checklist, 1)
		require.Equal(t, "Send references", got.Checklist[0].Label)
		require.True(t, got.Checklist[0].Completed)
		require.Len(t, got.TemplateResponses, 1)
		require.Contains(t, got.TemplateResponses[0].Message, "Dear Dana")
	})

	s.Run("Normal case: a rule cannot touch another owner's job", func() {
		t := s.T()
		_, owner := s.Tokens.NewUser(t, user.RoleOperator)
		_, intruder := s.Tokens.NewUser(t, user.RoleOperator)
		job := s.createJob(owner, builder.NewJobBuilder())

		rule := s.createRule(intruder, builder.NewRuleBuilder().
			WithConfig(map[string]any{"jobId": job.ID}).
			WithSchedule(past()))

		report := s.tick()
		require.Equal(t, 1, report.Skipped)
		require.Empty(t, s.getJob(owner, job.ID).FollowUpTasks)
		require.NotNil(t, s.getRule(intruder, rule.ID).LastRunAt)
	})

	s.Run("Normal case: unknown rule type stays pending", func() {
		t := s.T()
		ownerID, token := s.Tokens.NewUser(t, user.RoleOperator)
		ruleID := dbtest.CreateTestRule(t, s.DB, ownerID, "email_blast", map[string]any{"to": "x"}, past())

		report := s.tick()
		require.Equal(t, 1, report.UnknownType)
		require.Nil(t, dbtest.RuleLastRunAt(t, s.DB, ruleID))
		require.Nil(t, s.getRule(token, ruleID.String()).LastRunAt)

		require.Equal(t, 1, s.tick().UnknownType)
	})

	s.Run("Normal case: reset makes a committed rule due again", func() {
		t := s.T()
		_, token := s.Tokens.NewUser(t, user.RoleOperator)
		job := s.createJob(token, builder.NewJobBuilder())
		rule := s.createRule(token, builder.NewRuleBuilder().
			WithConfig(map[string]any{"jobId": job.ID}).
			WithSchedule(past()))

		require.Equal(t, 1, s.tick().Applied)

		w := httptest.PerformRequest(t, s.Router, http.MethodPost, fmt.Sprintf(ruleURL, rule.ID)+"/reset", nil, token)
		require.Equal(t, http.StatusOK, w.Code, w.Body.String())
		var reset response.RuleResponse
		_ = httptest.DecodeResponseBody(t, w.Body, &reset)
		require.Nil(t, reset.LastRunAt)

		require.Equal(t, 1, s.tick().Applied)
		require.Len(t, s.getJob(token, job.ID).FollowUpTasks, 2)
	})

	s.Run("Normal case: scheduler stats reflect the last tick", func() {
		t := s.T()
		s.tick()

		_, admin := s.Tokens.NewUser(t, user.RoleAdmin)
		w := httptest.PerformRequest(t, s.Router, http.MethodGet, schedulerURL, nil, admin)
		require.Equal(t, http.StatusOK, w.Code, w.Body.String())

		var stats response.SchedulerStatsResponse
		_ = httptest.DecodeResponseBody(t, w.Body, &stats)
		require.False(t, stats.Running)
		require.Positive(t, stats.Ticks)
		require.NotNil(t, stats.LastTickAt)
		require.NotNil(t, stats.LastReport)
	})
}
