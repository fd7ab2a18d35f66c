package repository

import (
	"context"
	"time"

	"applytrack/internal/domain/automation"
	"applytrack/internal/infra"
	"applytrack/internal/infra/db"
	"applytrack/internal/pkg/errs"
	"applytrack/internal/pkg/pgconv"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
)

const ruleColumns = `id, owner_user_id, type, config, schedule, enabled, last_run_at,
	attempts, last_error, next_attempt_at, dead_lettered_at, created_at, updated_at`

type RuleRepository struct {
	db db.DBTX
}

func NewRuleRepository(conn db.DBTX) *RuleRepository {
	return &RuleRepository{db: conn}
}

func (r *RuleRepository) ListDue(ctx context.Context, now time.Time) ([]*automation.Rule, error) {
	rows, err := r.db.Query(ctx, `
		SELECT `+ruleColumns+`
		FROM automation_rules
		WHERE enabled
		  AND last_run_at IS NULL
		  AND dead_lettered_at IS NULL
		  AND schedule <= $1
		  AND (next_attempt_at IS NULL OR next_attempt_at <= $1)
		ORDER BY schedule ASC, id ASC`, now)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to list due rules", err)
	}
	return collectRules(rows)
}

func (r *RuleRepository) MarkRun(ctx context.Context, id uuid.UUID, at time.Time) error {
	tag, err := r.db.Exec(ctx, `
		UPDATE automation_rules
		SET last_run_at = $2, updated_at = $2
		WHERE id = $1 AND last_run_at IS NULL`, id, at)
	if err != nil {
		return infra.WrapRepoErr("failed to mark rule run", err)
	}
	if tag.RowsAffected() == 1 {
		return nil
	}
	return r.explainMiss(ctx, id)
}

func (r *RuleRepository) RecordFailure(ctx context.Context, id uuid.UUID, f automation.Failure, at time.Time) error {
	tag, err := r.db.Exec(ctx, `
		UPDATE automation_rules
		SET attempts = $2,
		    last_error = $3,
		    next_attempt_at = $4,
		    dead_lettered_at = CASE WHEN $5 THEN $6 ELSE dead_lettered_at END,
		    updated_at = $6
		WHERE id = $1 AND last_run_at IS NULL`,
		id, f.Attempts, f.LastError, pgconv.TimePtrToPgtype(f.NextAttemptAt), f.DeadLettered, at)
	if err != nil {
		return infra.WrapRepoErr("failed to record rule failure", err)
	}
	if tag.RowsAffected() == 1 {
		return nil
	}
	return r.explainMiss(ctx, id)
}

// explainMiss distinguishes a missing rule from one that was already
// committed when a conditional update touched no rows.
func (r *RuleRepository) explainMiss(ctx context.Context, id uuid.UUID) error {
	var exists bool
	err := r.db.QueryRow(ctx, `SELECT EXISTS (SELECT 1 FROM automation_rules WHERE id = $1)`, id).Scan(&exists)
	if err != nil {
		return infra.WrapRepoErr("failed to look up rule", err)
	}
	if !exists {
		return ruleNotFound()
	}
	return errs.Mark(errs.Newf("rule %s already executed", id), errs.ErrRuleAlreadyRun)
}

func (r *RuleRepository) Create(ctx context.Context, rule *automation.Rule) error {
	s := rule.State()
	_, err := r.db.Exec(ctx, `
		INSERT INTO automation_rules (id, owner_user_id, type, config, schedule, enabled, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`,
		s.ID, s.OwnerUserID, string(s.Type), []byte(s.Config), s.Schedule, s.Enabled, s.CreatedAt, s.UpdatedAt)
	if err != nil {
		return infra.WrapRepoErr("failed to create rule", err)
	}
	return nil
}

func (r *RuleRepository) FindByOwner(ctx context.Context, id, ownerUserID uuid.UUID) (*automation.Rule, error) {
	row := r.db.QueryRow(ctx, `
		SELECT `+ruleColumns+`
		FROM automation_rules
		WHERE id = $1 AND owner_user_id = $2`, id, ownerUserID)
	rule, err := scanRule(row)
	if err != nil {
		if pgconv.IsNoRows(err) {
			return nil, ruleNotFound()
		}
		return nil, infra.WrapRepoErr("failed to find rule", err)
	}
	return rule, nil
}

func (r *RuleRepository) ListByOwner(ctx context.Context, ownerUserID uuid.UUID) ([]*automation.Rule, error) {
	rows, err := r.db.Query(ctx, `
		SELECT `+ruleColumns+`
		FROM automation_rules
		WHERE owner_user_id = $1
		ORDER BY created_at DESC, id ASC`, ownerUserID)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to list rules", err)
	}
	return collectRules(rows)
}

func (r *RuleRepository) Reset(ctx context.Context, id, ownerUserID uuid.UUID, at time.Time) (*automation.Rule, error) {
	row := r.db.QueryRow(ctx, `
		UPDATE automation_rules
		SET last_run_at = NULL,
		    attempts = 0,
		    last_error = '',
		    next_attempt_at = NULL,
		    dead_lettered_at = NULL,
		    updated_at = $3
		WHERE id = $1 AND owner_user_id = $2
		RETURNING `+ruleColumns, id, ownerUserID, at)
	rule, err := scanRule(row)
	if err != nil {
		if pgconv.IsNoRows(err) {
			return nil, ruleNotFound()
		}
		return nil, infra.WrapRepoErr("failed to reset rule", err)
	}
	return rule, nil
}

func (r *RuleRepository) SetEnabled(ctx context.Context, id, ownerUserID uuid.UUID, enabled bool, at time.Time) (*automation.Rule, error) {
	row := r.db.QueryRow(ctx, `
		UPDATE automation_rules
		SET enabled = $3, updated_at = $4
		WHERE id = $1 AND owner_user_id = $2
		RETURNING `+ruleColumns, id, ownerUserID, enabled, at)
	rule, err := scanRule(row)
	if err != nil {
		if pgconv.IsNoRows(err) {
			return nil, ruleNotFound()
		}
		return nil, infra.WrapRepoErr("failed to update rule", err)
	}
	return rule, nil
}

func ruleNotFound() error {
	return errs.Mark(infra.WrapRepoErr("rule not found", pgx.ErrNoRows, infra.KindNotFound), errs.ErrRuleNotFound)
}

func collectRules(rows pgx.Rows) ([]*automation.Rule, error) {
	defer rows.Close()

	var rules []*automation.Rule
	for rows.Next() {
		rule, err := scanRule(rows)
		if err != nil {
			return nil, infra.WrapRepoErr("failed to scan rule", err)
		}
		rules = append(rules, rule)
	}
	if err := rows.Err(); err != nil {
		return nil, infra.WrapRepoErr("failed to iterate rules", err)
	}
	return rules, nil
}

func scanRule(row pgx.Row) (*automation.Rule, error) {
	var (
		s                                    automation.RuleState
		ruleType                             string
		config                               []byte
		lastRunAt, nextAttempt, deadLettered pgtype.Timestamptz
	)
	err := row.Scan(
		&s.ID, &s.OwnerUserID, &ruleType, &config, &s.Schedule, &s.Enabled, &lastRunAt,
		&s.Attempts, &s.LastError, &nextAttempt, &deadLettered, &s.CreatedAt, &s.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	s.Type = automation.RuleType(ruleType)
	s.Config = config
	s.LastRunAt = pgconv.TimePtrFromPgtype(lastRunAt)
	s.NextAttemptAt = pgconv.TimePtrFromPgtype(nextAttempt)
	s.DeadLetteredAt = pgconv.TimePtrFromPgtype(deadLettered)
	return automation.ReconstructRule(s), nil
}
