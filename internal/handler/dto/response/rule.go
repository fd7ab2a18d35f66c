package response

import (
	"encoding/json"
	"time"

	"applytrack/internal/usecase/queries"
)

type RuleResponse struct {
	ID             string          `json:"id"`
	Type           string          `json:"type"`
	Config         json.RawMessage `json:"config" swaggertype:"object"`
	Schedule       time.Time       `json:"schedule"`
	Enabled        bool            `json:"enabled"`
	LastRunAt      *time.Time      `json:"lastRunAt,omitempty"`
	Attempts       int             `json:"attempts,omitempty"`
	LastError      string          `json:"lastError,omitempty"`
	NextAttemptAt  *time.Time      `json:"nextAttemptAt,omitempty"`
	DeadLetteredAt *time.Time      `json:"deadLetteredAt,omitempty"`
	CreatedAt      time.Time       `json:"createdAt"`
	UpdatedAt      time.Time       `json:"updatedAt"`
}

func FromRuleView(v *queries.RuleView) *RuleResponse {
	return &RuleResponse{
		ID:             v.ID.String(),
		Type:           v.Type,
		Config:         v.Config,
		Schedule:       v.Schedule,
		Enabled:        v.Enabled,
		LastRunAt:      v.LastRunAt,
		Attempts:       v.Attempts,
		LastError:      v.LastError,
		NextAttemptAt:  v.NextAttemptAt,
		DeadLetteredAt: v.DeadLetteredAt,
		CreatedAt:      v.CreatedAt,
		UpdatedAt:      v.UpdatedAt,
	}
}

type RuleListResponse struct {
	Rules []*RuleResponse `json:"rules"`
}

func FromRuleViews(views []*queries.RuleView) *RuleListResponse {
	res := &RuleListResponse{Rules: make([]*RuleResponse, len(views))}
	for i, v := range views {
		res.Rules[i] = FromRuleView(v)
	}
	return res
}
