package request

import (
	"encoding/json"
	"time"

	"applytrack/internal/usecase/commands"
)

type CreateRuleRequest struct {
	Type     string          `json:"type" binding:"required"`
	Config   json.RawMessage `json:"config" binding:"required" swaggertype:"object"`
	Schedule *time.Time      `json:"schedule,omitempty"`
	Enabled  *bool           `json:"enabled,omitempty"`
}

func (r *CreateRuleRequest) ToCommand() commands.CreateRuleRequest {
	return commands.CreateRuleRequest{
		Type:     r.Type,
		Config:   r.Config,
		Schedule: r.Schedule,
		Enabled:  r.Enabled,
	}
}
