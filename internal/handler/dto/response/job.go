package response

import (
	"time"

	"applytrack/internal/domain/application"
	"applytrack/internal/usecase/queries"
)

type JobResponse struct {
	ID                 string                         `json:"id"`
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

func FromJobView(v *queries.JobView) *JobResponse {
	return &JobResponse{
		ID:                 v.ID.String(),
		Company:            v.Company,
		Position:           v.Position,
		RecruiterName:      v.RecruiterName,
		Status:             v.Status,
		ApplicationHistory: v.ApplicationHistory,
		StatusHistory:      v.StatusHistory,
		Checklist:          v.Checklist,
		FollowUpTasks:      v.FollowUpTasks,
		TemplateResponses:  v.TemplateResponses,
		ApplicationPackage: v.ApplicationPackage,
		CreatedAt:          v.CreatedAt,
		UpdatedAt:          v.UpdatedAt,
	}
}
