package request

import "applytrack/internal/usecase/commands"

type CreateJobRequest struct {
	Company       string `json:"company" binding:"required,max=200"`
	Position      string `json:"position" binding:"max=200"`
	RecruiterName string `json:"recruiterName" binding:"max=200"`
	Status        string `json:"status" binding:"omitempty,oneof=interested applied phone_screen interview offer rejected"`
}

func (r *CreateJobRequest) ToCommand() commands.CreateJobRequest {
	return commands.CreateJobRequest{
		Company:       r.Company,
		Position:      r.Position,
		RecruiterName: r.RecruiterName,
		Status:        r.Status,
	}
}
