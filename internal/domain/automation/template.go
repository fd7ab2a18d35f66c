package automation

import (
	"fmt"
	"strings"
)

const (
	TemplateThankYou            = "thank_you"
	TemplateApplicationFollowUp = "application_follow_up"

	placeholderRecruiter = "[Recruiter Name]"
	placeholderPosition  = "[Position]"
	placeholderCompany   = "[Company]"
	signature            = "[Your Name]"
)

// TemplateVariables are caller-supplied overrides. Empty values fall back to
// the job record and then to a literal placeholder.
type TemplateVariables struct {
	RecruiterName string `json:"recruiterName,omitempty"`
	Position      string `json:"position,omitempty"`
	Company       string `json:"company,omitempty"`
}

// JobFields is the part of a job record a template may read.
type JobFields struct {
	RecruiterName string
	Position      string
	Company       string
}

func firstNonEmpty(fallback string, values ...string) string {
	for _, v := range values {
		if v = strings.TrimSpace(v); v != "" {
			return v
		}
	}
	return fallback
}

// RenderTemplate is deterministic: the same name, variables and job fields
// always produce the same message.
func RenderTemplate(name string, vars TemplateVariables, job JobFields) string {
	recruiter := firstNonEmpty(placeholderRecruiter, vars.RecruiterName, job.RecruiterName)
	position := firstNonEmpty(placeholderPosition, vars.Position, job.Position)
	company := firstNonEmpty(placeholderCompany, vars.Company, job.Company)

	switch name {
	case TemplateThankYou:
		return fmt.Sprintf(
			"Dear %s,\n\nThank you for taking the time to speak with me about the %s role at %s. "+
				"I enjoyed learning more about the team and I am excited about the opportunity to contribute.\n\n"+
				"Best regards,\n%s",
			recruiter, position, company, signature)
	case TemplateApplicationFollowUp:
		return fmt.Sprintf(
			"Dear %s,\n\nI recently applied for the %s position at %s and wanted to follow up on my application. "+
				"I remain very interested in the role and would welcome the chance to discuss my qualifications.\n\n"+
				"Best regards,\n%s",
			recruiter, position, company, signature)
	default:
		return fmt.Sprintf("Hi %s, regarding the %s position at %s. - %s", recruiter, position, company, signature)
	}
}
