package automation

import "errors"

var (
	ErrInvalidRuleType = errors.New("invalid automation rule type")
	ErrMissingOwner    = errors.New("rule owner is required")
	ErrMissingSchedule = errors.New("rule schedule is required")
)

type RuleType string

const (
	TypeApplicationPackage RuleType = "application_package"
	TypeSubmissionSchedule RuleType = "submission_schedule"
	TypeFollowUp           RuleType = "follow_up"
	TypeChecklist          RuleType = "checklist"
	TypeTemplateResponse   RuleType = "template_response"
)

// AllTypes is the closed set of rule types. The dispatcher refuses to start
// unless every entry has a handler.
func AllTypes() []RuleType {
	return []RuleType{
		TypeApplicationPackage,
		TypeSubmissionSchedule,
		TypeFollowUp,
		TypeChecklist,
		TypeTemplateResponse,
	}
}

func (t RuleType) String() string {
	return string(t)
}

func (t RuleType) IsValid() bool {
	switch t {
	case TypeApplicationPackage, TypeSubmissionSchedule, TypeFollowUp, TypeChecklist, TypeTemplateResponse:
		return true
	default:
		return false
	}
}

func ParseType(s string) (RuleType, error) {
	t := RuleType(s)
	if !t.IsValid() {
		return "", ErrInvalidRuleType
	}
	return t, nil
}
