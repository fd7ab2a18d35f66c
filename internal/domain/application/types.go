package application

import (
	"time"

	"github.com/google/uuid"
)

type Status string

const (
	StatusInterested  Status = "interested"
	StatusApplied     Status = "applied"
	StatusPhoneScreen Status = "phone_screen"
	StatusInterview   Status = "interview"
	StatusOffer       Status = "offer"
	StatusRejected    Status = "rejected"
)

func (s Status) String() string {
	return string(s)
}

func (s Status) IsValid() bool {
	switch s {
	case StatusInterested, StatusApplied, StatusPhoneScreen, StatusInterview, StatusOffer, StatusRejected:
		return true
	default:
		return false
	}
}

func AllStatuses() []Status {
	return []Status{StatusInterested, StatusApplied, StatusPhoneScreen, StatusInterview, StatusOffer, StatusRejected}
}

const (
	ChecklistSourceAutomation = "automation"
	FollowUpTypeAutomation    = "follow_up"
)

type HistoryEntry struct {
	Action    string    `json:"action"`
	Timestamp time.Time `json:"timestamp"`
}

type StatusChange struct {
	Status    Status    `json:"status"`
	Timestamp time.Time `json:"timestamp"`
}

type ChecklistItem struct {
	Label       string     `json:"label"`
	Completed   bool       `json:"completed"`
	CreatedAt   time.Time  `json:"createdAt"`
	CompletedAt *time.Time `json:"completedAt,omitempty"`
	Source      string     `json:"source"`
}

type FollowUpTask struct {
	Note      string    `json:"note"`
	CreatedAt time.Time `json:"createdAt"`
	Completed bool      `json:"completed"`
	Type      string    `json:"type"`
	Interval  string    `json:"interval,omitempty"`
}

type TemplateResponse struct {
	TemplateName string    `json:"templateName"`
	Message      string    `json:"message"`
	CreatedAt    time.Time `json:"createdAt"`
}

type Package struct {
	ResumeID          string    `json:"resumeId,omitempty"`
	CoverLetterID     string    `json:"coverLetterId,omitempty"`
	PortfolioURLs     []string  `json:"portfolioUrls,omitempty"`
	GeneratedAt       time.Time `json:"generatedAt"`
	GeneratedByRuleID uuid.UUID `json:"generatedByRuleId"`
}

// RecordState is the persisted shape of a Record.
type RecordState struct {
	ID                 uuid.UUID
	OwnerUserID        uuid.UUID
	Company            string
	Position           string
	RecruiterName      string
	Status             Status
	ApplicationHistory []HistoryEntry
	StatusHistory      []StatusChange
	Checklist          []ChecklistItem
	FollowUpTasks      []FollowUpTask
	TemplateResponses  []TemplateResponse
	ApplicationPackage *Package
	CreatedAt          time.Time
	UpdatedAt          time.Time
}
