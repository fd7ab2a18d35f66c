package application

import (
	"errors"
	"fmt"
	"slices"
	"strings"
	"time"

	"github.com/google/uuid"
)

var (
	ErrInvalidStatus  = errors.New("invalid application status")
	ErrEmptyCompany   = errors.New("company is required")
	ErrMissingOwner   = errors.New("owner user id is required")
	ErrEmptyPackage   = errors.New("application package has no documents")
	ErrEmptyChecklist = errors.New("checklist has no labels")
)

// Record is a tracked job application. Its audit trails only grow; the
// application package is the one field that is overwritten.
type Record struct {
	id                 uuid.UUID
	ownerUserID        uuid.UUID
	company            string
	position           string
	recruiterName      string
	status             Status
	applicationHistory []HistoryEntry
	statusHistory      []StatusChange
	checklist          []ChecklistItem
	followUpTasks      []FollowUpTask
	templateResponses  []TemplateResponse
	applicationPackage *Package
	createdAt          time.Time
	updatedAt          time.Time
}

func NewRecord(ownerUserID uuid.UUID, company, position, recruiterName string, status Status, now time.Time) (*Record, error) {
	if ownerUserID == uuid.Nil {
		return nil, ErrMissingOwner
	}
	company = strings.TrimSpace(company)
	if company == "" {
		return nil, ErrEmptyCompany
	}
	if status == "" {
		status = StatusInterested
	}
	if !status.IsValid() {
		return nil, ErrInvalidStatus
	}

	return &Record{
		id:                 uuid.New(),
		ownerUserID:        ownerUserID,
		company:            company,
		position:           strings.TrimSpace(position),
		recruiterName:      strings.TrimSpace(recruiterName),
		status:             status,
		applicationHistory: []HistoryEntry{{Action: "Job record created", Timestamp: now}},
		statusHistory:      []StatusChange{{Status: status, Timestamp: now}},
		createdAt:          now,
		updatedAt:          now,
	}, nil
}

func ReconstructRecord(s RecordState) *Record {
	st := cloneState(s)
	return &Record{
		id:                 st.ID,
		ownerUserID:        st.OwnerUserID,
		company:            st.Company,
		position:           st.Position,
		recruiterName:      st.RecruiterName,
		status:             st.Status,
		applicationHistory: st.ApplicationHistory,
		statusHistory:      st.StatusHistory,
		checklist:          st.Checklist,
		followUpTasks:      st.FollowUpTasks,
		templateResponses:  st.TemplateResponses,
		applicationPackage: st.ApplicationPackage,
		createdAt:          st.CreatedAt,
		updatedAt:          st.UpdatedAt,
	}
}

// State returns a deep copy safe to persist or hand to callers.
func (r *Record) State() RecordState {
	return cloneState(RecordState{
		ID:                 r.id,
		OwnerUserID:        r.ownerUserID,
		Company:            r.company,
		Position:           r.position,
		RecruiterName:      r.recruiterName,
		Status:             r.status,
		ApplicationHistory: r.applicationHistory,
		StatusHistory:      r.statusHistory,
		Checklist:          r.checklist,
		FollowUpTasks:      r.followUpTasks,
		TemplateResponses:  r.templateResponses,
		ApplicationPackage: r.applicationPackage,
		CreatedAt:          r.createdAt,
		UpdatedAt:          r.updatedAt,
	})
}

func (r *Record) OwnedBy(userID uuid.UUID) bool {
	return r.ownerUserID == userID
}

// SetPackage overwrites the application package snapshot.
func (r *Record) SetPackage(pkg Package, at time.Time) error {
	if pkg.ResumeID == "" && pkg.CoverLetterID == "" && len(pkg.PortfolioURLs) == 0 {
		return ErrEmptyPackage
	}
	pkg.PortfolioURLs = slices.Clone(pkg.PortfolioURLs)
	pkg.GeneratedAt = at
	r.applicationPackage = &pkg
	r.audit("Application package assembled by automation", at)
	return nil
}

// ApplyStatus sets the status and appends to the status history unless the
// latest entry already records the same status. With an empty history the
// current status is the comparison point. It reports whether history grew.
func (r *Record) ApplyStatus(status Status, at time.Time) (bool, error) {
	if !status.IsValid() {
		return false, ErrInvalidStatus
	}

	last := r.status
	if n := len(r.statusHistory); n > 0 {
		last = r.statusHistory[n-1].Status
	}

	r.status = status
	changed := last != status
	if changed {
		r.statusHistory = append(r.statusHistory, StatusChange{Status: status, Timestamp: at})
	}
	r.audit(fmt.Sprintf("Status set to %s by automation", status), at)
	return changed, nil
}

// AddChecklistItems adds every label not already on the checklist. When the
// record's status equals autoCompleteOn, all incomplete items are completed.
func (r *Record) AddChecklistItems(labels []string, autoCompleteOn Status, at time.Time) (added, completed int, err error) {
	seen := make(map[string]struct{}, len(r.checklist))
	for _, item := range r.checklist {
		seen[item.Label] = struct{}{}
	}

	var candidates int
	for _, raw := range labels {
		label := strings.TrimSpace(raw)
		if label == "" {
			continue
		}
		candidates++
		if _, ok := seen[label]; ok {
			continue
		}
		seen[label] = struct{}{}
		r.checklist = append(r.checklist, ChecklistItem{
			Label:     label,
			CreatedAt: at,
			Source:    ChecklistSourceAutomation,
		})
		added++
	}
	if candidates == 0 {
		return 0, 0, ErrEmptyChecklist
	}

	if autoCompleteOn != "" && r.status == autoCompleteOn {
		for i := range r.checklist {
			if r.checklist[i].Completed {
				continue
			}
			doneAt := at
			r.checklist[i].Completed = true
			r.checklist[i].CompletedAt = &doneAt
			completed++
		}
	}

	r.audit(fmt.Sprintf("Checklist updated by automation (%d added, %d completed)", added, completed), at)
	return added, completed, nil
}

func (r *Record) AppendFollowUp(note, interval string, at time.Time) {
	r.followUpTasks = append(r.followUpTasks, FollowUpTask{
		Note:      note,
		CreatedAt: at,
		Completed: false,
		Type:      FollowUpTypeAutomation,
		Interval:  interval,
	})
	r.audit("Follow-up task scheduled by automation", at)
}

func (r *Record) AppendTemplateResponse(templateName, message string, at time.Time) {
	r.templateResponses = append(r.templateResponses, TemplateResponse{
		TemplateName: templateName,
		Message:      message,
		CreatedAt:    at,
	})
	r.audit(fmt.Sprintf("Template response %q generated by automation", templateName), at)
}

func (r *Record) audit(action string, at time.Time) {
	r.applicationHistory = append(r.applicationHistory, HistoryEntry{Action: action, Timestamp: at})
	r.updatedAt = at
}

func (r *Record) ID() uuid.UUID                         { return r.id }
func (r *Record) OwnerUserID() uuid.UUID                { return r.ownerUserID }
func (r *Record) Company() string                       { return r.company }
func (r *Record) Position() string                      { return r.position }
func (r *Record) RecruiterName() string                 { return r.recruiterName }
func (r *Record) Status() Status                        { return r.status }
func (r *Record) ApplicationHistory() []HistoryEntry    { return slices.Clone(r.applicationHistory) }
func (r *Record) StatusHistory() []StatusChange         { return slices.Clone(r.statusHistory) }
func (r *Record) Checklist() []ChecklistItem            { return slices.Clone(r.checklist) }
func (r *Record) FollowUpTasks() []FollowUpTask         { return slices.Clone(r.followUpTasks) }
func (r *Record) TemplateResponses() []TemplateResponse { return slices.Clone(r.templateResponses) }
func (r *Record) CreatedAt() time.Time                  { return r.createdAt }
func (r *Record) UpdatedAt() time.Time                  { return r.updatedAt }

func (r *Record) ApplicationPackage() *Package {
	if r.applicationPackage == nil {
		return nil
	}
	pkg := *r.applicationPackage
	pkg.PortfolioURLs = slices.Clone(pkg.PortfolioURLs)
	return &pkg
}

func cloneState(s RecordState) RecordState {
	out := s
	out.ApplicationHistory = slices.Clone(s.ApplicationHistory)
	out.StatusHistory = slices.Clone(s.StatusHistory)
	out.FollowUpTasks = slices.Clone(s.FollowUpTasks)
	out.TemplateResponses = slices.Clone(s.TemplateResponses)
	out.Checklist = make([]ChecklistItem, len(s.Checklist))
	for i, item := range s.Checklist {
		if item.CompletedAt != nil {
			t := *item.CompletedAt
			item.CompletedAt = &t
		}
		out.Checklist[i] = item
	}
	if s.Checklist == nil {
		out.Checklist = nil
	}
	if s.ApplicationPackage != nil {
		pkg := *s.ApplicationPackage
		pkg.PortfolioURLs = slices.Clone(pkg.PortfolioURLs)
		out.ApplicationPackage = &pkg
	}
	return out
}
