package automation

import (
	"bytes"
	"encoding/json"
	"strconv"
	"strings"

	"applytrack/internal/domain/application"
	"applytrack/internal/pkg/errs"

	"github.com/google/uuid"
)

const DefaultFollowUpMessage = "Follow up on application"

// Validator is implemented by every per-type config payload.
type Validator interface {
	Validate() error
}

// DecodeConfig unmarshals a rule config and validates it. Every failure is
// marked with errs.ErrInvalidRuleConfig.
func DecodeConfig[T Validator](raw json.RawMessage) (T, error) {
	var cfg T
	if len(bytes.TrimSpace(raw)) == 0 {
		return cfg, errs.Mark(errs.New("config is empty"), errs.ErrInvalidRuleConfig)
	}
	if err := json.Unmarshal(raw, &cfg); err != nil {
		return cfg, errs.Mark(errs.Wrap(err, "decode config"), errs.ErrInvalidRuleConfig)
	}
	if err := cfg.Validate(); err != nil {
		return cfg, errs.Mark(err, errs.ErrInvalidRuleConfig)
	}
	return cfg, nil
}

// ValidateConfig checks raw against the payload shape of t.
func ValidateConfig(t RuleType, raw json.RawMessage) error {
	var err error
	switch t {
	case TypeApplicationPackage:
		_, err = DecodeConfig[ApplicationPackageConfig](raw)
	case TypeSubmissionSchedule:
		_, err = DecodeConfig[SubmissionScheduleConfig](raw)
	case TypeFollowUp:
		_, err = DecodeConfig[FollowUpConfig](raw)
	case TypeChecklist:
		_, err = DecodeConfig[ChecklistConfig](raw)
	case TypeTemplateResponse:
		_, err = DecodeConfig[TemplateResponseConfig](raw)
	default:
		return ErrInvalidRuleType
	}
	return err
}

func parseJobID(raw string) (uuid.UUID, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return uuid.Nil, errs.New("jobId is required")
	}
	id, err := uuid.Parse(raw)
	if err != nil {
		return uuid.Nil, errs.Wrapf(err, "jobId %q", raw)
	}
	return id, nil
}

type ApplicationPackageConfig struct {
	JobID         string   `json:"jobId"`
	ResumeID      string   `json:"resumeId,omitempty"`
	CoverLetterID string   `json:"coverLetterId,omitempty"`
	PortfolioURL  string   `json:"portfolioUrl,omitempty"`
	PortfolioURLs []string `json:"portfolioUrls,omitempty"`
}

func (c ApplicationPackageConfig) Validate() error {
	if _, err := parseJobID(c.JobID); err != nil {
		return err
	}
	pkg := c.Package(uuid.Nil)
	if pkg.ResumeID == "" && pkg.CoverLetterID == "" && len(pkg.PortfolioURLs) == 0 {
		return errs.New("at least one of resumeId, coverLetterId, portfolioUrl(s) is required")
	}
	return nil
}

func (c ApplicationPackageConfig) Target() uuid.UUID {
	id, _ := parseJobID(c.JobID)
	return id
}

// Package merges the singular and plural portfolio fields, dropping blanks
// and duplicates.
func (c ApplicationPackageConfig) Package(ruleID uuid.UUID) application.Package {
	var urls []string
	seen := map[string]struct{}{}
	for _, u := range append([]string{c.PortfolioURL}, c.PortfolioURLs...) {
		u = strings.TrimSpace(u)
		if u == "" {
			continue
		}
		if _, ok := seen[u]; ok {
			continue
		}
		seen[u] = struct{}{}
		urls = append(urls, u)
	}
	return application.Package{
		ResumeID:          strings.TrimSpace(c.ResumeID),
		CoverLetterID:     strings.TrimSpace(c.CoverLetterID),
		PortfolioURLs:     urls,
		GeneratedByRuleID: ruleID,
	}
}

type SubmissionScheduleConfig struct {
	JobID     string             `json:"jobId,omitempty"`
	JobIDs    []string           `json:"jobIds,omitempty"`
	NewStatus application.Status `json:"newStatus"`
}

func (c SubmissionScheduleConfig) Validate() error {
	if !c.NewStatus.IsValid() {
		return errs.Newf("newStatus %q is not a valid status", c.NewStatus)
	}
	_, err := c.targets()
	return err
}

// Targets returns the deduplicated job ids in config order, jobId first.
func (c SubmissionScheduleConfig) Targets() []uuid.UUID {
	ids, _ := c.targets()
	return ids
}

func (c SubmissionScheduleConfig) targets() ([]uuid.UUID, error) {
	raw := c.JobIDs
	if strings.TrimSpace(c.JobID) != "" {
		raw = append([]string{c.JobID}, c.JobIDs...)
	}
	if len(raw) == 0 {
		return nil, errs.New("jobId or jobIds is required")
	}
	ids := make([]uuid.UUID, 0, len(raw))
	seen := make(map[uuid.UUID]struct{}, len(raw))
	for _, r := range raw {
		id, err := parseJobID(r)
		if err != nil {
			return nil, err
		}
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		ids = append(ids, id)
	}
	return ids, nil
}

// Interval is informational; rule authors send either "7d" or a bare number.
type Interval string

func (i *Interval) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	if bytes.Equal(b, []byte("null")) {
		*i = ""
		return nil
	}
	if len(b) > 0 && b[0] == '"' {
		var s string
		if err := json.Unmarshal(b, &s); err != nil {
			return err
		}
		*i = Interval(s)
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(b, &n); err != nil {
		return errs.Wrap(err, "interval must be a string or number")
	}
	if _, err := strconv.ParseFloat(n.String(), 64); err != nil {
		return errs.Wrap(err, "interval must be a string or number")
	}
	*i = Interval(n.String())
	return nil
}

type FollowUpConfig struct {
	JobID    string   `json:"jobId"`
	Message  string   `json:"message,omitempty"`
	Interval Interval `json:"interval,omitempty"`
}

func (c FollowUpConfig) Validate() error {
	_, err := parseJobID(c.JobID)
	return err
}

func (c FollowUpConfig) Target() uuid.UUID {
	id, _ := parseJobID(c.JobID)
	return id
}

func (c FollowUpConfig) Note() string {
	if msg := strings.TrimSpace(c.Message); msg != "" {
		return msg
	}
	return DefaultFollowUpMessage
}

// ChecklistItemConfig accepts {"label": "..."} or a bare string.
type ChecklistItemConfig struct {
	Label string `json:"label"`
}

func (c *ChecklistItemConfig) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	if len(b) > 0 && b[0] == '"' {
		return json.Unmarshal(b, &c.Label)
	}
	type plain ChecklistItemConfig
	var p plain
	if err := json.Unmarshal(b, &p); err != nil {
		return err
	}
	*c = ChecklistItemConfig(p)
	return nil
}

type ChecklistConfig struct {
	JobID                string                `json:"jobId"`
	Items                []ChecklistItemConfig `json:"items"`
	AutoCompleteOnStatus application.Status    `json:"autoCompleteOnStatus,omitempty"`
}

func (c ChecklistConfig) Validate() error {
	if _, err := parseJobID(c.JobID); err != nil {
		return err
	}
	if len(c.Labels()) == 0 {
		return errs.New("items must contain at least one non-empty label")
	}
	if c.AutoCompleteOnStatus != "" && !c.AutoCompleteOnStatus.IsValid() {
		return errs.Newf("autoCompleteOnStatus %q is not a valid status", c.AutoCompleteOnStatus)
	}
	return nil
}

func (c ChecklistConfig) Target() uuid.UUID {
	id, _ := parseJobID(c.JobID)
	return id
}

// Labels returns trimmed, non-empty labels with in-list duplicates removed.
func (c ChecklistConfig) Labels() []string {
	labels := make([]string, 0, len(c.Items))
	seen := make(map[string]struct{}, len(c.Items))
	for _, item := range c.Items {
		label := strings.TrimSpace(item.Label)
		if label == "" {
			continue
		}
		if _, ok := seen[label]; ok {
			continue
		}
		seen[label] = struct{}{}
		labels = append(labels, label)
	}
	return labels
}

type TemplateResponseConfig struct {
	JobID        string            `json:"jobId"`
	TemplateName string            `json:"templateName"`
	Variables    TemplateVariables `json:"variables,omitempty"`
}

func (c TemplateResponseConfig) Validate() error {
	if _, err := parseJobID(c.JobID); err != nil {
		return err
	}
	if strings.TrimSpace(c.TemplateName) == "" {
		return errs.New("templateName is required")
	}
	return nil
}

func (c TemplateResponseConfig) Target() uuid.UUID {
	id, _ := parseJobID(c.JobID)
	return id
}
