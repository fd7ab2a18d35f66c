package response

import (
	"time"

	"applytrack/internal/usecase/automation"
)

type TickReportResponse struct {
	StartedAt   time.Time `json:"startedAt"`
	DurationMs  int64     `json:"durationMs"`
	Selected    int       `json:"selected"`
	Applied     int       `json:"applied"`
	Skipped     int       `json:"skipped"`
	Failed      int       `json:"failed"`
	UnknownType int       `json:"unknownType"`
}

func FromTickReport(r automation.TickReport) *TickReportResponse {
	return &TickReportResponse{
		StartedAt:   r.StartedAt,
		DurationMs:  r.Duration.Milliseconds(),
		Selected:    r.Selected,
		Applied:     r.Applied,
		Skipped:     r.Skipped,
		Failed:      r.Failed,
		UnknownType: r.UnknownType,
	}
}

type SchedulerStatsResponse struct {
	Running    bool                `json:"running"`
	Ticks      int64               `json:"ticks"`
	LastTickAt *time.Time          `json:"lastTickAt,omitempty"`
	LastReport *TickReportResponse `json:"lastReport,omitempty"`
}

func FromStats(s automation.Stats) *SchedulerStatsResponse {
	res := &SchedulerStatsResponse{Running: s.Running, Ticks: s.Ticks}
	if !s.LastTickAt.IsZero() {
		t := s.LastTickAt
		res.LastTickAt = &t
	}
	if s.LastReport != nil {
		res.LastReport = FromTickReport(*s.LastReport)
	}
	return res
}
