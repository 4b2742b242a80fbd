package domain

import "time"

type ScheduleStatus string

const (
	ScheduleStatusScheduled ScheduleStatus = "SCHEDULED"
	ScheduleStatusCompleted ScheduleStatus = "COMPLETED"
	ScheduleStatusNoShow    ScheduleStatus = "NO_SHOW"
	ScheduleStatusCancelled ScheduleStatus = "CANCELLED"
)

// Schedule is the time-boxed reservation created when a request is approved.
// Its status evolves independently of the request's. COMPLETED, NO_SHOW and
// CANCELLED are all terminal.
type Schedule struct {
	ID        int32          `json:"id"`
	RequestID int32          `json:"request_id"`
	StartDate time.Time      `json:"start_date"`
	EndDate   time.Time      `json:"end_date"`
	Status    ScheduleStatus `json:"status"`
	ClosedOn  *time.Time     `json:"closed_on,omitempty"`
	CreatedOn time.Time      `json:"created_on"`
	UpdatedOn time.Time      `json:"updated_on"`
}
