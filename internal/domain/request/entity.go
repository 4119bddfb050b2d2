package request

import (
	"time"

	"github.com/shopspring/decimal"
)

// Type discriminates the three approval workflows.
type Type string

const (
	TypeOvertime Type = "overtime"
	TypeLeave    Type = "leave"
	TypeLate     Type = "late"
)

// Status is the request lifecycle state. Pending is the only non-terminal
// state; once resolved a request is immutable except for audit metadata.
type Status string

const (
	StatusPending   Status = "pending"
	StatusApproved  Status = "approved"
	StatusRejected  Status = "rejected"
	StatusCancelled Status = "cancelled"
	StatusExpired   Status = "expired"
)

// IsTerminal reports whether s admits no further transitions.
func (s Status) IsTerminal() bool {
	return s != StatusPending
}

// Request is an employee-submitted overtime, leave, or late-arrival request.
// Overtime and late requests reference a single attendance day; leave
// requests cover an inclusive calendar date range.
type Request struct {
	ID         string `json:"id"`
	Type       Type   `json:"type"`
	EmployeeID string `json:"employee_id"`
	Status     Status `json:"status"`

	// Overtime / late: the attendance day the request is about.
	WorkDate *time.Time `json:"work_date,omitempty"`

	// Leave only.
	StartDate *time.Time `json:"start_date,omitempty"`
	EndDate   *time.Time `json:"end_date,omitempty"`
	TotalDays int        `json:"total_days,omitempty"`

	// Overtime only: hours derived from the attendance record, never
	// free-entered by the employee.
	OvertimeHours decimal.Decimal `json:"overtime_hours"`

	// Late only.
	ExpectedArrival *time.Time `json:"expected_arrival,omitempty"`

	Reason          string  `json:"reason"`
	TaskDescription *string `json:"task_description,omitempty"`

	ReviewerID *string    `json:"reviewer_id,omitempty"`
	ReviewedAt *time.Time `json:"reviewed_at,omitempty"`
	ReviewNote *string    `json:"review_note,omitempty"`

	SubmittedAt time.Time `json:"submitted_at"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}
