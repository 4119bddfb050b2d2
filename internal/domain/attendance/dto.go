package attendance

import (
	"time"

	"github.com/shopspring/decimal"
	"github.com/workforce-ops/workforce-backend-go/internal/pkg/validator"
)

// CheckInRequest carries everything the state machine needs for a check-in.
// Location and PhotoRef are optional; their absence never blocks the
// transition.
type CheckInRequest struct {
	EmployeeID string    `json:"employee_id"`
	Timestamp  time.Time `json:"timestamp"`
	Location   *Location `json:"location,omitempty"`
	PhotoRef   *string   `json:"photo_ref,omitempty"`
	Notes      *string   `json:"notes,omitempty"`
}

func (r CheckInRequest) Validate() error {
	var errs validator.ValidationErrors
	if validator.IsEmpty(r.EmployeeID) {
		errs = append(errs, validator.ValidationError{Field: "employee_id", Message: "employee_id is required"})
	}
	if r.Timestamp.IsZero() {
		errs = append(errs, validator.ValidationError{Field: "timestamp", Message: "timestamp is required"})
	}
	if len(errs) > 0 {
		return errs
	}
	return nil
}

// CheckOutRequest mirrors CheckInRequest for the closing transition.
type CheckOutRequest struct {
	EmployeeID string    `json:"employee_id"`
	Timestamp  time.Time `json:"timestamp"`
	Location   *Location `json:"location,omitempty"`
	PhotoRef   *string   `json:"photo_ref,omitempty"`
	Notes      *string   `json:"notes,omitempty"`
}

func (r CheckOutRequest) Validate() error {
	var errs validator.ValidationErrors
	if validator.IsEmpty(r.EmployeeID) {
		errs = append(errs, validator.ValidationError{Field: "employee_id", Message: "employee_id is required"})
	}
	if r.Timestamp.IsZero() {
		errs = append(errs, validator.ValidationError{Field: "timestamp", Message: "timestamp is required"})
	}
	if len(errs) > 0 {
		return errs
	}
	return nil
}

// CheckInResult is returned to the caller for display.
type CheckInResult struct {
	RecordID        string    `json:"record_id"`
	IsLate          bool      `json:"is_late"`
	ResolvedAddress string    `json:"resolved_address"`
	CheckInTime     time.Time `json:"check_in_time"`
}

// CheckOutResult is the full breakdown of the closed day.
type CheckOutResult struct {
	RecordID          string          `json:"record_id"`
	TotalHours        decimal.Decimal `json:"total_hours"`
	RegularHours      decimal.Decimal `json:"regular_hours"`
	OvertimeHours     decimal.Decimal `json:"overtime_hours"`
	IsEarlyCheckout   bool            `json:"is_early_checkout"`
	PenaltyHours      decimal.Decimal `json:"penalty_hours"`
	IsWeekendOvertime bool            `json:"is_weekend_overtime"`
}

// RangeFilter selects an employee's records over an inclusive date range.
type RangeFilter struct {
	EmployeeID string
	StartDate  time.Time
	EndDate    time.Time
}

func (f RangeFilter) Validate() error {
	var errs validator.ValidationErrors
	if validator.IsEmpty(f.EmployeeID) {
		errs = append(errs, validator.ValidationError{Field: "employee_id", Message: "employee_id is required"})
	}
	if f.EndDate.Before(f.StartDate) {
		errs = append(errs, validator.ValidationError{Field: "end_date", Message: "end_date must not be before start_date"})
	}
	if len(errs) > 0 {
		return errs
	}
	return nil
}
