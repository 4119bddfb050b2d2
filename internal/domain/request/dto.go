package request

import (
	"time"

	"github.com/workforce-ops/workforce-backend-go/internal/pkg/validator"
)

// SubmitOvertimeRequest asks to have a day's extra hours approved. The hours
// themselves are derived from the attendance record, not taken from here.
type SubmitOvertimeRequest struct {
	EmployeeID      string    `json:"employee_id"`
	WorkDate        time.Time `json:"work_date"`
	Reason          string    `json:"reason"`
	TaskDescription *string   `json:"task_description,omitempty"`
}

func (r SubmitOvertimeRequest) Validate() error {
	var errs validator.ValidationErrors
	if validator.IsEmpty(r.EmployeeID) {
		errs = append(errs, validator.ValidationError{Field: "employee_id", Message: "employee_id is required"})
	}
	if r.WorkDate.IsZero() {
		errs = append(errs, validator.ValidationError{Field: "work_date", Message: "work_date is required"})
	}
	if validator.IsEmpty(r.Reason) {
		errs = append(errs, validator.ValidationError{Field: "reason", Message: "reason is required"})
	}
	if len(errs) > 0 {
		return errs
	}
	return nil
}

type SubmitLeaveRequest struct {
	EmployeeID string    `json:"employee_id"`
	StartDate  time.Time `json:"start_date"`
	EndDate    time.Time `json:"end_date"`
	Reason     string    `json:"reason"`
}

func (r SubmitLeaveRequest) Validate() error {
	var errs validator.ValidationErrors
	if validator.IsEmpty(r.EmployeeID) {
		errs = append(errs, validator.ValidationError{Field: "employee_id", Message: "employee_id is required"})
	}
	if r.StartDate.IsZero() || r.EndDate.IsZero() {
		errs = append(errs, validator.ValidationError{Field: "start_date", Message: "start_date and end_date are required"})
	} else if r.EndDate.Before(r.StartDate) {
		errs = append(errs, validator.ValidationError{Field: "end_date", Message: "end_date must not be before start_date"})
	}
	if validator.IsEmpty(r.Reason) {
		errs = append(errs, validator.ValidationError{Field: "reason", Message: "reason is required"})
	}
	if len(errs) > 0 {
		return errs
	}
	return nil
}

type SubmitLateRequest struct {
	EmployeeID      string    `json:"employee_id"`
	WorkDate        time.Time `json:"work_date"`
	ExpectedArrival time.Time `json:"expected_arrival"`
	Reason          string    `json:"reason"`
}

func (r SubmitLateRequest) Validate() error {
	var errs validator.ValidationErrors
	if validator.IsEmpty(r.EmployeeID) {
		errs = append(errs, validator.ValidationError{Field: "employee_id", Message: "employee_id is required"})
	}
	if r.WorkDate.IsZero() {
		errs = append(errs, validator.ValidationError{Field: "work_date", Message: "work_date is required"})
	}
	if r.ExpectedArrival.IsZero() {
		errs = append(errs, validator.ValidationError{Field: "expected_arrival", Message: "expected_arrival is required"})
	}
	if validator.IsEmpty(r.Reason) {
		errs = append(errs, validator.ValidationError{Field: "reason", Message: "reason is required"})
	}
	if len(errs) > 0 {
		return errs
	}
	return nil
}

// ReviewAction is the reviewer's decision.
type ReviewAction string

const (
	ActionApprove ReviewAction = "approve"
	ActionReject  ReviewAction = "reject"
)

type ReviewRequest struct {
	RequestID  string       `json:"-"` // taken from the URL
	Action     ReviewAction `json:"action"`
	ReviewerID string       `json:"reviewer_id"`
	Note       *string      `json:"note,omitempty"`
}

func (r ReviewRequest) Validate() error {
	var errs validator.ValidationErrors
	if validator.IsEmpty(r.RequestID) {
		errs = append(errs, validator.ValidationError{Field: "request_id", Message: "request_id is required"})
	}
	if validator.IsEmpty(r.ReviewerID) {
		errs = append(errs, validator.ValidationError{Field: "reviewer_id", Message: "reviewer_id is required"})
	}
	if r.Action != ActionApprove && r.Action != ActionReject {
		errs = append(errs, validator.ValidationError{Field: "action", Message: "action must be approve or reject"})
	}
	if len(errs) > 0 {
		return errs
	}
	return nil
}
