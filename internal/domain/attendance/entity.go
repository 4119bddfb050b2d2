package attendance

import (
	"time"

	"github.com/shopspring/decimal"
)

// NoGPSAddress is stored as the resolved address when a check-in or
// check-out arrives without location data. Absent GPS never blocks the
// operation.
const NoGPSAddress = "No GPS data"

// Location is a caller-supplied coordinate pair together with the address the
// caller already resolved for it. The engine never performs geocoding itself.
type Location struct {
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
	Address   string  `json:"address"`
}

// Record is the unique daily attendance entity for one employee. There is at
// most one Record per (EmployeeID, WorkDate); records are never deleted, only
// superseded by later mutations (check-out, request approval).
type Record struct {
	ID         string    `json:"id"`
	EmployeeID string    `json:"employee_id"`
	WorkDate   time.Time `json:"work_date"` // date only, midnight UTC

	CheckInTime       *time.Time `json:"check_in_time,omitempty"`
	CheckOutTime      *time.Time `json:"check_out_time,omitempty"`
	CheckInLatitude   *float64   `json:"check_in_latitude,omitempty"`
	CheckInLongitude  *float64   `json:"check_in_longitude,omitempty"`
	CheckInAddress    *string    `json:"check_in_address,omitempty"`
	CheckOutLatitude  *float64   `json:"check_out_latitude,omitempty"`
	CheckOutLongitude *float64   `json:"check_out_longitude,omitempty"`
	CheckOutAddress   *string    `json:"check_out_address,omitempty"`
	CheckInPhotoRef   *string    `json:"check_in_photo_ref,omitempty"`
	CheckOutPhotoRef  *string    `json:"check_out_photo_ref,omitempty"`
	IsWithinGeofence  *bool      `json:"is_within_geofence,omitempty"`

	IsLate                bool            `json:"is_late"`
	TotalHours            decimal.Decimal `json:"total_hours"`
	ActualWorkHours       decimal.Decimal `json:"actual_work_hours"`
	ApprovedOvertimeHours decimal.Decimal `json:"approved_overtime_hours"`
	IsOvertimeApproved    bool            `json:"is_overtime_approved"`
	SalaryMultiplier      decimal.Decimal `json:"salary_multiplier"`
	DeductionHours        decimal.Decimal `json:"deduction_hours"`
	DeductionAmount       decimal.Decimal `json:"deduction_amount"`

	HasOvertimeRequest bool    `json:"has_overtime_request"`
	HasLateRequest     bool    `json:"has_late_request"`
	OvertimeRequestID  *string `json:"overtime_request_id,omitempty"`
	LateRequestID      *string `json:"late_request_id,omitempty"`

	Notes *string `json:"notes,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// NewRecord returns a Record for the given key with the field defaults the
// engine relies on: multiplier 1.0, zero hours, no deductions.
func NewRecord(employeeID string, workDate time.Time) Record {
	return Record{
		EmployeeID:            employeeID,
		WorkDate:              DateOnly(workDate),
		TotalHours:            decimal.Zero,
		ActualWorkHours:       decimal.Zero,
		ApprovedOvertimeHours: decimal.Zero,
		SalaryMultiplier:      decimal.NewFromInt(1),
		DeductionHours:        decimal.Zero,
		DeductionAmount:       decimal.Zero,
	}
}

// DateOnly truncates t to its calendar day in UTC. WorkDate keys are always
// stored in this form so (employee, day) lookups are exact.
func DateOnly(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}
