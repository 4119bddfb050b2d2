package setting

import (
	"fmt"
	"time"
)

// DataType hints how a setting value string should be parsed.
type DataType string

const (
	DataTypeString  DataType = "string"
	DataTypeNumber  DataType = "number"
	DataTypeBoolean DataType = "boolean"
	DataTypeTime    DataType = "time"
)

// ApplyMethod selects which payroll rule formula a dynamic salary setting uses.
type ApplyMethod string

const (
	ApplyFixedMonthly     ApplyMethod = "FIXED_MONTHLY"
	ApplyPerWorkday       ApplyMethod = "PER_WORKDAY"
	ApplyMultiplier       ApplyMethod = "MULTIPLIER"
	ApplyPerLateInstance  ApplyMethod = "PER_LATE_INSTANCE"
	ApplyPercentDeduction ApplyMethod = "PERCENT_DEDUCTION"
	ApplyConditional      ApplyMethod = "CONDITIONAL"
)

// Valid reports whether m is one of the known apply methods.
func (m ApplyMethod) Valid() bool {
	switch m {
	case ApplyFixedMonthly, ApplyPerWorkday, ApplyMultiplier,
		ApplyPerLateInstance, ApplyPercentDeduction, ApplyConditional:
		return true
	}
	return false
}

// Setting is one key/value configuration row. Settings are read-only inputs
// to the engine; nothing in this module ever writes them.
type Setting struct {
	ID          string
	Key         string
	Category    string
	Value       string
	DataType    DataType
	ApplyMethod *ApplyMethod
	Unit        *string
	Name        *string
	Active      bool
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// Setting categories.
const (
	CategoryAttendance = "attendance"
	CategoryPayroll    = "payroll"
	CategorySalaryRule = "salary_rule"
	CategoryWorkflow   = "workflow"
)

// Well-known configuration keys consumed by the engine.
const (
	KeyStandardCheckInTime   = "standard_check_in_time"
	KeyStandardCheckOutTime  = "standard_check_out_time"
	KeyLateGraceMinutes      = "late_grace_minutes"
	KeyStandardHoursPerDay   = "standard_hours_per_day"
	KeyWorkDaysPerMonth      = "work_days_per_month"
	KeyOvertimeRate          = "overtime_rate"
	KeyLeaveMultiplier       = "leave_salary_multiplier"
	KeyUnpaidMultiplier      = "unpaid_salary_multiplier"
	KeyApprovedLateDeductPct = "approved_late_deduction_percent"
	KeyRequestExpiryDays     = "request_expiry_days"
)

// TimeOfDay is a wall-clock time without a date, parsed from "HH:MM" values.
type TimeOfDay struct {
	Hour   int
	Minute int
}

// ParseTimeOfDay parses "HH:MM" (and tolerates "HH:MM:SS").
func ParseTimeOfDay(s string) (TimeOfDay, error) {
	t, err := time.Parse("15:04", s)
	if err != nil {
		t, err = time.Parse("15:04:05", s)
		if err != nil {
			return TimeOfDay{}, fmt.Errorf("invalid time of day %q: %w", s, err)
		}
	}
	return TimeOfDay{Hour: t.Hour(), Minute: t.Minute()}, nil
}

// MinutesFromMidnight returns the offset of t within its day, in minutes.
func (t TimeOfDay) MinutesFromMidnight() int {
	return t.Hour*60 + t.Minute
}

// On anchors the time of day onto the calendar day of ref, in ref's location.
func (t TimeOfDay) On(ref time.Time) time.Time {
	return time.Date(ref.Year(), ref.Month(), ref.Day(), t.Hour, t.Minute, 0, 0, ref.Location())
}

func (t TimeOfDay) String() string {
	return fmt.Sprintf("%02d:%02d", t.Hour, t.Minute)
}
