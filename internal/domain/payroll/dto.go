package payroll

import (
	"time"

	"github.com/shopspring/decimal"
	"github.com/workforce-ops/workforce-backend-go/internal/pkg/validator"
)

// ComputeRequest selects the employees and the inclusive date range a payroll
// run covers.
type ComputeRequest struct {
	EmployeeIDs []string  `json:"employee_ids"`
	StartDate   time.Time `json:"start_date"`
	EndDate     time.Time `json:"end_date"`
}

func (r ComputeRequest) Validate() error {
	var errs validator.ValidationErrors
	if len(r.EmployeeIDs) == 0 {
		errs = append(errs, validator.ValidationError{Field: "employee_ids", Message: "at least one employee_id is required"})
	}
	if r.StartDate.IsZero() || r.EndDate.IsZero() {
		errs = append(errs, validator.ValidationError{Field: "start_date", Message: "start_date and end_date are required"})
	} else if r.EndDate.Before(r.StartDate) {
		errs = append(errs, validator.ValidationError{Field: "end_date", Message: "end_date must not be before start_date"})
	}
	if len(errs) > 0 {
		return errs
	}
	return nil
}

// SalaryBreakdown is the per-employee, per-period aggregate the engine
// returns. It is derived on demand and never persisted. All currency
// sub-totals are rounded to whole units before summation.
type SalaryBreakdown struct {
	EmployeeID   string `json:"employee_id"`
	EmployeeName string `json:"employee_name"`
	Department   string `json:"department"`

	WorkedDays    int             `json:"worked_days"`
	LateDays      int             `json:"late_days"`
	StandardHours decimal.Decimal `json:"standard_hours"`
	OvertimeHours decimal.Decimal `json:"overtime_hours"`

	BaseSalary     decimal.Decimal `json:"base_salary"`
	DailyRate      decimal.Decimal `json:"daily_rate"`
	HourlyRate     decimal.Decimal `json:"hourly_rate"`
	SalaryBase     decimal.Decimal `json:"salary_base"` // dailyRate x multiplier, summed over worked days
	OvertimeSalary decimal.Decimal `json:"overtime_salary"`
	Allowances     decimal.Decimal `json:"allowances"`
	Bonuses        decimal.Decimal `json:"bonuses"`
	Deductions     decimal.Decimal `json:"deductions"`
	TotalSalary    decimal.Decimal `json:"total_salary"`

	// Err is set when this employee's computation aborted; other employees
	// in the same batch are unaffected.
	Err error `json:"-"`
}
