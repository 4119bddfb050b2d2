package payroll

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/shopspring/decimal"
	"github.com/workforce-ops/workforce-backend-go/internal/domain/attendance"
	"github.com/workforce-ops/workforce-backend-go/internal/domain/employee"
	"github.com/workforce-ops/workforce-backend-go/internal/domain/payroll"
	"github.com/workforce-ops/workforce-backend-go/internal/domain/setting"
)

var (
	hundred = decimal.NewFromInt(100)
	one     = decimal.NewFromInt(1)
)

type PayrollServiceImpl struct {
	attendances attendance.Repository
	employees   employee.Repository
	settings    setting.Store
}

func NewPayrollService(
	attendances attendance.Repository,
	employees employee.Repository,
	settings setting.Store,
) payroll.Service {
	return &PayrollServiceImpl{
		attendances: attendances,
		employees:   employees,
		settings:    settings,
	}
}

// baseSettings are the static inputs one payroll run reads once and shares,
// read-only, across every employee in the batch.
type baseSettings struct {
	workDaysPerMonth    decimal.Decimal
	standardHoursPerDay decimal.Decimal
	overtimeRate        decimal.Decimal
	rules               []setting.Setting
}

// ComputePayroll implements payroll.Service. Each employee is computed
// independently from a snapshot of committed records; a failure aborts only
// that employee's entry, never the batch.
func (s *PayrollServiceImpl) ComputePayroll(ctx context.Context, req payroll.ComputeRequest) ([]payroll.SalaryBreakdown, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	rules, err := s.settings.ActiveSalaryRules(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load salary rules: %w", err)
	}

	base := baseSettings{
		workDaysPerMonth:    s.settings.Decimal(ctx, setting.KeyWorkDaysPerMonth, decimal.NewFromInt(26)),
		standardHoursPerDay: s.settings.Decimal(ctx, setting.KeyStandardHoursPerDay, decimal.NewFromInt(8)),
		overtimeRate:        s.settings.Decimal(ctx, setting.KeyOvertimeRate, decimal.NewFromFloat(1.5)),
		rules:               rules,
	}

	start := attendance.DateOnly(req.StartDate)
	end := attendance.DateOnly(req.EndDate)

	breakdowns := make([]payroll.SalaryBreakdown, 0, len(req.EmployeeIDs))
	for _, id := range req.EmployeeIDs {
		breakdowns = append(breakdowns, s.computeOne(ctx, id, start, end, base))
	}
	return breakdowns, nil
}

func (s *PayrollServiceImpl) computeOne(ctx context.Context, employeeID string, start, end time.Time, base baseSettings) payroll.SalaryBreakdown {
	out := payroll.SalaryBreakdown{EmployeeID: employeeID}

	emp, err := s.employees.GetByID(ctx, employeeID)
	if err != nil {
		out.Err = err
		return out
	}
	out.EmployeeName = emp.FullName
	if emp.Department != nil {
		out.Department = *emp.Department
	}

	baseSalary := decimal.Zero
	if emp.BaseSalary != nil {
		baseSalary = *emp.BaseSalary
	}
	baseSalary = NormalizeBaseSalary(baseSalary)

	dailyRate := baseSalary.Div(base.workDaysPerMonth).Round(0)
	hourlyRate := dailyRate.Div(base.standardHoursPerDay).Round(0)

	records, err := s.attendances.ListByEmployeeAndRange(ctx, employeeID, start, end)
	if err != nil {
		out.Err = fmt.Errorf("failed to list attendance records: %w", err)
		return out
	}

	var (
		workedDays     int
		lateDays       int
		standardHours  = decimal.Zero
		overtimeHours  = decimal.Zero
		salaryWithMult = decimal.Zero
		overtimeSalary = decimal.Zero
		deduction      = decimal.Zero
	)

	for _, rec := range records {
		if rec.CheckInTime == nil {
			continue
		}
		workedDays++
		if rec.IsLate {
			lateDays++
		}

		salaryWithMult = salaryWithMult.Add(dailyRate.Mul(rec.SalaryMultiplier).Round(0))

		if rec.TotalHours.IsPositive() {
			standardHours = standardHours.Add(rec.TotalHours)
		} else {
			standardHours = standardHours.Add(base.standardHoursPerDay)
		}

		if rec.ApprovedOvertimeHours.IsPositive() {
			overtimeHours = overtimeHours.Add(rec.ApprovedOvertimeHours)
			overtimeSalary = overtimeSalary.Add(
				rec.ApprovedOvertimeHours.Mul(hourlyRate).Mul(base.overtimeRate).Round(0))
		}

		deduction = deduction.Add(rec.DeductionAmount)
	}

	allowances, bonuses, dynamicDeductions := applyRules(base, salaryWithMult, workedDays, lateDays)

	finalBase := salaryWithMult.Add(allowances).Add(bonuses)
	finalDeduction := deduction.Add(dynamicDeductions)

	out.WorkedDays = workedDays
	out.LateDays = lateDays
	out.StandardHours = standardHours
	out.OvertimeHours = overtimeHours
	out.BaseSalary = baseSalary
	out.DailyRate = dailyRate
	out.HourlyRate = hourlyRate
	out.SalaryBase = salaryWithMult
	out.OvertimeSalary = overtimeSalary
	out.Allowances = allowances
	out.Bonuses = bonuses
	out.Deductions = finalDeduction
	out.TotalSalary = finalBase.Add(overtimeSalary).Sub(finalDeduction)
	return out
}

// applyRules evaluates every enabled dynamic salary setting against the
// step-3 aggregates. Rules are order independent: each one reads only the
// aggregates, never another rule's output.
func applyRules(base baseSettings, salaryWithMult decimal.Decimal, workedDays, lateDays int) (allowances, bonuses, deductions decimal.Decimal) {
	allowances, bonuses, deductions = decimal.Zero, decimal.Zero, decimal.Zero
	workedDaysDec := decimal.NewFromInt(int64(workedDays))
	lateDaysDec := decimal.NewFromInt(int64(lateDays))

	for _, rule := range base.rules {
		value, err := decimal.NewFromString(rule.Value)
		if err != nil {
			slog.Warn("Skipping salary rule with malformed value", "key", rule.Key, "value", rule.Value)
			continue
		}

		switch *rule.ApplyMethod {
		case setting.ApplyFixedMonthly:
			allowances = allowances.Add(value.Round(0))
		case setting.ApplyPerWorkday:
			allowances = allowances.Add(value.Mul(workedDaysDec).Round(0))
		case setting.ApplyMultiplier:
			if rule.Unit != nil && *rule.Unit == "%" {
				bonuses = bonuses.Add(salaryWithMult.Mul(value).Div(hundred).Round(0))
			} else {
				bonuses = bonuses.Add(salaryWithMult.Mul(value.Sub(one)).Round(0))
			}
		case setting.ApplyPerLateInstance:
			deductions = deductions.Add(value.Mul(lateDaysDec).Round(0))
		case setting.ApplyPercentDeduction:
			deductions = deductions.Add(salaryWithMult.Mul(value).Div(hundred).Round(0))
		case setting.ApplyConditional:
			// Full-attendance bonus: a flat grant for a complete month with
			// no late arrivals, zero otherwise.
			if workedDaysDec.GreaterThanOrEqual(base.workDaysPerMonth) && lateDays == 0 {
				bonuses = bonuses.Add(value.Round(0))
			}
		}
	}
	return allowances, bonuses, deductions
}

// NormalizeBaseSalary corrects base salaries whose magnitude indicates
// truncated data entry: values under 1,000 are read as millions, values under
// 1,000,000 as missing one digit. Anything at or above a million is taken as
// entered.
func NormalizeBaseSalary(s decimal.Decimal) decimal.Decimal {
	if !s.IsPositive() {
		return decimal.Zero
	}
	thousand := decimal.NewFromInt(1000)
	million := decimal.NewFromInt(1000000)
	switch {
	case s.LessThan(thousand):
		return s.Mul(million)
	case s.LessThan(million):
		return s.Mul(decimal.NewFromInt(10))
	default:
		return s
	}
}
