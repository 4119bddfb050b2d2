package payroll

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/workforce-ops/workforce-backend-go/internal/domain/attendance"
	"github.com/workforce-ops/workforce-backend-go/internal/domain/employee"
	"github.com/workforce-ops/workforce-backend-go/internal/domain/payroll"
	"github.com/workforce-ops/workforce-backend-go/internal/domain/setting"
	"github.com/workforce-ops/workforce-backend-go/internal/repository/memory"
	settingService "github.com/workforce-ops/workforce-backend-go/internal/service/setting"
)

var periodStart = time.Date(2026, 8, 1, 0, 0, 0, 0, time.UTC)

type payrollFixture struct {
	svc         payroll.Service
	attendances *memory.AttendanceRepository
	employees   *memory.EmployeeRepository
	settings    *memory.SettingRepository
}

func newPayrollFixture() payrollFixture {
	attendances := memory.NewAttendanceRepository()
	employees := memory.NewEmployeeRepository()
	settings := memory.NewSettingRepository()
	svc := NewPayrollService(attendances, employees, settingService.NewStore(settings))
	return payrollFixture{
		svc:         svc,
		attendances: attendances,
		employees:   employees,
		settings:    settings,
	}
}

func (f payrollFixture) seedEmployee(t *testing.T, name string, baseSalary int64) employee.Employee {
	t.Helper()
	salary := decimal.NewFromInt(baseSalary)
	return f.employees.Seed(employee.Employee{
		FullName:   name,
		BaseSalary: &salary,
	})
}

type dayOpts struct {
	late       bool
	multiplier string // defaults to "1"
	otHours    string // approved overtime hours
	deduction  int64
	noCheckIn  bool
}

func (f payrollFixture) seedDay(t *testing.T, employeeID string, dayOffset int, opts dayOpts) {
	t.Helper()
	day := periodStart.AddDate(0, 0, dayOffset)

	rec := attendance.NewRecord(employeeID, day)
	if !opts.noCheckIn {
		checkIn := time.Date(day.Year(), day.Month(), day.Day(), 8, 0, 0, 0, time.UTC)
		checkOut := checkIn.Add(8 * time.Hour)
		rec.CheckInTime = &checkIn
		rec.CheckOutTime = &checkOut
		rec.TotalHours = decimal.NewFromInt(8)
		rec.ActualWorkHours = rec.TotalHours
	}
	rec.IsLate = opts.late
	if opts.multiplier != "" {
		rec.SalaryMultiplier = decimal.RequireFromString(opts.multiplier)
	}
	if opts.otHours != "" {
		rec.ApprovedOvertimeHours = decimal.RequireFromString(opts.otHours)
		rec.IsOvertimeApproved = true
	}
	if opts.deduction > 0 {
		rec.DeductionAmount = decimal.NewFromInt(opts.deduction)
	}

	_, err := f.attendances.Create(context.Background(), rec)
	require.NoError(t, err)
}

func (f payrollFixture) seedRule(key, value string, method setting.ApplyMethod, unit *string) {
	f.settings.Seed(setting.Setting{
		Key:         key,
		Category:    setting.CategorySalaryRule,
		Value:       value,
		DataType:    setting.DataTypeNumber,
		ApplyMethod: &method,
		Unit:        unit,
		Active:      true,
	})
}

func (f payrollFixture) compute(t *testing.T, employeeIDs ...string) []payroll.SalaryBreakdown {
	t.Helper()
	breakdowns, err := f.svc.ComputePayroll(context.Background(), payroll.ComputeRequest{
		EmployeeIDs: employeeIDs,
		StartDate:   periodStart,
		EndDate:     periodStart.AddDate(0, 1, -1),
	})
	require.NoError(t, err)
	require.Len(t, breakdowns, len(employeeIDs))
	return breakdowns
}

func requireDecimal(t *testing.T, want string, got decimal.Decimal) {
	t.Helper()
	require.True(t, got.Equal(decimal.RequireFromString(want)), "want %s, got %s", want, got)
}

func TestPayrollService_ComputePayroll_Defaults(t *testing.T) {
	f := newPayrollFixture()
	emp := f.seedEmployee(t, "Ayu Lestari", 5200000)

	// Ten worked days, two of them late, one with three approved overtime
	// hours. Defaults: 26 work days a month, 8 hours a day, overtime at 1.5x.
	for i := 0; i < 10; i++ {
		f.seedDay(t, emp.ID, i, dayOpts{late: i < 2})
	}
	f.seedDay(t, emp.ID, 10, dayOpts{otHours: "3"})

	b := f.compute(t, emp.ID)[0]
	require.NoError(t, b.Err)

	assert.Equal(t, 11, b.WorkedDays)
	assert.Equal(t, 2, b.LateDays)
	requireDecimal(t, "200000", b.DailyRate)  // 5,200,000 / 26
	requireDecimal(t, "25000", b.HourlyRate)  // 200,000 / 8
	requireDecimal(t, "2200000", b.SalaryBase)
	requireDecimal(t, "3", b.OvertimeHours)
	requireDecimal(t, "112500", b.OvertimeSalary) // 3 x 25,000 x 1.5
	requireDecimal(t, "88", b.StandardHours)
	requireDecimal(t, "2312500", b.TotalSalary)
}

func TestPayrollService_ComputePayroll_DynamicRules(t *testing.T) {
	f := newPayrollFixture()
	emp := f.seedEmployee(t, "Budi Santoso", 5200000)

	for i := 0; i < 10; i++ {
		f.seedDay(t, emp.ID, i, dayOpts{late: i < 2})
	}

	pct := "%"
	f.seedRule("meal_allowance", "150000", setting.ApplyFixedMonthly, nil)
	f.seedRule("transport_allowance", "10000", setting.ApplyPerWorkday, nil)
	f.seedRule("performance_bonus", "10", setting.ApplyMultiplier, &pct)
	f.seedRule("late_penalty", "50000", setting.ApplyPerLateInstance, nil)
	f.seedRule("bpjs", "2", setting.ApplyPercentDeduction, nil)
	f.seedRule("full_attendance_bonus", "300000", setting.ApplyConditional, nil)

	b := f.compute(t, emp.ID)[0]
	require.NoError(t, b.Err)

	requireDecimal(t, "2000000", b.SalaryBase)
	requireDecimal(t, "250000", b.Allowances) // 150,000 + 10 x 10,000
	requireDecimal(t, "200000", b.Bonuses)    // 10% of 2,000,000; no full-attendance bonus
	requireDecimal(t, "140000", b.Deductions) // 2 x 50,000 + 2% of 2,000,000
	requireDecimal(t, "2310000", b.TotalSalary)
}

func TestPayrollService_ComputePayroll_ConditionalFullAttendance(t *testing.T) {
	f := newPayrollFixture()
	emp := f.seedEmployee(t, "Citra Dewi", 5200000)

	// Shrink the month so full attendance is reachable with five records.
	f.settings.SeedValue(setting.KeyWorkDaysPerMonth, setting.CategoryPayroll, "5", setting.DataTypeNumber)
	f.seedRule("full_attendance_bonus", "300000", setting.ApplyConditional, nil)

	for i := 0; i < 5; i++ {
		f.seedDay(t, emp.ID, i, dayOpts{})
	}

	b := f.compute(t, emp.ID)[0]
	require.NoError(t, b.Err)
	requireDecimal(t, "300000", b.Bonuses)
}

func TestPayrollService_ComputePayroll_ConditionalBlockedByLateDay(t *testing.T) {
	f := newPayrollFixture()
	emp := f.seedEmployee(t, "Citra Dewi", 5200000)

	f.settings.SeedValue(setting.KeyWorkDaysPerMonth, setting.CategoryPayroll, "5", setting.DataTypeNumber)
	f.seedRule("full_attendance_bonus", "300000", setting.ApplyConditional, nil)

	for i := 0; i < 5; i++ {
		f.seedDay(t, emp.ID, i, dayOpts{late: i == 0})
	}

	b := f.compute(t, emp.ID)[0]
	require.NoError(t, b.Err)
	requireDecimal(t, "0", b.Bonuses)
}

func TestPayrollService_ComputePayroll_LeaveMultiplierAndDeductions(t *testing.T) {
	f := newPayrollFixture()
	emp := f.seedEmployee(t, "Dian Pratama", 5200000)

	f.seedDay(t, emp.ID, 0, dayOpts{})
	f.seedDay(t, emp.ID, 1, dayOpts{multiplier: "0.5"})
	f.seedDay(t, emp.ID, 2, dayOpts{deduction: 25000})
	// A leave-created day the employee never checked in on is not a worked day.
	f.seedDay(t, emp.ID, 3, dayOpts{noCheckIn: true})

	b := f.compute(t, emp.ID)[0]
	require.NoError(t, b.Err)

	assert.Equal(t, 3, b.WorkedDays)
	requireDecimal(t, "500000", b.SalaryBase) // 200,000 + 100,000 + 200,000
	requireDecimal(t, "25000", b.Deductions)
	requireDecimal(t, "475000", b.TotalSalary)
}

func TestPayrollService_ComputePayroll_UnknownEmployeeIsolated(t *testing.T) {
	f := newPayrollFixture()
	emp := f.seedEmployee(t, "Eka Saputra", 5200000)
	f.seedDay(t, emp.ID, 0, dayOpts{})

	breakdowns := f.compute(t, emp.ID, "missing-employee")

	require.NoError(t, breakdowns[0].Err)
	requireDecimal(t, "200000", breakdowns[0].TotalSalary)
	assert.ErrorIs(t, breakdowns[1].Err, employee.ErrEmployeeNotFound)
}

func TestPayrollService_ComputePayroll_Idempotent(t *testing.T) {
	f := newPayrollFixture()
	emp := f.seedEmployee(t, "Fajar Nugroho", 5200000)
	for i := 0; i < 10; i++ {
		f.seedDay(t, emp.ID, i, dayOpts{late: i < 2, otHours: "1"})
	}

	first := f.compute(t, emp.ID)[0]
	second := f.compute(t, emp.ID)[0]
	require.NoError(t, first.Err)
	require.NoError(t, second.Err)
	assert.True(t, first.TotalSalary.Equal(second.TotalSalary))
	assert.Equal(t, first.WorkedDays, second.WorkedDays)
}

func TestNormalizeBaseSalary(t *testing.T) {
	cases := []struct {
		name string
		in   string
		want string
	}{
		{"millions shorthand", "5.2", "5200000"},
		{"missing digit", "520000", "5200000"},
		{"already full", "5200000", "5200000"},
		{"zero", "0", "0"},
		{"negative", "-5", "0"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := NormalizeBaseSalary(decimal.RequireFromString(tc.in))
			requireDecimal(t, tc.want, got)
		})
	}
}
