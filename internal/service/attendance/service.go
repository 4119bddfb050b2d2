package attendance

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/shopspring/decimal"
	"github.com/workforce-ops/workforce-backend-go/internal/domain/attendance"
	"github.com/workforce-ops/workforce-backend-go/internal/domain/setting"
)

var sixty = decimal.NewFromInt(60)

type AttendanceServiceImpl struct {
	attendance.Repository
	settings setting.Store
}

func NewAttendanceService(repo attendance.Repository, settings setting.Store) attendance.Service {
	return &AttendanceServiceImpl{
		Repository: repo,
		settings:   settings,
	}
}

// minutesOfDay returns the wall-clock offset of t within its day.
func minutesOfDay(t time.Time) int {
	return t.Hour()*60 + t.Minute()
}

// hoursFromMinutes converts a minute count to decimal hours, two places.
func hoursFromMinutes(mins int64) decimal.Decimal {
	return decimal.NewFromInt(mins).Div(sixty).Round(2)
}

// CheckIn implements attendance.Service.
func (a *AttendanceServiceImpl) CheckIn(ctx context.Context, req attendance.CheckInRequest) (attendance.CheckInResult, error) {
	if err := req.Validate(); err != nil {
		return attendance.CheckInResult{}, err
	}

	now := req.Timestamp
	workDate := attendance.DateOnly(now)

	standardIn := a.settings.TimeOfDay(ctx, setting.KeyStandardCheckInTime, setting.TimeOfDay{Hour: 8})
	graceMinutes := a.settings.Int(ctx, setting.KeyLateGraceMinutes, 1)
	isLate := minutesOfDay(now) > standardIn.MinutesFromMidnight()+graceMinutes

	rec, err := a.Repository.GetByEmployeeAndDate(ctx, req.EmployeeID, workDate)
	switch {
	case err == nil:
		if rec.CheckInTime != nil {
			return attendance.CheckInResult{}, attendance.ErrAlreadyCheckedIn
		}
		// A record without a check-in can pre-exist the employee's arrival,
		// e.g. created by a leave approval over this day.
	case errors.Is(err, attendance.ErrRecordNotFound):
		rec = attendance.NewRecord(req.EmployeeID, workDate)
	default:
		return attendance.CheckInResult{}, fmt.Errorf("failed to get attendance record: %w", err)
	}

	rec.CheckInTime = &now
	rec.IsLate = isLate
	rec.CheckInPhotoRef = req.PhotoRef
	if req.Notes != nil {
		rec.Notes = req.Notes
	}

	// GPS is optional and never blocks check-in. The caller resolves the
	// address; without coordinates we store the sentinel and leave the
	// geofence flag unset.
	address := attendance.NoGPSAddress
	if req.Location != nil {
		address = req.Location.Address
		within := true
		rec.CheckInLatitude = &req.Location.Latitude
		rec.CheckInLongitude = &req.Location.Longitude
		rec.IsWithinGeofence = &within
	}
	rec.CheckInAddress = &address

	if rec.ID == "" {
		rec, err = a.Repository.Create(ctx, rec)
	} else {
		err = a.Repository.SetCheckIn(ctx, rec)
	}
	if err != nil {
		if errors.Is(err, attendance.ErrAlreadyCheckedIn) {
			return attendance.CheckInResult{}, attendance.ErrAlreadyCheckedIn
		}
		return attendance.CheckInResult{}, fmt.Errorf("failed to store check-in: %w", err)
	}

	return attendance.CheckInResult{
		RecordID:        rec.ID,
		IsLate:          isLate,
		ResolvedAddress: address,
		CheckInTime:     now,
	}, nil
}

// CheckOut implements attendance.Service. It closes the day's record and
// applies the weekend overtime auto-split: Sunday hours are all pre-approved
// overtime, Saturday hours split at noon, weekday overtime always goes
// through the request workflow.
func (a *AttendanceServiceImpl) CheckOut(ctx context.Context, req attendance.CheckOutRequest) (attendance.CheckOutResult, error) {
	if err := req.Validate(); err != nil {
		return attendance.CheckOutResult{}, err
	}

	now := req.Timestamp
	workDate := attendance.DateOnly(now)

	rec, err := a.Repository.GetByEmployeeAndDate(ctx, req.EmployeeID, workDate)
	if err != nil {
		if errors.Is(err, attendance.ErrRecordNotFound) {
			return attendance.CheckOutResult{}, attendance.ErrNotCheckedIn
		}
		return attendance.CheckOutResult{}, fmt.Errorf("failed to get attendance record: %w", err)
	}
	if rec.CheckInTime == nil {
		return attendance.CheckOutResult{}, attendance.ErrNotCheckedIn
	}
	if rec.CheckOutTime != nil {
		return attendance.CheckOutResult{}, attendance.ErrAlreadyCheckedOut
	}

	checkIn := *rec.CheckInTime
	totalMins := int64(now.Sub(checkIn).Minutes())
	totalHours := hoursFromMinutes(totalMins)

	standardOut := a.settings.TimeOfDay(ctx, setting.KeyStandardCheckOutTime, setting.TimeOfDay{Hour: 17})
	isEarly := minutesOfDay(now) < standardOut.MinutesFromMidnight()
	penaltyHours := decimal.Zero
	if isEarly {
		// Informational only; deductions come from the late/leave workflows.
		penaltyHours = hoursFromMinutes(int64(standardOut.MinutesFromMidnight() - minutesOfDay(now)))
	}

	regularHours := totalHours
	overtimeHours := decimal.Zero
	isWeekendOvertime := false
	var splitNote string

	switch now.Weekday() {
	case time.Sunday:
		// Every Sunday hour is overtime, pre-approved without a request.
		overtimeHours = totalHours
		regularHours = decimal.Zero
		isWeekendOvertime = true
		splitNote = fmt.Sprintf("Sunday overtime: %s hours, auto-approved", overtimeHours)
	case time.Saturday:
		noon := time.Date(now.Year(), now.Month(), now.Day(), 12, 0, 0, 0, now.Location())
		switch {
		case checkIn.Before(noon) && now.After(noon):
			regularHours = hoursFromMinutes(int64(noon.Sub(checkIn).Minutes()))
			overtimeHours = hoursFromMinutes(int64(now.Sub(noon).Minutes()))
		case !checkIn.Before(noon):
			regularHours = decimal.Zero
			overtimeHours = totalHours
		default:
			// Checked out by noon: all regular, no overtime.
		}
		if overtimeHours.IsPositive() {
			isWeekendOvertime = true
			splitNote = fmt.Sprintf("Saturday split at 12:00: %s regular hours, %s overtime hours, auto-approved",
				regularHours, overtimeHours)
		}
	default:
		// Weekday: no automatic overtime.
	}

	rec.CheckOutTime = &now
	rec.TotalHours = totalHours
	rec.ActualWorkHours = regularHours
	rec.CheckOutPhotoRef = req.PhotoRef
	if isWeekendOvertime {
		rec.ApprovedOvertimeHours = overtimeHours
		rec.IsOvertimeApproved = true
	}

	address := attendance.NoGPSAddress
	if req.Location != nil {
		address = req.Location.Address
		rec.CheckOutLatitude = &req.Location.Latitude
		rec.CheckOutLongitude = &req.Location.Longitude
	}
	rec.CheckOutAddress = &address

	notes := joinNotes(rec.Notes, req.Notes, splitNote)
	if notes != "" {
		rec.Notes = &notes
	}

	if err := a.Repository.SetCheckOut(ctx, rec); err != nil {
		if errors.Is(err, attendance.ErrAlreadyCheckedOut) {
			return attendance.CheckOutResult{}, attendance.ErrAlreadyCheckedOut
		}
		return attendance.CheckOutResult{}, fmt.Errorf("failed to store check-out: %w", err)
	}

	return attendance.CheckOutResult{
		RecordID:          rec.ID,
		TotalHours:        totalHours,
		RegularHours:      regularHours,
		OvertimeHours:     overtimeHours,
		IsEarlyCheckout:   isEarly,
		PenaltyHours:      penaltyHours,
		IsWeekendOvertime: isWeekendOvertime,
	}, nil
}

func joinNotes(existing *string, added *string, splitNote string) string {
	var out string
	if existing != nil {
		out = *existing
	}
	for _, s := range []string{deref(added), splitNote} {
		if s == "" {
			continue
		}
		if out != "" {
			out += "; "
		}
		out += s
	}
	return out
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

// ListRange implements attendance.Service.
func (a *AttendanceServiceImpl) ListRange(ctx context.Context, filter attendance.RangeFilter) ([]attendance.Record, error) {
	if err := filter.Validate(); err != nil {
		return nil, err
	}
	recs, err := a.Repository.ListByEmployeeAndRange(ctx, filter.EmployeeID,
		attendance.DateOnly(filter.StartDate), attendance.DateOnly(filter.EndDate))
	if err != nil {
		return nil, fmt.Errorf("failed to list attendance records: %w", err)
	}
	return recs, nil
}

// RunMissedCheckoutSweep implements attendance.Service.
func (a *AttendanceServiceImpl) RunMissedCheckoutSweep(ctx context.Context) (int, error) {
	today := attendance.DateOnly(time.Now().UTC())

	open, err := a.Repository.ListOpenPastRecords(ctx, today)
	if err != nil {
		return 0, fmt.Errorf("failed to list open past records: %w", err)
	}

	standardHours := a.settings.Decimal(ctx, setting.KeyStandardHoursPerDay, decimal.NewFromInt(8))

	filled := 0
	for _, rec := range open {
		// Re-check the precondition before writing so concurrent or repeated
		// sweeps stay idempotent.
		if rec.CheckInTime == nil || rec.CheckOutTime != nil || rec.TotalHours.IsPositive() {
			continue
		}
		rec.TotalHours = standardHours
		rec.ActualWorkHours = standardHours
		if err := a.Repository.Update(ctx, rec); err != nil {
			return filled, fmt.Errorf("failed to fill missed checkout for record %s: %w", rec.ID, err)
		}
		filled++
	}
	return filled, nil
}
