package request

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/shopspring/decimal"
	"github.com/workforce-ops/workforce-backend-go/internal/domain/attendance"
	"github.com/workforce-ops/workforce-backend-go/internal/domain/request"
	"github.com/workforce-ops/workforce-backend-go/internal/domain/setting"
	"github.com/workforce-ops/workforce-backend-go/internal/pkg/database"
)

// overtimeWindowDays is the trailing submission window, in calendar days
// ending today, inside which a work date is still claimable.
const overtimeWindowDays = 3

var (
	sixty   = decimal.NewFromInt(60)
	hundred = decimal.NewFromInt(100)
)

type RequestServiceImpl struct {
	requests    request.Repository
	attendances attendance.Repository
	settings    setting.Store
	tx          database.Transactor
}

func NewRequestService(
	requests request.Repository,
	attendances attendance.Repository,
	settings setting.Store,
	tx database.Transactor,
) request.Service {
	return &RequestServiceImpl{
		requests:    requests,
		attendances: attendances,
		settings:    settings,
		tx:          tx,
	}
}

func hoursFromMinutes(mins int64) decimal.Decimal {
	return decimal.NewFromInt(mins).Div(sixty).Round(2)
}

// SubmitOvertime implements request.Service. Overtime hours are derived from
// the attendance record against the standard check-out time, never taken from
// the employee's input.
func (s *RequestServiceImpl) SubmitOvertime(ctx context.Context, req request.SubmitOvertimeRequest) (request.Request, error) {
	if err := req.Validate(); err != nil {
		return request.Request{}, err
	}

	now := time.Now().UTC()
	today := attendance.DateOnly(now)
	workDate := attendance.DateOnly(req.WorkDate)

	// Claimable days are the trailing window ending today; future dates are
	// never claimable.
	if workDate.After(today) || workDate.Before(today.AddDate(0, 0, -(overtimeWindowDays-1))) {
		return request.Request{}, request.ErrOutsideSubmissionWindow
	}

	rec, err := s.attendances.GetByEmployeeAndDate(ctx, req.EmployeeID, workDate)
	if err != nil {
		if errors.Is(err, attendance.ErrRecordNotFound) {
			return request.Request{}, request.ErrNoAttendanceRecord
		}
		return request.Request{}, fmt.Errorf("failed to get attendance record: %w", err)
	}
	if rec.CheckInTime == nil {
		return request.Request{}, request.ErrNoAttendanceRecord
	}

	active, err := s.requests.HasActiveByDateAndType(ctx, req.EmployeeID, workDate, request.TypeOvertime)
	if err != nil {
		return request.Request{}, fmt.Errorf("failed to check active requests: %w", err)
	}
	if active {
		return request.Request{}, request.ErrDuplicateActiveRequest
	}

	overtimeHours := s.deriveOvertimeHours(ctx, rec, now)
	if !overtimeHours.IsPositive() {
		return request.Request{}, request.ErrNoOvertimeToClaim
	}

	newReq := request.Request{
		Type:            request.TypeOvertime,
		EmployeeID:      req.EmployeeID,
		Status:          request.StatusPending,
		WorkDate:        &workDate,
		OvertimeHours:   overtimeHours,
		Reason:          req.Reason,
		TaskDescription: req.TaskDescription,
		SubmittedAt:     now,
	}

	var created request.Request
	err = s.tx.WithinTransaction(ctx, func(ctx context.Context) error {
		var err error
		created, err = s.requests.Create(ctx, newReq)
		if err != nil {
			return fmt.Errorf("failed to create overtime request: %w", err)
		}

		rec.HasOvertimeRequest = true
		rec.OvertimeRequestID = &created.ID
		if err := s.attendances.Update(ctx, rec); err != nil {
			return fmt.Errorf("failed to flag attendance record: %w", err)
		}
		return nil
	})
	if err != nil {
		return request.Request{}, err
	}
	return created, nil
}

// deriveOvertimeHours computes the claimable hours past the standard
// check-out time. For a still-open same-day record the hours are provisional
// against now and get finalized at the actual check-out.
func (s *RequestServiceImpl) deriveOvertimeHours(ctx context.Context, rec attendance.Record, now time.Time) decimal.Decimal {
	standardOut := s.settings.TimeOfDay(ctx, setting.KeyStandardCheckOutTime, setting.TimeOfDay{Hour: 17})

	ref := rec.CheckOutTime
	if ref == nil {
		if !attendance.DateOnly(now).Equal(rec.WorkDate) {
			return decimal.Zero
		}
		ref = &now
	}

	pastStandard := int64(ref.Sub(standardOut.On(*ref)).Minutes())
	if pastStandard <= 0 {
		return decimal.Zero
	}
	return hoursFromMinutes(pastStandard)
}

// SubmitLeave implements request.Service. TotalDays counts calendar days
// inclusive of both endpoints, not working days.
func (s *RequestServiceImpl) SubmitLeave(ctx context.Context, req request.SubmitLeaveRequest) (request.Request, error) {
	if err := req.Validate(); err != nil {
		return request.Request{}, err
	}

	start := attendance.DateOnly(req.StartDate)
	end := attendance.DateOnly(req.EndDate)
	totalDays := int(end.Sub(start).Hours()/24) + 1

	created, err := s.requests.Create(ctx, request.Request{
		Type:        request.TypeLeave,
		EmployeeID:  req.EmployeeID,
		Status:      request.StatusPending,
		StartDate:   &start,
		EndDate:     &end,
		TotalDays:   totalDays,
		Reason:      req.Reason,
		SubmittedAt: time.Now().UTC(),
	})
	if err != nil {
		return request.Request{}, fmt.Errorf("failed to create leave request: %w", err)
	}
	return created, nil
}

// SubmitLate implements request.Service.
func (s *RequestServiceImpl) SubmitLate(ctx context.Context, req request.SubmitLateRequest) (request.Request, error) {
	if err := req.Validate(); err != nil {
		return request.Request{}, err
	}

	workDate := attendance.DateOnly(req.WorkDate)
	expected := req.ExpectedArrival

	active, err := s.requests.HasActiveByDateAndType(ctx, req.EmployeeID, workDate, request.TypeLate)
	if err != nil {
		return request.Request{}, fmt.Errorf("failed to check active requests: %w", err)
	}
	if active {
		return request.Request{}, request.ErrDuplicateActiveRequest
	}

	newReq := request.Request{
		Type:            request.TypeLate,
		EmployeeID:      req.EmployeeID,
		Status:          request.StatusPending,
		WorkDate:        &workDate,
		ExpectedArrival: &expected,
		Reason:          req.Reason,
		SubmittedAt:     time.Now().UTC(),
	}

	var created request.Request
	err = s.tx.WithinTransaction(ctx, func(ctx context.Context) error {
		var err error
		created, err = s.requests.Create(ctx, newReq)
		if err != nil {
			return fmt.Errorf("failed to create late request: %w", err)
		}

		// Link the day's attendance if the employee already checked in.
		rec, err := s.attendances.GetByEmployeeAndDate(ctx, req.EmployeeID, workDate)
		if err != nil {
			if errors.Is(err, attendance.ErrRecordNotFound) {
				return nil
			}
			return fmt.Errorf("failed to get attendance record: %w", err)
		}
		rec.LateRequestID = &created.ID
		if err := s.attendances.Update(ctx, rec); err != nil {
			return fmt.Errorf("failed to link attendance record: %w", err)
		}
		return nil
	})
	if err != nil {
		return request.Request{}, err
	}
	return created, nil
}

// Review implements request.Service. The request row and its linked
// attendance side effects commit as one atomic unit.
func (s *RequestServiceImpl) Review(ctx context.Context, req request.ReviewRequest) error {
	if err := req.Validate(); err != nil {
		return err
	}

	r, err := s.requests.GetByID(ctx, req.RequestID)
	if err != nil {
		return err
	}
	if r.Status.IsTerminal() {
		return request.ErrAlreadyReviewed
	}

	now := time.Now().UTC()
	approved := req.Action == request.ActionApprove
	if approved {
		r.Status = request.StatusApproved
	} else {
		r.Status = request.StatusRejected
	}
	r.ReviewerID = &req.ReviewerID
	r.ReviewedAt = &now
	r.ReviewNote = req.Note

	return s.tx.WithinTransaction(ctx, func(ctx context.Context) error {
		if err := s.requests.Update(ctx, r); err != nil {
			return fmt.Errorf("failed to update request: %w", err)
		}
		return s.applyResolution(ctx, r, approved)
	})
}

// applyResolution mutates the linked attendance record(s) for an approved or
// rejected (or expired, which resolves as rejected) request.
func (s *RequestServiceImpl) applyResolution(ctx context.Context, r request.Request, approved bool) error {
	switch r.Type {
	case request.TypeOvertime:
		return s.resolveOvertime(ctx, r, approved)
	case request.TypeLeave:
		return s.resolveLeave(ctx, r, approved)
	case request.TypeLate:
		return s.resolveLate(ctx, r, approved)
	default:
		return fmt.Errorf("unknown request type %q", r.Type)
	}
}

func (s *RequestServiceImpl) resolveOvertime(ctx context.Context, r request.Request, approved bool) error {
	rec, err := s.attendances.GetByEmployeeAndDate(ctx, r.EmployeeID, *r.WorkDate)
	if err != nil {
		return fmt.Errorf("failed to get attendance record: %w", err)
	}

	if approved {
		rec.IsOvertimeApproved = true
		rec.ApprovedOvertimeHours = r.OvertimeHours
	} else {
		rec.IsOvertimeApproved = false
		rec.ApprovedOvertimeHours = decimal.Zero
	}
	// HasOvertimeRequest stays true either way as a historical marker.
	rec.HasOvertimeRequest = true

	if err := s.attendances.Update(ctx, rec); err != nil {
		return fmt.Errorf("failed to update attendance record: %w", err)
	}
	return nil
}

func (s *RequestServiceImpl) resolveLeave(ctx context.Context, r request.Request, approved bool) error {
	multiplier := s.settings.Decimal(ctx, setting.KeyUnpaidMultiplier, decimal.Zero)
	if approved {
		multiplier = s.settings.Decimal(ctx, setting.KeyLeaveMultiplier, decimal.NewFromInt(1))
	}

	for day := *r.StartDate; !day.After(*r.EndDate); day = day.AddDate(0, 0, 1) {
		rec, err := s.attendances.GetByEmployeeAndDate(ctx, r.EmployeeID, day)
		if err != nil {
			if !errors.Is(err, attendance.ErrRecordNotFound) {
				return fmt.Errorf("failed to get attendance record: %w", err)
			}
			// Rejection only touches records that already exist; approval
			// creates one for every covered day.
			if !approved {
				continue
			}
			rec = attendance.NewRecord(r.EmployeeID, day)
			rec.SalaryMultiplier = multiplier
			if _, err := s.attendances.Create(ctx, rec); err != nil {
				return fmt.Errorf("failed to create leave day record: %w", err)
			}
			continue
		}

		rec.SalaryMultiplier = multiplier
		if err := s.attendances.Update(ctx, rec); err != nil {
			return fmt.Errorf("failed to update attendance record: %w", err)
		}
	}
	return nil
}

func (s *RequestServiceImpl) resolveLate(ctx context.Context, r request.Request, approved bool) error {
	rec, err := s.attendances.GetByEmployeeAndDate(ctx, r.EmployeeID, *r.WorkDate)
	if err != nil {
		if errors.Is(err, attendance.ErrRecordNotFound) {
			// Nothing to adjust; the request resolution alone stands.
			return nil
		}
		return fmt.Errorf("failed to get attendance record: %w", err)
	}

	rec.HasLateRequest = true
	if approved {
		// An approved late arrival scales the day's penalty by the
		// configured percentage; at 0 the deduction is waived entirely.
		pct := s.settings.Decimal(ctx, setting.KeyApprovedLateDeductPct, decimal.Zero)
		if pct.IsZero() {
			rec.DeductionHours = decimal.Zero
			rec.DeductionAmount = decimal.Zero
		} else {
			scale := pct.Div(hundred)
			rec.DeductionHours = rec.DeductionHours.Mul(scale).Round(2)
			rec.DeductionAmount = rec.DeductionAmount.Mul(scale).Round(0)
		}
	}
	// Rejection leaves the deduction exactly as originally computed.

	if err := s.attendances.Update(ctx, rec); err != nil {
		return fmt.Errorf("failed to update attendance record: %w", err)
	}
	return nil
}

// Cancel implements request.Service.
func (s *RequestServiceImpl) Cancel(ctx context.Context, requestID, employeeID string) error {
	r, err := s.requests.GetByID(ctx, requestID)
	if err != nil {
		return err
	}
	if r.EmployeeID != employeeID {
		return request.ErrRequestNotFound
	}
	if r.Status != request.StatusPending {
		return request.ErrNotPending
	}

	r.Status = request.StatusCancelled
	if err := s.requests.Update(ctx, r); err != nil {
		return fmt.Errorf("failed to cancel request: %w", err)
	}
	return nil
}

// GetByID implements request.Service.
func (s *RequestServiceImpl) GetByID(ctx context.Context, id string) (request.Request, error) {
	return s.requests.GetByID(ctx, id)
}

// RunAutoExpireSweep implements request.Service. Expiry transitions exactly
// like a rejection, with a system-generated note. Already-resolved requests
// are never returned by the repository query, so re-running is a no-op.
func (s *RequestServiceImpl) RunAutoExpireSweep(ctx context.Context, windowDays int) (int, error) {
	cutoff := time.Now().UTC().AddDate(0, 0, -windowDays)

	stale, err := s.requests.ListPendingOlderThan(ctx, cutoff)
	if err != nil {
		return 0, fmt.Errorf("failed to list stale requests: %w", err)
	}

	expired := 0
	for _, r := range stale {
		if r.Status != request.StatusPending {
			continue
		}

		now := time.Now().UTC()
		note := fmt.Sprintf("Automatically expired after %d days without review", windowDays)
		r.Status = request.StatusExpired
		r.ReviewedAt = &now
		r.ReviewNote = &note

		err := s.tx.WithinTransaction(ctx, func(ctx context.Context) error {
			if err := s.requests.Update(ctx, r); err != nil {
				return fmt.Errorf("failed to expire request %s: %w", r.ID, err)
			}
			return s.applyResolution(ctx, r, false)
		})
		if err != nil {
			return expired, err
		}
		expired++
	}
	return expired, nil
}
