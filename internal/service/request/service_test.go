package request

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/workforce-ops/workforce-backend-go/internal/domain/attendance"
	"github.com/workforce-ops/workforce-backend-go/internal/domain/request"
	"github.com/workforce-ops/workforce-backend-go/internal/domain/setting"
	"github.com/workforce-ops/workforce-backend-go/internal/repository/memory"
	settingService "github.com/workforce-ops/workforce-backend-go/internal/service/setting"
)

type requestFixture struct {
	svc         request.Service
	requests    *memory.RequestRepository
	attendances *memory.AttendanceRepository
	settings    *memory.SettingRepository
}

func newRequestFixture() requestFixture {
	requests := memory.NewRequestRepository()
	attendances := memory.NewAttendanceRepository()
	settings := memory.NewSettingRepository()
	svc := NewRequestService(requests, attendances, settingService.NewStore(settings), memory.NewTransactor())
	return requestFixture{
		svc:         svc,
		requests:    requests,
		attendances: attendances,
		settings:    settings,
	}
}

func requireDecimal(t *testing.T, want string, got decimal.Decimal) {
	t.Helper()
	require.True(t, got.Equal(decimal.RequireFromString(want)), "want %s, got %s", want, got)
}

// seedClosedDay stores a checked-in, checked-out record for the given day.
func seedClosedDay(t *testing.T, f requestFixture, employeeID string, day time.Time, inHour, outHour int) attendance.Record {
	t.Helper()
	checkIn := time.Date(day.Year(), day.Month(), day.Day(), inHour, 0, 0, 0, time.UTC)
	checkOut := time.Date(day.Year(), day.Month(), day.Day(), outHour, 0, 0, 0, time.UTC)

	rec := attendance.NewRecord(employeeID, day)
	rec.CheckInTime = &checkIn
	rec.CheckOutTime = &checkOut
	rec.TotalHours = decimal.NewFromInt(int64(outHour - inHour))
	rec.ActualWorkHours = rec.TotalHours

	created, err := f.attendances.Create(context.Background(), rec)
	require.NoError(t, err)
	return created
}

func yesterday() time.Time {
	return attendance.DateOnly(time.Now().UTC().AddDate(0, 0, -1))
}

func TestRequestService_SubmitOvertime(t *testing.T) {
	ctx := context.Background()
	f := newRequestFixture()

	day := yesterday()
	rec := seedClosedDay(t, f, "emp-1", day, 8, 20) // three hours past the 17:00 standard

	created, err := f.svc.SubmitOvertime(ctx, request.SubmitOvertimeRequest{
		EmployeeID: "emp-1",
		WorkDate:   day,
		Reason:     "release deployment",
	})
	require.NoError(t, err)

	assert.Equal(t, request.StatusPending, created.Status)
	requireDecimal(t, "3", created.OvertimeHours)

	stored, err := f.attendances.GetByEmployeeAndDate(ctx, "emp-1", day)
	require.NoError(t, err)
	assert.True(t, stored.HasOvertimeRequest)
	require.NotNil(t, stored.OvertimeRequestID)
	assert.Equal(t, created.ID, *stored.OvertimeRequestID)
	assert.Equal(t, rec.ID, stored.ID)
}

func TestRequestService_SubmitOvertime_OutsideWindow(t *testing.T) {
	ctx := context.Background()
	f := newRequestFixture()

	tooOld := attendance.DateOnly(time.Now().UTC().AddDate(0, 0, -5))
	seedClosedDay(t, f, "emp-1", tooOld, 8, 20)

	_, err := f.svc.SubmitOvertime(ctx, request.SubmitOvertimeRequest{
		EmployeeID: "emp-1",
		WorkDate:   tooOld,
		Reason:     "too late to claim",
	})
	assert.ErrorIs(t, err, request.ErrOutsideSubmissionWindow)

	future := attendance.DateOnly(time.Now().UTC().AddDate(0, 0, 1))
	_, err = f.svc.SubmitOvertime(ctx, request.SubmitOvertimeRequest{
		EmployeeID: "emp-1",
		WorkDate:   future,
		Reason:     "not yet worked",
	})
	assert.ErrorIs(t, err, request.ErrOutsideSubmissionWindow)
}

func TestRequestService_SubmitOvertime_NoAttendance(t *testing.T) {
	ctx := context.Background()
	f := newRequestFixture()

	_, err := f.svc.SubmitOvertime(ctx, request.SubmitOvertimeRequest{
		EmployeeID: "emp-1",
		WorkDate:   yesterday(),
		Reason:     "no record",
	})
	assert.ErrorIs(t, err, request.ErrNoAttendanceRecord)
}

func TestRequestService_SubmitOvertime_NothingToClaim(t *testing.T) {
	ctx := context.Background()
	f := newRequestFixture()

	day := yesterday()
	seedClosedDay(t, f, "emp-1", day, 8, 16) // out before the 17:00 standard

	_, err := f.svc.SubmitOvertime(ctx, request.SubmitOvertimeRequest{
		EmployeeID: "emp-1",
		WorkDate:   day,
		Reason:     "left on time",
	})
	assert.ErrorIs(t, err, request.ErrNoOvertimeToClaim)
}

func TestRequestService_SubmitOvertime_Duplicate(t *testing.T) {
	ctx := context.Background()
	f := newRequestFixture()

	day := yesterday()
	seedClosedDay(t, f, "emp-1", day, 8, 20)

	_, err := f.svc.SubmitOvertime(ctx, request.SubmitOvertimeRequest{
		EmployeeID: "emp-1",
		WorkDate:   day,
		Reason:     "first",
	})
	require.NoError(t, err)

	_, err = f.svc.SubmitOvertime(ctx, request.SubmitOvertimeRequest{
		EmployeeID: "emp-1",
		WorkDate:   day,
		Reason:     "second",
	})
	assert.ErrorIs(t, err, request.ErrDuplicateActiveRequest)
}

func TestRequestService_ReviewOvertime(t *testing.T) {
	ctx := context.Background()
	f := newRequestFixture()

	day := yesterday()
	seedClosedDay(t, f, "emp-1", day, 8, 20)

	created, err := f.svc.SubmitOvertime(ctx, request.SubmitOvertimeRequest{
		EmployeeID: "emp-1",
		WorkDate:   day,
		Reason:     "release deployment",
	})
	require.NoError(t, err)

	err = f.svc.Review(ctx, request.ReviewRequest{
		RequestID:  created.ID,
		Action:     request.ActionApprove,
		ReviewerID: "mgr-1",
	})
	require.NoError(t, err)

	stored, err := f.attendances.GetByEmployeeAndDate(ctx, "emp-1", day)
	require.NoError(t, err)
	assert.True(t, stored.IsOvertimeApproved)
	requireDecimal(t, "3", stored.ApprovedOvertimeHours)

	reviewed, err := f.svc.GetByID(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, request.StatusApproved, reviewed.Status)
	require.NotNil(t, reviewed.ReviewerID)
	assert.Equal(t, "mgr-1", *reviewed.ReviewerID)

	// Terminal states are immutable.
	err = f.svc.Review(ctx, request.ReviewRequest{
		RequestID:  created.ID,
		Action:     request.ActionReject,
		ReviewerID: "mgr-2",
	})
	assert.ErrorIs(t, err, request.ErrAlreadyReviewed)
}

func TestRequestService_RejectOvertime(t *testing.T) {
	ctx := context.Background()
	f := newRequestFixture()

	day := yesterday()
	seedClosedDay(t, f, "emp-1", day, 8, 20)

	created, err := f.svc.SubmitOvertime(ctx, request.SubmitOvertimeRequest{
		EmployeeID: "emp-1",
		WorkDate:   day,
		Reason:     "release deployment",
	})
	require.NoError(t, err)

	err = f.svc.Review(ctx, request.ReviewRequest{
		RequestID:  created.ID,
		Action:     request.ActionReject,
		ReviewerID: "mgr-1",
	})
	require.NoError(t, err)

	stored, err := f.attendances.GetByEmployeeAndDate(ctx, "emp-1", day)
	require.NoError(t, err)
	assert.False(t, stored.IsOvertimeApproved)
	requireDecimal(t, "0", stored.ApprovedOvertimeHours)
	// The historical marker survives rejection.
	assert.True(t, stored.HasOvertimeRequest)
}

func TestRequestService_ApproveLeave_CreatesMissingDays(t *testing.T) {
	ctx := context.Background()
	f := newRequestFixture()

	start := attendance.DateOnly(time.Now().UTC().AddDate(0, 0, 7))
	end := start.AddDate(0, 0, 2)

	// One covered day already exists.
	existing := seedClosedDay(t, f, "emp-1", start, 8, 17)

	created, err := f.svc.SubmitLeave(ctx, request.SubmitLeaveRequest{
		EmployeeID: "emp-1",
		StartDate:  start,
		EndDate:    end,
		Reason:     "family trip",
	})
	require.NoError(t, err)
	assert.Equal(t, 3, created.TotalDays)

	err = f.svc.Review(ctx, request.ReviewRequest{
		RequestID:  created.ID,
		Action:     request.ActionApprove,
		ReviewerID: "mgr-1",
	})
	require.NoError(t, err)

	for day := start; !day.After(end); day = day.AddDate(0, 0, 1) {
		rec, err := f.attendances.GetByEmployeeAndDate(ctx, "emp-1", day)
		require.NoError(t, err)
		requireDecimal(t, "1", rec.SalaryMultiplier) // default leave multiplier
	}

	rec, err := f.attendances.GetByEmployeeAndDate(ctx, "emp-1", start)
	require.NoError(t, err)
	assert.Equal(t, existing.ID, rec.ID)
}

func TestRequestService_RejectLeave_OnlyTouchesExistingDays(t *testing.T) {
	ctx := context.Background()
	f := newRequestFixture()

	f.settings.SeedValue(setting.KeyUnpaidMultiplier, setting.CategoryPayroll, "0", setting.DataTypeNumber)

	start := attendance.DateOnly(time.Now().UTC().AddDate(0, 0, 7))
	end := start.AddDate(0, 0, 1)
	seedClosedDay(t, f, "emp-1", start, 8, 17)

	created, err := f.svc.SubmitLeave(ctx, request.SubmitLeaveRequest{
		EmployeeID: "emp-1",
		StartDate:  start,
		EndDate:    end,
		Reason:     "family trip",
	})
	require.NoError(t, err)

	err = f.svc.Review(ctx, request.ReviewRequest{
		RequestID:  created.ID,
		Action:     request.ActionReject,
		ReviewerID: "mgr-1",
	})
	require.NoError(t, err)

	rec, err := f.attendances.GetByEmployeeAndDate(ctx, "emp-1", start)
	require.NoError(t, err)
	requireDecimal(t, "0", rec.SalaryMultiplier)

	// No record is created for the uncovered day.
	_, err = f.attendances.GetByEmployeeAndDate(ctx, "emp-1", end)
	assert.ErrorIs(t, err, attendance.ErrRecordNotFound)
}

func TestRequestService_ApproveLate_WaivesDeduction(t *testing.T) {
	ctx := context.Background()
	f := newRequestFixture()

	day := yesterday()
	rec := seedClosedDay(t, f, "emp-1", day, 9, 17)
	rec.IsLate = true
	rec.DeductionHours = decimal.NewFromInt(1)
	rec.DeductionAmount = decimal.NewFromInt(50000)
	require.NoError(t, f.attendances.Update(ctx, rec))

	created, err := f.svc.SubmitLate(ctx, request.SubmitLateRequest{
		EmployeeID:      "emp-1",
		WorkDate:        day,
		ExpectedArrival: time.Date(day.Year(), day.Month(), day.Day(), 9, 0, 0, 0, time.UTC),
		Reason:          "doctor appointment",
	})
	require.NoError(t, err)

	err = f.svc.Review(ctx, request.ReviewRequest{
		RequestID:  created.ID,
		Action:     request.ActionApprove,
		ReviewerID: "mgr-1",
	})
	require.NoError(t, err)

	stored, err := f.attendances.GetByEmployeeAndDate(ctx, "emp-1", day)
	require.NoError(t, err)
	assert.True(t, stored.HasLateRequest)
	requireDecimal(t, "0", stored.DeductionHours)
	requireDecimal(t, "0", stored.DeductionAmount)
}

func TestRequestService_ApproveLate_ScaledDeduction(t *testing.T) {
	ctx := context.Background()
	f := newRequestFixture()

	f.settings.SeedValue(setting.KeyApprovedLateDeductPct, setting.CategoryPayroll, "50", setting.DataTypeNumber)

	day := yesterday()
	rec := seedClosedDay(t, f, "emp-1", day, 9, 17)
	rec.DeductionHours = decimal.NewFromInt(1)
	rec.DeductionAmount = decimal.NewFromInt(50000)
	require.NoError(t, f.attendances.Update(ctx, rec))

	created, err := f.svc.SubmitLate(ctx, request.SubmitLateRequest{
		EmployeeID:      "emp-1",
		WorkDate:        day,
		ExpectedArrival: time.Date(day.Year(), day.Month(), day.Day(), 9, 0, 0, 0, time.UTC),
		Reason:          "traffic",
	})
	require.NoError(t, err)

	err = f.svc.Review(ctx, request.ReviewRequest{
		RequestID:  created.ID,
		Action:     request.ActionApprove,
		ReviewerID: "mgr-1",
	})
	require.NoError(t, err)

	stored, err := f.attendances.GetByEmployeeAndDate(ctx, "emp-1", day)
	require.NoError(t, err)
	requireDecimal(t, "0.5", stored.DeductionHours)
	requireDecimal(t, "25000", stored.DeductionAmount)
}

func TestRequestService_RejectLate_KeepsDeduction(t *testing.T) {
	ctx := context.Background()
	f := newRequestFixture()

	day := yesterday()
	rec := seedClosedDay(t, f, "emp-1", day, 9, 17)
	rec.DeductionHours = decimal.NewFromInt(1)
	rec.DeductionAmount = decimal.NewFromInt(50000)
	require.NoError(t, f.attendances.Update(ctx, rec))

	created, err := f.svc.SubmitLate(ctx, request.SubmitLateRequest{
		EmployeeID:      "emp-1",
		WorkDate:        day,
		ExpectedArrival: time.Date(day.Year(), day.Month(), day.Day(), 9, 0, 0, 0, time.UTC),
		Reason:          "overslept",
	})
	require.NoError(t, err)

	err = f.svc.Review(ctx, request.ReviewRequest{
		RequestID:  created.ID,
		Action:     request.ActionReject,
		ReviewerID: "mgr-1",
	})
	require.NoError(t, err)

	stored, err := f.attendances.GetByEmployeeAndDate(ctx, "emp-1", day)
	require.NoError(t, err)
	assert.True(t, stored.HasLateRequest)
	requireDecimal(t, "1", stored.DeductionHours)
	requireDecimal(t, "50000", stored.DeductionAmount)
}

func TestRequestService_Cancel(t *testing.T) {
	ctx := context.Background()
	f := newRequestFixture()

	start := attendance.DateOnly(time.Now().UTC().AddDate(0, 0, 7))
	created, err := f.svc.SubmitLeave(ctx, request.SubmitLeaveRequest{
		EmployeeID: "emp-1",
		StartDate:  start,
		EndDate:    start,
		Reason:     "errand",
	})
	require.NoError(t, err)

	// Only the owner may cancel.
	err = f.svc.Cancel(ctx, created.ID, "emp-2")
	assert.ErrorIs(t, err, request.ErrRequestNotFound)

	require.NoError(t, f.svc.Cancel(ctx, created.ID, "emp-1"))

	cancelled, err := f.svc.GetByID(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, request.StatusCancelled, cancelled.Status)

	// Cancelling twice is rejected.
	err = f.svc.Cancel(ctx, created.ID, "emp-1")
	assert.ErrorIs(t, err, request.ErrNotPending)
}

func TestRequestService_AutoExpireSweep(t *testing.T) {
	ctx := context.Background()
	f := newRequestFixture()

	day := yesterday()
	seedClosedDay(t, f, "emp-1", day, 8, 20)

	stale, err := f.requests.Create(ctx, request.Request{
		Type:          request.TypeOvertime,
		EmployeeID:    "emp-1",
		Status:        request.StatusPending,
		WorkDate:      &day,
		OvertimeHours: decimal.NewFromInt(3),
		Reason:        "forgotten by the reviewer",
		SubmittedAt:   time.Now().UTC().AddDate(0, 0, -5),
	})
	require.NoError(t, err)

	fresh, err := f.requests.Create(ctx, request.Request{
		Type:          request.TypeOvertime,
		EmployeeID:    "emp-2",
		Status:        request.StatusPending,
		WorkDate:      &day,
		OvertimeHours: decimal.NewFromInt(2),
		Reason:        "still within window",
		SubmittedAt:   time.Now().UTC(),
	})
	require.NoError(t, err)

	expired, err := f.svc.RunAutoExpireSweep(ctx, 3)
	require.NoError(t, err)
	assert.Equal(t, 1, expired)

	expiredReq, err := f.svc.GetByID(ctx, stale.ID)
	require.NoError(t, err)
	assert.Equal(t, request.StatusExpired, expiredReq.Status)
	require.NotNil(t, expiredReq.ReviewNote)
	assert.Contains(t, *expiredReq.ReviewNote, "Automatically expired")

	freshReq, err := f.svc.GetByID(ctx, fresh.ID)
	require.NoError(t, err)
	assert.Equal(t, request.StatusPending, freshReq.Status)

	// Expiry resolves like a rejection on the linked record.
	rec, err := f.attendances.GetByEmployeeAndDate(ctx, "emp-1", day)
	require.NoError(t, err)
	assert.False(t, rec.IsOvertimeApproved)

	// Idempotent: nothing left to expire.
	expired, err = f.svc.RunAutoExpireSweep(ctx, 3)
	require.NoError(t, err)
	assert.Equal(t, 0, expired)
}
