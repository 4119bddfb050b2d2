// Package memory provides map-backed repository implementations with the
// same compare-and-set semantics as the PostgreSQL layer. A per-store mutex
// serializes access to each keyed record, which is what makes the check-in
// and check-out guards race-safe without a database.
package memory

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/workforce-ops/workforce-backend-go/internal/domain/attendance"
)

type AttendanceRepository struct {
	mu    sync.Mutex
	byKey map[string]*attendance.Record
	byID  map[string]*attendance.Record
}

func NewAttendanceRepository() *AttendanceRepository {
	return &AttendanceRepository{
		byKey: make(map[string]*attendance.Record),
		byID:  make(map[string]*attendance.Record),
	}
}

func attendanceKey(employeeID string, workDate time.Time) string {
	return employeeID + "|" + attendance.DateOnly(workDate).Format(time.DateOnly)
}

// Create implements attendance.Repository.
func (a *AttendanceRepository) Create(ctx context.Context, rec attendance.Record) (attendance.Record, error) {
	a.mu.Lock()
	defer a.mu.Unlock()

	key := attendanceKey(rec.EmployeeID, rec.WorkDate)
	if _, ok := a.byKey[key]; ok {
		return attendance.Record{}, attendance.ErrAlreadyCheckedIn
	}

	now := time.Now().UTC()
	rec.ID = uuid.NewString()
	rec.CreatedAt = now
	rec.UpdatedAt = now

	stored := rec
	a.byKey[key] = &stored
	a.byID[rec.ID] = &stored
	return rec, nil
}

// GetByEmployeeAndDate implements attendance.Repository.
func (a *AttendanceRepository) GetByEmployeeAndDate(ctx context.Context, employeeID string, workDate time.Time) (attendance.Record, error) {
	a.mu.Lock()
	defer a.mu.Unlock()

	rec, ok := a.byKey[attendanceKey(employeeID, workDate)]
	if !ok {
		return attendance.Record{}, attendance.ErrRecordNotFound
	}
	return *rec, nil
}

// Update implements attendance.Repository.
func (a *AttendanceRepository) Update(ctx context.Context, rec attendance.Record) error {
	a.mu.Lock()
	defer a.mu.Unlock()

	stored, ok := a.byID[rec.ID]
	if !ok {
		return attendance.ErrRecordNotFound
	}

	rec.CreatedAt = stored.CreatedAt
	rec.UpdatedAt = time.Now().UTC()
	*stored = rec
	return nil
}

// SetCheckIn implements attendance.Repository. The check on the stored
// record's clock field happens under the lock, matching the SQL guard.
func (a *AttendanceRepository) SetCheckIn(ctx context.Context, rec attendance.Record) error {
	a.mu.Lock()
	defer a.mu.Unlock()

	stored, ok := a.byID[rec.ID]
	if !ok {
		return attendance.ErrRecordNotFound
	}
	if stored.CheckInTime != nil {
		return attendance.ErrAlreadyCheckedIn
	}

	stored.CheckInTime = rec.CheckInTime
	stored.CheckInLatitude = rec.CheckInLatitude
	stored.CheckInLongitude = rec.CheckInLongitude
	stored.CheckInAddress = rec.CheckInAddress
	stored.CheckInPhotoRef = rec.CheckInPhotoRef
	stored.IsWithinGeofence = rec.IsWithinGeofence
	stored.IsLate = rec.IsLate
	stored.Notes = rec.Notes
	stored.UpdatedAt = time.Now().UTC()
	return nil
}

// SetCheckOut implements attendance.Repository.
func (a *AttendanceRepository) SetCheckOut(ctx context.Context, rec attendance.Record) error {
	a.mu.Lock()
	defer a.mu.Unlock()

	stored, ok := a.byID[rec.ID]
	if !ok {
		return attendance.ErrRecordNotFound
	}
	if stored.CheckOutTime != nil {
		return attendance.ErrAlreadyCheckedOut
	}

	stored.CheckOutTime = rec.CheckOutTime
	stored.CheckOutLatitude = rec.CheckOutLatitude
	stored.CheckOutLongitude = rec.CheckOutLongitude
	stored.CheckOutAddress = rec.CheckOutAddress
	stored.CheckOutPhotoRef = rec.CheckOutPhotoRef
	stored.TotalHours = rec.TotalHours
	stored.ActualWorkHours = rec.ActualWorkHours
	stored.ApprovedOvertimeHours = rec.ApprovedOvertimeHours
	stored.IsOvertimeApproved = rec.IsOvertimeApproved
	stored.Notes = rec.Notes
	stored.UpdatedAt = time.Now().UTC()
	return nil
}

// ListByEmployeeAndRange implements attendance.Repository.
func (a *AttendanceRepository) ListByEmployeeAndRange(ctx context.Context, employeeID string, start, end time.Time) ([]attendance.Record, error) {
	a.mu.Lock()
	defer a.mu.Unlock()

	start = attendance.DateOnly(start)
	end = attendance.DateOnly(end)

	var records []attendance.Record
	for _, rec := range a.byID {
		if rec.EmployeeID != employeeID {
			continue
		}
		if rec.WorkDate.Before(start) || rec.WorkDate.After(end) {
			continue
		}
		records = append(records, *rec)
	}

	sort.Slice(records, func(i, j int) bool {
		return records[i].WorkDate.Before(records[j].WorkDate)
	})
	return records, nil
}

// ListOpenPastRecords implements attendance.Repository.
func (a *AttendanceRepository) ListOpenPastRecords(ctx context.Context, today time.Time) ([]attendance.Record, error) {
	a.mu.Lock()
	defer a.mu.Unlock()

	today = attendance.DateOnly(today)

	var records []attendance.Record
	for _, rec := range a.byID {
		if !rec.WorkDate.Before(today) {
			continue
		}
		if rec.CheckInTime == nil || rec.CheckOutTime != nil {
			continue
		}
		if rec.TotalHours.IsPositive() {
			continue
		}
		records = append(records, *rec)
	}

	sort.Slice(records, func(i, j int) bool {
		return records[i].WorkDate.Before(records[j].WorkDate)
	})
	return records, nil
}
