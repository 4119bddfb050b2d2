package postgresql

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/workforce-ops/workforce-backend-go/internal/domain/attendance"
	"github.com/workforce-ops/workforce-backend-go/internal/pkg/database"
)

type attendanceRepository struct {
	db *database.DB
}

func NewAttendanceRepository(db *database.DB) attendance.Repository {
	return &attendanceRepository{db: db}
}

const attendanceColumns = `
	id, employee_id, work_date,
	check_in_time, check_out_time,
	check_in_latitude, check_in_longitude, check_in_address,
	check_out_latitude, check_out_longitude, check_out_address,
	check_in_photo_ref, check_out_photo_ref, is_within_geofence,
	is_late, total_hours, actual_work_hours,
	approved_overtime_hours, is_overtime_approved,
	salary_multiplier, deduction_hours, deduction_amount,
	has_overtime_request, has_late_request,
	overtime_request_id, late_request_id,
	notes, created_at, updated_at`

func scanAttendance(row pgx.Row) (attendance.Record, error) {
	var rec attendance.Record
	err := row.Scan(
		&rec.ID, &rec.EmployeeID, &rec.WorkDate,
		&rec.CheckInTime, &rec.CheckOutTime,
		&rec.CheckInLatitude, &rec.CheckInLongitude, &rec.CheckInAddress,
		&rec.CheckOutLatitude, &rec.CheckOutLongitude, &rec.CheckOutAddress,
		&rec.CheckInPhotoRef, &rec.CheckOutPhotoRef, &rec.IsWithinGeofence,
		&rec.IsLate, &rec.TotalHours, &rec.ActualWorkHours,
		&rec.ApprovedOvertimeHours, &rec.IsOvertimeApproved,
		&rec.SalaryMultiplier, &rec.DeductionHours, &rec.DeductionAmount,
		&rec.HasOvertimeRequest, &rec.HasLateRequest,
		&rec.OvertimeRequestID, &rec.LateRequestID,
		&rec.Notes, &rec.CreatedAt, &rec.UpdatedAt,
	)
	return rec, err
}

// Create implements attendance.Repository. The unique (employee_id,
// work_date) constraint is the first-class at-most-one-record guarantee: a
// concurrent duplicate insert loses with ErrAlreadyCheckedIn.
func (a *attendanceRepository) Create(ctx context.Context, rec attendance.Record) (attendance.Record, error) {
	q := GetQuerier(ctx, a.db)

	query := `
		INSERT INTO attendance_records (
			employee_id, work_date,
			check_in_time, check_in_latitude, check_in_longitude, check_in_address,
			check_in_photo_ref, is_within_geofence,
			is_late, total_hours, actual_work_hours,
			approved_overtime_hours, is_overtime_approved,
			salary_multiplier, deduction_hours, deduction_amount,
			has_overtime_request, has_late_request, notes
		) VALUES (
			$1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18, $19
		) RETURNING id, created_at, updated_at
	`

	err := q.QueryRow(ctx, query,
		rec.EmployeeID,
		rec.WorkDate,
		rec.CheckInTime,
		rec.CheckInLatitude,
		rec.CheckInLongitude,
		rec.CheckInAddress,
		rec.CheckInPhotoRef,
		rec.IsWithinGeofence,
		rec.IsLate,
		rec.TotalHours,
		rec.ActualWorkHours,
		rec.ApprovedOvertimeHours,
		rec.IsOvertimeApproved,
		rec.SalaryMultiplier,
		rec.DeductionHours,
		rec.DeductionAmount,
		rec.HasOvertimeRequest,
		rec.HasLateRequest,
		rec.Notes,
	).Scan(&rec.ID, &rec.CreatedAt, &rec.UpdatedAt)

	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return attendance.Record{}, attendance.ErrAlreadyCheckedIn
		}
		return attendance.Record{}, fmt.Errorf("failed to create attendance record: %w", err)
	}

	return rec, nil
}

// GetByEmployeeAndDate implements attendance.Repository.
func (a *attendanceRepository) GetByEmployeeAndDate(ctx context.Context, employeeID string, workDate time.Time) (attendance.Record, error) {
	q := GetQuerier(ctx, a.db)

	query := `
		SELECT ` + attendanceColumns + `
		FROM attendance_records
		WHERE employee_id = $1 AND work_date = $2
	`

	rec, err := scanAttendance(q.QueryRow(ctx, query, employeeID, workDate))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return attendance.Record{}, attendance.ErrRecordNotFound
		}
		return attendance.Record{}, fmt.Errorf("failed to get attendance record: %w", err)
	}

	return rec, nil
}

// Update implements attendance.Repository. Rewrites every mutable field;
// records are never deleted.
func (a *attendanceRepository) Update(ctx context.Context, rec attendance.Record) error {
	q := GetQuerier(ctx, a.db)

	query := `
		UPDATE attendance_records SET
			check_in_time = $2, check_out_time = $3,
			check_in_latitude = $4, check_in_longitude = $5, check_in_address = $6,
			check_out_latitude = $7, check_out_longitude = $8, check_out_address = $9,
			check_in_photo_ref = $10, check_out_photo_ref = $11, is_within_geofence = $12,
			is_late = $13, total_hours = $14, actual_work_hours = $15,
			approved_overtime_hours = $16, is_overtime_approved = $17,
			salary_multiplier = $18, deduction_hours = $19, deduction_amount = $20,
			has_overtime_request = $21, has_late_request = $22,
			overtime_request_id = $23, late_request_id = $24,
			notes = $25, updated_at = NOW()
		WHERE id = $1
		RETURNING id
	`

	var id string
	err := q.QueryRow(ctx, query,
		rec.ID,
		rec.CheckInTime, rec.CheckOutTime,
		rec.CheckInLatitude, rec.CheckInLongitude, rec.CheckInAddress,
		rec.CheckOutLatitude, rec.CheckOutLongitude, rec.CheckOutAddress,
		rec.CheckInPhotoRef, rec.CheckOutPhotoRef, rec.IsWithinGeofence,
		rec.IsLate, rec.TotalHours, rec.ActualWorkHours,
		rec.ApprovedOvertimeHours, rec.IsOvertimeApproved,
		rec.SalaryMultiplier, rec.DeductionHours, rec.DeductionAmount,
		rec.HasOvertimeRequest, rec.HasLateRequest,
		rec.OvertimeRequestID, rec.LateRequestID,
		rec.Notes,
	).Scan(&id)

	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return attendance.ErrRecordNotFound
		}
		return fmt.Errorf("failed to update attendance record: %w", err)
	}
	return nil
}

// SetCheckIn implements attendance.Repository. The guard on the nullable
// column is the compare-and-set: a concurrent winner leaves no row to update.
func (a *attendanceRepository) SetCheckIn(ctx context.Context, rec attendance.Record) error {
	q := GetQuerier(ctx, a.db)

	query := `
		UPDATE attendance_records SET
			check_in_time = $2,
			check_in_latitude = $3, check_in_longitude = $4, check_in_address = $5,
			check_in_photo_ref = $6, is_within_geofence = $7,
			is_late = $8, notes = $9, updated_at = NOW()
		WHERE id = $1 AND check_in_time IS NULL
		RETURNING id
	`

	var id string
	err := q.QueryRow(ctx, query,
		rec.ID,
		rec.CheckInTime,
		rec.CheckInLatitude, rec.CheckInLongitude, rec.CheckInAddress,
		rec.CheckInPhotoRef, rec.IsWithinGeofence,
		rec.IsLate, rec.Notes,
	).Scan(&id)

	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return attendance.ErrAlreadyCheckedIn
		}
		return fmt.Errorf("failed to set check-in: %w", err)
	}
	return nil
}

// SetCheckOut implements attendance.Repository.
func (a *attendanceRepository) SetCheckOut(ctx context.Context, rec attendance.Record) error {
	q := GetQuerier(ctx, a.db)

	query := `
		UPDATE attendance_records SET
			check_out_time = $2,
			check_out_latitude = $3, check_out_longitude = $4, check_out_address = $5,
			check_out_photo_ref = $6,
			total_hours = $7, actual_work_hours = $8,
			approved_overtime_hours = $9, is_overtime_approved = $10,
			notes = $11, updated_at = NOW()
		WHERE id = $1 AND check_out_time IS NULL
		RETURNING id
	`

	var id string
	err := q.QueryRow(ctx, query,
		rec.ID,
		rec.CheckOutTime,
		rec.CheckOutLatitude, rec.CheckOutLongitude, rec.CheckOutAddress,
		rec.CheckOutPhotoRef,
		rec.TotalHours, rec.ActualWorkHours,
		rec.ApprovedOvertimeHours, rec.IsOvertimeApproved,
		rec.Notes,
	).Scan(&id)

	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return attendance.ErrAlreadyCheckedOut
		}
		return fmt.Errorf("failed to set check-out: %w", err)
	}
	return nil
}

// ListByEmployeeAndRange implements attendance.Repository.
func (a *attendanceRepository) ListByEmployeeAndRange(ctx context.Context, employeeID string, start, end time.Time) ([]attendance.Record, error) {
	q := GetQuerier(ctx, a.db)

	query := `
		SELECT ` + attendanceColumns + `
		FROM attendance_records
		WHERE employee_id = $1 AND work_date >= $2 AND work_date <= $3
		ORDER BY work_date ASC
	`

	rows, err := q.Query(ctx, query, employeeID, start, end)
	if err != nil {
		return nil, fmt.Errorf("failed to query attendance records: %w", err)
	}
	defer rows.Close()

	var records []attendance.Record
	for rows.Next() {
		rec, err := scanAttendance(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan attendance record: %w", err)
		}
		records = append(records, rec)
	}
	return records, rows.Err()
}

// ListOpenPastRecords implements attendance.Repository.
func (a *attendanceRepository) ListOpenPastRecords(ctx context.Context, today time.Time) ([]attendance.Record, error) {
	q := GetQuerier(ctx, a.db)

	query := `
		SELECT ` + attendanceColumns + `
		FROM attendance_records
		WHERE work_date < $1
		  AND check_in_time IS NOT NULL
		  AND check_out_time IS NULL
		  AND total_hours <= 0
		ORDER BY work_date ASC
	`

	rows, err := q.Query(ctx, query, today)
	if err != nil {
		return nil, fmt.Errorf("failed to query open past records: %w", err)
	}
	defer rows.Close()

	var records []attendance.Record
	for rows.Next() {
		rec, err := scanAttendance(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan attendance record: %w", err)
		}
		records = append(records, rec)
	}
	return records, rows.Err()
}
