package attendance

import "errors"

// Attendance domain errors
var (
	ErrAlreadyCheckedIn  = errors.New("already checked in for this day")
	ErrNotCheckedIn      = errors.New("no check-in recorded for this day")
	ErrAlreadyCheckedOut = errors.New("already checked out for this day")

	ErrRecordNotFound = errors.New("attendance record not found")
)
