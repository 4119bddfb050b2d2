package request

import "errors"

// Request workflow errors. All of these are precondition violations scoped to
// a single operation; none is fatal to the process.
var (
	ErrRequestNotFound         = errors.New("request not found")
	ErrAlreadyReviewed         = errors.New("request has already been reviewed")
	ErrNotPending              = errors.New("request is not pending")
	ErrDuplicateActiveRequest  = errors.New("an active request of this type already exists for this day")
	ErrOutsideSubmissionWindow = errors.New("work date is outside the overtime submission window")
	ErrNoAttendanceRecord      = errors.New("no attendance record with a check-in exists for this day")
	ErrNoOvertimeToClaim       = errors.New("no overtime hours to claim for this day")
)
