package response

import (
	"errors"
	"net/http"

	"github.com/workforce-ops/workforce-backend-go/internal/domain/attendance"
	"github.com/workforce-ops/workforce-backend-go/internal/domain/employee"
	"github.com/workforce-ops/workforce-backend-go/internal/domain/payroll"
	"github.com/workforce-ops/workforce-backend-go/internal/domain/request"
	"github.com/workforce-ops/workforce-backend-go/internal/pkg/validator"
)

// HandleError maps domain errors to HTTP responses
func HandleError(w http.ResponseWriter, err error) {
	// Check if it's a validation error
	var validationErrs validator.ValidationErrors
	if errors.As(err, &validationErrs) {
		ValidationError(w, validationErrs.ToMap())
		return
	}

	// Attendance domain errors
	switch {
	case errors.Is(err, attendance.ErrAlreadyCheckedIn):
		Conflict(w, "Already checked in today")
	case errors.Is(err, attendance.ErrAlreadyCheckedOut):
		Conflict(w, "Already checked out today")
	case errors.Is(err, attendance.ErrNotCheckedIn):
		BadRequest(w, "No check-in found for today", nil)
	case errors.Is(err, attendance.ErrRecordNotFound):
		NotFound(w, "Attendance record not found")

	// Request workflow errors
	case errors.Is(err, request.ErrRequestNotFound):
		NotFound(w, "Request not found")
	case errors.Is(err, request.ErrAlreadyReviewed):
		Conflict(w, "Request already reviewed")
	case errors.Is(err, request.ErrNotPending):
		Conflict(w, "Request is no longer pending")
	case errors.Is(err, request.ErrDuplicateActiveRequest):
		Conflict(w, "A pending request of this type already exists for this date")
	case errors.Is(err, request.ErrOutsideSubmissionWindow):
		BadRequest(w, "Work date is outside the submission window", nil)
	case errors.Is(err, request.ErrNoAttendanceRecord):
		BadRequest(w, "No attendance record for the requested date", nil)
	case errors.Is(err, request.ErrNoOvertimeToClaim):
		BadRequest(w, "No overtime hours to claim for the requested date", nil)

	// Payroll domain errors
	case errors.Is(err, payroll.ErrInvalidPeriod):
		BadRequest(w, "Invalid payroll period", nil)

	// Employee domain errors
	case errors.Is(err, employee.ErrEmployeeNotFound):
		NotFound(w, "Employee not found")

	// Default
	default:
		InternalServerError(w, "An unexpected error occurred")
	}
}
