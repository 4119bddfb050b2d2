package request

import "context"

// Service is the approval workflow: submit -> pending -> approve / reject /
// cancel / expire. Approving or rejecting a request retroactively mutates the
// linked attendance record(s) in the same atomic unit.
type Service interface {
	SubmitOvertime(ctx context.Context, req SubmitOvertimeRequest) (Request, error)
	SubmitLeave(ctx context.Context, req SubmitLeaveRequest) (Request, error)
	SubmitLate(ctx context.Context, req SubmitLateRequest) (Request, error)

	// Review resolves a pending request. Terminal states are immutable;
	// reviewing twice fails with ErrAlreadyReviewed.
	Review(ctx context.Context, req ReviewRequest) error

	// Cancel is only legal while the request is pending and has no
	// attendance side effects.
	Cancel(ctx context.Context, requestID, employeeID string) error

	GetByID(ctx context.Context, id string) (Request, error)

	// RunAutoExpireSweep rejects every pending request older than windowDays
	// with a system-generated note. Idempotent; returns the number expired.
	RunAutoExpireSweep(ctx context.Context, windowDays int) (int, error)
}
