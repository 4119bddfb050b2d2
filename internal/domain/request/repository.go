package request

import (
	"context"
	"time"
)

// Repository defines data access for workflow requests.
type Repository interface {
	Create(ctx context.Context, req Request) (Request, error)

	GetByID(ctx context.Context, id string) (Request, error)

	// Update rewrites the status and audit fields of an existing request.
	Update(ctx context.Context, req Request) error

	// HasActiveByDateAndType reports whether a pending request of the given
	// type exists for the employee's attendance day. Enforces the
	// one-active-request-per-record-per-type invariant.
	HasActiveByDateAndType(ctx context.Context, employeeID string, workDate time.Time, typ Type) (bool, error)

	// ListPendingOlderThan returns pending requests submitted before cutoff.
	// Input to the auto-expire sweep.
	ListPendingOlderThan(ctx context.Context, cutoff time.Time) ([]Request, error)

	// ListByEmployee returns an employee's requests, newest first.
	ListByEmployee(ctx context.Context, employeeID string) ([]Request, error)
}
