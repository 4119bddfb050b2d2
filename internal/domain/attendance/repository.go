package attendance

import (
	"context"
	"time"
)

// Repository defines data access for attendance records. The (employeeID,
// workDate) key is the sole contended resource in the engine: SetCheckIn and
// SetCheckOut are compare-and-set operations guarded on the nullable clock
// column, so at most one concurrent caller wins and the loser gets the
// matching precondition error.
type Repository interface {
	// Create inserts a new record. A duplicate (employeeID, workDate) key
	// fails with ErrAlreadyCheckedIn.
	Create(ctx context.Context, rec Record) (Record, error)

	// GetByEmployeeAndDate retrieves the record for one employee on one
	// calendar day, or ErrRecordNotFound.
	GetByEmployeeAndDate(ctx context.Context, employeeID string, workDate time.Time) (Record, error)

	// Update rewrites the mutable fields of an existing record.
	Update(ctx context.Context, rec Record) error

	// SetCheckIn writes the check-in fields of rec if and only if the stored
	// row still has no check-in time. Losing the race fails with
	// ErrAlreadyCheckedIn.
	SetCheckIn(ctx context.Context, rec Record) error

	// SetCheckOut writes the check-out fields of rec if and only if the
	// stored row still has no check-out time. Losing the race fails with
	// ErrAlreadyCheckedOut.
	SetCheckOut(ctx context.Context, rec Record) error

	// ListByEmployeeAndRange returns an employee's records with WorkDate in
	// [start, end], ordered by WorkDate ascending.
	ListByEmployeeAndRange(ctx context.Context, employeeID string, start, end time.Time) ([]Record, error)

	// ListOpenPastRecords returns records dated strictly before today that
	// have a check-in but neither a check-out nor recorded total hours.
	// Input to the missed-checkout sweep.
	ListOpenPastRecords(ctx context.Context, today time.Time) ([]Record, error)
}
