package attendance

import "context"

// Service is the state machine over one employee's daily record:
// NoCheckIn -> CheckedIn -> CheckedOut, terminal for the day.
type Service interface {
	// CheckIn opens the day's record. Fails with ErrAlreadyCheckedIn if a
	// check-in already exists for the employee on that day.
	CheckIn(ctx context.Context, req CheckInRequest) (CheckInResult, error)

	// CheckOut closes the day's record, computing worked hours and the
	// weekend overtime auto-split. Fails with ErrNotCheckedIn or
	// ErrAlreadyCheckedOut.
	CheckOut(ctx context.Context, req CheckOutRequest) (CheckOutResult, error)

	// ListRange returns an employee's records over an inclusive date range.
	ListRange(ctx context.Context, filter RangeFilter) ([]Record, error)

	// RunMissedCheckoutSweep assigns the configured standard hours to
	// past-dated records left open by a missed checkout. Idempotent: records
	// that already carry total hours are never touched. Returns the number
	// of records filled.
	RunMissedCheckoutSweep(ctx context.Context) (int, error)
}
