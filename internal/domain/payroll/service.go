package payroll

import "context"

// Service aggregates attendance records and dynamic salary settings into one
// SalaryBreakdown per employee. Computation is a pure function of committed
// data at query time: running it twice over the same inputs yields identical
// results, and employees never share mutable state.
type Service interface {
	ComputePayroll(ctx context.Context, req ComputeRequest) ([]SalaryBreakdown, error)
}
