package kpi

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
)

// Inputs are the aggregates the scorer reads. They are derived from the same
// attendance data the payroll engine uses, plus task and leave counts.
type Inputs struct {
	AttendanceDays    int
	LateDays          int
	OvertimeHours     decimal.Decimal
	TasksTotal        int
	TasksCompleted    int
	ApprovedLeaveDays int
}

// TaskStats summarizes an employee's task-board activity over a period. The
// task board itself is an external collaborator; the engine only consumes
// these counts.
type TaskStats struct {
	Total     int
	Completed int
}

// TaskStatsProvider is injected by the surrounding system. Implementations
// that have no task data should return zero stats, which the scorer treats
// as full completion.
type TaskStatsProvider interface {
	GetTaskStats(ctx context.Context, employeeID string, start, end time.Time) (TaskStats, error)
}

// Service derives a bounded performance score from attendance, task, and
// leave aggregates. Read-only; independent of payroll.
type Service interface {
	// ComputeKpiScore returns a score in [0,100] for the employee over the
	// inclusive date range.
	ComputeKpiScore(ctx context.Context, employeeID string, start, end time.Time) (decimal.Decimal, error)
}
