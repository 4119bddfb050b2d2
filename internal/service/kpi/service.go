package kpi

import (
	"context"
	"fmt"
	"time"

	"github.com/shopspring/decimal"
	"github.com/workforce-ops/workforce-backend-go/internal/domain/attendance"
	"github.com/workforce-ops/workforce-backend-go/internal/domain/kpi"
	"github.com/workforce-ops/workforce-backend-go/internal/domain/request"
)

type KpiServiceImpl struct {
	attendances attendance.Repository
	requests    request.Repository
	tasks       kpi.TaskStatsProvider
}

func NewKpiService(
	attendances attendance.Repository,
	requests request.Repository,
	tasks kpi.TaskStatsProvider,
) kpi.Service {
	return &KpiServiceImpl{
		attendances: attendances,
		requests:    requests,
		tasks:       tasks,
	}
}

// ComputeKpiScore implements kpi.Service. Read-only over the same inputs the
// payroll engine consumes.
func (s *KpiServiceImpl) ComputeKpiScore(ctx context.Context, employeeID string, start, end time.Time) (decimal.Decimal, error) {
	startDay := attendance.DateOnly(start)
	endDay := attendance.DateOnly(end)

	records, err := s.attendances.ListByEmployeeAndRange(ctx, employeeID, startDay, endDay)
	if err != nil {
		return decimal.Zero, fmt.Errorf("failed to list attendance records: %w", err)
	}

	in := kpi.Inputs{OvertimeHours: decimal.Zero}
	for _, rec := range records {
		if rec.CheckInTime == nil {
			continue
		}
		in.AttendanceDays++
		if rec.IsLate {
			in.LateDays++
		}
		in.OvertimeHours = in.OvertimeHours.Add(rec.ApprovedOvertimeHours)
	}

	reqs, err := s.requests.ListByEmployee(ctx, employeeID)
	if err != nil {
		return decimal.Zero, fmt.Errorf("failed to list requests: %w", err)
	}
	for _, r := range reqs {
		if r.Type != request.TypeLeave || r.Status != request.StatusApproved {
			continue
		}
		in.ApprovedLeaveDays += overlapDays(*r.StartDate, *r.EndDate, startDay, endDay)
	}

	if s.tasks != nil {
		stats, err := s.tasks.GetTaskStats(ctx, employeeID, startDay, endDay)
		if err != nil {
			return decimal.Zero, fmt.Errorf("failed to get task stats: %w", err)
		}
		in.TasksTotal = stats.Total
		in.TasksCompleted = stats.Completed
	}

	return ComputeScore(in), nil
}

// overlapDays counts the calendar days of [aStart,aEnd] that fall inside
// [bStart,bEnd], both ranges inclusive.
func overlapDays(aStart, aEnd, bStart, bEnd time.Time) int {
	if aStart.Before(bStart) {
		aStart = bStart
	}
	if aEnd.After(bEnd) {
		aEnd = bEnd
	}
	if aEnd.Before(aStart) {
		return 0
	}
	return int(aEnd.Sub(aStart).Hours()/24) + 1
}
