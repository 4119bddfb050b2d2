package kpi

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
	"github.com/workforce-ops/workforce-backend-go/internal/domain/attendance"
	"github.com/workforce-ops/workforce-backend-go/internal/domain/kpi"
	"github.com/workforce-ops/workforce-backend-go/internal/domain/request"
	"github.com/workforce-ops/workforce-backend-go/internal/repository/memory"
)

type stubTaskStats struct {
	stats kpi.TaskStats
}

func (s stubTaskStats) GetTaskStats(ctx context.Context, employeeID string, start, end time.Time) (kpi.TaskStats, error) {
	return s.stats, nil
}

func TestKpiService_ComputeKpiScore(t *testing.T) {
	ctx := context.Background()
	attendances := memory.NewAttendanceRepository()
	requests := memory.NewRequestRepository()

	start := time.Date(2026, 8, 1, 0, 0, 0, 0, time.UTC)
	end := time.Date(2026, 8, 31, 0, 0, 0, 0, time.UTC)

	// 20 attended days, 2 late, 6 approved overtime hours in total.
	for i := 0; i < 20; i++ {
		day := start.AddDate(0, 0, i)
		checkIn := time.Date(day.Year(), day.Month(), day.Day(), 8, 0, 0, 0, time.UTC)

		rec := attendance.NewRecord("emp-1", day)
		rec.CheckInTime = &checkIn
		rec.IsLate = i < 2
		if i == 0 {
			rec.ApprovedOvertimeHours = decimal.NewFromInt(6)
		}
		_, err := attendances.Create(ctx, rec)
		require.NoError(t, err)
	}

	// 8 approved leave days inside the period; pending leave is ignored.
	leaveStart := start.AddDate(0, 0, 20)
	leaveEnd := start.AddDate(0, 0, 27)
	approved := request.StatusApproved
	_, err := requests.Create(ctx, request.Request{
		Type:       request.TypeLeave,
		EmployeeID: "emp-1",
		Status:     approved,
		StartDate:  &leaveStart,
		EndDate:    &leaveEnd,
		TotalDays:  8,
	})
	require.NoError(t, err)

	pendingStart := start.AddDate(0, 0, 28)
	pendingEnd := start.AddDate(0, 0, 29)
	_, err = requests.Create(ctx, request.Request{
		Type:       request.TypeLeave,
		EmployeeID: "emp-1",
		Status:     request.StatusPending,
		StartDate:  &pendingStart,
		EndDate:    &pendingEnd,
		TotalDays:  2,
	})
	require.NoError(t, err)

	svc := NewKpiService(attendances, requests, stubTaskStats{stats: kpi.TaskStats{Total: 10, Completed: 5}})

	// 100 - 10 (late rate) - 20 (half the tasks) - 6 (3 excess leave days)
	// + 3 (overtime) = 67.
	score, err := svc.ComputeKpiScore(ctx, "emp-1", start, end)
	require.NoError(t, err)
	require.True(t, score.Equal(decimal.NewFromInt(67)), "got %s", score)
}

func TestKpiService_ComputeKpiScore_NoTaskProvider(t *testing.T) {
	ctx := context.Background()
	attendances := memory.NewAttendanceRepository()
	requests := memory.NewRequestRepository()

	svc := NewKpiService(attendances, requests, nil)

	score, err := svc.ComputeKpiScore(ctx, "emp-1",
		time.Date(2026, 8, 1, 0, 0, 0, 0, time.UTC),
		time.Date(2026, 8, 31, 0, 0, 0, 0, time.UTC))
	require.NoError(t, err)
	require.True(t, score.Equal(decimal.NewFromInt(100)), "got %s", score)
}
