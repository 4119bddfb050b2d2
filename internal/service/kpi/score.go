package kpi

import (
	"github.com/shopspring/decimal"
	"github.com/workforce-ops/workforce-backend-go/internal/domain/kpi"
)

var (
	scoreFloor   = decimal.Zero
	scoreCeiling = decimal.NewFromInt(100)

	maxLatePenalty     = decimal.NewFromInt(30)
	maxTaskPenalty     = decimal.NewFromInt(40)
	maxLeavePenalty    = decimal.NewFromInt(20)
	maxOvertimeBonus   = decimal.NewFromInt(10)
	leaveGraceDays     = 5
	leavePenaltyPerDay = decimal.NewFromInt(2)
	overtimeBonusPerHr = decimal.NewFromFloat(0.5)
)

// ComputeScore derives a performance score in [0,100] from attendance, task,
// and leave aggregates. Pure function: same inputs, same score.
func ComputeScore(in kpi.Inputs) decimal.Decimal {
	score := scoreCeiling

	// Lateness: up to 30 points, proportional to the late rate. No
	// attendance at all means no late rate to measure.
	if in.AttendanceDays > 0 {
		lateRate := decimal.NewFromInt(int64(in.LateDays)).
			Div(decimal.NewFromInt(int64(in.AttendanceDays)))
		score = score.Sub(decimal.Min(lateRate.Mul(scoreCeiling), maxLatePenalty))
	}

	// Task completion: up to 40 points for unfinished work. Zero assigned
	// tasks counts as full completion.
	if in.TasksTotal > 0 {
		completion := decimal.NewFromInt(int64(in.TasksCompleted)).
			Div(decimal.NewFromInt(int64(in.TasksTotal)))
		score = score.Sub(one.Sub(completion).Mul(maxTaskPenalty))
	}

	// Approved leave beyond the grace allowance: 2 points per excess day,
	// capped at 20.
	if in.ApprovedLeaveDays > leaveGraceDays {
		excess := decimal.NewFromInt(int64(in.ApprovedLeaveDays - leaveGraceDays))
		score = score.Sub(decimal.Min(excess.Mul(leavePenaltyPerDay), maxLeavePenalty))
	}

	// Overtime adds back up to 10 points.
	if in.OvertimeHours.IsPositive() {
		score = score.Add(decimal.Min(in.OvertimeHours.Mul(overtimeBonusPerHr), maxOvertimeBonus))
	}

	return clamp(score).Round(2)
}

var one = decimal.NewFromInt(1)

func clamp(d decimal.Decimal) decimal.Decimal {
	if d.LessThan(scoreFloor) {
		return scoreFloor
	}
	if d.GreaterThan(scoreCeiling) {
		return scoreCeiling
	}
	return d
}
