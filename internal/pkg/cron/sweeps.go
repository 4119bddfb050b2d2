package cron

import (
	"context"
	"log/slog"
	"time"

	"github.com/workforce-ops/workforce-backend-go/internal/domain/attendance"
	"github.com/workforce-ops/workforce-backend-go/internal/domain/request"
	"github.com/workforce-ops/workforce-backend-go/internal/domain/setting"
)

// SweepJobs wires the two idempotent maintenance sweeps into the scheduler:
// expiring stale pending requests and back-filling missed checkouts.
type SweepJobs struct {
	attendanceSvc attendance.Service
	requestSvc    request.Service
	settings      setting.Store
}

func NewSweepJobs(
	attendanceSvc attendance.Service,
	requestSvc request.Service,
	settings setting.Store,
) *SweepJobs {
	return &SweepJobs{
		attendanceSvc: attendanceSvc,
		requestSvc:    requestSvc,
		settings:      settings,
	}
}

func (j *SweepJobs) RegisterJobs(scheduler *Scheduler, interval time.Duration) {
	scheduler.AddJob("auto_expire_requests", interval, j.AutoExpireRequests)
	scheduler.AddJob("fill_missed_checkouts", interval, j.FillMissedCheckouts)
}

// AutoExpireRequests rejects pending requests older than the configured
// window. Safe to re-run: resolved requests are never touched.
func (j *SweepJobs) AutoExpireRequests(ctx context.Context) error {
	windowDays := j.settings.Int(ctx, setting.KeyRequestExpiryDays, 3)

	count, err := j.requestSvc.RunAutoExpireSweep(ctx, windowDays)
	if err != nil {
		return err
	}
	if count > 0 {
		slog.Info("Sweep: expired stale pending requests", "count", count, "window_days", windowDays)
	}
	return nil
}

// FillMissedCheckouts assigns standard hours to past-dated open records.
func (j *SweepJobs) FillMissedCheckouts(ctx context.Context) error {
	count, err := j.attendanceSvc.RunMissedCheckoutSweep(ctx)
	if err != nil {
		return err
	}
	if count > 0 {
		slog.Info("Sweep: filled missed checkouts", "count", count)
	}
	return nil
}
