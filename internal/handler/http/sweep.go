package http

import (
	"net/http"

	"github.com/workforce-ops/workforce-backend-go/internal/domain/attendance"
	"github.com/workforce-ops/workforce-backend-go/internal/domain/request"
	"github.com/workforce-ops/workforce-backend-go/internal/domain/setting"
	"github.com/workforce-ops/workforce-backend-go/internal/handler/http/response"
)

// SweepHandler triggers the maintenance sweeps on demand. The scheduler runs
// the same operations on an interval; both paths are idempotent.
type SweepHandler interface {
	AutoExpireRequests(w http.ResponseWriter, r *http.Request)
	FillMissedCheckouts(w http.ResponseWriter, r *http.Request)
}

type sweepHandlerImpl struct {
	attendanceService attendance.Service
	requestService    request.Service
	settings          setting.Store
}

func NewSweepHandler(
	attendanceService attendance.Service,
	requestService request.Service,
	settings setting.Store,
) SweepHandler {
	return &sweepHandlerImpl{
		attendanceService: attendanceService,
		requestService:    requestService,
		settings:          settings,
	}
}

type sweepResult struct {
	Affected int `json:"affected"`
}

// AutoExpireRequests implements SweepHandler.
func (h *sweepHandlerImpl) AutoExpireRequests(w http.ResponseWriter, r *http.Request) {
	windowDays := h.settings.Int(r.Context(), setting.KeyRequestExpiryDays, 3)

	count, err := h.requestService.RunAutoExpireSweep(r.Context(), windowDays)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Expired stale pending requests", sweepResult{Affected: count})
}

// FillMissedCheckouts implements SweepHandler.
func (h *sweepHandlerImpl) FillMissedCheckouts(w http.ResponseWriter, r *http.Request) {
	count, err := h.attendanceService.RunMissedCheckoutSweep(r.Context())
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Filled missed checkouts", sweepResult{Affected: count})
}
