package http

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/workforce-ops/workforce-backend-go/internal/domain/attendance"
	"github.com/workforce-ops/workforce-backend-go/internal/handler/http/response"
)

type AttendanceHandler interface {
	CheckIn(w http.ResponseWriter, r *http.Request)
	CheckOut(w http.ResponseWriter, r *http.Request)
	List(w http.ResponseWriter, r *http.Request)
}

type attendanceHandlerImpl struct {
	attendanceService attendance.Service
}

func NewAttendanceHandler(attendanceService attendance.Service) AttendanceHandler {
	return &attendanceHandlerImpl{
		attendanceService: attendanceService,
	}
}

// CheckIn implements AttendanceHandler.
func (h *attendanceHandlerImpl) CheckIn(w http.ResponseWriter, r *http.Request) {
	var req attendance.CheckInRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	// Callers without a clock of record use server time.
	if req.Timestamp.IsZero() {
		req.Timestamp = time.Now().UTC()
	}

	if err := req.Validate(); err != nil {
		response.HandleError(w, err)
		return
	}

	result, err := h.attendanceService.CheckIn(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Created(w, "Check-in successful", result)
}

// CheckOut implements AttendanceHandler.
func (h *attendanceHandlerImpl) CheckOut(w http.ResponseWriter, r *http.Request) {
	var req attendance.CheckOutRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	if req.Timestamp.IsZero() {
		req.Timestamp = time.Now().UTC()
	}

	if err := req.Validate(); err != nil {
		response.HandleError(w, err)
		return
	}

	result, err := h.attendanceService.CheckOut(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

// List implements AttendanceHandler.
func (h *attendanceHandlerImpl) List(w http.ResponseWriter, r *http.Request) {
	filter := attendance.RangeFilter{
		EmployeeID: r.URL.Query().Get("employee_id"),
	}

	if start := r.URL.Query().Get("start_date"); start != "" {
		parsed, err := time.Parse(time.DateOnly, start)
		if err != nil {
			response.BadRequest(w, "start_date must be YYYY-MM-DD", nil)
			return
		}
		filter.StartDate = parsed
	}

	if end := r.URL.Query().Get("end_date"); end != "" {
		parsed, err := time.Parse(time.DateOnly, end)
		if err != nil {
			response.BadRequest(w, "end_date must be YYYY-MM-DD", nil)
			return
		}
		filter.EndDate = parsed
	}

	if err := filter.Validate(); err != nil {
		response.HandleError(w, err)
		return
	}

	records, err := h.attendanceService.ListRange(r.Context(), filter)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, records)
}
