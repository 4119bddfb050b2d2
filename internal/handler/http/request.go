package http

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/workforce-ops/workforce-backend-go/internal/domain/request"
	"github.com/workforce-ops/workforce-backend-go/internal/handler/http/response"
)

type RequestHandler interface {
	SubmitOvertime(w http.ResponseWriter, r *http.Request)
	SubmitLeave(w http.ResponseWriter, r *http.Request)
	SubmitLate(w http.ResponseWriter, r *http.Request)
	Review(w http.ResponseWriter, r *http.Request)
	Cancel(w http.ResponseWriter, r *http.Request)
	Get(w http.ResponseWriter, r *http.Request)
}

type requestHandlerImpl struct {
	requestService request.Service
}

func NewRequestHandler(requestService request.Service) RequestHandler {
	return &requestHandlerImpl{
		requestService: requestService,
	}
}

// SubmitOvertime implements RequestHandler.
func (h *requestHandlerImpl) SubmitOvertime(w http.ResponseWriter, r *http.Request) {
	var req request.SubmitOvertimeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	if err := req.Validate(); err != nil {
		response.HandleError(w, err)
		return
	}

	result, err := h.requestService.SubmitOvertime(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Created(w, "Overtime request submitted", result)
}

// SubmitLeave implements RequestHandler.
func (h *requestHandlerImpl) SubmitLeave(w http.ResponseWriter, r *http.Request) {
	var req request.SubmitLeaveRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	if err := req.Validate(); err != nil {
		response.HandleError(w, err)
		return
	}

	result, err := h.requestService.SubmitLeave(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Created(w, "Leave request submitted", result)
}

// SubmitLate implements RequestHandler.
func (h *requestHandlerImpl) SubmitLate(w http.ResponseWriter, r *http.Request) {
	var req request.SubmitLateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	if err := req.Validate(); err != nil {
		response.HandleError(w, err)
		return
	}

	result, err := h.requestService.SubmitLate(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Created(w, "Late arrival request submitted", result)
}

// Review implements RequestHandler.
func (h *requestHandlerImpl) Review(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	var req request.ReviewRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request format", nil)
		return
	}
	req.RequestID = id

	if err := req.Validate(); err != nil {
		response.HandleError(w, err)
		return
	}

	if err := h.requestService.Review(r.Context(), req); err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Request reviewed", nil)
}

// Cancel implements RequestHandler.
func (h *requestHandlerImpl) Cancel(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	var req struct {
		EmployeeID string `json:"employee_id"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request format", nil)
		return
	}
	if req.EmployeeID == "" {
		response.BadRequest(w, "employee_id is required", nil)
		return
	}

	if err := h.requestService.Cancel(r.Context(), id, req.EmployeeID); err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Request cancelled", nil)
}

// Get implements RequestHandler.
func (h *requestHandlerImpl) Get(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	result, err := h.requestService.GetByID(r.Context(), id)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}
