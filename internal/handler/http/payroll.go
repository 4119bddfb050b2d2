package http

import (
	"encoding/json"
	"net/http"

	"github.com/workforce-ops/workforce-backend-go/internal/domain/payroll"
	"github.com/workforce-ops/workforce-backend-go/internal/handler/http/response"
)

type PayrollHandler interface {
	Compute(w http.ResponseWriter, r *http.Request)
}

type payrollHandlerImpl struct {
	payrollService payroll.Service
}

func NewPayrollHandler(payrollService payroll.Service) PayrollHandler {
	return &payrollHandlerImpl{
		payrollService: payrollService,
	}
}

// Compute implements PayrollHandler.
func (h *payrollHandlerImpl) Compute(w http.ResponseWriter, r *http.Request) {
	var req payroll.ComputeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	if err := req.Validate(); err != nil {
		response.HandleError(w, err)
		return
	}

	breakdowns, err := h.payrollService.ComputePayroll(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	// Per-employee failures are reported inline, not as a batch failure.
	type item struct {
		payroll.SalaryBreakdown
		Error *string `json:"error,omitempty"`
	}
	items := make([]item, 0, len(breakdowns))
	for _, b := range breakdowns {
		it := item{SalaryBreakdown: b}
		if b.Err != nil {
			msg := b.Err.Error()
			it.Error = &msg
		}
		items = append(items, it)
	}

	response.Success(w, items)
}
