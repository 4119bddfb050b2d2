package http

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/shopspring/decimal"
	"github.com/workforce-ops/workforce-backend-go/internal/domain/kpi"
	"github.com/workforce-ops/workforce-backend-go/internal/handler/http/response"
)

type KpiHandler interface {
	GetScore(w http.ResponseWriter, r *http.Request)
}

type kpiHandlerImpl struct {
	kpiService kpi.Service
}

func NewKpiHandler(kpiService kpi.Service) KpiHandler {
	return &kpiHandlerImpl{
		kpiService: kpiService,
	}
}

type kpiScoreResponse struct {
	EmployeeID string          `json:"employee_id"`
	StartDate  string          `json:"start_date"`
	EndDate    string          `json:"end_date"`
	Score      decimal.Decimal `json:"score"`
}

// GetScore implements KpiHandler.
func (h *kpiHandlerImpl) GetScore(w http.ResponseWriter, r *http.Request) {
	employeeID := chi.URLParam(r, "employeeID")

	start, err := time.Parse(time.DateOnly, r.URL.Query().Get("start_date"))
	if err != nil {
		response.BadRequest(w, "start_date must be YYYY-MM-DD", nil)
		return
	}
	end, err := time.Parse(time.DateOnly, r.URL.Query().Get("end_date"))
	if err != nil {
		response.BadRequest(w, "end_date must be YYYY-MM-DD", nil)
		return
	}
	if end.Before(start) {
		response.BadRequest(w, "end_date must not be before start_date", nil)
		return
	}

	score, err := h.kpiService.ComputeKpiScore(r.Context(), employeeID, start, end)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, kpiScoreResponse{
		EmployeeID: employeeID,
		StartDate:  start.Format(time.DateOnly),
		EndDate:    end.Format(time.DateOnly),
		Score:      score,
	})
}
