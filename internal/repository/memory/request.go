package memory

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/workforce-ops/workforce-backend-go/internal/domain/attendance"
	"github.com/workforce-ops/workforce-backend-go/internal/domain/request"
)

type RequestRepository struct {
	mu   sync.Mutex
	byID map[string]*request.Request
}

func NewRequestRepository() *RequestRepository {
	return &RequestRepository{byID: make(map[string]*request.Request)}
}

// Create implements request.Repository.
func (r *RequestRepository) Create(ctx context.Context, req request.Request) (request.Request, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	now := time.Now().UTC()
	req.ID = uuid.NewString()
	req.CreatedAt = now
	req.UpdatedAt = now

	stored := req
	r.byID[req.ID] = &stored
	return req, nil
}

// GetByID implements request.Repository.
func (r *RequestRepository) GetByID(ctx context.Context, id string) (request.Request, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	req, ok := r.byID[id]
	if !ok {
		return request.Request{}, request.ErrRequestNotFound
	}
	return *req, nil
}

// Update implements request.Repository.
func (r *RequestRepository) Update(ctx context.Context, req request.Request) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	stored, ok := r.byID[req.ID]
	if !ok {
		return request.ErrRequestNotFound
	}

	stored.Status = req.Status
	stored.OvertimeHours = req.OvertimeHours
	stored.ReviewerID = req.ReviewerID
	stored.ReviewedAt = req.ReviewedAt
	stored.ReviewNote = req.ReviewNote
	stored.UpdatedAt = time.Now().UTC()
	return nil
}

// HasActiveByDateAndType implements request.Repository.
func (r *RequestRepository) HasActiveByDateAndType(ctx context.Context, employeeID string, workDate time.Time, typ request.Type) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	day := attendance.DateOnly(workDate)
	for _, req := range r.byID {
		if req.EmployeeID != employeeID || req.Type != typ || req.Status != request.StatusPending {
			continue
		}
		if typ == request.TypeLeave {
			if req.StartDate != nil && req.EndDate != nil &&
				!day.Before(*req.StartDate) && !day.After(*req.EndDate) {
				return true, nil
			}
			continue
		}
		if req.WorkDate != nil && req.WorkDate.Equal(day) {
			return true, nil
		}
	}
	return false, nil
}

// ListPendingOlderThan implements request.Repository.
func (r *RequestRepository) ListPendingOlderThan(ctx context.Context, cutoff time.Time) ([]request.Request, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	var requests []request.Request
	for _, req := range r.byID {
		if req.Status == request.StatusPending && req.SubmittedAt.Before(cutoff) {
			requests = append(requests, *req)
		}
	}

	sort.Slice(requests, func(i, j int) bool {
		return requests[i].SubmittedAt.Before(requests[j].SubmittedAt)
	})
	return requests, nil
}

// ListByEmployee implements request.Repository.
func (r *RequestRepository) ListByEmployee(ctx context.Context, employeeID string) ([]request.Request, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	var requests []request.Request
	for _, req := range r.byID {
		if req.EmployeeID == employeeID {
			requests = append(requests, *req)
		}
	}

	sort.Slice(requests, func(i, j int) bool {
		return requests[i].SubmittedAt.After(requests[j].SubmittedAt)
	})
	return requests, nil
}
