package postgresql

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/workforce-ops/workforce-backend-go/internal/domain/request"
	"github.com/workforce-ops/workforce-backend-go/internal/pkg/database"
)

type requestRepository struct {
	db *database.DB
}

func NewRequestRepository(db *database.DB) request.Repository {
	return &requestRepository{db: db}
}

const requestColumns = `
	id, type, employee_id, status,
	work_date, start_date, end_date, total_days,
	overtime_hours, expected_arrival,
	reason, task_description,
	reviewer_id, reviewed_at, review_note,
	submitted_at, created_at, updated_at`

func scanRequest(row pgx.Row) (request.Request, error) {
	var req request.Request
	err := row.Scan(
		&req.ID, &req.Type, &req.EmployeeID, &req.Status,
		&req.WorkDate, &req.StartDate, &req.EndDate, &req.TotalDays,
		&req.OvertimeHours, &req.ExpectedArrival,
		&req.Reason, &req.TaskDescription,
		&req.ReviewerID, &req.ReviewedAt, &req.ReviewNote,
		&req.SubmittedAt, &req.CreatedAt, &req.UpdatedAt,
	)
	return req, err
}

// Create implements request.Repository.
func (r *requestRepository) Create(ctx context.Context, req request.Request) (request.Request, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		INSERT INTO workflow_requests (
			type, employee_id, status,
			work_date, start_date, end_date, total_days,
			overtime_hours, expected_arrival,
			reason, task_description, submitted_at
		) VALUES (
			$1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12
		) RETURNING id, created_at, updated_at
	`

	err := q.QueryRow(ctx, query,
		req.Type,
		req.EmployeeID,
		req.Status,
		req.WorkDate,
		req.StartDate,
		req.EndDate,
		req.TotalDays,
		req.OvertimeHours,
		req.ExpectedArrival,
		req.Reason,
		req.TaskDescription,
		req.SubmittedAt,
	).Scan(&req.ID, &req.CreatedAt, &req.UpdatedAt)

	if err != nil {
		return request.Request{}, fmt.Errorf("failed to create request: %w", err)
	}
	return req, nil
}

// GetByID implements request.Repository.
func (r *requestRepository) GetByID(ctx context.Context, id string) (request.Request, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT ` + requestColumns + `
		FROM workflow_requests
		WHERE id = $1
	`

	req, err := scanRequest(q.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return request.Request{}, request.ErrRequestNotFound
		}
		return request.Request{}, fmt.Errorf("failed to get request: %w", err)
	}
	return req, nil
}

// Update implements request.Repository.
func (r *requestRepository) Update(ctx context.Context, req request.Request) error {
	q := GetQuerier(ctx, r.db)

	query := `
		UPDATE workflow_requests SET
			status = $2,
			overtime_hours = $3,
			reviewer_id = $4, reviewed_at = $5, review_note = $6,
			updated_at = NOW()
		WHERE id = $1
		RETURNING id
	`

	var id string
	err := q.QueryRow(ctx, query,
		req.ID,
		req.Status,
		req.OvertimeHours,
		req.ReviewerID, req.ReviewedAt, req.ReviewNote,
	).Scan(&id)

	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return request.ErrRequestNotFound
		}
		return fmt.Errorf("failed to update request: %w", err)
	}
	return nil
}

// HasActiveByDateAndType implements request.Repository. Leave requests match
// on range overlap, the day-scoped types on the exact work date.
func (r *requestRepository) HasActiveByDateAndType(ctx context.Context, employeeID string, workDate time.Time, typ request.Type) (bool, error) {
	q := GetQuerier(ctx, r.db)

	var query string
	if typ == request.TypeLeave {
		query = `
			SELECT EXISTS (
				SELECT 1 FROM workflow_requests
				WHERE employee_id = $1 AND type = $3 AND status = 'pending'
				  AND start_date <= $2 AND end_date >= $2
			)
		`
	} else {
		query = `
			SELECT EXISTS (
				SELECT 1 FROM workflow_requests
				WHERE employee_id = $1 AND type = $3 AND status = 'pending'
				  AND work_date = $2
			)
		`
	}

	var exists bool
	if err := q.QueryRow(ctx, query, employeeID, workDate, typ).Scan(&exists); err != nil {
		return false, fmt.Errorf("failed to check active request: %w", err)
	}
	return exists, nil
}

// ListPendingOlderThan implements request.Repository.
func (r *requestRepository) ListPendingOlderThan(ctx context.Context, cutoff time.Time) ([]request.Request, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT ` + requestColumns + `
		FROM workflow_requests
		WHERE status = 'pending' AND submitted_at < $1
		ORDER BY submitted_at ASC
	`

	rows, err := q.Query(ctx, query, cutoff)
	if err != nil {
		return nil, fmt.Errorf("failed to query pending requests: %w", err)
	}
	defer rows.Close()

	return collectRequests(rows)
}

// ListByEmployee implements request.Repository.
func (r *requestRepository) ListByEmployee(ctx context.Context, employeeID string) ([]request.Request, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT ` + requestColumns + `
		FROM workflow_requests
		WHERE employee_id = $1
		ORDER BY submitted_at DESC
	`

	rows, err := q.Query(ctx, query, employeeID)
	if err != nil {
		return nil, fmt.Errorf("failed to query requests: %w", err)
	}
	defer rows.Close()

	return collectRequests(rows)
}

func collectRequests(rows pgx.Rows) ([]request.Request, error) {
	var requests []request.Request
	for rows.Next() {
		req, err := scanRequest(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan request: %w", err)
		}
		requests = append(requests, req)
	}
	return requests, rows.Err()
}
