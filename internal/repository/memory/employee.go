package memory

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/workforce-ops/workforce-backend-go/internal/domain/employee"
)

type EmployeeRepository struct {
	mu   sync.Mutex
	byID map[string]*employee.Employee
}

func NewEmployeeRepository() *EmployeeRepository {
	return &EmployeeRepository{byID: make(map[string]*employee.Employee)}
}

// Seed inserts or replaces an employee. Test helper.
func (e *EmployeeRepository) Seed(emp employee.Employee) employee.Employee {
	e.mu.Lock()
	defer e.mu.Unlock()

	if emp.ID == "" {
		emp.ID = uuid.NewString()
	}
	now := time.Now().UTC()
	emp.CreatedAt = now
	emp.UpdatedAt = now

	stored := emp
	e.byID[emp.ID] = &stored
	return emp
}

// GetByID implements employee.Repository.
func (e *EmployeeRepository) GetByID(ctx context.Context, id string) (employee.Employee, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	emp, ok := e.byID[id]
	if !ok {
		return employee.Employee{}, employee.ErrEmployeeNotFound
	}
	return *emp, nil
}

// ListByIDs implements employee.Repository.
func (e *EmployeeRepository) ListByIDs(ctx context.Context, ids []string) ([]employee.Employee, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	var employees []employee.Employee
	for _, id := range ids {
		if emp, ok := e.byID[id]; ok {
			employees = append(employees, *emp)
		}
	}

	sort.Slice(employees, func(i, j int) bool {
		return employees[i].FullName < employees[j].FullName
	})
	return employees, nil
}
