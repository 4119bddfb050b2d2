package employee

import "context"

// Repository is the read-only employee lookup.
type Repository interface {
	GetByID(ctx context.Context, id string) (Employee, error)
	ListByIDs(ctx context.Context, ids []string) ([]Employee, error)
}
