package employee

import (
	"time"

	"github.com/shopspring/decimal"
)

// Employee is the read-only directory entry the engine consumes. The
// surrounding system owns the employee lifecycle; the engine only needs
// identity, display fields, and the base salary payroll starts from.
type Employee struct {
	ID         string
	FullName   string
	Department *string
	Position   *string
	BaseSalary *decimal.Decimal
	CreatedAt  time.Time
	UpdatedAt  time.Time
}
