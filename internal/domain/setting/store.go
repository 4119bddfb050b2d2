package setting

import (
	"context"

	"github.com/shopspring/decimal"
)

// Store is the typed read-only view over system settings the rest of the
// engine consumes. A missing or malformed value is never an error: every
// getter falls back to the supplied default and the engine proceeds.
type Store interface {
	String(ctx context.Context, key, def string) string
	Int(ctx context.Context, key string, def int) int
	Decimal(ctx context.Context, key string, def decimal.Decimal) decimal.Decimal
	Bool(ctx context.Context, key string, def bool) bool
	TimeOfDay(ctx context.Context, key string, def TimeOfDay) TimeOfDay

	// ActiveSalaryRules returns the enabled dynamic salary settings, i.e.
	// active rows in the salary_rule category carrying an apply method.
	ActiveSalaryRules(ctx context.Context) ([]Setting, error)
}
