package memory

import (
	"context"
	"sync"

	"github.com/workforce-ops/workforce-backend-go/internal/pkg/database"
)

// Transactor serializes transactional sections with a mutex. There is no
// rollback: the map-backed repositories mutate in place, so tests that
// exercise failure paths assert on the error, not on state reversal.
type Transactor struct {
	mu sync.Mutex
}

func NewTransactor() *Transactor {
	return &Transactor{}
}

var _ database.Transactor = (*Transactor)(nil)

func (t *Transactor) WithinTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	t.mu.Lock()
	defer t.mu.Unlock()
	return fn(ctx)
}
