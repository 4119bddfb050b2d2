package database

import "context"

// Transactor runs fn as one atomic unit. Repository calls made with the ctx
// passed to fn join the same transaction, so paired mutations (a request row
// and its linked attendance record) commit both-or-neither.
type Transactor interface {
	WithinTransaction(ctx context.Context, fn func(ctx context.Context) error) error
}
