package ports

import (
	"context"
)

// UnitOfWork represents a business transaction boundary.
//
// Do runs fn inside one transaction. The context passed to fn carries the transaction and
// every repository called with it joins that transaction. The transaction commits when fn
// returns nil and rolls back on error or panic. Nested calls reuse the outer transaction.
type UnitOfWork interface {
	Do(ctx context.Context, fn func(ctx context.Context) error) error
}
