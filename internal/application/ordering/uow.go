package ordering

import (
	"context"

	"github.com/shopcore/backend/internal/domain/catalog"
	"github.com/shopcore/backend/internal/domain/ordering"
)

// Stores exposes transaction-scoped repositories. Every repository
// obtained from one Stores value runs on the same underlying transaction.
type Stores interface {
	Products() catalog.ProductRepository
	Orders() ordering.OrderRepository
}

// UnitOfWork runs a function inside a single atomic transaction.
//
// Do begins a transaction, hands the function repositories bound to it,
// and commits when the function returns nil. Any error, including a lock
// wait timeout surfaced as shared.ErrConcurrencyConflict, rolls back every
// write made through the stores. Row locks taken by the stores are held
// until the transaction ends.
type UnitOfWork interface {
	Do(ctx context.Context, fn func(ctx context.Context, stores Stores) error) error
}
