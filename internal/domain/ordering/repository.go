package ordering

import (
	"context"

	"github.com/google/uuid"
)

// OrderRepository is the storage contract for orders
type OrderRepository interface {
	// Save persists a new order together with its items. Must execute
	// inside the caller's active transaction.
	Save(ctx context.Context, order *Order) error

	// Update persists a status change on an existing order using a
	// version check. Returns shared.ErrConcurrencyConflict when the
	// stored version no longer matches.
	Update(ctx context.Context, order *Order) error

	// FindByID loads an order with its items
	FindByID(ctx context.Context, id uuid.UUID) (*Order, error)
}
