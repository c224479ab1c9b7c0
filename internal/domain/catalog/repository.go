package catalog

import (
	"context"

	"github.com/google/uuid"
)

// ProductRepository is the storage contract for products
type ProductRepository interface {
	// FindByID finds a product by its ID
	FindByID(ctx context.Context, id uuid.UUID) (*Product, error)

	// FindByIDs fetches all products matching ids in one batch read, keyed
	// by product ID. Ids without a matching product are simply absent from
	// the result. When executed inside a placement transaction the read
	// acquires an exclusive row lock on each fetched product, held until
	// the transaction commits or aborts.
	FindByIDs(ctx context.Context, ids []uuid.UUID) (map[uuid.UUID]*Product, error)

	// Save persists the product's mutated state. Must execute inside the
	// caller's active transaction.
	Save(ctx context.Context, product *Product) error
}
