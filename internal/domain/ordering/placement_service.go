package ordering

import (
	"context"

	"github.com/google/uuid"

	"github.com/shopcore/backend/internal/domain/catalog"
	"github.com/shopcore/backend/internal/domain/shared"
)

// CartLine is one requested product and quantity in a placement request.
// The same product may appear on multiple lines; each line reserves stock
// separately against the same product instance.
type CartLine struct {
	ProductID uuid.UUID
	Quantity  int64
}

// OrderPlacementService coordinates stock reservation across products and
// order creation. It is stateless; the repository passed to CreateOrder
// must be scoped to the caller's transaction so that the batch read locks
// every involved product row for the duration of the placement.
type OrderPlacementService struct{}

// NewOrderPlacementService creates a new placement service
func NewOrderPlacementService() *OrderPlacementService {
	return &OrderPlacementService{}
}

// CreateOrder reserves stock for every cart line and builds the order.
//
// All products are fetched in one locked batch read, then the lines are
// processed in input order: reserve stock, persist the decrement, snapshot
// the line into an order item. The first failing line stops the loop and
// the error propagates to the transaction boundary, which rolls back every
// decrement already written. The order itself is not persisted here.
func (s *OrderPlacementService) CreateOrder(ctx context.Context, products catalog.ProductRepository, customerID string, lines []CartLine) (*Order, error) {
	if err := validateCart(customerID, lines); err != nil {
		return nil, err
	}

	productIDs := distinctProductIDs(lines)
	fetched, err := products.FindByIDs(ctx, productIDs)
	if err != nil {
		return nil, err
	}

	items := make([]OrderItem, 0, len(lines))
	for _, line := range lines {
		product, ok := fetched[line.ProductID]
		if !ok {
			return nil, &ProductNotFoundError{ProductID: line.ProductID}
		}

		if err := product.DecreaseStock(line.Quantity); err != nil {
			return nil, err
		}
		if err := products.Save(ctx, product); err != nil {
			return nil, err
		}

		item, err := NewOrderItem(product.ID, product.Name, product.Price, line.Quantity)
		if err != nil {
			return nil, err
		}
		items = append(items, item)
	}

	return NewOrder(customerID, items)
}

// validateCart rejects malformed requests before any product is fetched
// or locked
func validateCart(customerID string, lines []CartLine) error {
	if customerID == "" {
		return shared.NewValidationError("Customer ID cannot be empty")
	}
	if len(lines) == 0 {
		return shared.NewValidationError("Cart cannot be empty")
	}
	for _, line := range lines {
		if line.ProductID == uuid.Nil {
			return shared.NewValidationError("Product ID cannot be empty")
		}
		if line.Quantity <= 0 {
			return shared.NewValidationError("Quantity must be positive")
		}
	}
	return nil
}

// distinctProductIDs returns the unique product IDs in first-seen order.
// Duplicate cart lines resolve to the same fetched product, so their
// reservations accumulate on one instance.
func distinctProductIDs(lines []CartLine) []uuid.UUID {
	seen := make(map[uuid.UUID]struct{}, len(lines))
	ids := make([]uuid.UUID, 0, len(lines))
	for _, line := range lines {
		if _, ok := seen[line.ProductID]; ok {
			continue
		}
		seen[line.ProductID] = struct{}{}
		ids = append(ids, line.ProductID)
	}
	return ids
}
