package ordering

import (
	"fmt"

	"github.com/google/uuid"
)

// ProductNotFoundError is returned when a cart references a product that
// does not exist. It aborts the whole placement transaction.
type ProductNotFoundError struct {
	ProductID uuid.UUID
}

// Error implements the error interface
func (e *ProductNotFoundError) Error() string {
	return fmt.Sprintf("product not found: %s", e.ProductID)
}

// InvalidStateTransitionError is returned when an order status change is
// not permitted from the current status.
type InvalidStateTransitionError struct {
	Current   OrderStatus
	Attempted OrderStatus
}

// Error implements the error interface
func (e *InvalidStateTransitionError) Error() string {
	return fmt.Sprintf("invalid order state transition from %q to %q", e.Current, e.Attempted)
}
