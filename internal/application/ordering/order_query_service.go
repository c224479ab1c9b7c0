package ordering

import (
	"context"

	"github.com/google/uuid"

	domain "github.com/shopcore/backend/internal/domain/ordering"
)

// OrderQueryService serves the order read path. Reads run outside the
// unit of work; they take no locks and need no transaction.
type OrderQueryService struct {
	orders domain.OrderRepository
}

// NewOrderQueryService creates a new order query service
func NewOrderQueryService(orders domain.OrderRepository) *OrderQueryService {
	return &OrderQueryService{orders: orders}
}

// GetByID loads a single order with its items
func (s *OrderQueryService) GetByID(ctx context.Context, id uuid.UUID) (*OrderResponse, error) {
	order, err := s.orders.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	return ToOrderResponse(order), nil
}
