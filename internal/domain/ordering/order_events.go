package ordering

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/shopcore/backend/internal/domain/shared"
)

// AggregateTypeOrder is the aggregate type name for order events
const AggregateTypeOrder = "Order"

// Event types for the ordering domain
const (
	EventTypeOrderPlaced = "order.placed"
	EventTypeOrderPaid   = "order.paid"
)

// OrderPlacedEvent is raised once when an order is created with its stock
// already reserved. Published only after the placement transaction commits.
type OrderPlacedEvent struct {
	shared.BaseDomainEvent
	OrderID     uuid.UUID       `json:"order_id"`
	CustomerID  string          `json:"customer_id"`
	TotalAmount decimal.Decimal `json:"total_amount"`
	ItemCount   int             `json:"item_count"`
}

// NewOrderPlacedEvent creates an OrderPlacedEvent from the order
func NewOrderPlacedEvent(order *Order) *OrderPlacedEvent {
	return &OrderPlacedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeOrderPlaced, AggregateTypeOrder, order.ID),
		OrderID:         order.ID,
		CustomerID:      order.CustomerID,
		TotalAmount:     order.TotalAmount(),
		ItemCount:       order.ItemCount(),
	}
}

// EventType returns the event type
func (e *OrderPlacedEvent) EventType() string {
	return EventTypeOrderPlaced
}

// OrderPaidEvent is raised when a pending order transitions to paid
type OrderPaidEvent struct {
	shared.BaseDomainEvent
	OrderID     uuid.UUID       `json:"order_id"`
	CustomerID  string          `json:"customer_id"`
	TotalAmount decimal.Decimal `json:"total_amount"`
}

// NewOrderPaidEvent creates an OrderPaidEvent from the order
func NewOrderPaidEvent(order *Order) *OrderPaidEvent {
	return &OrderPaidEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeOrderPaid, AggregateTypeOrder, order.ID),
		OrderID:         order.ID,
		CustomerID:      order.CustomerID,
		TotalAmount:     order.TotalAmount(),
	}
}

// EventType returns the event type
func (e *OrderPaidEvent) EventType() string {
	return EventTypeOrderPaid
}
