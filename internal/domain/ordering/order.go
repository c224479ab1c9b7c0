package ordering

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/shopcore/backend/internal/domain/shared"
	"github.com/shopcore/backend/internal/domain/shared/valueobject"
)

// OrderStatus represents the status of an order
type OrderStatus string

const (
	OrderStatusPending OrderStatus = "pending"
	OrderStatusPaid    OrderStatus = "paid"
)

// IsValid checks if the status is a valid OrderStatus
func (s OrderStatus) IsValid() bool {
	switch s {
	case OrderStatusPending, OrderStatusPaid:
		return true
	}
	return false
}

// String returns the string representation of OrderStatus
func (s OrderStatus) String() string {
	return string(s)
}

// CanTransitionTo checks if the status can transition to the target status
func (s OrderStatus) CanTransitionTo(target OrderStatus) bool {
	switch s {
	case OrderStatusPending:
		return target == OrderStatusPaid
	case OrderStatusPaid:
		return false // Terminal state
	}
	return false
}

// OrderItem is an immutable snapshot of a purchased line. Name and price
// are captured at order time so historical orders stay accurate when the
// product changes later; the product is referenced by ID only.
type OrderItem struct {
	ProductID   uuid.UUID
	ProductName string
	UnitPrice   decimal.Decimal
	Quantity    int64
}

// NewOrderItem creates a new order item snapshot
func NewOrderItem(productID uuid.UUID, productName string, unitPrice decimal.Decimal, quantity int64) (OrderItem, error) {
	if productID == uuid.Nil {
		return OrderItem{}, shared.NewValidationError("Product ID cannot be empty")
	}
	if strings.TrimSpace(productName) == "" {
		return OrderItem{}, shared.NewValidationError("Product name cannot be empty")
	}
	if !unitPrice.IsPositive() {
		return OrderItem{}, shared.NewValidationError("Unit price must be positive")
	}
	if quantity <= 0 {
		return OrderItem{}, shared.NewValidationError("Quantity must be positive")
	}

	return OrderItem{
		ProductID:   productID,
		ProductName: productName,
		UnitPrice:   unitPrice,
		Quantity:    quantity,
	}, nil
}

// TotalPrice returns unit price times quantity
func (i OrderItem) TotalPrice() decimal.Decimal {
	return i.UnitPrice.Mul(decimal.NewFromInt(i.Quantity))
}

// UnitPriceMoney returns the unit price as Money
func (i OrderItem) UnitPriceMoney() valueobject.Money {
	return valueobject.NewMoneyUSD(i.UnitPrice)
}

// TotalPriceMoney returns the line total as Money
func (i OrderItem) TotalPriceMoney() valueobject.Money {
	return valueobject.NewMoneyUSD(i.TotalPrice())
}

// Order is the aggregate root for a customer order. It owns its item
// sequence exclusively: items are fixed at creation and callers only ever
// receive copies. Status knows a single transition, pending -> paid.
type Order struct {
	shared.BaseAggregateRoot
	CustomerID string

	items       []OrderItem
	totalAmount decimal.Decimal
	status      OrderStatus
}

// NewOrder creates a new order from a non-empty item sequence.
// Records an OrderPlaced event for post-commit publication.
func NewOrder(customerID string, items []OrderItem) (*Order, error) {
	if strings.TrimSpace(customerID) == "" {
		return nil, shared.NewValidationError("Customer ID cannot be empty")
	}
	if len(items) == 0 {
		return nil, shared.NewValidationError("Order must have at least one item")
	}

	order := &Order{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		CustomerID:        customerID,
		items:             append([]OrderItem(nil), items...),
		status:            OrderStatusPending,
	}
	order.totalAmount = order.calculateTotalAmount()

	order.AddDomainEvent(NewOrderPlacedEvent(order))

	return order, nil
}

// ReconstructOrder rehydrates an order from persisted fields.
// No validation beyond types, no events; used only by the storage layer.
func ReconstructOrder(id uuid.UUID, customerID string, items []OrderItem, totalAmount decimal.Decimal, status OrderStatus, version int, createdAt, updatedAt time.Time) *Order {
	return &Order{
		BaseAggregateRoot: shared.BaseAggregateRoot{
			BaseEntity: shared.ReconstructBaseEntity(id, createdAt, updatedAt),
			Version:    version,
		},
		CustomerID:  customerID,
		items:       append([]OrderItem(nil), items...),
		totalAmount: totalAmount,
		status:      status,
	}
}

// MarkAsPaid transitions the order from pending to paid.
// Any other starting status fails with InvalidStateTransitionError.
func (o *Order) MarkAsPaid() error {
	if !o.status.CanTransitionTo(OrderStatusPaid) {
		return &InvalidStateTransitionError{
			Current:   o.status,
			Attempted: OrderStatusPaid,
		}
	}

	o.status = OrderStatusPaid
	o.UpdatedAt = time.Now()

	o.AddDomainEvent(NewOrderPaidEvent(o))

	return nil
}

// Items returns a copy of the item sequence in cart order.
// Callers cannot mutate the order through the returned slice.
func (o *Order) Items() []OrderItem {
	return append([]OrderItem(nil), o.items...)
}

// ItemCount returns the number of items in the order
func (o *Order) ItemCount() int {
	return len(o.items)
}

// TotalAmount returns the sum of all item totals
func (o *Order) TotalAmount() decimal.Decimal {
	return o.totalAmount
}

// TotalAmountMoney returns the total amount as Money
func (o *Order) TotalAmountMoney() valueobject.Money {
	return valueobject.NewMoneyUSD(o.totalAmount)
}

// Status returns the order status
func (o *Order) Status() OrderStatus {
	return o.status
}

// IsPending returns true if the order has not been paid yet
func (o *Order) IsPending() bool {
	return o.status == OrderStatusPending
}

// IsPaid returns true if the order has been paid
func (o *Order) IsPaid() bool {
	return o.status == OrderStatusPaid
}

func (o *Order) calculateTotalAmount() decimal.Decimal {
	total := decimal.Zero
	for _, item := range o.items {
		total = total.Add(item.TotalPrice())
	}
	return total
}
