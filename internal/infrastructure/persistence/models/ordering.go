package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/shopcore/backend/internal/domain/ordering"
)

// OrderModel is the persistence representation of ordering.Order
type OrderModel struct {
	ID          uuid.UUID       `gorm:"type:uuid;primaryKey"`
	CustomerID  string          `gorm:"size:255;not null;index"`
	Status      string          `gorm:"size:32;not null"`
	TotalAmount decimal.Decimal `gorm:"type:numeric(14,2);not null"`
	Version     int             `gorm:"not null;default:1"`
	CreatedAt   time.Time       `gorm:"not null"`
	UpdatedAt   time.Time       `gorm:"not null"`

	Items []OrderItemModel `gorm:"foreignKey:OrderID;references:ID"`
}

// TableName specifies the table name
func (OrderModel) TableName() string {
	return "orders"
}

// OrderItemModel is the persistence representation of one order line.
// Position preserves the original cart line order; duplicate product
// lines are distinct rows.
type OrderItemModel struct {
	ID          uuid.UUID       `gorm:"type:uuid;primaryKey"`
	OrderID     uuid.UUID       `gorm:"type:uuid;not null;index"`
	ProductID   uuid.UUID       `gorm:"type:uuid;not null"`
	ProductName string          `gorm:"size:255;not null"`
	UnitPrice   decimal.Decimal `gorm:"type:numeric(12,2);not null"`
	Quantity    int64           `gorm:"not null"`
	Position    int             `gorm:"not null"`
}

// TableName specifies the table name
func (OrderItemModel) TableName() string {
	return "order_items"
}

// ToDomain rehydrates the order aggregate with its items in cart order
func (m *OrderModel) ToDomain() *ordering.Order {
	items := make([]ordering.OrderItem, len(m.Items))
	for _, item := range m.Items {
		items[item.Position] = ordering.OrderItem{
			ProductID:   item.ProductID,
			ProductName: item.ProductName,
			UnitPrice:   item.UnitPrice,
			Quantity:    item.Quantity,
		}
	}
	return ordering.ReconstructOrder(
		m.ID,
		m.CustomerID,
		items,
		m.TotalAmount,
		ordering.OrderStatus(m.Status),
		m.Version,
		m.CreatedAt,
		m.UpdatedAt,
	)
}

// OrderModelFromDomain maps the aggregate and its items to persistence form
func OrderModelFromDomain(o *ordering.Order) *OrderModel {
	items := o.Items()
	itemModels := make([]OrderItemModel, 0, len(items))
	for i, item := range items {
		itemModels = append(itemModels, OrderItemModel{
			ID:          uuid.New(),
			OrderID:     o.ID,
			ProductID:   item.ProductID,
			ProductName: item.ProductName,
			UnitPrice:   item.UnitPrice,
			Quantity:    item.Quantity,
			Position:    i,
		})
	}

	return &OrderModel{
		ID:          o.ID,
		CustomerID:  o.CustomerID,
		Status:      o.Status().String(),
		TotalAmount: o.TotalAmount(),
		Version:     o.GetVersion(),
		CreatedAt:   o.CreatedAt,
		UpdatedAt:   o.UpdatedAt,
		Items:       itemModels,
	}
}
