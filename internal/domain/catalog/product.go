package catalog

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/shopcore/backend/internal/domain/shared"
	"github.com/shopcore/backend/internal/domain/shared/valueobject"
)

// Product represents a sellable product with finite stock.
// It is the aggregate root for catalog operations and the unit of
// contention during order placement: stock is the only shared mutable
// resource, and DecreaseStock is its single mutator.
type Product struct {
	shared.BaseAggregateRoot
	Name  string
	Price decimal.Decimal
	Stock int64
}

// NewProduct creates a new product
func NewProduct(name string, price valueobject.Money, stock int64) (*Product, error) {
	if strings.TrimSpace(name) == "" {
		return nil, shared.NewValidationError("Product name cannot be empty")
	}
	if !price.IsPositive() {
		return nil, shared.NewValidationError("Product price must be positive")
	}
	if stock < 0 {
		return nil, shared.NewValidationError("Product stock cannot be negative")
	}

	return &Product{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		Name:              name,
		Price:             price.Amount(),
		Stock:             stock,
	}, nil
}

// ReconstructProduct rehydrates a product from persisted fields.
// No validation beyond types, no events; used only by the storage layer.
func ReconstructProduct(id uuid.UUID, name string, price decimal.Decimal, stock int64, version int, createdAt, updatedAt time.Time) *Product {
	return &Product{
		BaseAggregateRoot: shared.BaseAggregateRoot{
			BaseEntity: shared.ReconstructBaseEntity(id, createdAt, updatedAt),
			Version:    version,
		},
		Name:  name,
		Price: price,
		Stock: stock,
	}
}

// DecreaseStock reserves quantity units of stock.
// Fails with InsufficientStockError when fewer than quantity units remain;
// stock never goes negative.
func (p *Product) DecreaseStock(quantity int64) error {
	if quantity <= 0 {
		return shared.NewValidationError("Quantity must be positive")
	}
	if p.Stock < quantity {
		return &InsufficientStockError{
			ProductName: p.Name,
			Requested:   quantity,
			Available:   p.Stock,
		}
	}

	p.Stock -= quantity
	p.UpdatedAt = time.Now()

	return nil
}

// PriceMoney returns the unit price as Money
func (p *Product) PriceMoney() valueobject.Money {
	return valueobject.NewMoneyUSD(p.Price)
}

// InsufficientStockError is returned when a stock reservation exceeds the
// available quantity. It aborts the whole placement transaction.
type InsufficientStockError struct {
	ProductName string
	Requested   int64
	Available   int64
}

// Error implements the error interface
func (e *InsufficientStockError) Error() string {
	return fmt.Sprintf("insufficient stock for product %q: requested %d, available %d",
		e.ProductName, e.Requested, e.Available)
}
