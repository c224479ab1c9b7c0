package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/shopcore/backend/internal/domain/catalog"
)

// ProductModel is the persistence representation of catalog.Product.
// Mapping between model and aggregate is explicit; the aggregate is never
// handed to GORM directly.
type ProductModel struct {
	ID        uuid.UUID       `gorm:"type:uuid;primaryKey"`
	Name      string          `gorm:"size:255;not null"`
	Price     decimal.Decimal `gorm:"type:numeric(12,2);not null"`
	Stock     int64           `gorm:"not null"`
	Version   int             `gorm:"not null;default:1"`
	CreatedAt time.Time       `gorm:"not null"`
	UpdatedAt time.Time       `gorm:"not null"`
}

// TableName specifies the table name
func (ProductModel) TableName() string {
	return "products"
}

// ToDomain rehydrates the catalog aggregate
func (m *ProductModel) ToDomain() *catalog.Product {
	return catalog.ReconstructProduct(m.ID, m.Name, m.Price, m.Stock, m.Version, m.CreatedAt, m.UpdatedAt)
}

// ProductModelFromDomain maps the aggregate to its persistence form
func ProductModelFromDomain(p *catalog.Product) *ProductModel {
	return &ProductModel{
		ID:        p.ID,
		Name:      p.Name,
		Price:     p.Price,
		Stock:     p.Stock,
		Version:   p.GetVersion(),
		CreatedAt: p.CreatedAt,
		UpdatedAt: p.UpdatedAt,
	}
}
