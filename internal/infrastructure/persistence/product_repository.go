package persistence

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/shopcore/backend/internal/domain/catalog"
	"github.com/shopcore/backend/internal/domain/shared"
	"github.com/shopcore/backend/internal/infrastructure/persistence/models"
)

// GormProductRepository implements catalog.ProductRepository using GORM.
// With forUpdate set, batch reads take FOR UPDATE row locks; the stores
// handed out by the unit of work enable it, plain read paths do not.
type GormProductRepository struct {
	db        *gorm.DB
	forUpdate bool
}

// NewGormProductRepository creates a repository for plain reads
func NewGormProductRepository(db *gorm.DB) *GormProductRepository {
	return &GormProductRepository{db: db}
}

// NewLockingProductRepository creates a repository whose batch reads lock
// the fetched rows until the surrounding transaction ends
func NewLockingProductRepository(tx *gorm.DB) *GormProductRepository {
	return &GormProductRepository{db: tx, forUpdate: true}
}

// FindByID finds a product by its ID
func (r *GormProductRepository) FindByID(ctx context.Context, id uuid.UUID) (*catalog.Product, error) {
	var model models.ProductModel
	if err := r.db.WithContext(ctx).First(&model, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// FindByIDs fetches all matching products in one batch read, keyed by ID.
// Missing ids are absent from the result, never an error.
func (r *GormProductRepository) FindByIDs(ctx context.Context, ids []uuid.UUID) (map[uuid.UUID]*catalog.Product, error) {
	if len(ids) == 0 {
		return map[uuid.UUID]*catalog.Product{}, nil
	}

	query := r.db.WithContext(ctx)
	// FOR UPDATE is a postgres concern; sqlite serializes writers on the
	// connection itself.
	if r.forUpdate && r.db.Dialector.Name() == "postgres" {
		query = query.Clauses(clause.Locking{Strength: "UPDATE"})
	}

	var found []models.ProductModel
	if err := query.Where("id IN ?", ids).Find(&found).Error; err != nil {
		return nil, err
	}

	products := make(map[uuid.UUID]*catalog.Product, len(found))
	for i := range found {
		products[found[i].ID] = found[i].ToDomain()
	}
	return products, nil
}

// Save persists the product's mutated state inside the caller's transaction
func (r *GormProductRepository) Save(ctx context.Context, product *catalog.Product) error {
	result := r.db.WithContext(ctx).
		Model(&models.ProductModel{}).
		Where("id = ?", product.ID).
		Updates(map[string]any{
			"name":       product.Name,
			"price":      product.Price,
			"stock":      product.Stock,
			"updated_at": time.Now(),
		})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.ErrNotFound
	}
	return nil
}

// Create inserts a new product. Used by seeding, not by placement.
func (r *GormProductRepository) Create(ctx context.Context, product *catalog.Product) error {
	return r.db.WithContext(ctx).Create(models.ProductModelFromDomain(product)).Error
}

// Ensure interface compliance
var _ catalog.ProductRepository = (*GormProductRepository)(nil)
