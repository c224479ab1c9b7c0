package ordering

import (
	"context"
	"sync"

	"github.com/google/uuid"

	"github.com/shopcore/backend/internal/domain/catalog"
	domain "github.com/shopcore/backend/internal/domain/ordering"
	"github.com/shopcore/backend/internal/domain/shared"
)

// memDB is an in-memory store with snapshot transactions. The unit of
// work mutex serializes transactions the way row locks serialize
// placements touching the same products.
type memDB struct {
	mu       sync.Mutex
	products map[uuid.UUID]*catalog.Product
	orders   map[uuid.UUID]*domain.Order
}

func newMemDB(products ...*catalog.Product) *memDB {
	db := &memDB{
		products: make(map[uuid.UUID]*catalog.Product),
		orders:   make(map[uuid.UUID]*domain.Order),
	}
	for _, p := range products {
		db.products[p.ID] = cloneProduct(p)
	}
	return db
}

func (db *memDB) productStock(id uuid.UUID) int64 {
	db.mu.Lock()
	defer db.mu.Unlock()
	return db.products[id].Stock
}

func (db *memDB) orderCount() int {
	db.mu.Lock()
	defer db.mu.Unlock()
	return len(db.orders)
}

func cloneProduct(p *catalog.Product) *catalog.Product {
	return catalog.ReconstructProduct(p.ID, p.Name, p.Price, p.Stock, p.GetVersion(), p.CreatedAt, p.UpdatedAt)
}

func cloneOrder(o *domain.Order) *domain.Order {
	return domain.ReconstructOrder(o.ID, o.CustomerID, o.Items(), o.TotalAmount(), o.Status(), o.GetVersion(), o.CreatedAt, o.UpdatedAt)
}

// memTx holds a working copy of the database. Discarding it is the
// rollback; copying it back is the commit.
type memTx struct {
	products map[uuid.UUID]*catalog.Product
	orders   map[uuid.UUID]*domain.Order
}

func (db *memDB) begin() *memTx {
	tx := &memTx{
		products: make(map[uuid.UUID]*catalog.Product, len(db.products)),
		orders:   make(map[uuid.UUID]*domain.Order, len(db.orders)),
	}
	for id, p := range db.products {
		tx.products[id] = cloneProduct(p)
	}
	for id, o := range db.orders {
		tx.orders[id] = o
	}
	return tx
}

func (db *memDB) commit(tx *memTx) {
	db.products = tx.products
	db.orders = tx.orders
}

func (tx *memTx) Products() catalog.ProductRepository { return &memProductRepo{tx: tx} }
func (tx *memTx) Orders() domain.OrderRepository      { return &memOrderRepo{tx: tx} }

type memProductRepo struct {
	tx *memTx
}

func (r *memProductRepo) FindByID(_ context.Context, id uuid.UUID) (*catalog.Product, error) {
	product, ok := r.tx.products[id]
	if !ok {
		return nil, shared.ErrNotFound
	}
	return product, nil
}

func (r *memProductRepo) FindByIDs(_ context.Context, ids []uuid.UUID) (map[uuid.UUID]*catalog.Product, error) {
	found := make(map[uuid.UUID]*catalog.Product, len(ids))
	for _, id := range ids {
		if product, ok := r.tx.products[id]; ok {
			found[id] = product
		}
	}
	return found, nil
}

func (r *memProductRepo) Save(_ context.Context, product *catalog.Product) error {
	r.tx.products[product.ID] = product
	return nil
}

type memOrderRepo struct {
	tx *memTx
}

func (r *memOrderRepo) Save(_ context.Context, order *domain.Order) error {
	if _, exists := r.tx.orders[order.ID]; exists {
		return shared.NewDomainError(shared.CodeConcurrencyConflict, "order already exists")
	}
	r.tx.orders[order.ID] = cloneOrder(order)
	return nil
}

func (r *memOrderRepo) Update(_ context.Context, order *domain.Order) error {
	stored, ok := r.tx.orders[order.ID]
	if !ok {
		return shared.ErrNotFound
	}
	if stored.GetVersion() != order.GetVersion() {
		return shared.ErrConcurrencyConflict
	}
	order.IncrementVersion()
	r.tx.orders[order.ID] = cloneOrder(order)
	return nil
}

func (r *memOrderRepo) FindByID(_ context.Context, id uuid.UUID) (*domain.Order, error) {
	order, ok := r.tx.orders[id]
	if !ok {
		return nil, shared.ErrNotFound
	}
	return cloneOrder(order), nil
}

type memUnitOfWork struct {
	db *memDB
}

func (u *memUnitOfWork) Do(_ context.Context, fn func(ctx context.Context, stores Stores) error) error {
	u.db.mu.Lock()
	defer u.db.mu.Unlock()

	tx := u.db.begin()
	if err := fn(context.Background(), tx); err != nil {
		return err
	}
	u.db.commit(tx)
	return nil
}

// capturePublisher records published events and can be made to fail
type capturePublisher struct {
	mu     sync.Mutex
	events []shared.DomainEvent
	err    error
}

func (p *capturePublisher) Publish(_ context.Context, events ...shared.DomainEvent) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.err != nil {
		return p.err
	}
	p.events = append(p.events, events...)
	return nil
}

func (p *capturePublisher) published() []shared.DomainEvent {
	p.mu.Lock()
	defer p.mu.Unlock()
	return append([]shared.DomainEvent(nil), p.events...)
}
