package ordering

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/shopcore/backend/internal/domain/catalog"
	domain "github.com/shopcore/backend/internal/domain/ordering"
	"github.com/shopcore/backend/internal/domain/shared"
	"github.com/shopcore/backend/internal/domain/shared/valueobject"
)

func seedProduct(t *testing.T, name, price string, stock int64) *catalog.Product {
	t.Helper()
	money, err := valueobject.NewMoneyUSDFromString(price)
	require.NoError(t, err)
	product, err := catalog.NewProduct(name, money, stock)
	require.NoError(t, err)
	return product
}

func newPlaceOrderFixture(products ...*catalog.Product) (*PlaceOrderHandler, *memDB, *capturePublisher) {
	db := newMemDB(products...)
	publisher := &capturePublisher{}
	handler := NewPlaceOrderHandler(&memUnitOfWork{db: db}, domain.NewOrderPlacementService(), publisher, zap.NewNop())
	return handler, db, publisher
}

func TestPlaceOrderHandler(t *testing.T) {
	ctx := context.Background()

	t.Run("happy path reserves stock, persists order and publishes one event", func(t *testing.T) {
		productA := seedProduct(t, "Sample Product A", "19.99", 100)
		productB := seedProduct(t, "Sample Product B", "29.50", 50)
		handler, db, publisher := newPlaceOrderFixture(productA, productB)

		resp, err := handler.Handle(ctx, &PlaceOrderCommand{
			CustomerID: "customer-1",
			Lines: []CartLineInput{
				{ProductID: productA.ID.String(), Quantity: 2},
				{ProductID: productB.ID.String(), Quantity: 1},
			},
		})
		require.NoError(t, err)

		assert.Equal(t, "pending", resp.Status)
		assert.Equal(t, "69.48", resp.TotalAmount)
		require.Len(t, resp.Items, 2)
		assert.Equal(t, "Sample Product A", resp.Items[0].ProductName)
		assert.Equal(t, "39.98", resp.Items[0].TotalPrice)

		assert.Equal(t, int64(98), db.productStock(productA.ID))
		assert.Equal(t, int64(49), db.productStock(productB.ID))
		assert.Equal(t, 1, db.orderCount())

		events := publisher.published()
		require.Len(t, events, 1)
		assert.Equal(t, domain.EventTypeOrderPlaced, events[0].EventType())
	})

	t.Run("missing product rolls back every decrement", func(t *testing.T) {
		product := seedProduct(t, "Sample Product A", "19.99", 10)
		handler, db, publisher := newPlaceOrderFixture(product)

		_, err := handler.Handle(ctx, &PlaceOrderCommand{
			CustomerID: "customer-1",
			Lines: []CartLineInput{
				{ProductID: product.ID.String(), Quantity: 5},
				{ProductID: uuid.NewString(), Quantity: 1},
			},
		})

		var notFoundErr *domain.ProductNotFoundError
		require.ErrorAs(t, err, &notFoundErr)
		assert.Equal(t, int64(10), db.productStock(product.ID), "decrement on the first line must roll back")
		assert.Equal(t, 0, db.orderCount())
		assert.Empty(t, publisher.published())
	})

	t.Run("insufficient stock on second line rolls back the first", func(t *testing.T) {
		productA := seedProduct(t, "Sample Product A", "19.99", 10)
		productB := seedProduct(t, "Sample Product B", "29.50", 3)
		handler, db, publisher := newPlaceOrderFixture(productA, productB)

		_, err := handler.Handle(ctx, &PlaceOrderCommand{
			CustomerID: "customer-1",
			Lines: []CartLineInput{
				{ProductID: productA.ID.String(), Quantity: 5},
				{ProductID: productB.ID.String(), Quantity: 100},
			},
		})

		var stockErr *catalog.InsufficientStockError
		require.ErrorAs(t, err, &stockErr)
		assert.Equal(t, int64(10), db.productStock(productA.ID))
		assert.Equal(t, int64(3), db.productStock(productB.ID))
		assert.Equal(t, 0, db.orderCount())
		assert.Empty(t, publisher.published())
	})

	t.Run("duplicate lines reserve cumulatively from one product", func(t *testing.T) {
		product := seedProduct(t, "Widget", "10.00", 10)
		handler, db, _ := newPlaceOrderFixture(product)

		resp, err := handler.Handle(ctx, &PlaceOrderCommand{
			CustomerID: "customer-1",
			Lines: []CartLineInput{
				{ProductID: product.ID.String(), Quantity: 3},
				{ProductID: product.ID.String(), Quantity: 4},
			},
		})
		require.NoError(t, err)

		assert.Equal(t, int64(3), db.productStock(product.ID))
		require.Len(t, resp.Items, 2)
		assert.Equal(t, "70.00", resp.TotalAmount)
	})

	t.Run("malformed product id fails validation before any work", func(t *testing.T) {
		product := seedProduct(t, "Widget", "10.00", 10)
		handler, db, publisher := newPlaceOrderFixture(product)

		_, err := handler.Handle(ctx, &PlaceOrderCommand{
			CustomerID: "customer-1",
			Lines:      []CartLineInput{{ProductID: "not-a-uuid", Quantity: 1}},
		})

		assert.True(t, shared.IsValidation(err))
		assert.Equal(t, int64(10), db.productStock(product.ID))
		assert.Empty(t, publisher.published())
	})

	t.Run("publish failure does not fail the placed order", func(t *testing.T) {
		product := seedProduct(t, "Widget", "10.00", 10)
		handler, db, publisher := newPlaceOrderFixture(product)
		publisher.err = errors.New("bus down")

		resp, err := handler.Handle(ctx, &PlaceOrderCommand{
			CustomerID: "customer-1",
			Lines:      []CartLineInput{{ProductID: product.ID.String(), Quantity: 1}},
		})
		require.NoError(t, err)
		assert.Equal(t, "pending", resp.Status)
		assert.Equal(t, 1, db.orderCount())
	})

	t.Run("two buyers racing for the last unit: exactly one succeeds", func(t *testing.T) {
		product := seedProduct(t, "Last Unit", "10.00", 1)
		handler, db, publisher := newPlaceOrderFixture(product)

		cmd := func(customer string) *PlaceOrderCommand {
			return &PlaceOrderCommand{
				CustomerID: customer,
				Lines:      []CartLineInput{{ProductID: product.ID.String(), Quantity: 1}},
			}
		}

		var wg sync.WaitGroup
		results := make([]error, 2)
		for i, customer := range []string{"customer-1", "customer-2"} {
			wg.Add(1)
			go func(i int, customer string) {
				defer wg.Done()
				_, results[i] = handler.Handle(ctx, cmd(customer))
			}(i, customer)
		}
		wg.Wait()

		var successes, stockFailures int
		for _, err := range results {
			if err == nil {
				successes++
				continue
			}
			var stockErr *catalog.InsufficientStockError
			require.ErrorAs(t, err, &stockErr)
			stockFailures++
		}

		assert.Equal(t, 1, successes)
		assert.Equal(t, 1, stockFailures)
		assert.Equal(t, int64(0), db.productStock(product.ID))
		assert.Equal(t, 1, db.orderCount())
		assert.Len(t, publisher.published(), 1)
	})
}
