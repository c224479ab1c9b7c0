package notification

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"

	"github.com/shopcore/backend/internal/domain/ordering"
)

func placedEvent(t *testing.T) *ordering.OrderPlacedEvent {
	t.Helper()
	item, err := ordering.NewOrderItem(
		uuid.New(), "Widget", decimal.RequireFromString("10.00"), 2)
	require.NoError(t, err)
	order, err := ordering.NewOrder("customer-1", []ordering.OrderItem{item})
	require.NoError(t, err)

	events := order.ReleaseEvents()
	require.Len(t, events, 1)
	return events[0].(*ordering.OrderPlacedEvent)
}

func TestOrderConfirmationHandler(t *testing.T) {
	ctx := context.Background()

	t.Run("sends one confirmation per placed order", func(t *testing.T) {
		core, logs := observer.New(zap.InfoLevel)
		handler := NewOrderConfirmationHandler(zap.New(core))

		event := placedEvent(t)
		require.NoError(t, handler.Handle(ctx, event))

		entries := logs.FilterMessage("order confirmation sent").All()
		require.Len(t, entries, 1)
		fields := entries[0].ContextMap()
		assert.Equal(t, "customer-1", fields["customer_id"])
		assert.Equal(t, "20.00", fields["total_amount"])
	})

	t.Run("redelivered event sends nothing", func(t *testing.T) {
		core, logs := observer.New(zap.InfoLevel)
		handler := NewOrderConfirmationHandler(zap.New(core))

		event := placedEvent(t)
		require.NoError(t, handler.Handle(ctx, event))
		require.NoError(t, handler.Handle(ctx, event))

		assert.Len(t, logs.FilterMessage("order confirmation sent").All(), 1)
	})

	t.Run("distinct orders each get a confirmation", func(t *testing.T) {
		core, logs := observer.New(zap.InfoLevel)
		handler := NewOrderConfirmationHandler(zap.New(core))

		require.NoError(t, handler.Handle(ctx, placedEvent(t)))
		require.NoError(t, handler.Handle(ctx, placedEvent(t)))

		assert.Len(t, logs.FilterMessage("order confirmation sent").All(), 2)
	})

	t.Run("subscribes to order placed only", func(t *testing.T) {
		handler := NewOrderConfirmationHandler(zap.NewNop())
		assert.Equal(t, []string{ordering.EventTypeOrderPlaced}, handler.EventTypes())
	})
}
