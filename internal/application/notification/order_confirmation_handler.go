package notification

import (
	"context"
	"sync"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/shopcore/backend/internal/domain/ordering"
	"github.com/shopcore/backend/internal/domain/shared"
)

// OrderConfirmationHandler reacts to placed orders by sending the
// customer a confirmation. Delivery from the bus is at-least-once, so
// the handler is idempotent on the event ID: a redelivered event sends
// nothing.
//
// Sending is a structured log line standing in for a mail gateway call.
type OrderConfirmationHandler struct {
	logger *zap.Logger

	mu        sync.Mutex
	processed map[uuid.UUID]struct{}
}

// NewOrderConfirmationHandler creates a new order confirmation handler
func NewOrderConfirmationHandler(logger *zap.Logger) *OrderConfirmationHandler {
	return &OrderConfirmationHandler{
		logger:    logger,
		processed: make(map[uuid.UUID]struct{}),
	}
}

// EventTypes returns the event types this handler subscribes to
func (h *OrderConfirmationHandler) EventTypes() []string {
	return []string{ordering.EventTypeOrderPlaced}
}

// Handle sends an order confirmation for a newly placed order
func (h *OrderConfirmationHandler) Handle(_ context.Context, event shared.DomainEvent) error {
	placed, ok := event.(*ordering.OrderPlacedEvent)
	if !ok {
		h.logger.Warn("unexpected event payload",
			zap.String("event_type", event.EventType()),
			zap.String("event_id", event.EventID().String()))
		return nil
	}

	if !h.markProcessed(event.EventID()) {
		h.logger.Debug("duplicate event, confirmation already sent",
			zap.String("event_id", event.EventID().String()))
		return nil
	}

	h.logger.Info("order confirmation sent",
		zap.String("order_id", placed.OrderID.String()),
		zap.String("customer_id", placed.CustomerID),
		zap.String("total_amount", placed.TotalAmount.StringFixed(2)),
		zap.Int("item_count", placed.ItemCount))

	return nil
}

// markProcessed records the event ID, returning false if it was seen before
func (h *OrderConfirmationHandler) markProcessed(eventID uuid.UUID) bool {
	h.mu.Lock()
	defer h.mu.Unlock()
	if _, seen := h.processed[eventID]; seen {
		return false
	}
	h.processed[eventID] = struct{}{}
	return true
}
