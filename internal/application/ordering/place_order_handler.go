package ordering

import (
	"context"

	"go.uber.org/zap"

	domain "github.com/shopcore/backend/internal/domain/ordering"
	"github.com/shopcore/backend/internal/domain/shared"
)

// PlaceOrderHandler executes the place-order use case: one transaction
// covering stock reservation and order persistence, with domain events
// published only after the transaction commits.
type PlaceOrderHandler struct {
	uow       UnitOfWork
	placement *domain.OrderPlacementService
	publisher shared.EventPublisher
	logger    *zap.Logger
}

// NewPlaceOrderHandler creates a new place order handler
func NewPlaceOrderHandler(uow UnitOfWork, placement *domain.OrderPlacementService, publisher shared.EventPublisher, logger *zap.Logger) *PlaceOrderHandler {
	return &PlaceOrderHandler{
		uow:       uow,
		placement: placement,
		publisher: publisher,
		logger:    logger,
	}
}

// Handle places an order for the command's cart.
//
// On any failure inside the transaction every stock decrement and the
// order insert roll back together and no event is published. Publish
// failures after commit do not fail the request; the order stands.
func (h *PlaceOrderHandler) Handle(ctx context.Context, cmd *PlaceOrderCommand) (*OrderResponse, error) {
	lines, err := cmd.ToCartLines()
	if err != nil {
		return nil, err
	}

	var (
		order  *domain.Order
		events []shared.DomainEvent
	)
	err = h.uow.Do(ctx, func(ctx context.Context, stores Stores) error {
		var err error
		order, err = h.placement.CreateOrder(ctx, stores.Products(), cmd.CustomerID, lines)
		if err != nil {
			return err
		}
		if err := stores.Orders().Save(ctx, order); err != nil {
			return err
		}
		// Drain inside the transaction so a retried placement cannot
		// publish events from an aborted attempt.
		events = order.ReleaseEvents()
		return nil
	})
	if err != nil {
		h.logger.Info("order placement failed",
			zap.String("customer_id", cmd.CustomerID),
			zap.Error(err))
		return nil, err
	}

	h.logger.Info("order placed",
		zap.String("order_id", order.ID.String()),
		zap.String("customer_id", order.CustomerID),
		zap.String("total_amount", order.TotalAmount().String()))

	if err := h.publisher.Publish(ctx, events...); err != nil {
		h.logger.Error("failed to publish order events",
			zap.String("order_id", order.ID.String()),
			zap.Error(err))
	}

	return ToOrderResponse(order), nil
}
