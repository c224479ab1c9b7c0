package ordering

import (
	"context"

	"github.com/google/uuid"
	"go.uber.org/zap"

	domain "github.com/shopcore/backend/internal/domain/ordering"
	"github.com/shopcore/backend/internal/domain/shared"
)

// PayOrderHandler executes the pay-order use case: load, transition
// pending to paid, persist with a version check.
type PayOrderHandler struct {
	uow       UnitOfWork
	publisher shared.EventPublisher
	logger    *zap.Logger
}

// NewPayOrderHandler creates a new pay order handler
func NewPayOrderHandler(uow UnitOfWork, publisher shared.EventPublisher, logger *zap.Logger) *PayOrderHandler {
	return &PayOrderHandler{
		uow:       uow,
		publisher: publisher,
		logger:    logger,
	}
}

// Handle marks the order as paid. A concurrent update between the load
// and the write surfaces as shared.ErrConcurrencyConflict; the caller may
// retry the whole operation.
func (h *PayOrderHandler) Handle(ctx context.Context, orderID uuid.UUID) (*OrderResponse, error) {
	var (
		order  *domain.Order
		events []shared.DomainEvent
	)
	err := h.uow.Do(ctx, func(ctx context.Context, stores Stores) error {
		var err error
		order, err = stores.Orders().FindByID(ctx, orderID)
		if err != nil {
			return err
		}
		if err := order.MarkAsPaid(); err != nil {
			return err
		}
		if err := stores.Orders().Update(ctx, order); err != nil {
			return err
		}
		events = order.ReleaseEvents()
		return nil
	})
	if err != nil {
		return nil, err
	}

	h.logger.Info("order paid",
		zap.String("order_id", order.ID.String()),
		zap.String("customer_id", order.CustomerID))

	if err := h.publisher.Publish(ctx, events...); err != nil {
		h.logger.Error("failed to publish order events",
			zap.String("order_id", order.ID.String()),
			zap.Error(err))
	}

	return ToOrderResponse(order), nil
}
