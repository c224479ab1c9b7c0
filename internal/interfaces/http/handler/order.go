package handler

import (
	"context"
	"errors"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"

	appordering "github.com/shopcore/backend/internal/application/ordering"
	"github.com/shopcore/backend/internal/domain/catalog"
	"github.com/shopcore/backend/internal/domain/ordering"
	"github.com/shopcore/backend/internal/domain/shared"
	"github.com/shopcore/backend/internal/interfaces/http/dto"
)

// OrderPlacer places and pays orders
type OrderPlacer interface {
	Handle(ctx context.Context, cmd *appordering.PlaceOrderCommand) (*appordering.OrderResponse, error)
}

// OrderPayer marks orders as paid
type OrderPayer interface {
	Handle(ctx context.Context, orderID uuid.UUID) (*appordering.OrderResponse, error)
}

// OrderReader serves the order read path
type OrderReader interface {
	GetByID(ctx context.Context, id uuid.UUID) (*appordering.OrderResponse, error)
}

// OrderHandler exposes order operations over HTTP
type OrderHandler struct {
	BaseHandler
	placer OrderPlacer
	payer  OrderPayer
	reader OrderReader
}

// NewOrderHandler creates a new order handler
func NewOrderHandler(placer OrderPlacer, payer OrderPayer, reader OrderReader) *OrderHandler {
	return &OrderHandler{
		placer: placer,
		payer:  payer,
		reader: reader,
	}
}

// PlaceOrder handles POST /orders
func (h *OrderHandler) PlaceOrder(c *gin.Context) {
	var cmd appordering.PlaceOrderCommand
	if err := c.ShouldBindJSON(&cmd); err != nil {
		h.Error(c, dto.GetHTTPStatus(shared.CodeValidation), shared.CodeValidation, bindingErrorMessage(err))
		return
	}

	resp, err := h.placer.Handle(c.Request.Context(), &cmd)
	if err != nil {
		h.respondDomainError(c, err)
		return
	}

	h.Created(c, resp)
}

// GetOrder handles GET /orders/:id
func (h *OrderHandler) GetOrder(c *gin.Context) {
	var req dto.IDRequest
	if err := c.ShouldBindUri(&req); err != nil {
		h.Error(c, dto.GetHTTPStatus(shared.CodeValidation), shared.CodeValidation, "Invalid order ID")
		return
	}

	resp, err := h.reader.GetByID(c.Request.Context(), uuid.MustParse(req.ID))
	if err != nil {
		h.respondDomainError(c, err)
		return
	}

	h.Success(c, resp)
}

// PayOrder handles POST /orders/:id/pay
func (h *OrderHandler) PayOrder(c *gin.Context) {
	var req dto.IDRequest
	if err := c.ShouldBindUri(&req); err != nil {
		h.Error(c, dto.GetHTTPStatus(shared.CodeValidation), shared.CodeValidation, "Invalid order ID")
		return
	}

	resp, err := h.payer.Handle(c.Request.Context(), uuid.MustParse(req.ID))
	if err != nil {
		h.respondDomainError(c, err)
		return
	}

	h.Success(c, resp)
}

// respondDomainError maps domain errors to the response envelope
func (h *OrderHandler) respondDomainError(c *gin.Context, err error) {
	var stockErr *catalog.InsufficientStockError
	if errors.As(err, &stockErr) {
		h.ErrorWithCode(c, shared.CodeInsufficientStock, stockErr.Error())
		return
	}

	var notFoundErr *ordering.ProductNotFoundError
	if errors.As(err, &notFoundErr) {
		h.ErrorWithCode(c, shared.CodeProductNotFound, notFoundErr.Error())
		return
	}

	var transitionErr *ordering.InvalidStateTransitionError
	if errors.As(err, &transitionErr) {
		h.ErrorWithCode(c, shared.CodeInvalidStateTransition, transitionErr.Error())
		return
	}

	var domainErr *shared.DomainError
	if errors.As(err, &domainErr) {
		h.ErrorWithCode(c, domainErr.Code, domainErr.Message)
		return
	}

	h.Internal(c)
}

// bindingErrorMessage flattens gin binding errors into one readable line
func bindingErrorMessage(err error) string {
	var validationErrs validator.ValidationErrors
	if !errors.As(err, &validationErrs) {
		return "Invalid request body"
	}

	parts := make([]string, 0, len(validationErrs))
	for _, fieldErr := range validationErrs {
		parts = append(parts, fieldErr.Field()+" failed on "+fieldErr.Tag())
	}
	return "Validation failed: " + strings.Join(parts, "; ")
}
