package ordering

import (
	"time"

	"github.com/google/uuid"

	"github.com/shopcore/backend/internal/domain/ordering"
	"github.com/shopcore/backend/internal/domain/shared"
)

// CartLineInput is one product line in a placement request
type CartLineInput struct {
	ProductID string `json:"product_id" binding:"required,uuid"`
	Quantity  int64  `json:"quantity" binding:"required,gt=0"`
}

// PlaceOrderCommand is the request to place an order
type PlaceOrderCommand struct {
	CustomerID string          `json:"customer_id" binding:"required"`
	Lines      []CartLineInput `json:"lines" binding:"required,min=1,dive"`
}

// ToCartLines converts the command lines to domain cart lines.
// Malformed product IDs fail with a validation error.
func (c *PlaceOrderCommand) ToCartLines() ([]ordering.CartLine, error) {
	lines := make([]ordering.CartLine, 0, len(c.Lines))
	for _, line := range c.Lines {
		productID, err := uuid.Parse(line.ProductID)
		if err != nil {
			return nil, shared.NewValidationError("Invalid product ID: " + line.ProductID)
		}
		lines = append(lines, ordering.CartLine{
			ProductID: productID,
			Quantity:  line.Quantity,
		})
	}
	return lines, nil
}

// OrderItemResponse is one item line in an order response
type OrderItemResponse struct {
	ProductID   string `json:"product_id"`
	ProductName string `json:"product_name"`
	UnitPrice   string `json:"unit_price"`
	Quantity    int64  `json:"quantity"`
	TotalPrice  string `json:"total_price"`
}

// OrderResponse is the API representation of an order
type OrderResponse struct {
	ID          string              `json:"id"`
	CustomerID  string              `json:"customer_id"`
	Status      string              `json:"status"`
	TotalAmount string              `json:"total_amount"`
	Items       []OrderItemResponse `json:"items"`
	CreatedAt   time.Time           `json:"created_at"`
	UpdatedAt   time.Time           `json:"updated_at"`
}

// ToOrderResponse maps an order aggregate to its response form
func ToOrderResponse(order *ordering.Order) *OrderResponse {
	items := order.Items()
	itemResponses := make([]OrderItemResponse, 0, len(items))
	for _, item := range items {
		itemResponses = append(itemResponses, OrderItemResponse{
			ProductID:   item.ProductID.String(),
			ProductName: item.ProductName,
			UnitPrice:   item.UnitPrice.StringFixed(2),
			Quantity:    item.Quantity,
			TotalPrice:  item.TotalPrice().StringFixed(2),
		})
	}

	return &OrderResponse{
		ID:          order.ID.String(),
		CustomerID:  order.CustomerID,
		Status:      order.Status().String(),
		TotalAmount: order.TotalAmount().StringFixed(2),
		Items:       itemResponses,
		CreatedAt:   order.CreatedAt,
		UpdatedAt:   order.UpdatedAt,
	}
}
