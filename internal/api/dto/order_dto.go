package dto

import (
	"time"

	"github.com/spec-kit/pizza-delivery/internal/domain"
)

// CreateOrderRequest payload.
type CreateOrderRequest struct {
	Size      string `json:"size" validate:"required"`
	PizzaType string `json:"pizza_type" validate:"required"`
	Quantity  int    `json:"quantity" validate:"required,gt=0"`
	Toppings  bool   `json:"toppings"`
}

// UpdateOrderStatusRequest payload.
type UpdateOrderStatusRequest struct {
	Status string `json:"status" validate:"required"`
}

// OrderResponse is the public view of an order.
type OrderResponse struct {
	ID        string             `json:"id"`
	UserID    string             `json:"user_id"`
	Size      string             `json:"size"`
	PizzaType string             `json:"pizza_type"`
	Quantity  int                `json:"quantity"`
	Toppings  bool               `json:"toppings"`
	Price     float64            `json:"price"`
	Status    domain.OrderStatus `json:"status"`
	CreatedAt time.Time          `json:"created_at"`
	UpdatedAt time.Time          `json:"updated_at"`
}

// OrderStatusResponse is returned by the status lookup.
type OrderStatusResponse struct {
	ID     string             `json:"id"`
	Status domain.OrderStatus `json:"status"`
}

// NewOrderResponse maps a domain order.
func NewOrderResponse(order *domain.Order) OrderResponse {
	return OrderResponse{
		ID:        order.ID,
		UserID:    order.UserID,
		Size:      order.Size,
		PizzaType: order.PizzaType,
		Quantity:  order.Quantity,
		Toppings:  order.Toppings,
		Price:     order.Price,
		Status:    order.Status,
		CreatedAt: order.CreatedAt,
		UpdatedAt: order.UpdatedAt,
	}
}

// NewOrderListResponse maps a slice of orders.
func NewOrderListResponse(orders []domain.Order) []OrderResponse {
	out := make([]OrderResponse, 0, len(orders))
	for i := range orders {
		out = append(out, NewOrderResponse(&orders[i]))
	}
	return out
}
