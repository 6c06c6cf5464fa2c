package domain

import "time"

// OrderStatus enumerates delivery states for orders.
type OrderStatus string

const (
	OrderStatusPending      OrderStatus = "pending"
	OrderStatusIsDelivering OrderStatus = "is_delivering"
	OrderStatusDelivered    OrderStatus = "delivered"
)

var orderStatusRank = map[OrderStatus]int{
	OrderStatusPending:      0,
	OrderStatusIsDelivering: 1,
	OrderStatusDelivered:    2,
}

// ParseOrderStatus validates raw status input.
func ParseOrderStatus(raw string) (OrderStatus, error) {
	status := OrderStatus(raw)
	if _, ok := orderStatusRank[status]; !ok {
		return "", ErrInvalidStatus
	}
	return status, nil
}

// CanTransitionTo reports whether the status may move forward to next.
// Statuses only move forward; repeating the current status is rejected.
func (s OrderStatus) CanTransitionTo(next OrderStatus) bool {
	from, ok := orderStatusRank[s]
	if !ok {
		return false
	}
	to, ok := orderStatusRank[next]
	if !ok {
		return false
	}
	return to > from
}

// Order is a pizza order placed by a user.
type Order struct {
	ID        string
	UserID    string
	Size      string
	PizzaType string
	Quantity  int
	Toppings  bool
	Price     float64
	Status    OrderStatus
	CreatedAt time.Time
	UpdatedAt time.Time
}
